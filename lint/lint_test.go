// Copyright © 2024 The Brook authors

package lint

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/brooklang/brook/brook"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// lintSource runs all default analyzers on the given source and returns diagnostics.
func lintSource(t *testing.T, source string) []Diagnostic {
	t.Helper()
	l := &Linter{Analyzers: DefaultAnalyzers()}
	diags, err := l.LintFile([]byte(source), "test.brook")
	require.NoError(t, err)
	return diags
}

// lintCheck runs a single analyzer on the given source.
func lintCheck(t *testing.T, analyzer *Analyzer, source string) []Diagnostic {
	t.Helper()
	l := &Linter{Analyzers: []*Analyzer{analyzer}}
	diags, err := l.LintFile([]byte(source), "test.brook")
	require.NoError(t, err)
	return diags
}

// assertNoDiags checks that there are no diagnostics.
func assertNoDiags(t *testing.T, diags []Diagnostic) {
	t.Helper()
	if len(diags) > 0 {
		var msgs []string
		for _, d := range diags {
			msgs = append(msgs, d.String())
		}
		t.Errorf("expected no diagnostics, got %d: %v", len(diags), msgs)
	}
}

// assertDiagOnLine checks that a diagnostic exists on the given line with the given substring.
func assertDiagOnLine(t *testing.T, diags []Diagnostic, line int, substr string) {
	t.Helper()
	for _, d := range diags {
		if d.Pos.Line == line && strings.Contains(d.Message, substr) {
			return
		}
	}
	var msgs []string
	for _, d := range diags {
		msgs = append(msgs, fmt.Sprintf("line %d: %s", d.Pos.Line, d.Message))
	}
	t.Errorf("expected diagnostic on line %d containing %q, got: %v", line, substr, msgs)
}

func TestCleanProgram(t *testing.T) {
	assertNoDiags(t, lintSource(t, "x <- [1 2 3];\nsum (x map (plus 1))"))
	assertNoDiags(t, lintSource(t, "f <- (S plus) (times 2);\n[1 2 3] map f"))
	assertNoDiags(t, lintSource(t, ""))
}

func TestUndefinedName(t *testing.T) {
	diags := lintCheck(t, AnalyzerUndefinedName, `y plus 1`)
	require.Len(t, diags, 1)
	assert.Equal(t, "y is not defined", diags[0].Message)
	assert.Equal(t, Position{File: "test.brook", Line: 1, Col: 1}, diags[0].Pos)
	assert.Equal(t, SeverityError, diags[0].Severity)
	assert.Equal(t, "undefined-name", diags[0].Analyzer)
	assert.Empty(t, diags[0].Notes)

	diags = lintCheck(t, AnalyzerUndefinedName, "y;\ny <- 1")
	require.Len(t, diags, 1)
	assert.Equal(t, []string{"y is assigned by a later statement"}, diags[0].Notes)

	// the right side of an assignment is checked before the name is bound
	diags = lintCheck(t, AnalyzerUndefinedName, `n <- n plus 1`)
	require.Len(t, diags, 1)
	assert.Equal(t, 6, diags[0].Pos.Col)

	assertNoDiags(t, lintCheck(t, AnalyzerUndefinedName, "n <- 1;\nn <- n plus 1;\nn"))
}

func TestNotCallable(t *testing.T) {
	diags := lintCheck(t, AnalyzerNotCallable, `true 1`)
	require.Len(t, diags, 1)
	assert.Equal(t, "true has type bool and is not callable", diags[0].Message)

	diags = lintCheck(t, AnalyzerNotCallable, "x <- 3;\n1 x 2")
	require.Len(t, diags, 1)
	assertDiagOnLine(t, diags, 2, "x has type num and is not callable")
	assert.Equal(t, 3, diags[0].Pos.Col)
	assert.Equal(t, []string{"a name between two operands is called as an infix function"}, diags[0].Notes)

	diags = lintCheck(t, AnalyzerNotCallable, `(3) 1`)
	require.Len(t, diags, 1)
	assert.Equal(t, "3 has type num and is not callable", diags[0].Message)

	diags = lintCheck(t, AnalyzerNotCallable, `([1 2]) 1`)
	require.Len(t, diags, 1)
	assert.Equal(t, "[1 2] has type array and is not callable", diags[0].Message)

	// the most recent assignment decides
	assertNoDiags(t, lintCheck(t, AnalyzerNotCallable, "x <- 3;\nx <- plus;\nx 1 2"))
	assertNoDiags(t, lintCheck(t, AnalyzerNotCallable, "true <- plus;\ntrue 1 2"))
	// names are not called when they appear without operands
	assertNoDiags(t, lintCheck(t, AnalyzerNotCallable, "x <- 3;\nx plus true"))
}

func TestBuiltinArity(t *testing.T) {
	diags := lintCheck(t, AnalyzerBuiltinArity, `sum [1] [2]`)
	require.Len(t, diags, 1)
	assert.Equal(t, "sum takes 1 operand(s), got 2", diags[0].Message)

	assertNoDiags(t, lintCheck(t, AnalyzerBuiltinArity, "plus 1 2; plus 1; sum"))
	assertNoDiags(t, lintCheck(t, AnalyzerBuiltinArity, "sum <- plus;\nsum 1 2"))
}

func TestShadowBuiltin(t *testing.T) {
	diags := lintCheck(t, AnalyzerShadowBuiltin, "plus <- 1;\nplus")
	require.Len(t, diags, 1)
	assert.Equal(t, "assignment to plus shadows a builtin", diags[0].Message)
	assert.Equal(t, SeverityWarning, diags[0].Severity)
	assert.Equal(t, Position{File: "test.brook", Line: 1, Col: 1}, diags[0].Pos)
	assert.Equal(t, []string{"later uses of plus refer to the assigned value"}, diags[0].Notes)

	assertNoDiags(t, lintCheck(t, AnalyzerShadowBuiltin, "total <- 1;\ntotal"))
}

func TestUnusedAssignment(t *testing.T) {
	diags := lintCheck(t, AnalyzerUnusedAssignment, "x <- 1;\ny <- 2;\ny")
	require.Len(t, diags, 1)
	assertDiagOnLine(t, diags, 1, "x is assigned but never used")

	// overwritten before use
	diags = lintCheck(t, AnalyzerUnusedAssignment, "x <- 1;\nx <- 2;\nx")
	require.Len(t, diags, 1)
	assert.Equal(t, 1, diags[0].Pos.Line)

	// the final statement is the result of the program
	assertNoDiags(t, lintCheck(t, AnalyzerUnusedAssignment, "x <- 1"))
	assertNoDiags(t, lintCheck(t, AnalyzerUnusedAssignment, "x <- 1;\nx <- x plus 1"))
}

func TestLintFile_Sorted(t *testing.T) {
	diags := lintSource(t, "x <- 1;\nfoo;\nsum [1] [2]")
	require.Len(t, diags, 3)
	assert.Equal(t, "unused-assignment", diags[0].Analyzer)
	assert.Equal(t, "undefined-name", diags[1].Analyzer)
	assert.Equal(t, "builtin-arity", diags[2].Analyzer)
}

func TestLintFile_Env(t *testing.T) {
	env, err := brook.NewEnv()
	require.NoError(t, err)
	env.Put("double", brook.Fun(brook.NewFunction("double", []*brook.TypeDesc{brook.NumType}, brook.NumType,
		func(env *brook.Env, args []*brook.Value) (*brook.Value, error) {
			return brook.Num(2 * args[0].Num), nil
		})))

	assert.Len(t, lintSource(t, "double 2"), 1)

	l := &Linter{Analyzers: DefaultAnalyzers(), Env: env}
	diags, err := l.LintFile([]byte("double 2;\ndouble 1 2"), "test.brook")
	require.NoError(t, err)
	require.Len(t, diags, 1)
	assert.Equal(t, "double takes 1 operand(s), got 2", diags[0].Message)
}

func TestLintFile_ParseError(t *testing.T) {
	l := &Linter{Analyzers: DefaultAnalyzers()}
	_, err := l.LintFile([]byte("plus 1 2 3"), "test.brook")
	var perr *brook.ParseError
	assert.True(t, errors.As(err, &perr))

	_, err = l.LintFile([]byte("plus 1 @"), "test.brook")
	var lerr *brook.LexError
	assert.True(t, errors.As(err, &lerr))
}

func TestLintFile_AnalyzerError(t *testing.T) {
	failing := &Analyzer{
		Name: "failing",
		Run:  func(pass *Pass) error { return errors.New("boom") },
	}
	l := &Linter{Analyzers: []*Analyzer{failing}}
	_, err := l.LintFile([]byte("1"), "test.brook")
	assert.EqualError(t, err, "test.brook: analyzer failing: boom")
}

func TestFormatText(t *testing.T) {
	var buf bytes.Buffer
	FormatText(&buf, lintSource(t, "y;\ny <- 1"))
	assert.Equal(t, "test.brook:1:1: y is not defined (undefined-name)\n  = note: y is assigned by a later statement\n", buf.String())
}

func TestFormatJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, FormatJSON(&buf, lintSource(t, "plus <- 1;\nplus")))
	assert.Contains(t, buf.String(), `"severity": "warning"`)

	var diags []Diagnostic
	require.NoError(t, json.Unmarshal(buf.Bytes(), &diags))
	require.Len(t, diags, 1)
	assert.Equal(t, SeverityWarning, diags[0].Severity)
	assert.Equal(t, "shadow-builtin", diags[0].Analyzer)
}

func TestSeverityJSON(t *testing.T) {
	b, err := json.Marshal(severityUnset)
	require.NoError(t, err)
	assert.Equal(t, `"warning"`, string(b))

	var s Severity
	require.NoError(t, json.Unmarshal([]byte(`"info"`), &s))
	assert.Equal(t, SeverityInfo, s)
	assert.Error(t, json.Unmarshal([]byte(`"fatal"`), &s))
}

func TestPosition(t *testing.T) {
	assert.Equal(t, "a.brook", Position{File: "a.brook"}.String())
	assert.Equal(t, "a.brook:2", Position{File: "a.brook", Line: 2}.String())
	assert.Equal(t, "a.brook:2:5", Position{File: "a.brook", Line: 2, Col: 5}.String())
	assert.Equal(t, Position{}, PositionOf(nil))
}

func TestAnalyzerNames(t *testing.T) {
	assert.Equal(t, []string{
		"builtin-arity",
		"not-callable",
		"shadow-builtin",
		"undefined-name",
		"unused-assignment",
	}, AnalyzerNames())
	for _, a := range DefaultAnalyzers() {
		assert.Contains(t, AnalyzerDoc(), "  "+a.Name+"\n")
	}
}
