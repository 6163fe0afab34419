// Copyright © 2024 The Brook authors

package diagnostic

import (
	"bytes"
	"errors"
	"testing"

	"github.com/brooklang/brook/brook"
	"github.com/brooklang/brook/brookutil"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testRenderer returns a Renderer with colors disabled and in-memory sources.
func testRenderer(sources map[string]string) *Renderer {
	r := &Renderer{
		Color:   ColorNever,
		Sources: make(map[string][]byte),
		FS:      afero.NewMemMapFs(),
	}
	for name, src := range sources {
		r.Sources[name] = []byte(src)
	}
	return r
}

func render(t *testing.T, r *Renderer, d Diagnostic) string {
	var buf bytes.Buffer
	require.NoError(t, r.Render(&buf, d))
	return buf.String()
}

func TestRenderError(t *testing.T) {
	r := testRenderer(map[string]string{
		"test": "x <- 1;\nx plus \"a\"",
	})
	got := render(t, r, Diagnostic{
		Condition: brook.CondTypeMismatch,
		Message:   "function 'plus(num num)' expected RHS to be of type num, received str",
		Spans: []Span{
			{File: "test", Line: 2, Col: 8, EndCol: 10, Label: "expected num"},
		},
	})
	assert.Equal(t, `error[type-mismatch]: function 'plus(num num)' expected RHS to be of type num, received str
  --> test:2:8
   |
 2 |  x plus "a"
   |         ^^^ expected num
   |
`, got)
}

func TestRenderNoSource(t *testing.T) {
	r := testRenderer(nil)
	got := render(t, r, Diagnostic{
		Message: "some error",
		Spans:   []Span{{File: "<stdin>", Line: 5, Col: 3}},
	})
	assert.Contains(t, got, "error: some error")
	assert.Contains(t, got, "--> <stdin>:5:3")
	assert.Contains(t, got, "|")
	assert.NotContains(t, got, "^")
}

func TestRenderNotes(t *testing.T) {
	r := testRenderer(map[string]string{"test": "foo 1"})
	got := render(t, r, Diagnostic{
		Message: "no such function or value foo",
		Spans:   []Span{{File: "test", Line: 1, Col: 1}},
		Notes:   []string{"first", "second"},
	})
	assert.Contains(t, got, "= note: first\n")
	assert.Contains(t, got, "= note: second\n")
}

func TestRenderAutoDetectEndCol(t *testing.T) {
	r := testRenderer(map[string]string{"test": "[1 2] reduce\ttimes"})
	got := render(t, r, Diagnostic{
		Message: "m",
		Spans:   []Span{{File: "test", Line: 1, Col: 7}},
	})
	assert.Contains(t, got, "[1 2] reduce    times\n")
	assert.Contains(t, got, "|        ^^^^^^\n")
}

func TestRenderFromFS(t *testing.T) {
	r := testRenderer(nil)
	require.NoError(t, afero.WriteFile(r.FS, "prog.bk", []byte("1\n2 3"), 0o644))
	got := render(t, r, Diagnostic{
		Message: "m",
		Spans:   []Span{{File: "prog.bk", Line: 2, Col: 3}},
	})
	assert.Contains(t, got, " 2 |  2 3\n")
	assert.Contains(t, got, "^")
}

func TestRenderWarning(t *testing.T) {
	r := testRenderer(map[string]string{"test": "x <- 1;\n2"})
	got := render(t, r, Diagnostic{
		Severity:  "warning",
		Condition: "unused-assignment",
		Message:   "x is assigned but never used",
		Spans:     []Span{{File: "test", Line: 1, Col: 1}},
	})
	assert.Equal(t, `warning[unused-assignment]: x is assigned but never used
  --> test:1:1
   |
 1 |  x <- 1;
   |  ^
   |
`, got)
}

func TestRenderNoSpans(t *testing.T) {
	r := testRenderer(nil)
	got := render(t, r, Diagnostic{Message: "unable to read source file"})
	assert.Equal(t, "error: unable to read source file\n", got)
}

func TestFromError(t *testing.T) {
	_, err := brookutil.ExecuteFile("test", "plus 1 @")
	require.Error(t, err)
	d := FromError(err)
	assert.Equal(t, brook.CondLexError, d.Condition)
	assert.Equal(t, `no token matches input starting "@"`, d.Message)
	require.Len(t, d.Spans, 1)
	assert.Equal(t, Span{File: "test", Line: 1, Col: 8, Label: "unrecognized input"}, d.Spans[0])

	r := testRenderer(map[string]string{"test": "plus 1 @"})
	var buf bytes.Buffer
	require.NoError(t, r.RenderError(&buf, err))
	assert.Contains(t, buf.String(), "|         ^ unrecognized input\n")

	_, err = brookutil.ExecuteFile("test", `foo 1`)
	d = FromError(err)
	assert.Equal(t, brook.CondUnboundName, d.Condition)
	assert.Equal(t, "no such function or value foo", d.Message)
	require.Len(t, d.Spans, 1)
	assert.Equal(t, "not bound in this program", d.Spans[0].Label)

	_, err = brookutil.ExecuteFile("test", `"a" plus 1`)
	d = FromError(err)
	assert.Equal(t, brook.CondTypeMismatch, d.Condition)
	require.Len(t, d.Spans, 1)
	assert.Equal(t, "expected num", d.Spans[0].Label)
	assert.Equal(t, []string{`received "a"`}, d.Notes)

	_, err = brookutil.ExecuteFile("test", `length 3`)
	d = FromError(err)
	assert.Equal(t, brook.CondBuiltinError, d.Condition)
	assert.Contains(t, d.Message, "length: ")
	require.Len(t, d.Spans, 1)
	assert.Equal(t, "raised by length", d.Spans[0].Label)

	d = FromError(errors.New("plain"))
	assert.Equal(t, Diagnostic{Message: "plain"}, d)
}

func TestParseColorMode(t *testing.T) {
	for s, mode := range map[string]ColorMode{"": ColorAuto, "auto": ColorAuto, "always": ColorAlways, "never": ColorNever} {
		got, err := ParseColorMode(s)
		require.NoError(t, err)
		assert.Equal(t, mode, got)
	}
	_, err := ParseColorMode("sometimes")
	assert.Error(t, err)
	assert.Equal(t, ansiPalette, choosePalette(ColorAlways, nil))
	assert.Equal(t, noPalette, choosePalette(ColorAuto, nil))
}
