// Copyright © 2024 The Brook authors

package lint

import (
	"fmt"
	"sort"
	"strings"

	"github.com/brooklang/brook/astutil"
	"github.com/brooklang/brook/brook"
)

// AnalyzerUndefinedName reports names which are neither predeclared nor
// assigned by an earlier statement.
var AnalyzerUndefinedName = &Analyzer{
	Name:     "undefined-name",
	Doc:      "Report names that are not bound when they are used.\n\nA name must be a builtin or be assigned by an earlier statement. Evaluating an unbound name stops the program with an unbound-name error.",
	Severity: SeverityError,
	Run: func(pass *Pass) error {
		assigned := make(map[string]bool)
		later := astutil.UserDefined(pass.Exprs)
		for _, stmt := range pass.Exprs {
			astutil.WalkCalls([]brook.Expr{stmt}, func(call *brook.FunctionCall, depth int) {
				name := astutil.CalleeName(call)
				if name == "" || assigned[name] {
					return
				}
				if _, ok := pass.Predeclared(name); ok {
					return
				}
				d := Diagnostic{
					Pos:     PositionOf(call.Source),
					Message: fmt.Sprintf("%s is not defined", name),
				}
				if later[name] {
					pass.ReportWithNotes(d, fmt.Sprintf("%s is assigned by a later statement", name))
					return
				}
				pass.Report(d)
			})
			if a, ok := stmt.(*brook.Assignment); ok {
				assigned[a.Name] = true
			}
		}
		return nil
	},
}

// AnalyzerNotCallable reports operands applied to values that are known not
// to be functions.
var AnalyzerNotCallable = &Analyzer{
	Name:     "not-callable",
	Doc:      "Report calls whose callee is known not to be a function.\n\nThe callee may be a literal, a predeclared constant such as true, or a name most recently assigned a literal.",
	Severity: SeverityError,
	Run: func(pass *Pass) error {
		// assigned names mapped to the type of their literal value, or ""
		kinds := make(map[string]string)
		for _, stmt := range pass.Exprs {
			astutil.WalkCalls([]brook.Expr{stmt}, func(call *brook.FunctionCall, depth int) {
				if astutil.ArgCount(call) == 0 {
					return
				}
				var desc, what string
				if call.Callee != nil {
					desc, what = literalType(call.Callee), call.Callee.Write()
				} else if kind, ok := kinds[call.Name]; ok {
					desc, what = kind, call.Name
				} else if v, ok := pass.Predeclared(call.Name); ok && v.Type != brook.VFun {
					desc, what = v.TypeDesc().String(), call.Name
				}
				if desc == "" {
					return
				}
				d := Diagnostic{
					Pos:     PositionOf(astutil.SourceOf(call)),
					Message: fmt.Sprintf("%s has type %s and is not callable", what, desc),
				}
				if call.Lhs != nil && call.Rhs != nil && call.Callee == nil {
					pass.ReportWithNotes(d, "a name between two operands is called as an infix function")
					return
				}
				pass.Report(d)
			})
			if a, ok := stmt.(*brook.Assignment); ok {
				kinds[a.Name] = literalType(a.Expr)
			}
		}
		return nil
	},
}

// literalType returns the type of a literal expression, or "" for any other
// expression.
func literalType(expr brook.Expr) string {
	switch expr := expr.(type) {
	case *brook.Literal:
		return expr.Value.TypeDesc().String()
	case *brook.ArrayExpr:
		return "array"
	}
	return ""
}

// AnalyzerBuiltinArity reports calls supplying more operands than a
// predeclared function accepts.
var AnalyzerBuiltinArity = &Analyzer{
	Name:     "builtin-arity",
	Doc:      "Check operand counts for calls to predeclared functions.\n\nSupplying fewer operands than a function takes returns a partial application, but supplying more is an arity error. Names assigned anywhere in the program are excluded.",
	Severity: SeverityError,
	Run: func(pass *Pass) error {
		userDefs := astutil.UserDefined(pass.Exprs)
		astutil.WalkCalls(pass.Exprs, func(call *brook.FunctionCall, depth int) {
			name := astutil.CalleeName(call)
			if name == "" || userDefs[name] {
				return
			}
			v, ok := pass.Predeclared(name)
			if !ok || v.Type != brook.VFun {
				return
			}
			argc := astutil.ArgCount(call)
			if arity := v.Fun.Arity(); argc > arity {
				pass.Reportf(call.Source, "%s takes %d operand(s), got %d", name, arity, argc)
			}
		})
		return nil
	},
}

// AnalyzerShadowBuiltin warns when an assignment rebinds a predeclared name.
var AnalyzerShadowBuiltin = &Analyzer{
	Name:     "shadow-builtin",
	Doc:      "Warn when an assignment rebinds a predeclared name.\n\nAssignments replace the binding for the rest of the program, so later calls no longer reach the builtin.",
	Severity: SeverityWarning,
	Run: func(pass *Pass) error {
		for _, stmt := range pass.Exprs {
			a, ok := stmt.(*brook.Assignment)
			if !ok {
				continue
			}
			if _, ok := pass.Predeclared(a.Name); !ok {
				continue
			}
			pass.ReportWithNotes(Diagnostic{
				Pos:     PositionOf(a.Source),
				Message: fmt.Sprintf("assignment to %s shadows a builtin", a.Name),
			}, fmt.Sprintf("later uses of %s refer to the assigned value", a.Name))
		}
		return nil
	},
}

// AnalyzerUnusedAssignment warns about assigned values that are never read.
var AnalyzerUnusedAssignment = &Analyzer{
	Name:     "unused-assignment",
	Doc:      "Warn when an assigned value is never used.\n\nAn assignment is unused when no later statement refers to the name before it is assigned again. The final statement is exempt because its value is the result of the program.",
	Severity: SeverityWarning,
	Run: func(pass *Pass) error {
		for i, stmt := range pass.Exprs {
			a, ok := stmt.(*brook.Assignment)
			if !ok || i == len(pass.Exprs)-1 {
				continue
			}
			if !usedAfter(a.Name, pass.Exprs[i+1:]) {
				pass.Reportf(a.Source, "%s is assigned but never used", a.Name)
			}
		}
		return nil
	},
}

func usedAfter(name string, stmts []brook.Expr) bool {
	for _, stmt := range stmts {
		if astutil.References(stmt)[name] {
			return true
		}
		if a, ok := stmt.(*brook.Assignment); ok && a.Name == name {
			return false
		}
	}
	return false
}

// AnalyzerNames returns the sorted names of all default analyzers.
func AnalyzerNames() []string {
	analyzers := DefaultAnalyzers()
	names := make([]string, len(analyzers))
	for i, a := range analyzers {
		names[i] = a.Name
	}
	sort.Strings(names)
	return names
}

// AnalyzerDoc returns a formatted documentation string for all analyzers.
func AnalyzerDoc() string {
	var b strings.Builder
	for _, a := range DefaultAnalyzers() {
		fmt.Fprintf(&b, "  %s\n", a.Name)
		lines := strings.Split(a.Doc, "\n")
		fmt.Fprintf(&b, "    %s\n\n", lines[0])
	}
	return b.String()
}
