// Copyright © 2024 The Brook authors

// Package diagnostic renders brook errors as annotated source snippets for
// command line output.
package diagnostic

import (
	"errors"
	"fmt"
	"strings"

	"github.com/brooklang/brook/brook"
)

// Span identifies a region of source code to highlight in the diagnostic.
type Span struct {
	File   string // name used to look up source text
	Line   int    // 1-based line number
	Col    int    // 1-based start column
	EndCol int    // 1-based end column (0 = auto-detect from source)
	Label  string // text shown under the underline
}

// Diagnostic is a single error with optional source annotations and
// trailing notes.
type Diagnostic struct {
	Severity  string // "error" when empty
	Condition string // error classification, may be empty
	Message   string
	Spans     []Span
	Notes     []string
}

// FromError converts err to a Diagnostic.  Errors produced by brook carry a
// condition and, when known, a source span.  Any other error becomes a bare
// message.
func FromError(err error) Diagnostic {
	var berr brook.Error
	if !errors.As(err, &berr) {
		return Diagnostic{Message: err.Error()}
	}
	msg := berr.Error()
	loc := berr.Location()
	if loc != nil {
		msg = strings.TrimPrefix(msg, loc.String()+": ")
	}
	d := Diagnostic{
		Condition: berr.Condition(),
		Message:   strings.TrimPrefix(msg, berr.Condition()+": "),
	}
	if loc != nil && loc.Line > 0 {
		d.Spans = append(d.Spans, Span{
			File:  loc.File,
			Line:  loc.Line,
			Col:   loc.Col,
			Label: label(berr),
		})
	}
	d.Notes = notes(berr)
	return d
}

func label(err brook.Error) string {
	switch err := err.(type) {
	case *brook.LexError:
		return "unrecognized input"
	case *brook.UnboundNameError:
		return "not bound in this program"
	case *brook.NotCallableError:
		return "has type " + err.Actual.String()
	case *brook.ArityError:
		return fmt.Sprintf("takes %d arguments", err.Arity)
	case *brook.TypeMismatchError:
		return "expected " + err.Expected.String()
	case *brook.BuiltinError:
		return "raised by " + err.Fun
	}
	return ""
}

func notes(err brook.Error) []string {
	switch err := err.(type) {
	case *brook.NotCallableError:
		return []string{"a name between two operands is called as an infix function"}
	case *brook.TypeMismatchError:
		if err.Arg != nil {
			return []string{"received " + err.Arg.String()}
		}
	case *brook.ParseError:
		return []string{"every call takes at most two operands"}
	}
	return nil
}
