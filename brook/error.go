// Copyright © 2024 The Brook authors

package brook

import (
	"errors"
	"fmt"

	"github.com/brooklang/brook/parser/token"
)

// Condition names used to classify errors in diagnostics.
const (
	CondLexError     = "lex-error"
	CondParseError   = "parse-error"
	CondUnboundName  = "unbound-name"
	CondNotCallable  = "not-callable"
	CondArityError   = "arity-error"
	CondTypeMismatch = "type-mismatch"
	CondBuiltinError = "builtin-error"
)

// Error is implemented by all errors produced while lexing, parsing, or
// evaluating a brook program.  Every such error is fatal to the run that
// raised it.
type Error interface {
	error
	// Condition returns the programmatic error classification.
	Condition() string
	// Location returns the source location associated with the error, if
	// one is known.
	Location() *token.Location
}

// LexError is returned when no token pattern matches the remaining input.
type LexError struct {
	Source *token.Location
	Text   string // a prefix of the unmatched input
}

func (e *LexError) Error() string {
	return locatedf(e.Source, "%s: no token matches input starting %q", CondLexError, e.Text)
}

func (e *LexError) Condition() string         { return CondLexError }
func (e *LexError) Location() *token.Location { return e.Source }

// ParseError is returned when no grammar alternative consumes a statement or
// tokens remain after a complete parse.
type ParseError struct {
	Source *token.Location
	Msg    string
}

func (e *ParseError) Error() string {
	return locatedf(e.Source, "%s: %s", CondParseError, e.Msg)
}

func (e *ParseError) Condition() string         { return CondParseError }
func (e *ParseError) Location() *token.Location { return e.Source }

// UnboundNameError is returned when an identifier is absent from the symbol
// table.
type UnboundNameError struct {
	Source *token.Location
	Name   string
}

func (e *UnboundNameError) Error() string {
	return locatedf(e.Source, "%s: no such function or value %s", CondUnboundName, e.Name)
}

func (e *UnboundNameError) Condition() string         { return CondUnboundName }
func (e *UnboundNameError) Location() *token.Location { return e.Source }

// NotCallableError is returned when a non-function is invoked with operands.
type NotCallableError struct {
	Source *token.Location
	Name   string
	Actual *TypeDesc
}

func (e *NotCallableError) Error() string {
	return locatedf(e.Source, "%s: %s is a value of type %s, not a function", CondNotCallable, e.Name, e.Actual)
}

func (e *NotCallableError) Condition() string         { return CondNotCallable }
func (e *NotCallableError) Location() *token.Location { return e.Source }

// ArityError is returned when a function receives more arguments than it
// declares.
type ArityError struct {
	Source *token.Location
	Fun    string
	Arity  int
	Got    int
}

func (e *ArityError) Error() string {
	return locatedf(e.Source, "%s: function '%s' takes %d arguments, received %d",
		CondArityError, e.Fun, e.Arity, e.Got)
}

func (e *ArityError) Condition() string         { return CondArityError }
func (e *ArityError) Location() *token.Location { return e.Source }

// TypeMismatchError is returned when an argument is structurally incompatible
// with its parameter and cannot be composed into a partial application.
type TypeMismatchError struct {
	Source   *token.Location
	Fun      string
	Position int
	Expected *TypeDesc
	Actual   *TypeDesc
	Arg      *Value
}

func (e *TypeMismatchError) Error() string {
	return locatedf(e.Source, "%s: function '%s' expected %s to be of type %s, received %s: %v",
		CondTypeMismatch, e.Fun, positionName(e.Position), e.Expected, e.Actual, e.Arg)
}

func (e *TypeMismatchError) Condition() string         { return CondTypeMismatch }
func (e *TypeMismatchError) Location() *token.Location { return e.Source }

// BuiltinError is a failure raised inside the implementation of a builtin
// function, such as an unreadable file.
type BuiltinError struct {
	Source *token.Location
	Fun    string
	Err    error
}

func (e *BuiltinError) Error() string {
	return locatedf(e.Source, "%s: %s", e.Fun, e.Err)
}

func (e *BuiltinError) Unwrap() error             { return e.Err }
func (e *BuiltinError) Condition() string         { return CondBuiltinError }
func (e *BuiltinError) Location() *token.Location { return e.Source }

func builtinErrorf(fun string, format string, v ...interface{}) error {
	return &BuiltinError{Fun: fun, Err: fmt.Errorf(format, v...)}
}

func positionName(i int) string {
	switch i {
	case 0:
		return "LHS"
	case 1:
		return "RHS"
	default:
		return fmt.Sprintf("argument %d", i)
	}
}

func locatedf(loc *token.Location, format string, v ...interface{}) string {
	msg := fmt.Sprintf(format, v...)
	if loc == nil {
		return msg
	}
	return fmt.Sprintf("%s: %s", loc, msg)
}

// locate attaches loc to the innermost runtime error in err that has no
// location yet.
func locate(err error, loc *token.Location) error {
	if loc == nil {
		return err
	}
	var arity *ArityError
	if errors.As(err, &arity) && arity.Source == nil {
		arity.Source = loc
		return err
	}
	var mismatch *TypeMismatchError
	if errors.As(err, &mismatch) && mismatch.Source == nil {
		mismatch.Source = loc
		return err
	}
	var call *NotCallableError
	if errors.As(err, &call) && call.Source == nil {
		call.Source = loc
		return err
	}
	var berr *BuiltinError
	if errors.As(err, &berr) && berr.Source == nil {
		berr.Source = loc
	}
	return err
}
