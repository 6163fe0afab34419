// Copyright © 2024 The Brook authors

package brook

import (
	"bytes"

	"github.com/brooklang/brook/parser/token"
)

// Expr is a node of a brook syntax tree.  The set of implementations is
// closed: *Literal, *ArrayExpr, *Assignment and *FunctionCall.
type Expr interface {
	// Write returns the canonical, fully parenthesized rendering of the
	// expression.
	Write() string
	// Eval evaluates the expression in env.
	Eval(env *Env) (*Value, error)
	// Location returns the source location of the expression, if known.
	Location() *token.Location

	expr()
}

// Literal is a constant number or string.
type Literal struct {
	Value  *Value
	Source *token.Location
}

// ArrayExpr constructs an array from its members.
type ArrayExpr struct {
	Members []Expr
	Source  *token.Location
}

// Assignment binds the value of Expr to Name.
type Assignment struct {
	Name   string
	Expr   Expr
	Source *token.Location
}

// FunctionCall applies a callee to up to two operands.  The callee is the
// identifier Name unless Callee is non-nil.  A call with a single operand
// stores it in Rhs.
type FunctionCall struct {
	Lhs    Expr
	Name   string
	Callee Expr
	Rhs    Expr
	Source *token.Location
}

func (*Literal) expr()      {}
func (*ArrayExpr) expr()    {}
func (*Assignment) expr()   {}
func (*FunctionCall) expr() {}

func (e *Literal) Location() *token.Location      { return e.Source }
func (e *ArrayExpr) Location() *token.Location    { return e.Source }
func (e *Assignment) Location() *token.Location   { return e.Source }
func (e *FunctionCall) Location() *token.Location { return e.Source }

func (e *Literal) Write() string {
	return writeValue(e.Value)
}

func writeValue(v *Value) string {
	switch v.Type {
	case VStr:
		return `"` + v.Str + `"`
	case VArray:
		var buf bytes.Buffer
		buf.WriteString("[")
		for i, cell := range v.Cells {
			if i > 0 {
				buf.WriteString(" ")
			}
			buf.WriteString(writeValue(cell))
		}
		buf.WriteString("]")
		return buf.String()
	case VFun:
		return "(" + v.Fun.Name + ")"
	default:
		return v.String()
	}
}

func (e *Literal) Eval(env *Env) (*Value, error) {
	return e.Value, nil
}

func (e *ArrayExpr) Write() string {
	var buf bytes.Buffer
	buf.WriteString("[")
	for i, m := range e.Members {
		if i > 0 {
			buf.WriteString(" ")
		}
		buf.WriteString(m.Write())
	}
	buf.WriteString("]")
	return buf.String()
}

func (e *ArrayExpr) Eval(env *Env) (*Value, error) {
	cells := make([]*Value, len(e.Members))
	for i, m := range e.Members {
		v, err := m.Eval(env)
		if err != nil {
			return nil, err
		}
		cells[i] = v
	}
	return Array(cells), nil
}

func (e *Assignment) Write() string {
	return e.Name + " <- " + e.Expr.Write()
}

func (e *Assignment) Eval(env *Env) (*Value, error) {
	v, err := e.Expr.Eval(env)
	if err != nil {
		return nil, err
	}
	env.Put(e.Name, v)
	return v, nil
}

func (e *FunctionCall) Write() string {
	var buf bytes.Buffer
	buf.WriteString("(")
	if e.Lhs != nil && e.Rhs != nil {
		buf.WriteString(e.Lhs.Write())
		buf.WriteString(" ")
	}
	buf.WriteString(e.writeCallee())
	switch {
	case e.Rhs != nil:
		buf.WriteString(" ")
		buf.WriteString(e.Rhs.Write())
	case e.Lhs != nil:
		buf.WriteString(" ")
		buf.WriteString(e.Lhs.Write())
	}
	buf.WriteString(")")
	return buf.String()
}

// writeCallee renders the callee so that it reads back as a callee: an
// identifier or a parenthesized expression.
func (e *FunctionCall) writeCallee() string {
	if e.Callee == nil {
		return e.Name
	}
	if _, ok := e.Callee.(*FunctionCall); ok {
		return e.Callee.Write()
	}
	return "(" + e.Callee.Write() + ")"
}

func (e *FunctionCall) Eval(env *Env) (*Value, error) {
	var fn *Value
	name := e.Name
	if e.Callee != nil {
		v, err := e.Callee.Eval(env)
		if err != nil {
			return nil, err
		}
		fn = v
		name = e.writeCallee()
	} else {
		v, ok := env.Get(e.Name)
		if !ok {
			return nil, &UnboundNameError{Source: e.Source, Name: e.Name}
		}
		fn = v
	}
	if fn.Type != VFun {
		if e.Lhs == nil && e.Rhs == nil {
			return fn, nil
		}
		return nil, &NotCallableError{Source: e.Source, Name: name, Actual: fn.TypeDesc()}
	}
	args := make([]*Value, 0, 2)
	for _, operand := range []Expr{e.Lhs, e.Rhs} {
		if operand == nil {
			continue
		}
		v, err := operand.Eval(env)
		if err != nil {
			return nil, err
		}
		args = append(args, v)
	}
	v, err := env.Apply(fn.Fun, args)
	if err != nil {
		return nil, locate(err, e.Source)
	}
	return v, nil
}
