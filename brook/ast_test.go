// Copyright © 2024 The Brook authors

package brook

import (
	"errors"
	"testing"

	"github.com/brooklang/brook/parser/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func num(x float64) Expr { return &Literal{Value: Num(x)} }

func str(s string) Expr { return &Literal{Value: String(s)} }

func ident(name string) *FunctionCall { return &FunctionCall{Name: name} }

func TestExprWrite(t *testing.T) {
	tests := []struct {
		expr Expr
		text string
	}{
		{num(1.5), "1.5"},
		{str(`a \"b\"`), `"a \"b\""`},
		{&ArrayExpr{}, "[]"},
		{&ArrayExpr{Members: []Expr{num(1), str("x")}}, `[1 "x"]`},
		{ident("foo"), "(foo)"},
		{&FunctionCall{Name: "sum", Rhs: num(1)}, "(sum 1)"},
		{&FunctionCall{Name: "sum", Lhs: num(1)}, "(sum 1)"},
		{&FunctionCall{Lhs: num(1), Name: "plus", Rhs: num(2)}, "(1 plus 2)"},
		{&FunctionCall{Callee: &FunctionCall{Name: "plus", Rhs: num(1)}, Rhs: num(2)}, "((plus 1) 2)"},
		{&FunctionCall{Callee: num(3)}, "((3))"},
		{&Assignment{Name: "x", Expr: num(1)}, "x <- 1"},
	}
	for i, test := range tests {
		assert.Equal(t, test.text, test.expr.Write(), "test %d", i)
	}
}

func TestExprEval(t *testing.T) {
	env := testEnv(t)

	v, err := (&ArrayExpr{Members: []Expr{
		&FunctionCall{Lhs: num(1), Name: "plus", Rhs: num(2)},
		str("a"),
	}}).Eval(env)
	require.NoError(t, err)
	assert.Equal(t, `[3 "a"]`, v.String())

	v, err = (&Assignment{Name: "x", Expr: num(4)}).Eval(env)
	require.NoError(t, err)
	assert.Equal(t, "4", v.String())
	v, err = ident("x").Eval(env)
	require.NoError(t, err)
	assert.Equal(t, "4", v.String())

	// a callee expression
	v, err = (&FunctionCall{
		Callee: &FunctionCall{Name: "plus", Rhs: num(1)},
		Rhs:    num(2),
	}).Eval(env)
	require.NoError(t, err)
	assert.Equal(t, "3", v.String())
}

func TestExprEvalNullary(t *testing.T) {
	env := testEnv(t)
	calls := 0
	env.Put("answer", Fun(NewFunction("answer", nil, NumType, func(env *Env, args []*Value) (*Value, error) {
		calls++
		return Num(42), nil
	})))
	env.Put("seven", Num(7))

	// a zero-arity function is invoked
	v, err := ident("answer").Eval(env)
	require.NoError(t, err)
	assert.Equal(t, "42", v.String())
	assert.Equal(t, 1, calls)

	// a bound non-function is returned directly
	v, err = ident("seven").Eval(env)
	require.NoError(t, err)
	assert.Equal(t, "7", v.String())

	// a function of nonzero arity is returned as a value
	v, err = ident("plus").Eval(env)
	require.NoError(t, err)
	assert.Equal(t, "plus(num num)", v.String())

	// builtin constants
	v, err = ident("true").Eval(env)
	require.NoError(t, err)
	assert.Equal(t, "true", v.String())
}

func TestExprEvalErrors(t *testing.T) {
	env := testEnv(t)
	env.Put("seven", Num(7))
	loc := &token.Location{File: "test", Pos: 0, Line: 1, Col: 1}

	_, err := (&FunctionCall{Name: "foo", Rhs: num(1), Source: loc}).Eval(env)
	var unbound *UnboundNameError
	require.True(t, errors.As(err, &unbound))
	assert.Equal(t, "foo", unbound.Name)
	assert.Equal(t, "test:1:1: unbound-name: no such function or value foo", err.Error())

	_, err = (&FunctionCall{Name: "seven", Rhs: num(1), Source: loc}).Eval(env)
	var notCallable *NotCallableError
	require.True(t, errors.As(err, &notCallable))
	assert.Equal(t, CondNotCallable, notCallable.Condition())

	_, err = (&FunctionCall{Callee: num(3), Rhs: num(1)}).Eval(env)
	require.True(t, errors.As(err, &notCallable))
	assert.Equal(t, "(3)", notCallable.Name)

	// runtime errors raised by Apply take the location of the call
	_, err = (&FunctionCall{Lhs: str("a"), Name: "plus", Rhs: num(1), Source: loc}).Eval(env)
	var mismatch *TypeMismatchError
	require.True(t, errors.As(err, &mismatch))
	assert.Equal(t, loc, mismatch.Location())

	// errors in operands propagate unchanged
	inner := &token.Location{File: "test", Pos: 5, Line: 1, Col: 6}
	_, err = (&FunctionCall{
		Name: "sum",
		Rhs: &FunctionCall{
			Name:   "length",
			Rhs:    num(3),
			Source: inner,
		},
		Source: loc,
	}).Eval(env)
	var berr *BuiltinError
	require.True(t, errors.As(err, &berr))
	assert.Equal(t, inner, berr.Location())
}

func TestEvalProgram(t *testing.T) {
	env := testEnv(t)
	_, err := env.EvalProgram(nil)
	var perr *ParseError
	assert.True(t, errors.As(err, &perr))

	v, err := env.EvalProgram([]Expr{
		&Assignment{Name: "x", Expr: num(2)},
		&FunctionCall{Lhs: ident("x"), Name: "times", Rhs: num(5)},
	})
	require.NoError(t, err)
	assert.Equal(t, "10", v.String())

	_, err = env.Load("test", nil)
	assert.Error(t, err)
}
