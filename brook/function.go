// Copyright © 2024 The Brook authors

package brook

import (
	"bytes"

	"github.com/sirupsen/logrus"
)

// MaxArity is the largest number of operands a function may declare.
const MaxArity = 2

// Builtin is the implementation of a function.  A Builtin is always called
// with exactly as many arguments as its function declares.
type Builtin func(env *Env, args []*Value) (*Value, error)

// Function is a callable brook value with a structural signature.
type Function struct {
	Name    string
	Params  []*TypeDesc
	Returns *TypeDesc
	Doc     string

	impl Builtin
	// curried is true for continuations produced by partial application
	curried bool
	// layers counts the requirement groups wrapped around Returns
	layers int
}

// NewFunction returns a function with the given signature.  NewFunction
// panics if more than MaxArity params are given.
func NewFunction(name string, params []*TypeDesc, returns *TypeDesc, impl Builtin) *Function {
	if len(params) > MaxArity {
		panic("brook: function " + name + " declares too many parameters")
	}
	return &Function{
		Name:    name,
		Params:  params,
		Returns: returns,
		impl:    impl,
	}
}

// Arity returns the number of operands fn requires before its implementation
// executes.
func (fn *Function) Arity() int {
	return len(fn.Params)
}

// Type returns the structural type of fn.
func (fn *Function) Type() *TypeDesc {
	return FuncOf(fn.Returns, fn.Params...)
}

// Curried reports whether fn is a continuation produced by partial
// application.
func (fn *Function) Curried() bool {
	return fn.curried
}

func (fn *Function) String() string {
	var buf bytes.Buffer
	buf.WriteString(fn.Name)
	buf.WriteString("(")
	for i, p := range fn.Params {
		if i > 0 {
			buf.WriteString(" ")
		}
		buf.WriteString(p.String())
	}
	buf.WriteString(")")
	return buf.String()
}

// slot is an argument accepted by Apply.  Exactly one of value and partial is
// set.  A partial is a function argument whose eventual result satisfies the
// parameter once the partial itself is saturated.
type slot struct {
	value   *Value
	partial *Function
}

// Apply calls fn with args.  Arguments are checked structurally against fn's
// parameters.  When fewer arguments than fn's arity are given, or when some
// arguments are functions that must first be saturated to produce a suitable
// value, Apply returns a curried continuation instead of calling fn.
func (env *Env) Apply(fn *Function, args []*Value) (*Value, error) {
	if len(args) > fn.Arity() {
		return nil, &ArityError{Fun: fn.String(), Arity: fn.Arity(), Got: len(args)}
	}
	if fn.Arity() == 0 {
		return env.invoke(fn, nil)
	}
	if len(args) == 0 {
		return Fun(fn), nil
	}
	slots := make([]slot, 0, len(args))
	pending := false
	for i, arg := range args {
		s, err := env.classify(fn, i, arg)
		if err != nil {
			return nil, err
		}
		if s.partial != nil {
			pending = true
		}
		slots = append(slots, s)
	}
	if len(slots) == fn.Arity() && !pending {
		vals := make([]*Value, len(slots))
		for i := range slots {
			vals[i] = slots[i].value
		}
		return env.invoke(fn, vals)
	}
	cont := env.continuation(fn, slots)
	return Fun(cont), nil
}

func (env *Env) classify(fn *Function, i int, arg *Value) (slot, error) {
	param := fn.Params[i]
	actual := arg.TypeDesc()
	loose := arg.Type == VFun && arg.Fun.layers > 0
	if checkType(param, actual, loose) {
		return slot{value: arg}, nil
	}
	if arg.Type == VFun {
		if param.Kind == KFunc && param.Equal(actual) {
			return slot{value: arg}, nil
		}
		if eventuallyReturns(param, arg.Fun.Returns) {
			if arg.Fun.Arity() == 0 {
				v, err := env.invoke(arg.Fun, nil)
				if err != nil {
					return slot{}, err
				}
				return slot{value: v}, nil
			}
			env.Runtime.Logger.WithFields(logrus.Fields{
				"function": fn.Name,
				"position": i,
				"partial":  arg.Fun.String(),
			}).Debug("composing partial application")
			return slot{partial: arg.Fun}, nil
		}
	}
	return slot{}, &TypeMismatchError{
		Fun:      fn.String(),
		Position: i,
		Expected: param,
		Actual:   actual,
		Arg:      arg,
	}
}

// continuation constructs a function awaiting the requirements fn has left
// after accepting slots.  The requirement groups are the parameters of each
// pending partial, in order, followed by fn's unsupplied parameters.  The
// continuation declares the leading groups which fit within MaxArity; each
// remaining group adds a function layer around fn's return type.
func (env *Env) continuation(fn *Function, slots []slot) *Function {
	var groups [][]*TypeDesc
	for _, s := range slots {
		if s.partial != nil {
			groups = append(groups, s.partial.Params)
		}
	}
	if rest := fn.Params[len(slots):]; len(rest) > 0 {
		groups = append(groups, rest)
	}
	var params []*TypeDesc
	covered := 0
	for covered < len(groups) && len(params)+len(groups[covered]) <= MaxArity {
		params = append(params, groups[covered]...)
		covered++
	}
	returns := fn.Returns
	for i := len(groups) - 1; i >= covered; i-- {
		returns = FuncOf(returns, groups[i]...)
	}

	snapshot := make([]slot, len(slots))
	copy(snapshot, slots)
	impl := func(env *Env, args []*Value) (*Value, error) {
		combined := make([]*Value, 0, fn.Arity())
		k := 0
		for _, s := range snapshot {
			if s.partial == nil {
				combined = append(combined, s.value)
				continue
			}
			n := s.partial.Arity()
			if k+n > len(args) {
				// Not covered by this layer.  Apply composes it again.
				combined = append(combined, Fun(s.partial))
				continue
			}
			v, err := env.Apply(s.partial, args[k:k+n])
			if err != nil {
				return nil, err
			}
			combined = append(combined, v)
			k += n
		}
		combined = append(combined, args[k:]...)
		return env.Apply(fn, combined)
	}

	env.Runtime.Logger.WithFields(logrus.Fields{
		"function": fn.Name,
		"groups":   len(groups),
		"arity":    len(params),
	}).Debug("curried continuation")

	cont := NewFunction(fn.Name+"_partial", params, returns, impl)
	cont.curried = true
	cont.layers = len(groups) - covered
	return cont
}

func (env *Env) invoke(fn *Function, args []*Value) (*Value, error) {
	if p := env.Runtime.Profiler; p != nil && p.IsEnabled() {
		defer p.Start(fn)()
	}
	if env.Runtime.Logger.IsLevelEnabled(logrus.DebugLevel) {
		env.Runtime.Logger.WithFields(logrus.Fields{
			"function": fn.Name,
			"args":     len(args),
		}).Debug("invoke")
	}
	return fn.impl(env, args)
}
