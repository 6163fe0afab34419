// Copyright © 2024 The Brook authors

package brook

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/spf13/afero"
)

// Reader abstracts a parser implementation so that it may be implemented in a
// separate package.
type Reader interface {
	// Read the contents of r and return the ordered sequence of top-level
	// expressions that it contains.
	Read(name string, r io.Reader) ([]Expr, error)
}

// Env is the context of a single run.  It owns the run's symbol table, which
// is populated from the builtin table when the Env is created.
type Env struct {
	Runtime *Runtime
	scope   map[string]*Value
}

// NewEnv returns an environment with a fresh symbol table and a standard
// runtime modified by config.
func NewEnv(config ...Config) (*Env, error) {
	return NewEnvRuntime(StandardRuntime(), config...)
}

// NewEnvRuntime returns an environment with a fresh symbol table using rt.
func NewEnvRuntime(rt *Runtime, config ...Config) (*Env, error) {
	builtins := builtinTable()
	env := &Env{
		Runtime: rt,
		scope:   make(map[string]*Value, len(builtins)),
	}
	for name, v := range builtins {
		env.scope[name] = v
	}
	for _, fn := range config {
		err := fn(env)
		if err != nil {
			return nil, err
		}
	}
	return env, nil
}

// Get returns the value bound to name.
func (env *Env) Get(name string) (*Value, bool) {
	v, ok := env.scope[name]
	return v, ok
}

// Put binds v to name, replacing any existing binding.  Builtins may be
// shadowed but the builtin table itself is never modified.
func (env *Env) Put(name string, v *Value) {
	env.scope[name] = v
}

// Names returns the sorted names bound in env.
func (env *Env) Names() []string {
	names := make([]string, 0, len(env.scope))
	for name := range env.scope {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Eval evaluates expr in env.
func (env *Env) Eval(expr Expr) (*Value, error) {
	return expr.Eval(env)
}

// EvalProgram evaluates each expression of a program in order and returns the
// value of the last one.  Evaluation stops at the first error.
func (env *Env) EvalProgram(exprs []Expr) (*Value, error) {
	if len(exprs) == 0 {
		return nil, &ParseError{Msg: "program contains no expressions"}
	}
	var v *Value
	var err error
	for _, expr := range exprs {
		v, err = expr.Eval(env)
		if err != nil {
			return nil, err
		}
	}
	return v, nil
}

// Load reads expressions from r using the runtime's Reader and evaluates
// them.
func (env *Env) Load(name string, r io.Reader) (*Value, error) {
	if env.Runtime.Reader == nil {
		return nil, errors.New("no reader for environment runtime")
	}
	exprs, err := env.Runtime.Reader.Read(name, r)
	if err != nil {
		return nil, err
	}
	return env.EvalProgram(exprs)
}

// LoadString evaluates the program in source.
func (env *Env) LoadString(name, source string) (*Value, error) {
	return env.Load(name, strings.NewReader(source))
}

// LoadFile evaluates the program stored at path on the runtime filesystem.
func (env *Env) LoadFile(path string) (*Value, error) {
	b, err := afero.ReadFile(env.Runtime.FS, path)
	if err != nil {
		return nil, fmt.Errorf("unable to read source file: %w", err)
	}
	return env.Load(path, bytes.NewReader(b))
}
