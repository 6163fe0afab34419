// Copyright © 2024 The Brook authors

// Package brooktest runs table driven tests of brook programs.
package brooktest

import (
	"errors"
	"strings"
	"testing"

	"github.com/brooklang/brook/brook"
	"github.com/brooklang/brook/parser"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
)

// TestSequence is a sequence of brook statements which are evaluated
// sequentially by a single brook.Env.
//
// Result is the printed form of the statement's value.  When evaluation
// fails Result is the condition of the error, e.g. "unbound-name".
type TestSequence []struct {
	Expr   string // a brook statement
	Result string // the evaluated result
}

// TestSuite is a set of named TestSequences
type TestSuite []struct {
	Name string
	TestSequence
}

// Options configure the environments created by RunTestSuite.
type Options struct {
	// FS is the filesystem available to readFile.  When FS is nil an empty
	// in-memory filesystem is used.
	FS afero.Fs
}

// RunTestSuite runs each TestSequence in tests on isolated brook.Envs.
func RunTestSuite(t *testing.T, tests TestSuite) {
	RunTestSuiteOptions(t, tests, Options{})
}

// RunTestSuiteOptions is like RunTestSuite but configures environments using
// opts.
func RunTestSuiteOptions(t *testing.T, tests TestSuite, opts Options) {
	fs := opts.FS
	if fs == nil {
		fs = afero.NewMemMapFs()
	}
	for i, test := range tests {
		t.Run(test.Name, func(t *testing.T) {
			logger := NewLogger(t)
			defer logger.Flush()
			env, err := brook.NewEnv(
				brook.WithReader(parser.NewReader()),
				brook.WithStderr(logger),
				brook.WithLogLevel(logrus.DebugLevel),
				brook.WithFS(fs),
			)
			if err != nil {
				t.Fatalf("test %d %q: %v", i, test.Name, err)
			}
			for j, expr := range test.TestSequence {
				exprs, err := env.Runtime.Reader.Read("test", strings.NewReader(expr.Expr))
				if err != nil {
					if result := Result(nil, err); result != expr.Result {
						t.Errorf("test %d %q: expr %d: parse error: %v", i, test.Name, j, err)
					}
					continue
				}
				if len(exprs) != 1 {
					t.Errorf("test %d %q: expr %d: expected one statement (got %d)", i, test.Name, j, len(exprs))
					continue
				}
				v, err := env.Eval(exprs[0])
				result := Result(v, err)
				if result != expr.Result {
					t.Errorf("test %d %q: expr %d: expected result %s (got %s)", i, test.Name, j, expr.Result, result)
					if err != nil {
						t.Log(err)
					}
				}
			}
		})
	}
}

// Result returns the printed form of an evaluation outcome as used by
// TestSequence.
func Result(v *brook.Value, err error) string {
	if err != nil {
		var berr brook.Error
		if errors.As(err, &berr) {
			return berr.Condition()
		}
		return err.Error()
	}
	return v.String()
}

// RunBenchmark runs a standard benchmark that executes statements parsed from
// source.
func RunBenchmark(b *testing.B, source string) {
	b.StopTimer()
	p := parser.NewReader()
	exprs, err := p.Read("benchmark", strings.NewReader(source))
	if err != nil {
		b.Fatalf("parse error: %v", err)
	}
	for i := 0; i < b.N; i++ {
		env, err := brook.NewEnv(brook.WithReader(p))
		if err != nil {
			b.Fatal(err)
		}
		b.StartTimer()
		_, err = env.EvalProgram(exprs)
		b.StopTimer()
		if err != nil {
			b.Fatal(err)
		}
	}
}
