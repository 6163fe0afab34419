// Copyright © 2024 The Brook authors

// Package brookutil provides the entry points used to run and format brook
// programs.
package brookutil

import (
	"strings"

	"github.com/brooklang/brook/brook"
	"github.com/brooklang/brook/formatter"
	"github.com/brooklang/brook/parser"
)

// NewEnv returns an environment with a fresh symbol table that reads source
// with the standard parser.  Additional configuration is applied in order.
func NewEnv(config ...brook.Config) (*brook.Env, error) {
	config = append([]brook.Config{brook.WithReader(parser.NewReader())}, config...)
	return brook.NewEnv(config...)
}

// Execute lexes, parses and evaluates source against a fresh environment and
// returns the value of the last top-level expression.  Evaluation stops at
// the first error and no partial result is returned.
func Execute(source string, config ...brook.Config) (*brook.Value, error) {
	return ExecuteFile("", source, config...)
}

// ExecuteFile is like Execute but attaches name to source locations.
func ExecuteFile(name string, source string, config ...brook.Config) (*brook.Value, error) {
	env, err := NewEnv(config...)
	if err != nil {
		return nil, err
	}
	return env.Load(name, strings.NewReader(source))
}

// Format returns the canonical rendering of source: each top-level
// expression followed by a semicolon and a newline.
func Format(source string) (string, error) {
	b, err := formatter.Format([]byte(source))
	if err != nil {
		return "", err
	}
	return string(b), nil
}
