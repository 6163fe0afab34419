// Copyright © 2024 The Brook authors

package profiler_test

import (
	"testing"

	"github.com/brooklang/brook/brook"
	"github.com/brooklang/brook/brookutil"
	"github.com/stretchr/testify/require"
)

const testProgram = `xs <- [1 2 3] map (plus 1);
sum xs`

func testEnv(t *testing.T, config ...brook.Config) *brook.Env {
	env, err := brookutil.NewEnv(config...)
	require.NoError(t, err)
	return env
}

// tracedEnv returns an environment with a function whose doc requests a
// labeled trace.
func tracedEnv(t *testing.T) *brook.Env {
	env := testEnv(t)
	addIt := brook.NewFunction("addIt", []*brook.TypeDesc{brook.NumType, brook.NumType}, brook.NumType,
		func(env *brook.Env, args []*brook.Value) (*brook.Value, error) {
			plus, _ := env.Get("plus")
			return env.Apply(plus.Fun, args)
		})
	addIt.Doc = "Adds two numbers. @trace{Add It}"
	env.Put("addIt", brook.Fun(addIt))
	return env
}

func spanNames(names []string) map[string]int {
	counts := make(map[string]int)
	for _, name := range names {
		counts[name]++
	}
	return counts
}
