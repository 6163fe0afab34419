// Copyright © 2024 The Brook authors

package cmd

import (
	"bytes"
	"strings"
	"testing"

	"github.com/brooklang/brook/brook"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocCommand_DefaultFlags(t *testing.T) {
	cmd := DocCommand()
	assert.Equal(t, "doc [NAME]", cmd.Use)
}

func TestDocCommand_WithEnvConfig(t *testing.T) {
	double := brook.NewFunction("double", []*brook.TypeDesc{brook.NumType}, brook.NumType,
		func(env *brook.Env, args []*brook.Value) (*brook.Value, error) {
			return brook.Num(2 * args[0].Num), nil
		})
	double.Doc = "Returns twice its operand."
	cmd := DocCommand(WithEnvConfig(func(env *brook.Env) error {
		env.Put("double", brook.Fun(double))
		return nil
	}))

	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"double"})
	require.NoError(t, cmd.Execute())
	assert.Equal(t, "double(num): num\n  Returns twice its operand.\n", out.String())
}

func TestDocCommand_Guide(t *testing.T) {
	cmd := DocCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--guide"})
	require.NoError(t, cmd.Execute())
	assert.True(t, strings.HasPrefix(out.String(), "# Brook language guide\n"))
	assert.Contains(t, out.String(), "## Partial application")
}
