// Copyright © 2024 The Brook authors

package profiler_test

import (
	"strings"
	"testing"

	"github.com/brooklang/brook/brook"
	"github.com/brooklang/brook/brook/x/profiler"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCallgrind(t *testing.T) {
	fs := afero.NewMemMapFs()
	env := testEnv(t, brook.WithFS(fs))
	p := profiler.NewCallgrindProfiler(env.Runtime)
	assert.Error(t, p.Enable(), "no output set")
	require.NoError(t, p.SetFile("callgrind.out"))
	require.NoError(t, p.Enable())
	assert.Error(t, p.SetFile("other.out"))

	_, err := env.LoadString("test", testProgram)
	require.NoError(t, err)
	require.NoError(t, p.Complete())

	b, err := afero.ReadFile(fs, "callgrind.out")
	require.NoError(t, err)
	out := string(b)
	assert.True(t, strings.HasPrefix(out, "version: 1\ncreator: brook "+brook.BrookVersion))
	assert.Contains(t, out, " ENTRYPOINT\n")
	assert.Contains(t, out, " map\n")
	assert.Contains(t, out, " sum\n")
	assert.Contains(t, out, "calls=1 0\n")
	assert.Contains(t, out, "summary: ")
}
