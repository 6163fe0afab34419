// Copyright © 2024 The Brook authors

package profiler_test

import (
	"context"
	"testing"

	"github.com/brooklang/brook/brook/x/profiler"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPprofAnnotator(t *testing.T) {
	env := testEnv(t)
	ppa := profiler.NewPprofAnnotator(env.Runtime, context.Background())
	require.NoError(t, ppa.Enable())
	v, err := env.LoadString("test", `sum ((range 0 200) map ((S plus) (times 3)))`)
	require.NoError(t, err)
	assert.Equal(t, "79600", v.String())
	assert.NoError(t, ppa.Complete())
}
