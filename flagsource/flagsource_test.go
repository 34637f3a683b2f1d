package flagsource

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatic(t *testing.T) {
	t.Parallel()

	p := Static("new-compare")
	got, err := p(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "new-compare", got)
}

func TestEnv(t *testing.T) {
	t.Setenv("DARKLAUNCH_MODE", "old-compare")

	p := Env("DARKLAUNCH_MODE")
	got, err := p(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "old-compare", got)

	// Read per call, not cached.
	t.Setenv("DARKLAUNCH_MODE", "new")
	got, err = p(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "new", got)
}

func TestEnvOr(t *testing.T) {
	t.Setenv("DARKLAUNCH_MODE", "")

	p := EnvOr("DARKLAUNCH_MODE", "old")
	got, err := p(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "old", got)

	t.Setenv("DARKLAUNCH_MODE", "new")
	got, err = p(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "new", got)
}
