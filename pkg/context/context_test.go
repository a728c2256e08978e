package context

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitGreeterContextFlagsOverride(t *testing.T) {
	t.Cleanup(func() { zerolog.SetGlobalLevel(zerolog.InfoLevel) })

	path := filepath.Join(t.TempDir(), "greeter.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server:\n  variant: ratan\napp:\n  debug: false\n"), 0644))

	ctx, err := InitGreeterContext(context.Background(), GlobalFlags{ConfigPath: path, Quiet: true})
	require.NoError(t, err)

	assert.True(t, ctx.Config.App.Quiet)
	assert.Equal(t, "ratan", ctx.Config.Server.Variant)
	assert.Equal(t, path, ctx.ConfigFileUsed())
	assert.NotNil(t, ctx.Logger)
}

func TestInitGreeterContextInvalidConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "greeter.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server:\n  variant: express\n"), 0644))

	_, err := InitGreeterContext(context.Background(), GlobalFlags{ConfigPath: path, Quiet: true})
	assert.Error(t, err)
}
