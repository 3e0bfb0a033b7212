package app

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/horizonsvc/horizon/internal/registry"
)

// TestRunWithCoreModules runs the real startup path against the repository's
// built-in module manifests.
func TestRunWithCoreModules(t *testing.T) {
	cfg, err := NewConfig(Config{
		ModulesPath: filepath.Join("..", "..", "modules"),
		LogLevel:    "debug",
		LogFormat:   "text",
	})
	require.NoError(t, err)

	var out bytes.Buffer
	a := New(&out, cfg)
	require.NoError(t, a.Run(context.Background()))

	reg := a.Registry()
	require.Len(t, reg.Descriptors(), 3)

	// env is the only eager built-in.
	initialized := reg.InitializedDescriptors()
	require.Len(t, initialized, 1)
	assert.Equal(t, "horizon.modules.env.Service", initialized[0].Identity)
	assert.Empty(t, reg.FailedDescriptors())

	// Everything reaches the shared root interface.
	instances, err := reg.All(context.Background(), "horizon.service.Service")
	require.NoError(t, err)
	assert.Len(t, instances, 3)

	assert.Contains(t, out.String(), "Module initialization report:")
}

func TestNewConfig_RequiresModulesPath(t *testing.T) {
	_, err := NewConfig(Config{})
	assert.Error(t, err)
}

func TestAppliesWaitTimeoutOption(t *testing.T) {
	cfg, err := NewConfig(Config{
		ModulesPath: filepath.Join("..", "..", "modules"),
		WaitTimeout: registry.DefaultWaitTimeout / 2,
	})
	require.NoError(t, err)

	var out bytes.Buffer
	a := New(&out, cfg)
	require.NotNil(t, a.Registry())
}
