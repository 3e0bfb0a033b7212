package cli

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	t.Run("long flag", func(t *testing.T) {
		var out bytes.Buffer
		cfg, exit, err := Parse([]string{"-modules-path", "manifests"}, &out)
		require.NoError(t, err)
		assert.False(t, exit)
		assert.Equal(t, "manifests", cfg.ModulesPath)
		assert.Equal(t, "text", cfg.LogFormat)
		assert.Equal(t, "info", cfg.LogLevel)
	})

	t.Run("shorthand flag", func(t *testing.T) {
		var out bytes.Buffer
		cfg, _, err := Parse([]string{"-m", "manifests"}, &out)
		require.NoError(t, err)
		assert.Equal(t, "manifests", cfg.ModulesPath)
	})

	t.Run("positional argument", func(t *testing.T) {
		var out bytes.Buffer
		cfg, _, err := Parse([]string{"-log-level", "debug", "manifests"}, &out)
		require.NoError(t, err)
		assert.Equal(t, "manifests", cfg.ModulesPath)
		assert.Equal(t, "debug", cfg.LogLevel)
	})

	t.Run("timeouts", func(t *testing.T) {
		var out bytes.Buffer
		cfg, _, err := Parse([]string{"-init-timeout", "30s", "-wait-timeout", "2s", "manifests"}, &out)
		require.NoError(t, err)
		assert.Equal(t, 30*time.Second, cfg.InitTimeout)
		assert.Equal(t, 2*time.Second, cfg.WaitTimeout)
	})

	t.Run("missing path", func(t *testing.T) {
		var out bytes.Buffer
		_, _, err := Parse(nil, &out)
		var exitErr *ExitError
		require.ErrorAs(t, err, &exitErr)
		assert.Equal(t, 2, exitErr.Code)
	})

	t.Run("help exits cleanly", func(t *testing.T) {
		var out bytes.Buffer
		_, exit, err := Parse([]string{"-h"}, &out)
		require.NoError(t, err)
		assert.True(t, exit)
		assert.Contains(t, out.String(), "Usage:")
	})
}
