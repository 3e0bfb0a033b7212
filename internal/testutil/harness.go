// Package testutil provides shared helpers for exercising the full app
// startup path against temporary manifest trees.
package testutil

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/horizonsvc/horizon/internal/app"
	"github.com/horizonsvc/horizon/internal/registry"
)

// SafeBuffer is a thread-safe buffer for capturing log output in tests.
type SafeBuffer struct {
	b  bytes.Buffer
	mu sync.Mutex
}

// Write implements the io.Writer interface for SafeBuffer.
func (b *SafeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.Write(p)
}

// String implements the fmt.Stringer interface for SafeBuffer.
func (b *SafeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.String()
}

// StaticModule binds a single identity to a fixed factory. It is the test
// stand-in for a compiled-in module package.
type StaticModule struct {
	Identity string
	Factory  registry.Factory
}

// Register implements registry.Module.
func (m *StaticModule) Register(b *registry.Binder) {
	b.Bind(m.Identity, m.Factory)
}

// HarnessResult holds the outcomes of an integration test run.
type HarnessResult struct {
	Output string
	Err    error
	App    *app.App
}

// RunInit writes the given manifest files into a temporary directory, builds
// the app with the provided modules, and runs eager initialization. Startup
// panics are converted into the result error.
func RunInit(t *testing.T, files map[string]string, modules ...registry.Module) *HarnessResult {
	t.Helper()
	return RunInitWithContext(context.Background(), t, files, modules...)
}

// RunInitWithContext is RunInit with a caller-provided context.
func RunInitWithContext(ctx context.Context, t *testing.T, files map[string]string, modules ...registry.Module) *HarnessResult {
	t.Helper()

	tmpDir := t.TempDir()
	for name, content := range files {
		filePath := filepath.Join(tmpDir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(filePath), 0o755))
		require.NoError(t, os.WriteFile(filePath, []byte(content), 0o644))
	}

	cfg, err := app.NewConfig(app.Config{
		ModulesPath: tmpDir,
		LogLevel:    "debug",
		LogFormat:   "text",
	})
	require.NoError(t, err)

	buffer := &SafeBuffer{}
	result := &HarnessResult{}

	func() {
		defer func() {
			if r := recover(); r != nil {
				if err, ok := r.(error); ok {
					result.Err = err
				} else {
					result.Err = fmt.Errorf("startup panic: %v", r)
				}
			}
		}()
		result.App = app.New(buffer, cfg, modules...)
		result.Err = result.App.Run(ctx)
	}()

	result.Output = buffer.String()
	return result
}
