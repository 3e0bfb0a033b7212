package manifest

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/horizonsvc/horizon/internal/ctxlog"
	"github.com/horizonsvc/horizon/internal/registry"
)

func quietCtx() context.Context {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return ctxlog.WithLogger(context.Background(), logger)
}

func writeFiles(t *testing.T, files map[string]string) string {
	t.Helper()
	tmpDir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(tmpDir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	return tmpDir
}

func TestLoad_FullModuleBlock(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"push/manifest.hcl": `
			module "com.acme.push.FcmPusher" {
			  description = "FCM push transport"
			  category    = "push"
			  group       = "vendor"
			  lazy        = false
			  priority    = 10
			  implements  = ["com.acme.push.Pusher"]
			}

			interface "com.acme.push.Pusher" {
			  extends = ["com.acme.core.Service"]
			}
		`,
	})

	model, err := Load(quietCtx(), dir)
	require.NoError(t, err)
	require.Len(t, model.Modules, 1)

	mod := model.Modules[0]
	assert.Equal(t, "com.acme.push.FcmPusher", mod.Identity)
	assert.Equal(t, "FCM push transport", mod.Description)
	assert.Equal(t, "push", mod.Category)
	assert.Equal(t, "vendor", mod.Group)
	assert.False(t, mod.Lazy)
	assert.Equal(t, int64(10), mod.Priority)
	assert.Equal(t, []string{"com.acme.push.Pusher"}, mod.Implements)

	assert.Equal(t, []string{"com.acme.core.Service"}, model.Parents("com.acme.push.Pusher"))
	assert.Nil(t, model.Parents("com.acme.core.Service"))
}

func TestLoad_Defaults(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"bare.hcl": `
			module "com.acme.Bare" {}
		`,
	})

	model, err := Load(quietCtx(), dir)
	require.NoError(t, err)
	require.Len(t, model.Modules, 1)

	mod := model.Modules[0]
	assert.True(t, mod.Lazy, "lazy defaults to true")
	assert.Zero(t, mod.Priority)
	assert.Empty(t, mod.Implements)
	assert.Empty(t, mod.Category)
}

func TestLoad_SingleFilePath(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"one.hcl": `module "com.acme.One" {}`,
	})

	model, err := Load(quietCtx(), filepath.Join(dir, "one.hcl"))
	require.NoError(t, err)
	assert.Len(t, model.Modules, 1)
}

func TestLoad_SeedsPreserveOrder(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"a.hcl": `
			module "com.acme.First" { priority = 1 }
			module "com.acme.Second" { priority = 2 }
		`,
	})

	model, err := Load(quietCtx(), dir)
	require.NoError(t, err)

	seeds := model.Seeds()
	require.Len(t, seeds, 2)
	assert.Equal(t, "com.acme.First", seeds[0].Identity)
	assert.Equal(t, "com.acme.Second", seeds[1].Identity)
	assert.Equal(t, int64(2), seeds[1].Priority)
}

func TestLoad_RejectsWrongAttributeType(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"bad.hcl": `
			module "com.acme.Bad" {
			  lazy = "yes"
			}
		`,
	})

	_, err := Load(quietCtx(), dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Invalid attribute type")
}

func TestLoad_RejectsDuplicateModuleAcrossFiles(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"a.hcl": `module "com.acme.Dup" {}`,
		"b.hcl": `module "com.acme.Dup" {}`,
	})

	_, err := Load(quietCtx(), dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "declared in both")
}

func TestLoad_RejectsUnknownAttribute(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"bad.hcl": `
			module "com.acme.Bad" {
			  nonsense = true
			}
		`,
	})

	_, err := Load(quietCtx(), dir)
	require.Error(t, err)
}

func TestLoad_MissingPath(t *testing.T) {
	_, err := Load(quietCtx(), filepath.Join(t.TempDir(), "does-not-exist"))
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"m.hcl": `
			module "com.acme.Bound" {}
			module "com.acme.Unbound" {}
		`,
	})
	model, err := Load(quietCtx(), dir)
	require.NoError(t, err)

	t.Run("reports both parity directions", func(t *testing.T) {
		binder := registry.NewBinder()
		binder.Bind("com.acme.Bound", func(context.Context) (any, error) { return struct{}{}, nil })
		binder.Bind("com.acme.Stray", func(context.Context) (any, error) { return struct{}{}, nil })

		err := Validate(quietCtx(), model, binder)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "com.acme.Unbound")
		assert.Contains(t, err.Error(), "com.acme.Stray")
	})

	t.Run("passes when identities match", func(t *testing.T) {
		binder := registry.NewBinder()
		binder.Bind("com.acme.Bound", func(context.Context) (any, error) { return struct{}{}, nil })
		binder.Bind("com.acme.Unbound", func(context.Context) (any, error) { return struct{}{}, nil })

		require.NoError(t, Validate(quietCtx(), model, binder))
	})
}
