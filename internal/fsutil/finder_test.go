package fsutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindFilesByExtension(t *testing.T) {
	tmpDir := t.TempDir()
	files := []string{
		"a.hcl",
		"nested/b.hcl",
		"nested/deeper/c.hcl",
		"nested/ignored.txt",
		".hidden/d.hcl",
	}
	for _, name := range files {
		path := filepath.Join(tmpDir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))
	}

	found, err := FindFilesByExtension(tmpDir, ".hcl")
	require.NoError(t, err)

	rel := make([]string, 0, len(found))
	for _, f := range found {
		r, err := filepath.Rel(tmpDir, f)
		require.NoError(t, err)
		rel = append(rel, r)
	}
	assert.ElementsMatch(t, []string{"a.hcl", "nested/b.hcl", "nested/deeper/c.hcl"}, rel)
}

func TestFindFilesByExtension_EmptyExtension(t *testing.T) {
	_, err := FindFilesByExtension(t.TempDir(), "")
	assert.Error(t, err)
}

func TestFindFilesByExtension_MissingRoot(t *testing.T) {
	_, err := FindFilesByExtension(filepath.Join(t.TempDir(), "nope"), ".hcl")
	assert.Error(t, err)
}
