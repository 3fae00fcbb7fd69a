package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestCopyIn(t *testing.T) {
	srcDir := t.TempDir()
	source := filepath.Join(srcDir, "dune.jpg")
	writeFile(t, source, "jpeg bytes")

	store := NewPosterStore(filepath.Join(t.TempDir(), "posters"))
	destPath, err := store.CopyIn(source)
	require.NoError(t, err)
	require.Equal(t, filepath.Join(store.Dir(), "dune.jpg"), destPath)

	copied, err := os.ReadFile(destPath)
	require.NoError(t, err)
	require.Equal(t, "jpeg bytes", string(copied))
}

func TestCopyInOverwritesSameFilename(t *testing.T) {
	srcDir := t.TempDir()
	first := filepath.Join(srcDir, "dune.jpg")
	writeFile(t, first, "first")

	otherDir := t.TempDir()
	second := filepath.Join(otherDir, "dune.jpg")
	writeFile(t, second, "second")

	store := NewPosterStore(filepath.Join(t.TempDir(), "posters"))
	_, err := store.CopyIn(first)
	require.NoError(t, err)
	destPath, err := store.CopyIn(second)
	require.NoError(t, err)

	copied, err := os.ReadFile(destPath)
	require.NoError(t, err)
	require.Equal(t, "second", string(copied))
}

func TestCopyInEmptySource(t *testing.T) {
	store := NewPosterStore(filepath.Join(t.TempDir(), "posters"))
	destPath, err := store.CopyIn("")
	require.NoError(t, err)
	require.Empty(t, destPath)

	_, statErr := os.Stat(store.Dir())
	require.True(t, os.IsNotExist(statErr), "empty source must not create the directory")
}

func TestCopyInMissingSource(t *testing.T) {
	store := NewPosterStore(filepath.Join(t.TempDir(), "posters"))
	_, err := store.CopyIn(filepath.Join(t.TempDir(), "missing.jpg"))
	require.Error(t, err)
}
