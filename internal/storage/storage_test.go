package storage_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/monreader/api/internal/storage"
)

func TestEnsureDirsIdempotent(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	store := storage.NewPaths(filepath.Join(root, "uploads"), filepath.Join(root, "audio"))

	require.NoError(t, store.EnsureDirs())
	require.NoError(t, store.EnsureDirs())

	assert.DirExists(t, store.UploadDir)
	assert.DirExists(t, store.AudioDir)
}

func TestSaveUploadNaming(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	store := storage.NewPaths(filepath.Join(root, "uploads"), filepath.Join(root, "audio"))
	require.NoError(t, store.EnsureDirs())

	path, err := store.SaveUpload("abc-123", ".png", strings.NewReader("image-data"))
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(store.UploadDir, "abc-123.png"), path)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "image-data", string(data))

	assert.Equal(t, filepath.Join(store.AudioDir, "abc-123.mp3"), store.AudioPath("abc-123"))
}

func TestRemoveMissingFileIsNotAnError(t *testing.T) {
	t.Parallel()

	store := storage.NewPaths(t.TempDir(), t.TempDir())
	assert.NoError(t, store.Remove(filepath.Join(store.UploadDir, "never-existed.jpg")))
}

func TestCleanupRemovesRegisteredPaths(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	a := filepath.Join(dir, "a.jpg")
	b := filepath.Join(dir, "b.mp3")
	require.NoError(t, os.WriteFile(a, []byte("a"), 0o644))
	require.NoError(t, os.WriteFile(b, []byte("b"), 0o644))

	var cleanup storage.Cleanup
	cleanup.Add(a)
	cleanup.Add(b)
	cleanup.Run()

	assert.NoFileExists(t, a)
	assert.NoFileExists(t, b)
}

func TestCleanupForgetSparesPath(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	a := filepath.Join(dir, "a.jpg")
	b := filepath.Join(dir, "b.mp3")
	require.NoError(t, os.WriteFile(a, []byte("a"), 0o644))
	require.NoError(t, os.WriteFile(b, []byte("b"), 0o644))

	var cleanup storage.Cleanup
	cleanup.Add(a)
	cleanup.Add(b)
	cleanup.Forget(b)
	cleanup.Run()

	assert.NoFileExists(t, a)
	assert.FileExists(t, b)
}

func TestCleanupSwallowsMissingFiles(t *testing.T) {
	t.Parallel()

	var cleanup storage.Cleanup
	cleanup.Add(filepath.Join(t.TempDir(), "gone.jpg"))
	assert.NotPanics(t, cleanup.Run)
}
