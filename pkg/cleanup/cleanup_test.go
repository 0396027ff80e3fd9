package cleanup

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanupRemovesTrackedPaths(t *testing.T) {
	r := NewRegistry(t.TempDir())

	f, err := r.TempFile("download-*.deb")
	require.NoError(t, err)
	require.NoError(t, f.Close())

	dir, err := r.TempDir("extract-*")
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "payload"), []byte("x"), 0644))

	assert.Len(t, r.Pending(), 2)
	require.NoError(t, r.Cleanup())

	assert.NoFileExists(t, f.Name())
	assert.NoDirExists(t, dir)
	assert.Empty(t, r.Pending())
}

func TestCleanupIsRepeatable(t *testing.T) {
	r := NewRegistry(t.TempDir())
	_, err := r.TempDir("x-*")
	require.NoError(t, err)

	require.NoError(t, r.Cleanup())
	require.NoError(t, r.Cleanup())
}

func TestTrackMissingPathIsFine(t *testing.T) {
	r := NewRegistry("")
	r.Track(filepath.Join(t.TempDir(), "never-created"))

	assert.NoError(t, r.Cleanup())
}

func TestTempFileInMissingDirFails(t *testing.T) {
	r := NewRegistry(filepath.Join(t.TempDir(), "missing"))

	_, err := r.TempFile("x-*")
	assert.Error(t, err)
	assert.Empty(t, r.Pending())
}
