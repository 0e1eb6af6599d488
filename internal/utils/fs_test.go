package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnsureDir(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	dir := filepath.Join("out", "a", "b")

	require.NoError(t, EnsureDir(fs, dir))
	// idempotent
	require.NoError(t, EnsureDir(fs, dir))

	isDir, err := afero.IsDir(fs, dir)
	require.NoError(t, err)
	assert.True(t, isDir)
}

func TestEnsureParentDir(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	file := filepath.Join("out", "sub", "b.txt")

	require.NoError(t, EnsureParentDir(fs, file))

	isDir, err := afero.IsDir(fs, filepath.Join("out", "sub"))
	require.NoError(t, err)
	assert.True(t, isDir)
	exists, err := afero.Exists(fs, file)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestStatPath(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll("dir", 0755))
	require.NoError(t, afero.WriteFile(fs, "file.txt", []byte("x"), 0644))

	state, err := StatPath(fs, "dir")
	require.NoError(t, err)
	assert.Equal(t, PathIsDir, state)

	state, err = StatPath(fs, "file.txt")
	require.NoError(t, err)
	assert.Equal(t, PathIsFile, state)

	state, err = StatPath(fs, "missing")
	require.NoError(t, err)
	assert.Equal(t, PathMissing, state)
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	assert.Equal(t, home, ExpandPath("~"))
	assert.Equal(t, filepath.Join(home, ".gitget"), ExpandPath("~/.gitget"))
	assert.Equal(t, "/abs/path", ExpandPath("/abs/path"))
	assert.Equal(t, "relative", ExpandPath("relative"))
}
