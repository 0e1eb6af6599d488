package utils

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeRemoteRoot(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input    string
		expected string
	}{
		{"", "/"},
		{"/", "/"},
		{"src", "/src/"},
		{"/src", "/src/"},
		{"/src/", "/src/"},
		{"src/sub", "/src/sub/"},
		{"//src//", "/src/"},
		{"./src/sub", "/src/sub/"},
		{"src//sub", "/src/sub/"},
		{"src/./sub", "/src/sub/"},
		{"src/x/../sub", "/src/sub/"},
		{".", "/"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeRemoteRoot(tt.input))
		})
	}

	assert.Equal(t, 5, BaseLen("src"))
	assert.Equal(t, BaseLen("/src/sub"), BaseLen("./src/sub"))
	assert.Equal(t, 1, BaseLen("/"))
}

func TestMapLocalPath(t *testing.T) {
	t.Parallel()

	root := filepath.Join("out", "mirror")
	baseLen := BaseLen("/src")

	tests := []struct {
		name     string
		remote   string
		expected string
	}{
		{"direct child", "/src/a.txt", filepath.Join(root, "a.txt")},
		{"nested file", "/src/sub/deeper/b.txt", filepath.Join(root, "sub", "deeper", "b.txt")},
		{"folder", "/src/sub", filepath.Join(root, "sub")},
		{"root itself", "/src/", root},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, MapLocalPath(tt.remote, root, baseLen))
		})
	}
}

func TestMapLocalPath_RepositoryRoot(t *testing.T) {
	t.Parallel()

	assert.Equal(t, filepath.Join("out", "docs", "readme.md"),
		MapLocalPath("/docs/readme.md", "out", BaseLen("/")))
}

func TestMapLocalPath_Idempotent(t *testing.T) {
	t.Parallel()

	baseLen := BaseLen("/src")
	first := MapLocalPath("/src/sub/b.txt", "out", baseLen)
	second := MapLocalPath("/src/sub/b.txt", "out", baseLen)
	assert.Equal(t, first, second)

	// only the part after the prefix matters
	assert.Equal(t, first, MapLocalPath("/xyz/sub/b.txt", "out", baseLen))
}

func TestHasTrailingSeparator(t *testing.T) {
	t.Parallel()

	assert.True(t, HasTrailingSeparator("out/"))
	assert.True(t, HasTrailingSeparator("out"+string(filepath.Separator)))
	assert.False(t, HasTrailingSeparator("out"))
	assert.False(t, HasTrailingSeparator(""))
}
