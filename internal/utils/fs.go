package utils

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

// DirPerm is the permission used for every directory the mirror creates
const DirPerm os.FileMode = 0755

// EnsureDir creates path and any missing parents; an existing directory is a no-op
func EnsureDir(fs afero.Fs, path string) error {
	return fs.MkdirAll(path, DirPerm)
}

// EnsureParentDir creates the parent directory of path
func EnsureParentDir(fs afero.Fs, path string) error {
	return EnsureDir(fs, filepath.Dir(path))
}

// PathState describes what a local path currently is
type PathState int

const (
	PathMissing PathState = iota
	PathIsDir
	PathIsFile
)

// StatPath reports whether path is missing, a directory, or a file
func StatPath(fs afero.Fs, path string) (PathState, error) {
	info, err := fs.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return PathMissing, nil
		}
		return PathMissing, err
	}
	if info.IsDir() {
		return PathIsDir, nil
	}
	return PathIsFile, nil
}

// ExpandPath expands ~ to the user's home directory
func ExpandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	if path == "~" {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return home
	}
	return path
}
