package utils

import (
	"os"
	"path"
	"path/filepath"
	"strings"
)

// NormalizeRemoteRoot returns the canonical form of a remote root path used for
// relative path production: a leading and a trailing '/'.
// "src", "/src/" and "./src" all become "/src/"; "" and "/" become "/".
// The root is cleaned so its length matches the canonical paths servers return.
func NormalizeRemoteRoot(remotePath string) string {
	p := path.Clean("/" + strings.TrimSpace(remotePath))
	if p == "/" {
		return p
	}
	return p + "/"
}

// BaseLen returns the length of the normalized remote root
func BaseLen(remoteRoot string) int {
	return len(NormalizeRemoteRoot(remoteRoot))
}

// MapLocalPath maps a repository-absolute remote path to a local filesystem path.
// The first baseLen bytes of remotePath are dropped and every '/' of the rest
// becomes the host separator. remotePath must share the baseLen prefix of the root;
// a path no longer than the prefix maps to localRoot itself.
func MapLocalPath(remotePath, localRoot string, baseLen int) string {
	rel := ""
	if len(remotePath) > baseLen {
		rel = remotePath[baseLen:]
	}
	if rel == "" {
		return filepath.Clean(localRoot)
	}
	return filepath.Join(localRoot, filepath.FromSlash(rel))
}

// HasTrailingSeparator reports whether a local path was written as a directory,
// i.e. ends in '/' or the host separator
func HasTrailingSeparator(localPath string) bool {
	return strings.HasSuffix(localPath, "/") || strings.HasSuffix(localPath, string(os.PathSeparator))
}
