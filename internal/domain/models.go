package domain

import (
	"path"
	"strings"
)

// VersionKind identifies how a version descriptor pins remote reads
type VersionKind int

const (
	// VersionNone lets the server pick the default branch
	VersionNone VersionKind = iota
	VersionBranch
	VersionTag
	VersionCommit
)

// String returns the lowercase name of the kind
func (k VersionKind) String() string {
	switch k {
	case VersionBranch:
		return "branch"
	case VersionTag:
		return "tag"
	case VersionCommit:
		return "commit"
	default:
		return "default"
	}
}

// VersionDescriptor is the resolved (ref, kind) pair used for every remote read of a run
type VersionDescriptor struct {
	Ref  string
	Kind VersionKind
}

// IsDefault reports whether the descriptor defers to the server's default branch
func (v VersionDescriptor) IsDefault() bool {
	return v.Kind == VersionNone
}

// String returns a human readable form, e.g. "branch main"
func (v VersionDescriptor) String() string {
	if v.IsDefault() {
		return "default branch"
	}
	return v.Kind.String() + " " + v.Ref
}

// ObjectKind is the kind of a remote tree entry
type ObjectKind int

const (
	ObjectBlob ObjectKind = iota
	ObjectTree
)

// String returns the git object type name
func (k ObjectKind) String() string {
	if k == ObjectTree {
		return "tree"
	}
	return "blob"
}

// RemoteItem is one entry of a remote listing
type RemoteItem struct {
	// Path is repository-absolute and '/'-separated, e.g. "/src/a.txt"
	Path string
	Kind ObjectKind
}

// IsTree reports whether the item is a directory
func (i RemoteItem) IsTree() bool {
	return i.Kind == ObjectTree
}

// Name returns the last path element of the item
func (i RemoteItem) Name() string {
	return path.Base(i.Path)
}

// Ref is a named pointer in the remote repository, e.g. "refs/heads/main"
type Ref struct {
	Name string
}

// Repository is a repository entry of a project listing
type Repository struct {
	ID   string
	Name string
}

// Ref name prefixes
const (
	BranchRefPrefix = "refs/heads/"
	TagRefPrefix    = "refs/tags/"
)

// NormalizeRemoteItemPath canonicalizes a repository path for equality checks:
// a leading '/', no trailing '/' except for the root itself, and no empty,
// "." or ".." elements.
func NormalizeRemoteItemPath(p string) string {
	return path.Clean("/" + strings.TrimSpace(p))
}
