package domain

import (
	"context"
	"io"
)

//go:generate mockgen -destination=../mocks/source_control_mock.go -package=mocks github.com/quantmind-br/gitget/internal/domain SourceControl

// SourceControl is the read-only slice of a source-control API the mirror needs.
// Listings are always one level deep; a folder listing includes the folder itself.
// A path that does not exist yields an empty listing rather than an error.
type SourceControl interface {
	// ListItems lists path and its immediate children at the given version
	ListItems(ctx context.Context, repoID, path string, version VersionDescriptor) ([]RemoteItem, error)
	// GetFileContent opens a stream over a file's content; the caller closes it
	GetFileContent(ctx context.Context, repoID, path string, version VersionDescriptor) (io.ReadCloser, error)
	// ListRefs returns every branch and tag ref of the repository
	ListRefs(ctx context.Context, repoID string) ([]Ref, error)
	// ListRepositories returns the repositories of a project
	ListRepositories(ctx context.Context, project string) ([]Repository, error)
}
