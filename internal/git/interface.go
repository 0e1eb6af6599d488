package git

import (
	"context"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/transport"
)

// Client defines the interface for Git operations
type Client interface {
	// CloneContext clones url into memory with every branch and tag
	CloneContext(ctx context.Context, url string, auth transport.AuthMethod) (*git.Repository, error)
	// ListRemoteRefs reads the ref advertisement of url without fetching objects
	ListRemoteRefs(ctx context.Context, url string, auth transport.AuthMethod) ([]*plumbing.Reference, error)
}
