package git

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/filemode"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/transport"
	"github.com/go-git/go-git/v5/plumbing/transport/http"

	"github.com/quantmind-br/gitget/internal/domain"
)

// Source serves domain.SourceControl from any Git remote. Refs come from the
// remote's advertisement; trees and blobs from an in-memory clone that is made
// once per remote and reused for the rest of the run.
type Source struct {
	client  Client
	baseURL string
	auth    transport.AuthMethod

	mu     sync.Mutex
	clones map[string]*git.Repository
}

// SourceOptions contains options for the Git source
type SourceOptions struct {
	Client Client
	// BaseURL prefixes repository ids that are not URLs themselves
	BaseURL string
	Token   string
}

// NewSource creates a Git source
func NewSource(opts SourceOptions) *Source {
	if opts.Client == nil {
		opts.Client = NewClient()
	}

	var auth transport.AuthMethod
	if opts.Token != "" {
		// Hosting services accept any non-empty user name with a token password
		auth = &http.BasicAuth{Username: "gitget", Password: opts.Token}
	}

	return &Source{
		client:  opts.Client,
		baseURL: strings.TrimSuffix(opts.BaseURL, "/"),
		auth:    auth,
		clones:  make(map[string]*git.Repository),
	}
}

// RemoteURL returns the URL a repository id refers to
func (s *Source) RemoteURL(repoID string) string {
	if s.baseURL == "" || strings.Contains(repoID, "://") || strings.HasPrefix(repoID, "git@") {
		return repoID
	}
	return s.baseURL + "/" + strings.TrimPrefix(repoID, "/")
}

func (s *Source) repository(ctx context.Context, repoID string) (*git.Repository, error) {
	url := s.RemoteURL(repoID)

	s.mu.Lock()
	defer s.mu.Unlock()
	if repo, ok := s.clones[url]; ok {
		return repo, nil
	}

	repo, err := s.client.CloneContext(ctx, url, s.auth)
	if err != nil {
		return nil, fmt.Errorf("failed to clone %s: %w", url, err)
	}
	s.clones[url] = repo
	return repo, nil
}

func commitFor(repo *git.Repository, version domain.VersionDescriptor) (*object.Commit, error) {
	var hash plumbing.Hash
	switch version.Kind {
	case domain.VersionNone:
		head, err := repo.Head()
		if err != nil {
			return nil, fmt.Errorf("failed to resolve HEAD: %w", err)
		}
		hash = head.Hash()
	case domain.VersionBranch:
		ref, err := repo.Reference(plumbing.NewRemoteReferenceName(git.DefaultRemoteName, version.Ref), true)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve branch %s: %w", version.Ref, err)
		}
		hash = ref.Hash()
	case domain.VersionTag:
		ref, err := repo.Tag(version.Ref)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve tag %s: %w", version.Ref, err)
		}
		hash = ref.Hash()
		if tag, err := repo.TagObject(hash); err == nil {
			commit, err := tag.Commit()
			if err != nil {
				return nil, fmt.Errorf("tag %s does not point to a commit: %w", version.Ref, err)
			}
			return commit, nil
		}
	case domain.VersionCommit:
		hash = plumbing.NewHash(version.Ref)
	}

	commit, err := repo.CommitObject(hash)
	if err != nil {
		return nil, fmt.Errorf("failed to read commit %s: %w", hash, err)
	}
	return commit, nil
}

func (s *Source) tree(ctx context.Context, repoID string, version domain.VersionDescriptor) (*object.Tree, error) {
	repo, err := s.repository(ctx, repoID)
	if err != nil {
		return nil, err
	}
	commit, err := commitFor(repo, version)
	if err != nil {
		return nil, err
	}
	return commit.Tree()
}

func joinPath(dir, name string) string {
	if dir == "/" {
		return "/" + name
	}
	return dir + "/" + name
}

// ListItems lists a folder with its self-entry, or a file alone. A missing path
// yields an empty listing. Submodules are not listed.
func (s *Source) ListItems(ctx context.Context, repoID, path string, version domain.VersionDescriptor) ([]domain.RemoteItem, error) {
	root, err := s.tree(ctx, repoID, version)
	if err != nil {
		return nil, err
	}

	self := domain.NormalizeRemoteItemPath(path)
	dir := root
	if rel := strings.TrimPrefix(self, "/"); rel != "" {
		entry, err := root.FindEntry(rel)
		if err != nil {
			if errors.Is(err, object.ErrEntryNotFound) || errors.Is(err, object.ErrDirectoryNotFound) {
				return nil, nil
			}
			return nil, err
		}
		switch entry.Mode {
		case filemode.Dir:
			if dir, err = root.Tree(rel); err != nil {
				return nil, err
			}
		case filemode.Submodule:
			return nil, nil
		default:
			return []domain.RemoteItem{{Path: self, Kind: domain.ObjectBlob}}, nil
		}
	}

	items := make([]domain.RemoteItem, 0, len(dir.Entries)+1)
	items = append(items, domain.RemoteItem{Path: self, Kind: domain.ObjectTree})
	for _, entry := range dir.Entries {
		switch entry.Mode {
		case filemode.Dir:
			items = append(items, domain.RemoteItem{Path: joinPath(self, entry.Name), Kind: domain.ObjectTree})
		case filemode.Submodule:
		default:
			items = append(items, domain.RemoteItem{Path: joinPath(self, entry.Name), Kind: domain.ObjectBlob})
		}
	}
	return items, nil
}

// GetFileContent streams a blob out of the clone
func (s *Source) GetFileContent(ctx context.Context, repoID, path string, version domain.VersionDescriptor) (io.ReadCloser, error) {
	root, err := s.tree(ctx, repoID, version)
	if err != nil {
		return nil, err
	}

	file, err := root.File(strings.TrimPrefix(domain.NormalizeRemoteItemPath(path), "/"))
	if err != nil {
		return nil, err
	}
	return file.Reader()
}

// ListRefs returns the branches and tags advertised by the remote
func (s *Source) ListRefs(ctx context.Context, repoID string) ([]domain.Ref, error) {
	advertised, err := s.client.ListRemoteRefs(ctx, s.RemoteURL(repoID), s.auth)
	if err != nil {
		return nil, err
	}

	refs := make([]domain.Ref, 0, len(advertised))
	for _, ref := range advertised {
		if ref.Name().IsBranch() || ref.Name().IsTag() {
			refs = append(refs, domain.Ref{Name: ref.Name().String()})
		}
	}
	return refs, nil
}

// ListRepositories is not available over the Git protocol
func (s *Source) ListRepositories(_ context.Context, project string) ([]domain.Repository, error) {
	return nil, fmt.Errorf("%w: plain Git remotes cannot list the repositories of %q, pass the repository explicitly",
		domain.ErrUnsupportedOperation, project)
}

var _ domain.SourceControl = (*Source)(nil)
