// Package github serves domain.SourceControl from the GitHub REST API.
package github

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	gogithub "github.com/google/go-github/v68/github"

	"github.com/quantmind-br/gitget/internal/domain"
)

const pageSize = 100

// Source reads repositories through the GitHub contents, git and repositories APIs.
// A repository id is "owner/name", or a bare name under the default owner.
type Source struct {
	client *gogithub.Client
	owner  string
}

// Options contains options for the GitHub source
type Options struct {
	Client *gogithub.Client
	// Owner is the user or organization of bare repository names
	Owner string
}

// New creates a GitHub source
func New(opts Options) *Source {
	if opts.Client == nil {
		opts.Client = gogithub.NewClient(nil)
	}
	return &Source{client: opts.Client, owner: opts.Owner}
}

func (s *Source) split(repoID string) (owner, repo string, err error) {
	if i := strings.Index(repoID, "/"); i >= 0 {
		owner, repo = repoID[:i], repoID[i+1:]
	} else {
		owner, repo = s.owner, repoID
	}
	if owner == "" || repo == "" {
		return "", "", fmt.Errorf("repository %q must be owner/name or a name with a project set", repoID)
	}
	return owner, repo, nil
}

func contentOptions(version domain.VersionDescriptor) *gogithub.RepositoryContentGetOptions {
	if version.IsDefault() {
		return nil
	}
	return &gogithub.RepositoryContentGetOptions{Ref: version.Ref}
}

// apiPath turns a repository-absolute path into the relative form GitHub expects
func apiPath(p string) string {
	return strings.Trim(domain.NormalizeRemoteItemPath(p), "/")
}

func isNotFound(err error) bool {
	var ghErr *gogithub.ErrorResponse
	return errors.As(err, &ghErr) && ghErr.Response != nil && ghErr.Response.StatusCode == http.StatusNotFound
}

// ListItems lists a folder with its self-entry, or a file alone. A missing path
// yields an empty listing.
func (s *Source) ListItems(ctx context.Context, repoID, path string, version domain.VersionDescriptor) ([]domain.RemoteItem, error) {
	owner, repo, err := s.split(repoID)
	if err != nil {
		return nil, err
	}

	file, dir, _, err := s.client.Repositories.GetContents(ctx, owner, repo, apiPath(path), contentOptions(version))
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, err
	}

	if file != nil {
		return []domain.RemoteItem{{Path: domain.NormalizeRemoteItemPath(file.GetPath()), Kind: domain.ObjectBlob}}, nil
	}

	items := make([]domain.RemoteItem, 0, len(dir)+1)
	items = append(items, domain.RemoteItem{Path: domain.NormalizeRemoteItemPath(path), Kind: domain.ObjectTree})
	for _, entry := range dir {
		item := domain.RemoteItem{Path: domain.NormalizeRemoteItemPath(entry.GetPath())}
		switch entry.GetType() {
		case "dir":
			item.Kind = domain.ObjectTree
		case "file", "symlink":
			item.Kind = domain.ObjectBlob
		default:
			// submodules point into other repositories
			continue
		}
		items = append(items, item)
	}
	return items, nil
}

// GetFileContent streams a file's raw content
func (s *Source) GetFileContent(ctx context.Context, repoID, path string, version domain.VersionDescriptor) (io.ReadCloser, error) {
	owner, repo, err := s.split(repoID)
	if err != nil {
		return nil, err
	}

	rc, _, err := s.client.Repositories.DownloadContents(ctx, owner, repo, apiPath(path), contentOptions(version))
	if err != nil {
		return nil, err
	}
	return rc, nil
}

// ListRefs returns every branch and tag ref, following pagination
func (s *Source) ListRefs(ctx context.Context, repoID string) ([]domain.Ref, error) {
	owner, repo, err := s.split(repoID)
	if err != nil {
		return nil, err
	}

	opts := &gogithub.ReferenceListOptions{ListOptions: gogithub.ListOptions{PerPage: pageSize}}
	var refs []domain.Ref
	for {
		page, resp, err := s.client.Git.ListMatchingRefs(ctx, owner, repo, opts)
		if err != nil {
			return nil, err
		}
		for _, ref := range page {
			refs = append(refs, domain.Ref{Name: ref.GetRef()})
		}
		if resp == nil || resp.NextPage == 0 {
			return refs, nil
		}
		opts.Page = resp.NextPage
	}
}

// ListRepositories lists the repositories of the organization named by project,
// or of the user account when no such organization exists
func (s *Source) ListRepositories(ctx context.Context, project string) ([]domain.Repository, error) {
	if project == "" {
		project = s.owner
	}

	repos, err := s.listByOrg(ctx, project)
	if isNotFound(err) {
		return s.listByUser(ctx, project)
	}
	return repos, err
}

func (s *Source) listByOrg(ctx context.Context, org string) ([]domain.Repository, error) {
	opts := &gogithub.RepositoryListByOrgOptions{ListOptions: gogithub.ListOptions{PerPage: pageSize}}
	var repos []domain.Repository
	for {
		page, resp, err := s.client.Repositories.ListByOrg(ctx, org, opts)
		if err != nil {
			return nil, err
		}
		repos = appendRepositories(repos, page)
		if resp == nil || resp.NextPage == 0 {
			return repos, nil
		}
		opts.Page = resp.NextPage
	}
}

func (s *Source) listByUser(ctx context.Context, user string) ([]domain.Repository, error) {
	opts := &gogithub.RepositoryListByUserOptions{ListOptions: gogithub.ListOptions{PerPage: pageSize}}
	var repos []domain.Repository
	for {
		page, resp, err := s.client.Repositories.ListByUser(ctx, user, opts)
		if err != nil {
			return nil, err
		}
		repos = appendRepositories(repos, page)
		if resp == nil || resp.NextPage == 0 {
			return repos, nil
		}
		opts.Page = resp.NextPage
	}
}

func appendRepositories(repos []domain.Repository, page []*gogithub.Repository) []domain.Repository {
	for _, r := range page {
		repos = append(repos, domain.Repository{ID: r.GetFullName(), Name: r.GetName()})
	}
	return repos
}

var _ domain.SourceControl = (*Source)(nil)
