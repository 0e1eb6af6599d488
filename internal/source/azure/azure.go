// Package azure serves domain.SourceControl from Azure DevOps Services and
// Team Foundation Server Git repositories.
package azure

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/microsoft/azure-devops-go-api/azuredevops/v7"
	"github.com/microsoft/azure-devops-go-api/azuredevops/v7/git"

	"github.com/quantmind-br/gitget/internal/domain"
	"github.com/quantmind-br/gitget/pkg/version"
)

// Source reads a collection's repositories through the Git REST API
type Source struct {
	client  git.Client
	project string
}

// ConnectOptions describes a collection connection
type ConnectOptions struct {
	// URL is the collection URL, e.g. https://dev.azure.com/contoso
	URL   string
	Token string
	// Bearer sends Token as an OAuth bearer token instead of a personal access token
	Bearer bool
	// Project scopes repositories given by name
	Project string
	Timeout time.Duration
}

// Connect opens a Git client on the collection
func Connect(ctx context.Context, opts ConnectOptions) (*Source, error) {
	var conn *azuredevops.Connection
	if opts.Bearer {
		conn = azuredevops.NewAnonymousConnection(opts.URL)
		conn.AuthorizationString = "Bearer " + opts.Token
	} else {
		conn = azuredevops.NewPatConnection(opts.URL, opts.Token)
	}
	conn.UserAgent = version.UserAgent()
	if opts.Timeout > 0 {
		conn.Timeout = &opts.Timeout
	}

	client, err := git.NewClient(ctx, conn)
	if err != nil {
		return nil, err
	}
	return New(client, opts.Project), nil
}

// New wraps an existing Git client
func New(client git.Client, project string) *Source {
	return &Source{client: client, project: project}
}

// projectFor returns the project to send along with repoID. Repository GUIDs are
// unique across the collection; names are only unique within a project.
func (s *Source) projectFor(repoID string) *string {
	if _, err := uuid.Parse(repoID); err == nil || s.project == "" {
		return nil
	}
	project := s.project
	return &project
}

func versionDescriptor(version domain.VersionDescriptor) *git.GitVersionDescriptor {
	var versionType git.GitVersionType
	switch version.Kind {
	case domain.VersionBranch:
		versionType = git.GitVersionTypeValues.Branch
	case domain.VersionTag:
		versionType = git.GitVersionTypeValues.Tag
	case domain.VersionCommit:
		versionType = git.GitVersionTypeValues.Commit
	default:
		return nil
	}

	ref := version.Ref
	return &git.GitVersionDescriptor{
		Version:        &ref,
		VersionOptions: &git.GitVersionOptionsValues.None,
		VersionType:    &versionType,
	}
}

func isNotFound(err error) bool {
	var wrapped azuredevops.WrappedError
	if errors.As(err, &wrapped) {
		return wrapped.StatusCode != nil && *wrapped.StatusCode == http.StatusNotFound
	}
	var wrappedPtr *azuredevops.WrappedError
	if errors.As(err, &wrappedPtr) {
		return wrappedPtr.StatusCode != nil && *wrappedPtr.StatusCode == http.StatusNotFound
	}
	return false
}

// ListItems lists path one level deep. A missing path yields an empty listing.
func (s *Source) ListItems(ctx context.Context, repoID, path string, version domain.VersionDescriptor) ([]domain.RemoteItem, error) {
	resp, err := s.client.GetItems(ctx, git.GetItemsArgs{
		RepositoryId:      &repoID,
		Project:           s.projectFor(repoID),
		ScopePath:         &path,
		RecursionLevel:    &git.VersionControlRecursionTypeValues.OneLevel,
		VersionDescriptor: versionDescriptor(version),
	})
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	if resp == nil {
		return nil, nil
	}

	items := make([]domain.RemoteItem, 0, len(*resp))
	for _, item := range *resp {
		if item.Path == nil {
			continue
		}
		kind := domain.ObjectBlob
		if item.GitObjectType != nil && *item.GitObjectType == git.GitObjectTypeValues.Tree {
			kind = domain.ObjectTree
		} else if item.GitObjectType == nil && item.IsFolder != nil && *item.IsFolder {
			kind = domain.ObjectTree
		}
		items = append(items, domain.RemoteItem{Path: *item.Path, Kind: kind})
	}
	return items, nil
}

// GetFileContent streams a file's content
func (s *Source) GetFileContent(ctx context.Context, repoID, path string, version domain.VersionDescriptor) (io.ReadCloser, error) {
	return s.client.GetItemContent(ctx, git.GetItemContentArgs{
		RepositoryId:      &repoID,
		Project:           s.projectFor(repoID),
		Path:              &path,
		RecursionLevel:    &git.VersionControlRecursionTypeValues.None,
		VersionDescriptor: versionDescriptor(version),
	})
}

// ListRefs returns every ref of the repository, following continuation tokens
func (s *Source) ListRefs(ctx context.Context, repoID string) ([]domain.Ref, error) {
	args := git.GetRefsArgs{
		RepositoryId: &repoID,
		Project:      s.projectFor(repoID),
	}

	var refs []domain.Ref
	for {
		resp, err := s.client.GetRefs(ctx, args)
		if err != nil {
			return nil, err
		}
		if resp == nil {
			return refs, nil
		}
		for _, ref := range resp.Value {
			if ref.Name != nil {
				refs = append(refs, domain.Ref{Name: *ref.Name})
			}
		}
		if resp.ContinuationToken == "" {
			return refs, nil
		}
		token := resp.ContinuationToken
		args.ContinuationToken = &token
	}
}

// ListRepositories lists the Git repositories of a project
func (s *Source) ListRepositories(ctx context.Context, project string) ([]domain.Repository, error) {
	if project == "" {
		project = s.project
	}
	args := git.GetRepositoriesArgs{}
	if project != "" {
		args.Project = &project
	}

	resp, err := s.client.GetRepositories(ctx, args)
	if err != nil {
		return nil, err
	}
	if resp == nil {
		return nil, nil
	}

	repos := make([]domain.Repository, 0, len(*resp))
	for _, r := range *resp {
		repo := domain.Repository{}
		if r.Id != nil {
			repo.ID = r.Id.String()
		}
		if r.Name != nil {
			repo.Name = *r.Name
		}
		repos = append(repos, repo)
	}
	return repos, nil
}

var _ domain.SourceControl = (*Source)(nil)
