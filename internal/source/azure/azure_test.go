package azure

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/microsoft/azure-devops-go-api/azuredevops/v7"
	"github.com/microsoft/azure-devops-go-api/azuredevops/v7/git"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quantmind-br/gitget/internal/domain"
)

// fakeClient implements the subset of git.Client the source calls
type fakeClient struct {
	git.Client

	items      *[]git.GitItem
	itemsErr   error
	content    string
	refPages   []git.GetRefsResponseValue
	repos      *[]git.GitRepository
	itemsArgs  []git.GetItemsArgs
	contentArg git.GetItemContentArgs
	refsArgs   []git.GetRefsArgs
	reposArgs  git.GetRepositoriesArgs
}

func (f *fakeClient) GetItems(_ context.Context, args git.GetItemsArgs) (*[]git.GitItem, error) {
	f.itemsArgs = append(f.itemsArgs, args)
	return f.items, f.itemsErr
}

func (f *fakeClient) GetItemContent(_ context.Context, args git.GetItemContentArgs) (io.ReadCloser, error) {
	f.contentArg = args
	return io.NopCloser(strings.NewReader(f.content)), nil
}

func (f *fakeClient) GetRefs(_ context.Context, args git.GetRefsArgs) (*git.GetRefsResponseValue, error) {
	f.refsArgs = append(f.refsArgs, args)
	page := f.refPages[0]
	f.refPages = f.refPages[1:]
	return &page, nil
}

func (f *fakeClient) GetRepositories(_ context.Context, args git.GetRepositoriesArgs) (*[]git.GitRepository, error) {
	f.reposArgs = args
	return f.repos, nil
}

func str(s string) *string { return &s }

func objectType(t git.GitObjectType) *git.GitObjectType { return &t }

func TestSource_ListItems(t *testing.T) {
	items := []git.GitItem{
		{Path: str("/src"), GitObjectType: objectType(git.GitObjectTypeValues.Tree)},
		{Path: str("/src/a.txt"), GitObjectType: objectType(git.GitObjectTypeValues.Blob)},
		{Path: str("/src/sub"), GitObjectType: objectType(git.GitObjectTypeValues.Tree)},
	}
	client := &fakeClient{items: &items}
	src := New(client, "Infra")

	got, err := src.ListItems(context.Background(), "platform", "/src", domain.VersionDescriptor{Ref: "main", Kind: domain.VersionBranch})
	require.NoError(t, err)
	assert.Equal(t, []domain.RemoteItem{
		{Path: "/src", Kind: domain.ObjectTree},
		{Path: "/src/a.txt", Kind: domain.ObjectBlob},
		{Path: "/src/sub", Kind: domain.ObjectTree},
	}, got)

	require.Len(t, client.itemsArgs, 1)
	args := client.itemsArgs[0]
	assert.Equal(t, "platform", *args.RepositoryId)
	require.NotNil(t, args.Project, "repository names are scoped by project")
	assert.Equal(t, "Infra", *args.Project)
	assert.Equal(t, "/src", *args.ScopePath)
	assert.Equal(t, git.VersionControlRecursionTypeValues.OneLevel, *args.RecursionLevel)
	require.NotNil(t, args.VersionDescriptor)
	assert.Equal(t, "main", *args.VersionDescriptor.Version)
	assert.Equal(t, git.GitVersionTypeValues.Branch, *args.VersionDescriptor.VersionType)
}

func TestSource_ListItems_NotFoundIsEmpty(t *testing.T) {
	status := http.StatusNotFound
	client := &fakeClient{itemsErr: azuredevops.WrappedError{Message: str("TF401174: The item could not be found"), StatusCode: &status}}
	src := New(client, "")

	got, err := src.ListItems(context.Background(), "platform", "/missing", domain.VersionDescriptor{})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestSource_ListItems_OtherErrorsFail(t *testing.T) {
	status := http.StatusUnauthorized
	client := &fakeClient{itemsErr: azuredevops.WrappedError{Message: str("unauthorized"), StatusCode: &status}}
	src := New(client, "")

	_, err := src.ListItems(context.Background(), "platform", "/src", domain.VersionDescriptor{})
	assert.Error(t, err)
}

func TestSource_GUIDRepositoryOmitsProject(t *testing.T) {
	client := &fakeClient{items: &[]git.GitItem{}}
	src := New(client, "Infra")
	id := uuid.NewString()

	_, err := src.ListItems(context.Background(), id, "/", domain.VersionDescriptor{})
	require.NoError(t, err)
	assert.Nil(t, client.itemsArgs[0].Project)
	assert.Nil(t, client.itemsArgs[0].VersionDescriptor, "default branch sends no version")
}

func TestSource_GetFileContent(t *testing.T) {
	client := &fakeClient{content: "hello"}
	src := New(client, "")
	sha := strings.Repeat("ab", 20)

	rc, err := src.GetFileContent(context.Background(), "platform", "/src/a.txt", domain.VersionDescriptor{Ref: sha, Kind: domain.VersionCommit})
	require.NoError(t, err)
	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(data))

	assert.Equal(t, "/src/a.txt", *client.contentArg.Path)
	assert.Equal(t, git.GitVersionTypeValues.Commit, *client.contentArg.VersionDescriptor.VersionType)
	assert.Equal(t, sha, *client.contentArg.VersionDescriptor.Version)
}

func TestSource_ListRefs_FollowsContinuation(t *testing.T) {
	client := &fakeClient{refPages: []git.GetRefsResponseValue{
		{Value: []git.GitRef{{Name: str("refs/heads/main")}}, ContinuationToken: "next"},
		{Value: []git.GitRef{{Name: str("refs/tags/v1.0")}}},
	}}
	src := New(client, "")

	refs, err := src.ListRefs(context.Background(), "platform")
	require.NoError(t, err)
	assert.Equal(t, []domain.Ref{{Name: "refs/heads/main"}, {Name: "refs/tags/v1.0"}}, refs)

	require.Len(t, client.refsArgs, 2)
	assert.Nil(t, client.refsArgs[0].ContinuationToken)
	assert.Equal(t, "next", *client.refsArgs[1].ContinuationToken)
}

func TestSource_ListRepositories(t *testing.T) {
	id := uuid.MustParse("6a1f0c2e-4b5d-4e7f-8a9b-0c1d2e3f4a5b")
	client := &fakeClient{repos: &[]git.GitRepository{{Id: &id, Name: str("platform")}}}
	src := New(client, "Default")

	repos, err := src.ListRepositories(context.Background(), "Infra")
	require.NoError(t, err)
	assert.Equal(t, []domain.Repository{{ID: id.String(), Name: "platform"}}, repos)
	assert.Equal(t, "Infra", *client.reposArgs.Project)
}

func TestIsNotFound(t *testing.T) {
	status := http.StatusNotFound
	assert.True(t, isNotFound(azuredevops.WrappedError{StatusCode: &status}))
	assert.True(t, isNotFound(&azuredevops.WrappedError{StatusCode: &status}))
	assert.False(t, isNotFound(errors.New("404")))
}
