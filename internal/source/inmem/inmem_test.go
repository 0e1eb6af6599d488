package inmem

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quantmind-br/gitget/internal/domain"
)

func TestInMem_ListItems(t *testing.T) {
	ctx := context.Background()
	m := NewInMem()
	m.SetFile("repo", "", "/src/a.txt", "a")
	m.SetFile("repo", "", "/src/sub/b.txt", "b")

	t.Run("folder includes self and immediate children", func(t *testing.T) {
		items, err := m.ListItems(ctx, "repo", "/src/", domain.VersionDescriptor{})
		require.NoError(t, err)
		assert.Equal(t, []domain.RemoteItem{
			{Path: "/src", Kind: domain.ObjectTree},
			{Path: "/src/a.txt", Kind: domain.ObjectBlob},
			{Path: "/src/sub", Kind: domain.ObjectTree},
		}, items)
	})

	t.Run("root lists top level", func(t *testing.T) {
		items, err := m.ListItems(ctx, "repo", "/", domain.VersionDescriptor{})
		require.NoError(t, err)
		assert.Equal(t, []domain.RemoteItem{
			{Path: "/", Kind: domain.ObjectTree},
			{Path: "/src", Kind: domain.ObjectTree},
		}, items)
	})

	t.Run("file lists itself", func(t *testing.T) {
		items, err := m.ListItems(ctx, "repo", "src/a.txt", domain.VersionDescriptor{})
		require.NoError(t, err)
		assert.Equal(t, []domain.RemoteItem{{Path: "/src/a.txt", Kind: domain.ObjectBlob}}, items)
	})

	t.Run("missing path is empty", func(t *testing.T) {
		items, err := m.ListItems(ctx, "repo", "/nope", domain.VersionDescriptor{})
		require.NoError(t, err)
		assert.Empty(t, items)
	})

	t.Run("unknown version fails", func(t *testing.T) {
		_, err := m.ListItems(ctx, "repo", "/src", domain.VersionDescriptor{Ref: "dev", Kind: domain.VersionBranch})
		assert.Error(t, err)
	})
}

func TestInMem_GetFileContent(t *testing.T) {
	ctx := context.Background()
	m := NewInMem()
	m.SetFile("repo", "v1", "/a.txt", "tagged")

	rc, err := m.GetFileContent(ctx, "repo", "/a.txt", domain.VersionDescriptor{Ref: "v1", Kind: domain.VersionTag})
	require.NoError(t, err)
	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "tagged", string(data))

	_, err = m.GetFileContent(ctx, "repo", "/b.txt", domain.VersionDescriptor{Ref: "v1", Kind: domain.VersionTag})
	assert.Error(t, err)
}

func TestInMem_FailAndCalls(t *testing.T) {
	ctx := context.Background()
	m := NewInMem()
	m.AddRef("repo", "refs/heads/main")
	m.AddRepository("proj", domain.Repository{ID: "1", Name: "one"})
	m.Fail("repos", "other", errors.New("403 forbidden"))

	refs, err := m.ListRefs(ctx, "repo")
	require.NoError(t, err)
	assert.Equal(t, []domain.Ref{{Name: "refs/heads/main"}}, refs)

	repos, err := m.ListRepositories(ctx, "proj")
	require.NoError(t, err)
	assert.Len(t, repos, 1)

	_, err = m.ListRepositories(ctx, "other")
	assert.EqualError(t, err, "403 forbidden")

	assert.Equal(t, []string{"refs repo", "repos proj", "repos other"}, m.Calls())
}
