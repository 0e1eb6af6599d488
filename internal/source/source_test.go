package source

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quantmind-br/gitget/internal/config"
	"github.com/quantmind-br/gitget/internal/domain"
	"github.com/quantmind-br/gitget/internal/git"
	"github.com/quantmind-br/gitget/internal/source/github"
)

func TestNew(t *testing.T) {
	ctx := context.Background()

	t.Run("github", func(t *testing.T) {
		src, err := New(ctx, Options{Provider: config.ProviderGitHub, Token: "t", Project: "octo"})
		require.NoError(t, err)
		assert.IsType(t, &github.Source{}, src)
	})

	t.Run("git", func(t *testing.T) {
		src, err := New(ctx, Options{Provider: config.ProviderGit, URL: "https://git.example.com/team"})
		require.NoError(t, err)
		assert.IsType(t, &git.Source{}, src)
	})

	t.Run("azure requires a collection URL", func(t *testing.T) {
		_, err := New(ctx, Options{Provider: config.ProviderAzure})
		var validation *domain.ValidationError
		require.True(t, errors.As(err, &validation))
		assert.Equal(t, "source.url", validation.Field)
	})

	t.Run("unknown provider", func(t *testing.T) {
		_, err := New(ctx, Options{Provider: "svn"})
		var validation *domain.ValidationError
		require.True(t, errors.As(err, &validation))
		assert.Equal(t, "source.provider", validation.Field)
	})
}
