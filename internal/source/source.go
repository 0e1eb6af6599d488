// Package source builds the domain.SourceControl for a configured provider.
package source

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/quantmind-br/gitget/internal/config"
	"github.com/quantmind-br/gitget/internal/domain"
	"github.com/quantmind-br/gitget/internal/git"
	"github.com/quantmind-br/gitget/internal/source/azure"
	"github.com/quantmind-br/gitget/internal/source/github"
)

// Options selects and authenticates a provider
type Options struct {
	Provider string
	URL      string
	Token    string
	Bearer   bool
	Project  string
	Timeout  time.Duration
}

// New connects to the provider named by opts.Provider; empty means Azure DevOps
func New(ctx context.Context, opts Options) (domain.SourceControl, error) {
	switch opts.Provider {
	case config.ProviderAzure, "":
		if opts.URL == "" {
			return nil, domain.NewValidationError("source.url", "a collection URL is required for azure")
		}
		src, err := azure.Connect(ctx, azure.ConnectOptions{
			URL:     opts.URL,
			Token:   opts.Token,
			Bearer:  opts.Bearer,
			Project: opts.Project,
			Timeout: opts.Timeout,
		})
		if err != nil {
			return nil, domain.NewRemoteCallError("connect", opts.URL, err)
		}
		return src, nil

	case config.ProviderGitHub:
		client := github.NewTokenClient(opts.Token, opts.URL, &http.Client{Timeout: opts.Timeout})
		return github.New(github.Options{Client: client, Owner: opts.Project}), nil

	case config.ProviderGit:
		return git.NewSource(git.SourceOptions{BaseURL: opts.URL, Token: opts.Token}), nil

	default:
		return nil, domain.NewValidationError("source.provider", fmt.Sprintf("unknown provider %q", opts.Provider))
	}
}
