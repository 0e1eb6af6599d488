package github

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	gogithub "github.com/google/go-github/v68/github"
	"golang.org/x/oauth2"

	"github.com/quantmind-br/gitget/pkg/version"
)

const defaultAPIURL = "https://api.github.com"

// NewTokenClient creates a *github.Client authenticated with a token. Pass
// baseURL="" for github.com, or the API root of a GitHub Enterprise server
// (e.g. "https://ghe.example.com/api/v3").
func NewTokenClient(token, baseURL string, httpClient *http.Client) *gogithub.Client {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	if token != "" {
		ctx := context.WithValue(context.Background(), oauth2.HTTPClient, httpClient)
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
		timeout := httpClient.Timeout
		httpClient = oauth2.NewClient(ctx, ts)
		httpClient.Timeout = timeout
	}
	c := gogithub.NewClient(httpClient)
	c.UserAgent = version.UserAgent()
	applyBaseURL(c, baseURL)
	return c
}

func applyBaseURL(c *gogithub.Client, baseURL string) {
	baseURL = strings.TrimSuffix(baseURL, "/")
	if baseURL == "" || baseURL == defaultAPIURL {
		return
	}
	u, err := url.Parse(baseURL + "/")
	if err != nil {
		return
	}
	c.BaseURL = u
}
