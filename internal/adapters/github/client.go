package github

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	gh "github.com/google/go-github/v45/github"
	"github.com/gregjones/httpcache"
	"golang.org/x/oauth2"

	"github.com/renato0307/prmonitor/internal/domain"
	"github.com/renato0307/prmonitor/internal/logging"
	"github.com/renato0307/prmonitor/internal/ports"
)

// Client fetches pull request state from the GitHub REST API.
// Responses go through an in-memory HTTP cache so unchanged pull requests are
// answered with 304 and do not count against the rate limit.
type Client struct {
	apiURL     string
	client     *gh.Client
	credential string
	mu         sync.Mutex
	now        func() time.Time
	timeout    time.Duration
}

// Verify interface compliance at compile time
var _ ports.StateFetcher = (*Client)(nil)

// NewClient creates a client for api.github.com, or for a GitHub Enterprise
// server when apiURL is set
func NewClient(apiURL string, timeout time.Duration) *Client {
	return &Client{
		apiURL:  apiURL,
		now:     time.Now,
		timeout: timeout,
	}
}

// FetchState implements ports.StateFetcher
func (c *Client) FetchState(ctx context.Context, id domain.PRIdentity, credential string) (domain.RemoteState, error) {
	if credential == "" {
		return domain.RemoteState{}, domain.NewFetchError(domain.ErrUnauthorized, errors.New("no credential configured"))
	}

	client, err := c.clientFor(credential)
	if err != nil {
		return domain.RemoteState{}, domain.NewFetchError(domain.ErrTransient, err)
	}

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	started := c.now()
	pr, _, err := client.PullRequests.Get(ctx, id.Owner, id.Repo, id.Number)
	if err != nil {
		classified := classify(err, c.now())
		logging.Logger.Debug("GitHub request failed",
			"pr", id.String(),
			"error", classified,
			"duration", time.Since(started).String())
		return domain.RemoteState{}, classified
	}

	return toRemoteState(pr)
}

func toRemoteState(pr *gh.PullRequest) (domain.RemoteState, error) {
	if pr == nil {
		return domain.RemoteState{}, domain.NewFetchError(domain.ErrMalformed, errors.New("empty pull request body"))
	}

	state, err := domain.ParsePRState(pr.GetState())
	if err != nil {
		return domain.RemoteState{}, domain.NewFetchError(domain.ErrMalformed, err)
	}

	return domain.RemoteState{
		ClosedAt:  pr.ClosedAt,
		Mergeable: domain.MergeableState(pr.GetMergeableState()),
		Merged:    pr.GetMerged(),
		State:     state,
		Title:     pr.GetTitle(),
	}, nil
}

// clientFor returns the client bound to credential, rebuilding it (and its
// cache) when the credential changed
func (c *Client) clientFor(credential string) (*gh.Client, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.client != nil && c.credential == credential {
		return c.client, nil
	}

	httpClient := &http.Client{
		Transport: &oauth2.Transport{
			Source: oauth2.StaticTokenSource(&oauth2.Token{AccessToken: credential}),
			Base:   httpcache.NewMemoryCacheTransport(),
		},
	}

	client := gh.NewClient(httpClient)
	if c.apiURL != "" {
		var err error
		client, err = gh.NewEnterpriseClient(c.apiURL, c.apiURL, httpClient)
		if err != nil {
			return nil, fmt.Errorf("invalid GitHub API url %q: %w", c.apiURL, err)
		}
	}
	client.UserAgent = "prmonitor"

	logging.Logger.Debug("GitHub client created", "base_url", client.BaseURL.String())

	c.client = client
	c.credential = credential
	return client, nil
}
