// Package github implements the RepoSearcher port using the go-github library.
package github

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	gh "github.com/google/go-github/v82/github"
	"github.com/gregjones/httpcache"
	"golang.org/x/oauth2"

	"github.com/gofri/go-github-ratelimit/v2/github_ratelimit"

	"github.com/ericfisherdev/repobrowser/internal/domain/model"
	"github.com/ericfisherdev/repobrowser/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.RepoSearcher = (*Client)(nil)

// lowSearchQuota is the remaining-requests threshold below which a warning is
// logged. The search API allows 10 requests per minute unauthenticated.
const lowSearchQuota = 3

// Client implements the driven.RepoSearcher port using the go-github library.
type Client struct {
	gh            *gh.Client
	authenticated bool
}

// NewClient creates a new GitHub search client with the following transport stack:
//  1. httpcache (ETag-based conditional request caching)
//  2. go-github-ratelimit (secondary rate limit middleware, sleeps on 429)
//  3. oauth2 (only when token is non-empty)
//  4. go-github (GitHub REST API client)
//
// An empty token yields an unauthenticated client.
func NewClient(token string) *Client {
	cacheTransport := httpcache.NewMemoryCacheTransport()
	httpClient := github_ratelimit.NewClient(cacheTransport)

	if token != "" {
		httpClient = &http.Client{
			Transport: &oauth2.Transport{
				Base:   httpClient.Transport,
				Source: oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token}),
			},
		}
	}

	return &Client{
		gh:            gh.NewClient(httpClient),
		authenticated: token != "",
	}
}

// NewClientWithHTTPClient creates a Client with a custom http.Client and base URL.
// This constructor is intended for testing, allowing injection of an httptest server.
func NewClientWithHTTPClient(httpClient *http.Client, baseURL string) (*Client, error) {
	client := gh.NewClient(httpClient)

	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parsing base URL: %w", err)
	}
	client.BaseURL = u

	return &Client{gh: client}, nil
}

// Authenticated reports whether requests carry an access token.
func (c *Client) Authenticated() bool {
	return c.authenticated
}

// SearchRecentlyCreated returns one page of repositories created after cutoff,
// sorted by stars descending. It issues exactly one request; pagination is
// driven by the caller.
func (c *Client) SearchRecentlyCreated(ctx context.Context, cutoff string, page int) ([]model.Repository, error) {
	query := SearchQuery(cutoff)
	opts := &gh.SearchOptions{
		Sort:  "stars",
		Order: "desc",
		ListOptions: gh.ListOptions{
			Page: page,
		},
	}

	result, resp, err := c.gh.Search.Repositories(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("searching repositories created after %s (page %d): %w", cutoff, page, err)
	}

	logRateLimit(resp, "search/repositories", page, len(result.Repositories))

	repos := make([]model.Repository, 0, len(result.Repositories))
	for _, r := range result.Repositories {
		repos = append(repos, mapRepository(r))
	}

	return repos, nil
}

// SearchQuery builds the search qualifier for repositories created after cutoff.
func SearchQuery(cutoff string) string {
	return "created:>" + cutoff
}

// mapRepository converts a go-github Repository to a domain model Repository.
// It uses GetXxx() helper methods exclusively to avoid nil pointer panics.
func mapRepository(r *gh.Repository) model.Repository {
	openIssues := r.GetOpenIssues()
	if r.OpenIssues == nil {
		openIssues = r.GetOpenIssuesCount()
	}

	return model.Repository{
		ID:              r.GetID(),
		FullName:        r.GetFullName(),
		Description:     r.GetDescription(),
		StargazersCount: r.GetStargazersCount(),
		OpenIssuesCount: openIssues,
		HTMLURL:         r.GetHTMLURL(),
		Owner: model.Owner{
			Login:     r.GetOwner().GetLogin(),
			AvatarURL: r.GetOwner().GetAvatarURL(),
		},
	}
}

// logRateLimit logs the GitHub API rate limit status after each call.
func logRateLimit(resp *gh.Response, endpoint string, page, count int) {
	if resp == nil {
		return
	}

	slog.Debug("github api call",
		"endpoint", endpoint,
		"page", page,
		"count", count,
		"rate_remaining", resp.Rate.Remaining,
		"rate_limit", resp.Rate.Limit,
	)

	if resp.Rate.Limit > 0 && resp.Rate.Remaining < lowSearchQuota {
		slog.Warn("github rate limit low",
			"remaining", resp.Rate.Remaining,
			"reset_in", time.Until(resp.Rate.Reset.Time).Round(time.Second),
		)
	}
}
