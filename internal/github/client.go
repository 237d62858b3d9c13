// Package github wraps the GitHub REST API for repository metadata and file
// content retrieval. It owns transient-failure classification, exponential
// backoff, and a short-lived response cache so the rest of the pipeline never
// sees rate-limit mechanics.
package github

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	gh "github.com/google/go-github/v68/github"
	"github.com/maypok86/otter"
)

// Sentinel errors callers branch on.
var (
	// ErrNotFound marks a missing repository or path. Treated by callers as
	// "subtree empty", never fatal.
	ErrNotFound = errors.New("github: not found")

	// ErrRateLimited marks an exhausted retry budget against rate limiting.
	ErrRateLimited = errors.New("github: rate limited")
)

const (
	defaultMaxRetries    = 3
	defaultCacheCapacity = 10_000
	defaultCacheTTL      = 15 * time.Minute
)

// Entry is one item of a repository directory listing.
type Entry struct {
	Name string
	Path string
	Type string // "file" or "dir"
	Size int
}

// RepoInfo is the subset of repository metadata the crawler consumes.
type RepoInfo struct {
	Stars      int
	Forks      int
	Watchers   int
	OpenIssues int
	SizeKB     int
	CreatedAt  *time.Time
	UpdatedAt  *time.Time
	PushedAt   *time.Time
	Language   string
	Topics     []string
	Archived   bool
}

// Client is a retrying, caching GitHub API client.
type Client struct {
	gh            *gh.Client
	baseURL       string
	maxRetries    uint64
	retryInterval time.Duration
	rateLimitHits func() // optional stats hook, invoked once per rate-limit response

	contentCache otter.Cache[string, string]
}

// Option configures a Client.
type Option func(*Client)

// WithMaxRetries overrides the retry ceiling for transient failures.
func WithMaxRetries(n int) Option {
	return func(c *Client) {
		if n >= 0 {
			c.maxRetries = uint64(n)
		}
	}
}

// WithBaseURL points API requests at an endpoint other than github.com, such
// as a GitHub Enterprise instance.
func WithBaseURL(rawURL string) Option {
	return func(c *Client) { c.baseURL = rawURL }
}

// WithRateLimitHook registers a callback invoked on every rate-limit response.
func WithRateLimitHook(fn func()) Option {
	return func(c *Client) { c.rateLimitHits = fn }
}

// OnRateLimit replaces the rate-limit callback. Callers that construct the
// client before their stats sink exists use this instead of the option.
func (c *Client) OnRateLimit(fn func()) {
	c.rateLimitHits = fn
}

// NewClient creates a client. An empty token falls back to anonymous access
// with its much lower rate limits.
func NewClient(token string, opts ...Option) (*Client, error) {
	cache, err := otter.MustBuilder[string, string](defaultCacheCapacity).
		WithTTL(defaultCacheTTL).
		Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build content cache: %w", err)
	}

	ghc := gh.NewClient(nil)
	if token != "" {
		ghc = ghc.WithAuthToken(token)
	}

	c := &Client{
		gh:            ghc,
		maxRetries:    defaultMaxRetries,
		retryInterval: time.Second,
		contentCache:  cache,
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.baseURL != "" {
		base, err := url.Parse(strings.TrimSuffix(c.baseURL, "/") + "/")
		if err != nil {
			return nil, fmt.Errorf("invalid base URL %q: %w", c.baseURL, err)
		}
		c.gh.BaseURL = base
	}
	return c, nil
}

// Repository fetches repository metadata.
func (c *Client) Repository(ctx context.Context, owner, repo string) (*RepoInfo, error) {
	var out *RepoInfo
	err := c.retry(ctx, fmt.Sprintf("repos/%s/%s", owner, repo), func() error {
		r, _, err := c.gh.Repositories.Get(ctx, owner, repo)
		if err != nil {
			return err
		}
		out = &RepoInfo{
			Stars:      r.GetStargazersCount(),
			Forks:      r.GetForksCount(),
			Watchers:   r.GetSubscribersCount(),
			OpenIssues: r.GetOpenIssuesCount(),
			SizeKB:     r.GetSize(),
			Language:   r.GetLanguage(),
			Topics:     r.Topics,
			Archived:   r.GetArchived(),
		}
		if ts := r.GetCreatedAt(); !ts.IsZero() {
			t := ts.Time
			out.CreatedAt = &t
		}
		if ts := r.GetUpdatedAt(); !ts.IsZero() {
			t := ts.Time
			out.UpdatedAt = &t
		}
		if ts := r.GetPushedAt(); !ts.IsZero() {
			t := ts.Time
			out.PushedAt = &t
		}
		return nil
	})
	return out, err
}

// ListDirectory lists the entries of a repository directory. An empty path
// lists the repository root.
func (c *Client) ListDirectory(ctx context.Context, owner, repo, path string) ([]Entry, error) {
	var out []Entry
	err := c.retry(ctx, fmt.Sprintf("tree/%s/%s/%s", owner, repo, path), func() error {
		file, dir, _, err := c.gh.Repositories.GetContents(ctx, owner, repo, path, nil)
		if err != nil {
			return err
		}
		if dir == nil && file != nil {
			dir = []*gh.RepositoryContent{file}
		}
		out = out[:0]
		for _, e := range dir {
			out = append(out, Entry{
				Name: e.GetName(),
				Path: e.GetPath(),
				Type: e.GetType(),
				Size: e.GetSize(),
			})
		}
		return nil
	})
	return out, err
}

// FileContent fetches and decodes one file. Responses are cached so that
// repeated scrapes of registry entries sharing a monorepo stay cheap.
func (c *Client) FileContent(ctx context.Context, owner, repo, path string) (string, error) {
	key := owner + "/" + repo + "/" + path
	if content, ok := c.contentCache.Get(key); ok {
		return content, nil
	}

	var content string
	err := c.retry(ctx, key, func() error {
		file, _, _, err := c.gh.Repositories.GetContents(ctx, owner, repo, path, nil)
		if err != nil {
			return err
		}
		if file == nil {
			return ErrNotFound
		}
		content, err = file.GetContent()
		return err
	})
	if err != nil {
		return "", err
	}

	c.contentCache.Set(key, content)
	return content, nil
}

// retry runs op with exponential backoff on transient failures. Not-found
// and other non-transient API errors are returned immediately.
func (c *Client) retry(ctx context.Context, what string, op func() error) error {
	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = c.retryInterval
	policy.MaxInterval = time.Minute

	attempt := func() error {
		err := op()
		if err == nil {
			return nil
		}

		var rateErr *gh.RateLimitError
		var abuseErr *gh.AbuseRateLimitError
		if errors.As(err, &rateErr) || errors.As(err, &abuseErr) {
			if c.rateLimitHits != nil {
				c.rateLimitHits()
			}
			return fmt.Errorf("%w: %s", ErrRateLimited, what)
		}

		var respErr *gh.ErrorResponse
		if errors.As(err, &respErr) && respErr.Response != nil && respErr.Response.StatusCode == 404 {
			return backoff.Permanent(fmt.Errorf("%w: %s", ErrNotFound, what))
		}

		// Other failures (network hiccups, 5xx) are retried as transient.
		return err
	}

	return backoff.Retry(attempt, backoff.WithContext(backoff.WithMaxRetries(policy, c.maxRetries), ctx))
}

// ParseRepoURL splits a GitHub URL into owner, repository, and optional
// in-repository subpath (the /tree/<branch>/<subpath> form used by registry
// entries pointing into monorepos).
func ParseRepoURL(rawURL string) (owner, repo, subpath string, err error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", "", "", fmt.Errorf("invalid URL %q: %w", rawURL, err)
	}
	if u.Host != "github.com" && u.Host != "www.github.com" {
		return "", "", "", fmt.Errorf("not a github.com URL: %s", rawURL)
	}

	parts := strings.Split(strings.Trim(u.Path, "/"), "/")
	if len(parts) < 2 || parts[0] == "" || parts[1] == "" {
		return "", "", "", fmt.Errorf("URL %q has no owner/repo path", rawURL)
	}

	owner = parts[0]
	repo = strings.TrimSuffix(parts[1], ".git")
	if len(parts) > 4 && parts[2] == "tree" {
		subpath = strings.Join(parts[4:], "/")
	}
	return owner, repo, subpath, nil
}
