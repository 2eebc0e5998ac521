package github

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	gh "github.com/google/go-github/v80/github"
	"golang.org/x/oauth2"
)

const (
	// DefaultTimeout is the default HTTP request timeout.
	DefaultTimeout = 30 * time.Second

	// MaxReposPerUser caps how many of a user's repositories the commit
	// and patch probes inspect.
	MaxReposPerUser = 10

	// MaxCommitsPerRepo caps how many commits per repository the commit
	// probe inspects.
	MaxCommitsPerRepo = 100

	// MaxEventsPerUser caps how many public events the event probe inspects.
	MaxEventsPerUser = 30
)

// Client wraps the go-github client with the lookups the email sources
// need. All calls pass through the shared rate limiter.
type Client struct {
	gh          *gh.Client
	rateLimiter *RateLimiter
	retry       RetryConfig
}

// NewClient creates a GitHub API client. An empty token selects
// unauthenticated requests, which carry a far smaller hourly quota.
func NewClient(ctx context.Context, token string) *Client {
	var hc *http.Client
	if token != "" {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
		hc = oauth2.NewClient(ctx, ts)
	} else {
		hc = &http.Client{}
	}
	hc.Timeout = DefaultTimeout

	c := &Client{
		gh:          gh.NewClient(hc),
		rateLimiter: NewRateLimiter(DefaultRate),
		retry:       DefaultRetryConfig(),
	}
	if token == "" {
		c.rateLimiter.remaining = UnauthenticatedLimit
		c.rateLimiter.limit = UnauthenticatedLimit
	}
	return c
}

// newClientFromGH wires an existing go-github client; used by tests to
// point at an httptest server.
func newClientFromGH(ghc *gh.Client) *Client {
	return &Client{
		gh:          ghc,
		rateLimiter: NewRateLimiter(1000), // no throttling in tests
		retry:       RetryConfig{MaxRetries: 1, InitialBackoff: time.Millisecond, MaxBackoff: time.Millisecond, Multiplier: 1},
	}
}

// RateLimiter returns the shared rate limiter.
func (c *Client) RateLimiter() *RateLimiter {
	return c.rateLimiter
}

// SetRetries overrides the per-request retry attempt count.
func (c *Client) SetRetries(attempts int) {
	if attempts > 0 {
		c.retry.MaxRetries = attempts
	}
}

// User fetches a user's public profile.
func (c *Client) User(ctx context.Context, username string) (*gh.User, error) {
	var user *gh.User
	err := withRetries(ctx, c.retry, "get user "+username, func() error {
		if err := c.rateLimiter.Wait(ctx); err != nil {
			return err
		}
		u, resp, err := c.gh.Users.Get(ctx, username)
		c.updateRateLimitFromResponse(resp)
		if err != nil {
			return c.wrapError(err, "get user")
		}
		user = u
		return nil
	})
	return user, err
}

// ReposByUser lists a user's most recently updated repositories.
func (c *Client) ReposByUser(ctx context.Context, username string, limit int) ([]*gh.Repository, error) {
	opts := &gh.RepositoryListByUserOptions{
		Sort:        "updated",
		ListOptions: gh.ListOptions{PerPage: limit},
	}

	var repos []*gh.Repository
	err := withRetries(ctx, c.retry, "list repos for "+username, func() error {
		if err := c.rateLimiter.Wait(ctx); err != nil {
			return err
		}
		rs, resp, err := c.gh.Repositories.ListByUser(ctx, username, opts)
		c.updateRateLimitFromResponse(resp)
		if err != nil {
			return c.wrapError(err, "list repos")
		}
		repos = rs
		return nil
	})
	return repos, err
}

// CommitsByAuthor lists a user's commits in one repository.
func (c *Client) CommitsByAuthor(ctx context.Context, owner, repo, author string, limit int) ([]*gh.RepositoryCommit, error) {
	opts := &gh.CommitsListOptions{
		Author:      author,
		ListOptions: gh.ListOptions{PerPage: limit},
	}

	var commits []*gh.RepositoryCommit
	err := withRetries(ctx, c.retry, fmt.Sprintf("list commits %s/%s", owner, repo), func() error {
		if err := c.rateLimiter.Wait(ctx); err != nil {
			return err
		}
		cs, resp, err := c.gh.Repositories.ListCommits(ctx, owner, repo, opts)
		c.updateRateLimitFromResponse(resp)
		if err != nil {
			return c.wrapError(err, "list commits")
		}
		commits = cs
		return nil
	})
	return commits, err
}

// PublicEvents lists a user's recent public events.
func (c *Client) PublicEvents(ctx context.Context, username string, limit int) ([]*gh.Event, error) {
	opts := &gh.ListOptions{PerPage: limit}

	var events []*gh.Event
	err := withRetries(ctx, c.retry, "list events for "+username, func() error {
		if err := c.rateLimiter.Wait(ctx); err != nil {
			return err
		}
		es, resp, err := c.gh.Activity.ListEventsPerformedByUser(ctx, username, true, opts)
		c.updateRateLimitFromResponse(resp)
		if err != nil {
			return c.wrapError(err, "list events")
		}
		events = es
		return nil
	})
	return events, err
}

// ValidateCredentials checks the token by fetching the authenticated user.
func (c *Client) ValidateCredentials(ctx context.Context) error {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return err
	}
	_, resp, err := c.gh.Users.Get(ctx, "")
	c.updateRateLimitFromResponse(resp)
	if err != nil {
		return c.wrapError(err, "validate credentials")
	}
	return nil
}

// updateRateLimitFromResponse updates the rate limiter from GitHub response headers.
func (c *Client) updateRateLimitFromResponse(resp *gh.Response) {
	if resp == nil || resp.Response == nil {
		return
	}
	c.rateLimiter.UpdateFromResponse(resp.Response)
}

// wrapError converts go-github errors to our error types.
func (c *Client) wrapError(err error, operation string) error {
	if err == nil {
		return nil
	}

	var rateLimitErr *gh.RateLimitError
	if errors.As(err, &rateLimitErr) {
		return &RateLimitError{
			ResetAt:   c.rateLimiter.ResetTime(),
			Remaining: c.rateLimiter.Remaining(),
			Limit:     c.rateLimiter.Limit(),
		}
	}

	var ghErr *gh.ErrorResponse
	if errors.As(err, &ghErr) && ghErr.Response != nil {
		return &APIError{
			StatusCode: ghErr.Response.StatusCode,
			Message:    ghErr.Message,
			URL:        ghErr.Response.Request.URL.String(),
		}
	}

	return fmt.Errorf("%s: %w", operation, err)
}
