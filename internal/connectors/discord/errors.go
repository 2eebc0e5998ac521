package discord

import (
	"errors"
	"fmt"
	"time"

	"github.com/orbit-labs/gazer-cli/internal/core/domain"
)

// APIError represents a Discord API error response.
type APIError struct {
	StatusCode int
	Message    string
	URL        string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("discord API error %d: %s (%s)", e.StatusCode, e.Message, e.URL)
}

// Unwrap maps well-known statuses onto the domain sentinels so callers
// can use errors.Is without knowing which connector produced the error.
func (e *APIError) Unwrap() error {
	switch e.StatusCode {
	case 401:
		return domain.ErrAuthInvalid
	case 404:
		return domain.ErrNotFound
	default:
		return nil
	}
}

// RateLimitError is returned on a 429 response. RetryAfter carries the
// wait the API asked for, taken from the retry_after body field.
type RateLimitError struct {
	RetryAfter time.Duration
	Global     bool
}

func (e *RateLimitError) Error() string {
	scope := "route"
	if e.Global {
		scope = "global"
	}
	return fmt.Sprintf("discord rate limit (%s): retry after %s", scope, e.RetryAfter)
}

func (e *RateLimitError) Unwrap() error {
	return domain.ErrRateLimited
}

// IsRateLimited reports whether err is a 429 rate limit response.
func IsRateLimited(err error) bool {
	var rle *RateLimitError
	return errors.As(err, &rle)
}

// IsTransient reports whether a request is worth retrying. Rate limits
// and server errors are retryable; other 4xx responses are not, the
// original request will not fare better a second time.
func IsTransient(err error) bool {
	if err == nil {
		return false
	}
	var rle *RateLimitError
	if errors.As(err, &rle) {
		return true
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode >= 500
	}
	// Plain network errors (timeouts, resets) are transient.
	return true
}
