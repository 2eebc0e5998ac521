package github

import (
	"errors"
	"fmt"
	"time"

	"github.com/orbit-labs/gazer-cli/internal/core/domain"
)

// GitHub-specific errors.
var (
	// ErrUserNotFound indicates the user does not exist or is not visible.
	ErrUserNotFound = errors.New("github: user not found")
)

// RateLimitError represents a rate limit exceeded error with reset time.
type RateLimitError struct {
	ResetAt   time.Time
	Remaining int
	Limit     int
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("github: rate limit exceeded, resets at %s", e.ResetAt.Format(time.RFC3339))
}

func (e *RateLimitError) Unwrap() error {
	return domain.ErrRateLimited
}

// APIError represents a GitHub API error response.
type APIError struct {
	StatusCode int
	Message    string
	URL        string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("github: API error %d: %s (URL: %s)", e.StatusCode, e.Message, e.URL)
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

// IsNotFound checks if the error indicates a resource was not found.
// Missing resources end a probe; they are never retried.
func IsNotFound(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == 404
	}
	return errors.Is(err, ErrUserNotFound)
}

// IsRateLimited checks if the error indicates rate limiting.
func IsRateLimited(err error) bool {
	var rateLimitErr *RateLimitError
	return errors.As(err, &rateLimitErr)
}

// IsUnauthorized checks if the error indicates an authentication failure.
func IsUnauthorized(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == 401
	}
	return false
}

// IsTransient reports whether a request is worth retrying: server-side
// failures and plain network errors, but not auth or not-found responses.
func IsTransient(err error) bool {
	if err == nil {
		return false
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode >= 500 || apiErr.StatusCode == 429
	}
	if IsRateLimited(err) {
		return true
	}
	return !IsNotFound(err) && !IsUnauthorized(err)
}
