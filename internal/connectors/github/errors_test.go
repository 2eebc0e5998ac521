package github

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/orbit-labs/gazer-cli/internal/core/domain"
)

// TestAPIError_SentinelMapping tests that API errors unwrap to the
// matching domain sentinels
func TestAPIError_SentinelMapping(t *testing.T) {
	unauthorized := &APIError{StatusCode: 401, Message: "Bad credentials"}
	assert.True(t, errors.Is(unauthorized, domain.ErrAuthInvalid))
	assert.True(t, IsUnauthorized(unauthorized))

	missing := &APIError{StatusCode: 404, Message: "Not Found"}
	assert.True(t, errors.Is(missing, domain.ErrNotFound))
	assert.True(t, IsNotFound(missing))

	server := &APIError{StatusCode: 502, Message: "Bad Gateway"}
	assert.False(t, errors.Is(server, domain.ErrAuthInvalid))
	assert.False(t, errors.Is(server, domain.ErrNotFound))
}

// TestRateLimitError_SentinelMapping tests the rate limit sentinel,
// including through wrapping
func TestRateLimitError_SentinelMapping(t *testing.T) {
	rle := &RateLimitError{ResetAt: time.Now().Add(time.Minute)}
	assert.True(t, errors.Is(rle, domain.ErrRateLimited))

	wrapped := fmt.Errorf("get user octocat: %w", rle)
	assert.True(t, errors.Is(wrapped, domain.ErrRateLimited))
	assert.True(t, IsRateLimited(wrapped))
}
