package github

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/orbit-labs/gazer-cli/internal/core/domain"
)

// TestBackoff_Exponential tests the doubling schedule
func TestBackoff_Exponential(t *testing.T) {
	cfg := RetryConfig{
		InitialBackoff: time.Second,
		MaxBackoff:     30 * time.Second,
		Multiplier:     2.0,
	}

	assert.Equal(t, 1*time.Second, Backoff(cfg, 0, 0))
	assert.Equal(t, 2*time.Second, Backoff(cfg, 1, 0))
	assert.Equal(t, 4*time.Second, Backoff(cfg, 2, 0))
	assert.Equal(t, 8*time.Second, Backoff(cfg, 3, 0))
}

// TestBackoff_CapsAtMax tests the ceiling
func TestBackoff_CapsAtMax(t *testing.T) {
	cfg := RetryConfig{
		InitialBackoff: time.Second,
		MaxBackoff:     5 * time.Second,
		Multiplier:     2.0,
	}

	assert.Equal(t, 5*time.Second, Backoff(cfg, 10, 0))
}

// TestBackoff_RetryAfterOverrides tests that Retry-After wins, padded
func TestBackoff_RetryAfterOverrides(t *testing.T) {
	cfg := DefaultRetryConfig()

	got := Backoff(cfg, 0, 3*time.Second)
	assert.Equal(t, 3*time.Second+500*time.Millisecond, got)
}

// TestWithRetries_NonTransientAbortsImmediately tests 404 handling
func TestWithRetries_NonTransientAbortsImmediately(t *testing.T) {
	calls := 0
	err := withRetries(context.Background(), testRetryConfig(), "probe", func() error {
		calls++
		return &APIError{StatusCode: 404, Message: "missing"}
	})

	assert.Equal(t, 1, calls)
	assert.True(t, IsNotFound(err))
}

// TestWithRetries_TransientRetriedThenWrapped tests retry exhaustion
func TestWithRetries_TransientRetriedThenWrapped(t *testing.T) {
	calls := 0
	boom := errors.New("connection reset")
	err := withRetries(context.Background(), testRetryConfig(), "probe", func() error {
		calls++
		return boom
	})

	assert.Equal(t, 2, calls)
	assert.ErrorIs(t, err, domain.ErrRetriesExhausted)
	assert.ErrorIs(t, err, boom)
}

// TestWithRetries_SuccessStops tests that success short-circuits
func TestWithRetries_SuccessStops(t *testing.T) {
	calls := 0
	err := withRetries(context.Background(), testRetryConfig(), "probe", func() error {
		calls++
		if calls == 1 {
			return errors.New("flaky")
		}
		return nil
	})

	assert.NoError(t, err)
	assert.Equal(t, 2, calls)
}

// TestIsTransient tests the retry classification
func TestIsTransient(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		transient bool
	}{
		{"nil", nil, false},
		{"server error", &APIError{StatusCode: 502}, true},
		{"too many requests", &APIError{StatusCode: 429}, true},
		{"not found", &APIError{StatusCode: 404}, false},
		{"unauthorized", &APIError{StatusCode: 401}, false},
		{"rate limited", &RateLimitError{ResetAt: time.Now()}, true},
		{"network", errors.New("dial tcp: timeout"), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.transient, IsTransient(tt.err))
		})
	}
}
