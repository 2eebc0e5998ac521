package github

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/orbit-labs/gazer-cli/internal/core/domain"
	"github.com/orbit-labs/gazer-cli/internal/logger"
)

// RetryConfig holds configuration for exponential backoff retries.
type RetryConfig struct {
	MaxRetries     int
	InitialBackoff time.Duration
	MaxBackoff     time.Duration
	Multiplier     float64
}

// DefaultRetryConfig returns sensible defaults for GitHub requests.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxRetries:     3,
		InitialBackoff: time.Second,
		MaxBackoff:     30 * time.Second,
		Multiplier:     2.0,
	}
}

// Backoff calculates the wait before attempt (0-indexed). A positive
// retryAfter (from a Retry-After header) overrides the exponential
// schedule, slightly padded so the quota has actually recovered.
func Backoff(cfg RetryConfig, attempt int, retryAfter time.Duration) time.Duration {
	if retryAfter > 0 {
		return retryAfter + 500*time.Millisecond
	}

	backoff := cfg.InitialBackoff
	for i := 0; i < attempt; i++ {
		backoff = time.Duration(float64(backoff) * cfg.Multiplier)
		if backoff > cfg.MaxBackoff {
			return cfg.MaxBackoff
		}
	}
	return backoff
}

// withRetries runs fn up to cfg.MaxRetries times, backing off between
// attempts. Non-transient errors abort immediately. When attempts run
// out the last error is wrapped in domain.ErrRetriesExhausted.
func withRetries(ctx context.Context, cfg RetryConfig, what string, fn func() error) error {
	var lastErr error

	for attempt := 0; attempt < cfg.MaxRetries; attempt++ {
		lastErr = fn()
		if lastErr == nil {
			return nil
		}
		if !IsTransient(lastErr) {
			return lastErr
		}

		var retryAfter time.Duration
		var rateErr *RateLimitError
		if errors.As(lastErr, &rateErr) {
			retryAfter = time.Until(rateErr.ResetAt)
		}

		wait := Backoff(cfg, attempt, retryAfter)
		logger.Warn("%s failed (attempt %d/%d), retrying in %s: %v",
			what, attempt+1, cfg.MaxRetries, wait, lastErr)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(wait):
		}
	}

	return fmt.Errorf("%s: %w: %w", what, domain.ErrRetriesExhausted, lastErr)
}
