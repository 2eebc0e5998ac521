package github

import (
	"context"
	"net/http"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func responseWithHeaders(h map[string]string) *http.Response {
	resp := &http.Response{Header: http.Header{}}
	for k, v := range h {
		resp.Header.Set(k, v)
	}
	return resp
}

// TestRateLimiter_UpdateFromResponse tests header parsing
func TestRateLimiter_UpdateFromResponse(t *testing.T) {
	rl := NewRateLimiter(1000)

	reset := time.Now().Add(30 * time.Minute).Unix()
	rl.UpdateFromResponse(responseWithHeaders(map[string]string{
		HeaderRateLimit:     "5000",
		HeaderRateRemaining: "4321",
		HeaderRateReset:     strconv.FormatInt(reset, 10),
	}))

	assert.Equal(t, 5000, rl.Limit())
	assert.Equal(t, 4321, rl.Remaining())
	assert.Equal(t, time.Unix(reset, 0), rl.ResetTime())
}

// TestRateLimiter_IgnoresMalformedHeaders tests that unparsable or missing
// headers leave the tracked state untouched
func TestRateLimiter_IgnoresMalformedHeaders(t *testing.T) {
	rl := NewRateLimiter(1000)

	rl.UpdateFromResponse(responseWithHeaders(map[string]string{
		HeaderRateRemaining: "not-a-number",
	}))
	assert.Equal(t, AuthenticatedLimit, rl.Remaining())

	rl.UpdateFromResponse(nil)
	assert.Equal(t, AuthenticatedLimit, rl.Remaining())
}

// TestRateLimiter_WaitWithQuota tests the fast path with plenty of quota left
func TestRateLimiter_WaitWithQuota(t *testing.T) {
	rl := NewRateLimiter(1000)

	start := time.Now()
	require.NoError(t, rl.Wait(context.Background()))
	assert.Less(t, time.Since(start), 100*time.Millisecond)
}

// TestRateLimiter_WaitSleepsUntilReset tests the reactive path: once the
// remaining quota drops under the reserve, Wait holds until the reset time
func TestRateLimiter_WaitSleepsUntilReset(t *testing.T) {
	rl := NewRateLimiter(1000)

	reset := time.Now().Add(80 * time.Millisecond)
	rl.mu.Lock()
	rl.remaining = MinBuffer - 1
	rl.resetTime = reset
	rl.mu.Unlock()

	start := time.Now()
	require.NoError(t, rl.Wait(context.Background()))
	assert.GreaterOrEqual(t, time.Since(start), 60*time.Millisecond,
		"near-exhaustion must hold until the quota reset")
}

// TestRateLimiter_WaitHonoursCancellation tests that a reset wait can be
// abandoned through the context
func TestRateLimiter_WaitHonoursCancellation(t *testing.T) {
	rl := NewRateLimiter(1000)

	rl.mu.Lock()
	rl.remaining = 0
	rl.resetTime = time.Now().Add(time.Hour)
	rl.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	err := rl.Wait(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

// TestRateLimiter_SkipsPassedReset tests that a reset time in the past does
// not block even with the reserve spent
func TestRateLimiter_SkipsPassedReset(t *testing.T) {
	rl := NewRateLimiter(1000)

	rl.mu.Lock()
	rl.remaining = 0
	rl.resetTime = time.Now().Add(-time.Minute)
	rl.mu.Unlock()

	start := time.Now()
	require.NoError(t, rl.Wait(context.Background()))
	assert.Less(t, time.Since(start), 100*time.Millisecond)
}

// TestNewRateLimiter_DefaultRate tests the rps clamp
func TestNewRateLimiter_DefaultRate(t *testing.T) {
	rl := NewRateLimiter(0)
	require.NotNil(t, rl)
	assert.Equal(t, AuthenticatedLimit, rl.Remaining())
	assert.Equal(t, AuthenticatedLimit, rl.Limit())
}

// TestNewClient_QuotaInitialisation tests that an absent token selects the
// unauthenticated hourly quota
func TestNewClient_QuotaInitialisation(t *testing.T) {
	anon := NewClient(context.Background(), "")
	assert.Equal(t, UnauthenticatedLimit, anon.RateLimiter().Remaining())
	assert.Equal(t, UnauthenticatedLimit, anon.RateLimiter().Limit())

	authed := NewClient(context.Background(), "ghp_sometoken")
	assert.Equal(t, AuthenticatedLimit, authed.RateLimiter().Remaining())
	assert.Equal(t, AuthenticatedLimit, authed.RateLimiter().Limit())
}
