package discord

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/orbit-labs/gazer-cli/internal/core/domain"
	"github.com/orbit-labs/gazer-cli/internal/core/ports/driven"
	"github.com/orbit-labs/gazer-cli/internal/logger"
)

const (
	// DefaultBaseURL is the Discord REST API root.
	DefaultBaseURL = "https://discord.com/api/v9"

	// MaxBatchSize is the largest message batch the API will return.
	MaxBatchSize = 100

	// DefaultTimeout bounds a single history request.
	DefaultTimeout = 30 * time.Second

	browserUserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/133.0.0.0 Safari/537.36"
)

// Ensure Client implements the history port.
var _ driven.HistoryClient = (*Client)(nil)

// RetryConfig holds configuration for exponential backoff retries.
type RetryConfig struct {
	MaxRetries     int
	InitialBackoff time.Duration
	MaxBackoff     time.Duration
	Multiplier     float64
}

// DefaultRetryConfig returns sensible defaults for history requests.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxRetries:     3,
		InitialBackoff: time.Second,
		MaxBackoff:     30 * time.Second,
		Multiplier:     2.0,
	}
}

// Client talks to the Discord channel message API. Requests mimic the
// web client's headers; the API serves user tokens only to requests
// that look like the official frontend.
type Client struct {
	http    *resty.Client
	baseURL string
	retry   RetryConfig
}

// NewClient creates a history client authorized with the given token.
func NewClient(token string, retry RetryConfig) *Client {
	http := resty.New().
		SetTimeout(DefaultTimeout).
		SetHeader("Authorization", token).
		SetHeader("User-Agent", browserUserAgent).
		SetHeader("Accept", "*/*").
		SetHeader("Accept-Language", "en-GB,en;q=0.9").
		SetHeader("X-Discord-Locale", "en-US")

	return &Client{
		http:    http,
		baseURL: DefaultBaseURL,
		retry:   retry,
	}
}

// rateLimitBody is the JSON payload of a 429 response.
type rateLimitBody struct {
	Message    string  `json:"message"`
	RetryAfter float64 `json:"retry_after"`
	Global     bool    `json:"global"`
}

// apiErrorBody is the JSON payload of a non-429 error response.
type apiErrorBody struct {
	Message string `json:"message"`
	Code    int    `json:"code"`
}

// Messages fetches one batch of channel history. Batches arrive
// newest-first. Rate limits and server errors are retried with backoff
// honouring the retry_after the API hands back.
func (c *Client) Messages(ctx context.Context, channelID string, q driven.HistoryQuery) ([]domain.ChatMessage, error) {
	if !domain.ValidSnowflake(channelID) {
		return nil, fmt.Errorf("channel %q: %w", channelID, domain.ErrInvalidSnowflake)
	}

	limit := q.Limit
	if limit <= 0 || limit > MaxBatchSize {
		limit = MaxBatchSize
	}

	url := fmt.Sprintf("%s/channels/%s/messages", c.baseURL, channelID)

	var body []byte
	err := c.withRetries(ctx, fmt.Sprintf("fetch history for channel %s", channelID), func() error {
		req := c.http.R().
			SetContext(ctx).
			SetQueryParam("limit", fmt.Sprintf("%d", limit))
		if q.Before != "" {
			req.SetQueryParam("before", q.Before)
		}
		if q.After != "" {
			req.SetQueryParam("after", q.After)
		}
		if q.Around != "" {
			req.SetQueryParam("around", q.Around)
		}

		resp, err := req.Get(url)
		if err != nil {
			return err
		}
		if resp.StatusCode() != 200 {
			return c.wrapErrorResponse(resp)
		}
		body = resp.Body()
		return nil
	})
	if err != nil {
		return nil, err
	}

	return decodeMessages(channelID, body)
}

func (c *Client) wrapErrorResponse(resp *resty.Response) error {
	if resp.StatusCode() == 429 {
		var rl rateLimitBody
		retryAfter := time.Second
		if jsonErr := json.Unmarshal(resp.Body(), &rl); jsonErr == nil && rl.RetryAfter > 0 {
			retryAfter = time.Duration(rl.RetryAfter * float64(time.Second))
		}
		return &RateLimitError{RetryAfter: retryAfter, Global: rl.Global}
	}

	var apiErr apiErrorBody
	message := resp.Status()
	if jsonErr := json.Unmarshal(resp.Body(), &apiErr); jsonErr == nil && apiErr.Message != "" {
		message = apiErr.Message
	}
	return &APIError{
		StatusCode: resp.StatusCode(),
		Message:    message,
		URL:        resp.Request.URL,
	}
}

// decodeMessages decodes a history batch, keeping each message's raw
// payload alongside the decoded cursor and author fields.
func decodeMessages(channelID string, body []byte) ([]domain.ChatMessage, error) {
	var raws []json.RawMessage
	if err := json.Unmarshal(body, &raws); err != nil {
		return nil, fmt.Errorf("decode history batch: %w", err)
	}

	messages := make([]domain.ChatMessage, 0, len(raws))
	for _, raw := range raws {
		var msg domain.ChatMessage
		if err := json.Unmarshal(raw, &msg); err != nil {
			logger.Debug("discord: skipping undecodable message: %v", err)
			continue
		}
		if msg.ChannelID == "" {
			msg.ChannelID = channelID
		}
		msg.Raw = raw
		messages = append(messages, msg)
	}
	return messages, nil
}

// withRetries runs fn up to retry.MaxRetries times with exponential
// backoff, letting a rate limit's retry_after override the schedule.
func (c *Client) withRetries(ctx context.Context, what string, fn func() error) error {
	var lastErr error

	for attempt := 0; attempt < c.retry.MaxRetries; attempt++ {
		lastErr = fn()
		if lastErr == nil {
			return nil
		}
		if !IsTransient(lastErr) {
			return lastErr
		}

		wait := c.backoff(attempt, lastErr)
		logger.Warn("%s failed (attempt %d/%d), retrying in %s: %v",
			what, attempt+1, c.retry.MaxRetries, wait, lastErr)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(wait):
		}
	}

	return fmt.Errorf("%s: %w: %w", what, domain.ErrRetriesExhausted, lastErr)
}

func (c *Client) backoff(attempt int, err error) time.Duration {
	var rle *RateLimitError
	if errors.As(err, &rle) && rle.RetryAfter > 0 {
		return rle.RetryAfter + 500*time.Millisecond
	}

	backoff := c.retry.InitialBackoff
	for i := 0; i < attempt; i++ {
		backoff = time.Duration(float64(backoff) * c.retry.Multiplier)
		if backoff > c.retry.MaxBackoff {
			return c.retry.MaxBackoff
		}
	}
	return backoff
}
