package driving

import (
	"context"
	"time"

	"github.com/orbit-labs/gazer-cli/internal/core/domain"
)

// ChatOptions control a chat archive run.
type ChatOptions struct {
	// Reference is the message ID to page around. Empty means walk
	// backwards from the newest message.
	Reference string

	// MaxBefore and MaxAfter cap how many messages are fetched on each
	// side of the reference.
	MaxBefore int
	MaxAfter  int

	// FocusUser selects a user whose messages are additionally exported
	// on their own.
	FocusUser string

	// Delay is the pause between history batches.
	Delay time.Duration
}

// ChatResult is the outcome of an archive run: deduplicated messages in
// chronological order plus the participants extracted from them.
type ChatResult struct {
	Messages []domain.ChatMessage
	Users    []domain.ChatUser

	// FocusMessages are the FocusUser's messages, empty when no focus
	// user was requested or none were found.
	FocusMessages []domain.ChatMessage
}

// ChatArchiver fetches a channel's history around a reference point and
// extracts participant records.
type ChatArchiver interface {
	Archive(ctx context.Context, channelID string, opts ChatOptions) (*ChatResult, error)
}
