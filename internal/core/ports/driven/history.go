package driven

import (
	"context"

	"github.com/orbit-labs/gazer-cli/internal/core/domain"
)

// HistoryQuery selects one batch of channel history. At most one of
// Before, After or Around may be set; all are snowflake message IDs.
type HistoryQuery struct {
	// Limit is the batch size, capped at 100 by the platform.
	Limit int

	Before string
	After  string
	Around string
}

// HistoryClient fetches message history batches from a chat channel.
// Batches are returned newest-first, as the platform delivers them.
type HistoryClient interface {
	Messages(ctx context.Context, channelID string, q HistoryQuery) ([]domain.ChatMessage, error)
}
