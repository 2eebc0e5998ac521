package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/orbit-labs/gazer-cli/internal/core/domain"
	"github.com/orbit-labs/gazer-cli/internal/core/ports/driven"
	"github.com/orbit-labs/gazer-cli/internal/core/ports/driving"
	"github.com/orbit-labs/gazer-cli/internal/logger"
)

// maxHistoryBatch is the largest batch the chat platform returns.
const maxHistoryBatch = 100

// Ensure ChatArchiver implements the interface.
var _ driving.ChatArchiver = (*ChatArchiver)(nil)

// ChatArchiver fetches a channel's history around a reference message,
// merges both directions into a single chronological stream and
// extracts the participants.
type ChatArchiver struct {
	history  driven.HistoryClient
	exporter driven.ChatExporter
}

// NewChatArchiver creates a new chat archiver.
func NewChatArchiver(history driven.HistoryClient, exporter driven.ChatExporter) *ChatArchiver {
	return &ChatArchiver{
		history:  history,
		exporter: exporter,
	}
}

// Archive walks the channel history and writes the archive outputs.
// Without a reference it pages backwards from the newest message up to
// opts.MaxBefore. With one it walks both directions from the reference,
// fetching the reference itself separately when neither walk returned
// it. The result is deduplicated by message ID and strictly ascending.
func (a *ChatArchiver) Archive(ctx context.Context, channelID string, opts driving.ChatOptions) (*driving.ChatResult, error) {
	if !domain.ValidSnowflake(channelID) {
		return nil, fmt.Errorf("channel %q: %w", channelID, domain.ErrInvalidSnowflake)
	}
	if opts.Reference != "" && !domain.ValidSnowflake(opts.Reference) {
		return nil, fmt.Errorf("reference %q: %w", opts.Reference, domain.ErrInvalidSnowflake)
	}
	if opts.MaxBefore <= 0 {
		opts.MaxBefore = 250
	}
	if opts.MaxAfter <= 0 {
		opts.MaxAfter = 250
	}

	logger.Section(fmt.Sprintf("Archiving channel %s", channelID))

	var collected []domain.ChatMessage

	if opts.Reference == "" {
		logger.Info("no reference message, walking back from the newest")
		before, err := a.walkBefore(ctx, channelID, "", opts.MaxBefore, opts.Delay)
		if err != nil {
			return nil, err
		}
		collected = before
	} else {
		logger.Info("walking history around message %s", opts.Reference)
		before, err := a.walkBefore(ctx, channelID, opts.Reference, opts.MaxBefore, opts.Delay)
		if err != nil {
			return nil, err
		}
		after, err := a.walkAfter(ctx, channelID, opts.Reference, opts.MaxAfter, opts.Delay)
		if err != nil {
			return nil, err
		}

		collected = append(before, after...)
		if !containsMessage(collected, opts.Reference) {
			ref, err := a.fetchReference(ctx, channelID, opts.Reference)
			if err != nil {
				return nil, err
			}
			collected = append(collected, ref...)
		}
	}

	messages := dedupeAndSort(collected)
	users := extractUsers(messages)
	logger.Info("archived %d unique messages from %d users", len(messages), len(users))

	result := &driving.ChatResult{
		Messages: messages,
		Users:    users,
	}
	if opts.FocusUser != "" {
		result.FocusMessages = filterByAuthor(messages, opts.FocusUser)
		logger.Info("focus user %s wrote %d of them", opts.FocusUser, len(result.FocusMessages))
	}

	if err := a.exporter.WriteUsers(users); err != nil {
		return nil, fmt.Errorf("write users: %w", err)
	}
	if err := a.exporter.WriteMessages(messages); err != nil {
		return nil, fmt.Errorf("write messages: %w", err)
	}
	if opts.FocusUser != "" {
		if err := a.exporter.WriteUserMessages(opts.FocusUser, result.FocusMessages); err != nil {
			return nil, fmt.Errorf("write focus messages: %w", err)
		}
	}

	return result, nil
}

// walkBefore pages backwards in time. Batches come newest-first, so the
// cursor for the next batch is the last (oldest) message of the current
// one. An empty cursor starts from the newest message in the channel.
func (a *ChatArchiver) walkBefore(ctx context.Context, channelID, cursor string, max int, delay time.Duration) ([]domain.ChatMessage, error) {
	var all []domain.ChatMessage

	for len(all) < max {
		batchSize := min(maxHistoryBatch, max-len(all))
		batch, err := a.history.Messages(ctx, channelID, driven.HistoryQuery{
			Limit:  batchSize,
			Before: cursor,
		})
		if err != nil {
			return nil, fmt.Errorf("walk before %s: %w", cursor, err)
		}
		if len(batch) == 0 {
			break
		}

		all = append(all, batch...)
		cursor = batch[len(batch)-1].ID
		logger.Debug("fetched %d messages walking back, %d total", len(batch), len(all))

		if len(batch) < batchSize {
			break
		}
		if err := pause(ctx, delay); err != nil {
			return all, err
		}
	}

	return all, nil
}

// walkAfter pages forwards in time from the cursor. The next cursor is
// the first (newest) message of each batch.
func (a *ChatArchiver) walkAfter(ctx context.Context, channelID, cursor string, max int, delay time.Duration) ([]domain.ChatMessage, error) {
	var all []domain.ChatMessage

	for len(all) < max {
		batchSize := min(maxHistoryBatch, max-len(all))
		batch, err := a.history.Messages(ctx, channelID, driven.HistoryQuery{
			Limit: batchSize,
			After: cursor,
		})
		if err != nil {
			return nil, fmt.Errorf("walk after %s: %w", cursor, err)
		}
		if len(batch) == 0 {
			break
		}

		all = append(all, batch...)
		cursor = batch[0].ID
		logger.Debug("fetched %d messages walking forward, %d total", len(batch), len(all))

		if len(batch) < batchSize {
			break
		}
		if err := pause(ctx, delay); err != nil {
			return all, err
		}
	}

	return all, nil
}

// fetchReference fetches the reference message itself via around=.
func (a *ChatArchiver) fetchReference(ctx context.Context, channelID, reference string) ([]domain.ChatMessage, error) {
	batch, err := a.history.Messages(ctx, channelID, driven.HistoryQuery{
		Limit:  1,
		Around: reference,
	})
	if err != nil {
		return nil, fmt.Errorf("fetch reference %s: %w", reference, err)
	}
	return batch, nil
}

func containsMessage(messages []domain.ChatMessage, id string) bool {
	for _, m := range messages {
		if m.ID == id {
			return true
		}
	}
	return false
}

// dedupeAndSort keeps one message per ID and orders the result
// chronologically by snowflake.
func dedupeAndSort(messages []domain.ChatMessage) []domain.ChatMessage {
	byID := make(map[string]domain.ChatMessage, len(messages))
	for _, m := range messages {
		byID[m.ID] = m
	}

	unique := make([]domain.ChatMessage, 0, len(byID))
	for _, m := range byID {
		unique = append(unique, m)
	}
	sort.Slice(unique, func(i, j int) bool {
		return domain.CompareSnowflakes(unique[i].ID, unique[j].ID) < 0
	})
	return unique
}

// extractUsers collects the unique authors and mentioned users, in
// order of first appearance.
func extractUsers(messages []domain.ChatMessage) []domain.ChatUser {
	seen := make(map[string]bool)
	var users []domain.ChatUser

	add := func(u domain.ChatUser) {
		if u.ID == "" || seen[u.ID] {
			return
		}
		seen[u.ID] = true
		users = append(users, u)
	}

	for _, m := range messages {
		add(m.Author)
		for _, mention := range m.Mentions {
			add(mention)
		}
	}
	return users
}

func filterByAuthor(messages []domain.ChatMessage, userID string) []domain.ChatMessage {
	var out []domain.ChatMessage
	for _, m := range messages {
		if m.Author.ID == userID {
			out = append(out, m)
		}
	}
	return out
}

// pause sleeps for the courtesy delay, honouring cancellation.
func pause(ctx context.Context, delay time.Duration) error {
	if delay <= 0 {
		return nil
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(delay):
		return nil
	}
}
