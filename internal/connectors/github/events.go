package github

import (
	"context"

	gh "github.com/google/go-github/v80/github"

	"github.com/orbit-labs/gazer-cli/internal/core/domain"
	"github.com/orbit-labs/gazer-cli/internal/core/ports/driven"
	"github.com/orbit-labs/gazer-cli/internal/logger"
)

// Ensure EventSource implements the interface.
var _ driven.EmailSource = (*EventSource)(nil)

// EventSource scans the user's public push events. Push payloads embed
// the commit author email, which catches users who only push to
// repositories they do not own.
type EventSource struct {
	client *Client
}

// NewEventSource creates the event probe.
func NewEventSource(client *Client) *EventSource {
	return &EventSource{client: client}
}

// Name identifies the source in output records.
func (s *EventSource) Name() domain.EmailSource {
	return domain.SourceEvent
}

// Priority orders the chain; events are consulted after commits.
func (s *EventSource) Priority() int {
	return 3
}

// Lookup returns the first usable commit email found in recent push events.
func (s *EventSource) Lookup(ctx context.Context, username string) (*driven.EmailLookup, error) {
	events, err := s.client.PublicEvents(ctx, username, MaxEventsPerUser)
	if err != nil {
		if IsNotFound(err) {
			return &driven.EmailLookup{}, nil
		}
		return nil, err
	}

	for _, event := range events {
		if event.GetType() != "PushEvent" {
			continue
		}

		payload, err := event.ParsePayload()
		if err != nil {
			logger.Debug("event: unparseable payload for %s: %v", username, err)
			continue
		}
		push, ok := payload.(*gh.PushEvent)
		if !ok {
			continue
		}

		for _, commit := range push.Commits {
			email := commit.GetAuthor().GetEmail()
			if domain.UsableEmail(email) {
				return &driven.EmailLookup{Email: email}, nil
			}
		}
	}

	return &driven.EmailLookup{}, nil
}
