package driven

import "github.com/orbit-labs/gazer-cli/internal/core/domain"

// StargazerExporter appends stargazer rows to an output file.
type StargazerExporter interface {
	Append(s domain.Stargazer) error

	// Flush forces buffered rows to disk; the collector calls it at
	// progress checkpoints so an interrupted run loses little.
	Flush() error

	Close() error
}

// EmailExporter appends resolved email records to an output file.
// Implementations opened in append mode must not rewrite the header.
type EmailExporter interface {
	Append(r domain.EmailRecord) error
	Flush() error
	Close() error
}

// ChatExporter writes the outputs of a chat archive run.
type ChatExporter interface {
	// WriteUsers writes the participant CSV.
	WriteUsers(users []domain.ChatUser) error

	// WriteMessages writes the raw message JSON dump.
	WriteMessages(messages []domain.ChatMessage) error

	// WriteUserMessages writes the focus user's messages JSON.
	WriteUserMessages(userID string, messages []domain.ChatMessage) error
}
