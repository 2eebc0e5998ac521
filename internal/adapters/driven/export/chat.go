package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/orbit-labs/gazer-cli/internal/core/domain"
	"github.com/orbit-labs/gazer-cli/internal/core/ports/driven"
	"github.com/orbit-labs/gazer-cli/internal/logger"
)

var chatUserHeader = []string{"id", "username", "global_name", "discriminator", "avatar", "bot"}

// Ensure ChatArchiveWriter implements the exporter port.
var _ driven.ChatExporter = (*ChatArchiveWriter)(nil)

// ChatArchiveWriter writes chat archive outputs into a directory,
// stamping each filename with the run time so repeated runs never
// clobber earlier archives.
type ChatArchiveWriter struct {
	dir   string
	stamp string
}

// NewChatArchiveWriter creates the output directory if needed.
func NewChatArchiveWriter(dir string) (*ChatArchiveWriter, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir %s: %w", dir, err)
	}
	return &ChatArchiveWriter{
		dir:   dir,
		stamp: time.Now().Format("20060102_150405"),
	}, nil
}

// WriteUsers writes the participant CSV.
func (w *ChatArchiveWriter) WriteUsers(users []domain.ChatUser) error {
	path := filepath.Join(w.dir, fmt.Sprintf("users_%s.csv", w.stamp))

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.Write(chatUserHeader); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, u := range users {
		row := []string{u.ID, u.Username, u.GlobalName, u.Discriminator, u.Avatar, strconv.FormatBool(u.Bot)}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("write row for %s: %w", u.ID, err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return err
	}

	logger.Info("wrote %d users to %s", len(users), path)
	return nil
}

// WriteMessages writes the raw message JSON dump.
func (w *ChatArchiveWriter) WriteMessages(messages []domain.ChatMessage) error {
	path := filepath.Join(w.dir, fmt.Sprintf("messages_%s.json", w.stamp))
	if err := writeRawJSON(path, messages); err != nil {
		return err
	}
	logger.Info("wrote %d messages to %s", len(messages), path)
	return nil
}

// WriteUserMessages writes the focus user's messages JSON.
func (w *ChatArchiveWriter) WriteUserMessages(userID string, messages []domain.ChatMessage) error {
	path := filepath.Join(w.dir, fmt.Sprintf("user_%s_messages_%s.json", userID, w.stamp))
	if err := writeRawJSON(path, messages); err != nil {
		return err
	}
	logger.Info("wrote %d messages for user %s to %s", len(messages), userID, path)
	return nil
}

// writeRawJSON dumps the preserved API payloads as an indented JSON
// array, so the archive round-trips fields the decoder never touched.
func writeRawJSON(path string, messages []domain.ChatMessage) error {
	var buf bytes.Buffer
	buf.WriteString("[")
	for i, msg := range messages {
		if i > 0 {
			buf.WriteString(",")
		}
		buf.WriteString("\n  ")
		raw := msg.Raw
		if len(raw) == 0 {
			encoded, err := json.Marshal(msg)
			if err != nil {
				return fmt.Errorf("encode message %s: %w", msg.ID, err)
			}
			raw = encoded
		}
		var compact bytes.Buffer
		if err := json.Indent(&compact, raw, "  ", "  "); err != nil {
			return fmt.Errorf("encode message %s: %w", msg.ID, err)
		}
		buf.Write(compact.Bytes())
	}
	if len(messages) > 0 {
		buf.WriteString("\n")
	}
	buf.WriteString("]\n")

	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
