package domain

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

// discordEpochMillis is the Discord snowflake epoch (2015-01-01T00:00:00Z).
const discordEpochMillis = 1420070400000

// ChatUser is a chat platform participant extracted from message history.
type ChatUser struct {
	ID            string `json:"id"`
	Username      string `json:"username"`
	GlobalName    string `json:"global_name"`
	Discriminator string `json:"discriminator"`
	Avatar        string `json:"avatar"`
	Bot           bool   `json:"bot"`
}

// ChatMessage is a single channel message. Raw preserves the exact API
// payload for export; the decoded fields cover what the collector needs
// for ordering, dedupe and participant extraction.
type ChatMessage struct {
	ID        string     `json:"id"`
	ChannelID string     `json:"channel_id"`
	Content   string     `json:"content"`
	Timestamp string     `json:"timestamp"`
	Author    ChatUser   `json:"author"`
	Mentions  []ChatUser `json:"mentions"`

	Raw json.RawMessage `json:"-"`
}

// ParseSnowflake validates and parses a snowflake identifier.
// Discord snowflakes are 17-20 digit positive integers.
func ParseSnowflake(s string) (uint64, error) {
	if len(s) < 17 || len(s) > 20 {
		return 0, fmt.Errorf("%w: %q has %d digits", ErrInvalidSnowflake, s, len(s))
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return 0, fmt.Errorf("%w: %q is not numeric", ErrInvalidSnowflake, s)
		}
	}
	id, err := strconv.ParseUint(s, 10, 64)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidSnowflake, s)
	}
	return id, nil
}

// ValidSnowflake reports whether s parses as a snowflake.
func ValidSnowflake(s string) bool {
	_, err := ParseSnowflake(s)
	return err == nil
}

// SnowflakeTime extracts the creation timestamp encoded in a snowflake.
func SnowflakeTime(s string) (time.Time, error) {
	id, err := ParseSnowflake(s)
	if err != nil {
		return time.Time{}, err
	}
	millis := int64(id>>22) + discordEpochMillis
	return time.UnixMilli(millis).UTC(), nil
}

// CompareSnowflakes orders two snowflake IDs chronologically.
// Snowflakes are time-ordered integers, so shorter strings sort first
// and equal-length strings compare lexicographically.
func CompareSnowflakes(a, b string) int {
	if len(a) != len(b) {
		if len(a) < len(b) {
			return -1
		}
		return 1
	}
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}
