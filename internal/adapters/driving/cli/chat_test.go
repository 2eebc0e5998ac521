package cli

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/orbit-labs/gazer-cli/internal/core/domain"
	"github.com/orbit-labs/gazer-cli/internal/core/ports/driving"
)

// mockChatArchiver implements driving.ChatArchiver for testing.
type mockChatArchiver struct {
	channelID string
	opts      driving.ChatOptions
	result    driving.ChatResult
}

func (m *mockChatArchiver) Archive(_ context.Context, channelID string, opts driving.ChatOptions) (*driving.ChatResult, error) {
	m.channelID = channelID
	m.opts = opts
	return &m.result, nil
}

func setupChatTest(mock *mockChatArchiver) func() {
	old := chatArchiver
	chatArchiver = mock
	return func() {
		chatArchiver = old
	}
}

func TestChatCmd_Use(t *testing.T) {
	assert.Equal(t, "chat <channel-id>", chatCmd.Use)
}

func TestChatCmd_PassesOptions(t *testing.T) {
	mock := &mockChatArchiver{result: driving.ChatResult{
		Messages: make([]domain.ChatMessage, 3),
		Users:    make([]domain.ChatUser, 2),
	}}
	cleanup := setupChatTest(mock)
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{
		"chat", "1303749221354311752",
		"--reference", "175928847299117063",
		"--before", "50",
		"--after", "10",
	})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.NoError(t, err)
	assert.Equal(t, "1303749221354311752", mock.channelID)
	assert.Equal(t, "175928847299117063", mock.opts.Reference)
	assert.Equal(t, 50, mock.opts.MaxBefore)
	assert.Equal(t, 10, mock.opts.MaxAfter)
	assert.Contains(t, buf.String(), "3 messages from 2 users")
}

func TestChatCmd_FocusUserReported(t *testing.T) {
	mock := &mockChatArchiver{result: driving.ChatResult{
		FocusMessages: make([]domain.ChatMessage, 4),
	}}
	cleanup := setupChatTest(mock)
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"chat", "1303749221354311752", "--user", "498129674984226828"})
	defer func() {
		rootCmd.SetArgs(nil)
		chatOpts.focusUser = ""
	}()

	err := rootCmd.Execute()

	assert.NoError(t, err)
	assert.Equal(t, "498129674984226828", mock.opts.FocusUser)
	assert.Contains(t, buf.String(), "wrote 4 messages")
}

func TestChatCmd_RejectsBadFocusUser(t *testing.T) {
	mock := &mockChatArchiver{}
	cleanup := setupChatTest(mock)
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"chat", "1303749221354311752", "--user", "bob"})
	defer func() {
		rootCmd.SetArgs(nil)
		chatOpts.focusUser = ""
	}()

	err := rootCmd.Execute()
	assert.ErrorIs(t, err, domain.ErrInvalidSnowflake)
}

func TestChatCmd_RequiresChannelArg(t *testing.T) {
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"chat"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()
	assert.Error(t, err)
}
