package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orbit-labs/gazer-cli/internal/core/domain"
	"github.com/orbit-labs/gazer-cli/internal/core/ports/driving"
)

// mockEmailResolver implements driving.EmailResolver for testing.
type mockEmailResolver struct {
	users []domain.Stargazer
	opts  driving.EmailOptions
	stats driving.EmailStats
}

func (m *mockEmailResolver) Resolve(_ context.Context, users []domain.Stargazer, opts driving.EmailOptions) (*driving.EmailStats, error) {
	m.users = users
	m.opts = opts
	return &m.stats, nil
}

func setupEmailsTest(mock *mockEmailResolver) func() {
	old := emailResolver
	emailResolver = mock
	return func() {
		emailResolver = old
	}
}

func writeInputCSV(t *testing.T, usernames ...string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "input.csv")
	content := "Username,GitHub URL\n"
	for _, u := range usernames {
		content += u + ",https://github.com/" + u + "\n"
	}
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestEmailsCmd_Use(t *testing.T) {
	assert.Equal(t, "emails", emailsCmd.Use)
}

func TestEmailsCmd_ReadsInputAndPassesOptions(t *testing.T) {
	mock := &mockEmailResolver{stats: driving.EmailStats{
		Processed: 2,
		Found:     1,
		BySource:  map[domain.EmailSource]int{domain.SourceProfile: 1},
		Misses:    1,
	}}
	cleanup := setupEmailsTest(mock)
	defer cleanup()

	input := writeInputCSV(t, "alice", "bob")

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"emails", "--input", input, "--start", "1", "--stop", "2", "--resume"})
	defer func() {
		rootCmd.SetArgs(nil)
		emailsOpts.resume = false
	}()

	err := rootCmd.Execute()

	assert.NoError(t, err)
	require.Len(t, mock.users, 2)
	assert.Equal(t, "alice", mock.users[0].Username)
	assert.Equal(t, 1, mock.opts.Start)
	assert.Equal(t, 2, mock.opts.Stop)
	assert.True(t, mock.opts.Resume)
	assert.Contains(t, buf.String(), "1 emails found")
	assert.Contains(t, buf.String(), "profile")
}

func TestEmailsCmd_EmptyInputFails(t *testing.T) {
	mock := &mockEmailResolver{}
	cleanup := setupEmailsTest(mock)
	defer cleanup()

	path := filepath.Join(t.TempDir(), "empty.csv")
	require.NoError(t, os.WriteFile(path, []byte("Username,GitHub URL\n"), 0o644))

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"emails", "--input", path})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestEmailsCmd_MissingInputFails(t *testing.T) {
	mock := &mockEmailResolver{}
	cleanup := setupEmailsTest(mock)
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"emails", "--input", filepath.Join(t.TempDir(), "absent.csv")})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()
	assert.Error(t, err)
}
