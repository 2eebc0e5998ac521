package cli

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/orbit-labs/gazer-cli/internal/core/domain"
	"github.com/orbit-labs/gazer-cli/internal/core/ports/driving"
)

// mockStargazerCollector implements driving.StargazerCollector for testing.
type mockStargazerCollector struct {
	repo  domain.RepoRef
	opts  driving.StargazerOptions
	stats driving.StargazerStats
	err   error
}

func (m *mockStargazerCollector) Collect(_ context.Context, repo domain.RepoRef, opts driving.StargazerOptions) (*driving.StargazerStats, error) {
	m.repo = repo
	m.opts = opts
	if m.err != nil {
		return nil, m.err
	}
	return &m.stats, nil
}

func setupStargazersTest(mock *mockStargazerCollector) func() {
	old := stargazerCollector
	stargazerCollector = mock
	return func() {
		stargazerCollector = old
	}
}

func TestStargazersCmd_Use(t *testing.T) {
	assert.Equal(t, "stargazers <repo-url>", stargazersCmd.Use)
}

func TestStargazersCmd_RequiresRepoArg(t *testing.T) {
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"stargazers"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()
	assert.Error(t, err)
}

func TestStargazersCmd_ParsesRepoURL(t *testing.T) {
	mock := &mockStargazerCollector{stats: driving.StargazerStats{Unique: 42, PagesFetched: 2}}
	cleanup := setupStargazersTest(mock)
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"stargazers", "https://github.com/octo-org/tool", "--start-page", "3"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.NoError(t, err)
	assert.Equal(t, "octo-org", mock.repo.Owner)
	assert.Equal(t, "tool", mock.repo.Name)
	assert.Equal(t, 3, mock.opts.StartPage)
	assert.Contains(t, buf.String(), "42 unique stargazers")
}

func TestStargazersCmd_RejectsBadURL(t *testing.T) {
	mock := &mockStargazerCollector{}
	cleanup := setupStargazersTest(mock)
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"stargazers", "https://example.com/not/github"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()
	assert.ErrorIs(t, err, domain.ErrInvalidRepoURL)
}
