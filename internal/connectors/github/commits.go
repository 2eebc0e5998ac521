package github

import (
	"context"
	"time"

	"github.com/orbit-labs/gazer-cli/internal/core/domain"
	"github.com/orbit-labs/gazer-cli/internal/core/ports/driven"
	"github.com/orbit-labs/gazer-cli/internal/logger"
)

// Ensure CommitSource implements the interface.
var _ driven.EmailSource = (*CommitSource)(nil)

// CommitSource scans commit author emails in the user's own recently
// updated repositories. Forks are skipped: their commits are mostly
// other people's.
type CommitSource struct {
	client *Client
	delay  time.Duration
}

// NewCommitSource creates the commit probe. delay spaces out the
// per-repository commit listings.
func NewCommitSource(client *Client, delay time.Duration) *CommitSource {
	return &CommitSource{client: client, delay: delay}
}

// Name identifies the source in output records.
func (s *CommitSource) Name() domain.EmailSource {
	return domain.SourceCommit
}

// Priority orders the chain; commits are consulted after the profile.
func (s *CommitSource) Priority() int {
	return 2
}

// Lookup walks the user's repositories newest-first and returns the
// first usable commit author email.
func (s *CommitSource) Lookup(ctx context.Context, username string) (*driven.EmailLookup, error) {
	repos, err := s.client.ReposByUser(ctx, username, MaxReposPerUser)
	if err != nil {
		if IsNotFound(err) {
			return &driven.EmailLookup{}, nil
		}
		return nil, err
	}

	for _, repo := range repos {
		if repo.GetFork() || repo.GetOwner().GetLogin() != username {
			continue
		}

		commits, err := s.client.CommitsByAuthor(ctx, username, repo.GetName(), username, MaxCommitsPerRepo)
		if err != nil {
			// Empty repositories respond 409; either way move on.
			logger.Debug("commit: listing %s/%s failed: %v", username, repo.GetName(), err)
			continue
		}

		for _, commit := range commits {
			email := commit.GetCommit().GetAuthor().GetEmail()
			if domain.UsableEmail(email) {
				return &driven.EmailLookup{Email: email}, nil
			}
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(s.delay):
		}
	}

	return &driven.EmailLookup{}, nil
}
