package github

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/orbit-labs/gazer-cli/internal/core/domain"
	"github.com/orbit-labs/gazer-cli/internal/core/ports/driven"
	"github.com/orbit-labs/gazer-cli/internal/logger"
)

// Ensure PatchSource implements the interface.
var _ driven.EmailSource = (*PatchSource)(nil)

// patchEmailRegex matches the <local@domain> form patch headers use for
// author and sign-off lines.
var patchEmailRegex = regexp.MustCompile(`<([^<>@\s]+@[^<>\s]+)>`)

// MaxPatchCommits caps how many commit patches per repository the patch
// probe downloads.
const MaxPatchCommits = 10

// PatchSource downloads raw commit patches from the HTML site and
// extracts emails by pattern. It is the last resort: patches are served
// without API quota but cost a full download each.
type PatchSource struct {
	client *Client
	http   *resty.Client
	delay  time.Duration
}

// NewPatchSource creates the patch probe.
func NewPatchSource(client *Client, http *resty.Client, delay time.Duration) *PatchSource {
	return &PatchSource{client: client, http: http, delay: delay}
}

// Name identifies the source in output records.
func (s *PatchSource) Name() domain.EmailSource {
	return domain.SourcePatch
}

// Priority orders the chain; patches are the final fallback.
func (s *PatchSource) Priority() int {
	return 4
}

// Lookup walks the user's repositories and returns the first usable
// email found in a commit patch. When the commit listing fails for a
// repository, the HEAD patch is tried instead.
func (s *PatchSource) Lookup(ctx context.Context, username string) (*driven.EmailLookup, error) {
	repos, err := s.client.ReposByUser(ctx, username, MaxReposPerUser)
	if err != nil {
		if IsNotFound(err) {
			return &driven.EmailLookup{}, nil
		}
		return nil, err
	}

	for _, repo := range repos {
		name := repo.GetName()
		if name == "" {
			continue
		}

		commits, err := s.client.CommitsByAuthor(ctx, username, name, username, MaxPatchCommits)
		if err != nil {
			// Listing failed; the HEAD patch may still be fetchable.
			if email := s.fetchPatchEmail(ctx, username, name, "HEAD"); email != "" {
				return &driven.EmailLookup{Email: email}, nil
			}
			continue
		}

		for _, commit := range commits {
			sha := commit.GetSHA()
			if sha == "" {
				continue
			}
			if email := s.fetchPatchEmail(ctx, username, name, sha); email != "" {
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

// fetchPatchEmail downloads one commit patch and extracts the first
// usable email, or returns empty.
func (s *PatchSource) fetchPatchEmail(ctx context.Context, owner, repo, ref string) string {
	url := fmt.Sprintf("https://github.com/%s/%s/commit/%s.patch", owner, repo, ref)

	resp, err := s.http.R().SetContext(ctx).Get(url)
	if err != nil {
		logger.Debug("patch: fetch %s failed: %v", url, err)
		return ""
	}
	if resp.StatusCode() != 200 {
		return ""
	}

	return ExtractPatchEmail(resp.Body())
}

// ExtractPatchEmail returns the first usable <local@domain> address in a
// raw patch, or empty when none qualifies.
func ExtractPatchEmail(patch []byte) string {
	for _, match := range patchEmailRegex.FindAllSubmatch(patch, -1) {
		email := string(match[1])
		if domain.UsableEmail(email) {
			return email
		}
	}
	return ""
}
