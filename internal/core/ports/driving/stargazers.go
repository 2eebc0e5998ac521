package driving

import (
	"context"
	"time"

	"github.com/orbit-labs/gazer-cli/internal/core/domain"
)

// StargazerOptions control a stargazer collection run.
type StargazerOptions struct {
	// StartPage is the first listing page to fetch (1-indexed).
	StartPage int

	// MaxPages caps the page walk to avoid excessive requests when the
	// listing never reports an end.
	MaxPages int

	// MaxEmptyPages is the number of consecutive empty pages treated as
	// the end of the listing.
	MaxEmptyPages int

	// Delay is the courtesy pause between page fetches.
	Delay time.Duration
}

// StargazerStats summarises a collection run.
type StargazerStats struct {
	PagesFetched int
	EmptyPages   int
	Unique       int
}

// StargazerCollector walks a repository's stargazers listing and appends
// each newly seen user to the exporter.
type StargazerCollector interface {
	Collect(ctx context.Context, repo domain.RepoRef, opts StargazerOptions) (*StargazerStats, error)
}
