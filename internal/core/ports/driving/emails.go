package driving

import (
	"context"
	"time"

	"github.com/orbit-labs/gazer-cli/internal/core/domain"
)

// EmailOptions control an email resolution run.
type EmailOptions struct {
	// Start and Stop bound the slice of the input processed, 1-indexed.
	// Stop of zero means run to the end.
	Start int
	Stop  int

	// Resume skips usernames already present in prior output.
	Resume bool

	// Delay is the pause between users to respect API rate limits.
	Delay time.Duration
}

// EmailStats summarises an email resolution run.
type EmailStats struct {
	Processed int
	Found     int
	BySource  map[domain.EmailSource]int
	Misses    int
	APIErrors int
	Skipped   int
}

// FoundRate returns the percentage of processed users with an email.
func (s *EmailStats) FoundRate() float64 {
	if s.Processed == 0 {
		return 0
	}
	return float64(s.Found) * 100 / float64(s.Processed)
}

// EmailResolver applies the source fallback chain to each input user and
// appends one record per user to the exporter, present or not.
type EmailResolver interface {
	Resolve(ctx context.Context, users []domain.Stargazer, opts EmailOptions) (*EmailStats, error)
}
