package services

import (
	"context"
	"fmt"
	"time"

	"github.com/orbit-labs/gazer-cli/internal/core/domain"
	"github.com/orbit-labs/gazer-cli/internal/core/ports/driven"
	"github.com/orbit-labs/gazer-cli/internal/core/ports/driving"
	"github.com/orbit-labs/gazer-cli/internal/logger"
)

// flushEvery is the page interval at which collected rows are forced
// to disk, so an interrupted run keeps most of its progress.
const flushEvery = 10

// Ensure StargazerCollector implements the interface.
var _ driving.StargazerCollector = (*StargazerCollector)(nil)

// StargazerCollector walks a repository's stargazers listing page by
// page, deduplicates across pages and appends new users to the exporter.
type StargazerCollector struct {
	lister   driven.StargazerLister
	exporter driven.StargazerExporter
}

// NewStargazerCollector creates a new stargazer collector.
func NewStargazerCollector(lister driven.StargazerLister, exporter driven.StargazerExporter) *StargazerCollector {
	return &StargazerCollector{
		lister:   lister,
		exporter: exporter,
	}
}

// Collect runs the pagination loop. It stops at the page cap, after
// opts.MaxEmptyPages consecutive empty pages, or when a page fetch
// fails after retries. Whatever was collected is flushed before return.
func (c *StargazerCollector) Collect(ctx context.Context, repo domain.RepoRef, opts driving.StargazerOptions) (*driving.StargazerStats, error) {
	if opts.StartPage < 1 {
		opts.StartPage = 1
	}
	if opts.MaxPages < 1 {
		opts.MaxPages = 1000
	}
	if opts.MaxEmptyPages < 1 {
		opts.MaxEmptyPages = 3
	}

	logger.Section(fmt.Sprintf("Collecting stargazers of %s", repo.FullName()))

	stats := &driving.StargazerStats{}
	seen := make(map[string]bool)
	consecutiveEmpty := 0

	for page := opts.StartPage; page < opts.StartPage+opts.MaxPages; page++ {
		if err := ctx.Err(); err != nil {
			return stats, err
		}

		batch, err := c.lister.FetchPage(ctx, repo, page)
		if err != nil {
			// Retry exhaustion ends the run; the rows so far stand.
			logger.Warn("giving up on page %d: %v", page, err)
			break
		}
		stats.PagesFetched++

		if batch.Empty() {
			stats.EmptyPages++
			consecutiveEmpty++
			logger.Debug("page %d empty (%d/%d consecutive)", page, consecutiveEmpty, opts.MaxEmptyPages)
			if consecutiveEmpty >= opts.MaxEmptyPages {
				logger.Info("no stargazers on %d consecutive pages, stopping", consecutiveEmpty)
				break
			}
		} else {
			consecutiveEmpty = 0
			for _, user := range batch.Users {
				if seen[user.Username] {
					continue
				}
				seen[user.Username] = true
				if err := c.exporter.Append(user); err != nil {
					return stats, fmt.Errorf("append %s: %w", user.Username, err)
				}
				stats.Unique++
			}
			logger.Info("page %d: %d users (%d unique so far)", page, len(batch.Users), stats.Unique)
		}

		if stats.PagesFetched%flushEvery == 0 {
			if err := c.exporter.Flush(); err != nil {
				return stats, fmt.Errorf("flush at page %d: %w", page, err)
			}
		}

		// A missing next link is not trusted as the end of the listing;
		// the walk advances anyway and the empty-page counter decides.
		if !batch.HasNext && !batch.Empty() {
			logger.Debug("page %d shows no next link, advancing anyway", page)
		}

		if opts.Delay > 0 {
			select {
			case <-ctx.Done():
				return stats, ctx.Err()
			case <-time.After(opts.Delay):
			}
		}
	}

	if err := c.exporter.Flush(); err != nil {
		return stats, fmt.Errorf("final flush: %w", err)
	}

	logger.Info("collected %d unique stargazers over %d pages", stats.Unique, stats.PagesFetched)
	return stats, nil
}
