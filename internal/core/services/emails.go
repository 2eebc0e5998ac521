package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/orbit-labs/gazer-cli/internal/core/domain"
	"github.com/orbit-labs/gazer-cli/internal/core/ports/driven"
	"github.com/orbit-labs/gazer-cli/internal/core/ports/driving"
	"github.com/orbit-labs/gazer-cli/internal/logger"
)

// Ensure EmailResolver implements the interface.
var _ driving.EmailResolver = (*EmailResolver)(nil)

// EmailResolver resolves an email for each input user by consulting a
// chain of sources in priority order, stopping at the first hit.
type EmailResolver struct {
	sources  []driven.EmailSource
	exporter driven.EmailExporter
	runStore driven.RunStore
	target   string
}

// NewEmailResolver creates a resolver over the given sources. The
// sources are consulted in ascending Priority order regardless of the
// order passed in. target identifies this output in the run store.
func NewEmailResolver(sources []driven.EmailSource, exporter driven.EmailExporter, runStore driven.RunStore, target string) *EmailResolver {
	ordered := make([]driven.EmailSource, len(sources))
	copy(ordered, sources)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Priority() < ordered[j].Priority()
	})

	return &EmailResolver{
		sources:  ordered,
		exporter: exporter,
		runStore: runStore,
		target:   target,
	}
}

// Resolve processes the input users between opts.Start and opts.Stop
// (1-indexed, Stop 0 meaning the end). Each processed user yields
// exactly one output record; users without a findable email are
// recorded with an empty email and source "none". Lookup failures on a
// user are logged and the chain moves on, the run never aborts.
func (r *EmailResolver) Resolve(ctx context.Context, users []domain.Stargazer, opts driving.EmailOptions) (*driving.EmailStats, error) {
	if opts.Start < 1 {
		opts.Start = 1
	}
	if opts.Stop <= 0 || opts.Stop > len(users) {
		opts.Stop = len(users)
	}

	stats := &driving.EmailStats{
		BySource: make(map[domain.EmailSource]int),
	}

	var processed map[string]bool
	if opts.Resume {
		var err error
		processed, err = r.runStore.Keys(ctx, r.target)
		if err != nil {
			return stats, fmt.Errorf("loading resume state: %w", err)
		}
		logger.Info("resuming: %d users already processed", len(processed))
	}

	logger.Section(fmt.Sprintf("Resolving emails for positions %d-%d of %d users", opts.Start, opts.Stop, len(users)))

	for pos := opts.Start; pos <= opts.Stop; pos++ {
		if err := ctx.Err(); err != nil {
			return stats, err
		}

		user := users[pos-1]
		if processed[user.Username] {
			stats.Skipped++
			logger.Debug("skipping %s, already processed", user.Username)
			continue
		}

		record := r.resolveUser(ctx, user, stats)

		if err := r.exporter.Append(record); err != nil {
			return stats, fmt.Errorf("append record for %s: %w", user.Username, err)
		}
		if err := r.exporter.Flush(); err != nil {
			return stats, fmt.Errorf("flush after %s: %w", user.Username, err)
		}
		if err := r.runStore.Record(ctx, r.target, user.Username); err != nil {
			return stats, fmt.Errorf("record %s: %w", user.Username, err)
		}

		stats.Processed++
		if record.Found() {
			stats.Found++
			stats.BySource[record.Source]++
			logger.Info("[%d/%d] %s: %s (via %s)", pos, opts.Stop, user.Username, record.Email, record.Source)
		} else {
			stats.Misses++
			logger.Info("[%d/%d] %s: no email found", pos, opts.Stop, user.Username)
		}

		if stats.Processed%5 == 0 {
			logger.Info("progress: %d processed, %d found (%.1f%%)", stats.Processed, stats.Found, stats.FoundRate())
		}

		if opts.Delay > 0 && pos < opts.Stop {
			select {
			case <-ctx.Done():
				return stats, ctx.Err()
			case <-time.After(opts.Delay):
			}
		}
	}

	logger.Info("done: %d processed, %d found, %d misses, %d lookup errors, %d skipped",
		stats.Processed, stats.Found, stats.Misses, stats.APIErrors, stats.Skipped)
	return stats, nil
}

// resolveUser walks the source chain for one user. The first source
// returning a usable email wins and later sources are not consulted.
// Profile location and organization are kept even when the email comes
// from a later source.
func (r *EmailResolver) resolveUser(ctx context.Context, user domain.Stargazer, stats *driving.EmailStats) domain.EmailRecord {
	record := domain.EmailRecord{
		Username:   user.Username,
		ProfileURL: user.ProfileURL,
		Source:     domain.SourceNone,
	}

	errored := false
	for _, source := range r.sources {
		lookup, err := source.Lookup(ctx, user.Username)
		if err != nil {
			logger.Warn("%s lookup for %s failed: %v", source.Name(), user.Username, err)
			errored = true
			continue
		}

		if lookup.Location != "" && record.Location == "" {
			record.Location = lookup.Location
		}
		if lookup.Organization != "" && record.Organization == "" {
			record.Organization = lookup.Organization
		}

		if domain.UsableEmail(lookup.Email) {
			record.Email = lookup.Email
			record.Source = source.Name()
			break
		}
		logger.Debug("%s: nothing from %s, trying next source", user.Username, source.Name())
	}

	if errored {
		stats.APIErrors++
	}
	return record
}
