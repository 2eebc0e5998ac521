package driven

import "context"

// RunStore persists the set of keys already processed for a collection
// target, so interrupted runs can resume by skipping exactly those keys.
// A target is the identity of an output (for example "emails:" plus the
// output path); keys are usernames or page numbers within it.
type RunStore interface {
	// EnsureRun creates the run row for a target if absent and returns
	// its run ID.
	EnsureRun(ctx context.Context, target string) (string, error)

	// Keys returns every key recorded for the target.
	Keys(ctx context.Context, target string) (map[string]bool, error)

	// Record marks a key as processed for the target. Recording the
	// same key twice is not an error.
	Record(ctx context.Context, target, key string) error

	// Close releases the underlying storage.
	Close() error
}
