package driven

import (
	"context"

	"github.com/orbit-labs/gazer-cli/internal/core/domain"
)

// EmailLookup is the outcome of probing a single source for one user.
// Email may be empty while Location/Organization are set: the profile
// endpoint returns those fields whether or not a public email exists.
type EmailLookup struct {
	Email        string
	Location     string
	Organization string
}

// EmailSource probes one read endpoint for a user's email address.
// Sources are consulted in ascending Priority order and the chain stops
// at the first source whose lookup yields a usable email.
type EmailSource interface {
	// Name identifies the source in output records.
	Name() domain.EmailSource

	// Priority orders the chain; lower means consulted earlier.
	Priority() int

	// Lookup probes the source for one username. A miss is reported as
	// a lookup with an empty Email, not as an error; errors are reserved
	// for request failures after retries.
	Lookup(ctx context.Context, username string) (*EmailLookup, error)
}
