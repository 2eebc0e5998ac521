package github

import (
	"context"

	"github.com/orbit-labs/gazer-cli/internal/core/domain"
	"github.com/orbit-labs/gazer-cli/internal/core/ports/driven"
	"github.com/orbit-labs/gazer-cli/internal/logger"
)

// Ensure ProfileSource implements the interface.
var _ driven.EmailSource = (*ProfileSource)(nil)

// ProfileSource reads the public email from the user's profile. It is
// the cheapest probe and the only one that also yields location and
// organization, so it always runs first.
type ProfileSource struct {
	client *Client
}

// NewProfileSource creates the profile probe.
func NewProfileSource(client *Client) *ProfileSource {
	return &ProfileSource{client: client}
}

// Name identifies the source in output records.
func (s *ProfileSource) Name() domain.EmailSource {
	return domain.SourceProfile
}

// Priority orders the chain; the profile is consulted first.
func (s *ProfileSource) Priority() int {
	return 1
}

// Lookup fetches the profile. A missing user or absent public email is
// a miss, not an error; location and organization are returned either way.
func (s *ProfileSource) Lookup(ctx context.Context, username string) (*driven.EmailLookup, error) {
	user, err := s.client.User(ctx, username)
	if err != nil {
		if IsNotFound(err) {
			logger.Debug("profile: user %s not found", username)
			return &driven.EmailLookup{}, nil
		}
		return nil, err
	}

	return &driven.EmailLookup{
		Email:        user.GetEmail(),
		Location:     user.GetLocation(),
		Organization: user.GetCompany(),
	}, nil
}
