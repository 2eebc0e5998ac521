package driven

import (
	"context"

	"github.com/orbit-labs/gazer-cli/internal/core/domain"
)

// StargazerPage is one page of a repository's stargazers listing.
type StargazerPage struct {
	// Users are the stargazers found on the page, in listing order.
	Users []domain.Stargazer

	// HasNext reports whether the page advertised a following page.
	// The collector still advances past pages without a next link, so
	// this is a hint, not a terminator.
	HasNext bool
}

// Empty reports whether the page listed no users.
func (p *StargazerPage) Empty() bool {
	return len(p.Users) == 0
}

// StargazerLister fetches pages of a repository's stargazers listing.
// Implementations retry transient failures internally and return
// domain.ErrRetriesExhausted once attempts run out.
type StargazerLister interface {
	// FetchPage fetches and parses one listing page (1-indexed).
	FetchPage(ctx context.Context, repo domain.RepoRef, page int) (*StargazerPage, error)
}
