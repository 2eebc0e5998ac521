package domain

import (
	"fmt"
	"regexp"
	"strings"
)

// Stargazer is a user who starred a repository.
type Stargazer struct {
	Username   string
	ProfileURL string
}

// NewStargazer creates a stargazer record with the canonical profile URL.
func NewStargazer(username string) Stargazer {
	return Stargazer{
		Username:   username,
		ProfileURL: "https://github.com/" + username,
	}
}

// Validate checks that the record carries a plausible username.
// Usernames containing a slash are repository paths, not users.
func (s Stargazer) Validate() error {
	if s.Username == "" {
		return fmt.Errorf("%w: empty username", ErrInvalidInput)
	}
	if strings.Contains(s.Username, "/") {
		return fmt.Errorf("%w: username %q contains a path separator", ErrInvalidInput, s.Username)
	}
	return nil
}

// RepoRef is a parsed owner/name reference to a GitHub repository.
type RepoRef struct {
	Owner string
	Name  string
}

// repoURLRegex matches github.com repository URLs, with or without a
// /stargazers suffix and an optional ?page=N query.
var repoURLRegex = regexp.MustCompile(`^(?:https?://)?(?:www\.)?github\.com/([^/?#]+)/([^/?#]+)`)

// ParseRepoRef parses any common form of repository URL:
// the repository page, its stargazers listing, or either with a page query.
// A bare "owner/name" string is accepted too.
func ParseRepoRef(raw string) (RepoRef, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return RepoRef{}, fmt.Errorf("%w: empty URL", ErrInvalidRepoURL)
	}

	if m := repoURLRegex.FindStringSubmatch(raw); m != nil {
		return RepoRef{Owner: m[1], Name: strings.TrimSuffix(m[2], ".git")}, nil
	}

	// Bare owner/name shorthand.
	parts := strings.Split(strings.Trim(raw, "/"), "/")
	if len(parts) == 2 && parts[0] != "" && parts[1] != "" && !strings.Contains(raw, ":") {
		return RepoRef{Owner: parts[0], Name: parts[1]}, nil
	}

	return RepoRef{}, fmt.Errorf("%w: %q", ErrInvalidRepoURL, raw)
}

// FullName returns the owner/name form.
func (r RepoRef) FullName() string {
	return r.Owner + "/" + r.Name
}

// StargazersURL returns the HTML stargazers listing URL for the repository.
func (r RepoRef) StargazersURL() string {
	return fmt.Sprintf("https://github.com/%s/%s/stargazers", r.Owner, r.Name)
}
