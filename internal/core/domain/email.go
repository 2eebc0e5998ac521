package domain

import "strings"

// EmailSource identifies which probe in the fallback chain produced an email.
type EmailSource string

// Email sources, in the priority order the resolver consults them.
const (
	// SourceProfile is the public email on the user's profile.
	SourceProfile EmailSource = "profile"

	// SourceCommit is a commit author email from the user's own repositories.
	SourceCommit EmailSource = "commit"

	// SourceEvent is a commit email found in public push-event payloads.
	SourceEvent EmailSource = "event"

	// SourcePatch is an email extracted from a raw commit patch.
	SourcePatch EmailSource = "patch"

	// SourceNone records that no source yielded an email.
	SourceNone EmailSource = "none"
)

// Valid reports whether the source tag is one of the known values.
func (s EmailSource) Valid() bool {
	switch s {
	case SourceProfile, SourceCommit, SourceEvent, SourcePatch, SourceNone:
		return true
	}
	return false
}

// EmailRecord is the result of resolving contact details for one user.
// Email, Location and Organization may be empty; absence is recorded,
// not treated as an error.
type EmailRecord struct {
	Username     string
	ProfileURL   string
	Email        string
	Location     string
	Organization string
	Source       EmailSource
}

// Found reports whether any source yielded an email.
func (r EmailRecord) Found() bool {
	return r.Email != ""
}

// noreplySuffixes are GitHub-issued placeholder addresses. They identify
// the account, not a reachable mailbox, so the chain skips them.
var noreplySuffixes = []string{
	".noreply.github.com",
	"users.noreply.github.com",
}

// IsNoreplyEmail reports whether the address is a GitHub noreply placeholder.
func IsNoreplyEmail(email string) bool {
	for _, suffix := range noreplySuffixes {
		if strings.HasSuffix(email, suffix) {
			return true
		}
	}
	return false
}

// UsableEmail reports whether the address should be recorded: non-empty
// and not a noreply placeholder.
func UsableEmail(email string) bool {
	return email != "" && !IsNoreplyEmail(email)
}
