package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestEmailSource_Valid tests source tag validation
func TestEmailSource_Valid(t *testing.T) {
	valid := []EmailSource{SourceProfile, SourceCommit, SourceEvent, SourcePatch, SourceNone}
	for _, s := range valid {
		assert.True(t, s.Valid(), "expected %q to be valid", s)
	}

	assert.False(t, EmailSource("gravatar").Valid())
	assert.False(t, EmailSource("").Valid())
}

// TestEmailRecord_Found tests presence detection
func TestEmailRecord_Found(t *testing.T) {
	found := EmailRecord{Username: "octocat", Email: "octo@example.com", Source: SourceProfile}
	missing := EmailRecord{Username: "octocat", Source: SourceNone}

	assert.True(t, found.Found())
	assert.False(t, missing.Found())
}

// TestIsNoreplyEmail tests GitHub placeholder detection
func TestIsNoreplyEmail(t *testing.T) {
	tests := []struct {
		name    string
		email   string
		noreply bool
	}{
		{"modern noreply", "12345+octocat@users.noreply.github.com", true},
		{"legacy noreply", "octocat@users.noreply.github.com", true},
		{"enterprise noreply", "octocat@org.noreply.github.com", true},
		{"real address", "octo@example.com", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.noreply, IsNoreplyEmail(tt.email))
		})
	}
}

// TestUsableEmail tests the chain's record-or-skip decision
func TestUsableEmail(t *testing.T) {
	assert.True(t, UsableEmail("octo@example.com"))
	assert.False(t, UsableEmail(""))
	assert.False(t, UsableEmail("octocat@users.noreply.github.com"))
}
