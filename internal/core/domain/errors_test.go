package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestErrors_Existence tests that all error variables exist and are not nil
func TestErrors_Existence(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"ErrNotFound", ErrNotFound},
		{"ErrInvalidInput", ErrInvalidInput},
		{"ErrInvalidRepoURL", ErrInvalidRepoURL},
		{"ErrInvalidSnowflake", ErrInvalidSnowflake},
		{"ErrAuthRequired", ErrAuthRequired},
		{"ErrAuthInvalid", ErrAuthInvalid},
		{"ErrRateLimited", ErrRateLimited},
		{"ErrRetriesExhausted", ErrRetriesExhausted},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotNil(t, tt.err)
			assert.NotEmpty(t, tt.err.Error())
		})
	}
}

// TestErrors_Wrapping tests that sentinels survive fmt.Errorf wrapping
func TestErrors_Wrapping(t *testing.T) {
	wrapped := fmt.Errorf("page 3: %w", ErrRetriesExhausted)
	assert.True(t, errors.Is(wrapped, ErrRetriesExhausted))
	assert.False(t, errors.Is(wrapped, ErrRateLimited))
}
