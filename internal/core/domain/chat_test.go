package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestParseSnowflake tests snowflake validation
func TestParseSnowflake(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"typical id", "498129674984226828", false},
		{"17 digits", "10000000000000000", false},
		{"too short", "1234567890123456", true},
		{"too long", "123456789012345678901", true},
		{"non numeric", "49812967498422682a", true},
		{"empty", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := ParseSnowflake(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidSnowflake)
				assert.False(t, ValidSnowflake(tt.input))
			} else {
				require.NoError(t, err)
				assert.NotZero(t, id)
				assert.True(t, ValidSnowflake(tt.input))
			}
		})
	}
}

// TestSnowflakeTime tests creation-time extraction
func TestSnowflakeTime(t *testing.T) {
	// 175928847299117063 is the documented Discord example snowflake,
	// created 2016-04-30 11:18:25.796 UTC.
	ts, err := SnowflakeTime("175928847299117063")
	require.NoError(t, err)

	want := time.Date(2016, 4, 30, 11, 18, 25, 796_000_000, time.UTC)
	assert.Equal(t, want, ts)
}

// TestCompareSnowflakes tests chronological ordering
func TestCompareSnowflakes(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want int
	}{
		{"equal", "175928847299117063", "175928847299117063", 0},
		{"a older", "175928847299117063", "175928847299117064", -1},
		{"a newer", "175928847299117064", "175928847299117063", 1},
		{"shorter is older", "98765432109876543", "175928847299117063", -1},
		{"longer is newer", "1175928847299117063", "175928847299117063", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CompareSnowflakes(tt.a, tt.b))
		})
	}
}
