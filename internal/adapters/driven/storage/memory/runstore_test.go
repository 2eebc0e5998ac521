package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunStore_EnsureRunStable(t *testing.T) {
	store := NewRunStore()
	ctx := context.Background()

	id1, err := store.EnsureRun(ctx, "target")
	require.NoError(t, err)
	id2, err := store.EnsureRun(ctx, "target")
	require.NoError(t, err)
	assert.Equal(t, id1, id2)
}

func TestRunStore_RecordAndKeys(t *testing.T) {
	store := NewRunStore()
	ctx := context.Background()

	require.NoError(t, store.Record(ctx, "target", "alice"))
	require.NoError(t, store.Record(ctx, "target", "alice"))
	require.NoError(t, store.Record(ctx, "target", "bob"))

	keys, err := store.Keys(ctx, "target")
	require.NoError(t, err)
	assert.Equal(t, map[string]bool{"alice": true, "bob": true}, keys)

	// Returned map is a copy.
	keys["mallory"] = true
	again, err := store.Keys(ctx, "target")
	require.NoError(t, err)
	assert.NotContains(t, again, "mallory")
}
