package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/orbit-labs/gazer-cli/internal/core/ports/driven"
)

// RunStore is an in-memory run store used by tests and dry runs.
type RunStore struct {
	mu   sync.RWMutex
	runs map[string]string          // target -> run ID
	keys map[string]map[string]bool // target -> processed keys
}

var _ driven.RunStore = (*RunStore)(nil)

// NewRunStore creates an empty in-memory run store.
func NewRunStore() *RunStore {
	return &RunStore{
		runs: make(map[string]string),
		keys: make(map[string]map[string]bool),
	}
}

// EnsureRun creates the run for a target if absent and returns its ID.
func (s *RunStore) EnsureRun(_ context.Context, target string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if id, ok := s.runs[target]; ok {
		return id, nil
	}
	id := uuid.New().String()
	s.runs[target] = id
	s.keys[target] = make(map[string]bool)
	return id, nil
}

// Keys returns a copy of the processed keys for the target.
func (s *RunStore) Keys(_ context.Context, target string) (map[string]bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	keys := make(map[string]bool, len(s.keys[target]))
	for k := range s.keys[target] {
		keys[k] = true
	}
	return keys, nil
}

// Record marks a key as processed for the target.
func (s *RunStore) Record(ctx context.Context, target, key string) error {
	if _, err := s.EnsureRun(ctx, target); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.keys[target][key] = true
	return nil
}

// Close is a no-op for the in-memory store.
func (s *RunStore) Close() error {
	return nil
}
