package persistence

import (
	"context"
	"sync"

	"github.com/protrack/backend/internal/application/state"
)

// MemoryStore keeps the last saved snapshot in process memory.
// It is the store used when no database driver is configured.
type MemoryStore struct {
	mu    sync.RWMutex
	saved *state.State
	saves int
}

// NewMemoryStore creates an empty store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

var _ state.Store = (*MemoryStore)(nil)

// Load returns the last saved snapshot, or nil when nothing was saved
func (s *MemoryStore) Load(ctx context.Context) (*state.State, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.saved == nil {
		return nil, nil
	}
	st := *s.saved
	return &st, nil
}

// Save keeps st. Snapshots are immutable so no deep copy is needed.
func (s *MemoryStore) Save(ctx context.Context, st state.State) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.saved = &st
	s.saves++
	return nil
}

// Saves returns how many snapshots were written
func (s *MemoryStore) Saves() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.saves
}
