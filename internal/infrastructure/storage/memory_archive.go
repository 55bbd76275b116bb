package storage

import (
	"context"
	"io"
	"sync"
)

// MemoryArchive keeps objects in process. It backs the "none" storage
// driver so uploads still get a stable location in logs and responses.
type MemoryArchive struct {
	mu      sync.RWMutex
	objects map[string][]byte
}

// NewMemoryArchive creates an empty in-process archive
func NewMemoryArchive() *MemoryArchive {
	return &MemoryArchive{objects: make(map[string][]byte)}
}

// Put implements Archive
func (a *MemoryArchive) Put(_ context.Context, key string, r io.Reader, _ int64, _ string) (string, error) {
	if key == "" {
		return "", ErrEmptyKey
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}

	a.mu.Lock()
	a.objects[key] = data
	a.mu.Unlock()
	return "mem://" + key, nil
}

// Exists implements Archive
func (a *MemoryArchive) Exists(_ context.Context, key string) (bool, error) {
	if key == "" {
		return false, ErrEmptyKey
	}
	a.mu.RLock()
	defer a.mu.RUnlock()
	_, ok := a.objects[key]
	return ok, nil
}

// Get returns a stored object
func (a *MemoryArchive) Get(key string) ([]byte, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	data, ok := a.objects[key]
	return data, ok
}

var _ Archive = (*MemoryArchive)(nil)
