package store

import (
	"context"
	"sync"
)

// MemoryKV implements KV with a mutex-guarded map, suitable for tests and
// ephemeral deployments.
type MemoryKV struct {
	mu    sync.RWMutex
	items map[string]string
}

// NewMemory returns an empty in-memory store.
func NewMemory() *MemoryKV {
	return &MemoryKV{items: make(map[string]string)}
}

// Get retrieves the stored value for key.
func (s *MemoryKV) Get(_ context.Context, key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	value, ok := s.items[key]
	return value, ok, nil
}

// Set stores value under key.
func (s *MemoryKV) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[key] = value
	return nil
}

// Close is a no-op.
func (s *MemoryKV) Close() error { return nil }
