// Package store persists editing-session state as JSON documents in a
// key-value store. Three backends share one interface: in-memory for tests,
// SQLite for local single-user sessions and PostgreSQL for shared setups.
package store

import (
	"context"
	"sync"
)

// KV is a string key-value store. Get reports absence through its second
// return value instead of an error.
type KV interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key string, value string) error
	Delete(ctx context.Context, key string) error
}

// MemoryStore is a process-local KV backed by a map. Safe for concurrent use.
type MemoryStore struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: map[string]string{}}
}

// Get returns the value stored under key.
func (s *MemoryStore) Get(ctx context.Context, key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	value, found := s.values[key]
	return value, found, nil
}

// Set stores value under key, replacing any previous value.
func (s *MemoryStore) Set(ctx context.Context, key string, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
	return nil
}

// Delete removes key. Deleting an absent key is a no-op.
func (s *MemoryStore) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, key)
	return nil
}
