// Package storage provides the key-value store the tracker persists into.
// Values are opaque strings (JSON at the call sites), keyed per user by the
// session layer. Two implementations exist: an in-memory store for tests and
// the default backend, and a SQLite-backed store for durable data.
package storage

import "sync"

// Store is the persistence collaborator consumed by the session and auth
// layers.
type Store interface {
	// Load returns the value at key and whether it was present.
	Load(key string) (string, bool, error)
	// Save writes the value at key, replacing any previous value.
	Save(key, value string) error
	// Remove deletes the key. Removing an absent key is not an error.
	Remove(key string) error
}

// MemoryStore is a Store held entirely in memory.
type MemoryStore struct {
	mu     sync.Mutex
	values map[string]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string]string)}
}

func (s *MemoryStore) Load(key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.values[key]
	return v, ok, nil
}

func (s *MemoryStore) Save(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
	return nil
}

func (s *MemoryStore) Remove(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, key)
	return nil
}
