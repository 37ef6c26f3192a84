package memory

import (
	"context"
	"sync"
)

// ReferenceStore implements ports.MutableReferenceStore in memory.
// Safe for concurrent use.
type ReferenceStore struct {
	keys map[string]map[string]struct{}
	mu   sync.RWMutex
}

// NewReferenceStore creates a new in-memory reference store.
func NewReferenceStore() *ReferenceStore {
	return &ReferenceStore{
		keys: make(map[string]map[string]struct{}),
	}
}

// Exists reports whether key was added for schemaName.
func (s *ReferenceStore) Exists(ctx context.Context, schemaName, key string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.keys[schemaName][key]
	return ok, nil
}

// Add registers keys for schemaName.
func (s *ReferenceStore) Add(ctx context.Context, schemaName string, keys ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	set, ok := s.keys[schemaName]
	if !ok {
		set = make(map[string]struct{}, len(keys))
		s.keys[schemaName] = set
	}
	for _, k := range keys {
		set[k] = struct{}{}
	}
	return nil
}

// Remove forgets keys for schemaName.
func (s *ReferenceStore) Remove(ctx context.Context, schemaName string, keys ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	set := s.keys[schemaName]
	for _, k := range keys {
		delete(set, k)
	}
	if len(set) == 0 {
		delete(s.keys, schemaName)
	}
	return nil
}
