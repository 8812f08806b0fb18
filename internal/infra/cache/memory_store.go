// File: internal/infra/cache/memory_store.go
package cache

import (
	"context"
	"sync"
	"time"

	"myfatoorah-checkout/internal/domain"
	"myfatoorah-checkout/internal/domain/ports/adapter"
)

var _ adapter.CacheStore = (*MemoryStore)(nil)

type memoryEntry struct {
	blob    []byte
	modTime time.Time
}

// MemoryStore is an in-process CacheStore. Readers share the lock; writers
// replace the slot under exclusive access.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string]memoryEntry)}
}

func (s *MemoryStore) Exists(_ context.Context, key string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.entries[key]
	return ok, nil
}

func (s *MemoryStore) ReadAll(_ context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.entries[key]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := make([]byte, len(e.blob))
	copy(cp, e.blob)
	return cp, nil
}

func (s *MemoryStore) WriteAll(_ context.Context, key string, blob []byte) error {
	cp := make([]byte, len(blob))
	copy(cp, blob)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = memoryEntry{blob: cp, modTime: time.Now()}
	return nil
}

func (s *MemoryStore) LastModified(_ context.Context, key string) (time.Time, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.entries[key]
	if !ok {
		return time.Time{}, domain.ErrNotFound
	}
	return e.modTime, nil
}
