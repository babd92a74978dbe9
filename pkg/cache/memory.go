package cache

import (
	"context"
	"fmt"
	"sync"
)

const storeLabelMemory = "memory"

// MemoryStore is an in-process Store. Contents are lost on restart.
type MemoryStore struct {
	name    string
	mu      sync.RWMutex
	entries map[string]*CacheEntry
}

// NewMemoryStore creates an empty in-memory store called name.
func NewMemoryStore(name string) *MemoryStore {
	if name == "" {
		panic("cache name cannot be empty")
	}
	return &MemoryStore{
		name:    name,
		entries: make(map[string]*CacheEntry),
	}
}

// Name returns the store identifier.
func (s *MemoryStore) Name() string {
	return s.name
}

// Match returns a copy of the entry stored under key.
func (s *MemoryStore) Match(_ context.Context, key CacheKey) (*CacheEntry, error) {
	s.mu.RLock()
	entry, ok := s.entries[key.String()]
	s.mu.RUnlock()

	if !ok {
		CacheMisses.WithLabelValues(storeLabelMemory).Inc()
		return nil, ErrCacheMiss
	}

	CacheHits.WithLabelValues(storeLabelMemory).Inc()
	return entry.Clone(), nil
}

// Put stores a copy of entry under key.
func (s *MemoryStore) Put(_ context.Context, key CacheKey, entry *CacheEntry) error {
	if entry == nil {
		return fmt.Errorf("cache entry cannot be nil")
	}

	s.mu.Lock()
	s.entries[key.String()] = entry.Clone()
	s.mu.Unlock()

	StoredBytes.WithLabelValues(storeLabelMemory).Add(float64(entry.Size()))
	return nil
}

// Keys lists the stored URLs.
func (s *MemoryStore) Keys(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	keys := make([]string, 0, len(s.entries))
	for k := range s.entries {
		keys = append(keys, k)
	}
	return keys, nil
}

// Ping always succeeds.
func (s *MemoryStore) Ping(context.Context) error {
	return nil
}
