package ngram

import (
	"context"
	"fmt"
	"sync"
)

// BaselineKey identifies the unfiltered counts of one question in one dataset
// version. A reload produces a new version, so stale entries are never served.
type BaselineKey struct {
	Campaign string
	Version  string
	Question string
}

func (k BaselineKey) String() string {
	return fmt.Sprintf("surveyloom:ngrams:%s:%s:%s", k.Campaign, k.Version, k.Question)
}

// Store caches unfiltered n-gram counts.
type Store interface {
	Get(ctx context.Context, key BaselineKey) (Counts, bool, error)
	Put(ctx context.Context, key BaselineKey, c Counts) error
}

// MemoryStore is an in-process Store.
type MemoryStore struct {
	mu sync.RWMutex
	m  map[BaselineKey]Counts
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{m: make(map[BaselineKey]Counts)}
}

func (s *MemoryStore) Get(_ context.Context, key BaselineKey) (Counts, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.m[key]
	return c, ok, nil
}

func (s *MemoryStore) Put(_ context.Context, key BaselineKey, c Counts) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.m[key] = c
	return nil
}

// Baseline returns the cached counts for key, computing and storing them on a
// miss. hit reports whether the cache served the value.
func Baseline(ctx context.Context, store Store, key BaselineKey, compute func() Counts) (c Counts, hit bool, err error) {
	c, ok, err := store.Get(ctx, key)
	if err != nil {
		return Counts{}, false, fmt.Errorf("get baseline %s: %w", key, err)
	}
	if ok {
		return c, true, nil
	}
	c = compute()
	if err := store.Put(ctx, key, c); err != nil {
		return c, false, fmt.Errorf("put baseline %s: %w", key, err)
	}
	return c, false, nil
}
