package geo

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sync"

	"github.com/KaramelBytes/surveyloom/internal/utils"
)

// Coordinate is a latitude/longitude pair.
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Store holds region coordinates keyed by (country code, region).
type Store interface {
	Get(country, region string) (Coordinate, bool)
	Put(country, region string, c Coordinate) error
}

// MemoryStore is a concurrency-safe in-process Store. Concurrent writers of the
// same key resolve last-writer-wins.
type MemoryStore struct {
	mu sync.RWMutex
	m  map[string]map[string]Coordinate
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{m: map[string]map[string]Coordinate{}}
}

func (s *MemoryStore) Get(country, region string) (Coordinate, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.m[country][region]
	return c, ok
}

func (s *MemoryStore) Put(country, region string, c Coordinate) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.put(country, region, c)
	return nil
}

func (s *MemoryStore) put(country, region string, c Coordinate) {
	if s.m[country] == nil {
		s.m[country] = map[string]Coordinate{}
	}
	s.m[country][region] = c
}

// Len returns the number of stored coordinates.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := 0
	for _, regions := range s.m {
		n += len(regions)
	}
	return n
}

// FileStore is a MemoryStore persisted as JSON; every Put rewrites the file atomically.
type FileStore struct {
	*MemoryStore
	path string
	wmu  sync.Mutex
}

// OpenFileStore loads path if it exists. A missing file starts an empty store.
func OpenFileStore(path string) (*FileStore, error) {
	fsStore := &FileStore{MemoryStore: NewMemoryStore(), path: path}
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fsStore, nil
		}
		return nil, fmt.Errorf("read coordinates: %w", err)
	}
	if len(b) == 0 {
		return fsStore, nil
	}
	if err := json.Unmarshal(b, &fsStore.m); err != nil {
		return nil, fmt.Errorf("parse coordinates: %w", err)
	}
	if fsStore.m == nil {
		fsStore.m = map[string]map[string]Coordinate{}
	}
	return fsStore, nil
}

func (s *FileStore) Put(country, region string, c Coordinate) error {
	s.wmu.Lock()
	defer s.wmu.Unlock()

	s.mu.Lock()
	s.put(country, region, c)
	data, err := utils.PrettyJSON(s.m)
	s.mu.Unlock()
	if err != nil {
		return err
	}
	return utils.SafeWriteFile(s.path, data)
}
