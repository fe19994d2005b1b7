package cache

import (
	"sync"

	"github.com/resast/resast/pkg/types"
)

// MemoryStore implements Store using an in-memory map. Used for serve mode
// and tests where persistence across runs is not wanted.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[memoryKey]*Entry
}

type memoryKey struct {
	blobID       types.BlobID
	patternsHash string
}

// NewMemory creates a new in-memory cache.
func NewMemory() *MemoryStore {
	return &MemoryStore{
		entries: make(map[memoryKey]*Entry),
	}
}

// Get retrieves a cached entry, if present.
func (m *MemoryStore) Get(blobID types.BlobID, patternsHash string) (*Entry, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	e, ok := m.entries[memoryKey{blobID, patternsHash}]
	if !ok {
		return nil, false, nil
	}
	copied := *e
	return &copied, true, nil
}

// Put stores an entry, replacing any previous one for the same key.
func (m *MemoryStore) Put(e *Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	copied := *e
	m.entries[memoryKey{e.BlobID, e.PatternsHash}] = &copied
	return nil
}

// Count returns the number of cached entries.
func (m *MemoryStore) Count() (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return int64(len(m.entries)), nil
}

// Close is a no-op for the in-memory cache.
func (m *MemoryStore) Close() error {
	return nil
}
