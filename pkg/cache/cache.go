// Package cache persists parse results keyed by source content and pattern
// set. A source whose blob ID and pattern-set hash both match a cached entry
// parses to byte-identical output, so the cached program is returned without
// re-parsing.
package cache

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/resast/resast/pkg/types"
)

// Entry is one cached parse result.
type Entry struct {
	BlobID       types.BlobID
	PatternsHash string
	Source       string
	Program      json.RawMessage
	Diagnostics  json.RawMessage
	ParsedAt     time.Time
}

// Store provides persistence for parse results.
// This interface abstracts the underlying storage implementation.
type Store interface {
	// Get retrieves a cached entry, if present.
	Get(blobID types.BlobID, patternsHash string) (*Entry, bool, error)

	// Put stores an entry, replacing any previous one for the same key.
	Put(e *Entry) error

	// Count returns the number of cached entries.
	Count() (int64, error)

	// Close closes the underlying storage.
	Close() error
}

// Config for cache initialization.
type Config struct {
	// Path is the database file path.
	// Use ":memory:" for an in-memory cache (useful for testing and serve mode).
	Path string
}

// New creates a new Store.
func New(cfg Config) (Store, error) {
	if cfg.Path == "" {
		return nil, fmt.Errorf("path is required")
	}

	if cfg.Path == ":memory:" {
		return NewMemory(), nil
	}

	return NewSQLite(cfg.Path)
}
