package matcher

import "github.com/resast/resast/pkg/types"

// Matcher scans content for pattern hits.
type Matcher interface {
	// Match scans content against all loaded patterns.
	// Returns hits with offsets and named capture groups.
	Match(content []byte) ([]*types.Hit, error)

	// Close releases compiled pattern resources.
	Close() error
}

// Config for matcher initialization.
type Config struct {
	// Patterns to compile and load into the matcher
	Patterns []*types.Pattern
}

// New creates a regexp-based matcher (no CGO required).
func New(cfg Config) (Matcher, error) {
	return NewEngine(cfg.Patterns)
}
