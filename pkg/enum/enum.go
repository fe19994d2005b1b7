package enum

import (
	"context"

	"github.com/resast/resast/pkg/types"
)

// DefaultExtensions selects ReScript sources when no explicit extension
// filter is configured.
var DefaultExtensions = []string{".res"}

// Enumerator discovers source content to parse.
type Enumerator interface {
	// Enumerate yields sources one at a time.
	// The callback receives source content, its ID, and provenance information.
	Enumerate(ctx context.Context, callback func(content []byte, blobID types.BlobID, prov types.Provenance) error) error
}

// Config for enumeration.
type Config struct {
	// Root is the starting path for enumeration.
	Root string

	// Extensions restricts enumeration to matching file extensions.
	// Empty means every file.
	Extensions []string

	// IncludeHidden includes hidden files/directories (starting with .).
	IncludeHidden bool

	// MaxFileSize is the maximum file size to process (0 = no limit).
	MaxFileSize int64

	// FollowSymlinks follows symbolic links.
	FollowSymlinks bool

	// RespectGitignore skips paths matched by the root's .gitignore.
	RespectGitignore bool
}
