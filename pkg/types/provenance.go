package types

import "time"

// Provenance tracks where a spec source was discovered.
type Provenance interface {
	Kind() string
	// Path returns a displayable path for diagnostics and reports.
	Path() string
}

// FileProvenance for sources read from the filesystem.
type FileProvenance struct {
	FilePath string
}

// Kind returns "file".
func (f FileProvenance) Kind() string {
	return "file"
}

// Path returns the file path.
func (f FileProvenance) Path() string {
	return f.FilePath
}

// GitProvenance for sources read out of a git tree without a checkout.
type GitProvenance struct {
	RepoPath string
	Commit   *CommitMetadata // nil if not tracking commit info
	BlobPath string          // path within the repo at the commit
}

// Kind returns "git".
func (g GitProvenance) Kind() string {
	return "git"
}

// Path returns the blob path within the repository.
func (g GitProvenance) Path() string {
	return g.BlobPath
}

// CommitMetadata holds git commit information for a git-enumerated source.
type CommitMetadata struct {
	CommitID           string
	AuthorName         string
	AuthorEmail        string
	AuthorTimestamp    time.Time
	CommitterName      string
	CommitterEmail     string
	CommitterTimestamp time.Time
	Message            string
}
