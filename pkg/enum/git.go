package enum

import (
	"context"
	"fmt"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"

	"github.com/resast/resast/pkg/types"
)

// GitEnumerator enumerates sources from a git tree without a checkout.
type GitEnumerator struct {
	config Config
	// CommitRef optionally specifies a commit to enumerate (defaults to HEAD)
	CommitRef string
}

// NewGitEnumerator creates a new git enumerator.
func NewGitEnumerator(config Config) *GitEnumerator {
	return &GitEnumerator{
		config:    config,
		CommitRef: "HEAD",
	}
}

// Enumerate walks the tree at the configured ref and yields unique blobs.
func (e *GitEnumerator) Enumerate(ctx context.Context, callback func(content []byte, blobID types.BlobID, prov types.Provenance) error) error {
	repo, err := git.PlainOpen(e.config.Root)
	if err != nil {
		return fmt.Errorf("failed to open git repository: %w", err)
	}

	ref, err := repo.ResolveRevision(plumbing.Revision(e.CommitRef))
	if err != nil {
		return fmt.Errorf("failed to resolve ref %s: %w", e.CommitRef, err)
	}

	commit, err := repo.CommitObject(*ref)
	if err != nil {
		return fmt.Errorf("failed to get commit: %w", err)
	}

	tree, err := commit.Tree()
	if err != nil {
		return fmt.Errorf("failed to get tree: %w", err)
	}

	// Track seen blobs to avoid duplicates
	seen := make(map[plumbing.Hash]bool)

	err = tree.Files().ForEach(func(f *object.File) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if seen[f.Hash] {
			return nil
		}
		seen[f.Hash] = true

		if !matchesExtensions(f.Name, e.config.Extensions) {
			return nil
		}

		if e.config.MaxFileSize > 0 && f.Size > e.config.MaxFileSize {
			return nil
		}

		content, err := f.Contents()
		if err != nil {
			return fmt.Errorf("failed to get contents of %s: %w", f.Name, err)
		}

		if isBinary([]byte(content)) {
			return nil
		}

		blobID := types.ComputeBlobID([]byte(content))

		commitMeta := &types.CommitMetadata{
			CommitID:           commit.Hash.String(),
			AuthorName:         commit.Author.Name,
			AuthorEmail:        commit.Author.Email,
			AuthorTimestamp:    commit.Author.When,
			CommitterName:      commit.Committer.Name,
			CommitterEmail:     commit.Committer.Email,
			CommitterTimestamp: commit.Committer.When,
			Message:            commit.Message,
		}

		prov := types.GitProvenance{
			RepoPath: e.config.Root,
			Commit:   commitMeta,
			BlobPath: f.Name,
		}

		return callback([]byte(content), blobID, prov)
	})

	if err != nil {
		return fmt.Errorf("failed to walk tree: %w", err)
	}

	return nil
}
