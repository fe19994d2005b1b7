package enum

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"

	"github.com/resast/resast/pkg/types"
)

// setupTestGitRepo creates a committed repository with a few files and
// returns its path and head commit hash.
func setupTestGitRepo(t *testing.T) (string, string) {
	t.Helper()

	dir := t.TempDir()
	repo, err := git.PlainInit(dir, false)
	if err != nil {
		t.Fatalf("failed to init git repo: %v", err)
	}

	files := map[string]string{
		"ValueStore.res":     "open Base\n",
		"sub/SwitchView.res": "open ReactNative\n",
		"README.md":          "# docs\n",
	}
	for name, content := range files {
		path := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatalf("failed to create dir: %v", err)
		}
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatalf("failed to write file: %v", err)
		}
	}

	wt, err := repo.Worktree()
	if err != nil {
		t.Fatalf("failed to get worktree: %v", err)
	}
	if _, err := wt.Add("."); err != nil {
		t.Fatalf("failed to add files: %v", err)
	}

	hash, err := wt.Commit("initial import", &git.CommitOptions{
		Author: &object.Signature{
			Name:  "Test User",
			Email: "test@example.com",
			When:  time.Now(),
		},
	})
	if err != nil {
		t.Fatalf("failed to commit: %v", err)
	}

	return dir, hash.String()
}

func TestGitEnumerator(t *testing.T) {
	dir, _ := setupTestGitRepo(t)

	e := NewGitEnumerator(Config{Root: dir, Extensions: DefaultExtensions})

	var mu sync.Mutex
	results := make(map[string]string)
	err := e.Enumerate(context.Background(), func(content []byte, blobID types.BlobID, prov types.Provenance) error {
		mu.Lock()
		defer mu.Unlock()
		results[prov.Path()] = string(content)
		return nil
	})
	if err != nil {
		t.Fatalf("enumerate failed: %v", err)
	}

	if len(results) != 2 {
		t.Fatalf("expected 2 blobs, got %d: %v", len(results), results)
	}
	if results["ValueStore.res"] != "open Base\n" {
		t.Errorf("missing or wrong ValueStore.res content")
	}
	if _, ok := results["sub/SwitchView.res"]; !ok {
		t.Errorf("nested blob not enumerated")
	}
}

func TestGitEnumeratorProvenance(t *testing.T) {
	dir, hash := setupTestGitRepo(t)

	e := NewGitEnumerator(Config{Root: dir, Extensions: DefaultExtensions})

	var mu sync.Mutex
	var provs []types.GitProvenance
	err := e.Enumerate(context.Background(), func(content []byte, blobID types.BlobID, prov types.Provenance) error {
		gp, ok := prov.(types.GitProvenance)
		if !ok {
			t.Errorf("expected GitProvenance, got %T", prov)
			return nil
		}
		mu.Lock()
		defer mu.Unlock()
		provs = append(provs, gp)
		return nil
	})
	if err != nil {
		t.Fatalf("enumerate failed: %v", err)
	}

	if len(provs) == 0 {
		t.Fatal("no provenance collected")
	}
	for _, gp := range provs {
		if gp.Kind() != "git" {
			t.Errorf("expected git kind, got %s", gp.Kind())
		}
		if gp.RepoPath != dir {
			t.Errorf("wrong repo path: %s", gp.RepoPath)
		}
		if gp.Commit == nil {
			t.Fatal("commit metadata missing")
		}
		if gp.Commit.CommitID != hash {
			t.Errorf("wrong commit ID: %s", gp.Commit.CommitID)
		}
		if gp.Commit.AuthorName != "Test User" {
			t.Errorf("wrong author: %s", gp.Commit.AuthorName)
		}
	}
}

func TestGitEnumeratorExplicitRef(t *testing.T) {
	dir, hash := setupTestGitRepo(t)

	e := NewGitEnumerator(Config{Root: dir, Extensions: DefaultExtensions})
	e.CommitRef = hash

	count := 0
	var mu sync.Mutex
	err := e.Enumerate(context.Background(), func(content []byte, blobID types.BlobID, prov types.Provenance) error {
		mu.Lock()
		defer mu.Unlock()
		count++
		return nil
	})
	if err != nil {
		t.Fatalf("enumerate failed: %v", err)
	}
	if count != 2 {
		t.Fatalf("expected 2 blobs at explicit ref, got %d", count)
	}
}

func TestGitEnumeratorBadRef(t *testing.T) {
	dir, _ := setupTestGitRepo(t)

	e := NewGitEnumerator(Config{Root: dir, Extensions: DefaultExtensions})
	e.CommitRef = "does-not-exist"

	err := e.Enumerate(context.Background(), func(content []byte, blobID types.BlobID, prov types.Provenance) error {
		return nil
	})
	if err == nil {
		t.Fatal("expected error for unknown ref")
	}
}

func TestGitEnumeratorNotARepo(t *testing.T) {
	e := NewGitEnumerator(Config{Root: t.TempDir()})

	err := e.Enumerate(context.Background(), func(content []byte, blobID types.BlobID, prov types.Provenance) error {
		return nil
	})
	if err == nil {
		t.Fatal("expected error for non-repository path")
	}
}
