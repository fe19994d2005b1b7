package enum

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/resast/resast/pkg/types"
)

// collectFiles runs the enumerator and gathers results keyed by path.
func collectFiles(t *testing.T, e Enumerator) map[string]string {
	t.Helper()

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
	return results
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("failed to create dir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}
	return path
}

func TestFilesystemEnumerator(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "ValueStore.res", "open Base\n")
	writeFile(t, dir, "sub/SwitchView.res", "open ReactNative\n")
	writeFile(t, dir, "README.md", "# docs\n")

	e := NewFilesystemEnumerator(Config{Root: dir, Extensions: DefaultExtensions})
	results := collectFiles(t, e)

	if len(results) != 2 {
		t.Fatalf("expected 2 files, got %d: %v", len(results), results)
	}
	if results[filepath.Join(dir, "ValueStore.res")] != "open Base\n" {
		t.Errorf("missing or wrong ValueStore.res content")
	}
	if _, ok := results[filepath.Join(dir, "sub", "SwitchView.res")]; !ok {
		t.Errorf("nested file not enumerated")
	}
}

func TestFilesystemEnumeratorNoExtensionFilter(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.res", "a")
	writeFile(t, dir, "b.txt", "b")

	e := NewFilesystemEnumerator(Config{Root: dir})
	results := collectFiles(t, e)

	if len(results) != 2 {
		t.Fatalf("expected 2 files, got %d", len(results))
	}
}

func TestFilesystemEnumeratorSkipsHidden(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "visible.res", "v")
	writeFile(t, dir, ".hidden.res", "h")
	writeFile(t, dir, ".git/objects/stuff.res", "g")

	e := NewFilesystemEnumerator(Config{Root: dir, Extensions: DefaultExtensions})
	results := collectFiles(t, e)

	if len(results) != 1 {
		t.Fatalf("expected only visible file, got %v", results)
	}

	e = NewFilesystemEnumerator(Config{Root: dir, Extensions: DefaultExtensions, IncludeHidden: true})
	results = collectFiles(t, e)

	if len(results) != 3 {
		t.Fatalf("expected 3 files with hidden included, got %d", len(results))
	}
}

func TestFilesystemEnumeratorSkipsBinary(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "text.res", "plain text")
	writeFile(t, dir, "binary.res", "bin\x00ary")

	e := NewFilesystemEnumerator(Config{Root: dir, Extensions: DefaultExtensions})
	results := collectFiles(t, e)

	if len(results) != 1 {
		t.Fatalf("expected binary file to be skipped, got %v", results)
	}
}

func TestFilesystemEnumeratorMaxFileSize(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "small.res", "ok")
	writeFile(t, dir, "large.res", "this one exceeds the limit")

	e := NewFilesystemEnumerator(Config{Root: dir, Extensions: DefaultExtensions, MaxFileSize: 10})
	results := collectFiles(t, e)

	if len(results) != 1 {
		t.Fatalf("expected large file to be skipped, got %v", results)
	}
}

func TestFilesystemEnumeratorGitignore(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, ".gitignore", "generated.res\n")
	writeFile(t, dir, "kept.res", "k")
	writeFile(t, dir, "generated.res", "g")

	e := NewFilesystemEnumerator(Config{Root: dir, Extensions: DefaultExtensions, RespectGitignore: true})
	results := collectFiles(t, e)
	if len(results) != 1 {
		t.Fatalf("expected gitignored file to be skipped, got %v", results)
	}

	e = NewFilesystemEnumerator(Config{Root: dir, Extensions: DefaultExtensions})
	results = collectFiles(t, e)
	if len(results) != 2 {
		t.Fatalf("expected gitignore to be ignored, got %v", results)
	}
}

func TestFilesystemEnumeratorBlobIDs(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.res", "identical")
	writeFile(t, dir, "b.res", "identical")

	e := NewFilesystemEnumerator(Config{Root: dir, Extensions: DefaultExtensions})

	var mu sync.Mutex
	ids := make(map[string]types.BlobID)
	err := e.Enumerate(context.Background(), func(content []byte, blobID types.BlobID, prov types.Provenance) error {
		mu.Lock()
		defer mu.Unlock()
		ids[prov.Path()] = blobID
		return nil
	})
	if err != nil {
		t.Fatalf("enumerate failed: %v", err)
	}

	if len(ids) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(ids))
	}
	a := ids[filepath.Join(dir, "a.res")]
	b := ids[filepath.Join(dir, "b.res")]
	if a != b {
		t.Errorf("identical content should share a blob ID: %s vs %s", a, b)
	}
	if a != types.ComputeBlobID([]byte("identical")) {
		t.Errorf("blob ID does not match computed value")
	}
}

func TestFilesystemEnumeratorCancellation(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.res", "a")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	e := NewFilesystemEnumerator(Config{Root: dir, Extensions: DefaultExtensions})
	err := e.Enumerate(ctx, func(content []byte, blobID types.BlobID, prov types.Provenance) error {
		return nil
	})
	if err == nil {
		t.Fatal("expected cancellation error")
	}
}

func TestFilesystemEnumeratorMissingRoot(t *testing.T) {
	e := NewFilesystemEnumerator(Config{Root: "/nonexistent/path/xyz"})
	err := e.Enumerate(context.Background(), func(content []byte, blobID types.BlobID, prov types.Provenance) error {
		return nil
	})
	if err == nil {
		t.Fatal("expected error for missing root")
	}
}

func TestMatchesExtensions(t *testing.T) {
	tests := []struct {
		path       string
		extensions []string
		want       bool
	}{
		{"a.res", []string{".res"}, true},
		{"a.RES", []string{".res"}, true},
		{"a.resi", []string{".res"}, false},
		{"a.txt", []string{".res"}, false},
		{"a.txt", nil, true},
		{"noext", []string{".res"}, false},
	}

	for _, tt := range tests {
		if got := matchesExtensions(tt.path, tt.extensions); got != tt.want {
			t.Errorf("matchesExtensions(%q, %v) = %v, want %v", tt.path, tt.extensions, got, tt.want)
		}
	}
}
