package resast

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/resast/resast/pkg/ast"
)

const sampleSource = `open Base

type spec = {
  getValue: () => string,
  setValue: (string, string) => unit,
}

let handle = TurboModule.get("ValueStore")
`

func TestNew(t *testing.T) {
	parser, err := New()
	require.NoError(t, err)
	defer parser.Close()

	// Should have loaded the builtin patterns
	assert.Equal(t, 4, parser.PatternCount(), "should have one builtin pattern per declaration shape")
}

func TestParseString(t *testing.T) {
	parser, err := New()
	require.NoError(t, err)
	defer parser.Close()

	result := parser.ParseString(sampleSource, "NativeValueStore.res")
	require.NotNil(t, result.Program)
	assert.Equal(t, "NativeValueStore.res", result.Source)
	assert.Empty(t, result.Diagnostics)

	// Verify program structure
	assert.Equal(t, "module", result.Program.SourceType)
	require.Len(t, result.Program.Body, 3)
	_, ok := result.Program.Body[0].(*ast.ImportDeclaration)
	assert.True(t, ok, "first declaration should be the lowered open")
	_, ok = result.Program.Body[2].(*ast.ExportDefaultDeclaration)
	assert.True(t, ok, "registration should lower to a default export")
}

func TestParseBytes(t *testing.T) {
	parser, err := New()
	require.NoError(t, err)
	defer parser.Close()

	result := parser.Parse([]byte("open ReactNative.Types\n"), "Probe.res")
	require.NotNil(t, result.Program)
	require.Len(t, result.Program.Body, 1)

	imp, ok := result.Program.Body[0].(*ast.ImportDeclaration)
	require.True(t, ok)
	assert.Equal(t, "Types", imp.Specifiers[0].Local.Name)
}

func TestParseStringNothingRecognized(t *testing.T) {
	parser, err := New()
	require.NoError(t, err)
	defer parser.Close()

	result := parser.ParseString("// just a comment\nlet x = 1\n", "Plain.res")
	require.NotNil(t, result.Program)
	assert.Empty(t, result.Program.Body)
	assert.Empty(t, result.Diagnostics)
	assert.Empty(t, result.Program.Errors)
}

func TestParseFile(t *testing.T) {
	parser, err := New()
	require.NoError(t, err)
	defer parser.Close()

	path := filepath.Join(t.TempDir(), "NativeValueStore.res")
	require.NoError(t, os.WriteFile(path, []byte(sampleSource), 0o644))

	result, err := parser.ParseFile(path)
	require.NoError(t, err)
	assert.Equal(t, path, result.Source)
	assert.Len(t, result.Program.Body, 3)
}

func TestParseFileMissing(t *testing.T) {
	parser, err := New()
	require.NoError(t, err)
	defer parser.Close()

	_, err = parser.ParseFile(filepath.Join(t.TempDir(), "absent.res"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading file")
}

func TestParseBatch(t *testing.T) {
	parser, err := New()
	require.NoError(t, err)
	defer parser.Close()

	batch := parser.ParseBatch([]ContentItem{
		{Source: "A.res", Content: "open Base\n"},
		{Source: "B.res", Content: sampleSource},
		{Source: "C.res", Content: "nothing here\n"},
	})

	require.Len(t, batch.Results, 3)
	assert.Equal(t, "A.res", batch.Results[0].Source)
	assert.Len(t, batch.Results[0].Program.Body, 1)
	assert.Len(t, batch.Results[1].Program.Body, 3)
	assert.Empty(t, batch.Results[2].Program.Body)
	assert.Equal(t, 4, batch.Total, "total should count lowered declarations")
}

func TestWithCustomPatterns(t *testing.T) {
	// Load builtin patterns and keep only the open recognizer
	all, err := LoadBuiltinPatterns()
	require.NoError(t, err)

	var subset []*Pattern
	for _, p := range all {
		if p.Kind == KindOpen {
			subset = append(subset, p)
		}
	}
	require.Len(t, subset, 1)

	parser, err := New(WithPatterns(subset))
	require.NoError(t, err)
	defer parser.Close()

	assert.Equal(t, 1, parser.PatternCount())

	// Only the open statement is recognized now
	result := parser.ParseString(sampleSource, "Subset.res")
	require.Len(t, result.Program.Body, 1)
	_, ok := result.Program.Body[0].(*ast.ImportDeclaration)
	assert.True(t, ok)
}

func TestWithMaxDepth(t *testing.T) {
	parser, err := New(WithMaxDepth(1))
	require.NoError(t, err)
	defer parser.Close()

	src := "type spec = {\n  get: () => option<array<string>>,\n}\n"
	result := parser.ParseString(src, "Deep.res")
	require.NotEmpty(t, result.Diagnostics)
	assert.Contains(t, result.Diagnostics[0].Message, "nested deeper than 1 levels")
}

func TestLoadBuiltinPatterns(t *testing.T) {
	patterns, err := LoadBuiltinPatterns()
	require.NoError(t, err)
	assert.Len(t, patterns, 4)

	// Verify pattern structure
	for _, p := range patterns {
		assert.NotEmpty(t, p.ID, "pattern should have ID")
		assert.NotEmpty(t, p.Name, "pattern should have name")
		assert.True(t, p.Kind.Valid(), "pattern should have a known kind")
	}
}

func TestLoadPatternsFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yml")
	data := `patterns:
  - name: Open Statement
    id: custom.open
    kind: open
    pattern: '(?m)^open[ \t]+(?P<module>[A-Z][A-Za-z0-9_]*)$'
    keywords:
      - "open"
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	patterns, err := LoadPatternsFromFile(path)
	require.NoError(t, err)
	require.Len(t, patterns, 1)
	assert.Equal(t, "custom.open", patterns[0].ID)
	assert.NotEmpty(t, patterns[0].StructuralID)
}

func TestPatterns(t *testing.T) {
	parser, err := New()
	require.NoError(t, err)
	defer parser.Close()

	patterns := parser.Patterns()
	assert.Equal(t, parser.PatternCount(), len(patterns))

	// Verify it's a copy, not a reference
	patterns[0] = nil
	assert.NotNil(t, parser.Patterns()[0])
}

func TestPatternSetID(t *testing.T) {
	first, err := New()
	require.NoError(t, err)
	defer first.Close()

	second, err := New()
	require.NoError(t, err)
	defer second.Close()

	assert.Len(t, first.PatternSetID(), 40)
	assert.Equal(t, first.PatternSetID(), second.PatternSetID(), "same pattern set should hash the same")

	subset, err := New(WithPatterns(first.Patterns()[:1]))
	require.NoError(t, err)
	defer subset.Close()

	assert.NotEqual(t, first.PatternSetID(), subset.PatternSetID())
}

func TestMultipleParsers(t *testing.T) {
	// Each parser instance is independent - use multiple parsers for concurrency
	done := make(chan bool, 5)
	for i := range 5 {
		go func(idx int) {
			parser, err := New()
			require.NoError(t, err)
			defer parser.Close()

			result := parser.ParseString(sampleSource, "Concurrent.res")
			assert.NotNil(t, result.Program)
			done <- true
		}(i)
	}

	// Wait for all goroutines
	for range 5 {
		<-done
	}
}

func TestSequentialParsing(t *testing.T) {
	// Single parser - sequential parses are safe
	parser, err := New()
	require.NoError(t, err)
	defer parser.Close()

	for i := range 5 {
		result := parser.ParseString(sampleSource, "Loop.res")
		assert.NotNil(t, result.Program, "parse %d should produce a program", i)
	}
}
