package matcher

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/resast/resast/pkg/types"
)

var testPatterns = []*types.Pattern{
	{
		ID:       "test.open",
		Name:     "Open Statement",
		Kind:     types.KindOpen,
		Pattern:  `(?m)^open[ \t]+(?P<module>[A-Z][A-Za-z0-9_.]*)[ \t]*$`,
		Keywords: []string{"open"},
	},
	{
		ID:       "test.module",
		Name:     "Module Registration",
		Kind:     types.KindModule,
		Pattern:  `TurboModule\.get\("(?P<name>[^"]*)"\)`,
		Keywords: []string{"TurboModule.get"},
	},
}

func TestNewEngineRequiresPatterns(t *testing.T) {
	_, err := NewEngine(nil)
	assert.Error(t, err)
}

func TestNewEngineRejectsBadPattern(t *testing.T) {
	_, err := NewEngine([]*types.Pattern{{
		ID:      "bad",
		Kind:    types.KindOpen,
		Pattern: `(?<unclosed`,
	}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad")
}

func TestMatchExtractsNamedGroups(t *testing.T) {
	e, err := NewEngine(testPatterns)
	require.NoError(t, err)
	defer e.Close()

	content := []byte("open Base\nlet handle = TurboModule.get(\"ValueStore\")\n")
	hits, err := e.Match(content)
	require.NoError(t, err)
	require.Len(t, hits, 2)

	byID := make(map[string]*types.Hit)
	for _, h := range hits {
		byID[h.PatternID] = h
	}

	open := byID["test.open"]
	require.NotNil(t, open)
	assert.Equal(t, types.KindOpen, open.Kind)
	module, ok := open.Group("module")
	require.True(t, ok)
	assert.Equal(t, "Base", module.Value)
	assert.Equal(t, "Base", string(content[module.Start:module.End]))

	reg := byID["test.module"]
	require.NotNil(t, reg)
	name, ok := reg.Group("name")
	require.True(t, ok)
	assert.Equal(t, "ValueStore", name.Value)
	assert.Equal(t, "ValueStore", string(content[name.Start:name.End]))
}

func TestMatchHitOffsets(t *testing.T) {
	e, err := NewEngine(testPatterns)
	require.NoError(t, err)
	defer e.Close()

	content := []byte("prefix\nopen Base")
	hits, err := e.Match(content)
	require.NoError(t, err)
	require.Len(t, hits, 1)

	hit := hits[0]
	assert.Equal(t, "open Base", string(content[hit.Start:hit.End]))
}

func TestMatchMultipleOccurrences(t *testing.T) {
	e, err := NewEngine(testPatterns)
	require.NoError(t, err)
	defer e.Close()

	hits, err := e.Match([]byte("open A\nopen B\nopen C\n"))
	require.NoError(t, err)
	require.Len(t, hits, 3)

	var modules []string
	for _, h := range hits {
		m, _ := h.Group("module")
		modules = append(modules, m.Value)
	}
	assert.Equal(t, []string{"A", "B", "C"}, modules)
}

func TestMatchNothing(t *testing.T) {
	e, err := NewEngine(testPatterns)
	require.NoError(t, err)
	defer e.Close()

	hits, err := e.Match([]byte("const x = 1;"))
	require.NoError(t, err)
	assert.Empty(t, hits)
}

func TestMatchPrefilterSkipsKeywordlessContent(t *testing.T) {
	e, err := NewEngine(testPatterns)
	require.NoError(t, err)
	defer e.Close()

	// "opened" contains the keyword "open" but fails the anchored regex.
	hits, err := e.Match([]byte("reopened discussion"))
	require.NoError(t, err)
	assert.Empty(t, hits)
}
