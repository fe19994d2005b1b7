package explore

import (
	"sort"

	"github.com/resast/resast/pkg/types"
)

// facetID identifies a facet category.
type facetID int

const (
	facetKind facetID = iota
	facetDirectory
	facetDiagnostics
)

// facetDef defines a facet category.
type facetDef struct {
	ID    facetID
	Label string
}

var facetDefs = []facetDef{
	{facetKind, "Declaration"},
	{facetDirectory, "Directory"},
	{facetDiagnostics, "Diagnostics"},
}

const (
	diagFacetClean    = "clean"
	diagFacetReported = "reported"
)

// facetValue is a single selectable value within a facet.
type facetValue struct {
	FacetID  facetID
	Value    string
	Count    int
	Selected bool
}

// facetState holds the complete filter state.
type facetState struct {
	Values map[facetID][]*facetValue
}

func newFacetState() *facetState {
	return &facetState{
		Values: make(map[facetID][]*facetValue),
	}
}

// buildFacets builds facet values from the loaded files. Each file
// contributes its declaration kinds, its directory, and whether any
// diagnostics were recorded for it.
func buildFacets(files []*fileRow) *facetState {
	fs := newFacetState()

	kinds := make(map[string]int)
	dirs := make(map[string]int)
	diags := make(map[string]int)

	for _, f := range files {
		for _, kind := range f.kindSet() {
			kinds[kind]++
		}

		dirs[f.Directory]++

		diags[f.diagFacetValue()]++
	}

	fs.Values[facetKind] = mapToFacetValues(facetKind, kinds)
	fs.Values[facetDirectory] = mapToFacetValues(facetDirectory, dirs)
	fs.Values[facetDiagnostics] = mapToFacetValues(facetDiagnostics, diags)

	return fs
}

func mapToFacetValues(id facetID, counts map[string]int) []*facetValue {
	values := make([]*facetValue, 0, len(counts))
	for v, c := range counts {
		values = append(values, &facetValue{FacetID: id, Value: v, Count: c})
	}
	sort.Slice(values, func(i, j int) bool {
		return values[i].Value < values[j].Value
	})
	return values
}

// selectedValues returns the set of selected values for a facet.
func (fs *facetState) selectedValues(id facetID) map[string]bool {
	selected := make(map[string]bool)
	for _, v := range fs.Values[id] {
		if v.Selected {
			selected[v.Value] = true
		}
	}
	return selected
}

// hasActiveFilters returns true if any facet has selections.
func (fs *facetState) hasActiveFilters() bool {
	for _, values := range fs.Values {
		for _, v := range values {
			if v.Selected {
				return true
			}
		}
	}
	return false
}

// resetAll deselects all facet values.
func (fs *facetState) resetAll() {
	for _, values := range fs.Values {
		for _, v := range values {
			v.Selected = false
		}
	}
}

// matchesFile returns true if a file passes all active filters.
// Within a facet: OR (union). Across facets: AND (intersection).
func (fs *facetState) matchesFile(f *fileRow) bool {
	for _, def := range facetDefs {
		selected := fs.selectedValues(def.ID)
		if len(selected) == 0 {
			continue // no filter active for this facet
		}

		switch def.ID {
		case facetKind:
			found := false
			for _, kind := range f.kindSet() {
				if selected[kind] {
					found = true
					break
				}
			}
			if !found {
				return false
			}
		case facetDirectory:
			if !selected[f.Directory] {
				return false
			}
		case facetDiagnostics:
			if !selected[f.diagFacetValue()] {
				return false
			}
		}
	}
	return true
}

// updateCounts recounts facet values based on files passing the filters.
func (fs *facetState) updateCounts(files []*fileRow) {
	// Reset counts
	for _, values := range fs.Values {
		for _, v := range values {
			v.Count = 0
		}
	}

	for _, f := range files {
		if !fs.matchesFile(f) {
			continue
		}
		for _, v := range fs.Values[facetKind] {
			for _, kind := range f.kindSet() {
				if v.Value == kind {
					v.Count++
					break
				}
			}
		}
		for _, v := range fs.Values[facetDirectory] {
			if v.Value == f.Directory {
				v.Count++
			}
		}
		for _, v := range fs.Values[facetDiagnostics] {
			if v.Value == f.diagFacetValue() {
				v.Count++
			}
		}
	}
}

// fileRow is the denormalized view model for one parsed file in the TUI.
// Built from a report entry.
type fileRow struct {
	Source       string
	Directory    string
	DeclCount    int
	DiagCount    int
	Declarations []*declRow
	Diagnostics  []types.Diagnostic
}

// kindSet returns the distinct declaration kind labels of the file, in
// first-seen order.
func (f *fileRow) kindSet() []string {
	seen := make(map[string]bool)
	var kinds []string
	for _, d := range f.Declarations {
		if !seen[d.Kind] {
			seen[d.Kind] = true
			kinds = append(kinds, d.Kind)
		}
	}
	return kinds
}

func (f *fileRow) diagFacetValue() string {
	if f.DiagCount > 0 {
		return diagFacetReported
	}
	return diagFacetClean
}

// declRow is the denormalized view model for one lowered declaration.
type declRow struct {
	Kind      string
	Name      string
	Module    string // import source, only set for import rows
	StartLine int
	StartCol  int
	EndLine   int
	EndCol    int
	JSON      string // pretty-printed node
}
