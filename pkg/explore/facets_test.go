package explore

import (
	"testing"

	"github.com/resast/resast/pkg/types"
)

func TestBuildFacets(t *testing.T) {
	files := []*fileRow{
		{Source: "src/NativeA.res", Directory: "src", Declarations: []*declRow{{Kind: "import"}, {Kind: "interface"}}},
		{Source: "src/NativeB.res", Directory: "src", Declarations: []*declRow{{Kind: "interface"}, {Kind: "export"}}, DiagCount: 1},
		{Source: "lib/NativeC.res", Directory: "lib", Declarations: []*declRow{{Kind: "import"}}},
	}

	fs := buildFacets(files)

	// Check declaration kind facet
	kinds := fs.Values[facetKind]
	if len(kinds) != 3 { // export, import, interface
		t.Errorf("expected 3 kinds, got %d", len(kinds))
	}

	// Check directory facet
	dirs := fs.Values[facetDirectory]
	if len(dirs) != 2 { // lib, src
		t.Errorf("expected 2 directories, got %d", len(dirs))
	}

	// Check diagnostics facet
	diags := fs.Values[facetDiagnostics]
	if len(diags) != 2 { // clean, reported
		t.Errorf("expected 2 diagnostics states, got %d", len(diags))
	}
}

func TestFacetFiltering(t *testing.T) {
	files := []*fileRow{
		{Source: "src/NativeA.res", Directory: "src", Declarations: []*declRow{{Kind: "import"}}},
		{Source: "src/NativeB.res", Directory: "src", Declarations: []*declRow{{Kind: "export"}}, DiagCount: 2},
		{Source: "lib/NativeC.res", Directory: "lib", Declarations: []*declRow{{Kind: "import"}}},
	}

	fs := buildFacets(files)

	// No filters - all match
	for _, f := range files {
		if !fs.matchesFile(f) {
			t.Errorf("expected %s to match with no filters", f.Source)
		}
	}

	// Select "reported" in diagnostics facet
	for _, v := range fs.Values[facetDiagnostics] {
		if v.Value == diagFacetReported {
			v.Selected = true
		}
	}

	// Only files with diagnostics should match
	if fs.matchesFile(files[0]) {
		t.Error("expected NativeA to NOT match reported filter")
	}
	if !fs.matchesFile(files[1]) {
		t.Error("expected NativeB to match reported filter")
	}
	if fs.matchesFile(files[2]) {
		t.Error("expected NativeC to NOT match reported filter")
	}
}

func TestFacetReset(t *testing.T) {
	files := []*fileRow{
		{Source: "src/NativeA.res", Directory: "src", Declarations: []*declRow{{Kind: "import"}}},
	}
	fs := buildFacets(files)

	// Select a value
	fs.Values[facetKind][0].Selected = true
	if !fs.hasActiveFilters() {
		t.Error("expected active filters after selection")
	}

	// Reset
	fs.resetAll()
	if fs.hasActiveFilters() {
		t.Error("expected no active filters after reset")
	}
}

func TestFacetCrossFacetFiltering(t *testing.T) {
	files := []*fileRow{
		{Source: "src/NativeA.res", Directory: "src", Declarations: []*declRow{{Kind: "import"}}},
		{Source: "src/NativeB.res", Directory: "src", Declarations: []*declRow{{Kind: "import"}}, DiagCount: 1},
		{Source: "lib/NativeC.res", Directory: "lib", Declarations: []*declRow{{Kind: "import"}}},
	}

	fs := buildFacets(files)

	// Select "src" directory AND "clean" diagnostics (intersection)
	for _, v := range fs.Values[facetDirectory] {
		if v.Value == "src" {
			v.Selected = true
		}
	}
	for _, v := range fs.Values[facetDiagnostics] {
		if v.Value == diagFacetClean {
			v.Selected = true
		}
	}

	// Only NativeA should match (src AND clean)
	if !fs.matchesFile(files[0]) {
		t.Error("expected NativeA to match (src AND clean)")
	}
	if fs.matchesFile(files[1]) {
		t.Error("expected NativeB to NOT match (src but reported)")
	}
	if fs.matchesFile(files[2]) {
		t.Error("expected NativeC to NOT match (clean but lib, not src)")
	}
}

func TestFacetUpdateCounts(t *testing.T) {
	files := []*fileRow{
		{Source: "src/NativeA.res", Directory: "src", Declarations: []*declRow{{Kind: "import"}}},
		{Source: "lib/NativeB.res", Directory: "lib", Declarations: []*declRow{{Kind: "import"}}, DiagCount: 1},
	}

	fs := buildFacets(files)

	// Restrict to the src directory, then recount
	for _, v := range fs.Values[facetDirectory] {
		if v.Value == "src" {
			v.Selected = true
		}
	}
	fs.updateCounts(files)

	for _, v := range fs.Values[facetKind] {
		if v.Value == "import" && v.Count != 1 {
			t.Errorf("expected import count 1 after filtering, got %d", v.Count)
		}
	}
	for _, v := range fs.Values[facetDiagnostics] {
		if v.Value == diagFacetReported && v.Count != 0 {
			t.Errorf("expected reported count 0 after filtering, got %d", v.Count)
		}
	}
}

func TestFileRowKindSet(t *testing.T) {
	f := &fileRow{
		Declarations: []*declRow{
			{Kind: "import"},
			{Kind: "interface"},
			{Kind: "import"},
			{Kind: "export"},
		},
	}

	kinds := f.kindSet()
	if len(kinds) != 3 {
		t.Fatalf("expected 3 distinct kinds, got %d", len(kinds))
	}
	if kinds[0] != "import" || kinds[1] != "interface" || kinds[2] != "export" {
		t.Errorf("unexpected kind order: %v", kinds)
	}
}

func TestDiagFacetValue(t *testing.T) {
	clean := &fileRow{}
	if clean.diagFacetValue() != diagFacetClean {
		t.Errorf("expected clean, got %s", clean.diagFacetValue())
	}

	reported := &fileRow{DiagCount: 2, Diagnostics: []types.Diagnostic{{}, {}}}
	if reported.diagFacetValue() != diagFacetReported {
		t.Errorf("expected reported, got %s", reported.diagFacetValue())
	}
}
