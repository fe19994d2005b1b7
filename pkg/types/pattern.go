package types

import (
	"crypto/sha1"
	"encoding/hex"
	"regexp"
	"sort"
)

// PatternKind names the declaration shape a pattern recognizes.
type PatternKind string

const (
	// KindOpen recognizes module open statements ("open TurboModule").
	KindOpen PatternKind = "open"
	// KindType recognizes the record type definition ("type spec = {").
	KindType PatternKind = "type"
	// KindModule recognizes the module-registration binding.
	KindModule PatternKind = "module"
	// KindComponent recognizes the component-registration call.
	KindComponent PatternKind = "component"
)

// Valid reports whether k is one of the recognized kinds.
func (k PatternKind) Valid() bool {
	switch k {
	case KindOpen, KindType, KindModule, KindComponent:
		return true
	}
	return false
}

// Pattern is a declaration recognizer: a regex with named captures plus the
// metadata the matcher and CLI need. Patterns carry no extraction logic; the
// parser consumes their captures.
type Pattern struct {
	ID               string      // e.g., "res.open.1"
	Name             string      // human-readable name
	Kind             PatternKind // declaration shape this recognizes
	Pattern          string      // regex pattern with named capture groups
	StructuralID     string      // SHA-1 of kind+pattern (computed)
	Description      string      // optional
	Examples         []string    // source lines the pattern must match
	NegativeExamples []string    // source lines the pattern must not match
	Keywords         []string    // literals for Aho-Corasick prefiltering
}

// namedGroupRe rewrites named capture groups like (?P<name>...) and (?<name>...)
// to plain groups so the structural ID survives capture-name refactors.
var namedGroupRe = regexp.MustCompile(`\(\?P?<[^>]+>`)

// ComputeStructuralID computes SHA-1 over the kind and the pattern with
// capture names normalized away. Cache entries key on the pattern-set hash
// built from these, so editing a regex invalidates stale parses.
func (p *Pattern) ComputeStructuralID() string {
	normalized := namedGroupRe.ReplaceAllString(p.Pattern, "(")
	h := sha1.New()
	h.Write([]byte(p.Kind))
	h.Write([]byte{0})
	h.Write([]byte(normalized))
	return hex.EncodeToString(h.Sum(nil))
}

// ComputePatternSetID computes a stable SHA-1 over the sorted structural IDs
// of a pattern set. Order-insensitive: the same patterns in any order hash
// the same.
func ComputePatternSetID(patterns []*Pattern) string {
	ids := make([]string, 0, len(patterns))
	for _, p := range patterns {
		id := p.StructuralID
		if id == "" {
			id = p.ComputeStructuralID()
		}
		ids = append(ids, id)
	}
	sort.Strings(ids)

	h := sha1.New()
	for _, id := range ids {
		h.Write([]byte(id))
		h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil))
}
