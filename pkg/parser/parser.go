// Package parser turns ReScript native-interface sources into Babel-style
// ESTree programs. Recognition is pattern-driven: compiled patterns locate
// the declarations, a scanner and segmenter delimit the type body, and a
// translator lowers the type mini-language into Flow annotations.
//
// The parser never fails. Malformed declarations are skipped with a
// diagnostic, unrecognized type fragments degrade to Void, and internal
// panics surface as diagnostics on an otherwise well-formed empty program.
package parser

import (
	"fmt"
	"sort"

	"github.com/resast/resast/pkg/ast"
	"github.com/resast/resast/pkg/matcher"
	"github.com/resast/resast/pkg/types"
)

// Config controls parser construction.
type Config struct {
	// Patterns are the compiled recognizer patterns. Required.
	Patterns []*types.Pattern

	// MaxDepth bounds type translation recursion. Zero selects
	// DefaultMaxDepth.
	MaxDepth int
}

// Parser converts one source at a time. Safe for concurrent use.
type Parser struct {
	m        matcher.Matcher
	patterns []*types.Pattern
	maxDepth int
}

// New compiles the configured patterns into a parser.
func New(cfg Config) (*Parser, error) {
	if len(cfg.Patterns) == 0 {
		return nil, fmt.Errorf("no patterns configured")
	}
	m, err := matcher.New(matcher.Config{Patterns: cfg.Patterns})
	if err != nil {
		return nil, fmt.Errorf("compiling patterns: %w", err)
	}
	return &Parser{m: m, patterns: cfg.Patterns, maxDepth: cfg.MaxDepth}, nil
}

// Patterns returns the patterns the parser was built with.
func (p *Parser) Patterns() []*types.Pattern {
	return p.patterns
}

// Close releases the compiled patterns.
func (p *Parser) Close() error {
	return p.m.Close()
}

// Parse converts content into a program. source labels node locations; empty
// means an unnamed source. The program is always non-nil: scan failures and
// internal panics yield an empty body with diagnostics, and only a panic
// escaping to this boundary populates the program's errors field.
func (p *Parser) Parse(content []byte, source string) (prog *ast.Program, diags []types.Diagnostic) {
	src := string(content)
	idx := NewLineIndex(src)

	var label *string
	if source != "" {
		label = &source
	}
	wholeSpan := idx.Span(0, len(src), label)

	defer func() {
		if r := recover(); r != nil {
			d := types.Diagnostic{
				Message:  fmt.Sprintf("internal error: %s", panicMessage(r)),
				Line:     1,
				Column:   0,
				Position: 0,
			}
			prog = ast.NewProgram(nil, wholeSpan)
			prog.Errors = []types.Diagnostic{d}
			diags = append(diags, d)
		}
	}()

	hits, err := p.m.Match(content)
	if err != nil {
		diags = append(diags, types.Diagnostic{
			Message:  fmt.Sprintf("scanning source: %v", err),
			Line:     1,
			Column:   0,
			Position: 0,
		})
		return ast.NewProgram(nil, wholeSpan), diags
	}

	selected := selectHits(hits)

	syn := &synthesizer{
		src:    src,
		idx:    idx,
		source: label,
		tr:     NewTranslator(idx, label, p.maxDepth),
	}

	var body []ast.Declaration
	for _, hit := range selected {
		decl, ds := syn.synthesize(hit)
		diags = append(diags, ds...)
		if decl != nil {
			body = append(body, decl)
		}
	}

	return ast.NewProgram(body, wholeSpan), diags
}

// selectHits orders hits by source position and enforces declaration
// multiplicity: every open statement survives, while the type definition and
// the module and component registrations keep only their first occurrence.
func selectHits(hits []*types.Hit) []*types.Hit {
	sorted := make([]*types.Hit, len(hits))
	copy(sorted, hits)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Start != sorted[j].Start {
			return sorted[i].Start < sorted[j].Start
		}
		return sorted[i].End < sorted[j].End
	})

	seen := make(map[types.PatternKind]bool, 3)
	selected := make([]*types.Hit, 0, len(sorted))
	for _, hit := range sorted {
		switch hit.Kind {
		case types.KindOpen:
			selected = append(selected, hit)
		case types.KindType, types.KindModule, types.KindComponent:
			if seen[hit.Kind] {
				continue
			}
			seen[hit.Kind] = true
			selected = append(selected, hit)
		}
	}
	return selected
}
