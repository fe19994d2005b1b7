// Package resast lowers ReScript native interface sources into Babel-style
// ESTree programs.
//
// Resast is not a grammar parser. It recognizes the handful of declaration
// shapes a native interface file is made of (module opens, the spec record
// type, module and component registrations) with a pattern set, then lowers
// each recognized declaration into ESTree nodes with exact source locations.
// Parsing never fails: anything the parser cannot lower degrades to a valid
// default node and a diagnostic.
//
// # Basic Usage
//
// Create a parser with the builtin patterns and parse a source string:
//
//	parser, err := resast.New()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer parser.Close()
//
//	result := parser.ParseString(src, "NativeValueStore.res")
//	for _, diag := range result.Diagnostics {
//	    fmt.Println(diag)
//	}
//
//	out, err := json.Marshal(result.Program)
//
// # Custom Patterns
//
// Load recognizer patterns from a YAML file instead of the builtin set:
//
//	patterns, err := resast.LoadPatternsFromFile("/path/to/patterns.yml")
//	if err != nil {
//	    return err
//	}
//	parser, err := resast.New(resast.WithPatterns(patterns))
package resast

import (
	"fmt"
	"os"
	"sync"

	"github.com/resast/resast/pkg/ast"
	"github.com/resast/resast/pkg/parser"
	"github.com/resast/resast/pkg/pattern"
	"github.com/resast/resast/pkg/types"
)

// Re-export commonly used types for convenience.
// Users can import just "github.com/resast/resast" without subpackages.
type (
	// Program is the ESTree root node a parse produces.
	Program = ast.Program

	// Diagnostic records one recoverable problem found during a parse.
	Diagnostic = types.Diagnostic

	// Pattern is a declaration recognizer definition.
	Pattern = types.Pattern

	// PatternKind names the declaration shape a pattern recognizes.
	PatternKind = types.PatternKind
)

// Re-export pattern kind constants.
const (
	KindOpen      = types.KindOpen
	KindType      = types.KindType
	KindModule    = types.KindModule
	KindComponent = types.KindComponent
)

var (
	// cachedBuiltinPatterns holds builtin patterns loaded once per process
	cachedBuiltinPatterns []*types.Pattern
	cachedPatternsErr     error
	builtinOnce           sync.Once
)

// loadBuiltinPatternsCached loads builtin patterns once and caches them
func loadBuiltinPatternsCached() ([]*types.Pattern, error) {
	builtinOnce.Do(func() {
		loader := pattern.NewLoader()
		cachedBuiltinPatterns, cachedPatternsErr = loader.LoadBuiltinPatterns()
	})
	return cachedBuiltinPatterns, cachedPatternsErr
}

// Result holds everything a single parse produced.
type Result struct {
	Source      string             `json:"source"`
	Program     *ast.Program       `json:"program"`
	Diagnostics []types.Diagnostic `json:"diagnostics"`
}

// ContentItem is one source in a batch parse.
type ContentItem struct {
	Source  string `json:"source"`
	Content string `json:"content"`
}

// BatchResult aggregates the results of a batch parse. Total counts the
// declarations lowered across all items.
type BatchResult struct {
	Results []Result `json:"results"`
	Total   int      `json:"total"`
}

// Parser lowers native interface sources into ESTree programs.
type Parser struct {
	inner  *parser.Parser
	config *parserConfig
	mu     sync.RWMutex
}

// parserConfig holds parser configuration.
type parserConfig struct {
	patterns []*types.Pattern
	maxDepth int
}

// Option configures a Parser.
type Option func(*parserConfig)

// WithPatterns uses custom recognizer patterns instead of the builtin set.
func WithPatterns(patterns []*Pattern) Option {
	return func(c *parserConfig) {
		c.patterns = patterns
	}
}

// WithMaxDepth bounds type annotation recursion at depth levels.
// Zero selects the translator default.
func WithMaxDepth(depth int) Option {
	return func(c *parserConfig) {
		c.maxDepth = depth
	}
}

// New creates a new Parser with the given options.
//
// By default the parser uses the builtin recognizer patterns and the
// default annotation depth bound.
//
// Example:
//
//	// Default parser
//	parser, err := resast.New()
//
//	// With custom patterns
//	parser, err := resast.New(resast.WithPatterns(myPatterns))
func New(opts ...Option) (*Parser, error) {
	config := &parserConfig{}

	for _, opt := range opts {
		opt(config)
	}

	// Load patterns if not provided
	if config.patterns == nil {
		patterns, err := loadBuiltinPatternsCached()
		if err != nil {
			return nil, fmt.Errorf("loading builtin patterns: %w", err)
		}
		config.patterns = patterns
	}

	inner, err := parser.New(parser.Config{
		Patterns: config.patterns,
		MaxDepth: config.maxDepth,
	})
	if err != nil {
		return nil, fmt.Errorf("creating parser: %w", err)
	}

	return &Parser{
		inner:  inner,
		config: config,
	}, nil
}

// Parse lowers raw bytes into an ESTree program. It never fails; problems
// surface as diagnostics on the result. The source label ends up in every
// node's loc.source field and may be empty.
func (p *Parser) Parse(content []byte, source string) *Result {
	p.mu.RLock()
	defer p.mu.RUnlock()

	program, diags := p.inner.Parse(content, source)
	return &Result{
		Source:      source,
		Program:     program,
		Diagnostics: diags,
	}
}

// ParseString lowers a source string into an ESTree program.
//
// Example:
//
//	result := parser.ParseString("open NativeUtils", "NativeUtils.res")
//	fmt.Printf("%d declarations\n", len(result.Program.Body))
func (p *Parser) ParseString(content, source string) *Result {
	return p.Parse([]byte(content), source)
}

// ParseFile reads and parses a file. The file path becomes the source label.
//
// Example:
//
//	result, err := parser.ParseFile("/path/to/NativeValueStore.res")
func (p *Parser) ParseFile(path string) (*Result, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading file: %w", err)
	}
	return p.Parse(content, path), nil
}

// ParseBatch parses multiple content items in one call.
func (p *Parser) ParseBatch(items []ContentItem) *BatchResult {
	p.mu.RLock()
	defer p.mu.RUnlock()

	var results []Result
	total := 0

	for _, item := range items {
		program, diags := p.inner.Parse([]byte(item.Content), item.Source)
		results = append(results, Result{
			Source:      item.Source,
			Program:     program,
			Diagnostics: diags,
		})
		total += len(program.Body)
	}

	return &BatchResult{
		Results: results,
		Total:   total,
	}
}

// Close releases parser resources.
// Always call Close when done with the parser.
func (p *Parser) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.inner != nil {
		return p.inner.Close()
	}
	return nil
}

// PatternCount returns the number of recognizer patterns loaded.
func (p *Parser) PatternCount() int {
	return len(p.config.patterns)
}

// Patterns returns a copy of the loaded recognizer patterns.
func (p *Parser) Patterns() []*Pattern {
	patterns := make([]*Pattern, len(p.config.patterns))
	copy(patterns, p.config.patterns)
	return patterns
}

// PatternSetID returns the stable hash of the loaded pattern set. Cache
// entries key on it so pattern edits invalidate stale parses.
func (p *Parser) PatternSetID() string {
	return types.ComputePatternSetID(p.config.patterns)
}

// LoadPatternsFromFile loads recognizer patterns from a YAML file.
// Use this with WithPatterns to create a parser with custom patterns.
func LoadPatternsFromFile(path string) ([]*Pattern, error) {
	loader := pattern.NewLoader()
	return loader.LoadPatternFile(path)
}

// LoadBuiltinPatterns returns all builtin recognizer patterns.
// This can be used to inspect available patterns or create a subset.
func LoadBuiltinPatterns() ([]*Pattern, error) {
	loader := pattern.NewLoader()
	return loader.LoadBuiltinPatterns()
}
