package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"
	"github.com/resast/resast"
	"github.com/resast/resast/pkg/cache"
	"github.com/resast/resast/pkg/enum"
	"github.com/resast/resast/pkg/pattern"
	"github.com/resast/resast/pkg/sarif"
	"github.com/resast/resast/pkg/types"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var (
	parsePatternsPath      string
	parseInclude           string
	parseExclude           string
	parseOutputPath        string
	parseFormat            string
	parseGit               bool
	parseGitRef            string
	parseCachePath         string
	parseMaxDepth          int
	parseMaxFileSize       int64
	parseIncludeHidden     bool
	parseRespectGitignore  bool
	parseExtensions        string
	parseFailOnDiagnostics bool
	parseColor             string
)

var parseCmd = &cobra.Command{
	Use:   "parse <path>...",
	Short: "Parse native interface sources",
	Long:  "Parse files, directories, or git history into ESTree programs",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runParse,
}

func init() {
	parseCmd.Flags().StringVar(&parsePatternsPath, "patterns", "", "Path to custom patterns file")
	parseCmd.Flags().StringVar(&parseInclude, "include", "", "Include patterns matching regex (comma-separated)")
	parseCmd.Flags().StringVar(&parseExclude, "exclude", "", "Exclude patterns matching regex (comma-separated)")
	parseCmd.Flags().StringVar(&parseOutputPath, "output", "", "Write output to file instead of stdout")
	parseCmd.Flags().StringVar(&parseFormat, "format", "summary", "Output format: json, sarif, summary")
	parseCmd.Flags().BoolVar(&parseGit, "git", false, "Treat target as git repository (enumerate tree at --ref)")
	parseCmd.Flags().StringVar(&parseGitRef, "ref", "", "Git revision to enumerate (defaults to HEAD)")
	parseCmd.Flags().StringVar(&parseCachePath, "cache", "", "Path to parse cache database (empty disables caching)")
	parseCmd.Flags().IntVar(&parseMaxDepth, "max-depth", 0, "Maximum type annotation nesting (0 for default)")
	parseCmd.Flags().Int64Var(&parseMaxFileSize, "max-file-size", 10*1024*1024, "Maximum file size to parse (bytes)")
	parseCmd.Flags().BoolVar(&parseIncludeHidden, "include-hidden", false, "Include hidden files and directories")
	parseCmd.Flags().BoolVar(&parseRespectGitignore, "respect-gitignore", true, "Skip files matched by the root .gitignore")
	parseCmd.Flags().StringVar(&parseExtensions, "extensions", ".res", "File extensions to parse (comma-separated)")
	parseCmd.Flags().BoolVar(&parseFailOnDiagnostics, "fail-on-diagnostics", false, "Exit non-zero when any parse produced diagnostics")
	parseCmd.Flags().StringVar(&parseColor, "color", "auto", "Color output: auto, always, never")
}

// fileResult is one parsed source ready for output. The unexported fields
// feed the summary and SARIF renderers without another program decode.
type fileResult struct {
	Source      string             `json:"source"`
	Program     json.RawMessage    `json:"program"`
	Diagnostics []types.Diagnostic `json:"diagnostics"`

	decls  int
	cached bool
	errors []types.Diagnostic
}

func runParse(cmd *cobra.Command, args []string) error {
	// Load patterns
	patterns, err := loadPatterns(parsePatternsPath, parseInclude, parseExclude)
	if err != nil {
		return fmt.Errorf("loading patterns: %w", err)
	}

	// Create parser
	parser, err := resast.New(
		resast.WithPatterns(patterns),
		resast.WithMaxDepth(parseMaxDepth),
	)
	if err != nil {
		return fmt.Errorf("creating parser: %w", err)
	}
	defer parser.Close()

	// Open parse cache when requested
	var store cache.Store
	if parseCachePath != "" {
		store, err = cache.New(cache.Config{Path: parseCachePath})
		if err != nil {
			return fmt.Errorf("opening cache: %w", err)
		}
		defer store.Close()
	}
	patternsHash := parser.PatternSetID()

	ctx := context.Background()

	// Enumerators call back from parallel readers
	var (
		mu          sync.Mutex
		results     []*fileResult
		cachedCount int
	)

	process := func(content []byte, blobID types.BlobID, prov types.Provenance) error {
		fr, fromCache, err := parseOne(parser, store, patternsHash, content, blobID, prov)
		if err != nil {
			return err
		}
		mu.Lock()
		defer mu.Unlock()
		results = append(results, fr)
		if fromCache {
			cachedCount++
		}
		return nil
	}

	for _, target := range args {
		if err := enumerateTarget(ctx, target, process); err != nil {
			return fmt.Errorf("parsing %s: %w", target, err)
		}
	}

	// Stable output order regardless of walk order
	sort.Slice(results, func(i, j int) bool { return results[i].Source < results[j].Source })

	out := io.Writer(cmd.OutOrStdout())
	if parseOutputPath != "" {
		f, err := os.Create(parseOutputPath)
		if err != nil {
			return fmt.Errorf("creating output file: %w", err)
		}
		defer f.Close()
		out = f
	}

	switch parseFormat {
	case "json":
		err = outputJSON(out, results)
	case "sarif":
		err = outputSARIF(out, results)
	case "summary":
		err = outputSummary(out, results, cachedCount)
	default:
		return fmt.Errorf("unknown output format: %s", parseFormat)
	}
	if err != nil {
		return err
	}

	if parseFailOnDiagnostics {
		total := 0
		for _, r := range results {
			total += len(r.Diagnostics)
		}
		if total > 0 {
			return fmt.Errorf("found %d diagnostics", total)
		}
	}

	return nil
}

// =============================================================================
// HELPERS
// =============================================================================

func loadPatterns(path, include, exclude string) ([]*types.Pattern, error) {
	loader := pattern.NewLoader()

	var patterns []*types.Pattern
	var err error

	if path != "" {
		// Custom patterns from file
		patterns, err = loader.LoadPatternFile(path)
	} else {
		// Builtin patterns
		patterns, err = loader.LoadBuiltinPatterns()
	}
	if err != nil {
		return nil, err
	}

	// Apply filtering if expressions specified
	if include != "" || exclude != "" {
		config := pattern.FilterConfig{
			Include: pattern.ParseFilters(include),
			Exclude: pattern.ParseFilters(exclude),
		}
		patterns, err = pattern.Filter(patterns, config)
		if err != nil {
			return nil, fmt.Errorf("filtering patterns: %w", err)
		}
	}

	return patterns, nil
}

func enumerateTarget(ctx context.Context, target string, process func([]byte, types.BlobID, types.Provenance) error) error {
	info, err := os.Stat(target)
	if err != nil {
		return fmt.Errorf("target does not exist: %s", target)
	}

	if parseGit {
		e := enum.NewGitEnumerator(enumConfig(target))
		if parseGitRef != "" {
			e.CommitRef = parseGitRef
		}
		return e.Enumerate(ctx, process)
	}

	// Explicitly named files bypass the enumeration filters
	if !info.IsDir() {
		content, err := os.ReadFile(target)
		if err != nil {
			return fmt.Errorf("reading file: %w", err)
		}
		return process(content, types.ComputeBlobID(content), types.FileProvenance{FilePath: target})
	}

	return enum.NewFilesystemEnumerator(enumConfig(target)).Enumerate(ctx, process)
}

func enumConfig(target string) enum.Config {
	return enum.Config{
		Root:             target,
		Extensions:       splitExtensions(parseExtensions),
		IncludeHidden:    parseIncludeHidden,
		MaxFileSize:      parseMaxFileSize,
		RespectGitignore: parseRespectGitignore,
	}
}

func splitExtensions(raw string) []string {
	var exts []string
	for _, e := range strings.Split(raw, ",") {
		e = strings.TrimSpace(e)
		if e == "" {
			continue
		}
		if !strings.HasPrefix(e, ".") {
			e = "." + e
		}
		exts = append(exts, e)
	}
	return exts
}

func parseOne(parser *resast.Parser, store cache.Store, patternsHash string, content []byte, blobID types.BlobID, prov types.Provenance) (*fileResult, bool, error) {
	source := prov.Path()

	if store != nil {
		entry, ok, err := store.Get(blobID, patternsHash)
		if err != nil {
			return nil, false, fmt.Errorf("reading cache: %w", err)
		}
		if ok {
			fr := &fileResult{Source: source, Program: entry.Program, cached: true}
			if len(entry.Diagnostics) > 0 {
				if err := json.Unmarshal(entry.Diagnostics, &fr.Diagnostics); err != nil {
					return nil, false, fmt.Errorf("decoding cached diagnostics: %w", err)
				}
			}
			fr.decls = countDeclarations(entry.Program)
			return fr, true, nil
		}
	}

	result := parser.Parse(content, source)

	programJSON, err := json.Marshal(result.Program)
	if err != nil {
		return nil, false, fmt.Errorf("encoding program: %w", err)
	}

	fr := &fileResult{
		Source:      source,
		Program:     programJSON,
		Diagnostics: result.Diagnostics,
		decls:       len(result.Program.Body),
		errors:      result.Program.Errors,
	}

	// Aborted parses stay uncached so the next run retries them
	if store != nil && len(result.Program.Errors) == 0 {
		var diagsJSON json.RawMessage
		if len(result.Diagnostics) > 0 {
			diagsJSON, err = json.Marshal(result.Diagnostics)
			if err != nil {
				return nil, false, fmt.Errorf("encoding diagnostics: %w", err)
			}
		}
		entry := &cache.Entry{
			BlobID:       blobID,
			PatternsHash: patternsHash,
			Source:       source,
			Program:      programJSON,
			Diagnostics:  diagsJSON,
			ParsedAt:     time.Now(),
		}
		if err := store.Put(entry); err != nil {
			return nil, false, fmt.Errorf("writing cache: %w", err)
		}
	}

	return fr, false, nil
}

// countDeclarations probes the body length without decoding full nodes
func countDeclarations(program json.RawMessage) int {
	var probe struct {
		Body []json.RawMessage `json:"body"`
	}
	if err := json.Unmarshal(program, &probe); err != nil {
		return 0
	}
	return len(probe.Body)
}

func outputJSON(out io.Writer, results []*fileResult) error {
	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(results)
}

// outputSARIF renders diagnostics in SARIF 2.1.0 format
func outputSARIF(out io.Writer, results []*fileResult) error {
	report := sarif.NewReport()

	for _, r := range results {
		internal := make(map[types.Diagnostic]bool, len(r.errors))
		for _, d := range r.errors {
			internal[d] = true
		}
		for _, d := range r.Diagnostics {
			if internal[d] {
				report.AddInternalError(r.Source, d)
				continue
			}
			report.AddDiagnostic(r.Source, d)
		}
	}

	jsonBytes, err := report.ToJSON()
	if err != nil {
		return fmt.Errorf("serializing SARIF: %w", err)
	}

	if _, err := out.Write(jsonBytes); err != nil {
		return fmt.Errorf("writing SARIF output: %w", err)
	}
	return nil
}

// summaryStyles holds color formatters for summary output
type summaryStyles struct {
	path       *color.Color
	count      *color.Color
	diagnostic *color.Color
	heading    *color.Color
}

// newSummaryStyles creates color formatters for summary output
// enabled=false respects --color=never and the NO_COLOR env var
func newSummaryStyles(enabled bool) *summaryStyles {
	s := &summaryStyles{
		path:       color.New(color.Bold, color.FgHiWhite),
		count:      color.New(color.FgHiGreen),
		diagnostic: color.New(color.FgYellow),
		heading:    color.New(color.Bold),
	}

	if !enabled {
		// Disable colors on all formatters
		s.path.DisableColor()
		s.count.DisableColor()
		s.diagnostic.DisableColor()
		s.heading.DisableColor()
	}

	return s
}

func outputSummary(out io.Writer, results []*fileResult, cachedCount int) error {
	// Determine if colors should be enabled based on --color flag
	switch parseColor {
	case "always":
		color.NoColor = false
	case "never":
		color.NoColor = true
	default: // "auto"
		// Check if stdout is a TTY and NO_COLOR is not set
		if parseOutputPath != "" || !term.IsTerminal(int(os.Stdout.Fd())) || os.Getenv("NO_COLOR") != "" {
			color.NoColor = true
		} else {
			color.NoColor = false
		}
	}
	s := newSummaryStyles(!color.NoColor)

	totalDecls := 0
	totalDiags := 0

	for _, r := range results {
		totalDecls += r.decls
		totalDiags += len(r.Diagnostics)

		// Default mode lists only sources with diagnostics
		if quiet || (!verbose && len(r.Diagnostics) == 0) {
			continue
		}

		suffix := ""
		if r.cached {
			suffix = " (cached)"
		}
		fmt.Fprintf(out, "%s: %s%s\n",
			s.path.Sprint(r.Source),
			s.count.Sprintf("%d declarations", r.decls),
			suffix)
		for _, d := range r.Diagnostics {
			fmt.Fprintf(out, "    %s\n", s.diagnostic.Sprint(d.String()))
		}
	}

	if quiet {
		return nil
	}

	summary := fmt.Sprintf("Parsed %d files: %d declarations, %d diagnostics", len(results), totalDecls, totalDiags)
	if cachedCount > 0 {
		summary += fmt.Sprintf(" (%d cached)", cachedCount)
	}
	fmt.Fprintf(out, "%s\n", s.heading.Sprint(summary))
	return nil
}
