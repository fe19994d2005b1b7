package main

import (
	"encoding/json"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/resast/resast/pkg/pattern"
	"github.com/resast/resast/pkg/types"
	"github.com/spf13/cobra"
)

var (
	patternsPath   string
	patternsFormat string
)

var patternsCmd = &cobra.Command{
	Use:   "patterns",
	Short: "Manage recognizer patterns",
	Long:  "Commands for listing and inspecting recognizer patterns",
}

var patternsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List available patterns",
	Long:  "Display all available recognizer patterns with their IDs and kinds",
	RunE:  runPatternsList,
}

func init() {
	patternsCmd.AddCommand(patternsListCmd)
	patternsListCmd.Flags().StringVar(&patternsPath, "patterns", "", "Path to custom patterns file")
	patternsListCmd.Flags().StringVar(&patternsFormat, "format", "table", "Output format: table, json")
}

func runPatternsList(cmd *cobra.Command, args []string) error {
	loader := pattern.NewLoader()

	var patterns []*types.Pattern
	var err error

	// Load patterns (builtin or custom)
	if patternsPath != "" {
		patterns, err = loader.LoadPatternFile(patternsPath)
		if err != nil {
			return fmt.Errorf("loading patterns from %s: %w", patternsPath, err)
		}
	} else {
		patterns, err = loader.LoadBuiltinPatterns()
		if err != nil {
			return fmt.Errorf("loading builtin patterns: %w", err)
		}
	}

	// Output based on format
	switch patternsFormat {
	case "json":
		return outputPatternsJSON(cmd, patterns)
	case "table":
		return outputPatternsTable(cmd, patterns)
	default:
		return fmt.Errorf("unknown output format: %s", patternsFormat)
	}
}

// =============================================================================
// HELPERS
// =============================================================================

func outputPatternsJSON(cmd *cobra.Command, patterns []*types.Pattern) error {
	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent("", "  ")
	return encoder.Encode(patterns)
}

func outputPatternsTable(cmd *cobra.Command, patterns []*types.Pattern) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	defer w.Flush()

	fmt.Fprintf(w, "ID\tKind\tName\tKeywords\n")
	fmt.Fprintf(w, "--\t----\t----\t--------\n")

	for _, p := range patterns {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", p.ID, p.Kind, p.Name, strings.Join(p.Keywords, ", "))
	}

	return nil
}
