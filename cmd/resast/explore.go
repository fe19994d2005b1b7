package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/resast/resast/pkg/explore"
	"github.com/spf13/cobra"
)

var exploreCmd = &cobra.Command{
	Use:   "explore <report.json>",
	Short: "Interactively browse a parse report",
	Long: `Launch an interactive TUI to browse a JSON report written by
parse --format json.

Features:
  - Three-pane layout: filters, files table, declaration details
  - Faceted search by declaration kind, directory, and diagnostics
  - Vi-style navigation (hjkl, Ctrl-f/b, g/G)
  - Source viewer jumping to the selected declaration
  - Sortable files table`,
	Args: cobra.ExactArgs(1),
	RunE: runExplore,
}

func runExplore(cmd *cobra.Command, args []string) error {
	model, err := explore.New(args[0])
	if err != nil {
		return fmt.Errorf("loading report: %w", err)
	}

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running explore TUI: %w", err)
	}

	return nil
}
