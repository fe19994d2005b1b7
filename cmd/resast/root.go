package main

import (
	"github.com/spf13/cobra"
)

var (
	verbose bool
	quiet   bool
)

var rootCmd = &cobra.Command{
	Use:   "resast",
	Short: "Resast - ReScript native interface parser",
	Long: `Resast lowers ReScript native interface files into Babel-compatible ESTree
programs. It recognizes the declaration shapes native codegen cares about
(module opens, the spec record type, module and component registrations) and
emits JSON syntax trees with exact source locations.

Parsing never fails: malformed declarations degrade to diagnostics.`,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Quiet mode (errors only)")

	// Add subcommands
	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(patternsCmd)
	rootCmd.AddCommand(exploreCmd)
	rootCmd.AddCommand(versionCmd)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
