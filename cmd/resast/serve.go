package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/resast/resast"
	"github.com/resast/resast/pkg/serve"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run as streaming server for build tooling integration",
	Long: `Run resast as a long-lived streaming server that accepts parse requests
via stdin and outputs programs via stdout using NDJSON format.

This mode is designed for integration with JavaScript build tooling.
The process loads patterns once at startup and processes requests until
stdin closes or SIGTERM is received.`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	// Create parser with builtin patterns
	parser, err := resast.New()
	if err != nil {
		return err
	}
	defer parser.Close()

	// Set up signal handling
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)

	go func() {
		<-sigChan
		cancel()
	}()

	// Create and run server
	srv := serve.NewServer(parser, cmd.InOrStdin(), cmd.OutOrStdout())
	return srv.Run(ctx)
}
