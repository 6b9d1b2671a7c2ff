package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/rchuk/markerml/internal/project"
	"github.com/rchuk/markerml/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve [flags] [file.mml]",
	Short: "Serve a live preview of a MarkerML file",
	Long: `Serve starts a development server that watches the source file,
recompiles it on every change, and live-reloads connected browsers.

Without arguments it serves the entry file of the nearest markerml.toml
manifest.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runServe,
}

func init() {
	serveCmd.Flags().String("addr", "", "listen address (default: manifest setting or localhost:8080)")
}

func runServe(cmd *cobra.Command, args []string) error {
	addr, _ := cmd.Flags().GetString("addr")

	var input string
	if len(args) == 1 {
		input = args[0]
		if addr == "" {
			addr = "localhost:8080"
		}
	} else {
		manifestPath, err := project.Find(".")
		if err != nil {
			return err
		}
		manifest, err := project.Load(manifestPath)
		if err != nil {
			return err
		}
		input = manifest.EntryPath()
		if addr == "" {
			addr = manifest.Addr()
		}
	}

	srv := server.New(input, server.Options{
		Addr:           addr,
		MaxDiagnostics: maxDiagnostics(cmd),
	})

	if !quiet(cmd) {
		fmt.Fprintf(cmd.OutOrStdout(), "serving %s on http://%s\n", input, addr)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	return srv.Run(ctx)
}
