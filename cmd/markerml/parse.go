package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rchuk/markerml/internal/diagfmt"
	"github.com/rchuk/markerml/internal/driver"
)

var parseCmd = &cobra.Command{
	Use:   "parse [flags] file.mml",
	Short: "Parse a MarkerML source file",
	Long:  `Parse builds and dumps the syntax tree of a MarkerML source file, reporting syntax and semantic errors`,
	Args:  cobra.ExactArgs(1),
	RunE:  runParse,
}

func init() {
	parseCmd.Flags().String("format", "pretty", "output format (pretty|json)")
}

func runParse(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}

	result, err := driver.Parse(args[0], maxDiagnostics(cmd))
	if err != nil {
		return fmt.Errorf("parsing failed: %w", err)
	}

	result.Bag.Sort()
	switch format {
	case "pretty":
		if result.Bag.Len() > 0 {
			diagfmt.Pretty(os.Stderr, result.Bag, result.FileSet, prettyOpts(cmd, os.Stderr))
		}
		if err := diagfmt.FormatModulePretty(os.Stdout, result.Module, result.FileSet); err != nil {
			return err
		}
	case "json":
		opts := diagfmt.JSONOpts{
			IncludePositions: true,
			IncludeNotes:     true,
		}
		if err := diagfmt.JSON(os.Stdout, result.Bag, result.FileSet, opts); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown format: %s", format)
	}

	if result.Bag.HasErrors() {
		return fmt.Errorf("parsing failed with %d diagnostics", result.Bag.Len())
	}
	return nil
}
