package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rchuk/markerml/internal/diagfmt"
	"github.com/rchuk/markerml/internal/driver"
	"github.com/rchuk/markerml/internal/project"
)

var convertCmd = &cobra.Command{
	Use:   "convert [flags] [file.mml]",
	Short: "Convert a MarkerML file to HTML",
	Long: `Convert compiles a MarkerML source file into an HTML page.

Without arguments it looks for a markerml.toml manifest in the current
directory or any parent and converts the configured entry file.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runConvert,
}

func init() {
	convertCmd.Flags().StringP("output", "o", "", "output file (default: input with .html extension, or manifest setting)")
	convertCmd.Flags().Bool("no-cache", false, "bypass the render cache")
}

func runConvert(cmd *cobra.Command, args []string) error {
	input, output, err := convertPaths(cmd, args)
	if err != nil {
		return err
	}

	opts := driver.CompileOptions{MaxDiagnostics: maxDiagnostics(cmd)}
	if noCache, _ := cmd.Flags().GetBool("no-cache"); !noCache {
		if cache, err := driver.OpenDiskCache("markerml"); err == nil {
			opts.Cache = cache
		}
	}

	result, err := driver.Compile(input, opts)
	if err != nil {
		return fmt.Errorf("compilation failed: %w", err)
	}

	if result.Bag.HasErrors() {
		result.Bag.Sort()
		diagfmt.Pretty(os.Stderr, result.Bag, result.FileSet, prettyOpts(cmd, os.Stderr))
		return fmt.Errorf("compilation failed with %d diagnostics", result.Bag.Len())
	}

	if err := os.WriteFile(output, []byte(result.HTML), 0o644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	if !quiet(cmd) {
		fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", output)
	}
	return nil
}

// convertPaths resolves input and output: from the argument and -o
// flag when given, otherwise from the project manifest.
func convertPaths(cmd *cobra.Command, args []string) (input, output string, err error) {
	output, _ = cmd.Flags().GetString("output")

	if len(args) == 1 {
		input = args[0]
		if output == "" {
			output = replaceExt(input, ".html")
		}
		return input, output, nil
	}

	manifestPath, err := project.Find(".")
	if err != nil {
		return "", "", err
	}
	manifest, err := project.Load(manifestPath)
	if err != nil {
		return "", "", err
	}
	input = manifest.EntryPath()
	if output == "" {
		output = manifest.OutputPath()
	}
	return input, output, nil
}

func replaceExt(path, ext string) string {
	for i := len(path) - 1; i >= 0; i-- {
		switch path[i] {
		case '.':
			return path[:i] + ext
		case '/', '\\':
			return path + ext
		}
	}
	return path + ext
}
