package diagfmt

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"github.com/rchuk/markerml/internal/diag"
	"github.com/rchuk/markerml/internal/source"
)

const tabStop = 4

// Pretty renders diagnostics in a human-readable form, one block per
// diagnostic:
//
//	<path>:<line>:<col>: <severity> <CODE>: <message>
//	    <source line>
//	    ^~~~~
//
// followed by the notes with the same layout. It walks bag.Items() in
// order; callers are expected to Sort() the bag first.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	for _, d := range bag.Items() {
		printDiagnostic(w, d, fs, opts)
	}
}

func printDiagnostic(w io.Writer, d diag.Diagnostic, fs *source.FileSet, opts PrettyOpts) {
	f := fs.Get(d.Primary.File)
	start, _ := fs.Resolve(d.Primary)

	sev := d.Severity.String()
	code := d.Code.ID()
	if opts.Color {
		c := severityColor(d.Severity)
		sev = c.Sprint(sev)
		code = c.Sprint(code)
	}
	fmt.Fprintf(w, "%s:%d:%d: %s %s: %s\n",
		displayPath(f.Path, opts.PathMode), start.Line, start.Col, sev, code, d.Message)
	underlineSpan(w, fs, d.Primary, d.Severity, opts)

	if !opts.ShowNotes {
		return
	}
	for _, note := range d.Notes {
		nf := fs.Get(note.Span.File)
		nstart, _ := fs.Resolve(note.Span)
		label := "note"
		if opts.Color {
			label = color.New(color.FgCyan).Sprint(label)
		}
		fmt.Fprintf(w, "%s:%d:%d: %s: %s\n",
			displayPath(nf.Path, opts.PathMode), nstart.Line, nstart.Col, label, note.Msg)
		underlineSpan(w, fs, note.Span, diag.SevInfo, opts)
	}
}

// underlineSpan prints the source line the span starts on and a
// ^~~~ marker below it. Tabs expand to a fixed stop so the marker
// stays aligned; wide runes are measured, not counted.
func underlineSpan(w io.Writer, fs *source.FileSet, sp source.Span, sev diag.Severity, opts PrettyOpts) {
	f := fs.Get(sp.File)
	start, end := fs.Resolve(sp)
	line := f.GetLine(start.Line)
	if line == "" && sp.Empty() {
		return
	}

	prefixEnd := int(start.Col) - 1
	if prefixEnd > len(line) {
		prefixEnd = len(line)
	}
	length := len(line) - prefixEnd
	if end.Line == start.Line {
		length = int(end.Col) - int(start.Col)
	}
	if prefixEnd+length > len(line) {
		length = len(line) - prefixEnd
	}

	pad := runewidth.StringWidth(expandTabs(line[:prefixEnd]))
	width := runewidth.StringWidth(line[prefixEnd : prefixEnd+length])
	if width < 1 {
		width = 1
	}
	marker := "^" + strings.Repeat("~", width-1)
	if opts.Color {
		marker = severityColor(sev).Sprint(marker)
	}
	fmt.Fprintf(w, "    %s\n", expandTabs(line))
	fmt.Fprintf(w, "    %s%s\n", strings.Repeat(" ", pad), marker)
}

func expandTabs(s string) string {
	if !strings.Contains(s, "\t") {
		return s
	}
	return strings.ReplaceAll(s, "\t", strings.Repeat(" ", tabStop))
}

func severityColor(sev diag.Severity) *color.Color {
	switch sev {
	case diag.SevError:
		return color.New(color.FgRed, color.Bold)
	case diag.SevWarning:
		return color.New(color.FgYellow, color.Bold)
	default:
		return color.New(color.FgCyan)
	}
}

func displayPath(path string, mode PathMode) string {
	switch mode {
	case PathModeAbsolute:
		if abs, err := filepath.Abs(path); err == nil {
			return abs
		}
	case PathModeRelative:
		if wd, err := os.Getwd(); err == nil {
			if rel, err := filepath.Rel(wd, path); err == nil {
				return rel
			}
		}
	case PathModeBasename:
		return filepath.Base(path)
	}
	return path
}
