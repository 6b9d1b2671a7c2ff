package diagfmt_test

import (
	"strings"
	"testing"

	"github.com/rchuk/markerml/internal/diag"
	"github.com/rchuk/markerml/internal/diagfmt"
	"github.com/rchuk/markerml/internal/source"
)

func testInput(t *testing.T, content string) (*source.FileSet, source.FileID) {
	t.Helper()
	fs := source.NewFileSet()
	return fs, fs.AddVirtual("page.mml", []byte(content))
}

func TestPretty(t *testing.T) {
	fs, id := testInput(t, "box { widget }\n")
	bag := diag.NewBag(8)
	bag.Add(diag.NewError(diag.GenUnknownComponent,
		source.Span{File: id, Start: 6, End: 12}, "unknown component 'widget'"))

	var out strings.Builder
	diagfmt.Pretty(&out, bag, fs, diagfmt.PrettyOpts{})

	want := "page.mml:1:7: ERROR GEN4001: unknown component 'widget'\n" +
		"    box { widget }\n" +
		"          ^~~~~~\n"
	if out.String() != want {
		t.Errorf("got:\n%s\nwant:\n%s", out.String(), want)
	}
}

func TestPrettyNotes(t *testing.T) {
	fs, id := testInput(t, "box[a=1, a=2]\n")
	bag := diag.NewBag(8)
	bag.Add(diag.NewError(diag.SemaDuplicatedProperty,
		source.Span{File: id, Start: 9, End: 10}, "property 'a' is defined more than once").
		WithNote(source.Span{File: id, Start: 4, End: 5}, "first defined here"))

	var out strings.Builder
	diagfmt.Pretty(&out, bag, fs, diagfmt.PrettyOpts{ShowNotes: true})
	if !strings.Contains(out.String(), "note: first defined here") {
		t.Errorf("notes missing:\n%s", out.String())
	}

	out.Reset()
	diagfmt.Pretty(&out, bag, fs, diagfmt.PrettyOpts{})
	if strings.Contains(out.String(), "note:") {
		t.Errorf("notes shown despite ShowNotes=false:\n%s", out.String())
	}
}

func TestPrettyMultiLineSpan(t *testing.T) {
	fs, id := testInput(t, "box {\n}\n")
	bag := diag.NewBag(8)
	// Spans crossing lines underline to the end of the first line.
	bag.Add(diag.NewError(diag.SynUnexpectedToken,
		source.Span{File: id, Start: 0, End: 7}, "whole component"))

	var out strings.Builder
	diagfmt.Pretty(&out, bag, fs, diagfmt.PrettyOpts{})
	lines := strings.Split(out.String(), "\n")
	if len(lines) < 3 {
		t.Fatalf("output too short:\n%s", out.String())
	}
	if lines[2] != "    ^~~~~" {
		t.Errorf("marker = %q, want %q", lines[2], "    ^~~~~")
	}
}

func TestPrettyEmptySpanAtEOF(t *testing.T) {
	content := "box {"
	fs, id := testInput(t, content)
	bag := diag.NewBag(8)
	end := uint32(len(content))
	bag.Add(diag.NewError(diag.SynExpectRBrace,
		source.Span{File: id, Start: end, End: end}, "expected '}' before end of input"))

	var out strings.Builder
	diagfmt.Pretty(&out, bag, fs, diagfmt.PrettyOpts{})
	if !strings.Contains(out.String(), "page.mml:1:6:") {
		t.Errorf("location missing:\n%s", out.String())
	}
	// A zero-width span still gets a single caret.
	if !strings.Contains(out.String(), "^") {
		t.Errorf("caret missing:\n%s", out.String())
	}
}

func TestPrettyTabExpansion(t *testing.T) {
	fs, id := testInput(t, "\twidget\n")
	bag := diag.NewBag(8)
	bag.Add(diag.NewError(diag.GenUnknownComponent,
		source.Span{File: id, Start: 1, End: 7}, "unknown component 'widget'"))

	var out strings.Builder
	diagfmt.Pretty(&out, bag, fs, diagfmt.PrettyOpts{})
	lines := strings.Split(out.String(), "\n")
	if lines[1] != "        widget" {
		t.Errorf("source line = %q, want tab expanded", lines[1])
	}
	if lines[2] != "        ^~~~~~" {
		t.Errorf("marker = %q, want aligned under expanded tab", lines[2])
	}
}

func TestJSONOutput(t *testing.T) {
	fs, id := testInput(t, "box { widget }\n")
	bag := diag.NewBag(8)
	bag.Add(diag.NewError(diag.GenUnknownComponent,
		source.Span{File: id, Start: 6, End: 12}, "unknown component 'widget'").
		WithNote(source.Span{File: id, Start: 0, End: 3}, "inside this box"))

	out := diagfmt.BuildDiagnosticsOutput(bag, fs, diagfmt.JSONOpts{
		IncludePositions: true,
		IncludeNotes:     true,
	})
	if out.Count != 1 || len(out.Diagnostics) != 1 {
		t.Fatalf("count = %d, diagnostics = %d", out.Count, len(out.Diagnostics))
	}
	d := out.Diagnostics[0]
	if d.Code != "GEN4001" || d.Severity != "ERROR" {
		t.Errorf("code/severity = %s/%s", d.Code, d.Severity)
	}
	loc := d.Location
	if loc.File != "page.mml" || loc.StartByte != 6 || loc.EndByte != 12 {
		t.Errorf("location = %+v", loc)
	}
	if loc.StartLine != 1 || loc.StartCol != 7 || loc.EndCol != 13 {
		t.Errorf("positions = %+v", loc)
	}
	if len(d.Notes) != 1 || d.Notes[0].Message != "inside this box" {
		t.Errorf("notes = %+v", d.Notes)
	}
}

func TestJSONMaxTruncates(t *testing.T) {
	fs, id := testInput(t, "abc\n")
	bag := diag.NewBag(8)
	for i := uint32(0); i < 3; i++ {
		bag.Add(diag.NewError(diag.SynUnexpectedToken,
			source.Span{File: id, Start: i, End: i + 1}, "x"))
	}
	out := diagfmt.BuildDiagnosticsOutput(bag, fs, diagfmt.JSONOpts{Max: 2})
	if out.Count != 2 || len(out.Diagnostics) != 2 {
		t.Errorf("count = %d, diagnostics = %d; want 2", out.Count, len(out.Diagnostics))
	}
	if bag.Len() != 3 {
		t.Errorf("bag mutated by output truncation: len = %d", bag.Len())
	}
}

func TestJSONOmitsPositionsWhenDisabled(t *testing.T) {
	fs, id := testInput(t, "abc\n")
	bag := diag.NewBag(8)
	bag.Add(diag.NewError(diag.SynUnexpectedToken,
		source.Span{File: id, Start: 0, End: 1}, "x"))
	out := diagfmt.BuildDiagnosticsOutput(bag, fs, diagfmt.JSONOpts{})
	loc := out.Diagnostics[0].Location
	if loc.StartLine != 0 || loc.StartCol != 0 {
		t.Errorf("positions populated despite IncludePositions=false: %+v", loc)
	}
}
