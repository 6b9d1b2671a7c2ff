package backend_test

import (
	"strings"
	"testing"

	"github.com/rchuk/markerml/internal/backend"
	"github.com/rchuk/markerml/internal/diag"
	"github.com/rchuk/markerml/internal/irgen"
	"github.com/rchuk/markerml/internal/lexer"
	"github.com/rchuk/markerml/internal/parser"
	"github.com/rchuk/markerml/internal/source"
)

func render(t *testing.T, input string) (string, *diag.Diagnostic) {
	t.Helper()
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("test.mml", []byte(input)))
	tokens, eof := lexer.New(file).Lex()
	bag := diag.NewBag(32)
	mod := parser.Parse(tokens, eof, bag)
	if bag.HasErrors() {
		t.Fatalf("parse errors in test input: %v", bag.Items())
	}
	irMod, err := irgen.Generate(mod)
	if err != nil {
		t.Fatalf("lowering failed: %s: %s", err.Code.ID(), err.Message)
	}
	return backend.Generate(irMod)
}

// body renders the input and strips the document wrapper.
func body(t *testing.T, input string) string {
	t.Helper()
	page, err := render(t, input)
	if err != nil {
		t.Fatalf("render failed: %s: %s", err.Code.ID(), err.Message)
	}
	start := strings.Index(page, "<main>")
	end := strings.Index(page, "</main>")
	if start < 0 || end < 0 {
		t.Fatalf("page lacks <main> wrapper: %s", page)
	}
	return page[start+len("<main>") : end]
}

func renderError(t *testing.T, input string, code diag.Code) *diag.Diagnostic {
	t.Helper()
	_, err := render(t, input)
	if err == nil {
		t.Fatalf("render succeeded, want %s", code.ID())
	}
	if err.Code != code {
		t.Fatalf("code = %s, want %s (message: %s)", err.Code.ID(), code.ID(), err.Message)
	}
	return err
}

func TestGenerate_DocumentWrapper(t *testing.T) {
	page, err := render(t, "@(hi)")
	if err != nil {
		t.Fatalf("render failed: %+v", err)
	}
	if !strings.HasPrefix(page, "<!DOCTYPE html>") {
		t.Errorf("page does not start with doctype: %s", page)
	}
	if !strings.Contains(page, `<meta charset="utf-8">`) {
		t.Error("missing charset meta")
	}
	if !strings.HasSuffix(page, "</main></body></html>") {
		t.Errorf("page does not end with wrapper: %s", page)
	}
}

func TestGenerate_TextComponents(t *testing.T) {
	cases := []struct {
		input string
		want  string
	}{
		{"@(hi)", "<span>hi</span>"},
		{"paragraph(some text)", "<p>some text</p>"},
		{"header(Title)", "<h1>Title</h1>"},
		{"header[3](Title)", "<h3>Title</h3>"},
		{"header[level=2](Title)", "<h2>Title</h2>"},
	}
	for _, tc := range cases {
		if got := body(t, tc.input); got != tc.want {
			t.Errorf("%s: got %s, want %s", tc.input, got, tc.want)
		}
	}
}

func TestGenerate_Escaping(t *testing.T) {
	got := body(t, `@(a <b> & "c")`)
	want := "<span>a &lt;b&gt; &amp; &#34;c&#34;</span>"
	if got != want {
		t.Errorf("got %s, want %s", got, want)
	}
}

func TestGenerate_Box(t *testing.T) {
	got := body(t, "box { @(a) @(b) }")
	want := `<div style="display: flex; flex-direction: column"><span>a</span><span>b</span></div>`
	if got != want {
		t.Errorf("got %s, want %s", got, want)
	}
}

func TestGenerate_BoxHorizontalAlignment(t *testing.T) {
	got := body(t, `box[horizontal, x_align="center", y_align="end"]`)
	want := `<div style="display: flex; flex-direction: row; justify-content: center; align-items: end"></div>`
	if got != want {
		t.Errorf("got %s, want %s", got, want)
	}
}

func TestGenerate_BoxVerticalAlignment(t *testing.T) {
	// In a column the y axis is the main axis.
	got := body(t, `box[vertical, x_align="start", y_align="center"]`)
	want := `<div style="display: flex; flex-direction: column; justify-content: center; align-items: start"></div>`
	if got != want {
		t.Errorf("got %s, want %s", got, want)
	}
}

func TestGenerate_Link(t *testing.T) {
	got := body(t, `#["https://example.com"](there)`)
	want := `<a href="https://example.com">there</a>`
	if got != want {
		t.Errorf("got %s, want %s", got, want)
	}

	got = body(t, `#[url="https://example.com"](named)`)
	want = `<a href="https://example.com">named</a>`
	if got != want {
		t.Errorf("got %s, want %s", got, want)
	}
}

func TestGenerate_Image(t *testing.T) {
	got := body(t, `image["cat.png"]`)
	want := `<img src="cat.png">`
	if got != want {
		t.Errorf("got %s, want %s", got, want)
	}
}

func TestGenerate_Lists(t *testing.T) {
	got := body(t, "list { @(a) @(b) }")
	want := "<ul><li><span>a</span></li><li><span>b</span></li></ul>"
	if got != want {
		t.Errorf("got %s, want %s", got, want)
	}

	got = body(t, "list[ordered] { @(a) }")
	want = "<ol><li><span>a</span></li></ol>"
	if got != want {
		t.Errorf("got %s, want %s", got, want)
	}
}

func TestGenerate_VariablesFlattenEmpty(t *testing.T) {
	got := body(t, "@(hi ${name}!)")
	want := "<span>hi !</span>"
	if got != want {
		t.Errorf("got %s, want %s", got, want)
	}
}

func TestGenerate_MissingText(t *testing.T) {
	renderError(t, "@", diag.GenMissingText)
	renderError(t, "paragraph", diag.GenMissingText)
}

func TestGenerate_MissingLinkURL(t *testing.T) {
	renderError(t, "#(text)", diag.GenMissingProperty)
}

func TestGenerate_TypeMismatch(t *testing.T) {
	renderError(t, "#[42](text)", diag.GenTypeMismatch)
	renderError(t, `header["high"](Title)`, diag.GenTypeMismatch)
}

func TestGenerate_HeaderLevelRange(t *testing.T) {
	renderError(t, "header[7](Title)", diag.GenInvalidPropertyValue)
	renderError(t, "header[0](Title)", diag.GenInvalidPropertyValue)
}

func TestGenerate_InvalidAlignment(t *testing.T) {
	renderError(t, `box[x_align="middle"]`, diag.GenInvalidPropertyValue)
}

func TestGenerate_ConflictingFlags(t *testing.T) {
	err := renderError(t, "box[vertical, horizontal]", diag.GenConflictingFlags)
	if len(err.Notes) != 2 {
		t.Errorf("got %d notes, want both flag sites", len(err.Notes))
	}
	renderError(t, "list[unordered, ordered]", diag.GenConflictingFlags)
}

func TestGenerate_UnknownComponent(t *testing.T) {
	err := renderError(t, "widget(hi)", diag.GenUnknownComponent)
	if len(err.Notes) != 0 {
		t.Errorf("undefined component should carry no notes, got %+v", err.Notes)
	}
}

func TestGenerate_DefinedButUnsupportedComponent(t *testing.T) {
	err := renderError(t, "component card { box }\ncard", diag.GenUnknownComponent)
	if len(err.Notes) != 1 {
		t.Fatalf("got %d notes, want the definition site", len(err.Notes))
	}
	if !strings.Contains(err.Message, "not supported") {
		t.Errorf("message does not mention missing expansion: %s", err.Message)
	}
}

func TestGenerate_ErrorInNestedChildStopsRender(t *testing.T) {
	page, err := render(t, "box { box { widget } }")
	if err == nil {
		t.Fatal("render succeeded, want error")
	}
	if page != "" {
		t.Errorf("partial page returned alongside error: %s", page)
	}
}
