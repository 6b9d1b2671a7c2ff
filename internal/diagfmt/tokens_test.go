package diagfmt_test

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/rchuk/markerml/internal/diagfmt"
	"github.com/rchuk/markerml/internal/driver"
)

func TestFormatTokensPretty(t *testing.T) {
	tr := driver.TokenizeSource("page.mml", []byte(`box("hi`))
	var out strings.Builder
	if err := diagfmt.FormatTokensPretty(&out, tr.Tokens, tr.FileSet); err != nil {
		t.Fatal(err)
	}
	got := out.String()
	for _, want := range []string{
		"identifier",
		`"box"`,
		"text literal",
		`content="\"hi"`,
		"(unclosed)",
		"at 1:1-1:4",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("output lacks %q:\n%s", want, got)
		}
	}
}

func TestFormatTokensJSON(t *testing.T) {
	tr := driver.TokenizeSource("page.mml", []byte("box(hi)"))
	var out strings.Builder
	if err := diagfmt.FormatTokensJSON(&out, tr.Tokens); err != nil {
		t.Fatal(err)
	}

	var decoded []diagfmt.TokenOutput
	if err := json.Unmarshal([]byte(out.String()), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v\n%s", err, out.String())
	}
	if len(decoded) != 2 {
		t.Fatalf("got %d tokens, want 2", len(decoded))
	}
	if decoded[0].Kind != "identifier" || decoded[0].Text != "box" {
		t.Errorf("token 0 = %+v", decoded[0])
	}
	if decoded[1].Kind != "text literal" || decoded[1].Content != "hi" {
		t.Errorf("token 1 = %+v", decoded[1])
	}
	if decoded[1].Unclosed {
		t.Error("closed text marked unclosed")
	}
}

func TestFormatModulePretty(t *testing.T) {
	res := driver.ParseSource("page.mml", []byte(
		"component card[default title: string, text body, width: int = 1] { box }\n"+
			"box[bold, width=2](hi ${name})\n"), 0)
	if res.Bag.HasErrors() {
		t.Fatalf("parse errors: %v", res.Bag.Items())
	}

	var out strings.Builder
	if err := diagfmt.FormatModulePretty(&out, res.Module, res.FileSet); err != nil {
		t.Fatal(err)
	}
	got := out.String()
	for _, want := range []string{
		"module ",
		"definition 'card'",
		"default 'title': string",
		"text 'body'",
		"'width': int = int(1)",
		"component 'box'",
		"flag 'bold'",
		"'width' = int(2)",
		"text \"hi \" ${name}",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("output lacks %q:\n%s", want, got)
		}
	}
}
