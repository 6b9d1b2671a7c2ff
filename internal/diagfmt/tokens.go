package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/rchuk/markerml/internal/source"
	"github.com/rchuk/markerml/internal/token"
)

// TokenOutput is one token in JSON dump output.
type TokenOutput struct {
	Kind     string      `json:"kind"`
	Text     string      `json:"text,omitempty"`
	Content  string      `json:"content,omitempty"`
	Span     source.Span `json:"span"`
	Unclosed bool        `json:"unclosed,omitempty"`
}

// FormatTokensPretty dumps tokens in a human-readable format.
func FormatTokensPretty(w io.Writer, tokens []token.Token, fs *source.FileSet) error {
	for i, tok := range tokens {
		startPos, endPos := fs.Resolve(tok.Span)

		fmt.Fprintf(w, "%3d: %-16s", i+1, tok.Kind.String())
		if tok.Text != "" {
			fmt.Fprintf(w, " %q", tok.Text)
		}
		if isSegment(tok.Kind) {
			fmt.Fprintf(w, " content=%q", tok.Content)
		}
		fmt.Fprintf(w, " at %d:%d-%d:%d",
			startPos.Line, startPos.Col,
			endPos.Line, endPos.Col)
		if isSegment(tok.Kind) && !tok.Closed {
			fmt.Fprint(w, " (unclosed)")
		}
		fmt.Fprintln(w)
	}
	return nil
}

// FormatTokensJSON dumps tokens as JSON.
func FormatTokensJSON(w io.Writer, tokens []token.Token) error {
	output := make([]TokenOutput, 0, len(tokens))
	for _, tok := range tokens {
		out := TokenOutput{
			Kind: tok.Kind.String(),
			Text: tok.Text,
			Span: tok.Span,
		}
		if isSegment(tok.Kind) {
			out.Content = tok.Content
			out.Unclosed = !tok.Closed
		}
		output = append(output, out)
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}

func isSegment(k token.Kind) bool {
	return k == token.StringSeg || k == token.TextSeg
}
