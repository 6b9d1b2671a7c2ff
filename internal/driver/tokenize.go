// Package driver orchestrates the compilation stages for the CLI and
// the live-reload server: loading source, lexing, parsing, validation,
// lowering, and HTML generation, with diagnostics collected in one
// bag per run.
package driver

import (
	"github.com/rchuk/markerml/internal/diag"
	"github.com/rchuk/markerml/internal/lexer"
	"github.com/rchuk/markerml/internal/source"
	"github.com/rchuk/markerml/internal/token"
)

// DefaultMaxDiagnostics caps the diagnostic bag when the caller does
// not say otherwise.
const DefaultMaxDiagnostics = 32

// TokenizeResult carries the token stream of a single file together
// with the file set needed to resolve spans.
type TokenizeResult struct {
	FileSet *source.FileSet
	File    *source.File
	Tokens  []token.Token
	EOF     source.Span
}

// Tokenize loads a file and scans it. Lexing never fails; malformed
// input surfaces as Invalid or unclosed tokens in the stream.
func Tokenize(path string) (*TokenizeResult, error) {
	fs := source.NewFileSet()
	fileID, err := fs.Load(path)
	if err != nil {
		return nil, err
	}
	return tokenize(fs, fileID), nil
}

// TokenizeSource scans in-memory content under a virtual file name.
func TokenizeSource(name string, content []byte) *TokenizeResult {
	fs := source.NewFileSet()
	return tokenize(fs, fs.AddVirtual(name, content))
}

func tokenize(fs *source.FileSet, id source.FileID) *TokenizeResult {
	file := fs.Get(id)
	tokens, eof := lexer.New(file).Lex()
	return &TokenizeResult{
		FileSet: fs,
		File:    file,
		Tokens:  tokens,
		EOF:     eof,
	}
}

func newBag(maxDiagnostics int) *diag.Bag {
	if maxDiagnostics <= 0 {
		maxDiagnostics = DefaultMaxDiagnostics
	}
	return diag.NewBag(maxDiagnostics)
}
