package driver

import (
	"github.com/rchuk/markerml/internal/ast"
	"github.com/rchuk/markerml/internal/diag"
	"github.com/rchuk/markerml/internal/parser"
	"github.com/rchuk/markerml/internal/source"
	"github.com/rchuk/markerml/internal/validator"
)

// ParseResult carries the syntax tree of a single file plus every
// diagnostic found up to and including validation.
type ParseResult struct {
	FileSet *source.FileSet
	File    *source.File
	Module  *ast.Module
	Bag     *diag.Bag
}

// Parse loads a file, lexes and parses it, and runs the validator when
// the parse was clean. The returned module is best-effort when the bag
// holds errors.
func Parse(path string, maxDiagnostics int) (*ParseResult, error) {
	fs := source.NewFileSet()
	fileID, err := fs.Load(path)
	if err != nil {
		return nil, err
	}
	return parse(fs, fileID, maxDiagnostics), nil
}

// ParseSource parses in-memory content under a virtual file name.
func ParseSource(name string, content []byte, maxDiagnostics int) *ParseResult {
	fs := source.NewFileSet()
	return parse(fs, fs.AddVirtual(name, content), maxDiagnostics)
}

func parse(fs *source.FileSet, id source.FileID, maxDiagnostics int) *ParseResult {
	tr := tokenize(fs, id)
	bag := newBag(maxDiagnostics)
	module := parser.Parse(tr.Tokens, tr.EOF, bag)
	// The properties disambiguation replays tokens after a failed
	// speculative branch, which can report the same diagnostic twice.
	bag.Dedup()

	// Validation over a tree with parse errors produces noise, so it
	// only runs on a clean parse.
	if !bag.HasErrors() {
		if d := validator.Validate(module); d != nil {
			bag.Add(*d)
		}
	}

	return &ParseResult{
		FileSet: fs,
		File:    tr.File,
		Module:  module,
		Bag:     bag,
	}
}
