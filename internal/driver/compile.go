package driver

import (
	"github.com/rchuk/markerml/internal/ast"
	"github.com/rchuk/markerml/internal/backend"
	"github.com/rchuk/markerml/internal/diag"
	"github.com/rchuk/markerml/internal/ir"
	"github.com/rchuk/markerml/internal/irgen"
	"github.com/rchuk/markerml/internal/project"
	"github.com/rchuk/markerml/internal/source"
)

// CompileOptions configures a full pipeline run.
type CompileOptions struct {
	MaxDiagnostics int
	// Cache, when set, short-circuits unchanged sources to their
	// previously rendered page.
	Cache *DiskCache
}

// CompileResult is the outcome of a full pipeline run. HTML is empty
// when the bag holds errors; Module and IR are populated as far as the
// pipeline got.
type CompileResult struct {
	FileSet *source.FileSet
	File    *source.File
	Module  *ast.Module
	IR      *ir.Module
	HTML    string
	Bag     *diag.Bag
}

// Compile runs the whole pipeline over a file on disk.
func Compile(path string, opts CompileOptions) (*CompileResult, error) {
	fs := source.NewFileSet()
	fileID, err := fs.Load(path)
	if err != nil {
		return nil, err
	}
	return compile(fs, fileID, opts), nil
}

// CompileSource runs the whole pipeline over in-memory content.
func CompileSource(name string, content []byte, opts CompileOptions) *CompileResult {
	fs := source.NewFileSet()
	return compile(fs, fs.AddVirtual(name, content), opts)
}

func compile(fs *source.FileSet, id source.FileID, opts CompileOptions) *CompileResult {
	file := fs.Get(id)

	if opts.Cache != nil {
		var payload RenderPayload
		if ok, err := opts.Cache.Get(project.Digest(file.Hash), &payload); err == nil && ok {
			return &CompileResult{
				FileSet: fs,
				File:    file,
				HTML:    payload.HTML,
				Bag:     newBag(opts.MaxDiagnostics),
			}
		}
	}

	pr := parse(fs, id, opts.MaxDiagnostics)
	res := &CompileResult{
		FileSet: fs,
		File:    file,
		Module:  pr.Module,
		Bag:     pr.Bag,
	}
	if pr.Bag.HasErrors() {
		return res
	}

	mod, derr := irgen.Generate(pr.Module)
	if derr != nil {
		res.Bag.Add(*derr)
		return res
	}
	res.IR = mod

	html, derr := backend.Generate(mod)
	if derr != nil {
		res.Bag.Add(*derr)
		return res
	}
	res.HTML = html

	if opts.Cache != nil {
		// Best effort: a failed cache write never fails the build.
		_ = opts.Cache.Put(project.Digest(file.Hash), &RenderPayload{
			Schema: renderCacheSchemaVersion,
			HTML:   html,
		})
	}
	return res
}
