package project_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rchuk/markerml/internal/project"
)

func writeManifest(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, project.ManifestName)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := writeManifest(t, dir, `
[package]
name = "site"
version = "1.2.3"

[build]
entry = "src/index.mml"
output = "dist/index.html"

[serve]
host = "0.0.0.0"
port = 3000
`)
	m, err := project.Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if m.Package.Name != "site" || m.Package.Version != "1.2.3" {
		t.Errorf("package = %+v", m.Package)
	}
	if m.EntryPath() != filepath.Join(dir, "src/index.mml") {
		t.Errorf("entry = %q", m.EntryPath())
	}
	if m.OutputPath() != filepath.Join(dir, "dist/index.html") {
		t.Errorf("output = %q", m.OutputPath())
	}
	if m.Addr() != "0.0.0.0:3000" {
		t.Errorf("addr = %q", m.Addr())
	}
}

func TestLoadDefaults(t *testing.T) {
	dir := t.TempDir()
	path := writeManifest(t, dir, "")
	m, err := project.Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if m.Package.Name != filepath.Base(dir) {
		t.Errorf("name = %q, want directory basename %q", m.Package.Name, filepath.Base(dir))
	}
	if m.EntryPath() != filepath.Join(dir, "main.mml") {
		t.Errorf("entry = %q", m.EntryPath())
	}
	if m.OutputPath() != filepath.Join(dir, "index.html") {
		t.Errorf("output = %q", m.OutputPath())
	}
	if m.Addr() != "localhost:8080" {
		t.Errorf("addr = %q", m.Addr())
	}
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	dir := t.TempDir()
	path := writeManifest(t, dir, `
[package]
name = "site"
nmae = "typo"
`)
	if _, err := project.Load(path); err == nil {
		t.Fatal("unknown key accepted")
	}
}

func TestFindWalksUp(t *testing.T) {
	root := t.TempDir()
	writeManifest(t, root, "[package]\nname = \"site\"\n")
	nested := filepath.Join(root, "a", "b", "c")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}

	found, err := project.Find(nested)
	if err != nil {
		t.Fatal(err)
	}
	want := filepath.Join(root, project.ManifestName)
	if found != want {
		t.Errorf("found = %q, want %q", found, want)
	}
}

func TestFindMissing(t *testing.T) {
	if _, err := project.Find(t.TempDir()); err == nil {
		t.Fatal("no error for missing manifest")
	}
}
