// Package project handles markerml.toml project manifests: locating
// one by walking up from a starting directory, decoding it, and
// filling in defaults.
package project

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// ManifestName is the file name looked up during discovery.
const ManifestName = "markerml.toml"

// Digest identifies source content by its SHA-256 hash.
type Digest [32]byte

// Manifest is the decoded markerml.toml.
type Manifest struct {
	Package PackageSection `toml:"package"`
	Build   BuildSection   `toml:"build"`
	Serve   ServeSection   `toml:"serve"`

	// Dir is the directory the manifest was loaded from; not part of
	// the file itself.
	Dir string `toml:"-"`
}

// PackageSection names the project.
type PackageSection struct {
	Name    string `toml:"name"`
	Version string `toml:"version"`
}

// BuildSection configures the convert pipeline.
type BuildSection struct {
	Entry  string `toml:"entry"`
	Output string `toml:"output"`
}

// ServeSection configures the live-reload server.
type ServeSection struct {
	Host string `toml:"host"`
	Port int    `toml:"port"`
}

// Load decodes the manifest at path and applies defaults.
func Load(path string) (*Manifest, error) {
	var m Manifest
	meta, err := toml.DecodeFile(path, &m)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("%s: unknown key %q", path, undecoded[0].String())
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	m.Dir = filepath.Dir(abs)
	m.applyDefaults()
	return &m, nil
}

// Find walks up from start looking for a manifest file. It returns the
// manifest path, or an error when the filesystem root is reached
// without finding one.
func Find(start string) (string, error) {
	dir, err := filepath.Abs(start)
	if err != nil {
		return "", err
	}
	for {
		candidate := filepath.Join(dir, ManifestName)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("no %s found in %s or any parent directory", ManifestName, start)
		}
		dir = parent
	}
}

// EntryPath returns the build entry resolved against the manifest
// directory.
func (m *Manifest) EntryPath() string {
	return m.resolve(m.Build.Entry)
}

// OutputPath returns the build output resolved against the manifest
// directory.
func (m *Manifest) OutputPath() string {
	return m.resolve(m.Build.Output)
}

// Addr returns the host:port the serve command should listen on.
func (m *Manifest) Addr() string {
	return fmt.Sprintf("%s:%d", m.Serve.Host, m.Serve.Port)
}

func (m *Manifest) resolve(path string) string {
	if filepath.IsAbs(path) || m.Dir == "" {
		return path
	}
	return filepath.Join(m.Dir, path)
}

func (m *Manifest) applyDefaults() {
	if m.Package.Name == "" {
		m.Package.Name = filepath.Base(m.Dir)
	}
	if m.Build.Entry == "" {
		m.Build.Entry = "main.mml"
	}
	if m.Build.Output == "" {
		m.Build.Output = "index.html"
	}
	if m.Serve.Host == "" {
		m.Serve.Host = "localhost"
	}
	if m.Serve.Port == 0 {
		m.Serve.Port = 8080
	}
}
