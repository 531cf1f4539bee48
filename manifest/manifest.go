// Package manifest handles bridgen.toml project configuration.
package manifest

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Manifest represents a bridgen.toml project configuration.
type Manifest struct {
	Project Project `toml:"project"`
	Bind    Bind    `toml:"bind"`

	// Dir is the directory containing the bridgen.toml file (set at load time).
	Dir string `toml:"-"`
}

// Project contains project metadata.
type Project struct {
	Name    string `toml:"name"`
	Version string `toml:"version"`
}

// Bind configures one binding generation run.
type Bind struct {
	// Package is the pattern of the Go package to wrap, resolved
	// relative to the manifest directory.
	Package string `toml:"package"`
	// Output names the directory generated files are written to.
	Output string `toml:"output"`
	// Target is the emission target: "cabi" or "host".
	Target string `toml:"target"`
	// Namespace prefixes host class names.
	Namespace string `toml:"namespace"`
	// HostImport is the import path of the host protocol package used
	// by the host target.
	HostImport string `toml:"host-import"`
	// Include, if non-empty, restricts generation to the named
	// declarations.
	Include []string `toml:"include"`
}

// Load parses a bridgen.toml file from the given directory.
func Load(dir string) (*Manifest, error) {
	path := filepath.Join(dir, "bridgen.toml")
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read %s: %w", path, err)
	}

	var m Manifest
	if err := toml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse error in %s: %w", path, err)
	}

	m.Dir, err = filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("cannot resolve path %s: %w", dir, err)
	}

	// Defaults
	if m.Bind.Output == "" {
		m.Bind.Output = "bindings"
	}
	if m.Bind.Target == "" {
		m.Bind.Target = "cabi"
	}
	if m.Bind.Namespace == "" {
		m.Bind.Namespace = "Go"
	}

	return &m, nil
}

// FindAndLoad walks up from startDir to find a bridgen.toml file,
// then loads and returns the manifest. Returns nil if no manifest is found.
func FindAndLoad(startDir string) (*Manifest, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return nil, err
	}

	for {
		path := filepath.Join(dir, "bridgen.toml")
		if _, err := os.Stat(path); err == nil {
			return Load(dir)
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached root
			return nil, nil
		}
		dir = parent
	}
}

// OutputDir returns the absolute path of the output directory.
func (m *Manifest) OutputDir() string {
	return filepath.Join(m.Dir, m.Bind.Output)
}

// IncludeSet returns the include filter as a set, or nil when the
// manifest includes everything.
func (m *Manifest) IncludeSet() map[string]bool {
	if len(m.Bind.Include) == 0 {
		return nil
	}
	set := make(map[string]bool, len(m.Bind.Include))
	for _, name := range m.Bind.Include {
		set[name] = true
	}
	return set
}
