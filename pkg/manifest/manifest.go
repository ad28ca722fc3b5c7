// Package manifest parses mython.yml, the project file that names a
// program's entry point and the libraries it vendors from git. Its
// shape follows the teacher's pkg/driver manifest (able/interpreter10-go),
// trimmed to what a Mython project actually needs: no targets, no build
// dependency classes, just an entry script and a flat library list.
package manifest

import (
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/mod/module"
	"gopkg.in/yaml.v3"
)

// Library describes one git-backed dependency to vendor before running
// a program.
type Library struct {
	Name string `yaml:"name"`
	Git  string `yaml:"git"`
	Rev  string `yaml:"rev"`
	Path string `yaml:"path"`
}

// Manifest is the parsed contents of mython.yml.
type Manifest struct {
	Path      string    `yaml:"-"`
	Name      string    `yaml:"name"`
	Entry     string    `yaml:"entry"`
	Libraries []Library `yaml:"libraries"`
}

// ValidationError aggregates every problem found while validating a
// manifest, so a project author sees all of them in one pass instead
// of fixing errors one at a time.
type ValidationError struct {
	Issues []string
}

func (e *ValidationError) Error() string {
	msg := "manifest validation failed:"
	for _, issue := range e.Issues {
		msg += "\n- " + issue
	}
	return msg
}

// Load reads and validates mython.yml at path.
func Load(path string) (*Manifest, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("manifest: resolve %s: %w", path, err)
	}
	data, err := os.ReadFile(absPath)
	if err != nil {
		return nil, fmt.Errorf("manifest: read %s: %w", absPath, err)
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("manifest: parse %s: %w", absPath, err)
	}
	m.Path = absPath

	if err := m.validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

func (m *Manifest) validate() error {
	var issues []string
	if m.Name == "" {
		issues = append(issues, "name is required")
	}
	if m.Entry == "" {
		issues = append(issues, "entry is required")
	}
	seen := make(map[string]struct{}, len(m.Libraries))
	for i, lib := range m.Libraries {
		if lib.Name == "" {
			issues = append(issues, fmt.Sprintf("libraries[%d]: name is required", i))
			continue
		}
		if err := module.CheckImportPath(lib.Name); err != nil {
			issues = append(issues, fmt.Sprintf("libraries[%d] (%s): invalid library name: %v", i, lib.Name, err))
		}
		if lib.Git == "" {
			issues = append(issues, fmt.Sprintf("libraries[%s]: git is required", lib.Name))
		}
		if _, dup := seen[lib.Name]; dup {
			issues = append(issues, fmt.Sprintf("libraries[%s]: declared more than once", lib.Name))
		}
		seen[lib.Name] = struct{}{}
	}
	if len(issues) > 0 {
		return &ValidationError{Issues: issues}
	}
	return nil
}

// EntryPath resolves Entry relative to the manifest's own directory.
func (m *Manifest) EntryPath() string {
	if filepath.IsAbs(m.Entry) {
		return filepath.Clean(m.Entry)
	}
	return filepath.Join(filepath.Dir(m.Path), filepath.FromSlash(m.Entry))
}

