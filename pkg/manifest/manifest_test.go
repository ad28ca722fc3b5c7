package manifest

import (
	"os"
	"path/filepath"
	"testing"
)

func writeManifest(t *testing.T, contents string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "mython.yml")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func TestLoadValidManifest(t *testing.T) {
	path := writeManifest(t, `
name: greeter
entry: main.mml
libraries:
  - name: example.com/collections
    git: https://example.com/collections.git
    rev: v1.0.0
    path: src/collections.mml
`)
	m, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if m.Name != "greeter" || m.Entry != "main.mml" {
		t.Fatalf("unexpected manifest: %#v", m)
	}
	if len(m.Libraries) != 1 || m.Libraries[0].Name != "example.com/collections" {
		t.Fatalf("unexpected libraries: %#v", m.Libraries)
	}
	wantEntry := filepath.Join(filepath.Dir(path), "main.mml")
	if got := m.EntryPath(); got != wantEntry {
		t.Errorf("EntryPath() = %q, want %q", got, wantEntry)
	}
}

func TestLoadMissingRequiredFields(t *testing.T) {
	path := writeManifest(t, "libraries: []\n")
	_, err := Load(path)
	if err == nil {
		t.Fatal("expected a validation error for a manifest missing name/entry")
	}
	verr, ok := err.(*ValidationError)
	if !ok {
		t.Fatalf("expected a *ValidationError, got %T: %v", err, err)
	}
	if len(verr.Issues) < 2 {
		t.Fatalf("expected issues for both missing name and entry, got %v", verr.Issues)
	}
}

func TestLoadRejectsMalformedLibraryName(t *testing.T) {
	path := writeManifest(t, `
name: greeter
entry: main.mml
libraries:
  - name: "not a module path!"
    git: https://example.com/x.git
`)
	_, err := Load(path)
	if err == nil {
		t.Fatal("expected an error for an invalid library name")
	}
}

func TestLoadRejectsDuplicateLibraryNames(t *testing.T) {
	path := writeManifest(t, `
name: greeter
entry: main.mml
libraries:
  - name: example.com/a
    git: https://example.com/a.git
  - name: example.com/a
    git: https://example.com/a.git
`)
	_, err := Load(path)
	if err == nil {
		t.Fatal("expected an error for a library declared twice")
	}
}
