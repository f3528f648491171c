//go:build unit
// +build unit

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/lerenn/scout/pkg/manifest"
)

const testYAML = `
codebases:
  - name: backend
    path: backend
  - name: frontend
    path: frontend
  - name: shared
    url: https://github.com/example/shared.git
    ref: main
tracked:
  - name: firebase
    prefix: true
  - name: typescript
`

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	file := dir + "/scout.yaml"
	if err := os.WriteFile(file, []byte(testYAML), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg, err := Load(file)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if len(cfg.Codebases) != 3 {
		t.Errorf("expected 3 codebases, got %d", len(cfg.Codebases))
	}
	if cfg.Codebases[0].Name != "backend" || cfg.Codebases[2].Name != "shared" {
		t.Errorf("unexpected codebase names: %+v", cfg.Codebases)
	}
	if !cfg.Codebases[2].Remote() {
		t.Errorf("expected shared to be remote")
	}
	if len(cfg.Tracked) != 2 {
		t.Fatalf("expected 2 tracked packages, got %d", len(cfg.Tracked))
	}
	if cfg.Tracked[0].Name != "firebase" || !cfg.Tracked[0].Prefix {
		t.Errorf("unexpected tracked package: %+v", cfg.Tracked[0])
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(t.TempDir() + "/missing.yaml"); err == nil {
		t.Fatal("expected error for missing config file")
	}
}

func TestDiscover(t *testing.T) {
	root := t.TempDir()
	mustWrite(t, filepath.Join(root, "backend", "go.mod"), "module example.com/backend\n")
	mustWrite(t, filepath.Join(root, "frontend", "package.json"), "{}")
	mustWrite(t, filepath.Join(root, "docs", "README.md"), "# docs")

	codebases, err := Discover(root, manifest.NewLocator())
	if err != nil {
		t.Fatalf("Discover failed: %v", err)
	}
	if len(codebases) != 2 {
		t.Fatalf("expected 2 codebases, got %d: %+v", len(codebases), codebases)
	}
	if codebases[0].Name != "backend" || codebases[1].Name != "frontend" {
		t.Errorf("unexpected discovery order: %+v", codebases)
	}
}

func TestDiscover_UnreadableRoot(t *testing.T) {
	if _, err := Discover(filepath.Join(t.TempDir(), "nope"), manifest.NewLocator()); err == nil {
		t.Fatal("expected error for unreadable root")
	}
}

func mustWrite(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}
