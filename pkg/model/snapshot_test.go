package model

import (
	"os"
	"path/filepath"
	"testing"
)

const sampleSnapshot = `
projects:
  - name: app
    path: ":"
    dir: /repo/app
    tasks:
      - name: build
        path: ":build"
        description: Assembles the project
        group: build
        public: true
    selectors:
      - name: test
        description: Runs all tests
        group: verification
        public: true
        resolves: [":lib:test", ":test", ":lib:test"]
    children:
      - name: lib
        path: ":lib"
        dir: /repo/app/lib
        tasks:
          - name: test
            path: ":lib:test"
            group: verification
`

func TestParseSnapshot(t *testing.T) {
	roots, err := ParseSnapshot([]byte(sampleSnapshot))
	if err != nil {
		t.Fatalf("Failed to parse snapshot: %v", err)
	}

	if len(roots) != 1 {
		t.Fatalf("Expected 1 root project, got %d", len(roots))
	}

	app := roots[0]
	if app.Name != "app" || app.Path != ":" {
		t.Errorf("Unexpected root project: %+v", app)
	}
	if app.RootDir != "/repo/app" {
		t.Errorf("Expected root dir /repo/app, got %s", app.RootDir)
	}
	if app.Parent != nil {
		t.Error("Expected root project to have no parent")
	}

	if len(app.Children) != 1 {
		t.Fatalf("Expected 1 child, got %d", len(app.Children))
	}
	lib := app.Children[0]
	if lib.Parent != app {
		t.Error("Expected child parent link to point at root")
	}
	if lib.RootDir != "/repo/app" {
		t.Errorf("Expected child to inherit build root, got %s", lib.RootDir)
	}

	if len(app.Selectors) != 1 {
		t.Fatalf("Expected 1 selector, got %d", len(app.Selectors))
	}
	sel := app.Selectors[0]
	if sel.ProjectPath != ":" {
		t.Errorf("Expected selector project path ':', got %s", sel.ProjectPath)
	}
	paths := sel.TaskPaths()
	if len(paths) != 2 || paths[0] != ":lib:test" || paths[1] != ":test" {
		t.Errorf("Expected deduplicated sorted selector paths, got %v", paths)
	}
}

func TestParseSnapshotRejectsMissingFields(t *testing.T) {
	if _, err := ParseSnapshot([]byte("projects:\n  - path: \":\"\n")); err == nil {
		t.Error("Expected error for project without name")
	}
	if _, err := ParseSnapshot([]byte("projects:\n  - name: app\n")); err == nil {
		t.Error("Expected error for project without path")
	}
	if _, err := ParseSnapshot([]byte("projects: []\n")); err == nil {
		t.Error("Expected error for empty snapshot")
	}
	if _, err := ParseSnapshot([]byte(":::not yaml")); err == nil {
		t.Error("Expected error for malformed yaml")
	}
}

func TestLoadSnapshot(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "model.yaml")
	if err := os.WriteFile(path, []byte(sampleSnapshot), 0644); err != nil {
		t.Fatalf("failed to write snapshot file: %v", err)
	}

	roots, err := LoadSnapshot(path)
	if err != nil {
		t.Fatalf("Failed to load snapshot: %v", err)
	}
	if len(roots) != 1 || roots[0].Name != "app" {
		t.Errorf("Unexpected snapshot contents: %+v", roots)
	}

	if _, err := LoadSnapshot(filepath.Join(tmpDir, "missing.yaml")); err == nil {
		t.Error("Expected error for missing snapshot file")
	}
}
