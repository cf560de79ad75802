package service

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/mattsolo1/grove-tasktree/pkg/tree"
	"github.com/mattsolo1/grove-tasktree/pkg/workspace"
)

func writeSnapshot(t *testing.T, rootDir string) {
	t.Helper()
	dir := filepath.Join(rootDir, ".grove")
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("failed to create snapshot dir: %v", err)
	}
	content := []byte(
		"projects:\n" +
			"  - name: app\n" +
			"    path: \":\"\n" +
			"    dir: " + rootDir + "\n" +
			"    tasks:\n" +
			"      - name: build\n" +
			"        path: \":build\"\n" +
			"        group: build\n" +
			"    children:\n" +
			"      - name: lib\n" +
			"        path: \":lib\"\n" +
			"        dir: " + filepath.Join(rootDir, "lib") + "\n")
	if err := os.WriteFile(filepath.Join(dir, "build-model.yaml"), content, 0644); err != nil {
		t.Fatalf("failed to write snapshot: %v", err)
	}
}

func newTestService(t *testing.T) (*Service, string) {
	t.Helper()
	tmpDir := t.TempDir()
	svc, err := New(&Config{DataDir: filepath.Join(tmpDir, "data")})
	if err != nil {
		t.Fatalf("Failed to create service: %v", err)
	}
	t.Cleanup(func() { svc.Close() })
	return svc, tmpDir
}

func TestBuildContentFromRegistry(t *testing.T) {
	svc, tmpDir := newTestService(t)

	appRoot := filepath.Join(tmpDir, "app")
	writeSnapshot(t, appRoot)

	entries := []*workspace.Workspace{
		{Name: "app", Path: appRoot, Type: workspace.TypeGitRepo, BuildMarker: true},
		{Name: "plain", Path: filepath.Join(tmpDir, "plain"), Type: workspace.TypeDirectory},
		{Name: "broken", Path: filepath.Join(tmpDir, "broken"), Type: workspace.TypeGitRepo, BuildMarker: true},
	}
	for _, ws := range entries {
		if err := svc.Registry().Add(ws); err != nil {
			t.Fatalf("Failed to add workspace: %v", err)
		}
	}

	content, err := svc.BuildContent()
	if err != nil {
		t.Fatalf("BuildContent returned error: %v", err)
	}

	if len(content.Projects) != 1 || content.Projects[0].Name != "app" {
		t.Errorf("Expected one app root project, got %+v", content.Projects)
	}
	// entries without the build marker contribute nothing; entries with the
	// marker but no readable snapshot become faulty
	if len(content.Faulty) != 1 || content.Faulty[0].Name != "broken" {
		t.Errorf("Expected broken workspace to be faulty, got %+v", content.Faulty)
	}
}

func TestBuildContentDeduplicatesSharedRoots(t *testing.T) {
	svc, tmpDir := newTestService(t)

	rootDir := filepath.Join(tmpDir, "composite")
	writeSnapshot(t, rootDir)

	// two entries recorded against the same build root
	entries := []*workspace.Workspace{
		{Name: "composite", Path: rootDir, BuildMarker: true, Type: workspace.TypeComposite},
		{Name: "member", Path: filepath.Join(rootDir, "lib"), RootDir: rootDir, BuildMarker: true, Type: workspace.TypeComposite},
	}
	for _, ws := range entries {
		if err := svc.Registry().Add(ws); err != nil {
			t.Fatalf("Failed to add workspace: %v", err)
		}
	}

	content, err := svc.BuildContent()
	if err != nil {
		t.Fatalf("BuildContent returned error: %v", err)
	}
	if len(content.Projects) != 1 {
		t.Errorf("Expected the shared build root to be loaded once, got %d roots", len(content.Projects))
	}
}

func TestBuildTreeWithExplicitSnapshot(t *testing.T) {
	svc, tmpDir := newTestService(t)

	rootDir := filepath.Join(tmpDir, "app")
	writeSnapshot(t, rootDir)
	svc.Config.Snapshot = filepath.Join(rootDir, ".grove", "build-model.yaml")

	projection, err := svc.BuildTree()
	if err != nil {
		t.Fatalf("BuildTree returned error: %v", err)
	}

	elements := projection.Elements()
	if len(elements) != 2 {
		t.Fatalf("Expected 2 project nodes, got %d", len(elements))
	}

	// the service view state drives flat vs grouped children
	app := elements[0].(*tree.ProjectNode)
	if _, ok := projection.Children(app)[0].(*tree.ProjectTaskNode); !ok {
		t.Error("Expected flat task children by default")
	}
	svc.View().SetGroupTasks(true)
	if _, ok := projection.Children(app)[0].(*tree.TaskGroupNode); !ok {
		t.Error("Expected grouped children after toggling view state")
	}
}

func TestBuildTreeExplicitSnapshotMissing(t *testing.T) {
	svc, tmpDir := newTestService(t)
	svc.Config.Snapshot = filepath.Join(tmpDir, "nope.yaml")

	if _, err := svc.BuildTree(); err == nil {
		t.Error("Expected error for missing explicit snapshot")
	}
}
