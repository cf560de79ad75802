package workspace

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestNewRegistry(t *testing.T) {
	tmpDir := t.TempDir()
	dataDir := filepath.Join(tmpDir, "data")

	reg, err := NewRegistry(dataDir)
	if err != nil {
		t.Fatalf("Failed to create registry: %v", err)
	}
	defer reg.Close()

	if reg.dataDir != dataDir {
		t.Errorf("Expected dataDir %s, got %s", dataDir, reg.dataDir)
	}

	// Check if database file was created
	dbFile := filepath.Join(dataDir, "workspaces.db")
	if _, err := os.Stat(dbFile); os.IsNotExist(err) {
		t.Error("Expected database file to be created")
	}
}

func TestAddAndGetWorkspace(t *testing.T) {
	tmpDir := t.TempDir()
	dataDir := filepath.Join(tmpDir, "data")

	reg, err := NewRegistry(dataDir)
	if err != nil {
		t.Fatalf("Failed to create registry: %v", err)
	}
	defer reg.Close()

	ws := &Workspace{
		Name:        "lib",
		Path:        filepath.Join(tmpDir, "repo", "lib"),
		Type:        TypeGitRepo,
		RootDir:     filepath.Join(tmpDir, "repo"),
		BuildMarker: true,
		Settings:    map[string]any{"auto_registered": true},
		CreatedAt:   time.Now(),
		LastUsed:    time.Now(),
	}

	if err := reg.Add(ws); err != nil {
		t.Fatalf("Failed to add workspace: %v", err)
	}

	retrieved, err := reg.Get("lib")
	if err != nil {
		t.Fatalf("Failed to get workspace: %v", err)
	}

	if retrieved.Name != ws.Name {
		t.Errorf("Expected workspace name %s, got %s", ws.Name, retrieved.Name)
	}
	if retrieved.RootDir != ws.RootDir {
		t.Errorf("Expected root dir %s, got %s", ws.RootDir, retrieved.RootDir)
	}
	if !retrieved.BuildMarker {
		t.Error("Expected build marker to be preserved")
	}

	// Test Get non-existent
	_, err = reg.Get("non-existent")
	if err == nil {
		t.Error("Expected error when getting non-existent workspace")
	}
}

func TestAddDefaultsRootDirToPath(t *testing.T) {
	tmpDir := t.TempDir()

	reg, err := NewRegistry(filepath.Join(tmpDir, "data"))
	if err != nil {
		t.Fatalf("Failed to create registry: %v", err)
	}
	defer reg.Close()

	ws := &Workspace{
		Name: "standalone",
		Path: filepath.Join(tmpDir, "standalone"),
		Type: TypeDirectory,
	}

	if err := reg.Add(ws); err != nil {
		t.Fatalf("Failed to add workspace: %v", err)
	}

	retrieved, err := reg.Get("standalone")
	if err != nil {
		t.Fatalf("Failed to get workspace: %v", err)
	}
	if retrieved.RootDir != ws.Path {
		t.Errorf("Expected root dir to default to path %s, got %s", ws.Path, retrieved.RootDir)
	}
}

func TestListWorkspaces(t *testing.T) {
	tmpDir := t.TempDir()
	dataDir := filepath.Join(tmpDir, "data")

	reg, err := NewRegistry(dataDir)
	if err != nil {
		t.Fatalf("Failed to create registry: %v", err)
	}
	defer reg.Close()

	workspaces := []*Workspace{
		{
			Name:        "workspace1",
			Path:        filepath.Join(tmpDir, "ws1"),
			Type:        TypeDirectory,
			BuildMarker: true,
		},
		{
			Name: "workspace2",
			Path: filepath.Join(tmpDir, "ws2"),
			Type: TypeGitRepo,
		},
	}

	for _, ws := range workspaces {
		if err := reg.Add(ws); err != nil {
			t.Fatalf("Failed to add workspace: %v", err)
		}
	}

	listed, err := reg.List()
	if err != nil {
		t.Fatalf("Failed to list workspaces: %v", err)
	}

	if len(listed) != len(workspaces) {
		t.Errorf("Expected %d workspaces, got %d", len(workspaces), len(listed))
	}
}

func TestRemoveWorkspace(t *testing.T) {
	tmpDir := t.TempDir()
	dataDir := filepath.Join(tmpDir, "data")

	reg, err := NewRegistry(dataDir)
	if err != nil {
		t.Fatalf("Failed to create registry: %v", err)
	}
	defer reg.Close()

	ws := &Workspace{
		Name: "test-workspace",
		Path: filepath.Join(tmpDir, "test-workspace"),
		Type: TypeDirectory,
	}

	if err := reg.Add(ws); err != nil {
		t.Fatalf("Failed to add workspace: %v", err)
	}

	if err := reg.Remove("test-workspace"); err != nil {
		t.Fatalf("Failed to remove workspace: %v", err)
	}

	_, err = reg.Get("test-workspace")
	if err == nil {
		t.Error("Expected error when getting removed workspace")
	}
}

func TestSetRootDir(t *testing.T) {
	tmpDir := t.TempDir()

	reg, err := NewRegistry(filepath.Join(tmpDir, "data"))
	if err != nil {
		t.Fatalf("Failed to create registry: %v", err)
	}
	defer reg.Close()

	ws := &Workspace{
		Name: "member",
		Path: filepath.Join(tmpDir, "repo", "member"),
		Type: TypeComposite,
	}
	if err := reg.Add(ws); err != nil {
		t.Fatalf("Failed to add workspace: %v", err)
	}

	newRoot := filepath.Join(tmpDir, "repo")
	if err := reg.SetRootDir("member", newRoot); err != nil {
		t.Fatalf("Failed to set root dir: %v", err)
	}

	retrieved, err := reg.Get("member")
	if err != nil {
		t.Fatalf("Failed to get workspace: %v", err)
	}
	if retrieved.RootDir != newRoot {
		t.Errorf("Expected root dir %s, got %s", newRoot, retrieved.RootDir)
	}

	if err := reg.SetRootDir("no-such-workspace", newRoot); err == nil {
		t.Error("Expected error when updating unknown workspace")
	}
}

func TestFindByPath(t *testing.T) {
	tmpDir := t.TempDir()
	dataDir := filepath.Join(tmpDir, "data")

	reg, err := NewRegistry(dataDir)
	if err != nil {
		t.Fatalf("Failed to create registry: %v", err)
	}
	defer reg.Close()

	// Create nested workspace structure
	parentDir := filepath.Join(tmpDir, "parent")
	childDir := filepath.Join(parentDir, "child")
	if err := os.MkdirAll(childDir, 0755); err != nil {
		t.Fatalf("failed to create test directory: %v", err)
	}

	ws := &Workspace{
		Name: "parent-workspace",
		Path: parentDir,
		Type: TypeDirectory,
	}

	if err := reg.Add(ws); err != nil {
		t.Fatalf("Failed to add workspace: %v", err)
	}

	// Test finding workspace from child directory
	found, err := reg.FindByPath(childDir)
	if err != nil {
		t.Fatalf("Failed to find workspace by path: %v", err)
	}

	if found.Name != "parent-workspace" {
		t.Errorf("Expected to find parent-workspace, got %s", found.Name)
	}

	// Test finding from exact path
	found, err = reg.FindByPath(parentDir)
	if err != nil {
		t.Fatalf("Failed to find workspace by exact path: %v", err)
	}

	if found.Name != "parent-workspace" {
		t.Errorf("Expected to find parent-workspace, got %s", found.Name)
	}

	// Test with non-workspace path
	found, err = reg.FindByPath(tmpDir)
	if err != nil {
		t.Fatalf("FindByPath returned error: %v", err)
	}
	if found != nil {
		t.Error("Expected nil workspace for non-workspace path")
	}
}
