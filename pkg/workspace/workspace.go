package workspace

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Type represents the kind of workspace entry
type Type string

const (
	TypeGitRepo   Type = "git-repo"
	TypeDirectory Type = "directory"
	TypeComposite Type = "composite"
)

// Workspace represents a registered workspace entry. Entries are tracked
// independently of the build model; a workspace may or may not correspond to
// a project in the model. RootDir is the build root directory recorded for
// the entry by its configuration, which is not necessarily the workspace's
// own path (a composite-build member records the root of the build that
// includes it).
type Workspace struct {
	Name        string         `yaml:"name" json:"name"`
	Path        string         `yaml:"path" json:"path"`
	Type        Type           `yaml:"type" json:"type"`
	RootDir     string         `yaml:"root_dir" json:"root_dir"`
	BuildMarker bool           `yaml:"build_marker" json:"build_marker"`
	Settings    map[string]any `yaml:"settings" json:"settings"`
	CreatedAt   time.Time      `yaml:"created_at" json:"created_at"`
	LastUsed    time.Time      `yaml:"last_used" json:"last_used"`
}

// SnapshotPath returns the path of the build model snapshot for this
// workspace, exported by the build tool under the configured root directory.
func (w *Workspace) SnapshotPath() string {
	return filepath.Join(w.RootDir, ".grove", "build-model.yaml")
}

// IsActive checks if we're currently in this workspace
func (w *Workspace) IsActive() bool {
	cwd, err := os.Getwd()
	if err != nil {
		return false
	}

	absPath, err := filepath.Abs(w.Path)
	if err != nil {
		return false
	}

	return strings.HasPrefix(cwd, absPath)
}

// Validate checks if the workspace entry is valid
func (w *Workspace) Validate() error {
	if w.Name == "" {
		return fmt.Errorf("workspace name cannot be empty")
	}
	if w.Path == "" {
		return fmt.Errorf("workspace path cannot be empty")
	}

	// Expand home directory
	if strings.HasPrefix(w.Path, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return err
		}
		w.Path = filepath.Join(home, w.Path[1:])
	}

	if strings.HasPrefix(w.RootDir, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return err
		}
		w.RootDir = filepath.Join(home, w.RootDir[1:])
	}

	// An entry with no configured root anchors its own build.
	if w.RootDir == "" {
		w.RootDir = w.Path
	}

	return nil
}
