package model

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// snapshotFile is the on-disk shape of a build model snapshot, as exported by
// the build tool.
type snapshotFile struct {
	Projects []snapshotProject `yaml:"projects"`
}

type snapshotProject struct {
	Name      string             `yaml:"name"`
	Path      string             `yaml:"path"`
	Dir       string             `yaml:"dir"`
	Tasks     []snapshotTask     `yaml:"tasks"`
	Selectors []snapshotSelector `yaml:"selectors"`
	Children  []snapshotProject  `yaml:"children"`
}

type snapshotTask struct {
	Name        string `yaml:"name"`
	Path        string `yaml:"path"`
	Description string `yaml:"description"`
	Group       string `yaml:"group"`
	Public      bool   `yaml:"public"`
}

type snapshotSelector struct {
	Name        string   `yaml:"name"`
	Description string   `yaml:"description"`
	Group       string   `yaml:"group"`
	Public      bool     `yaml:"public"`
	Resolves    []string `yaml:"resolves"`
}

// LoadSnapshot reads a build model snapshot file and returns the top-level
// projects, with parent links and build root directories resolved.
func LoadSnapshot(path string) ([]*Project, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}
	return ParseSnapshot(data)
}

// ParseSnapshot parses raw snapshot YAML into the top-level project list.
func ParseSnapshot(data []byte) ([]*Project, error) {
	var file snapshotFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse snapshot: %w", err)
	}
	if len(file.Projects) == 0 {
		return nil, fmt.Errorf("parse snapshot: no projects")
	}

	var roots []*Project
	for i := range file.Projects {
		sp := &file.Projects[i]
		// the root project's own directory anchors the build
		root, err := convertProject(sp, nil, filepath.Clean(sp.Dir))
		if err != nil {
			return nil, err
		}
		roots = append(roots, root)
	}
	return roots, nil
}

func convertProject(sp *snapshotProject, parent *Project, rootDir string) (*Project, error) {
	if sp.Name == "" {
		return nil, fmt.Errorf("parse snapshot: project without name")
	}
	if sp.Path == "" {
		return nil, fmt.Errorf("parse snapshot: project %q without path", sp.Name)
	}

	p := &Project{
		Name:    sp.Name,
		Path:    sp.Path,
		Dir:     filepath.Clean(sp.Dir),
		RootDir: rootDir,
		Parent:  parent,
	}

	for _, st := range sp.Tasks {
		p.Tasks = append(p.Tasks, ProjectTask{
			Name:        st.Name,
			Path:        st.Path,
			Description: st.Description,
			Group:       st.Group,
			Public:      st.Public,
		})
	}
	for _, ss := range sp.Selectors {
		p.Selectors = append(p.Selectors, NewTaskSelector(
			ss.Name, ss.Description, sp.Path, ss.Public, ss.Group, ss.Resolves))
	}

	for i := range sp.Children {
		child, err := convertProject(&sp.Children[i], p, rootDir)
		if err != nil {
			return nil, err
		}
		p.Children = append(p.Children, child)
	}
	return p, nil
}
