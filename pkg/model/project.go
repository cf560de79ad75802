package model

import (
	"slices"
	"sort"
)

// Project is one node in the build tool's own project model. Projects form a
// tree per build: the root project's directory is the build root directory,
// which every project in that tree carries in RootDir.
type Project struct {
	Name    string
	Path    string // logical project path, e.g. ":sub:lib"
	Dir     string // the project's own directory on disk
	RootDir string // root directory of the build this project belongs to

	Parent   *Project
	Children []*Project

	Tasks     []ProjectTask
	Selectors []TaskSelector
}

// ProjectTask is a task directly declared by a specific project.
type ProjectTask struct {
	Name        string
	Path        string // fully qualified task path, e.g. ":sub:lib:build"
	Description string
	Group       string
	Public      bool
}

// TaskSelector is a named, possibly cross-project task reference that resolves
// to one or more concrete task paths. Selectors are immutable values; construct
// them with NewTaskSelector.
type TaskSelector struct {
	Name        string
	Description string
	ProjectPath string
	Public      bool
	Group       string

	taskPaths []string
}

// NewTaskSelector builds a selector from raw inputs. The candidate path
// collection may be unsorted and contain duplicates; it is normalized to a
// sorted, duplicate-free list before the selector becomes visible.
func NewTaskSelector(name, description, projectPath string, public bool, group string, taskPaths []string) TaskSelector {
	paths := append([]string(nil), taskPaths...)
	sort.Strings(paths)
	paths = slices.Compact(paths)

	return TaskSelector{
		Name:        name,
		Description: description,
		ProjectPath: projectPath,
		Public:      public,
		Group:       group,
		taskPaths:   paths,
	}
}

// TaskPaths returns the candidate task paths, sorted ascending and unique.
// The returned slice is shared; callers must not modify it.
func (s TaskSelector) TaskPaths() []string {
	return s.taskPaths
}
