package model

import (
	"reflect"
	"testing"
)

func TestNewTaskSelectorNormalizesPaths(t *testing.T) {
	sel := NewTaskSelector("test", "Runs tests", ":app", true, "verification",
		[]string{":app:test", ":app:check", ":app:test", ":app:integTest", ":app:check"})

	want := []string{":app:check", ":app:integTest", ":app:test"}
	if !reflect.DeepEqual(sel.TaskPaths(), want) {
		t.Errorf("Expected normalized paths %v, got %v", want, sel.TaskPaths())
	}
}

func TestNewTaskSelectorEmptyPaths(t *testing.T) {
	sel := NewTaskSelector("help", "", ":", true, "", nil)
	if len(sel.TaskPaths()) != 0 {
		t.Errorf("Expected no paths, got %v", sel.TaskPaths())
	}
}

func TestNewTaskSelectorDoesNotAliasInput(t *testing.T) {
	raw := []string{":b", ":a"}
	sel := NewTaskSelector("all", "", ":", true, "", raw)

	raw[0] = ":mutated"
	want := []string{":a", ":b"}
	if !reflect.DeepEqual(sel.TaskPaths(), want) {
		t.Errorf("Expected paths %v after input mutation, got %v", want, sel.TaskPaths())
	}
}

func TestBuildInvocationIndex(t *testing.T) {
	child := &Project{
		Name: "lib",
		Path: ":lib",
		Tasks: []ProjectTask{
			{Name: "compile", Path: ":lib:compile", Group: "build"},
		},
	}
	root := &Project{
		Name:     "app",
		Path:     ":",
		Children: []*Project{child},
		Selectors: []TaskSelector{
			NewTaskSelector("build", "", ":", true, "build", []string{":build", ":lib:compile"}),
		},
	}
	child.Parent = root

	index := BuildInvocationIndex(root)

	if len(index) != 2 {
		t.Fatalf("Expected 2 index entries, got %d", len(index))
	}

	rootInv, ok := index.Lookup(":")
	if !ok {
		t.Fatal("Expected index entry for root path")
	}
	if len(rootInv.Selectors) != 1 || rootInv.Selectors[0].Name != "build" {
		t.Errorf("Unexpected root selectors: %+v", rootInv.Selectors)
	}

	libInv, ok := index.Lookup(":lib")
	if !ok {
		t.Fatal("Expected index entry for :lib")
	}
	if len(libInv.Tasks) != 1 || libInv.Tasks[0].Name != "compile" {
		t.Errorf("Unexpected :lib tasks: %+v", libInv.Tasks)
	}

	if _, ok := index.Lookup(":missing"); ok {
		t.Error("Expected lookup miss for unknown path")
	}
}
