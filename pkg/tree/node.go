package tree

import (
	"github.com/mattsolo1/grove-tasktree/pkg/model"
	"github.com/mattsolo1/grove-tasktree/pkg/workspace"
)

// DefaultGroup is the sentinel group key for tasks and selectors that declare
// no group (or a blank one).
const DefaultGroup = "default"

// Node is the closed set of element variants handed out by the projection.
// Variants are dispatched by type switch; no variant extends another's
// behavior.
type Node interface {
	node()
}

// TaskNode is the subset of nodes representing a single invocable entry
// (a project task or a task selector) under a project.
type TaskNode interface {
	Node
	// Owner returns the project node this task entry belongs to.
	Owner() *ProjectNode
}

// ProjectNode stands for one project of the domain model. Its identity is the
// domain project path. Child projects are not stored on the node; they are
// derived by filtering the flat node collection for nodes whose parent
// reference points here.
type ProjectNode struct {
	parent      *ProjectNode
	project     *model.Project
	workspace   *workspace.Workspace
	included    bool
	invocations model.Invocations
}

func (n *ProjectNode) node() {}

// Parent returns the node of the domain parent project, or nil at a forest
// root.
func (n *ProjectNode) Parent() *ProjectNode { return n.parent }

// Project returns the domain project this node stands for.
func (n *ProjectNode) Project() *model.Project { return n.project }

// Workspace returns the matched workspace entry, if any.
func (n *ProjectNode) Workspace() (*workspace.Workspace, bool) {
	return n.workspace, n.workspace != nil
}

// Included reports whether the matched workspace entry is an
// externally-included composite-build member rather than the project
// anchoring the build.
func (n *ProjectNode) Included() bool { return n.included }

// Invocations returns the tasks and selectors available on this project.
func (n *ProjectNode) Invocations() model.Invocations { return n.invocations }

// FaultyProjectNode stands for a workspace entry that could not be matched to
// a usable build model. It is always top-level and never has children.
type FaultyProjectNode struct {
	workspace *workspace.Workspace
}

func (n *FaultyProjectNode) node() {}

// Workspace returns the workspace entry this node stands for.
func (n *FaultyProjectNode) Workspace() *workspace.Workspace { return n.workspace }

// ProjectTaskNode wraps one task directly declared by a project.
type ProjectTaskNode struct {
	owner *ProjectNode
	task  model.ProjectTask
}

func (n *ProjectTaskNode) node() {}

func (n *ProjectTaskNode) Owner() *ProjectNode { return n.owner }

// Task returns the wrapped project task.
func (n *ProjectTaskNode) Task() model.ProjectTask { return n.task }

// TaskSelectorNode wraps one task selector declared on a project.
type TaskSelectorNode struct {
	owner    *ProjectNode
	selector model.TaskSelector
}

func (n *TaskSelectorNode) node() {}

func (n *TaskSelectorNode) Owner() *ProjectNode { return n.owner }

// Selector returns the wrapped task selector.
func (n *TaskSelectorNode) Selector() model.TaskSelector { return n.selector }

// TaskGroupNode buckets the task nodes of one project sharing a group key.
// Two group nodes are the same bucket iff their owning project and group key
// are equal; the aggregator accumulates members under that composite key.
type TaskGroupNode struct {
	owner   *ProjectNode
	name    string
	members []TaskNode
}

func (n *TaskGroupNode) node() {}

// ProjectNode returns the project node this group belongs to.
func (n *TaskGroupNode) ProjectNode() *ProjectNode { return n.owner }

// Name returns the group key, DefaultGroup for the ungrouped bucket.
func (n *TaskGroupNode) Name() string { return n.name }

// TaskNodes returns the member task nodes assigned to this group.
func (n *TaskGroupNode) TaskNodes() []TaskNode { return n.members }
