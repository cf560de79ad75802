package tree

// ViewState reports how a project's tasks should be presented. The flag is
// owned externally and read fresh on every Children call, so toggling it
// changes navigation immediately without a rebuild.
type ViewState interface {
	GroupTasks() bool
}

// Projection is the read side of the tree-display protocol over one
// flattened node collection. It carries no state beyond that collection;
// task and group nodes are derived lazily per expanded project node.
type Projection struct {
	nodes []Node
	state ViewState
}

// NewProjection creates a projection over a flattened node collection.
func NewProjection(nodes []Node, state ViewState) *Projection {
	return &Projection{nodes: nodes, state: state}
}

// Elements returns the top-level node collection. The project forest is
// presented flattened to a list, the way workspace projects look in a project
// explorer: every project node appears here regardless of nesting, followed
// by every faulty project node. Hierarchy is still navigable through Parent
// and ChildProjects.
func (p *Projection) Elements() []Node {
	elements := make([]Node, len(p.nodes))
	copy(elements, p.nodes)
	return elements
}

// ChildProjects returns the project nodes whose parent reference points at
// the given node, derived by filtering the flat collection.
func (p *Projection) ChildProjects(node *ProjectNode) []*ProjectNode {
	var children []*ProjectNode
	for _, n := range p.nodes {
		if pn, ok := n.(*ProjectNode); ok && pn.Parent() == node {
			children = append(children, pn)
		}
	}
	return children
}

// HasChildren reports whether the node can be expanded. Only project and
// task-group nodes have children; faulty projects and task nodes are leaves.
func (p *Projection) HasChildren(node Node) bool {
	switch node.(type) {
	case *ProjectNode, *TaskGroupNode:
		return true
	default:
		return false
	}
}

// Children returns the child nodes of the given node: for a project node its
// tasks, flat or bucketed by group depending on the view state; for a
// task-group node its member set; nothing for any leaf variant.
func (p *Projection) Children(node Node) []Node {
	switch node := node.(type) {
	case *ProjectNode:
		return p.childrenOf(node)
	case *TaskGroupNode:
		members := node.TaskNodes()
		children := make([]Node, len(members))
		for i, m := range members {
			children[i] = m
		}
		return children
	default:
		return nil
	}
}

func (p *Projection) childrenOf(node *ProjectNode) []Node {
	var children []Node
	if p.state.GroupTasks() {
		for _, g := range GroupNodes(node) {
			children = append(children, g)
		}
	} else {
		for _, t := range TaskNodes(node) {
			children = append(children, t)
		}
	}
	return children
}

// Parent returns the parent of the given node, or nil for top-level nodes.
func (p *Projection) Parent(node Node) Node {
	switch node := node.(type) {
	case *ProjectNode:
		if node.Parent() == nil {
			return nil
		}
		return node.Parent()
	case *TaskGroupNode:
		return node.ProjectNode()
	case TaskNode:
		return node.Owner()
	default:
		return nil
	}
}

// InputChanged is a lifecycle no-op: the node collection is rebuilt
// wholesale, not incrementally maintained.
func (p *Projection) InputChanged() {}

// Dispose is a lifecycle no-op.
func (p *Projection) Dispose() {}
