package browser

import (
	"fmt"

	"github.com/mattsolo1/grove-core/tui/components/help"

	"github.com/mattsolo1/grove-tasktree/pkg/service"
	"github.com/mattsolo1/grove-tasktree/pkg/tree"
)

// displayNode represents a single line in the hierarchical TUI view.
type displayNode struct {
	isProject bool
	isFaulty  bool
	isGroup   bool
	isTask    bool

	project *tree.ProjectNode
	faulty  *tree.FaultyProjectNode
	group   *tree.TaskGroupNode
	task    tree.TaskNode

	// Pre-calculated for rendering
	prefix string
	depth  int
}

// nodeID returns a unique identifier for this node (for tracking collapsed state)
func (n *displayNode) nodeID() string {
	switch {
	case n.isProject:
		p := n.project.Project()
		return "prj:" + p.RootDir + p.Path
	case n.isGroup:
		p := n.group.ProjectNode().Project()
		return fmt.Sprintf("grp:%s%s:%s", p.RootDir, p.Path, n.group.Name())
	default:
		return ""
	}
}

// isFoldable returns true if this node can be collapsed/expanded
func (n *displayNode) isFoldable() bool {
	return n.isProject || n.isGroup
}

// Model is the main model for the task tree browser TUI
type Model struct {
	service      *service.Service
	projection   *tree.Projection
	displayNodes []*displayNode
	cursor       int
	scrollOffset int
	keys         KeyMap
	help         help.Model
	width        int
	height       int

	collapsedNodes map[string]bool // Tracks collapsed projects and groups
	statusMessage  string
}

// New creates a new TUI model. The initial tree is built synchronously so the
// first frame already shows a complete tree.
func New(svc *service.Service) (Model, error) {
	projection, err := svc.BuildTree()
	if err != nil {
		return Model{}, err
	}

	helpModel := help.NewBuilder().
		WithKeys(keys).
		WithTitle("Task Tree Browser - Help").
		Build()

	m := Model{
		service:        svc,
		projection:     projection,
		keys:           keys,
		help:           helpModel,
		collapsedNodes: make(map[string]bool),
	}
	m.buildDisplayTree()
	return m, nil
}

// buildDisplayTree derives the visible line list from the projection,
// honoring the collapse state. Navigation only reads the projection; the
// node collection itself is never mutated here.
func (m *Model) buildDisplayTree() {
	var nodes []*displayNode

	for _, element := range m.projection.Elements() {
		switch node := element.(type) {
		case *tree.ProjectNode:
			depth := 0
			for parent := node.Parent(); parent != nil; parent = parent.Parent() {
				depth++
			}
			dn := &displayNode{
				isProject: true,
				project:   node,
				depth:     depth,
				prefix:    indent(depth),
			}
			nodes = append(nodes, dn)
			if m.collapsedNodes[dn.nodeID()] {
				continue
			}
			nodes = append(nodes, m.taskLines(node, depth+1)...)
		case *tree.FaultyProjectNode:
			nodes = append(nodes, &displayNode{isFaulty: true, faulty: node})
		}
	}

	m.displayNodes = nodes
	if m.cursor >= len(m.displayNodes) {
		m.cursor = len(m.displayNodes) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *Model) taskLines(node *tree.ProjectNode, depth int) []*displayNode {
	var lines []*displayNode
	for _, child := range m.projection.Children(node) {
		switch child := child.(type) {
		case *tree.TaskGroupNode:
			dn := &displayNode{
				isGroup: true,
				group:   child,
				depth:   depth,
				prefix:  indent(depth),
			}
			lines = append(lines, dn)
			if m.collapsedNodes[dn.nodeID()] {
				continue
			}
			for _, member := range child.TaskNodes() {
				lines = append(lines, &displayNode{
					isTask: true,
					task:   member,
					depth:  depth + 1,
					prefix: indent(depth + 1),
				})
			}
		case tree.TaskNode:
			lines = append(lines, &displayNode{
				isTask: true,
				task:   child,
				depth:  depth,
				prefix: indent(depth),
			})
		}
	}
	return lines
}

func indent(depth int) string {
	const step = "  "
	prefix := ""
	for i := 0; i < depth; i++ {
		prefix += step
	}
	return prefix
}

func (m Model) getViewportHeight() int {
	// header, spacing and footer take a few lines
	h := m.height - 6
	if h < 1 {
		h = 1
	}
	return h
}
