package tree

import (
	"fmt"

	"github.com/mattsolo1/grove-tasktree/pkg/model"
	"github.com/mattsolo1/grove-tasktree/pkg/workspace"
)

// Content is the input of one full rebuild: the top-level domain projects and
// the workspace entries that could not be associated with a usable model.
type Content struct {
	Projects []*model.Project
	Faulty   []*workspace.Workspace
}

// InvocationSource supplies, per domain root, the invocation index covering
// that root's whole sub-tree. The returned index must not be mutated for the
// duration of the rebuild it was handed to.
type InvocationSource interface {
	InvocationsFor(root *model.Project) model.InvocationIndex
}

// InvocationSourceFunc adapts a function to the InvocationSource interface.
type InvocationSourceFunc func(root *model.Project) model.InvocationIndex

func (f InvocationSourceFunc) InvocationsFor(root *model.Project) model.InvocationIndex {
	return f(root)
}

// ModelInvocations derives the invocation index directly from the domain
// model. It is the source used outside of tests.
var ModelInvocations InvocationSource = InvocationSourceFunc(model.BuildInvocationIndex)

// MissingInvocationsError reports a domain project path with no entry in the
// invocation index. It signals a data-integrity mismatch between the domain
// model and the invocation source and aborts the rebuild; the caller should
// keep its previous valid tree.
type MissingInvocationsError struct {
	Path string
}

func (e *MissingInvocationsError) Error() string {
	return fmt.Sprintf("no invocation data for project path %q", e.Path)
}

// Flattener walks the nested domain hierarchy and produces the complete
// ordered node collection for one rebuild.
type Flattener struct {
	matcher *Matcher
	source  InvocationSource
}

// NewFlattener creates a flattener using the given matcher and invocation
// source.
func NewFlattener(matcher *Matcher, source InvocationSource) *Flattener {
	return &Flattener{matcher: matcher, source: source}
}

// Flatten produces the flat node collection for the given content: one
// ProjectNode per domain project in pre-order with an explicit parent
// back-reference, followed by one FaultyProjectNode per faulty workspace
// entry, in the given order. The invocation index is obtained once per domain
// root and shared read-only by every node under that root.
func (f *Flattener) Flatten(content Content) ([]Node, error) {
	var nodes []Node
	for _, root := range content.Projects {
		if root.Parent != nil {
			continue
		}
		index := f.source.InvocationsFor(root)
		var err error
		nodes, err = f.collect(root, nil, index, nodes)
		if err != nil {
			return nil, err
		}
	}

	for _, w := range content.Faulty {
		nodes = append(nodes, &FaultyProjectNode{workspace: w})
	}

	return nodes, nil
}

func (f *Flattener) collect(p *model.Project, parent *ProjectNode, index model.InvocationIndex, nodes []Node) ([]Node, error) {
	invocations, ok := index.Lookup(p.Path)
	if !ok {
		return nil, &MissingInvocationsError{Path: p.Path}
	}

	ws, included := f.matcher.Match(p)

	node := &ProjectNode{
		parent:      parent,
		project:     p,
		workspace:   ws,
		included:    included,
		invocations: invocations,
	}
	nodes = append(nodes, node)

	for _, child := range p.Children {
		var err error
		nodes, err = f.collect(child, node, index, nodes)
		if err != nil {
			return nil, err
		}
	}
	return nodes, nil
}
