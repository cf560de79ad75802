package model

// Invocations holds the tasks and task selectors available for a single
// project path.
type Invocations struct {
	Tasks     []ProjectTask
	Selectors []TaskSelector
}

// InvocationIndex maps project path to that project's invocations for one
// build's whole sub-tree. The index is built once per root and shared
// read-only for the duration of a rebuild.
type InvocationIndex map[string]Invocations

// BuildInvocationIndex walks the sub-tree under root and collects the
// invocations for every reachable project path.
func BuildInvocationIndex(root *Project) InvocationIndex {
	index := make(InvocationIndex)
	collectInvocations(root, index)
	return index
}

func collectInvocations(p *Project, index InvocationIndex) {
	index[p.Path] = Invocations{
		Tasks:     p.Tasks,
		Selectors: p.Selectors,
	}
	for _, child := range p.Children {
		collectInvocations(child, index)
	}
}

// Lookup returns the invocations recorded for the given project path.
func (ix InvocationIndex) Lookup(path string) (Invocations, bool) {
	inv, ok := ix[path]
	return inv, ok
}
