package tree

// TaskNodes builds the flat task-node list for a project node: one
// ProjectTaskNode per project task, then one TaskSelectorNode per task
// selector, each linked back to the given project node. Pure function of the
// node's invocation data.
func TaskNodes(p *ProjectNode) []TaskNode {
	inv := p.Invocations()

	taskNodes := make([]TaskNode, 0, len(inv.Tasks)+len(inv.Selectors))
	for _, task := range inv.Tasks {
		taskNodes = append(taskNodes, &ProjectTaskNode{owner: p, task: task})
	}
	for _, selector := range inv.Selectors {
		taskNodes = append(taskNodes, &TaskSelectorNode{owner: p, selector: selector})
	}
	return taskNodes
}
