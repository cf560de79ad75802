package tree

import "sort"

// GroupNodes buckets a project's tasks and selectors into group nodes keyed
// by group name. The default group is always present, even when empty, so the
// view can show an ungrouped bucket; blank group names fold into it.
// Accumulation is fetch-or-insert-then-merge on the (project, group key)
// composite, so tasks and selectors sharing a group land in a single node's
// member set. The result is ordered default-first, then by group name, which
// makes aggregation deterministic and idempotent.
func GroupNodes(p *ProjectNode) []*TaskGroupNode {
	groups := map[string]*TaskGroupNode{
		DefaultGroup: {owner: p, name: DefaultGroup},
	}

	groupFor := func(name string) *TaskGroupNode {
		if name == "" {
			name = DefaultGroup
		}
		g, ok := groups[name]
		if !ok {
			g = &TaskGroupNode{owner: p, name: name}
			groups[name] = g
		}
		return g
	}

	inv := p.Invocations()
	for _, task := range inv.Tasks {
		g := groupFor(task.Group)
		g.members = append(g.members, &ProjectTaskNode{owner: p, task: task})
	}
	for _, selector := range inv.Selectors {
		g := groupFor(selector.Group)
		g.members = append(g.members, &TaskSelectorNode{owner: p, selector: selector})
	}

	names := make([]string, 0, len(groups))
	for name := range groups {
		if name != DefaultGroup {
			names = append(names, name)
		}
	}
	sort.Strings(names)

	result := make([]*TaskGroupNode, 0, len(groups))
	result = append(result, groups[DefaultGroup])
	for _, name := range names {
		result = append(result, groups[name])
	}
	return result
}
