package service

// View owns the "group tasks" presentation flag. The tree projection reads
// the flag fresh on every Children call, so toggling it takes effect on the
// next navigation without a rebuild.
type View struct {
	groupTasks bool
}

// GroupTasks reports whether tasks are bucketed by group name.
func (v *View) GroupTasks() bool {
	return v.groupTasks
}

// SetGroupTasks sets the grouping flag.
func (v *View) SetGroupTasks(grouped bool) {
	v.groupTasks = grouped
}

// ToggleGroupTasks flips the grouping flag and returns the new value.
func (v *View) ToggleGroupTasks() bool {
	v.groupTasks = !v.groupTasks
	return v.groupTasks
}
