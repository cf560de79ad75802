package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	grovelogging "github.com/mattsolo1/grove-core/logging"
	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/mattsolo1/grove-tasktree/pkg/service"
	"github.com/mattsolo1/grove-tasktree/pkg/tree"
)

var tasksUlog = grovelogging.NewUnifiedLogger("grove-tasktree.cmd.tasks")

func NewTasksCmd(svc **service.Service) *cobra.Command {
	var (
		grouped bool
		flat    bool
		asJSON  bool
	)

	cmd := &cobra.Command{
		Use:   "tasks",
		Short: "Show the task tree of every registered build",
		Long: `Show the projects of every registered build together with their tasks
and task selectors.

Examples:
  gtt tasks                # flat task lists per project
  gtt tasks --grouped      # tasks bucketed by group name
  gtt tasks --json         # machine-readable output`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			s := *svc

			if grouped {
				s.View().SetGroupTasks(true)
			}
			if flat {
				s.View().SetGroupTasks(false)
			}

			projection, err := s.BuildTree()
			if err != nil {
				return err
			}

			if asJSON {
				return outputTasksJSON(projection)
			}

			out := renderTaskTree(projection)
			if out == "" {
				tasksUlog.Info("No projects found").
					Pretty("No build projects found. Register a workspace with 'gtt workspace add' or pass --snapshot.").
					PrettyOnly().
					Log(ctx)
				return nil
			}

			tasksUlog.Info("Task tree").
				Pretty(out).
				PrettyOnly().
				Log(ctx)
			return nil
		},
	}

	cmd.Flags().BoolVar(&grouped, "grouped", false, "Bucket tasks by group name")
	cmd.Flags().BoolVar(&flat, "flat", false, "Show a flat task list per project (overrides config)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output as JSON")

	return cmd
}

func renderTaskTree(projection *tree.Projection) string {
	var b strings.Builder
	titler := cases.Title(language.English)

	for _, element := range projection.Elements() {
		switch node := element.(type) {
		case *tree.ProjectNode:
			p := node.Project()
			depth := 0
			for parent := node.Parent(); parent != nil; parent = parent.Parent() {
				depth++
			}
			indent := strings.Repeat("  ", depth)

			marker := ""
			if node.Included() {
				marker = " (included build)"
			}
			fmt.Fprintf(&b, "%s%s [%s]%s\n", indent, p.Name, p.Path, marker)

			for _, child := range projection.Children(node) {
				switch child := child.(type) {
				case *tree.TaskGroupNode:
					fmt.Fprintf(&b, "%s  %s\n", indent, titler.String(child.Name()))
					for _, member := range child.TaskNodes() {
						fmt.Fprintf(&b, "%s    %s\n", indent, taskLine(member))
					}
				case tree.TaskNode:
					fmt.Fprintf(&b, "%s  %s\n", indent, taskLine(child))
				}
			}
		case *tree.FaultyProjectNode:
			fmt.Fprintf(&b, "%s (unavailable)\n", node.Workspace().Name)
		}
	}

	return strings.TrimRight(b.String(), "\n")
}

func taskLine(node tree.TaskNode) string {
	switch node := node.(type) {
	case *tree.ProjectTaskNode:
		task := node.Task()
		if task.Description != "" {
			return fmt.Sprintf("%s - %s", task.Name, task.Description)
		}
		return task.Name
	case *tree.TaskSelectorNode:
		selector := node.Selector()
		suffix := fmt.Sprintf(" (selects %d)", len(selector.TaskPaths()))
		if selector.Description != "" {
			return fmt.Sprintf("%s - %s%s", selector.Name, selector.Description, suffix)
		}
		return selector.Name + suffix
	default:
		return ""
	}
}

type jsonTask struct {
	Name        string   `json:"name"`
	Path        string   `json:"path,omitempty"`
	Description string   `json:"description,omitempty"`
	Group       string   `json:"group,omitempty"`
	Selector    bool     `json:"selector,omitempty"`
	Resolves    []string `json:"resolves,omitempty"`
}

type jsonProject struct {
	Name     string     `json:"name"`
	Path     string     `json:"path"`
	Dir      string     `json:"dir"`
	Parent   string     `json:"parent,omitempty"`
	Included bool       `json:"included"`
	Faulty   bool       `json:"faulty,omitempty"`
	Tasks    []jsonTask `json:"tasks,omitempty"`
}

func outputTasksJSON(projection *tree.Projection) error {
	var projects []jsonProject

	for _, element := range projection.Elements() {
		switch node := element.(type) {
		case *tree.ProjectNode:
			p := node.Project()
			jp := jsonProject{
				Name:     p.Name,
				Path:     p.Path,
				Dir:      p.Dir,
				Included: node.Included(),
			}
			if node.Parent() != nil {
				jp.Parent = node.Parent().Project().Path
			}
			for _, task := range tree.TaskNodes(node) {
				switch task := task.(type) {
				case *tree.ProjectTaskNode:
					t := task.Task()
					jp.Tasks = append(jp.Tasks, jsonTask{
						Name: t.Name, Path: t.Path, Description: t.Description, Group: t.Group,
					})
				case *tree.TaskSelectorNode:
					sel := task.Selector()
					jp.Tasks = append(jp.Tasks, jsonTask{
						Name: sel.Name, Description: sel.Description, Group: sel.Group,
						Selector: true, Resolves: sel.TaskPaths(),
					})
				}
			}
			projects = append(projects, jp)
		case *tree.FaultyProjectNode:
			projects = append(projects, jsonProject{
				Name:   node.Workspace().Name,
				Dir:    node.Workspace().Path,
				Faulty: true,
			})
		}
	}

	data, err := json.MarshalIndent(projects, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal task tree: %w", err)
	}
	fmt.Println(string(data))
	return nil
}
