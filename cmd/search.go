package cmd

import (
	"context"
	"fmt"
	"strings"

	grovelogging "github.com/mattsolo1/grove-core/logging"
	"github.com/spf13/cobra"

	"github.com/mattsolo1/grove-tasktree/pkg/search"
	"github.com/mattsolo1/grove-tasktree/pkg/service"
)

var searchUlog = grovelogging.NewUnifiedLogger("grove-tasktree.cmd.search")

func NewSearchCmd(svc **service.Service) *cobra.Command {
	var (
		searchProject string
		searchGroup   string
		searchLimit   int
	)

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search tasks and task selectors",
		Long: `Search task names and descriptions across every registered build.

Examples:
  gtt search "assemble"              # full-text search over all projects
  gtt search "test" --group verification
  gtt search "jar" --project :lib    # restrict to one project path`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			s := *svc

			query := strings.Join(args, " ")

			results, err := s.SearchTasks(query, &search.Options{
				ProjectPath: searchProject,
				Group:       searchGroup,
				Limit:       searchLimit,
			})
			if err != nil {
				return err
			}

			if len(results) == 0 {
				searchUlog.Info("No results found").
					Field("query", query).
					Pretty("No results found").
					PrettyOnly().
					Log(ctx)
				return nil
			}

			searchUlog.Info("Search results").
				Field("query", query).
				Field("result_count", len(results)).
				Pretty(fmt.Sprintf("Found %d results:\n", len(results))).
				PrettyOnly().
				Log(ctx)

			for i, entry := range results {
				var pretty strings.Builder
				fmt.Fprintf(&pretty, "%d. %s", i+1, entry.Name)
				if entry.Kind == "selector" {
					pretty.WriteString(" (selector)")
				}
				fmt.Fprintf(&pretty, "\n   %s [%s]", entry.ProjectName, entry.ProjectPath)
				if entry.Group != "" {
					fmt.Fprintf(&pretty, "\n   Group: %s", entry.Group)
				}
				if entry.Description != "" {
					fmt.Fprintf(&pretty, "\n   %s", entry.Description)
				}
				pretty.WriteString("\n")

				searchUlog.Info("Search result").
					Field("query", query).
					Field("result_index", i+1).
					Field("name", entry.Name).
					Field("kind", entry.Kind).
					Field("project", entry.ProjectPath).
					Field("group", entry.Group).
					Pretty(pretty.String()).
					PrettyOnly().
					Log(ctx)
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&searchProject, "project", "", "Restrict to a project path")
	cmd.Flags().StringVarP(&searchGroup, "group", "g", "", "Restrict to a task group")
	cmd.Flags().IntVar(&searchLimit, "limit", 50, "Maximum results")

	return cmd
}
