package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/mattsolo1/grove-tasktree/pkg/service"
	"github.com/mattsolo1/grove-tasktree/pkg/tree"
)

func NewProjectsCmd(svc **service.Service) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "projects",
		Short: "List the flattened projects of every registered build",
		RunE: func(cmd *cobra.Command, args []string) error {
			s := *svc

			projection, err := s.BuildTree()
			if err != nil {
				return err
			}

			if asJSON {
				return outputProjectsJSON(projection)
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tPATH\tDIR\tWORKSPACE\tINCLUDED")
			for _, element := range projection.Elements() {
				switch node := element.(type) {
				case *tree.ProjectNode:
					p := node.Project()
					wsName := "-"
					if ws, ok := node.Workspace(); ok {
						wsName = ws.Name
					}
					fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%v\n", p.Name, p.Path, p.Dir, wsName, node.Included())
				case *tree.FaultyProjectNode:
					ws := node.Workspace()
					fmt.Fprintf(w, "%s\t-\t%s\t%s\tfaulty\n", ws.Name, ws.Path, ws.Name)
				}
			}
			return w.Flush()
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Output as JSON")

	return cmd
}

func outputProjectsJSON(projection *tree.Projection) error {
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
		return fmt.Errorf("marshal projects: %w", err)
	}
	fmt.Println(string(data))
	return nil
}
