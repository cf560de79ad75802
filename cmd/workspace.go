package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"text/tabwriter"

	grovelogging "github.com/mattsolo1/grove-core/logging"
	"github.com/spf13/cobra"

	"github.com/mattsolo1/grove-tasktree/pkg/service"
	"github.com/mattsolo1/grove-tasktree/pkg/workspace"
)

var workspaceUlog = grovelogging.NewUnifiedLogger("grove-tasktree.cmd.workspace")

func NewWorkspaceCmd(svc **service.Service) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "workspace",
		Short: "Manage workspace entries",
		Long:  `Manage the registry of workspace entries that the task tree reconciles build projects against.`,
	}

	cmd.AddCommand(
		newWorkspaceAddCmd(svc),
		newWorkspaceListCmd(svc),
		newWorkspaceRemoveCmd(svc),
		newWorkspaceCurrentCmd(svc),
	)

	return cmd
}

func newWorkspaceAddCmd(svc **service.Service) *cobra.Command {
	var (
		path    string
		rootDir string
		wsType  string
		marker  bool
	)

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Register a workspace entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			s := *svc

			if path == "" {
				cwd, err := os.Getwd()
				if err != nil {
					return err
				}
				path = cwd
			}
			absPath, err := filepath.Abs(path)
			if err != nil {
				return err
			}

			ws := &workspace.Workspace{
				Name:        args[0],
				Path:        absPath,
				Type:        workspace.Type(wsType),
				RootDir:     rootDir,
				BuildMarker: marker,
			}
			if err := s.Registry().Add(ws); err != nil {
				return fmt.Errorf("add workspace: %w", err)
			}

			workspaceUlog.Success("Workspace registered").
				Field("name", ws.Name).
				Field("path", ws.Path).
				Pretty(fmt.Sprintf("Registered workspace '%s' at %s", ws.Name, ws.Path)).
				PrettyOnly().
				Log(ctx)
			return nil
		},
	}

	cmd.Flags().StringVar(&path, "path", "", "Workspace location (defaults to the current directory)")
	cmd.Flags().StringVar(&rootDir, "root-dir", "", "Configured build root directory (defaults to the workspace path)")
	cmd.Flags().StringVar(&wsType, "type", string(workspace.TypeGitRepo), "Workspace type (git-repo, directory, composite)")
	cmd.Flags().BoolVar(&marker, "build", true, "Mark the entry as carrying the build-system marker")

	return cmd
}

func newWorkspaceListCmd(svc **service.Service) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "list",
		Short:   "List registered workspace entries",
		Aliases: []string{"ls"},
		RunE: func(cmd *cobra.Command, args []string) error {
			s := *svc

			workspaces, err := s.Registry().List()
			if err != nil {
				return fmt.Errorf("list workspaces: %w", err)
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tPATH\tROOT\tBUILD\tTYPE")
			for _, ws := range workspaces {
				fmt.Fprintf(w, "%s\t%s\t%s\t%v\t%s\n", ws.Name, ws.Path, ws.RootDir, ws.BuildMarker, ws.Type)
			}
			return w.Flush()
		},
	}

	return cmd
}

func newWorkspaceRemoveCmd(svc **service.Service) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "remove <name>",
		Short:   "Remove a workspace entry",
		Aliases: []string{"rm"},
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			s := *svc

			if err := s.Registry().Remove(args[0]); err != nil {
				return fmt.Errorf("remove workspace: %w", err)
			}

			workspaceUlog.Success("Workspace removed").
				Field("name", args[0]).
				Pretty(fmt.Sprintf("Removed workspace '%s'", args[0])).
				PrettyOnly().
				Log(ctx)
			return nil
		},
	}

	return cmd
}

func newWorkspaceCurrentCmd(svc **service.Service) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "current",
		Short: "Show the workspace entry containing the current directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			s := *svc

			cwd, err := os.Getwd()
			if err != nil {
				return err
			}
			ws, err := s.Registry().FindByPath(cwd)
			if err != nil {
				return fmt.Errorf("find workspace: %w", err)
			}
			if ws == nil {
				return fmt.Errorf("no registered workspace contains %s", cwd)
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "PROPERTY\tVALUE")
			fmt.Fprintln(w, "--------\t-----")
			fmt.Fprintf(w, "Name\t%s\n", ws.Name)
			fmt.Fprintf(w, "Path\t%s\n", ws.Path)
			fmt.Fprintf(w, "Build Root\t%s\n", ws.RootDir)
			fmt.Fprintf(w, "Build Marker\t%v\n", ws.BuildMarker)
			return w.Flush()
		},
	}

	return cmd
}
