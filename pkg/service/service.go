package service

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/mattsolo1/grove-tasktree/pkg/model"
	"github.com/mattsolo1/grove-tasktree/pkg/tree"
	"github.com/mattsolo1/grove-tasktree/pkg/workspace"
)

// Service wires the workspace registry, the exported build model snapshots,
// and the tree projection together.
type Service struct {
	registry *workspace.Registry
	view     *View
	log      *logrus.Logger
	Config   *Config
}

// Config holds service configuration
type Config struct {
	DataDir    string
	Snapshot   string // explicit snapshot path; overrides registry discovery
	GroupTasks bool
}

// New creates a new task tree service
func New(config *Config) (*Service, error) {
	registry, err := workspace.NewRegistry(config.DataDir)
	if err != nil {
		return nil, fmt.Errorf("create registry: %w", err)
	}

	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	logger.SetLevel(logrus.WarnLevel)

	return &Service{
		registry: registry,
		view:     &View{groupTasks: config.GroupTasks},
		log:      logger,
		Config:   config,
	}, nil
}

// Registry returns the workspace registry
func (s *Service) Registry() *workspace.Registry {
	return s.registry
}

// View returns the view state owned by this service
func (s *Service) View() *View {
	return s.view
}

// BuildContent assembles the input of one rebuild. With an explicit snapshot
// configured, that file is the whole domain model and a load failure is
// fatal. Otherwise every registered workspace entry carrying the build
// marker contributes: its snapshot is loaded once per distinct build root,
// and an entry whose snapshot cannot be loaded joins the faulty list instead
// of aborting the rebuild of other projects.
func (s *Service) BuildContent() (tree.Content, error) {
	if s.Config.Snapshot != "" {
		roots, err := model.LoadSnapshot(s.Config.Snapshot)
		if err != nil {
			return tree.Content{}, fmt.Errorf("load snapshot: %w", err)
		}
		return tree.Content{Projects: roots}, nil
	}

	workspaces, err := s.registry.List()
	if err != nil {
		return tree.Content{}, fmt.Errorf("list workspaces: %w", err)
	}

	var content tree.Content
	loadedRoots := make(map[string]bool)
	for _, w := range workspaces {
		if !w.BuildMarker {
			continue
		}
		rootDir := filepath.Clean(w.RootDir)
		if loadedRoots[rootDir] {
			continue
		}

		roots, err := model.LoadSnapshot(w.SnapshotPath())
		if err != nil {
			s.log.WithError(err).WithField("workspace", w.Name).
				Warn("could not load build model, marking workspace faulty")
			content.Faulty = append(content.Faulty, w)
			continue
		}
		loadedRoots[rootDir] = true
		content.Projects = append(content.Projects, roots...)
	}

	return content, nil
}

// BuildTree runs one full rebuild and returns a projection over the fresh
// node collection. On MissingInvocationsError the caller should keep its
// previous projection.
func (s *Service) BuildTree() (*tree.Projection, error) {
	content, err := s.BuildContent()
	if err != nil {
		return nil, err
	}

	flattener := tree.NewFlattener(tree.NewMatcher(s.registry), tree.ModelInvocations)
	nodes, err := flattener.Flatten(content)
	if err != nil {
		return nil, fmt.Errorf("build task tree: %w", err)
	}

	return tree.NewProjection(nodes, s.view), nil
}

// Close releases the service's resources
func (s *Service) Close() error {
	return s.registry.Close()
}
