package service

import (
	"fmt"
	"path/filepath"

	"github.com/mattsolo1/grove-tasktree/pkg/search"
)

// SearchTasks builds the current task tree, refreshes the search index from
// it, and runs the query. The index lives next to the workspace registry and
// is rebuilt on every search so results never lag behind the snapshots.
func (s *Service) SearchTasks(query string, opts *search.Options) ([]*search.Entry, error) {
	projection, err := s.BuildTree()
	if err != nil {
		return nil, err
	}

	idx, err := search.NewIndex(filepath.Join(s.Config.DataDir, "search.db"))
	if err != nil {
		return nil, fmt.Errorf("open search index: %w", err)
	}
	defer idx.Close()

	if err := idx.ReindexTree(projection); err != nil {
		return nil, fmt.Errorf("index task tree: %w", err)
	}

	return idx.Search(query, opts)
}
