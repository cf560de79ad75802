package tree

import (
	"path/filepath"

	"github.com/mattsolo1/grove-tasktree/pkg/model"
	"github.com/mattsolo1/grove-tasktree/pkg/workspace"
)

// WorkspaceLookup is the slice of the workspace registry the matcher needs:
// resolve a name to at most one workspace entry. Lookup failure means "no
// such entry".
type WorkspaceLookup interface {
	Get(name string) (*workspace.Workspace, error)
}

// Matcher resolves a domain project to a registered workspace entry and
// computes its inclusion flag.
type Matcher struct {
	lookup WorkspaceLookup
}

// NewMatcher creates a matcher over the given workspace lookup.
func NewMatcher(lookup WorkspaceLookup) *Matcher {
	return &Matcher{lookup: lookup}
}

// Match finds the workspace entry corresponding to the given domain project.
// An entry counts as "included" only when it carries the build-system marker
// and its configured build root differs from the model's own root directory:
// that asymmetry distinguishes an externally-included composite-build member
// from the project that itself anchors the build. No entry found yields
// (nil, false), which is expected and common.
func (m *Matcher) Match(p *model.Project) (*workspace.Workspace, bool) {
	ws, err := m.lookup.Get(p.Name)
	if err != nil || ws == nil {
		return nil, false
	}

	if !ws.BuildMarker {
		return ws, false
	}

	included := filepath.Clean(ws.RootDir) != filepath.Clean(p.RootDir)
	return ws, included
}
