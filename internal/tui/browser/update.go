package browser

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mattsolo1/grove-tasktree/pkg/tree"
)

// treeRebuiltMsg carries the result of a background rebuild.
type treeRebuiltMsg struct {
	projection *tree.Projection
	err        error
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.SetSize(msg.Width, msg.Height)
		return m, nil

	case treeRebuiltMsg:
		if msg.err != nil {
			// keep the previous valid tree, just surface the failure
			m.statusMessage = fmt.Sprintf("Reload failed: %v", msg.err)
			return m, nil
		}
		m.projection = msg.projection
		m.statusMessage = "Build model reloaded"
		m.buildDisplayTree()
		return m, nil

	case tea.KeyMsg:
		if m.help.ShowAll {
			m.help.Toggle()
			return m, nil
		}

		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit

		case key.Matches(msg, m.keys.Help):
			m.help.Toggle()
			return m, nil

		case key.Matches(msg, m.keys.CursorUp):
			m.moveCursor(-1)
			return m, nil

		case key.Matches(msg, m.keys.CursorDown):
			m.moveCursor(1)
			return m, nil

		case key.Matches(msg, m.keys.PageUp):
			m.moveCursor(-m.getViewportHeight())
			return m, nil

		case key.Matches(msg, m.keys.PageDown):
			m.moveCursor(m.getViewportHeight())
			return m, nil

		case key.Matches(msg, m.keys.GoToTop):
			m.cursor = 0
			m.scrollOffset = 0
			return m, nil

		case key.Matches(msg, m.keys.GoToBottom):
			m.cursor = len(m.displayNodes) - 1
			m.clampScroll()
			return m, nil

		case key.Matches(msg, m.keys.ToggleFold):
			m.toggleFold()
			return m, nil

		case key.Matches(msg, m.keys.CollapseAll):
			m.setAllFolds(true)
			return m, nil

		case key.Matches(msg, m.keys.ExpandAll):
			m.setAllFolds(false)
			return m, nil

		case key.Matches(msg, m.keys.ToggleGroup):
			// the projection reads the flag per call; only the visible
			// lines need re-deriving
			m.service.View().ToggleGroupTasks()
			m.buildDisplayTree()
			return m, nil

		case key.Matches(msg, m.keys.Reload):
			m.statusMessage = "Reloading build model..."
			return m, m.reloadCmd()
		}
	}

	return m, nil
}

func (m *Model) moveCursor(delta int) {
	m.cursor += delta
	if m.cursor < 0 {
		m.cursor = 0
	}
	if m.cursor >= len(m.displayNodes) {
		m.cursor = len(m.displayNodes) - 1
	}
	m.clampScroll()
}

func (m *Model) clampScroll() {
	viewport := m.getViewportHeight()
	if m.cursor < m.scrollOffset {
		m.scrollOffset = m.cursor
	}
	if m.cursor >= m.scrollOffset+viewport {
		m.scrollOffset = m.cursor - viewport + 1
	}
	if m.scrollOffset < 0 {
		m.scrollOffset = 0
	}
}

func (m *Model) toggleFold() {
	if m.cursor >= len(m.displayNodes) {
		return
	}
	node := m.displayNodes[m.cursor]
	if !node.isFoldable() {
		return
	}
	id := node.nodeID()
	if m.collapsedNodes[id] {
		delete(m.collapsedNodes, id)
	} else {
		m.collapsedNodes[id] = true
	}
	m.buildDisplayTree()
}

func (m *Model) setAllFolds(collapsed bool) {
	m.collapsedNodes = make(map[string]bool)
	if collapsed {
		for _, element := range m.projection.Elements() {
			if pn, ok := element.(*tree.ProjectNode); ok {
				p := pn.Project()
				m.collapsedNodes["prj:"+p.RootDir+p.Path] = true
			}
		}
	}
	m.buildDisplayTree()
}

func (m Model) reloadCmd() tea.Cmd {
	svc := m.service
	return func() tea.Msg {
		projection, err := svc.BuildTree()
		return treeRebuiltMsg{projection: projection, err: err}
	}
}
