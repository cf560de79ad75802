package browser

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattsolo1/grove-core/tui/theme"

	"github.com/mattsolo1/grove-tasktree/pkg/tree"
)

func (m Model) View() string {
	if m.help.ShowAll {
		return m.help.View()
	}

	header := theme.DefaultTheme.Header.Render("Task Tree Browser")
	if m.service.View().GroupTasks() {
		header += " " + theme.DefaultTheme.Info.Render("[grouped]")
	}

	viewContent := m.renderTree()

	footer := m.help.View()
	if m.statusMessage != "" {
		footer = theme.DefaultTheme.Muted.Render(m.statusMessage) + "\n" + footer
	}

	fullView := lipgloss.JoinVertical(lipgloss.Left,
		header,
		"", // This adds a blank line for spacing
		viewContent,
		"", // Another blank line for spacing
		footer,
	)

	// Add top margin to prevent border cutoff
	return "\n" + fullView
}

func (m Model) renderTree() string {
	if len(m.displayNodes) == 0 {
		return theme.DefaultTheme.Muted.Render("No build projects found. Register a workspace with 'gtt workspace add'.")
	}

	var b strings.Builder

	// Viewport calculation
	viewportHeight := m.getViewportHeight()
	start := m.scrollOffset
	end := m.scrollOffset + viewportHeight
	if end > len(m.displayNodes) {
		end = len(m.displayNodes)
	}

	// Render visible nodes
	for i := start; i < end; i++ {
		node := m.displayNodes[i]
		cursor := "  "
		if i == m.cursor {
			cursor = theme.DefaultTheme.Highlight.Render("▶ ")
		}

		foldIndicator := ""
		if node.isFoldable() {
			if m.collapsedNodes[node.nodeID()] {
				foldIndicator = "▶ "
			} else {
				foldIndicator = "▼ "
			}
		}

		var line string
		switch {
		case node.isProject:
			p := node.project.Project()
			label := p.Name
			if node.project.Included() {
				label += " (included build)"
			}
			line = fmt.Sprintf("%s%s%s%s", cursor, node.prefix, foldIndicator, label)
			if i == m.cursor {
				line = lipgloss.NewStyle().Bold(true).Render(line)
			}
		case node.isFaulty:
			label := node.faulty.Workspace().Name + " (unavailable)"
			line = cursor + theme.DefaultTheme.Muted.Render(label)
		case node.isGroup:
			line = fmt.Sprintf("%s%s%s%s", cursor, node.prefix, foldIndicator, node.group.Name())
			if i == m.cursor {
				line = lipgloss.NewStyle().Bold(true).Render(line)
			}
		case node.isTask:
			line = fmt.Sprintf("%s%s▢ %s", cursor, node.prefix, taskLabel(node.task))
			if i == m.cursor {
				line = theme.DefaultTheme.Selected.Render(line)
			}
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	// Scroll indicator
	if len(m.displayNodes) > viewportHeight {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Faint(true).Render(fmt.Sprintf(" (%d-%d of %d)", start+1, end, len(m.displayNodes))))
	}

	return b.String()
}

func taskLabel(node tree.TaskNode) string {
	switch node := node.(type) {
	case *tree.ProjectTaskNode:
		return node.Task().Name
	case *tree.TaskSelectorNode:
		return node.Selector().Name + " *"
	default:
		return ""
	}
}
