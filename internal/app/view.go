package app

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/disnet/flint-note-sub007/internal/popover"
)

// View renders the full screen: the two panes and footer first, then any
// popup composited on top at its resolved position.
func (m *Model) View() string {
	if m.width <= 0 || m.height <= 0 {
		return "Loading..."
	}
	layout := m.calculateLayout()

	body := lipgloss.JoinHorizontal(
		lipgloss.Top,
		m.renderTreePane(layout),
		m.renderRightPane(layout),
	)
	view := body + "\n" + m.renderFooter()

	if m.overlay == overlayAutocomplete {
		x, y := m.autocompleteAnchor()
		view = overlayAt(view, m.renderAutocomplete(), x, y, m.width, m.height)
	}
	if m.pop.Mode() != popover.ModeNone {
		x, y, _, _, ok := m.popoverScreenBox()
		if ok {
			view = overlayAt(view, m.popoverView(), x, y, m.width, m.height)
		}
	}
	return view
}

func (m *Model) renderTreePane(layout LayoutDimensions) string {
	innerWidth := max(0, layout.LeftWidth-paneStyle.GetHorizontalFrameSize())
	innerHeight := max(0, layout.ContentHeight-paneStyle.GetVerticalFrameSize())

	content := titleStyle.Render(truncate("flint", innerWidth))
	if innerHeight > 1 {
		content += "\n" + m.renderTree(innerWidth, innerHeight-1)
	}

	return paneStyle.Render(padBlock(content, innerWidth, innerHeight))
}

func (m *Model) renderRightPane(layout LayoutDimensions) string {
	style := previewPane
	body := m.viewport.View()
	header := "No note selected"
	if m.currentFile != "" {
		header = m.displayRelative(m.currentFile)
	}
	switch m.mode {
	case modeEdit:
		style = editPane
		body = m.editor.View()
		header = "Editing " + header
	case modeNewNote:
		style = editPane
		body = "Create a new note\n\n" + m.input.View()
		header = "New note"
	}

	innerWidth := max(0, layout.RightWidth-style.GetHorizontalFrameSize())
	innerHeight := max(0, layout.ContentHeight-style.GetVerticalFrameSize())

	content := titleStyle.Render(truncate(header, innerWidth))
	if innerHeight > 1 {
		content += "\n" + body
	}

	return style.Render(padBlock(content, innerWidth, innerHeight))
}

func (m *Model) renderFooter() string {
	status := statusStyle.Render(truncate(m.status, m.width))
	hints := m.footerHints()
	return status + "\n" + mutedStyle.Render(truncate(hints, m.width))
}

func (m *Model) footerHints() string {
	var bindings []key.Binding
	switch m.mode {
	case modeEdit:
		bindings = []key.Binding{m.keys.Save, m.keys.LinkMenu, m.keys.Back}
	case modeNewNote:
		bindings = []key.Binding{m.keys.Confirm, m.keys.Back}
	default:
		bindings = []key.Binding{m.keys.Up, m.keys.Down, m.keys.Expand, m.keys.Edit, m.keys.NewNote, m.keys.Refresh, m.keys.Quit}
	}
	if m.showHelp {
		bindings = append(bindings, m.keys.Help)
	}

	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		parts = append(parts, h.Key+" "+h.Desc)
	}
	return strings.Join(parts, " · ")
}

// displayRelative shortens a path to be relative to the notes root.
func (m *Model) displayRelative(path string) string {
	root := m.cfg.NotesDir
	if root != "" && strings.HasPrefix(path, root) {
		rel := strings.TrimPrefix(strings.TrimPrefix(path, root), "/")
		if rel != "" {
			return rel
		}
	}
	return path
}
