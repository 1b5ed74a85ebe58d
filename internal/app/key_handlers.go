package app

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/disnet/flint-note-sub007/internal/note"
	"github.com/disnet/flint-note-sub007/internal/popover"
)

// handleKey routes key presses by mode.
func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.mode {
	case modeEdit:
		return m.handleEditKey(msg)
	case modeNewNote:
		return m.handleNewNoteKey(msg)
	default:
		return m.handleBrowseKey(msg)
	}
}

func (m *Model) handleBrowseKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		if m.watcher != nil {
			m.watcher.close()
		}
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp
		return m, nil

	case key.Matches(msg, m.keys.Up):
		m.moveCursor(-1)
		return m, m.previewSelected()

	case key.Matches(msg, m.keys.Down):
		m.moveCursor(1)
		return m, m.previewSelected()

	case key.Matches(msg, m.keys.Expand):
		if item := m.selectedItem(); item != nil && item.isDir {
			m.toggleExpand(true)
			return m, nil
		}
		return m, m.previewSelected()

	case key.Matches(msg, m.keys.Collapse):
		m.toggleExpand(false)
		return m, nil

	case key.Matches(msg, m.keys.Edit):
		if err := m.startEdit(); err != nil {
			m.status = err.Error()
			return m, nil
		}
		m.status = "Editing: " + m.currentFile
		return m, nil

	case key.Matches(msg, m.keys.NewNote):
		m.startNewNote()
		return m, nil

	case key.Matches(msg, m.keys.Refresh):
		m.refreshTree()
		m.status = "Refreshed"
		return m, nil
	}
	return m, nil
}

// handleNewNoteKey drives the title prompt: enter creates, esc cancels,
// everything else edits the input.
func (m *Model) handleNewNoteKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Confirm):
		return m.saveNewNote()
	case key.Matches(msg, m.keys.Back):
		m.mode = modeBrowse
		m.status = "New note cancelled"
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// previewSelected shows the selected markdown file in the preview pane.
func (m *Model) previewSelected() tea.Cmd {
	item := m.selectedItem()
	if item == nil || item.isDir || !hasSuffixCaseInsensitive(item.path, ".md") {
		return nil
	}
	m.currentFile = item.path
	return m.refreshPreview()
}

func (m *Model) handleEditKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// The open action menu owns the keyboard.
	if m.pop.Mode() == popover.ModeMenu {
		return m.handleMenuKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Back):
		if m.escapePopover() {
			m.status = "Popover closed"
			return m, nil
		}
		if m.overlay != overlayNone {
			m.closeOverlay()
			m.status = "Autocomplete closed"
			return m, nil
		}
		m.exitEdit()
		m.status = "Edit cancelled"
		return m, nil

	case key.Matches(msg, m.keys.Save):
		if err := m.saveEdit(); err != nil {
			m.status = err.Error()
			return m, nil
		}
		m.status = "Saved"
		return m, nil

	case key.Matches(msg, m.keys.LinkMenu):
		m.openLinkMenu()
		return m, nil
	}

	if m.overlay == overlayAutocomplete {
		if model, cmd, handled := m.handleAutocompleteKey(msg); handled {
			return model, cmd
		}
	} else if msg.String() == "enter" {
		// Enter on a link opens it, matching the hint's guidance. Enter
		// anywhere else stays a newline.
		if span, ok := note.SpanAt(m.editorSpans(), m.currentEditorCursorOffset()); ok {
			m.activeSpan = span
			m.hasSpan = true
			m.openActiveLink()
			return m, nil
		}
	}

	before := m.editor.Value()
	var cmd tea.Cmd
	m.editor, cmd = m.editor.Update(msg)

	if m.editor.Value() != before {
		// Content reflow moves every anchor below the edit.
		m.refreshPopoverGeometry()
	}
	m.caretMoved()
	m.updateAutocomplete()
	m.syncPopoverMeasurement()
	return m, cmd
}

// handleMenuKey drives the action menu's keyboard path: arrows move the
// cursor, enter invokes the highlighted control, escape closes without
// firing anything.
func (m *Model) handleMenuKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		m.escapePopover()
		m.status = "Link actions closed"
		return m, nil

	case key.Matches(msg, m.keys.Up):
		m.menuCursor = clamp(m.menuCursor-1, 0, menuRowEdit)
		return m, nil

	case key.Matches(msg, m.keys.Down):
		m.menuCursor = clamp(m.menuCursor+1, 0, menuRowEdit)
		return m, nil

	case key.Matches(msg, m.keys.Confirm):
		m.dispatch.Invoke(controlForRow(m.menuCursor))
		return m, nil
	}
	return m, nil
}

// escapePopover dismisses a visible popover, reporting whether the key was
// consumed. No action callback ever fires on escape.
func (m *Model) escapePopover() bool {
	if !m.pop.Escape() {
		return false
	}
	m.dispatch.Reset()
	m.hasSpan = false
	m.popSize = popover.Size{}
	return true
}
