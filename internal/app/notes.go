// notes.go loads and saves the note the user is working on.
package app

import (
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// openNote makes path the current note. In edit mode the content is loaded
// into the editor; in browse mode the preview is refreshed by the caller.
func (m *Model) openNote(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read note: %w", err)
	}
	m.currentFile = path
	m.currentContent = string(data)

	if m.mode == modeEdit {
		m.editor.SetValue(m.currentContent)
		m.editor.Focus()
		m.spansValue = ""
	}
	return nil
}

// startNewNote switches to the title prompt for a fresh note.
func (m *Model) startNewNote() {
	m.mode = modeNewNote
	m.showHelp = false
	m.input.Reset()
	m.input.Placeholder = "Note title"
	m.input.Focus()
	m.status = "New note: type a title, enter to create"
}

// saveNewNote creates the note through the store, so it gets frontmatter
// with a fresh id and lands in the index immediately, then opens it in the
// editor.
func (m *Model) saveNewNote() (tea.Model, tea.Cmd) {
	title := strings.TrimSpace(m.input.Value())
	if title == "" {
		m.status = "Note title is required"
		return m, nil
	}

	target, err := m.store.Create(title, "")
	if err != nil {
		m.status = err.Error()
		return m, nil
	}
	m.refreshTree()

	m.mode = modeEdit
	if err := m.openNote(target.Path); err != nil {
		m.mode = modeBrowse
		m.status = err.Error()
		return m, nil
	}
	m.applyLayout(m.calculateLayout())
	m.status = "Created: " + target.DisplayTitle()
	return m, nil
}

// startEdit switches the selected markdown file into the editor.
func (m *Model) startEdit() error {
	item := m.selectedItem()
	if item == nil || item.isDir {
		return fmt.Errorf("select a note first")
	}
	if !hasSuffixCaseInsensitive(item.path, ".md") {
		return fmt.Errorf("not a markdown note: %s", item.name)
	}
	m.mode = modeEdit
	if err := m.openNote(item.path); err != nil {
		m.mode = modeBrowse
		return err
	}
	m.applyLayout(m.calculateLayout())
	return nil
}

// saveEdit writes the editor content back to the current file and refreshes
// the store entry so link resolution sees the new title immediately.
func (m *Model) saveEdit() error {
	if m.currentFile == "" {
		return fmt.Errorf("no note open")
	}
	content := m.editor.Value()
	if err := os.WriteFile(m.currentFile, []byte(content), 0o644); err != nil {
		return fmt.Errorf("write note: %w", err)
	}
	m.currentContent = content
	m.store.Upsert(m.currentFile)
	delete(m.renderCache, m.currentFile)
	return nil
}

// exitEdit leaves the editor without saving and returns to browse mode.
func (m *Model) exitEdit() {
	m.dismissPopover()
	m.closeOverlay()
	m.mode = modeBrowse
	m.applyLayout(m.calculateLayout())
}
