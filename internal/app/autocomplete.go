// autocomplete.go shows ranked note completions while the user types a
// wikilink target. The popup and the wikilink popovers are mutually
// exclusive: opening one closes the other.
package app

import (
	"strings"
	"unicode/utf8"

	tea "github.com/charmbracelet/bubbletea"
)

const maxAutocompleteRows = 6

// currentWikiPrefix returns the partial link target being typed at the
// caret: the text between an unclosed [[ and the caret, with no ]] or
// newline in between. start is the rune offset of the first prefix rune.
func currentWikiPrefix(value string, caret int) (prefix string, start int, ok bool) {
	runes := []rune(value)
	caret = clamp(caret, 0, len(runes))

	open := -1
	for i := caret - 2; i >= 0; i-- {
		if runes[i] == '\n' {
			return "", 0, false
		}
		if runes[i] == ']' && i+1 < len(runes) && runes[i+1] == ']' {
			return "", 0, false
		}
		if runes[i] == '[' && runes[i+1] == '[' {
			open = i + 2
			break
		}
	}
	if open < 0 || open > caret {
		return "", 0, false
	}
	candidate := string(runes[open:caret])
	if strings.ContainsAny(candidate, "|[]") {
		return "", 0, false
	}
	return candidate, open, true
}

// updateAutocomplete refreshes the popup after an editor change. A live
// prefix opens (or re-ranks) the popup and dismisses any popover; no prefix
// closes it.
func (m *Model) updateAutocomplete() {
	prefix, start, ok := currentWikiPrefix(m.editor.Value(), m.currentEditorCursorOffset())
	if !ok || strings.TrimSpace(prefix) == "" {
		m.closeOverlay()
		return
	}

	matches := m.store.Match(prefix)
	if len(matches) > maxAutocompleteRows {
		matches = matches[:maxAutocompleteRows]
	}
	if len(matches) == 0 {
		m.closeOverlay()
		return
	}

	m.dismissPopover()
	m.acMatches = matches
	m.acStart = start
	m.acCursor = clamp(m.acCursor, 0, len(matches)-1)
	m.overlay = overlayAutocomplete
}

// closeOverlay dismisses the active popup and resets its state.
func (m *Model) closeOverlay() {
	if m.overlay == overlayAutocomplete {
		m.acMatches = nil
		m.acCursor = 0
	}
	m.overlay = overlayNone
}

// handleAutocompleteKey owns the keyboard while the popup is open.
// Navigation and acceptance are consumed; everything else falls through to
// the editor so typing keeps narrowing the matches.
func (m *Model) handleAutocompleteKey(msg tea.KeyMsg) (tea.Model, tea.Cmd, bool) {
	switch msg.String() {
	case "esc":
		m.closeOverlay()
		m.status = "Autocomplete closed"
		return m, nil, true
	case "up", "ctrl+p":
		m.acCursor = clamp(m.acCursor-1, 0, max(0, len(m.acMatches)-1))
		return m, nil, true
	case "down", "ctrl+n":
		m.acCursor = clamp(m.acCursor+1, 0, max(0, len(m.acMatches)-1))
		return m, nil, true
	case "enter", "tab":
		m.acceptAutocomplete()
		return m, nil, true
	}
	return m, nil, false
}

// acceptAutocomplete replaces the typed prefix with the selected note's
// title and closes the link.
func (m *Model) acceptAutocomplete() {
	if m.acCursor >= len(m.acMatches) {
		return
	}
	target := m.acMatches[m.acCursor]
	completion := target.DisplayTitle()

	runes := []rune(m.editor.Value())
	caret := clamp(m.currentEditorCursorOffset(), 0, len(runes))
	start := clamp(m.acStart, 0, caret)

	updated := make([]rune, 0, len(runes)+len(completion)+2)
	updated = append(updated, runes[:start]...)
	updated = append(updated, []rune(completion)...)
	updated = append(updated, ']', ']')
	rest := runes[caret:]
	// Reuse a ]] the user already typed ahead of the caret.
	if len(rest) >= 2 && rest[0] == ']' && rest[1] == ']' {
		rest = rest[2:]
	}
	updated = append(updated, rest...)

	cursor := start + utf8.RuneCountInString(completion) + 2
	m.setEditorValueAndCursorOffset(string(updated), cursor)
	m.closeOverlay()
	m.status = "Linked: " + completion
}

// renderAutocomplete draws the completion popup.
func (m *Model) renderAutocomplete() string {
	rows := make([]string, 0, len(m.acMatches))
	for i, target := range m.acMatches {
		label := truncate(target.DisplayTitle(), 32)
		if target.Type != "" {
			label += " " + mutedStyle.Render("("+target.Type+")")
		}
		if i == m.acCursor {
			label = selectedStyle.Render(label)
		}
		rows = append(rows, label)
	}
	return popupStyle.Render(strings.Join(rows, "\n"))
}

// autocompleteAnchor places the popup just below the caret's link prefix.
func (m *Model) autocompleteAnchor() (x, y int) {
	layout := m.calculateLayout()
	originX, originY := m.editorContentOrigin(layout)
	row, col := m.editorVisualPosition(m.acStart)
	return originX + m.editorGutterWidth() + m.editorCellColumn(m.acStart, col), originY + row + 1
}
