// editor.go converts between the textarea's (row, column) coordinates and
// linear rune offsets into its value.
//
// The textarea addresses its buffer by logical line and soft-wrapped visual
// row, while the wikilink scanner reports spans as rune offsets. Everything
// that hit-tests the caret or pointer against link spans, or places the
// caret inside a link's display segment, goes through the conversions here.
// The math mirrors the widget's own wrapping rule: a logical line of length
// n at width w occupies 1 + n/w visual rows.
package app

import (
	"fmt"
	"unicode/utf8"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// splitEditorLines splits the editor's value into logical lines of runes,
// preserving empty lines.
func splitEditorLines(value string) [][]rune {
	lines := make([][]rune, 1)
	for _, r := range []rune(value) {
		if r == '\n' {
			lines = append(lines, nil)
			continue
		}
		last := len(lines) - 1
		lines[last] = append(lines[last], r)
	}
	return lines
}

// currentEditorCursorOffset returns the caret position as a rune offset.
// The widget reports a (line, column) pair; the offset is the rune length
// of all preceding lines (plus their newlines) plus the column.
func (m *Model) currentEditorCursorOffset() int {
	value := m.editor.Value()
	lines := splitEditorLines(value)
	row := clamp(m.editor.Line(), 0, max(0, len(lines)-1))
	col := clamp(m.editor.LineInfo().CharOffset, 0, len(lines[row]))

	offset := 0
	for i := 0; i < row; i++ {
		offset += len(lines[i]) + 1
	}
	return clamp(offset+col, 0, utf8.RuneCountInString(value))
}

// setEditorValueAndCursorOffset replaces the editor content and walks the
// caret back from the end to the target rune offset. The textarea has no
// direct set-cursor API, so the caret is moved with synthetic left-arrow
// events; O(distance from end), acceptable for explicit user actions.
func (m *Model) setEditorValueAndCursorOffset(value string, cursorOffset int) {
	total := utf8.RuneCountInString(value)
	cursorOffset = clamp(cursorOffset, 0, total)

	m.editor.SetValue(value)
	m.editor.Focus()

	movesLeft := total - cursorOffset
	for i := 0; i < movesLeft; i++ {
		m.editor, _ = m.editor.Update(tea.KeyMsg{Type: tea.KeyLeft})
	}
}

// visualRowsForLine reports how many soft-wrapped rows a logical line of
// lineLen runes occupies at the given width.
func visualRowsForLine(lineLen, width int) int {
	if width <= 0 {
		width = 1
	}
	if lineLen <= 0 {
		return 1
	}
	return 1 + (lineLen / width)
}

// editorOffsetFromVisualPosition maps a visual (row, col) inside the
// editor's content area to a rune offset, accounting for soft wrapping.
func (m *Model) editorOffsetFromVisualPosition(row, col int) int {
	value := m.editor.Value()
	lines := splitEditorLines(value)
	width := max(1, m.editor.Width())
	row = max(0, row)
	col = max(0, col)

	offset := 0
	for i, line := range lines {
		lineLen := len(line)
		visualRows := visualRowsForLine(lineLen, width)
		if row < visualRows {
			lineCol := row*width + col
			lineCol = clamp(lineCol, 0, lineLen)
			return clamp(offset+lineCol, 0, len([]rune(value)))
		}

		row -= visualRows
		offset += lineLen
		if i < len(lines)-1 {
			offset++
		}
	}
	return clamp(offset, 0, len([]rune(value)))
}

// editorVisualPosition is the inverse mapping: rune offset to visual
// (row, col). The column is in runes; callers needing screen cells convert
// it with editorCellColumn.
func (m *Model) editorVisualPosition(offset int) (row, col int) {
	value := m.editor.Value()
	lines := splitEditorLines(value)
	width := max(1, m.editor.Width())
	offset = clamp(offset, 0, utf8.RuneCountInString(value))

	for i, line := range lines {
		lineLen := len(line)
		if offset <= lineLen {
			return row + offset/width, offset % width
		}
		row += visualRowsForLine(lineLen, width)
		offset -= lineLen
		if i < len(lines)-1 {
			offset--
		}
	}
	return row, 0
}

// editorCellColumn converts a rune column within a visual row into a screen
// cell column, accounting for double-width runes in the prefix.
func (m *Model) editorCellColumn(offset, runeCol int) int {
	runes := []rune(m.editor.Value())
	start := clamp(offset-runeCol, 0, len(runes))
	end := clamp(offset, start, len(runes))
	return runewidth.StringWidth(string(runes[start:end]))
}

// editorGutterWidth returns the width of the prompt plus line numbers, the
// horizontal distance from the pane's content origin to column zero of the
// text itself.
func (m *Model) editorGutterWidth() int {
	gutter := lipgloss.Width(m.editor.Prompt)
	if m.editor.ShowLineNumbers {
		gutter += len(fmt.Sprintf("%3v ", max(1, m.editor.LineCount())))
	}
	return gutter
}
