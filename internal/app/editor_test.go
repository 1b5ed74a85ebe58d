package app

import (
	"testing"
	"unicode/utf8"
)

func TestVisualRowsForLine(t *testing.T) {
	tests := []struct {
		name    string
		lineLen int
		width   int
		want    int
	}{
		{name: "empty line", lineLen: 0, width: 10, want: 1},
		{name: "fits", lineLen: 9, width: 10, want: 1},
		{name: "exact width wraps", lineLen: 10, width: 10, want: 2},
		{name: "two wraps", lineLen: 25, width: 10, want: 3},
		{name: "degenerate width", lineLen: 3, width: 0, want: 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := visualRowsForLine(tt.lineLen, tt.width); got != tt.want {
				t.Fatalf("visualRowsForLine(%d, %d) = %d, want %d", tt.lineLen, tt.width, got, tt.want)
			}
		})
	}
}

func TestOffsetVisualPositionRoundTrip(t *testing.T) {
	m := newTestModel(t, map[string]string{"a.md": ""})
	m.mode = modeEdit
	m.editor.SetWidth(10)
	content := "short\n" +
		"this line is long enough to wrap twice over\n" +
		"tail"
	m.editor.SetValue(content)

	total := utf8.RuneCountInString(content)
	for offset := 0; offset <= total; offset++ {
		row, col := m.editorVisualPosition(offset)
		back := m.editorOffsetFromVisualPosition(row, col)
		if back != offset {
			t.Fatalf("offset %d -> (%d,%d) -> %d", offset, row, col, back)
		}
	}
}

func TestSetEditorValueAndCursorOffset(t *testing.T) {
	m := newTestModel(t, map[string]string{"a.md": ""})
	m.mode = modeEdit
	m.applyLayout(m.calculateLayout())

	content := "alpha\nbeta gamma\ndelta"
	for _, want := range []int{0, 5, 6, 12, utf8.RuneCountInString(content)} {
		m.setEditorValueAndCursorOffset(content, want)
		if got := m.currentEditorCursorOffset(); got != want {
			t.Fatalf("cursor offset = %d, want %d", got, want)
		}
	}
}

func TestSplitEditorLinesPreservesEmpties(t *testing.T) {
	lines := splitEditorLines("a\n\nb\n")
	if len(lines) != 4 {
		t.Fatalf("got %d lines, want 4", len(lines))
	}
	if string(lines[0]) != "a" || len(lines[1]) != 0 || string(lines[2]) != "b" || len(lines[3]) != 0 {
		t.Fatalf("unexpected split: %q", lines)
	}
}
