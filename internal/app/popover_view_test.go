package app

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"

	"github.com/disnet/flint-note-sub007/internal/popover"
)

func TestHintShowsResolvedTitleAndType(t *testing.T) {
	m := newTestModel(t, rocketNotes())
	enterEdit(t, m, "journal.md", 6)
	m.caretMoved()

	hint := m.popoverView()
	if !strings.Contains(hint, "Rocket Plan") {
		t.Fatalf("hint missing title: %q", hint)
	}
	if !strings.Contains(hint, "project") {
		t.Fatalf("hint missing note type: %q", hint)
	}
	if !strings.Contains(hint, "⏎ open") {
		t.Fatalf("hint missing guidance: %q", hint)
	}
}

func TestHintMarksUnresolvedTargets(t *testing.T) {
	m := newTestModel(t, map[string]string{"journal.md": "see [[Missing Note]] now\n"})
	enterEdit(t, m, "journal.md", 6)
	m.caretMoved()

	hint := m.popoverView()
	if !strings.Contains(hint, "unresolved") {
		t.Fatalf("hint should flag unresolved target: %q", hint)
	}
}

func TestMenuHighlightsCursorRow(t *testing.T) {
	m := newTestModel(t, rocketNotes())
	enterEdit(t, m, "journal.md", 6)
	m.openLinkMenu()

	menu := m.popoverView()
	if !strings.Contains(menu, "Open") || !strings.Contains(menu, "Edit display text") {
		t.Fatalf("menu missing rows: %q", menu)
	}
	if !strings.Contains(menu, "▸ Open") {
		t.Fatalf("cursor should start on Open: %q", menu)
	}

	m.menuCursor = menuRowEdit
	menu = m.popoverView()
	if !strings.Contains(menu, "▸ Edit display text") {
		t.Fatalf("cursor should follow selection: %q", menu)
	}
}

func TestMeasuredSizeMatchesRenderedView(t *testing.T) {
	m := newTestModel(t, rocketNotes())
	enterEdit(t, m, "journal.md", 6)
	m.openLinkMenu()

	view := m.popoverView()
	if m.popSize.Width != lipgloss.Width(view) || m.popSize.Height != lipgloss.Height(view) {
		t.Fatalf("measured %+v, rendered %dx%d",
			m.popSize, lipgloss.Width(view), lipgloss.Height(view))
	}
}

func TestMenuControlAt(t *testing.T) {
	m := newTestModel(t, rocketNotes())
	enterEdit(t, m, "journal.md", 6)
	m.openLinkMenu()

	bx, by, bw, bh, ok := m.popoverScreenBox()
	if !ok {
		t.Fatal("expected menu box")
	}
	if bw <= 0 || bh <= 0 {
		t.Fatalf("degenerate menu box %dx%d", bw, bh)
	}
	contentX := bx + menuStyle.GetBorderLeftSize() + 1
	rowY := by + menuStyle.GetBorderTopSize()

	if got := m.menuControlAt(contentX, rowY+menuRowOpen); got != popover.ControlOpen {
		t.Fatalf("row 0 control = %v, want open", got)
	}
	if got := m.menuControlAt(contentX, rowY+menuRowEdit); got != popover.ControlEdit {
		t.Fatalf("row 1 control = %v, want edit", got)
	}
	if got := m.menuControlAt(bx-1, rowY); got != popover.ControlNone {
		t.Fatalf("outside control = %v, want none", got)
	}
	if got := m.menuControlAt(contentX, by+bh); got != popover.ControlNone {
		t.Fatalf("below box control = %v, want none", got)
	}
}

func TestControlForRow(t *testing.T) {
	if controlForRow(menuRowOpen) != popover.ControlOpen {
		t.Fatal("open row mapping")
	}
	if controlForRow(menuRowEdit) != popover.ControlEdit {
		t.Fatal("edit row mapping")
	}
	if controlForRow(7) != popover.ControlNone {
		t.Fatal("unknown row mapping")
	}
}
