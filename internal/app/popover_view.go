// popover_view.go renders the two wikilink popovers and hit-tests the
// action menu's rows.
package app

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/disnet/flint-note-sub007/internal/popover"
)

const (
	menuRowOpen = 0
	menuRowEdit = 1
)

// popoverView renders the visible popover's body. The same string is used
// for measurement and for compositing, so the measured size always matches
// what ends up on screen.
func (m *Model) popoverView() string {
	switch m.pop.Mode() {
	case popover.ModeHint:
		return m.renderHintPopover()
	case popover.ModeMenu:
		return m.renderMenuPopover()
	default:
		return ""
	}
}

// renderHintPopover builds the passive navigation hint: the resolved note
// title and type plus key guidance with platform modifier glyphs.
func (m *Model) renderHintPopover() string {
	title := m.activeSpan.Label()
	noteType := ""
	if target, ok := m.store.Resolve(m.activeSpan.Target); ok {
		title = target.DisplayTitle()
		noteType = target.Type
	} else {
		noteType = "unresolved"
	}

	header := hintTitleStyle.Render(truncate(title, 40))
	if noteType != "" {
		header += " " + mutedStyle.Render("("+noteType+")")
	}
	guidance := hintGuidanceStyle.Render("⏎ open · " + m.modifiers.Primary + "+k actions")

	return hintStyle.Render(header + "\n" + guidance)
}

// renderMenuPopover builds the interactive action menu with a selection
// cursor on the current row.
func (m *Model) renderMenuPopover() string {
	rows := []string{"Open", "Edit display text"}
	rendered := make([]string, len(rows))
	width := 0
	for _, row := range rows {
		width = max(width, lipgloss.Width(row)+2)
	}
	for i, row := range rows {
		label := "  " + row
		if i == m.menuCursor {
			label = "▸ " + row
		}
		label += strings.Repeat(" ", max(0, width-lipgloss.Width(label)))
		style := menuRowStyle
		if i == m.menuCursor {
			style = menuRowSelected
		}
		rendered[i] = style.Render(label)
	}
	return menuStyle.Render(strings.Join(rendered, "\n"))
}

// menuControlAt maps a screen cell inside the menu popover to the control
// on that row. Returns ControlNone for the border, padding, and anything
// outside the menu.
func (m *Model) menuControlAt(x, y int) popover.Control {
	if m.pop.Mode() != popover.ModeMenu {
		return popover.ControlNone
	}
	bx, by, bw, _, ok := m.popoverScreenBox()
	if !ok {
		return popover.ControlNone
	}
	left := bx + menuStyle.GetBorderLeftSize()
	right := bx + bw - menuStyle.GetBorderRightSize()
	if x < left || x >= right {
		return popover.ControlNone
	}
	row := y - by - menuStyle.GetBorderTopSize()
	switch row {
	case menuRowOpen:
		return popover.ControlOpen
	case menuRowEdit:
		return popover.ControlEdit
	default:
		return popover.ControlNone
	}
}

// controlForRow maps the keyboard cursor to a dispatcher control.
func controlForRow(row int) popover.Control {
	switch row {
	case menuRowOpen:
		return popover.ControlOpen
	case menuRowEdit:
		return popover.ControlEdit
	default:
		return popover.ControlNone
	}
}
