// editor_mouse.go routes mouse events in edit mode.
//
// Presses inside the action menu are special: they go to the dispatcher on
// pointer-down so the default handling (caret placement, which would pull
// focus out of the link context) is suppressed, and the action itself fires
// on the release that completes the click. Presses anywhere else dismiss a
// visible popover first and then fall through to normal caret placement.
package app

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/disnet/flint-note-sub007/internal/popover"
)

func (m *Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.mode != modeEdit {
		return m, nil
	}
	return m.handleEditMouse(msg)
}

func (m *Model) handleEditMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return m, nil
		}
		return m.handleEditMousePress(msg)

	case tea.MouseActionMotion:
		return m, m.pointerMovedTo(msg.X, msg.Y)

	case tea.MouseActionRelease:
		return m.handleEditMouseRelease(msg)
	}
	return m, nil
}

func (m *Model) handleEditMousePress(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	// Pointer-down on a menu control arms the dispatcher and is swallowed
	// whole: the editor never sees it, so the caret and focus stay put.
	if m.pop.Mode() == popover.ModeMenu {
		if control := m.menuControlAt(msg.X, msg.Y); control != popover.ControlNone {
			m.dispatch.PointerDown(control)
			return m, nil
		}
		if m.pointInPopover(msg.X, msg.Y) {
			// Border or padding; keep the menu open, do nothing.
			return m, nil
		}
		// Click outside dismisses, then falls through to the editor.
		m.dismissPopover()
	} else if m.pop.Mode() == popover.ModeHint && !m.pointInPopover(msg.X, msg.Y) {
		m.dismissPopover()
	}

	offset, ok := m.editorOffsetFromMouse(msg.X, msg.Y)
	if !ok {
		return m, nil
	}
	m.closeOverlay()
	m.setEditorValueAndCursorOffset(m.editor.Value(), offset)
	m.caretMoved()
	m.syncPopoverMeasurement()
	return m, nil
}

func (m *Model) handleEditMouseRelease(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.pop.Mode() == popover.ModeMenu {
		// The release completes the click; the callback fires only when it
		// lands on the control the press armed.
		m.dispatch.PointerUp(m.menuControlAt(msg.X, msg.Y))
		m.syncPopoverMeasurement()
		return m, nil
	}
	m.dispatch.Reset()
	return m, nil
}

// editorOffsetFromMouse maps a screen cell to a rune offset in the editor,
// or reports false when the cell is outside the editable area.
func (m *Model) editorOffsetFromMouse(x, y int) (int, bool) {
	layout := m.calculateLayout()
	originX, originY := m.editorContentOrigin(layout)
	paneEndX := layout.LeftWidth + layout.RightWidth
	if x < originX || x >= paneEndX {
		return 0, false
	}
	if y < originY || y >= originY+layout.ViewportHeight {
		return 0, false
	}

	col := max(0, x-originX-m.editorGutterWidth())
	row := y - originY

	return m.editorOffsetFromVisualPosition(row, col), true
}
