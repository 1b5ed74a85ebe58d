// linkui.go wires wikilink spans in the editor to the popover controller.
//
// The flow per event: locate the span under the pointer or caret, compute
// its screen-cell anchor rectangle, and feed the controller the matching
// transition. Hover is debounced through hoverTickMsg so dragging the
// pointer across a note does not flash hints. Measurement is synchronous:
// whenever the controller reports a pending measurement, the popover body is
// rendered and measured with lipgloss in the same update turn, so placement
// always reflects the current layout while the controller's generation
// counter still discards measurements for dismissed popovers.
package app

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/disnet/flint-note-sub007/internal/note"
	"github.com/disnet/flint-note-sub007/internal/popover"
)

// hoverTickMsg fires after the hover delay; seq discards stale timers.
type hoverTickMsg struct {
	seq int
}

// editorSpans returns the wikilink spans for the current editor content,
// rescanning only when the content changed.
func (m *Model) editorSpans() []note.Span {
	value := m.editor.Value()
	if value != m.spansValue {
		m.spans = note.Links(value)
		m.spansValue = value
	}
	return m.spans
}

// linkAnchor computes the screen rectangle of a span's first cell row and
// the desired popover point just below it.
func (m *Model) linkAnchor(s note.Span) (popover.Rect, popover.Point) {
	layout := m.calculateLayout()
	originX, originY := m.editorContentOrigin(layout)

	row, col := m.editorVisualPosition(s.Start)
	left := originX + m.editorGutterWidth() + m.editorCellColumn(s.Start, col)
	top := originY + row

	anchor := popover.Rect{Top: top, Bottom: top + 1, Left: left, Height: 1}
	desired := popover.Point{X: left, Y: anchor.Bottom}
	return anchor, desired
}

// pointerMovedTo handles pointer motion inside the edit pane. A motion over
// a link arms the hover timer; motion elsewhere dismisses a visible hint
// unless the pointer moved into the popover itself.
func (m *Model) pointerMovedTo(x, y int) tea.Cmd {
	m.pointerX, m.pointerY = x, y

	offset, ok := m.editorOffsetFromMouse(x, y)
	var span note.Span
	var onLink bool
	if ok {
		span, onLink = note.SpanAt(m.editorSpans(), offset)
	}

	if !onLink {
		m.hoverOffset = -1
		if m.pop.Mode() == popover.ModeHint && m.spanFromHover {
			m.pop.PointerLeave(m.pointInPopover(x, y))
			m.syncPopoverMeasurement()
		}
		return nil
	}

	// Already showing or arming for this link.
	if m.pop.Mode() != popover.ModeNone && m.hasSpan && m.activeSpan.Start == span.Start {
		return nil
	}
	if m.hoverOffset == span.Start {
		return nil
	}
	// Sliding directly from one link onto another: the old hint leaves
	// first, then the new link arms its own timer.
	if m.pop.Mode() == popover.ModeHint && m.spanFromHover {
		m.pop.PointerLeave(false)
		m.syncPopoverMeasurement()
	}
	if m.pop.Mode() != popover.ModeNone || m.overlay != overlayNone {
		return nil
	}

	m.hoverOffset = span.Start
	m.hoverSeq++
	seq := m.hoverSeq
	delay := time.Duration(m.cfg.HoverDelayMs) * time.Millisecond
	if delay <= 0 {
		return func() tea.Msg { return hoverTickMsg{seq: seq} }
	}
	return tea.Tick(delay, func(time.Time) tea.Msg { return hoverTickMsg{seq: seq} })
}

// handleHoverTick opens the navigation hint if the pointer is still resting
// on the link that armed the timer.
func (m *Model) handleHoverTick(msg hoverTickMsg) (tea.Model, tea.Cmd) {
	if msg.seq != m.hoverSeq || m.hoverOffset < 0 || m.mode != modeEdit {
		return m, nil
	}
	offset, ok := m.editorOffsetFromMouse(m.pointerX, m.pointerY)
	if !ok {
		return m, nil
	}
	span, onLink := note.SpanAt(m.editorSpans(), offset)
	if !onLink || span.Start != m.hoverOffset {
		return m, nil
	}

	anchor, desired := m.linkAnchor(span)
	if m.pop.PointerEnter(&anchor, desired) {
		m.activeSpan = span
		m.hasSpan = true
		m.spanFromHover = true
		m.syncPopoverMeasurement()
	}
	return m, nil
}

// caretMoved re-evaluates the caret against link spans after any editor
// change. Entering a span shows the hint; leaving dismisses it. The open
// action menu is never affected by caret movement.
func (m *Model) caretMoved() {
	if m.mode != modeEdit || m.pop.Mode() == popover.ModeMenu {
		return
	}
	offset := m.currentEditorCursorOffset()
	span, onLink := note.SpanAt(m.editorSpans(), offset)

	switch {
	case !onLink:
		if m.pop.Mode() == popover.ModeHint && !m.spanFromHover {
			m.pop.FocusLeave()
			m.syncPopoverMeasurement()
		}
	case m.pop.Mode() == popover.ModeNone && m.overlay == overlayNone:
		anchor, desired := m.linkAnchor(span)
		if m.pop.FocusEnter(&anchor, desired) {
			m.activeSpan = span
			m.hasSpan = true
			m.spanFromHover = false
			m.syncPopoverMeasurement()
		}
	case m.pop.Mode() == popover.ModeHint && m.hasSpan && span.Start != m.activeSpan.Start:
		// Caret jumped to a different link; restart from None.
		m.pop.FocusLeave()
		anchor, desired := m.linkAnchor(span)
		if m.pop.FocusEnter(&anchor, desired) {
			m.activeSpan = span
			m.hasSpan = true
			m.spanFromHover = false
		}
		m.syncPopoverMeasurement()
	}
}

// openLinkMenu shows the action menu for the link under the caret (or the
// already-active span). Any visible hint passes through None first inside
// the controller; the autocomplete popup is closed for mutual exclusion.
func (m *Model) openLinkMenu() {
	span, ok := m.targetSpan()
	if !ok {
		m.status = "Place the caret on a [[wikilink]] first"
		return
	}
	m.closeOverlay()
	m.activeSpan = span
	m.hasSpan = true
	m.menuCursor = 0
	anchor, desired := m.linkAnchor(span)
	m.pop.Activate(&anchor, desired)
	m.syncPopoverMeasurement()
	m.status = "Link actions: ↑/↓ select, enter confirm, esc close"
}

// targetSpan picks the span a link action applies to: caret first, then the
// span an open popover already decorates.
func (m *Model) targetSpan() (note.Span, bool) {
	if span, ok := note.SpanAt(m.editorSpans(), m.currentEditorCursorOffset()); ok {
		return span, true
	}
	if m.pop.Mode() != popover.ModeNone && m.hasSpan {
		return m.activeSpan, true
	}
	return note.Span{}, false
}

// refreshPopoverGeometry re-anchors a visible popover after resize or
// content reflow. The mode is preserved; only placement is re-run. If the
// decorated span no longer exists the popover is dismissed.
func (m *Model) refreshPopoverGeometry() {
	if m.pop.Mode() == popover.ModeNone || !m.hasSpan {
		return
	}
	span, ok := m.findActiveSpan()
	if !ok {
		m.dismissPopover()
		return
	}
	m.activeSpan = span
	anchor, desired := m.linkAnchor(span)
	m.pop.UpdateGeometry(&anchor, desired)
}

// findActiveSpan relocates the active span in the current content: same
// start offset first, then the nearest span with the same target (the span
// may have shifted as text was inserted before it).
func (m *Model) findActiveSpan() (note.Span, bool) {
	spans := m.editorSpans()
	for _, s := range spans {
		if s.Start == m.activeSpan.Start && s.Target == m.activeSpan.Target {
			return s, true
		}
	}
	for _, s := range spans {
		if s.Target == m.activeSpan.Target {
			return s, true
		}
	}
	return note.Span{}, false
}

// syncPopoverMeasurement completes any pending measurement in the same
// update turn: render the popover body, measure it, hand the size back. The
// generation token still protects against a dismissal between the report
// and the completion.
func (m *Model) syncPopoverMeasurement() {
	gen, needed := m.pop.PendingMeasure()
	if !needed {
		return
	}
	content := m.popoverView()
	size := popover.Size{Width: lipgloss.Width(content), Height: lipgloss.Height(content)}
	if m.pop.CompleteMeasure(gen, size) {
		m.popSize = size
	}
}

// popoverScreenBox returns the on-screen rectangle the visible popover
// occupies, using the collision-resolved position once placement has run.
func (m *Model) popoverScreenBox() (x, y, w, h int, ok bool) {
	if m.pop.Mode() == popover.ModeNone {
		return 0, 0, 0, 0, false
	}
	pos, placed := m.pop.Placed()
	if !placed {
		v := m.pop.Visual()
		pos = popover.Point{X: v.X, Y: v.Y}
	}
	size := m.popSize
	if size.Width == 0 && size.Height == 0 {
		content := m.popoverView()
		size = popover.Size{Width: lipgloss.Width(content), Height: lipgloss.Height(content)}
	}
	return pos.X, pos.Y, size.Width, size.Height, true
}

func (m *Model) pointInPopover(x, y int) bool {
	bx, by, bw, bh, ok := m.popoverScreenBox()
	if !ok {
		return false
	}
	return x >= bx && x < bx+bw && y >= by && y < by+bh
}

// dismissPopover closes whichever popover is visible and drops any armed
// menu press so it cannot pair with a later release.
func (m *Model) dismissPopover() {
	m.pop.Dismiss()
	m.dispatch.Reset()
	m.hasSpan = false
	m.popSize = popover.Size{}
}

// openActiveLink resolves the active span's target and opens the note. This
// is the OnOpen callback; the business logic stays on the host side.
func (m *Model) openActiveLink() {
	if !m.hasSpan {
		return
	}
	span := m.activeSpan
	m.dismissPopover()

	target, ok := m.store.Resolve(span.Target)
	if !ok {
		m.status = "Unresolved wiki link: " + span.Label()
		return
	}
	if err := m.openNote(target.Path); err != nil {
		m.log.Warn("open linked note", "path", target.Path, "error", err)
		m.status = "Could not open: " + target.DisplayTitle()
		return
	}
	m.status = "Opened: " + target.DisplayTitle()
}

// editActiveLinkDisplay switches the link to display-text editing: bare
// links gain an explicit |alias first, then the caret lands at the end of
// the display segment.
func (m *Model) editActiveLinkDisplay() {
	if !m.hasSpan {
		return
	}
	span := m.activeSpan
	m.dismissPopover()

	updated, s := note.EnsureAlias(m.editor.Value(), span)
	m.setEditorValueAndCursorOffset(updated, s.DisplayEnd)
	m.status = "Editing display text for [[" + s.Target + "]]"
}
