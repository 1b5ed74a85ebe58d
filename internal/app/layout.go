// layout.go centralizes terminal layout calculations for the two-pane UI.
//
// The UI is a horizontal split: a fixed-width tree pane on the left and a
// flexible content pane on the right showing either the markdown preview or
// the editor. The footer reserves two rows for the status line and key
// hints. All dimensions are gathered into one LayoutDimensions struct so
// they are computed once per event and shared by View, the mouse hit-testing
// code, and the popover anchor math.
package app

const (
	defaultTreeWidth = 30
	treeWidthDivider = 3
	footerRows       = 2
)

// LayoutDimensions holds the calculated layout for the current terminal
// size and mode.
type LayoutDimensions struct {
	LeftWidth      int // width of the tree pane including its frame
	RightWidth     int // remaining width for the content pane
	ContentHeight  int // rows above the footer
	ViewportWidth  int // usable width inside the right pane
	ViewportHeight int // usable height inside the right pane (minus header row)
}

// calculateLayout computes all UI dimensions from the terminal size. The
// tree pane takes the smaller of defaultTreeWidth and a third of the
// terminal so narrow windows still get a usable tree; the right pane fills
// the rest. The right pane's frame differs between preview and edit mode,
// and one row is reserved for the pane header showing the file path.
func (m *Model) calculateLayout() LayoutDimensions {
	leftWidth := min(defaultTreeWidth, m.width/treeWidthDivider)
	rightWidth := max(0, m.width-leftWidth)
	contentHeight := max(0, m.height-footerRows)

	rightPaneStyle := previewPane
	if m.mode == modeEdit {
		rightPaneStyle = editPane
	}

	viewportWidth := max(0, rightWidth-rightPaneStyle.GetHorizontalFrameSize())
	viewportHeight := max(0, contentHeight-rightPaneStyle.GetVerticalFrameSize()-1)

	return LayoutDimensions{
		LeftWidth:      leftWidth,
		RightWidth:     rightWidth,
		ContentHeight:  contentHeight,
		ViewportWidth:  viewportWidth,
		ViewportHeight: viewportHeight,
	}
}

// applyLayout pushes the calculated dimensions into the widgets.
func (m *Model) applyLayout(layout LayoutDimensions) {
	m.viewport.Width = layout.ViewportWidth
	m.viewport.Height = layout.ViewportHeight
	m.editor.SetWidth(layout.ViewportWidth)
	m.editor.SetHeight(layout.ViewportHeight)
}

// editorContentOrigin returns the screen cell of the editor's first content
// cell: the edit pane's frame plus one header row, to the right of the tree.
func (m *Model) editorContentOrigin(layout LayoutDimensions) (x, y int) {
	x = layout.LeftWidth + editPane.GetBorderLeftSize() + editPane.GetPaddingLeft()
	y = editPane.GetBorderTopSize() + editPane.GetPaddingTop() + 1 // +1 for header line
	return x, y
}
