// Package popover implements the presentation logic for wikilink popovers:
// a passive navigation hint shown while the pointer or caret rests on a link,
// and an action menu offering "Open" and "Edit display text".
//
// The package is deliberately host-agnostic. It never touches the terminal,
// the editor widget, or the filesystem; the host supplies screen geometry and
// two action callbacks, and reads back a mode and a placement. Three concerns
// live here:
//
//   - Positioner: anchor-relative placement that never covers the link
//     rectangle it decorates (vertical collision avoidance with a flip above
//     the anchor).
//   - Controller: the interaction state machine deciding which popover, if
//     any, is visible, plus the measure-then-place protocol that keeps
//     placement in sync with the rendered popover box.
//   - Dispatcher: routing of the two user actions back to the host without
//     stealing focus from the editor.
//
// All coordinates are integer screen cells with the origin at the top-left
// and Y growing downward.
package popover

// Rect is the screen-space bounding box of the wikilink span a popover
// decorates. It is a snapshot supplied by the host: the popover never owns or
// refreshes it. Width is not tracked because placement only resolves vertical
// collisions.
type Rect struct {
	Top    int
	Bottom int
	Left   int
	Height int
}

// Point is a screen coordinate pair.
type Point struct {
	X int
	Y int
}

// Size is the measured extent of a rendered popover box.
type Size struct {
	Width  int
	Height int
}

// Mode identifies which popover, if any, is currently visible. The hint and
// the menu are mutually exclusive: there is no direct transition between
// them, every switch passes through ModeNone.
type Mode int

const (
	// ModeNone means no popover is visible.
	ModeNone Mode = iota
	// ModeHint is the passive navigation hint shown on hover or caret focus.
	ModeHint
	// ModeMenu is the interactive action menu (Open / Edit display text).
	ModeMenu
)

func (m Mode) String() string {
	switch m {
	case ModeNone:
		return "none"
	case ModeHint:
		return "hint"
	case ModeMenu:
		return "menu"
	default:
		return "unknown"
	}
}

// VisualState is the controller-owned view of a popover: whether it is
// visible and the anchor point it was requested at. The final rendered
// position may differ once the positioner has run; see Controller.Placed.
type VisualState struct {
	Visible bool
	X       int
	Y       int
}
