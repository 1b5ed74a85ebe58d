// controller.go implements the popover interaction state machine.
//
// The machine has three states (ModeNone, ModeHint, ModeMenu) and only four
// kinds of edges:
//
//	None → Hint    pointer or caret enters a link while nothing is open
//	None → Menu    explicit activation intent
//	Hint → None    pointer/caret leaves, Escape, outside click, dismissal
//	Menu → None    Escape, outside click, dismissal
//
// Hint and Menu are never connected directly; activating from the hint first
// dismisses it, so every switch passes through None. Geometry updates while a
// popover is visible re-run placement but never change the mode.
//
// Placement needs the rendered popover's size, which only the host can
// measure. The controller therefore runs a measure-then-place protocol
// guarded by a generation counter (the same staleness discipline the preview
// renderer uses for debounced renders): every transition into a visible mode
// bumps the generation, and CompleteMeasure calls carrying an old generation
// are discarded. Dismissal also bumps the generation, so a popover that was
// closed while a measurement was in flight can never receive a late position
// update.
package popover

// Controller owns the popover visual state for a single editor. It is not
// safe for concurrent use; all calls must come from the UI event loop.
type Controller struct {
	positioner Positioner

	mode      Mode
	anchor    Rect
	hasAnchor bool
	desired   Point

	measureGen int
	measured   Size
	hasMeasure bool
	placed     Point
	hasPlaced  bool

	onChange func(Mode, VisualState)
}

// NewController returns a controller in ModeNone using the given positioner.
func NewController(p Positioner) *Controller {
	return &Controller{positioner: p}
}

// OnChange registers an observer invoked synchronously after every visible
// state change: transitions, geometry updates, and completed placements.
// This is an explicit subscription; the controller has no other way of
// pushing state at the host.
func (c *Controller) OnChange(fn func(Mode, VisualState)) {
	c.onChange = fn
}

// PointerEnter reports the pointer settling on a wikilink span. It opens the
// navigation hint only when no popover is currently visible: an open action
// menu (or an already-showing hint) blocks it. Returns true when the hint
// was opened.
func (c *Controller) PointerEnter(anchor *Rect, desired Point) bool {
	return c.enter(anchor, desired)
}

// FocusEnter reports the caret moving into a wikilink span. Identical
// semantics to PointerEnter.
func (c *Controller) FocusEnter(anchor *Rect, desired Point) bool {
	return c.enter(anchor, desired)
}

func (c *Controller) enter(anchor *Rect, desired Point) bool {
	if c.mode != ModeNone {
		return false
	}
	c.show(ModeHint, anchor, desired)
	return true
}

// Activate opens the action menu. A visible hint is dismissed first so the
// transition passes through None. If the menu is already open, Activate only
// refreshes its geometry; the host is expected to Dismiss first when the
// activation targets a different link.
func (c *Controller) Activate(anchor *Rect, desired Point) {
	switch c.mode {
	case ModeMenu:
		c.UpdateGeometry(anchor, desired)
		return
	case ModeHint:
		c.dismiss()
	}
	c.show(ModeMenu, anchor, desired)
}

// PointerLeave reports the pointer leaving the link span. The hint is
// dismissed unless the pointer moved into the popover itself. An open menu
// is unaffected; it only closes on Escape, outside click, or Dismiss.
func (c *Controller) PointerLeave(intoPopover bool) {
	if c.mode != ModeHint || intoPopover {
		return
	}
	c.dismiss()
}

// FocusLeave reports the caret moving off the link span and dismisses a
// visible hint.
func (c *Controller) FocusLeave() {
	if c.mode == ModeHint {
		c.dismiss()
	}
}

// Escape dismisses whichever popover is visible without firing any action.
// Returns true when a popover was dismissed, so the host knows the key was
// consumed.
func (c *Controller) Escape() bool {
	if c.mode == ModeNone {
		return false
	}
	c.dismiss()
	return true
}

// Dismiss closes any visible popover. Safe to call in ModeNone.
func (c *Controller) Dismiss() {
	if c.mode != ModeNone {
		c.dismiss()
	}
}

// UpdateGeometry refreshes the anchor rectangle and desired coordinates
// after scroll, resize, or content reflow. The mode never changes; placement
// is re-run against the last completed measurement. A pending measurement
// stays valid because the popover content (and therefore its size) is
// unchanged. No-op while nothing is visible.
func (c *Controller) UpdateGeometry(anchor *Rect, desired Point) {
	if c.mode == ModeNone {
		return
	}
	c.setGeometry(anchor, desired)
	c.replace()
	c.notify()
}

// PendingMeasure reports whether the host owes the controller a measurement
// of the rendered popover box, and the generation token to hand back to
// CompleteMeasure.
func (c *Controller) PendingMeasure() (gen int, needed bool) {
	return c.measureGen, c.mode != ModeNone && !c.hasMeasure
}

// CompleteMeasure delivers the measured popover size for the given
// generation and runs placement. Measurements carrying a stale generation
// (the popover was dismissed or re-shown since the measurement began) are
// discarded without touching any state. Returns true when the measurement
// was accepted.
func (c *Controller) CompleteMeasure(gen int, size Size) bool {
	if c.mode == ModeNone || gen != c.measureGen {
		return false
	}
	c.measured = size
	c.hasMeasure = true
	c.replace()
	c.notify()
	return true
}

// Mode returns the current popover mode.
func (c *Controller) Mode() Mode {
	return c.mode
}

// Visual returns the controller-owned visual state: visibility plus the
// requested (pre-placement) anchor point.
func (c *Controller) Visual() VisualState {
	return VisualState{Visible: c.mode != ModeNone, X: c.desired.X, Y: c.desired.Y}
}

// Placed returns the collision-resolved position. ok is false until a
// measurement has completed for the current popover; the host renders at the
// requested coordinates in the meantime.
func (c *Controller) Placed() (Point, bool) {
	if !c.hasPlaced {
		return Point{}, false
	}
	return c.placed, true
}

// Anchor returns the anchor rectangle the visible popover decorates.
func (c *Controller) Anchor() (Rect, bool) {
	if c.mode == ModeNone || !c.hasAnchor {
		return Rect{}, false
	}
	return c.anchor, true
}

func (c *Controller) show(mode Mode, anchor *Rect, desired Point) {
	c.mode = mode
	c.setGeometry(anchor, desired)
	c.measureGen++
	c.hasMeasure = false
	c.hasPlaced = false
	c.notify()
}

func (c *Controller) dismiss() {
	c.mode = ModeNone
	c.hasAnchor = false
	c.hasMeasure = false
	c.hasPlaced = false
	// Invalidate any in-flight measurement so it cannot reposition a
	// popover that is no longer visible.
	c.measureGen++
	c.notify()
}

func (c *Controller) setGeometry(anchor *Rect, desired Point) {
	if anchor != nil {
		c.anchor = *anchor
		c.hasAnchor = true
	} else {
		c.hasAnchor = false
	}
	c.desired = desired
}

func (c *Controller) replace() {
	if !c.hasMeasure {
		c.hasPlaced = false
		return
	}
	var anchor *Rect
	if c.hasAnchor {
		anchor = &c.anchor
	}
	c.placed = c.positioner.Place(c.desired, anchor, c.measured)
	c.hasPlaced = true
}

func (c *Controller) notify() {
	if c.onChange != nil {
		c.onChange(c.mode, c.Visual())
	}
}
