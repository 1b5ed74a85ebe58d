// dispatch.go routes action-menu control activation to host callbacks.
//
// Pointer activation is split across the two halves of a click so the press
// can be swallowed before the host moves focus: PointerDown on a control
// arms it and tells the host to suppress the default press handling (caret
// placement, focus transfer out of the editor), and PointerUp fires the
// callback only when the release lands on the control that was armed. A
// release anywhere else just disarms. Keyboard activation has no press phase
// and goes through Invoke directly.
package popover

// Control identifies an activatable control inside the action menu.
type Control int

const (
	ControlNone Control = iota
	ControlOpen
	ControlEdit
)

func (c Control) String() string {
	switch c {
	case ControlNone:
		return "none"
	case ControlOpen:
		return "open"
	case ControlEdit:
		return "edit"
	default:
		return "unknown"
	}
}

// Actions holds the host callbacks the menu can trigger. Nil callbacks are
// skipped; the click is still consumed.
type Actions struct {
	// OnOpen navigates to the linked note.
	OnOpen func()
	// OnEdit begins editing the link's display text.
	OnEdit func()
}

// Dispatcher turns menu control events into exactly one callback invocation
// per completed activation. Like the controller it is single-goroutine; all
// calls come from the UI event loop.
type Dispatcher struct {
	actions Actions
	armed   Control
}

func NewDispatcher(actions Actions) *Dispatcher {
	return &Dispatcher{actions: actions, armed: ControlNone}
}

// PointerDown arms the pressed control. Returns true when the press hit a
// real control, in which case the host must suppress its default handling
// so editor focus and caret stay where they are.
func (d *Dispatcher) PointerDown(c Control) bool {
	if c == ControlNone {
		d.armed = ControlNone
		return false
	}
	d.armed = c
	return true
}

// PointerUp completes a click. The armed control's callback fires only when
// the release lands on the same control the press armed; any other release
// disarms without firing. Returns true when a callback was dispatched.
func (d *Dispatcher) PointerUp(c Control) bool {
	armed := d.armed
	d.armed = ControlNone
	if c == ControlNone || c != armed {
		return false
	}
	d.fire(c)
	return true
}

// Invoke activates a control directly, for keyboard paths (Enter on a
// focused menu row). Returns true when the control was recognized.
func (d *Dispatcher) Invoke(c Control) bool {
	d.armed = ControlNone
	if c == ControlNone {
		return false
	}
	d.fire(c)
	return true
}

// Reset drops any armed control. The host calls this when the menu closes
// mid-press so the stale press cannot pair with a later release.
func (d *Dispatcher) Reset() {
	d.armed = ControlNone
}

func (d *Dispatcher) fire(c Control) {
	switch c {
	case ControlOpen:
		if d.actions.OnOpen != nil {
			d.actions.OnOpen()
		}
	case ControlEdit:
		if d.actions.OnEdit != nil {
			d.actions.OnEdit()
		}
	}
}
