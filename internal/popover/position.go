package popover

// DefaultGap is the clearance left between the anchor and a popover that had
// to be flipped above it.
const DefaultGap = 4

// Positioner computes the final on-screen position of a popover so that its
// box never vertically covers the anchor rectangle. Horizontal placement is
// left untouched; callers that also want viewport containment must clamp the
// result themselves.
type Positioner struct {
	// Gap is the clearance inserted between anchor and popover when
	// flipping. Zero or negative means DefaultGap.
	Gap int
}

func (p Positioner) gap() int {
	if p.Gap > 0 {
		return p.Gap
	}
	return DefaultGap
}

// Place resolves the popover position for the given desired coordinates.
//
// The popover is assumed to extend downward from desired.Y by size.Height.
// If that box vertically intersects the anchor, the popover is flipped above
// the anchor: its new top is anchor.Top - gap - size.Height. The result may
// be negative; off-screen placement after a flip is the caller's problem,
// this only guarantees the link itself stays visible.
//
// A nil anchor skips collision handling entirely and returns desired
// unchanged. Place is pure and single-shot: re-running it with the same
// inputs yields the same output.
func (p Positioner) Place(desired Point, anchor *Rect, size Size) Point {
	if anchor == nil {
		return desired
	}
	top := desired.Y
	bottom := desired.Y + size.Height
	if top < anchor.Bottom && bottom > anchor.Top {
		desired.Y = anchor.Top - p.gap() - size.Height
	}
	return desired
}
