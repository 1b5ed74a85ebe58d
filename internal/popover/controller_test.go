package popover

import "testing"

func newTestController() *Controller {
	return NewController(Positioner{})
}

func hintAnchor() Rect {
	return Rect{Top: 10, Bottom: 11, Left: 4, Height: 1}
}

func TestPointerEnterOpensHintFromIdle(t *testing.T) {
	c := newTestController()
	anchor := hintAnchor()

	if !c.PointerEnter(&anchor, Point{X: 4, Y: 12}) {
		t.Fatal("expected hint to open from idle")
	}
	if c.Mode() != ModeHint {
		t.Fatalf("expected ModeHint, got %v", c.Mode())
	}
	vis := c.Visual()
	if !vis.Visible || vis.X != 4 || vis.Y != 12 {
		t.Fatalf("expected visible at (4,12), got %+v", vis)
	}
}

func TestEnterBlockedWhileMenuOpen(t *testing.T) {
	c := newTestController()
	anchor := hintAnchor()
	c.Activate(&anchor, Point{X: 4, Y: 12})

	other := Rect{Top: 20, Bottom: 21, Left: 0, Height: 1}
	if c.PointerEnter(&other, Point{X: 0, Y: 22}) {
		t.Fatal("pointer enter must not open a hint over an open menu")
	}
	if c.FocusEnter(&other, Point{X: 0, Y: 22}) {
		t.Fatal("focus enter must not open a hint over an open menu")
	}
	if c.Mode() != ModeMenu {
		t.Fatalf("expected menu to stay open, got %v", c.Mode())
	}
	if vis := c.Visual(); vis.X != 4 || vis.Y != 12 {
		t.Fatalf("expected menu geometry untouched, got %+v", vis)
	}
}

func TestEnterBlockedWhileHintOpen(t *testing.T) {
	c := newTestController()
	anchor := hintAnchor()
	c.PointerEnter(&anchor, Point{X: 4, Y: 12})

	if c.PointerEnter(&anchor, Point{X: 9, Y: 9}) {
		t.Fatal("expected second enter to be ignored while hint is open")
	}
	if vis := c.Visual(); vis.X != 4 || vis.Y != 12 {
		t.Fatalf("expected original hint geometry kept, got %+v", vis)
	}
}

func TestActivateFromHintPassesThroughNone(t *testing.T) {
	c := newTestController()
	var seen []Mode
	c.OnChange(func(m Mode, _ VisualState) { seen = append(seen, m) })

	anchor := hintAnchor()
	c.PointerEnter(&anchor, Point{X: 4, Y: 12})
	c.Activate(&anchor, Point{X: 4, Y: 12})

	want := []Mode{ModeHint, ModeNone, ModeMenu}
	if len(seen) != len(want) {
		t.Fatalf("expected %d transitions %v, got %v", len(want), want, seen)
	}
	for i := range want {
		if seen[i] != want[i] {
			t.Fatalf("transition %d: expected %v, got %v (full sequence %v)", i, want[i], seen[i], seen)
		}
	}
}

func TestActivateWhileMenuOpenOnlyRefreshesGeometry(t *testing.T) {
	c := newTestController()
	anchor := hintAnchor()
	c.Activate(&anchor, Point{X: 4, Y: 12})
	gen, needed := c.PendingMeasure()
	if !needed {
		t.Fatal("expected fresh menu to need measurement")
	}

	moved := Rect{Top: 30, Bottom: 31, Left: 4, Height: 1}
	c.Activate(&moved, Point{X: 4, Y: 32})

	if c.Mode() != ModeMenu {
		t.Fatalf("expected menu to remain open, got %v", c.Mode())
	}
	if vis := c.Visual(); vis.Y != 32 {
		t.Fatalf("expected refreshed geometry y=32, got %+v", vis)
	}
	if gen2, _ := c.PendingMeasure(); gen2 != gen {
		t.Fatalf("re-activation must not restart measurement: gen %d changed to %d", gen, gen2)
	}
}

func TestPointerLeaveDismissesHint(t *testing.T) {
	c := newTestController()
	anchor := hintAnchor()
	c.PointerEnter(&anchor, Point{X: 4, Y: 12})

	c.PointerLeave(false)
	if c.Mode() != ModeNone {
		t.Fatalf("expected hint dismissed, got %v", c.Mode())
	}
	if vis := c.Visual(); vis.Visible {
		t.Fatalf("expected hidden visual state, got %+v", vis)
	}
}

func TestPointerLeaveIntoPopoverKeepsHint(t *testing.T) {
	c := newTestController()
	anchor := hintAnchor()
	c.PointerEnter(&anchor, Point{X: 4, Y: 12})

	c.PointerLeave(true)
	if c.Mode() != ModeHint {
		t.Fatalf("expected hint kept while pointer is over it, got %v", c.Mode())
	}
}

func TestPointerLeaveDoesNotCloseMenu(t *testing.T) {
	c := newTestController()
	anchor := hintAnchor()
	c.Activate(&anchor, Point{X: 4, Y: 12})

	c.PointerLeave(false)
	c.FocusLeave()
	if c.Mode() != ModeMenu {
		t.Fatalf("expected menu unaffected by hover/caret exit, got %v", c.Mode())
	}
}

func TestFocusLeaveDismissesHint(t *testing.T) {
	c := newTestController()
	anchor := hintAnchor()
	c.FocusEnter(&anchor, Point{X: 4, Y: 12})

	c.FocusLeave()
	if c.Mode() != ModeNone {
		t.Fatalf("expected hint dismissed on caret exit, got %v", c.Mode())
	}
}

func TestEscapeDismissesAndReportsConsumed(t *testing.T) {
	c := newTestController()
	anchor := hintAnchor()

	if c.Escape() {
		t.Fatal("escape with nothing open must not be consumed")
	}

	c.Activate(&anchor, Point{X: 4, Y: 12})
	if !c.Escape() {
		t.Fatal("expected escape to be consumed while menu open")
	}
	if c.Mode() != ModeNone {
		t.Fatalf("expected ModeNone after escape, got %v", c.Mode())
	}
}

func TestUpdateGeometryKeepsModeAndReplaces(t *testing.T) {
	c := newTestController()
	anchor := hintAnchor()
	c.PointerEnter(&anchor, Point{X: 4, Y: 12})

	gen, needed := c.PendingMeasure()
	if !needed {
		t.Fatal("expected pending measurement after show")
	}
	if !c.CompleteMeasure(gen, Size{Width: 30, Height: 3}) {
		t.Fatal("expected current-generation measurement to be accepted")
	}
	placed, ok := c.Placed()
	if !ok {
		t.Fatal("expected placement after measurement")
	}
	if placed.Y != 12 {
		t.Fatalf("expected non-colliding popover kept at y=12, got y=%d", placed.Y)
	}

	// After a scroll the requested row lands inside the anchor band, so the
	// popover flips above. Mode must stay ModeHint throughout.
	scrolled := Rect{Top: 5, Bottom: 6, Left: 4, Height: 1}
	c.UpdateGeometry(&scrolled, Point{X: 4, Y: 5})
	if c.Mode() != ModeHint {
		t.Fatalf("geometry update changed mode to %v", c.Mode())
	}
	placed, ok = c.Placed()
	if !ok {
		t.Fatal("expected placement preserved across geometry update")
	}
	if want := 5 - DefaultGap - 3; placed.Y != want {
		t.Fatalf("expected re-placement at y=%d after scroll, got y=%d", want, placed.Y)
	}
}

func TestUpdateGeometryNoOpWhileHidden(t *testing.T) {
	c := newTestController()
	var calls int
	c.OnChange(func(Mode, VisualState) { calls++ })

	anchor := hintAnchor()
	c.UpdateGeometry(&anchor, Point{X: 1, Y: 2})
	if calls != 0 {
		t.Fatalf("expected no notifications while hidden, got %d", calls)
	}
	if vis := c.Visual(); vis.Visible {
		t.Fatalf("expected controller still hidden, got %+v", vis)
	}
}

func TestStaleMeasurementDiscardedAfterDismiss(t *testing.T) {
	c := newTestController()
	anchor := hintAnchor()
	c.PointerEnter(&anchor, Point{X: 4, Y: 12})
	gen, _ := c.PendingMeasure()

	c.Dismiss()
	if c.CompleteMeasure(gen, Size{Width: 30, Height: 3}) {
		t.Fatal("measurement for a dismissed popover must be discarded")
	}
	if _, ok := c.Placed(); ok {
		t.Fatal("expected no placement after discarded measurement")
	}
}

func TestStaleMeasurementDiscardedAfterReshow(t *testing.T) {
	c := newTestController()
	anchor := hintAnchor()
	c.PointerEnter(&anchor, Point{X: 4, Y: 12})
	staleGen, _ := c.PendingMeasure()

	// Hint closes and a menu opens before the hint's measurement lands.
	c.Dismiss()
	c.Activate(&anchor, Point{X: 4, Y: 12})

	if c.CompleteMeasure(staleGen, Size{Width: 30, Height: 3}) {
		t.Fatal("measurement from a previous popover must be discarded")
	}
	gen, needed := c.PendingMeasure()
	if !needed {
		t.Fatal("expected the live menu to still need measurement")
	}
	if !c.CompleteMeasure(gen, Size{Width: 40, Height: 5}) {
		t.Fatal("expected live-generation measurement to be accepted")
	}
}

func TestMeasurementNotRerequestedAfterGeometryUpdate(t *testing.T) {
	c := newTestController()
	anchor := hintAnchor()
	c.PointerEnter(&anchor, Point{X: 4, Y: 12})
	gen, _ := c.PendingMeasure()
	c.CompleteMeasure(gen, Size{Width: 30, Height: 3})

	moved := Rect{Top: 40, Bottom: 41, Left: 4, Height: 1}
	c.UpdateGeometry(&moved, Point{X: 4, Y: 42})
	if _, needed := c.PendingMeasure(); needed {
		t.Fatal("geometry update must reuse the existing measurement")
	}
}

func TestObserverSeesShowAndDismiss(t *testing.T) {
	c := newTestController()
	var records []VisualState
	c.OnChange(func(_ Mode, v VisualState) { records = append(records, v) })

	anchor := hintAnchor()
	c.PointerEnter(&anchor, Point{X: 4, Y: 12})
	c.Dismiss()

	if len(records) != 2 {
		t.Fatalf("expected 2 notifications, got %d", len(records))
	}
	if !records[0].Visible || records[0].X != 4 || records[0].Y != 12 {
		t.Fatalf("expected first notification visible at (4,12), got %+v", records[0])
	}
	if records[1].Visible {
		t.Fatalf("expected second notification hidden, got %+v", records[1])
	}
}

func TestDismissIdleDoesNotNotify(t *testing.T) {
	c := newTestController()
	var calls int
	c.OnChange(func(Mode, VisualState) { calls++ })

	c.Dismiss()
	if calls != 0 {
		t.Fatalf("expected dismiss on idle controller to be silent, got %d notifications", calls)
	}
}

func TestAnchorAccessor(t *testing.T) {
	c := newTestController()
	if _, ok := c.Anchor(); ok {
		t.Fatal("expected no anchor while hidden")
	}

	anchor := hintAnchor()
	c.PointerEnter(&anchor, Point{X: 4, Y: 12})
	got, ok := c.Anchor()
	if !ok {
		t.Fatal("expected anchor while hint visible")
	}
	if got != anchor {
		t.Fatalf("expected anchor %+v, got %+v", anchor, got)
	}

	c.Dismiss()
	if _, ok := c.Anchor(); ok {
		t.Fatal("expected anchor cleared after dismiss")
	}
}

func TestShowWithoutAnchorPlacesAtDesired(t *testing.T) {
	c := newTestController()
	c.PointerEnter(nil, Point{X: 3, Y: 8})
	gen, _ := c.PendingMeasure()
	c.CompleteMeasure(gen, Size{Width: 10, Height: 2})

	placed, ok := c.Placed()
	if !ok {
		t.Fatal("expected placement without anchor")
	}
	if placed.X != 3 || placed.Y != 8 {
		t.Fatalf("expected anchorless popover at (3,8), got (%d,%d)", placed.X, placed.Y)
	}
}

func TestModeStringNames(t *testing.T) {
	cases := []struct {
		mode Mode
		want string
	}{
		{ModeNone, "none"},
		{ModeHint, "hint"},
		{ModeMenu, "menu"},
		{Mode(42), "unknown"},
	}
	for _, tc := range cases {
		if got := tc.mode.String(); got != tc.want {
			t.Fatalf("Mode(%d).String(): expected %q, got %q", int(tc.mode), tc.want, got)
		}
	}
}
