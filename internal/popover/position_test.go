package popover

import "testing"

func testAnchor() Rect {
	return Rect{Top: 100, Bottom: 120, Left: 50, Height: 20}
}

func TestPlaceKeepsNonOverlappingPosition(t *testing.T) {
	anchor := testAnchor()
	p := Positioner{}

	got := p.Place(Point{X: 50, Y: 122}, &anchor, Size{Width: 200, Height: 40})
	if got.X != 50 || got.Y != 122 {
		t.Fatalf("expected position unchanged at (50,122), got (%d,%d)", got.X, got.Y)
	}
}

func TestPlaceFlipsAboveOnOverlap(t *testing.T) {
	anchor := testAnchor()
	p := Positioner{}

	// Vertical span 110..150 crosses the anchor's 100..120 band.
	got := p.Place(Point{X: 50, Y: 110}, &anchor, Size{Width: 200, Height: 40})
	if want := 100 - DefaultGap - 40; got.Y != want {
		t.Fatalf("expected flip above anchor to y=%d, got y=%d", want, got.Y)
	}
	if got.X != 50 {
		t.Fatalf("expected x untouched at 50, got %d", got.X)
	}
}

func TestPlaceEdgeTouchingIsNotOverlap(t *testing.T) {
	anchor := testAnchor()
	p := Positioner{}

	// Popover top exactly at anchor bottom.
	got := p.Place(Point{X: 10, Y: anchor.Bottom}, &anchor, Size{Width: 80, Height: 30})
	if got.Y != anchor.Bottom {
		t.Fatalf("expected touching-below position kept at y=%d, got y=%d", anchor.Bottom, got.Y)
	}

	// Popover bottom exactly at anchor top.
	got = p.Place(Point{X: 10, Y: anchor.Top - 30}, &anchor, Size{Width: 80, Height: 30})
	if want := anchor.Top - 30; got.Y != want {
		t.Fatalf("expected touching-above position kept at y=%d, got y=%d", want, got.Y)
	}
}

func TestPlaceNilAnchorPassesThrough(t *testing.T) {
	p := Positioner{}
	got := p.Place(Point{X: 7, Y: 113}, nil, Size{Width: 300, Height: 500})
	if got.X != 7 || got.Y != 113 {
		t.Fatalf("expected desired position unchanged without anchor, got (%d,%d)", got.X, got.Y)
	}
}

func TestPlaceFlipCanLeaveViewport(t *testing.T) {
	anchor := Rect{Top: 10, Bottom: 30, Left: 0, Height: 20}
	p := Positioner{}

	// There is no room above the anchor; the flipped position goes negative
	// and stays negative. Clamping is the host's concern, not the
	// positioner's.
	got := p.Place(Point{X: 0, Y: 20}, &anchor, Size{Width: 100, Height: 40})
	if want := 10 - DefaultGap - 40; got.Y != want {
		t.Fatalf("expected unclamped flip to y=%d, got y=%d", want, got.Y)
	}
}

func TestPlaceIsIdempotent(t *testing.T) {
	anchor := testAnchor()
	p := Positioner{}
	size := Size{Width: 200, Height: 40}

	first := p.Place(Point{X: 50, Y: 110}, &anchor, size)
	second := p.Place(first, &anchor, size)
	if first != second {
		t.Fatalf("expected re-placement to be stable, got %+v then %+v", first, second)
	}
}

func TestPlaceCustomGap(t *testing.T) {
	anchor := testAnchor()
	p := Positioner{Gap: 1}

	got := p.Place(Point{X: 50, Y: 110}, &anchor, Size{Width: 200, Height: 40})
	if want := 100 - 1 - 40; got.Y != want {
		t.Fatalf("expected flip with gap 1 to y=%d, got y=%d", want, got.Y)
	}
}

func TestPlaceZeroGapFallsBackToDefault(t *testing.T) {
	anchor := testAnchor()
	p := Positioner{Gap: 0}

	got := p.Place(Point{X: 50, Y: 110}, &anchor, Size{Width: 200, Height: 40})
	if want := 100 - DefaultGap - 40; got.Y != want {
		t.Fatalf("expected zero gap to fall back to default, want y=%d, got y=%d", want, got.Y)
	}
}

func TestPlaceHorizontalPositionNeverAdjusted(t *testing.T) {
	anchor := testAnchor()
	p := Positioner{}

	// Even a popover far wider than the anchor keeps its requested x; only
	// the vertical axis participates in collision handling.
	got := p.Place(Point{X: -40, Y: 105}, &anchor, Size{Width: 999, Height: 10})
	if got.X != -40 {
		t.Fatalf("expected x=-40 preserved, got %d", got.X)
	}
	if want := 100 - DefaultGap - 10; got.Y != want {
		t.Fatalf("expected flip to y=%d, got y=%d", want, got.Y)
	}
}
