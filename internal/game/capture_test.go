package game

import "testing"

// newCaptureWorld builds a 10x8 field with a vertical trail at x=4 splitting
// the interior into a left region of 18 cells and a right region of 24.
func newCaptureWorld(t *testing.T) *World {
	t.Helper()
	ts, err := NewTestSim(
		WithGrid(10, 8),
		WithTrail(VerticalTrail(4, 1, 6)...),
	)
	if err != nil {
		t.Fatalf("NewTestSim: %v", err)
	}
	return ts.World
}

func TestCapture_RegionWithoutQix(t *testing.T) {
	w := newCaptureWorld(t)
	res := CaptureTerritory(w, []GridPoint{{7, 3}}, DrawFast)
	if res.CapturedCells != 18 {
		t.Fatalf("captured=%d, want 18", res.CapturedCells)
	}
	if w.Filled.Count() != 18 {
		t.Fatalf("filled=%d, want 18", w.Filled.Count())
	}
	if !w.IsFilled(1, 1) || !w.IsFilled(3, 6) {
		t.Fatal("left region should be filled")
	}
	if w.IsClaimed(7, 3) {
		t.Fatal("Qix region must stay open")
	}
	// ring (32) + trail (6) + captured (18)
	if w.Claimed.Count() != 56 {
		t.Fatalf("claimed=%d, want 56", w.Claimed.Count())
	}
	if w.ActiveLine.Count() != 0 {
		t.Fatal("active line should be committed")
	}
	if w.IsFilled(4, 3) {
		t.Fatal("committed trail is claimed, not filled")
	}
	if w.FilledModeAt(2, 2) != DrawFast {
		t.Fatalf("mode=%v, want fast", w.FilledModeAt(2, 2))
	}
}

func TestCapture_SlowModeTagsCells(t *testing.T) {
	w := newCaptureWorld(t)
	CaptureTerritory(w, []GridPoint{{7, 3}}, DrawSlow)
	if w.FilledModeAt(1, 1) != DrawSlow {
		t.Fatalf("mode=%v, want slow", w.FilledModeAt(1, 1))
	}
	if w.FilledModeAt(7, 3) != DrawNone {
		t.Fatal("uncaptured cell should have no mode")
	}
}

func TestCapture_QixOnBothSides(t *testing.T) {
	w := newCaptureWorld(t)
	res := CaptureTerritory(w, []GridPoint{{2, 3}, {7, 3}}, DrawFast)
	if res.CapturedCells != 0 {
		t.Fatalf("captured=%d, want 0", res.CapturedCells)
	}
	if !w.IsClaimed(4, 1) || w.ActiveLine.Count() != 0 {
		t.Fatal("trail must be committed even with nothing captured")
	}
}

func TestCapture_QixStandingOnTrail(t *testing.T) {
	w := newCaptureWorld(t)
	// The Qix cell is blocked by the trail, so it seeds no flood and both
	// sides are enclosed.
	res := CaptureTerritory(w, []GridPoint{{4, 3}}, DrawFast)
	if res.CapturedCells != 42 {
		t.Fatalf("captured=%d, want 42", res.CapturedCells)
	}
	if !w.IsFilled(1, 1) || !w.IsFilled(8, 6) {
		t.Fatal("both sides of the trail should be filled")
	}
}

func TestCapture_NoTrailCapturesNothing(t *testing.T) {
	ts, err := NewTestSim(WithGrid(10, 8))
	if err != nil {
		t.Fatalf("NewTestSim: %v", err)
	}
	res := CaptureTerritory(ts.World, ts.World.QixPositions, DrawFast)
	if res.CapturedCells != 0 {
		t.Fatalf("captured=%d, want 0", res.CapturedCells)
	}
}

func TestCapture_SecondCallIsIdempotent(t *testing.T) {
	w := newCaptureWorld(t)
	CaptureTerritory(w, []GridPoint{{7, 3}}, DrawFast)
	res := CaptureTerritory(w, []GridPoint{{7, 3}}, DrawFast)
	if res.CapturedCells != 0 {
		t.Fatalf("second capture=%d, want 0", res.CapturedCells)
	}
	if w.Filled.Count() != 18 {
		t.Fatalf("filled=%d, want 18", w.Filled.Count())
	}
}

func TestCapture_QixOnRingSeedsNothing(t *testing.T) {
	w := newCaptureWorld(t)
	res := CaptureTerritory(w, []GridPoint{{0, 0}, {-3, 20}, {7, 3}}, DrawFast)
	if res.CapturedCells != 18 {
		t.Fatalf("captured=%d, want 18", res.CapturedCells)
	}
}

func TestCapture_NoQixCapturesAllOpen(t *testing.T) {
	w := newCaptureWorld(t)
	res := CaptureTerritory(w, nil, DrawFast)
	if res.CapturedCells != 42 {
		t.Fatalf("captured=%d, want 42", res.CapturedCells)
	}
}
