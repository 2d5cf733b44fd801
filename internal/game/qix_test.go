package game

import (
	"math"
	"math/rand"
	"testing"
)

func TestNormalizeAngle(t *testing.T) {
	cases := []struct{ in, want float64 }{
		{0, 0},
		{math.Pi, math.Pi},
		{-math.Pi, math.Pi},
		{3 * math.Pi / 2, -math.Pi / 2},
		{-3 * math.Pi / 2, math.Pi / 2},
	}
	for _, tc := range cases {
		if got := normalizeAngle(tc.in); math.Abs(got-tc.want) > 1e-9 {
			t.Fatalf("normalizeAngle(%v)=%v, want %v", tc.in, got, tc.want)
		}
	}
}

func newQixWorld(t *testing.T, opts ...SimOption) *World {
	t.Helper()
	base := []SimOption{WithGrid(40, 30)}
	ts, err := NewTestSim(append(base, opts...)...)
	if err != nil {
		t.Fatalf("NewTestSim: %v", err)
	}
	return ts.World
}

func TestQix_SpawnsOnMidline(t *testing.T) {
	cfg := DefaultConfig()
	cfg.GridWidth, cfg.GridHeight = 40, 30
	cfg.QixCount = 3
	w, err := NewWorld(cfg)
	if err != nil {
		t.Fatalf("NewWorld: %v", err)
	}
	want := []GridPoint{{10, 15}, {20, 15}, {30, 15}}
	for i, p := range w.QixPositions {
		if p != want[i] {
			t.Fatalf("qix %d at %v, want %v", i, p, want[i])
		}
	}
}

func TestQix_NeverEntersMarginOrClaimed(t *testing.T) {
	w := newQixWorld(t, WithFilledRect(20, 2, 37, 27, DrawFast))
	rng := rand.New(rand.NewSource(3)) // #nosec G404 -- test determinism
	w.Qix[0].reset(10.5, 15.5)
	w.refreshQixPositions()
	for i := 0; i < 5000; i++ {
		UpdateQix(w, rng, 1.0/60)
		p := w.QixPositions[0]
		if p.X < qixEdgeMargin || p.Y < qixEdgeMargin || p.X >= w.Width-qixEdgeMargin || p.Y >= w.Height-qixEdgeMargin {
			t.Fatalf("tick %d: qix entered the edge margin at %v", i, p)
		}
		if w.IsClaimed(p.X, p.Y) {
			t.Fatalf("tick %d: qix entered claimed cell %v", i, p)
		}
	}
}

func TestQix_RejectedStepKeepsPosition(t *testing.T) {
	w := newQixWorld(t, WithQixAt(0, 2, 15))
	q := &w.Qix[0]
	q.Heading = math.Pi // straight into the left margin
	q.TargetHeading = math.Pi
	rng := rand.New(rand.NewSource(1)) // #nosec G404 -- test determinism
	UpdateQix(w, rng, 0.1)
	if q.X != 2.5 || q.Y != 15.5 {
		t.Fatalf("qix moved to (%v,%v) on a rejected step", q.X, q.Y)
	}
	if q.Heading != q.TargetHeading {
		t.Fatal("rejection should pick a fresh heading and target together")
	}
}

func TestQix_TurnRateIsClamped(t *testing.T) {
	w := newQixWorld(t)
	q := &w.Qix[0]
	q.Heading = 0
	q.TargetHeading = math.Pi / 2
	q.TurnTimer = -100 // keep the target fixed
	rng := rand.New(rand.NewSource(1)) // #nosec G404 -- test determinism
	UpdateQix(w, rng, 0.1)
	want := w.cfg.QixTurnSpeed * 0.1
	if math.Abs(q.Heading-want) > 1e-9 {
		t.Fatalf("heading=%v, want %v", q.Heading, want)
	}
}

func TestQix_LineRingKeepsNewestFirst(t *testing.T) {
	var q Qix
	q.reset(5, 5)
	if len(q.Lines()) != qixLineCount {
		t.Fatalf("lines=%d, want %d", len(q.Lines()), qixLineCount)
	}
	for i := 1; i <= qixLineCount+2; i++ {
		q.pushLine(QixLine{Angle: float64(i), Length: 1})
	}
	lines := q.Lines()
	if lines[0].Angle != float64(qixLineCount+2) {
		t.Fatalf("newest line angle=%v", lines[0].Angle)
	}
	if lines[qixLineCount-1].Angle != 3 {
		t.Fatalf("oldest kept angle=%v, want 3", lines[qixLineCount-1].Angle)
	}
}

func TestQix_Deterministic(t *testing.T) {
	run := func() GridPoint {
		w := newQixWorld(t)
		rng := rand.New(rand.NewSource(42)) // #nosec G404 -- test determinism
		for i := 0; i < 600; i++ {
			UpdateQix(w, rng, 1.0/60)
		}
		return w.QixPositions[0]
	}
	a, b := run(), run()
	if a != b {
		t.Fatalf("same seed diverged: %v vs %v", a, b)
	}
}

func TestQix_SpeedGrowsWithLevel(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.qixSpeed(3) <= cfg.qixSpeed(1) {
		t.Fatalf("level 3 speed %v should exceed level 1 speed %v", cfg.qixSpeed(3), cfg.qixSpeed(1))
	}
}
