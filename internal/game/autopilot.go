package game

import "math/rand"

// autopilotStallTicks is how long the pilot tolerates no movement before it
// abandons its plan.
const autopilotStallTicks = 90

// pilotLeg is one straight segment of a planned excursion.
type pilotLeg struct {
	dir          GridPoint
	cells        int
	untilClaimed bool
}

// Autopilot is a deterministic scripted input source. It walks the boundary
// and cuts rectangular excursions into unclaimed space: out, across, back.
// Headless runs and soak tests use it in place of a keyboard.
type Autopilot struct {
	rng *rand.Rand

	plan     []pilotLeg
	legStart GridPoint
	mode     DrawMode

	wanderDir  GridPoint
	wanderLeft int

	lastPos GridPoint
	stall   int
}

// NewAutopilot creates a pilot whose choices are fixed by seed.
func NewAutopilot(seed int64) *Autopilot {
	return &Autopilot{
		rng:       rand.New(rand.NewSource(seed)), // #nosec G404 -- scripted input only
		wanderDir: GridPoint{-1, 0},
	}
}

// Next returns the input for the coming tick.
func (a *Autopilot) Next(w *World) Input {
	p := &w.Player
	pos := p.Pos()
	if pos == a.lastPos {
		a.stall++
	} else {
		a.stall = 0
	}
	a.lastPos = pos

	if a.stall > autopilotStallTicks {
		a.stall = 0
		a.plan = nil
		a.wanderDir = cardinals[a.rng.Intn(len(cardinals))]
		a.wanderLeft = 30 + a.rng.Intn(60)
	}

	switch p.State {
	case OnBoundary:
		a.plan = nil
		return a.onBoundary(w)
	case Drawing:
		return a.drawing(w)
	default:
		return Input{}
	}
}

func (a *Autopilot) onBoundary(w *World) Input {
	pos := w.Player.Pos()
	if a.wanderLeft > 0 {
		a.wanderLeft--
		return Input{DX: a.wanderDir.X, DY: a.wanderDir.Y, Mode: DrawNone}
	}

	var open []GridPoint
	for _, d := range cardinals {
		nx, ny := pos.X+d.X, pos.Y+d.Y
		if w.Claimed.InBounds(nx, ny) && !w.Claimed.Get(nx, ny) {
			open = append(open, d)
		}
	}
	if len(open) == 0 {
		a.pickWander(w)
		a.wanderLeft = 20 + a.rng.Intn(60)
		return Input{DX: a.wanderDir.X, DY: a.wanderDir.Y, Mode: DrawNone}
	}

	out := open[a.rng.Intn(len(open))]
	across := GridPoint{out.Y, out.X}
	if a.rng.Intn(2) == 0 {
		across = GridPoint{-across.X, -across.Y}
	}
	depth := 3 + a.rng.Intn(maxInt(1, w.Height/6))
	width := 3 + a.rng.Intn(maxInt(1, w.Width/5))
	a.mode = DrawFast
	if a.rng.Intn(3) == 0 {
		a.mode = DrawSlow
	}
	a.plan = []pilotLeg{
		{dir: out, cells: depth},
		{dir: across, cells: width},
		{dir: GridPoint{-out.X, -out.Y}, untilClaimed: true},
	}
	a.legStart = pos
	return Input{DX: out.X, DY: out.Y, Mode: a.mode}
}

func (a *Autopilot) drawing(w *World) Input {
	pos := w.Player.Pos()
	for len(a.plan) > 0 {
		leg := a.plan[0]
		travelled := absInt(pos.X-a.legStart.X) + absInt(pos.Y-a.legStart.Y)
		nx, ny := pos.X+leg.dir.X, pos.Y+leg.dir.Y
		blocked := trailBlocked(w, nx, ny)
		done := !leg.untilClaimed && travelled >= leg.cells
		if !done && !blocked {
			return Input{DX: leg.dir.X, DY: leg.dir.Y, Mode: a.mode}
		}
		a.plan = a.plan[1:]
		a.legStart = pos
	}

	// Plan exhausted while still drawing: head for the nearest edge that is
	// not back across the trail.
	for _, d := range a.shuffledCardinals() {
		nx, ny := pos.X+d.X, pos.Y+d.Y
		if !trailBlocked(w, nx, ny) {
			a.plan = []pilotLeg{{dir: d, untilClaimed: true}}
			a.legStart = pos
			return Input{DX: d.X, DY: d.Y, Mode: a.mode}
		}
	}
	return Input{Mode: a.mode}
}

// trailBlocked reports whether a drawing player would be turned back at
// (x, y): off the field, on its own trail or on the draw origin.
func trailBlocked(w *World, x, y int) bool {
	if !w.ActiveLine.InBounds(x, y) || w.ActiveLine.Get(x, y) {
		return true
	}
	return (GridPoint{X: x, Y: y}) == w.Player.DrawOrigin
}

// pickWander chooses a boundary direction that stays on claimed cells.
func (a *Autopilot) pickWander(w *World) {
	pos := w.Player.Pos()
	for _, d := range a.shuffledCardinals() {
		nx, ny := pos.X+d.X, pos.Y+d.Y
		if w.Claimed.Get(nx, ny) {
			a.wanderDir = d
			return
		}
	}
}

func (a *Autopilot) shuffledCardinals() []GridPoint {
	dirs := cardinals
	a.rng.Shuffle(len(dirs), func(i, j int) { dirs[i], dirs[j] = dirs[j], dirs[i] })
	return dirs[:]
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
