package game

import (
	"fmt"
	"math"
)

// TestSim is a headless simulation harness used by tests and the headless
// report. It wraps a Sim with scenario setup options, scripted or autopilot
// input, and invariant checks.
type TestSim struct {
	Sim    *Sim
	World  *World
	SimLog *SimLog
	Pilot  *Autopilot

	cfg     Config
	verbose bool
}

// simOptionKind controls the pass in which an option is applied.
type simOptionKind int

const (
	simOptConfig simOptionKind = iota // grid size, seed, speeds: applied before the world exists
	simOptWorld                       // trails, Qix placement, territory: applied to the built world
)

// SimOption is a builder function applied to a TestSim during construction.
type SimOption struct {
	kind   simOptionKind
	config func(*Config)
	world  func(*TestSim)
}

// WithGrid sets the playfield dimensions in cells.
func WithGrid(w, h int) SimOption {
	return SimOption{kind: simOptConfig, config: func(c *Config) {
		c.GridWidth = w
		c.GridHeight = h
	}}
}

// WithSeed sets the RNG seed for deterministic runs.
func WithSeed(seed int64) SimOption {
	return SimOption{kind: simOptConfig, config: func(c *Config) {
		c.Seed = seed
	}}
}

// WithConfig applies an arbitrary config mutation.
func WithConfig(fn func(*Config)) SimOption {
	return SimOption{kind: simOptConfig, config: fn}
}

// WithVerbose enables per-tick verbose logging.
func WithVerbose(v bool) SimOption {
	return SimOption{kind: simOptWorld, world: func(ts *TestSim) {
		ts.verbose = v
	}}
}

// WithQixAt places Qix i at the centre of cell (x,y) and stops it drifting
// until its first turn.
func WithQixAt(i int, x, y int) SimOption {
	return SimOption{kind: simOptWorld, world: func(ts *TestSim) {
		if i < 0 || i >= len(ts.World.Qix) {
			return
		}
		ts.World.Qix[i].reset(float64(x)+0.5, float64(y)+0.5)
		ts.World.refreshQixPositions()
	}}
}

// WithSparxAt sets Sparx i's arc-length position.
func WithSparxAt(i int, t float64) SimOption {
	return SimOption{kind: simOptWorld, world: func(ts *TestSim) {
		if i < 0 || i >= len(ts.World.Sparx) {
			return
		}
		ts.World.Sparx[i].T = t
	}}
}

// WithPlayerAt moves the player to (x,y) without changing its state.
func WithPlayerAt(x, y int) SimOption {
	return SimOption{kind: simOptWorld, world: func(ts *TestSim) {
		ts.World.Player.GridX = x
		ts.World.Player.GridY = y
		ts.World.Player.DrawOrigin = GridPoint{x, y}
	}}
}

// WithTrail marks cells as part of the active line.
func WithTrail(points ...GridPoint) SimOption {
	return SimOption{kind: simOptWorld, world: func(ts *TestSim) {
		for _, p := range points {
			ts.World.ActiveLine.Set(p.X, p.Y, true)
		}
	}}
}

// WithFilledRect claims and fills the inclusive rectangle as if captured
// with mode.
func WithFilledRect(x0, y0, x1, y1 int, mode DrawMode) SimOption {
	return SimOption{kind: simOptWorld, world: func(ts *TestSim) {
		w := ts.World
		for y := y0; y <= y1; y++ {
			for x := x0; x <= x1; x++ {
				if !w.Claimed.InBounds(x, y) {
					continue
				}
				w.Claimed.Set(x, y, true)
				w.Filled.Set(x, y, true)
				w.FilledMode[w.Filled.Index(x, y)] = uint8(mode)
			}
		}
	}}
}

// WithAutopilot drives the sim from an Autopilot seeded with seed.
func WithAutopilot(seed int64) SimOption {
	return SimOption{kind: simOptWorld, world: func(ts *TestSim) {
		ts.Pilot = NewAutopilot(seed)
	}}
}

// VerticalTrail returns the cells (x, y0..y1) inclusive.
func VerticalTrail(x, y0, y1 int) []GridPoint {
	out := make([]GridPoint, 0, y1-y0+1)
	for y := y0; y <= y1; y++ {
		out = append(out, GridPoint{x, y})
	}
	return out
}

// NewTestSim constructs a TestSim in two ordered passes: config options,
// then world options applied to the freshly built world.
func NewTestSim(opts ...SimOption) (*TestSim, error) {
	cfg := DefaultConfig()
	for _, o := range opts {
		if o.kind == simOptConfig {
			o.config(&cfg)
		}
	}
	sim, err := NewSim(cfg)
	if err != nil {
		return nil, fmt.Errorf("build test sim: %w", err)
	}
	ts := &TestSim{
		Sim:   sim,
		World: sim.World,
		cfg:   cfg,
	}
	for _, o := range opts {
		if o.kind == simOptWorld {
			o.world(ts)
		}
	}
	sim.Log = NewSimLog(ts.verbose)
	ts.SimLog = sim.Log
	return ts, nil
}

// Tick returns the current simulation tick.
func (ts *TestSim) Tick() int {
	return ts.Sim.Tick()
}

// RunTicks advances n ticks with the same input each tick.
func (ts *TestSim) RunTicks(n int, in Input) {
	for i := 0; i < n; i++ {
		ts.Sim.Step(in)
	}
}

// RunScript advances one tick per input.
func (ts *TestSim) RunScript(inputs []Input) {
	for _, in := range inputs {
		ts.Sim.Step(in)
	}
}

// RunPilot advances n ticks with input from the autopilot. It stops early on
// game over and returns the first invariant violation, if any.
func (ts *TestSim) RunPilot(n int) error {
	if ts.Pilot == nil {
		ts.Pilot = NewAutopilot(ts.cfg.Seed)
	}
	for i := 0; i < n; i++ {
		if ts.World.GameOver {
			return nil
		}
		ts.Sim.Step(ts.Pilot.Next(ts.World))
		if err := ts.CheckInvariants(); err != nil {
			return fmt.Errorf("tick %d: %w", ts.Tick(), err)
		}
	}
	return nil
}

// RunUntil advances the simulation up to maxTicks, stopping early if predicate
// returns true. Returns the tick at which the predicate was satisfied, or -1.
func (ts *TestSim) RunUntil(predicate func(*TestSim) bool, in Input, maxTicks int) int {
	for i := 0; i < maxTicks; i++ {
		ts.Sim.Step(in)
		if predicate(ts) {
			return ts.Tick()
		}
	}
	return -1
}

// Report builds the run report for the current state.
func (ts *TestSim) Report() RunReport {
	return BuildRunReport(ts.Sim)
}

// CheckInvariants verifies the world invariants that must hold between ticks:
// the boundary ring is claimed, filled implies claimed, the active line and
// claimed territory are disjoint, and the move accumulator is in [0,1).
func (ts *TestSim) CheckInvariants() error {
	w := ts.World
	for x := 0; x < w.Width; x++ {
		if !w.Claimed.Get(x, 0) || !w.Claimed.Get(x, w.Height-1) {
			return fmt.Errorf("boundary cell in column %d not claimed", x)
		}
	}
	for y := 0; y < w.Height; y++ {
		if !w.Claimed.Get(0, y) || !w.Claimed.Get(w.Width-1, y) {
			return fmt.Errorf("boundary cell in row %d not claimed", y)
		}
	}
	for i := 0; i < w.Claimed.Len(); i++ {
		if w.Filled.At(i) && !w.Claimed.At(i) {
			return fmt.Errorf("cell %d filled but not claimed", i)
		}
		if w.ActiveLine.At(i) && w.Claimed.At(i) {
			return fmt.Errorf("cell (%d,%d) both active and claimed", i%w.Width, i/w.Width)
		}
	}
	acc := w.Player.MoveAccumulator
	if acc < 0 || acc >= 1 || math.IsNaN(acc) {
		return fmt.Errorf("move accumulator %.4f outside [0,1)", acc)
	}
	return nil
}
