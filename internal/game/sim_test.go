package game

import (
	"strings"
	"testing"
)

func mustTestSim(t *testing.T, opts ...SimOption) *TestSim {
	t.Helper()
	ts, err := NewTestSim(opts...)
	if err != nil {
		t.Fatalf("NewTestSim: %v", err)
	}
	return ts
}

// sparxOnSpawn is the arc-length position of (10,11) on a 20x12 ring.
const sparxOnSpawn = 39

func TestSim_SparxKillsPlayerOnBoundary(t *testing.T) {
	ts := mustTestSim(t, WithGrid(20, 12), WithSparxAt(0, sparxOnSpawn))
	if SparxPosition(ts.World, 0) != ts.World.SpawnPoint() {
		t.Fatalf("sparx at %v, expected spawn", SparxPosition(ts.World, 0))
	}
	ts.RunTicks(1, Input{})

	if ts.World.Lives != 2 {
		t.Fatalf("lives=%d, want 2", ts.World.Lives)
	}
	if ts.SimLog.CountCategory(CatDeath, DeathSparx.String()) != 1 {
		t.Fatalf("expected one sparx death\n%s", ts.SimLog.Format())
	}
	if ts.World.Player.Pos() != ts.World.SpawnPoint() || ts.World.Player.State != OnBoundary {
		t.Fatal("player should respawn idle on the boundary")
	}
}

func TestSim_SparxIgnoresDrawingPlayer(t *testing.T) {
	ts := mustTestSim(t, WithGrid(20, 12), WithSparxAt(0, sparxOnSpawn))
	ts.World.Player.State = Drawing
	if cause := CheckCollision(ts.World); cause != DeathNone {
		t.Fatalf("cause=%v, want none", cause)
	}
}

func TestSim_QixContactWhileDrawing(t *testing.T) {
	ts := mustTestSim(t, WithGrid(20, 12), WithPlayerAt(10, 5), WithQixAt(0, 10, 5))
	ts.World.Player.State = Drawing
	if cause := CheckCollision(ts.World); cause != DeathQixContact {
		t.Fatalf("cause=%v, want qix_contact", cause)
	}
}

func TestSim_QixOnTrail(t *testing.T) {
	ts := mustTestSim(t,
		WithGrid(20, 12),
		WithPlayerAt(10, 5),
		WithTrail(VerticalTrail(10, 6, 10)...),
		WithQixAt(0, 10, 8),
	)
	ts.World.Player.State = Drawing
	if cause := CheckCollision(ts.World); cause != DeathQixOnTrail {
		t.Fatalf("cause=%v, want qix_on_trail", cause)
	}

	ts.Sim.loseLife(DeathQixOnTrail)
	if ts.World.ActiveLine.Count() != 0 {
		t.Fatal("death should discard the trail")
	}
	if ts.World.IsClaimed(10, 8) {
		t.Fatal("discarded trail must not be claimed")
	}
}

func TestSim_QixAwayFromTrailIsSafe(t *testing.T) {
	ts := mustTestSim(t,
		WithGrid(20, 12),
		WithPlayerAt(10, 5),
		WithTrail(VerticalTrail(10, 6, 10)...),
		WithQixAt(0, 15, 5),
	)
	ts.World.Player.State = Drawing
	if cause := CheckCollision(ts.World); cause != DeathNone {
		t.Fatalf("cause=%v, want none", cause)
	}
}

func TestSim_GameOverFreezes(t *testing.T) {
	ts := mustTestSim(t,
		WithGrid(20, 12),
		WithConfig(func(c *Config) { c.InitialLives = 1 }),
		WithSparxAt(0, sparxOnSpawn),
	)
	ts.RunTicks(1, Input{})
	if !ts.World.GameOver || ts.World.Lives != 0 {
		t.Fatalf("game_over=%v lives=%d", ts.World.GameOver, ts.World.Lives)
	}
	if !ts.SimLog.HasEntry(CatGame, "over", "final score") {
		t.Fatal("missing game over event")
	}
	ts.RunTicks(10, Input{DX: -1})
	if ts.Tick() != 1 {
		t.Fatalf("tick=%d, game over should stop the clock", ts.Tick())
	}
	if !ts.Sim.Frozen() {
		t.Fatal("sim should report frozen")
	}
}

func TestSim_LevelCompleteBonusAndAdvance(t *testing.T) {
	ts := mustTestSim(t,
		WithGrid(20, 12),
		WithConfig(func(c *Config) { c.CaptureThreshold = 0.5 }),
		WithFilledRect(1, 1, 18, 10, DrawFast),
	)
	ts.RunTicks(1, Input{})

	w := ts.World
	if !w.LevelComplete {
		t.Fatal("expected level complete")
	}
	// 75% claimed, 25 points over the threshold at 100 per percent.
	if w.Score != 2500 {
		t.Fatalf("score=%d, want 2500", w.Score)
	}

	ts.RunTicks(5, Input{DX: -1})
	if w.Score != 2500 || ts.SimLog.CountCategory(CatLevel, "complete") != 1 {
		t.Fatalf("bonus paid more than once: score=%d", w.Score)
	}
	if w.Player.Pos() != w.SpawnPoint() {
		t.Fatal("player moved during the completion freeze")
	}

	tick := ts.RunUntil(func(ts *TestSim) bool { return ts.World.Level == 2 }, Input{}, 200)
	if tick < 0 {
		t.Fatal("level never advanced")
	}
	if tick > 130 {
		t.Fatalf("level advanced at tick %d, expected about 2s of freeze", tick)
	}
	if w.LevelComplete || w.Filled.Count() != 0 || w.Score != 2500 || w.Lives != 3 {
		t.Fatalf("bad level 2 state: complete=%v filled=%d score=%d lives=%d",
			w.LevelComplete, w.Filled.Count(), w.Score, w.Lives)
	}
	if !ts.SimLog.HasEntry(CatLevel, "start", "level 2") {
		t.Fatal("missing level start event")
	}
}

func TestSim_CaptureThroughStep(t *testing.T) {
	ts := mustTestSim(t,
		WithGrid(20, 12),
		WithConfig(func(c *Config) {
			c.TickSeconds = 1.0 / 16
			c.Speeds.Boundary = 16
			c.Speeds.DrawFast = 16
			c.Speeds.Qix = 0.01
			c.SparxCount = 0
		}),
		WithQixAt(0, 15, 6),
	)
	up := Input{DY: -1, Mode: DrawFast}
	tick := ts.RunUntil(func(ts *TestSim) bool {
		return ts.SimLog.CountCategory(CatCapture, "") > 0
	}, up, 30)
	if tick != 11 {
		t.Fatalf("capture at tick %d, want 11\n%s", tick, ts.SimLog.Format())
	}
	if ts.World.Score != 3750 {
		t.Fatalf("score=%d, want 3750", ts.World.Score)
	}
	e, ok := ts.SimLog.LastOf(CatCapture, DrawFast.String())
	if !ok || e.NumVal != 90 || !strings.HasPrefix(e.Value, "fast 90 cells") {
		t.Fatalf("capture entry %+v", e)
	}
	if !ts.SimLog.HasEntry(CatPlayer, "draw_start", "fast from (10,11)") {
		t.Fatal("missing draw start event")
	}
	recent := ts.Sim.Feed.Recent()
	if len(recent) == 0 || recent[len(recent)-1].Category != CatCapture {
		t.Fatalf("feed should end with the capture, got %+v", recent)
	}
}

func TestSim_VerboseLogsPositions(t *testing.T) {
	ts := mustTestSim(t, WithGrid(20, 12), WithVerbose(true))
	ts.RunTicks(3, Input{})
	if n := ts.SimLog.CountCategory(CatPlayer, "position"); n != 3 {
		t.Fatalf("position entries=%d, want 3", n)
	}
	quiet := mustTestSim(t, WithGrid(20, 12))
	quiet.RunTicks(3, Input{})
	if n := quiet.SimLog.CountCategory(CatPlayer, "position"); n != 0 {
		t.Fatalf("non-verbose log recorded %d positions", n)
	}
}

func TestNewSim_RejectsInvalidConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.InitialLives = 0
	if _, err := NewSim(cfg); err == nil {
		t.Fatal("expected error")
	}
}
