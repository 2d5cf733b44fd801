package game

import (
	"fmt"
	"math"
	"math/rand"
)

// DeathCause identifies which collision rule killed the player.
type DeathCause uint8

const (
	DeathNone       DeathCause = iota
	DeathSparx                 // Sparx caught the player on the boundary
	DeathQixContact            // Qix touched the player while drawing
	DeathQixOnTrail            // Qix crossed the uncommitted trail
)

func (c DeathCause) String() string {
	switch c {
	case DeathSparx:
		return "sparx"
	case DeathQixContact:
		return "qix_contact"
	case DeathQixOnTrail:
		return "qix_on_trail"
	default:
		return "none"
	}
}

// Sim is the tick driver. It exclusively owns a World and advances it one
// fixed timestep at a time: player, Qix, Sparx, collisions, level completion.
type Sim struct {
	World *World
	Log   *SimLog
	Feed  *EventFeed

	cfg           Config
	rng           *rand.Rand
	tick          int
	completeTimer float64
}

// NewSim validates cfg and builds a simulation seeded from cfg.Seed.
func NewSim(cfg Config) (*Sim, error) {
	w, err := NewWorld(cfg)
	if err != nil {
		return nil, err
	}
	return &Sim{
		World: w,
		Log:   NewSimLog(false),
		Feed:  NewEventFeed(),
		cfg:   cfg,
		rng:   rand.New(rand.NewSource(cfg.Seed)), // #nosec G404 -- deterministic gameplay RNG
	}, nil
}

// Config returns the simulation configuration.
func (s *Sim) Config() Config {
	return s.cfg
}

// Tick returns the number of ticks stepped so far.
func (s *Sim) Tick() int {
	return s.tick
}

// Frozen reports whether Step currently leaves the entities untouched.
func (s *Sim) Frozen() bool {
	return s.World.LevelComplete || s.World.GameOver
}

// Step advances the simulation by one fixed timestep.
func (s *Sim) Step(in Input) {
	w := s.World
	if w.GameOver {
		return
	}
	s.tick++
	dt := s.cfg.TickSeconds

	if w.LevelComplete {
		s.completeTimer += dt
		if s.completeTimer >= s.cfg.LevelAdvanceDelay {
			s.completeTimer = 0
			w.ResetForLevel(w.Level + 1)
			s.emit(CatLevel, "start", fmt.Sprintf("level %d", w.Level), float64(w.Level))
		}
		return
	}

	// 1. PLAYER: movement, drawing and trail completion.
	res := UpdatePlayer(w, in, dt)
	if res.StartedDraw {
		s.emit(CatPlayer, "draw_start", fmt.Sprintf("%s from (%d,%d)",
			w.Player.Mode, w.Player.DrawOrigin.X, w.Player.DrawOrigin.Y), 0)
	}
	if res.Captured {
		s.emit(CatCapture, res.CaptureMode.String(), fmt.Sprintf("%s %d cells (+%d)",
			res.CaptureMode, res.Capture.CapturedCells, res.Points), float64(res.Capture.CapturedCells))
	}
	s.Log.AddVerbose(s.tick, CatPlayer, "position",
		fmt.Sprintf("(%d,%d) %s", w.Player.GridX, w.Player.GridY, w.Player.State), w.Player.MoveAccumulator)

	// 2. QIX
	UpdateQix(w, s.rng, dt)

	// 3. SPARX
	UpdateSparx(w, dt)

	// 4. COLLISIONS
	if cause := CheckCollision(w); cause != DeathNone {
		s.loseLife(cause)
		if w.GameOver {
			return
		}
	}

	// 5. LEVEL COMPLETION
	s.checkLevelComplete()
}

// CheckCollision returns the rule that kills the player this tick, if any.
func CheckCollision(w *World) DeathCause {
	p := &w.Player
	switch p.State {
	case OnBoundary:
		for i := range w.Sparx {
			if SparxPosition(w, i) == p.Pos() {
				return DeathSparx
			}
		}
	case Drawing:
		for _, q := range w.QixPositions {
			if q == p.Pos() {
				return DeathQixContact
			}
		}
		for _, q := range w.QixPositions {
			if w.ActiveLine.Get(q.X, q.Y) {
				return DeathQixOnTrail
			}
		}
	}
	return DeathNone
}

func (s *Sim) loseLife(cause DeathCause) {
	w := s.World
	w.Lives--
	if w.Lives < 0 {
		w.Lives = 0
	}
	w.ResetActiveLine()
	w.SpawnPlayer()
	s.emit(CatDeath, cause.String(), fmt.Sprintf("%s, %d lives left", cause, w.Lives), float64(w.Lives))

	if w.Lives == 0 {
		w.GameOver = true
		s.emit(CatGame, "over", fmt.Sprintf("final score %d", w.Score), float64(w.Score))
	}
}

func (s *Sim) checkLevelComplete() {
	w := s.World
	if w.LevelComplete {
		return
	}
	fraction := w.ClaimedFraction()
	if fraction < s.cfg.CaptureThreshold {
		return
	}
	bonus := int(math.Floor((fraction - s.cfg.CaptureThreshold) * 100 * s.cfg.Scoring.CompletionBonusPerPercent))
	w.Score += bonus
	w.LevelComplete = true
	s.completeTimer = 0
	s.emit(CatLevel, "complete", fmt.Sprintf("level %d at %.1f%% (+%d bonus)", w.Level, fraction*100, bonus), float64(bonus))
}

func (s *Sim) emit(category, key, value string, num float64) {
	s.Log.Add(s.tick, category, key, value, num)
	s.Feed.Add(s.tick, category, value)
}
