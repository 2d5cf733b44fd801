// Package term is a terminal front end for the sim built on tcell.
package term

import (
	"context"
	"time"

	"github.com/atotto/clipboard"
	"github.com/gdamore/tcell/v2"
	"github.com/sirupsen/logrus"

	"github.com/Garsondee/qix-sim/internal/game"
)

// App owns a tcell screen and one sim.
type App struct {
	screen  tcell.Screen
	sim     *game.Sim
	stepper *game.Stepper
	log     *logrus.Logger

	dir    game.GridPoint
	mode   game.DrawMode
	paused bool
	logged int

	copyFn func(string) error
}

// New wraps an initialised screen. The caller owns screen.Fini.
func New(screen tcell.Screen, sim *game.Sim, logger *logrus.Logger) *App {
	return &App{
		screen:  screen,
		sim:     sim,
		stepper: game.NewStepper(sim.Config().TickSeconds),
		log:     logger,
		copyFn:  clipboard.WriteAll,
	}
}

// Sim returns the running sim; it changes after a restart.
func (a *App) Sim() *game.Sim {
	return a.sim
}

// Run drives the sim until the player quits or ctx is cancelled.
func (a *App) Run(ctx context.Context) error {
	tick := time.Duration(a.sim.Config().TickSeconds * float64(time.Second))
	ticker := time.NewTicker(tick)
	defer ticker.Stop()

	done := make(chan struct{})
	defer close(done)
	events := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := a.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-done:
				return
			}
		}
	}()

	last := time.Now()
	a.draw()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case ev := <-events:
			if !a.handleEvent(ev) {
				return nil
			}
			a.draw()

		case now := <-ticker.C:
			elapsed := now.Sub(last).Seconds()
			last = now
			a.advance(elapsed)
			a.draw()
		}
	}
}

func (a *App) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return a.apply(actionFor(ev.Key(), ev.Rune(), ev.Modifiers()))
	case *tcell.EventResize:
		a.screen.Sync()
	}
	return true
}

// apply updates latched input state. It returns false on quit.
func (a *App) apply(act action) bool {
	switch act.kind {
	case actQuit:
		return false
	case actMove:
		a.dir = act.dir
	case actStop:
		a.dir = game.GridPoint{}
	case actMode:
		a.mode = act.mode
	case actPause:
		a.paused = !a.paused
		a.stepper.Reset()
	case actCopy:
		if err := a.copyFn(game.DebugReport(a.sim)); err != nil {
			a.log.WithError(err).Warn("copy debug report")
		} else {
			a.log.WithField("tick", a.sim.Tick()).Info("debug report copied to clipboard")
		}
	case actRestart:
		if a.sim.World.GameOver {
			a.restart()
		}
	}
	return true
}

func (a *App) input() game.Input {
	return game.Input{DX: a.dir.X, DY: a.dir.Y, Mode: a.mode}
}

// advance runs the fixed-step loop for elapsed seconds of wall time.
func (a *App) advance(elapsed float64) {
	if a.paused {
		return
	}
	a.stepper.Advance(elapsed, func() {
		wasDrawing := a.sim.World.Player.State == game.Drawing
		a.sim.Step(a.input())
		// A closed or lost trail drops the latched mode so the next move
		// into open space needs a fresh z/x.
		if wasDrawing && a.sim.World.Player.State != game.Drawing {
			a.mode = game.DrawNone
		}
	})
	a.flushEvents()
}

func (a *App) restart() {
	sim, err := game.NewSim(a.sim.Config())
	if err != nil {
		a.log.WithError(err).Error("restart")
		return
	}
	a.log.WithField("score", a.sim.World.Score).Info("restarting after game over")
	a.sim = sim
	a.stepper.Reset()
	a.dir = game.GridPoint{}
	a.mode = game.DrawNone
	a.logged = 0
}

func (a *App) flushEvents() {
	entries := a.sim.Log.Entries()
	for _, e := range entries[a.logged:] {
		a.log.WithFields(logrus.Fields{
			"tick":     e.Tick,
			"category": e.Category,
			"event":    e.Key,
			"value":    e.NumVal,
		}).Info(e.Value)
	}
	a.logged = len(entries)
}

func (a *App) status() string {
	w := a.sim.World
	switch {
	case w.GameOver:
		return "GAME OVER (r restart)"
	case w.LevelComplete:
		return "LEVEL COMPLETE!"
	case a.paused:
		return "PAUSED"
	}
	return a.mode.String()
}

func (a *App) draw() {
	a.screen.Clear()
	render(a.screen, a.sim, a.status())
	a.screen.Show()
}
