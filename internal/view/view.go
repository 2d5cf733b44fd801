package view

import (
	"fmt"
	"time"

	"github.com/atotto/clipboard"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/sirupsen/logrus"
	"golang.org/x/image/font/basicfont"

	"github.com/Garsondee/qix-sim/internal/game"
)

// Window layout in pixels.
const (
	hudHeight = 48
	margin    = 12
	feedWidth = 260
)

// View is the Ebiten front end. It reads the keyboard, drives the sim through
// a fixed-step Stepper and renders the world read-only.
type View struct {
	sim     *game.Sim
	stepper *game.Stepper
	log     *logrus.Logger

	scale  int
	width  int
	height int
	face   *text.GoXFace

	// keyDown is ebiten.IsKeyPressed outside tests.
	keyDown  func(ebiten.Key) bool
	prevKeys map[ebiten.Key]bool

	paused     bool
	showHelp   bool
	lastUpdate time.Time
	alpha      float64
	logged     int
}

// New creates a view over sim. scale is the pixel size of one grid cell.
func New(sim *game.Sim, logger *logrus.Logger, scale int) *View {
	if scale < 1 {
		scale = 1
	}
	w := sim.World
	return &View{
		sim:      sim,
		stepper:  game.NewStepper(sim.Config().TickSeconds),
		log:      logger,
		scale:    scale,
		width:    margin + w.Width*scale + margin + feedWidth,
		height:   hudHeight + margin + w.Height*scale + margin,
		face:     text.NewGoXFace(basicfont.Face7x13),
		keyDown:  ebiten.IsKeyPressed,
		prevKeys: make(map[ebiten.Key]bool),
		showHelp: true,
	}
}

// Update implements ebiten.Game.
func (v *View) Update() error {
	if v.pressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	v.handleToggles()

	now := time.Now()
	elapsed := v.sim.Config().TickSeconds
	if !v.lastUpdate.IsZero() {
		elapsed = now.Sub(v.lastUpdate).Seconds()
	}
	v.lastUpdate = now

	if v.paused {
		v.stepper.Reset()
		v.alpha = 0
		return nil
	}
	in := v.readInput()
	v.alpha = v.stepper.Advance(elapsed, func() {
		v.sim.Step(in)
	})
	v.flushEvents()
	return nil
}

// readInput maps held keys to one tick of player intent. Arrows or WASD
// steer (first match wins, so diagonals never reach the sim); Z holds fast
// draw and X holds slow draw.
func (v *View) readInput() game.Input {
	var in game.Input
	switch {
	case v.keyDown(ebiten.KeyArrowUp) || v.keyDown(ebiten.KeyW):
		in.DY = -1
	case v.keyDown(ebiten.KeyArrowDown) || v.keyDown(ebiten.KeyS):
		in.DY = 1
	case v.keyDown(ebiten.KeyArrowLeft) || v.keyDown(ebiten.KeyA):
		in.DX = -1
	case v.keyDown(ebiten.KeyArrowRight) || v.keyDown(ebiten.KeyD):
		in.DX = 1
	}
	switch {
	case v.keyDown(ebiten.KeyZ):
		in.Mode = game.DrawFast
	case v.keyDown(ebiten.KeyX):
		in.Mode = game.DrawSlow
	}
	return in
}

// handleToggles processes edge-triggered keys: P pause, H help, C copy the
// debug report, R restart after game over.
func (v *View) handleToggles() {
	if v.pressed(ebiten.KeyP) {
		v.paused = !v.paused
	}
	if v.pressed(ebiten.KeyH) {
		v.showHelp = !v.showHelp
	}
	if v.pressed(ebiten.KeyC) {
		v.copyReport()
	}
	if v.pressed(ebiten.KeyR) && v.sim.World.GameOver {
		v.restart()
	}
	for _, k := range []ebiten.Key{ebiten.KeyEscape, ebiten.KeyP, ebiten.KeyH, ebiten.KeyC, ebiten.KeyR} {
		v.prevKeys[k] = v.keyDown(k)
	}
}

// pressed reports a key that is down now but was up last frame.
func (v *View) pressed(k ebiten.Key) bool {
	return v.keyDown(k) && !v.prevKeys[k]
}

func (v *View) copyReport() {
	report := game.DebugReport(v.sim)
	if err := clipboard.WriteAll(report); err != nil {
		v.log.WithError(err).Warn("copy debug report")
		return
	}
	v.log.WithField("tick", v.sim.Tick()).Info("debug report copied to clipboard")
}

func (v *View) restart() {
	sim, err := game.NewSim(v.sim.Config())
	if err != nil {
		v.log.WithError(err).Error("restart")
		return
	}
	v.log.WithField("score", v.sim.World.Score).Info("restarting after game over")
	v.sim = sim
	v.stepper.Reset()
	v.logged = 0
}

// flushEvents forwards new sim events to the logger.
func (v *View) flushEvents() {
	entries := v.sim.Log.Entries()
	for _, e := range entries[v.logged:] {
		v.log.WithFields(logrus.Fields{
			"tick":     e.Tick,
			"category": e.Category,
			"event":    e.Key,
			"value":    e.NumVal,
		}).Info(e.Value)
	}
	v.logged = len(entries)
}

// Layout implements ebiten.Game.
func (v *View) Layout(_, _ int) (int, int) {
	return v.width, v.height
}

// Size returns the window size in pixels.
func (v *View) Size() (int, int) {
	return v.width, v.height
}

func (v *View) statusLine() string {
	w := v.sim.World
	status := ""
	switch {
	case w.GameOver:
		status = "GAME OVER"
	case w.LevelComplete:
		status = "LEVEL COMPLETE!"
	case v.paused:
		status = "PAUSED"
	}
	return fmt.Sprintf("Score %d  Lives %d  Level %d  %d%%  %s",
		w.Score, w.Lives, w.Level, int(w.ClaimedFraction()*100), status)
}
