package view

import (
	"fmt"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/Garsondee/qix-sim/internal/game"
)

// qixLineScale converts a QixLine length into cells of half-length.
const qixLineScale = 6

// Draw implements ebiten.Game.
func (v *View) Draw(screen *ebiten.Image) {
	screen.Fill(colWindow)

	ox := float32(margin)
	oy := float32(hudHeight + margin)
	w := v.sim.World
	s := float32(v.scale)
	fw, fh := float32(w.Width)*s, float32(w.Height)*s

	vector.FillRect(screen, ox, oy, fw, fh, colBackground, false)

	v.drawRegions(screen, ox, oy)
	vector.StrokeRect(screen, ox-1, oy-1, fw+2, fh+2, 2.0, colBoundary, false)
	v.drawActiveLine(screen, ox, oy)
	v.drawSparx(screen, ox, oy)
	v.drawQix(screen, ox, oy)
	v.drawPlayer(screen, ox, oy)

	v.drawHUD(screen)
	v.drawFeed(screen, int(ox+fw)+margin, int(oy))
	v.drawBanner(screen, ox, oy, fw, fh)
}

// drawRegions renders captured territory by draw mode, and claimed cells that
// were never filled (the ring and committed trails), one rectangle per
// horizontal run.
func (v *View) drawRegions(screen *ebiten.Image, ox, oy float32) {
	w := v.sim.World
	s := float32(v.scale)
	for y := 0; y < w.Height; y++ {
		fy := oy + float32(y)*s
		fill := func(c color.Color) func(x0, x1 int) {
			return func(x0, x1 int) {
				vector.FillRect(screen, ox+float32(x0)*s, fy, float32(x1-x0+1)*s, s, c, false)
			}
		}
		w.Filled.Runs(y, func(x int) bool { return w.FilledModeAt(x, y) == game.DrawSlow }, fill(colClaimedSlow))
		w.Filled.Runs(y, func(x int) bool { return w.FilledModeAt(x, y) == game.DrawFast }, fill(colClaimedFast))
		w.Claimed.Runs(y, func(x int) bool { return w.IsClaimed(x, y) && !w.IsFilled(x, y) }, fill(colBoundary))
	}
}

func (v *View) drawActiveLine(screen *ebiten.Image, ox, oy float32) {
	w := v.sim.World
	s := float32(v.scale)
	for y := 0; y < w.Height; y++ {
		fy := oy + float32(y)*s
		w.ActiveLine.Runs(y, func(x int) bool { return w.ActiveLine.Get(x, y) }, func(x0, x1 int) {
			vector.FillRect(screen, ox+float32(x0)*s, fy, float32(x1-x0+1)*s, s, colActiveLine, false)
		})
	}
}

func (v *View) drawPlayer(screen *ebiten.Image, ox, oy float32) {
	p := v.sim.World.Player
	s := float32(v.scale)
	size := float32(math.Max(float64(s)*4, 6))
	cx := ox + (float32(p.GridX)+0.5)*s
	cy := oy + (float32(p.GridY)+0.5)*s
	c := colMarker
	if p.State == game.Drawing {
		c = colMarkerDraw
	}
	vector.FillRect(screen, cx-size/2, cy-size/2, size, size, c, false)
}

// drawQix draws each Qix as its ring of decorative lines, newest brightest,
// at the position interpolated between the last two ticks.
func (v *View) drawQix(screen *ebiten.Image, ox, oy float32) {
	s := float64(v.scale)
	a := v.alpha
	for i := range v.sim.World.Qix {
		q := &v.sim.World.Qix[i]
		x := q.PrevX + (q.X-q.PrevX)*a
		y := q.PrevY + (q.Y-q.PrevY)*a
		cx := float64(ox) + x*s
		cy := float64(oy) + y*s
		lines := q.Lines()
		for j, l := range lines {
			half := l.Length * qixLineScale * s
			dx := math.Cos(l.Angle+math.Pi/2) * half
			dy := math.Sin(l.Angle+math.Pi/2) * half
			fade := uint8(255 - j*255/(len(lines)+1))
			c := color.RGBA{R: colQix.R, G: colQix.G, B: colQix.B, A: fade}
			vector.StrokeLine(screen,
				float32(cx-dx), float32(cy-dy), float32(cx+dx), float32(cy+dy),
				2, c, true)
		}
	}
}

func (v *View) drawSparx(screen *ebiten.Image, ox, oy float32) {
	w := v.sim.World
	s := float32(v.scale)
	r := float32(math.Max(float64(s)*1.5, 3))
	for i := range w.Sparx {
		c := game.SparxPosition(w, i)
		vector.FillCircle(screen, ox+(float32(c.X)+0.5)*s, oy+(float32(c.Y)+0.5)*s, r, colSparx, true)
	}
}

func (v *View) drawHUD(screen *ebiten.Image) {
	v.drawText(screen, v.statusLine(), margin, 8, colHUDText)
	if v.showHelp {
		v.drawText(screen, "Arrows/WASD move, hold Z fast draw or X slow draw. P pause, C copy report, H help", margin, 26, colHUDDim)
	}
}

func (v *View) drawFeed(screen *ebiten.Image, x, y int) {
	ebitenutil.DebugPrintAt(screen, "EVENTS", x, y)
	for i, e := range v.sim.Feed.Recent() {
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%5d %s", e.Tick, e.Message), x, y+16+i*14)
	}
}

// drawBanner covers the playfield with a message while the sim is frozen.
func (v *View) drawBanner(screen *ebiten.Image, ox, oy, fw, fh float32) {
	w := v.sim.World
	msg := ""
	switch {
	case w.GameOver:
		msg = fmt.Sprintf("GAME OVER  score %d  R to restart", w.Score)
	case w.LevelComplete:
		msg = fmt.Sprintf("LEVEL %d COMPLETE", w.Level)
	case v.paused:
		msg = "PAUSED"
	default:
		return
	}
	bh := float32(40)
	by := oy + fh/2 - bh/2
	vector.FillRect(screen, ox, by, fw, bh, colBanner, false)
	tw, _ := text.Measure(msg, v.face, 0)
	v.drawText(screen, msg, int(ox+fw/2-float32(tw)/2), int(by+14), colHUDText)
}

func (v *View) drawText(screen *ebiten.Image, str string, x, y int, c color.Color) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(float64(x), float64(y))
	op.ColorScale.ScaleWithColor(c)
	text.Draw(screen, str, v.face, op)
}
