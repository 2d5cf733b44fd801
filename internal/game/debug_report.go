package game

import (
	"fmt"
	"strings"
)

// minimapMaxCols bounds the width of the ASCII minimap in DebugReport.
const minimapMaxCols = 64

// DebugReport renders the current simulation state as plain text: progress,
// entity state, recent events and a downsampled minimap. Front ends copy it to
// the clipboard; headless runs print it on failure.
func DebugReport(s *Sim) string {
	w := s.World
	p := &w.Player

	var b strings.Builder
	fmt.Fprintf(&b, "--- qix-sim debug report ---\n")
	fmt.Fprintf(&b, "seed=%d tick=%d grid=%dx%d\n", s.cfg.Seed, s.tick, w.Width, w.Height)
	fmt.Fprintf(&b, "level=%d score=%d lives=%d captured=%.2f%% complete=%v game_over=%v\n",
		w.Level, w.Score, w.Lives, w.ClaimedFraction()*100, w.LevelComplete, w.GameOver)
	fmt.Fprintf(&b, "player: pos=(%d,%d) state=%s mode=%s acc=%.3f origin=(%d,%d) trail=%d\n",
		p.GridX, p.GridY, p.State, p.Mode, p.MoveAccumulator, p.DrawOrigin.X, p.DrawOrigin.Y, w.ActiveLine.Count())
	for i := range w.Qix {
		q := &w.Qix[i]
		fmt.Fprintf(&b, "qix[%d]: pos=(%.2f,%.2f) heading=%.3f target=%.3f\n", i, q.X, q.Y, q.Heading, q.TargetHeading)
	}
	for i := range w.Sparx {
		c := SparxPosition(w, i)
		fmt.Fprintf(&b, "sparx[%d]: t=%.2f cell=(%d,%d)\n", i, w.Sparx[i].T, c.X, c.Y)
	}

	if recent := s.Feed.Recent(); len(recent) > 0 {
		b.WriteString("events:\n")
		for _, e := range recent {
			fmt.Fprintf(&b, "  - T=%d [%s] %s\n", e.Tick, e.Category, e.Message)
		}
	}

	b.WriteString("map:\n")
	writeMinimap(&b, w)
	return b.String()
}

// writeMinimap draws the world scaled down so it fits minimapMaxCols. Each
// glyph shows the most significant thing inside its block:
// P player, Q qix, S sparx, * trail, # claimed, . open.
func writeMinimap(b *strings.Builder, w *World) {
	scale := 1
	for w.Width/scale > minimapMaxCols {
		scale++
	}
	// Terminal glyphs are roughly twice as tall as wide.
	scaleY := scale * 2

	sparx := make(map[GridPoint]bool, len(w.Sparx))
	for i := range w.Sparx {
		c := SparxPosition(w, i)
		sparx[GridPoint{c.X / scale, c.Y / scaleY}] = true
	}
	qix := make(map[GridPoint]bool, len(w.QixPositions))
	for _, q := range w.QixPositions {
		qix[GridPoint{q.X / scale, q.Y / scaleY}] = true
	}
	player := GridPoint{w.Player.GridX / scale, w.Player.GridY / scaleY}

	for by := 0; by*scaleY < w.Height; by++ {
		for bx := 0; bx*scale < w.Width; bx++ {
			cell := GridPoint{bx, by}
			switch {
			case cell == player:
				b.WriteByte('P')
			case qix[cell]:
				b.WriteByte('Q')
			case sparx[cell]:
				b.WriteByte('S')
			default:
				b.WriteByte(blockGlyph(w, bx*scale, by*scaleY, scale, scaleY))
			}
		}
		b.WriteByte('\n')
	}
}

func blockGlyph(w *World, x0, y0, sw, sh int) byte {
	claimed, total := 0, 0
	for y := y0; y < y0+sh && y < w.Height; y++ {
		for x := x0; x < x0+sw && x < w.Width; x++ {
			if w.ActiveLine.Get(x, y) {
				return '*'
			}
			if w.Claimed.Get(x, y) {
				claimed++
			}
			total++
		}
	}
	if total > 0 && claimed*2 >= total {
		return '#'
	}
	return '.'
}
