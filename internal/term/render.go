package term

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/Garsondee/qix-sim/internal/game"
)

// Glyphs for each cell class, highest priority first.
const (
	glyphPlayer  = '@'
	glyphQix     = 'Q'
	glyphSparx   = '*'
	glyphActive  = '•'
	glyphSlow    = '▒'
	glyphFast    = '░'
	glyphClaimed = '#'
	glyphOpen    = ' '
)

// Rows above and below the playfield.
const (
	hudRows    = 1
	footerRows = 1
)

var (
	styleOpen    = tcell.StyleDefault
	styleClaimed = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	styleFast    = tcell.StyleDefault.Foreground(tcell.NewRGBColor(0x3c, 0xff, 0x8f))
	styleSlow    = tcell.StyleDefault.Foreground(tcell.NewRGBColor(0xff, 0x8a, 0x00))
	styleActive  = tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true)
	stylePlayer  = tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
	styleQix     = tcell.StyleDefault.Foreground(tcell.NewRGBColor(0x7a, 0xff, 0xff)).Bold(true)
	styleSparx   = tcell.StyleDefault.Foreground(tcell.NewRGBColor(0xff, 0xc7, 0x00))
	styleHUD     = tcell.StyleDefault.Foreground(tcell.ColorSilver)
)

// canvas is the subset of tcell.Screen the renderer draws into.
type canvas interface {
	SetContent(x, y int, primary rune, combining []rune, style tcell.Style)
	Size() (int, int)
}

// FitConfig shrinks the grid so it fits a cols x rows terminal with one HUD
// row and one footer row. The result is validated.
func FitConfig(cfg game.Config, cols, rows int) (game.Config, error) {
	if cols < cfg.GridWidth {
		cfg.GridWidth = cols
	}
	if avail := rows - hudRows - footerRows; avail < cfg.GridHeight {
		cfg.GridHeight = avail
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("terminal %dx%d too small: %w", cols, rows, err)
	}
	return cfg, nil
}

// cellGlyph classifies one cell of the static layers.
func cellGlyph(w *game.World, x, y int) (rune, tcell.Style) {
	switch {
	case w.ActiveLine.Get(x, y):
		return glyphActive, styleActive
	case w.FilledModeAt(x, y) == game.DrawSlow:
		return glyphSlow, styleSlow
	case w.IsFilled(x, y):
		return glyphFast, styleFast
	case w.IsClaimed(x, y):
		return glyphClaimed, styleClaimed
	}
	return glyphOpen, styleOpen
}

// render draws the sim into c. Cells outside c are clipped.
func render(c canvas, sim *game.Sim, status string) {
	w := sim.World
	cols, rows := c.Size()
	put := func(x, y int, r rune, st tcell.Style) {
		sy := y + hudRows
		if x < 0 || x >= cols || sy < 0 || sy >= rows {
			return
		}
		c.SetContent(x, sy, r, nil, st)
	}

	for y := 0; y < w.Height; y++ {
		for x := 0; x < w.Width; x++ {
			r, st := cellGlyph(w, x, y)
			put(x, y, r, st)
		}
	}
	for i := range w.Sparx {
		p := game.SparxPosition(w, i)
		put(p.X, p.Y, glyphSparx, styleSparx)
	}
	for i := range w.Qix {
		p := w.Qix[i].Cell()
		put(p.X, p.Y, glyphQix, styleQix)
	}
	put(w.Player.GridX, w.Player.GridY, glyphPlayer, stylePlayer)

	hud := fmt.Sprintf("Score %d  Lives %d  Level %d  %d%%  %s",
		w.Score, w.Lives, w.Level, int(w.ClaimedFraction()*100), status)
	drawString(c, 0, 0, cols, hud, styleHUD)

	footer := "arrows/hjkl move  space stop  z fast  x slow  n none  p pause  c copy  q quit"
	if feed := sim.Feed.Recent(); len(feed) > 0 {
		last := feed[len(feed)-1]
		footer = fmt.Sprintf("[%d] %s", last.Tick, last.Message)
	}
	drawString(c, 0, hudRows+w.Height, cols, footer, styleHUD)
}

// drawString writes s at (x, y) and blanks the rest of the row up to cols.
func drawString(c canvas, x, y, cols int, s string, st tcell.Style) {
	_, rows := c.Size()
	if y < 0 || y >= rows {
		return
	}
	for _, r := range s {
		if x >= cols {
			return
		}
		c.SetContent(x, y, r, nil, st)
		x++
	}
	for ; x < cols; x++ {
		c.SetContent(x, y, ' ', nil, st)
	}
}
