package term

import (
	"github.com/gdamore/tcell/v2"

	"github.com/Garsondee/qix-sim/internal/game"
)

type actionKind int

const (
	actNone actionKind = iota
	actMove
	actStop
	actMode
	actPause
	actCopy
	actRestart
	actQuit
)

type action struct {
	kind actionKind
	dir  game.GridPoint
	mode game.DrawMode
}

// actionFor maps a key press to an action. Terminals report no key releases,
// so movement and draw mode are latched until changed.
func actionFor(key tcell.Key, r rune, mod tcell.ModMask) action {
	switch key {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return action{kind: actQuit}
	case tcell.KeyUp:
		return action{kind: actMove, dir: game.GridPoint{Y: -1}}
	case tcell.KeyDown:
		return action{kind: actMove, dir: game.GridPoint{Y: 1}}
	case tcell.KeyLeft:
		return action{kind: actMove, dir: game.GridPoint{X: -1}}
	case tcell.KeyRight:
		return action{kind: actMove, dir: game.GridPoint{X: 1}}
	case tcell.KeyRune:
	default:
		return action{}
	}
	if mod&tcell.ModCtrl != 0 {
		return action{}
	}
	switch r {
	case 'q', 'Q':
		return action{kind: actQuit}
	case ' ':
		return action{kind: actStop}
	case 'w', 'k':
		return action{kind: actMove, dir: game.GridPoint{Y: -1}}
	case 's', 'j':
		return action{kind: actMove, dir: game.GridPoint{Y: 1}}
	case 'a', 'h':
		return action{kind: actMove, dir: game.GridPoint{X: -1}}
	case 'd', 'l':
		return action{kind: actMove, dir: game.GridPoint{X: 1}}
	case 'z', 'Z':
		return action{kind: actMode, mode: game.DrawFast}
	case 'x', 'X':
		return action{kind: actMode, mode: game.DrawSlow}
	case 'n', 'N':
		return action{kind: actMode, mode: game.DrawNone}
	case 'p', 'P':
		return action{kind: actPause}
	case 'c', 'C':
		return action{kind: actCopy}
	case 'r', 'R':
		return action{kind: actRestart}
	}
	return action{}
}
