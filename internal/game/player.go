package game

import "math"

// Input is one tick's worth of player intent. At most one of DX, DY may be
// non-zero; a diagonal request is ignored.
type Input struct {
	DX, DY int
	Mode   DrawMode
}

// direction returns the clamped 4-way step, or ok=false when there is none.
func (in Input) direction() (dx, dy int, ok bool) {
	dx, dy = sign(in.DX), sign(in.DY)
	if dx != 0 && dy != 0 {
		return 0, 0, false
	}
	if dx == 0 && dy == 0 {
		return 0, 0, false
	}
	return dx, dy, true
}

// PlayerResult describes what happened to the player during one update.
type PlayerResult struct {
	Steps       int
	StartedDraw bool
	Rejected    bool
	Captured    bool
	Capture     CaptureResult
	CaptureMode DrawMode
	Points      int
}

// playerSpeed returns cells/second for the player's current state and mode.
func playerSpeed(cfg Config, p *Player) float64 {
	if p.State != Drawing {
		return cfg.Speeds.Boundary
	}
	if p.Mode == DrawSlow {
		return cfg.Speeds.DrawSlow
	}
	return cfg.Speeds.DrawFast
}

// UpdatePlayer runs the movement and draw state machine for one tick.
//
// Movement is accumulator based: speed·dt is added every tick and one cell is
// attempted per whole unit. A rejected step zeroes the accumulator.
func UpdatePlayer(w *World, in Input, dt float64) PlayerResult {
	var res PlayerResult
	dx, dy, ok := in.direction()
	if !ok {
		return res
	}

	p := &w.Player
	speed := playerSpeed(w.cfg, p)

	// Mode follows the request off the trail; while drawing only an explicit
	// fast/slow request changes it.
	if p.State != Drawing {
		p.Mode = in.Mode
	} else if in.Mode != DrawNone {
		p.Mode = in.Mode
	}

	p.MoveAccumulator += speed * dt

	for p.MoveAccumulator >= 1 {
		nx, ny := p.GridX+dx, p.GridY+dy
		if !w.Claimed.InBounds(nx, ny) {
			res.Rejected = true
			p.MoveAccumulator = 0
			break
		}
		nextClaimed := w.Claimed.Get(nx, ny)
		nextActive := w.ActiveLine.Get(nx, ny)

		switch p.State {
		case OnBoundary:
			if nextClaimed {
				p.GridX, p.GridY = nx, ny
				break
			}
			if in.Mode == DrawNone {
				res.Rejected = true
				p.MoveAccumulator = 0
				return res
			}
			p.State = Drawing
			p.Mode = in.Mode
			p.DrawOrigin = p.Pos()
			res.StartedDraw = true
			p.GridX, p.GridY = nx, ny
			w.ActiveLine.Set(nx, ny, true)

		case Drawing:
			if nextActive || (GridPoint{X: nx, Y: ny}) == p.DrawOrigin {
				res.Rejected = true
				p.MoveAccumulator = 0
				return res
			}
			p.GridX, p.GridY = nx, ny
			if nextClaimed {
				completeTrail(w, &res)
				res.Steps++
				p.MoveAccumulator -= 1
				p.MoveAccumulator -= math.Floor(p.MoveAccumulator)
				return res
			}
			w.ActiveLine.Set(nx, ny, true)

		default:
			p.MoveAccumulator = 0
			return res
		}

		res.Steps++
		p.MoveAccumulator -= 1
	}
	return res
}

// completeTrail captures with the current Qix positions, pays out and puts
// the player back on the boundary.
func completeTrail(w *World, res *PlayerResult) {
	p := &w.Player
	mode := p.Mode
	capture := CaptureTerritory(w, w.QixPositions, mode)

	total := w.Width * w.Height
	percent := float64(capture.CapturedCells) * 100 / float64(total)
	points := int(math.Floor(percent * w.cfg.pointsPerPercent(mode)))
	w.Score += points

	p.State = OnBoundary
	p.Mode = DrawNone

	res.Captured = true
	res.Capture = capture
	res.CaptureMode = mode
	res.Points = points
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}
