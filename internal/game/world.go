package game

import "math"

// PlayerState is the player's position in the movement state machine.
type PlayerState uint8

const (
	OnBoundary PlayerState = iota // Safe on claimed territory
	Drawing                       // Extending a trail through unclaimed space
	Dead                          // Reserved
	Respawn                       // Reserved
)

func (s PlayerState) String() string {
	switch s {
	case OnBoundary:
		return "on_boundary"
	case Drawing:
		return "drawing"
	case Dead:
		return "dead"
	case Respawn:
		return "respawn"
	default:
		return "unknown"
	}
}

// DrawMode selects draw speed and payout. The numeric values are stored in
// World.FilledMode, so DrawFast=1 and DrawSlow=2 are part of the contract.
type DrawMode uint8

const (
	DrawNone DrawMode = iota
	DrawFast
	DrawSlow
)

func (m DrawMode) String() string {
	switch m {
	case DrawFast:
		return "fast"
	case DrawSlow:
		return "slow"
	default:
		return "none"
	}
}

// Player is the cursor the user steers.
type Player struct {
	State PlayerState
	Mode  DrawMode
	GridX int
	GridY int
	// MoveAccumulator holds fractional cells of movement credit, in [0,1)
	// between ticks.
	MoveAccumulator float64
	DrawOrigin      GridPoint
}

// Pos returns the player's cell.
func (p *Player) Pos() GridPoint {
	return GridPoint{p.GridX, p.GridY}
}

// World is the authoritative simulation state. It is owned by a single tick
// driver; systems receive it as an argument and keep no references to it.
type World struct {
	cfg Config

	Width  int
	Height int

	Claimed    *Grid
	Filled     *Grid
	ActiveLine *Grid
	// FilledMode records the DrawMode that captured each filled cell.
	FilledMode []uint8

	Player Player
	Qix    []Qix
	Sparx  []Sparx
	// QixPositions is the discretized cell of every Qix, in Qix order.
	QixPositions []GridPoint

	Lives         int
	Level         int
	Score         int
	LevelComplete bool
	GameOver      bool
}

// NewWorld validates cfg and builds a level-1 world.
func NewWorld(cfg Config) (*World, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	w := &World{
		cfg:        cfg,
		Width:      cfg.GridWidth,
		Height:     cfg.GridHeight,
		Claimed:    NewGrid(cfg.GridWidth, cfg.GridHeight, false),
		Filled:     NewGrid(cfg.GridWidth, cfg.GridHeight, false),
		ActiveLine: NewGrid(cfg.GridWidth, cfg.GridHeight, false),
		FilledMode: make([]uint8, cfg.GridWidth*cfg.GridHeight),
		Lives:      cfg.InitialLives,
	}
	w.ResetForLevel(1)
	return w, nil
}

// Config returns the configuration the world was built with.
func (w *World) Config() Config {
	return w.cfg
}

// SeedBoundary claims the outer ring of cells.
func (w *World) SeedBoundary() {
	for x := 0; x < w.Width; x++ {
		w.Claimed.Set(x, 0, true)
		w.Claimed.Set(x, w.Height-1, true)
	}
	for y := 0; y < w.Height; y++ {
		w.Claimed.Set(0, y, true)
		w.Claimed.Set(w.Width-1, y, true)
	}
}

// SpawnPoint is the middle of the bottom edge.
func (w *World) SpawnPoint() GridPoint {
	return GridPoint{w.Width / 2, w.Height - 1}
}

// SpawnPlayer puts the player back on the spawn point, idle on the boundary.
func (w *World) SpawnPlayer() {
	sp := w.SpawnPoint()
	w.Player.GridX = sp.X
	w.Player.GridY = sp.Y
	w.Player.State = OnBoundary
	w.Player.Mode = DrawNone
	w.Player.MoveAccumulator = 0
	w.ResetActiveLine()
}

// ResetActiveLine discards the uncommitted trail.
func (w *World) ResetActiveLine() {
	w.ActiveLine.Clear()
	w.Player.DrawOrigin = w.Player.Pos()
}

// ResetForLevel reinitialises grids and entities for the given level.
// Score and lives carry over.
func (w *World) ResetForLevel(level int) {
	w.Level = level
	w.LevelComplete = false
	w.Claimed.Clear()
	w.Filled.Clear()
	w.ActiveLine.Clear()
	for i := range w.FilledMode {
		w.FilledMode[i] = 0
	}
	w.SeedBoundary()
	w.SpawnPlayer()
	w.spawnQix()
	w.spawnSparx()
}

// spawnQix spreads the Qix evenly along the horizontal midline.
func (w *World) spawnQix() {
	n := w.cfg.QixCount
	w.Qix = make([]Qix, n)
	for i := range w.Qix {
		x := math.Floor(float64(w.Width*(i+1)) / float64(n+1))
		y := math.Floor(float64(w.Height) / 2)
		w.Qix[i].reset(x, y)
	}
	w.refreshQixPositions()
}

// spawnSparx spaces the Sparx evenly along the perimeter.
func (w *World) spawnSparx() {
	n := w.cfg.SparxCount
	w.Sparx = make([]Sparx, n)
	length := perimeterLength(w)
	for i := range w.Sparx {
		w.Sparx[i].T = length * float64(i) / float64(n)
	}
}

func (w *World) refreshQixPositions() {
	if cap(w.QixPositions) < len(w.Qix) {
		w.QixPositions = make([]GridPoint, len(w.Qix))
	}
	w.QixPositions = w.QixPositions[:len(w.Qix)]
	for i := range w.Qix {
		w.QixPositions[i] = w.Qix[i].Cell()
	}
}

// IsClaimed reports whether (x,y) is claimed territory.
func (w *World) IsClaimed(x, y int) bool {
	return w.Claimed.Get(x, y)
}

// IsFilled reports whether (x,y) was captured.
func (w *World) IsFilled(x, y int) bool {
	return w.Filled.Get(x, y)
}

// IsBoundaryCell reports whether (x,y) is a claimed cell touching the grid
// edge or an unclaimed cell.
func (w *World) IsBoundaryCell(x, y int) bool {
	if !w.Claimed.Get(x, y) {
		return false
	}
	for _, d := range cardinals {
		nx, ny := x+d.X, y+d.Y
		if !w.Claimed.InBounds(nx, ny) || !w.Claimed.Get(nx, ny) {
			return true
		}
	}
	return false
}

// FilledModeAt returns the DrawMode that captured (x,y), or DrawNone.
func (w *World) FilledModeAt(x, y int) DrawMode {
	if !w.Filled.InBounds(x, y) {
		return DrawNone
	}
	return DrawMode(w.FilledMode[w.Filled.Index(x, y)])
}

// ClaimedFraction is the captured share of the whole field, excluding the
// initial boundary ring.
func (w *World) ClaimedFraction() float64 {
	total := w.Width * w.Height
	if total == 0 {
		return 0
	}
	return float64(w.Filled.Count()) / float64(total)
}

var cardinals = [4]GridPoint{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}
