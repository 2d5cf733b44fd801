package game

// Grid is a fixed-size boolean bitmap stored as a flat slice indexed y*Width+x.
// Every coordinate accessor is bounds-checked: reads outside the grid return
// false and writes outside the grid are dropped.
type Grid struct {
	Width  int
	Height int
	cells  []uint8
}

// GridPoint is an integer cell coordinate.
type GridPoint struct {
	X, Y int
}

// NewGrid creates a width×height grid with every cell set to fill.
// Non-positive dimensions produce an empty grid.
func NewGrid(width, height int, fill bool) *Grid {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	g := &Grid{
		Width:  width,
		Height: height,
		cells:  make([]uint8, width*height),
	}
	if fill {
		for i := range g.cells {
			g.cells[i] = 1
		}
	}
	return g
}

// InBounds reports whether (x,y) lies inside the grid.
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < g.Width && y < g.Height
}

// Index returns the flat index of (x,y). Callers must check InBounds first.
func (g *Grid) Index(x, y int) int {
	return y*g.Width + x
}

// Len returns the number of cells.
func (g *Grid) Len() int {
	return len(g.cells)
}

// Get returns the cell value, or false outside the grid.
func (g *Grid) Get(x, y int) bool {
	if !g.InBounds(x, y) {
		return false
	}
	return g.cells[g.Index(x, y)] == 1
}

// Set writes the cell value. Out-of-bounds writes are ignored.
func (g *Grid) Set(x, y int, v bool) {
	if !g.InBounds(x, y) {
		return
	}
	g.cells[g.Index(x, y)] = boolByte(v)
}

// At returns the value at flat index i, or false when i is out of range.
func (g *Grid) At(i int) bool {
	if i < 0 || i >= len(g.cells) {
		return false
	}
	return g.cells[i] == 1
}

// SetAt writes the value at flat index i. Out-of-range indices are ignored.
func (g *Grid) SetAt(i int, v bool) {
	if i < 0 || i >= len(g.cells) {
		return
	}
	g.cells[i] = boolByte(v)
}

// Clear zeroes every cell.
func (g *Grid) Clear() {
	for i := range g.cells {
		g.cells[i] = 0
	}
}

// Count returns the number of set cells.
func (g *Grid) Count() int {
	n := 0
	for _, c := range g.cells {
		n += int(c)
	}
	return n
}

// FloodFill marks in visited every cell 4-connected to (startX,startY) through
// cells that are not blocked. It is a no-op when the start cell is out of
// bounds, blocked, or already visited. An explicit stack is used so large
// grids cannot exhaust the call stack.
func FloodFill(blocked *Grid, startX, startY int, visited *Grid) {
	if !blocked.InBounds(startX, startY) {
		return
	}
	if blocked.Get(startX, startY) || visited.Get(startX, startY) {
		return
	}

	stack := []GridPoint{{startX, startY}}
	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if !blocked.InBounds(p.X, p.Y) {
			continue
		}
		if blocked.Get(p.X, p.Y) || visited.Get(p.X, p.Y) {
			continue
		}
		visited.Set(p.X, p.Y, true)

		stack = append(stack,
			GridPoint{p.X + 1, p.Y},
			GridPoint{p.X - 1, p.Y},
			GridPoint{p.X, p.Y + 1},
			GridPoint{p.X, p.Y - 1},
		)
	}
}

// Runs calls fn once for every maximal horizontal run of cells on row y for
// which match returns true. x0 and x1 are inclusive. Renderers use it to draw
// one rectangle per run instead of one per cell.
func (g *Grid) Runs(y int, match func(x int) bool, fn func(x0, x1 int)) {
	if y < 0 || y >= g.Height {
		return
	}
	start := -1
	for x := 0; x < g.Width; x++ {
		if match(x) {
			if start < 0 {
				start = x
			}
			continue
		}
		if start >= 0 {
			fn(start, x-1)
			start = -1
		}
	}
	if start >= 0 {
		fn(start, g.Width-1)
	}
}

func boolByte(v bool) uint8 {
	if v {
		return 1
	}
	return 0
}
