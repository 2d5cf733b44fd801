package game

import "math"

// Sparx patrols the outer perimeter. T is its arc-length position in cells.
type Sparx struct {
	T float64
}

// perimeterLength is the number of cells in the outer ring.
func perimeterLength(w *World) float64 {
	return float64(2 * (w.Width + w.Height - 2))
}

// SparxCell maps an arc-length position onto the outer ring: top edge left to
// right, right edge downward, bottom edge right to left, left edge upward.
func SparxCell(w *World, t float64) GridPoint {
	length := perimeterLength(w)
	t = math.Mod(t, length)
	if t < 0 {
		t += length
	}
	d := int(math.Floor(t))
	maxX := w.Width - 1
	maxY := w.Height - 1

	if d < w.Width {
		return GridPoint{d, 0}
	}
	d -= w.Width
	if d < w.Height-1 {
		return GridPoint{maxX, d + 1}
	}
	d -= w.Height - 1
	if d < w.Width-1 {
		return GridPoint{maxX - (d + 1), maxY}
	}
	d -= w.Width - 1
	return GridPoint{0, maxY - (d + 1)}
}

// SparxPosition returns the cell of the i-th Sparx.
func SparxPosition(w *World, i int) GridPoint {
	return SparxCell(w, w.Sparx[i].T)
}

// UpdateSparx advances every Sparx by speed·dt, wrapping around the ring.
func UpdateSparx(w *World, dt float64) {
	length := perimeterLength(w)
	for i := range w.Sparx {
		w.Sparx[i].T = math.Mod(w.Sparx[i].T+w.cfg.Speeds.Sparx*dt, length)
	}
}
