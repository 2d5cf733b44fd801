package game

// CaptureResult reports how many cells a capture converted.
type CaptureResult struct {
	CapturedCells int
}

// CaptureTerritory converts every region not reachable from a Qix position
// into claimed and filled territory tagged with mode, then commits the active
// line into claimed. The commit happens whether or not anything was captured.
func CaptureTerritory(w *World, qixPositions []GridPoint, mode DrawMode) CaptureResult {
	blocked := buildBlockedGrid(w.Claimed, w.ActiveLine)
	visited := NewGrid(blocked.Width, blocked.Height, false)

	for _, p := range qixPositions {
		// A Qix on a blocked cell seeds nothing.
		FloodFill(blocked, p.X, p.Y, visited)
	}

	tag := uint8(DrawFast)
	if mode == DrawSlow {
		tag = uint8(DrawSlow)
	}

	captured := 0
	for i := 0; i < blocked.Len(); i++ {
		if blocked.At(i) || visited.At(i) {
			continue
		}
		w.Claimed.SetAt(i, true)
		w.Filled.SetAt(i, true)
		w.FilledMode[i] = tag
		captured++
	}

	for i := 0; i < w.ActiveLine.Len(); i++ {
		if w.ActiveLine.At(i) {
			w.Claimed.SetAt(i, true)
			w.ActiveLine.SetAt(i, false)
		}
	}

	return CaptureResult{CapturedCells: captured}
}

func buildBlockedGrid(claimed, activeLine *Grid) *Grid {
	blocked := NewGrid(claimed.Width, claimed.Height, false)
	for i := 0; i < claimed.Len(); i++ {
		if claimed.At(i) || activeLine.At(i) {
			blocked.SetAt(i, true)
		}
	}
	return blocked
}
