package game

import (
	"math"
	"math/rand"
)

// qixLineCount is the length of the decorative line ring.
const qixLineCount = 8

// qixEdgeMargin keeps the Qix this many cells away from the grid edge.
const qixEdgeMargin = 2

// QixLine is one decorative stroke of the Qix body. Visual only.
type QixLine struct {
	Angle  float64
	Length float64
}

// Qix is a roaming enemy with a continuous position inside unclaimed space.
type Qix struct {
	X, Y float64
	// PrevX/PrevY hold the position before the latest tick, for render
	// interpolation.
	PrevX, PrevY float64
	VX, VY       float64

	Heading       float64
	TargetHeading float64
	TurnTimer     float64
	LineTimer     float64

	lines    [qixLineCount]QixLine
	lineHead int
}

func (q *Qix) reset(x, y float64) {
	*q = Qix{X: x, Y: y, PrevX: x, PrevY: y, VX: 1}
	for i := range q.lines {
		q.lines[i] = QixLine{Angle: 0, Length: 0.5}
	}
}

// Cell returns the discretized position.
func (q *Qix) Cell() GridPoint {
	return GridPoint{int(math.Floor(q.X)), int(math.Floor(q.Y))}
}

// pushLine adds a line at the front of the ring, dropping the oldest.
func (q *Qix) pushLine(l QixLine) {
	q.lineHead = (q.lineHead + 1) % qixLineCount
	q.lines[q.lineHead] = l
}

// Lines returns the decorative lines, newest first.
func (q *Qix) Lines() []QixLine {
	out := make([]QixLine, qixLineCount)
	for i := 0; i < qixLineCount; i++ {
		out[i] = q.lines[(q.lineHead-i+qixLineCount)%qixLineCount]
	}
	return out
}

// UpdateQix advances every Qix by dt seconds and refreshes w.QixPositions.
//
// Heading changes are pure random jitter: the Qix turns smoothly toward a
// target that is re-rolled on a fixed interval, and picks a fresh random
// heading whenever a step would enter the edge margin or claimed territory.
func UpdateQix(w *World, rng *rand.Rand, dt float64) {
	cfg := w.cfg
	speed := cfg.qixSpeed(w.Level)
	for i := range w.Qix {
		updateOneQix(w, &w.Qix[i], rng, speed, dt)
	}
	w.refreshQixPositions()
}

func updateOneQix(w *World, q *Qix, rng *rand.Rand, speed, dt float64) {
	cfg := w.cfg
	q.PrevX, q.PrevY = q.X, q.Y

	if !finite(q.Heading) {
		q.Heading = 0
	}
	if !finite(q.TargetHeading) {
		q.TargetHeading = q.Heading
	}

	q.TurnTimer += dt
	if q.TurnTimer >= cfg.QixTurnInterval {
		q.TurnTimer = 0
		q.TargetHeading = q.Heading + (rng.Float64()-0.5)*math.Pi
	}

	delta := normalizeAngle(q.TargetHeading - q.Heading)
	maxStep := cfg.QixTurnSpeed * dt
	if math.Abs(delta) <= maxStep {
		q.Heading = q.TargetHeading
	} else {
		q.Heading += math.Copysign(maxStep, delta)
	}

	q.VX = math.Cos(q.Heading)
	q.VY = math.Sin(q.Heading)
	nextX := q.X + q.VX*speed*dt
	nextY := q.Y + q.VY*speed*dt
	gx := int(math.Floor(nextX))
	gy := int(math.Floor(nextY))

	if gx < qixEdgeMargin || gy < qixEdgeMargin ||
		gx >= w.Width-qixEdgeMargin || gy >= w.Height-qixEdgeMargin ||
		w.Claimed.Get(gx, gy) {
		q.Heading = rng.Float64() * 2 * math.Pi
		q.TargetHeading = q.Heading
		return
	}

	q.X = nextX
	q.Y = nextY

	q.LineTimer += dt
	if q.LineTimer >= cfg.QixLineInterval {
		q.LineTimer -= cfg.QixLineInterval
		q.pushLine(QixLine{
			Angle:  q.Heading + (rng.Float64()-0.5)*0.4,
			Length: 0.6 + rng.Float64()*1.6,
		})
	}
}

// normalizeAngle maps a into (-π, π].
func normalizeAngle(a float64) float64 {
	a = math.Mod(a, 2*math.Pi)
	if a <= -math.Pi {
		a += 2 * math.Pi
	} else if a > math.Pi {
		a -= 2 * math.Pi
	}
	return a
}
