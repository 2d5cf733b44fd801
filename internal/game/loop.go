package game

// Default frame-driver limits.
const (
	defaultMaxSubSteps   = 5
	defaultMaxFrameDelta = 0.1
)

// Stepper turns variable real-time frame deltas into a bounded number of
// fixed simulation steps. Front ends call Advance once per rendered frame and
// use the returned alpha to interpolate between the last two states.
type Stepper struct {
	Step          float64 // fixed timestep in seconds
	MaxSubSteps   int     // steps allowed per frame before time is dropped
	MaxFrameDelta float64 // elapsed time is clamped to this per frame

	accumulator float64
}

// NewStepper returns a Stepper for the given fixed timestep.
func NewStepper(step float64) *Stepper {
	return &Stepper{
		Step:          step,
		MaxSubSteps:   defaultMaxSubSteps,
		MaxFrameDelta: defaultMaxFrameDelta,
	}
}

// Advance adds elapsed seconds, runs step for every whole timestep (up to
// MaxSubSteps) and returns the leftover fraction of a step in [0,1).
func (st *Stepper) Advance(elapsed float64, step func()) float64 {
	if st.Step <= 0 {
		return 0
	}
	if elapsed < 0 {
		elapsed = 0
	}
	if st.MaxFrameDelta > 0 && elapsed > st.MaxFrameDelta {
		elapsed = st.MaxFrameDelta
	}
	st.accumulator += elapsed

	steps := 0
	for st.accumulator >= st.Step && steps < st.MaxSubSteps {
		step()
		st.accumulator -= st.Step
		steps++
	}
	// A stall left more than a step behind; drop it rather than spiral.
	if st.accumulator >= st.Step {
		st.accumulator = 0
	}
	return st.accumulator / st.Step
}

// Reset discards any accumulated time.
func (st *Stepper) Reset() {
	st.accumulator = 0
}
