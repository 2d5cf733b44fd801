package game

import (
	"fmt"
	"sort"
	"strings"
)

// RunReport summarises one simulation run from its SimLog and final world.
type RunReport struct {
	Seed  int64
	Ticks int

	Captures       int
	CapturedCells  int
	FastCells      int
	SlowCells      int
	LargestCapture int

	SparxDeaths      int
	QixContactDeaths int
	QixTrailDeaths   int

	LevelsCleared int
	FinalLevel    int
	FinalScore    int
	FinalLives    int
	FinalFraction float64
	GameOver      bool

	FirstCaptureTick int // -1 when nothing was captured
	FirstDeathTick   int // -1 when the player never died
}

// Deaths returns the total number of lives lost.
func (r RunReport) Deaths() int {
	return r.SparxDeaths + r.QixContactDeaths + r.QixTrailDeaths
}

// BuildRunReport collects statistics from a finished Sim.
func BuildRunReport(s *Sim) RunReport {
	w := s.World
	r := RunReport{
		Seed:             s.cfg.Seed,
		Ticks:            s.tick,
		FinalLevel:       w.Level,
		FinalScore:       w.Score,
		FinalLives:       w.Lives,
		FinalFraction:    w.ClaimedFraction(),
		GameOver:         w.GameOver,
		FirstCaptureTick: -1,
		FirstDeathTick:   -1,
	}
	for _, e := range s.Log.Entries() {
		switch e.Category {
		case CatCapture:
			cells := int(e.NumVal)
			r.Captures++
			r.CapturedCells += cells
			switch e.Key {
			case DrawSlow.String():
				r.SlowCells += cells
			case DrawFast.String():
				r.FastCells += cells
			}
			if cells > r.LargestCapture {
				r.LargestCapture = cells
			}
			if r.FirstCaptureTick < 0 {
				r.FirstCaptureTick = e.Tick
			}
		case CatDeath:
			switch e.Key {
			case DeathSparx.String():
				r.SparxDeaths++
			case DeathQixContact.String():
				r.QixContactDeaths++
			case DeathQixOnTrail.String():
				r.QixTrailDeaths++
			}
			if r.FirstDeathTick < 0 {
				r.FirstDeathTick = e.Tick
			}
		case CatLevel:
			if e.Key == "complete" {
				r.LevelsCleared++
			}
		}
	}
	return r
}

// String formats the report as a block of key=value lines.
func (r RunReport) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "seed=%d ticks=%d level=%d score=%d lives=%d game_over=%v\n",
		r.Seed, r.Ticks, r.FinalLevel, r.FinalScore, r.FinalLives, r.GameOver)
	fmt.Fprintf(&b, "captures=%d cells=%d fast=%d slow=%d largest=%d fraction=%.1f%%\n",
		r.Captures, r.CapturedCells, r.FastCells, r.SlowCells, r.LargestCapture, r.FinalFraction*100)
	fmt.Fprintf(&b, "deaths: sparx=%d qix_contact=%d qix_on_trail=%d  first_capture=%d first_death=%d levels_cleared=%d\n",
		r.SparxDeaths, r.QixContactDeaths, r.QixTrailDeaths, r.FirstCaptureTick, r.FirstDeathTick, r.LevelsCleared)
	return b.String()
}

// RunSummary aggregates several RunReports.
type RunSummary struct {
	Runs             int
	AvgScore         float64
	AvgCaptures      float64
	AvgCapturedCells float64
	AvgDeaths        float64
	MaxLevel         int
	GameOvers        int
	LevelsCleared    int
	DeathsByCause    map[DeathCause]int
	BestSeed         int64
	BestScore        int
}

// Summarize aggregates run reports. An empty slice yields a zero summary.
func Summarize(reports []RunReport) RunSummary {
	sum := RunSummary{DeathsByCause: map[DeathCause]int{}}
	if len(reports) == 0 {
		return sum
	}
	sum.Runs = len(reports)
	sum.BestScore = -1
	for _, r := range reports {
		sum.AvgScore += float64(r.FinalScore)
		sum.AvgCaptures += float64(r.Captures)
		sum.AvgCapturedCells += float64(r.CapturedCells)
		sum.AvgDeaths += float64(r.Deaths())
		sum.LevelsCleared += r.LevelsCleared
		if r.FinalLevel > sum.MaxLevel {
			sum.MaxLevel = r.FinalLevel
		}
		if r.GameOver {
			sum.GameOvers++
		}
		sum.DeathsByCause[DeathSparx] += r.SparxDeaths
		sum.DeathsByCause[DeathQixContact] += r.QixContactDeaths
		sum.DeathsByCause[DeathQixOnTrail] += r.QixTrailDeaths
		if r.FinalScore > sum.BestScore {
			sum.BestScore = r.FinalScore
			sum.BestSeed = r.Seed
		}
	}
	n := float64(sum.Runs)
	sum.AvgScore /= n
	sum.AvgCaptures /= n
	sum.AvgCapturedCells /= n
	sum.AvgDeaths /= n
	return sum
}

// String formats the summary for terminal output.
func (s RunSummary) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "runs=%d avg_score=%.1f avg_captures=%.1f avg_cells=%.1f avg_deaths=%.2f\n",
		s.Runs, s.AvgScore, s.AvgCaptures, s.AvgCapturedCells, s.AvgDeaths)
	fmt.Fprintf(&b, "max_level=%d levels_cleared=%d game_overs=%d best_score=%d (seed=%d)\n",
		s.MaxLevel, s.LevelsCleared, s.GameOvers, s.BestScore, s.BestSeed)

	causes := make([]DeathCause, 0, len(s.DeathsByCause))
	for c := range s.DeathsByCause {
		causes = append(causes, c)
	}
	sort.Slice(causes, func(i, j int) bool { return causes[i] < causes[j] })
	b.WriteString("deaths_by_cause:")
	for _, c := range causes {
		fmt.Fprintf(&b, " %s=%d", c, s.DeathsByCause[c])
	}
	b.WriteByte('\n')
	return b.String()
}
