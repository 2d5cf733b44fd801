package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/Garsondee/qix-sim/internal/game"
	"github.com/Garsondee/qix-sim/internal/settings"
)

type runStats struct {
	runIndex int
	report   game.RunReport
	err      error
}

func main() {
	var runs int
	var ticks int
	var seedBase int64
	var seedStep int64
	var width, height int
	var configPath, envPath string

	flag.IntVar(&runs, "runs", 5, "number of headless autopilot runs")
	flag.IntVar(&ticks, "ticks", 3600, "ticks per run")
	flag.Int64Var(&seedBase, "seed-base", 42, "base RNG seed for run 1")
	flag.Int64Var(&seedStep, "seed-step", 1, "seed increment between runs")
	flag.IntVar(&width, "width", 0, "grid width override (0 keeps config)")
	flag.IntVar(&height, "height", 0, "grid height override (0 keeps config)")
	flag.StringVar(&configPath, "config", "", "optional config file (toml, yaml or json)")
	flag.StringVar(&envPath, "env", ".env", "optional dotenv file")
	flag.Parse()

	if runs <= 0 {
		fmt.Println("error: -runs must be > 0")
		os.Exit(2)
	}
	if ticks <= 0 {
		fmt.Println("error: -ticks must be > 0")
		os.Exit(2)
	}

	cfg, err := settings.Load(configPath, envPath)
	if err != nil {
		fmt.Printf("error: %v\n", err)
		os.Exit(1)
	}
	cfg = applyOverrides(cfg, width, height)

	fmt.Printf("=== Headless Qix Report ===\n")
	fmt.Printf("grid=%dx%d runs=%d ticks=%d seed_base=%d seed_step=%d\n\n",
		cfg.GridWidth, cfg.GridHeight, runs, ticks, seedBase, seedStep)

	all := make([]runStats, 0, runs)
	failed := 0
	for i := 0; i < runs; i++ {
		seed := seedBase + int64(i)*seedStep
		rs := runAutopilot(i+1, cfg, seed, ticks)
		if rs.err != nil {
			failed++
		}
		all = append(all, rs)
		printRun(rs)
	}

	printAggregate(all)
	if failed > 0 {
		os.Exit(1)
	}
}

// applyOverrides replaces the grid size when a flag was given.
func applyOverrides(cfg game.Config, width, height int) game.Config {
	if width > 0 {
		cfg.GridWidth = width
	}
	if height > 0 {
		cfg.GridHeight = height
	}
	return cfg
}

// runAutopilot plays one seeded game with the autopilot, checking world
// invariants after every tick.
func runAutopilot(runIndex int, cfg game.Config, seed int64, ticks int) runStats {
	ts, err := game.NewTestSim(
		game.WithConfig(func(c *game.Config) { *c = cfg }),
		game.WithSeed(seed),
		game.WithAutopilot(seed),
	)
	if err != nil {
		return runStats{runIndex: runIndex, report: game.RunReport{Seed: seed}, err: err}
	}
	err = ts.RunPilot(ticks)
	return runStats{runIndex: runIndex, report: ts.Report(), err: err}
}

func printRun(rs runStats) {
	fmt.Printf("--- run %d ---\n", rs.runIndex)
	if rs.err != nil {
		fmt.Printf("FAILED: %v\n", rs.err)
	}
	fmt.Print(rs.report.String())
	fmt.Println()
}

func printAggregate(all []runStats) {
	reports := make([]game.RunReport, 0, len(all))
	var firstCaptures, firstDeaths []int
	for _, rs := range all {
		if rs.err != nil {
			continue
		}
		reports = append(reports, rs.report)
		if rs.report.FirstCaptureTick >= 0 {
			firstCaptures = append(firstCaptures, rs.report.FirstCaptureTick)
		}
		if rs.report.FirstDeathTick >= 0 {
			firstDeaths = append(firstDeaths, rs.report.FirstDeathTick)
		}
	}

	fmt.Printf("=== Aggregate (%d/%d runs ok) ===\n", len(reports), len(all))
	fmt.Print(game.Summarize(reports).String())
	fmt.Printf("avg_first_capture_tick=%s avg_first_death_tick=%s\n",
		avgTickString(firstCaptures), avgTickString(firstDeaths))
	fmt.Printf("slow_share=%s\n", pct(slowCells(reports), capturedCells(reports)))
}

func capturedCells(reports []game.RunReport) int {
	n := 0
	for _, r := range reports {
		n += r.CapturedCells
	}
	return n
}

func slowCells(reports []game.RunReport) int {
	n := 0
	for _, r := range reports {
		n += r.SlowCells
	}
	return n
}

func pct(part, whole int) string {
	if whole <= 0 {
		return "n/a"
	}
	return fmt.Sprintf("%.1f%%", 100*float64(part)/float64(whole))
}

func avgTickString(vals []int) string {
	if len(vals) == 0 {
		return "n/a"
	}
	sum := 0
	for _, v := range vals {
		sum += v
	}
	return fmt.Sprintf("%.1f", float64(sum)/float64(len(vals)))
}
