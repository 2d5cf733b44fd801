package game

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidConfig is wrapped by every Config validation failure.
var ErrInvalidConfig = errors.New("invalid config")

// Speeds are in grid cells per second.
type Speeds struct {
	Boundary float64 `mapstructure:"boundary"`
	DrawFast float64 `mapstructure:"draw_fast"`
	DrawSlow float64 `mapstructure:"draw_slow"`
	Qix      float64 `mapstructure:"qix"`
	Sparx    float64 `mapstructure:"sparx"`
}

// Scoring holds the points awarded per percent of the playfield.
type Scoring struct {
	FastPerPercent            float64 `mapstructure:"fast_per_percent"`
	SlowPerPercent            float64 `mapstructure:"slow_per_percent"`
	CompletionBonusPerPercent float64 `mapstructure:"completion_bonus_per_percent"`
}

// Config is the static configuration injected into a World at construction.
type Config struct {
	GridWidth        int     `mapstructure:"grid_width"`
	GridHeight       int     `mapstructure:"grid_height"`
	CaptureThreshold float64 `mapstructure:"capture_threshold"`
	InitialLives     int     `mapstructure:"initial_lives"`
	Seed             int64   `mapstructure:"seed"`

	Speeds  Speeds  `mapstructure:"speeds"`
	Scoring Scoring `mapstructure:"scoring"`

	// TickSeconds is the fixed simulation timestep.
	TickSeconds float64 `mapstructure:"tick_seconds"`
	// LevelAdvanceDelay is how long a completed level stays frozen.
	LevelAdvanceDelay float64 `mapstructure:"level_advance_delay"`

	QixCount         int     `mapstructure:"qix_count"`
	SparxCount       int     `mapstructure:"sparx_count"`
	QixTurnInterval  float64 `mapstructure:"qix_turn_interval"`
	QixTurnSpeed     float64 `mapstructure:"qix_turn_speed"`
	QixLineInterval  float64 `mapstructure:"qix_line_interval"`
	QixSpeedPerLevel float64 `mapstructure:"qix_speed_per_level"`
}

// DefaultConfig returns the arcade defaults: a 320×240 field, 75% to clear.
func DefaultConfig() Config {
	return Config{
		GridWidth:        320,
		GridHeight:       240,
		CaptureThreshold: 0.75,
		InitialLives:     3,
		Seed:             1,
		Speeds: Speeds{
			Boundary: 20,
			DrawFast: 48,
			DrawSlow: 16,
			Qix:      12,
			Sparx:    20,
		},
		Scoring: Scoring{
			FastPerPercent:            100,
			SlowPerPercent:            200,
			CompletionBonusPerPercent: 100,
		},
		TickSeconds:       1.0 / 60.0,
		LevelAdvanceDelay: 2.0,
		QixCount:          1,
		SparxCount:        1,
		QixTurnInterval:   0.4,
		QixTurnSpeed:      math.Pi * 1.2,
		QixLineInterval:   0.08,
		QixSpeedPerLevel:  1,
	}
}

// Validate rejects non-finite and non-positive dimensions, speeds and timings.
func (c Config) Validate() error {
	// The Qix needs a 2-cell margin on every side plus room to move.
	if c.GridWidth < 6 {
		return fmt.Errorf("%w: grid_width %d must be at least 6", ErrInvalidConfig, c.GridWidth)
	}
	if c.GridHeight < 6 {
		return fmt.Errorf("%w: grid_height %d must be at least 6", ErrInvalidConfig, c.GridHeight)
	}
	if !finite(c.CaptureThreshold) || c.CaptureThreshold <= 0 || c.CaptureThreshold > 1 {
		return fmt.Errorf("%w: capture_threshold %v must be in (0,1]", ErrInvalidConfig, c.CaptureThreshold)
	}
	if c.InitialLives < 1 {
		return fmt.Errorf("%w: initial_lives %d must be positive", ErrInvalidConfig, c.InitialLives)
	}
	if c.QixCount < 1 {
		return fmt.Errorf("%w: qix_count %d must be positive", ErrInvalidConfig, c.QixCount)
	}
	if c.SparxCount < 0 {
		return fmt.Errorf("%w: sparx_count %d must not be negative", ErrInvalidConfig, c.SparxCount)
	}

	positive := []struct {
		name string
		v    float64
	}{
		{"speeds.boundary", c.Speeds.Boundary},
		{"speeds.draw_fast", c.Speeds.DrawFast},
		{"speeds.draw_slow", c.Speeds.DrawSlow},
		{"speeds.qix", c.Speeds.Qix},
		{"speeds.sparx", c.Speeds.Sparx},
		{"tick_seconds", c.TickSeconds},
		{"qix_turn_interval", c.QixTurnInterval},
		{"qix_turn_speed", c.QixTurnSpeed},
		{"qix_line_interval", c.QixLineInterval},
	}
	for _, p := range positive {
		if !finite(p.v) || p.v <= 0 {
			return fmt.Errorf("%w: %s %v must be finite and positive", ErrInvalidConfig, p.name, p.v)
		}
	}

	nonNegative := []struct {
		name string
		v    float64
	}{
		{"scoring.fast_per_percent", c.Scoring.FastPerPercent},
		{"scoring.slow_per_percent", c.Scoring.SlowPerPercent},
		{"scoring.completion_bonus_per_percent", c.Scoring.CompletionBonusPerPercent},
		{"level_advance_delay", c.LevelAdvanceDelay},
		{"qix_speed_per_level", c.QixSpeedPerLevel},
	}
	for _, p := range nonNegative {
		if !finite(p.v) || p.v < 0 {
			return fmt.Errorf("%w: %s %v must be finite and non-negative", ErrInvalidConfig, p.name, p.v)
		}
	}
	return nil
}

// qixSpeed returns the Qix speed for the given level.
func (c Config) qixSpeed(level int) float64 {
	if level < 1 {
		level = 1
	}
	return c.Speeds.Qix + c.QixSpeedPerLevel*float64(level-1)
}

// pointsPerPercent returns the capture payout for a draw mode.
func (c Config) pointsPerPercent(mode DrawMode) float64 {
	if mode == DrawSlow {
		return c.Scoring.SlowPerPercent
	}
	return c.Scoring.FastPerPercent
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
