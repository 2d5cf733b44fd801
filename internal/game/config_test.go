package game

import (
	"errors"
	"math"
	"testing"
)

func TestDefaultConfig_Valid(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
}

func TestConfig_ValidateRejects(t *testing.T) {
	cases := []struct {
		name string
		mut  func(*Config)
	}{
		{"narrow grid", func(c *Config) { c.GridWidth = 5 }},
		{"short grid", func(c *Config) { c.GridHeight = 0 }},
		{"zero threshold", func(c *Config) { c.CaptureThreshold = 0 }},
		{"threshold above one", func(c *Config) { c.CaptureThreshold = 1.01 }},
		{"nan threshold", func(c *Config) { c.CaptureThreshold = math.NaN() }},
		{"no lives", func(c *Config) { c.InitialLives = 0 }},
		{"no qix", func(c *Config) { c.QixCount = 0 }},
		{"negative sparx", func(c *Config) { c.SparxCount = -1 }},
		{"zero draw speed", func(c *Config) { c.Speeds.DrawFast = 0 }},
		{"infinite sparx speed", func(c *Config) { c.Speeds.Sparx = math.Inf(1) }},
		{"negative tick", func(c *Config) { c.TickSeconds = -1 }},
		{"negative bonus", func(c *Config) { c.Scoring.CompletionBonusPerPercent = -1 }},
		{"nan delay", func(c *Config) { c.LevelAdvanceDelay = math.NaN() }},
	}
	for _, tc := range cases {
		cfg := DefaultConfig()
		tc.mut(&cfg)
		err := cfg.Validate()
		if !errors.Is(err, ErrInvalidConfig) {
			t.Fatalf("%s: got %v, want ErrInvalidConfig", tc.name, err)
		}
	}
}

func TestConfig_ValidateAccepts(t *testing.T) {
	cfg := DefaultConfig()
	cfg.GridWidth, cfg.GridHeight = 6, 6
	cfg.CaptureThreshold = 1
	cfg.SparxCount = 0
	cfg.LevelAdvanceDelay = 0
	cfg.Scoring = Scoring{}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("edge values rejected: %v", err)
	}
}

func TestConfig_PointsPerPercent(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.pointsPerPercent(DrawFast) != 100 || cfg.pointsPerPercent(DrawSlow) != 200 {
		t.Fatalf("fast=%v slow=%v", cfg.pointsPerPercent(DrawFast), cfg.pointsPerPercent(DrawSlow))
	}
	if cfg.qixSpeed(0) != cfg.Speeds.Qix {
		t.Fatal("levels below one use the base speed")
	}
}
