package settings

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/Garsondee/qix-sim/internal/game"
)

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestLoad_DefaultsWithoutFiles(t *testing.T) {
	cfg, err := Load("", "")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	def := game.DefaultConfig()
	if cfg.GridWidth != def.GridWidth || cfg.GridHeight != def.GridHeight {
		t.Fatalf("grid %dx%d, want %dx%d", cfg.GridWidth, cfg.GridHeight, def.GridWidth, def.GridHeight)
	}
	if cfg.Speeds.DrawSlow != def.Speeds.DrawSlow {
		t.Fatalf("draw_slow %v, want %v", cfg.Speeds.DrawSlow, def.Speeds.DrawSlow)
	}
	if cfg.Scoring.SlowPerPercent != def.Scoring.SlowPerPercent {
		t.Fatalf("slow_per_percent %v, want %v", cfg.Scoring.SlowPerPercent, def.Scoring.SlowPerPercent)
	}
}

func TestLoad_TomlOverridesDefaults(t *testing.T) {
	path := writeFile(t, "qix.toml", `
grid_width = 64
capture_threshold = 0.6

[speeds]
qix = 5.5

[scoring]
slow_per_percent = 300
`)
	cfg, err := Load(path, "")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.GridWidth != 64 {
		t.Fatalf("grid_width %d, want 64", cfg.GridWidth)
	}
	if cfg.GridHeight != game.DefaultConfig().GridHeight {
		t.Fatalf("grid_height %d should keep its default", cfg.GridHeight)
	}
	if cfg.CaptureThreshold != 0.6 {
		t.Fatalf("capture_threshold %v, want 0.6", cfg.CaptureThreshold)
	}
	if cfg.Speeds.Qix != 5.5 {
		t.Fatalf("speeds.qix %v, want 5.5", cfg.Speeds.Qix)
	}
	if cfg.Speeds.Sparx != game.DefaultConfig().Speeds.Sparx {
		t.Fatalf("speeds.sparx %v should keep its default", cfg.Speeds.Sparx)
	}
	if cfg.Scoring.SlowPerPercent != 300 {
		t.Fatalf("slow_per_percent %v, want 300", cfg.Scoring.SlowPerPercent)
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeFile(t, "qix.yaml", "grid_height: 90\n")
	t.Setenv("QIX_GRID_HEIGHT", "120")
	t.Setenv("QIX_SPEEDS_SPARX", "33")

	cfg, err := Load(path, "")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.GridHeight != 120 {
		t.Fatalf("grid_height %d, want env value 120", cfg.GridHeight)
	}
	if cfg.Speeds.Sparx != 33 {
		t.Fatalf("speeds.sparx %v, want env value 33", cfg.Speeds.Sparx)
	}
}

func TestLoad_DotEnvFile(t *testing.T) {
	envPath := writeFile(t, ".env", "QIX_SEED=99\nQIX_QIX_COUNT=2\n")
	t.Cleanup(func() {
		_ = os.Unsetenv("QIX_SEED")
		_ = os.Unsetenv("QIX_QIX_COUNT")
	})

	cfg, err := Load("", envPath)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Seed != 99 {
		t.Fatalf("seed %d, want 99", cfg.Seed)
	}
	if cfg.QixCount != 2 {
		t.Fatalf("qix_count %d, want 2", cfg.QixCount)
	}
}

func TestLoad_MissingEnvFileIgnored(t *testing.T) {
	if _, err := Load("", filepath.Join(t.TempDir(), "absent.env")); err != nil {
		t.Fatalf("missing env file should be ignored, got %v", err)
	}
}

func TestLoad_MissingConfigFileFails(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.toml"), ""); err == nil {
		t.Fatal("expected error for missing config file")
	}
}

func TestLoad_InvalidValuesRejected(t *testing.T) {
	path := writeFile(t, "bad.toml", "grid_width = 2\n")
	_, err := Load(path, "")
	if !errors.Is(err, game.ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig, got %v", err)
	}
}
