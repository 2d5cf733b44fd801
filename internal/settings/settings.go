// Package settings loads a game.Config from an optional config file, an
// optional .env file and QIX_* environment variables, in increasing order of
// precedence over game.DefaultConfig.
package settings

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/Garsondee/qix-sim/internal/game"
)

// EnvPrefix prefixes every environment override, e.g. QIX_GRID_WIDTH or
// QIX_SPEEDS_QIX.
const EnvPrefix = "QIX"

// Load builds a validated config. configPath may name a toml, yaml or json
// file; envFile names a dotenv file that is loaded if it exists. Either may be
// empty.
func Load(configPath, envFile string) (game.Config, error) {
	if err := loadEnvFile(envFile); err != nil {
		return game.Config{}, err
	}

	v := viper.New()
	setDefaults(v, game.DefaultConfig())
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return game.Config{}, fmt.Errorf("read config %s: %w", configPath, err)
		}
	}

	var cfg game.Config
	if err := v.Unmarshal(&cfg); err != nil {
		return game.Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return game.Config{}, err
	}
	return cfg, nil
}

func loadEnvFile(path string) error {
	if path == "" {
		return nil
	}
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("stat env file %s: %w", path, err)
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("load env file %s: %w", path, err)
	}
	return nil
}

// setDefaults registers every key so env overrides are visible to Unmarshal.
func setDefaults(v *viper.Viper, d game.Config) {
	v.SetDefault("grid_width", d.GridWidth)
	v.SetDefault("grid_height", d.GridHeight)
	v.SetDefault("capture_threshold", d.CaptureThreshold)
	v.SetDefault("initial_lives", d.InitialLives)
	v.SetDefault("seed", d.Seed)

	v.SetDefault("speeds.boundary", d.Speeds.Boundary)
	v.SetDefault("speeds.draw_fast", d.Speeds.DrawFast)
	v.SetDefault("speeds.draw_slow", d.Speeds.DrawSlow)
	v.SetDefault("speeds.qix", d.Speeds.Qix)
	v.SetDefault("speeds.sparx", d.Speeds.Sparx)

	v.SetDefault("scoring.fast_per_percent", d.Scoring.FastPerPercent)
	v.SetDefault("scoring.slow_per_percent", d.Scoring.SlowPerPercent)
	v.SetDefault("scoring.completion_bonus_per_percent", d.Scoring.CompletionBonusPerPercent)

	v.SetDefault("tick_seconds", d.TickSeconds)
	v.SetDefault("level_advance_delay", d.LevelAdvanceDelay)
	v.SetDefault("qix_count", d.QixCount)
	v.SetDefault("sparx_count", d.SparxCount)
	v.SetDefault("qix_turn_interval", d.QixTurnInterval)
	v.SetDefault("qix_turn_speed", d.QixTurnSpeed)
	v.SetDefault("qix_line_interval", d.QixLineInterval)
	v.SetDefault("qix_speed_per_level", d.QixSpeedPerLevel)
}
