package main

import (
	"errors"
	"flag"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/sirupsen/logrus"

	"github.com/Garsondee/qix-sim/internal/game"
	"github.com/Garsondee/qix-sim/internal/settings"
	"github.com/Garsondee/qix-sim/internal/view"
)

func main() {
	var configPath, envPath, level string
	var scale int
	var seed int64

	flag.StringVar(&configPath, "config", "", "optional config file (toml, yaml or json)")
	flag.StringVar(&envPath, "env", ".env", "optional dotenv file")
	flag.IntVar(&scale, "scale", 3, "pixels per grid cell")
	flag.Int64Var(&seed, "seed", 0, "RNG seed override (0 keeps config)")
	flag.StringVar(&level, "log-level", "info", "log level")
	flag.Parse()

	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	if lvl, err := logrus.ParseLevel(level); err == nil {
		log.SetLevel(lvl)
	} else {
		log.WithError(err).Warn("unknown log level, using info")
	}

	cfg, err := settings.Load(configPath, envPath)
	if err != nil {
		log.WithError(err).Fatal("load config")
	}
	if seed != 0 {
		cfg.Seed = seed
	}

	sim, err := game.NewSim(cfg)
	if err != nil {
		log.WithError(err).Fatal("create sim")
	}
	log.WithFields(logrus.Fields{
		"grid":  [2]int{cfg.GridWidth, cfg.GridHeight},
		"seed":  cfg.Seed,
		"lives": cfg.InitialLives,
	}).Info("starting qix")

	v := view.New(sim, log, scale)
	w, h := v.Size()
	ebiten.SetWindowTitle("Qix")
	ebiten.SetWindowSize(w, h)
	if err := ebiten.RunGame(v); err != nil && !errors.Is(err, ebiten.Termination) {
		log.WithError(err).Fatal("run game")
	}
}
