package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"github.com/gdamore/tcell/v2"
	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/Garsondee/qix-sim/internal/game"
	"github.com/Garsondee/qix-sim/internal/settings"
	"github.com/Garsondee/qix-sim/internal/term"
)

func main() {
	var configPath, envPath, logPath, level string
	var seed int64

	flag.StringVar(&configPath, "config", "", "optional config file (toml, yaml or json)")
	flag.StringVar(&envPath, "env", ".env", "optional dotenv file")
	flag.StringVar(&logPath, "log-file", "qix-tui.log", "log file; the terminal is owned by the game")
	flag.StringVar(&level, "log-level", "info", "log level")
	flag.Int64Var(&seed, "seed", 0, "RNG seed override (0 keeps config)")
	flag.Parse()

	if err := run(configPath, envPath, logPath, level, seed); err != nil {
		fmt.Fprintf(os.Stderr, "qix-tui: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath, envPath, logPath, level string, seed int64) error {
	sink := &lumberjack.Logger{
		Filename:   logPath,
		MaxSize:    5, // megabytes
		MaxBackups: 3,
		MaxAge:     7, // days
	}
	defer sink.Close()

	log := logrus.New()
	log.SetOutput(sink)
	log.SetFormatter(&logrus.JSONFormatter{})
	if lvl, err := logrus.ParseLevel(level); err == nil {
		log.SetLevel(lvl)
	}

	cfg, err := settings.Load(configPath, envPath)
	if err != nil {
		return err
	}
	if seed != 0 {
		cfg.Seed = seed
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	defer screen.Fini()

	cols, rows := screen.Size()
	cfg, err = term.FitConfig(cfg, cols, rows)
	if err != nil {
		return err
	}
	sim, err := game.NewSim(cfg)
	if err != nil {
		return err
	}
	log.WithFields(logrus.Fields{
		"grid": [2]int{cfg.GridWidth, cfg.GridHeight},
		"seed": cfg.Seed,
	}).Info("starting qix-tui")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	app := term.New(screen, sim, log)
	err = app.Run(ctx)
	w := app.Sim().World
	log.WithFields(logrus.Fields{
		"score": w.Score,
		"level": w.Level,
		"ticks": app.Sim().Tick(),
	}).Info("session ended")
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
