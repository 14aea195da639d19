package main

import (
	"context"
	"flag"
	stdlog "log"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/lao-tseu-is-alive/go-boids/internal/simulation"
	"github.com/tochemey/goakt/v3/log"
)

// Command-line flags; explicit values override the loaded configuration.
var (
	configFlag   = flag.String("config", "", "JSON or TOML configuration file")
	presetFlag   = flag.String("preset", "reference", "configuration preset when no file is given (reference, classic, arena)")
	agentsFlag   = flag.Int("agents", -1, "initial number of boids (-1 keeps the configured value)")
	seedFlag     = flag.Uint64("seed", 0, "random seed (0 keeps the configured value)")
	logLevelFlag = flag.String("log-level", "info", "log level: debug, info, warn, error")
)

func main() {
	flag.Parse()
	ctx := context.Background()

	level, err := simulation.LogLevel(*logLevelFlag)
	if err != nil {
		stdlog.Fatal(err)
	}
	logger := log.New(level, os.Stdout)

	cfg, err := simulation.ResolveConfig(*configFlag, *presetFlag)
	if err != nil {
		logger.Fatalf("failed to load configuration: %v", err)
	}
	if *agentsFlag >= 0 {
		cfg.InitialAgents = *agentsFlag
	}
	if *seedFlag != 0 {
		cfg.Seed = *seedFlag
	}

	engine, err := simulation.StartEngine(ctx, cfg, logger)
	if err != nil {
		logger.Fatalf("failed to start simulation: %v", err)
	}
	defer func() {
		if err := engine.Stop(ctx); err != nil {
			logger.Errorf("failed to stop simulation: %v", err)
		}
	}()

	game, err := simulation.NewGame(ctx, engine, logger)
	if err != nil {
		logger.Fatalf("failed to create game: %v", err)
	}

	ebiten.SetTPS(cfg.TPS)
	ebiten.SetWindowSize(int(cfg.WorldWidth), int(cfg.WorldHeight))
	ebiten.SetWindowTitle("Boids: " + cfg.Preset)
	if err := ebiten.RunGame(game); err != nil {
		logger.Errorf("game stopped: %v", err)
	}
}
