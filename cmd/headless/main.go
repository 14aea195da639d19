// Command headless runs the flock without a window and reports statistics.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	stdlog "log"
	"os"
	"time"

	"github.com/lao-tseu-is-alive/go-boids/internal/pb"
	"github.com/lao-tseu-is-alive/go-boids/internal/simulation"
	"github.com/lao-tseu-is-alive/go-boids/pkg/flock"
	"github.com/tochemey/goakt/v3/log"
)

var (
	configFlag   = flag.String("config", "", "JSON or TOML configuration file")
	presetFlag   = flag.String("preset", "reference", "configuration preset when no file is given (reference, classic, arena)")
	agentsFlag   = flag.Int("agents", -1, "initial number of boids (-1 keeps the configured value)")
	seedFlag     = flag.Uint64("seed", 0, "random seed (0 keeps the configured value)")
	stepsFlag    = flag.Uint("steps", 1000, "number of steps to run")
	everyFlag    = flag.Uint("stats-every", 100, "log statistics every N steps (0 logs only at the end)")
	jsonFlag     = flag.Bool("json", false, "print the final snapshot as JSON on stdout")
	logLevelFlag = flag.String("log-level", "info", "log level: debug, info, warn, error")
)

func main() {
	flag.Parse()
	ctx := context.Background()

	level, err := simulation.LogLevel(*logLevelFlag)
	if err != nil {
		stdlog.Fatal(err)
	}
	// Logs go to stderr so that -json output stays clean.
	logger := log.New(level, os.Stderr)

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

	if err := run(ctx, engine, logger, uint32(*stepsFlag), uint32(*everyFlag)); err != nil {
		logger.Errorf("simulation failed: %v", err)
		return
	}

	if *jsonFlag {
		snap, err := engine.Snapshot(ctx)
		if err != nil {
			logger.Errorf("failed to read final state: %v", err)
			return
		}
		if err := writeSnapshot(os.Stdout, snap); err != nil {
			logger.Errorf("failed to write final state: %v", err)
		}
	}
}

// writeSnapshot prints snap to w as protojson followed by a newline.
func writeSnapshot(w io.Writer, snap flock.Snapshot) error {
	b, err := pb.MarshalJSON(pb.EncodeSnapshot(snap))
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	if _, err := w.Write(append(b, '\n')); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	return nil
}

// run advances the engine in batches of every steps and logs statistics after each batch.
func run(ctx context.Context, engine *simulation.Engine, logger log.Logger, steps, every uint32) error {
	if every == 0 || every > steps {
		every = steps
	}
	start := time.Now()
	for done := uint32(0); done < steps; {
		n := min(every, steps-done)
		if err := engine.Step(ctx, n); err != nil {
			return err
		}
		done += n

		stats, err := engine.Stats(ctx)
		if err != nil {
			return err
		}
		logger.Infof("step %d/%d: %d boids in %d groups (largest %d), polarization %.3f, mean speed %.2f, centroid %v",
			done, steps, stats.Agents, stats.Groups, stats.LargestGroup, stats.Polarization, stats.MeanSpeed, stats.Centroid)
	}
	logger.Infof("%d steps in %v", steps, time.Since(start).Round(time.Millisecond))
	return nil
}
