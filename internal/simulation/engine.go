package simulation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/lao-tseu-is-alive/go-boids/internal/pb"
	"github.com/lao-tseu-is-alive/go-boids/pkg/flock"
	"github.com/lao-tseu-is-alive/go-boids/pkg/geometry"
	"github.com/tochemey/goakt/v3/actor"
	"github.com/tochemey/goakt/v3/log"
	"google.golang.org/protobuf/proto"
)

const askTimeout = 5 * time.Second

// Engine runs a FlockActor inside its own actor system and gives callers a
// typed API over the message protocol.
type Engine struct {
	System    actor.ActorSystem
	pid       *actor.PID
	snapshots chan flock.Snapshot
	cfg       *Config
}

// StartEngine builds the flock described by cfg, populates it and starts the actor.
func StartEngine(ctx context.Context, cfg *Config, logger log.Logger) (*Engine, error) {
	params, err := cfg.Params()
	if err != nil {
		return nil, err
	}
	f, err := flock.New(params)
	if err != nil {
		return nil, err
	}
	f.Populate(cfg.InitialAgents)
	for i := 0; i < cfg.InitialObstacles; i++ {
		if _, err := f.SpawnObstacle(); err != nil {
			return nil, fmt.Errorf("failed to place initial obstacle: %w", err)
		}
	}

	system, err := actor.NewActorSystem("BoidsSystem", actor.WithLogger(logger))
	if err != nil {
		return nil, fmt.Errorf("failed to create actor system: %w", err)
	}
	if err := system.Start(ctx); err != nil {
		return nil, fmt.Errorf("failed to start actor system: %w", err)
	}

	// Buffer to avoid blocking the actor
	snapshots := make(chan flock.Snapshot, 10)
	pid, err := system.Spawn(ctx, "flock", NewFlockActor(f, snapshots))
	if err != nil {
		_ = system.Stop(ctx)
		return nil, fmt.Errorf("failed to spawn flock: %w", err)
	}

	return &Engine{System: system, pid: pid, snapshots: snapshots, cfg: cfg}, nil
}

// Config returns the configuration the engine was started with.
func (e *Engine) Config() *Config { return e.cfg }

// Snapshots delivers the state after each processed Step or mutation, so a
// paused front-end still sees its edits. Frames are dropped while the
// receiver lags behind.
func (e *Engine) Snapshots() <-chan flock.Snapshot { return e.snapshots }

func (e *Engine) tell(ctx context.Context, msg proto.Message) error {
	return actor.Tell(ctx, e.pid, msg)
}

// Step queues n simulation steps; zero counts as one.
func (e *Engine) Step(ctx context.Context, n uint32) error { return e.tell(ctx, pb.NewStep(n)) }

func (e *Engine) AddAgent(ctx context.Context, p geometry.Vector2D) error {
	return e.tell(ctx, pb.NewAddAgent(p))
}

func (e *Engine) SpawnAgents(ctx context.Context, n uint32) error {
	return e.tell(ctx, pb.NewSpawnAgents(n))
}

// AddObstacle queues an obstacle. Positions outside the region are rejected
// here, before they reach the actor.
func (e *Engine) AddObstacle(ctx context.Context, p geometry.Vector2D) error {
	region, err := e.cfg.Region()
	if err != nil {
		return err
	}
	if !p.IsFinite() || !region.Contains(p) {
		return fmt.Errorf("obstacle at %v: %w", p, flock.ErrOutsideRegion)
	}
	return e.tell(ctx, pb.NewAddObstacle(p))
}

func (e *Engine) SpawnObstacles(ctx context.Context, n uint32) error {
	return e.tell(ctx, pb.NewSpawnObstacles(n))
}

func (e *Engine) SetMaxSpeed(ctx context.Context, v float64) error {
	return e.tell(ctx, pb.NewSetMaxSpeed(v))
}

// Snapshot waits for every previously queued message, then returns the state.
func (e *Engine) Snapshot(ctx context.Context) (flock.Snapshot, error) {
	resp, err := actor.Ask(ctx, e.pid, pb.NewGetSnapshot(), askTimeout)
	if err != nil {
		return flock.Snapshot{}, fmt.Errorf("snapshot request failed: %w", err)
	}
	return pb.DecodeSnapshot(resp)
}

// Stats waits for every previously queued message, then returns the statistics.
func (e *Engine) Stats(ctx context.Context) (flock.Stats, error) {
	resp, err := actor.Ask(ctx, e.pid, pb.NewGetStats(), askTimeout)
	if err != nil {
		return flock.Stats{}, fmt.Errorf("stats request failed: %w", err)
	}
	return pb.DecodeStats(resp)
}

// Stop shuts the actor system down.
func (e *Engine) Stop(ctx context.Context) error {
	if e == nil || e.System == nil {
		return errors.New("engine not started")
	}
	return e.System.Stop(ctx)
}
