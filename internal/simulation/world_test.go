package simulation

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/lao-tseu-is-alive/go-boids/pkg/flock"
	"github.com/lao-tseu-is-alive/go-boids/pkg/geometry"
	"github.com/tochemey/goakt/v3/log"
)

func startTestEngine(t *testing.T, tweak func(*Config)) *Engine {
	t.Helper()
	cfg := DefaultConfig()
	cfg.InitialAgents = 20
	cfg.Seed = 11
	if tweak != nil {
		tweak(cfg)
	}
	ctx := context.Background()
	e, err := StartEngine(ctx, cfg, log.DiscardLogger)
	if err != nil {
		t.Fatalf("StartEngine() error = %v", err)
	}
	t.Cleanup(func() { _ = e.Stop(ctx) })
	return e
}

func TestEngine_StepMatchesDirectFlock(t *testing.T) {
	ctx := context.Background()
	e := startTestEngine(t, nil)

	if err := e.Step(ctx, 5); err != nil {
		t.Fatalf("Step() error = %v", err)
	}
	got, err := e.Snapshot(ctx)
	if err != nil {
		t.Fatalf("Snapshot() error = %v", err)
	}
	if got.Tick != 5 {
		t.Errorf("Tick = %d; want 5", got.Tick)
	}

	params, err := e.Config().Params()
	if err != nil {
		t.Fatal(err)
	}
	f, err := flock.New(params)
	if err != nil {
		t.Fatal(err)
	}
	f.Populate(e.Config().InitialAgents)
	for range 5 {
		f.Step()
	}
	if want := f.Agents(); !reflect.DeepEqual(got.Agents, want) {
		t.Errorf("actor agents differ from a direct run:\n got %+v\nwant %+v", got.Agents, want)
	}
}

func TestEngine_MutationsLandInOrder(t *testing.T) {
	ctx := context.Background()
	e := startTestEngine(t, func(c *Config) { c.InitialAgents = 0 })

	steps := []func() error{
		func() error { return e.AddAgent(ctx, geometry.NewVector(100, 100)) },
		func() error { return e.Step(ctx, 1) },
		func() error { return e.SpawnAgents(ctx, 3) },
		func() error { return e.AddObstacle(ctx, geometry.NewVector(400, 300)) },
		func() error { return e.SpawnObstacles(ctx, 2) },
		func() error { return e.SetMaxSpeed(ctx, 7) },
	}
	for i, step := range steps {
		if err := step(); err != nil {
			t.Fatalf("command %d error = %v", i, err)
		}
	}

	snap, err := e.Snapshot(ctx)
	if err != nil {
		t.Fatalf("Snapshot() error = %v", err)
	}
	if snap.Tick != 1 || len(snap.Agents) != 4 || len(snap.Obstacles) != 3 || snap.MaxSpeed != 7 {
		t.Errorf("snapshot tick %d, %d agents, %d obstacles, speed %v; want 1, 4, 3, 7",
			snap.Tick, len(snap.Agents), len(snap.Obstacles), snap.MaxSpeed)
	}
	// The lone agent had no neighbor during the step and stayed frozen.
	if snap.Agents[0].Position != geometry.NewVector(100, 100) {
		t.Errorf("first agent moved to %v; want (100, 100)", snap.Agents[0].Position)
	}

	stats, err := e.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats() error = %v", err)
	}
	if stats.Agents != 4 || stats.Obstacles != 3 {
		t.Errorf("stats = %+v; want 4 agents, 3 obstacles", stats)
	}
}

func TestEngine_RejectsObstacleOutsideRegion(t *testing.T) {
	e := startTestEngine(t, func(c *Config) { c.Scenario = ScenarioCircle })

	err := e.AddObstacle(context.Background(), geometry.NewVector(0, 0))
	if !errors.Is(err, flock.ErrOutsideRegion) {
		t.Errorf("AddObstacle(0,0) error = %v; want ErrOutsideRegion", err)
	}
}

func TestEngine_PushesSnapshots(t *testing.T) {
	ctx := context.Background()
	e := startTestEngine(t, nil)

	if err := e.Step(ctx, 2); err != nil {
		t.Fatalf("Step() error = %v", err)
	}
	select {
	case snap := <-e.Snapshots():
		if snap.Tick != 2 || len(snap.Agents) != 20 {
			t.Errorf("pushed snapshot tick %d with %d agents; want 2, 20", snap.Tick, len(snap.Agents))
		}
	case <-time.After(5 * time.Second):
		t.Fatal("no snapshot pushed after Step")
	}
}

func TestEngine_PushesSnapshotsWhilePaused(t *testing.T) {
	ctx := context.Background()
	e := startTestEngine(t, func(c *Config) { c.InitialAgents = 0 })

	next := func() flock.Snapshot {
		t.Helper()
		select {
		case snap := <-e.Snapshots():
			return snap
		case <-time.After(5 * time.Second):
			t.Fatal("no snapshot pushed after mutation")
			return flock.Snapshot{}
		}
	}

	if err := e.AddAgent(ctx, geometry.NewVector(50, 50)); err != nil {
		t.Fatalf("AddAgent() error = %v", err)
	}
	if snap := next(); snap.Tick != 0 || len(snap.Agents) != 1 {
		t.Errorf("snapshot after AddAgent: tick %d, %d agents; want 0, 1", snap.Tick, len(snap.Agents))
	}

	if err := e.AddObstacle(ctx, geometry.NewVector(200, 200)); err != nil {
		t.Fatalf("AddObstacle() error = %v", err)
	}
	if snap := next(); len(snap.Obstacles) != 1 {
		t.Errorf("snapshot after AddObstacle: %d obstacles; want 1", len(snap.Obstacles))
	}

	if err := e.SetMaxSpeed(ctx, 6); err != nil {
		t.Fatalf("SetMaxSpeed() error = %v", err)
	}
	if snap := next(); snap.MaxSpeed != 6 {
		t.Errorf("snapshot after SetMaxSpeed: max speed %v; want 6", snap.MaxSpeed)
	}
}
