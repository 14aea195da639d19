package simulation

import (
	"time"

	"github.com/lao-tseu-is-alive/go-boids/internal/pb"
	"github.com/lao-tseu-is-alive/go-boids/pkg/flock"
	"github.com/tochemey/goakt/v3/actor"
	"github.com/tochemey/goakt/v3/goaktpb"
)

// FlockActor owns the flock. Its mailbox serializes steps, mutations and
// queries, so additions always land between two steps.
type FlockActor struct {
	flock *flock.Flock
	// Communication with UI
	snapshotCh chan<- flock.Snapshot
	// --- Benchmark Stats ---
	stepCount   int
	cmdCount    int
	lastLogTime time.Time
}

var _ actor.Actor = (*FlockActor)(nil)

// NewFlockActor wraps f. snapshotCh may be nil when nobody renders.
func NewFlockActor(f *flock.Flock, snapshotCh chan<- flock.Snapshot) *FlockActor {
	return &FlockActor{
		flock:       f,
		snapshotCh:  snapshotCh,
		lastLogTime: time.Now(),
	}
}

func (w *FlockActor) PreStart(ctx *actor.Context) error {
	ctx.ActorSystem().Logger().Infof("Flock actor starting with %d agents", w.flock.Len())
	return nil
}

func (w *FlockActor) Receive(ctx *actor.ReceiveContext) {
	if _, ok := ctx.Message().(*goaktpb.PostStart); ok {
		p := w.flock.Params()
		ctx.Logger().Infof("Flock ready: %d agents, %d obstacles, region %v, steering %v",
			w.flock.Len(), len(w.flock.Obstacles()), p.Confinement, p.Steering)
		return
	}

	msg := ctx.Message()
	switch kind := pb.KindOf(msg); kind {
	case pb.KindStep:
		n := max(pb.Count(msg), 1)
		for range n {
			w.flock.Step()
		}
		w.stepCount += int(n)
		w.logBenchmarks(ctx)
		w.pushSnapshot()

	case pb.KindAddAgent:
		w.cmdCount++
		a := w.flock.AddAgent(pb.Position(msg))
		ctx.Logger().Debugf("agent %d added at %v", a.ID, a.Position)
		w.pushSnapshot()

	case pb.KindSpawnAgents:
		w.cmdCount++
		for range pb.Count(msg) {
			a := w.flock.SpawnAgent()
			ctx.Logger().Debugf("agent %d spawned at %v", a.ID, a.Position)
		}
		w.pushSnapshot()

	case pb.KindAddObstacle:
		w.cmdCount++
		p := pb.Position(msg)
		if err := w.flock.AddObstacle(p); err != nil {
			ctx.Logger().Warnf("obstacle at %v rejected: %v", p, err)
			return
		}
		ctx.Logger().Debugf("obstacle added at %v", p)
		w.pushSnapshot()

	case pb.KindSpawnObstacles:
		w.cmdCount++
		for range pb.Count(msg) {
			if _, err := w.flock.SpawnObstacle(); err != nil {
				ctx.Logger().Warnf("obstacle spawn failed: %v", err)
			}
		}
		w.pushSnapshot()

	case pb.KindSetMaxSpeed:
		w.cmdCount++
		w.flock.SetMaxSpeed(pb.MaxSpeed(msg))
		ctx.Logger().Debugf("max speed set to %.2f", w.flock.MaxSpeed())
		w.pushSnapshot()

	case pb.KindGetSnapshot:
		ctx.Response(pb.EncodeSnapshot(w.flock.Snapshot()))

	case pb.KindGetStats:
		ctx.Response(pb.EncodeStats(w.flock.Stats()))

	default:
		ctx.Unhandled()
	}
}

func (w *FlockActor) logBenchmarks(ctx *actor.ReceiveContext) {
	if time.Since(w.lastLogTime) >= time.Second {
		ctx.Logger().Infof("📊 STEP RATE: %d/sec | Commands: %d | Agents: %d | Tick: %d",
			w.stepCount, w.cmdCount, w.flock.Len(), w.flock.Tick())
		w.stepCount = 0
		w.cmdCount = 0
		w.lastLogTime = time.Now()
	}
}

func (w *FlockActor) pushSnapshot() {
	if w.snapshotCh == nil {
		return
	}
	select {
	case w.snapshotCh <- w.flock.Snapshot():
	default:
		// UI busy, skip frame
	}
}

func (w *FlockActor) PostStop(ctx *actor.Context) error {
	ctx.ActorSystem().Logger().Infof("Flock actor stopped at tick %d", w.flock.Tick())
	return nil
}
