// Package flock implements the boids flocking core: agents steered by
// alignment, cohesion and separation, pushed away from obstacles and kept
// inside a confinement region.
//
// A Flock is advanced one discrete step at a time. Every agent of a step is
// computed from the state the whole population had when the step started,
// so the result does not depend on iteration order. A Flock is not safe for
// concurrent use: mutations must happen between two calls to Step.
package flock

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
	"slices"

	"github.com/lao-tseu-is-alive/go-boids/pkg/geometry"
	"golang.org/x/sync/errgroup"
)

// ErrOutsideRegion is returned when an obstacle is placed outside the confinement region.
var ErrOutsideRegion = errors.New("position outside the confinement region")

// minParallelAgents is the population under which workers are not worth their overhead.
const minParallelAgents = 64

// Flock owns the agents, the obstacles and the simulation parameters.
type Flock struct {
	params    Params
	agents    []Agent
	next      []Agent // write buffer of Step, swapped with agents at commit
	obstacles []Obstacle
	grid      *spatialGrid
	rng       *rand.Rand
	nextID    uint64
	tick      uint64
}

// AgentState is the read-only view of an agent handed to renderers.
type AgentState struct {
	ID       uint64
	Position geometry.Vector2D
	Velocity geometry.Vector2D
	Heading  float64
}

// Snapshot is a copy of the whole simulation state at a given tick.
type Snapshot struct {
	Tick      uint64
	MaxSpeed  float64
	Agents    []AgentState
	Obstacles []geometry.Vector2D
}

// New validates params and returns an empty flock.
func New(params Params) (*Flock, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	f := &Flock{
		params: params,
		rng:    rand.New(rand.NewPCG(params.Seed, params.Seed^0x9e3779b97f4a7c15)),
		nextID: 1,
	}
	if params.SpatialIndex {
		f.grid = newSpatialGrid(params.NeighborRadius)
	}
	return f, nil
}

// Step advances every agent by one tick.
//
// Agents are read from the current buffer and written to a second one; the
// buffers are swapped only once all agents are computed.
func (f *Flock) Step() {
	n := len(f.agents)
	f.tick++
	if n == 0 {
		return
	}
	f.next = slices.Grow(f.next[:0], n)[:n]
	if f.grid != nil {
		f.grid.rebuild(f.agents)
	}

	workers := f.params.Workers
	if workers <= 1 || n < minParallelAgents {
		f.compute(0, n)
	} else {
		var g errgroup.Group
		g.SetLimit(workers)
		chunk := (n + workers - 1) / workers
		for lo := 0; lo < n; lo += chunk {
			hi := min(lo+chunk, n)
			g.Go(func() error {
				f.compute(lo, hi)
				return nil
			})
		}
		_ = g.Wait()
	}

	f.agents, f.next = f.next, f.agents
}

// compute writes the next state of agents [lo, hi) into f.next.
func (f *Flock) compute(lo, hi int) {
	var scratch []int
	for i := lo; i < hi; i++ {
		f.next[i] = f.advance(i, &scratch)
	}
}

// advance returns the state agent i has at the end of the current step.
func (f *Flock) advance(i int, scratch *[]int) Agent {
	self := f.agents[i]
	n := f.perceive(i, scratch)

	switch {
	case n.steers():
		self.Integrate(n.steering(self, &f.params), f.params.MaxSpeed)
	case f.params.DriftWhenIsolated:
		self.Drift()
	default:
		// Nothing in range: the agent holds its position and velocity.
		return self
	}
	f.params.Confinement.Apply(&self, f.params.MaxSpeed)
	return self
}

// perceive scans the other agents and the obstacles around agent i.
func (f *Flock) perceive(i int, scratch *[]int) neighborhood {
	var n neighborhood
	self := f.agents[i]
	visit := func(j int) {
		if j == i {
			return
		}
		other := f.agents[j]
		if d := self.Position.DistanceTo(other.Position); d < f.params.NeighborRadius {
			n.addNeighbor(self, other, d, &f.params)
		}
	}

	if f.grid != nil {
		*scratch = f.grid.near(self.Position, *scratch)
		for _, j := range *scratch {
			visit(j)
		}
	} else {
		for j := range f.agents {
			visit(j)
		}
	}

	threshold := f.params.obstacleRange()
	for _, o := range f.obstacles {
		if d := self.Position.DistanceTo(o.Position); d < threshold {
			n.addObstacle(self, o, d, &f.params)
		}
	}
	return n
}

// AddAgent appends an agent at position with a random heading at the current MaxSpeed.
func (f *Flock) AddAgent(position geometry.Vector2D) Agent {
	a := NewAgent(f.nextID, position, f.params.MaxSpeed, f.rng)
	f.nextID++
	f.agents = append(f.agents, a)
	return a
}

// SpawnAgent adds an agent at a random point of the confinement region.
func (f *Flock) SpawnAgent() Agent {
	return f.AddAgent(f.params.Confinement.RandomPoint(f.rng))
}

// Populate spawns n agents at random points of the region.
func (f *Flock) Populate(n int) {
	for range n {
		f.SpawnAgent()
	}
}

// RemoveAgent deletes the agent with the given ID, keeping the order of the others.
func (f *Flock) RemoveAgent(id uint64) bool {
	i := slices.IndexFunc(f.agents, func(a Agent) bool { return a.ID == id })
	if i < 0 {
		return false
	}
	f.agents = slices.Delete(f.agents, i, i+1)
	return true
}

// AddObstacle appends a static obstacle. Positions outside the confinement
// region are rejected with ErrOutsideRegion.
func (f *Flock) AddObstacle(position geometry.Vector2D) error {
	if !position.IsFinite() || !f.params.Confinement.Contains(position) {
		return fmt.Errorf("obstacle at %v: %w", position, ErrOutsideRegion)
	}
	f.obstacles = append(f.obstacles, Obstacle{Position: position})
	return nil
}

// SpawnObstacle adds an obstacle at a random point of the region.
func (f *Flock) SpawnObstacle() (geometry.Vector2D, error) {
	p := f.params.Confinement.RandomPoint(f.rng)
	return p, f.AddObstacle(p)
}

// SetMaxSpeed changes the shared speed limit. Negative or NaN values become 0.
// The new limit applies from the next step, unless ClampOnSpeedChange is set.
func (f *Flock) SetMaxSpeed(v float64) {
	if math.IsNaN(v) || v < 0 {
		v = 0
	}
	f.params.MaxSpeed = v
	if !f.params.ClampOnSpeedChange {
		return
	}
	for i := range f.agents {
		if f.agents[i].Velocity.Len() > v {
			f.agents[i].Velocity = f.agents[i].Velocity.WithLen(v)
		}
	}
}

// MaxSpeed returns the current speed limit.
func (f *Flock) MaxSpeed() float64 { return f.params.MaxSpeed }

// Params returns a copy of the current parameters.
func (f *Flock) Params() Params { return f.params }

// Tick returns the number of steps run so far.
func (f *Flock) Tick() uint64 { return f.tick }

// Len returns the number of agents.
func (f *Flock) Len() int { return len(f.agents) }

// Agents returns a copy of the agents' state.
func (f *Flock) Agents() []AgentState {
	out := make([]AgentState, len(f.agents))
	for i, a := range f.agents {
		out[i] = AgentState{
			ID:       a.ID,
			Position: a.Position,
			Velocity: a.Velocity,
			Heading:  a.Heading(),
		}
	}
	return out
}

// Obstacles returns a copy of the obstacle positions.
func (f *Flock) Obstacles() []geometry.Vector2D {
	out := make([]geometry.Vector2D, len(f.obstacles))
	for i, o := range f.obstacles {
		out[i] = o.Position
	}
	return out
}

// Snapshot returns a copy of the whole state.
func (f *Flock) Snapshot() Snapshot {
	return Snapshot{
		Tick:      f.tick,
		MaxSpeed:  f.params.MaxSpeed,
		Agents:    f.Agents(),
		Obstacles: f.Obstacles(),
	}
}
