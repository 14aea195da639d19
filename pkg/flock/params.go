package flock

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidParams is wrapped by every configuration error returned by New.
var ErrInvalidParams = errors.New("invalid flock parameters")

// ObstacleLaw selects how an obstacle pushes an agent away.
type ObstacleLaw int

const (
	// InverseSquare pushes with (A-O) * (ObstacleRadius/d)^2.
	InverseSquare ObstacleLaw = iota
	// InverseLinear pushes with (A-O) * ObstacleGain/d.
	InverseLinear
)

func (l ObstacleLaw) String() string {
	switch l {
	case InverseSquare:
		return "inverse-square"
	case InverseLinear:
		return "inverse-linear"
	default:
		return fmt.Sprintf("ObstacleLaw(%d)", int(l))
	}
}

// ParseObstacleLaw converts the configuration name of a law.
func ParseObstacleLaw(s string) (ObstacleLaw, error) {
	switch s {
	case "inverse-square", "":
		return InverseSquare, nil
	case "inverse-linear":
		return InverseLinear, nil
	}
	return 0, fmt.Errorf("%w: unknown obstacle law %q", ErrInvalidParams, s)
}

// Steering selects how the three flocking rules are combined.
type Steering int

const (
	// Blended adds the averaged neighbor velocity, the scaled pull toward the
	// neighbor centroid and the distance-weighted separation.
	Blended Steering = iota
	// Snapped rescales each rule to MaxSpeed before adding them, alignment
	// being taken relative to the agent's own velocity.
	Snapped
)

func (s Steering) String() string {
	switch s {
	case Blended:
		return "blended"
	case Snapped:
		return "snapped"
	default:
		return fmt.Sprintf("Steering(%d)", int(s))
	}
}

// ParseSteering converts the configuration name of a steering mode.
func ParseSteering(s string) (Steering, error) {
	switch s {
	case "blended", "":
		return Blended, nil
	case "snapped":
		return Snapped, nil
	}
	return 0, fmt.Errorf("%w: unknown steering mode %q", ErrInvalidParams, s)
}

// Params controls the physics of a Flock. Only MaxSpeed can change after
// construction (see Flock.SetMaxSpeed).
type Params struct {
	MaxSpeed         float64 // speed every steered agent is snapped to
	NeighborRadius   float64 // alignment/cohesion range
	SeparationRadius float64 // personal space radius
	CohesionScale    float64 // divides the pull toward the neighbor centroid

	ObstacleRadius float64 // obstacle proximity threshold, 0 means NeighborRadius
	ObstacleGain   float64 // k of the inverse-linear law
	ObstacleLaw    ObstacleLaw
	Steering       Steering

	Confinement Confinement

	// DriftWhenIsolated lets agents without neighbors keep moving at their
	// current velocity instead of freezing in place.
	DriftWhenIsolated bool
	// ClampOnSpeedChange rescales velocities above a lowered MaxSpeed at once
	// instead of waiting for the agent's next steered step.
	ClampOnSpeedChange bool
	// SpatialIndex enables the uniform grid neighbor lookup.
	SpatialIndex bool
	// Workers > 1 computes agents in parallel.
	Workers int

	Seed uint64
}

// DefaultParams returns the parameters of the classic wrap-around world.
func DefaultParams() Params {
	return Params{
		MaxSpeed:         4,
		NeighborRadius:   70,
		SeparationRadius: 30,
		CohesionScale:    100,
		ObstacleRadius:   50,
		ObstacleGain:     1,
		ObstacleLaw:      InverseSquare,
		Steering:         Blended,
		Confinement:      Wrap{Width: 800, Height: 600},
		Workers:          1,
	}
}

// obstacleRange returns the effective obstacle proximity threshold.
func (p Params) obstacleRange() float64 {
	if p.ObstacleRadius == 0 {
		return p.NeighborRadius
	}
	return p.ObstacleRadius
}

// Validate reports the first configuration error, wrapped in ErrInvalidParams.
func (p Params) Validate() error {
	checks := []struct {
		ok  bool
		msg string
	}{
		{finite(p.MaxSpeed) && p.MaxSpeed >= 0, fmt.Sprintf("maxSpeed must be >= 0, got %v", p.MaxSpeed)},
		{finite(p.NeighborRadius) && p.NeighborRadius > 0, fmt.Sprintf("neighborRadius must be > 0, got %v", p.NeighborRadius)},
		{finite(p.SeparationRadius) && p.SeparationRadius >= 0, fmt.Sprintf("separationRadius must be >= 0, got %v", p.SeparationRadius)},
		{finite(p.CohesionScale) && p.CohesionScale > 0, fmt.Sprintf("cohesionScale must be > 0, got %v", p.CohesionScale)},
		{finite(p.ObstacleRadius) && p.ObstacleRadius >= 0, fmt.Sprintf("obstacleRadius must be >= 0, got %v", p.ObstacleRadius)},
		{finite(p.ObstacleGain), fmt.Sprintf("obstacleGain must be finite, got %v", p.ObstacleGain)},
		{p.ObstacleLaw == InverseSquare || p.ObstacleLaw == InverseLinear, fmt.Sprintf("unknown obstacle law %v", p.ObstacleLaw)},
		{p.Steering == Blended || p.Steering == Snapped, fmt.Sprintf("unknown steering %v", p.Steering)},
		{p.Workers >= 0, fmt.Sprintf("workers must be >= 0, got %d", p.Workers)},
		{p.Confinement != nil, "a confinement policy is required"},
	}
	for _, c := range checks {
		if !c.ok {
			return fmt.Errorf("%w: %s", ErrInvalidParams, c.msg)
		}
	}
	if err := p.Confinement.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidParams, err)
	}
	return nil
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
