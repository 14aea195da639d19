package flock

import (
	"math"

	"github.com/lao-tseu-is-alive/go-boids/pkg/geometry"
)

// Agent represents a single boid of the flock.
// Boids is an artificial life program, developed by Craig Reynolds in 1986,
// which simulates the flocking behaviour of birds. https://en.wikipedia.org/wiki/Boids
// Agents are told apart by ID, never by value: two agents may share a
// position and velocity for a while.
type Agent struct {
	ID       uint64
	Position geometry.Vector2D
	Velocity geometry.Vector2D
}

// NewAgent places an agent at position heading in a uniformly random
// direction at maxSpeed. It consumes exactly one draw from rng.
func NewAgent(id uint64, position geometry.Vector2D, maxSpeed float64, rng Rand) Agent {
	angle := rng.Float64() * 2 * math.Pi
	sin, cos := math.Sincos(angle)
	return Agent{
		ID:       id,
		Position: position,
		Velocity: geometry.Vector2D{X: cos * maxSpeed, Y: sin * maxSpeed},
	}
}

// Integrate adds steering to the velocity, snaps the speed to maxSpeed and
// moves the agent. The magnitude of steering only changes the direction.
func (a *Agent) Integrate(steering geometry.Vector2D, maxSpeed float64) {
	v := a.Velocity.Add(steering)
	if v.Len() > 0 {
		v = v.WithLen(maxSpeed)
	}
	a.Velocity = v
	a.Position = a.Position.Add(v)
}

// Drift moves the agent along its current velocity without steering it.
func (a *Agent) Drift() {
	a.Position = a.Position.Add(a.Velocity)
}

// Heading is the direction of travel in radians.
func (a Agent) Heading() float64 {
	return a.Velocity.Angle()
}

// Speed is the length of the velocity.
func (a Agent) Speed() float64 {
	return a.Velocity.Len()
}

// Obstacle is a static point the agents steer away from.
type Obstacle struct {
	Position geometry.Vector2D
}
