package flock

import (
	"errors"
	"fmt"
	"math"

	"github.com/lao-tseu-is-alive/go-boids/pkg/geometry"
)

// Rand is the random source used for headings and spawn points.
// *rand.Rand from math/rand/v2 satisfies it.
type Rand interface {
	Float64() float64
}

// Confinement keeps agents inside the simulated domain.
// The policy is chosen when the Flock is built and never changes.
type Confinement interface {
	// Apply corrects the agent after it moved.
	Apply(a *Agent, maxSpeed float64)
	// Contains reports whether p lies inside the region.
	Contains(p geometry.Vector2D) bool
	// RandomPoint draws a point inside the region.
	RandomPoint(rng Rand) geometry.Vector2D
	// Validate rejects degenerate regions.
	Validate() error
}

// Wrap is a toroidal rectangle [0, Width] x [0, Height].
// Leaving through one edge re-enters exactly at the opposite edge.
type Wrap struct {
	Width  float64
	Height float64
}

var _ Confinement = Wrap{}

// Apply resets each axis independently: beyond the max goes to 0, below 0 goes to the max.
func (w Wrap) Apply(a *Agent, _ float64) {
	if a.Position.X > w.Width {
		a.Position.X = 0
	} else if a.Position.X < 0 {
		a.Position.X = w.Width
	}
	if a.Position.Y > w.Height {
		a.Position.Y = 0
	} else if a.Position.Y < 0 {
		a.Position.Y = w.Height
	}
}

func (w Wrap) Contains(p geometry.Vector2D) bool {
	return p.X >= 0 && p.X <= w.Width && p.Y >= 0 && p.Y <= w.Height
}

func (w Wrap) RandomPoint(rng Rand) geometry.Vector2D {
	x := rng.Float64() * w.Width
	y := rng.Float64() * w.Height
	return geometry.Vector2D{X: x, Y: y}
}

func (w Wrap) Validate() error {
	if !finite(w.Width) || !finite(w.Height) || w.Width <= 0 || w.Height <= 0 {
		return fmt.Errorf("wrap region must have positive size, got %vx%v", w.Width, w.Height)
	}
	return nil
}

func (w Wrap) String() string {
	return fmt.Sprintf("wrap %vx%v", w.Width, w.Height)
}

// Circle is a round arena. An agent found outside it has its velocity
// overwritten to point at the center; its position is left alone, so it may
// stay outside for one more frame.
type Circle struct {
	Center geometry.Vector2D
	Radius float64
}

var _ Confinement = Circle{}

func (c Circle) Apply(a *Agent, maxSpeed float64) {
	if a.Position.DistanceTo(c.Center) > c.Radius {
		a.Velocity = c.Center.Sub(a.Position).WithLen(maxSpeed)
	}
}

func (c Circle) Contains(p geometry.Vector2D) bool {
	return p.DistanceTo(c.Center) <= c.Radius
}

// RandomPoint draws an angle then a distance from the center, both uniform.
// Points are therefore denser near the center.
func (c Circle) RandomPoint(rng Rand) geometry.Vector2D {
	angle := rng.Float64() * 2 * math.Pi
	r := rng.Float64() * c.Radius
	sin, cos := math.Sincos(angle)
	return geometry.Vector2D{X: c.Center.X + r*cos, Y: c.Center.Y + r*sin}
}

var errCircleRadius = errors.New("circle radius must be > 0")

func (c Circle) Validate() error {
	if !c.Center.IsFinite() {
		return fmt.Errorf("circle center must be finite, got %v", c.Center)
	}
	if !finite(c.Radius) || c.Radius <= 0 {
		return fmt.Errorf("%w, got %v", errCircleRadius, c.Radius)
	}
	return nil
}

func (c Circle) String() string {
	return fmt.Sprintf("circle %v r=%v", c.Center, c.Radius)
}
