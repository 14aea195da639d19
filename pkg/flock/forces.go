package flock

import "github.com/lao-tseu-is-alive/go-boids/pkg/geometry"

// neighborhood accumulates what one agent perceives during a step.
type neighborhood struct {
	alignment  geometry.Vector2D // sum of neighbor velocities
	cohesion   geometry.Vector2D // sum of neighbor positions
	separation geometry.Vector2D // agent and obstacle repulsion
	count      int
	obstacles  int // obstacles within range
}

// steers reports whether anything was in range this step.
func (n *neighborhood) steers() bool {
	return n.count > 0 || n.obstacles > 0
}

// addNeighbor accounts for another agent found at distance d < NeighborRadius.
func (n *neighborhood) addNeighbor(self, other Agent, d float64, p *Params) {
	n.alignment = n.alignment.Add(other.Velocity)
	n.cohesion = n.cohesion.Add(other.Position)
	n.count++

	if d < p.SeparationRadius {
		away := self.Position.Sub(other.Position)
		switch p.Steering {
		case Snapped:
			n.separation = n.separation.Add(away)
		default:
			// Div guards d == 0: coincident agents do not repel.
			n.separation = n.separation.Add(away.Div(d))
		}
	}
}

// addObstacle accounts for an obstacle found at distance d < obstacleRange.
func (n *neighborhood) addObstacle(self Agent, o Obstacle, d float64, p *Params) {
	n.obstacles++
	n.separation = n.separation.Add(p.ObstacleLaw.push(self.Position.Sub(o.Position), d, p))
}

// push returns the repulsion of an obstacle seen along offset at distance d.
// Strength grows as d shrinks; d == 0 yields no force since the offset is null.
func (l ObstacleLaw) push(offset geometry.Vector2D, d float64, p *Params) geometry.Vector2D {
	if d == 0 {
		return geometry.Zero
	}
	switch l {
	case InverseLinear:
		return offset.Mul(p.ObstacleGain / d)
	default:
		ratio := p.obstacleRange() / d
		return offset.Mul(ratio * ratio)
	}
}

// steering combines the accumulated rules into the vector handed to Agent.Integrate.
func (n *neighborhood) steering(self Agent, p *Params) geometry.Vector2D {
	if p.Steering == Snapped {
		return n.snapped(self, p)
	}
	if n.count == 0 {
		return n.separation
	}
	count := float64(n.count)
	alignment := n.alignment.Div(count)
	centroid := n.cohesion.Div(count)
	cohesion := centroid.Sub(self.Position).Div(p.CohesionScale)
	return alignment.Add(cohesion).Add(n.separation)
}

// snapped is the classic combination where each rule is worth MaxSpeed.
func (n *neighborhood) snapped(self Agent, p *Params) geometry.Vector2D {
	separation := n.separation.WithLen(p.MaxSpeed)
	if n.count == 0 {
		return separation
	}
	count := float64(n.count)

	alignment := n.alignment.Div(count)
	if alignment.Len() > 0 {
		alignment = alignment.WithLen(p.MaxSpeed).Sub(self.Velocity)
	}

	var cohesion geometry.Vector2D
	if centroid := n.cohesion.Div(count); centroid.Len() > 0 {
		cohesion = centroid.Sub(self.Position).WithLen(p.MaxSpeed)
	}
	return alignment.Add(cohesion).Add(separation)
}
