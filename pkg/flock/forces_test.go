package flock

import (
	"testing"

	"github.com/lao-tseu-is-alive/go-boids/pkg/geometry"
)

func TestParams_obstacleRange(t *testing.T) {
	p := DefaultParams()
	if got := p.obstacleRange(); got != 50 {
		t.Errorf("obstacleRange() = %v; want ObstacleRadius 50", got)
	}
	p.ObstacleRadius = 0
	if got := p.obstacleRange(); got != p.NeighborRadius {
		t.Errorf("obstacleRange() with zero radius = %v; want NeighborRadius %v", got, p.NeighborRadius)
	}
}

func TestPerceive_ObstacleLaws(t *testing.T) {
	agent := geometry.Vector2D{X: 100, Y: 100}

	tests := []struct {
		name      string
		law       ObstacleLaw
		radius    float64
		gain      float64
		obstacle  geometry.Vector2D
		want      geometry.Vector2D
		wantCount int
	}{
		// (A-O) * (R/d)^2 = (-20,0) * 6.25
		{"inverse square", InverseSquare, 50, 1, geometry.Vector2D{X: 120, Y: 100}, geometry.Vector2D{X: -125, Y: 0}, 1},
		// R falls back to NeighborRadius: (-20,0) * (70/20)^2
		{"inverse square fallback radius", InverseSquare, 0, 1, geometry.Vector2D{X: 120, Y: 100}, geometry.Vector2D{X: -245, Y: 0}, 1},
		{"inverse square fallback inside", InverseSquare, 0, 1, geometry.Vector2D{X: 100, Y: 160}, geometry.Vector2D{X: 0, Y: -60 * 4900.0 / 3600}, 1},
		// (A-O) * k/d = (0,-20) * 2/20
		{"inverse linear", InverseLinear, 50, 2, geometry.Vector2D{X: 100, Y: 120}, geometry.Vector2D{X: 0, Y: -2}, 1},
		{"inverse linear diagonal", InverseLinear, 50, 5, geometry.Vector2D{X: 97, Y: 96}, geometry.Vector2D{X: 3, Y: 4}, 1},
		{"coincident square", InverseSquare, 50, 1, agent, geometry.Zero, 1},
		{"coincident linear", InverseLinear, 50, 1, agent, geometry.Zero, 1},
		{"at threshold", InverseSquare, 50, 1, geometry.Vector2D{X: 150, Y: 100}, geometry.Zero, 0},
		{"at fallback threshold", InverseLinear, 0, 1, geometry.Vector2D{X: 100, Y: 170}, geometry.Zero, 0},
		{"out of range", InverseSquare, 50, 1, geometry.Vector2D{X: 300, Y: 300}, geometry.Zero, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newTestFlock(t, func(p *Params) {
				p.Confinement = Wrap{Width: 800, Height: 600}
				p.ObstacleLaw = tt.law
				p.ObstacleRadius = tt.radius
				p.ObstacleGain = tt.gain
			})
			f.AddAgent(agent)
			if err := f.AddObstacle(tt.obstacle); err != nil {
				t.Fatalf("AddObstacle() error = %v", err)
			}

			var scratch []int
			n := f.perceive(0, &scratch)
			if !n.separation.Eq(tt.want) {
				t.Errorf("separation = %v; want %v", n.separation, tt.want)
			}
			if n.obstacles != tt.wantCount {
				t.Errorf("obstacles in range = %d; want %d", n.obstacles, tt.wantCount)
			}
			if n.count != 0 {
				t.Errorf("neighbor count = %d; want 0", n.count)
			}
		})
	}
}

func TestObstacleLaw_push(t *testing.T) {
	p := DefaultParams()
	p.ObstacleGain = 3
	offset := geometry.Vector2D{X: 6, Y: 8}

	tests := []struct {
		law  ObstacleLaw
		d    float64
		want geometry.Vector2D
	}{
		{InverseSquare, 10, geometry.Vector2D{X: 150, Y: 200}},
		{InverseLinear, 10, geometry.Vector2D{X: 1.8, Y: 2.4}},
		{InverseSquare, 0, geometry.Zero},
		{InverseLinear, 0, geometry.Zero},
	}
	for _, tt := range tests {
		if got := tt.law.push(offset, tt.d, &p); !got.Eq(tt.want) {
			t.Errorf("%v.push(%v, %v) = %v; want %v", tt.law, offset, tt.d, got, tt.want)
		}
	}
}
