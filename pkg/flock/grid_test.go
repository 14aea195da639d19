package flock

import (
	"slices"
	"testing"

	"github.com/lao-tseu-is-alive/go-boids/pkg/geometry"
)

func TestSpatialGrid_rebuild(t *testing.T) {
	g := newSpatialGrid(100)
	agents := []Agent{
		{ID: 1, Position: geometry.Vector2D{X: 50, Y: 50}},   // 0,0
		{ID: 2, Position: geometry.Vector2D{X: 150, Y: 50}},  // 1,0
		{ID: 3, Position: geometry.Vector2D{X: 50, Y: 150}},  // 0,1
		{ID: 4, Position: geometry.Vector2D{X: 250, Y: 250}}, // 2,2
		{ID: 5, Position: geometry.Vector2D{X: -50, Y: -1}},  // -1,-1
	}

	g.rebuild(agents)

	tests := []struct {
		key  gridKey
		want []int
	}{
		{gridKey{x: 0, y: 0}, []int{0}},
		{gridKey{x: 1, y: 0}, []int{1}},
		{gridKey{x: 0, y: 1}, []int{2}},
		{gridKey{x: 2, y: 2}, []int{3}},
		{gridKey{x: -1, y: -1}, []int{4}},
	}
	for _, tt := range tests {
		if got := g.cells[tt.key]; !slices.Equal(got, tt.want) {
			t.Errorf("cell %v = %v; want %v", tt.key, got, tt.want)
		}
	}

	// A second rebuild must not keep stale entries.
	agents[0].Position = geometry.Vector2D{X: 150, Y: 60}
	g.rebuild(agents)
	if got := g.cells[gridKey{x: 0, y: 0}]; len(got) != 0 {
		t.Errorf("cell 0,0 after move = %v; want empty", got)
	}
	if got, want := g.cells[gridKey{x: 1, y: 0}], []int{0, 1}; !slices.Equal(got, want) {
		t.Errorf("cell 1,0 after move = %v; want %v", got, want)
	}
}

func TestSpatialGrid_near(t *testing.T) {
	g := newSpatialGrid(100)
	agents := []Agent{
		{Position: geometry.Vector2D{X: 350, Y: 350}}, // 3,3: outside the block
		{Position: geometry.Vector2D{X: 150, Y: 150}}, // 1,1: center
		{Position: geometry.Vector2D{X: 50, Y: 50}},   // 0,0: corner of the block
		{Position: geometry.Vector2D{X: 299, Y: 101}}, // 2,1
	}
	g.rebuild(agents)

	got := g.near(geometry.Vector2D{X: 150, Y: 150}, nil)
	if want := []int{1, 2, 3}; !slices.Equal(got, want) {
		t.Errorf("near(150,150) = %v; want %v", got, want)
	}
}

func TestSpatialGrid_CoversNeighborRadius(t *testing.T) {
	f := newTestFlock(t, func(p *Params) {
		p.Confinement = Wrap{Width: 500, Height: 500}
		p.SpatialIndex = true
	})
	f.Populate(300)
	f.grid.rebuild(f.agents)

	var scratch []int
	for i, a := range f.agents {
		scratch = f.grid.near(a.Position, scratch)
		for j, b := range f.agents {
			if i == j || a.Position.DistanceTo(b.Position) >= f.params.NeighborRadius {
				continue
			}
			if _, found := slices.BinarySearch(scratch, j); !found {
				t.Fatalf("neighbor %d of agent %d missing from grid lookup", j, i)
			}
		}
	}
}

func BenchmarkSpatialGrid_rebuild(b *testing.B) {
	g := newSpatialGrid(100)
	agents := make([]Agent, 1000)
	for i := range agents {
		agents[i].Position = geometry.Vector2D{X: float64(i), Y: float64(i)}
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		g.rebuild(agents)
	}
}

func BenchmarkSpatialGrid_near(b *testing.B) {
	g := newSpatialGrid(100)
	agents := make([]Agent, 1000)
	for i := range agents {
		agents[i].Position = geometry.Vector2D{X: float64(i % 1000), Y: float64(i % 1000)}
	}
	g.rebuild(agents)
	var scratch []int

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		scratch = g.near(geometry.Vector2D{X: 500, Y: 500}, scratch)
	}
}

func TestStep_SpatialIndexMatchesFullScanFarOut(t *testing.T) {
	tests := []struct {
		name string
		a, b geometry.Vector2D
	}{
		{"positive", geometry.Vector2D{X: 1e21, Y: 0}, geometry.Vector2D{X: 1e21, Y: 10}},
		{"negative", geometry.Vector2D{X: -1e21, Y: -1e21}, geometry.Vector2D{X: -1e21 + 1e6, Y: -1e21}},
		{"mixed", geometry.Vector2D{X: 1e21, Y: 5}, geometry.Vector2D{X: 20, Y: 5}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			run := func(index bool) []AgentState {
				f := newTestFlock(t, func(p *Params) {
					p.Confinement = Wrap{Width: 800, Height: 600}
					p.SpatialIndex = index
				})
				place(f, tt.a, geometry.Vector2D{X: 4, Y: 0})
				place(f, tt.b, geometry.Vector2D{X: -4, Y: 0})
				place(f, geometry.Vector2D{X: 30, Y: 5}, geometry.Vector2D{X: 0, Y: 4})
				f.Step()
				return f.Agents()
			}
			naive, indexed := run(false), run(true)
			for i := range naive {
				if naive[i] != indexed[i] {
					t.Errorf("agent %d: full scan %+v, spatial index %+v", i, naive[i], indexed[i])
				}
			}
		})
	}
}

func TestSpatialGrid_FarAgents(t *testing.T) {
	g := newSpatialGrid(70)
	agents := []Agent{
		{Position: geometry.Vector2D{X: 1e21, Y: 0}},
		{Position: geometry.Vector2D{X: 10, Y: 10}},
		{Position: geometry.Vector2D{X: 1e21, Y: 10}},
		{Position: geometry.Vector2D{X: 5000, Y: 5000}},
	}
	g.rebuild(agents)

	if want := []int{0, 2}; !slices.Equal(g.far, want) {
		t.Errorf("far = %v; want %v", g.far, want)
	}
	if got, want := g.near(geometry.Vector2D{X: 1e21, Y: 5}, nil), []int{0, 1, 2, 3}; !slices.Equal(got, want) {
		t.Errorf("near(far point) = %v; want every index %v", got, want)
	}
	if got, want := g.near(geometry.Vector2D{X: 0, Y: 0}, nil), []int{0, 1, 2}; !slices.Equal(got, want) {
		t.Errorf("near(origin) = %v; want %v", got, want)
	}
}
