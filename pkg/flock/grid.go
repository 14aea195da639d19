package flock

import (
	"math"
	"slices"

	"github.com/lao-tseu-is-alive/go-boids/pkg/geometry"
)

type gridKey struct {
	x, y int64
}

// maxCell bounds cell coordinates so that key arithmetic never overflows.
const maxCell = 1 << 52

// spatialGrid is a uniform spatial hash over agent indices.
// With a cell size >= NeighborRadius every neighbor of a point lies in the
// 3x3 block of cells around it. Agents too far out to be hashed go to far,
// which every lookup scans.
type spatialGrid struct {
	cellSize float64
	cells    map[gridKey][]int
	far      []int
	size     int
}

func newSpatialGrid(cellSize float64) *spatialGrid {
	return &spatialGrid{
		cellSize: cellSize,
		cells:    make(map[gridKey][]int),
	}
}

// key returns the cell of p; ok is false when p lies beyond maxCell cells.
func (g *spatialGrid) key(p geometry.Vector2D) (k gridKey, ok bool) {
	x := math.Floor(p.X / g.cellSize)
	y := math.Floor(p.Y / g.cellSize)
	if !(math.Abs(x) <= maxCell && math.Abs(y) <= maxCell) {
		return gridKey{}, false
	}
	return gridKey{x: int64(x), y: int64(y)}, true
}

// rebuild indexes agents by cell. Slices are truncated rather than
// reallocated so a steady-state flock rebuilds without allocating.
func (g *spatialGrid) rebuild(agents []Agent) {
	for k := range g.cells {
		g.cells[k] = g.cells[k][:0]
	}
	g.far = g.far[:0]
	g.size = len(agents)
	for i, a := range agents {
		if !a.Position.IsFinite() {
			continue
		}
		k, ok := g.key(a.Position)
		if !ok {
			g.far = append(g.far, i)
			continue
		}
		g.cells[k] = append(g.cells[k], i)
	}
}

// near appends to dst the indices stored in the 3x3 cells around p and the
// far ones, in ascending order, so callers accumulate in the same order as a
// full scan. A point that cannot be hashed gets every index.
func (g *spatialGrid) near(p geometry.Vector2D, dst []int) []int {
	dst = dst[:0]
	if !p.IsFinite() {
		return dst
	}
	center, ok := g.key(p)
	if !ok {
		for i := range g.size {
			dst = append(dst, i)
		}
		return dst
	}
	dst = append(dst, g.far...)
	for i := center.x - 1; i <= center.x+1; i++ {
		for j := center.y - 1; j <= center.y+1; j++ {
			if idx, ok := g.cells[gridKey{x: i, y: j}]; ok {
				dst = append(dst, idx...)
			}
		}
	}
	slices.Sort(dst)
	return dst
}
