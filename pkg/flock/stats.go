package flock

import "github.com/lao-tseu-is-alive/go-boids/pkg/geometry"

// Stats summarizes the population for overlays and headless runs.
type Stats struct {
	Agents       int
	Obstacles    int
	Centroid     geometry.Vector2D
	MeanSpeed    float64
	Polarization float64 // |sum of unit headings| / agents, 1 means all aligned
	Groups       int     // connected components under NeighborRadius
	LargestGroup int
}

// Stats computes the population summary. Grouping is all-pairs, O(n²).
func (f *Flock) Stats() Stats {
	s := Stats{Agents: len(f.agents), Obstacles: len(f.obstacles)}
	if s.Agents == 0 {
		return s
	}

	var sumPos, sumDir geometry.Vector2D
	var sumSpeed float64
	for _, a := range f.agents {
		sumPos = sumPos.Add(a.Position)
		sumDir = sumDir.Add(a.Velocity.Normalize())
		sumSpeed += a.Speed()
	}
	n := float64(s.Agents)
	s.Centroid = sumPos.Div(n)
	s.MeanSpeed = sumSpeed / n
	s.Polarization = sumDir.Len() / n

	groups := newUnionFind(s.Agents)
	for i := range f.agents {
		for j := i + 1; j < len(f.agents); j++ {
			if f.agents[i].Position.DistanceTo(f.agents[j].Position) < f.params.NeighborRadius {
				groups.union(i, j)
			}
		}
	}
	s.Groups, s.LargestGroup = groups.summary()
	return s
}

type unionFind struct {
	parent []int
	size   []int
}

func newUnionFind(n int) *unionFind {
	u := &unionFind{parent: make([]int, n), size: make([]int, n)}
	for i := range u.parent {
		u.parent[i] = i
		u.size[i] = 1
	}
	return u
}

func (u *unionFind) find(i int) int {
	for u.parent[i] != i {
		u.parent[i] = u.parent[u.parent[i]]
		i = u.parent[i]
	}
	return i
}

func (u *unionFind) union(a, b int) {
	ra, rb := u.find(a), u.find(b)
	if ra == rb {
		return
	}
	if u.size[ra] < u.size[rb] {
		ra, rb = rb, ra
	}
	u.parent[rb] = ra
	u.size[ra] += u.size[rb]
}

// summary returns the number of components and the size of the largest.
func (u *unionFind) summary() (count, largest int) {
	for i := range u.parent {
		if u.parent[i] == i {
			count++
			largest = max(largest, u.size[i])
		}
	}
	return count, largest
}
