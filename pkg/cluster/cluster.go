// Package cluster finds connected components of alive cells and measures how
// self-contained each one is.
//
// Components use the full Moore neighborhood for connectivity (8 in 2-D, 26
// in 3-D). Links are counted over face adjacency only, so a 2x2 block has four
// internal links. Autonomy is 2i/(2i+e) for i internal and e external links,
// and 1.0 for a component with no links at all.
package cluster

import (
	"fmt"

	"ca-kernel/pkg/core"
)

// Stats describes one component.
type Stats struct {
	ID            int     `json:"id"`
	Size          int     `json:"size"`
	InternalLinks int     `json:"internal_links"`
	ExternalLinks int     `json:"external_links"`
	Autonomy      float64 `json:"autonomy"`
}

// Options tunes labeling.
type Options struct {
	// ByState only joins neighbors holding the same state, so a multi-state
	// rule yields one component per homogeneous region and links between
	// regions count as external.
	ByState bool
}

// Labeling maps alive cells to component ids. Ids are assigned in row-major
// order of each component's first cell.
type Labeling[P core.Coord[P]] struct {
	// Members lists each component's cells in discovery order.
	Members [][]P
	lookup  func(P) (int, bool)
}

// Of returns the component id of p, or false when p is not alive.
func (l Labeling[P]) Of(p P) (int, bool) {
	if l.lookup == nil {
		return 0, false
	}
	return l.lookup(p)
}

// Count returns the number of components.
func (l Labeling[P]) Count() int { return len(l.Members) }

// Label runs the flood fill over b. It never mutates b.
func Label[P core.Coord[P]](b core.Backend[P], opts Options) Labeling[P] {
	switch g := b.(type) {
	case *core.Dense[P]:
		return labelDense(g, opts)
	case *core.Sparse[P]:
		return labelSparse(g, opts)
	default:
		panic(fmt.Sprintf("cluster: unsupported backend %T", b))
	}
}

// Analyze labels b and returns one Stats per component, ordered by id.
func Analyze[P core.Coord[P]](b core.Backend[P], opts Options) []Stats {
	return Measure(Label(b, opts))
}

// Measure computes link counts and autonomy for an existing labeling.
func Measure[P core.Coord[P]](l Labeling[P]) []Stats {
	var zero P
	faces := zero.Faces()
	stats := make([]Stats, len(l.Members))
	for id, members := range l.Members {
		internal, external := 0, 0
		for _, p := range members {
			for _, f := range faces {
				other, ok := l.Of(p.Add(f))
				if !ok {
					continue
				}
				if other == id {
					internal++
				} else {
					external++
				}
			}
		}
		// each internal link was seen from both ends
		internal /= 2
		stats[id] = Stats{
			ID:            id,
			Size:          len(members),
			InternalLinks: internal,
			ExternalLinks: external,
			Autonomy:      autonomy(internal, external),
		}
	}
	return stats
}

func autonomy(internal, external int) float64 {
	total := internal*2 + external
	if total == 0 {
		return 1
	}
	return float64(internal*2) / float64(total)
}

func joins(opts Options, a, b core.State) bool {
	if !b.Alive() {
		return false
	}
	return !opts.ByState || a == b
}

func labelDense[P core.Coord[P]](g *core.Dense[P], opts Options) Labeling[P] {
	size := g.Size()
	cells := g.Cells()
	offs := core.Neighborhood[P]()
	labels := make([]int32, len(cells))
	for i := range labels {
		labels[i] = -1
	}

	var members [][]P
	var stack []int
	for seed, c := range cells {
		if !c.State.Alive() || labels[seed] >= 0 {
			continue
		}
		id := int32(len(members))
		var comp []P
		labels[seed] = id
		stack = append(stack[:0], seed)
		for len(stack) > 0 {
			i := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			p := size.At(i)
			comp = append(comp, p)
			for _, o := range offs {
				q := p.Add(o)
				if !q.In(size) {
					continue
				}
				j := q.Index(size)
				if labels[j] >= 0 || !joins(opts, cells[i].State, cells[j].State) {
					continue
				}
				labels[j] = id
				stack = append(stack, j)
			}
		}
		members = append(members, comp)
	}

	return Labeling[P]{
		Members: members,
		lookup: func(p P) (int, bool) {
			if !p.In(size) {
				return 0, false
			}
			id := labels[p.Index(size)]
			return int(id), id >= 0
		},
	}
}

func labelSparse[P core.Coord[P]](g *core.Sparse[P], opts Options) Labeling[P] {
	offs := core.Neighborhood[P]()
	labels := make(map[P]int)

	var members [][]P
	var stack []P
	for _, seed := range g.Keys() {
		if _, done := labels[seed]; done || !g.StateAt(seed).Alive() {
			continue
		}
		id := len(members)
		var comp []P
		labels[seed] = id
		stack = append(stack[:0], seed)
		for len(stack) > 0 {
			p := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			comp = append(comp, p)
			self := g.StateAt(p)
			for _, o := range offs {
				q := p.Add(o)
				if _, done := labels[q]; done || !joins(opts, self, g.StateAt(q)) {
					continue
				}
				labels[q] = id
				stack = append(stack, q)
			}
		}
		members = append(members, comp)
	}

	return Labeling[P]{
		Members: members,
		lookup: func(p P) (int, bool) {
			id, ok := labels[p]
			return id, ok
		},
	}
}
