package core

import (
	"maps"
	"slices"
)

// Sparse stores only cells that were written. Absent coordinates read as Dead
// with no memory. Entries holding Dead are legal and are not removed.
type Sparse[P Coord[P]] struct {
	cells map[P]Cell
}

// NewSparse returns an empty unbounded grid.
func NewSparse[P Coord[P]]() *Sparse[P] {
	return &Sparse[P]{cells: make(map[P]Cell)}
}

func (*Sparse[P]) sealed() {}

// Kind reports KindSparse.
func (*Sparse[P]) Kind() Kind { return KindSparse }

// Len returns the number of stored entries, Dead ones included.
func (g *Sparse[P]) Len() int { return len(g.cells) }

// Get returns the cell at p; absent coordinates yield the zero Cell.
func (g *Sparse[P]) Get(p P) Cell { return g.cells[p] }

// Lookup returns the stored cell and whether an entry exists.
func (g *Sparse[P]) Lookup(p P) (Cell, bool) {
	c, ok := g.cells[p]
	return c, ok
}

// Set stores c at p, creating the entry if needed.
func (g *Sparse[P]) Set(p P, c Cell) {
	if g.cells == nil {
		g.cells = make(map[P]Cell)
	}
	g.cells[p] = c
}

// Delete removes the entry at p.
func (g *Sparse[P]) Delete(p P) { delete(g.cells, p) }

// StateAt returns the state at p, Dead when absent.
func (g *Sparse[P]) StateAt(p P) State { return g.cells[p].State }

// Keys returns the stored coordinates in row-major order.
func (g *Sparse[P]) Keys() []P {
	return slices.SortedFunc(maps.Keys(g.cells), func(a, b P) int { return a.Compare(b) })
}

// Each calls fn for every entry in row-major order until fn returns false.
func (g *Sparse[P]) Each(fn func(P, Cell) bool) {
	for _, p := range g.Keys() {
		if !fn(p, g.cells[p]) {
			return
		}
	}
}

// Clear removes every entry.
func (g *Sparse[P]) Clear() { clear(g.cells) }

// Clone returns a copy of the coordinate map.
func (g *Sparse[P]) Clone() *Sparse[P] {
	return &Sparse[P]{cells: maps.Clone(g.cells)}
}

// Advance performs one generation: fill reads the snapshot map, which it must
// not modify, and returns the map that replaces it.
func (g *Sparse[P]) Advance(fill func(snapshot map[P]Cell) map[P]Cell) {
	next := fill(g.cells)
	if next == nil {
		next = make(map[P]Cell)
	}
	g.cells = next
}
