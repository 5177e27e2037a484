package core

import "fmt"

// Dense stores every cell of a bounded grid in row-major order.
type Dense[P Coord[P]] struct {
	size  P
	cells []Cell
	spare []Cell
}

// NewDense allocates a blank grid. Non-positive extents are raised to one.
func NewDense[P Coord[P]](size P) *Dense[P] {
	size = size.Clamp()
	n := size.Volume()
	return &Dense[P]{size: size, cells: make([]Cell, n), spare: make([]Cell, n)}
}

// NewDenseFrom wraps existing cells. It panics when the slice length does not
// match the size.
func NewDenseFrom[P Coord[P]](size P, cells []Cell) *Dense[P] {
	if n := size.Volume(); n <= 0 || len(cells) != n {
		panic(fmt.Sprintf("core: dense grid of size %v needs %d cells, got %d", size, n, len(cells)))
	}
	return &Dense[P]{size: size, cells: cells, spare: make([]Cell, len(cells))}
}

func (*Dense[P]) sealed() {}

// Kind reports KindDense.
func (*Dense[P]) Kind() Kind { return KindDense }

// Size returns the grid extent.
func (g *Dense[P]) Size() P { return g.size }

// Len returns the number of cells.
func (g *Dense[P]) Len() int { return len(g.cells) }

// Cells exposes the backing slice so callers can read/write values directly.
func (g *Dense[P]) Cells() []Cell { return g.cells }

// Get returns the cell at p, or false when p is out of bounds.
func (g *Dense[P]) Get(p P) (Cell, bool) {
	if !p.In(g.size) {
		return Cell{}, false
	}
	return g.cells[p.Index(g.size)], true
}

// Set stores c at p. It reports false, leaving the grid untouched, when p is
// out of bounds.
func (g *Dense[P]) Set(p P, c Cell) bool {
	if !p.In(g.size) {
		return false
	}
	g.cells[p.Index(g.size)] = c
	return true
}

// StateAt returns the state at p, Dead when out of bounds.
func (g *Dense[P]) StateAt(p P) State {
	if !p.In(g.size) {
		return Dead
	}
	return g.cells[p.Index(g.size)].State
}

// Each calls fn for every cell in row-major order until fn returns false.
func (g *Dense[P]) Each(fn func(P, Cell) bool) {
	for i, c := range g.cells {
		if !fn(g.size.At(i), c) {
			return
		}
	}
}

// Clear resets every cell to Dead with no memory.
func (g *Dense[P]) Clear() {
	clear(g.cells)
}

// Clone returns a deep copy of the cell array. Memory values are copied as
// interface values.
func (g *Dense[P]) Clone() *Dense[P] {
	return &Dense[P]{
		size:  g.size,
		cells: append([]Cell(nil), g.cells...),
		spare: make([]Cell, len(g.cells)),
	}
}

// Advance performs one double-buffered generation. next starts as a copy of
// snapshot; fill must only read snapshot and only write next. Afterwards next
// becomes the grid's contents.
func (g *Dense[P]) Advance(fill func(snapshot, next []Cell)) {
	copy(g.spare, g.cells)
	fill(g.cells, g.spare)
	g.cells, g.spare = g.spare, g.cells
}
