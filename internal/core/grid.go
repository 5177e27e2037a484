package core

import kernel "ca-kernel/pkg/core"

// ByteGrid stores a 2D grid of byte-sized display values in row-major order.
type ByteGrid struct {
	W, H int
	data []uint8
}

// NewByteGrid allocates a grid with the given dimensions.
func NewByteGrid(w, h int) *ByteGrid {
	if w <= 0 {
		w = 1
	}
	if h <= 0 {
		h = 1
	}
	return &ByteGrid{W: w, H: h, data: make([]uint8, w*h)}
}

// Cells exposes the backing slice so callers can read/write values directly.
func (g *ByteGrid) Cells() []uint8 { return g.data }

// Index returns the linear slice index for coordinates (x, y).
func (g *ByteGrid) Index(x, y int) int { return y*g.W + x }

// Clear fills the grid with zeros.
func (g *ByteGrid) Clear() {
	clear(g.data)
}

// Project writes the energy of every cell of b that falls inside the
// W x H window anchored at origin. Cells outside the window are skipped, so a
// sparse grid is shown through a fixed viewport.
func (g *ByteGrid) Project(b kernel.Backend[kernel.Vec2], origin kernel.Vec2) {
	g.Clear()
	b.Each(func(p kernel.Vec2, c kernel.Cell) bool {
		x, y := p.X-origin.X, p.Y-origin.Y
		if x < 0 || y < 0 || x >= g.W || y >= g.H {
			return true
		}
		g.data[g.Index(x, y)] = c.State.Energy()
		return true
	})
}
