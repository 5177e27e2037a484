// Package hpp implements an HPP-style lattice gas. Each cell's energy byte
// packs four particle flags, one per direction of travel.
//
// A cell copies in the particles arriving from its axis neighbors, but a cell
// with no arrivals keeps what it holds. A lone saturated cell is therefore
// steady, and the particle count is not conserved: a free particle leaves a
// copy behind at its origin every generation.
package hpp

import "ca-kernel/pkg/core"

// Direction flags packed into the state energy.
const (
	North uint8 = 1 << iota
	East
	South
	West
)

// Moore offset indices of the four axis neighbors.
const (
	fromNorth = 1
	fromWest  = 3
	fromEast  = 4
	fromSouth = 6
)

// Rule gathers particles in from the axis neighbors and applies the head-on
// collision rule. A cell that receives no flux keeps its particles.
type Rule struct{}

// New returns the HPP rule.
func New() Rule { return Rule{} }

// Incoming gathers the particles that move into a cell this generation.
func Incoming(neighbors []core.State) uint8 {
	var in uint8
	// a particle travelling east arrives from the west neighbor, and so on
	in |= neighbors[fromWest].Energy() & East
	in |= neighbors[fromEast].Energy() & West
	in |= neighbors[fromSouth].Energy() & North
	in |= neighbors[fromNorth].Energy() & South
	return in
}

// Collide rotates exact head-on pairs by 90 degrees.
func Collide(bits uint8) uint8 {
	switch bits & 0x0f {
	case North | South:
		return East | West
	case East | West:
		return North | South
	}
	return bits & 0x0f
}

// Next implements core.Rule. Memory is carried through untouched.
func (Rule) Next(ctx *core.Context[core.Vec2], _ core.Config) core.Outcome {
	in := Incoming(ctx.Neighbors)
	if in == 0 {
		return core.Unchanged()
	}
	out := Collide(in)
	if core.State(out) == ctx.Self {
		return core.Unchanged()
	}
	return core.Next(core.Alive(out), ctx.Memory)
}

// Particles counts the particles packed into s.
func Particles(s core.State) int {
	n := 0
	for b := s.Energy() & 0x0f; b != 0; b &= b - 1 {
		n++
	}
	return n
}
