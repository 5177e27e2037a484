// Package brain implements Brian's Brain, a three-state excitable medium.
package brain

import "ca-kernel/pkg/core"

// Firing and Dying are the two alive states.
var (
	Firing = core.Alive(1)
	Dying  = core.Alive(2)
)

// Rule implements Brian's Brain for dimensionality P: firing cells start
// dying, dying cells die, and dead cells with exactly two firing neighbors
// fire.
type Rule[P core.Coord[P]] struct{}

// New returns the rule for dimensionality P.
func New[P core.Coord[P]]() Rule[P] { return Rule[P]{} }

// Next implements core.Rule.
func (Rule[P]) Next(ctx *core.Context[P], _ core.Config) core.Outcome {
	switch ctx.Self {
	case Firing:
		return core.Next(Dying, ctx.Memory)
	case Dying:
		return core.Next(core.Dead, ctx.Memory)
	case core.Dead:
		neighbors := 0
		for _, s := range ctx.Neighbors {
			if s == Firing {
				neighbors++
			}
		}
		if neighbors == 2 {
			return core.Next(Firing, ctx.Memory)
		}
	}
	return core.Unchanged()
}
