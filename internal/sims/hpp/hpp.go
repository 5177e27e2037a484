// Package hpp registers the HPP lattice gas.
package hpp

import (
	"image/color"

	"ca-kernel/internal/render"
	"ca-kernel/internal/sims"
	kernel "ca-kernel/pkg/core"
	"ca-kernel/pkg/rules/hpp"
)

// Name is the registry key.
const Name = "hpp"

// Seed fills the grid with random particles at probability "density"
// (default 0.2) per direction and packs a saturated square of side "block"
// (default an eighth of the width) at the centre.
func Seed(size kernel.Vec2, rng *kernel.RNG, cfg kernel.Config, set func(kernel.Vec2, kernel.Cell)) {
	density := cfg.Float("density", 0.2)
	block := cfg.Int("block", size.X/8)
	x0, y0 := (size.X-block)/2, (size.Y-block)/2
	for i := 0; i < size.Volume(); i++ {
		p := size.At(i)
		var bits uint8
		if p.X >= x0 && p.X < x0+block && p.Y >= y0 && p.Y < y0+block {
			bits = hpp.North | hpp.East | hpp.South | hpp.West
		} else {
			for _, d := range []uint8{hpp.North, hpp.East, hpp.South, hpp.West} {
				if rng.Chance(density) {
					bits |= d
				}
			}
		}
		if bits != 0 {
			set(p, kernel.Cell{State: kernel.Alive(bits)})
		}
	}
}

// palette shades cells by particle count.
func palette() render.Palette {
	p := make(render.Palette, 16)
	for i := range p {
		v := uint8(hpp.Particles(kernel.State(i)) * 60)
		p[i] = color.RGBA{R: v / 2, G: v, B: v, A: 255}
	}
	return p
}

// Definition returns the simulation description.
func Definition() sims.Definition {
	return sims.Definition{
		Name:     Name,
		Rule:     hpp.New(),
		Seed:     Seed,
		Defaults: kernel.Config{"density": "0.2"},
		Palette:  palette(),
	}
}

func init() {
	sims.Register(Definition())
}
