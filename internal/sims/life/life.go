// Package life registers Conway's Game of Life and its B/S relatives.
package life

import (
	"ca-kernel/internal/core"
	"ca-kernel/internal/sims"
	kernel "ca-kernel/pkg/core"
	"ca-kernel/pkg/rules/life"
)

// Name is the registry key.
const Name = "life"

// Seed scatters alive cells with probability "density" (default 0.5).
func Seed(size kernel.Vec2, rng *kernel.RNG, cfg kernel.Config, set func(kernel.Vec2, kernel.Cell)) {
	density := cfg.Float("density", 0.5)
	level := life.FromConfig(cfg).Level
	for i := 0; i < size.Volume(); i++ {
		if rng.Chance(density) {
			set(size.At(i), kernel.Cell{State: kernel.Alive(level), Memory: 1})
		}
	}
}

// Definition returns the simulation description.
func Definition() sims.Definition {
	return sims.Definition{
		Name:     Name,
		Rule:     life.New[kernel.Vec2](),
		Seed:     Seed,
		Defaults: kernel.Config{"rule": "B3/S23", "level": "255", "density": "0.5"},
		Controls: []core.ParameterControl{
			{Key: "level", Label: "Birth level", Type: core.ParamTypeInt, Step: 16, Min: 1, Max: 255, HasMin: true, HasMax: true},
		},
	}
}

func init() {
	sims.Register(Definition())
}
