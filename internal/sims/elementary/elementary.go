// Package elementary registers a Wolfram elementary automaton. The rule runs
// on a single row and the viewer shows its history scrolling downwards.
package elementary

import (
	"image/color"

	"ca-kernel/internal/core"
	"ca-kernel/internal/render"
	"ca-kernel/internal/sims"
	kernel "ca-kernel/pkg/core"
	"ca-kernel/pkg/rules/wolfram"
)

// Name is the registry key.
const Name = "elementary"

// Seed activates the centre cell of the row.
func Seed(size kernel.Vec2, _ *kernel.RNG, _ kernel.Config, set func(kernel.Vec2, kernel.Cell)) {
	set(kernel.Vec2{X: size.X / 2}, kernel.Cell{State: kernel.Alive(1)})
}

// Definition returns the simulation description.
func Definition() sims.Definition {
	return sims.Definition{
		Name:     Name,
		Rule:     wolfram.New(),
		Seed:     Seed,
		Defaults: kernel.Config{"rule": "110"},
		Controls: []core.ParameterControl{
			{Key: "rule", Label: "Rule", Type: core.ParamTypeInt, Step: 1, Min: 0, Max: 255, HasMin: true, HasMax: true},
		},
		Palette: render.Indexed(color.RGBA{A: 255}, color.RGBA{R: 240, G: 240, B: 240, A: 255}),
		History: true,
	}
}

func init() {
	sims.Register(Definition())
}
