package briansbrain

import (
	"image/color"

	"ca-kernel/internal/render"
	"ca-kernel/internal/sims"
	kernel "ca-kernel/pkg/core"
	"ca-kernel/pkg/rules/brain"
)

// Seed fires roughly one cell in eight.
func Seed(size kernel.Vec2, rng *kernel.RNG, _ kernel.Config, set func(kernel.Vec2, kernel.Cell)) {
	for i := 0; i < size.Volume(); i++ {
		if rng.Uint8n(8) == 0 {
			set(size.At(i), kernel.Cell{State: brain.Firing})
		}
	}
}

func init() {
	sims.Register(sims.Definition{
		Name: "briansbrain",
		Rule: brain.New[kernel.Vec2](),
		Seed: Seed,
		Palette: render.Indexed(
			color.RGBA{A: 255},
			color.RGBA{R: 255, G: 255, B: 255, A: 255},
			color.RGBA{R: 40, G: 90, B: 220, A: 255},
		),
	})
}
