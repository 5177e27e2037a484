// Package lenia registers the Lenia field. It only runs on dense grids.
package lenia

import (
	"image/color"
	"math"
	"strconv"

	"ca-kernel/internal/core"
	"ca-kernel/internal/render"
	"ca-kernel/internal/sims"
	kernel "ca-kernel/pkg/core"
	"ca-kernel/pkg/rules/lenia"
)

// Name is the registry key.
const Name = "lenia"

// Seed places a noisy disk of radius "radius" (default a quarter of the
// shorter side) at the centre. Densities are kept in float memory.
func Seed(size kernel.Vec2, rng *kernel.RNG, cfg kernel.Config, set func(kernel.Vec2, kernel.Cell)) {
	r := float64(cfg.Int("radius", min(size.X, size.Y)/4))
	cx, cy := float64(size.X)/2, float64(size.Y)/2
	for y := 0; y < size.Y; y++ {
		for x := 0; x < size.X; x++ {
			d := math.Hypot(float64(x)-cx, float64(y)-cy)
			if d > r {
				continue
			}
			rho := (1 - d/(r+1)) * rng.Source().Float64()
			if s := lenia.Quantize(rho); s.Alive() {
				set(kernel.Vec2{X: x, Y: y}, kernel.Cell{State: s, Memory: rho})
			}
		}
	}
}

// Definition returns the simulation description.
func Definition() sims.Definition {
	def := lenia.DefaultConfig()
	return sims.Definition{
		Name: Name,
		Rule: lenia.New(),
		Seed: Seed,
		Defaults: kernel.Config{
			"mu":    formatFloat(def.Mu),
			"sigma": formatFloat(def.Sigma),
			"dt":    formatFloat(def.DT),
		},
		Controls: []core.ParameterControl{
			{Key: "mu", Label: "Growth centre", Type: core.ParamTypeFloat, Step: 0.005, Min: 0.001, Max: 1, HasMin: true, HasMax: true},
			{Key: "sigma", Label: "Growth width", Type: core.ParamTypeFloat, Step: 0.001, Min: 0.001, Max: 1, HasMin: true, HasMax: true},
			{Key: "dt", Label: "Time step", Type: core.ParamTypeFloat, Step: 0.01, Min: 0.01, Max: 1, HasMin: true, HasMax: true},
		},
		Palette: render.Ramp(
			color.RGBA{A: 255},
			color.RGBA{R: 10, G: 20, B: 80, A: 255},
			color.RGBA{R: 250, G: 230, B: 90, A: 255},
		),
	}
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func init() {
	sims.Register(Definition())
}
