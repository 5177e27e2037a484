// Package lenia implements a nearest-neighbor Lenia: continuous densities
// carried through the 8-bit state channel and mirrored at full precision in
// cell memory.
package lenia

import (
	"math"

	"ca-kernel/pkg/core"
)

// Config holds the growth parameters.
type Config struct {
	Mu    float64
	Sigma float64
	DT    float64
}

// DefaultConfig returns the standard growth parameters.
func DefaultConfig() Config {
	return Config{Mu: 0.15, Sigma: 0.017, DT: 0.1}
}

// FromConfig reads "mu", "sigma" and "dt". Values that are missing,
// malformed or not strictly positive keep their defaults; dt is capped at 1.
func FromConfig(cfg core.Config) Config {
	c := DefaultConfig()
	if v := cfg.Float("mu", 0); v > 0 {
		c.Mu = v
	}
	if v := cfg.Float("sigma", 0); v > 0 {
		c.Sigma = v
	}
	if v := cfg.Float("dt", 0); v > 0 {
		c.DT = min(v, 1)
	}
	return c
}

// kernel weighs each Moore offset by inverse distance, normalized to sum 1.
var kernel = func() []float64 {
	offs := core.Neighborhood[core.Vec2]()
	w := make([]float64, len(offs))
	sum := 0.0
	for i, o := range offs {
		w[i] = 1 / math.Hypot(float64(o.X), float64(o.Y))
		sum += w[i]
	}
	for i := range w {
		w[i] /= sum
	}
	return w
}()

// Growth is the bell-shaped growth mapping in [-1, 1].
func Growth(u, mu, sigma float64) float64 {
	d := (u - mu) / sigma
	return 2*math.Exp(-d*d) - 1
}

// Density converts a state to [0, 1].
func Density(s core.State) float64 {
	return float64(s.Energy()) / 255
}

// Quantize maps a density back to a state; zero density is Dead.
func Quantize(rho float64) core.State {
	level := math.Round(clamp01(rho) * 255)
	if level <= 0 {
		return core.Dead
	}
	return core.Alive(uint8(level))
}

// Rule is the Lenia transition. It only makes sense on dense grids, where
// every coordinate is evaluated each generation.
type Rule struct{}

// New returns the Lenia rule.
func New() Rule { return Rule{} }

// DenseOnly implements core.DenseOnly.
func (Rule) DenseOnly() bool { return true }

// Next implements core.Rule. The current density comes from float memory
// when present, otherwise from the state level.
func (Rule) Next(ctx *core.Context[core.Vec2], cfg core.Config) core.Outcome {
	c := FromConfig(cfg)
	u := 0.0
	for i, s := range ctx.Neighbors {
		u += kernel[i] * Density(s)
	}
	rho := core.MemoryFloat(ctx.Memory, Density(ctx.Self))
	next := clamp01(rho + c.DT*Growth(u, c.Mu, c.Sigma))
	state := Quantize(next)
	if state == ctx.Self && next == rho {
		return core.Unchanged()
	}
	return core.Next(state, next)
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
