//go:build !ebiten

package app

import (
	"errors"

	"ca-kernel/internal/core"
)

// ErrHeadless is returned by every Game method that needs a window.
var ErrHeadless = errors.New("app: the viewer requires building with the 'ebiten' tag")

// Game keeps the GUI build's API in headless builds. It can still reset the
// simulation but refuses to run a frame.
type Game struct {
	sim   core.Sim
	scale int
	seed  int64
}

// New wraps sim without opening a window.
func New(sim core.Sim, scale int, seed int64) *Game {
	return &Game{sim: sim, scale: max(scale, 1), seed: seed}
}

// Reset reseeds the simulation.
func (g *Game) Reset(seed int64) {
	g.seed = seed
	g.sim.Reset(seed)
}

// Update always reports that the GUI build tag is missing.
func (g *Game) Update() error { return ErrHeadless }

// Draw is a no-op placeholder to satisfy the interface shape.
func (g *Game) Draw(any) {}

// Layout returns the scaled grid size the GUI build would use.
func (g *Game) Layout(int, int) (int, int) {
	s := g.sim.Size()
	return s.W * g.scale, s.H * g.scale
}
