//go:build ebiten

package ui

import (
	"ca-kernel/internal/core"
	"ca-kernel/pkg/cluster"
	kernel "ca-kernel/pkg/core"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

type clusterProvider interface {
	Clusters(opts cluster.Options) cluster.Labeling[kernel.Vec2]
}

type generationProvider interface {
	Generation() int
}

// Overlay tints connected components on top of the grid. C toggles the tint
// and S toggles splitting components by state.
type Overlay struct {
	sim     core.Sim
	scale   int
	show    bool
	opts    cluster.Options
	labels  relabel
	maskImg *ebiten.Image
	maskBuf []byte
}

// NewOverlay constructs a new overlay instance.
func NewOverlay(sim core.Sim, scale int) *Overlay {
	return &Overlay{sim: sim, scale: max(scale, 1)}
}

// Update handles the toggle keys.
func (o *Overlay) Update() {
	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		o.show = !o.show
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		o.opts.ByState = !o.opts.ByState
	}
}

// Invalidate forces a relabel on the next Draw, e.g. after a reset.
func (o *Overlay) Invalidate() {
	o.labels.invalidate()
}

// Draw renders the overlay onto the provided screen.
func (o *Overlay) Draw(screen *ebiten.Image) {
	if !o.show {
		return
	}
	provider, ok := o.sim.(clusterProvider)
	if !ok {
		return
	}
	size := o.sim.Size()
	total := size.W * size.H
	if total <= 0 {
		return
	}
	if o.maskImg == nil || len(o.maskBuf) != 4*total {
		o.maskImg = ebiten.NewImage(size.W, size.H)
		o.maskBuf = make([]byte, 4*total)
		o.labels.invalidate()
	}
	gen := -1
	if g, ok := o.sim.(generationProvider); ok {
		gen = g.Generation()
	} else {
		o.labels.invalidate()
	}
	if o.labels.due(gen, o.opts.ByState) {
		fillClusterRGBA(o.maskBuf, size.W, size.H, provider.Clusters(o.opts))
		o.maskImg.ReplacePixels(o.maskBuf)
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(o.scale), float64(o.scale))
	screen.DrawImage(o.maskImg, op)
}
