package ui

import (
	"image/color"
	"math"

	"ca-kernel/pkg/cluster"
	kernel "ca-kernel/pkg/core"
)

// tintAlpha is the opacity of the cluster overlay.
const tintAlpha = 120

// clusterColor picks a distinct hue for component id by stepping around the
// colour wheel by the golden angle. The result is premultiplied by alpha.
func clusterColor(id int, alpha uint8) color.RGBA {
	hue := math.Mod(float64(id)*0.618033988749895, 1)
	r, g, b := hsv(hue, 0.75, 1)
	a := float64(alpha) / 255
	return color.RGBA{
		R: uint8(math.Round(r * 255 * a)),
		G: uint8(math.Round(g * 255 * a)),
		B: uint8(math.Round(b * 255 * a)),
		A: alpha,
	}
}

func hsv(h, s, v float64) (r, g, b float64) {
	i := math.Floor(h * 6)
	f := h*6 - i
	p := v * (1 - s)
	q := v * (1 - f*s)
	t := v * (1 - (1-f)*s)
	switch int(i) % 6 {
	case 0:
		return v, t, p
	case 1:
		return q, v, p
	case 2:
		return p, v, t
	case 3:
		return p, q, v
	case 4:
		return t, p, v
	default:
		return v, p, q
	}
}

// relabel tracks which generation and grouping the overlay mask was built
// for, so components are labeled once per step rather than once per frame.
type relabel struct {
	valid   bool
	gen     int
	byState bool
}

// due reports whether the mask must be rebuilt for gen and byState, and
// records them as current when it is.
func (r *relabel) due(gen int, byState bool) bool {
	if r.valid && r.gen == gen && r.byState == byState {
		return false
	}
	r.valid, r.gen, r.byState = true, gen, byState
	return true
}

func (r *relabel) invalidate() { r.valid = false }

// fillClusterRGBA paints every member of l that falls inside the w x h view in
// its component colour and clears the rest of buf.
func fillClusterRGBA(buf []byte, w, h int, l cluster.Labeling[kernel.Vec2]) {
	clear(buf)
	for id, members := range l.Members {
		col := clusterColor(id, tintAlpha)
		for _, p := range members {
			if p.X < 0 || p.Y < 0 || p.X >= w || p.Y >= h {
				continue
			}
			base := (p.Y*w + p.X) * 4
			buf[base+0] = col.R
			buf[base+1] = col.G
			buf[base+2] = col.B
			buf[base+3] = col.A
		}
	}
}
