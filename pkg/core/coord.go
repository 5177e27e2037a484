package core

import "cmp"

// Coord is the dimensionality constraint. A coordinate type carries its own
// neighbor-offset table; methods that take or act on a size treat the
// receiver (or argument) as the extent of a bounded grid.
type Coord[P any] interface {
	comparable

	// Add returns the component-wise sum.
	Add(P) P
	// Offsets returns the Moore neighborhood excluding the zero offset. The
	// order is fixed and is the order of Context.Neighbors everywhere.
	// Callers must not modify the returned slice.
	Offsets() []P
	// Faces returns the axis-aligned subset of Offsets, in Offsets order.
	Faces() []P
	// Volume returns the number of cells in a grid of this size.
	Volume() int
	// Clamp returns the size with every extent raised to at least one.
	Clamp() P
	// In reports whether the coordinate lies in [0, size) on every axis.
	In(size P) bool
	// Index returns the row-major linear index inside a grid of the given size.
	Index(size P) int
	// At is the inverse of Index with the receiver as the size.
	At(i int) P
	// Compare orders coordinates row-major (x varies fastest).
	Compare(P) int
}

// Neighborhood returns the offset table of dimensionality P.
func Neighborhood[P Coord[P]]() []P {
	var zero P
	return zero.Offsets()
}

// Vec2 is a two-dimensional coordinate or size. Y grows downwards.
type Vec2 struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Vec3 is a three-dimensional coordinate or size.
type Vec3 struct {
	X int `json:"x"`
	Y int `json:"y"`
	Z int `json:"z"`
}

var (
	moore2 = buildMoore2()
	faces2 = axial(moore2, func(v Vec2) int { return abs(v.X) + abs(v.Y) })
	moore3 = buildMoore3()
	faces3 = axial(moore3, func(v Vec3) int { return abs(v.X) + abs(v.Y) + abs(v.Z) })
)

func buildMoore2() []Vec2 {
	offs := make([]Vec2, 0, 8)
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			offs = append(offs, Vec2{X: dx, Y: dy})
		}
	}
	return offs
}

func buildMoore3() []Vec3 {
	offs := make([]Vec3, 0, 26)
	for dz := -1; dz <= 1; dz++ {
		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				if dx == 0 && dy == 0 && dz == 0 {
					continue
				}
				offs = append(offs, Vec3{X: dx, Y: dy, Z: dz})
			}
		}
	}
	return offs
}

func axial[P any](offs []P, manhattan func(P) int) []P {
	var out []P
	for _, o := range offs {
		if manhattan(o) == 1 {
			out = append(out, o)
		}
	}
	return out
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func (v Vec2) Add(o Vec2) Vec2 { return Vec2{X: v.X + o.X, Y: v.Y + o.Y} }
func (Vec2) Offsets() []Vec2 { return moore2 }
func (Vec2) Faces() []Vec2 { return faces2 }
func (v Vec2) Volume() int { return v.X * v.Y }
func (v Vec2) Clamp() Vec2 { return Vec2{X: max(v.X, 1), Y: max(v.Y, 1)} }

func (v Vec2) In(size Vec2) bool {
	return v.X >= 0 && v.Y >= 0 && v.X < size.X && v.Y < size.Y
}

func (v Vec2) Index(size Vec2) int { return v.Y*size.X + v.X }

func (v Vec2) At(i int) Vec2 { return Vec2{X: i % v.X, Y: i / v.X} }

func (v Vec2) Compare(o Vec2) int {
	if c := cmp.Compare(v.Y, o.Y); c != 0 {
		return c
	}
	return cmp.Compare(v.X, o.X)
}

func (v Vec3) Add(o Vec3) Vec3 { return Vec3{X: v.X + o.X, Y: v.Y + o.Y, Z: v.Z + o.Z} }
func (Vec3) Offsets() []Vec3 { return moore3 }
func (Vec3) Faces() []Vec3 { return faces3 }
func (v Vec3) Volume() int { return v.X * v.Y * v.Z }
func (v Vec3) Clamp() Vec3 { return Vec3{X: max(v.X, 1), Y: max(v.Y, 1), Z: max(v.Z, 1)} }

func (v Vec3) In(size Vec3) bool {
	return v.X >= 0 && v.Y >= 0 && v.Z >= 0 && v.X < size.X && v.Y < size.Y && v.Z < size.Z
}

func (v Vec3) Index(size Vec3) int { return (v.Z*size.Y+v.Y)*size.X + v.X }

func (v Vec3) At(i int) Vec3 {
	plane := v.X * v.Y
	rem := i % plane
	return Vec3{X: rem % v.X, Y: rem / v.X, Z: i / plane}
}

func (v Vec3) Compare(o Vec3) int {
	if c := cmp.Compare(v.Z, o.Z); c != 0 {
		return c
	}
	if c := cmp.Compare(v.Y, o.Y); c != 0 {
		return c
	}
	return cmp.Compare(v.X, o.X)
}
