package core

// Kind tags the two grid backends.
type Kind uint8

const (
	KindDense Kind = iota
	KindSparse
)

func (k Kind) String() string {
	switch k {
	case KindDense:
		return "dense"
	case KindSparse:
		return "sparse"
	}
	return "unknown"
}

// Backend is the closed union of *Dense[P] and *Sparse[P]. Code that needs
// backend-specific behavior type-switches on it once:
//
//	switch g := b.(type) {
//	case *core.Dense[P]:
//	case *core.Sparse[P]:
//	default:
//		panic(...)
//	}
type Backend[P Coord[P]] interface {
	Kind() Kind
	Len() int
	StateAt(p P) State
	Each(fn func(P, Cell) bool)
	Clear()

	sealed()
}

var (
	_ Backend[Vec2] = (*Dense[Vec2])(nil)
	_ Backend[Vec2] = (*Sparse[Vec2])(nil)
	_ Backend[Vec3] = (*Dense[Vec3])(nil)
	_ Backend[Vec3] = (*Sparse[Vec3])(nil)
)

// AliveCount returns the number of non-Dead cells.
func AliveCount[P Coord[P]](b Backend[P]) int {
	n := 0
	b.Each(func(_ P, c Cell) bool {
		if c.State.Alive() {
			n++
		}
		return true
	})
	return n
}

// AliveCells returns the coordinates of non-Dead cells in row-major order.
func AliveCells[P Coord[P]](b Backend[P]) []P {
	var out []P
	b.Each(func(p P, c Cell) bool {
		if c.State.Alive() {
			out = append(out, p)
		}
		return true
	})
	return out
}
