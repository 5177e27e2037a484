package core

import (
	"slices"
	"testing"
)

func TestNeighborhoodStable(t *testing.T) {
	first := Neighborhood[Vec2]()
	if len(first) != 8 {
		t.Fatalf("2-D neighborhood has %d offsets, expected 8", len(first))
	}
	for i := 0; i < 3; i++ {
		if !slices.Equal(first, Neighborhood[Vec2]()) {
			t.Fatal("2-D neighborhood changed between calls")
		}
	}
	for _, o := range first {
		if o == (Vec2{}) {
			t.Fatal("2-D neighborhood contains the zero offset")
		}
	}
	if first[3] != (Vec2{X: -1}) || first[4] != (Vec2{X: 1}) {
		t.Fatalf("west/east at %v/%v", first[3], first[4])
	}
	if first[1] != (Vec2{Y: -1}) || first[6] != (Vec2{Y: 1}) {
		t.Fatalf("north/south at %v/%v", first[1], first[6])
	}

	three := Neighborhood[Vec3]()
	if len(three) != 26 {
		t.Fatalf("3-D neighborhood has %d offsets, expected 26", len(three))
	}
	seen := map[Vec3]bool{}
	for _, o := range three {
		if o == (Vec3{}) {
			t.Fatal("3-D neighborhood contains the zero offset")
		}
		if seen[o] {
			t.Fatalf("duplicate offset %v", o)
		}
		seen[o] = true
	}
	if !slices.Equal(three, Neighborhood[Vec3]()) {
		t.Fatal("3-D neighborhood changed between calls")
	}
}

func TestFacesAreAxial(t *testing.T) {
	want := []Vec2{{Y: -1}, {X: -1}, {X: 1}, {Y: 1}}
	if got := (Vec2{}).Faces(); !slices.Equal(got, want) {
		t.Fatalf("2-D faces %v, expected %v", got, want)
	}
	if n := len((Vec3{}).Faces()); n != 6 {
		t.Fatalf("3-D faces %d, expected 6", n)
	}
}

func TestIndexRoundTrip(t *testing.T) {
	size := Vec3{X: 3, Y: 4, Z: 5}
	for i := 0; i < size.Volume(); i++ {
		p := size.At(i)
		if !p.In(size) {
			t.Fatalf("At(%d) = %v out of bounds", i, p)
		}
		if j := p.Index(size); j != i {
			t.Fatalf("Index(At(%d)) = %d", i, j)
		}
	}
	if (Vec2{X: 5, Y: 0}).In(Vec2{X: 5, Y: 5}) {
		t.Fatal("x == width reported in bounds")
	}
}

func TestCompareRowMajor(t *testing.T) {
	pts := []Vec2{{X: 2, Y: 1}, {X: 0, Y: 2}, {X: 3, Y: 0}, {X: 1, Y: 1}}
	slices.SortFunc(pts, func(a, b Vec2) int { return a.Compare(b) })
	want := []Vec2{{X: 3, Y: 0}, {X: 1, Y: 1}, {X: 2, Y: 1}, {X: 0, Y: 2}}
	if !slices.Equal(pts, want) {
		t.Fatalf("sorted %v, expected %v", pts, want)
	}
}
