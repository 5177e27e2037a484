package life

import (
	"slices"
	"testing"

	"ca-kernel/pkg/core"
	"ca-kernel/pkg/step"
)

func seed(g *core.Dense[core.Vec2], pts ...core.Vec2) {
	for _, p := range pts {
		g.Set(p, core.Cell{State: core.Alive(255), Memory: 1})
	}
}

func TestBlinkerOscillation(t *testing.T) {
	g := core.NewDense(core.Vec2{X: 5, Y: 5})
	seed(g, core.Vec2{X: 2, Y: 1}, core.Vec2{X: 2, Y: 2}, core.Vec2{X: 2, Y: 3})

	if err := step.Sequential[core.Vec2](g, New[core.Vec2](), nil); err != nil {
		t.Fatal(err)
	}
	want := []core.Vec2{{X: 1, Y: 2}, {X: 2, Y: 2}, {X: 3, Y: 2}}
	if got := core.AliveCells[core.Vec2](g); !slices.Equal(got, want) {
		t.Fatalf("alive cells %v, expected %v", got, want)
	}

	if err := step.Sequential[core.Vec2](g, New[core.Vec2](), nil); err != nil {
		t.Fatal(err)
	}
	want = []core.Vec2{{X: 2, Y: 1}, {X: 2, Y: 2}, {X: 2, Y: 3}}
	if got := core.AliveCells[core.Vec2](g); !slices.Equal(got, want) {
		t.Fatalf("after second step alive cells %v, expected %v", got, want)
	}
}

func TestGliderTranslatesDiagonally(t *testing.T) {
	glider := []core.Vec2{{X: 1, Y: 0}, {X: 2, Y: 1}, {X: 0, Y: 2}, {X: 1, Y: 2}, {X: 2, Y: 2}}
	g := core.NewDense(core.Vec2{X: 16, Y: 16})
	seed(g, glider...)

	for i := 0; i < 4; i++ {
		if err := step.Sequential[core.Vec2](g, New[core.Vec2](), nil); err != nil {
			t.Fatal(err)
		}
	}

	var want []core.Vec2
	for _, p := range glider {
		want = append(want, p.Add(core.Vec2{X: 1, Y: 1}))
	}
	slices.SortFunc(want, func(a, b core.Vec2) int { return a.Compare(b) })
	if got := core.AliveCells[core.Vec2](g); !slices.Equal(got, want) {
		t.Fatalf("glider after 4 generations at %v, expected %v", got, want)
	}
}

func TestMemoryTracksLiveness(t *testing.T) {
	r := New[core.Vec2]()
	nbrs := make([]core.State, 8)
	nbrs[0], nbrs[1], nbrs[2] = core.Alive(1), core.Alive(1), core.Alive(1)

	born := r.Next(&core.Context[core.Vec2]{Self: core.Dead, Neighbors: nbrs}, nil)
	if !born.Changed || born.State != core.Alive(255) || born.Memory != 1 {
		t.Fatalf("birth outcome %+v, expected alive(255) with flag 1", born)
	}

	// survival keeps the existing energy
	kept := r.Next(&core.Context[core.Vec2]{Self: core.Alive(7), Neighbors: nbrs}, nil)
	if !kept.Changed || kept.State != core.Alive(7) || kept.Memory != 1 {
		t.Fatalf("survival outcome %+v, expected alive(7) with flag 1", kept)
	}

	same := r.Next(&core.Context[core.Vec2]{Self: core.Alive(7), Neighbors: nbrs, Memory: 1}, nil)
	if same.Changed {
		t.Fatalf("expected Unchanged once the flag agrees, got %+v", same)
	}

	died := r.Next(&core.Context[core.Vec2]{Self: core.Alive(7), Neighbors: make([]core.State, 8), Memory: 1}, nil)
	if !died.Changed || died.State != core.Dead || died.Memory != 0 {
		t.Fatalf("death outcome %+v, expected dead with flag 0", died)
	}
}

func TestParseRule(t *testing.T) {
	birth, survive, err := ParseRule("b36/s23")
	if err != nil {
		t.Fatal(err)
	}
	if birth != 1<<3|1<<6 || survive != 1<<2|1<<3 {
		t.Fatalf("HighLife masks birth=%b survive=%b", birth, survive)
	}

	birth, survive, err = ParseRule("B5,6/S4,5,10")
	if err != nil {
		t.Fatal(err)
	}
	if birth != 1<<5|1<<6 || survive != 1<<4|1<<5|1<<10 {
		t.Fatalf("3-D masks birth=%b survive=%b", birth, survive)
	}

	for _, bad := range []string{"", "B3", "B3/X2", "B9/S2", "B3/S2,27"} {
		if _, _, err := ParseRule(bad); err == nil {
			t.Fatalf("expected error for %q", bad)
		}
	}
}

func TestMalformedConfigFallsBack(t *testing.T) {
	c := FromConfig(core.Config{"rule": "nonsense", "level": "900"})
	if c != DefaultConfig() {
		t.Fatalf("config %+v, expected defaults", c)
	}
	c = FromConfig(core.Config{"rule": "B36/S23", "level": "9"})
	if c.Birth != 1<<3|1<<6 || c.Level != 9 {
		t.Fatalf("config %+v not applied", c)
	}
}

func TestLife3DBlockIsStable(t *testing.T) {
	// a 2x2x2 cube: every cell has 7 neighbors
	g := core.NewDense(core.Vec3{X: 4, Y: 4, Z: 4})
	for z := 1; z <= 2; z++ {
		for y := 1; y <= 2; y++ {
			for x := 1; x <= 2; x++ {
				g.Set(core.Vec3{X: x, Y: y, Z: z}, core.Cell{State: core.Alive(1)})
			}
		}
	}
	cfg := core.Config{"rule": "B9,10/S7"}
	if err := step.Sequential[core.Vec3](g, New[core.Vec3](), cfg); err != nil {
		t.Fatal(err)
	}
	if n := core.AliveCount[core.Vec3](g); n != 8 {
		t.Fatalf("alive count %d, expected 8", n)
	}
}

func TestParsedConfigIsReused(t *testing.T) {
	cfg := core.Config{"rule": "B36/S23", "level": "40"}
	first := configFor(cfg)
	p := lastParsed.Load()
	if again := configFor(core.Config{"rule": "B36/S23", "level": "40"}); again != first || lastParsed.Load() != p {
		t.Fatal("identical config parsed again")
	}
	if first != FromConfig(cfg) {
		t.Fatalf("cached config %+v, expected %+v", first, FromConfig(cfg))
	}

	// a changed rule string must not hit the cache
	if c := configFor(core.Config{"rule": "B3/S23", "level": "40"}); c.Birth != 1<<3 || c.Level != 40 {
		t.Fatalf("config %+v after rule change", c)
	}
	if c := configFor(nil); c != DefaultConfig() {
		t.Fatalf("nil config %+v, expected defaults", c)
	}

	nbrs := make([]core.State, 8)
	for i := 0; i < 6; i++ {
		nbrs[i] = core.Alive(1)
	}
	if out := New[core.Vec2]().Next(&core.Context[core.Vec2]{Neighbors: nbrs}, cfg); !out.Changed || out.State != core.Alive(40) {
		t.Fatalf("HighLife birth on six neighbors: %+v", out)
	}
	if out := New[core.Vec2]().Next(&core.Context[core.Vec2]{Neighbors: nbrs}, nil); out.State.Alive() {
		t.Fatalf("Conway birth on six neighbors: %+v", out)
	}
}
