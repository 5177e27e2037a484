package step

import (
	"errors"
	"slices"
	"testing"

	"ca-kernel/pkg/core"
	"ca-kernel/pkg/rules/brain"
	"ca-kernel/pkg/rules/hpp"
	"ca-kernel/pkg/rules/lenia"
	"ca-kernel/pkg/rules/life"
)

// countRule sets every cell to 1 + its number of alive neighbors.
var countRule = core.RuleFunc[core.Vec2](func(ctx *core.Context[core.Vec2], _ core.Config) core.Outcome {
	n := 1
	for _, s := range ctx.Neighbors {
		if s.Alive() {
			n++
		}
	}
	return core.Next(core.Alive(uint8(n)), nil)
})

func randomDense(seed int64, size core.Vec2) *core.Dense[core.Vec2] {
	g := core.NewDense(size)
	core.Scatter(core.NewRNG(seed), g, 0.35, core.Alive(1))
	return g
}

func toSparse(g *core.Dense[core.Vec2], keepDead bool) *core.Sparse[core.Vec2] {
	s := core.NewSparse[core.Vec2]()
	g.Each(func(p core.Vec2, c core.Cell) bool {
		if keepDead || c.State.Alive() {
			s.Set(p, c)
		}
		return true
	})
	return s
}

func sameCells(t *testing.T, a, b core.Backend[core.Vec2]) {
	t.Helper()
	var as, bs []core.Cell
	var ap, bp []core.Vec2
	a.Each(func(p core.Vec2, c core.Cell) bool { ap, as = append(ap, p), append(as, c); return true })
	b.Each(func(p core.Vec2, c core.Cell) bool { bp, bs = append(bp, p), append(bs, c); return true })
	if !slices.Equal(ap, bp) {
		t.Fatalf("coordinate sets differ: %d vs %d entries", len(ap), len(bp))
	}
	for i := range as {
		if as[i] != bs[i] {
			t.Fatalf("cell %v differs: %+v vs %+v", ap[i], as[i], bs[i])
		}
	}
}

func TestParallelMatchesSequentialDense(t *testing.T) {
	rules := map[string]core.Rule[core.Vec2]{
		"life":  life.New[core.Vec2](),
		"brain": brain.New[core.Vec2](),
		"count": countRule,
	}
	for name, rule := range rules {
		for _, workers := range []int{1, 2, 3, 7, 64} {
			seq := randomDense(7, core.Vec2{X: 33, Y: 17})
			par := seq.Clone()
			for gen := 0; gen < 5; gen++ {
				if err := Sequential[core.Vec2](seq, rule, nil); err != nil {
					t.Fatal(err)
				}
				if err := Parallel[core.Vec2](par, rule, nil, workers); err != nil {
					t.Fatal(err)
				}
			}
			t.Run(name, func(t *testing.T) { sameCells(t, seq, par) })
		}
	}
}

func TestParallelMatchesSequentialStatefulRules(t *testing.T) {
	size := core.Vec2{X: 29, Y: 23}
	gas := func() *core.Dense[core.Vec2] {
		g := core.NewDense(size)
		r := core.NewRNG(13)
		for i := range g.Cells() {
			if bits := r.Uint8n(16); bits != 0 {
				g.Cells()[i].State = core.Alive(bits)
			}
		}
		return g
	}
	field := func() *core.Dense[core.Vec2] {
		g := core.NewDense(size)
		r := core.NewRNG(17)
		for i := range g.Cells() {
			rho := r.Source().Float64() * 0.4
			g.Cells()[i] = core.Cell{State: lenia.Quantize(rho), Memory: rho}
		}
		return g
	}
	cases := []struct {
		name string
		rule core.Rule[core.Vec2]
		seed func() *core.Dense[core.Vec2]
	}{
		{"hpp", hpp.New(), gas},
		{"lenia", lenia.New(), field},
	}
	for _, tc := range cases {
		for _, workers := range []int{1, 2, 5, 64} {
			seq := tc.seed()
			par := tc.seed()
			for gen := 0; gen < 6; gen++ {
				if err := Sequential[core.Vec2](seq, tc.rule, nil); err != nil {
					t.Fatal(err)
				}
				if err := Parallel[core.Vec2](par, tc.rule, nil, workers); err != nil {
					t.Fatal(err)
				}
			}
			t.Run(tc.name, func(t *testing.T) { sameCells(t, seq, par) })
		}
	}
}

func TestParallelMatchesSequentialSparse(t *testing.T) {
	for _, grow := range []bool{false, true} {
		for _, workers := range []int{1, 4, 0} {
			seq := toSparse(randomDense(11, core.Vec2{X: 20, Y: 20}), false)
			par := seq.Clone()
			s := Stepper[core.Vec2]{Rule: life.New[core.Vec2](), Grow: grow}
			p := Stepper[core.Vec2]{Rule: life.New[core.Vec2](), Grow: grow, Parallel: true, Workers: workers}
			for gen := 0; gen < 6; gen++ {
				if err := s.Step(seq); err != nil {
					t.Fatal(err)
				}
				if err := p.Step(par); err != nil {
					t.Fatal(err)
				}
			}
			sameCells(t, seq, par)
		}
	}
}

func TestOutOfBoundsNeighborsAreDead(t *testing.T) {
	size := core.Vec2{X: 4, Y: 3}
	g := core.NewDense(size)
	for i := range g.Cells() {
		g.Cells()[i].State = core.Alive(1)
	}
	if err := Sequential[core.Vec2](g, countRule, nil); err != nil {
		t.Fatal(err)
	}
	checks := map[core.Vec2]core.State{
		{X: 0, Y: 0}: core.Alive(4),
		{X: 3, Y: 0}: core.Alive(4),
		{X: 0, Y: 2}: core.Alive(4),
		{X: 3, Y: 2}: core.Alive(4),
		{X: 1, Y: 0}: core.Alive(6),
		{X: 0, Y: 1}: core.Alive(6),
		{X: 1, Y: 1}: core.Alive(9),
	}
	for p, want := range checks {
		if got := g.StateAt(p); got != want {
			t.Fatalf("cell %v = %v, expected %v", p, got, want)
		}
	}
}

func TestUnchangedPreservesCell(t *testing.T) {
	type payload struct{ n int }
	mem := &payload{n: 3}
	keep := core.RuleFunc[core.Vec2](func(*core.Context[core.Vec2], core.Config) core.Outcome {
		return core.Unchanged()
	})

	g := core.NewDense(core.Vec2{X: 3, Y: 3})
	g.Set(core.Vec2{X: 1, Y: 1}, core.Cell{State: core.Alive(42), Memory: mem})
	sp := toSparse(g, true)

	for _, parallel := range []bool{false, true} {
		st := Stepper[core.Vec2]{Rule: keep, Parallel: parallel, Workers: 2}
		if err := st.Step(g); err != nil {
			t.Fatal(err)
		}
		if err := st.Step(sp); err != nil {
			t.Fatal(err)
		}
	}
	for _, b := range []core.Backend[core.Vec2]{g, sp} {
		var got core.Cell
		b.Each(func(p core.Vec2, c core.Cell) bool {
			if p == (core.Vec2{X: 1, Y: 1}) {
				got = c
			}
			return true
		})
		if got.State != core.Alive(42) || got.Memory != any(mem) {
			t.Fatalf("%v backend cell %+v, expected the original state and memory", b.Kind(), got)
		}
	}
}

func TestSparseVisitsOnlyStoredEntries(t *testing.T) {
	blinker := []core.Vec2{{X: 2, Y: 1}, {X: 2, Y: 2}, {X: 2, Y: 3}}
	g := core.NewSparse[core.Vec2]()
	for _, p := range blinker {
		g.Set(p, core.Cell{State: core.Alive(1)})
	}

	if err := Sequential[core.Vec2](g, life.New[core.Vec2](), nil); err != nil {
		t.Fatal(err)
	}
	// (1,2) and (3,2) should be born but were never stored
	want := []core.Vec2{{X: 2, Y: 2}}
	if got := core.AliveCells[core.Vec2](g); !slices.Equal(got, want) {
		t.Fatalf("alive cells %v, expected %v", got, want)
	}
	if g.Len() != 3 {
		t.Fatalf("entries %d, expected 3", g.Len())
	}
}

func TestSparseGrowBirthsFrontier(t *testing.T) {
	g := core.NewSparse[core.Vec2]()
	for _, p := range []core.Vec2{{X: 2, Y: 1}, {X: 2, Y: 2}, {X: 2, Y: 3}} {
		g.Set(p, core.Cell{State: core.Alive(1)})
	}
	st := Stepper[core.Vec2]{Rule: life.New[core.Vec2](), Grow: true}
	if err := st.Step(g); err != nil {
		t.Fatal(err)
	}
	want := []core.Vec2{{X: 1, Y: 2}, {X: 2, Y: 2}, {X: 3, Y: 2}}
	if got := core.AliveCells[core.Vec2](g); !slices.Equal(got, want) {
		t.Fatalf("alive cells %v, expected %v", got, want)
	}
	// frontier cells that stay dead are not inserted
	if g.Len() != 5 {
		t.Fatalf("entries %d, expected 5", g.Len())
	}
}

func TestSparseAndDenseAgree(t *testing.T) {
	dense := randomDense(3, core.Vec2{X: 24, Y: 24})
	// clear a border so the finite dense grid has no edge effects
	dense.Each(func(p core.Vec2, _ core.Cell) bool {
		if p.X < 6 || p.Y < 6 || p.X >= 18 || p.Y >= 18 {
			dense.Set(p, core.Cell{})
		}
		return true
	})
	full := toSparse(dense, true)
	grown := toSparse(dense, false)

	rule := life.New[core.Vec2]()
	if err := Sequential[core.Vec2](dense, rule, nil); err != nil {
		t.Fatal(err)
	}
	if err := Sequential[core.Vec2](full, rule, nil); err != nil {
		t.Fatal(err)
	}
	if err := (Stepper[core.Vec2]{Rule: rule, Grow: true}).Step(grown); err != nil {
		t.Fatal(err)
	}

	want := core.AliveCells[core.Vec2](dense)
	if got := core.AliveCells[core.Vec2](full); !slices.Equal(got, want) {
		t.Fatalf("sparse with stored dead cells: %v, expected %v", got, want)
	}
	if got := core.AliveCells[core.Vec2](grown); !slices.Equal(got, want) {
		t.Fatalf("growing sparse: %v, expected %v", got, want)
	}
}

type denseOnlyRule struct{ core.RuleFunc[core.Vec2] }

func (denseOnlyRule) DenseOnly() bool { return true }

func TestErrors(t *testing.T) {
	if err := Sequential[core.Vec2](nil, countRule, nil); !errors.Is(err, ErrNilBackend) {
		t.Fatalf("nil backend err = %v", err)
	}
	var typedNil *core.Dense[core.Vec2]
	if err := Sequential[core.Vec2](typedNil, countRule, nil); !errors.Is(err, ErrNilBackend) {
		t.Fatalf("typed nil backend err = %v", err)
	}
	if err := Sequential[core.Vec2](core.NewDense(core.Vec2{X: 1, Y: 1}), nil, nil); !errors.Is(err, ErrNilRule) {
		t.Fatalf("nil rule err = %v", err)
	}

	rule := denseOnlyRule{countRule}
	if err := Parallel[core.Vec2](core.NewSparse[core.Vec2](), rule, nil, 2); !errors.Is(err, ErrDenseOnly) {
		t.Fatalf("dense-only rule on sparse err = %v", err)
	}
	if err := Parallel[core.Vec2](core.NewDense(core.Vec2{X: 2, Y: 2}), rule, nil, 2); err != nil {
		t.Fatalf("dense-only rule on dense err = %v", err)
	}
}

func TestBands(t *testing.T) {
	got := bands(10, 3)
	want := [][2]int{{0, 4}, {4, 8}, {8, 10}}
	if !slices.Equal(got, want) {
		t.Fatalf("bands %v, expected %v", got, want)
	}
	if got := bands(2, 8); len(got) != 2 {
		t.Fatalf("bands %v, expected one per item", got)
	}
	if got := bands(0, 4); got != nil {
		t.Fatalf("bands of empty range %v", got)
	}
}

func TestStep3D(t *testing.T) {
	size := core.Vec3{X: 5, Y: 5, Z: 5}
	seq := core.NewDense(size)
	core.Scatter(core.NewRNG(5), seq, 0.3, core.Alive(1))
	par := seq.Clone()
	rule := life.New[core.Vec3]()
	cfg := core.Config{"rule": "B5,6,7/S5,6,7,8"}
	if err := Sequential[core.Vec3](seq, rule, cfg); err != nil {
		t.Fatal(err)
	}
	if err := Parallel[core.Vec3](par, rule, cfg, 3); err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(seq.Cells(), par.Cells()) {
		t.Fatal("3-D parallel step differs from sequential")
	}
}
