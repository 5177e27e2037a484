package cluster

import (
	"testing"

	"ca-kernel/pkg/core"
)

func alive(g *core.Dense[core.Vec2], pts ...core.Vec2) {
	for _, p := range pts {
		g.Set(p, core.Cell{State: core.Alive(1)})
	}
}

func scenario() *core.Dense[core.Vec2] {
	g := core.NewDense(core.Vec2{X: 10, Y: 10})
	alive(g,
		core.Vec2{X: 0, Y: 0},
		core.Vec2{X: 9, Y: 9},
		core.Vec2{X: 4, Y: 4}, core.Vec2{X: 5, Y: 4}, core.Vec2{X: 4, Y: 5}, core.Vec2{X: 5, Y: 5},
	)
	return g
}

func TestTwoSingletonsAndABlock(t *testing.T) {
	dense := scenario()
	sparse := core.NewSparse[core.Vec2]()
	dense.Each(func(p core.Vec2, c core.Cell) bool {
		if c.State.Alive() {
			sparse.Set(p, c)
		}
		return true
	})

	for _, b := range []core.Backend[core.Vec2]{dense, sparse} {
		stats := Analyze(b, Options{})
		if len(stats) != 3 {
			t.Fatalf("%v: %d components, expected 3", b.Kind(), len(stats))
		}
		// ids follow row-major order of each component's first cell
		sizes := []int{stats[0].Size, stats[1].Size, stats[2].Size}
		if sizes[0] != 1 || sizes[1] != 4 || sizes[2] != 1 {
			t.Fatalf("%v: sizes %v, expected [1 4 1]", b.Kind(), sizes)
		}
		for _, st := range []Stats{stats[0], stats[2]} {
			if st.Autonomy != 1 || st.InternalLinks != 0 || st.ExternalLinks != 0 {
				t.Fatalf("%v: singleton %+v", b.Kind(), st)
			}
		}
		block := stats[1]
		if block.InternalLinks != 4 || block.ExternalLinks != 0 || block.Autonomy != 1 {
			t.Fatalf("%v: block %+v, expected 4 internal links and no external", b.Kind(), block)
		}
	}
}

func TestDiagonalCellsConnect(t *testing.T) {
	g := core.NewDense(core.Vec2{X: 4, Y: 4})
	alive(g, core.Vec2{X: 0, Y: 0}, core.Vec2{X: 1, Y: 1}, core.Vec2{X: 2, Y: 2})
	stats := Analyze[core.Vec2](g, Options{})
	if len(stats) != 1 || stats[0].Size != 3 {
		t.Fatalf("stats %+v, expected one component of 3", stats)
	}
	// no face adjacency along a diagonal
	if stats[0].InternalLinks != 0 || stats[0].Autonomy != 1 {
		t.Fatalf("diagonal component %+v", stats[0])
	}
}

func TestPartitionAndBounds(t *testing.T) {
	g := core.NewDense(core.Vec2{X: 40, Y: 30})
	core.Scatter(core.NewRNG(21), g, 0.3, core.Alive(1))
	// mix in a second state so ByState splits regions
	for i, c := range g.Cells() {
		if c.State.Alive() && i%3 == 0 {
			g.Cells()[i].State = core.Alive(2)
		}
	}
	total := core.AliveCount[core.Vec2](g)

	for _, opts := range []Options{{}, {ByState: true}} {
		l := Label[core.Vec2](g, opts)
		seen := map[core.Vec2]bool{}
		sum := 0
		for id, members := range l.Members {
			sum += len(members)
			for _, p := range members {
				if seen[p] {
					t.Fatalf("cell %v in two components", p)
				}
				seen[p] = true
				if got, ok := l.Of(p); !ok || got != id {
					t.Fatalf("Of(%v) = %d,%v, expected %d", p, got, ok, id)
				}
			}
		}
		if sum != total {
			t.Fatalf("components cover %d cells, expected %d", sum, total)
		}
		for _, st := range Measure(l) {
			if st.Autonomy < 0 || st.Autonomy > 1 {
				t.Fatalf("autonomy %v out of range", st.Autonomy)
			}
		}
	}
}

func TestByStateExternalLinks(t *testing.T) {
	g := core.NewDense(core.Vec2{X: 3, Y: 1})
	g.Set(core.Vec2{X: 0}, core.Cell{State: core.Alive(1)})
	g.Set(core.Vec2{X: 1}, core.Cell{State: core.Alive(1)})
	g.Set(core.Vec2{X: 2}, core.Cell{State: core.Alive(2)})

	stats := Analyze[core.Vec2](g, Options{ByState: true})
	if len(stats) != 2 {
		t.Fatalf("%d components, expected 2", len(stats))
	}
	pair, lone := stats[0], stats[1]
	if pair.InternalLinks != 1 || pair.ExternalLinks != 1 {
		t.Fatalf("pair %+v", pair)
	}
	if want := 2.0 / 3.0; pair.Autonomy != want {
		t.Fatalf("pair autonomy %v, expected %v", pair.Autonomy, want)
	}
	if lone.ExternalLinks != 1 || lone.Autonomy != 0 {
		t.Fatalf("lone %+v", lone)
	}
}

func TestAnalyze3D(t *testing.T) {
	g := core.NewSparse[core.Vec3]()
	g.Set(core.Vec3{}, core.Cell{State: core.Alive(1)})
	g.Set(core.Vec3{X: 1, Y: 1, Z: 1}, core.Cell{State: core.Alive(1)})
	g.Set(core.Vec3{Z: 5}, core.Cell{State: core.Alive(1)})
	g.Set(core.Vec3{Z: 6}, core.Cell{})

	stats := Analyze[core.Vec3](g, Options{})
	if len(stats) != 2 || stats[0].Size != 2 || stats[1].Size != 1 {
		t.Fatalf("stats %+v", stats)
	}
}

func TestSummarize(t *testing.T) {
	s := Summarize(Analyze[core.Vec2](scenario(), Options{}))
	if s.Count != 3 || s.Alive != 6 || s.Largest != 4 || s.Singletons != 2 || s.MeanSize != 2 {
		t.Fatalf("summary %+v", s)
	}
	if s.MeanAutonomy != 1 {
		t.Fatalf("mean autonomy %v", s.MeanAutonomy)
	}
	if (Summarize(nil) != Summary{}) {
		t.Fatal("empty summary not zero")
	}
}
