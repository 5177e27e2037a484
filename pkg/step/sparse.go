package step

import (
	"ca-kernel/pkg/core"

	"golang.org/x/sync/errgroup"
)

func sequentialSparse[P core.Coord[P]](g *core.Sparse[P], rule core.Rule[P], cfg core.Config, grow bool) {
	g.Advance(func(snapshot map[P]core.Cell) map[P]core.Cell {
		ev := newEvaluator(rule, cfg)
		next := make(map[P]core.Cell, len(snapshot))
		for p, c := range snapshot {
			next[p] = apply(c, ev.sparse(snapshot, p, c))
		}
		if !grow {
			return next
		}
		for _, p := range frontier(snapshot) {
			if out := ev.sparse(snapshot, p, core.Cell{}); out.Changed && out.State.Alive() {
				next[p] = apply(core.Cell{}, out)
			}
		}
		return next
	})
}

type sparseResult[P core.Coord[P]] struct {
	pos  P
	cell core.Cell
	keep bool
}

// parallelSparse evaluates entries concurrently into disjoint result slots and
// then builds the new map on the calling goroutine.
func parallelSparse[P core.Coord[P]](g *core.Sparse[P], rule core.Rule[P], cfg core.Config, workers int, grow bool) {
	g.Advance(func(snapshot map[P]core.Cell) map[P]core.Cell {
		results := make([]sparseResult[P], 0, len(snapshot))
		for p, c := range snapshot {
			results = append(results, sparseResult[P]{pos: p, cell: c, keep: true})
		}
		stored := len(results)
		if grow {
			for _, p := range frontier(snapshot) {
				results = append(results, sparseResult[P]{pos: p})
			}
		}

		var eg errgroup.Group
		for _, band := range bands(len(results), workers) {
			eg.Go(func() error {
				ev := newEvaluator(rule, cfg)
				for i := band[0]; i < band[1]; i++ {
					r := &results[i]
					out := ev.sparse(snapshot, r.pos, r.cell)
					if i >= stored && !(out.Changed && out.State.Alive()) {
						continue
					}
					r.cell = apply(r.cell, out)
					r.keep = true
				}
				return nil
			})
		}
		// Rule.Next has no error path, so workers always return nil and Wait
		// only joins them.
		_ = eg.Wait()

		next := make(map[P]core.Cell, len(results))
		for _, r := range results {
			if r.keep {
				next[r.pos] = r.cell
			}
		}
		return next
	})
}
