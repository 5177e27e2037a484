package step

import (
	"ca-kernel/pkg/core"

	"golang.org/x/sync/errgroup"
)

func sequentialDense[P core.Coord[P]](g *core.Dense[P], rule core.Rule[P], cfg core.Config) {
	size := g.Size()
	g.Advance(func(snapshot, next []core.Cell) {
		ev := newEvaluator(rule, cfg)
		for i := range snapshot {
			if out := ev.dense(snapshot, size, i); out.Changed {
				next[i] = apply(snapshot[i], out)
			}
		}
	})
}

// parallelDense gives each worker exclusive ownership of one index band of
// next; all reads go to the shared snapshot.
func parallelDense[P core.Coord[P]](g *core.Dense[P], rule core.Rule[P], cfg core.Config, workers int) {
	size := g.Size()
	g.Advance(func(snapshot, next []core.Cell) {
		var eg errgroup.Group
		for _, band := range bands(len(snapshot), workers) {
			eg.Go(func() error {
				ev := newEvaluator(rule, cfg)
				for i := band[0]; i < band[1]; i++ {
					if out := ev.dense(snapshot, size, i); out.Changed {
						next[i] = apply(snapshot[i], out)
					}
				}
				return nil
			})
		}
		// Rule.Next has no error path, so workers always return nil and Wait
		// only joins them.
		_ = eg.Wait()
	})
}
