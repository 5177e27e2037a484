// Package step advances a grid backend by one generation using a rule.
//
// Every variant reads generation n from an immutable snapshot and writes
// generation n+1 into separate storage, so no evaluation ever observes a value
// produced in the same generation. Sequential and parallel runs therefore
// produce identical grids for any worker count.
package step

import (
	"errors"
	"fmt"
	"runtime"

	"ca-kernel/pkg/core"
)

var (
	// ErrNilBackend is returned when Step is called without a grid.
	ErrNilBackend = errors.New("step: nil backend")
	// ErrNilRule is returned when the stepper has no rule.
	ErrNilRule = errors.New("step: nil rule")
	// ErrDenseOnly is returned when a rule implementing core.DenseOnly is run
	// against a sparse grid. The grid is left untouched.
	ErrDenseOnly = errors.New("step: rule requires a dense grid")
)

// Stepper binds a rule and its configuration to a stepping strategy.
type Stepper[P core.Coord[P]] struct {
	Rule   core.Rule[P]
	Config core.Config

	// Parallel fans evaluation out over Workers goroutines. Workers <= 0
	// means runtime.GOMAXPROCS(0).
	Parallel bool
	Workers  int

	// Grow makes the sparse steppers also evaluate absent coordinates next to
	// alive entries, inserting them when they come alive. Without it only
	// stored entries are ever evaluated. Dense grids ignore it.
	Grow bool
}

// Sequential advances b by one generation on the calling goroutine.
func Sequential[P core.Coord[P]](b core.Backend[P], rule core.Rule[P], cfg core.Config) error {
	return Stepper[P]{Rule: rule, Config: cfg}.Step(b)
}

// Parallel advances b by one generation using the given number of workers.
func Parallel[P core.Coord[P]](b core.Backend[P], rule core.Rule[P], cfg core.Config, workers int) error {
	return Stepper[P]{Rule: rule, Config: cfg, Parallel: true, Workers: workers}.Step(b)
}

// Step advances b by one generation. The caller must not touch b until Step
// returns.
func (s Stepper[P]) Step(b core.Backend[P]) error {
	if b == nil {
		return ErrNilBackend
	}
	if s.Rule == nil {
		return ErrNilRule
	}
	switch g := b.(type) {
	case *core.Dense[P]:
		if g == nil {
			return ErrNilBackend
		}
		if s.Parallel {
			parallelDense(g, s.Rule, s.Config, s.workers())
		} else {
			sequentialDense(g, s.Rule, s.Config)
		}
	case *core.Sparse[P]:
		if g == nil {
			return ErrNilBackend
		}
		if d, ok := s.Rule.(core.DenseOnly); ok && d.DenseOnly() {
			return fmt.Errorf("%w: %T on sparse grid", ErrDenseOnly, s.Rule)
		}
		if s.Parallel {
			parallelSparse(g, s.Rule, s.Config, s.workers(), s.Grow)
		} else {
			sequentialSparse(g, s.Rule, s.Config, s.Grow)
		}
	default:
		panic(fmt.Sprintf("step: unsupported backend %T", b))
	}
	return nil
}

func (s Stepper[P]) workers() int {
	if s.Workers > 0 {
		return s.Workers
	}
	return runtime.GOMAXPROCS(0)
}

// evaluator owns the context and neighbor buffer for one goroutine.
type evaluator[P core.Coord[P]] struct {
	rule core.Rule[P]
	cfg  core.Config
	offs []P
	ctx  core.Context[P]
}

func newEvaluator[P core.Coord[P]](rule core.Rule[P], cfg core.Config) *evaluator[P] {
	offs := core.Neighborhood[P]()
	return &evaluator[P]{
		rule: rule,
		cfg:  cfg,
		offs: offs,
		ctx:  core.Context[P]{Neighbors: make([]core.State, len(offs))},
	}
}

func (e *evaluator[P]) dense(snapshot []core.Cell, size P, i int) core.Outcome {
	p := size.At(i)
	for k, o := range e.offs {
		q := p.Add(o)
		if q.In(size) {
			e.ctx.Neighbors[k] = snapshot[q.Index(size)].State
		} else {
			e.ctx.Neighbors[k] = core.Dead
		}
	}
	c := snapshot[i]
	e.ctx.Pos, e.ctx.Self, e.ctx.Memory = p, c.State, c.Memory
	return e.rule.Next(&e.ctx, e.cfg)
}

func (e *evaluator[P]) sparse(snapshot map[P]core.Cell, p P, c core.Cell) core.Outcome {
	for k, o := range e.offs {
		e.ctx.Neighbors[k] = snapshot[p.Add(o)].State
	}
	e.ctx.Pos, e.ctx.Self, e.ctx.Memory = p, c.State, c.Memory
	return e.rule.Next(&e.ctx, e.cfg)
}

func apply(c core.Cell, out core.Outcome) core.Cell {
	if !out.Changed {
		return c
	}
	return core.Cell{State: out.State, Memory: out.Memory}
}

// frontier returns absent coordinates adjacent to alive entries, each once.
func frontier[P core.Coord[P]](snapshot map[P]core.Cell) []P {
	offs := core.Neighborhood[P]()
	seen := make(map[P]struct{})
	var out []P
	for p, c := range snapshot {
		if !c.State.Alive() {
			continue
		}
		for _, o := range offs {
			q := p.Add(o)
			if _, stored := snapshot[q]; stored {
				continue
			}
			if _, dup := seen[q]; dup {
				continue
			}
			seen[q] = struct{}{}
			out = append(out, q)
		}
	}
	return out
}

// bands splits [0, n) into at most workers contiguous ranges.
func bands(n, workers int) [][2]int {
	if n <= 0 {
		return nil
	}
	if workers < 1 {
		workers = 1
	}
	if workers > n {
		workers = n
	}
	per := (n + workers - 1) / workers
	out := make([][2]int, 0, workers)
	for start := 0; start < n; start += per {
		out = append(out, [2]int{start, min(start+per, n)})
	}
	return out
}
