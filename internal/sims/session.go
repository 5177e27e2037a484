// Package sims binds kernel rules to the host Sim contract. A Session owns the
// grid and stepper for one registered rule.
package sims

import (
	"fmt"
	"strconv"
	"strings"

	"ca-kernel/internal/core"
	"ca-kernel/internal/render"
	"ca-kernel/pkg/cluster"
	kernel "ca-kernel/pkg/core"
	"ca-kernel/pkg/step"
)

// SeedFunc populates a freshly cleared grid of the given size. Only cells
// passed to set are written.
type SeedFunc func(size kernel.Vec2, rng *kernel.RNG, cfg kernel.Config, set func(kernel.Vec2, kernel.Cell))

// Definition describes a registrable simulation.
type Definition struct {
	Name     string
	Rule     kernel.Rule[kernel.Vec2]
	Seed     SeedFunc
	Defaults kernel.Config
	Controls []core.ParameterControl
	Palette  render.Palette
	// History runs the rule on a single row and scrolls earlier rows down
	// the display, one per generation.
	History bool
}

// Options selects the grid and stepper for a session.
type Options struct {
	Width    int
	Height   int
	Backend  kernel.Kind
	Parallel bool
	Workers  int
	Grow     bool
	Seed     int64
	// Rule holds the remaining keys, passed to the rule as its config.
	Rule kernel.Config
}

// DefaultOptions returns a 256x256 dense grid stepped sequentially.
func DefaultOptions() Options {
	return Options{Width: 256, Height: 256, Backend: kernel.KindDense}
}

// OptionsFromMap reads w, h, backend (dense|sparse), parallel, workers, grow
// and seed. Every other key is copied into Rule.
func OptionsFromMap(cfg map[string]string) Options {
	o := DefaultOptions()
	for k, v := range cfg {
		switch k {
		case "w":
			if n, err := strconv.Atoi(v); err == nil && n > 0 {
				o.Width = n
			}
		case "h":
			if n, err := strconv.Atoi(v); err == nil && n > 0 {
				o.Height = n
			}
		case "backend":
			if strings.EqualFold(v, kernel.KindSparse.String()) {
				o.Backend = kernel.KindSparse
			}
		case "parallel":
			if b, err := strconv.ParseBool(v); err == nil {
				o.Parallel = b
			}
		case "workers":
			if n, err := strconv.Atoi(v); err == nil {
				o.Workers = n
			}
		case "grow":
			if b, err := strconv.ParseBool(v); err == nil {
				o.Grow = b
			}
		case "seed":
			if n, err := strconv.ParseInt(v, 10, 64); err == nil {
				o.Seed = n
			}
		default:
			if o.Rule == nil {
				o.Rule = kernel.Config{}
			}
			o.Rule[k] = v
		}
	}
	return o
}

// Session is a running simulation.
type Session struct {
	def     Definition
	opts    Options
	cfg     kernel.Config
	grid    kernel.Backend[kernel.Vec2]
	stepper step.Stepper[kernel.Vec2]
	display *core.ByteGrid
	gen     int
}

// New builds a session and seeds it with opts.Seed. Dense-only rules are
// rejected on sparse grids here rather than on the first step.
func New(def Definition, opts Options) (*Session, error) {
	if def.Rule == nil {
		return nil, fmt.Errorf("sim %q: %w", def.Name, step.ErrNilRule)
	}
	if d, ok := def.Rule.(kernel.DenseOnly); ok && d.DenseOnly() && opts.Backend == kernel.KindSparse {
		return nil, fmt.Errorf("sim %q: %w", def.Name, step.ErrDenseOnly)
	}
	opts.Width, opts.Height = max(opts.Width, 1), max(opts.Height, 1)

	cfg := kernel.Config{}
	for k, v := range def.Defaults {
		cfg[k] = v
	}
	for k, v := range opts.Rule {
		cfg[k] = v
	}

	s := &Session{
		def:     def,
		opts:    opts,
		cfg:     cfg,
		display: core.NewByteGrid(opts.Width, opts.Height),
		stepper: step.Stepper[kernel.Vec2]{
			Rule:     def.Rule,
			Config:   cfg,
			Parallel: opts.Parallel,
			Workers:  opts.Workers,
			Grow:     opts.Grow,
		},
	}
	if opts.Backend == kernel.KindSparse {
		s.grid = kernel.NewSparse[kernel.Vec2]()
	} else {
		s.grid = kernel.NewDense(s.gridSize())
	}
	s.Reset(opts.Seed)
	return s, nil
}

func (s *Session) gridSize() kernel.Vec2 {
	if s.def.History {
		return kernel.Vec2{X: s.opts.Width, Y: 1}
	}
	return kernel.Vec2{X: s.opts.Width, Y: s.opts.Height}
}

// Name returns the registered simulation name.
func (s *Session) Name() string { return s.def.Name }

// Size returns the display dimensions.
func (s *Session) Size() core.Size { return core.Size{W: s.opts.Width, H: s.opts.Height} }

// Reset clears the grid and reseeds it.
func (s *Session) Reset(seed int64) {
	s.grid.Clear()
	s.display.Clear()
	s.gen = 0
	if s.def.Seed != nil {
		s.def.Seed(s.gridSize(), kernel.NewRNG(seed), s.cfg, s.set)
	}
	if s.def.History {
		s.scroll(false)
	}
}

func (s *Session) set(p kernel.Vec2, c kernel.Cell) {
	switch g := s.grid.(type) {
	case *kernel.Dense[kernel.Vec2]:
		g.Set(p, c)
	case *kernel.Sparse[kernel.Vec2]:
		g.Set(p, c)
	}
}

// Step advances one generation.
func (s *Session) Step() error {
	if err := s.stepper.Step(s.grid); err != nil {
		return fmt.Errorf("sim %q generation %d: %w", s.def.Name, s.gen, err)
	}
	s.gen++
	if s.def.History {
		s.scroll(true)
	}
	return nil
}

// scroll writes the current row to the top of the display, first shifting
// the history down one row when shift is set.
func (s *Session) scroll(shift bool) {
	w := s.display.W
	buf := s.display.Cells()
	if shift {
		copy(buf[w:], buf[:len(buf)-w])
	}
	clear(buf[:w])
	s.grid.Each(func(p kernel.Vec2, c kernel.Cell) bool {
		if p.Y == 0 && p.X >= 0 && p.X < w {
			buf[p.X] = c.State.Energy()
		}
		return true
	})
}

// Cells returns one display byte per cell, the state's energy. Sparse grids
// are shown through the W x H window at the origin.
func (s *Session) Cells() []uint8 {
	if !s.def.History {
		s.display.Project(s.grid, kernel.Vec2{})
	}
	return s.display.Cells()
}

// Generation returns the number of steps since the last reset.
func (s *Session) Generation() int { return s.gen }

// Backend exposes the kernel grid.
func (s *Session) Backend() kernel.Backend[kernel.Vec2] { return s.grid }

// Config returns the live rule configuration.
func (s *Session) Config() kernel.Config { return s.cfg }

// Palette returns the display palette, nil for plain on/off rendering.
func (s *Session) Palette() render.Palette { return s.def.Palette }

// Clusters labels the current grid.
func (s *Session) Clusters(opts cluster.Options) cluster.Labeling[kernel.Vec2] {
	return cluster.Label(s.grid, opts)
}

// Summary measures the current grid's components.
func (s *Session) Summary(opts cluster.Options) cluster.Summary {
	return cluster.Summarize(cluster.Measure(s.Clusters(opts)))
}

// Parameters reports the rule configuration and the stepping setup.
func (s *Session) Parameters() core.ParameterSnapshot {
	grid := core.ParameterGroup{
		Name: "grid",
		Params: []core.Parameter{
			{Key: "backend", Label: "Backend", Type: core.ParamTypeString, Value: s.grid.Kind().String()},
			{Key: "parallel", Label: "Parallel", Type: core.ParamTypeBool, Value: strconv.FormatBool(s.opts.Parallel)},
			{Key: "generation", Label: "Generation", Type: core.ParamTypeInt, Value: strconv.Itoa(s.gen)},
		},
	}
	return core.ParameterSnapshot{Groups: []core.ParameterGroup{core.ConfigGroup("rule", s.cfg), grid}}
}

// ParameterControls lists the HUD-adjustable rule parameters.
func (s *Session) ParameterControls() []core.ParameterControl { return s.def.Controls }

// SetFloatParameter updates a float control, clamped to its bounds.
func (s *Session) SetFloatParameter(key string, value float64) bool {
	ctl, ok := s.control(key, core.ParamTypeFloat)
	if !ok {
		return false
	}
	s.cfg[key] = strconv.FormatFloat(bound(ctl, value), 'g', -1, 64)
	return true
}

// SetIntParameter updates an int control, clamped to its bounds.
func (s *Session) SetIntParameter(key string, value int) bool {
	ctl, ok := s.control(key, core.ParamTypeInt)
	if !ok {
		return false
	}
	s.cfg[key] = strconv.Itoa(int(bound(ctl, float64(value))))
	return true
}

func (s *Session) control(key string, typ core.ParamType) (core.ParameterControl, bool) {
	for _, c := range s.def.Controls {
		if c.Key == key && c.Type == typ {
			return c, true
		}
	}
	return core.ParameterControl{}, false
}

func bound(c core.ParameterControl, v float64) float64 {
	if c.HasMin && v < c.Min {
		v = c.Min
	}
	if c.HasMax && v > c.Max {
		v = c.Max
	}
	return v
}

// Register adds def to the host registry. The factory reads its options
// with OptionsFromMap.
func Register(def Definition) {
	core.Register(def.Name, func(cfg map[string]string) (core.Sim, error) {
		s, err := New(def, OptionsFromMap(cfg))
		if err != nil {
			return nil, err
		}
		return s, nil
	})
}
