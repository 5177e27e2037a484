package app

import (
	"flag"
	"fmt"
	"strconv"
	"strings"

	"github.com/caarlos0/env/v11"
)

// Config holds the host settings shared by the viewer and the headless
// runner. Environment variables are read first; flags override them.
type Config struct {
	Sim      string            `env:"CA_SIM"`
	Scale    int               `env:"CA_SCALE"`
	TPS      int               `env:"CA_TPS"`
	Seed     int64             `env:"CA_SEED"`
	Width    int               `env:"CA_WIDTH"`
	Height   int               `env:"CA_HEIGHT"`
	Backend  string            `env:"CA_BACKEND"`
	Parallel bool              `env:"CA_PARALLEL"`
	Workers  int               `env:"CA_WORKERS"`
	Grow     bool              `env:"CA_GROW"`
	Rule     map[string]string `env:"CA_RULE"`
}

// NewConfig returns the defaults: Conway's Life on a dense 256x256 grid.
func NewConfig() Config {
	return Config{
		Sim:     "life",
		Scale:   3,
		TPS:     30,
		Seed:    1,
		Width:   256,
		Height:  256,
		Backend: "dense",
	}
}

// LoadEnv overlays CA_* environment variables onto c. Unset variables keep
// their current values. CA_RULE takes comma separated key:value pairs.
func (c *Config) LoadEnv() error {
	if err := env.Parse(c); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Bind registers command-line flags that write into c. Call LoadEnv first so
// the flag defaults shown in -help reflect the environment.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.StringVar(&c.Sim, "sim", c.Sim, "simulation to run")
	fs.IntVar(&c.Scale, "scale", c.Scale, "pixels per cell")
	fs.IntVar(&c.TPS, "tps", c.TPS, "generations per second (0 runs unpaced)")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "seed for the initial pattern")
	fs.IntVar(&c.Width, "w", c.Width, "grid width")
	fs.IntVar(&c.Height, "h", c.Height, "grid height")
	fs.StringVar(&c.Backend, "backend", c.Backend, "grid backend: dense or sparse")
	fs.BoolVar(&c.Parallel, "parallel", c.Parallel, "step with a worker pool")
	fs.IntVar(&c.Workers, "workers", c.Workers, "parallel workers (0 uses GOMAXPROCS)")
	fs.BoolVar(&c.Grow, "grow", c.Grow, "let sparse grids grow past their stored cells")
	fs.Var((*kvMap)(&c.Rule), "set", "rule parameter in key=value form (repeatable)")
}

// SimConfig flattens c into the map handed to a simulation factory.
func (c Config) SimConfig() map[string]string {
	out := make(map[string]string, len(c.Rule)+7)
	for k, v := range c.Rule {
		out[k] = v
	}
	out["w"] = strconv.Itoa(c.Width)
	out["h"] = strconv.Itoa(c.Height)
	out["backend"] = c.Backend
	out["parallel"] = strconv.FormatBool(c.Parallel)
	out["workers"] = strconv.Itoa(c.Workers)
	out["grow"] = strconv.FormatBool(c.Grow)
	out["seed"] = strconv.FormatInt(c.Seed, 10)
	return out
}

// kvMap collects repeated key=value flags.
type kvMap map[string]string

func (m *kvMap) String() string {
	if m == nil {
		return ""
	}
	parts := make([]string, 0, len(*m))
	for k, v := range *m {
		parts = append(parts, k+"="+v)
	}
	return strings.Join(parts, ",")
}

func (m *kvMap) Set(value string) error {
	k, v, ok := strings.Cut(value, "=")
	if !ok || k == "" {
		return fmt.Errorf("expected key=value, got %q", value)
	}
	if *m == nil {
		*m = map[string]string{}
	}
	(*m)[k] = v
	return nil
}
