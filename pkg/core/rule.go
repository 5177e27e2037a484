package core

import "strconv"

// Context is the read-only view a rule gets of one cell.
type Context[P Coord[P]] struct {
	Pos  P
	Self State
	// Neighbors holds one state per offset, in Offsets order, Dead for
	// coordinates outside the grid. The buffer is reused between calls and
	// must not be retained.
	Neighbors []State
	Memory    Memory
}

// Outcome is the result of one rule invocation.
type Outcome struct {
	// Changed is false for Unchanged; the stepper then leaves state and memory
	// exactly as they were.
	Changed bool
	State   State
	Memory  Memory
}

// Unchanged returns the outcome that keeps the cell as is.
func Unchanged() Outcome { return Outcome{} }

// Next returns the outcome that overwrites both state and memory.
func Next(s State, m Memory) Outcome { return Outcome{Changed: true, State: s, Memory: m} }

// Rule is a pure local transition. It must not touch anything but its return
// value.
type Rule[P Coord[P]] interface {
	Next(ctx *Context[P], cfg Config) Outcome
}

// RuleFunc adapts a function to the Rule interface.
type RuleFunc[P Coord[P]] func(ctx *Context[P], cfg Config) Outcome

// Next calls f(ctx, cfg).
func (f RuleFunc[P]) Next(ctx *Context[P], cfg Config) Outcome { return f(ctx, cfg) }

// DenseOnly is implemented by rules that only produce meaningful results on
// dense grids. Steppers refuse to run them on sparse backends.
type DenseOnly interface {
	DenseOnly() bool
}

// Config is the per-rule parameter bag. Keys and meaning are defined by each
// rule; lookups fall back to the supplied default on missing or malformed
// values.
type Config map[string]string

// String returns the raw value for key, or def when absent or empty.
func (c Config) String(key, def string) string {
	if v, ok := c[key]; ok && v != "" {
		return v
	}
	return def
}

// Int parses key as an integer, returning def on any failure.
func (c Config) Int(key string, def int) int {
	if v, ok := c[key]; ok {
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
	}
	return def
}

// Float parses key as a float, returning def on any failure.
func (c Config) Float(key string, def float64) float64 {
	if v, ok := c[key]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil {
			return parsed
		}
	}
	return def
}

// With returns a copy of c with key set to value.
func (c Config) With(key, value string) Config {
	out := make(Config, len(c)+1)
	for k, v := range c {
		out[k] = v
	}
	out[key] = value
	return out
}
