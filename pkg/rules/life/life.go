// Package life implements Conway's Game of Life and the wider family of
// outer-totalistic birth/survival rules in any dimensionality.
package life

import (
	"errors"
	"fmt"
	"strings"
	"sync/atomic"

	"ca-kernel/pkg/core"
)

// Config holds the parsed rule parameters.
type Config struct {
	// Birth and Survive are bitmasks over live-neighbor counts.
	Birth   uint32
	Survive uint32
	// Level is the energy given to newborn cells.
	Level uint8
}

// DefaultConfig returns Conway's B3/S23 with full-brightness births.
func DefaultConfig() Config {
	return Config{Birth: 1 << 3, Survive: 1<<2 | 1<<3, Level: 255}
}

// FromConfig reads "rule" (B/S notation) and "level" (1..255). Missing or
// malformed values keep their defaults.
func FromConfig(cfg core.Config) Config {
	c := DefaultConfig()
	if cfg == nil {
		return c
	}
	if v, ok := cfg["rule"]; ok {
		if birth, survive, err := ParseRule(v); err == nil {
			c.Birth, c.Survive = birth, survive
		}
	}
	if lvl := cfg.Int("level", 0); lvl >= 1 && lvl <= 255 {
		c.Level = uint8(lvl)
	}
	return c
}

// ParseRule parses rules such as "B3/S23" or "B36/S23". Counts are single
// digits, which covers every 2-D rule; 3-D counts above nine are written as
// comma separated lists, e.g. "B5,6/S4,5,10".
func ParseRule(s string) (birth, survive uint32, err error) {
	parts := strings.Split(strings.ToUpper(strings.TrimSpace(s)), "/")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("life: rule %q is not in B/S form", s)
	}
	for _, part := range parts {
		if part == "" {
			return 0, 0, errors.New("life: empty rule section")
		}
		mask, err := parseCounts(part[1:])
		if err != nil {
			return 0, 0, fmt.Errorf("life: rule %q: %w", s, err)
		}
		switch part[0] {
		case 'B':
			birth = mask
		case 'S':
			survive = mask
		default:
			return 0, 0, fmt.Errorf("life: unknown rule section %q", part)
		}
	}
	return birth, survive, nil
}

func parseCounts(s string) (uint32, error) {
	var mask uint32
	if strings.Contains(s, ",") {
		for _, f := range strings.Split(s, ",") {
			n := 0
			if _, err := fmt.Sscanf(f, "%d", &n); err != nil || n < 0 || n > 26 {
				return 0, fmt.Errorf("bad neighbor count %q", f)
			}
			mask |= 1 << n
		}
		return mask, nil
	}
	for _, r := range s {
		if r < '0' || r > '8' {
			return 0, fmt.Errorf("bad neighbor count %q", r)
		}
		mask |= 1 << (r - '0')
	}
	return mask, nil
}

// parsed is the most recently parsed configuration, keyed on the raw
// strings it came from.
type parsed struct {
	rule, level string
	cfg         Config
}

var lastParsed atomic.Pointer[parsed]

// configFor is FromConfig with the result cached across calls, so a step
// parses the rule string once rather than once per cell.
func configFor(cfg core.Config) Config {
	rule, level := cfg["rule"], cfg["level"]
	if p := lastParsed.Load(); p != nil && p.rule == rule && p.level == level {
		return p.cfg
	}
	p := &parsed{rule: rule, level: level, cfg: FromConfig(cfg)}
	lastParsed.Store(p)
	return p.cfg
}

// Rule is the Life transition for dimensionality P. Memory holds an int
// alive flag (0 or 1) that tracks logical liveness independently of the
// state's energy.
type Rule[P core.Coord[P]] struct{}

// New returns the Life rule for dimensionality P.
func New[P core.Coord[P]]() Rule[P] { return Rule[P]{} }

// Next implements core.Rule.
func (Rule[P]) Next(ctx *core.Context[P], cfg core.Config) core.Outcome {
	c := configFor(cfg)
	neighbors := 0
	for _, s := range ctx.Neighbors {
		if s.Alive() {
			neighbors++
		}
	}
	alive := ctx.Self.Alive()
	next := (alive && c.Survive&(1<<neighbors) != 0) || (!alive && c.Birth&(1<<neighbors) != 0)

	flag := 0
	if next {
		flag = 1
	}
	if next == alive && core.MemoryInt(ctx.Memory, -1) == flag {
		return core.Unchanged()
	}
	switch {
	case next && alive:
		return core.Next(ctx.Self, flag)
	case next:
		return core.Next(core.Alive(c.Level), flag)
	default:
		return core.Next(core.Dead, flag)
	}
}
