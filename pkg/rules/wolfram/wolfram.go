// Package wolfram runs a one-dimensional elementary automaton on a row of a
// 2-D grid.
package wolfram

import "ca-kernel/pkg/core"

const (
	west = 3
	east = 4
)

// DefaultRule is the Wolfram code used when none is configured.
const DefaultRule uint8 = 30

// Config holds parameters for the elementary automaton.
type Config struct {
	Rule uint8
}

// DefaultConfig returns rule 30.
func DefaultConfig() Config {
	return Config{Rule: DefaultRule}
}

// FromConfig reads "rule" (0..255), keeping the default when missing or out
// of range.
func FromConfig(cfg core.Config) Config {
	c := DefaultConfig()
	if r := cfg.Int("rule", -1); r >= 0 && r <= 255 {
		c.Rule = uint8(r)
	}
	return c
}

// Rule applies a Wolfram code using only the west and east neighbors. Every
// other neighbor is ignored, so rows never seeded stay as they are for codes
// that map 000 to 0.
type Rule struct{}

// New returns the elementary rule.
func New() Rule { return Rule{} }

// Next implements core.Rule.
func (Rule) Next(ctx *core.Context[core.Vec2], cfg core.Config) core.Outcome {
	c := FromConfig(cfg)
	idx := bit(ctx.Neighbors[west])<<2 | bit(ctx.Self)<<1 | bit(ctx.Neighbors[east])
	if (c.Rule>>idx)&1 == 0 {
		if !ctx.Self.Alive() {
			return core.Unchanged()
		}
		return core.Next(core.Dead, ctx.Memory)
	}
	if ctx.Self.Alive() {
		return core.Unchanged()
	}
	return core.Next(core.Alive(1), ctx.Memory)
}

func bit(s core.State) uint8 {
	if s.Alive() {
		return 1
	}
	return 0
}
