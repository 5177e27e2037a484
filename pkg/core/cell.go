package core

import (
	"encoding/json"
	"errors"
	"fmt"
)

// State is the discrete part of a cell. The zero value is Dead; any other
// value is an alive state whose byte is the energy (1..255).
type State uint8

// Dead is the default cell state.
const Dead State = 0

// Alive returns the alive state carrying the given energy. Energy zero is not
// a valid alive state and panics.
func Alive(energy uint8) State {
	if energy == 0 {
		panic("core: Alive(0) is not a valid state")
	}
	return State(energy)
}

// Alive reports whether s is not Dead.
func (s State) Alive() bool { return s != Dead }

// Energy returns the alive magnitude, or zero for Dead.
func (s State) Energy() uint8 { return uint8(s) }

func (s State) String() string {
	if s == Dead {
		return "dead"
	}
	return fmt.Sprintf("alive(%d)", uint8(s))
}

type aliveJSON struct {
	Alive uint8 `json:"alive"`
}

// MarshalJSON encodes Dead as "dead" and alive states as {"alive":N}.
func (s State) MarshalJSON() ([]byte, error) {
	if s == Dead {
		return []byte(`"dead"`), nil
	}
	return json.Marshal(aliveJSON{Alive: uint8(s)})
}

// UnmarshalJSON decodes the form produced by MarshalJSON.
func (s *State) UnmarshalJSON(data []byte) error {
	var tag string
	if err := json.Unmarshal(data, &tag); err == nil {
		if tag != "dead" {
			return fmt.Errorf("core: unknown state tag %q", tag)
		}
		*s = Dead
		return nil
	}
	var a aliveJSON
	if err := json.Unmarshal(data, &a); err != nil {
		return fmt.Errorf("core: decode state: %w", err)
	}
	if a.Alive == 0 {
		return errors.New("core: alive state with zero energy")
	}
	*s = State(a.Alive)
	return nil
}

// Memory is rule-private auxiliary data attached to a cell. The kernel never
// inspects it and copies it verbatim.
type Memory = any

// Cell is the unit stored by every grid backend.
type Cell struct {
	State  State  `json:"state"`
	Memory Memory `json:"memory,omitempty"`
}

// MemoryFloat interprets m as a float64, returning def when m holds no number.
func MemoryFloat(m Memory, def float64) float64 {
	switch v := m.(type) {
	case float64:
		return v
	case float32:
		return float64(v)
	case int:
		return float64(v)
	case int64:
		return float64(v)
	case uint8:
		return float64(v)
	}
	return def
}

// MemoryInt interprets m as an int, returning def when m holds no number.
// Floats are truncated, which covers values that went through JSON.
func MemoryInt(m Memory, def int) int {
	switch v := m.(type) {
	case int:
		return v
	case int64:
		return int(v)
	case uint8:
		return int(v)
	case float64:
		return int(v)
	}
	return def
}
