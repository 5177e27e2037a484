package core

import (
	"encoding/json"
	"errors"
	"fmt"
)

type denseJSON[P Coord[P]] struct {
	Kind  string `json:"kind"`
	Size  P      `json:"size"`
	Cells []Cell `json:"cells"`
}

type sparseEntry[P Coord[P]] struct {
	Pos    P      `json:"pos"`
	State  State  `json:"state"`
	Memory Memory `json:"memory,omitempty"`
}

type sparseJSON[P Coord[P]] struct {
	Kind  string           `json:"kind"`
	Cells []sparseEntry[P] `json:"cells"`
}

// MarshalJSON encodes the grid with its size and row-major cells.
func (g *Dense[P]) MarshalJSON() ([]byte, error) {
	return json.Marshal(denseJSON[P]{Kind: KindDense.String(), Size: g.size, Cells: g.cells})
}

// UnmarshalJSON restores a grid written by MarshalJSON.
func (g *Dense[P]) UnmarshalJSON(data []byte) error {
	var raw denseJSON[P]
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw.Kind != KindDense.String() {
		return fmt.Errorf("core: expected dense grid, got %q", raw.Kind)
	}
	if raw.Size.Clamp() != raw.Size {
		return fmt.Errorf("core: dense grid size %v has an extent below 1", raw.Size)
	}
	if n := raw.Size.Volume(); n != len(raw.Cells) {
		return fmt.Errorf("core: dense grid of size %v has %d cells", raw.Size, len(raw.Cells))
	}
	g.size = raw.Size
	g.cells = raw.Cells
	g.spare = make([]Cell, len(raw.Cells))
	return nil
}

// MarshalJSON encodes the entries in row-major order.
func (g *Sparse[P]) MarshalJSON() ([]byte, error) {
	raw := sparseJSON[P]{Kind: KindSparse.String(), Cells: make([]sparseEntry[P], 0, len(g.cells))}
	for _, p := range g.Keys() {
		c := g.cells[p]
		raw.Cells = append(raw.Cells, sparseEntry[P]{Pos: p, State: c.State, Memory: c.Memory})
	}
	return json.Marshal(raw)
}

// UnmarshalJSON restores a grid written by MarshalJSON.
func (g *Sparse[P]) UnmarshalJSON(data []byte) error {
	var raw sparseJSON[P]
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw.Kind != KindSparse.String() {
		return fmt.Errorf("core: expected sparse grid, got %q", raw.Kind)
	}
	g.cells = make(map[P]Cell, len(raw.Cells))
	for _, e := range raw.Cells {
		g.cells[e.Pos] = Cell{State: e.State, Memory: e.Memory}
	}
	return nil
}

// DecodeBackend reads either grid encoding, dispatching on its kind field.
func DecodeBackend[P Coord[P]](data []byte) (Backend[P], error) {
	var head struct {
		Kind string `json:"kind"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return nil, fmt.Errorf("core: decode grid: %w", err)
	}
	switch head.Kind {
	case KindDense.String():
		g := &Dense[P]{}
		if err := json.Unmarshal(data, g); err != nil {
			return nil, err
		}
		return g, nil
	case KindSparse.String():
		g := NewSparse[P]()
		if err := json.Unmarshal(data, g); err != nil {
			return nil, err
		}
		return g, nil
	case "":
		return nil, errors.New("core: grid kind missing")
	}
	return nil, fmt.Errorf("core: unknown grid kind %q", head.Kind)
}
