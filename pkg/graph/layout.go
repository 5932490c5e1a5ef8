package graph

import (
	"encoding/json"

	"github.com/matzehuels/questcanvas/pkg/errors"
	"github.com/matzehuels/questcanvas/pkg/layout"
	"github.com/matzehuels/questcanvas/pkg/quest"
)

// Layout is the serialized form of a layout pass: positions plus the
// diagnostics used by the CLI and API.
type Layout struct {
	Positions map[string]quest.Position `json:"positions"`
	Ranks     map[string]int            `json:"ranks"`
	Rows      [][]string                `json:"rows"`
	Crossings int                       `json:"crossings"`
}

// FromResult converts an engine result into the wire format.
func FromResult(r layout.Result) Layout {
	return Layout{
		Positions: r.Positions,
		Ranks:     r.Ranks,
		Rows:      r.Rows,
		Crossings: r.Crossings,
	}
}

// Result converts the wire format back into an engine result.
func (l Layout) Result() layout.Result {
	return layout.Result{
		Positions: l.Positions,
		Ranks:     l.Ranks,
		Rows:      l.Rows,
		Crossings: l.Crossings,
	}
}

// MarshalLayout serializes a layout to JSON bytes.
func MarshalLayout(l Layout) ([]byte, error) {
	data, err := json.Marshal(l)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode layout")
	}
	return data, nil
}

// UnmarshalLayout deserializes a layout from JSON bytes.
func UnmarshalLayout(data []byte) (Layout, error) {
	var l Layout
	if err := json.Unmarshal(data, &l); err != nil {
		return Layout{}, errors.Wrap(errors.ErrCodeInvalidGraph, err, "decode layout")
	}
	if l.Positions == nil {
		return Layout{}, errors.New(errors.ErrCodeInvalidGraph, "layout has no positions")
	}
	return l, nil
}
