// Package parity cross-checks reconstructed counts against the counts a
// document declares about itself.
package parity

import (
	"fmt"
	"strings"

	"github.com/Faultbox/scene3d/internal/lattice"
	"github.com/Faultbox/scene3d/pkg/scenefile"
)

// Status is the outcome of a parity check.
type Status string

// Check outcomes.
const (
	StatusOK          Status = "ok"
	StatusMismatch    Status = "mismatch"
	StatusUnavailable Status = "unavailable"
)

// Field names, in report order.
const (
	FieldTiles     = "tiles"
	FieldEdgesH    = "edgesH"
	FieldEdgesV    = "edgesV"
	FieldFloorArea = "floorArea"
	FieldEdgeLenH  = "edgeLenH"
	FieldEdgeLenV  = "edgeLenV"
)

// Counts are the actual metrics of a load. Area and lengths are in lattice
// units, so on a unit-cell lattice they track the raw counts.
type Counts struct {
	Tiles     int `json:"tiles"`
	EdgesH    int `json:"edgesH"`
	EdgesV    int `json:"edgesV"`
	FloorArea int `json:"floorArea"`
	EdgeLenH  int `json:"edgeLenH"`
	EdgeLenV  int `json:"edgeLenV"`
}

// CountsFrom derives counts from the unique tiles and edges of an index.
func CountsFrom(idx *lattice.Index) Counts {
	return Counts{
		Tiles:     len(idx.Tiles),
		EdgesH:    len(idx.Horizontal),
		EdgesV:    len(idx.Vertical),
		FloorArea: len(idx.Tiles),
		EdgeLenH:  len(idx.Horizontal),
		EdgeLenV:  len(idx.Vertical),
	}
}

// Mismatch is one failing field.
type Mismatch struct {
	Field    string `json:"field"`
	Expected int    `json:"expected"`
	Actual   int    `json:"actual"`
}

func (m Mismatch) String() string {
	return fmt.Sprintf("%s: expected %d, got %d", m.Field, m.Expected, m.Actual)
}

// Report is the diagnostic result of a parity check.
type Report struct {
	Status     Status     `json:"status"`
	Actual     Counts     `json:"actual"`
	Mismatches []Mismatch `json:"mismatches,omitempty"`
}

// OK reports whether every declared field matched.
func (r Report) OK() bool {
	return r.Status == StatusOK
}

func (r Report) String() string {
	switch r.Status {
	case StatusMismatch:
		parts := make([]string, len(r.Mismatches))
		for i, m := range r.Mismatches {
			parts[i] = m.String()
		}
		return "parity mismatch: " + strings.Join(parts, "; ")
	case StatusUnavailable:
		return "parity unavailable"
	default:
		return "parity ok"
	}
}

// Check compares actual counts against the declared block. A nil block yields
// StatusUnavailable. Every failing field is listed.
func Check(declared *scenefile.Parity, actual Counts) Report {
	r := Report{Status: StatusUnavailable, Actual: actual}
	if declared == nil {
		return r
	}

	pairs := []struct {
		field            string
		expected, actual int
	}{
		{FieldTiles, declared.Tiles, actual.Tiles},
		{FieldEdgesH, declared.EdgesH, actual.EdgesH},
		{FieldEdgesV, declared.EdgesV, actual.EdgesV},
		{FieldFloorArea, declared.FloorArea, actual.FloorArea},
		{FieldEdgeLenH, declared.EdgeLenH, actual.EdgeLenH},
		{FieldEdgeLenV, declared.EdgeLenV, actual.EdgeLenV},
	}
	for _, p := range pairs {
		if p.expected != p.actual {
			r.Mismatches = append(r.Mismatches, Mismatch{Field: p.field, Expected: p.expected, Actual: p.actual})
		}
	}

	r.Status = StatusOK
	if len(r.Mismatches) > 0 {
		r.Status = StatusMismatch
	}
	return r
}
