package scenefile

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"strings"
)

// Document errors. All of them are fatal to a load.
var (
	ErrMalformedDocument = errors.New("malformed scene document")
	ErrMissingCellMeters = errors.New("missing required field: units.cellMeters")
	ErrInvalidUnits      = errors.New("invalid units")
	ErrMissingAxes       = errors.New("missing required field: meta.axes")
	ErrUnsupportedAxes   = errors.New("unsupported axes format")
	ErrUnsupportedSchema = errors.New("unsupported schema")
)

// Parse decodes a scene document from raw JSON and checks its required fields.
func Parse(data []byte) (*Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedDocument, err)
	}
	if err := Validate(&doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// ParseFile parses a scene document from disk.
func ParseFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scene file: %w", err)
	}
	return Parse(data)
}

// Validate checks the fields a load cannot proceed without.
// A missing schema is tolerated; a different one is not.
func Validate(doc *Document) error {
	if doc == nil {
		return fmt.Errorf("%w: nil document", ErrMalformedDocument)
	}

	cell := doc.Units.CellMeters
	if cell == nil || *cell == 0 {
		return ErrMissingCellMeters
	}
	if *cell < 0 || math.IsNaN(*cell) || math.IsInf(*cell, 0) {
		return fmt.Errorf("%w: cellMeters must be > 0, got %v", ErrInvalidUnits, *cell)
	}

	if doc.Meta.Axes == "" {
		return ErrMissingAxes
	}
	if !strings.HasSuffix(doc.Meta.Axes, AxesSuffix) {
		return fmt.Errorf("%w: %s (expected *%s)", ErrUnsupportedAxes, doc.Meta.Axes, AxesSuffix)
	}

	if doc.Meta.Schema != "" && doc.Meta.Schema != Schema {
		return fmt.Errorf("%w: %q (expected %q)", ErrUnsupportedSchema, doc.Meta.Schema, Schema)
	}

	if err := validateExtent(doc); err != nil {
		return err
	}
	return nil
}

// validateExtent rejects coordinates that land outside 0..MaxCoordinate once
// the origin offset is applied, and editor limits beyond the same bound.
// Lattice storage is sized from these values.
func validateExtent(doc *Document) error {
	lists := []struct {
		name   string
		coords []Coord
	}{
		{"tiles.floor", doc.Tiles.Floor},
		{"edges.horizontal", doc.Edges.Horizontal},
		{"edges.vertical", doc.Edges.Vertical},
	}
	for _, list := range lists {
		for i, c := range list.coords {
			if !inExtent(c.X(), doc.OriginOffset.X) || !inExtent(c.Y(), doc.OriginOffset.Y) {
				return fmt.Errorf("%w: %s[%d] (%d,%d) outside 0..%d after offset",
					ErrMalformedDocument, list.name, i, c.X(), c.Y(), MaxCoordinate)
			}
		}
	}

	if l := doc.Meta.SimLimits; l != nil {
		if l.MaxTilesX > MaxCoordinate || l.MaxTilesY > MaxCoordinate {
			return fmt.Errorf("%w: simLimits %dx%d exceed %d",
				ErrMalformedDocument, l.MaxTilesX, l.MaxTilesY, MaxCoordinate)
		}
	}
	return nil
}

// inExtent reports whether v+offset lies in 0..MaxCoordinate without overflowing.
func inExtent(v, offset int) bool {
	sum := v + offset
	if (offset > 0 && sum < v) || (offset < 0 && sum > v) {
		return false
	}
	return sum >= 0 && sum <= MaxCoordinate
}
