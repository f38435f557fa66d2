// Package scenefile provides the model and parser for scene.3d.v1 layout documents.
package scenefile

import (
	"encoding/json"
	"fmt"
)

// Format identifiers.
const (
	// Schema is the only accepted value of meta.schema.
	Schema = "scene.3d.v1"

	// AxesSuffix is the ground-plane suffix every meta.axes value must carry.
	AxesSuffix = "_XY_ground"

	// MaxCoordinate is the largest lattice coordinate the format declares.
	MaxCoordinate = 1000
)

// Defaults for optional unit fields.
const (
	DefaultWallHeightMeters     = 3.0
	DefaultWallThicknessMeters  = 0.2
	DefaultFloorThicknessMeters = 0.1
)

// Coord is a lattice coordinate stored as a two-element [x, y] array.
type Coord [2]int

// X returns the first component.
func (c Coord) X() int { return c[0] }

// Y returns the second component.
func (c Coord) Y() int { return c[1] }

// UnmarshalJSON accepts exactly two integers.
func (c *Coord) UnmarshalJSON(data []byte) error {
	var raw []int
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("coordinate %s: %w", data, err)
	}
	if len(raw) != 2 {
		return fmt.Errorf("coordinate %s: expected 2 elements, got %d", data, len(raw))
	}
	c[0], c[1] = raw[0], raw[1]
	return nil
}

// Document is a parsed scene.3d.v1 file.
type Document struct {
	Meta         Meta   `json:"meta"`
	Units        Units  `json:"units"`
	Tiles        Tiles  `json:"tiles"`
	Edges        Edges  `json:"edges"`
	OriginOffset Offset `json:"originOffset"`
}

// Meta holds document identification and the optional diagnostic blocks.
type Meta struct {
	Schema    string     `json:"schema"`
	Version   string     `json:"version,omitempty"`
	Name      string     `json:"name,omitempty"`
	Axes      string     `json:"axes"`
	Parity    *Parity    `json:"parity,omitempty"`
	SimLimits *SimLimits `json:"simLimits,omitempty"`
}

// Parity holds the counts the exporter declared for cross-checking.
type Parity struct {
	Tiles     int `json:"tiles"`
	EdgesH    int `json:"edgesH"`
	EdgesV    int `json:"edgesV"`
	FloorArea int `json:"floorArea"`
	EdgeLenH  int `json:"edgeLenH"`
	EdgeLenV  int `json:"edgeLenV"`
}

// SimLimits declares the editor grid extent in tiles.
type SimLimits struct {
	MaxTilesX int `json:"maxTilesX"`
	MaxTilesY int `json:"maxTilesY"`
}

// Units holds the lattice-to-world scale. Pointers distinguish missing fields from zero.
type Units struct {
	CellMeters           *float64 `json:"cellMeters"`
	WallHeightMeters     *float64 `json:"wallHeightMeters"`
	WallThicknessMeters  *float64 `json:"wallThicknessMeters"`
	FloorThicknessMeters *float64 `json:"floorThicknessMeters"`
}

// Tiles holds the floor tile list.
type Tiles struct {
	Floor []Coord `json:"floor"`
}

// Edges holds the wall edges by orientation.
type Edges struct {
	Horizontal []Coord `json:"horizontal"`
	Vertical   []Coord `json:"vertical"`
}

// Offset is the translation applied to every raw coordinate.
type Offset struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Scale is the resolved unit conversion with defaults applied.
type Scale struct {
	CellMeters           float64
	WallHeightMeters     float64
	WallThicknessMeters  float64
	FloorThicknessMeters float64

	// Defaulted lists the unit fields that were absent and took a default.
	Defaulted []string
}

// Scale resolves the document units. The document must have passed Validate.
func (d *Document) Scale() Scale {
	s := Scale{
		WallHeightMeters:     DefaultWallHeightMeters,
		WallThicknessMeters:  DefaultWallThicknessMeters,
		FloorThicknessMeters: DefaultFloorThicknessMeters,
	}
	if d.Units.CellMeters != nil {
		s.CellMeters = *d.Units.CellMeters
	}
	if v := d.Units.WallHeightMeters; v != nil {
		s.WallHeightMeters = *v
	} else {
		s.Defaulted = append(s.Defaulted, "wallHeightMeters")
	}
	if v := d.Units.WallThicknessMeters; v != nil {
		s.WallThicknessMeters = *v
	} else {
		s.Defaulted = append(s.Defaulted, "wallThicknessMeters")
	}
	if v := d.Units.FloorThicknessMeters; v != nil {
		s.FloorThicknessMeters = *v
	} else {
		s.Defaulted = append(s.Defaulted, "floorThicknessMeters")
	}
	return s
}

// Float returns a pointer to v, for building Units in code.
func Float(v float64) *float64 {
	return &v
}
