// Package bounds computes world-space bounding boxes for a scene.
package bounds

import (
	"github.com/Faultbox/scene3d/internal/lattice"
	"github.com/Faultbox/scene3d/pkg/math"
	"github.com/Faultbox/scene3d/pkg/scenefile"
)

// Fallback editor grid extent, in tiles, for documents without simLimits.
const (
	DefaultGridTilesX = 60
	DefaultGridTilesY = 40
)

// Box is an axis-aligned bounding box in meters.
type Box struct {
	Min    math.Vec3 `json:"min"`
	Max    math.Vec3 `json:"max"`
	Center math.Vec3 `json:"center"`
}

// NewBox returns the box spanning min to max.
func NewBox(min, max math.Vec3) Box {
	return Box{Min: min, Max: max, Center: min.Mid(max)}
}

// Size returns the box extents.
func (b Box) Size() math.Vec3 {
	return b.Max.Sub(b.Min)
}

// Bounds holds the content box and the environment box of a scene.
type Bounds struct {
	Content     Box `json:"content"`
	Environment Box `json:"environment"`
}

// Content returns the box covered by the floor tiles, in the post-offset
// frame: each tile spans one full cell past its index. An empty tile set
// yields a single-cell box at the origin.
func Content(idx *lattice.Index, scale scenefile.Scale) Box {
	cell := scale.CellMeters
	if len(idx.Tiles) == 0 {
		return NewBox(math.Vec3{}, math.Vec3{X: cell, Y: scale.WallHeightMeters, Z: cell})
	}

	minX := idx.Origin.X
	minY := idx.Origin.Y
	maxX := minX + idx.Layout.Width - 1
	maxY := minY + idx.Layout.Height - 1

	return NewBox(
		math.Vec3{X: float64(minX) * cell, Y: 0, Z: float64(minY) * cell},
		math.Vec3{X: float64(maxX+1) * cell, Y: scale.WallHeightMeters, Z: float64(maxY+1) * cell},
	)
}

// GridExtent returns the declared editor grid size, falling back to the
// defaults for a missing block or non-positive values.
func GridExtent(limits *scenefile.SimLimits) (tilesX, tilesY int) {
	tilesX, tilesY = DefaultGridTilesX, DefaultGridTilesY
	if limits == nil {
		return tilesX, tilesY
	}
	if limits.MaxTilesX > 0 {
		tilesX = limits.MaxTilesX
	}
	if limits.MaxTilesY > 0 {
		tilesY = limits.MaxTilesY
	}
	return tilesX, tilesY
}

// Environment returns the box of the declared editor grid. It does not depend
// on the scene content.
func Environment(limits *scenefile.SimLimits, scale scenefile.Scale) Box {
	tilesX, tilesY := GridExtent(limits)
	cell := scale.CellMeters
	return NewBox(
		math.Vec3{},
		math.Vec3{X: float64(tilesX) * cell, Y: scale.WallHeightMeters, Z: float64(tilesY) * cell},
	)
}
