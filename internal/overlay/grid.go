// Package overlay provides debug visualization for the editor grid.
package overlay

import (
	"github.com/Faultbox/scene3d/pkg/math"
)

// GridHeight is the world height of the overlay lines, just above the ground.
const GridHeight = 0.001

// Line is one grid line segment in world space.
type Line struct {
	From math.Vec3 `json:"from"`
	To   math.Vec3 `json:"to"`
}

// Grid generates line segments for every integer lattice line of a
// tilesX by tilesY grid.
type Grid struct {
	tilesX   int
	tilesY   int
	cellSize float64
}

// NewGrid creates a grid overlay. It returns nil for a non-positive extent.
func NewGrid(tilesX, tilesY int, cellSize float64) *Grid {
	if tilesX <= 0 || tilesY <= 0 {
		return nil
	}
	return &Grid{tilesX: tilesX, tilesY: tilesY, cellSize: cellSize}
}

// Lines returns the lines along Z for x = 0..tilesX followed by the lines
// along X for y = 0..tilesY.
func (g *Grid) Lines() []Line {
	if g == nil {
		return nil
	}

	maxX := float64(g.tilesX) * g.cellSize
	maxZ := float64(g.tilesY) * g.cellSize
	lines := make([]Line, 0, g.tilesX+g.tilesY+2)

	// Vertical lines
	for x := 0; x <= g.tilesX; x++ {
		worldX := float64(x) * g.cellSize
		lines = append(lines, Line{
			From: math.Vec3{X: worldX, Y: GridHeight, Z: 0},
			To:   math.Vec3{X: worldX, Y: GridHeight, Z: maxZ},
		})
	}

	// Horizontal lines
	for y := 0; y <= g.tilesY; y++ {
		worldZ := float64(y) * g.cellSize
		lines = append(lines, Line{
			From: math.Vec3{X: 0, Y: GridHeight, Z: worldZ},
			To:   math.Vec3{X: maxX, Y: GridHeight, Z: worldZ},
		})
	}

	return lines
}
