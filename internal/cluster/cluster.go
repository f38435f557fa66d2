// Package cluster partitions a normalized floor layout into axis-aligned rectangles.
package cluster

import (
	"fmt"

	"github.com/Faultbox/scene3d/internal/lattice"
)

// Cluster is an inclusive rectangle of floor tiles in normalized lattice space.
type Cluster struct {
	MinX, MaxX int
	MinY, MaxY int
}

// Width returns the number of columns covered.
func (c Cluster) Width() int { return c.MaxX - c.MinX + 1 }

// Height returns the number of rows covered.
func (c Cluster) Height() int { return c.MaxY - c.MinY + 1 }

// Area returns the number of tiles covered.
func (c Cluster) Area() int { return c.Width() * c.Height() }

// Contains reports whether the tile at (x, y) lies inside the rectangle.
func (c Cluster) Contains(x, y int) bool {
	return x >= c.MinX && x <= c.MaxX && y >= c.MinY && y <= c.MaxY
}

// String returns a compact "x,y wxh" description.
func (c Cluster) String() string {
	return fmt.Sprintf("%d,%d %dx%d", c.MinX, c.MinY, c.Width(), c.Height())
}

// Coverage records which layout cells already belong to an emitted cluster.
// Each scan owns its own Coverage; helpers only read it.
type Coverage struct {
	width   int
	covered []bool
}

// NewCoverage returns an empty coverage for the layout.
func NewCoverage(layout *lattice.Layout) Coverage {
	return Coverage{width: layout.Width, covered: make([]bool, layout.Width*layout.Height)}
}

// Covered reports whether (x, y) is already part of a cluster. The caller
// keeps (x, y) inside the layout.
func (cv Coverage) Covered(x, y int) bool {
	return cv.covered[y*cv.width+x]
}

// Mark adds every tile of c to the coverage.
func (cv Coverage) Mark(c Cluster) {
	for y := c.MinY; y <= c.MaxY; y++ {
		for x := c.MinX; x <= c.MaxX; x++ {
			cv.covered[y*cv.width+x] = true
		}
	}
}

// open reports whether (x, y) is a floor tile not yet covered.
func open(layout *lattice.Layout, cv Coverage, x, y int) bool {
	return layout.IsFloor(x, y) && !cv.Covered(x, y)
}

// Rectangles extracts clusters with a row-major greedy scan: from each open
// tile, grow right as far as the row allows, then grow down while every tile
// of the next full-width row is open. The result is deterministic for a given
// layout but not a minimum-count decomposition.
func Rectangles(layout *lattice.Layout) []Cluster {
	var clusters []Cluster
	cv := NewCoverage(layout)

	for y := range layout.Height {
		for x := range layout.Width {
			if !open(layout, cv, x, y) {
				continue
			}
			c := grow(layout, cv, x, y)
			cv.Mark(c)
			clusters = append(clusters, c)
		}
	}
	return clusters
}

// grow builds the rectangle anchored at the open tile (x, y).
func grow(layout *lattice.Layout, cv Coverage, x, y int) Cluster {
	width := growWidth(layout, cv, x, y)
	height := growHeight(layout, cv, x, y, width)
	return Cluster{
		MinX: x,
		MaxX: x + width - 1,
		MinY: y,
		MaxY: y + height - 1,
	}
}

// growWidth counts open tiles rightward from (x, y).
func growWidth(layout *lattice.Layout, cv Coverage, x, y int) int {
	width := 0
	for x+width < layout.Width && open(layout, cv, x+width, y) {
		width++
	}
	return width
}

// growHeight counts rows, starting at y, whose width tiles from x are all open.
func growHeight(layout *lattice.Layout, cv Coverage, x, y, width int) int {
	height := 1
	for y+height < layout.Height && rowOpen(layout, cv, x, y+height, width) {
		height++
	}
	return height
}

func rowOpen(layout *lattice.Layout, cv Coverage, x, y, width int) bool {
	for dx := range width {
		if !open(layout, cv, x+dx, y) {
			return false
		}
	}
	return true
}

// Literal emits one 1x1 cluster per floor tile in row-major order.
func Literal(layout *lattice.Layout) []Cluster {
	var clusters []Cluster
	for y := range layout.Height {
		for x := range layout.Width {
			if layout.IsFloor(x, y) {
				clusters = append(clusters, Cluster{MinX: x, MaxX: x, MinY: y, MaxY: y})
			}
		}
	}
	return clusters
}
