// Package lattice normalizes raw floor-plan coordinates into a zero-based tile grid.
package lattice

import (
	"fmt"

	"github.com/Faultbox/scene3d/pkg/scenefile"
)

// Coord is an integer lattice position.
type Coord struct {
	X, Y int
}

// String returns the coordinate as "(x,y)".
func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

// Kind is the content of one lattice cell.
type Kind uint8

// Cell kinds.
const (
	Empty Kind = iota
	Floor
)

// Layout is the bounding box of the floor tiles with a row-major kind map.
type Layout struct {
	Width  int
	Height int
	Cells  []Kind
}

// KindAt returns the cell kind, Empty outside the layout.
func (l *Layout) KindAt(x, y int) Kind {
	if x < 0 || y < 0 || x >= l.Width || y >= l.Height {
		return Empty
	}
	return l.Cells[y*l.Width+x]
}

// IsFloor reports whether (x, y) holds a floor tile.
func (l *Layout) IsFloor(x, y int) bool {
	return l.KindAt(x, y) == Floor
}

// Index is a normalized layout plus its edges, all in one coordinate frame.
type Index struct {
	Layout Layout

	// Tiles, Horizontal and Vertical are unique and keep first-seen input order.
	Tiles      []Coord
	Horizontal []Coord
	Vertical   []Coord

	// Origin is the minimum offset tile coordinate that was subtracted.
	// It is (0,0) for an empty tile set.
	Origin Coord
}

// HasFloor reports whether a normalized coordinate holds a floor tile.
func (idx *Index) HasFloor(x, y int) bool {
	return idx.Layout.IsFloor(x, y)
}

// Normalize applies the origin offset, re-bases every tile and edge on the
// minimum tile coordinate, and builds the tile lookup. An empty tile set yields
// a 1x1 empty layout and edges that are offset but not re-based.
func Normalize(tiles, horizontal, vertical []scenefile.Coord, offset scenefile.Offset) *Index {
	shift := func(c scenefile.Coord) Coord {
		return Coord{X: c.X() + offset.X, Y: c.Y() + offset.Y}
	}

	offsetTiles := unique(tiles, shift)

	idx := &Index{}
	if len(offsetTiles) == 0 {
		idx.Layout = Layout{Width: 1, Height: 1, Cells: make([]Kind, 1)}
		idx.Horizontal = unique(horizontal, shift)
		idx.Vertical = unique(vertical, shift)
		return idx
	}

	minX, minY := offsetTiles[0].X, offsetTiles[0].Y
	maxX, maxY := minX, minY
	for _, t := range offsetTiles[1:] {
		minX = min(minX, t.X)
		minY = min(minY, t.Y)
		maxX = max(maxX, t.X)
		maxY = max(maxY, t.Y)
	}
	idx.Origin = Coord{X: minX, Y: minY}

	rebase := func(c scenefile.Coord) Coord {
		s := shift(c)
		return Coord{X: s.X - minX, Y: s.Y - minY}
	}

	width := maxX - minX + 1
	height := maxY - minY + 1
	idx.Layout = Layout{
		Width:  width,
		Height: height,
		Cells:  make([]Kind, width*height),
	}

	idx.Tiles = make([]Coord, len(offsetTiles))
	for i, t := range offsetTiles {
		n := Coord{X: t.X - minX, Y: t.Y - minY}
		idx.Tiles[i] = n
		idx.Layout.Cells[n.Y*width+n.X] = Floor
	}
	idx.Horizontal = unique(horizontal, rebase)
	idx.Vertical = unique(vertical, rebase)

	return idx
}

// unique maps raw coordinates and drops repeats, keeping first-seen order.
func unique(raw []scenefile.Coord, mapFn func(scenefile.Coord) Coord) []Coord {
	if len(raw) == 0 {
		return nil
	}
	seen := make(map[Coord]struct{}, len(raw))
	out := make([]Coord, 0, len(raw))
	for _, r := range raw {
		c := mapFn(r)
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}
	return out
}
