// Package walls merges unit wall edges into maximal runs and classifies which
// side of each wall has floor behind it.
package walls

import (
	"fmt"
	"slices"

	"github.com/Faultbox/scene3d/internal/lattice"
)

// Orientation is the axis a wall edge runs along.
type Orientation uint8

// Orientations. A horizontal edge at (x,y) spans (x,y)-(x+1,y); a vertical
// edge at (x,y) spans (x,y)-(x,y+1).
const (
	Horizontal Orientation = iota
	Vertical
)

// String returns "H" or "V".
func (o Orientation) String() string {
	if o == Vertical {
		return "V"
	}
	return "H"
}

// Run is a maximal contiguous sequence of same-orientation edges. Start and
// End bound the free axis as [Start, End); Fixed is y for horizontal runs and
// x for vertical runs.
type Run struct {
	Orientation Orientation
	Fixed       int
	Start       int
	End         int
}

// Len returns the number of unit edges in the run.
func (r Run) Len() int { return r.End - r.Start }

// Edge returns the lattice anchor of the i-th unit edge of the run.
func (r Run) Edge(i int) lattice.Coord {
	if r.Orientation == Horizontal {
		return lattice.Coord{X: r.Start + i, Y: r.Fixed}
	}
	return lattice.Coord{X: r.Fixed, Y: r.Start + i}
}

// String returns e.g. "H y=5 [0,3)".
func (r Run) String() string {
	axis := "y"
	if r.Orientation == Vertical {
		axis = "x"
	}
	return fmt.Sprintf("%s %s=%d [%d,%d)", r.Orientation, axis, r.Fixed, r.Start, r.End)
}

// axes splits an edge anchor into its fixed and free coordinates.
func axes(o Orientation, c lattice.Coord) (fixed, free int) {
	if o == Horizontal {
		return c.Y, c.X
	}
	return c.X, c.Y
}

// Coalesce groups edges by their fixed coordinate and merges consecutive free
// coordinates into runs. Runs are ordered by fixed coordinate, then start.
// Repeated edges are tolerated and counted once.
func Coalesce(o Orientation, edges []lattice.Coord) []Run {
	byFixed := make(map[int][]int)
	for _, e := range edges {
		fixed, free := axes(o, e)
		byFixed[fixed] = append(byFixed[fixed], free)
	}

	fixedKeys := make([]int, 0, len(byFixed))
	for k := range byFixed {
		fixedKeys = append(fixedKeys, k)
	}
	slices.Sort(fixedKeys)

	var runs []Run
	for _, fixed := range fixedKeys {
		runs = append(runs, mergeLine(o, fixed, byFixed[fixed])...)
	}
	return runs
}

// mergeLine coalesces the free coordinates of one lattice line.
func mergeLine(o Orientation, fixed int, free []int) []Run {
	values := slices.Clone(free)
	slices.Sort(values)
	values = slices.Compact(values)

	var runs []Run
	current := Run{Orientation: o, Fixed: fixed, Start: values[0], End: values[0] + 1}
	for _, v := range values[1:] {
		if v == current.End {
			current.End++
			continue
		}
		runs = append(runs, current)
		current = Run{Orientation: o, Fixed: fixed, Start: v, End: v + 1}
	}
	return append(runs, current)
}

// Literal returns one unit run per edge, in input order.
func Literal(o Orientation, edges []lattice.Coord) []Run {
	runs := make([]Run, 0, len(edges))
	for _, e := range edges {
		fixed, free := axes(o, e)
		runs = append(runs, Run{Orientation: o, Fixed: fixed, Start: free, End: free + 1})
	}
	return runs
}
