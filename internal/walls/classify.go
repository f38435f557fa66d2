package walls

import "github.com/Faultbox/scene3d/internal/lattice"

// Side names the single side of a wall that has floor coverage.
type Side uint8

// Sides. SideNone covers both partition walls (floor on both sides) and
// orphaned edges (floor on neither); such walls stay centered on their line.
const (
	SideNone Side = iota
	SideBelow
	SideAbove
	SideLeft
	SideRight
)

// String returns the side name.
func (s Side) String() string {
	switch s {
	case SideBelow:
		return "below"
	case SideAbove:
		return "above"
	case SideLeft:
		return "left"
	case SideRight:
		return "right"
	default:
		return "none"
	}
}

// Flush reports whether the wall has floor on exactly one side.
func (s Side) Flush() bool {
	return s != SideNone
}

// FloorIndex is the tile lookup the classifier needs.
type FloorIndex interface {
	HasFloor(x, y int) bool
}

// Classify tests the two tiles perpendicular to a unit edge. For a horizontal
// edge at (x,y) they are (x,y-1) below and (x,y) above; for a vertical edge
// they are (x-1,y) left and (x,y) right.
func Classify(idx FloorIndex, o Orientation, edge lattice.Coord) Side {
	var first, second bool
	var firstSide, secondSide Side
	if o == Horizontal {
		first, firstSide = idx.HasFloor(edge.X, edge.Y-1), SideBelow
		second, secondSide = idx.HasFloor(edge.X, edge.Y), SideAbove
	} else {
		first, firstSide = idx.HasFloor(edge.X-1, edge.Y), SideLeft
		second, secondSide = idx.HasFloor(edge.X, edge.Y), SideRight
	}

	switch {
	case first && !second:
		return firstSide
	case second && !first:
		return secondSide
	default:
		return SideNone
	}
}

// Segment is a piece of a run whose edges all share one classification.
type Segment struct {
	Run
	Side Side
}

// Split classifies every unit edge of the run and cuts it wherever the
// classification changes.
func Split(idx FloorIndex, run Run) []Segment {
	var segments []Segment
	current := Segment{Run: Run{Orientation: run.Orientation, Fixed: run.Fixed, Start: run.Start, End: run.Start}}
	for i := range run.Len() {
		side := Classify(idx, run.Orientation, run.Edge(i))
		if current.Len() > 0 && side != current.Side {
			segments = append(segments, current)
			current = Segment{Run: Run{Orientation: run.Orientation, Fixed: run.Fixed, Start: run.Start + i, End: run.Start + i}}
		}
		current.Side = side
		current.End++
	}
	if current.Len() > 0 {
		segments = append(segments, current)
	}
	return segments
}

// Whole wraps a run as one centered segment without classifying it.
func Whole(run Run) Segment {
	return Segment{Run: run, Side: SideNone}
}
