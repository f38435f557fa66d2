// Package geometry converts floor clusters and wall segments into world-space boxes.
package geometry

import (
	"fmt"

	"github.com/Faultbox/scene3d/internal/cluster"
	"github.com/Faultbox/scene3d/internal/walls"
	"github.com/Faultbox/scene3d/pkg/math"
	"github.com/Faultbox/scene3d/pkg/scenefile"
)

// OverlapEpsilon is the seam overlap in lattice units (1mm on a 1m cell).
const OverlapEpsilon = 0.001

// Kind distinguishes floor slabs from wall segments.
type Kind uint8

// Mesh kinds.
const (
	KindFloor Kind = iota
	KindWall
)

// String returns "floor" or "wall".
func (k Kind) String() string {
	if k == KindWall {
		return "wall"
	}
	return "floor"
}

// MarshalText encodes the kind by name.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Mesh describes one axis-aligned box: full extents and center, in meters.
type Mesh struct {
	Kind   Kind      `json:"kind"`
	Name   string    `json:"name"`
	Size   math.Vec3 `json:"size"`
	Center math.Vec3 `json:"center"`
}

// Min returns the lower corner of the box.
func (m Mesh) Min() math.Vec3 {
	return m.Center.Sub(m.Size.Scale(0.5))
}

// Max returns the upper corner of the box.
func (m Mesh) Max() math.Vec3 {
	return m.Center.Add(m.Size.Scale(0.5))
}

// Emitter maps lattice primitives to world boxes for one scale and policy.
type Emitter struct {
	scale scenefile.Scale
	opts  Options
}

// NewEmitter creates an emitter.
func NewEmitter(scale scenefile.Scale, opts Options) *Emitter {
	return &Emitter{scale: scale, opts: opts}
}

// Options returns the active policy.
func (e *Emitter) Options() Options {
	return e.opts
}

// epsilon returns the seam overlap in meters.
func (e *Emitter) epsilon() float64 {
	return OverlapEpsilon * e.scale.CellMeters
}

// Floor returns the slab for a cluster. The center sits at the middle of the
// covered cells; the slab bottom rests on y=0.
func (e *Emitter) Floor(c cluster.Cluster) Mesh {
	cell := e.scale.CellMeters
	w := float64(c.Width())
	h := float64(c.Height())

	center := math.Vec2{
		X: float64(c.MinX) + w/2,
		Y: float64(c.MinY) + h/2,
	}.Scale(cell).Lift(e.scale.FloorThicknessMeters / 2)

	return Mesh{
		Kind: KindFloor,
		Name: fmt.Sprintf("floor-region-%d-%d-%dx%d", c.MinX, c.MinY, c.Width(), c.Height()),
		Size: math.Vec3{
			X: e.footprint(w * cell),
			Y: e.scale.FloorThicknessMeters,
			Z: e.footprint(h * cell),
		},
		Center: center,
	}
}

// footprint applies the seam policy to one floor extent.
func (e *Emitter) footprint(extent float64) float64 {
	switch e.opts.Seam {
	case SeamOverlap:
		return extent + e.epsilon()
	case SeamInsetAuto:
		return max(extent-e.scale.WallThicknessMeters, e.epsilon())
	case SeamInsetCustom:
		return max(extent-e.opts.InsetMeters, e.epsilon())
	default:
		return extent
	}
}

// Wall returns the box for a wall segment. Horizontal segments lie along X at
// z = fixed, vertical segments along Z at x = fixed. Under flush alignment a
// segment with floor on one side moves half a thickness toward the open side.
func (e *Emitter) Wall(seg walls.Segment) Mesh {
	cell := e.scale.CellMeters
	length := float64(seg.Len()) * cell
	if e.opts.Seam == SeamOverlap && e.opts.Alignment != AlignFlush {
		length += e.epsilon()
	}
	thickness := e.scale.WallThicknessMeters
	height := e.scale.WallHeightMeters
	mid := float64(seg.Start+seg.End) / 2

	var size math.Vec3
	var plane math.Vec2
	if seg.Orientation == walls.Horizontal {
		size = math.Vec3{X: length, Y: height, Z: thickness}
		plane = math.Vec2{X: mid, Y: float64(seg.Fixed)}
	} else {
		size = math.Vec3{X: thickness, Y: height, Z: length}
		plane = math.Vec2{X: float64(seg.Fixed), Y: mid}
	}
	center := plane.Scale(cell).Lift(height / 2)
	if e.opts.Alignment == AlignFlush {
		center = center.Add(flushOffset(seg.Side, thickness/2))
	}

	return Mesh{
		Kind:   KindWall,
		Name:   fmt.Sprintf("wall-%s-%d-%d-%d", lower(seg.Orientation), seg.Fixed, seg.Start, seg.End),
		Size:   size,
		Center: center,
	}
}

// flushOffset points away from the side that has floor.
func flushOffset(side walls.Side, half float64) math.Vec3 {
	switch side {
	case walls.SideBelow:
		return math.Vec3{Z: half}
	case walls.SideAbove:
		return math.Vec3{Z: -half}
	case walls.SideLeft:
		return math.Vec3{X: half}
	case walls.SideRight:
		return math.Vec3{X: -half}
	default:
		return math.Vec3{}
	}
}

func lower(o walls.Orientation) string {
	if o == walls.Vertical {
		return "v"
	}
	return "h"
}
