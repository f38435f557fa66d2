// Package scene turns a floor-plan document into box primitives.
//
// Build runs the whole pipeline synchronously: normalize the lattice, merge
// floor tiles into rectangles, coalesce wall edges into runs, place each run
// relative to the floor it borders, then compute bounds and check parity.
package scene

import (
	"fmt"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/Faultbox/scene3d/internal/bounds"
	"github.com/Faultbox/scene3d/internal/cluster"
	"github.com/Faultbox/scene3d/internal/geometry"
	"github.com/Faultbox/scene3d/internal/lattice"
	"github.com/Faultbox/scene3d/internal/overlay"
	"github.com/Faultbox/scene3d/internal/parity"
	"github.com/Faultbox/scene3d/internal/walls"
	"github.com/Faultbox/scene3d/pkg/scenefile"
)

// Stats summarizes one build.
type Stats struct {
	Tiles    int `json:"tiles"`
	EdgesH   int `json:"edgesH"`
	EdgesV   int `json:"edgesV"`
	Clusters int `json:"clusters"`
	RunsH    int `json:"runsH"`
	RunsV    int `json:"runsV"`
	Walls    int `json:"walls"`
	Centered int `json:"centered"`
	Width    int `json:"width"`
	Height   int `json:"height"`
}

// Scene is the complete output of one load.
type Scene struct {
	Name   string          `json:"name,omitempty"`
	Floors []geometry.Mesh `json:"floors"`
	Walls  []geometry.Mesh `json:"walls"`
	Grid   []overlay.Line  `json:"grid,omitempty"`
	Bounds bounds.Bounds   `json:"bounds"`
	Parity parity.Report   `json:"parity"`
	Stats  Stats           `json:"stats"`

	// Scale is the resolved unit conversion the meshes were built with.
	Scale scenefile.Scale `json:"-"`
}

// Meshes returns floors followed by walls.
func (s *Scene) Meshes() []geometry.Mesh {
	out := make([]geometry.Mesh, 0, len(s.Floors)+len(s.Walls))
	out = append(out, s.Floors...)
	return append(out, s.Walls...)
}

// Build converts a document into a scene. It fails only when the document is
// missing required fields; lint issues, defaulted units and parity mismatches
// are logged and the build continues.
func Build(doc *scenefile.Document, opts Options) (*Scene, error) {
	if err := scenefile.Validate(doc); err != nil {
		return nil, err
	}
	log := opts.logger()

	for _, issue := range multierr.Errors(scenefile.Lint(doc)) {
		log.Warn("Scene lint", zap.Error(issue))
	}

	scale := doc.Scale()
	for _, field := range scale.Defaulted {
		log.Warn("Unit missing, using default", zap.String("field", field))
	}

	idx := lattice.Normalize(doc.Tiles.Floor, doc.Edges.Horizontal, doc.Edges.Vertical, doc.OriginOffset)

	s := &Scene{Name: doc.Meta.Name, Scale: scale}
	s.Stats = Stats{
		Tiles:  len(idx.Tiles),
		EdgesH: len(idx.Horizontal),
		EdgesV: len(idx.Vertical),
		Width:  idx.Layout.Width,
		Height: idx.Layout.Height,
	}

	emitter := geometry.NewEmitter(scale, opts.Geometry)

	clusters := floorClusters(idx, opts.Mode)
	s.Stats.Clusters = len(clusters)
	s.Floors = make([]geometry.Mesh, 0, len(clusters))
	for _, c := range clusters {
		s.Floors = append(s.Floors, emitter.Floor(c))
	}

	horizontal := wallRuns(walls.Horizontal, idx.Horizontal, opts.Mode)
	vertical := wallRuns(walls.Vertical, idx.Vertical, opts.Mode)
	s.Stats.RunsH = len(horizontal)
	s.Stats.RunsV = len(vertical)

	for _, run := range append(horizontal, vertical...) {
		for _, seg := range segments(idx, run, opts.Geometry.Alignment) {
			if opts.Geometry.Alignment == geometry.AlignFlush && !seg.Side.Flush() {
				s.Stats.Centered++
			}
			s.Walls = append(s.Walls, emitter.Wall(seg))
		}
	}
	s.Stats.Walls = len(s.Walls)

	s.Bounds = bounds.Bounds{
		Content:     bounds.Content(idx, scale),
		Environment: bounds.Environment(doc.Meta.SimLimits, scale),
	}

	if opts.GridOverlay {
		tilesX, tilesY := bounds.GridExtent(doc.Meta.SimLimits)
		s.Grid = overlay.NewGrid(tilesX, tilesY, scale.CellMeters).Lines()
	}

	s.Parity = parity.Check(doc.Meta.Parity, parity.CountsFrom(idx))
	logParity(log, s.Parity)

	if s.Stats.Centered > 0 {
		log.Debug("Walls without a single floor side kept centered",
			zap.Int("segments", s.Stats.Centered))
	}

	log.Info("Scene built",
		zap.String("name", s.Name),
		zap.Int("tiles", s.Stats.Tiles),
		zap.Int("edgesH", s.Stats.EdgesH),
		zap.Int("edgesV", s.Stats.EdgesV),
		zap.Int("floors", len(s.Floors)),
		zap.Int("walls", len(s.Walls)),
		zap.String("size", fmt.Sprintf("%dx%d", s.Stats.Width, s.Stats.Height)),
		zap.Float64("cell", scale.CellMeters),
		zap.String("offset", fmt.Sprintf("%d,%d", doc.OriginOffset.X, doc.OriginOffset.Y)),
		zap.Stringer("alignment", opts.Geometry.Alignment),
		zap.Stringer("inset", opts.Geometry.Seam),
		zap.Stringer("mode", opts.Mode))

	return s, nil
}

func floorClusters(idx *lattice.Index, mode Mode) []cluster.Cluster {
	if mode == ModeLiteral {
		return cluster.Literal(&idx.Layout)
	}
	return cluster.Rectangles(&idx.Layout)
}

func wallRuns(o walls.Orientation, edges []lattice.Coord, mode Mode) []walls.Run {
	if mode == ModeLiteral {
		return walls.Literal(o, edges)
	}
	return walls.Coalesce(o, edges)
}

// segments classifies a run for flush alignment and leaves it whole otherwise.
func segments(idx *lattice.Index, run walls.Run, align geometry.Alignment) []walls.Segment {
	if align == geometry.AlignFlush {
		return walls.Split(idx, run)
	}
	return []walls.Segment{walls.Whole(run)}
}

func logParity(log *zap.Logger, r parity.Report) {
	switch r.Status {
	case parity.StatusOK:
		log.Debug("Parity ok")
	case parity.StatusUnavailable:
		log.Debug("Parity unavailable")
	case parity.StatusMismatch:
		for _, m := range r.Mismatches {
			log.Warn("Parity mismatch",
				zap.String("field", m.Field),
				zap.Int("expected", m.Expected),
				zap.Int("actual", m.Actual))
		}
	}
}
