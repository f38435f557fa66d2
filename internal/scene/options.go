package scene

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/Faultbox/scene3d/internal/geometry"
)

// Mode selects how tiles and edges become boxes.
type Mode uint8

// Build modes.
const (
	// ModeOptimized merges tiles into rectangles and edges into runs.
	ModeOptimized Mode = iota
	// ModeLiteral emits one box per tile and per edge.
	ModeLiteral
)

// String returns the configuration name.
func (m Mode) String() string {
	if m == ModeLiteral {
		return "literal"
	}
	return "optimized"
}

// ParseMode parses "optimized" or "literal".
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "optimized", "optimised", "merged":
		return ModeOptimized, nil
	case "literal":
		return ModeLiteral, nil
	default:
		return ModeOptimized, fmt.Errorf("%w: build mode %q", geometry.ErrUnknownMode, s)
	}
}

// Options configures one load.
type Options struct {
	Geometry    geometry.Options
	Mode        Mode
	GridOverlay bool

	// Logger receives the load summary and warnings. Nil discards them.
	Logger *zap.Logger
}

// DefaultOptions returns flush walls, the automatic floor inset and merged
// geometry without the grid overlay.
func DefaultOptions() Options {
	return Options{Geometry: geometry.DefaultOptions(), Mode: ModeOptimized}
}

func (o Options) logger() *zap.Logger {
	if o.Logger == nil {
		return zap.NewNop()
	}
	return o.Logger
}

// Settings is the textual form of Options as it appears in config files,
// flags and query strings. Empty fields take the default.
type Settings struct {
	WallAlignment string
	FloorInset    string
	Mode          string
	GridOverlay   bool
}

// Resolve converts settings into options. Unrecognized values are replaced
// by their default and reported on log.
func Resolve(s Settings, log *zap.Logger) Options {
	if log == nil {
		log = zap.NewNop()
	}
	opts := DefaultOptions()
	opts.GridOverlay = s.GridOverlay
	opts.Logger = log

	if s.WallAlignment != "" {
		a, err := geometry.ParseAlignment(s.WallAlignment)
		if err != nil {
			log.Warn("Unrecognized wall alignment, using default",
				zap.String("value", s.WallAlignment),
				zap.Stringer("default", a))
		}
		opts.Geometry.Alignment = a
	}

	if s.FloorInset != "" {
		seam, meters, err := geometry.ParseInset(s.FloorInset)
		if err != nil {
			log.Warn("Unrecognized floor inset, using default",
				zap.String("value", s.FloorInset),
				zap.Stringer("default", seam))
		}
		opts.Geometry.Seam = seam
		opts.Geometry.InsetMeters = meters
	}

	if s.Mode != "" {
		m, err := ParseMode(s.Mode)
		if err != nil {
			log.Warn("Unrecognized build mode, using default",
				zap.String("value", s.Mode),
				zap.Stringer("default", m))
		}
		opts.Mode = m
	}

	return opts
}
