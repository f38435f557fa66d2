package geometry

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ErrUnknownMode is returned when a policy string is not recognized.
var ErrUnknownMode = errors.New("unknown mode")

// Alignment selects where walls sit relative to their lattice line.
type Alignment uint8

// Wall alignments.
const (
	// AlignFlush pushes walls with floor on one side toward the open side, so
	// the inner face meets the floor edge.
	AlignFlush Alignment = iota
	// AlignCentered keeps every wall centered on its lattice line.
	AlignCentered
)

// String returns the configuration name.
func (a Alignment) String() string {
	if a == AlignCentered {
		return "centered"
	}
	return "flush"
}

// ParseAlignment parses "flush" or "centered".
func ParseAlignment(s string) (Alignment, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "flush":
		return AlignFlush, nil
	case "centered", "centred", "center":
		return AlignCentered, nil
	default:
		return AlignFlush, fmt.Errorf("%w: wall alignment %q", ErrUnknownMode, s)
	}
}

// Seam selects how abutting boxes are kept from showing gaps.
type Seam uint8

// Seam policies. Exactly one is active per load.
const (
	// SeamInsetAuto shrinks floor footprints by the wall thickness.
	SeamInsetAuto Seam = iota
	// SeamInsetCustom shrinks floor footprints by a caller-supplied length.
	SeamInsetCustom
	// SeamOverlap grows footprints by a small epsilon so neighbours overlap.
	SeamOverlap
	// SeamNone leaves footprints exact.
	SeamNone
)

// String returns the configuration name.
func (s Seam) String() string {
	switch s {
	case SeamInsetCustom:
		return "custom"
	case SeamOverlap:
		return "overlap"
	case SeamNone:
		return "none"
	default:
		return "auto"
	}
}

// ParseInset parses a floor inset setting: "auto", "none", "overlap" or a
// non-negative length in meters. The length is returned for SeamInsetCustom.
func ParseInset(s string) (Seam, float64, error) {
	v := strings.ToLower(strings.TrimSpace(s))
	switch v {
	case "auto":
		return SeamInsetAuto, 0, nil
	case "none", "0":
		return SeamNone, 0, nil
	case "overlap", "epsilon":
		return SeamOverlap, 0, nil
	}

	meters, err := strconv.ParseFloat(v, 64)
	if err != nil || meters < 0 || math.IsNaN(meters) || math.IsInf(meters, 0) {
		return SeamInsetAuto, 0, fmt.Errorf("%w: floor inset %q", ErrUnknownMode, s)
	}
	return SeamInsetCustom, meters, nil
}

// Options configures the emitter.
type Options struct {
	Alignment Alignment
	Seam      Seam

	// InsetMeters is the floor inset used with SeamInsetCustom.
	InsetMeters float64
}

// DefaultOptions returns flush walls with the automatic floor inset.
func DefaultOptions() Options {
	return Options{Alignment: AlignFlush, Seam: SeamInsetAuto}
}
