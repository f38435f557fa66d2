package scenefile

import (
	"fmt"
	"regexp"

	"go.uber.org/multierr"
)

// Issue is a single structural problem found by Lint.
type Issue struct {
	Path    string
	Message string
}

// Error implements the error interface.
func (i *Issue) Error() string {
	return fmt.Sprintf("%s: %s", i.Path, i.Message)
}

var versionPattern = regexp.MustCompile(`^1\.[0-9]+$`)

// unitRange bounds one unit field. Exclusive applies to Min only.
type unitRange struct {
	name      string
	value     *float64
	min, max  float64
	exclusive bool
}

// Lint reports structural issues that do not stop a load: out-of-range units,
// coordinates outside the declared lattice, a malformed version or name.
// Issues are combined with multierr; use multierr.Errors to list them.
func Lint(doc *Document) error {
	var err error
	add := func(path, format string, args ...any) {
		err = multierr.Append(err, &Issue{Path: path, Message: fmt.Sprintf(format, args...)})
	}

	if doc.Meta.Schema == "" {
		add("$.meta.schema", "missing required property")
	}
	if doc.Meta.Version != "" && !versionPattern.MatchString(doc.Meta.Version) {
		add("$.meta.version", "must match pattern \"1.x\"")
	}
	if n := len(doc.Meta.Name); doc.Meta.Name != "" && n > 100 {
		add("$.meta.name", "must be 1-100 characters, got %d", n)
	}

	ranges := []unitRange{
		{"cellMeters", doc.Units.CellMeters, 0, 10, true},
		{"wallHeightMeters", doc.Units.WallHeightMeters, 0.1, 20, false},
		{"wallThicknessMeters", doc.Units.WallThicknessMeters, 0.01, 2, false},
		{"floorThicknessMeters", doc.Units.FloorThicknessMeters, 0.01, 1, false},
	}
	for _, r := range ranges {
		path := "$.units." + r.name
		if r.value == nil {
			add(path, "missing required property")
			continue
		}
		v := *r.value
		if r.exclusive && v <= r.min {
			add(path, "must be > %v", r.min)
		} else if !r.exclusive && v < r.min {
			add(path, "must be >= %v", r.min)
		}
		if v > r.max {
			add(path, "must be <= %v", r.max)
		}
	}

	lintCoords := func(path string, coords []Coord) {
		for i, c := range coords {
			for axis, v := range c {
				if v < 0 || v > MaxCoordinate {
					add(fmt.Sprintf("%s[%d][%d]", path, i, axis), "must be between 0 and %d", MaxCoordinate)
				}
			}
		}
	}
	lintCoords("$.tiles.floor", doc.Tiles.Floor)
	lintCoords("$.edges.horizontal", doc.Edges.Horizontal)
	lintCoords("$.edges.vertical", doc.Edges.Vertical)

	return err
}
