package walls

import (
	"reflect"
	"testing"

	"github.com/Faultbox/scene3d/internal/lattice"
)

// floorSet is a FloorIndex backed by a map.
type floorSet map[lattice.Coord]bool

func (f floorSet) HasFloor(x, y int) bool {
	return f[lattice.Coord{X: x, Y: y}]
}

func TestClassify_Horizontal(t *testing.T) {
	tests := []struct {
		name  string
		floor floorSet
		want  Side
	}{
		{"floor below only", floorSet{{X: 0, Y: 0}: true}, SideBelow},
		{"floor above only", floorSet{{X: 0, Y: 1}: true}, SideAbove},
		{"partition", floorSet{{X: 0, Y: 0}: true, {X: 0, Y: 1}: true}, SideNone},
		{"orphan", floorSet{}, SideNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.floor, Horizontal, lattice.Coord{X: 0, Y: 1})
			if got != tt.want {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestClassify_Vertical(t *testing.T) {
	tests := []struct {
		name  string
		floor floorSet
		want  Side
	}{
		{"floor left only", floorSet{{X: 1, Y: 3}: true}, SideLeft},
		{"floor right only", floorSet{{X: 2, Y: 3}: true}, SideRight},
		{"partition", floorSet{{X: 1, Y: 3}: true, {X: 2, Y: 3}: true}, SideNone},
		{"orphan", floorSet{{X: 5, Y: 5}: true}, SideNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.floor, Vertical, lattice.Coord{X: 2, Y: 3})
			if got != tt.want {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestSplit_CutsOnClassificationChange(t *testing.T) {
	// Floor under x=0..1 only, so the run y=1 [0,4) is flush then orphaned.
	floor := floorSet{{X: 0, Y: 0}: true, {X: 1, Y: 0}: true, {X: 3, Y: 1}: true}
	run := Run{Orientation: Horizontal, Fixed: 1, Start: 0, End: 4}

	got := Split(floor, run)

	want := []Segment{
		{Run: Run{Orientation: Horizontal, Fixed: 1, Start: 0, End: 2}, Side: SideBelow},
		{Run: Run{Orientation: Horizontal, Fixed: 1, Start: 2, End: 3}, Side: SideNone},
		{Run: Run{Orientation: Horizontal, Fixed: 1, Start: 3, End: 4}, Side: SideAbove},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestSplit_UniformRunStaysWhole(t *testing.T) {
	floor := floorSet{{X: 0, Y: 0}: true, {X: 0, Y: 1}: true, {X: 0, Y: 2}: true}
	run := Run{Orientation: Vertical, Fixed: 1, Start: 0, End: 3}

	got := Split(floor, run)

	want := []Segment{{Run: run, Side: SideLeft}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestSide_Flush(t *testing.T) {
	if SideNone.Flush() {
		t.Error("expected SideNone not to be flush")
	}
	for _, s := range []Side{SideBelow, SideAbove, SideLeft, SideRight} {
		if !s.Flush() {
			t.Errorf("expected %v to be flush", s)
		}
	}
}
