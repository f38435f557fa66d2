package cluster

import (
	"math/rand/v2"
	"reflect"
	"testing"

	"github.com/Faultbox/scene3d/internal/lattice"
	"github.com/Faultbox/scene3d/pkg/scenefile"
)

// layoutOf normalizes the given tiles with no offset.
func layoutOf(tiles ...[2]int) *lattice.Layout {
	raw := make([]scenefile.Coord, len(tiles))
	for i, t := range tiles {
		raw[i] = scenefile.Coord(t)
	}
	return &lattice.Normalize(raw, nil, nil, scenefile.Offset{}).Layout
}

// randomLayout builds a layout with roughly density*w*h tiles.
func randomLayout(r *rand.Rand, w, h int, density float64) *lattice.Layout {
	var tiles [][2]int
	for y := range h {
		for x := range w {
			if r.Float64() < density {
				tiles = append(tiles, [2]int{x, y})
			}
		}
	}
	return layoutOf(tiles...)
}

func TestRectangles_Square(t *testing.T) {
	clusters := Rectangles(layoutOf([2]int{0, 0}, [2]int{1, 0}, [2]int{0, 1}, [2]int{1, 1}))

	want := []Cluster{{MinX: 0, MaxX: 1, MinY: 0, MaxY: 1}}
	if !reflect.DeepEqual(clusters, want) {
		t.Errorf("expected %v, got %v", want, clusters)
	}
}

func TestRectangles_GreedyOrder(t *testing.T) {
	tests := []struct {
		name  string
		tiles [][2]int
		want  []Cluster
	}{
		{
			name:  "wide top row blocks height",
			tiles: [][2]int{{0, 0}, {1, 0}, {2, 0}, {0, 1}},
			want: []Cluster{
				{MinX: 0, MaxX: 2, MinY: 0, MaxY: 0},
				{MinX: 0, MaxX: 0, MinY: 1, MaxY: 1},
			},
		},
		{
			name:  "narrow top row grows down",
			tiles: [][2]int{{0, 0}, {1, 0}, {0, 1}, {1, 1}, {2, 1}},
			want: []Cluster{
				{MinX: 0, MaxX: 1, MinY: 0, MaxY: 1},
				{MinX: 2, MaxX: 2, MinY: 1, MaxY: 1},
			},
		},
		{
			name:  "gap splits row",
			tiles: [][2]int{{0, 0}, {2, 0}, {3, 0}},
			want: []Cluster{
				{MinX: 0, MaxX: 0, MinY: 0, MaxY: 0},
				{MinX: 2, MaxX: 3, MinY: 0, MaxY: 0},
			},
		},
		{
			name: "covered tiles stop width",
			// Column x=0 grows to three rows first, so row 1 restarts at x=1.
			tiles: [][2]int{{0, 0}, {0, 1}, {1, 1}, {0, 2}},
			want: []Cluster{
				{MinX: 0, MaxX: 0, MinY: 0, MaxY: 2},
				{MinX: 1, MaxX: 1, MinY: 1, MaxY: 1},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Rectangles(layoutOf(tt.tiles...))
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestRectangles_EmptyLayout(t *testing.T) {
	if got := Rectangles(layoutOf()); len(got) != 0 {
		t.Errorf("expected no clusters, got %v", got)
	}
}

func TestRectangles_Partition(t *testing.T) {
	r := rand.New(rand.NewPCG(7, 11))

	for i := range 50 {
		layout := randomLayout(r, 3+r.IntN(20), 3+r.IntN(20), 0.3+r.Float64()*0.6)
		clusters := Rectangles(layout)

		hits := make([]int, layout.Width*layout.Height)
		for _, c := range clusters {
			for y := c.MinY; y <= c.MaxY; y++ {
				for x := c.MinX; x <= c.MaxX; x++ {
					if !layout.IsFloor(x, y) {
						t.Fatalf("layout %d: cluster %v covers non-floor (%d,%d)", i, c, x, y)
					}
					hits[y*layout.Width+x]++
				}
			}
		}
		for y := range layout.Height {
			for x := range layout.Width {
				want := 0
				if layout.IsFloor(x, y) {
					want = 1
				}
				if got := hits[y*layout.Width+x]; got != want {
					t.Fatalf("layout %d: tile (%d,%d) covered %d times, want %d", i, x, y, got, want)
				}
			}
		}
	}
}

func TestRectangles_Deterministic(t *testing.T) {
	r := rand.New(rand.NewPCG(3, 5))
	layout := randomLayout(r, 30, 30, 0.7)

	first := Rectangles(layout)
	for range 5 {
		if got := Rectangles(layout); !reflect.DeepEqual(got, first) {
			t.Fatal("expected identical clusters on repeated runs")
		}
	}
}

func TestLiteral(t *testing.T) {
	layout := layoutOf([2]int{1, 0}, [2]int{0, 0}, [2]int{0, 1})
	got := Literal(layout)

	want := []Cluster{
		{MinX: 0, MaxX: 0, MinY: 0, MaxY: 0},
		{MinX: 1, MaxX: 1, MinY: 0, MaxY: 0},
		{MinX: 0, MaxX: 0, MinY: 1, MaxY: 1},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestCluster_Dimensions(t *testing.T) {
	c := Cluster{MinX: 2, MaxX: 4, MinY: 1, MaxY: 2}
	if c.Width() != 3 || c.Height() != 2 || c.Area() != 6 {
		t.Errorf("expected 3x2 area 6, got %dx%d area %d", c.Width(), c.Height(), c.Area())
	}
	if !c.Contains(4, 2) || c.Contains(5, 2) {
		t.Error("Contains mismatch at the right edge")
	}
	if c.String() != "2,1 3x2" {
		t.Errorf("unexpected String() %q", c.String())
	}
}
