package mapgen2

import (
	"testing"

	"github.com/golang/geo/r2"
	"github.com/trezker/mapgen2/internal/voronoi"
)

func ptr(x, y float64) *r2.Point {
	return &r2.Point{X: x, Y: y}
}

func TestMakeCornerMergesNearDuplicates(t *testing.T) {
	t.Parallel()
	cm := newCornerMap(voronoi.Bounds(640, 480))

	a := cm.makeCorner(ptr(10.0000001, 20))
	b := cm.makeCorner(ptr(10.0, 20.0))

	if a != b {
		t.Fatalf("expected the same corner, got %d and %d", a, b)
	}
	if len(cm.corners) != 1 {
		t.Fatalf("expected 1 corner, got %d", len(cm.corners))
	}
}

func TestMakeCorner(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name       string
		points     []*r2.Point
		wantIDs    []CornerID
		wantBorder []bool
	}{
		{
			name:    "absent vertex",
			points:  []*r2.Point{nil},
			wantIDs: []CornerID{NoCorner},
		},
		{
			name:       "distinct points",
			points:     []*r2.Point{ptr(1, 1), ptr(2, 2), ptr(1, 1.01)},
			wantIDs:    []CornerID{0, 1, 2},
			wantBorder: []bool{false, false, false},
		},
		{
			name:       "duplicate across bucket boundary",
			points:     []*r2.Point{ptr(10.9999999, 5), ptr(11.0000001, 5)},
			wantIDs:    []CornerID{0, 0},
			wantBorder: []bool{false},
		},
		{
			name:       "border corners",
			points:     []*r2.Point{ptr(0, 100), ptr(640, 100), ptr(100, 0), ptr(100, 480), ptr(0.5, 479.5)},
			wantIDs:    []CornerID{0, 1, 2, 3, 4},
			wantBorder: []bool{true, true, true, true, false},
		},
		{
			name:       "just outside threshold",
			points:     []*r2.Point{ptr(50, 50), ptr(50.002, 50)},
			wantIDs:    []CornerID{0, 1},
			wantBorder: []bool{false, false},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cm := newCornerMap(voronoi.Bounds(640, 480))

			for i, p := range tt.points {
				got := cm.makeCorner(p)
				if got != tt.wantIDs[i] {
					t.Errorf("point %d: got corner %d, want %d", i, got, tt.wantIDs[i])
				}
			}

			if len(cm.corners) != len(tt.wantBorder) {
				t.Fatalf("got %d corners, want %d", len(cm.corners), len(tt.wantBorder))
			}
			for i, q := range cm.corners {
				if int(q.Index) != i {
					t.Errorf("corner %d has index %d", i, q.Index)
				}
				if q.Border != tt.wantBorder[i] {
					t.Errorf("corner %d border = %v, want %v", i, q.Border, tt.wantBorder[i])
				}
			}
		})
	}
}

// square returns the diagram for two sites split by x = 50 in a 100x100 box:
//
//	(0,0) ---- (50,0) ---- (100,0)
//	  |   site 0  |  site 1   |
//	(0,100) -- (50,100) -- (100,100)
func square() ([]r2.Point, *voronoi.Diagram) {
	sites := []r2.Point{{X: 25, Y: 50}, {X: 75, Y: 50}}
	return sites, &voronoi.Diagram{
		Edges: []*voronoi.Edge{
			{Va: ptr(50, 0), Vb: ptr(50, 100), LeftSite: 0, RightSite: 1},
			{Va: ptr(0, 0), Vb: ptr(50, 0), LeftSite: 0, RightSite: voronoi.NoSite},
			{Va: ptr(50, 100), Vb: ptr(0, 100), LeftSite: 0, RightSite: voronoi.NoSite},
			{Va: ptr(0, 100), Vb: ptr(0, 0), LeftSite: 0, RightSite: voronoi.NoSite},
			{Va: ptr(50.0000001, 0), Vb: ptr(100, 0), LeftSite: 1, RightSite: voronoi.NoSite},
			{Va: ptr(100, 0), Vb: ptr(100, 100), LeftSite: 1, RightSite: voronoi.NoSite},
			{Va: ptr(100, 100), Vb: ptr(50, 100.0000001), LeftSite: 1, RightSite: voronoi.NoSite},
		},
	}
}

func TestBuildGraph(t *testing.T) {
	t.Parallel()
	sites, diagram := square()

	g, err := buildGraph(sites, voronoi.Bounds(100, 100), diagram)
	if err != nil {
		t.Fatal(err)
	}

	if len(g.centers) != 2 {
		t.Fatalf("got %d centers, want 2", len(g.centers))
	}
	if len(g.corners) != 6 {
		t.Fatalf("got %d corners, want 6 (near duplicates merged)", len(g.corners))
	}
	if len(g.edges) != 7 {
		t.Fatalf("got %d edges, want 7", len(g.edges))
	}

	for _, c := range g.centers {
		if len(c.Neighbors) != 1 {
			t.Errorf("center %d has neighbors %v, want exactly the other center", c.Index, c.Neighbors)
		}
		if len(c.Corners) != 4 {
			t.Errorf("center %d has %d corners, want 4", c.Index, len(c.Corners))
		}
		if len(c.Borders) != 4 {
			t.Errorf("center %d has %d borders, want 4", c.Index, len(c.Borders))
		}
	}

	for _, q := range g.corners {
		if !q.Border {
			t.Errorf("corner %d at %v should be on the border", q.Index, q.Point)
		}
		if len(q.Adjacent) < 2 {
			t.Errorf("corner %d has adjacent %v, want at least 2", q.Index, q.Adjacent)
		}
	}

	// (50,0) & (50,100) are shared by both cells
	shared := g.edges[0]
	for _, id := range []CornerID{shared.V0, shared.V1} {
		if got := len(g.corners[id].Touches); got != 2 {
			t.Errorf("corner %d touches %d centers, want 2", id, got)
		}
		if got := len(g.corners[id].Adjacent); got != 3 {
			t.Errorf("corner %d has %d adjacent corners, want 3", id, got)
		}
	}
	if !shared.HasMidpoint || shared.Midpoint != (r2.Point{X: 50, Y: 50}) {
		t.Errorf("shared edge midpoint = %v (set %v), want (50,50)", shared.Midpoint, shared.HasMidpoint)
	}

	for _, e := range g.edges[1:] {
		if e.D0 == NoCenter || e.D1 != NoCenter {
			t.Errorf("border edge %d has centers %d, %d; want exactly one", e.Index, e.D0, e.D1)
		}
	}
}

func TestBuildGraphDuplicateSitesStayDistinct(t *testing.T) {
	t.Parallel()
	sites := []r2.Point{{X: 10, Y: 10}, {X: 10, Y: 10}}
	diagram := &voronoi.Diagram{
		Edges: []*voronoi.Edge{
			{Va: ptr(0, 0), Vb: ptr(20, 0), LeftSite: 1, RightSite: voronoi.NoSite},
		},
	}

	g, err := buildGraph(sites, voronoi.Bounds(20, 20), diagram)
	if err != nil {
		t.Fatal(err)
	}

	if len(g.centers) != 2 {
		t.Fatalf("got %d centers, want 2", len(g.centers))
	}
	if len(g.centers[0].Borders) != 0 {
		t.Errorf("center 0 borders = %v, want none", g.centers[0].Borders)
	}
	if len(g.centers[1].Borders) != 1 {
		t.Errorf("center 1 borders = %v, want one", g.centers[1].Borders)
	}
}

func TestBuildGraphDegenerateEdges(t *testing.T) {
	t.Parallel()
	sites := []r2.Point{{X: 10, Y: 10}, {X: 30, Y: 10}}
	diagram := &voronoi.Diagram{
		Edges: []*voronoi.Edge{
			// no corners at all, recorded but links nothing
			{LeftSite: 0, RightSite: 1},
			// one open end
			{Va: ptr(20, 0), LeftSite: 0, RightSite: 1},
			// same edge again, relations must not duplicate
			{Va: ptr(20, 0), Vb: ptr(20, 20), LeftSite: 0, RightSite: 1},
			{Va: ptr(20, 0), Vb: ptr(20, 20), LeftSite: 1, RightSite: 0},
		},
	}

	g, err := buildGraph(sites, voronoi.Bounds(40, 20), diagram)
	if err != nil {
		t.Fatal(err)
	}

	if len(g.edges) != 4 {
		t.Fatalf("got %d edges, want 4", len(g.edges))
	}

	empty := g.edges[0]
	if empty.V0 != NoCorner || empty.V1 != NoCorner || empty.HasMidpoint {
		t.Errorf("edge without vertices got corners %d, %d (midpoint %v)", empty.V0, empty.V1, empty.HasMidpoint)
	}

	open := g.edges[1]
	if open.V0 == NoCorner || open.V1 != NoCorner || open.HasMidpoint {
		t.Errorf("open edge got corners %d, %d (midpoint %v)", open.V0, open.V1, open.HasMidpoint)
	}

	if len(g.corners) != 2 {
		t.Fatalf("got %d corners, want 2", len(g.corners))
	}
	for _, q := range g.corners {
		if len(q.Adjacent) != 1 {
			t.Errorf("corner %d adjacent = %v, want one", q.Index, q.Adjacent)
		}
		if len(q.Touches) != 2 {
			t.Errorf("corner %d touches = %v, want both centers", q.Index, q.Touches)
		}
	}
	for _, c := range g.centers {
		if len(c.Neighbors) != 1 {
			t.Errorf("center %d neighbors = %v, want one", c.Index, c.Neighbors)
		}
		if len(c.Corners) != 2 {
			t.Errorf("center %d corners = %v, want two", c.Index, c.Corners)
		}
		if len(c.Borders) != 4 {
			t.Errorf("center %d borders = %v, want all four edges", c.Index, c.Borders)
		}
	}
}

func TestBuildGraphRejectsUnknownSite(t *testing.T) {
	t.Parallel()
	sites := []r2.Point{{X: 10, Y: 10}}
	diagram := &voronoi.Diagram{
		Edges: []*voronoi.Edge{{Va: ptr(0, 0), Vb: ptr(1, 1), LeftSite: 0, RightSite: 3}},
	}

	_, err := buildGraph(sites, voronoi.Bounds(20, 20), diagram)
	if err == nil {
		t.Fatal("expected an error for a site index out of range")
	}
}
