package mapgen2

import (
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"testing"

	"github.com/golang/geo/r2"
	"github.com/trezker/mapgen2/internal/voronoi"
)

var providers = []struct {
	name string
	p    Provider
}{
	{"fortune", &voronoi.Fortune{}},
	{"polytope", &voronoi.Polytope{}},
}

// fourSites returns a map over four sites on the corners of an inset
// square, so the bisectors cross in the middle of the map.
func fourSites(t *testing.T, p Provider) *Map {
	t.Helper()
	cfg := DefaultConfig()
	cfg.NumberOfLloydRelaxations = 0

	m, err := NewFromSites(cfg, []r2.Point{
		{X: 160, Y: 120},
		{X: 480, Y: 120},
		{X: 160, Y: 360},
		{X: 480, Y: 360},
	}, p)
	if err != nil {
		t.Fatal(err)
	}
	return m
}

func onBox(p r2.Point, b r2.Rect) bool {
	return p.X == b.X.Lo || p.X == b.X.Hi || p.Y == b.Y.Lo || p.Y == b.Y.Hi
}

func TestFourSites(t *testing.T) {
	t.Parallel()
	for _, tt := range providers {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			m := fourSites(t, tt.p)

			if len(m.Centers) != 4 {
				t.Fatalf("got %d centers, want 4", len(m.Centers))
			}
			if err := m.Validate(); err != nil {
				t.Fatal(err)
			}

			for _, c := range m.Centers {
				if len(c.Neighbors) < 2 {
					t.Errorf("center %d neighbors = %v, want at least the two beside it", c.Index, c.Neighbors)
				}
			}

			boxEdges := 0
			for _, e := range m.Edges {
				if !e.HasMidpoint || !onBox(e.Midpoint, m.Bounds()) {
					continue
				}
				boxEdges++
				if (e.D0 == NoCenter) == (e.D1 == NoCenter) {
					t.Errorf("edge %d along the box has centers %d, %d; want exactly one", e.Index, e.D0, e.D1)
				}
			}
			if boxEdges < 8 {
				t.Errorf("got %d edges along the box, want at least 8", boxEdges)
			}

			middle := NoCorner
			for _, q := range m.Corners {
				if q.Border {
					if q.Elevation != 0 {
						t.Errorf("border corner %d at %v has elevation %f", q.Index, q.Point, q.Elevation)
					}
					continue
				}
				if !q.Reachable() || q.Elevation <= 0 {
					t.Errorf("inland corner %d at %v has elevation %f", q.Index, q.Point, q.Elevation)
				}
				if d := q.Point.Sub(r2.Point{X: 320, Y: 240}); d.Dot(d) < 1e-6 {
					middle = q.Index
				}
			}
			if middle == NoCorner {
				t.Fatal("no corner where the bisectors cross")
			}
			if got := len(m.Corners[middle].Touches); got != 4 {
				t.Errorf("middle corner touches %d centers, want 4", got)
			}
		})
	}
}

func TestGenerate(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name   string
		p      Provider
		points int
		seed   int64
	}{
		{"fortune", &voronoi.Fortune{}, 300, 1},
		{"fortune zero seed", &voronoi.Fortune{}, 200, 0},
		{"fortune crowded", &voronoi.Fortune{}, 1000, 5},
		{"polytope single point", &voronoi.Polytope{}, 1, 3},
		{"polytope", &voronoi.Polytope{}, 60, 7},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := DefaultConfig()
			cfg.NumberOfPoints = tt.points
			cfg.Seed = tt.seed

			m, err := New(cfg, tt.p)
			if err != nil {
				t.Fatal(err)
			}
			if err := m.Validate(); err != nil {
				t.Fatal(err)
			}

			if len(m.Centers) != tt.points || len(m.Points) != tt.points {
				t.Fatalf("got %d centers, %d points, want %d", len(m.Centers), len(m.Points), tt.points)
			}
			for i, c := range m.Centers {
				if c.Point != m.Points[i] {
					t.Errorf("center %d at %v, point at %v", i, c.Point, m.Points[i])
				}
				if !m.Bounds().ContainsPoint(c.Point) {
					t.Errorf("center %d at %v is off the map", i, c.Point)
				}
			}

			if m.Stats.Centers != len(m.Centers) || m.Stats.Corners != len(m.Corners) || m.Stats.Edges != len(m.Edges) {
				t.Errorf("stats %+v don't match the graph", m.Stats)
			}
			if m.Stats.LandCorners+m.Stats.WaterCorners != m.Stats.Corners {
				t.Errorf("stats %+v: land + water != corners", m.Stats)
			}
			if m.Stats.BorderCorners < 4 {
				t.Errorf("stats %+v: want at least the four map corners on the border", m.Stats)
			}
		})
	}
}

func TestGenerateDefaultConfig(t *testing.T) {
	t.Parallel()
	for _, seed := range []int64{0, 1, 2, 42, 12345} {
		seed := seed
		t.Run(fmt.Sprintf("seed %d", seed), func(t *testing.T) {
			t.Parallel()
			cfg := DefaultConfig()
			cfg.Seed = seed

			m, err := New(cfg, nil)
			if err != nil {
				t.Fatal(err)
			}
			if err := m.Validate(); err != nil {
				t.Fatal(err)
			}
			if len(m.Centers) != cfg.NumberOfPoints {
				t.Errorf("got %d centers, want %d", len(m.Centers), cfg.NumberOfPoints)
			}
		})
	}
}

func TestNewCopiesConfig(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		gen  func(cfg *Config) (*Map, error)
	}{
		{"new", func(cfg *Config) (*Map, error) {
			return New(cfg, nil)
		}},
		{"with island", func(cfg *Config) (*Map, error) {
			return NewWithIsland(cfg, nil, shape(true))
		}},
		{"from sites", func(cfg *Config) (*Map, error) {
			return NewFromSites(cfg, []r2.Point{{X: 100, Y: 100}, {X: 300, Y: 200}}, nil)
		}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := DefaultConfig()
			cfg.NumberOfPoints = 20

			m, err := tt.gen(cfg)
			if err != nil {
				t.Fatal(err)
			}
			if m.Config == cfg {
				t.Fatal("map holds the caller's config")
			}

			cfg.Width = 1
			cfg.Seed = 99
			if m.Config.Width != DefaultConfig().Width || m.Config.Seed != DefaultConfig().Seed {
				t.Errorf("map config changed with the caller's: %+v", m.Config)
			}
			if !m.Bounds().ContainsPoint(r2.Point{X: 600, Y: 400}) {
				t.Errorf("bounds %v shrank with the caller's config", m.Bounds())
			}
		})
	}
}

func TestGenerateIsDeterministic(t *testing.T) {
	t.Parallel()
	build := func() *Map {
		cfg := DefaultConfig()
		cfg.NumberOfPoints = 150
		cfg.Seed = 12345
		cfg.NumberOfLloydRelaxations = 1
		m, err := New(cfg, nil)
		if err != nil {
			t.Fatal(err)
		}
		return m
	}

	a, b := build(), build()
	if !reflect.DeepEqual(a.Points, b.Points) {
		t.Fatal("points differ between runs")
	}
	if !reflect.DeepEqual(a.Centers, b.Centers) {
		t.Error("centers differ between runs")
	}
	if !reflect.DeepEqual(a.Corners, b.Corners) {
		t.Error("corners differ between runs")
	}
	if !reflect.DeepEqual(a.Edges, b.Edges) {
		t.Error("edges differ between runs")
	}
}

type shape bool

func (s shape) IsLand(q r2.Point) bool {
	return bool(s)
}

func TestNewWithIsland(t *testing.T) {
	t.Parallel()
	cfg := DefaultConfig()
	cfg.NumberOfPoints = 100

	land, err := NewWithIsland(cfg, nil, shape(true))
	if err != nil {
		t.Fatal(err)
	}
	if land.Stats.WaterCorners != 0 {
		t.Errorf("all land map has %d water corners", land.Stats.WaterCorners)
	}

	water, err := NewWithIsland(cfg, nil, shape(false))
	if err != nil {
		t.Fatal(err)
	}
	if water.Stats.LandCorners != 0 {
		t.Errorf("all water map has %d land corners", water.Stats.LandCorners)
	}
	// steps over water are 0.01 each
	if water.Stats.MaxElevation >= 1 {
		t.Errorf("all water map rose to %f", water.Stats.MaxElevation)
	}
	if land.Stats.MaxElevation <= water.Stats.MaxElevation {
		t.Errorf("land max %f should be above water max %f", land.Stats.MaxElevation, water.Stats.MaxElevation)
	}

	for _, m := range []*Map{land, water} {
		if err := m.Validate(); err != nil {
			t.Error(err)
		}
	}
}

func TestSiteMargin(t *testing.T) {
	t.Parallel()
	cfg := DefaultConfig()
	cfg.NumberOfPoints = 200
	cfg.NumberOfLloydRelaxations = 0
	cfg.SiteMargin = 50

	m, err := New(cfg, nil)
	if err != nil {
		t.Fatal(err)
	}

	inner := m.Bounds().ExpandedByMargin(-50)
	for _, p := range m.Points {
		if !inner.ContainsPoint(p) {
			t.Errorf("site %v within the margin", p)
		}
	}
	for _, q := range m.Corners {
		if q.Border && q.Elevation != 0 {
			t.Errorf("border corner %d has elevation %f", q.Index, q.Elevation)
		}
	}
}

func TestCenterFor(t *testing.T) {
	t.Parallel()
	m := fourSites(t, nil)

	tests := []struct {
		p    r2.Point
		want CenterID
	}{
		{r2.Point{X: 100, Y: 100}, 0},
		{r2.Point{X: 600, Y: 50}, 1},
		{r2.Point{X: 10, Y: 470}, 2},
		{r2.Point{X: 400, Y: 300}, 3},
		// off the map, nearest wins
		{r2.Point{X: -50, Y: -50}, 0},
	}
	for _, tt := range tests {
		if got := m.CenterFor(tt.p); got != tt.want {
			t.Errorf("CenterFor(%v) = %d, want %d", tt.p, got, tt.want)
		}
	}
}

func TestPolygonIsDrawable(t *testing.T) {
	t.Parallel()
	m := fourSites(t, nil)

	for _, c := range m.Centers {
		pts := m.Polygon(c.Index)
		if len(pts) < 4 {
			t.Fatalf("center %d polygon %v, want at least 4 corners", c.Index, pts)
		}
		if !voronoi.NewPolygon(pts).Contains(c.Point) {
			t.Errorf("center %d polygon %v doesn't contain its site", c.Index, pts)
		}
	}
}

func TestJSON(t *testing.T) {
	t.Parallel()
	m := fourSites(t, nil)

	data, err := m.JSON()
	if err != nil {
		t.Fatal(err)
	}

	var out struct {
		Centers []map[string]interface{}
		Corners []map[string]interface{}
		Edges   []map[string]interface{}
		Stats   Stats
	}
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatal(err)
	}

	if len(out.Centers) != len(m.Centers) || len(out.Corners) != len(m.Corners) || len(out.Edges) != len(m.Edges) {
		t.Errorf("json has %d/%d/%d entities, want %d/%d/%d",
			len(out.Centers), len(out.Corners), len(out.Edges),
			len(m.Centers), len(m.Corners), len(m.Edges),
		)
	}
	if out.Stats != *m.Stats {
		t.Errorf("json stats %+v, want %+v", out.Stats, *m.Stats)
	}
	for i, q := range out.Corners {
		if _, ok := q["Elevation"]; !ok {
			t.Errorf("corner %d has no elevation", i)
		}
	}
}

func TestCornerJSONElevation(t *testing.T) {
	t.Parallel()
	tests := []struct {
		elevation float64
		want      interface{}
	}{
		{0, 0.0},
		{1.5, 1.5},
		{math.Inf(1), nil},
	}

	for _, tt := range tests {
		data, err := json.Marshal(&Corner{Index: 3, Elevation: tt.elevation})
		if err != nil {
			t.Fatalf("elevation %f: %v", tt.elevation, err)
		}
		out := map[string]interface{}{}
		if err := json.Unmarshal(data, &out); err != nil {
			t.Fatal(err)
		}
		if out["Elevation"] != tt.want {
			t.Errorf("elevation %f encoded as %v", tt.elevation, out["Elevation"])
		}
		if out["Index"] != 3.0 {
			t.Errorf("index encoded as %v", out["Index"])
		}
	}
}
