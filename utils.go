package mapgen2

import (
	"github.com/golang/geo/r2"
	"github.com/trezker/mapgen2/internal/voronoi"
)

// interpolatePoint returns the point frac of the way from a to b
func interpolatePoint(a, b r2.Point, frac float64) r2.Point {
	return a.Add(b.Sub(a).Mul(frac))
}

// Polygon returns the corners of the given center sorted by angle around
// it, ready for drawing. Center.Corners itself is in no particular order.
func (m *Map) Polygon(id CenterID) []r2.Point {
	c := m.Centers[id]
	pts := make([]r2.Point, 0, len(c.Corners))
	for _, q := range c.Corners {
		pts = append(pts, m.Corners[q].Point)
	}
	return voronoi.NewPolygon(pts).SortAround(c.Point).Points
}

// CenterFor returns the center whose polygon contains p, falling back to
// the nearest center if p is on an edge or outside every polygon.
func (m *Map) CenterFor(p r2.Point) CenterID {
	pick := NoCenter
	dist := -1.0
	for _, c := range m.Centers {
		if voronoi.NewPolygon(m.Polygon(c.Index)).Contains(p) {
			return c.Index
		}
		d := c.Point.Sub(p).Norm()
		if dist < 0 || d < dist {
			dist = d
			pick = c.Index
		}
	}
	return pick
}

// minint returns the lowest of two ints
func minint(a, b int) int {
	if a < b {
		return a
	}
	return b
}
