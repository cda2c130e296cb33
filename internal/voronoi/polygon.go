package voronoi

import (
	"math"
	"sort"

	"github.com/golang/geo/r2"
)

// Polygon is an ordered ring of points; the last point forms an edge
// with the first.
type Polygon struct {
	Points []r2.Point
}

// NewPolygon returns a polygon over the given points, in the order given.
func NewPolygon(points []r2.Point) *Polygon {
	return &Polygon{Points: points}
}

// SortAround orders the points by angle around c, counter clockwise
// in screen space (y down).
// Voronoi cells are convex, so sorting a cell's corners around its site
// gives a drawable ring.
func (p *Polygon) SortAround(c r2.Point) *Polygon {
	sort.SliceStable(p.Points, func(i, j int) bool {
		a := math.Atan2(p.Points[i].Y-c.Y, p.Points[i].X-c.X)
		b := math.Atan2(p.Points[j].Y-c.Y, p.Points[j].X-c.X)
		return a < b
	})
	return p
}

// Centroid returns the mean of the vertices. Nb. this is what Lloyd
// relaxation uses here, not the area weighted centroid.
func (p *Polygon) Centroid() (r2.Point, bool) {
	if len(p.Points) == 0 {
		return r2.Point{}, false
	}
	sum := r2.Point{}
	for _, v := range p.Points {
		sum = sum.Add(v)
	}
	return sum.Mul(1 / float64(len(p.Points))), true
}

// Bounds returns the smallest rect containing every point.
func (p *Polygon) Bounds() r2.Rect {
	if len(p.Points) == 0 {
		return r2.EmptyRect()
	}
	return r2.RectFromPoints(p.Points...)
}

// IsClosed returns whether the polygon has enough points to enclose anything.
func (p *Polygon) IsClosed() bool {
	return len(p.Points) >= 3
}

// Contains reports whether point lies inside the polygon (even-odd rule).
func (p *Polygon) Contains(point r2.Point) bool {
	if !p.IsClosed() {
		return false
	}

	contains := false
	j := len(p.Points) - 1
	for i := 0; i < len(p.Points); i++ {
		a, b := p.Points[i], p.Points[j]
		if (a.Y > point.Y) != (b.Y > point.Y) {
			x := (b.X-a.X)*(point.Y-a.Y)/(b.Y-a.Y) + a.X
			if point.X < x {
				contains = !contains
			}
		}
		j = i
	}
	return contains
}
