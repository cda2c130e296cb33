package voronoi

import (
	"github.com/golang/geo/r2"
	"github.com/pkg/errors"
)

// NoSite marks an edge side that faces the bounding box rather than
// another site.
const NoSite = -1

// Provider computes a Voronoi diagram for the given sites, clipped to bounds.
type Provider interface {
	Compute(sites []r2.Point, bounds r2.Rect) (*Diagram, error)
}

// Diagram is the raw output of a Provider.
// Sites are referenced by their index in the input slice, never by value,
// so duplicate sites stay distinguishable.
type Diagram struct {
	Edges []*Edge
	Cells []*Cell
}

// Edge is a single Voronoi edge as reported by the library.
// Va / Vb are nil for unbounded ends, LeftSite / RightSite are NoSite
// where the edge runs along the bounding box.
type Edge struct {
	Va        *r2.Point
	Vb        *r2.Point
	LeftSite  int
	RightSite int
}

// Cell is the region around a single site. Vertices are in boundary order.
type Cell struct {
	Site     int
	Vertices []r2.Point
}

// CellFor returns the cell for the given site index, or nil if the site
// didn't get one (eg. it duplicated an earlier site).
func (d *Diagram) CellFor(site int) *Cell {
	for _, c := range d.Cells {
		if c.Site == site {
			return c
		}
	}
	return nil
}

// Bounds returns the rectangle [0,w]x[0,h].
func Bounds(width, height float64) r2.Rect {
	return r2.RectFromPoints(r2.Point{X: 0, Y: 0}, r2.Point{X: width, Y: height})
}

// checkSites is shared sanity checking for providers.
func checkSites(sites []r2.Point, bounds r2.Rect) error {
	if len(sites) == 0 {
		return errors.New("voronoi diagram requires at least one site")
	}
	if bounds.IsEmpty() || bounds.X.Length() <= 0 || bounds.Y.Length() <= 0 {
		return errors.Errorf("voronoi diagram requires non empty bounds, got %v", bounds)
	}
	return nil
}

// pt returns a pointer to a copy of p
func pt(x, y float64) *r2.Point {
	return &r2.Point{X: x, Y: y}
}
