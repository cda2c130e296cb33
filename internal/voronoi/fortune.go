package voronoi

import (
	"math"
	"sort"

	"github.com/golang/geo/r2"
	"github.com/pkg/errors"
	pzsz "github.com/pzsz/voronoi"
)

// Fortune is a Provider backed by github.com/pzsz/voronoi (a port of
// Raymond Hill's Fortune sweep implementation).
type Fortune struct{}

// Compute runs the sweep and translates the result into a Diagram.
//
// The sweep needs its site queue ordered by y then x, but the library only
// sorts on y with an unstable sort, which breaks on sites sharing a y (any
// integer grid). We hand it sites already ordered by y then x; its sort
// leaves an ordered slice as is.
//
// The library keys cells by site value; we map them back to input indices,
// the first index with a given value wins. Equal sites are adjacent once
// ordered, the library skips all but the first, so the rest end up with no
// cell and no edges.
func (f *Fortune) Compute(sites []r2.Point, bounds r2.Rect) (*Diagram, error) {
	err := checkSites(sites, bounds)
	if err != nil {
		return nil, err
	}

	vsites := make([]pzsz.Vertex, len(sites))
	byValue := map[pzsz.Vertex][]int{}
	for i, s := range sites {
		v := pzsz.Vertex{X: s.X, Y: s.Y}
		vsites[i] = v
		byValue[v] = append(byValue[v], i)
	}

	sort.SliceStable(vsites, func(i, j int) bool {
		if vsites[i].Y != vsites[j].Y {
			return vsites[i].Y < vsites[j].Y
		}
		return vsites[i].X < vsites[j].X
	})

	bbox := pzsz.NewBBox(bounds.X.Lo, bounds.X.Hi, bounds.Y.Lo, bounds.Y.Hi)
	result, err := sweep(vsites, bbox)
	if err != nil {
		return nil, err
	}

	cellToSite := map[*pzsz.Cell]int{}
	diagram := &Diagram{
		Edges: make([]*Edge, 0, len(result.Edges)),
		Cells: make([]*Cell, 0, len(result.Cells)),
	}

	for _, c := range result.Cells {
		queue := byValue[c.Site]
		if len(queue) == 0 {
			continue // library returned a site we never gave it
		}
		id := queue[0]
		byValue[c.Site] = queue[1:]
		cellToSite[c] = id

		cell := &Cell{Site: id, Vertices: make([]r2.Point, 0, len(c.Halfedges))}
		for _, he := range c.Halfedges {
			if p := vertex(he.GetStartpoint()); p != nil {
				cell.Vertices = append(cell.Vertices, *p)
			}
		}
		diagram.Cells = append(diagram.Cells, cell)
	}

	siteOf := func(c *pzsz.Cell) int {
		if c == nil {
			return NoSite
		}
		id, ok := cellToSite[c]
		if !ok {
			return NoSite
		}
		return id
	}

	for _, e := range result.Edges {
		diagram.Edges = append(diagram.Edges, &Edge{
			Va:        vertex(e.Va.Vertex),
			Vb:        vertex(e.Vb.Vertex),
			LeftSite:  siteOf(e.LeftCell),
			RightSite: siteOf(e.RightCell),
		})
	}

	return diagram, nil
}

// sweep runs the library, turning a panic on a degenerate input into an error.
func sweep(vsites []pzsz.Vertex, bbox pzsz.BBox) (d *pzsz.Diagram, err error) {
	defer func() {
		if r := recover(); r != nil {
			d, err = nil, errors.Errorf("fortune sweep failed on %d sites: %v", len(vsites), r)
		}
	}()
	return pzsz.ComputeDiagram(vsites, bbox, true), nil
}

// vertex converts a library vertex, which marks "no vertex" with +Inf
// coordinates, into an optional point.
func vertex(v pzsz.Vertex) *r2.Point {
	if math.IsInf(v.X, 0) || math.IsInf(v.Y, 0) || math.IsNaN(v.X) || math.IsNaN(v.Y) {
		return nil
	}
	return pt(v.X, v.Y)
}
