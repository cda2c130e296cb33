package mapgen2

import (
	"math"

	"github.com/golang/geo/r2"
	"github.com/pkg/errors"
	"github.com/trezker/mapgen2/internal/voronoi"
)

// cornerEpsilon is the squared distance under which two Voronoi vertices
// are taken to be the same corner.
const cornerEpsilon = 1e-6

// cornerMap canonicalises Voronoi vertices into Corners.
// Providers hand us a fresh point for every cell a vertex belongs to and
// they rarely agree to the last bit, so we look for an existing corner
// nearby before making a new one. Corners are bucketed by floor(x), which
// means we only need to look at the three buckets around a point.
type cornerMap struct {
	bounds  r2.Rect
	corners []*Corner
	buckets map[int][]*Corner
}

func newCornerMap(bounds r2.Rect) *cornerMap {
	return &cornerMap{
		bounds:  bounds,
		corners: []*Corner{},
		buckets: map[int][]*Corner{},
	}
}

// makeCorner returns the corner at p, creating it if need be.
// A nil p (an unbounded vertex) gives NoCorner.
func (m *cornerMap) makeCorner(p *r2.Point) CornerID {
	if p == nil {
		return NoCorner
	}

	bucket := int(math.Floor(p.X))
	for b := bucket - 1; b <= bucket+1; b++ {
		for _, q := range m.buckets[b] {
			d := p.Sub(q.Point)
			if d.Dot(d) < cornerEpsilon {
				return q.Index
			}
		}
	}

	q := &Corner{
		Index:     CornerID(len(m.corners)),
		Point:     *p,
		Border:    p.X == m.bounds.X.Lo || p.X == m.bounds.X.Hi || p.Y == m.bounds.Y.Lo || p.Y == m.bounds.Y.Hi,
		Touches:   []CenterID{},
		Protrudes: []EdgeID{},
		Adjacent:  []CornerID{},
	}
	m.corners = append(m.corners, q)
	m.buckets[bucket] = append(m.buckets[bucket], q)
	return q.Index
}

// graph is the arena for a single run.
type graph struct {
	centers []*Center
	corners []*Corner
	edges   []*Edge
}

// buildGraph turns a Voronoi diagram into Centers, Corners and Edges.
//
// Every edge links four things: its two Voronoi vertices (V0, V1) and the
// two sites either side (D0, D1). Along the map border one of D0/D1 is
// missing and, for odd diagrams, so may one or both of V0/V1. Relations
// are sets: adding something twice is a no-op. An edge with no corners at
// all is still kept, it just doesn't link anything.
func buildGraph(sites []r2.Point, bounds r2.Rect, diagram *voronoi.Diagram) (*graph, error) {
	g := &graph{
		centers: make([]*Center, len(sites)),
		edges:   make([]*Edge, 0, len(diagram.Edges)),
	}

	// one center per site; the diagram refers to sites by index so equal
	// sites still get their own centers
	for i, s := range sites {
		g.centers[i] = &Center{
			Index:     CenterID(i),
			Point:     s,
			Neighbors: []CenterID{},
			Borders:   []EdgeID{},
			Corners:   []CornerID{},
		}
	}

	centerFor := func(site int) (CenterID, error) {
		if site == voronoi.NoSite {
			return NoCenter, nil
		}
		if site < 0 || site >= len(g.centers) {
			return NoCenter, errors.Errorf("diagram refers to site %d, only %d sites given", site, len(g.centers))
		}
		return CenterID(site), nil
	}

	cm := newCornerMap(bounds)

	for _, ledge := range diagram.Edges {
		d0, err := centerFor(ledge.LeftSite)
		if err != nil {
			return nil, err
		}
		d1, err := centerFor(ledge.RightSite)
		if err != nil {
			return nil, err
		}

		edge := &Edge{
			Index: EdgeID(len(g.edges)),
			V0:    cm.makeCorner(ledge.Va),
			V1:    cm.makeCorner(ledge.Vb),
			D0:    d0,
			D1:    d1,
		}
		if ledge.Va != nil && ledge.Vb != nil {
			edge.Midpoint = interpolatePoint(*ledge.Va, *ledge.Vb, 0.5)
			edge.HasMidpoint = true
		}
		g.edges = append(g.edges, edge)

		g.link(edge, cm.corners)
	}

	g.corners = cm.corners
	return g, nil
}

// link updates every relation the edge implies.
func (g *graph) link(edge *Edge, corners []*Corner) {
	var c0, c1 *Center
	if edge.D0 != NoCenter {
		c0 = g.centers[edge.D0]
	}
	if edge.D1 != NoCenter {
		c1 = g.centers[edge.D1]
	}
	var v0, v1 *Corner
	if edge.V0 != NoCorner {
		v0 = corners[edge.V0]
	}
	if edge.V1 != NoCorner {
		v1 = corners[edge.V1]
	}

	// centers point to edges, corners point to edges
	for _, c := range []*Center{c0, c1} {
		if c != nil {
			c.Borders = addEdge(c.Borders, edge.Index)
		}
	}
	for _, q := range []*Corner{v0, v1} {
		if q != nil {
			q.Protrudes = addEdge(q.Protrudes, edge.Index)
		}
	}

	// centers point to centers
	if c0 != nil && c1 != nil && c0 != c1 {
		c0.Neighbors = addCenter(c0.Neighbors, c1.Index)
		c1.Neighbors = addCenter(c1.Neighbors, c0.Index)
	}

	// corners point to corners
	if v0 != nil && v1 != nil && v0 != v1 {
		v0.Adjacent = addCorner(v0.Adjacent, v1.Index)
		v1.Adjacent = addCorner(v1.Adjacent, v0.Index)
	}

	// centers point to corners
	for _, c := range []*Center{c0, c1} {
		if c != nil {
			c.Corners = addCorner(c.Corners, edge.V0)
			c.Corners = addCorner(c.Corners, edge.V1)
		}
	}

	// corners point to centers
	for _, q := range []*Corner{v0, v1} {
		if q != nil {
			q.Touches = addCenter(q.Touches, edge.D0)
			q.Touches = addCenter(q.Touches, edge.D1)
		}
	}
}
