package voronoi

import (
	"math"
	"sort"

	"github.com/golang/geo/r2"
	"github.com/pkg/errors"
	"github.com/unixpickle/essentials"
	"github.com/unixpickle/model3d/model2d"
)

// based on
// https://github.com/unixpickle/voronoi-glass/blob/main/voronoi.go
//
// each cell is the bounding rect cut by the bisector of every other site.
// It's O(n^2) so best kept to smaller diagrams, but it doesn't care about
// sweep line degeneracies (collinear sites etc).

// DefaultRepairEpsilon is the distance under which polytope vertices are merged.
const DefaultRepairEpsilon = 1e-8

// Polytope is a Provider that builds each cell as a convex polytope.
type Polytope struct {
	// Epsilon used to merge nearly identical vertices, DefaultRepairEpsilon if 0
	Epsilon float64
}

type polyCell struct {
	site  int
	edges []*model2d.Segment
}

// Compute returns the diagram for the given sites.
// Shared cell segments become two sided edges; segments that only one cell
// owns lie along the bounds and are one sided.
func (p *Polytope) Compute(sites []r2.Point, bounds r2.Rect) (*Diagram, error) {
	err := checkSites(sites, bounds)
	if err != nil {
		return nil, err
	}

	eps := p.Epsilon
	if eps <= 0 {
		eps = DefaultRepairEpsilon
	}

	min := model2d.Coord{X: bounds.X.Lo, Y: bounds.Y.Lo}
	max := model2d.Coord{X: bounds.X.Hi, Y: bounds.Y.Hi}

	coords := make([]model2d.Coord, len(sites))
	for i, s := range sites {
		coords[i] = model2d.Coord{X: s.X, Y: s.Y}
	}

	// as with Fortune, only the first of a set of equal sites gets a cell
	cells := make([]*polyCell, 0, len(coords))
	first := map[model2d.Coord]bool{}
	for i, c := range coords {
		if first[c] {
			continue
		}
		first[c] = true

		constraints := model2d.NewConvexPolytopeRect(min, max)
		for _, c1 := range coords {
			if c == c1 {
				continue
			}
			mp := c.Mid(c1)
			normal := c1.Sub(c).Normalize()
			constraints = append(constraints, &model2d.LinearConstraint{
				Normal: normal,
				Max:    normal.Dot(mp),
			})
		}
		cells = append(cells, &polyCell{site: i, edges: constraints.Mesh().SegmentSlice()})
	}

	repair(cells, eps, bounds)

	diagram := &Diagram{Edges: []*Edge{}, Cells: make([]*Cell, 0, len(cells))}
	seen := map[[2]model2d.Coord]*Edge{}

	for _, cell := range cells {
		for _, seg := range cell.edges {
			key := segmentKey(seg)
			e, ok := seen[key]
			if !ok {
				e = &Edge{
					Va:        pt(seg[0].X, seg[0].Y),
					Vb:        pt(seg[1].X, seg[1].Y),
					LeftSite:  cell.site,
					RightSite: NoSite,
				}
				seen[key] = e
				diagram.Edges = append(diagram.Edges, e)
				continue
			}
			if e.RightSite == NoSite && e.LeftSite != cell.site {
				e.RightSite = cell.site
			}
		}

		out := &Cell{Site: cell.site, Vertices: make([]r2.Point, 0, len(cell.edges))}
		for _, seg := range orderSegments(cell.edges) {
			out.Vertices = append(out.Vertices, r2.Point{X: seg[0].X, Y: seg[0].Y})
		}
		diagram.Cells = append(diagram.Cells, out)
	}

	if len(diagram.Edges) == 0 {
		return nil, errors.Errorf("polytope diagram produced no edges for %d sites", len(sites))
	}
	return diagram, nil
}

// repair merges nearly identical coordinates so neighbouring cells share
// exact vertices, snaps anything within eps of the bounds onto them and
// drops segments that collapse to a point. Segments are sorted so the
// output doesn't depend on map iteration order.
func repair(cells []*polyCell, eps float64, bounds r2.Rect) {
	coordSet := map[model2d.Coord]bool{}
	coordSlice := []model2d.Coord{}
	for _, cell := range cells {
		for _, s := range cell.edges {
			for _, c := range s {
				if !coordSet[c] {
					coordSet[c] = true
					coordSlice = append(coordSlice, c)
				}
			}
		}
	}
	if len(coordSlice) == 0 {
		return
	}
	sort.Slice(coordSlice, func(i, j int) bool { return coordLess(coordSlice[i], coordSlice[j]) })
	tree := model2d.NewCoordTree(coordSlice)

	mapping := map[model2d.Coord]model2d.Coord{}
	for _, c := range coordSlice {
		if !coordSet[c] {
			continue
		}
		target := snap(c, eps, bounds)
		for _, n := range neighborsInDistance(tree, c, eps) {
			if coordSet[n] {
				coordSet[n] = false
				mapping[n] = target
			}
		}
		coordSet[c] = false
		mapping[c] = target
	}

	for _, cell := range cells {
		for i := 0; i < len(cell.edges); i++ {
			edge := cell.edges[i]
			for j, c := range edge {
				edge[j] = mapping[c]
			}
			if edge[0] == edge[1] {
				essentials.UnorderedDelete(&cell.edges, i)
				i--
			}
		}
		sort.Slice(cell.edges, func(i, j int) bool {
			a, b := segmentKey(cell.edges[i]), segmentKey(cell.edges[j])
			if a[0] != b[0] {
				return coordLess(a[0], b[0])
			}
			return coordLess(a[1], b[1])
		})
	}
}

// orderSegments chains segments end to start where possible, so the first
// point of each one walks the cell boundary.
func orderSegments(in []*model2d.Segment) []*model2d.Segment {
	if len(in) == 0 {
		return in
	}

	starts := map[model2d.Coord]*model2d.Segment{}
	for _, s := range in {
		starts[s[0]] = s
	}

	out := []*model2d.Segment{in[0]}
	used := map[*model2d.Segment]bool{in[0]: true}
	for len(out) < len(in) {
		next, ok := starts[out[len(out)-1][1]]
		if !ok || used[next] {
			break
		}
		used[next] = true
		out = append(out, next)
	}
	for _, s := range in {
		if !used[s] {
			out = append(out, s)
		}
	}
	return out
}

// snap moves c onto any bound it is within eps of.
func snap(c model2d.Coord, eps float64, bounds r2.Rect) model2d.Coord {
	if math.Abs(c.X-bounds.X.Lo) < eps {
		c.X = bounds.X.Lo
	} else if math.Abs(c.X-bounds.X.Hi) < eps {
		c.X = bounds.X.Hi
	}
	if math.Abs(c.Y-bounds.Y.Lo) < eps {
		c.Y = bounds.Y.Lo
	} else if math.Abs(c.Y-bounds.Y.Hi) < eps {
		c.Y = bounds.Y.Hi
	}
	return c
}

// segmentKey returns the segment end points in a fixed order
func segmentKey(s *model2d.Segment) [2]model2d.Coord {
	if coordLess(s[1], s[0]) {
		return [2]model2d.Coord{s[1], s[0]}
	}
	return [2]model2d.Coord{s[0], s[1]}
}

func coordLess(a, b model2d.Coord) bool {
	if a.X != b.X {
		return a.X < b.X
	}
	return a.Y < b.Y
}

func neighborsInDistance(tree *model2d.CoordTree, c model2d.Coord, epsilon float64) []model2d.Coord {
	for k := 2; true; k++ {
		neighbors := tree.KNN(k, c)
		if len(neighbors) < k {
			return neighbors
		}
		if neighbors[len(neighbors)-1].Dist(c) > epsilon {
			return neighbors[:len(neighbors)-1]
		}
	}
	panic("unreachable")
}
