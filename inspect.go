package mapgen2

import (
	"github.com/boljen/go-bitmap"
	"github.com/pkg/errors"
	"github.com/unixpickle/model3d/model2d"
)

var (
	// ErrInvariant is returned (wrapped) by Validate for a broken graph.
	ErrInvariant = errors.New("map invariant violated")
)

// Validate walks the finished graph and checks everything we promise
// about it, returning the first problem found.
//
// A missed corner merge doesn't fail anything at build time, it just
// leaves the graph disconnected at that vertex; this is how you find out.
func (m *Map) Validate() error {
	checks := []func() error{
		m.checkIndices,
		m.checkCornerUniqueness,
		m.checkSymmetry,
		m.checkEdges,
		m.checkElevations,
		m.checkDescent,
	}
	for _, check := range checks {
		if err := check(); err != nil {
			return err
		}
	}
	return nil
}

// checkIndices ensures every entity sits at its own index
func (m *Map) checkIndices() error {
	for i, c := range m.Centers {
		if int(c.Index) != i {
			return errors.Wrapf(ErrInvariant, "center at %d has index %d", i, c.Index)
		}
	}
	for i, q := range m.Corners {
		if int(q.Index) != i {
			return errors.Wrapf(ErrInvariant, "corner at %d has index %d", i, q.Index)
		}
	}
	for i, e := range m.Edges {
		if int(e.Index) != i {
			return errors.Wrapf(ErrInvariant, "edge at %d has index %d", i, e.Index)
		}
	}
	return nil
}

// checkCornerUniqueness ensures no two corners are closer than the merge
// threshold, using each corner's nearest neighbour.
func (m *Map) checkCornerUniqueness() error {
	if len(m.Corners) < 2 {
		return nil
	}

	coords := make([]model2d.Coord, len(m.Corners))
	owner := map[model2d.Coord]CornerID{}
	for i, q := range m.Corners {
		c := model2d.Coord{X: q.Point.X, Y: q.Point.Y}
		if other, ok := owner[c]; ok {
			return errors.Wrapf(ErrInvariant, "corners %d and %d share point %v", other, i, q.Point)
		}
		owner[c] = q.Index
		coords[i] = c
	}

	tree := model2d.NewCoordTree(coords)
	for _, c := range coords {
		near := tree.KNN(2, c)
		for _, n := range near {
			if n == c {
				continue
			}
			if d := n.Sub(c); d.Dot(d) < cornerEpsilon {
				return errors.Wrapf(ErrInvariant, "corners %d and %d are within merge distance", owner[c], owner[n])
			}
		}
	}
	return nil
}

// checkSymmetry ensures neighbour / adjacency relations go both ways,
// hold no duplicates and agree between centers and corners.
func (m *Map) checkSymmetry() error {
	for _, p := range m.Centers {
		seen := map[CenterID]bool{}
		for _, r := range p.Neighbors {
			if seen[r] {
				return errors.Wrapf(ErrInvariant, "center %d lists neighbor %d twice", p.Index, r)
			}
			seen[r] = true
			if !containsCenter(m.Centers[r].Neighbors, p.Index) {
				return errors.Wrapf(ErrInvariant, "center %d neighbors %d but not vice versa", p.Index, r)
			}
		}
		for _, q := range p.Corners {
			if !containsCenter(m.Corners[q].Touches, p.Index) {
				return errors.Wrapf(ErrInvariant, "center %d has corner %d which doesn't touch it", p.Index, q)
			}
		}
	}

	for _, q := range m.Corners {
		seen := map[CornerID]bool{}
		for _, s := range q.Adjacent {
			if seen[s] {
				return errors.Wrapf(ErrInvariant, "corner %d lists adjacent %d twice", q.Index, s)
			}
			seen[s] = true
			if !containsCorner(m.Corners[s].Adjacent, q.Index) {
				return errors.Wrapf(ErrInvariant, "corner %d adjacent to %d but not vice versa", q.Index, s)
			}
		}
		for _, p := range q.Touches {
			if !containsCorner(m.Centers[p].Corners, q.Index) {
				return errors.Wrapf(ErrInvariant, "corner %d touches center %d which doesn't list it", q.Index, p)
			}
		}
	}
	return nil
}

// checkEdges ensures every edge's ends know about it and each other.
func (m *Map) checkEdges() error {
	for _, e := range m.Edges {
		for _, d := range []CenterID{e.D0, e.D1} {
			if d != NoCenter && !containsEdge(m.Centers[d].Borders, e.Index) {
				return errors.Wrapf(ErrInvariant, "edge %d not in borders of center %d", e.Index, d)
			}
		}
		for _, v := range []CornerID{e.V0, e.V1} {
			if v != NoCorner && !containsEdge(m.Corners[v].Protrudes, e.Index) {
				return errors.Wrapf(ErrInvariant, "edge %d not in protrudes of corner %d", e.Index, v)
			}
		}
		if e.HasCenters() && e.D0 != e.D1 && !containsCenter(m.Centers[e.D0].Neighbors, e.D1) {
			return errors.Wrapf(ErrInvariant, "edge %d links centers %d, %d which aren't neighbors", e.Index, e.D0, e.D1)
		}
		if e.HasCorners() && e.V0 != e.V1 && !containsCorner(m.Corners[e.V0].Adjacent, e.V1) {
			return errors.Wrapf(ErrInvariant, "edge %d links corners %d, %d which aren't adjacent", e.Index, e.V0, e.V1)
		}
		if e.HasMidpoint != e.HasCorners() {
			return errors.Wrapf(ErrInvariant, "edge %d midpoint set=%v with corners %d, %d", e.Index, e.HasMidpoint, e.V0, e.V1)
		}
	}
	return nil
}

// checkElevations ensures the border is at 0 and that no reachable
// corner is a local minimum.
func (m *Map) checkElevations() error {
	for _, q := range m.Corners {
		if q.Border {
			if q.Elevation != 0 {
				return errors.Wrapf(ErrInvariant, "border corner %d has elevation %f", q.Index, q.Elevation)
			}
			continue
		}
		if !q.Reachable() {
			continue
		}
		if q.Elevation <= 0 {
			return errors.Wrapf(ErrInvariant, "inland corner %d has elevation %f", q.Index, q.Elevation)
		}
		if m.lowestNeighbor(q) == NoCorner {
			return errors.Wrapf(ErrInvariant, "corner %d (elevation %f) is a local minimum", q.Index, q.Elevation)
		}
	}
	return nil
}

// checkDescent walks downhill from every reachable corner & ensures
// we always end up on the border without going round in circles.
func (m *Map) checkDescent() error {
	onPath := bitmap.New(len(m.Corners))
	done := bitmap.New(len(m.Corners)) // known to reach the border

	for _, start := range m.Corners {
		if !start.Reachable() || done.Get(int(start.Index)) {
			continue
		}

		path := []CornerID{}
		q := start
		for !q.Border && !done.Get(int(q.Index)) {
			if onPath.Get(int(q.Index)) {
				return errors.Wrapf(ErrInvariant, "descent from corner %d loops at %d", start.Index, q.Index)
			}
			onPath.Set(int(q.Index), true)
			path = append(path, q.Index)

			next := m.lowestNeighbor(q)
			if next == NoCorner {
				return errors.Wrapf(ErrInvariant, "descent from corner %d stuck at %d", start.Index, q.Index)
			}
			q = m.Corners[next]
		}

		for _, id := range path {
			onPath.Set(int(id), false)
			done.Set(int(id), true)
		}
		done.Set(int(q.Index), true)
	}
	return nil
}

// lowestNeighbor returns the adjacent corner with the lowest elevation, if
// it is strictly lower than q. Otherwise NoCorner.
func (m *Map) lowestNeighbor(q *Corner) CornerID {
	best := NoCorner
	lowest := q.Elevation
	for _, s := range q.Adjacent {
		if e := m.Corners[s].Elevation; e < lowest {
			lowest = e
			best = s
		}
	}
	return best
}

func containsCenter(v []CenterID, x CenterID) bool {
	for _, have := range v {
		if have == x {
			return true
		}
	}
	return false
}

func containsCorner(v []CornerID, x CornerID) bool {
	for _, have := range v {
		if have == x {
			return true
		}
	}
	return false
}

func containsEdge(v []EdgeID, x EdgeID) bool {
	for _, have := range v {
		if have == x {
			return true
		}
	}
	return false
}
