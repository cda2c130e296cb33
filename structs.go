package mapgen2

import (
	"encoding/json"
	"math"

	"github.com/golang/geo/r2"
)

// CenterID, CornerID and EdgeID index into Map.Centers, Map.Corners and
// Map.Edges respectively.
type (
	CenterID int
	CornerID int
	EdgeID   int
)

const (
	// NoCenter marks an Edge side that faces the map border
	NoCenter CenterID = -1

	// NoCorner marks an unbounded Edge end
	NoCorner CornerID = -1
)

// Center is a polygon of the map, one per input site.
type Center struct {
	Index CenterID
	Point r2.Point

	Neighbors []CenterID `json:",omitempty"` // adjacent polygons
	Borders   []EdgeID   `json:",omitempty"` // edges around this polygon
	Corners   []CornerID `json:",omitempty"` // polygon corners, NOT in drawing order

	// populated by a water / coast classification pass, none of which
	// is run here; always false for now
	Water bool `json:",omitempty"`
	Ocean bool `json:",omitempty"`
	Coast bool `json:",omitempty"`
}

// Corner is a Voronoi vertex, shared by every polygon that meets there.
type Corner struct {
	Index  CornerID
	Point  r2.Point
	Border bool `json:",omitempty"` // sits exactly on the map edge

	Touches   []CenterID `json:",omitempty"` // polygons meeting here
	Protrudes []EdgeID   `json:",omitempty"` // edges ending here
	Adjacent  []CornerID `json:",omitempty"` // corners one edge away

	Water bool `json:",omitempty"`

	// Elevation grows away from the map border; +Inf if the corner can't
	// be reached from the border at all.
	Elevation float64
}

// Edge links two Corners (the Voronoi edge, V0-V1) and the two Centers
// either side of it (the dual Delaunay edge, D0-D1).
type Edge struct {
	Index EdgeID
	V0    CornerID
	V1    CornerID
	D0    CenterID
	D1    CenterID

	// Midpoint of V0-V1, only set if HasMidpoint (both corners exist)
	Midpoint    r2.Point
	HasMidpoint bool `json:",omitempty"`

	// reserved for river generation
	River int `json:",omitempty"`
}

// Stats holds generic stats about a generated map
type Stats struct {
	Centers       int
	Corners       int
	Edges         int
	BorderCorners int
	WaterCorners  int
	LandCorners   int

	// corners the elevation pass couldn't reach from the border
	UnreachableCorners int `json:",omitempty"`

	// highest finite corner elevation
	MaxElevation float64
}

// HasCorners returns true if both ends of the edge exist
func (e *Edge) HasCorners() bool {
	return e.V0 != NoCorner && e.V1 != NoCorner
}

// HasCenters returns true if the edge lies between two polygons
func (e *Edge) HasCenters() bool {
	return e.D0 != NoCenter && e.D1 != NoCenter
}

// Reachable returns true if the corner got a finite elevation
func (q *Corner) Reachable() bool {
	return !math.IsInf(q.Elevation, 1)
}

// MarshalJSON writes the corner, leaving out Elevation if it is infinite
// (JSON has no representation for it).
func (q *Corner) MarshalJSON() ([]byte, error) {
	type plain Corner
	out := struct {
		*plain
		Elevation *float64 `json:",omitempty"`
	}{plain: (*plain)(q)}
	if q.Reachable() {
		e := q.Elevation
		out.Elevation = &e
	}
	return json.Marshal(out)
}

// addCenter adds x to v unless it's absent or already there
func addCenter(v []CenterID, x CenterID) []CenterID {
	if x == NoCenter {
		return v
	}
	for _, have := range v {
		if have == x {
			return v
		}
	}
	return append(v, x)
}

// addCorner adds x to v unless it's absent or already there
func addCorner(v []CornerID, x CornerID) []CornerID {
	if x == NoCorner {
		return v
	}
	for _, have := range v {
		if have == x {
			return v
		}
	}
	return append(v, x)
}

// addEdge adds x to v unless it's already there
func addEdge(v []EdgeID, x EdgeID) []EdgeID {
	for _, have := range v {
		if have == x {
			return v
		}
	}
	return append(v, x)
}
