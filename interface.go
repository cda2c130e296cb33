package mapgen2

import (
	"image/color"

	"github.com/golang/geo/r2"
	"github.com/trezker/mapgen2/internal/voronoi"
)

// Provider computes the Voronoi diagram the graph is built from.
// See voronoi.Polytope (the default) and voronoi.Fortune.
type Provider = voronoi.Provider

// Diagram and LibEdge are what a Provider hands back. Sites are referred to
// by their index in the input slice; voronoi.NoSite marks the bounding box.
type (
	Diagram = voronoi.Diagram
	LibEdge = voronoi.Edge
)

// Random supplies deterministic integers for point placement.
type Random = voronoi.Random

// IslandShape decides whether a point is land. It is only ever asked about
// normalised co-ords, [-1,1] in both axes with the map centre at 0,0.
type IslandShape interface {
	IsLand(q r2.Point) bool
}

// Renderer is anything that can draw a map.
// Lines are batched; nothing need be stroked until FlushLines, which
// strokes everything drawn since the last flush in the given colour.
type Renderer interface {
	DrawPoint(p r2.Point, c color.Color)
	DrawLine(a, b r2.Point)
	FlushLines(c color.Color)
	FillPolygon(pts []r2.Point, c color.Color)
}
