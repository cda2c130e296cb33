package voronoi

import (
	"github.com/golang/geo/r2"
)

// CandidateFilter accepts or rejects a candidate site based purely on
// its position.
type CandidateFilter func(p r2.Point) bool

// Inset rejects candidates closer than margin to the edge of bounds.
func Inset(bounds r2.Rect, margin float64) CandidateFilter {
	inner := bounds.ExpandedByMargin(-margin)
	return func(p r2.Point) bool {
		return inner.ContainsPoint(p)
	}
}
