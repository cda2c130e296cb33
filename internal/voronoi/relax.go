package voronoi

import (
	"github.com/golang/geo/r2"
	"github.com/pkg/errors"
)

// Relax applies n rounds of Lloyd relaxation: every site is moved to the
// centroid of its cell. Site order and count are preserved; a site without
// a cell (a duplicate) stays where it is.
func Relax(p Provider, sites []r2.Point, bounds r2.Rect, n int) ([]r2.Point, error) {
	out := make([]r2.Point, len(sites))
	copy(out, sites)

	for round := 0; round < n; round++ {
		diagram, err := p.Compute(out, bounds)
		if err != nil {
			return nil, errors.Wrapf(err, "relaxation round %d", round)
		}

		cells := make(map[int]*Cell, len(diagram.Cells))
		for _, c := range diagram.Cells {
			cells[c.Site] = c
		}

		next := make([]r2.Point, len(out))
		for i, s := range out {
			next[i] = s
			cell, ok := cells[i]
			if !ok {
				continue
			}
			centroid, ok := NewPolygon(cell.Vertices).Centroid()
			if ok {
				next[i] = centroid
			}
		}
		out = next
	}

	return out, nil
}
