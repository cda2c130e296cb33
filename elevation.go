package mapgen2

import (
	"math"
)

const (
	// every step away from the border costs at least this much ..
	waterStep = 0.01

	// .. and this much more when both ends are land
	landStep = 1.0
)

// assignWater marks every corner outside the island as water.
func assignWater(corners []*Corner, inside func(q *Corner) bool) {
	for _, q := range corners {
		q.Water = !inside(q)
	}
}

// propagateElevations sets corner elevations, expects Water to be set.
//
// The map border is elevation 0 and everything else starts at +Inf. We then
// walk out from the border, lowering a neighbour whenever the path through
// us is cheaper and re-queueing it when we do. A corner may be queued more
// than once. Steps are cheap over water and cost ~1 over land, so land rises
// with its distance from the coast while lakes and bays stay low.
//
// By construction there are no local minima: every reachable non border
// corner has a strictly lower neighbour (whichever last lowered it), so any
// walk downhill ends at the border.
func propagateElevations(corners []*Corner) {
	queue := make([]*Corner, 0, len(corners))

	for _, q := range corners {
		if q.Border {
			q.Elevation = 0
			queue = append(queue, q)
		} else {
			q.Elevation = math.Inf(1)
		}
	}

	for len(queue) > 0 {
		q := queue[0]
		queue = queue[1:]

		for _, id := range q.Adjacent {
			s := corners[id]

			e := q.Elevation + waterStep
			if !q.Water && !s.Water {
				e += landStep
			}

			if e < s.Elevation {
				s.Elevation = e
				queue = append(queue, s)
			}
		}
	}
}
