package voronoi

import (
	"math"
	"math/rand"

	"github.com/golang/geo/r2"
)

// Random hands out integers in [min, max] (inclusive). Implementations must
// be deterministic for a given seed and call sequence.
type Random interface {
	RandomIntegerIn(min, max int) int
}

// seededRandom is the default Random, a thin wrapper over math/rand.
type seededRandom struct {
	rng *rand.Rand
}

// NewRandom returns a Random seeded with seed
func NewRandom(seed int64) Random {
	return &seededRandom{rng: rand.New(rand.NewSource(seed))}
}

// RandomIntegerIn returns a uniformly chosen integer in [min, max]
func (s *seededRandom) RandomIntegerIn(min, max int) int {
	if max < min {
		min, max = max, min
	}
	return s.rng.Intn(max-min+1) + min
}

// Builder struct makes managing the site placement of a voronoi diagram easier.
type Builder struct {
	bounds r2.Rect
	sites  []r2.Point
	rng    Random
	cfilt  []CandidateFilter
}

// NewBuilder returns a new site builder for the given bounds.
func NewBuilder(bounds r2.Rect, rng Random) *Builder {
	return &Builder{
		bounds: bounds,
		sites:  []r2.Point{},
		rng:    rng,
	}
}

// SiteCount returns how many sites we've currently got configured
func (b *Builder) SiteCount() int {
	return len(b.sites)
}

// Sites returns the sites placed so far, in placement order
func (b *Builder) Sites() []r2.Point {
	return b.sites
}

// SetCandidateFilters sets filters that accept / reject a proposed site.
func (b *Builder) SetCandidateFilters(f ...CandidateFilter) {
	b.cfilt = f
}

// AddRandomSite places a site on integer co-ords at random within bounds
// (edges included), assuming it obeys all currently set filters.
// The candidate is drawn either way so the rng sequence doesn't depend on
// the filters' answers.
func (b *Builder) AddRandomSite() (r2.Point, int, bool) {
	x := b.rng.RandomIntegerIn(int(math.Ceil(b.bounds.X.Lo)), int(math.Floor(b.bounds.X.Hi)))
	y := b.rng.RandomIntegerIn(int(math.Ceil(b.bounds.Y.Lo)), int(math.Floor(b.bounds.Y.Hi)))
	p := r2.Point{X: float64(x), Y: float64(y)}

	id, ok := b.AddSite(p)
	return p, id, ok
}

// AddSite places a site at the given location, assuming it obeys currently set filters.
func (b *Builder) AddSite(p r2.Point) (int, bool) {
	if !b.accepted(p) {
		return 0, false
	}
	id := len(b.sites)
	b.sites = append(b.sites, p)
	return id, true
}

// accepted returns if the proposed site location is acceptable to our filters.
func (b *Builder) accepted(p r2.Point) bool {
	if !b.bounds.ContainsPoint(p) {
		return false
	}
	for _, fn := range b.cfilt {
		if !fn(p) {
			return false
		}
	}
	return true
}
