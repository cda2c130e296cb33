package mapgen2

import (
	"encoding/json"
	"math"
	"os"

	"github.com/golang/geo/r2"
	"github.com/pkg/errors"
	"github.com/trezker/mapgen2/internal/logger"
	"github.com/trezker/mapgen2/internal/voronoi"
)

// maxPlacementAttempts bounds how many random candidates we draw per
// wanted site before giving up on a too-restrictive SiteMargin.
const maxPlacementAttempts = 100

// Map holds a generated island & handles the bulk of our math operations.
// Centers, Corners and Edges are indexed by their Index fields.
// A Map is never modified once New returns; generate a new one instead.
type Map struct {
	Config *Config
	Seed   int64

	// Points are the final (relaxed) sites, Points[i] is Centers[i].Point
	Points  []r2.Point
	Centers []*Center
	Corners []*Corner
	Edges   []*Edge
	Stats   *Stats

	bounds   r2.Rect
	provider Provider
	rng      Random
	island   IslandShape
	sites    []r2.Point // fixed sites, skips placement if set
}

// New generates a map from the given config, which is copied.
// p computes the Voronoi diagrams; voronoi.Polytope is used if nil.
func New(cfg *Config, p Provider) (*Map, error) {
	err := cfg.validate()
	if err != nil {
		return nil, err
	}
	c := *cfg
	return generate(&c, p, newPerlinIsland(c.Seed, c.noiseScale()), nil)
}

// NewWithIsland is New with a custom island shape.
func NewWithIsland(cfg *Config, p Provider, island IslandShape) (*Map, error) {
	err := cfg.validate()
	if err != nil {
		return nil, err
	}
	if island == nil {
		return nil, errors.Wrap(ErrInvalidConfig, "island shape is nil")
	}
	c := *cfg
	return generate(&c, p, island, nil)
}

// NewFromSites builds a map over the given sites rather than placing random
// ones. NumberOfPoints in cfg is ignored, the map has exactly len(sites)
// Centers, Centers[i] belonging to sites[i] (relaxation permitting).
func NewFromSites(cfg *Config, sites []r2.Point, p Provider) (*Map, error) {
	if cfg == nil {
		return nil, errors.Wrap(ErrInvalidConfig, "config is nil")
	}
	c := *cfg
	c.NumberOfPoints = len(sites)
	err := c.validate()
	if err != nil {
		return nil, err
	}

	fixed := make([]r2.Point, len(sites))
	copy(fixed, sites)
	return generate(&c, p, newPerlinIsland(c.Seed, c.noiseScale()), fixed)
}

// generate sets up a Map for a validated config and builds it.
// Random sites are placed unless sites is given.
func generate(cfg *Config, p Provider, island IslandShape, sites []r2.Point) (*Map, error) {
	if p == nil {
		p = &voronoi.Polytope{}
	}

	m := &Map{
		Config:   cfg,
		Seed:     cfg.Seed,
		bounds:   voronoi.Bounds(float64(cfg.Width), float64(cfg.Height)),
		provider: p,
		rng:      voronoi.NewRandom(cfg.Seed),
		island:   island,
		sites:    sites,
	}
	return m, m.build()
}

// build runs the pipeline. Order matters, each step relies on the last.
func (m *Map) build() error {
	log := logger.L().With("seed", m.Seed)

	sites, err := m.placePoints()
	if err != nil {
		return err
	}
	log.Debug("placed points", "count", len(sites))

	sites, err = voronoi.Relax(m.provider, sites, m.bounds, m.Config.NumberOfLloydRelaxations)
	if err != nil {
		return errors.Wrap(err, "lloyd relaxation")
	}
	m.Points = sites
	log.Debug("relaxed points", "rounds", m.Config.NumberOfLloydRelaxations)

	diagram, err := m.provider.Compute(sites, m.bounds)
	if err != nil {
		return errors.Wrap(err, "computing voronoi diagram")
	}

	g, err := buildGraph(sites, m.bounds, diagram)
	if err != nil {
		return errors.Wrap(err, "building graph")
	}
	m.Centers = g.centers
	m.Corners = g.corners
	m.Edges = g.edges
	log.Debug("built graph", "centers", len(m.Centers), "corners", len(m.Corners), "edges", len(m.Edges))

	m.assignElevations()

	m.Stats = m.computeStats()
	log.Info("generated map",
		"centers", m.Stats.Centers,
		"corners", m.Stats.Corners,
		"land", m.Stats.LandCorners,
		"water", m.Stats.WaterCorners,
		"max_elevation", m.Stats.MaxElevation,
	)
	return nil
}

// placePoints scatters NumberOfPoints sites over the map on integer co-ords.
func (m *Map) placePoints() ([]r2.Point, error) {
	if m.sites != nil {
		return m.sites, nil
	}

	b := voronoi.NewBuilder(m.bounds, m.rng)
	if m.Config.SiteMargin > 0 {
		b.SetCandidateFilters(voronoi.Inset(m.bounds, m.Config.SiteMargin))
	}

	attempts := 0
	for b.SiteCount() < m.Config.NumberOfPoints {
		if attempts >= maxPlacementAttempts*m.Config.NumberOfPoints {
			return nil, errors.Wrapf(
				ErrInvalidConfig,
				"placed %d of %d points, site margin %f is too restrictive",
				b.SiteCount(), m.Config.NumberOfPoints, m.Config.SiteMargin,
			)
		}
		attempts++
		b.AddRandomSite()
	}

	return b.Sites(), nil
}

// assignElevations decides water / land for every corner, then the
// corner elevations.
// Ocean, coast & lake classification of polygons, rescaling and polygon
// elevations all belong after this but aren't implemented.
func (m *Map) assignElevations() {
	assignWater(m.Corners, func(q *Corner) bool {
		return m.Inside(q.Point)
	})
	propagateElevations(m.Corners)
}

// Inside returns if the given map point is on the island.
func (m *Map) Inside(p r2.Point) bool {
	return m.island.IsLand(normalise(p, m.Config.Width, m.Config.Height))
}

// Bounds returns the rect the map covers
func (m *Map) Bounds() r2.Rect {
	return m.bounds
}

// computeStats tallies up the finished map
func (m *Map) computeStats() *Stats {
	s := &Stats{
		Centers: len(m.Centers),
		Corners: len(m.Corners),
		Edges:   len(m.Edges),
	}
	for _, q := range m.Corners {
		if q.Border {
			s.BorderCorners++
		}
		if q.Water {
			s.WaterCorners++
		} else {
			s.LandCorners++
		}
		if !q.Reachable() {
			s.UnreachableCorners++
			continue
		}
		s.MaxElevation = math.Max(s.MaxElevation, q.Elevation)
	}
	return s
}

// JSON returns the map as json.
func (m *Map) JSON() ([]byte, error) {
	return json.Marshal(m)
}

// SaveJSON writes a json file to the given path.
func (m *Map) SaveJSON(fpath string) error {
	data, err := m.JSON()
	if err != nil {
		return err
	}
	return os.WriteFile(fpath, data, 0644)
}
