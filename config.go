package mapgen2

import (
	"github.com/pkg/errors"
)

var (
	// ErrInvalidConfig is returned (wrapped) by New before any work is done
	// if the Config can't produce a sensible map.
	ErrInvalidConfig = errors.New("invalid map config")
)

// Config holds everything that determines a map. Two runs with equal
// Configs produce identical graphs.
type Config struct {
	// Map size, both required > 0. The map covers [0,Width]x[0,Height].
	Width  int
	Height int

	// NumberOfPoints is the number of polygons (Centers), required > 0
	NumberOfPoints int

	// Seed for point placement and the island shape. Zero is a valid seed.
	Seed int64

	// NumberOfLloydRelaxations evens out point spacing. 0 disables.
	NumberOfLloydRelaxations int

	// NoiseScale stretches the island noise; larger values give a more
	// ragged coastline. 1 if not set.
	NoiseScale float64

	// SiteMargin keeps randomly placed sites at least this far from the map
	// edge. 0 (the default) allows sites right on the edge.
	SiteMargin float64
}

// DefaultConfig returns the settings the generator was tuned with.
func DefaultConfig() *Config {
	return &Config{
		Width:                    640,
		Height:                   480,
		NumberOfPoints:           1000,
		Seed:                     1,
		NumberOfLloydRelaxations: 2,
		NoiseScale:               1,
	}
}

// noiseScale returns the configured scale, or 1 if unset
func (c *Config) noiseScale() float64 {
	if c.NoiseScale == 0 {
		return 1
	}
	return c.NoiseScale
}

// validate rejects configs that would give us a degenerate graph.
func (c *Config) validate() error {
	if c == nil {
		return errors.Wrap(ErrInvalidConfig, "config is nil")
	}
	if c.Width <= 0 || c.Height <= 0 {
		return errors.Wrapf(ErrInvalidConfig, "map size must be positive, got %dx%d", c.Width, c.Height)
	}
	if c.NumberOfPoints <= 0 {
		return errors.Wrapf(ErrInvalidConfig, "number of points must be positive, got %d", c.NumberOfPoints)
	}
	if c.NumberOfLloydRelaxations < 0 {
		return errors.Wrapf(ErrInvalidConfig, "number of lloyd relaxations must not be negative, got %d", c.NumberOfLloydRelaxations)
	}
	if c.NoiseScale < 0 {
		return errors.Wrapf(ErrInvalidConfig, "noise scale must not be negative, got %f", c.NoiseScale)
	}
	if c.SiteMargin < 0 || 2*c.SiteMargin >= float64(minint(c.Width, c.Height)) {
		return errors.Wrapf(ErrInvalidConfig, "site margin %f leaves no room in a %dx%d map", c.SiteMargin, c.Width, c.Height)
	}
	return nil
}
