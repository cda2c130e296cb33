package mapgen2

import (
	"github.com/golang/geo/r2"
	"github.com/ojrac/opensimplex-go"
)

const (
	// where the noise field is sliced
	islandNoiseZ = 0.8

	// land needs noise > islandBase + islandSlope * d^2
	islandBase  = 0.3
	islandSlope = 0.3
)

// perlinIsland combines coherent noise with the distance from the map
// centre: the further out, the more noise it takes to be land. That gives
// one rough island rather than a scatter of them.
type perlinIsland struct {
	noise opensimplex.Noise
	scale float64
}

// newPerlinIsland returns the default IslandShape for seed.
func newPerlinIsland(seed int64, scale float64) *perlinIsland {
	return &perlinIsland{
		noise: opensimplex.NewNormalized(seed),
		scale: scale,
	}
}

// IsLand for a normalised point q
func (p *perlinIsland) IsLand(q r2.Point) bool {
	c := p.noise.Eval3(p.scale*q.X, p.scale*q.Y, islandNoiseZ)
	d2 := q.Dot(q)
	return c > islandBase+islandSlope*d2
}

// normalise maps p from [0,w]x[0,h] to [-1,1]x[-1,1]
func normalise(p r2.Point, width, height int) r2.Point {
	return r2.Point{
		X: 2 * (p.X/float64(width) - 0.5),
		Y: 2 * (p.Y/float64(height) - 0.5),
	}
}
