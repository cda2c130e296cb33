package mapgen2

import (
	"image"
	"image/color"
	"math"

	"github.com/boljen/go-bitmap"
	"github.com/fogleman/gg"
	"github.com/golang/geo/r2"
	"github.com/pkg/errors"
	"github.com/trezker/mapgen2/internal/encoding"
	"github.com/trezker/mapgen2/internal/line"
	"github.com/trezker/mapgen2/internal/voronoi"
)

const (
	// bit numbers for our per pixel bitmap
	bitWater  = 0
	bitEdge   = 1
	bitBorder = 2

	// high byte of every pixel's alpha, keeps the image viewable
	alphaHigh = 0xFF
)

// Heightmap is a raster of a Map, one pixel per map unit.
type Heightmap struct {
	// im is an NRGBA64 image where each pixel of 64 bits is split via
	//
	// R [16 bits]
	//   16-1: [16 bits] -> elevation, 0 to MaxElevation over 0-65,535
	// G [16 bits]
	// B [16 bits]
	//   32-1 [32 bits] -> center id + 1 (0 for none), G holds the significant bits
	// A [16 bits]
	//   16-9 [8 bits] -> always 0xFF
	//    8-1 [8 bits] -> bitmap (true if set, false if not)
	//       bit 0 -> isWater
	//       bit 1 -> isEdge, on a Voronoi edge
	//       bit 2 -> isBorder, on an edge along the map border
	//       bit 3-7 -> unused
	//
	// NRGBA64 rather than RGBA64 so saving as PNG doesn't premultiply (and
	// so mangle) our channels by alpha.
	im *image.NRGBA64

	// MaxElevation is the elevation of a pixel with R = 65,535
	MaxElevation float64
}

// Heightmap rasterises the map. Each polygon is filled with the mean
// elevation of its corners, then every edge is drawn over the top with its
// elevation interpolated between its two corners.
func (m *Map) Heightmap() *Heightmap {
	h := &Heightmap{
		im:           image.NewNRGBA64(image.Rect(0, 0, m.Config.Width, m.Config.Height)),
		MaxElevation: m.Stats.MaxElevation,
	}
	for y := 0; y < m.Config.Height; y++ {
		for x := 0; x < m.Config.Width; x++ {
			h.im.SetNRGBA64(x, y, h.pixel(0, 0, bitmap.New(8)))
		}
	}

	heights := m.centerHeights()
	for _, c := range m.Centers {
		poly := voronoi.NewPolygon(m.Polygon(c.Index))
		if !poly.IsClosed() {
			continue
		}
		bm := bitmap.New(8)
		bm.Set(bitWater, !m.Inside(c.Point))
		px := h.pixel(heights[c.Index], c.Index+1, bm)

		b := poly.Bounds()
		for y := int(math.Floor(b.Y.Lo)); y <= int(math.Ceil(b.Y.Hi)); y++ {
			for x := int(math.Floor(b.X.Lo)); x <= int(math.Ceil(b.X.Hi)); x++ {
				if h.isOutOfBounds(x, y) || !poly.Contains(r2.Point{X: float64(x) + 0.5, Y: float64(y) + 0.5}) {
					continue
				}
				h.im.SetNRGBA64(x, y, px)
			}
		}
	}

	for _, e := range m.Edges {
		if !e.HasCorners() {
			continue
		}
		v0, v1 := m.Corners[e.V0], m.Corners[e.V1]
		pts := line.PointsBetween(toPixel(v0.Point), toPixel(v1.Point))
		for i, p := range pts {
			if h.isOutOfBounds(p.X, p.Y) {
				continue
			}
			bm := h.getBM(p.X, p.Y)
			bm.Set(bitEdge, true)
			if !e.HasCenters() {
				bm.Set(bitBorder, true)
			}
			h.setBM(p.X, p.Y, bm)

			if !v0.Reachable() || !v1.Reachable() {
				continue
			}
			frac := 0.0
			if len(pts) > 1 {
				frac = float64(i) / float64(len(pts)-1)
			}
			h.setElevation(p.X, p.Y, v0.Elevation+(v1.Elevation-v0.Elevation)*frac)
		}
	}

	return h
}

// toPixel returns the pixel p falls in
func toPixel(p r2.Point) image.Point {
	return image.Pt(int(math.Floor(p.X)), int(math.Floor(p.Y)))
}

// pixel packs a pixel, id is center id + 1
func (h *Heightmap) pixel(elevation float64, id CenterID, bm bitmap.Bitmap) color.NRGBA64 {
	g, b := encoding.Split32(uint32(id))
	return color.NRGBA64{
		R: h.quantise(elevation),
		G: g,
		B: b,
		A: encoding.Merge8(alphaHigh, encoding.FromBitmap(bm)),
	}
}

// quantise scales elevation into 16 bits
func (h *Heightmap) quantise(elevation float64) uint16 {
	if h.MaxElevation <= 0 || elevation <= 0 || math.IsInf(elevation, 1) {
		return 0
	}
	return uint16(math.Round(math.Min(elevation/h.MaxElevation, 1) * math.MaxUint16))
}

// Elevation returns the elevation at x,y
func (h *Heightmap) Elevation(x, y int) (float64, error) {
	if h.isOutOfBounds(x, y) {
		return 0, errors.Errorf("(%d,%d) is out of bounds", x, y)
	}
	v := h.im.NRGBA64At(x, y)
	return float64(v.R) / math.MaxUint16 * h.MaxElevation, nil
}

// Center returns the center whose polygon covers x,y, NoCenter if none
func (h *Heightmap) Center(x, y int) (CenterID, error) {
	if h.isOutOfBounds(x, y) {
		return NoCenter, errors.Errorf("(%d,%d) is out of bounds", x, y)
	}
	v := h.im.NRGBA64At(x, y)
	return CenterID(encoding.Merge16(v.G, v.B)) - 1, nil
}

// IsWater returns if x,y lies in a polygon whose site is off the island
func (h *Heightmap) IsWater(x, y int) bool {
	if h.isOutOfBounds(x, y) {
		return false
	}
	return h.getBM(x, y).Get(bitWater)
}

// IsEdge returns if there is a Voronoi edge at x,y
func (h *Heightmap) IsEdge(x, y int) bool {
	if h.isOutOfBounds(x, y) {
		return false
	}
	return h.getBM(x, y).Get(bitEdge)
}

// IsBorder returns if there is an edge along the map border at x,y
func (h *Heightmap) IsBorder(x, y int) bool {
	if h.isOutOfBounds(x, y) {
		return false
	}
	return h.getBM(x, y).Get(bitBorder)
}

// Image returns the raw packed image
func (h *Heightmap) Image() image.Image {
	return h.im
}

// Save writes the packed image to disk as a 16 bit PNG
func (h *Heightmap) Save(fpath string) error {
	return gg.SavePNG(fpath, h.im)
}

// setElevation sets the elevation at x,y leaving everything else
func (h *Heightmap) setElevation(x, y int, elevation float64) {
	v := h.im.NRGBA64At(x, y)
	v.R = h.quantise(elevation)
	h.im.SetNRGBA64(x, y, v)
}

// setBM sets the 8 bit bitmap at x,y
func (h *Heightmap) setBM(x, y int, bm bitmap.Bitmap) {
	v := h.im.NRGBA64At(x, y)
	v.A = encoding.Merge8(alphaHigh, encoding.FromBitmap(bm))
	h.im.SetNRGBA64(x, y, v)
}

// getBM gets the 8 bit bitmap at x,y
func (h *Heightmap) getBM(x, y int) bitmap.Bitmap {
	_, bm := encoding.Split16(h.im.NRGBA64At(x, y).A)
	return encoding.ToBitmap(bm)
}

// isOutOfBounds determines if x,y is outside of the image area
func (h *Heightmap) isOutOfBounds(x, y int) bool {
	return !image.Pt(x, y).In(h.im.Bounds())
}
