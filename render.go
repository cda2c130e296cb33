package mapgen2

import (
	"image"
	"image/color"

	"github.com/fogleman/gg"
	"github.com/golang/geo/r2"
	"golang.org/x/image/colornames"
)

// ColourScheme defines how the parts of a map should be coloured.
type ColourScheme struct {
	Background color.Color
	Land       color.Color
	Water      color.Color
	Edges      color.Color
	Sites      color.Color

	// corners are shaded from Low to High by elevation
	Low    color.Color
	High   color.Color
	Border color.Color
}

// DefaultScheme returns a reasonable default ColourScheme.
func DefaultScheme() *ColourScheme {
	return &ColourScheme{
		Background: colornames.White,
		Land:       colornames.Tan,
		Water:      colornames.Steelblue,
		Edges:      colornames.Dimgray,
		Sites:      colornames.Black,
		Low:        colornames.Darkgreen,
		High:       colornames.Whitesmoke,
		Border:     colornames.Crimson,
	}
}

// Draw renders the map: filled polygons, then the edge wireframe in a
// single batch, then sites and corners.
func (m *Map) Draw(r Renderer, scheme *ColourScheme) {
	if scheme == nil {
		scheme = DefaultScheme()
	}

	for _, c := range m.Centers {
		pts := m.Polygon(c.Index)
		if len(pts) < 3 {
			continue
		}
		col := scheme.Water
		if m.Inside(c.Point) {
			col = scheme.Land
		}
		r.FillPolygon(pts, col)
	}

	for _, e := range m.Edges {
		if !e.HasCorners() {
			continue
		}
		r.DrawLine(m.Corners[e.V0].Point, m.Corners[e.V1].Point)
	}
	r.FlushLines(scheme.Edges)

	for _, p := range m.Points {
		r.DrawPoint(p, scheme.Sites)
	}

	max := 0.0
	if m.Stats != nil {
		max = m.Stats.MaxElevation
	}
	for _, q := range m.Corners {
		switch {
		case q.Border:
			r.DrawPoint(q.Point, scheme.Border)
		case q.Water || !q.Reachable():
			r.DrawPoint(q.Point, scheme.Water)
		default:
			frac := 0.0
			if max > 0 {
				frac = q.Elevation / max
			}
			r.DrawPoint(q.Point, blend(scheme.Low, scheme.High, frac))
		}
	}
}

// blend mixes a & b, frac 0 is all a and 1 is all b
func blend(a, b color.Color, frac float64) color.Color {
	ar, ag, ab, aa := a.RGBA()
	br, bg, bb, ba := b.RGBA()
	mix := func(x, y uint32) uint8 {
		return uint8((float64(x)*(1-frac) + float64(y)*frac) / 257)
	}
	return color.RGBA{R: mix(ar, br), G: mix(ag, bg), B: mix(ab, bb), A: mix(aa, ba)}
}

// ImageRenderer is a Renderer drawing on to an in memory image.
type ImageRenderer struct {
	ctx       *gg.Context
	pointSize float64
	lineWidth float64
	pending   [][2]r2.Point
}

// NewImageRenderer returns a renderer with a w x h canvas cleared to bg.
func NewImageRenderer(w, h int, bg color.Color) *ImageRenderer {
	ctx := gg.NewContextForRGBA(image.NewRGBA(image.Rect(0, 0, w, h)))
	ctx.SetColor(bg)
	ctx.Clear()
	return &ImageRenderer{ctx: ctx, pointSize: 1.5, lineWidth: 1}
}

// DrawPoint draws a small dot at p
func (i *ImageRenderer) DrawPoint(p r2.Point, c color.Color) {
	i.ctx.SetColor(c)
	i.ctx.DrawCircle(p.X, p.Y, i.pointSize)
	i.ctx.Fill()
}

// DrawLine adds a-b to the current batch of lines
func (i *ImageRenderer) DrawLine(a, b r2.Point) {
	i.pending = append(i.pending, [2]r2.Point{a, b})
}

// FlushLines strokes every line drawn since the last flush
func (i *ImageRenderer) FlushLines(c color.Color) {
	if len(i.pending) == 0 {
		return
	}
	for _, l := range i.pending {
		i.ctx.MoveTo(l[0].X, l[0].Y)
		i.ctx.LineTo(l[1].X, l[1].Y)
	}
	i.ctx.SetColor(c)
	i.ctx.SetLineWidth(i.lineWidth)
	i.ctx.Stroke()
	i.pending = i.pending[:0]
}

// FillPolygon fills the ring pts
func (i *ImageRenderer) FillPolygon(pts []r2.Point, c color.Color) {
	if len(pts) == 0 {
		return
	}
	i.ctx.NewSubPath()
	for _, p := range pts {
		i.ctx.LineTo(p.X, p.Y)
	}
	i.ctx.ClosePath()
	i.ctx.SetColor(c)
	i.ctx.Fill()
}

// Image returns what has been drawn so far
func (i *ImageRenderer) Image() image.Image {
	return i.ctx.Image()
}

// SavePNG writes what has been drawn so far to disk
func (i *ImageRenderer) SavePNG(fpath string) error {
	return i.ctx.SavePNG(fpath)
}
