package line

import (
	"image"
)

// PointsBetween returns every pixel on the line a-b (Bresenham), walking
// from a to b with both ends included.
func PointsBetween(a, b image.Point) []image.Point {
	dx, sx := abs(b.X-a.X), sign(b.X-a.X)
	dy, sy := -abs(b.Y-a.Y), sign(b.Y-a.Y)

	pts := make([]image.Point, 0, max(dx, -dy)+1)
	err := dx + dy
	p := a
	for {
		pts = append(pts, p)
		if p == b {
			return pts
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			p.X += sx
		}
		if e2 <= dx {
			err += dx
			p.Y += sy
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func sign(v int) int {
	switch {
	case v < 0:
		return -1
	case v > 0:
		return 1
	}
	return 0
}
