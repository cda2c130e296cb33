package mapgen2

import (
	"github.com/unixpickle/model3d/model3d"
)

// Mesh returns the island as a 3D relief: each polygon is fanned from its
// center out to every edge around it, with z = elevation * zScale.
// A center sits at the mean elevation of its reachable corners. Triangles
// touching an unreachable corner are left out.
func (m *Map) Mesh(zScale float64) *model3d.Mesh {
	heights := m.centerHeights()

	mesh := model3d.NewMesh()
	for _, e := range m.Edges {
		if !e.HasCorners() {
			continue
		}
		v0, v1 := m.Corners[e.V0], m.Corners[e.V1]
		if !v0.Reachable() || !v1.Reachable() || v0 == v1 {
			continue
		}
		a := model3d.Coord3D{X: v0.Point.X, Y: v0.Point.Y, Z: v0.Elevation * zScale}
		b := model3d.Coord3D{X: v1.Point.X, Y: v1.Point.Y, Z: v1.Elevation * zScale}

		for _, d := range []CenterID{e.D0, e.D1} {
			if d == NoCenter {
				continue
			}
			c := m.Centers[d]
			mesh.Add(&model3d.Triangle{
				model3d.Coord3D{X: c.Point.X, Y: c.Point.Y, Z: heights[d] * zScale},
				a,
				b,
			})
		}
	}
	return mesh
}

// centerHeights returns the mean elevation of each center's reachable
// corners, 0 if it has none.
func (m *Map) centerHeights() []float64 {
	heights := make([]float64, len(m.Centers))
	for _, c := range m.Centers {
		sum, n := 0.0, 0
		for _, id := range c.Corners {
			q := m.Corners[id]
			if q.Reachable() {
				sum += q.Elevation
				n++
			}
		}
		if n > 0 {
			heights[c.Index] = sum / float64(n)
		}
	}
	return heights
}
