package kernel

import "math"

// Mesh is a triangle mesh suitable for rendering.
// All arrays are flat: vertices has 3 floats per vertex (x,y,z),
// normals has 3 floats per vertex, indices has 3 uint32s per triangle.
type Mesh struct {
	Vertices    []float32 `json:"vertices"`    // [x0,y0,z0, x1,y1,z1, ...]
	Normals     []float32 `json:"normals"`     // [nx0,ny0,nz0, ...]
	Indices     []uint32  `json:"indices"`     // [i0,i1,i2, ...] triangles
	SectionName string    `json:"sectionName"` // which wing section this came from
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Vertices) / 3
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// IsEmpty returns true if the mesh has no geometry.
func (m *Mesh) IsEmpty() bool {
	return len(m.Vertices) == 0
}

// Extent returns the componentwise minimum and maximum vertex coordinates.
// Both are zero for an empty mesh.
func (m *Mesh) Extent() (min, max [3]float64) {
	if m.IsEmpty() {
		return min, max
	}
	for i := 0; i < 3; i++ {
		min[i], max[i] = math.Inf(1), math.Inf(-1)
	}
	for i, v := range m.Vertices {
		axis := i % 3
		min[axis] = math.Min(min[axis], float64(v))
		max[axis] = math.Max(max[axis], float64(v))
	}
	return min, max
}
