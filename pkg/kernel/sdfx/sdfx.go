// Package sdfx implements the kernel.Kernel interface using the
// github.com/deadsy/sdfx SDF-based CAD library.
package sdfx

import (
	"errors"
	"fmt"
	"math"

	"github.com/chazu/foilworks/pkg/kernel"
	"github.com/deadsy/sdfx/render"
	"github.com/deadsy/sdfx/sdf"
	v2 "github.com/deadsy/sdfx/vec/v2"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// Compile-time interface check.
var _ kernel.Kernel = (*SdfxKernel)(nil)

// DefaultMeshCells controls marching cubes tessellation resolution along
// the longest bounding box axis.
const DefaultMeshCells = 200

// ErrDegenerateOutline is returned when fewer than three distinct points
// remain after removing repeated vertices.
var ErrDegenerateOutline = errors.New("sdfx: outline needs at least 3 distinct points")

// sdfxSolid wraps an sdf.SDF3 to implement kernel.Solid.
type sdfxSolid struct {
	s sdf.SDF3
}

// BoundingBox returns the axis-aligned bounding box.
func (s *sdfxSolid) BoundingBox() (min, max [3]float64) {
	bb := s.s.BoundingBox()
	min = [3]float64{bb.Min.X, bb.Min.Y, bb.Min.Z}
	max = [3]float64{bb.Max.X, bb.Max.Y, bb.Max.Z}
	return min, max
}

// sdfxProfile wraps an sdf.SDF2 to implement kernel.Profile.
type sdfxProfile struct {
	s sdf.SDF2
}

func (p *sdfxProfile) Bounds() (min, max [2]float64) {
	bb := p.s.BoundingBox()
	return [2]float64{bb.Min.X, bb.Min.Y}, [2]float64{bb.Max.X, bb.Max.Y}
}

// Contains reports a negative signed distance.
func (p *sdfxProfile) Contains(x, y float64) bool {
	return p.s.Evaluate(v2.Vec{X: x, Y: y}) < 0
}

// SdfxKernel implements kernel.Kernel using sdfx.
type SdfxKernel struct {
	meshCells int
}

// Option configures an SdfxKernel.
type Option func(*SdfxKernel)

// WithMeshCells overrides the marching cubes resolution. Values below 8
// are raised to 8.
func WithMeshCells(n int) Option {
	return func(k *SdfxKernel) {
		if n < 8 {
			n = 8
		}
		k.meshCells = n
	}
}

// New returns a new SdfxKernel.
func New(opts ...Option) *SdfxKernel {
	k := &SdfxKernel{meshCells: DefaultMeshCells}
	for _, o := range opts {
		o(k)
	}
	return k
}

// unwrap extracts the underlying sdf.SDF3 from a kernel.Solid.
func unwrap(s kernel.Solid) sdf.SDF3 {
	return s.(*sdfxSolid).s
}

// wrap creates a kernel.Solid from an sdf.SDF3.
func wrap(s sdf.SDF3) kernel.Solid {
	return &sdfxSolid{s: s}
}

// dedupe drops consecutive repeated vertices, including a closing vertex
// equal to the first. sdf.Polygon2D treats a zero-length edge as an error.
func dedupe(outline [][2]float64) []v2.Vec {
	const eps = 1e-12
	same := func(a, b v2.Vec) bool {
		return math.Abs(a.X-b.X) < eps && math.Abs(a.Y-b.Y) < eps
	}
	out := make([]v2.Vec, 0, len(outline))
	for _, p := range outline {
		v := v2.Vec{X: p[0], Y: p[1]}
		if len(out) > 0 && same(out[len(out)-1], v) {
			continue
		}
		out = append(out, v)
	}
	for len(out) > 1 && same(out[0], out[len(out)-1]) {
		out = out[:len(out)-1]
	}
	return out
}

// Profile builds a polygon from the outline loop.
func (k *SdfxKernel) Profile(outline [][2]float64) (kernel.Profile, error) {
	verts := dedupe(outline)
	if len(verts) < 3 {
		return nil, fmt.Errorf("%w: got %d", ErrDegenerateOutline, len(verts))
	}
	s, err := sdf.Polygon2D(verts)
	if err != nil {
		return nil, fmt.Errorf("sdfx.Polygon2D: %w", err)
	}
	return &sdfxProfile{s: s}, nil
}

// Extrude sweeps the profile along Z. sdf.Extrude3D centers the result on
// z = 0.
func (k *SdfxKernel) Extrude(p kernel.Profile, height float64) kernel.Solid {
	return wrap(sdf.Extrude3D(p.(*sdfxProfile).s, height))
}

// Union returns the union of two solids.
func (k *SdfxKernel) Union(a, b kernel.Solid) kernel.Solid {
	return wrap(sdf.Union3D(unwrap(a), unwrap(b)))
}

// Translate moves a solid by (x, y, z).
func (k *SdfxKernel) Translate(s kernel.Solid, x, y, z float64) kernel.Solid {
	m := sdf.Translate3d(v3.Vec{X: x, Y: y, Z: z})
	return wrap(sdf.Transform3D(unwrap(s), m))
}

// Rotate rotates a solid by Euler angles (degrees) around X, Y, Z axes.
func (k *SdfxKernel) Rotate(s kernel.Solid, x, y, z float64) kernel.Solid {
	xRad := x * math.Pi / 180.0
	yRad := y * math.Pi / 180.0
	zRad := z * math.Pi / 180.0

	m := sdf.RotateZ(zRad).Mul(sdf.RotateY(yRad)).Mul(sdf.RotateX(xRad))
	return wrap(sdf.Transform3D(unwrap(s), m))
}

// ToMesh converts a solid to a triangle mesh using marching cubes.
func (k *SdfxKernel) ToMesh(s kernel.Solid) (*kernel.Mesh, error) {
	sdf3 := unwrap(s)

	renderer := render.NewMarchingCubesUniform(k.meshCells)
	triangles := render.ToTriangles(sdf3, renderer)

	numVerts := len(triangles) * 3

	vertices := make([]float32, 0, numVerts*3)
	normals := make([]float32, 0, numVerts*3)
	indices := make([]uint32, 0, numVerts)

	for i, tri := range triangles {
		n := tri.Normal()
		nx, ny, nz := float32(n.X), float32(n.Y), float32(n.Z)

		for j := 0; j < 3; j++ {
			v := tri[j]
			vertices = append(vertices, float32(v.X), float32(v.Y), float32(v.Z))
			normals = append(normals, nx, ny, nz)
			indices = append(indices, uint32(i*3+j))
		}
	}

	return &kernel.Mesh{
		Vertices: vertices,
		Normals:  normals,
		Indices:  indices,
	}, nil
}
