// Package kernel defines the abstract geometry kernel interface.
// Implementations turn closed 2D airfoil outlines into profiles, extrude
// them into solids and tessellate the result. The abstraction keeps the
// tessellator independent of the modeling backend.
package kernel

// Solid is an opaque handle to a geometry kernel solid.
// Implementations wrap their internal representation.
type Solid interface {
	// BoundingBox returns the axis-aligned bounding box.
	BoundingBox() (min, max [3]float64)
}

// Profile is an opaque handle to a closed planar outline in the XY plane.
type Profile interface {
	// Bounds returns the axis-aligned bounding rectangle.
	Bounds() (min, max [2]float64)
	// Contains reports whether (x, y) lies strictly inside the outline.
	Contains(x, y float64) bool
}

// Kernel is the abstract geometry kernel interface.
type Kernel interface {
	// Profile builds a closed outline from an ordered point loop. The loop
	// is closed implicitly from the last point back to the first.
	Profile(outline [][2]float64) (Profile, error)

	// Extrude sweeps a profile along Z, centered on z = 0.
	Extrude(p Profile, height float64) Solid

	// Boolean operations
	Union(a, b Solid) Solid

	// Transforms
	Translate(s Solid, x, y, z float64) Solid
	Rotate(s Solid, x, y, z float64) Solid // Euler angles in degrees

	// Mesh output
	ToMesh(s Solid) (*Mesh, error)
}
