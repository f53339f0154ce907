// Package tessellate walks a wing design and produces triangle meshes
// using a geometry kernel. One mesh is produced per section.
package tessellate

import (
	"errors"
	"fmt"

	"github.com/chazu/foilworks/pkg/design"
	"github.com/chazu/foilworks/pkg/kernel"
)

// QuarterChord is the twist axis as a chord fraction.
const QuarterChord = 0.25

// ErrNoSections is returned by Wing for a design without sections.
var ErrNoSections = errors.New("tessellate: design has no sections")

// placement is the rigid transform that puts a section panel on the wing.
type placement struct {
	pivot   float64 // x of the twist axis
	twist   float64 // degrees, nose up
	station float64 // z of the panel root
	span    float64
}

func placementFor(s *design.Section) placement {
	return placement{
		pivot:   QuarterChord * s.Chord,
		twist:   s.Twist,
		station: s.Station,
		span:    s.Span,
	}
}

// apply twists the panel about the pivot and moves it so it occupies
// [station, station+span] along z. A positive twist raises the leading
// edge, which is a clockwise rotation in the XY plane.
func (p placement) apply(k kernel.Kernel, solid kernel.Solid) kernel.Solid {
	if p.twist != 0 {
		solid = k.Translate(solid, -p.pivot, 0, 0)
		solid = k.Rotate(solid, 0, 0, -p.twist)
		solid = k.Translate(solid, p.pivot, 0, 0)
	}
	dz := p.station + p.span/2
	if dz != 0 {
		solid = k.Translate(solid, 0, 0, dz)
	}
	return solid
}

// outline returns the section's loop scaled by its chord.
func outline(s *design.Section) [][2]float64 {
	pts := s.Airfoil.Points
	out := make([][2]float64, len(pts))
	for i, p := range pts {
		out[i] = [2]float64{p.X * s.Chord, p.Y * s.Chord}
	}
	return out
}

// panel builds the placed solid for one section.
func panel(k kernel.Kernel, s *design.Section) (kernel.Solid, error) {
	if s.Airfoil == nil {
		return nil, fmt.Errorf("section %q has no airfoil", s.Name)
	}
	profile, err := k.Profile(outline(s))
	if err != nil {
		return nil, fmt.Errorf("section %q: %w", s.Name, err)
	}
	return placementFor(s).apply(k, k.Extrude(profile, s.Span)), nil
}

// Tessellate walks the design and produces one triangle mesh per section,
// in section order, using the provided geometry kernel. The tessellator is
// read-only and never mutates the design.
func Tessellate(d *design.Design, k kernel.Kernel) ([]*kernel.Mesh, error) {
	if d == nil {
		return nil, nil
	}

	meshes := make([]*kernel.Mesh, 0, d.SectionCount())
	for _, s := range d.Ordered() {
		solid, err := panel(k, s)
		if err != nil {
			return nil, fmt.Errorf("tessellate: %w", err)
		}
		mesh, err := k.ToMesh(solid)
		if err != nil {
			return nil, fmt.Errorf("tessellate: ToMesh failed for section %s: %w", s.ID.Short(), err)
		}
		mesh.SectionName = s.Name
		meshes = append(meshes, mesh)
	}
	return meshes, nil
}

// Wing unions every panel into a single mesh named name.
func Wing(d *design.Design, k kernel.Kernel, name string) (*kernel.Mesh, error) {
	if d == nil || d.SectionCount() == 0 {
		return nil, ErrNoSections
	}

	var wing kernel.Solid
	for _, s := range d.Ordered() {
		solid, err := panel(k, s)
		if err != nil {
			return nil, fmt.Errorf("tessellate: %w", err)
		}
		if wing == nil {
			wing = solid
		} else {
			wing = k.Union(wing, solid)
		}
	}

	mesh, err := k.ToMesh(wing)
	if err != nil {
		return nil, fmt.Errorf("tessellate: ToMesh failed for wing: %w", err)
	}
	mesh.SectionName = name
	return mesh, nil
}
