package tessellate_test

import (
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/chazu/foilworks/pkg/airfoil"
	"github.com/chazu/foilworks/pkg/design"
	"github.com/chazu/foilworks/pkg/kernel"
	"github.com/chazu/foilworks/pkg/kernel/sdfx"
	"github.com/chazu/foilworks/pkg/tessellate"
)

// meshCells is fine enough to keep the thin trailing edge within a
// millimetre or two of the chord on the panels used here.
const meshCells = 128

func newKernel() kernel.Kernel {
	return sdfx.New(sdfx.WithMeshCells(meshCells))
}

// makeFoil generates a small NACA 4-digit loop from its designation.
func makeFoil(t *testing.T, code string) *airfoil.Airfoil {
	t.Helper()
	d, err := airfoil.ParseDesignation(code)
	if err != nil {
		t.Fatalf("ParseDesignation(%q): %v", code, err)
	}
	a, err := airfoil.Generate(d, nil, airfoil.WithPoints(31))
	if err != nil {
		t.Fatalf("Generate(%q): %v", code, err)
	}
	return a
}

// makeDesign builds a design from sections, failing the test on error.
func makeDesign(t *testing.T, sections ...*design.Section) *design.Design {
	t.Helper()
	d := design.New()
	for _, s := range sections {
		if err := d.AddSection(s); err != nil {
			t.Fatalf("AddSection(%s): %v", s.Name, err)
		}
	}
	return d
}

func assertNear(t *testing.T, what string, got, want, tol float64) {
	t.Helper()
	if math.Abs(got-want) > tol {
		t.Errorf("%s = %f, want %f ± %f", what, got, want, tol)
	}
}

func TestSingleSection(t *testing.T) {
	k := newKernel()
	d := makeDesign(t, &design.Section{
		Name: "root", Airfoil: makeFoil(t, "0012"), Chord: 100, Span: 50,
	})

	meshes, err := tessellate.Tessellate(d, k)
	if err != nil {
		t.Fatalf("Tessellate failed: %v", err)
	}
	if len(meshes) != 1 {
		t.Fatalf("expected 1 mesh, got %d", len(meshes))
	}

	m := meshes[0]
	if m.IsEmpty() {
		t.Fatal("mesh should not be empty")
	}
	if m.SectionName != "root" {
		t.Errorf("expected SectionName %q, got %q", "root", m.SectionName)
	}
	if m.TriangleCount() == 0 {
		t.Error("mesh should have triangles")
	}

	min, max := m.Extent()
	assertNear(t, "min x", min[0], 0, 5)
	assertNear(t, "max x", max[0], 100, 5)
	assertNear(t, "min z", min[2], 0, 3)
	assertNear(t, "max z", max[2], 50, 3)
}

func TestSectionsKeepOrderAndStations(t *testing.T) {
	k := newKernel()
	d := makeDesign(t,
		&design.Section{Name: "root", Airfoil: makeFoil(t, "2412"), Chord: 100, Span: 50},
		&design.Section{Name: "tip", Airfoil: makeFoil(t, "0012"), Station: 50, Chord: 60, Span: 50},
	)

	meshes, err := tessellate.Tessellate(d, k)
	if err != nil {
		t.Fatalf("Tessellate failed: %v", err)
	}
	if len(meshes) != 2 {
		t.Fatalf("expected 2 meshes, got %d", len(meshes))
	}
	if meshes[0].SectionName != "root" || meshes[1].SectionName != "tip" {
		t.Errorf("mesh order = [%s %s], want [root tip]", meshes[0].SectionName, meshes[1].SectionName)
	}

	min, max := meshes[1].Extent()
	assertNear(t, "tip min z", min[2], 50, 3)
	assertNear(t, "tip max z", max[2], 100, 3)
	assertNear(t, "tip max x", max[0], 60, 4)
}

func TestTwistDropsTrailingEdge(t *testing.T) {
	k := newKernel()
	d := makeDesign(t, &design.Section{Name: "twisted", Airfoil: makeFoil(t, "0012"), Chord: 100, Span: 20, Twist: 10})

	meshes, err := tessellate.Tessellate(d, k)
	if err != nil {
		t.Fatal(err)
	}

	// Nose up about the quarter chord moves the trailing edge down by
	// about 75*sin(10°), far below the untwisted lower surface at -6.
	min, max := meshes[0].Extent()
	if min[1] > -10 {
		t.Errorf("twisted min y = %f, expected trailing edge below -10", min[1])
	}
	if max[1] > 10 {
		t.Errorf("twisted max y = %f, expected no point above 10", max[1])
	}
}

func TestNilDesign(t *testing.T) {
	meshes, err := tessellate.Tessellate(nil, newKernel())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if meshes != nil {
		t.Errorf("expected nil meshes, got %d", len(meshes))
	}
}

func TestEmptyDesign(t *testing.T) {
	meshes, err := tessellate.Tessellate(design.New(), newKernel())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(meshes) != 0 {
		t.Errorf("expected 0 meshes, got %d", len(meshes))
	}
}

func TestSectionWithoutAirfoil(t *testing.T) {
	d := makeDesign(t, &design.Section{Name: "ghost", Chord: 1, Span: 1})
	_, err := tessellate.Tessellate(d, newKernel())
	if err == nil {
		t.Fatal("expected error for section without airfoil")
	}
}

func TestTessellateDoesNotMutateDesign(t *testing.T) {
	foil := makeFoil(t, "2412")
	s := &design.Section{Name: "root", Airfoil: foil, Chord: 100, Span: 10, Twist: 3}
	d := makeDesign(t, s)
	id := s.ID
	first := foil.Points[0]

	if _, err := tessellate.Tessellate(d, newKernel()); err != nil {
		t.Fatal(err)
	}
	if s.ID != id || s.Chord != 100 || s.Twist != 3 {
		t.Error("section was modified")
	}
	if foil.Points[0] != first {
		t.Error("airfoil points were modified")
	}
}

func TestWingUnion(t *testing.T) {
	k := newKernel()
	d := makeDesign(t,
		&design.Section{Name: "root", Airfoil: makeFoil(t, "0012"), Chord: 100, Span: 50},
		&design.Section{Name: "tip", Airfoil: makeFoil(t, "0012"), Station: 50, Chord: 100, Span: 50},
	)

	m, err := tessellate.Wing(d, k, "wing")
	if err != nil {
		t.Fatalf("Wing failed: %v", err)
	}
	if m.IsEmpty() {
		t.Fatal("wing mesh should not be empty")
	}
	if m.SectionName != "wing" {
		t.Errorf("SectionName = %q, want wing", m.SectionName)
	}
	min, max := m.Extent()
	assertNear(t, "wing min z", min[2], 0, 4)
	assertNear(t, "wing max z", max[2], 100, 4)
}

func TestWingEmpty(t *testing.T) {
	_, err := tessellate.Wing(design.New(), newKernel(), "wing")
	if !errors.Is(err, tessellate.ErrNoSections) {
		t.Fatalf("err = %v, want ErrNoSections", err)
	}
}

// recordingKernel logs every transform so placement order can be checked
// without running marching cubes.
type recordingKernel struct {
	calls []string
}

type recSolid struct{}

func (recSolid) BoundingBox() (min, max [3]float64) { return }

type recProfile struct{}

func (recProfile) Bounds() (min, max [2]float64) { return }
func (recProfile) Contains(x, y float64) bool     { return false }

func (r *recordingKernel) Profile(outline [][2]float64) (kernel.Profile, error) {
	r.calls = append(r.calls, fmt.Sprintf("profile %d tail=(%g,%g)", len(outline), outline[0][0], outline[0][1]))
	return recProfile{}, nil
}

func (r *recordingKernel) Extrude(p kernel.Profile, h float64) kernel.Solid {
	r.calls = append(r.calls, fmt.Sprintf("extrude %g", h))
	return recSolid{}
}

func (r *recordingKernel) Union(a, b kernel.Solid) kernel.Solid {
	r.calls = append(r.calls, "union")
	return a
}

func (r *recordingKernel) Translate(s kernel.Solid, x, y, z float64) kernel.Solid {
	r.calls = append(r.calls, fmt.Sprintf("translate %g %g %g", x, y, z))
	return s
}

func (r *recordingKernel) Rotate(s kernel.Solid, x, y, z float64) kernel.Solid {
	r.calls = append(r.calls, fmt.Sprintf("rotate %g %g %g", x, y, z))
	return s
}

func (r *recordingKernel) ToMesh(s kernel.Solid) (*kernel.Mesh, error) {
	r.calls = append(r.calls, "mesh")
	return &kernel.Mesh{}, nil
}

func TestPlacementOrder(t *testing.T) {
	foil := makeFoil(t, "0012")
	d := makeDesign(t, &design.Section{Name: "s", Airfoil: foil, Station: 2, Chord: 4, Twist: 5, Span: 2})

	rk := &recordingKernel{}
	if _, err := tessellate.Tessellate(d, rk); err != nil {
		t.Fatal(err)
	}

	want := []string{
		fmt.Sprintf("profile %d tail=(%g,%g)", len(foil.Points), foil.Points[0].X*4, foil.Points[0].Y*4),
		"extrude 2",
		"translate -1 0 0",
		"rotate 0 0 -5",
		"translate 1 0 0",
		"translate 0 0 3",
		"mesh",
	}
	if len(rk.calls) != len(want) {
		t.Fatalf("calls = %v, want %v", rk.calls, want)
	}
	for i := range want {
		if rk.calls[i] != want[i] {
			t.Errorf("call %d = %q, want %q", i, rk.calls[i], want[i])
		}
	}
}

func TestPlacementWithoutTwist(t *testing.T) {
	d := makeDesign(t, &design.Section{Name: "s", Airfoil: makeFoil(t, "0012"), Chord: 1, Span: 2})

	rk := &recordingKernel{}
	if _, err := tessellate.Tessellate(d, rk); err != nil {
		t.Fatal(err)
	}
	for _, c := range rk.calls {
		if c == "rotate 0 0 0" || c == "rotate 0 0 -0" {
			t.Errorf("untwisted section should not rotate: %v", rk.calls)
		}
	}
	if rk.calls[len(rk.calls)-2] != "translate 0 0 1" {
		t.Errorf("expected centering translation, got %v", rk.calls)
	}
}
