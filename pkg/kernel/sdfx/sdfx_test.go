package sdfx

import (
	"errors"
	"math"
	"testing"

	"github.com/chazu/foilworks/pkg/airfoil"
)

// naca0012 returns a chord-100 NACA 0012 outline.
func naca0012(t *testing.T) [][2]float64 {
	t.Helper()
	foil, err := airfoil.NACA4(0, 0, 0.12, airfoil.WithPoints(41))
	if err != nil {
		t.Fatalf("NACA4: %v", err)
	}
	out := make([][2]float64, len(foil.Points))
	for i, p := range foil.Points {
		out[i] = [2]float64{p.X * 100, p.Y * 100}
	}
	return out
}

func TestProfile(t *testing.T) {
	k := New()
	p, err := k.Profile(naca0012(t))
	if err != nil {
		t.Fatalf("Profile failed: %v", err)
	}

	min, max := p.Bounds()
	const tol = 0.5
	if math.Abs(min[0]) > tol || math.Abs(max[0]-100) > tol {
		t.Errorf("x bounds = [%f, %f], expected ~[0, 100]", min[0], max[0])
	}
	if math.Abs(max[1]-6) > tol || math.Abs(min[1]+6) > tol {
		t.Errorf("y bounds = [%f, %f], expected ~[-6, 6]", min[1], max[1])
	}

	tests := []struct {
		name string
		x, y float64
		want bool
	}{
		{"mid chord", 30, 0, true},
		{"above upper surface", 30, 10, false},
		{"ahead of leading edge", -5, 0, false},
		{"behind trailing edge", 105, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := p.Contains(tt.x, tt.y); got != tt.want {
				t.Errorf("Contains(%v, %v) = %v, want %v", tt.x, tt.y, got, tt.want)
			}
		})
	}
}

func TestProfileDegenerate(t *testing.T) {
	k := New()
	tests := []struct {
		name    string
		outline [][2]float64
	}{
		{"empty", nil},
		{"two points", [][2]float64{{0, 0}, {1, 0}}},
		{"repeated points", [][2]float64{{0, 0}, {0, 0}, {1, 0}, {1, 0}, {0, 0}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := k.Profile(tt.outline)
			if !errors.Is(err, ErrDegenerateOutline) {
				t.Fatalf("Profile error = %v, want ErrDegenerateOutline", err)
			}
		})
	}
}

func TestDedupe(t *testing.T) {
	got := dedupe([][2]float64{{1, 0}, {0, 1}, {0, 1}, {0, -1}, {1, 0}})
	if len(got) != 3 {
		t.Fatalf("dedupe returned %d points, want 3", len(got))
	}
}

func TestExtrude(t *testing.T) {
	k := New(WithMeshCells(40))
	p, err := k.Profile(naca0012(t))
	if err != nil {
		t.Fatalf("Profile failed: %v", err)
	}
	s := k.Extrude(p, 50)

	min, max := s.BoundingBox()
	const tol = 0.5
	if math.Abs(min[2]+25) > tol || math.Abs(max[2]-25) > tol {
		t.Errorf("z bounds = [%f, %f], expected ~[-25, 25]", min[2], max[2])
	}

	mesh, err := k.ToMesh(s)
	if err != nil {
		t.Fatalf("ToMesh failed: %v", err)
	}
	if mesh.IsEmpty() {
		t.Fatal("mesh is empty")
	}
	if len(mesh.Vertices) != len(mesh.Normals) {
		t.Fatalf("vertices length %d != normals length %d", len(mesh.Vertices), len(mesh.Normals))
	}
	if len(mesh.Indices) != mesh.TriangleCount()*3 {
		t.Fatalf("indices length %d != triCount*3 %d", len(mesh.Indices), mesh.TriangleCount()*3)
	}
	t.Logf("panel triangle count: %d", mesh.TriangleCount())
}

func TestUnion(t *testing.T) {
	k := New(WithMeshCells(40))
	p, err := k.Profile(naca0012(t))
	if err != nil {
		t.Fatalf("Profile failed: %v", err)
	}
	a := k.Extrude(p, 20)
	b := k.Translate(k.Extrude(p, 20), 0, 0, 30)
	u := k.Union(a, b)

	min, max := u.BoundingBox()
	const tol = 0.5
	if math.Abs(min[2]+10) > tol || math.Abs(max[2]-40) > tol {
		t.Errorf("union z bounds = [%f, %f], expected ~[-10, 40]", min[2], max[2])
	}

	mesh, err := k.ToMesh(u)
	if err != nil {
		t.Fatalf("ToMesh failed: %v", err)
	}
	if mesh.IsEmpty() {
		t.Fatal("union mesh is empty")
	}
}

func TestTranslate(t *testing.T) {
	k := New()
	p, _ := k.Profile(naca0012(t))
	translated := k.Translate(k.Extrude(p, 10), 100, 200, 300)

	min, max := translated.BoundingBox()

	const tol = 0.5
	expectMin := [3]float64{100, 194, 295}
	expectMax := [3]float64{200, 206, 305}

	for i := 0; i < 3; i++ {
		if math.Abs(min[i]-expectMin[i]) > tol {
			t.Errorf("min[%d] = %f, expected ~%f", i, min[i], expectMin[i])
		}
		if math.Abs(max[i]-expectMax[i]) > tol {
			t.Errorf("max[%d] = %f, expected ~%f", i, max[i], expectMax[i])
		}
	}
}

func TestRotate(t *testing.T) {
	k := New()
	p, _ := k.Profile(naca0012(t))
	s := k.Extrude(p, 10)

	// A chord along X rotated 90 degrees around Z should extend along Y instead.
	rotated := k.Rotate(s, 0, 0, 90)
	min, max := rotated.BoundingBox()

	xExtent := max[0] - min[0]
	yExtent := max[1] - min[1]

	const tol = 1.0
	if math.Abs(xExtent-12) > tol {
		t.Errorf("rotated X extent = %f, expected ~12", xExtent)
	}
	if math.Abs(yExtent-100) > tol {
		t.Errorf("rotated Y extent = %f, expected ~100", yExtent)
	}
}
