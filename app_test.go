package main

import (
	"errors"
	"os"
	"testing"

	"github.com/chazu/foilworks/internal/config"
	"github.com/chazu/foilworks/pkg/airfoil"
	"github.com/chazu/foilworks/pkg/kernel/sdfx"
	"github.com/chazu/foilworks/pkg/reynolds"
)

// newTestApp returns an App with a coarse kernel so tessellation stays fast.
func newTestApp() *App {
	cfg := config.DefaultConfig()
	cfg.Limits.MaxPoints = 1000
	app := NewApp(cfg, nil, nil)
	app.kernel = sdfx.New(sdfx.WithMeshCells(24))
	return app
}

// TestE2EWingExample exercises the full pipeline: Lisp source → engine →
// design → tessellate → meshes. This is the same path that the Wails
// Evaluate binding takes, but without the Wails runtime.
func TestE2EWingExample(t *testing.T) {
	app := newTestApp()

	source, err := os.ReadFile("examples/wing.foil")
	if err != nil {
		t.Fatalf("failed to read wing.foil: %v", err)
	}

	result := app.Evaluate(string(source))

	// No errors expected.
	if len(result.Errors) > 0 {
		for _, e := range result.Errors {
			t.Errorf("eval error (line %d): %s", e.Line, e.Message)
		}
		t.FailNow()
	}

	// Expect 3 meshes: root, mid, tip.
	if len(result.Meshes) != 3 {
		t.Fatalf("expected 3 meshes, got %d", len(result.Meshes))
	}
	if len(result.Airfoils) != 3 {
		t.Errorf("expected 3 distinct airfoils, got %d", len(result.Airfoils))
	}

	expectedSections := []string{"root", "mid", "tip"}
	for i, m := range result.Meshes {
		if m.SectionName != expectedSections[i] {
			t.Errorf("mesh %d: expected section %q, got %q", i, expectedSections[i], m.SectionName)
		}

		// Each mesh must have non-empty geometry.
		if len(m.Vertices) == 0 {
			t.Errorf("section %q: no vertices", m.SectionName)
		}
		if len(m.Normals) == 0 {
			t.Errorf("section %q: no normals", m.SectionName)
		}
		if len(m.Indices) == 0 {
			t.Errorf("section %q: no indices", m.SectionName)
		}

		// Must have a color assigned.
		if m.Color == "" {
			t.Errorf("section %q: no color assigned", m.SectionName)
		}
	}
}

// TestE2EEmptySource ensures the pipeline handles empty input gracefully.
func TestE2EEmptySource(t *testing.T) {
	app := newTestApp()
	result := app.Evaluate("")

	if len(result.Errors) > 0 {
		t.Errorf("unexpected errors for empty source: %v", result.Errors)
	}
	if len(result.Meshes) != 0 {
		t.Errorf("expected 0 meshes for empty source, got %d", len(result.Meshes))
	}
}

// TestE2ESyntaxError ensures eval errors are reported, not fatal errors.
func TestE2ESyntaxError(t *testing.T) {
	app := newTestApp()
	result := app.Evaluate("(section \"root\"")

	if len(result.Errors) == 0 {
		t.Fatal("expected eval errors for syntax error")
	}
	if len(result.Meshes) != 0 {
		t.Errorf("expected 0 meshes on error, got %d", len(result.Meshes))
	}
}

// TestE2ESingleSection ensures a minimal single-section source renders one mesh.
func TestE2ESingleSection(t *testing.T) {
	app := newTestApp()
	source := `(section "panel" (naca "0012") :chord 100 :span 30)`
	result := app.Evaluate(source)

	if len(result.Errors) > 0 {
		for _, e := range result.Errors {
			t.Errorf("eval error: %s", e.Message)
		}
		t.FailNow()
	}
	if len(result.Meshes) != 1 {
		t.Fatalf("expected 1 mesh, got %d", len(result.Meshes))
	}
	if result.Meshes[0].SectionName != "panel" {
		t.Errorf("expected section name 'panel', got %q", result.Meshes[0].SectionName)
	}
}

func TestGenerateBindings(t *testing.T) {
	app := newTestApp()

	a4, err := app.GenerateNACA4(0.02, 0.4, 0.12, 50, true)
	if err != nil {
		t.Fatalf("GenerateNACA4: %v", err)
	}
	if a4.Name != "NACA 2412" || len(a4.Points) != 99 {
		t.Errorf("GenerateNACA4 = %s with %d points", a4.Name, len(a4.Points))
	}

	a5, err := app.GenerateNACA5(0.15, 0.12, 50, true)
	if err != nil {
		t.Fatalf("GenerateNACA5: %v", err)
	}
	if a5.Name != "NACA 23012" {
		t.Errorf("GenerateNACA5 name = %s", a5.Name)
	}

	byName, err := app.Generate("NACA 2412", 50, true)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if byName.ID != a4.ID {
		t.Errorf("Generate(2412) id %s != GenerateNACA4 id %s", byName.ID, a4.ID)
	}
}

func TestGenerateBindingErrors(t *testing.T) {
	app := newTestApp()

	if _, err := app.GenerateNACA4(0.02, 0.4, 0.12, 5000, true); !errors.Is(err, airfoil.ErrInvalidParameter) {
		t.Errorf("expected ErrInvalidParameter for oversized n, got %v", err)
	}
	if _, err := app.GenerateNACA5(0.3, 0.12, 50, true); !errors.Is(err, airfoil.ErrUnsupportedCamberPosition) {
		t.Errorf("expected ErrUnsupportedCamberPosition, got %v", err)
	}
	if _, err := app.GenerateNACA6("63A", 0.12); !errors.Is(err, airfoil.ErrBaseShapeMissing) {
		t.Errorf("expected ErrBaseShapeMissing without a library, got %v", err)
	}
	if _, err := app.Generate("wing", 50, true); !errors.Is(err, airfoil.ErrInvalidParameter) {
		t.Errorf("expected ErrInvalidParameter for bad designation, got %v", err)
	}
}

func TestReynoldsBinding(t *testing.T) {
	app := newTestApp()

	re, err := app.Reynolds(reynolds.Input{V: 10, C: 0.2, Nu: reynolds.Float(2e-5)})
	if err != nil {
		t.Fatalf("Reynolds: %v", err)
	}
	if re < 99999 || re > 100001 {
		t.Errorf("Re = %f, want 100000", re)
	}

	if _, err := app.Reynolds(reynolds.Input{V: 10, C: 0.2}); !errors.Is(err, reynolds.ErrMissingViscosity) {
		t.Errorf("expected ErrMissingViscosity, got %v", err)
	}
}
