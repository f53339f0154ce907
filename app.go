package main

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/chazu/foilworks/internal/config"
	"github.com/chazu/foilworks/pkg/airfoil"
	"github.com/chazu/foilworks/pkg/engine"
	"github.com/chazu/foilworks/pkg/kernel"
	"github.com/chazu/foilworks/pkg/kernel/sdfx"
	"github.com/chazu/foilworks/pkg/reynolds"
	"github.com/chazu/foilworks/pkg/tessellate"
)

// colorPalette is a default palette used to assign distinct colors to sections.
var colorPalette = []string{
	"#4A90D9", "#E67E22", "#2ECC71", "#9B59B6",
	"#E74C3C", "#1ABC9C", "#F39C12", "#3498DB",
}

// App is the Wails backend. It exposes methods to the frontend via bindings.
type App struct {
	ctx    context.Context
	cfg    *config.Config
	lib    airfoil.BaseLibrary
	log    *zap.Logger
	engine *engine.Engine
	kernel kernel.Kernel
}

// MeshData is the JSON-serializable mesh format sent to the frontend.
type MeshData struct {
	Vertices    []float32 `json:"vertices"`
	Normals     []float32 `json:"normals"`
	Indices     []uint32  `json:"indices"`
	SectionName string    `json:"sectionName"`
	Color       string    `json:"color"`
}

// EvalErrorData is a JSON-serializable eval error for the frontend.
type EvalErrorData struct {
	Line    int    `json:"line"`
	Col     int    `json:"col"`
	Message string `json:"message"`
}

// EvalResult is the full result returned to the frontend.
type EvalResult struct {
	Meshes   []MeshData         `json:"meshes"`
	Airfoils []*airfoil.Airfoil `json:"airfoils"`
	Errors   []EvalErrorData    `json:"errors"`
	Warnings []EvalErrorData    `json:"warnings"`
}

// NewApp creates a new App with an engine and the sdfx kernel. The engine
// is shared so a newer evaluation supersedes one still running.
func NewApp(cfg *config.Config, lib airfoil.BaseLibrary, log *zap.Logger) *App {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &App{
		cfg: cfg,
		lib: lib,
		log: log,
		engine: engine.NewEngine(
			engine.WithTimeout(cfg.GetScriptTimeout()),
			engine.WithBaseLibrary(lib),
			engine.WithMaxPoints(cfg.Limits.MaxPoints),
			engine.WithLogger(log),
		),
		kernel: sdfx.New(sdfx.WithMeshCells(cfg.Mesh.Cells)),
	}
}

// startup is called by Wails on app startup. The context is saved
// so we can call Wails runtime methods later if needed.
func (a *App) startup(ctx context.Context) {
	a.ctx = ctx
}

func (a *App) options(n int, closedTE bool) ([]airfoil.Option, error) {
	if limit := a.cfg.Limits.MaxPoints; n > limit {
		return nil, fmt.Errorf("%w: n=%d exceeds the limit of %d", airfoil.ErrInvalidParameter, n, limit)
	}
	return []airfoil.Option{airfoil.WithPoints(n), airfoil.WithClosedTE(closedTE)}, nil
}

// GenerateNACA4 returns a 4-digit section.
func (a *App) GenerateNACA4(m, p, t float64, n int, closedTE bool) (*airfoil.Airfoil, error) {
	opts, err := a.options(n, closedTE)
	if err != nil {
		return nil, err
	}
	return airfoil.NACA4(m, p, t, opts...)
}

// GenerateNACA5 returns a 5-digit section on a standard mean line.
func (a *App) GenerateNACA5(pPos, t float64, n int, closedTE bool) (*airfoil.Airfoil, error) {
	opts, err := a.options(n, closedTE)
	if err != nil {
		return nil, err
	}
	return airfoil.NACA5(pPos, t, opts...)
}

// GenerateNACA6 returns a symmetric 6-series section scaled from its base shape.
func (a *App) GenerateNACA6(family string, t float64) (*airfoil.Airfoil, error) {
	return airfoil.NACA6(family, t, a.lib)
}

// Generate returns the section named by a designation such as "2412".
func (a *App) Generate(designation string, n int, closedTE bool) (*airfoil.Airfoil, error) {
	d, err := airfoil.ParseDesignation(designation)
	if err != nil {
		return nil, err
	}
	opts, err := a.options(n, closedTE)
	if err != nil {
		return nil, err
	}
	return airfoil.Generate(d, a.lib, opts...)
}

// Reynolds returns the chord Reynolds number.
func (a *App) Reynolds(in reynolds.Input) (float64, error) {
	return reynolds.Compute(in)
}

// Evaluate takes Lisp source and returns mesh data + errors.
// This is the primary binding called by the frontend editor.
func (a *App) Evaluate(source string) EvalResult {
	result := EvalResult{
		Meshes:   []MeshData{},
		Airfoils: []*airfoil.Airfoil{},
		Errors:   []EvalErrorData{},
		Warnings: []EvalErrorData{},
	}

	// Step 1: Evaluate the Lisp source into a wing design.
	res, err := a.engine.EvaluateFull(source)
	if err != nil {
		// Fatal error (panic, timeout, etc.)
		a.log.Warn("evaluate fatal error", zap.Error(err))
		result.Errors = append(result.Errors, EvalErrorData{Message: err.Error()})
		return result
	}

	// Step 2: Convert eval errors to the frontend format.
	if len(res.Errors) > 0 {
		for _, e := range res.Errors {
			result.Errors = append(result.Errors, EvalErrorData{
				Line:    e.Line,
				Col:     e.Col,
				Message: e.Message,
			})
		}
		return result
	}
	for _, w := range res.Warnings {
		result.Warnings = append(result.Warnings, EvalErrorData{Message: w.Section + ": " + w.Message})
	}
	result.Airfoils = append(result.Airfoils, res.Design.Airfoils...)

	// Step 3: Tessellate the sections into triangle meshes.
	meshes, err := tessellate.Tessellate(res.Design, a.kernel)
	if err != nil {
		a.log.Error("tessellate error", zap.Error(err))
		result.Errors = append(result.Errors, EvalErrorData{
			Message: "tessellation failed: " + err.Error(),
		})
		return result
	}

	// Step 4: Convert kernel meshes to the frontend MeshData format.
	for i, m := range meshes {
		result.Meshes = append(result.Meshes, MeshData{
			Vertices:    m.Vertices,
			Normals:     m.Normals,
			Indices:     m.Indices,
			SectionName: m.SectionName,
			Color:       colorPalette[i%len(colorPalette)],
		})
	}

	return result
}
