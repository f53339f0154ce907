package export

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/chazu/foilworks/pkg/airfoil"
	"github.com/deadsy/sdfx/render"
	"github.com/deadsy/sdfx/sdf"
	v2 "github.com/deadsy/sdfx/vec/v2"
)

// svgLineStyle is the stroke used for outline drawings.
const svgLineStyle = "fill:none;stroke:black;stroke-width:0.2"

// lineWriter is the subset of the sdfx DXF and SVG writers used here.
type lineWriter interface {
	Line(p0, p1 v2.Vec)
	Save() error
}

// dxfWriter adapts the DXF writer, which takes sdf.Line2 segments.
type dxfWriter struct{ *render.DXF }

func (d dxfWriter) Line(p0, p1 v2.Vec) { d.DXF.Line(&sdf.Line2{p0, p1}) }

var (
	_ lineWriter = dxfWriter{}
	_ lineWriter = (*render.SVG)(nil)
)

// WriteDXF writes the closed outline as DXF line entities, scaled to chord.
func WriteDXF(w io.Writer, foil *airfoil.Airfoil, chord float64) error {
	return writeOutline(w, foil, chord, "outline.dxf", func(path string) lineWriter {
		return dxfWriter{render.NewDXF(path)}
	})
}

// WriteSVG writes the closed outline as an SVG drawing, scaled to chord.
func WriteSVG(w io.Writer, foil *airfoil.Airfoil, chord float64) error {
	return writeOutline(w, foil, chord, "outline.svg", func(path string) lineWriter {
		return render.NewSVG(path, svgLineStyle)
	})
}

// writeOutline drives a path-based sdfx writer through a temporary file and
// copies the result to w.
func writeOutline(w io.Writer, foil *airfoil.Airfoil, chord float64, name string, open func(string) lineWriter) error {
	if len(foil.Points) < 2 {
		return fmt.Errorf("export: outline needs at least 2 points, got %d", len(foil.Points))
	}

	dir, err := os.MkdirTemp("", "foilworks-export-")
	if err != nil {
		return fmt.Errorf("export: %w", err)
	}
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, name)
	lw := open(path)
	pts := foil.Points
	for i := range pts {
		a := pts[i]
		b := pts[(i+1)%len(pts)]
		if a == b {
			continue
		}
		lw.Line(v2.Vec{X: a.X * chord, Y: a.Y * chord}, v2.Vec{X: b.X * chord, Y: b.Y * chord})
	}
	if err := lw.Save(); err != nil {
		return fmt.Errorf("export: save %s: %w", name, err)
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("export: %w", err)
	}
	defer f.Close()
	_, err = io.Copy(w, f)
	return err
}
