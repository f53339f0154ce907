package export

import (
	"fmt"
	"io"

	"github.com/chazu/foilworks/pkg/airfoil"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

// Plot size. The height leaves room for cambered sections at equal scale.
const (
	plotWidth  = 8 * vg.Inch
	plotHeight = 3 * vg.Inch
)

func toXYs(pts []airfoil.Point) plotter.XYs {
	xys := make(plotter.XYs, len(pts))
	for i, p := range pts {
		xys[i].X = p.X
		xys[i].Y = p.Y
	}
	return xys
}

// NewPlot builds a plot of the upper and lower surfaces.
func NewPlot(foil *airfoil.Airfoil) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = foil.Name
	if foil.Approximate {
		p.Title.Text += " (scaled base shape)"
	}
	p.X.Label.Text = "x/c"
	p.Y.Label.Text = "y/c"

	upper, lower := foil.Surfaces()
	if err := plotutil.AddLines(p,
		"upper", toXYs(upper),
		"lower", toXYs(lower),
	); err != nil {
		return nil, fmt.Errorf("export: plotting failed: %w", err)
	}

	// Roughly equal x and y scale so the section is not distorted.
	min, max := foil.Bounds()
	p.X.Min, p.X.Max = min.X-0.02, max.X+0.02
	halfY := (float64(plotHeight) / float64(plotWidth)) * (p.X.Max - p.X.Min) / 2
	midY := (min.Y + max.Y) / 2
	p.Y.Min, p.Y.Max = midY-halfY, midY+halfY
	p.Add(plotter.NewGrid())
	return p, nil
}

// WritePlot renders the surfaces in the given image format ("png", "svg").
func WritePlot(w io.Writer, foil *airfoil.Airfoil, format string) error {
	if len(foil.Points) == 0 {
		return fmt.Errorf("export: nothing to plot")
	}
	p, err := NewPlot(foil)
	if err != nil {
		return err
	}
	wt, err := p.WriterTo(plotWidth, plotHeight, format)
	if err != nil {
		return fmt.Errorf("export: %w", err)
	}
	_, err = wt.WriteTo(w)
	return err
}
