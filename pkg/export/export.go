// Package export writes airfoil loops as downloadable documents: Selig
// coordinate files, CSV, DXF and SVG outlines, and rendered plots.
package export

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/chazu/foilworks/pkg/airfoil"
)

// Format names an export document type.
type Format string

const (
	FormatJSON    Format = "json"
	FormatDat     Format = "dat"
	FormatCSV     Format = "csv"
	FormatDXF     Format = "dxf"
	FormatSVG     Format = "svg"      // outline drawing
	FormatPNG     Format = "png"      // plot
	FormatPlotSVG Format = "plot.svg" // plot
)

// DefaultChord is the drawing chord length, in drawing units, used for
// DXF and SVG outlines.
const DefaultChord = 100.0

// ErrUnknownFormat is returned for a format name that is not supported.
var ErrUnknownFormat = errors.New("export: unknown format")

var formats = []Format{FormatJSON, FormatDat, FormatCSV, FormatDXF, FormatSVG, FormatPNG, FormatPlotSVG}

// Formats returns the supported formats.
func Formats() []Format {
	return append([]Format(nil), formats...)
}

// ParseFormat maps a case-insensitive name to a Format. The empty string
// selects JSON.
func ParseFormat(s string) (Format, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return FormatJSON, nil
	}
	for _, f := range formats {
		if string(f) == s {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: %q (choose one of %v)", ErrUnknownFormat, s, formats)
}

// ContentType returns the MIME type served for the format.
func (f Format) ContentType() string {
	switch f {
	case FormatJSON:
		return "application/json"
	case FormatDat:
		return "text/plain; charset=utf-8"
	case FormatCSV:
		return "text/csv; charset=utf-8"
	case FormatDXF:
		return "application/dxf"
	case FormatSVG, FormatPlotSVG:
		return "image/svg+xml"
	case FormatPNG:
		return "image/png"
	}
	return "application/octet-stream"
}

// Extension returns the file extension, including the dot.
func (f Format) Extension() string {
	switch f {
	case FormatPlotSVG:
		return ".svg"
	case "":
		return ""
	}
	return "." + string(f)
}

// Filename builds a download name such as "naca_2412.dat".
func Filename(foil *airfoil.Airfoil, f Format) string {
	base := strings.ToLower(strings.Join(strings.Fields(foil.Name), "_"))
	if base == "" {
		base = "airfoil"
	}
	base = strings.ReplaceAll(base, "-", "_")
	if f == FormatPlotSVG {
		base += "_plot"
	}
	return base + f.Extension()
}

type options struct {
	chord float64
}

// Option configures Write.
type Option func(*options)

// WithChord sets the chord length for DXF and SVG outlines.
func WithChord(c float64) Option {
	return func(o *options) {
		if c > 0 {
			o.chord = c
		}
	}
}

// Write encodes foil to w in format f.
func Write(w io.Writer, foil *airfoil.Airfoil, f Format, opts ...Option) error {
	o := options{chord: DefaultChord}
	for _, opt := range opts {
		opt(&o)
	}

	switch f {
	case FormatJSON:
		return json.NewEncoder(w).Encode(foil)
	case FormatDat:
		return WriteDat(w, foil)
	case FormatCSV:
		return WriteCSV(w, foil)
	case FormatDXF:
		return WriteDXF(w, foil, o.chord)
	case FormatSVG:
		return WriteSVG(w, foil, o.chord)
	case FormatPNG:
		return WritePlot(w, foil, "png")
	case FormatPlotSVG:
		return WritePlot(w, foil, "svg")
	}
	return fmt.Errorf("%w: %q", ErrUnknownFormat, f)
}
