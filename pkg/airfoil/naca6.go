package airfoil

import (
	"fmt"
	"math"
	"slices"
	"strings"
)

// BaseLibrary supplies stored, chord-normalized 6-series point loops.
type BaseLibrary interface {
	Lookup(key string) ([]Point, bool)
}

var sixSeriesFamilies = []string{"63", "63A", "64", "64A", "65", "65A", "66", "67"}

// SixSeriesFamilies returns the family codes NACA6 accepts.
func SixSeriesFamilies() []string {
	return slices.Clone(sixSeriesFamilies)
}

// BaseKeys returns the library keys tried for a family, in order.
func BaseKeys(family string) []string {
	return []string{family + "010", family + "-010", family + "0010"}
}

// NACA6 returns a symmetric 6-series section of the given family with
// thickness ratio t by linearly scaling the y-coordinates of the first base
// shape lib holds for the family. x-coordinates and the point count are those
// of the base shape. The result is marked Approximate.
//
// Options are accepted for signature parity with the other generators and
// have no effect.
func NACA6(family string, t float64, lib BaseLibrary, opts ...Option) (*Airfoil, error) {
	if !slices.Contains(sixSeriesFamilies, family) {
		return nil, fmt.Errorf("%w: %q (choose one of %v)", ErrUnknownFamily, family, sixSeriesFamilies)
	}
	if err := checkFinite([]string{"t"}, t); err != nil {
		return nil, err
	}

	keys := BaseKeys(family)
	var base []Point
	found := false
	if lib != nil {
		for _, key := range keys {
			if base, found = lib.Lookup(key); found {
				break
			}
		}
	}
	if !found {
		return nil, fmt.Errorf("%w: no base shape found for %s, add coordinates under one of %s",
			ErrBaseShapeMissing, family, strings.Join(keys, ", "))
	}

	scale := 1.0
	if baseT := NominalThickness(base); baseT > 0 {
		scale = t / baseT
	}
	points := make([]Point, len(base))
	for i, p := range base {
		points[i] = Point{X: p.X, Y: p.Y * scale}
	}
	if err := checkLoop(points); err != nil {
		return nil, err
	}

	a := newAirfoil(Family6Series, naca6Name(family, t), points)
	a.Approximate = true
	return a, nil
}

// NominalThickness returns max y minus min y over the loop, or 0 for an
// empty loop.
func NominalThickness(points []Point) float64 {
	if len(points) == 0 {
		return 0
	}
	minY, maxY := points[0].Y, points[0].Y
	for _, p := range points[1:] {
		minY = math.Min(minY, p.Y)
		maxY = math.Max(maxY, p.Y)
	}
	return maxY - minY
}

func naca6Name(family string, t float64) string {
	sep := "-"
	if strings.HasSuffix(family, "A") {
		sep = ""
	}
	return fmt.Sprintf("NACA %s%s0%02d", family, sep, int(math.Round(t*100)))
}
