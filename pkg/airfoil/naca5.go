package airfoil

import (
	"fmt"
	"math"
	"slices"
)

// meanLine holds the standard 5-digit mean-line constants for a design lift
// coefficient of 0.3.
type meanLine struct {
	m  float64 // chordwise end of the cubic segment
	k1 float64
}

// fiveDigitPositions lists the supported camber positions (mean lines 210
// through 250) in designation order.
var fiveDigitPositions = []float64{0.05, 0.10, 0.15, 0.20, 0.25}

var fiveDigitMeanLines = map[float64]meanLine{
	0.05: {m: 0.0580, k1: 361.4},
	0.10: {m: 0.1260, k1: 51.64},
	0.15: {m: 0.2025, k1: 15.957},
	0.20: {m: 0.2900, k1: 6.643},
	0.25: {m: 0.3910, k1: 3.230},
}

// FiveDigitPositions returns the camber positions NACA5 accepts.
func FiveDigitPositions() []float64 {
	return slices.Clone(fiveDigitPositions)
}

// NACA5 generates a standard 5-digit section whose maximum camber sits at
// pPos (one of FiveDigitPositions) with thickness ratio t.
func NACA5(pPos, t float64, opts ...Option) (*Airfoil, error) {
	ml, ok := fiveDigitMeanLines[pPos]
	if !ok {
		return nil, fmt.Errorf("%w: %g (choose one of %v)", ErrUnsupportedCamberPosition, pPos, fiveDigitPositions)
	}
	o := buildOptions(opts)
	if err := o.validate(); err != nil {
		return nil, err
	}
	if err := checkFinite([]string{"t"}, t); err != nil {
		return nil, err
	}

	m, k := ml.m, ml.k1/6
	x := CosineSpacing(o.n)
	yt := Thickness(x, t, o.closedTE)
	yc := make([]float64, len(x))
	dyc := make([]float64, len(x))
	for i, xi := range x {
		if xi < m {
			yc[i] = k * (xi*xi*xi - 3*m*xi*xi + m*m*(3-m)*xi)
			dyc[i] = k * (3*xi*xi - 6*m*xi + m*m*(3-m))
		} else {
			yc[i] = k * m * m * m * (1 - xi)
			dyc[i] = -k * m * m * m
		}
	}

	points := offsetSurfaces(x, yt, yc, dyc)
	if err := checkLoop(points); err != nil {
		return nil, err
	}
	return newAirfoil(Family5Digit, naca5Name(pPos, t), points), nil
}

func naca5Name(pPos, t float64) string {
	return fmt.Sprintf("NACA 2%d0%02d", slices.Index(fiveDigitPositions, pPos)+1, int(math.Round(t*100)))
}
