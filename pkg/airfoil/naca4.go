package airfoil

import (
	"fmt"
	"math"
)

// NACA4 generates a 4-digit section with maximum camber m at chord position
// p and thickness ratio t, all as fractions of chord.
//
// m = 0 and p = 0 selects the symmetric section. In every other case p must
// lie strictly inside (0, 1), since both camber parabolas divide by it.
func NACA4(m, p, t float64, opts ...Option) (*Airfoil, error) {
	o := buildOptions(opts)
	if err := o.validate(); err != nil {
		return nil, err
	}
	if err := checkFinite([]string{"m", "p", "t"}, m, p, t); err != nil {
		return nil, err
	}
	symmetric := m == 0 && p == 0
	if !symmetric && !(p > 0 && p < 1) {
		return nil, fmt.Errorf("%w: camber position p must lie in (0, 1) unless m and p are both 0, got p=%g", ErrInvalidParameter, p)
	}

	x := CosineSpacing(o.n)
	yt := Thickness(x, t, o.closedTE)
	yc := make([]float64, len(x))
	dyc := make([]float64, len(x))
	if !symmetric {
		fore := m / (p * p)
		aft := m / ((1 - p) * (1 - p))
		for i, xi := range x {
			if xi < p {
				yc[i] = fore * (2*p*xi - xi*xi)
				dyc[i] = 2 * fore * (p - xi)
			} else {
				yc[i] = aft * ((1 - 2*p) + 2*p*xi - xi*xi)
				dyc[i] = 2 * aft * (p - xi)
			}
		}
	}

	points := offsetSurfaces(x, yt, yc, dyc)
	if err := checkLoop(points); err != nil {
		return nil, err
	}
	return newAirfoil(Family4Digit, naca4Name(m, p, t), points), nil
}

func naca4Name(m, p, t float64) string {
	return fmt.Sprintf("NACA %d%d%02d", int(math.Round(m*100)), int(math.Round(p*10)), int(math.Round(t*100)))
}
