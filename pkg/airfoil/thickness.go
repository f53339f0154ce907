package airfoil

import "math"

// Trailing-edge coefficients of the quartic thickness term.
const (
	closedTECoefficient = 0.1015
	openTECoefficient   = 0.1036
)

// Thickness evaluates the symmetric 4-digit half-thickness distribution
//
//	yt = 5t(0.2969√x - 0.1260x - 0.3516x² + 0.2843x³ - k·x⁴)
//
// at every station in x. The sign and magnitude of t are not checked.
func Thickness(x []float64, t float64, closedTE bool) []float64 {
	k := openTECoefficient
	if closedTE {
		k = closedTECoefficient
	}
	yt := make([]float64, len(x))
	for i, xi := range x {
		x2 := xi * xi
		yt[i] = 5 * t * (0.2969*math.Sqrt(xi) - 0.1260*xi - 0.3516*x2 + 0.2843*x2*xi - k*x2*x2)
	}
	return yt
}
