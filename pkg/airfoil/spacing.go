package airfoil

import "math"

// CosineSpacing returns n chordwise stations on [0, 1] computed as
// (1 - cos β)/2 for β evenly spaced over [0, π]. Stations cluster near the
// leading and trailing edges. n must be at least 2.
func CosineSpacing(n int) []float64 {
	x := make([]float64, n)
	step := math.Pi / float64(n-1)
	for i := range x {
		beta := float64(i) * step
		if i == n-1 {
			beta = math.Pi
		}
		x[i] = (1 - math.Cos(beta)) / 2
	}
	return x
}
