package airfoil

import (
	"math"

	"github.com/samber/lo"
)

// offsetSurfaces lays the half-thickness yt perpendicular to the camber line
// (yc, dyc) and returns the assembled loop.
func offsetSurfaces(x, yt, yc, dyc []float64) []Point {
	upper := make([]Point, len(x))
	lower := make([]Point, len(x))
	for i := range x {
		theta := math.Atan(dyc[i])
		sin, cos := math.Sin(theta), math.Cos(theta)
		upper[i] = Point{X: x[i] - yt[i]*sin, Y: yc[i] + yt[i]*cos}
		lower[i] = Point{X: x[i] + yt[i]*sin, Y: yc[i] - yt[i]*cos}
	}
	return assembleLoop(upper, lower)
}

// assembleLoop joins the upper surface, reversed to run trailing edge to
// leading edge, with the lower surface minus its leading-edge point.
// upper is reversed in place.
func assembleLoop(upper, lower []Point) []Point {
	loop := make([]Point, 0, len(upper)+len(lower)-1)
	loop = append(loop, lo.Reverse(upper)...)
	return append(loop, lower[1:]...)
}
