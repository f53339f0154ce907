package airfoil

import (
	"math"
	"slices"
)

// leadingEdgeIndex returns the index of the first point with minimum x.
func (a *Airfoil) leadingEdgeIndex() int {
	le := 0
	for i, p := range a.Points {
		if p.X < a.Points[le].X {
			le = i
		}
	}
	return le
}

// LeadingEdge returns the point with minimum x.
func (a *Airfoil) LeadingEdge() Point {
	if len(a.Points) == 0 {
		return Point{}
	}
	return a.Points[a.leadingEdgeIndex()]
}

// Surfaces splits the loop at the leading edge. Both returned surfaces run
// from the leading edge towards the trailing edge and share the
// leading-edge point.
func (a *Airfoil) Surfaces() (upper, lower []Point) {
	if len(a.Points) == 0 {
		return nil, nil
	}
	le := a.leadingEdgeIndex()
	upper = slices.Clone(a.Points[:le+1])
	slices.Reverse(upper)
	lower = slices.Clone(a.Points[le:])
	return upper, lower
}

// MaxThickness returns the chord station and value of the largest vertical
// distance between the upper and lower surfaces, measured at the upper
// surface points.
func (a *Airfoil) MaxThickness() (x, thickness float64) {
	upper, lower := a.Surfaces()
	for _, u := range upper {
		yl, ok := interpolateY(lower, u.X)
		if !ok {
			continue
		}
		if d := u.Y - yl; d > thickness {
			x, thickness = u.X, d
		}
	}
	return x, thickness
}

// Bounds returns the componentwise minimum and maximum of the loop.
func (a *Airfoil) Bounds() (min, max Point) {
	if len(a.Points) == 0 {
		return Point{}, Point{}
	}
	min, max = a.Points[0], a.Points[0]
	for _, p := range a.Points[1:] {
		min.X, min.Y = math.Min(min.X, p.X), math.Min(min.Y, p.Y)
		max.X, max.Y = math.Max(max.X, p.X), math.Max(max.Y, p.Y)
	}
	return min, max
}

// interpolateY linearly interpolates y at x on the first segment of the
// polyline that spans x.
func interpolateY(line []Point, x float64) (float64, bool) {
	for i := 0; i+1 < len(line); i++ {
		a, b := line[i], line[i+1]
		if (x < a.X || x > b.X) && (x < b.X || x > a.X) {
			continue
		}
		if a.X == b.X {
			return a.Y, true
		}
		return a.Y + (b.Y-a.Y)*(x-a.X)/(b.X-a.X), true
	}
	return 0, false
}
