// Package naca6 holds the stored base sections the symmetric 6-series
// generator scales. A Library is built once from configuration input and is
// read-only afterwards, so it can be shared across requests without locking.
package naca6

import (
	"errors"
	"fmt"
	"math"
	"slices"

	"github.com/chazu/foilworks/pkg/airfoil"
)

var (
	// ErrMalformedShape indicates a stored loop that cannot serve as a base
	// section.
	ErrMalformedShape = errors.New("naca6: malformed base shape")
	// ErrDuplicateKey indicates two sources defining the same key.
	ErrDuplicateKey = errors.New("naca6: duplicate base shape key")
)

// minPoints is the smallest loop that encloses an area.
const minPoints = 3

// Library maps keys such as "63A010" to chord-normalized point loops.
type Library struct {
	shapes map[string][]airfoil.Point
}

var _ airfoil.BaseLibrary = (*Library)(nil)

// New validates and copies shapes into a Library. Every loop needs at least
// three finite points and a positive nominal thickness.
func New(shapes map[string][]airfoil.Point) (*Library, error) {
	l := &Library{shapes: make(map[string][]airfoil.Point, len(shapes))}
	for key, pts := range shapes {
		if err := validateShape(pts); err != nil {
			return nil, fmt.Errorf("%w %q: %v", ErrMalformedShape, key, err)
		}
		l.shapes[key] = slices.Clone(pts)
	}
	return l, nil
}

// Empty returns a library with no entries. Every 6-series request against it
// fails with airfoil.ErrBaseShapeMissing.
func Empty() *Library {
	return &Library{shapes: map[string][]airfoil.Point{}}
}

// Lookup returns a copy of the loop stored under key.
func (l *Library) Lookup(key string) ([]airfoil.Point, bool) {
	if l == nil {
		return nil, false
	}
	pts, ok := l.shapes[key]
	if !ok {
		return nil, false
	}
	return slices.Clone(pts), true
}

// Keys returns the stored keys in sorted order.
func (l *Library) Keys() []string {
	if l == nil {
		return nil
	}
	keys := make([]string, 0, len(l.shapes))
	for k := range l.shapes {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// Len returns the number of stored shapes.
func (l *Library) Len() int {
	if l == nil {
		return 0
	}
	return len(l.shapes)
}

func validateShape(pts []airfoil.Point) error {
	if len(pts) < minPoints {
		return fmt.Errorf("need at least %d points, got %d", minPoints, len(pts))
	}
	for i, p := range pts {
		if math.IsNaN(p.X) || math.IsInf(p.X, 0) || math.IsNaN(p.Y) || math.IsInf(p.Y, 0) {
			return fmt.Errorf("point %d is not finite", i)
		}
	}
	if t := airfoil.NominalThickness(pts); t <= 0 {
		return fmt.Errorf("nominal thickness %g is not positive", t)
	}
	return nil
}
