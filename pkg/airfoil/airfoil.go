package airfoil

import (
	"encoding/json"
	"fmt"
)

// DefaultPoints is the chordwise sample count used when none is given.
const DefaultPoints = 200

// Family identifies the NACA family a loop was generated from.
type Family string

const (
	Family4Digit  Family = "naca4"
	Family5Digit  Family = "naca5"
	Family6Series Family = "naca6"
)

// Point is a chord-normalized coordinate. It encodes to JSON as [x, y].
type Point struct {
	X, Y float64
}

func (p Point) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]float64{p.X, p.Y})
}

func (p *Point) UnmarshalJSON(b []byte) error {
	var xy [2]float64
	if err := json.Unmarshal(b, &xy); err != nil {
		return fmt.Errorf("point: %w", err)
	}
	p.X, p.Y = xy[0], xy[1]
	return nil
}

// Airfoil is a generated point loop and its fingerprint.
type Airfoil struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Family Family  `json:"family"`
	Points []Point `json:"points"`

	// Approximate is set when the shape was derived by scaling a stored
	// base section rather than evaluated from the family's equations.
	Approximate bool `json:"approximate,omitempty"`
}

func newAirfoil(family Family, name string, points []Point) *Airfoil {
	return &Airfoil{
		ID:     Fingerprint(points),
		Name:   name,
		Family: family,
		Points: points,
	}
}

// Option configures a generator.
type Option func(*options)

type options struct {
	n        int
	closedTE bool
}

// WithPoints sets the number of chordwise stations. The resulting loop has
// 2n-1 points for the 4- and 5-digit families.
func WithPoints(n int) Option {
	return func(o *options) { o.n = n }
}

// WithClosedTE selects the trailing-edge coefficient of the thickness
// polynomial.
func WithClosedTE(closed bool) Option {
	return func(o *options) { o.closedTE = closed }
}

func buildOptions(opts []Option) options {
	o := options{n: DefaultPoints, closedTE: true}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

func (o options) validate() error {
	if o.n < 2 {
		return fmt.Errorf("%w: point count must be at least 2, got %d", ErrInvalidParameter, o.n)
	}
	return nil
}
