package airfoil

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrInvalidParameter indicates a numeric input outside the range a
	// generator can evaluate (for example a degenerate camber position).
	ErrInvalidParameter = errors.New("airfoil: invalid parameter")
	// ErrUnsupportedCamberPosition indicates a 5-digit camber position that
	// is not one of the standard mean lines.
	ErrUnsupportedCamberPosition = errors.New("airfoil: unsupported camber position")
	// ErrUnknownFamily indicates a 6-series family code outside the
	// supported set.
	ErrUnknownFamily = errors.New("airfoil: unknown 6-series family")
	// ErrBaseShapeMissing indicates that no stored base shape exists for a
	// 6-series family.
	ErrBaseShapeMissing = errors.New("airfoil: base shape missing")
)

// IsValidation reports whether err is an input error the caller can fix by
// adjusting parameters. A missing base shape is not a validation error: the
// input is well formed but the dataset is incomplete.
func IsValidation(err error) bool {
	return errors.Is(err, ErrInvalidParameter) ||
		errors.Is(err, ErrUnsupportedCamberPosition) ||
		errors.Is(err, ErrUnknownFamily)
}

// checkFinite rejects NaN and infinite generator inputs. names and values
// pair up by position.
func checkFinite(names []string, values ...float64) error {
	for i, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: %s must be finite, got %g", ErrInvalidParameter, names[i], v)
		}
	}
	return nil
}

// checkLoop rejects a loop whose coordinates overflowed, which happens for
// finite but absurd inputs such as t=1e308.
func checkLoop(points []Point) error {
	for i, p := range points {
		if math.IsNaN(p.X) || math.IsInf(p.X, 0) || math.IsNaN(p.Y) || math.IsInf(p.Y, 0) {
			return fmt.Errorf("%w: coordinates overflow at point %d (%g, %g)", ErrInvalidParameter, i, p.X, p.Y)
		}
	}
	return nil
}
