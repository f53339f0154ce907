// Package reynolds computes chord Reynolds numbers.
package reynolds

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingViscosity indicates that neither the kinematic viscosity nor
	// the density and dynamic viscosity pair was supplied.
	ErrMissingViscosity = errors.New("reynolds: provide either nu, or rho and mu")
	// ErrZeroViscosity indicates a viscosity of zero.
	ErrZeroViscosity = errors.New("reynolds: viscosity must be non-zero")
)

// Input holds the flow quantities. Optional fields are nil when absent.
type Input struct {
	V   float64  `json:"V"`             // velocity [m/s]
	C   float64  `json:"c"`             // chord [m]
	Rho *float64 `json:"rho,omitempty"` // density [kg/m^3]
	Mu  *float64 `json:"mu,omitempty"`  // dynamic viscosity [Pa·s]
	Nu  *float64 `json:"nu,omitempty"`  // kinematic viscosity [m^2/s]
}

// Compute returns V·c/ν when ν is given, otherwise ρ·V·c/μ when both ρ and μ
// are given. ν wins when both input sets are present.
func Compute(in Input) (float64, error) {
	switch {
	case in.Nu != nil:
		if *in.Nu == 0 {
			return 0, fmt.Errorf("%w: nu", ErrZeroViscosity)
		}
		return in.V * in.C / *in.Nu, nil
	case in.Rho != nil && in.Mu != nil:
		if *in.Mu == 0 {
			return 0, fmt.Errorf("%w: mu", ErrZeroViscosity)
		}
		return *in.Rho * in.V * in.C / *in.Mu, nil
	}
	return 0, ErrMissingViscosity
}

// Float returns a pointer to v, for filling optional Input fields.
func Float(v float64) *float64 {
	return &v
}
