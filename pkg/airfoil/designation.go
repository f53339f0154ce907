package airfoil

import (
	"fmt"
	"regexp"
	"slices"
	"strconv"
	"strings"
)

// Designation is a parsed NACA designation such as "2412", "23012" or
// "63A012". Only the fields of its Family are meaningful.
type Designation struct {
	Family Family

	// 4-digit
	M, P float64

	// 5-digit camber position, one of FiveDigitPositions.
	CamberPosition float64

	// 6-series family code, one of SixSeriesFamilies.
	Series string

	// Thickness ratio, all families.
	T float64
}

var (
	fourDigitPattern = regexp.MustCompile(`^(\d)(\d)(\d{2})$`)
	fiveDigitPattern = regexp.MustCompile(`^2([1-5])0(\d{2})$`)
	sixSeriesPattern = regexp.MustCompile(`^(6[3-7]A?)-?(\d)(\d{2})$`)
)

// ParseDesignation parses a designation with or without a "NACA" prefix.
// Supported forms are 4-digit sections, 5-digit sections on the standard
// mean lines 210 to 250, and symmetric 6-series sections such as "63-012" or
// "64A010".
func ParseDesignation(s string) (Designation, error) {
	code := strings.ToUpper(strings.Join(strings.Fields(s), ""))
	code = strings.TrimPrefix(code, "NACA")
	code = strings.TrimPrefix(code, "-")

	if m := fourDigitPattern.FindStringSubmatch(code); m != nil {
		return Designation{
			Family: Family4Digit,
			M:      float64(atoi(m[1])) / 100,
			P:      float64(atoi(m[2])) / 10,
			T:      float64(atoi(m[3])) / 100,
		}, nil
	}
	if m := fiveDigitPattern.FindStringSubmatch(code); m != nil {
		return Designation{
			Family:         Family5Digit,
			CamberPosition: fiveDigitPositions[atoi(m[1])-1],
			T:              float64(atoi(m[2])) / 100,
		}, nil
	}
	if m := sixSeriesPattern.FindStringSubmatch(code); m != nil {
		if m[2] != "0" {
			return Designation{}, fmt.Errorf("%w: %q is a cambered 6-series section, only symmetric sections are supported", ErrInvalidParameter, s)
		}
		if !slices.Contains(sixSeriesFamilies, m[1]) {
			return Designation{}, fmt.Errorf("%w: %q (choose one of %v)", ErrUnknownFamily, m[1], sixSeriesFamilies)
		}
		return Designation{
			Family: Family6Series,
			Series: m[1],
			T:      float64(atoi(m[3])) / 100,
		}, nil
	}
	return Designation{}, fmt.Errorf("%w: unrecognised designation %q (expected forms like 2412, 23012 or 63A012)", ErrInvalidParameter, s)
}

// String returns the canonical designation, e.g. "NACA 2412".
func (d Designation) String() string {
	switch d.Family {
	case Family4Digit:
		return naca4Name(d.M, d.P, d.T)
	case Family5Digit:
		return naca5Name(d.CamberPosition, d.T)
	case Family6Series:
		return naca6Name(d.Series, d.T)
	}
	return "NACA ?"
}

// Generate runs the generator matching the designation's family. lib is only
// consulted for 6-series designations and may be nil otherwise.
func Generate(d Designation, lib BaseLibrary, opts ...Option) (*Airfoil, error) {
	switch d.Family {
	case Family4Digit:
		return NACA4(d.M, d.P, d.T, opts...)
	case Family5Digit:
		return NACA5(d.CamberPosition, d.T, opts...)
	case Family6Series:
		return NACA6(d.Series, d.T, lib, opts...)
	}
	return nil, fmt.Errorf("%w: unknown family %q", ErrInvalidParameter, d.Family)
}

// atoi is only called on regexp-matched digit runs.
func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}
