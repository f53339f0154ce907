package design

import (
	"fmt"
	"math"
	"sort"
)

// MaxTwist is the twist magnitude in degrees above which a warning is raised.
const MaxTwist = 20.0

// Severity indicates whether a finding blocks tessellation or is
// merely informational.
type Severity int

const (
	SeverityError   Severity = iota // blocks tessellation
	SeverityWarning                 // informational
)

func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	default:
		return fmt.Sprintf("Severity(%d)", int(s))
	}
}

// Finding describes a single validation result.
type Finding struct {
	Section  string   // section name ("" if design-level)
	Message  string
	Severity Severity
}

func (f Finding) Error() string {
	if f.Section == "" {
		return fmt.Sprintf("[%s] %s", f.Severity, f.Message)
	}
	return fmt.Sprintf("[%s] section %q: %s", f.Severity, f.Section, f.Message)
}

// Validate checks every section and returns errors and warnings
// separately. It never mutates the design.
func Validate(d *Design) (errs, warnings []Finding) {
	for _, s := range d.Ordered() {
		for _, f := range validateSection(s) {
			if f.Severity == SeverityError {
				errs = append(errs, f)
			} else {
				warnings = append(warnings, f)
			}
		}
	}
	warnings = append(warnings, validateOverlap(d)...)
	return errs, warnings
}

func validateSection(s *Section) []Finding {
	var out []Finding
	bad := func(format string, args ...any) {
		out = append(out, Finding{Section: s.Name, Message: fmt.Sprintf(format, args...), Severity: SeverityError})
	}
	if s.Name == "" {
		bad("section has no name")
	}
	if s.Airfoil == nil || len(s.Airfoil.Points) < 3 {
		bad("section has no usable airfoil")
	}
	if !(s.Chord > 0) || math.IsInf(s.Chord, 0) {
		bad("chord must be positive, got %g", s.Chord)
	}
	if !(s.Span > 0) || math.IsInf(s.Span, 0) {
		bad("span must be positive, got %g", s.Span)
	}
	if math.IsNaN(s.Station) || math.IsInf(s.Station, 0) {
		bad("station must be finite, got %g", s.Station)
	}
	if math.IsNaN(s.Twist) {
		bad("twist must be finite")
	} else if math.Abs(s.Twist) > MaxTwist {
		out = append(out, Finding{
			Section:  s.Name,
			Message:  fmt.Sprintf("twist %g exceeds %g degrees", s.Twist, MaxTwist),
			Severity: SeverityWarning,
		})
	}
	return out
}

// validateOverlap warns when two panels share part of the span.
func validateOverlap(d *Design) []Finding {
	sections := d.Ordered()
	sort.SliceStable(sections, func(i, j int) bool {
		return sections[i].Station < sections[j].Station
	})
	var out []Finding
	for i := 1; i < len(sections); i++ {
		prev, cur := sections[i-1], sections[i]
		if cur.Station < prev.Station+prev.Span-1e-9 {
			out = append(out, Finding{
				Section:  cur.Name,
				Message:  fmt.Sprintf("panel overlaps %q between stations %g and %g", prev.Name, cur.Station, prev.Station+prev.Span),
				Severity: SeverityWarning,
			})
		}
	}
	return out
}
