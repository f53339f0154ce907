package design

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/chazu/foilworks/pkg/airfoil"
)

// Defaults applied by the section builder when a field is left unset.
const (
	DefaultChord = 1.0
	DefaultSpan  = 1.0
)

// ErrDuplicateSection is returned when a section name is reused.
var ErrDuplicateSection = errors.New("design: duplicate section name")

// SectionID is a content-addressed identifier for a section.
type SectionID [32]byte

// NewSectionID hashes a canonical description of the section.
func NewSectionID(name, airfoilID string, station, chord, twist, span float64) SectionID {
	key := fmt.Sprintf("section/%s/%s/%g/%g/%g/%g", name, airfoilID, station, chord, twist, span)
	return SectionID(sha256.Sum256([]byte(key)))
}

// IsZero reports whether the ID is unset.
func (id SectionID) IsZero() bool {
	return id == SectionID{}
}

// Short returns the first 6 bytes as hex, for messages.
func (id SectionID) Short() string {
	return hex.EncodeToString(id[:6])
}

func (id SectionID) String() string {
	return hex.EncodeToString(id[:])
}

// MarshalText encodes the ID as lowercase hex.
func (id SectionID) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}

// Section places one airfoil on the wing.
type Section struct {
	ID      SectionID        `json:"id"`
	Name    string           `json:"name"`
	Airfoil *airfoil.Airfoil `json:"-"`
	Station float64          `json:"station"` // spanwise position of the panel root
	Chord   float64          `json:"chord"`
	Twist   float64          `json:"twist"` // degrees, nose up, about the quarter chord
	Span    float64          `json:"span"`  // panel length along z
}

// AirfoilID returns the fingerprint of the placed profile, or "".
func (s *Section) AirfoilID() string {
	if s.Airfoil == nil {
		return ""
	}
	return s.Airfoil.ID
}

// Design is the top-level structure produced by one evaluation. It is
// never mutated after evaluation returns it.
type Design struct {
	Sections  map[SectionID]*Section `json:"-"`
	Order     []SectionID            `json:"order"`
	NameIndex map[string]SectionID   `json:"-"`
	// Airfoils lists every distinct profile generated, in creation order.
	Airfoils []*airfoil.Airfoil `json:"-"`
	foilSeen map[string]bool
}

// New creates an empty Design.
func New() *Design {
	return &Design{
		Sections:  make(map[SectionID]*Section),
		NameIndex: make(map[string]SectionID),
		foilSeen:  make(map[string]bool),
	}
}

// AddAirfoil records a generated profile. Repeats of the same fingerprint
// are ignored.
func (d *Design) AddAirfoil(a *airfoil.Airfoil) {
	if a == nil || d.foilSeen[a.ID] {
		return
	}
	d.foilSeen[a.ID] = true
	d.Airfoils = append(d.Airfoils, a)
}

// AddSection assigns the section its ID and appends it. The section's
// airfoil is recorded too.
func (d *Design) AddSection(s *Section) error {
	if _, exists := d.NameIndex[s.Name]; exists {
		return fmt.Errorf("%w: %q", ErrDuplicateSection, s.Name)
	}
	s.ID = NewSectionID(s.Name, s.AirfoilID(), s.Station, s.Chord, s.Twist, s.Span)
	d.Sections[s.ID] = s
	d.Order = append(d.Order, s.ID)
	d.NameIndex[s.Name] = s.ID
	d.AddAirfoil(s.Airfoil)
	return nil
}

// Lookup returns the section with the given name, or nil.
func (d *Design) Lookup(name string) *Section {
	id, ok := d.NameIndex[name]
	if !ok {
		return nil
	}
	return d.Sections[id]
}

// Get returns the section with the given ID, or nil.
func (d *Design) Get(id SectionID) *Section {
	return d.Sections[id]
}

// Ordered returns the sections in the order they were added.
func (d *Design) Ordered() []*Section {
	out := make([]*Section, 0, len(d.Order))
	for _, id := range d.Order {
		if s := d.Sections[id]; s != nil {
			out = append(out, s)
		}
	}
	return out
}

// SectionCount returns the number of sections.
func (d *Design) SectionCount() int {
	return len(d.Order)
}
