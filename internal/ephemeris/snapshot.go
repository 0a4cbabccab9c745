package ephemeris

import (
	"time"
)

// Element is one of the four classical element buckets.
type Element string

const (
	ElementFire  Element = "fire"
	ElementEarth Element = "earth"
	ElementAir   Element = "air"
	ElementWater Element = "water"
)

// Modality is one of the three quality buckets.
type Modality string

const (
	ModalityCardinal Modality = "cardinal"
	ModalityFixed    Modality = "fixed"
	ModalityMutable  Modality = "mutable"
)

// AspectType names an angular relationship between two bodies.
type AspectType string

const (
	AspectConjunction AspectType = "conjunction"
	AspectOpposition  AspectType = "opposition"
	AspectTrine       AspectType = "trine"
	AspectSquare      AspectType = "square"
	AspectSextile     AspectType = "sextile"
	AspectQuintile    AspectType = "quintile"
	AspectQuincunx    AspectType = "quincunx"
	AspectSemisextile AspectType = "semisextile"
	AspectBiQuintile  AspectType = "bi-quintile"
)

// ElementDist holds the percentage of bodies in each element, 0-100 per bucket.
type ElementDist struct {
	Fire  float64 `json:"fire" yaml:"fire"`
	Earth float64 `json:"earth" yaml:"earth"`
	Air   float64 `json:"air" yaml:"air"`
	Water float64 `json:"water" yaml:"water"`
}

// ModalityDist holds the percentage of bodies in each modality, 0-100 per bucket.
type ModalityDist struct {
	Cardinal float64 `json:"cardinal" yaml:"cardinal"`
	Fixed    float64 `json:"fixed" yaml:"fixed"`
	Mutable  float64 `json:"mutable" yaml:"mutable"`
}

// Aspect is a single angular relationship with its orb (deviation in degrees
// from the exact angle).
type Aspect struct {
	Type       AspectType `json:"type"`
	BodyA      string     `json:"body_a,omitempty"`
	BodyB      string     `json:"body_b,omitempty"`
	OrbDegrees float64    `json:"orb_degrees"`
}

// DominantBodies ranks the bodies with outsized influence for a snapshot.
// All is ordered most dominant first; Primary and Secondary name the top two.
type DominantBodies struct {
	All       []string `json:"all"`
	Primary   string   `json:"primary"`
	Secondary string   `json:"secondary"`
}

// Snapshot is the normalized celestial state for one reference date.
//
// Upstream providers are allowed to omit any field: nil pointers and nil
// slices mean "not supplied" and trigger the scorers' documented fallbacks.
type Snapshot struct {
	Date              time.Time         `json:"date"`
	Elements          *ElementDist      `json:"elements,omitempty"`
	Modalities        *ModalityDist     `json:"modalities,omitempty"`
	Dominant          *DominantBodies   `json:"dominant_bodies,omitempty"`
	CyclicalPhase     *float64          `json:"cyclical_phase,omitempty"`
	Aspects           []Aspect          `json:"aspects,omitempty"`
	Signs             map[string]string `json:"signs,omitempty"`
	MercuryRetrograde bool              `json:"mercury_retrograde"`
}

// Phase returns the cyclical phase and whether it was supplied and usable.
func (s *Snapshot) Phase() (float64, bool) {
	if s == nil || s.CyclicalPhase == nil {
		return 0, false
	}
	p := *s.CyclicalPhase
	if p != p || p < 0 || p > 1 { // NaN or out of range
		return 0, false
	}
	return p, true
}
