package ephemeris

import (
	"context"
	"math"
	"sort"
	"time"
)

// Classical body names used throughout the snapshot.
const (
	BodySun     = "sun"
	BodyMoon    = "moon"
	BodyMercury = "mercury"
	BodyVenus   = "venus"
	BodyMars    = "mars"
	BodyJupiter = "jupiter"
	BodySaturn  = "saturn"
)

var classicalBodies = []string{
	BodySun, BodyMoon, BodyMercury, BodyVenus, BodyMars, BodyJupiter, BodySaturn,
}

var zodiacSigns = []string{
	"aries", "taurus", "gemini", "cancer",
	"leo", "virgo", "libra", "scorpio",
	"sagittarius", "capricorn", "aquarius", "pisces",
}

// Element and modality membership by sign index (aries=0 ... pisces=11).
var signElements = []Element{
	ElementFire, ElementEarth, ElementAir, ElementWater,
	ElementFire, ElementEarth, ElementAir, ElementWater,
	ElementFire, ElementEarth, ElementAir, ElementWater,
}

var signModalities = []Modality{
	ModalityCardinal, ModalityFixed, ModalityMutable,
	ModalityCardinal, ModalityFixed, ModalityMutable,
	ModalityCardinal, ModalityFixed, ModalityMutable,
	ModalityCardinal, ModalityFixed, ModalityMutable,
}

// Aspect orbs in degrees, matching the upstream ephemeris generator.
var aspectOrbs = []struct {
	typ   AspectType
	angle float64
	orb   float64
}{
	{AspectConjunction, 0, 8.0},
	{AspectOpposition, 180, 8.0},
	{AspectTrine, 120, 8.0},
	{AspectSquare, 90, 7.0},
	{AspectSextile, 60, 6.0},
}

// ApproxProvider computes snapshots from low-precision orbital series. The
// series are adequate for sign bucketing, phase fractions, and aspect
// detection, which is all the scorers consume; it is not an observatory-grade
// ephemeris.
type ApproxProvider struct{}

// NewApproxProvider returns the built-in astronomical approximation provider.
func NewApproxProvider() *ApproxProvider {
	return &ApproxProvider{}
}

func (p *ApproxProvider) Snapshot(_ context.Context, referenceDate time.Time) (*Snapshot, error) {
	lons := bodyLongitudes(referenceDate)

	phase := moonPhase(lons[BodySun], lons[BodyMoon])
	signs := make(map[string]string, len(lons))
	for body, lon := range lons {
		signs[body] = zodiacSign(lon)
	}

	snap := &Snapshot{
		Date:              referenceDate,
		Elements:          elementDistribution(lons),
		Modalities:        modalityDistribution(lons),
		CyclicalPhase:     &phase,
		Aspects:           detectAspects(lons),
		Signs:             signs,
		MercuryRetrograde: mercuryRetrograde(referenceDate),
	}
	snap.Dominant = rankDominant(snap.Aspects)

	return Normalize(snap), nil
}

// julianDay converts a civil date to a Julian day number at 0h UT.
func julianDay(t time.Time) float64 {
	t = t.UTC()
	y, m, d := t.Year(), int(t.Month()), t.Day()
	if m <= 2 {
		y--
		m += 12
	}
	a := y / 100
	b := 2 - a + a/4
	return math.Floor(365.25*float64(y+4716)) +
		math.Floor(30.6001*float64(m+1)) +
		float64(d) + float64(b) - 1524.5
}

// bodyLongitudes returns approximate geocentric ecliptic longitudes in
// degrees for the seven classical bodies.
func bodyLongitudes(t time.Time) map[string]float64 {
	n := julianDay(t) - 2451545.0 // days since J2000.0

	sun := sunLongitude(n)
	lons := map[string]float64{
		BodySun:  sun,
		BodyMoon: moonLongitude(n),
		// Inner planets never stray far from the Sun; model their geocentric
		// longitude as the Sun plus a synodic elongation swing.
		BodyMercury: norm360(sun + 22.0*math.Sin(2*math.Pi*n/115.88)),
		BodyVenus:   norm360(sun + 46.0*math.Sin(2*math.Pi*n/583.92)),
		// Outer planets move slowly enough that mean heliocentric longitude
		// places them in the right sign most of the time.
		BodyMars:    norm360(355.45332 + 0.52402068*n),
		BodyJupiter: norm360(34.40438 + 0.08308529*n),
		BodySaturn:  norm360(49.94432 + 0.03344414*n),
	}
	return lons
}

// sunLongitude is the standard low-precision solar longitude series.
func sunLongitude(n float64) float64 {
	l := norm360(280.460 + 0.9856474*n)
	g := deg2rad(norm360(357.528 + 0.9856003*n))
	return norm360(l + 1.915*math.Sin(g) + 0.020*math.Sin(2*g))
}

// moonLongitude is a two-term lunar longitude series.
func moonLongitude(n float64) float64 {
	l := norm360(218.316 + 13.176396*n)
	m := deg2rad(norm360(134.963 + 13.064993*n))
	return norm360(l + 6.289*math.Sin(m))
}

// moonPhase maps the Sun-Moon elongation onto [0,1): 0 new moon, 0.5 full.
func moonPhase(sunLon, moonLon float64) float64 {
	return norm360(moonLon-sunLon) / 360.0
}

func zodiacSign(lon float64) string {
	return zodiacSigns[int(norm360(lon)/30)%12]
}

// mercuryRetrograde reports whether the modeled Mercury longitude is
// decreasing across the reference date.
func mercuryRetrograde(t time.Time) bool {
	today := bodyLongitudes(t)[BodyMercury]
	tomorrow := bodyLongitudes(t.AddDate(0, 0, 1))[BodyMercury]
	// Signed forward motion, unwrapped across 0/360.
	delta := math.Mod(tomorrow-today+540, 360) - 180
	return delta < 0
}

func elementDistribution(lons map[string]float64) *ElementDist {
	counts := map[Element]int{}
	for _, body := range classicalBodies {
		idx := int(norm360(lons[body])/30) % 12
		counts[signElements[idx]]++
	}
	total := float64(len(classicalBodies))
	return &ElementDist{
		Fire:  100 * float64(counts[ElementFire]) / total,
		Earth: 100 * float64(counts[ElementEarth]) / total,
		Air:   100 * float64(counts[ElementAir]) / total,
		Water: 100 * float64(counts[ElementWater]) / total,
	}
}

func modalityDistribution(lons map[string]float64) *ModalityDist {
	counts := map[Modality]int{}
	for _, body := range classicalBodies {
		idx := int(norm360(lons[body])/30) % 12
		counts[signModalities[idx]]++
	}
	total := float64(len(classicalBodies))
	return &ModalityDist{
		Cardinal: 100 * float64(counts[ModalityCardinal]) / total,
		Fixed:    100 * float64(counts[ModalityFixed]) / total,
		Mutable:  100 * float64(counts[ModalityMutable]) / total,
	}
}

// detectAspects checks every body pair against the orb table. The recorded
// orb is the deviation from the exact angle, not the raw separation.
func detectAspects(lons map[string]float64) []Aspect {
	var aspects []Aspect
	for i := 0; i < len(classicalBodies); i++ {
		for j := i + 1; j < len(classicalBodies); j++ {
			a, b := classicalBodies[i], classicalBodies[j]
			sep := angularSeparation(lons[a], lons[b])
			for _, def := range aspectOrbs {
				orb := math.Abs(sep - def.angle)
				if orb < def.orb {
					aspects = append(aspects, Aspect{
						Type:       def.typ,
						BodyA:      a,
						BodyB:      b,
						OrbDegrees: orb,
					})
					break
				}
			}
		}
	}
	return aspects
}

// rankDominant orders bodies by aspect participation, tighter orbs counting
// for more, and names the top two primary and secondary.
func rankDominant(aspects []Aspect) *DominantBodies {
	prominence := make(map[string]float64, len(classicalBodies))
	for _, a := range aspects {
		w := 1.0 + (10.0-math.Min(a.OrbDegrees, 10.0))/10.0
		prominence[a.BodyA] += w
		prominence[a.BodyB] += w
	}

	all := make([]string, len(classicalBodies))
	copy(all, classicalBodies)
	sort.SliceStable(all, func(i, j int) bool {
		return prominence[all[i]] > prominence[all[j]]
	})

	d := &DominantBodies{All: all, Primary: all[0]}
	if len(all) > 1 {
		d.Secondary = all[1]
	}
	return d
}

func angularSeparation(a, b float64) float64 {
	return math.Abs(math.Mod(a-b+540, 360) - 180)
}

func norm360(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	return deg
}

func deg2rad(deg float64) float64 {
	return deg * math.Pi / 180
}
