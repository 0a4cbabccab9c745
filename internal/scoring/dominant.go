package scoring

import (
	"math"
	"time"

	"github.com/astrorank/astrorank/internal/ephemeris"
)

// dominantScore rates the emphasis of the snapshot's dominant bodies. Each
// ranked body contributes its table weight raised to a fixed exponent, with
// bonuses for the primary and secondary slots; aspects add a capped bonus
// modulated by a 30-day cycle, and the whole total breathes with the season
// before normalization.
func dominantScore(snap *ephemeris.Snapshot, referenceDate time.Time, w WeightVector, cfg *Config) (float64, float64) {
	if snap == nil || snap.Dominant == nil || len(snap.Dominant.All) == 0 {
		return w.DominantBody * 0.5, 0.5
	}

	total := 0.0
	for _, body := range snap.Dominant.All {
		bw, ok := cfg.BodyWeights[body]
		if !ok {
			bw = cfg.DefaultBodyWeight
		}
		base := math.Pow(bw, cfg.BodyExponent) * cfg.BodyScale
		total += base
		if body == snap.Dominant.Primary {
			total += cfg.PrimaryBonus * base
		}
		if body == snap.Dominant.Secondary {
			total += cfg.SecondaryBonus * base
		}
	}

	total += aspectBonus(snap.Aspects, referenceDate.YearDay(), cfg)

	seasonMultiplier := 0.6 + 0.8*seasonFactor(referenceDate.Month())
	total *= seasonMultiplier

	normalized := clamp01(total / 40)
	return w.DominantBody * normalized, normalized
}

// aspectBonus sums per-aspect emphasis scores, discounted by orb width and a
// 30-day sinusoidal cycle, and caps the result so a pile-up of tight aspects
// cannot dominate the body total.
func aspectBonus(aspects []ephemeris.Aspect, dayOfYear int, cfg *Config) float64 {
	if len(aspects) == 0 {
		return 0
	}

	cycle := 0.8 + 0.2*math.Sin(2*math.Pi*float64(dayOfYear%30)/30)

	bonus := 0.0
	for _, a := range aspects {
		base, ok := cfg.AspectEmphasis[string(a.Type)]
		if !ok {
			base = cfg.UnknownAspectEmphasis
		}
		orbPenalty := 1 - math.Min(a.OrbDegrees, 10)/20
		bonus += base * orbPenalty * cycle
	}

	return math.Min(bonus, cfg.AspectBonusCap)
}
