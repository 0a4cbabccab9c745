package scoring

import (
	"math"
	"time"
)

// seasonFactor maps a calendar month onto a sinusoid in [0,1], peaking in
// early summer and bottoming in early winter.
func seasonFactor(month time.Month) float64 {
	return 0.5 + 0.5*math.Sin((float64(month)*2-1)*math.Pi/6)
}

// DynamicWeights derives the weight vector for a reference date. Starting
// from the base weights, dominant-body emphasis shifts with the season,
// elemental balance takes the complementary shift, and the moon weight swings
// with the cyclical phase. The adjusted vector is intentionally not
// renormalized, so it no longer sums to exactly 1.
//
// A weight vector is defined for every reference date: when the snapshot
// carries no cyclical phase, the moon adjustment uses phase 0.
func (c *Config) DynamicWeights(referenceDate time.Time, cyclicalPhase float64) WeightVector {
	w := c.BaseWeights
	sf := seasonFactor(referenceDate.Month())

	w.DominantBody += c.SeasonWeightShift * sf
	w.Elemental += c.SeasonWeightShift * (1 - sf)
	w.Moon += c.MoonWeightSwing * math.Sin(cyclicalPhase*2*math.Pi)

	return w
}
