package scoring

import (
	"math"
	"sort"
	"time"

	"github.com/astrorank/astrorank/internal/ephemeris"
)

// elementalScore rates how the elemental distribution lines up with the
// season. Elements are taken strongest first; each contributes its share
// scaled by a rank weight, a fixed per-element power, and a seasonal
// modifier that drifts with the rank index.
//
// Returns the weighted sub-score and the unweighted contribution. A missing
// distribution yields the flat documented fallback, which historically is not
// multiplied by the elemental weight.
func elementalScore(snap *ephemeris.Snapshot, referenceDate time.Time, w WeightVector, cfg *Config) (float64, float64) {
	if snap == nil || snap.Elements == nil {
		return cfg.ElementalFallback, cfg.ElementalFallback
	}

	type elem struct {
		name string
		pct  float64
	}
	elems := []elem{
		{"fire", snap.Elements.Fire},
		{"earth", snap.Elements.Earth},
		{"air", snap.Elements.Air},
		{"water", snap.Elements.Water},
	}
	sort.SliceStable(elems, func(i, j int) bool { return elems[i].pct > elems[j].pct })

	month := float64(referenceDate.Month())
	total := 0.0
	for i, e := range elems {
		rankWeight := float64(4-i) * 0.25
		seasonModifier := 0.8 + 0.4*math.Sin((month+float64(i))*math.Pi/6)
		power := cfg.ElementPowers[e.name]
		total += (e.pct / 100) * power * rankWeight * seasonModifier
	}

	normalized := clamp01(total / 2)
	return w.Elemental * normalized, normalized
}
