package scoring

import (
	"math"

	"github.com/astrorank/astrorank/internal/ephemeris"
)

// Fallback for an empty aspect list. Historically this constant was returned
// as-is, without the aspect weight applied; preserved for equivalence.
const emptyAspectFallback = 0.3 * 0.4

// aspectScore averages per-aspect base scores discounted by orb width, with
// lunar emphasis: oppositions strengthen near full moon, conjunctions near
// new moon.
func aspectScore(snap *ephemeris.Snapshot, w WeightVector, cfg *Config) (float64, float64) {
	if snap == nil || len(snap.Aspects) == 0 {
		return emptyAspectFallback, emptyAspectFallback
	}

	cyclicalPhase, hasPhase := snap.Phase()
	isFullMoon := hasPhase && math.Abs(cyclicalPhase-0.5) < 0.1
	isNewMoon := hasPhase && (cyclicalPhase < 0.1 || cyclicalPhase > 0.9)

	sum := 0.0
	count := 0
	for _, a := range snap.Aspects {
		base, ok := cfg.AspectBases[string(a.Type)]
		if !ok {
			base = cfg.UnknownAspectBase
		}
		if isFullMoon && a.Type == ephemeris.AspectOpposition {
			base *= 1.5
		}
		if isNewMoon && a.Type == ephemeris.AspectConjunction {
			base *= 1.5
		}
		orbFactor := 1 - math.Min(math.Abs(a.OrbDegrees), 10)/10
		sum += base * orbFactor
		count++
	}

	avg := sum / float64(count)
	normalized := clamp01(avg * 1.2)
	return w.Aspect * normalized, normalized
}
