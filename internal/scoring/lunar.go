package scoring

import (
	"math"
	"time"

	"github.com/astrorank/astrorank/internal/ephemeris"
)

// lunarScore follows the cyclical phase through its sinusoid, nudged by the
// time of year, with multipliers inside the new-moon and full-moon bands.
// A missing or unusable phase takes the neutral fallback.
func lunarScore(snap *ephemeris.Snapshot, referenceDate time.Time, w WeightVector) (float64, float64) {
	cyclicalPhase, ok := snap.Phase()
	if !ok {
		return w.Moon * 0.5, 0.5
	}

	base := 0.5 + 0.5*math.Sin(cyclicalPhase*2*math.Pi)
	seasonAdj := 0.2 * math.Sin(2*math.Pi*float64(referenceDate.YearDay())/365)
	phase := clamp(base+seasonAdj, 0.2, 1)

	switch {
	case cyclicalPhase < 0.05 || cyclicalPhase > 0.95:
		phase = math.Min(1, phase*1.3)
	case cyclicalPhase > 0.45 && cyclicalPhase < 0.55:
		phase = math.Min(1, phase*1.4)
	}

	if math.IsNaN(phase) || math.IsInf(phase, 0) {
		return w.Moon * 0.5, 0.5
	}

	return w.Moon * phase, phase
}
