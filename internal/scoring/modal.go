package scoring

import (
	"github.com/astrorank/astrorank/internal/ephemeris"
)

// modalScore rewards an even spread across the three modalities: the wider
// the gap between the strongest and weakest bucket, the lower the balance.
func modalScore(snap *ephemeris.Snapshot, w WeightVector) (float64, float64) {
	if snap == nil || snap.Modalities == nil {
		return w.Modal * 0.5, 0.5
	}

	vals := []float64{snap.Modalities.Cardinal, snap.Modalities.Fixed, snap.Modalities.Mutable}
	maxV, minV := vals[0], vals[0]
	for _, v := range vals[1:] {
		if v > maxV {
			maxV = v
		}
		if v < minV {
			minV = v
		}
	}

	balance := clamp01(1 - (maxV-minV)/100)
	return w.Modal * balance, balance
}
