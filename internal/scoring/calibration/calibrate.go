// Package calibration normalizes a cohort of raw influence scores so the
// batch maximum approaches a fixed ceiling. It runs strictly after every raw
// score in the cohort is known: the uniform boost is a function of the whole
// batch, which makes each entity's final score cohort-dependent.
package calibration

import (
	"math"

	"github.com/rs/zerolog/log"

	"github.com/astrorank/astrorank/internal/scoring"
)

// Result carries the calibrated cohort plus the adjustments applied, for
// attribution and reporting.
type Result struct {
	Scores        []scoring.InfluenceScore `json:"scores"`
	UniformBoost  float64                  `json:"uniform_boost"`
	CyclicalBonus float64                  `json:"cyclical_bonus"`
}

// Calibrate applies a uniform additive boost lifting the cohort maximum to
// the configured ceiling, plus a flat bonus when the reference date's
// cyclical phase sits near an extreme, then clamps every score to [0,100].
//
// The input slice is not mutated. An empty cohort is a no-op: there is no
// maximum to anchor the boost to.
func Calibrate(cohort []scoring.InfluenceScore, cyclicalPhase *float64, cfg scoring.CalibrationConfig) Result {
	if len(cohort) == 0 {
		return Result{Scores: []scoring.InfluenceScore{}}
	}

	maxRaw := cohort[0].Raw
	for _, s := range cohort[1:] {
		if s.Raw > maxRaw {
			maxRaw = s.Raw
		}
	}

	boost := cfg.Ceiling - maxRaw
	bonus := 0.0
	if cyclicalPhase != nil && nearPhaseExtreme(*cyclicalPhase, cfg.PhaseTolerance) {
		bonus = cfg.CyclicalBonus
	}

	out := make([]scoring.InfluenceScore, len(cohort))
	for i, s := range cohort {
		s.Score = clamp100(s.Raw + boost + bonus)
		out[i] = s
	}

	log.Debug().
		Int("cohort", len(cohort)).
		Float64("max_raw", maxRaw).
		Float64("uniform_boost", boost).
		Float64("cyclical_bonus", bonus).
		Msg("Calibrated cohort scores")

	return Result{Scores: out, UniformBoost: boost, CyclicalBonus: bonus}
}

// nearPhaseExtreme reports whether the phase is within tolerance of a new
// moon (0 or 1) or full moon (0.5).
func nearPhaseExtreme(phase, tolerance float64) bool {
	return math.Abs(phase) <= tolerance ||
		math.Abs(phase-1) <= tolerance ||
		math.Abs(phase-0.5) <= tolerance
}

func clamp100(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
