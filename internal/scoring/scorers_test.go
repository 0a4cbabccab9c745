package scoring

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/astrorank/astrorank/internal/ephemeris"
)

func phasePtr(p float64) *float64 { return &p }

func TestElementalScore_ConcreteCase(t *testing.T) {
	cfg := DefaultConfig()
	ref := date(2025, time.June, 10)
	w := cfg.DynamicWeights(ref, 0)

	snap := &ephemeris.Snapshot{
		Elements: &ephemeris.ElementDist{Fire: 100, Earth: 0, Air: 0, Water: 0},
	}

	// Fire sorts first: rank weight 1.0, power 1.2, season modifier
	// 0.8 + 0.4*sin(6π/6) = 0.8. Contribution 0.96, normalized 0.48.
	score, contrib := elementalScore(snap, ref, w, cfg)
	require.InDelta(t, 0.48, contrib, 1e-9)
	require.InDelta(t, w.Elemental*0.48, score, 1e-9)
}

func TestElementalScore_MissingDistribution(t *testing.T) {
	cfg := DefaultConfig()
	ref := date(2025, time.June, 10)
	w := cfg.DynamicWeights(ref, 0)

	// The historical fallback is a flat 0.3, not weight-multiplied.
	score, contrib := elementalScore(&ephemeris.Snapshot{}, ref, w, cfg)
	assert.Equal(t, 0.3, score)
	assert.Equal(t, 0.3, contrib)
}

func TestModalScore(t *testing.T) {
	cfg := DefaultConfig()
	w := cfg.DynamicWeights(date(2025, time.April, 1), 0)

	tests := []struct {
		name    string
		snap    *ephemeris.Snapshot
		balance float64
	}{
		{
			name: "perfectly skewed",
			snap: &ephemeris.Snapshot{
				Modalities: &ephemeris.ModalityDist{Cardinal: 100, Fixed: 0, Mutable: 0},
			},
			balance: 0,
		},
		{
			name: "even spread",
			snap: &ephemeris.Snapshot{
				Modalities: &ephemeris.ModalityDist{Cardinal: 34, Fixed: 33, Mutable: 33},
			},
			balance: 0.99,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score, contrib := modalScore(tt.snap, w)
			assert.InDelta(t, tt.balance, contrib, 1e-9)
			assert.InDelta(t, w.Modal*tt.balance, score, 1e-9)
		})
	}
}

func TestModalScore_Missing(t *testing.T) {
	cfg := DefaultConfig()
	w := cfg.DynamicWeights(date(2025, time.April, 1), 0)

	score, contrib := modalScore(&ephemeris.Snapshot{}, w)
	assert.InDelta(t, w.Modal*0.5, score, 1e-9)
	assert.Equal(t, 0.5, contrib)
}

func TestDominantScore_MissingBodies(t *testing.T) {
	cfg := DefaultConfig()
	ref := date(2025, time.February, 20)
	w := cfg.DynamicWeights(ref, 0)

	score, contrib := dominantScore(&ephemeris.Snapshot{}, ref, w, cfg)
	assert.InDelta(t, w.DominantBody*0.5, score, 1e-9)
	assert.Equal(t, 0.5, contrib)
}

func TestAspectBonus_Cap(t *testing.T) {
	cfg := DefaultConfig()

	// Five exact conjunctions contribute 10 each times the 30-day cycle
	// multiplier (never below 0.8 here), far past the cap.
	aspects := make([]ephemeris.Aspect, 5)
	for i := range aspects {
		aspects[i] = ephemeris.Aspect{Type: ephemeris.AspectConjunction, OrbDegrees: 0}
	}

	bonus := aspectBonus(aspects, 7, cfg)
	assert.Equal(t, 30.0, bonus)
}

func TestAspectBonus_CapIndependentOfExtraAspects(t *testing.T) {
	cfg := DefaultConfig()

	five := make([]ephemeris.Aspect, 5)
	seven := make([]ephemeris.Aspect, 7)
	for i := range seven {
		a := ephemeris.Aspect{Type: ephemeris.AspectConjunction, OrbDegrees: 0}
		if i < 5 {
			five[i] = a
		}
		seven[i] = a
	}

	assert.Equal(t, aspectBonus(five, 12, cfg), aspectBonus(seven, 12, cfg))
}

func TestAspectBonus_OrbPenaltyAndUnknownType(t *testing.T) {
	cfg := DefaultConfig()

	// Day 0 of the 30-day cycle pins the multiplier at 0.8.
	wide := aspectBonus([]ephemeris.Aspect{{Type: ephemeris.AspectConjunction, OrbDegrees: 10}}, 0, cfg)
	assert.InDelta(t, 10*0.5*0.8, wide, 1e-9)

	unknown := aspectBonus([]ephemeris.Aspect{{Type: "novile", OrbDegrees: 0}}, 0, cfg)
	assert.InDelta(t, 1*1*0.8, unknown, 1e-9)
}

func TestLunarScore_MissingPhase(t *testing.T) {
	cfg := DefaultConfig()
	ref := date(2025, time.July, 4)
	w := cfg.DynamicWeights(ref, 0)

	score, contrib := lunarScore(&ephemeris.Snapshot{}, ref, w)
	assert.InDelta(t, w.Moon*0.5, score, 1e-9)
	assert.Equal(t, 0.5, contrib)
}

func TestLunarScore_FullMoonBand(t *testing.T) {
	cfg := DefaultConfig()
	// December 31 puts the seasonal adjustment at ~sin(2π) ≈ 0.
	ref := date(2025, time.December, 31)
	w := cfg.DynamicWeights(ref, 0.5)

	// Phase 0.5: base 0.5, clamped 0.5, full-moon band multiplies by 1.4.
	score, contrib := lunarScore(&ephemeris.Snapshot{CyclicalPhase: phasePtr(0.5)}, ref, w)
	assert.InDelta(t, 0.7, contrib, 0.01)
	assert.InDelta(t, w.Moon*contrib, score, 1e-9)
}

func TestLunarScore_Bounds(t *testing.T) {
	cfg := DefaultConfig()
	ref := date(2025, time.March, 15)

	for _, p := range []float64{0, 0.04, 0.25, 0.5, 0.75, 0.96, 1} {
		w := cfg.DynamicWeights(ref, p)
		_, contrib := lunarScore(&ephemeris.Snapshot{CyclicalPhase: phasePtr(p)}, ref, w)
		assert.GreaterOrEqual(t, contrib, 0.2, "phase %.2f", p)
		assert.LessOrEqual(t, contrib, 1.0, "phase %.2f", p)
	}
}

func TestAspectScore_EmptyFallback(t *testing.T) {
	cfg := DefaultConfig()
	w := cfg.DynamicWeights(date(2025, time.May, 5), 0)

	// Flat 0.3*0.4, deliberately not multiplied by the aspect weight.
	score, contrib := aspectScore(&ephemeris.Snapshot{}, w, cfg)
	assert.InDelta(t, 0.12, score, 1e-9)
	assert.InDelta(t, 0.12, contrib, 1e-9)
}

func TestAspectScore_ExactConjunction(t *testing.T) {
	cfg := DefaultConfig()
	w := cfg.DynamicWeights(date(2025, time.May, 5), 0.3)

	snap := &ephemeris.Snapshot{
		CyclicalPhase: phasePtr(0.3),
		Aspects:       []ephemeris.Aspect{{Type: ephemeris.AspectConjunction, OrbDegrees: 0}},
	}

	// avg = 1.2, clamp(1.2*1.2) saturates at 1.
	score, contrib := aspectScore(snap, w, cfg)
	assert.InDelta(t, 1.0, contrib, 1e-9)
	assert.InDelta(t, w.Aspect, score, 1e-9)
}

func TestAspectScore_MoonBandEmphasis(t *testing.T) {
	cfg := DefaultConfig()
	w := cfg.DynamicWeights(date(2025, time.May, 5), 0)

	opposition := []ephemeris.Aspect{{Type: ephemeris.AspectOpposition, OrbDegrees: 5}}

	_, neutral := aspectScore(&ephemeris.Snapshot{
		CyclicalPhase: phasePtr(0.25), Aspects: opposition,
	}, w, cfg)
	_, fullMoon := aspectScore(&ephemeris.Snapshot{
		CyclicalPhase: phasePtr(0.5), Aspects: opposition,
	}, w, cfg)

	// base 1.1 * orbFactor 0.5 = 0.55 → *1.2 = 0.66; full moon scales the
	// base by 1.5 first.
	assert.InDelta(t, 0.66, neutral, 1e-9)
	assert.InDelta(t, 0.99, fullMoon, 1e-9)
}

func TestAspectScore_UnknownType(t *testing.T) {
	cfg := DefaultConfig()
	w := cfg.DynamicWeights(date(2025, time.May, 5), 0.3)

	snap := &ephemeris.Snapshot{
		CyclicalPhase: phasePtr(0.3),
		Aspects:       []ephemeris.Aspect{{Type: "novile", OrbDegrees: 0}},
	}

	_, contrib := aspectScore(snap, w, cfg)
	assert.InDelta(t, clampedAvg(0.2), contrib, 1e-9)
}

func clampedAvg(avg float64) float64 {
	v := avg * 1.2
	if v > 1 {
		return 1
	}
	return v
}
