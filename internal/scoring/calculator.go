package scoring

import (
	"math/rand"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/astrorank/astrorank/internal/ephemeris"
)

// Calculator computes one entity's raw influence score against a reference
// date and its shared ephemeris snapshot. It is pure and safe for concurrent
// use; the optional variance source is the only mutable state and must be
// set before scoring begins.
type Calculator struct {
	cfg *Config
	rng *rand.Rand
}

// NewCalculator creates a calculator over a validated config.
func NewCalculator(cfg *Config) *Calculator {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	return &Calculator{cfg: cfg}
}

// SetVarianceSource injects the seedable random source for the legacy
// variance multiplier. Variance stays off without one, regardless of config,
// so scoring never picks up hidden nondeterminism.
func (c *Calculator) SetVarianceSource(rng *rand.Rand) {
	c.rng = rng
}

// Config exposes the calculator's config, mainly for the calibration step.
func (c *Calculator) Config() *Config {
	return c.cfg
}

// Score produces the raw influence score for one entity. An entity with no
// usable birth date gets the neutral fallback immediately; every other
// missing input degrades per component, never aborting the entity.
func (c *Calculator) Score(entity Entity, referenceDate time.Time, snap *ephemeris.Snapshot) InfluenceScore {
	if entity.BirthDate.IsZero() {
		log.Warn().Str("entity", entity.ID).Msg("Entity has no usable birth date, assigning fallback score")
		return InfluenceScore{
			EntityID:   entity.ID,
			EntityName: entity.Name,
			Score:      fallbackScore,
			Raw:        fallbackScore,
			Fallback:   FallbackBirthDate,
		}
	}

	phase, _ := snap.Phase()
	w := c.cfg.DynamicWeights(referenceDate, phase)

	elemScore, elemContrib := elementalScore(snap, referenceDate, w, c.cfg)
	modScore, modContrib := modalScore(snap, w)
	domScore, domContrib := dominantScore(snap, referenceDate, w, c.cfg)
	moonScore, moonContrib := lunarScore(snap, referenceDate, w)
	aspScore, aspContrib := aspectScore(snap, w, c.cfg)

	var combined float64
	switch c.cfg.Combination {
	case CombinationSingle:
		combined = elemScore + modScore + domScore + moonScore + aspScore
	default:
		// Literal mode re-applies each weight to a sub-score that already
		// carries it, reproducing the historical double application.
		combined = elemScore*w.Elemental + modScore*w.Modal +
			domScore*w.DominantBody + moonScore*w.Moon + aspScore*w.Aspect
	}

	variation := float64(entity.BirthDate.Month())/12*0.5 + 0.75
	raw := clamp(combined*100*variation, 0, 100)

	if c.cfg.Variance.Enabled && c.rng != nil {
		raw = clamp(raw*(1+c.cfg.Variance.Spread*(2*c.rng.Float64()-1)), 0, 100)
	}

	return InfluenceScore{
		EntityID:   entity.ID,
		EntityName: entity.Name,
		Score:      raw,
		Raw:        raw,
		Breakdown: Breakdown{
			Elemental:    elemContrib,
			Modal:        modContrib,
			DominantBody: domContrib,
			Moon:         moonContrib,
			Aspect:       aspContrib,
		},
		Weights: w,
	}
}

// FallbackScore builds the neutral result used when scoring an entity fails
// unexpectedly. The batch runner calls this from its per-entity recovery.
func FallbackScore(entity Entity, reason FallbackReason) InfluenceScore {
	return InfluenceScore{
		EntityID:   entity.ID,
		EntityName: entity.Name,
		Score:      fallbackScore,
		Raw:        fallbackScore,
		Fallback:   reason,
	}
}
