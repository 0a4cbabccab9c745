package scoring

import (
	"time"
)

// Entity is a scored person. Only the birth date feeds the math; the display
// name is carried through for reporting.
type Entity struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	BirthDate time.Time `json:"birth_date"`
}

// WeightVector holds the five component weights for one reference date.
type WeightVector struct {
	Elemental    float64 `json:"elemental" yaml:"elemental"`
	Modal        float64 `json:"modal" yaml:"modal"`
	DominantBody float64 `json:"dominant_body" yaml:"dominant_body"`
	Moon         float64 `json:"moon" yaml:"moon"`
	Aspect       float64 `json:"aspect" yaml:"aspect"`
}

// Sum returns the total of the five weights.
func (w WeightVector) Sum() float64 {
	return w.Elemental + w.Modal + w.DominantBody + w.Moon + w.Aspect
}

// Breakdown carries the five unweighted component contributions, each in
// [0,1], for auditability of a final score.
type Breakdown struct {
	Elemental    float64 `json:"elemental"`
	Modal        float64 `json:"modal"`
	DominantBody float64 `json:"dominant_body"`
	Moon         float64 `json:"moon"`
	Aspect       float64 `json:"aspect"`
}

// FallbackReason classifies why an entity received the fallback score.
type FallbackReason string

const (
	FallbackNone      FallbackReason = ""
	FallbackBirthDate FallbackReason = "invalid_birth_date"
	FallbackPanic     FallbackReason = "scoring_panic"
)

// InfluenceScore is the per-entity output. Score starts equal to Raw and is
// rewritten by the population calibrator; Raw is kept for attribution.
type InfluenceScore struct {
	EntityID   string       `json:"entity_id"`
	EntityName string       `json:"entity_name"`
	Score      float64      `json:"score"`
	Raw        float64      `json:"raw"`
	Breakdown  Breakdown    `json:"breakdown"`
	Weights    WeightVector `json:"weights_used"`

	Fallback FallbackReason `json:"fallback,omitempty"`
}

// The neutral score assigned when an entity cannot be scored at all.
const fallbackScore = 50.0

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clamp01(v float64) float64 {
	return clamp(v, 0, 1)
}
