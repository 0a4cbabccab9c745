package ephemeris

import "math"

// Normalize clamps a snapshot's fields into their documented ranges without
// inventing data for fields the provider omitted. Percentages are clamped to
// [0,100], orbs made non-negative, and an out-of-range or NaN cyclical phase
// is dropped rather than guessed.
func Normalize(s *Snapshot) *Snapshot {
	if s == nil {
		return nil
	}
	if s.Elements != nil {
		s.Elements.Fire = clampPct(s.Elements.Fire)
		s.Elements.Earth = clampPct(s.Elements.Earth)
		s.Elements.Air = clampPct(s.Elements.Air)
		s.Elements.Water = clampPct(s.Elements.Water)
	}
	if s.Modalities != nil {
		s.Modalities.Cardinal = clampPct(s.Modalities.Cardinal)
		s.Modalities.Fixed = clampPct(s.Modalities.Fixed)
		s.Modalities.Mutable = clampPct(s.Modalities.Mutable)
	}
	if s.CyclicalPhase != nil {
		p := *s.CyclicalPhase
		if math.IsNaN(p) || math.IsInf(p, 0) || p < 0 || p > 1 {
			s.CyclicalPhase = nil
		}
	}
	for i := range s.Aspects {
		s.Aspects[i].OrbDegrees = math.Abs(s.Aspects[i].OrbDegrees)
	}
	if s.Dominant != nil && len(s.Dominant.All) == 0 {
		s.Dominant = nil
	}
	return s
}

func clampPct(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
