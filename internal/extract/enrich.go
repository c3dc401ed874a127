package extract

import "KeywordEngine/internal/domain"

// VolumeTier maps a search-volume floor to a score multiplier. Tiers are
// checked in order; the first matching tier applies.
type VolumeTier struct {
	Min        int
	Multiplier float64
}

// DifficultyTier maps a difficulty ceiling to a score multiplier. Tiers are
// checked in order; the first matching tier applies.
type DifficultyTier struct {
	Below      float64
	Multiplier float64
}

// MetricAdjustments holds the multiplicative boost tiers applied to enriched
// candidates. Factors stack in sequence: sweet spot, then volume tier, then
// difficulty tier, then intent.
type MetricAdjustments struct {
	SweetSpotMultiplier    float64
	SweetSpotMinVolume     int
	SweetSpotMaxDifficulty float64

	VolumeTiers     []VolumeTier
	DifficultyTiers []DifficultyTier

	IntentMultipliers map[domain.Intent]float64
}

// AttachMetrics records provider results on matching candidates. Phrases the
// provider had no data for keep a nil Metrics; that is an expected state.
func AttachMetrics(candidates []domain.PhraseCandidate, metrics map[string]domain.KeywordMetrics) {
	for i := range candidates {
		if m, ok := metrics[candidates[i].Phrase]; ok {
			copied := m
			candidates[i].Metrics = &copied
		}
	}
}

// ApplyMetricAdjustments boosts the scores of candidates that received
// metrics. Candidates without metrics are left untouched.
func ApplyMetricAdjustments(candidates []domain.PhraseCandidate, adj MetricAdjustments) {
	for i := range candidates {
		c := &candidates[i]
		if c.Metrics == nil {
			continue
		}
		m := *c.Metrics

		if m.SearchVolume >= adj.SweetSpotMinVolume && m.Difficulty < adj.SweetSpotMaxDifficulty {
			c.RawScore *= adj.SweetSpotMultiplier
		}

		for _, tier := range adj.VolumeTiers {
			if m.SearchVolume > tier.Min {
				c.RawScore *= tier.Multiplier
				break
			}
		}

		for _, tier := range adj.DifficultyTiers {
			if m.Difficulty < tier.Below {
				c.RawScore *= tier.Multiplier
				break
			}
		}

		if mult, ok := adj.IntentMultipliers[m.Intent]; ok {
			c.RawScore *= mult
		}
	}
}
