package extract

import (
	"math"
	"sort"
	"strings"

	"KeywordEngine/internal/domain"
)

// RankOptions carries the few ranking constants exposed to configuration.
type RankOptions struct {
	TopK int
	// RatioGap is the minimum volume/difficulty ratio difference before the
	// metrics comparison outweighs raw score for equal-length phrases.
	RatioGap float64
}

// Rank sorts the surviving candidates, truncates to the top K and rescales
// scores into (0,1] with the leading keyword at exactly 1.0 (after rounding
// to two decimals).
//
// Comparator order:
//  1. 2–3 word phrases outrank 4-word ones (the empirical SEO sweet spot);
//  2. at equal word count, when both sides carry metrics, the higher
//     volume/max(1,difficulty) ratio wins if the gap exceeds RatioGap;
//  3. raw score descending, with a lexicographic tie-break for determinism.
func Rank(candidates []domain.PhraseCandidate, opts RankOptions) []domain.RankedKeyword {
	if len(candidates) == 0 {
		return nil
	}

	sorted := make([]domain.PhraseCandidate, len(candidates))
	copy(sorted, candidates)

	sort.Slice(sorted, func(i, j int) bool {
		return rankLess(sorted[i], sorted[j], opts.RatioGap)
	})

	if opts.TopK > 0 && len(sorted) > opts.TopK {
		sorted = sorted[:opts.TopK]
	}

	// The comparator can place a lower raw score first (sweet-spot and
	// ratio branches), so rescaling must divide by the maximum raw score
	// among survivors, not the leader's.
	max := sorted[0].RawScore
	for _, c := range sorted[1:] {
		if c.RawScore > max {
			max = c.RawScore
		}
	}
	if max <= 0 {
		max = 1
	}

	ranked := make([]domain.RankedKeyword, 0, len(sorted))
	for _, c := range sorted {
		score := round2(c.RawScore / max)
		if score <= 0 {
			score = 0.01
		}
		ranked = append(ranked, domain.RankedKeyword{
			Keyword: c.Phrase,
			Score:   score,
			Source:  c.Source,
		})
	}
	ranked[0].Score = 1.0

	return ranked
}

func rankLess(a, b domain.PhraseCandidate, ratioGap float64) bool {
	aSweet := inSweetSpot(a)
	bSweet := inSweetSpot(b)
	if aSweet != bSweet {
		return aSweet
	}

	if a.WordCount() == b.WordCount() && a.Metrics != nil && b.Metrics != nil {
		ra := opportunityRatio(*a.Metrics)
		rb := opportunityRatio(*b.Metrics)
		if math.Abs(ra-rb) > ratioGap {
			return ra > rb
		}
	}

	if a.RawScore != b.RawScore {
		return a.RawScore > b.RawScore
	}
	return strings.Compare(a.Phrase, b.Phrase) < 0
}

func inSweetSpot(c domain.PhraseCandidate) bool {
	wc := c.WordCount()
	return wc == 2 || wc == 3
}

// opportunityRatio is search volume relative to ranking difficulty: a cheap
// proxy for how winnable the keyword is.
func opportunityRatio(m domain.KeywordMetrics) float64 {
	return float64(m.SearchVolume) / math.Max(1, m.Difficulty)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
