package extract

import (
	"sort"
	"strings"
	"unicode"

	"KeywordEngine/internal/domain"
)

const (
	minWordCount = 2
	maxWordCount = 4

	anchorTokenLen   = 6 // one token this long (non-generic, non-stop) required
	specificTokenLen = 4 // "specific" tokens must exceed 3 chars
)

// MetricsFilterRules holds the tuned acceptance thresholds applied to
// candidates that received enrichment data.
type MetricsFilterRules struct {
	MinSearchVolume       int
	MaxDifficulty         float64
	MinNavigationalVolume int
}

// FilterCandidates applies the structural quality rules to every candidate
// and, when enriched is true, the metrics-aware rules to candidates carrying
// metrics. In the degraded path (enrichment unavailable) the metrics-aware
// rules are skipped entirely so structurally sound candidates still survive.
func FilterCandidates(candidates []domain.PhraseCandidate, enriched bool, rules MetricsFilterRules) []domain.PhraseCandidate {
	kept := make([]domain.PhraseCandidate, 0, len(candidates))
	for _, c := range candidates {
		if !structurallySound(c.Phrase) {
			continue
		}
		if enriched && c.Metrics != nil && !metricsAcceptable(*c.Metrics, rules) {
			continue
		}
		kept = append(kept, c)
	}
	return kept
}

func structurallySound(phrase string) bool {
	if !lettersAndSpacesOnly(phrase) {
		return false
	}

	words := strings.Fields(phrase)
	if len(words) < minWordCount || len(words) > maxWordCount {
		return false
	}

	anchored := false
	specific := 0
	for _, w := range words {
		if len(w) < minTokenLen {
			return false
		}
		stop, generic := IsStopword(w), IsGeneric(w)
		if len(w) >= anchorTokenLen && !stop && !generic {
			anchored = true
		}
		if len(w) >= specificTokenLen && !stop && !generic {
			specific++
		}
	}
	if !anchored {
		return false
	}
	if len(words) >= 3 && specific < 2 {
		return false
	}

	first, last := words[0], words[len(words)-1]
	if IsStopword(first) || IsGeneric(first) || IsStopword(last) || IsGeneric(last) {
		return false
	}

	return true
}

func lettersAndSpacesOnly(phrase string) bool {
	for _, r := range phrase {
		if r != ' ' && !unicode.IsLetter(r) {
			return false
		}
	}
	return phrase != ""
}

func metricsAcceptable(m domain.KeywordMetrics, rules MetricsFilterRules) bool {
	if m.SearchVolume < rules.MinSearchVolume {
		return false
	}
	if m.Difficulty > rules.MaxDifficulty {
		return false
	}
	if m.Intent == domain.IntentNavigational && m.SearchVolume < rules.MinNavigationalVolume {
		return false
	}
	return true
}

// Deduplicate suppresses near-duplicate phrases by greedy Jaccard similarity
// over word sets. Candidates are visited in descending score order, so the
// highest-scoring representative of each near-duplicate cluster survives and
// the rest are discarded. The input slice is re-sorted in place.
func Deduplicate(candidates []domain.PhraseCandidate, threshold float64) []domain.PhraseCandidate {
	SortByScore(candidates)

	accepted := make([]domain.PhraseCandidate, 0, len(candidates))
	acceptedSets := make([]map[string]struct{}, 0, len(candidates))

	for _, c := range candidates {
		set := wordSet(c.Phrase)

		duplicate := false
		for _, prev := range acceptedSets {
			if jaccard(set, prev) > threshold {
				duplicate = true
				break
			}
		}
		if duplicate {
			continue
		}

		accepted = append(accepted, c)
		acceptedSets = append(acceptedSets, set)
	}

	return accepted
}

// SortByScore orders candidates by raw score descending with a deterministic
// lexicographic tie-break, so equal-score runs are stable across invocations.
func SortByScore(candidates []domain.PhraseCandidate) {
	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].RawScore != candidates[j].RawScore {
			return candidates[i].RawScore > candidates[j].RawScore
		}
		return candidates[i].Phrase < candidates[j].Phrase
	})
}

func wordSet(phrase string) map[string]struct{} {
	set := map[string]struct{}{}
	for _, w := range strings.Fields(phrase) {
		set[w] = struct{}{}
	}
	return set
}

// jaccard returns intersection-over-union of two word sets.
func jaccard(a, b map[string]struct{}) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}

	intersection := 0
	for w := range a {
		if _, ok := b[w]; ok {
			intersection++
		}
	}

	union := len(a) + len(b) - intersection
	if union == 0 {
		return 0
	}
	return float64(intersection) / float64(union)
}
