package extract

import "KeywordEngine/internal/domain"

const (
	minWindow = 2
	maxWindow = 4

	minTokenLen      = 3
	substantialLen   = 5
	shortTokenCutoff = 2
)

// minJoinedLen is the minimum character length of the joined phrase per
// window size; longer windows must clear a progressively higher bar.
var minJoinedLen = map[int]int{2: 8, 3: 12, 4: 16}

// GenerateCandidates slides 2–4 word windows over the token stream and emits
// admissible phrase candidates with frequency-based scores. Overlapping
// near-duplicates are deliberately kept: positional and metric boosts must
// differentiate them before deduplication picks a survivor.
func GenerateCandidates(tokens []string) []domain.PhraseCandidate {
	filtered := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		if len(tok) > shortTokenCutoff {
			filtered = append(filtered, tok)
		}
	}

	frequency := map[string]int{}
	window := map[string]int{}
	order := make([]string, 0, len(filtered))

	for n := minWindow; n <= maxWindow; n++ {
		for i := 0; i+n <= len(filtered); i++ {
			phrase, ok := admitWindow(filtered[i:i+n], n)
			if !ok {
				continue
			}
			if _, seen := frequency[phrase]; !seen {
				order = append(order, phrase)
				window[phrase] = n
			}
			frequency[phrase]++
		}
	}

	candidates := make([]domain.PhraseCandidate, 0, len(order))
	for _, phrase := range order {
		candidates = append(candidates, domain.PhraseCandidate{
			Phrase:   phrase,
			RawScore: float64(frequency[phrase] * window[phrase]),
			Source:   domain.SourceBody,
		})
	}

	return candidates
}

func admitWindow(tokens []string, n int) (string, bool) {
	stopBudget := 1
	genericBudget := 2
	if n == 2 {
		stopBudget = 0
		genericBudget = 1
	}

	joinedLen := n - 1
	stops, generics := 0, 0
	substantial := false

	for _, tok := range tokens {
		if len(tok) < minTokenLen {
			return "", false
		}
		joinedLen += len(tok)

		if IsStopword(tok) {
			stops++
		}
		if IsGeneric(tok) {
			generics++
		}
		if len(tok) >= substantialLen && !IsGeneric(tok) {
			substantial = true
		}
	}

	if joinedLen < minJoinedLen[n] {
		return "", false
	}
	if stops > stopBudget || generics > genericBudget {
		return "", false
	}
	if !substantial {
		return "", false
	}

	first, last := tokens[0], tokens[n-1]
	if IsStopword(first) || IsGeneric(first) || IsStopword(last) || IsGeneric(last) {
		return "", false
	}

	return joinPhrase(tokens), true
}

func joinPhrase(tokens []string) string {
	size := len(tokens) - 1
	for _, tok := range tokens {
		size += len(tok)
	}

	buf := make([]byte, 0, size)
	for i, tok := range tokens {
		if i > 0 {
			buf = append(buf, ' ')
		}
		buf = append(buf, tok...)
	}
	return string(buf)
}
