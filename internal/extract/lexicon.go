package extract

// Lexicon sets are built once at init and never mutated afterwards; they are
// safe for concurrent readers.

var stopwords = buildSet(
	"a", "about", "above", "after", "again", "against", "all", "also", "am",
	"an", "and", "any", "are", "as", "at", "be", "because", "been", "before",
	"being", "below", "between", "both", "but", "by", "can", "could", "did",
	"do", "does", "doing", "down", "during", "each", "few", "for", "from",
	"further", "had", "has", "have", "having", "he", "her", "here", "hers",
	"him", "his", "how", "i", "if", "in", "into", "is", "it", "its", "itself",
	"just", "may", "me", "might", "more", "most", "must", "my", "no", "nor",
	"not", "now", "of", "off", "on", "once", "only", "or", "other", "our",
	"ours", "out", "over", "own", "same", "shall", "she", "should", "so",
	"some", "such", "than", "that", "the", "their", "theirs", "them", "then",
	"there", "these", "they", "this", "those", "through", "to", "too", "under",
	"until", "up", "upon", "us", "very", "was", "we", "were", "what", "when",
	"where", "which", "while", "who", "whom", "whose", "why", "will", "with",
	"would", "you", "your", "yours",
)

// Generic terms are topically vague but non-functional words; they weaken
// keyword specificity without being stopwords.
var genericTerms = buildSet(
	"amazing", "awesome", "basic", "benefits", "best", "better", "big",
	"common", "complete", "easy", "effective", "essential", "everything",
	"examples", "free", "good", "great", "guide", "help", "helpful", "ideas",
	"important", "key", "learn", "list", "main", "major", "methods", "new",
	"online", "overview", "perfect", "popular", "powerful", "practical",
	"proven", "quick", "reasons", "right", "simple", "small", "solution",
	"solutions", "steps", "things", "tips", "top", "tricks", "types",
	"ultimate", "useful", "ways",
)

func buildSet(words ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}

// IsStopword reports whether the lower-cased token is a functional word.
func IsStopword(token string) bool {
	_, ok := stopwords[token]
	return ok
}

// IsGeneric reports whether the lower-cased token is a topically vague term.
func IsGeneric(token string) bool {
	_, ok := genericTerms[token]
	return ok
}
