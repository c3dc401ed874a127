package domain

import "errors"

// ErrEmptyContent is returned when neither title nor body contain usable text.
var ErrEmptyContent = errors.New("empty content: title and body are both empty")

// Content is the raw input handed to the engine by the surrounding platform.
// Body may contain markup; Headings are optional and are merged with headings
// discovered inside the body markup.
type Content struct {
	ID       string   `json:"id,omitempty"`
	Title    string   `json:"title"`
	Body     string   `json:"body"`
	Headings []string `json:"headings,omitempty"`
}

// Source records the strongest placement signal found for a phrase.
type Source string

const (
	SourceBody    Source = "body"
	SourceTitle   Source = "title"
	SourceHeading Source = "heading"
	SourceIntro   Source = "intro"
)

// Intent is a coarse classification of search purpose.
type Intent string

const (
	IntentInformational Intent = "informational"
	IntentCommercial    Intent = "commercial"
	IntentTransactional Intent = "transactional"
	IntentNavigational  Intent = "navigational"
)

// KeywordMetrics carries provider-returned search metrics for a phrase.
type KeywordMetrics struct {
	SearchVolume int     `json:"searchVolume"`
	Difficulty   float64 `json:"difficulty"`
	CPC          float64 `json:"cpc"`
	Competition  float64 `json:"competition"`
	Intent       Intent  `json:"intent"`
}

// PhraseCandidate is the transient entity flowing through the pipeline.
// Phrase is unique per candidate set after generation; Metrics is nil until
// (and unless) enrichment matched the phrase.
type PhraseCandidate struct {
	Phrase   string
	RawScore float64
	Source   Source
	Metrics  *KeywordMetrics
}

// WordCount returns the number of space-separated tokens in the phrase.
func (c PhraseCandidate) WordCount() int {
	if c.Phrase == "" {
		return 0
	}
	count := 1
	for i := 0; i < len(c.Phrase); i++ {
		if c.Phrase[i] == ' ' {
			count++
		}
	}
	return count
}

// RankedKeyword is the immutable output projection of a candidate.
// Score is normalized into (0,1] with the top keyword at 1.0.
type RankedKeyword struct {
	Keyword string  `json:"keyword"`
	Score   float64 `json:"score"`
	Source  Source  `json:"source"`
}

// TopicSuggestion is a templated topic title derived from a top keyword.
type TopicSuggestion struct {
	Topic  string  `json:"topic"`
	Score  float64 `json:"score"`
	Reason string  `json:"reason"`
}

// Result is the full engine output for a single content item.
// Enriched is false when the metrics provider was unavailable and the
// pipeline ran in its degraded (structural-signals-only) mode.
type Result struct {
	Keywords []RankedKeyword   `json:"keywords"`
	Topics   []TopicSuggestion `json:"topics"`
	Enriched bool              `json:"enriched"`
}
