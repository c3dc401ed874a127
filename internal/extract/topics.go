package extract

import (
	"fmt"
	"strings"

	"KeywordEngine/internal/domain"
)

const topicReason = "derived from a top-ranking keyword for this content"

// topicTemplates rotate by keyword position; %s receives the title-cased
// keyword phrase.
var topicTemplates = []string{
	"%s: The Complete Guide",
	"How to Master %s",
	"%s: Common Mistakes to Avoid",
	"Why %s Matters for Your Business",
}

// SuggestTopics maps the top keywords to templated, human-readable topic
// titles. Suggested scores decay by a fixed fraction per position so later
// suggestions rank slightly lower for display while preserving order.
func SuggestTopics(keywords []domain.RankedKeyword, count int, decay float64) []domain.TopicSuggestion {
	if count > len(keywords) {
		count = len(keywords)
	}

	suggestions := make([]domain.TopicSuggestion, 0, count)
	for i := 0; i < count; i++ {
		template := topicTemplates[i%len(topicTemplates)]
		score := keywords[i].Score * (1 - decay*float64(i))
		if score < 0 {
			score = 0
		}

		suggestions = append(suggestions, domain.TopicSuggestion{
			Topic:  fmt.Sprintf(template, titleCase(keywords[i].Keyword)),
			Score:  round2(score),
			Reason: topicReason,
		})
	}

	return suggestions
}

func titleCase(phrase string) string {
	words := strings.Fields(phrase)
	for i, w := range words {
		r := []rune(w)
		words[i] = strings.ToUpper(string(r[0])) + string(r[1:])
	}
	return strings.Join(words, " ")
}
