package extract

import (
	"strings"

	"KeywordEngine/internal/domain"
)

// PositionBoosts holds the multiplier tiers for placement signals. Exactly
// one tier applies per candidate: title placement is the strongest signal,
// headings a secondary structural one, the intro sentence the weakest.
type PositionBoosts struct {
	TitleExact     float64
	TitlePartial   float64
	HeadingExact   float64
	HeadingPartial float64
	IntroExact     float64
	IntroPartial   float64
}

// ApplyPositionBoosts multiplies each candidate's score by the boost tier for
// its strongest placement match and labels the candidate's source. Branches
// are exclusive and checked in priority order so boosts never compound.
func ApplyPositionBoosts(candidates []domain.PhraseCandidate, doc Document, boosts PositionBoosts) {
	for i := range candidates {
		c := &candidates[i]
		words := strings.Fields(c.Phrase)

		switch {
		case doc.Title != "" && strings.Contains(doc.Title, c.Phrase):
			c.RawScore *= boosts.TitleExact
			c.Source = domain.SourceTitle
		case anyTokenIn(words, doc.TitleTokens):
			c.RawScore *= boosts.TitlePartial
			c.Source = domain.SourceTitle
		case doc.Headings != "" && strings.Contains(doc.Headings, c.Phrase):
			c.RawScore *= boosts.HeadingExact
			c.Source = domain.SourceHeading
		case anyTokenIn(words, doc.HeadingTokens):
			c.RawScore *= boosts.HeadingPartial
			c.Source = domain.SourceHeading
		case doc.Intro != "" && strings.Contains(doc.Intro, c.Phrase):
			c.RawScore *= boosts.IntroExact
			c.Source = domain.SourceIntro
		case anyTokenIn(words, doc.IntroTokens):
			c.RawScore *= boosts.IntroPartial
			c.Source = domain.SourceIntro
		default:
			c.Source = domain.SourceBody
		}
	}
}

func anyTokenIn(words []string, set map[string]struct{}) bool {
	if len(set) == 0 {
		return false
	}
	for _, w := range words {
		if _, ok := set[w]; ok {
			return true
		}
	}
	return false
}
