package extract

import (
	"testing"

	"KeywordEngine/internal/domain"
)

func testDoc() Document {
	return Document{
		Title:         "solar panel installation guide",
		TitleTokens:   tokenSet("solar panel installation guide"),
		Headings:      "maintenance schedule basics",
		HeadingTokens: tokenSet("maintenance schedule basics"),
		Intro:         "rooftop energy systems explained",
		IntroTokens:   tokenSet("rooftop energy systems explained"),
	}
}

func boostOne(t *testing.T, phrase string) domain.PhraseCandidate {
	t.Helper()

	candidates := []domain.PhraseCandidate{{Phrase: phrase, RawScore: 10, Source: domain.SourceBody}}
	ApplyPositionBoosts(candidates, testDoc(), PositionBoosts{
		TitleExact:     3.0,
		TitlePartial:   1.5,
		HeadingExact:   2.0,
		HeadingPartial: 1.3,
		IntroExact:     1.75,
		IntroPartial:   1.15,
	})
	return candidates[0]
}

func TestTitleExactMatchWins(t *testing.T) {
	t.Parallel()

	c := boostOne(t, "panel installation")
	if c.RawScore != 30 {
		t.Fatalf("expected title exact boost 3.0, got score %v", c.RawScore)
	}
	if c.Source != domain.SourceTitle {
		t.Fatalf("expected source title, got %s", c.Source)
	}
}

func TestTitlePartialBeatsHeadingExact(t *testing.T) {
	t.Parallel()

	// One token in the title and the full phrase in headings: the title
	// branch is checked first and is exclusive.
	c := boostOne(t, "panel maintenance schedule")
	if c.RawScore != 15 {
		t.Fatalf("expected title partial boost 1.5, got score %v", c.RawScore)
	}
	if c.Source != domain.SourceTitle {
		t.Fatalf("expected source title, got %s", c.Source)
	}
}

func TestHeadingExactMatch(t *testing.T) {
	t.Parallel()

	c := boostOne(t, "maintenance schedule")
	if c.RawScore != 20 {
		t.Fatalf("expected heading exact boost 2.0, got score %v", c.RawScore)
	}
	if c.Source != domain.SourceHeading {
		t.Fatalf("expected source heading, got %s", c.Source)
	}
}

func TestHeadingPartialMatch(t *testing.T) {
	t.Parallel()

	c := boostOne(t, "yearly maintenance")
	if c.RawScore != 13 {
		t.Fatalf("expected heading partial boost 1.3, got score %v", c.RawScore)
	}
	if c.Source != domain.SourceHeading {
		t.Fatalf("expected source heading, got %s", c.Source)
	}
}

func TestIntroMatches(t *testing.T) {
	t.Parallel()

	exact := boostOne(t, "energy systems")
	if exact.RawScore != 17.5 || exact.Source != domain.SourceIntro {
		t.Fatalf("expected intro exact boost, got score %v source %s", exact.RawScore, exact.Source)
	}

	partial := boostOne(t, "rooftop shingles")
	if partial.RawScore != 11.5 || partial.Source != domain.SourceIntro {
		t.Fatalf("expected intro partial boost, got score %v source %s", partial.RawScore, partial.Source)
	}
}

func TestNoMatchKeepsBodySource(t *testing.T) {
	t.Parallel()

	c := boostOne(t, "window replacement")
	if c.RawScore != 10 {
		t.Fatalf("expected unchanged score, got %v", c.RawScore)
	}
	if c.Source != domain.SourceBody {
		t.Fatalf("expected source body, got %s", c.Source)
	}
}
