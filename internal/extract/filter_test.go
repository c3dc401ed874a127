package extract

import (
	"testing"

	"KeywordEngine/internal/domain"
)

func cand(phrase string, score float64) domain.PhraseCandidate {
	return domain.PhraseCandidate{Phrase: phrase, RawScore: score, Source: domain.SourceBody}
}

func withMetrics(c domain.PhraseCandidate, m domain.KeywordMetrics) domain.PhraseCandidate {
	c.Metrics = &m
	return c
}

func testMetricsRules() MetricsFilterRules {
	return MetricsFilterRules{
		MinSearchVolume:       100,
		MaxDifficulty:         80,
		MinNavigationalVolume: 500,
	}
}

func TestStructuralFilterRules(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		phrase string
		keep   bool
	}{
		{"valid bigram", "solar installation", true},
		{"single word", "installation", false},
		{"five words", "very long solar panel installation phrase", false},
		{"short token", "ab installation", false},
		{"no anchor token", "solar panel", false}, // no token of six-plus chars
		{"stopword boundary", "installation the", false},
		{"generic boundary", "installation guide", false},
		{"digits in phrase", "solar installation 2024", false},
		{"three words one specific", "wet big installation", false},
		{"three words two specific", "rooftop solar installation", true},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			out := FilterCandidates([]domain.PhraseCandidate{cand(tc.phrase, 1)}, false, testMetricsRules())
			kept := len(out) == 1
			if kept != tc.keep {
				t.Fatalf("phrase %q: kept=%v, want %v", tc.phrase, kept, tc.keep)
			}
		})
	}
}

func TestMetricsFilterRules(t *testing.T) {
	t.Parallel()

	base := domain.KeywordMetrics{SearchVolume: 1000, Difficulty: 30, Intent: domain.IntentInformational}

	lowVolume := base
	lowVolume.SearchVolume = 50

	tooHard := base
	tooHard.Difficulty = 90

	nicheNav := base
	nicheNav.SearchVolume = 300
	nicheNav.Intent = domain.IntentNavigational

	popularNav := base
	popularNav.SearchVolume = 600
	popularNav.Intent = domain.IntentNavigational

	candidates := []domain.PhraseCandidate{
		withMetrics(cand("healthy candidate phrase", 5), base),
		withMetrics(cand("obscure candidate phrase", 5), lowVolume),
		withMetrics(cand("hopeless candidate phrase", 5), tooHard),
		withMetrics(cand("branded candidate phrase", 5), nicheNav),
		withMetrics(cand("visited branded phrase", 5), popularNav),
		cand("unmatched candidate phrase", 5), // no metrics: structural rules only
	}

	out := FilterCandidates(candidates, true, testMetricsRules())

	want := map[string]bool{
		"healthy candidate phrase":   true,
		"visited branded phrase":     true,
		"unmatched candidate phrase": true,
	}
	if len(out) != len(want) {
		t.Fatalf("expected %d survivors, got %d: %v", len(want), len(out), out)
	}
	for _, c := range out {
		if !want[c.Phrase] {
			t.Fatalf("unexpected survivor %q", c.Phrase)
		}
	}
}

func TestMetricsFilterSkippedWhenDegraded(t *testing.T) {
	t.Parallel()

	poor := domain.KeywordMetrics{SearchVolume: 10, Difficulty: 95, Intent: domain.IntentNavigational}
	out := FilterCandidates([]domain.PhraseCandidate{
		withMetrics(cand("structurally fine phrase", 5), poor),
	}, false, testMetricsRules())

	if len(out) != 1 {
		t.Fatalf("metrics rules must be skipped in the degraded path")
	}
}

func TestDeduplicateKeepsHighestScored(t *testing.T) {
	t.Parallel()

	candidates := []domain.PhraseCandidate{
		cand("installation service turnkey", 4),
		cand("turnkey installation service", 9), // same word set, higher score
		cand("window replacement estimate", 6),
	}

	out := Deduplicate(candidates, 0.75)

	if len(out) != 2 {
		t.Fatalf("expected 2 survivors, got %d: %v", len(out), out)
	}
	if out[0].Phrase != "turnkey installation service" {
		t.Fatalf("highest-scoring duplicate should survive, got %q", out[0].Phrase)
	}
	if out[1].Phrase != "window replacement estimate" {
		t.Fatalf("unrelated phrase should survive, got %q", out[1].Phrase)
	}
}

func TestDeduplicateThresholdIsExclusive(t *testing.T) {
	t.Parallel()

	// Word sets share 3 of 4 words: Jaccard 3/5 = 0.6, below the threshold.
	candidates := []domain.PhraseCandidate{
		cand("solar panel installation cost", 9),
		cand("solar panel installation warranty", 4),
	}

	out := Deduplicate(candidates, 0.75)
	if len(out) != 2 {
		t.Fatalf("similarity at or below threshold must not suppress, got %v", out)
	}
}

func TestJaccard(t *testing.T) {
	t.Parallel()

	a := wordSet("solar panel installation")
	b := wordSet("panel installation service")

	got := jaccard(a, b)
	want := 2.0 / 4.0
	if got != want {
		t.Fatalf("jaccard = %v, want %v", got, want)
	}

	if jaccard(a, a) != 1 {
		t.Fatalf("identical sets must have similarity 1")
	}
	if jaccard(a, map[string]struct{}{}) != 0 {
		t.Fatalf("empty set must have similarity 0")
	}
}
