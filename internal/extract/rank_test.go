package extract

import (
	"testing"

	"KeywordEngine/internal/domain"
)

func TestRankRescalesIntoUnitRange(t *testing.T) {
	t.Parallel()

	keywords := Rank([]domain.PhraseCandidate{
		cand("strongest keyword phrase", 80),
		cand("middling keyword phrase", 40),
		cand("weakest keyword phrase", 8),
	}, RankOptions{TopK: 30, RatioGap: 50})

	if keywords[0].Score != 1.0 {
		t.Fatalf("top keyword must score exactly 1.0, got %v", keywords[0].Score)
	}
	for _, kw := range keywords {
		if kw.Score <= 0 || kw.Score > 1 {
			t.Fatalf("score out of (0,1]: %v for %q", kw.Score, kw.Keyword)
		}
	}
	if keywords[1].Score != 0.5 {
		t.Fatalf("expected rescaled 0.5, got %v", keywords[1].Score)
	}
}

func TestRankTruncatesToTopK(t *testing.T) {
	t.Parallel()

	candidates := []domain.PhraseCandidate{
		cand("alpha keyword phrase", 9),
		cand("bravo keyword phrase", 8),
		cand("charlie keyword phrase", 7),
		cand("delta keyword phrase", 6),
	}

	keywords := Rank(candidates, RankOptions{TopK: 2, RatioGap: 50})
	if len(keywords) != 2 {
		t.Fatalf("expected 2 keywords, got %d", len(keywords))
	}
	if keywords[0].Keyword != "alpha keyword phrase" {
		t.Fatalf("unexpected leader %q", keywords[0].Keyword)
	}
}

func TestRankPrefersSweetSpotWordCount(t *testing.T) {
	t.Parallel()

	// The four-word phrase has a higher raw score but sits outside the 2–3
	// word sweet spot.
	keywords := Rank([]domain.PhraseCandidate{
		cand("extended solar panel installation", 100),
		cand("solar installation", 60),
	}, RankOptions{TopK: 30, RatioGap: 50})

	if keywords[0].Keyword != "solar installation" {
		t.Fatalf("2-word phrase should outrank 4-word phrase, got %q first", keywords[0].Keyword)
	}
}

func TestRankUsesOpportunityRatioOnBigGaps(t *testing.T) {
	t.Parallel()

	winnable := withMetrics(cand("winnable keyword phrase", 10), domain.KeywordMetrics{
		SearchVolume: 8000, Difficulty: 20,
	}) // ratio 400
	crowded := withMetrics(cand("crowded keyword phrase", 50), domain.KeywordMetrics{
		SearchVolume: 4000, Difficulty: 80,
	}) // ratio 50

	keywords := Rank([]domain.PhraseCandidate{crowded, winnable}, RankOptions{TopK: 30, RatioGap: 50})
	if keywords[0].Keyword != "winnable keyword phrase" {
		t.Fatalf("large ratio gap should override raw score, got %q first", keywords[0].Keyword)
	}
}

func TestRankFallsBackToRawScoreOnSmallGaps(t *testing.T) {
	t.Parallel()

	a := withMetrics(cand("first keyword phrase", 50), domain.KeywordMetrics{
		SearchVolume: 1000, Difficulty: 10,
	}) // ratio 100
	b := withMetrics(cand("second keyword phrase", 90), domain.KeywordMetrics{
		SearchVolume: 1300, Difficulty: 10,
	}) // ratio 130, gap 30 < 50

	keywords := Rank([]domain.PhraseCandidate{a, b}, RankOptions{TopK: 30, RatioGap: 50})
	if keywords[0].Keyword != "second keyword phrase" {
		t.Fatalf("small ratio gap must fall back to raw score, got %q first", keywords[0].Keyword)
	}
}

func TestRankDeterministicTieBreak(t *testing.T) {
	t.Parallel()

	keywords := Rank([]domain.PhraseCandidate{
		cand("zulu keyword phrase", 10),
		cand("alpha keyword phrase", 10),
	}, RankOptions{TopK: 30, RatioGap: 50})

	if keywords[0].Keyword != "alpha keyword phrase" {
		t.Fatalf("equal scores must break ties lexicographically, got %q first", keywords[0].Keyword)
	}
}

func TestRankScoreBoundSurvivesReordering(t *testing.T) {
	t.Parallel()

	// Both comparator branches can put a lower raw score first; the
	// rescaled scores must still stay within (0,1] with the leader at 1.0.
	sweetSpotPair := []domain.PhraseCandidate{
		cand("extended solar panel installation", 100),
		cand("solar installation", 60),
	}
	ratioPair := []domain.PhraseCandidate{
		withMetrics(cand("crowded keyword phrase", 50), domain.KeywordMetrics{
			SearchVolume: 4000, Difficulty: 80,
		}),
		withMetrics(cand("winnable keyword phrase", 10), domain.KeywordMetrics{
			SearchVolume: 8000, Difficulty: 20,
		}),
	}

	for _, candidates := range [][]domain.PhraseCandidate{sweetSpotPair, ratioPair} {
		keywords := Rank(candidates, RankOptions{TopK: 30, RatioGap: 50})
		if keywords[0].Score != 1.0 {
			t.Fatalf("leader must score exactly 1.0, got %v for %q", keywords[0].Score, keywords[0].Keyword)
		}
		for _, kw := range keywords {
			if kw.Score <= 0 || kw.Score > 1 {
				t.Fatalf("score bound violated: %q scored %v", kw.Keyword, kw.Score)
			}
		}
	}
}

func TestRankEmptyInput(t *testing.T) {
	t.Parallel()

	if got := Rank(nil, RankOptions{TopK: 30, RatioGap: 50}); got != nil {
		t.Fatalf("expected nil for empty input, got %v", got)
	}
}
