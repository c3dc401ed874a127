package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"KeywordEngine/internal/config"
	"KeywordEngine/internal/domain"
	"KeywordEngine/internal/extract"
	"KeywordEngine/internal/ports"
)

// PipelineDeps wires the collaborators into the extraction pipeline. Provider
// and Repository are optional: a nil provider means the degraded
// (structural-signals-only) path, a nil repository disables persistence.
type PipelineDeps struct {
	Provider   ports.MetricsProvider
	Repository ports.ResultRepository
	Engine     config.EngineConfig
	Logger     *slog.Logger
}

// Pipeline implements the keyword extraction and ranking workflow. It holds
// no per-invocation state; independent content items may be processed
// concurrently on the same Pipeline.
type Pipeline struct {
	provider   ports.MetricsProvider
	repository ports.ResultRepository
	engine     config.EngineConfig
	logger     *slog.Logger
}

// NewPipeline constructs the orchestration component. A zero EngineConfig is
// replaced with the tuned defaults.
func NewPipeline(deps PipelineDeps) *Pipeline {
	engine := deps.Engine
	if engine.TopK == 0 {
		engine = config.DefaultEngineConfig()
	}

	return &Pipeline{
		provider:   deps.Provider,
		repository: deps.Repository,
		engine:     engine,
		logger:     deps.Logger,
	}
}

// Extract runs the full pipeline for one content item: normalize, generate
// candidates, boost by position, enrich with external metrics, filter,
// deduplicate, rank and derive topic suggestions.
//
// Only unusable input is surfaced as an error. Enrichment failure is absorbed:
// the pipeline proceeds on structural and positional signals alone, skips the
// metrics-aware filter rules, and shrinks its top-K to the degraded value.
func (p *Pipeline) Extract(ctx context.Context, content domain.Content) (domain.Result, error) {
	if strings.TrimSpace(content.Title) == "" && strings.TrimSpace(content.Body) == "" {
		return domain.Result{}, fmt.Errorf("extract keywords: %w", domain.ErrEmptyContent)
	}

	doc := extract.Normalize(content, p.engine.MaxInputChars)
	candidates := extract.GenerateCandidates(doc.Tokens)
	p.debug("candidates generated", "content_id", content.ID, "count", len(candidates))

	extract.ApplyPositionBoosts(candidates, doc, extract.PositionBoosts{
		TitleExact:     p.engine.TitleExactBoost,
		TitlePartial:   p.engine.TitlePartialBoost,
		HeadingExact:   p.engine.HeadingExactBoost,
		HeadingPartial: p.engine.HeadingPartialBoost,
		IntroExact:     p.engine.IntroExactBoost,
		IntroPartial:   p.engine.IntroPartialBoost,
	})

	enriched := p.enrich(ctx, content.ID, candidates)

	candidates = extract.FilterCandidates(candidates, enriched, extract.MetricsFilterRules{
		MinSearchVolume:       p.engine.MinSearchVolume,
		MaxDifficulty:         p.engine.MaxDifficulty,
		MinNavigationalVolume: p.engine.MinNavigationalVolume,
	})
	candidates = extract.Deduplicate(candidates, p.engine.SimilarityThreshold)

	topK := p.engine.TopK
	if !enriched {
		topK = p.engine.TopKDegraded
	}

	keywords := extract.Rank(candidates, extract.RankOptions{
		TopK:     topK,
		RatioGap: p.engine.RatioGap,
	})
	topics := extract.SuggestTopics(keywords, p.engine.TopicCount, p.engine.TopicDecay)

	result := domain.Result{
		Keywords: keywords,
		Topics:   topics,
		Enriched: enriched,
	}

	p.persist(ctx, content.ID, result)
	return result, nil
}

// enrich fetches external metrics for the strongest candidates and applies
// the tiered score adjustments. It reports whether enrichment data informed
// the run; false switches the downstream stages to the degraded path.
func (p *Pipeline) enrich(ctx context.Context, contentID string, candidates []domain.PhraseCandidate) bool {
	if p.provider == nil || len(candidates) == 0 {
		return false
	}

	extract.SortByScore(candidates)

	limit := p.engine.MaxEnriched
	if limit <= 0 || limit > len(candidates) {
		limit = len(candidates)
	}

	phrases := make([]string, 0, limit)
	for _, c := range candidates[:limit] {
		phrases = append(phrases, c.Phrase)
	}

	metrics, err := p.provider.FetchKeywordMetrics(ctx, phrases)
	if err != nil {
		p.warn("metrics provider unavailable, continuing without enrichment",
			"content_id", contentID, "error", err)
		return false
	}

	extract.AttachMetrics(candidates, metrics)
	extract.ApplyMetricAdjustments(candidates, p.metricAdjustments())
	p.debug("candidates enriched", "content_id", contentID,
		"requested", len(phrases), "matched", len(metrics))
	return true
}

// metricAdjustments maps the configured enrichment tiers onto the extraction
// stage's types.
func (p *Pipeline) metricAdjustments() extract.MetricAdjustments {
	volumeTiers := make([]extract.VolumeTier, 0, len(p.engine.VolumeTiers))
	for _, tier := range p.engine.VolumeTiers {
		volumeTiers = append(volumeTiers, extract.VolumeTier{
			Min:        tier.Min,
			Multiplier: tier.Multiplier,
		})
	}

	difficultyTiers := make([]extract.DifficultyTier, 0, len(p.engine.DifficultyTiers))
	for _, tier := range p.engine.DifficultyTiers {
		difficultyTiers = append(difficultyTiers, extract.DifficultyTier{
			Below:      tier.Below,
			Multiplier: tier.Multiplier,
		})
	}

	intents := make(map[domain.Intent]float64, len(p.engine.IntentMultipliers))
	for intent, mult := range p.engine.IntentMultipliers {
		intents[domain.Intent(intent)] = mult
	}

	return extract.MetricAdjustments{
		SweetSpotMultiplier:    p.engine.SweetSpotMultiplier,
		SweetSpotMinVolume:     p.engine.SweetSpotMinVolume,
		SweetSpotMaxDifficulty: p.engine.SweetSpotMaxDifficulty,
		VolumeTiers:            volumeTiers,
		DifficultyTiers:        difficultyTiers,
		IntentMultipliers:      intents,
	}
}

// persist stores the result when a repository is wired and the content item
// carries an ID. Persistence failures never fail the extraction: the caller
// still receives the computed result.
func (p *Pipeline) persist(ctx context.Context, contentID string, result domain.Result) {
	if p.repository == nil || contentID == "" {
		return
	}

	if err := p.repository.SaveResult(ctx, contentID, result); err != nil {
		p.warn("persist result failed", "content_id", contentID, "error", err)
	}
}

func (p *Pipeline) debug(msg string, args ...any) {
	if p.logger != nil {
		p.logger.Debug(msg, args...)
	}
}

func (p *Pipeline) warn(msg string, args ...any) {
	if p.logger != nil {
		p.logger.Warn(msg, args...)
	}
}
