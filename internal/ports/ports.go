package ports

import (
	"context"

	"KeywordEngine/internal/domain"
)

// MetricsProvider fetches search metrics for a batch of lower-cased phrases.
// Phrases absent from the returned map simply received no data upstream; that
// is an expected partial result, not an error. An error return means the
// provider was unreachable or answered with garbage.
type MetricsProvider interface {
	FetchKeywordMetrics(ctx context.Context, phrases []string) (map[string]domain.KeywordMetrics, error)
}

// ResultRepository persists extraction results for content records.
type ResultRepository interface {
	AlreadyExtracted(ctx context.Context, contentIDs []string) (map[string]bool, error)
	SaveResult(ctx context.Context, contentID string, result domain.Result) error
}
