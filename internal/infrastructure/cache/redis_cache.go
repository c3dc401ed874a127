package cache

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"KeywordEngine/internal/domain"
	"KeywordEngine/internal/ports"
)

const keyPrefix = "kwmetrics:"

// RedisMetricsCache is a read-through decorator over a MetricsProvider. Fresh
// metrics per phrase are served from Redis; only misses go upstream. Cache
// errors are logged and treated as misses so a broken Redis never surfaces as
// an enrichment failure.
type RedisMetricsCache struct {
	next   ports.MetricsProvider
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

var _ ports.MetricsProvider = (*RedisMetricsCache)(nil)

// NewRedisMetricsCache wraps next with a Redis-backed cache.
func NewRedisMetricsCache(next ports.MetricsProvider, client *redis.Client, ttl time.Duration, logger *slog.Logger) *RedisMetricsCache {
	return &RedisMetricsCache{next: next, client: client, ttl: ttl, logger: logger}
}

// FetchKeywordMetrics serves cached phrases and delegates the rest upstream.
// Upstream results are written back with the configured TTL.
func (c *RedisMetricsCache) FetchKeywordMetrics(ctx context.Context, phrases []string) (map[string]domain.KeywordMetrics, error) {
	results := make(map[string]domain.KeywordMetrics, len(phrases))

	missing := make([]string, 0, len(phrases))
	for _, phrase := range phrases {
		metrics, ok := c.lookup(ctx, phrase)
		if ok {
			results[phrase] = metrics
			continue
		}
		missing = append(missing, phrase)
	}

	if len(missing) == 0 {
		return results, nil
	}

	fetched, err := c.next.FetchKeywordMetrics(ctx, missing)
	if err != nil {
		return nil, err
	}

	for phrase, metrics := range fetched {
		results[phrase] = metrics
		c.store(ctx, phrase, metrics)
	}

	return results, nil
}

func (c *RedisMetricsCache) lookup(ctx context.Context, phrase string) (domain.KeywordMetrics, bool) {
	raw, err := c.client.Get(ctx, keyPrefix+phrase).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.debug("cache read failed", "phrase", phrase, "error", err)
		}
		return domain.KeywordMetrics{}, false
	}

	var metrics domain.KeywordMetrics
	if err := json.Unmarshal(raw, &metrics); err != nil {
		c.debug("cache entry corrupt", "phrase", phrase, "error", err)
		return domain.KeywordMetrics{}, false
	}

	return metrics, true
}

func (c *RedisMetricsCache) store(ctx context.Context, phrase string, metrics domain.KeywordMetrics) {
	raw, err := json.Marshal(metrics)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, keyPrefix+phrase, raw, c.ttl).Err(); err != nil {
		c.debug("cache write failed", "phrase", phrase, "error", err)
	}
}

func (c *RedisMetricsCache) debug(msg string, args ...any) {
	if c.logger != nil {
		c.logger.Debug(msg, args...)
	}
}
