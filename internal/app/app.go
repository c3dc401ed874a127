package app

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"

	"KeywordEngine/internal/config"
	"KeywordEngine/internal/domain"
	"KeywordEngine/internal/infrastructure/cache"
	"KeywordEngine/internal/infrastructure/seoapi"
	"KeywordEngine/internal/infrastructure/storage"
	"KeywordEngine/internal/logging"
	"KeywordEngine/internal/ports"
	"KeywordEngine/internal/provider"
	"KeywordEngine/internal/usecase"
)

// Application wires config to the extraction pipeline and its adapters.
type Application struct {
	cfg      config.Config
	pipeline *usecase.Pipeline
	db       *sql.DB
}

// New builds a runnable application instance.
func New(cfg config.Config, baseLogger *slog.Logger) (*Application, error) {
	if baseLogger == nil {
		baseLogger = logging.New(cfg.Logging.Level)
	}

	registry := provider.NewRegistry()
	registry.Register("seoapi", func(endpoint, apiKey string, timeoutSeconds int) ports.MetricsProvider {
		return seoapi.NewClient(endpoint, apiKey,
			seoapi.WithTimeout(time.Duration(timeoutSeconds)*time.Second),
			seoapi.WithBatching(cfg.Engine.BatchSize, time.Duration(cfg.Engine.BatchDelayMs)*time.Millisecond),
		)
	})

	metricsProvider, err := buildProvider(cfg, registry, baseLogger)
	if err != nil {
		return nil, err
	}

	var db *sql.DB
	var repository ports.ResultRepository
	if cfg.Database.DSN != "" {
		db, err = sql.Open("postgres", cfg.Database.DSN)
		if err != nil {
			return nil, fmt.Errorf("open database: %w", err)
		}
		repository = storage.NewPostgresRepository(db)
	}

	pipeline := usecase.NewPipeline(usecase.PipelineDeps{
		Provider:   metricsProvider,
		Repository: repository,
		Engine:     cfg.Engine,
		Logger:     baseLogger.With("component", "pipeline"),
	})

	return &Application{cfg: cfg, pipeline: pipeline, db: db}, nil
}

func buildProvider(cfg config.Config, registry *provider.Registry, logger *slog.Logger) (ports.MetricsProvider, error) {
	if cfg.Provider.Endpoint == "" {
		logger.Warn("no metrics provider endpoint configured, engine runs unenriched")
		return nil, nil
	}

	factory, err := registry.Resolve(cfg.Provider.Name)
	if err != nil {
		return nil, fmt.Errorf("resolve provider: %w", err)
	}
	metricsProvider := factory(cfg.Provider.Endpoint, cfg.Provider.APIKey, cfg.Provider.TimeoutSeconds)

	if cfg.Cache.RedisAddr == "" {
		return metricsProvider, nil
	}

	client := redis.NewClient(&redis.Options{Addr: cfg.Cache.RedisAddr})
	ttl := time.Duration(cfg.Cache.TTLMinutes) * time.Minute
	return cache.NewRedisMetricsCache(metricsProvider, client, ttl,
		logger.With("component", "metrics-cache")), nil
}

// Extract runs one pipeline invocation for the given content item.
func (a *Application) Extract(ctx context.Context, content domain.Content) (domain.Result, error) {
	return a.pipeline.Extract(ctx, content)
}

// Close releases held resources.
func (a *Application) Close() error {
	if a.db != nil {
		return a.db.Close()
	}
	return nil
}
