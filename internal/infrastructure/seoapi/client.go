package seoapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"KeywordEngine/internal/domain"
	"KeywordEngine/internal/ports"
)

const (
	defaultTimeout    = 15 * time.Second
	defaultBatchSize  = 50
	defaultBatchDelay = 200 * time.Millisecond
)

// Client talks to an external keyword-metrics service. Requests are batched
// and spaced apart to respect the provider's rate limits.
type Client struct {
	endpoint   string
	apiKey     string
	batchSize  int
	batchDelay time.Duration
	http       *http.Client
}

var _ ports.MetricsProvider = (*Client)(nil)

// Option adjusts client construction.
type Option func(*Client)

// WithBatching overrides the per-request phrase cap and inter-batch delay.
func WithBatching(size int, delay time.Duration) Option {
	return func(c *Client) {
		if size > 0 {
			c.batchSize = size
		}
		if delay > 0 {
			c.batchDelay = delay
		}
	}
}

// WithTimeout overrides the HTTP client timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.http.Timeout = timeout
		}
	}
}

// NewClient creates a reusable HTTP client for the metrics endpoint.
func NewClient(endpoint, apiKey string, opts ...Option) *Client {
	client := &Client{
		endpoint:   endpoint,
		apiKey:     apiKey,
		batchSize:  defaultBatchSize,
		batchDelay: defaultBatchDelay,
		http:       &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(client)
	}
	return client
}

type metricsPayload struct {
	SearchVolume int     `json:"searchVolume"`
	Difficulty   float64 `json:"difficulty"`
	CPC          float64 `json:"cpc"`
	Competition  float64 `json:"competition"`
	Intent       string  `json:"intent"`
}

// FetchKeywordMetrics requests metrics for the given lower-cased phrases.
// The provider may omit phrases it has no data for; those are simply absent
// from the returned map. Any transport or payload error fails the whole call
// so the pipeline can fall back to its degraded path.
func (c *Client) FetchKeywordMetrics(ctx context.Context, phrases []string) (map[string]domain.KeywordMetrics, error) {
	results := make(map[string]domain.KeywordMetrics, len(phrases))

	for start := 0; start < len(phrases); start += c.batchSize {
		if start > 0 {
			if err := sleepCtx(ctx, c.batchDelay); err != nil {
				return nil, err
			}
		}

		end := start + c.batchSize
		if end > len(phrases) {
			end = len(phrases)
		}

		batch, err := c.fetchBatch(ctx, phrases[start:end])
		if err != nil {
			return nil, err
		}
		for phrase, metrics := range batch {
			results[phrase] = metrics
		}
	}

	return results, nil
}

func (c *Client) fetchBatch(ctx context.Context, phrases []string) (map[string]domain.KeywordMetrics, error) {
	body, err := json.Marshal(map[string]any{"keywords": phrases})
	if err != nil {
		return nil, fmt.Errorf("marshal batch: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("metrics provider returned %s", resp.Status)
	}

	var payload struct {
		Metrics map[string]metricsPayload `json:"metrics"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	batch := make(map[string]domain.KeywordMetrics, len(payload.Metrics))
	for phrase, m := range payload.Metrics {
		batch[phrase] = domain.KeywordMetrics{
			SearchVolume: m.SearchVolume,
			Difficulty:   m.Difficulty,
			CPC:          m.CPC,
			Competition:  m.Competition,
			Intent:       parseIntent(m.Intent),
		}
	}

	return batch, nil
}

func parseIntent(value string) domain.Intent {
	switch domain.Intent(value) {
	case domain.IntentCommercial, domain.IntentTransactional, domain.IntentNavigational:
		return domain.Intent(value)
	default:
		return domain.IntentInformational
	}
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
