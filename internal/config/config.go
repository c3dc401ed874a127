package config

import (
	"log"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	configPathEnv  = "KEYWORD_ENGINE_CONFIG"
	databaseDSNEnv = "DATABASE_DSN"
	seoAPIURLEnv   = "SEO_API_URL"
	seoAPIKeyEnv   = "SEO_API_KEY"
	redisAddrEnv   = "REDIS_ADDR"
	logLevelEnv    = "LOG_LEVEL"
)

// Config holds high-level settings required across the application.
type Config struct {
	Logging  LoggingConfig  `yaml:"logging"`
	Database DatabaseConfig `yaml:"database"`
	Provider ProviderConfig `yaml:"provider"`
	Cache    CacheConfig    `yaml:"cache"`
	Engine   EngineConfig   `yaml:"engine"`
}

// LoggingConfig controls log verbosity.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// DatabaseConfig describes Postgres connection details for result persistence.
// An empty DSN disables persistence entirely.
type DatabaseConfig struct {
	DSN string `yaml:"dsn"`
}

// ProviderConfig selects and configures the keyword-metrics provider strategy.
type ProviderConfig struct {
	Name           string `yaml:"name"`
	Endpoint       string `yaml:"endpoint"`
	APIKey         string `yaml:"apiKey"`
	TimeoutSeconds int    `yaml:"timeoutSeconds"`
}

// CacheConfig wires the optional Redis read-through cache for metrics.
// An empty RedisAddr disables caching.
type CacheConfig struct {
	RedisAddr  string `yaml:"redisAddr"`
	TTLMinutes int    `yaml:"ttlMinutes"`
}

// EngineConfig exposes the tuned pipeline constants. The defaults carry the
// empirically tuned values; they are configurable for product-level tuning,
// not because better values are known.
type EngineConfig struct {
	MaxInputChars int `yaml:"maxInputChars"`

	TitleExactBoost     float64 `yaml:"titleExactBoost"`
	TitlePartialBoost   float64 `yaml:"titlePartialBoost"`
	HeadingExactBoost   float64 `yaml:"headingExactBoost"`
	HeadingPartialBoost float64 `yaml:"headingPartialBoost"`
	IntroExactBoost     float64 `yaml:"introExactBoost"`
	IntroPartialBoost   float64 `yaml:"introPartialBoost"`

	MaxEnriched  int `yaml:"maxEnriched"`
	BatchSize    int `yaml:"batchSize"`
	BatchDelayMs int `yaml:"batchDelayMs"`

	SweetSpotMultiplier    float64                `yaml:"sweetSpotMultiplier"`
	SweetSpotMinVolume     int                    `yaml:"sweetSpotMinVolume"`
	SweetSpotMaxDifficulty float64                `yaml:"sweetSpotMaxDifficulty"`
	VolumeTiers            []VolumeTierConfig     `yaml:"volumeTiers"`
	DifficultyTiers        []DifficultyTierConfig `yaml:"difficultyTiers"`
	IntentMultipliers      map[string]float64     `yaml:"intentMultipliers"`

	MinSearchVolume       int     `yaml:"minSearchVolume"`
	MaxDifficulty         float64 `yaml:"maxDifficulty"`
	MinNavigationalVolume int     `yaml:"minNavigationalVolume"`

	TopK                int     `yaml:"topK"`
	TopKDegraded        int     `yaml:"topKDegraded"`
	SimilarityThreshold float64 `yaml:"similarityThreshold"`
	RatioGap            float64 `yaml:"ratioGap"`

	TopicCount int     `yaml:"topicCount"`
	TopicDecay float64 `yaml:"topicDecay"`
}

// VolumeTierConfig maps a search-volume floor to a score multiplier.
type VolumeTierConfig struct {
	Min        int     `yaml:"min"`
	Multiplier float64 `yaml:"multiplier"`
}

// DifficultyTierConfig maps a difficulty ceiling to a score multiplier.
type DifficultyTierConfig struct {
	Below      float64 `yaml:"below"`
	Multiplier float64 `yaml:"multiplier"`
}

// Load reads YAML configuration (if present) and applies environment overrides.
func Load() Config {
	cfg := defaultConfig()

	if path := os.Getenv(configPathEnv); path != "" {
		if raw, err := os.ReadFile(path); err != nil {
			log.Printf("config: cannot read %s: %v (falling back to defaults)", path, err)
		} else {
			var fileCfg Config
			if err := yaml.Unmarshal(raw, &fileCfg); err != nil {
				log.Printf("config: cannot parse %s: %v (falling back to defaults)", path, err)
			} else {
				cfg = mergeConfig(cfg, fileCfg)
			}
		}
	}

	cfg.applyEnvOverrides()
	return cfg
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv(databaseDSNEnv); v != "" {
		c.Database.DSN = v
	}

	if v := os.Getenv(seoAPIURLEnv); v != "" {
		c.Provider.Endpoint = v
	}

	if v := os.Getenv(seoAPIKeyEnv); v != "" {
		c.Provider.APIKey = v
	}

	if v := os.Getenv(redisAddrEnv); v != "" {
		c.Cache.RedisAddr = v
	}

	if v := os.Getenv(logLevelEnv); v != "" {
		c.Logging.Level = v
	}
}

func mergeConfig(base, override Config) Config {
	if override.Logging.Level != "" {
		base.Logging = override.Logging
	}

	if override.Database.DSN != "" {
		base.Database = override.Database
	}

	if override.Provider.Name != "" {
		base.Provider.Name = override.Provider.Name
	}
	if override.Provider.Endpoint != "" {
		base.Provider.Endpoint = override.Provider.Endpoint
	}
	if override.Provider.APIKey != "" {
		base.Provider.APIKey = override.Provider.APIKey
	}
	if override.Provider.TimeoutSeconds > 0 {
		base.Provider.TimeoutSeconds = override.Provider.TimeoutSeconds
	}

	if override.Cache.RedisAddr != "" {
		base.Cache.RedisAddr = override.Cache.RedisAddr
	}
	if override.Cache.TTLMinutes > 0 {
		base.Cache.TTLMinutes = override.Cache.TTLMinutes
	}

	base.Engine = mergeEngineConfig(base.Engine, override.Engine)
	return base
}

func mergeEngineConfig(base, override EngineConfig) EngineConfig {
	if override.MaxInputChars > 0 {
		base.MaxInputChars = override.MaxInputChars
	}

	if override.TitleExactBoost > 0 {
		base.TitleExactBoost = override.TitleExactBoost
	}
	if override.TitlePartialBoost > 0 {
		base.TitlePartialBoost = override.TitlePartialBoost
	}
	if override.HeadingExactBoost > 0 {
		base.HeadingExactBoost = override.HeadingExactBoost
	}
	if override.HeadingPartialBoost > 0 {
		base.HeadingPartialBoost = override.HeadingPartialBoost
	}
	if override.IntroExactBoost > 0 {
		base.IntroExactBoost = override.IntroExactBoost
	}
	if override.IntroPartialBoost > 0 {
		base.IntroPartialBoost = override.IntroPartialBoost
	}

	if override.MaxEnriched > 0 {
		base.MaxEnriched = override.MaxEnriched
	}
	if override.BatchSize > 0 {
		base.BatchSize = override.BatchSize
	}
	if override.BatchDelayMs > 0 {
		base.BatchDelayMs = override.BatchDelayMs
	}

	if override.SweetSpotMultiplier > 0 {
		base.SweetSpotMultiplier = override.SweetSpotMultiplier
	}
	if override.SweetSpotMinVolume > 0 {
		base.SweetSpotMinVolume = override.SweetSpotMinVolume
	}
	if override.SweetSpotMaxDifficulty > 0 {
		base.SweetSpotMaxDifficulty = override.SweetSpotMaxDifficulty
	}
	if len(override.VolumeTiers) > 0 {
		base.VolumeTiers = override.VolumeTiers
	}
	if len(override.DifficultyTiers) > 0 {
		base.DifficultyTiers = override.DifficultyTiers
	}
	if len(override.IntentMultipliers) > 0 {
		base.IntentMultipliers = override.IntentMultipliers
	}

	if override.MinSearchVolume > 0 {
		base.MinSearchVolume = override.MinSearchVolume
	}
	if override.MaxDifficulty > 0 {
		base.MaxDifficulty = override.MaxDifficulty
	}
	if override.MinNavigationalVolume > 0 {
		base.MinNavigationalVolume = override.MinNavigationalVolume
	}

	if override.TopK > 0 {
		base.TopK = override.TopK
	}
	if override.TopKDegraded > 0 {
		base.TopKDegraded = override.TopKDegraded
	}
	if override.SimilarityThreshold > 0 {
		base.SimilarityThreshold = override.SimilarityThreshold
	}
	if override.RatioGap > 0 {
		base.RatioGap = override.RatioGap
	}

	if override.TopicCount > 0 {
		base.TopicCount = override.TopicCount
	}
	if override.TopicDecay > 0 {
		base.TopicDecay = override.TopicDecay
	}

	return base
}

func defaultConfig() Config {
	return Config{
		Logging:  LoggingConfig{Level: "info"},
		Database: DatabaseConfig{DSN: ""},
		Provider: ProviderConfig{
			Name:           "seoapi",
			Endpoint:       "https://seo.example.org/v1/keywords/metrics",
			APIKey:         "",
			TimeoutSeconds: 15,
		},
		Cache:  CacheConfig{RedisAddr: "", TTLMinutes: 720},
		Engine: DefaultEngineConfig(),
	}
}

// DefaultEngineConfig returns the tuned pipeline defaults. Library callers
// embedding the engine without YAML config start from these.
func DefaultEngineConfig() EngineConfig {
	return EngineConfig{
		MaxInputChars: 20000,

		TitleExactBoost:     3.0,
		TitlePartialBoost:   1.5,
		HeadingExactBoost:   2.0,
		HeadingPartialBoost: 1.3,
		IntroExactBoost:     1.75,
		IntroPartialBoost:   1.15,

		MaxEnriched:  40,
		BatchSize:    50,
		BatchDelayMs: 200,

		SweetSpotMultiplier:    2.5,
		SweetSpotMinVolume:     500,
		SweetSpotMaxDifficulty: 40,
		VolumeTiers: []VolumeTierConfig{
			{Min: 50000, Multiplier: 2.0},
			{Min: 10000, Multiplier: 1.8},
			{Min: 5000, Multiplier: 1.5},
			{Min: 1000, Multiplier: 1.3},
			{Min: 500, Multiplier: 1.15},
		},
		DifficultyTiers: []DifficultyTierConfig{
			{Below: 20, Multiplier: 1.5},
			{Below: 40, Multiplier: 1.3},
			{Below: 60, Multiplier: 1.1},
		},
		IntentMultipliers: map[string]float64{
			"commercial":    1.5,
			"informational": 1.3,
			"transactional": 1.2,
			"navigational":  1.05,
		},

		MinSearchVolume:       100,
		MaxDifficulty:         80,
		MinNavigationalVolume: 500,

		TopK:                30,
		TopKDegraded:        15,
		SimilarityThreshold: 0.75,
		RatioGap:            50,

		TopicCount: 6,
		TopicDecay: 0.05,
	}
}
