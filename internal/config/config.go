package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	// Server settings
	Port string

	// Upstream credentials. All optional: a missing key disables the
	// corresponding upstream and the pipeline degrades instead of failing.
	GeminiAPIKey       string
	NewsAPIKey         string
	ExchangeRateAPIKey string

	// Cache settings
	RedisURL string
	CacheTTL time.Duration

	// Aggregation settings
	FeedsConfigPath string
	MaxArticles     int
	PerSourceItems  int
	SourceTimeout   time.Duration

	// Enrichment settings
	QualitySources    []string // sources that earn the rating bonus
	EnrichConcurrency int      // parallel provider calls in background mode
	EnrichBatch       int      // articles enriched per refresh
	EnrichTimeout     time.Duration

	// Cache preload schedule (robfig/cron spec); just under the cache TTL
	// so the front end usually hits warm cache.
	PreloadSpec string

	Debug bool
}

func Load() (*Config, error) {
	cfg := &Config{
		Port:              getEnvOrDefault("PORT", "8080"),
		RedisURL:          os.Getenv("REDIS_URL"),
		CacheTTL:          getEnvDurationOrDefault("CACHE_TTL", 600*time.Second),
		FeedsConfigPath:   getEnvOrDefault("FEEDS_CONFIG_PATH", "configs/feeds.yaml"),
		MaxArticles:       getEnvIntOrDefault("MAX_ARTICLES", 20),
		PerSourceItems:    getEnvIntOrDefault("PER_SOURCE_ITEMS", 10),
		SourceTimeout:     getEnvDurationOrDefault("SOURCE_TIMEOUT", 5*time.Second),
		EnrichConcurrency: getEnvIntOrDefault("ENRICH_CONCURRENCY", 3),
		EnrichBatch:       getEnvIntOrDefault("ENRICH_BATCH", 5),
		EnrichTimeout:     getEnvDurationOrDefault("ENRICH_TIMEOUT", 30*time.Second),
		PreloadSpec:       getEnvOrDefault("PRELOAD_SPEC", "@every 9m50s"),
		QualitySources:    []string{"BBC", "CNN", "Reuters"},
	}

	cfg.GeminiAPIKey = os.Getenv("GEMINI_API_KEY")
	cfg.NewsAPIKey = os.Getenv("NEWS_API_KEY")
	cfg.ExchangeRateAPIKey = os.Getenv("EXCHANGE_RATE_API_KEY")

	if v := os.Getenv("QUALITY_SOURCES"); v != "" {
		var list []string
		for _, s := range strings.Split(v, ",") {
			if s = strings.TrimSpace(s); s != "" {
				list = append(list, s)
			}
		}
		if len(list) > 0 {
			cfg.QualitySources = list
		}
	}

	if os.Getenv("DEBUG") == "true" {
		cfg.Debug = true
	}

	return cfg, cfg.Validate()
}

func (c *Config) Validate() error {
	if c.MaxArticles <= 0 {
		return fmt.Errorf("MAX_ARTICLES must be positive")
	}
	if c.SourceTimeout <= 0 {
		return fmt.Errorf("SOURCE_TIMEOUT must be positive")
	}
	if c.CacheTTL <= 0 {
		return fmt.Errorf("CACHE_TTL must be positive")
	}
	return nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil && d > 0 {
			return d
		}
	}
	return defaultValue
}
