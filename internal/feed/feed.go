// Package feed is the per-section entry point: cache lookup, aggregation,
// enrichment and cache write, with a static sample fallback so a valid
// section always returns something renderable.
package feed

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"emarknews/internal/aggregate"
	"emarknews/internal/article"
	"emarknews/internal/enrich"
	"emarknews/internal/logger"
	"emarknews/internal/metrics"
)

// ErrInvalidSection is the only error this service returns; everything
// else degrades to a usable envelope.
var ErrInvalidSection = errors.New("invalid section")

// Cache is the slice of the store the feed path needs. Implementations
// must be best-effort: a miss and a backend error look the same.
type Cache interface {
	Get(ctx context.Context, key string) (string, bool)
	Set(ctx context.Context, key, value string, ttl time.Duration) bool
}

// Service orchestrates one section request end to end.
type Service struct {
	agg    *aggregate.Aggregator
	enrich *enrich.Pipeline
	cache  Cache
	ttl    time.Duration
}

func NewService(agg *aggregate.Aggregator, pipeline *enrich.Pipeline, cache Cache, ttl time.Duration) *Service {
	return &Service{agg: agg, enrich: pipeline, cache: cache, ttl: ttl}
}

func cacheKey(section string) string {
	return "feed:" + section
}

// GetNewsData returns the feed envelope for a section. The section must
// be valid; beyond that the call cannot fail, it only degrades: cache
// miss falls through to live aggregation, zero healthy upstreams fall
// through to sample data.
func (s *Service) GetNewsData(ctx context.Context, section string) (*article.Envelope, error) {
	if !article.ValidSection(section) {
		return nil, ErrInvalidSection
	}

	if cached, ok := s.cache.Get(ctx, cacheKey(section)); ok {
		var env article.Envelope
		if err := json.Unmarshal([]byte(cached), &env); err == nil {
			metrics.Global.IncrementCacheHits()
			env.Source = article.SourceCache
			return &env, nil
		}
		logger.Warn("cached envelope is corrupt, refetching", "section", section)
	}
	metrics.Global.IncrementCacheMisses()

	articles := s.agg.FetchSection(ctx, section)
	if len(articles) == 0 {
		metrics.Global.IncrementSampleFallbacks()
		logger.Warn("all sources failed, serving sample data", "section", section)
		return sampleEnvelope(section), nil
	}

	s.enrich.Apply(articles)

	env := &article.Envelope{
		Section:   section,
		Articles:  articles,
		Total:     len(articles),
		Timestamp: time.Now(),
		Source:    article.SourceLive,
	}
	metrics.Global.AddArticlesServed(len(articles))

	s.writeCache(ctx, section, env)

	if s.enrich.Configured() {
		go s.enrichInBackground(section, env)
	}

	return env, nil
}

// Refresh forces a live aggregation and cache write, bypassing the cache
// read. Used by the preload scheduler.
func (s *Service) Refresh(ctx context.Context, section string) error {
	if !article.ValidSection(section) {
		return ErrInvalidSection
	}

	articles := s.agg.FetchSection(ctx, section)
	if len(articles) == 0 {
		return nil // nothing fresh to cache; old entry ages out on its own
	}

	s.enrich.Apply(articles)
	env := &article.Envelope{
		Section:   section,
		Articles:  articles,
		Total:     len(articles),
		Timestamp: time.Now(),
		Source:    article.SourceLive,
	}
	s.writeCache(ctx, section, env)
	return nil
}

func (s *Service) writeCache(ctx context.Context, section string, env *article.Envelope) {
	data, err := json.Marshal(env)
	if err != nil {
		logger.Error("envelope marshal failed", "section", section, "error", err)
		return
	}
	s.cache.Set(ctx, cacheKey(section), string(data), s.ttl)
}

// enrichInBackground is the detached fire-and-forget leg of the pipeline:
// it AI-enriches a copy of the envelope and replaces the cached entry
// wholesale when done. Errors stay inside this boundary.
func (s *Service) enrichInBackground(section string, env *article.Envelope) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	enriched := s.enrich.EnrichBatch(ctx, env.Articles)

	refreshed := &article.Envelope{
		Section:   section,
		Articles:  enriched,
		Total:     len(enriched),
		Timestamp: time.Now(),
		Source:    article.SourceLive,
	}
	s.writeCache(ctx, section, refreshed)
	logger.Debug("background enrichment complete", "section", section, "articles", len(enriched))
}

// sampleEnvelope is the terminal fallback: a small static payload the
// front end can always render.
func sampleEnvelope(section string) *article.Envelope {
	now := time.Now()
	articles := []article.Article{
		{
			ID:          "sample_" + section + "_1",
			Title:       "Sample News Article",
			Description: "Live sources are temporarily unavailable. This is placeholder content.",
			URL:         "#",
			SourceName:  "EmarkNews",
			PublishedAt: now,
			Rating:      3.0,
			Tags:        []string{},
		},
		{
			ID:          "sample_" + section + "_2",
			Title:       "We will be back shortly",
			Description: "The aggregation pipeline could not reach any upstream source. Cached or live articles will appear on the next refresh.",
			URL:         "#",
			SourceName:  "EmarkNews",
			PublishedAt: now,
			Rating:      3.0,
			Tags:        []string{},
		},
	}

	return &article.Envelope{
		Section:   section,
		Articles:  articles,
		Total:     len(articles),
		Timestamp: now,
		Source:    article.SourceSample,
	}
}
