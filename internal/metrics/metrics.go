package metrics

import (
	"sync"
	"time"
)

// Metrics collects process-wide counters for the aggregation pipeline.
type Metrics struct {
	mu sync.RWMutex

	// Counters
	SourceFetches         int64
	SourceFailures        int64
	CacheHits             int64
	CacheMisses           int64
	EnrichmentSuccesses   int64
	EnrichmentFailures    int64
	ArticlesServed        int64
	SampleFallbacksServed int64

	// Timings
	LastAggregationTime    time.Duration
	TotalAggregationTime   time.Duration
	AverageAggregationTime time.Duration
	AggregationCount       int64

	// Status
	LastRefreshTime time.Time
	LastErrorTime   time.Time
	LastError       string
}

var Global = &Metrics{}

func (m *Metrics) IncrementSourceFetches() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SourceFetches++
}

func (m *Metrics) IncrementSourceFailures() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SourceFailures++
}

func (m *Metrics) IncrementCacheHits() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CacheHits++
}

func (m *Metrics) IncrementCacheMisses() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CacheMisses++
}

func (m *Metrics) IncrementEnrichmentSuccesses() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.EnrichmentSuccesses++
}

func (m *Metrics) IncrementEnrichmentFailures() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.EnrichmentFailures++
}

func (m *Metrics) AddArticlesServed(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ArticlesServed += int64(n)
}

func (m *Metrics) IncrementSampleFallbacks() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SampleFallbacksServed++
}

func (m *Metrics) RecordAggregationTime(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.LastAggregationTime = d
	m.TotalAggregationTime += d
	m.AggregationCount++
	m.AverageAggregationTime = m.TotalAggregationTime / time.Duration(m.AggregationCount)
	m.LastRefreshTime = time.Now()
}

func (m *Metrics) SetError(err string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LastError = err
	m.LastErrorTime = time.Now()
}

func (m *Metrics) GetStats() map[string]interface{} {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return map[string]interface{}{
		"source_fetches":          m.SourceFetches,
		"source_failures":         m.SourceFailures,
		"cache_hits":              m.CacheHits,
		"cache_misses":            m.CacheMisses,
		"enrichment_successes":    m.EnrichmentSuccesses,
		"enrichment_failures":     m.EnrichmentFailures,
		"articles_served":         m.ArticlesServed,
		"sample_fallbacks_served": m.SampleFallbacksServed,
		"last_aggregation_ms":     m.LastAggregationTime.Milliseconds(),
		"average_aggregation_ms":  m.AverageAggregationTime.Milliseconds(),
		"aggregation_count":       m.AggregationCount,
		"last_refresh_time":       m.LastRefreshTime,
		"last_error":              m.LastError,
		"last_error_time":         m.LastErrorTime,
	}
}
