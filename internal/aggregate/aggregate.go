// Package aggregate fans out source fetches for a section and folds the
// partial results into one normalized article list.
package aggregate

import (
	"context"
	"sync"
	"time"

	"emarknews/internal/article"
	"emarknews/internal/fetcher"
	"emarknews/internal/logger"
	"emarknews/internal/metrics"
)

// Aggregator owns the per-section source lists and the fan-out policy:
// all sources are fetched concurrently, the call waits for every source to
// settle, and individual failures only shorten the result. A shorter list
// beats no list.
type Aggregator struct {
	fetch       fetcher.Fetcher
	sources     map[string][]fetcher.Source
	maxArticles int
	restEnabled bool
}

func New(fetch fetcher.Fetcher, sources map[string][]fetcher.Source, maxArticles int, restEnabled bool) *Aggregator {
	return &Aggregator{
		fetch:       fetch,
		sources:     sources,
		maxArticles: maxArticles,
		restEnabled: restEnabled,
	}
}

// SourcesFor returns the configured list for a section, falling back to
// the world list for sections without dedicated sources. The fallback is
// policy: every valid section returns results while any upstream is
// healthy. REST sources are skipped entirely when no API key is
// configured.
func (a *Aggregator) SourcesFor(section string) []fetcher.Source {
	srcs, ok := a.sources[section]
	if !ok || len(srcs) == 0 {
		srcs = a.sources["world"]
	}
	if a.restEnabled {
		return srcs
	}

	out := make([]fetcher.Source, 0, len(srcs))
	for _, s := range srcs {
		if s.Kind == fetcher.KindREST {
			continue
		}
		out = append(out, s)
	}
	return out
}

// FetchSection fetches, normalizes and trims all articles for a section.
// Sources are merged in configuration order; each source's relative item
// order is preserved.
func (a *Aggregator) FetchSection(ctx context.Context, section string) []article.Article {
	start := time.Now()
	defer func() {
		metrics.Global.RecordAggregationTime(time.Since(start))
	}()

	srcs := a.SourcesFor(section)
	results := make([][]fetcher.Item, len(srcs))

	var wg sync.WaitGroup
	for i, src := range srcs {
		wg.Add(1)
		go func(i int, src fetcher.Source) {
			defer wg.Done()
			metrics.Global.IncrementSourceFetches()

			items, err := a.fetch.Fetch(ctx, src)
			if err != nil {
				metrics.Global.IncrementSourceFailures()
				logger.Warn("source fetch failed", "source", src.Name, "section", section, "error", err)
				return
			}
			results[i] = items
			logger.Debug("source fetched", "source", src.Name, "items", len(items))
		}(i, src)
	}
	wg.Wait()

	now := time.Now()
	articles := make([]article.Article, 0, a.maxArticles)
	seq := 0
	for _, items := range results {
		for _, it := range items {
			articles = append(articles, Normalize(it, now, seq))
			seq++
		}
	}

	if len(articles) > a.maxArticles {
		articles = articles[:a.maxArticles]
	}
	return articles
}
