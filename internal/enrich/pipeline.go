// Package enrich attaches ratings, tags and optional AI-derived fields to
// articles. Rating and tagging are synchronous and always succeed; AI
// enrichment degrades to stubs whenever the provider is missing or fails.
package enrich

import (
	"context"
	"sync"
	"time"

	"emarknews/internal/article"
	"emarknews/internal/logger"
	"emarknews/internal/metrics"
)

// Options configures a Pipeline.
type Options struct {
	QualitySources []string
	LabelRules     []LabelRule
	Concurrency    int // parallel provider calls in batch mode
	BatchSize      int // articles AI-enriched per batch
	CallTimeout    time.Duration
}

// Pipeline applies the enrichment steps. A nil provider is valid and
// means every AI path degrades to its stub.
type Pipeline struct {
	provider Provider
	extract  ContentExtractor
	opts     Options
}

func NewPipeline(provider Provider, extract ContentExtractor, opts Options) *Pipeline {
	if opts.Concurrency <= 0 {
		opts.Concurrency = 3
	}
	if opts.BatchSize <= 0 {
		opts.BatchSize = 5
	}
	if opts.CallTimeout <= 0 {
		opts.CallTimeout = 30 * time.Second
	}
	if opts.LabelRules == nil {
		opts.LabelRules = DefaultLabelRules()
	}
	return &Pipeline{provider: provider, extract: extract, opts: opts}
}

// Configured reports whether an AI provider credential is available.
func (p *Pipeline) Configured() bool {
	return p.provider != nil
}

// Apply computes rating and tags for every article in place. This step
// never fails and never calls out.
func (p *Pipeline) Apply(articles []article.Article) {
	now := time.Now()
	for i := range articles {
		articles[i].Rating = CalculateRating(articles[i], p.opts.QualitySources, now)
		if tags := ApplyLabels(articles[i], p.opts.LabelRules); len(tags) > 0 {
			articles[i].Tags = tags
		}
	}
}

// Translate proxies to the provider. Without a credential the input
// passes through unchanged, which the front end renders as-is.
func (p *Pipeline) Translate(ctx context.Context, title, description, targetLanguage string) (*Translation, error) {
	if p.provider == nil {
		return &Translation{
			TranslatedTitle:       title,
			TranslatedDescription: description,
			TargetLanguage:        targetLanguage,
		}, nil
	}

	ctx, cancel := context.WithTimeout(ctx, p.opts.CallTimeout)
	defer cancel()

	t, err := p.provider.Translate(ctx, title, description, targetLanguage)
	if err != nil {
		metrics.Global.IncrementEnrichmentFailures()
		return nil, err
	}
	metrics.Global.IncrementEnrichmentSuccesses()
	return t, nil
}

// Summarize proxies to the provider, degrading to a leading-sentences
// stub without a credential.
func (p *Pipeline) Summarize(ctx context.Context, title, description string) (*Summary, error) {
	if p.provider == nil {
		return &Summary{Summary: fallbackSummary(description), KeyPoints: []string{}}, nil
	}

	ctx, cancel := context.WithTimeout(ctx, p.opts.CallTimeout)
	defer cancel()

	s, err := p.provider.Summarize(ctx, title, description)
	if err != nil {
		metrics.Global.IncrementEnrichmentFailures()
		return nil, err
	}
	metrics.Global.IncrementEnrichmentSuccesses()
	return s, nil
}

// AnalyzeSentiment proxies to the provider, degrading to a neutral
// default without a credential.
func (p *Pipeline) AnalyzeSentiment(ctx context.Context, title, description string) (*Sentiment, error) {
	if p.provider == nil {
		return &Sentiment{Sentiment: "neutral", Confidence: 0.5, Emotions: []string{}, Tone: "objective"}, nil
	}

	ctx, cancel := context.WithTimeout(ctx, p.opts.CallTimeout)
	defer cancel()

	s, err := p.provider.AnalyzeSentiment(ctx, title, description)
	if err != nil {
		metrics.Global.IncrementEnrichmentFailures()
		return nil, err
	}
	metrics.Global.IncrementEnrichmentSuccesses()
	return s, nil
}

// EnrichBatch runs AI summary and sentiment over the first BatchSize
// articles with bounded concurrency and returns the enriched copy. Called
// synchronously from per-article flows and wrapped in a detached goroutine
// by the feed path; individual failures leave the optional fields empty.
func (p *Pipeline) EnrichBatch(ctx context.Context, articles []article.Article) []article.Article {
	out := make([]article.Article, len(articles))
	copy(out, articles)

	if p.provider == nil {
		return out
	}

	limit := p.opts.BatchSize
	if limit > len(out) {
		limit = len(out)
	}

	var wg sync.WaitGroup
	sem := make(chan struct{}, p.opts.Concurrency)
	for i := 0; i < limit; i++ {
		wg.Add(1)
		sem <- struct{}{}
		go func(i int) {
			defer wg.Done()
			defer func() { <-sem }()
			p.enrichOne(ctx, &out[i])
		}(i)
	}
	wg.Wait()
	return out
}

func (p *Pipeline) enrichOne(ctx context.Context, a *article.Article) {
	content := a.Description

	// A one-line RSS description makes a poor summarization input; try
	// the full article body first.
	if len(content) < 200 && p.extract != nil && a.URL != "" && a.URL != "#" {
		if full, err := p.extract.Extract(ctx, a.URL); err == nil && len(full) > len(content) {
			content = full
		} else if err != nil {
			logger.Debug("content extraction failed", "url", a.URL, "error", err)
		}
	}

	if s, err := p.Summarize(ctx, a.Title, content); err == nil {
		a.Summary = s.Summary
		a.KeyPoints = s.KeyPoints
	} else {
		logger.Warn("summary enrichment failed", "article", a.ID, "error", err)
	}

	if s, err := p.AnalyzeSentiment(ctx, a.Title, content); err == nil {
		a.Sentiment = s.Sentiment
		a.SentimentConfidence = s.Confidence
		a.Tone = s.Tone
	} else {
		logger.Warn("sentiment enrichment failed", "article", a.ID, "error", err)
	}
}
