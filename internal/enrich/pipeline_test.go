package enrich

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"emarknews/internal/article"
)

type fakeProvider struct {
	failAll bool
}

func (f *fakeProvider) Translate(ctx context.Context, title, description, lang string) (*Translation, error) {
	if f.failAll {
		return nil, errors.New("provider down")
	}
	return &Translation{TranslatedTitle: "t:" + title, TranslatedDescription: "t:" + description, TargetLanguage: lang}, nil
}

func (f *fakeProvider) Summarize(ctx context.Context, title, description string) (*Summary, error) {
	if f.failAll {
		return nil, errors.New("provider down")
	}
	return &Summary{Summary: "sum:" + title, KeyPoints: []string{"p1", "p2"}}, nil
}

func (f *fakeProvider) AnalyzeSentiment(ctx context.Context, title, description string) (*Sentiment, error) {
	if f.failAll {
		return nil, errors.New("provider down")
	}
	return &Sentiment{Sentiment: "positive", Confidence: 0.9, Emotions: []string{"joy"}, Tone: "positive"}, nil
}

func newTestPipeline(p Provider) *Pipeline {
	return NewPipeline(p, nil, Options{
		QualitySources: []string{"BBC"},
		Concurrency:    2,
		BatchSize:      10,
		CallTimeout:    time.Second,
	})
}

func TestTranslatePassThroughWithoutProvider(t *testing.T) {
	p := newTestPipeline(nil)

	got, err := p.Translate(context.Background(), "T", "D", "ko")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.TranslatedTitle != "T" || got.TranslatedDescription != "D" {
		t.Fatalf("want pass-through, got %+v", got)
	}
}

func TestSummarizeStubWithoutProvider(t *testing.T) {
	p := newTestPipeline(nil)

	desc := "This is the first meaningful sentence of the story. This is the second one with more detail. And a third."
	got, err := p.Summarize(context.Background(), "T", desc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Summary == "" {
		t.Fatal("stub summary should not be empty")
	}
	if !strings.Contains(got.Summary, "first meaningful sentence") {
		t.Errorf("stub summary should come from the description, got %q", got.Summary)
	}
	if len(got.KeyPoints) != 0 {
		t.Errorf("keyPoints = %v, want empty", got.KeyPoints)
	}
}

func TestSentimentDefaultWithoutProvider(t *testing.T) {
	p := newTestPipeline(nil)

	got, err := p.AnalyzeSentiment(context.Background(), "T", "D")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Sentiment != "neutral" || got.Confidence != 0.5 {
		t.Fatalf("want neutral default, got %+v", got)
	}
}

func TestTranslateSurfacesProviderErrors(t *testing.T) {
	p := newTestPipeline(&fakeProvider{failAll: true})

	if _, err := p.Translate(context.Background(), "T", "D", "ko"); err == nil {
		t.Fatal("want provider error")
	}
}

func TestApplySetsRatingAndTags(t *testing.T) {
	p := newTestPipeline(nil)
	now := time.Now()
	articles := []article.Article{
		{Title: "Breaking news", SourceName: "BBC", Description: strings.Repeat("x", 250), PublishedAt: now},
		{Title: "Calm story", SourceName: "Blog", Description: "short", PublishedAt: now.Add(-24 * time.Hour)},
	}

	p.Apply(articles)

	if articles[0].Rating <= articles[1].Rating {
		t.Errorf("quality fresh article should outrank stale one: %v vs %v", articles[0].Rating, articles[1].Rating)
	}
	if len(articles[0].Tags) == 0 || articles[0].Tags[0] != "urgent" {
		t.Errorf("tags = %v, want urgent", articles[0].Tags)
	}
	for _, a := range articles {
		if a.Rating < 1.0 || a.Rating > 5.0 {
			t.Errorf("rating %v out of range", a.Rating)
		}
	}
}

func TestEnrichBatchPopulatesOptionalFields(t *testing.T) {
	p := newTestPipeline(&fakeProvider{})
	in := []article.Article{
		{ID: "a1", Title: "One", Description: strings.Repeat("d", 300)},
		{ID: "a2", Title: "Two", Description: strings.Repeat("d", 300)},
	}

	out := p.EnrichBatch(context.Background(), in)

	if len(out) != len(in) {
		t.Fatalf("len = %d, want %d", len(out), len(in))
	}
	for _, a := range out {
		if a.Summary == "" || a.Sentiment == "" {
			t.Errorf("article %s not enriched: %+v", a.ID, a)
		}
	}
	// input slice must stay untouched
	if in[0].Summary != "" {
		t.Error("EnrichBatch mutated its input")
	}
}

func TestEnrichBatchToleratesProviderFailure(t *testing.T) {
	p := newTestPipeline(&fakeProvider{failAll: true})
	in := []article.Article{{ID: "a1", Title: "One", Description: "short"}}

	out := p.EnrichBatch(context.Background(), in)

	if len(out) != 1 {
		t.Fatalf("len = %d, want 1", len(out))
	}
	if out[0].Summary != "" || out[0].Sentiment != "" {
		t.Errorf("failed enrichment should leave fields empty, got %+v", out[0])
	}
}
