package aggregate

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"emarknews/internal/fetcher"
)

// stubFetcher serves canned items per source URL and fails the rest.
type stubFetcher struct {
	items map[string][]fetcher.Item
}

func (s *stubFetcher) Fetch(ctx context.Context, src fetcher.Source) ([]fetcher.Item, error) {
	items, ok := s.items[src.URL]
	if !ok {
		return nil, errors.New("unreachable")
	}
	return items, nil
}

func testSources() map[string][]fetcher.Source {
	return map[string][]fetcher.Source{
		"world": {
			{URL: "http://a", Name: "A", Kind: fetcher.KindRSS},
			{URL: "http://b", Name: "B", Kind: fetcher.KindRSS},
		},
		"tech": {
			{URL: "http://t", Name: "T", Kind: fetcher.KindRSS},
			{URL: "http://rest", Name: "R", Kind: fetcher.KindREST},
		},
	}
}

func itemsNamed(prefix string, n int) []fetcher.Item {
	out := make([]fetcher.Item, n)
	for i := range out {
		out[i] = fetcher.Item{Title: fmt.Sprintf("%s-%d", prefix, i), SourceName: prefix}
	}
	return out
}

func TestFetchSectionMergesInConfigOrder(t *testing.T) {
	fetch := &stubFetcher{items: map[string][]fetcher.Item{
		"http://a": itemsNamed("A", 2),
		"http://b": itemsNamed("B", 2),
	}}
	agg := New(fetch, testSources(), 20, true)

	got := agg.FetchSection(context.Background(), "world")

	if len(got) != 4 {
		t.Fatalf("len = %d, want 4", len(got))
	}
	wantTitles := []string{"A-0", "A-1", "B-0", "B-1"}
	for i, w := range wantTitles {
		if got[i].Title != w {
			t.Errorf("articles[%d].Title = %q, want %q", i, got[i].Title, w)
		}
	}
}

func TestFetchSectionToleratesPartialFailure(t *testing.T) {
	// only source B answers; A fails
	fetch := &stubFetcher{items: map[string][]fetcher.Item{
		"http://b": itemsNamed("B", 3),
	}}
	agg := New(fetch, testSources(), 20, true)

	got := agg.FetchSection(context.Background(), "world")

	if len(got) != 3 {
		t.Fatalf("len = %d, want 3", len(got))
	}
	for _, a := range got {
		if a.SourceName != "B" {
			t.Errorf("unexpected source %q", a.SourceName)
		}
	}
}

func TestFetchSectionAllSourcesFailReturnsEmpty(t *testing.T) {
	agg := New(&stubFetcher{}, testSources(), 20, true)

	if got := agg.FetchSection(context.Background(), "world"); len(got) != 0 {
		t.Fatalf("len = %d, want 0", len(got))
	}
}

func TestFetchSectionTrimsToMax(t *testing.T) {
	fetch := &stubFetcher{items: map[string][]fetcher.Item{
		"http://a": itemsNamed("A", 30),
		"http://b": itemsNamed("B", 30),
	}}
	agg := New(fetch, testSources(), 20, true)

	if got := agg.FetchSection(context.Background(), "world"); len(got) != 20 {
		t.Fatalf("len = %d, want 20", len(got))
	}
}

func TestSourcesForFallsBackToWorld(t *testing.T) {
	agg := New(&stubFetcher{}, testSources(), 20, true)

	got := agg.SourcesFor("buzz")
	if len(got) != 2 || got[0].Name != "A" {
		t.Fatalf("got %v, want world sources", got)
	}
}

func TestSourcesForSkipsRESTWithoutKey(t *testing.T) {
	agg := New(&stubFetcher{}, testSources(), 20, false)

	got := agg.SourcesFor("tech")
	if len(got) != 1 || got[0].Kind != fetcher.KindRSS {
		t.Fatalf("got %v, want RSS sources only", got)
	}
}
