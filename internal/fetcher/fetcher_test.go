package fetcher

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

const sampleRSS = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
  <channel>
    <title>Test Feed</title>
    <item>
      <title>First story</title>
      <description>&lt;p&gt;Body one&lt;/p&gt;</description>
      <link>https://example.com/1</link>
      <pubDate>Mon, 02 Jan 2006 15:04:05 GMT</pubDate>
    </item>
    <item>
      <title>Second story</title>
      <description>Body two</description>
      <link>https://example.com/2</link>
    </item>
  </channel>
</rss>`

func TestFetchRSS(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/rss+xml")
		w.Write([]byte(sampleRSS))
	}))
	defer srv.Close()

	c := NewClient("", 10, 5*time.Second)
	items, err := c.Fetch(context.Background(), Source{URL: srv.URL, Name: "Test Feed", Kind: KindRSS})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("len = %d, want 2", len(items))
	}
	if items[0].Title != "First story" || items[0].URL != "https://example.com/1" {
		t.Errorf("got %+v", items[0])
	}
	if items[0].SourceName != "Test Feed" {
		t.Errorf("sourceName = %q, want configured name", items[0].SourceName)
	}
	if items[0].PublishedAt == nil {
		t.Error("publishedAt should be parsed")
	}
	if items[1].PublishedAt != nil {
		t.Error("missing pubDate should stay nil")
	}
}

func TestFetchRSSRespectsPerSourceLimit(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(sampleRSS))
	}))
	defer srv.Close()

	c := NewClient("", 1, 5*time.Second)
	items, err := c.Fetch(context.Background(), Source{URL: srv.URL, Name: "Test", Kind: KindRSS})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("len = %d, want 1", len(items))
	}
}

func TestFetchRSSServerErrorIsUpstream(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewClient("", 10, 5*time.Second)
	_, err := c.Fetch(context.Background(), Source{URL: srv.URL, Name: "Test", Kind: KindRSS})
	if !errors.Is(err, ErrUpstream) {
		t.Fatalf("err = %v, want ErrUpstream", err)
	}
}

func TestFetchRSSBadBodyIsParseError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("this is not a feed"))
	}))
	defer srv.Close()

	c := NewClient("", 10, 5*time.Second)
	_, err := c.Fetch(context.Background(), Source{URL: srv.URL, Name: "Test", Kind: KindRSS})
	if !errors.Is(err, ErrParse) {
		t.Fatalf("err = %v, want ErrParse", err)
	}
}

func TestFetchRSSTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(300 * time.Millisecond)
		w.Write([]byte(sampleRSS))
	}))
	defer srv.Close()

	c := NewClient("", 10, 50*time.Millisecond)
	_, err := c.Fetch(context.Background(), Source{URL: srv.URL, Name: "Slow", Kind: KindRSS})
	if !errors.Is(err, ErrTimeout) {
		t.Fatalf("err = %v, want ErrTimeout", err)
	}
}

func TestFetchREST(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("apiKey") != "secret" {
			t.Errorf("apiKey = %q, want secret", r.URL.Query().Get("apiKey"))
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"status": "ok",
			"articles": [
				{"source": {"name": "CNN"}, "title": "One", "description": "d1", "url": "https://example.com/1", "publishedAt": "2026-08-29T10:00:00Z"},
				{"source": {"name": ""}, "title": "Two", "description": "d2", "url": "https://example.com/2", "publishedAt": "bad-date"}
			]
		}`))
	}))
	defer srv.Close()

	c := NewClient("secret", 10, 5*time.Second)
	items, err := c.Fetch(context.Background(), Source{URL: srv.URL + "/v2/top-headlines?country=us", Name: "NewsAPI", Kind: KindREST})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("len = %d, want 2", len(items))
	}
	if items[0].SourceName != "CNN" {
		t.Errorf("sourceName = %q, want CNN", items[0].SourceName)
	}
	if items[0].PublishedAt == nil {
		t.Error("valid publishedAt should be parsed")
	}
	if items[1].SourceName != "Unknown" {
		t.Errorf("sourceName = %q, want Unknown for blank upstream name", items[1].SourceName)
	}
	if items[1].PublishedAt != nil {
		t.Error("unparseable publishedAt should stay nil")
	}
}

func TestFetchRESTServerErrorIsUpstream(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := NewClient("secret", 10, 5*time.Second)
	_, err := c.Fetch(context.Background(), Source{URL: srv.URL, Name: "NewsAPI", Kind: KindREST})
	if !errors.Is(err, ErrUpstream) {
		t.Fatalf("err = %v, want ErrUpstream", err)
	}
}

func TestFetchRESTBadJSONIsParseError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("{"))
	}))
	defer srv.Close()

	c := NewClient("secret", 10, 5*time.Second)
	_, err := c.Fetch(context.Background(), Source{URL: srv.URL, Name: "NewsAPI", Kind: KindREST})
	if !errors.Is(err, ErrParse) {
		t.Fatalf("err = %v, want ErrParse", err)
	}
}
