// Package fetcher performs bounded-time fetches against single upstream
// sources. Failures are returned as typed errors and never propagate past
// the aggregator boundary.
package fetcher

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"
)

// Failure kinds. Callers classify with errors.Is.
var (
	ErrTimeout  = errors.New("upstream timeout")
	ErrUpstream = errors.New("upstream error")
	ErrParse    = errors.New("parse error")
)

const maxResponseBytes = 2 << 20 // 2MB

// Item is one raw upstream entry before normalization. Zero values mark
// fields the upstream did not provide.
type Item struct {
	Title       string
	Description string
	URL         string
	ImageURL    string
	SourceName  string
	PublishedAt *time.Time
}

// Fetcher fetches all items for one source.
type Fetcher interface {
	Fetch(ctx context.Context, src Source) ([]Item, error)
}

// Client fetches RSS feeds via gofeed and REST news APIs over plain HTTP.
type Client struct {
	parser     *gofeed.Parser
	http       *http.Client
	newsAPIKey string
	perSource  int
	timeout    time.Duration
}

func NewClient(newsAPIKey string, perSource int, timeout time.Duration) *Client {
	return &Client{
		parser:     gofeed.NewParser(),
		http:       &http.Client{Timeout: timeout},
		newsAPIKey: newsAPIKey,
		perSource:  perSource,
		timeout:    timeout,
	}
}

// Fetch returns the raw items for one source or a typed failure. A slow
// source is cut off at the configured timeout and reported as ErrTimeout.
func (c *Client) Fetch(ctx context.Context, src Source) ([]Item, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	switch src.Kind {
	case KindREST:
		return c.fetchREST(ctx, src)
	default:
		return c.fetchRSS(ctx, src)
	}
}

func (c *Client) fetchRSS(ctx context.Context, src Source) ([]Item, error) {
	feed, err := c.parser.ParseURLWithContext(src.URL, ctx)
	if err != nil {
		return nil, classifyError(ctx, src, err)
	}

	items := feed.Items
	if len(items) > c.perSource {
		items = items[:c.perSource]
	}

	out := make([]Item, 0, len(items))
	for _, it := range items {
		desc := it.Content
		if desc == "" {
			desc = it.Description
		}

		item := Item{
			Title:       it.Title,
			Description: desc,
			URL:         it.Link,
			SourceName:  src.Name,
			PublishedAt: it.PublishedParsed,
		}
		if it.Image != nil {
			item.ImageURL = it.Image.URL
		}
		out = append(out, item)
	}
	return out, nil
}

// newsAPIResponse mirrors the newsapi.org top-headlines payload.
type newsAPIResponse struct {
	Status   string `json:"status"`
	Articles []struct {
		Source struct {
			Name string `json:"name"`
		} `json:"source"`
		Title       string `json:"title"`
		Description string `json:"description"`
		URL         string `json:"url"`
		URLToImage  string `json:"urlToImage"`
		PublishedAt string `json:"publishedAt"`
	} `json:"articles"`
}

func (c *Client) fetchREST(ctx context.Context, src Source) ([]Item, error) {
	reqURL := src.URL
	sep := "?"
	if strings.Contains(reqURL, "?") {
		sep = "&"
	}
	reqURL += sep + "apiKey=" + url.QueryEscape(c.newsAPIKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrUpstream, src.Name, err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, classifyError(ctx, src, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %s: status %d", ErrUpstream, src.Name, resp.StatusCode)
	}

	var payload newsAPIResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(&payload); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrParse, src.Name, err)
	}

	articles := payload.Articles
	if len(articles) > c.perSource {
		articles = articles[:c.perSource]
	}

	out := make([]Item, 0, len(articles))
	for _, a := range articles {
		name := a.Source.Name
		if name == "" {
			name = "Unknown"
		}

		item := Item{
			Title:       a.Title,
			Description: a.Description,
			URL:         a.URL,
			ImageURL:    a.URLToImage,
			SourceName:  name,
		}
		if t, err := time.Parse(time.RFC3339, a.PublishedAt); err == nil {
			item.PublishedAt = &t
		}
		out = append(out, item)
	}
	return out, nil
}

// classifyError maps transport and decode failures onto the fetcher's
// error taxonomy.
func classifyError(ctx context.Context, src Source, err error) error {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) || errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %s", ErrTimeout, src.Name)
	}

	var httpErr gofeed.HTTPError
	if errors.As(err, &httpErr) {
		return fmt.Errorf("%w: %s: status %d", ErrUpstream, src.Name, httpErr.StatusCode)
	}

	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		if urlErr.Timeout() {
			return fmt.Errorf("%w: %s", ErrTimeout, src.Name)
		}
		return fmt.Errorf("%w: %s: %v", ErrUpstream, src.Name, urlErr.Err)
	}

	return fmt.Errorf("%w: %s: %v", ErrParse, src.Name, err)
}
