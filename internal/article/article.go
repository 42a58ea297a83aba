// Package article defines the canonical article record and the feed
// response envelope shared by the aggregation pipeline and the HTTP layer.
package article

import "time"

// Provenance labels recorded in Envelope.Source.
const (
	SourceLive   = "live-aggregation"
	SourceSample = "sample-data"
	SourceCache  = "cache"
)

// Article is the canonical unit produced by normalization. Articles are
// built fresh on every cache-miss aggregation and never mutated after
// being placed into an Envelope.
type Article struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	URL         string    `json:"url"`
	ImageURL    string    `json:"imageUrl,omitempty"`
	SourceName  string    `json:"source"`
	PublishedAt time.Time `json:"publishedAt"`
	Rating      float64   `json:"rating"`
	Tags        []string  `json:"tags"`

	// Populated only when the enrichment provider succeeds.
	TranslatedTitle       string   `json:"translatedTitle,omitempty"`
	TranslatedDescription string   `json:"translatedDescription,omitempty"`
	Summary               string   `json:"summary,omitempty"`
	KeyPoints             []string `json:"keyPoints,omitempty"`
	Sentiment             string   `json:"sentiment,omitempty"`
	SentimentConfidence   float64  `json:"sentimentConfidence,omitempty"`
	Tone                  string   `json:"tone,omitempty"`
}

// Envelope is the per-section feed response. Once cached it is replaced
// wholesale on refresh, never patched.
type Envelope struct {
	Section   string    `json:"section"`
	Articles  []Article `json:"articles"`
	Total     int       `json:"total"`
	Timestamp time.Time `json:"timestamp"`
	Source    string    `json:"source"`
}

// Sections is the fixed set of valid section keys. A section selects a
// source list and a cache partition; unknown sections are rejected before
// any fetch is attempted.
var Sections = []string{"world", "kr", "japan", "tech", "business", "buzz"}

var sectionSet = func() map[string]struct{} {
	m := make(map[string]struct{}, len(Sections))
	for _, s := range Sections {
		m[s] = struct{}{}
	}
	return m
}()

// ValidSection reports whether s is a known section key.
func ValidSection(s string) bool {
	_, ok := sectionSet[s]
	return ok
}
