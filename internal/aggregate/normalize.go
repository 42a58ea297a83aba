package aggregate

import (
	"fmt"
	"strings"
	"time"

	"emarknews/internal/article"
	"emarknews/internal/fetcher"
)

const maxDescriptionRunes = 600

// Normalize maps one raw upstream item onto the canonical article shape.
// Missing fields get placeholders, never empty required fields: no article
// is dropped here. IDs are unique within a batch but not stable across
// fetches.
func Normalize(it fetcher.Item, now time.Time, seq int) article.Article {
	title := strings.TrimSpace(it.Title)
	if title == "" {
		title = "No title"
	}

	desc := truncateRunes(stripHTML(it.Description), maxDescriptionRunes)

	link := it.URL
	if link == "" {
		link = "#"
	}

	published := now
	if it.PublishedAt != nil {
		published = *it.PublishedAt
	}

	return article.Article{
		ID:          fmt.Sprintf("%s_%d_%d", sourceSlug(it.SourceName), now.UnixMilli(), seq),
		Title:       title,
		Description: desc,
		URL:         link,
		ImageURL:    it.ImageURL,
		SourceName:  it.SourceName,
		PublishedAt: published,
		Rating:      3.0,
		Tags:        []string{},
	}
}

func sourceSlug(name string) string {
	if name == "" {
		return "unknown"
	}
	return strings.ToLower(strings.ReplaceAll(strings.TrimSpace(name), " ", "-"))
}

// stripHTML drops tags and collapses whitespace. Feed descriptions often
// carry markup the front end must not render.
func stripHTML(s string) string {
	var b strings.Builder
	inTag := false
	for _, r := range s {
		switch {
		case r == '<':
			inTag = true
		case r == '>':
			inTag = false
		case !inTag:
			b.WriteRune(r)
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

func truncateRunes(s string, limit int) string {
	rs := []rune(s)
	if len(rs) <= limit {
		return s
	}
	if limit <= 3 {
		return string(rs[:limit])
	}
	return string(rs[:limit-3]) + "..."
}
