package enrich

import (
	"strings"
	"time"
	"unicode/utf8"

	"emarknews/internal/article"
)

// Rating heuristic bounds and bonuses. The computation is deterministic
// and needs no external call, so every article always carries a rating
// even when AI enrichment is unavailable.
const (
	ratingBase       = 3.0
	ratingMin        = 1.0
	ratingMax        = 5.0
	bonusQuality     = 0.5
	bonusLongBody    = 0.3
	bonusFresh       = 0.5
	longBodyRunes    = 200
	freshnessHorizon = 6 * time.Hour
)

// CalculateRating scores one article against the quality allow-list.
func CalculateRating(a article.Article, qualitySources []string, now time.Time) float64 {
	rating := ratingBase

	if isQualitySource(a.SourceName, qualitySources) {
		rating += bonusQuality
	}
	if utf8.RuneCountInString(a.Description) > longBodyRunes {
		rating += bonusLongBody
	}
	if age := now.Sub(a.PublishedAt); age >= 0 && age < freshnessHorizon {
		rating += bonusFresh
	}

	if rating > ratingMax {
		rating = ratingMax
	}
	if rating < ratingMin {
		rating = ratingMin
	}
	return rating
}

// isQualitySource matches case-insensitively and accepts partial matches
// so both "BBC World" and domain-style labels like "reuters.com" earn the
// bonus for their allow-list entry.
func isQualitySource(name string, allow []string) bool {
	lower := strings.ToLower(strings.TrimSpace(name))
	if lower == "" {
		return false
	}
	for _, q := range allow {
		q = strings.ToLower(strings.TrimSpace(q))
		if q == "" {
			continue
		}
		if lower == q || strings.Contains(lower, q) {
			return true
		}
	}
	return false
}
