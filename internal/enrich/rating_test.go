package enrich

import (
	"math"
	"strings"
	"testing"
	"time"

	"emarknews/internal/article"
)

var qualityList = []string{"BBC", "CNN", "Reuters"}

func TestCalculateRatingAllBonuses(t *testing.T) {
	now := time.Now()
	a := article.Article{
		SourceName:  "BBC",
		Description: strings.Repeat("a", 250),
		PublishedAt: now,
	}

	got := CalculateRating(a, qualityList, now)
	want := 3.0 + 0.5 + 0.3 + 0.5
	if math.Abs(got-want) > 1e-9 {
		t.Fatalf("CalculateRating = %v, want %v", got, want)
	}
}

func TestCalculateRatingNoBonuses(t *testing.T) {
	now := time.Now()
	a := article.Article{
		SourceName:  "Some Blog",
		Description: "short",
		PublishedAt: now.Add(-48 * time.Hour),
	}

	if got := CalculateRating(a, qualityList, now); got != 3.0 {
		t.Fatalf("CalculateRating = %v, want 3.0", got)
	}
}

func TestCalculateRatingClamped(t *testing.T) {
	now := time.Now()
	a := article.Article{
		SourceName:  "BBC CNN Reuters",
		Description: strings.Repeat("a", 10000),
		PublishedAt: now,
	}

	got := CalculateRating(a, qualityList, now)
	if got < 1.0 || got > 5.0 {
		t.Fatalf("rating %v out of [1.0, 5.0]", got)
	}
}

func TestIsQualitySource(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"BBC", true},
		{"BBC World", true},
		{"bbc world", true},
		{"reuters.com", true},
		{"CNN World", true},
		{"Some Blog", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := isQualitySource(tt.name, qualityList); got != tt.want {
			t.Errorf("isQualitySource(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestCalculateRatingFutureTimestampGetsNoFreshnessBonus(t *testing.T) {
	now := time.Now()
	a := article.Article{
		SourceName:  "Some Blog",
		Description: "short",
		PublishedAt: now.Add(24 * time.Hour),
	}

	if got := CalculateRating(a, qualityList, now); got != 3.0 {
		t.Fatalf("CalculateRating = %v, want 3.0 for future-dated article", got)
	}
}
