package enrich

import (
	"context"
	"strings"
)

// Translation is the result of a translate call.
type Translation struct {
	TranslatedTitle       string `json:"translatedTitle"`
	TranslatedDescription string `json:"translatedDescription"`
	TargetLanguage        string `json:"targetLanguage,omitempty"`
}

// Summary is the result of a summarize call.
type Summary struct {
	Summary   string   `json:"summary"`
	KeyPoints []string `json:"keyPoints"`
}

// Sentiment is the result of a sentiment-analysis call.
type Sentiment struct {
	Sentiment  string   `json:"sentiment"`
	Confidence float64  `json:"confidence"`
	Emotions   []string `json:"emotions"`
	Tone       string   `json:"tone"`
}

// Provider is a hosted language-model backend. Implementations must keep
// failures inside the returned error; they never panic across this
// boundary.
type Provider interface {
	Translate(ctx context.Context, title, description, targetLanguage string) (*Translation, error)
	Summarize(ctx context.Context, title, description string) (*Summary, error)
	AnalyzeSentiment(ctx context.Context, title, description string) (*Sentiment, error)
}

// ContentExtractor resolves an article URL to its full body text. Used to
// feed the summarizer something better than a one-line RSS description.
type ContentExtractor interface {
	Extract(ctx context.Context, url string) (string, error)
}

// fallbackSummary picks the first substantial sentences of the content
// when no AI summary is available.
func fallbackSummary(content string) string {
	c := strings.TrimSpace(content)
	if c == "" {
		return ""
	}
	sentences := strings.Split(c, ".")
	var picked []string
	for _, s := range sentences {
		s = strings.TrimSpace(s)
		if len(s) < 25 {
			continue
		}
		picked = append(picked, s)
		if len(picked) >= 2 {
			break
		}
	}
	if len(picked) == 0 {
		rs := []rune(c)
		if len(rs) > 160 {
			return string(rs[:160]) + "..."
		}
		return c
	}
	return strings.Join(picked, ". ") + "."
}
