package enrich

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

const (
	geminiModel     = "gemini-1.5-flash"
	maxPromptRunes  = 6000
	defaultLanguage = "ko"
)

// GeminiProvider implements Provider against the hosted Gemini API.
type GeminiProvider struct {
	client *genai.Client
}

func NewGeminiProvider(apiKey string) (*GeminiProvider, error) {
	ctx := context.Background()
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return &GeminiProvider{client: client}, nil
}

func (p *GeminiProvider) Close() {
	if p.client != nil {
		p.client.Close()
	}
}

var languageNames = map[string]string{
	"ko": "Korean",
	"en": "English",
	"ja": "Japanese",
	"zh": "Chinese",
	"es": "Spanish",
	"fr": "French",
}

func (p *GeminiProvider) Translate(ctx context.Context, title, description, targetLanguage string) (*Translation, error) {
	if targetLanguage == "" {
		targetLanguage = defaultLanguage
	}
	langName, ok := languageNames[targetLanguage]
	if !ok {
		langName = languageNames[defaultLanguage]
		targetLanguage = defaultLanguage
	}

	prompt := fmt.Sprintf(`You are a professional news translator. Translate the following news article into %s, keeping the tone and nuance natural. Do not translate brand or organization names.

Title: %s

Body: %s

Respond with strict JSON only, no markdown, in this exact shape:
{"translatedTitle": "...", "translatedDescription": "..."}`, langName, title, sanitizeContent(description))

	raw, err := p.generate(ctx, prompt)
	if err != nil {
		return nil, err
	}

	t := parseTranslation(raw, title)
	t.TargetLanguage = targetLanguage
	return t, nil
}

func (p *GeminiProvider) Summarize(ctx context.Context, title, description string) (*Summary, error) {
	prompt := fmt.Sprintf(`You are a news summarization expert. Summarize the following article in 3-4 sentences, objective tone, no information dropped.

Title: %s

Body: %s

Respond with strict JSON only, no markdown, in this exact shape:
{"summary": "...", "keyPoints": ["...", "...", "..."]}`, title, sanitizeContent(description))

	raw, err := p.generate(ctx, prompt)
	if err != nil {
		return nil, err
	}
	return parseSummary(raw), nil
}

func (p *GeminiProvider) AnalyzeSentiment(ctx context.Context, title, description string) (*Sentiment, error) {
	prompt := fmt.Sprintf(`You are a news sentiment analyst. Analyze the overall sentiment and tone of the following article.

Title: %s

Body: %s

Respond with strict JSON only, no markdown, in this exact shape:
{"sentiment": "positive|negative|neutral", "confidence": 0.85, "emotions": ["...", "..."], "tone": "objective|subjective|critical|positive"}`, title, sanitizeContent(description))

	raw, err := p.generate(ctx, prompt)
	if err != nil {
		return nil, err
	}
	return parseSentiment(raw), nil
}

func (p *GeminiProvider) generate(ctx context.Context, prompt string) (string, error) {
	model := p.client.GenerativeModel(geminiModel)

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("no response from Gemini")
	}
	return fmt.Sprintf("%v", resp.Candidates[0].Content.Parts[0]), nil
}

// sanitizeContent collapses whitespace and bounds prompt size on a rune
// boundary, preferring to cut at a sentence end.
func sanitizeContent(content string) string {
	content = strings.ReplaceAll(content, "\r", "")
	content = strings.Join(strings.Fields(content), " ")
	if utf8.RuneCountInString(content) <= maxPromptRunes {
		return content
	}
	runes := []rune(content)
	trimmed := string(runes[:maxPromptRunes])
	if idx := strings.LastIndex(trimmed, ". "); idx > 1200 {
		trimmed = trimmed[:idx+1]
	}
	return trimmed
}

// stripCodeFence removes a surrounding markdown code fence when the model
// ignores the no-markdown instruction.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

// parseTranslation decodes the provider reply. A reply that is not valid
// JSON is still usable: the raw text becomes the translated body and the
// first line stands in for the title.
func parseTranslation(raw, originalTitle string) *Translation {
	cleaned := stripCodeFence(raw)

	var t Translation
	if err := json.Unmarshal([]byte(cleaned), &t); err == nil && t.TranslatedDescription != "" {
		if t.TranslatedTitle == "" {
			t.TranslatedTitle = originalTitle
		}
		return &t
	}

	firstLine := cleaned
	if idx := strings.IndexByte(cleaned, '\n'); idx >= 0 {
		firstLine = strings.TrimSpace(cleaned[:idx])
	}
	if firstLine == "" {
		firstLine = originalTitle
	}
	return &Translation{
		TranslatedTitle:       firstLine,
		TranslatedDescription: cleaned,
	}
}

func parseSummary(raw string) *Summary {
	cleaned := stripCodeFence(raw)

	var s Summary
	if err := json.Unmarshal([]byte(cleaned), &s); err == nil && s.Summary != "" {
		if s.KeyPoints == nil {
			s.KeyPoints = []string{}
		}
		return &s
	}
	return &Summary{Summary: cleaned, KeyPoints: []string{}}
}

func parseSentiment(raw string) *Sentiment {
	cleaned := stripCodeFence(raw)

	var s Sentiment
	if err := json.Unmarshal([]byte(cleaned), &s); err == nil && s.Sentiment != "" {
		switch s.Sentiment {
		case "positive", "negative", "neutral":
		default:
			s.Sentiment = "neutral"
		}
		if s.Confidence <= 0 || s.Confidence > 1 {
			s.Confidence = 0.5
		}
		if s.Emotions == nil {
			s.Emotions = []string{}
		}
		if s.Tone == "" {
			s.Tone = "objective"
		}
		return &s
	}
	return &Sentiment{Sentiment: "neutral", Confidence: 0.5, Emotions: []string{}, Tone: "objective"}
}
