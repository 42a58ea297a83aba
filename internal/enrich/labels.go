package enrich

import (
	"regexp"

	"emarknews/internal/article"
)

// LabelRule tags articles whose title or description matches a pattern.
type LabelRule struct {
	Tag     string
	Pattern *regexp.Regexp
}

// DefaultLabelRules covers English and Korean trigger words carried over
// from the front end's badge vocabulary.
func DefaultLabelRules() []LabelRule {
	return []LabelRule{
		{Tag: "urgent", Pattern: regexp.MustCompile(`(?i)breaking|urgent|속보|긴급`)},
		{Tag: "important", Pattern: regexp.MustCompile(`(?i)important|major|중요|주요`)},
		{Tag: "hot", Pattern: regexp.MustCompile(`(?i)viral|trending|hot|화제`)},
	}
}

// ApplyLabels returns the tags matching an article's text.
func ApplyLabels(a article.Article, rules []LabelRule) []string {
	text := a.Title + " " + a.Description
	tags := make([]string, 0, len(rules))
	for _, r := range rules {
		if r.Pattern.MatchString(text) {
			tags = append(tags, r.Tag)
		}
	}
	return tags
}
