package enrich

import (
	"reflect"
	"testing"

	"emarknews/internal/article"
)

func TestApplyLabels(t *testing.T) {
	rules := DefaultLabelRules()

	tests := []struct {
		title string
		desc  string
		want  []string
	}{
		{"Breaking: markets tumble", "", []string{"urgent"}},
		{"속보: 주요 발표", "", []string{"urgent", "important"}},
		{"A viral moment", "trending everywhere", []string{"hot"}},
		{"Quiet day in parliament", "nothing much", nil},
	}

	for _, tt := range tests {
		a := article.Article{Title: tt.title, Description: tt.desc}
		got := ApplyLabels(a, rules)
		if len(got) == 0 {
			got = nil
		}
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("ApplyLabels(%q) = %v, want %v", tt.title, got, tt.want)
		}
	}
}
