package matcher

import (
	"strings"

	"codechat/internal/domain"
)

// ComparisonMatcher answers "compare X and Y" style questions.
type ComparisonMatcher struct {
	kinds []domain.ComparisonKind
}

func NewComparisonMatcher(kinds []domain.ComparisonKind) *ComparisonMatcher {
	return &ComparisonMatcher{kinds: kinds}
}

func (m *ComparisonMatcher) Name() string {
	return string(domain.SourceComparison)
}

// Match tries kinds in order. A kind whose signals match but whose pairs do
// not falls through to the next kind.
func (m *ComparisonMatcher) Match(text string) (string, bool) {
	for _, kind := range m.kinds {
		if !containsAny(text, kind.Signals) {
			continue
		}
		for _, pair := range kind.Pairs {
			if strings.Contains(text, pair.Languages[0]) && strings.Contains(text, pair.Languages[1]) {
				return pair.Answer, true
			}
		}
	}
	return "", false
}

func containsAny(text string, words []string) bool {
	for _, w := range words {
		if strings.Contains(text, w) {
			return true
		}
	}
	return false
}
