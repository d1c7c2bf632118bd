package matcher

import (
	"strings"

	"codechat/internal/domain"
)

type attributeTrigger struct {
	attr  domain.LanguageAttribute
	words []string
}

// Secondary triggers in priority order.
var attributeTriggers = []attributeTrigger{
	{domain.AttrForLoop, []string{"for loop"}},
	{domain.AttrWhileLoop, []string{"while loop"}},
	{domain.AttrIfStatement, []string{"if", "else", "elif", "conditional"}},
	{domain.AttrFeatures, []string{"features"}},
	{domain.AttrUses, []string{"uses", "applications"}},
}

// LanguageMatcher answers syntax and summary questions about one language.
type LanguageMatcher struct {
	languages []domain.LanguageProfile
}

func NewLanguageMatcher(languages []domain.LanguageProfile) *LanguageMatcher {
	return &LanguageMatcher{languages: languages}
}

func (m *LanguageMatcher) Name() string {
	return string(domain.SourceLanguage)
}

// Match only considers the first language mentioned in text. Matching is by
// substring, so a one-letter id such as "c" hits most sentences.
func (m *LanguageMatcher) Match(text string) (string, bool) {
	for _, lang := range m.languages {
		if !strings.Contains(text, lang.ID) {
			continue
		}
		for _, trig := range attributeTriggers {
			if containsAny(text, trig.words) {
				return lang.Attribute(trig.attr), true
			}
		}
		return "", false
	}
	return "", false
}
