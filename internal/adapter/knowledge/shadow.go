package knowledge

import (
	"strings"

	"codechat/internal/domain"
)

// Shadow records a trigger phrase that can never be reached by keyword
// matching because an earlier topic's phrase is a substring of it.
type Shadow struct {
	TopicID  string
	Pattern  string
	ByTopic  string
	ByPhrase string
}

// Shadows lists unreachable trigger phrases in knowledge base order. Keyword
// matching is first-match, so these phrases only help the fallback classifier.
func (kb *Base) Shadows() []Shadow {
	var out []Shadow
	for j, later := range kb.Topics {
		for _, q := range later.Patterns {
			if s, ok := shadowOf(kb.Topics[:j], later.ID, q); ok {
				out = append(out, s)
			}
		}
	}
	return out
}

func shadowOf(earlier []domain.Topic, topicID, pattern string) (Shadow, bool) {
	for _, t := range earlier {
		for _, p := range t.Patterns {
			if strings.Contains(pattern, p) {
				return Shadow{TopicID: topicID, Pattern: pattern, ByTopic: t.ID, ByPhrase: p}, true
			}
		}
	}
	return Shadow{}, false
}
