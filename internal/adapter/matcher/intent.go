package matcher

import (
	"strings"

	"codechat/internal/domain"
	"codechat/internal/port"
)

// IntentMatcher selects the first topic with a pattern contained in the text.
// An earlier topic's pattern shadows any later, longer pattern.
type IntentMatcher struct {
	topics []domain.Topic
	picker port.Picker
}

func NewIntentMatcher(topics []domain.Topic, picker port.Picker) *IntentMatcher {
	return &IntentMatcher{topics: topics, picker: picker}
}

func (m *IntentMatcher) Name() string {
	return string(domain.SourceIntent)
}

func (m *IntentMatcher) Match(text string) (string, bool) {
	_, answer, ok := m.MatchTopic(text)
	return answer, ok
}

// MatchTopic is Match that also reports the selected topic.
func (m *IntentMatcher) MatchTopic(text string) (topicID, answer string, ok bool) {
	for _, topic := range m.topics {
		for _, pattern := range topic.Patterns {
			if strings.Contains(text, pattern) {
				return topic.ID, Pick(m.picker, topic.Responses), true
			}
		}
	}
	return "", "", false
}
