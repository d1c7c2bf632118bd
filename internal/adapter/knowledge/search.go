package knowledge

import "github.com/sahilm/fuzzy"

// PatternMatch is a trigger phrase ranked by a fuzzy search.
type PatternMatch struct {
	TopicID string
	Pattern string
	Score   int
}

type patternSource []PatternMatch

func (s patternSource) String(i int) string { return s[i].Pattern }
func (s patternSource) Len() int            { return len(s) }

// SearchPatterns fuzzy-ranks every topic pattern against query, best first.
func (kb *Base) SearchPatterns(query string) []PatternMatch {
	var src patternSource
	for _, t := range kb.Topics {
		for _, p := range t.Patterns {
			src = append(src, PatternMatch{TopicID: t.ID, Pattern: p})
		}
	}

	results := fuzzy.FindFrom(query, src)
	matches := make([]PatternMatch, len(results))
	for i, r := range results {
		matches[i] = src[r.Index]
		matches[i].Score = r.Score
	}
	return matches
}
