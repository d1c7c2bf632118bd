package usecase

import (
	"strings"

	"codechat/config"
	"codechat/internal/adapter/matcher"
	"codechat/internal/domain"
	"codechat/internal/port"

	"github.com/rs/zerolog"
)

// ResolverOptions tunes the confidence gate and fallback answer.
type ResolverOptions struct {
	Threshold      float64
	DefaultMessage string
}

// topicMatcher is implemented by matchers that can report the topic they selected.
type topicMatcher interface {
	MatchTopic(text string) (topicID, answer string, ok bool)
}

// Resolver runs the rule cascade and the gated statistical fallback.
// It holds no per-conversation state and is safe for concurrent use.
type Resolver struct {
	matchers   []port.Matcher
	classifier port.Classifier
	topics     map[string]domain.Topic
	picker     port.Picker
	opts       ResolverOptions
	logger     zerolog.Logger
}

// NewResolver creates a resolver. Matchers run in the order given.
func NewResolver(
	matchers []port.Matcher,
	classifier port.Classifier,
	topics []domain.Topic,
	picker port.Picker,
	opts ResolverOptions,
	logger zerolog.Logger,
) *Resolver {
	if opts.DefaultMessage == "" {
		opts.DefaultMessage = config.DefaultMessage
	}
	byID := make(map[string]domain.Topic, len(topics))
	for _, t := range topics {
		byID[t.ID] = t
	}
	return &Resolver{
		matchers:   matchers,
		classifier: classifier,
		topics:     byID,
		picker:     picker,
		opts:       opts,
		logger:     logger,
	}
}

// Resolve returns the answer for text. It never fails and never returns "".
func (r *Resolver) Resolve(text string) string {
	return r.Explain(text).Answer
}

// Explain resolves text and reports which stage produced the answer.
func (r *Resolver) Explain(text string) domain.Resolution {
	res := r.resolve(text)
	r.logger.Debug().
		Str("source", string(res.Source)).
		Str("topic", res.TopicID).
		Float64("confidence", res.Confidence).
		Msg("resolved")
	return res
}

func (r *Resolver) resolve(text string) domain.Resolution {
	lowered := strings.ToLower(text)

	for _, m := range r.matchers {
		if tm, ok := m.(topicMatcher); ok {
			if topicID, answer, ok := tm.MatchTopic(lowered); ok {
				return domain.Resolution{Answer: answer, Source: domain.Source(m.Name()), TopicID: topicID}
			}
			continue
		}
		if answer, ok := m.Match(lowered); ok {
			return domain.Resolution{Answer: answer, Source: domain.Source(m.Name())}
		}
	}

	pred := r.classifier.Classify(text)
	topic, known := r.topics[pred.TopicID]
	if !known || pred.Confidence < r.opts.Threshold || len(topic.Responses) == 0 {
		return domain.Resolution{
			Answer:     r.opts.DefaultMessage,
			Source:     domain.SourceUnknown,
			TopicID:    pred.TopicID,
			Confidence: pred.Confidence,
		}
	}

	return domain.Resolution{
		Answer:     matcher.Pick(r.picker, topic.Responses),
		Source:     domain.SourceClassifier,
		TopicID:    topic.ID,
		Confidence: pred.Confidence,
	}
}
