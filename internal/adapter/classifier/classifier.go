package classifier

import (
	"errors"
	"fmt"
	"sort"

	"codechat/internal/domain"
	"codechat/internal/port"
)

// ErrInsufficientTrainingData is returned when no usable model can be fit.
var ErrInsufficientTrainingData = errors.New("insufficient training data")

type Options struct {
	NgramMin   int
	NgramMax   int
	MaxIter    int
	Tolerance  float64
	C          float64
	MultiClass string
}

// Classifier is the statistical fallback: normalize, vectorize, predict.
// It is immutable after Train and safe for concurrent use.
type Classifier struct {
	normalizer port.Normalizer
	vectorizer *Vectorizer
	model      *Model
	classes    []string
	stats      TrainStats
}

// Train fits the vectorizer and model on already normalized examples. The
// label space is the sorted set of example topic ids.
func Train(examples []domain.TrainingExample, normalizer port.Normalizer, opts Options) (*Classifier, error) {
	if len(examples) == 0 {
		return nil, fmt.Errorf("%w: no training examples", ErrInsufficientTrainingData)
	}

	classIndex := make(map[string]int)
	var classes []string
	for _, ex := range examples {
		if _, ok := classIndex[ex.TopicID]; !ok {
			classIndex[ex.TopicID] = 0
			classes = append(classes, ex.TopicID)
		}
	}
	if len(classes) < 2 {
		return nil, fmt.Errorf("%w: need at least 2 topics, got %d", ErrInsufficientTrainingData, len(classes))
	}
	sort.Strings(classes)
	for i, c := range classes {
		classIndex[c] = i
	}

	docs := make([]string, len(examples))
	for i, ex := range examples {
		docs[i] = ex.Text
	}

	vec := NewVectorizer(opts.NgramMin, opts.NgramMax)
	vec.Fit(docs)
	if len(vec.Terms()) == 0 {
		return nil, fmt.Errorf("%w: empty vocabulary", ErrInsufficientTrainingData)
	}

	x := make([]SparseVector, len(docs))
	y := make([]int, len(docs))
	for i, doc := range docs {
		x[i] = vec.Transform(doc)
		y[i] = classIndex[examples[i].TopicID]
	}

	model, stats := TrainModel(x, y, len(classes), len(vec.Terms()), TrainOptions{
		MaxIter:    opts.MaxIter,
		Tolerance:  opts.Tolerance,
		C:          opts.C,
		MultiClass: opts.MultiClass,
	})

	return &Classifier{
		normalizer: normalizer,
		vectorizer: vec,
		model:      model,
		classes:    classes,
		stats:      stats,
	}, nil
}

// Classify predicts the topic of raw text. Text with no known terms gets
// confidence 0 and no topic.
func (c *Classifier) Classify(text string) domain.Prediction {
	vec := c.vectorizer.Transform(c.normalizer.Normalize(text))
	if vec.Len() == 0 {
		return domain.Prediction{}
	}

	probs := c.model.Probabilities(vec)
	pred := domain.Prediction{Probabilities: make(map[string]float64, len(probs))}
	best := -1
	for k, p := range probs {
		pred.Probabilities[c.classes[k]] = p
		if best < 0 || p > probs[best] {
			best = k
		}
	}
	pred.TopicID = c.classes[best]
	pred.Confidence = probs[best]
	return pred
}

func (c *Classifier) Classes() []string {
	return c.classes
}

func (c *Classifier) VocabularySize() int {
	return len(c.vectorizer.Terms())
}

func (c *Classifier) Stats() TrainStats {
	return c.stats
}
