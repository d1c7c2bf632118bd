package port

import "codechat/internal/domain"

// Classifier predicts the topic of free text.
type Classifier interface {
	// Classify never fails; unknown or empty input yields a low confidence.
	Classify(text string) domain.Prediction
}
