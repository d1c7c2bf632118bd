package port

// Normalizer maps raw text to its canonical lemmatized form.
type Normalizer interface {
	Normalize(text string) string
}
