package analyzer

import (
	"strings"

	"codechat/internal/adapter/lexicon"
)

// Normalizer maps raw text to space-joined lemmas. It is safe for concurrent use.
type Normalizer struct {
	tokenizer  *Tokenizer
	lemmatizer *Lemmatizer
}

func NewNormalizer(lex *lexicon.Lexicon) *Normalizer {
	return &Normalizer{
		tokenizer:  NewTokenizer(),
		lemmatizer: NewLemmatizer(lex),
	}
}

// Tokenize returns the lemmatized tokens of text.
func (n *Normalizer) Tokenize(text string) []string {
	tokens := n.tokenizer.Tokenize(text)
	for i, tok := range tokens {
		tokens[i] = n.lemmatizer.Lemmatize(tok)
	}
	return tokens
}

// Normalize returns the canonical form of text. Blank input yields "".
func (n *Normalizer) Normalize(text string) string {
	return strings.Join(n.Tokenize(text), " ")
}
