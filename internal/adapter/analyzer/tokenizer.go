package analyzer

import (
	"unicode"

	"github.com/rivo/uniseg"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// Tokenizer splits text into lowercase words using UAX #29 word boundaries.
type Tokenizer struct{}

// NewTokenizer creates a new Tokenizer.
func NewTokenizer() *Tokenizer {
	return &Tokenizer{}
}

// Tokenize returns the words of text in order. Punctuation and whitespace
// segments are dropped.
func (t *Tokenizer) Tokenize(text string) []string {
	if text == "" {
		return nil
	}
	// cases.Caser keeps state, so one is created per call.
	text = cases.Lower(language.Und).String(norm.NFC.String(text))
	return splitWords(text)
}

// splitWords splits text into words using unicode word boundaries.
func splitWords(text string) []string {
	var words []string
	state := -1
	for len(text) > 0 {
		var word string
		word, text, state = uniseg.FirstWordInString(text, state)
		if isWord(word) {
			words = append(words, word)
		}
	}
	return words
}

func isWord(segment string) bool {
	for _, r := range segment {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return true
		}
	}
	return false
}
