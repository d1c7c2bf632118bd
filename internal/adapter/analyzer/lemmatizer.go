package analyzer

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"codechat/internal/adapter/lexicon"
)

type detachment struct {
	suffix  string
	replace string
}

// Detachment rules per part of speech, tried in order.
var detachments = map[lexicon.POS][]detachment{
	lexicon.Noun: {
		{"s", ""},
		{"ses", "s"},
		{"ves", "f"},
		{"xes", "x"},
		{"zes", "z"},
		{"ches", "ch"},
		{"shes", "sh"},
		{"men", "man"},
		{"ies", "y"},
	},
	lexicon.Verb: {
		{"s", ""},
		{"ies", "y"},
		{"es", "e"},
		{"es", ""},
		{"ed", "e"},
		{"ed", ""},
		{"ing", "e"},
		{"ing", ""},
	},
	lexicon.Adjective: {
		{"er", ""},
		{"est", ""},
		{"er", "e"},
		{"est", "e"},
	},
}

const minDetachLength = 3

// Lemmatizer reduces inflected words to their dictionary form without a
// part-of-speech hint.
type Lemmatizer struct {
	lex *lexicon.Lexicon
}

func NewLemmatizer(lex *lexicon.Lexicon) *Lemmatizer {
	return &Lemmatizer{lex: lex}
}

// Lemmatize returns the base form of a lowercase word, or the word itself
// when no base form is known.
func (l *Lemmatizer) Lemmatize(word string) string {
	if word == "" {
		return word
	}

	if ex := l.lex.Exceptions(word); len(ex) > 0 {
		return ex[0].Lemma
	}
	if l.lex.IsLemma(word) {
		return word
	}
	if utf8.RuneCountInString(word) < minDetachLength || hasDigit(word) {
		return word
	}

	for _, pos := range lexicon.POSOrder {
		for _, d := range detachments[pos] {
			if !strings.HasSuffix(word, d.suffix) {
				continue
			}
			stem := word[:len(word)-len(d.suffix)]
			if stem == "" {
				continue
			}
			candidate := stem + d.replace
			if l.lex.HasLemma(candidate, pos) {
				return candidate
			}
		}
	}
	return word
}

func hasDigit(s string) bool {
	for _, r := range s {
		if unicode.IsDigit(r) {
			return true
		}
	}
	return false
}
