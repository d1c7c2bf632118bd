package lexicon

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// POS is a coarse part of speech used to order lemma lookups.
type POS byte

const (
	Noun      POS = 'n'
	Verb      POS = 'v'
	Adjective POS = 'a'
)

// POSOrder is the order in which parts of speech are consulted.
var POSOrder = []POS{Noun, Verb, Adjective}

func parsePOS(s string) (POS, error) {
	if len(s) == 1 {
		switch p := POS(s[0]); p {
		case Noun, Verb, Adjective:
			return p, nil
		}
	}
	return 0, fmt.Errorf("unknown part of speech %q", s)
}

// Entry is a dictionary base form.
type Entry struct {
	POS   POS
	Lemma string
}

// Exception maps an irregular inflected form to its lemma.
type Exception struct {
	POS       POS    `json:"pos"`
	Inflected string `json:"-"`
	Lemma     string `json:"lemma"`
}

// Lexicon is an immutable in-memory lexical dictionary.
type Lexicon struct {
	lemmas     map[string][]POS
	exceptions map[string][]Exception
}

// New builds a Lexicon. Exceptions for the same form are ordered by POSOrder,
// keeping input order within a part of speech.
func New(entries []Entry, exceptions []Exception) *Lexicon {
	l := &Lexicon{
		lemmas:     make(map[string][]POS, len(entries)),
		exceptions: make(map[string][]Exception, len(exceptions)),
	}
	for _, e := range entries {
		if !containsPOS(l.lemmas[e.Lemma], e.POS) {
			l.lemmas[e.Lemma] = append(l.lemmas[e.Lemma], e.POS)
		}
	}
	for _, pos := range POSOrder {
		for _, ex := range exceptions {
			if ex.POS == pos {
				l.exceptions[ex.Inflected] = append(l.exceptions[ex.Inflected], ex)
			}
		}
	}
	return l
}

// HasLemma reports whether word is a base form for pos.
func (l *Lexicon) HasLemma(word string, pos POS) bool {
	return containsPOS(l.lemmas[word], pos)
}

// IsLemma reports whether word is a base form for any part of speech.
func (l *Lexicon) IsLemma(word string) bool {
	return len(l.lemmas[word]) > 0
}

// Exceptions returns the irregular lemmas recorded for word.
func (l *Lexicon) Exceptions(word string) []Exception {
	return l.exceptions[word]
}

// Size returns the number of distinct lemmas and exception forms.
func (l *Lexicon) Size() (lemmas, exceptions int) {
	return len(l.lemmas), len(l.exceptions)
}

func containsPOS(list []POS, pos POS) bool {
	for _, p := range list {
		if p == pos {
			return true
		}
	}
	return false
}

// ParseLemmas reads "<pos> <lemma>" lines. Blank lines and # comments are skipped.
func ParseLemmas(r io.Reader) ([]Entry, error) {
	var entries []Entry
	err := scanLines(r, func(lineNo int, fields []string) error {
		if len(fields) != 2 {
			return fmt.Errorf("line %d: expected 2 fields, got %d", lineNo, len(fields))
		}
		pos, err := parsePOS(fields[0])
		if err != nil {
			return fmt.Errorf("line %d: %w", lineNo, err)
		}
		entries = append(entries, Entry{POS: pos, Lemma: strings.ToLower(fields[1])})
		return nil
	})
	return entries, err
}

// ParseExceptions reads "<pos> <inflected> <lemma>" lines.
func ParseExceptions(r io.Reader) ([]Exception, error) {
	var exceptions []Exception
	err := scanLines(r, func(lineNo int, fields []string) error {
		if len(fields) != 3 {
			return fmt.Errorf("line %d: expected 3 fields, got %d", lineNo, len(fields))
		}
		pos, err := parsePOS(fields[0])
		if err != nil {
			return fmt.Errorf("line %d: %w", lineNo, err)
		}
		exceptions = append(exceptions, Exception{
			POS:       pos,
			Inflected: strings.ToLower(fields[1]),
			Lemma:     strings.ToLower(fields[2]),
		})
		return nil
	})
	return exceptions, err
}

func scanLines(r io.Reader, fn func(lineNo int, fields []string) error) error {
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if err := fn(lineNo, strings.Fields(line)); err != nil {
			return err
		}
	}
	return scanner.Err()
}
