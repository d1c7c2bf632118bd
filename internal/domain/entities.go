package domain

import (
	"errors"
	"time"
)

// ErrSessionNotFound is returned for operations on an unknown chat session.
var ErrSessionNotFound = errors.New("session not found")

// Topic is a cluster of equivalent questions mapped to canned answers.
type Topic struct {
	ID        string
	Patterns  []string
	Responses []string
}

type LanguageAttribute string

const (
	AttrForLoop     LanguageAttribute = "for_loop"
	AttrWhileLoop   LanguageAttribute = "while_loop"
	AttrIfStatement LanguageAttribute = "if_statement"
	AttrFeatures    LanguageAttribute = "features"
	AttrUses        LanguageAttribute = "uses"
)

// LanguageProfile holds the syntax and summary facts for one programming language.
type LanguageProfile struct {
	ID          string
	ForLoop     string
	WhileLoop   string
	IfStatement string
	Features    string
	Uses        string
}

// Attribute returns the profile field named by attr.
func (p LanguageProfile) Attribute(attr LanguageAttribute) string {
	switch attr {
	case AttrForLoop:
		return p.ForLoop
	case AttrWhileLoop:
		return p.WhileLoop
	case AttrIfStatement:
		return p.IfStatement
	case AttrFeatures:
		return p.Features
	case AttrUses:
		return p.Uses
	}
	return ""
}

// ComparisonKind groups language-pair answers behind a set of signal words.
type ComparisonKind struct {
	Kind    string
	Signals []string
	Pairs   []ComparisonPair
}

type ComparisonPair struct {
	Languages [2]string
	Answer    string
}

type TrainingExample struct {
	Text    string
	TopicID string
}

type Prediction struct {
	TopicID       string
	Confidence    float64
	Probabilities map[string]float64
}

type Source string

const (
	SourceComparison Source = "comparison"
	SourceLanguage   Source = "language"
	SourceIntent     Source = "intent"
	SourceClassifier Source = "classifier"
	SourceUnknown    Source = "unknown"
)

// Resolution is an answer together with the cascade stage that produced it.
type Resolution struct {
	Answer     string  `json:"answer"`
	Source     Source  `json:"source"`
	TopicID    string  `json:"topic_id,omitempty"`
	Confidence float64 `json:"confidence,omitempty"`
}

type Sender string

const (
	SenderUser Sender = "user"
	SenderBot  Sender = "bot"
)

type ChatTurn struct {
	Sender  Sender    `json:"sender"`
	Message string    `json:"message"`
	At      time.Time `json:"at"`
}
