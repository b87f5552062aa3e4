package grammar

import (
	"fmt"
	"strings"
)

// ErrorType is a grammar error category. The set is closed: values coming
// from outside the package go through ParseErrorType.
type ErrorType string

const (
	// Grammar
	VerbTense   ErrorType = "verb_tense"
	VerbPattern ErrorType = "verb_pattern"
	Agreement   ErrorType = "agreement"
	Pronoun     ErrorType = "pronoun"

	// Word usage
	Preposition   ErrorType = "preposition"
	Article       ErrorType = "article"
	AdjectiveForm ErrorType = "adjective_form"
	WordChoice    ErrorType = "word_choice"

	// Sentence structure
	WordOrder        ErrorType = "word_order"
	SentenceFragment ErrorType = "sentence_fragment"
	RunOn            ErrorType = "run_on"

	// Mechanics
	SingularPlural ErrorType = "singular_plural"
	Spelling       ErrorType = "spelling"
	Punctuation    ErrorType = "punctuation"

	Other ErrorType = "other"
)

var errorTypes = []ErrorType{
	VerbTense, VerbPattern, Agreement, Pronoun,
	Preposition, Article, AdjectiveForm, WordChoice,
	WordOrder, SentenceFragment, RunOn,
	SingularPlural, Spelling, Punctuation,
	Other,
}

// ErrorTypes returns every category in declaration order.
func ErrorTypes() []ErrorType {
	out := make([]ErrorType, len(errorTypes))
	copy(out, errorTypes)
	return out
}

// ParseErrorType maps a category name in any case ("VERB_TENSE",
// "verb_tense") to its ErrorType.
func ParseErrorType(s string) (ErrorType, error) {
	want := ErrorType(strings.ToLower(strings.TrimSpace(s)))
	for _, t := range errorTypes {
		if t == want {
			return t, nil
		}
	}
	return "", fmt.Errorf("unknown error type %q", s)
}

// Valid reports whether t belongs to the category set.
func (t ErrorType) Valid() bool {
	for _, known := range errorTypes {
		if t == known {
			return true
		}
	}
	return false
}

// Severity weighs an error when penalizing the grammar score.
type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// ParseSeverity maps a severity name in any case to a Severity. Empty or
// unknown values map to SeverityMedium.
func ParseSeverity(s string) Severity {
	switch Severity(strings.ToLower(strings.TrimSpace(s))) {
	case SeverityLow:
		return SeverityLow
	case SeverityHigh:
		return SeverityHigh
	default:
		return SeverityMedium
	}
}

// Annotation describes one grammar error found in a sentence.
type Annotation struct {
	Type        ErrorType `json:"type"`
	Description string    `json:"description"`
	Severity    Severity  `json:"severity"`
	Suggestion  *string   `json:"suggestion,omitempty"`
	Position    *int      `json:"position,omitempty"` // zero-based word index
}

// SentenceAnalysis is the per-sentence outcome of Analyzer.Analyze.
type SentenceAnalysis struct {
	Sentence  string       `json:"sentence"`
	Errors    []Annotation `json:"errors"`
	IsCorrect bool         `json:"is_correct"`
}

// NewSentenceAnalysis builds a SentenceAnalysis with IsCorrect derived from
// the error list.
func NewSentenceAnalysis(sentence string, errs []Annotation) SentenceAnalysis {
	if errs == nil {
		errs = []Annotation{}
	}
	return SentenceAnalysis{
		Sentence:  sentence,
		Errors:    errs,
		IsCorrect: len(errs) == 0,
	}
}
