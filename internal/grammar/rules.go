package grammar

import (
	"fmt"
	"slices"
	"strings"

	goahocorasick "github.com/anknown/ahocorasick"

	"github.com/abhisek/fluentcheck/internal/text"
)

// Rule is a deterministic phrase check over a lowercased sentence. It fires
// when at least one Any phrase is present, every Require phrase is present
// and no Forbid phrase is present.
type Rule struct {
	Any     []string
	Require []string
	Forbid  []string

	Type        ErrorType
	Severity    Severity
	Description string
	Suggestion  string
}

// DefaultRules is the fallback rule set, evaluated in order.
func DefaultRules() []Rule {
	return []Rule{
		{
			Any:         []string{" go "},
			Require:     []string{"yesterday"},
			Type:        VerbTense,
			Severity:    SeverityHigh,
			Description: "Present tense 'go' used with 'yesterday'",
			Suggestion:  "Change 'go' to 'went'",
		},
		{
			Any:         []string{"have learn"},
			Type:        VerbTense,
			Severity:    SeverityHigh,
			Description: "Missing past participle or '-ing' form after 'have'",
			Suggestion:  "Change 'learn' to 'learned' or 'been learning'",
		},
		{
			Any:         []string{"very like"},
			Type:        VerbPattern,
			Severity:    SeverityMedium,
			Description: "'Very' cannot modify the verb 'like'",
			Suggestion:  "Use 'really like' or 'like very much'",
		},
		{
			Any:         []string{"am agree", "is agree"},
			Type:        VerbPattern,
			Severity:    SeverityHigh,
			Description: "'Agree' is a verb and does not take 'am/is/are'",
			Suggestion:  "Use 'agree' or 'am in agreement'",
		},
		{
			Any:         []string{"she don't", "he don't", "it don't"},
			Type:        Agreement,
			Severity:    SeverityHigh,
			Description: "Third person singular subjects take 'doesn't', not 'don't'",
			Suggestion:  "Change 'don't' to 'doesn't'",
		},
		{
			Any:         []string{"explain me"},
			Type:        Preposition,
			Severity:    SeverityMedium,
			Description: "Missing preposition 'to' after 'explain'",
			Suggestion:  "Use 'explain to me' or 'explain it to me'",
		},
		{
			Any:         []string{"listen music"},
			Type:        Preposition,
			Severity:    SeverityMedium,
			Description: "Missing preposition 'to' after 'listen'",
			Suggestion:  "Use 'listen to music'",
		},
		{
			Any:         []string{"feel boring"},
			Type:        AdjectiveForm,
			Severity:    SeverityMedium,
			Description: "'Boring' describes the cause; use 'bored' for how you feel",
			Suggestion:  "Change 'boring' to 'bored'",
		},
		{
			Any:         []string{"am interesting"},
			Require:     []string{"interested in"},
			Type:        AdjectiveForm,
			Severity:    SeverityMedium,
			Description: "'Interesting' used where 'interested' is meant",
			Suggestion:  "Change 'interesting' to 'interested'",
		},
		{
			Any:         []string{" go to a school"},
			Forbid:      []string{" go to school"},
			Type:        Article,
			Severity:    SeverityLow,
			Description: "'Go to school' takes no article when it means attending classes",
			Suggestion:  "Drop the 'a' in 'go to a school'",
		},
		{
			Any:         []string{"never i", "always i"},
			Type:        WordOrder,
			Severity:    SeverityMedium,
			Description: "Frequency adverbs follow the subject in affirmative sentences",
			Suggestion:  "Reorder to 'I never' or 'I always'",
		},
	}
}

// RuleDetector runs a rule set against sentences. All phrases of all rules
// are compiled into one Aho-Corasick automaton so each sentence is scanned
// once.
type RuleDetector struct {
	rules   []Rule
	matcher *goahocorasick.Machine
}

// NewRuleDetector compiles the given rules. A nil or empty rule set yields a
// detector that never reports errors.
func NewRuleDetector(rules []Rule) (*RuleDetector, error) {
	d := &RuleDetector{rules: rules}

	var phrases []string
	for i, r := range rules {
		if len(r.Any) == 0 {
			return nil, fmt.Errorf("rule %d (%s): no trigger phrase", i, r.Type)
		}
		if !r.Type.Valid() {
			return nil, fmt.Errorf("rule %d: unknown error type %q", i, r.Type)
		}
		for _, group := range [][]string{r.Any, r.Require, r.Forbid} {
			for _, p := range group {
				phrases = append(phrases, strings.ToLower(p))
			}
		}
	}
	if len(phrases) == 0 {
		return d, nil
	}

	slices.Sort(phrases)
	phrases = slices.Compact(phrases)

	patterns := make([][]rune, len(phrases))
	for i, p := range phrases {
		patterns[i] = []rune(p)
	}

	m := new(goahocorasick.Machine)
	if err := m.Build(patterns); err != nil {
		return nil, fmt.Errorf("compile rule phrases: %w", err)
	}
	d.matcher = m
	return d, nil
}

// MustRuleDetector is NewRuleDetector for rule sets known at compile time.
func MustRuleDetector(rules []Rule) *RuleDetector {
	d, err := NewRuleDetector(rules)
	if err != nil {
		panic(err)
	}
	return d
}

// Detect returns the annotations produced by every rule that fires on the
// sentence, in rule order. Each rule fires at most once.
func (d *RuleDetector) Detect(sentence string) []Annotation {
	errs := []Annotation{}
	if d == nil || d.matcher == nil {
		return errs
	}

	lower := strings.ToLower(sentence)
	if lower == "" {
		return errs
	}
	hits := d.scan(lower)
	if len(hits) == 0 {
		return errs
	}

	for _, r := range d.rules {
		pos, ok := firstHit(hits, r.Any)
		if !ok || !allHit(hits, r.Require) || anyHit(hits, r.Forbid) {
			continue
		}
		wordPos := text.WordIndexAt(lower, pos)
		suggestion := r.Suggestion
		errs = append(errs, Annotation{
			Type:        r.Type,
			Description: r.Description,
			Severity:    r.Severity,
			Suggestion:  &suggestion,
			Position:    &wordPos,
		})
	}
	return errs
}

// Analyze runs Detect over each sentence.
func (d *RuleDetector) Analyze(sentences []string) []SentenceAnalysis {
	out := make([]SentenceAnalysis, 0, len(sentences))
	for _, s := range sentences {
		out = append(out, NewSentenceAnalysis(s, d.Detect(s)))
	}
	return out
}

// scan maps each matched phrase to the rune offset of its first occurrence.
func (d *RuleDetector) scan(lower string) map[string]int {
	terms := d.matcher.MultiPatternSearch([]rune(lower), false)
	hits := make(map[string]int, len(terms))
	for _, t := range terms {
		w := string(t.Word)
		if prev, seen := hits[w]; !seen || t.Pos < prev {
			hits[w] = t.Pos
		}
	}
	return hits
}

func firstHit(hits map[string]int, phrases []string) (int, bool) {
	pos, found := 0, false
	for _, p := range phrases {
		at, ok := hits[strings.ToLower(p)]
		if !ok {
			continue
		}
		if !found || at < pos {
			pos, found = at, true
		}
	}
	return pos, found
}

func allHit(hits map[string]int, phrases []string) bool {
	for _, p := range phrases {
		if _, ok := hits[strings.ToLower(p)]; !ok {
			return false
		}
	}
	return true
}

func anyHit(hits map[string]int, phrases []string) bool {
	_, ok := firstHit(hits, phrases)
	return ok
}
