package evaluator

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/abhisek/fluentcheck/internal/scoring"
)

const (
	recommendThreshold   = 70
	readabilityThreshold = 60
	shortSentenceLength  = 10
	longSentenceLength   = 25
	topErrorCount        = 3
)

// Recommendations derives improvement notes from the sub-scores, in a fixed
// order: grammar, common error types, vocabulary, sentence structure,
// readability. With nothing to improve it returns a single positive note.
func Recommendations(g scoring.GrammarScore, v scoring.VocabularyScore, c scoring.ComplexityScore, r scoring.ReadabilityScore) []string {
	var recs []string

	if g.Score < recommendThreshold {
		recs = append(recs, fmt.Sprintf(
			"Grammar: Focus on improving grammar accuracy. Current error rate: %s errors per sentence. Review basic grammar rules and practice more.",
			formatRate(g.ErrorRate)))

		if top := g.TopErrors(topErrorCount); len(top) > 0 {
			names := make([]string, len(top))
			for i, t := range top {
				names[i] = string(t)
			}
			recs = append(recs, fmt.Sprintf(
				"Most common errors: %s. Focus on these areas for quick improvement.",
				strings.Join(names, ", ")))
		}
	}

	if v.Score < recommendThreshold {
		recs = append(recs, fmt.Sprintf(
			"Vocabulary: Expand your vocabulary. Current diversity: %.2f. Try using more varied words and expressions.",
			v.TypeTokenRatio))
	}

	switch {
	case c.AvgSentenceLength < shortSentenceLength:
		recs = append(recs, "Sentence Structure: Your sentences are too short. Try combining ideas to create more complex sentences.")
	case c.AvgSentenceLength > longSentenceLength:
		recs = append(recs, "Sentence Structure: Your sentences are too long. Break them into shorter, clearer sentences.")
	}

	if r.Score < readabilityThreshold {
		recs = append(recs, fmt.Sprintf(
			"Readability: Work on making your writing clearer. Current level: %s. Use simpler words and vary sentence length.",
			r.ReadabilityLevel))
	}

	if len(recs) == 0 {
		recs = append(recs, "Great work! Your writing shows good proficiency. Keep practicing to maintain and improve your skills.")
	}
	return recs
}

// formatRate prints an already rounded rate with its significant decimals
// only, keeping at least one: 0.5, 1.0, 0.33.
func formatRate(x float64) string {
	s := strconv.FormatFloat(x, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
