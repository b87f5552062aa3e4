package scoring

import (
	"math"

	"github.com/samber/lo"

	"github.com/abhisek/fluentcheck/internal/text"
)

// Sentence lengths in this band, in words, score 100.
const (
	optimalMinLength = 15
	optimalMaxLength = 20
)

// ComplexityScore measures sentence length against the optimal band.
type ComplexityScore struct {
	AvgSentenceLength float64 `json:"avg_sentence_length"`
	MinSentenceLength int     `json:"min_sentence_length"`
	MaxSentenceLength int     `json:"max_sentence_length"`
	Score             int     `json:"score"`
}

// ScoreComplexity scores the average sentence length. Averages below the
// band scale linearly from 0; averages above it lose 3 points per word.
func ScoreComplexity(sentences []string) ComplexityScore {
	if len(sentences) == 0 {
		return ComplexityScore{}
	}

	lengths := lo.Map(sentences, func(s string, _ int) int {
		return text.WordCount(s)
	})
	avg := float64(text.WordCount(text.Join(sentences))) / float64(len(sentences))

	return ComplexityScore{
		AvgSentenceLength: roundTo(avg, 1),
		MinSentenceLength: lo.Min(lengths),
		MaxSentenceLength: lo.Max(lengths),
		Score:             complexityScore(avg),
	}
}

func complexityScore(avg float64) int {
	switch {
	case avg >= optimalMinLength && avg <= optimalMaxLength:
		return 100
	case avg < optimalMinLength:
		return clampScore(int(math.Round(avg / optimalMinLength * 100)))
	default:
		return clampScore(int(math.Round(100 - (avg-optimalMaxLength)*3)))
	}
}
