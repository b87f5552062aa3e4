package scoring

import (
	"math"

	"github.com/samber/lo"

	"github.com/abhisek/fluentcheck/internal/text"
)

// ReadabilityScore holds the Flesch measures of the text.
type ReadabilityScore struct {
	FleschReadingEase  float64 `json:"flesch_reading_ease"`
	FleschKincaidGrade float64 `json:"flesch_kincaid_grade"`
	ReadabilityLevel   string  `json:"readability_level"`
	Score              int     `json:"score"`
}

// ScoreReadability computes Flesch Reading Ease and Flesch-Kincaid grade
// over the joined sentences. A reading ease between 60 and 70 scores 100.
func ScoreReadability(sentences []string) ReadabilityScore {
	words := text.Words(text.Join(sentences))

	var flesch, grade float64
	if len(sentences) > 0 && len(words) > 0 {
		syllables := lo.SumBy(words, text.CountSyllables)
		wordsPerSentence := float64(len(words)) / float64(len(sentences))
		syllablesPerWord := float64(syllables) / float64(len(words))

		flesch = 206.835 - 1.015*wordsPerSentence - 84.6*syllablesPerWord
		grade = 0.39*wordsPerSentence + 11.8*syllablesPerWord - 15.59
	}

	return ReadabilityScore{
		FleschReadingEase:  roundTo(flesch, 1),
		FleschKincaidGrade: roundTo(grade, 1),
		ReadabilityLevel:   ReadabilityLevel(flesch),
		Score:              readabilityScore(flesch),
	}
}

func readabilityScore(flesch float64) int {
	switch {
	case flesch >= 60 && flesch <= 70:
		return 100
	case flesch < 60:
		return clampScore(int(math.Round(flesch / 60 * 100)))
	default:
		return clampScore(int(math.Round(100 - (flesch-70)*2)))
	}
}

// ReadabilityLevel labels a Flesch Reading Ease value.
func ReadabilityLevel(flesch float64) string {
	switch {
	case flesch >= 90:
		return "Very Easy (5th grade)"
	case flesch >= 80:
		return "Easy (6th grade)"
	case flesch >= 70:
		return "Fairly Easy (7th grade)"
	case flesch >= 60:
		return "Standard (8th-9th grade)"
	case flesch >= 50:
		return "Fairly Difficult (10th-12th grade)"
	case flesch >= 30:
		return "Difficult (College)"
	default:
		return "Very Difficult (College graduate)"
	}
}
