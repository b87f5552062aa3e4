package scoring

import (
	"cmp"
	"math"
	"slices"

	"github.com/samber/lo"

	"github.com/abhisek/fluentcheck/internal/text"
)

const mostCommonLimit = 10

// WordCount is a word with its number of occurrences.
type WordCount struct {
	Word  string `json:"word"`
	Count int    `json:"count"`
}

// VocabularyScore measures lexical diversity.
type VocabularyScore struct {
	TotalWords      int         `json:"total_words"`
	UniqueWords     int         `json:"unique_words"`
	TypeTokenRatio  float64     `json:"type_token_ratio"`
	MostCommonWords []WordCount `json:"most_common_words"`
	Score           int         `json:"score"`
}

// ScoreVocabulary scores the sentences by type-token ratio and by the number
// of distinct words: min(100, round((ttr*100 + unique*2) / 2)).
func ScoreVocabulary(sentences []string) VocabularyScore {
	words := text.LowerWords(text.Join(sentences))

	counts := lo.CountValues(words)
	unique := len(counts)

	ttr := 0.0
	if len(words) > 0 {
		ttr = float64(unique) / float64(len(words))
	}

	return VocabularyScore{
		TotalWords:      len(words),
		UniqueWords:     unique,
		TypeTokenRatio:  roundTo(ttr, 3),
		MostCommonWords: mostCommon(words, counts, mostCommonLimit),
		Score:           clampScore(int(math.Round((ttr*100 + float64(unique)*2) / 2))),
	}
}

// mostCommon ranks words by descending count; ties keep first-occurrence
// order.
func mostCommon(words []string, counts map[string]int, n int) []WordCount {
	ranked := lo.Map(lo.Uniq(words), func(w string, _ int) WordCount {
		return WordCount{Word: w, Count: counts[w]}
	})
	slices.SortStableFunc(ranked, func(a, b WordCount) int {
		return cmp.Compare(b.Count, a.Count)
	})
	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}
