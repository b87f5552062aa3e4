package scoring

import (
	"cmp"
	"slices"

	"github.com/abhisek/fluentcheck/internal/grammar"
)

// GrammarScore aggregates per-sentence grammar errors.
type GrammarScore struct {
	TotalErrors   int                       `json:"total_errors"`
	ErrorCounts   map[grammar.ErrorType]int `json:"error_counts"`
	ErrorSeverity map[grammar.Severity]int  `json:"error_severity"`
	ErrorRate     float64                   `json:"error_rate"`
	Score         int                       `json:"score"`
	Accuracy      float64                   `json:"accuracy"`

	// firstSeen lists error types in the order they first appeared.
	firstSeen []grammar.ErrorType
}

// ScoreGrammar computes the grammar score. The base score drops 50 points
// per average error per sentence; each error then costs a further 3, 1.5 or
// 0.5 points by severity, with the total penalty truncated.
func ScoreGrammar(analyses []grammar.SentenceAnalysis) GrammarScore {
	g := GrammarScore{
		ErrorCounts: make(map[grammar.ErrorType]int),
		ErrorSeverity: map[grammar.Severity]int{
			grammar.SeverityLow:    0,
			grammar.SeverityMedium: 0,
			grammar.SeverityHigh:   0,
		},
	}

	for _, a := range analyses {
		g.TotalErrors += len(a.Errors)
		for _, e := range a.Errors {
			if _, seen := g.ErrorCounts[e.Type]; !seen {
				g.firstSeen = append(g.firstSeen, e.Type)
			}
			g.ErrorCounts[e.Type]++
			if _, known := g.ErrorSeverity[e.Severity]; known {
				g.ErrorSeverity[e.Severity]++
			}
		}
	}

	rate := 0.0
	if len(analyses) > 0 {
		rate = float64(g.TotalErrors) / float64(len(analyses))
	}

	score := max(0, int(100-rate*50))
	// high*3 + medium*1.5 + low*0.5, truncated, in half points.
	halfPoints := g.ErrorSeverity[grammar.SeverityHigh]*6 +
		g.ErrorSeverity[grammar.SeverityMedium]*3 +
		g.ErrorSeverity[grammar.SeverityLow]
	score = max(0, score-halfPoints/2)

	g.ErrorRate = roundTo(rate, 2)
	g.Score = clampScore(score)
	g.Accuracy = roundTo((1-min(1, rate))*100, 1)
	return g
}

// TopErrors returns up to n error types by descending count. Types with equal
// counts keep the order in which they were first seen.
func (g GrammarScore) TopErrors(n int) []grammar.ErrorType {
	order := g.firstSeen
	if len(order) != len(g.ErrorCounts) {
		// Decoded from JSON: first-seen order is gone, fall back to a
		// deterministic order.
		order = make([]grammar.ErrorType, 0, len(g.ErrorCounts))
		for t := range g.ErrorCounts {
			order = append(order, t)
		}
		slices.Sort(order)
	}

	top := slices.Clone(order)
	slices.SortStableFunc(top, func(a, b grammar.ErrorType) int {
		return cmp.Compare(g.ErrorCounts[b], g.ErrorCounts[a])
	})
	if len(top) > n {
		top = top[:n]
	}
	return top
}
