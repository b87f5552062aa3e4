package scoring

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/abhisek/fluentcheck/internal/grammar"
)

func ann(t grammar.ErrorType, s grammar.Severity) grammar.Annotation {
	return grammar.Annotation{Type: t, Description: string(t), Severity: s}
}

func analyses(errs ...[]grammar.Annotation) []grammar.SentenceAnalysis {
	out := make([]grammar.SentenceAnalysis, 0, len(errs))
	for i, e := range errs {
		out = append(out, grammar.NewSentenceAnalysis(string(rune('a'+i)), e))
	}
	return out
}

func TestScoreGrammar(t *testing.T) {
	tests := []struct {
		name     string
		in       []grammar.SentenceAnalysis
		total    int
		rate     float64
		score    int
		accuracy float64
	}{
		{
			name:     "no sentences",
			in:       nil,
			score:    100,
			accuracy: 100,
		},
		{
			name:     "all correct",
			in:       analyses(nil, nil),
			score:    100,
			accuracy: 100,
		},
		{
			name: "mixed severities",
			in: analyses(
				[]grammar.Annotation{ann(grammar.VerbTense, grammar.SeverityHigh)},
				[]grammar.Annotation{ann(grammar.Preposition, grammar.SeverityMedium)},
				[]grammar.Annotation{ann(grammar.Preposition, grammar.SeverityMedium)},
				nil,
			),
			total:    3,
			rate:     0.75,
			score:    56, // int(100-37.5)=62, penalty int(6)=6
			accuracy: 25,
		},
		{
			name:     "base score truncates",
			in:       analyses([]grammar.Annotation{ann(grammar.Article, grammar.SeverityLow)}, nil, nil),
			total:    1,
			rate:     0.33,
			score:    83, // int(83.33), penalty int(0.5)=0
			accuracy: 66.7,
		},
		{
			name: "penalty truncates",
			in: analyses([]grammar.Annotation{
				ann(grammar.WordChoice, grammar.SeverityMedium),
				ann(grammar.WordChoice, grammar.SeverityMedium),
				ann(grammar.WordChoice, grammar.SeverityMedium),
			}, nil, nil, nil, nil, nil),
			total:    3,
			rate:     0.5,
			score:    71, // 75 - int(4.5)
			accuracy: 50,
		},
		{
			name: "clamped at zero",
			in: analyses([]grammar.Annotation{
				ann(grammar.VerbTense, grammar.SeverityHigh),
				ann(grammar.Agreement, grammar.SeverityHigh),
				ann(grammar.Spelling, grammar.SeverityHigh),
			}),
			total:    3,
			rate:     3,
			score:    0,
			accuracy: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := require.New(t)
			got := ScoreGrammar(tt.in)
			req.Equal(tt.total, got.TotalErrors)
			req.InDelta(tt.rate, got.ErrorRate, 1e-9)
			req.Equal(tt.score, got.Score)
			req.InDelta(tt.accuracy, got.Accuracy, 1e-9)
			req.GreaterOrEqual(got.Score, 0)
			req.LessOrEqual(got.Score, 100)
		})
	}
}

func TestScoreGrammar_Counts(t *testing.T) {
	got := ScoreGrammar(analyses(
		[]grammar.Annotation{ann(grammar.VerbTense, grammar.SeverityHigh), ann(grammar.Article, grammar.SeverityLow)},
		[]grammar.Annotation{ann(grammar.Preposition, grammar.SeverityMedium), ann(grammar.Preposition, grammar.SeverityMedium)},
	))
	req := require.New(t)

	req.Equal(map[grammar.ErrorType]int{
		grammar.VerbTense:   1,
		grammar.Article:     1,
		grammar.Preposition: 2,
	}, got.ErrorCounts)
	req.Equal(map[grammar.Severity]int{
		grammar.SeverityLow:    1,
		grammar.SeverityMedium: 2,
		grammar.SeverityHigh:   1,
	}, got.ErrorSeverity)
}

func TestGrammarScore_TopErrors(t *testing.T) {
	got := ScoreGrammar(analyses(
		[]grammar.Annotation{ann(grammar.WordOrder, grammar.SeverityMedium)},
		[]grammar.Annotation{ann(grammar.Article, grammar.SeverityLow)},
		[]grammar.Annotation{ann(grammar.Spelling, grammar.SeverityLow), ann(grammar.Spelling, grammar.SeverityLow)},
		[]grammar.Annotation{ann(grammar.VerbTense, grammar.SeverityHigh)},
	))

	require.Equal(t,
		[]grammar.ErrorType{grammar.Spelling, grammar.WordOrder, grammar.Article},
		got.TopErrors(3),
	)
	require.Len(t, got.TopErrors(10), 4)
	require.Empty(t, ScoreGrammar(nil).TopErrors(3))
}
