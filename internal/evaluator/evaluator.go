// Package evaluator combines grammar analysis and the sub-scorers into a
// proficiency evaluation with a letter grade, a CEFR estimate and
// recommendations.
package evaluator

import (
	"context"
	"log/slog"
	"time"

	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"

	"github.com/abhisek/fluentcheck/internal/grammar"
	"github.com/abhisek/fluentcheck/internal/scoring"
	"github.com/abhisek/fluentcheck/internal/text"
)

// BasicStats summarizes the evaluated text.
type BasicStats struct {
	TotalSentences    int           `json:"total_sentences"`
	TotalWords        int           `json:"total_words"`
	UniqueWords       int           `json:"unique_words"`
	AvgSentenceLength float64       `json:"avg_sentence_length"`
	Language          text.Language `json:"language"`
}

// Overall is the composite outcome.
type Overall struct {
	Score            int       `json:"score"`
	Grade            string    `json:"grade"`
	EstimatedCEFR    CEFRLevel `json:"estimated_cefr"`
	LevelDescription string    `json:"level_description"`
}

// Result is a full evaluation.
type Result struct {
	BasicStats      BasicStats                 `json:"basic_stats"`
	Sentences       []grammar.SentenceAnalysis `json:"sentences"`
	Grammar         scoring.GrammarScore       `json:"grammar"`
	Vocabulary      scoring.VocabularyScore    `json:"vocabulary"`
	Complexity      scoring.ComplexityScore    `json:"complexity"`
	Readability     scoring.ReadabilityScore   `json:"readability"`
	Overall         Overall                    `json:"overall"`
	Recommendations []string                   `json:"recommendations"`
}

// SimpleResult is the compact evaluation returned by EvaluateSimple.
type SimpleResult struct {
	TotalSentences   int                       `json:"total_sentences"`
	ErrorCounts      map[grammar.ErrorType]int `json:"error_counts"`
	GrammarErrorRate float64                   `json:"grammar_error_rate"`
	GrammarScore     int                       `json:"grammar_score"`
	VocabularyScore  int                       `json:"vocabulary_score"`
	EstimatedCEFR    CEFRLevel                 `json:"estimated_cefr"`
}

// Evaluator scores sentences. It holds no per-call state and is safe for
// concurrent use.
type Evaluator struct {
	analyzer *grammar.Analyzer
	logger   *slog.Logger
}

// New creates an Evaluator. A nil analyzer is replaced by a rule-only one.
func New(analyzer *grammar.Analyzer, logger *slog.Logger) (*Evaluator, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if analyzer == nil {
		a, err := grammar.NewAnalyzer(nil, grammar.AnalyzerOptions{Logger: logger})
		if err != nil {
			return nil, err
		}
		analyzer = a
	}
	return &Evaluator{
		analyzer: analyzer,
		logger:   logger.With("component", "evaluator"),
	}, nil
}

// Evaluate runs the full evaluation. It never fails: classifier problems are
// absorbed by the analyzer and an empty input yields EmptyResult.
func (e *Evaluator) Evaluate(ctx context.Context, sentences []string) Result {
	if len(sentences) == 0 {
		return EmptyResult()
	}
	start := time.Now()

	analyses := e.analyzer.Analyze(ctx, sentences)

	var (
		res Result
		g   errgroup.Group
	)
	g.Go(func() error {
		res.Grammar = scoring.ScoreGrammar(analyses)
		return nil
	})
	g.Go(func() error {
		res.Vocabulary = scoring.ScoreVocabulary(sentences)
		return nil
	})
	g.Go(func() error {
		res.Complexity = scoring.ScoreComplexity(sentences)
		return nil
	})
	g.Go(func() error {
		res.Readability = scoring.ScoreReadability(sentences)
		return nil
	})
	g.Go(func() error {
		res.BasicStats.Language = text.DetectLanguage(text.Join(sentences))
		return nil
	})
	_ = g.Wait()

	res.Sentences = analyses
	res.BasicStats.TotalSentences = len(sentences)
	res.BasicStats.TotalWords = res.Vocabulary.TotalWords
	res.BasicStats.UniqueWords = res.Vocabulary.UniqueWords
	res.BasicStats.AvgSentenceLength = res.Complexity.AvgSentenceLength

	score := OverallScore(res.Grammar.Score, res.Vocabulary.Score, res.Complexity.Score, res.Readability.Score)
	cefr := EstimateCEFR(score, res.Grammar.Score)
	res.Overall = Overall{
		Score:            score,
		Grade:            Grade(score),
		EstimatedCEFR:    cefr,
		LevelDescription: cefr.Description(),
	}
	res.Recommendations = Recommendations(res.Grammar, res.Vocabulary, res.Complexity, res.Readability)

	e.logger.Debug("evaluation complete",
		"sentences", len(sentences),
		"overall", score,
		"cefr", cefr,
		"duration", time.Since(start),
	)
	return res
}

// EvaluateSimple returns the compact evaluation: the grammar score, a
// vocabulary score of four points per distinct word and a CEFR estimate from
// their average.
func (e *Evaluator) EvaluateSimple(ctx context.Context, sentences []string) SimpleResult {
	if len(sentences) == 0 {
		return SimpleResult{
			ErrorCounts:   map[grammar.ErrorType]int{},
			EstimatedCEFR: A1,
		}
	}

	g := scoring.ScoreGrammar(e.analyzer.Analyze(ctx, sentences))

	unique := lo.Uniq(text.LowerWords(text.Join(sentences)))
	vocab := min(100, len(unique)*4)

	return SimpleResult{
		TotalSentences:   len(sentences),
		ErrorCounts:      g.ErrorCounts,
		GrammarErrorRate: g.ErrorRate,
		GrammarScore:     g.Score,
		VocabularyScore:  vocab,
		EstimatedCEFR:    simpleCEFR((g.Score + vocab) / 2),
	}
}

// EmptyResult is the evaluation of no sentences.
func EmptyResult() Result {
	g := scoring.ScoreGrammar(nil)
	g.Score, g.Accuracy = 0, 0
	return Result{
		Sentences:   []grammar.SentenceAnalysis{},
		Grammar:     g,
		Vocabulary:  scoring.VocabularyScore{MostCommonWords: []scoring.WordCount{}},
		Overall: Overall{
			Score:            0,
			Grade:            "F",
			EstimatedCEFR:    A1,
			LevelDescription: "Beginner",
		},
		Recommendations: []string{"No data to analyze"},
	}
}
