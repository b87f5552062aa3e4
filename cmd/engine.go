package cmd

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/fluentcheck/internal/evaluator"
	"github.com/abhisek/fluentcheck/internal/grammar"
	"github.com/abhisek/fluentcheck/internal/llm"
	"github.com/abhisek/fluentcheck/internal/store"
)

// classifierRules names evaluations made without an LLM classifier.
const classifierRules = "rules"

// engine bundles what the evaluation commands need.
type engine struct {
	store      *store.Store // nil when persistence is unavailable
	analyzer   *grammar.Analyzer
	evaluator  *evaluator.Evaluator
	classifier string
}

// newEngine opens the store (unless --no-save) and builds the analyzer. A
// store or provider failure is logged and the engine falls back to running
// without it.
func newEngine(cmd *cobra.Command) (*engine, error) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	e := &engine{classifier: classifierRules}

	if noSave, _ := cmd.Flags().GetBool("no-save"); !noSave {
		s, err := openStore(cmd)
		if err != nil {
			logger.Warn("continuing without local history", "error", err)
		} else {
			e.store = s
		}
	}

	var classifier grammar.Classifier
	noClassifier, _ := cmd.Flags().GetBool("no-classifier")
	if settings.UseClassifier && !noClassifier {
		var events store.EventRepo
		if e.store != nil {
			events = e.store.EventRepo()
		}

		llmCfg := settings.LLM()
		provider, err := llm.NewProvider(ctx, llmCfg, events, logger)
		switch {
		case err != nil:
			logger.Warn("LLM classifier unavailable, using rules", "provider", llmCfg.Provider, "error", err)
		case provider != nil:
			classifier = grammar.NewLLMClassifier(provider, grammar.DefaultLLMClassifierConfig())
			e.classifier = llmCfg.Provider + ":" + provider.ModelID()
		}
	}

	analyzer, err := grammar.NewAnalyzer(classifier, grammar.AnalyzerOptions{
		UseClassifier: classifier != nil,
		Timeout:       settings.ClassifierTimeout,
		Logger:        logger,
	})
	if err != nil {
		e.Close()
		return nil, fmt.Errorf("create analyzer: %w", err)
	}
	e.analyzer = analyzer

	ev, err := evaluator.New(analyzer, logger)
	if err != nil {
		e.Close()
		return nil, fmt.Errorf("create evaluator: %w", err)
	}
	e.evaluator = ev
	return e, nil
}

// Close releases the store.
func (e *engine) Close() {
	if e.store != nil {
		e.store.Close()
	}
}

// save stores a full evaluation in the history. It is a no-op without a
// store or for empty input.
func (e *engine) save(ctx context.Context, res evaluator.Result) (*store.EvaluationRecord, error) {
	if e.store == nil || res.BasicStats.TotalSentences == 0 {
		return nil, nil
	}

	payload, err := json.Marshal(res)
	if err != nil {
		return nil, fmt.Errorf("encode evaluation: %w", err)
	}

	rec := &store.EvaluationRecord{
		SentenceCount:    res.BasicStats.TotalSentences,
		OverallScore:     res.Overall.Score,
		Grade:            res.Overall.Grade,
		CEFR:             string(res.Overall.EstimatedCEFR),
		GrammarScore:     res.Grammar.Score,
		VocabularyScore:  res.Vocabulary.Score,
		ComplexityScore:  res.Complexity.Score,
		ReadabilityScore: res.Readability.Score,
		Classifier:       e.classifier,
		Payload:          payload,
	}
	if err := e.store.EvaluationRepo().Save(ctx, rec); err != nil {
		return nil, fmt.Errorf("save evaluation: %w", err)
	}
	return rec, nil
}

// addEngineFlags registers the flags newEngine reads.
func addEngineFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("no-classifier", false, "Use only the built-in rules for grammar errors")
	cmd.Flags().Bool("no-save", false, "Do not record the evaluation or LLM requests locally")
}
