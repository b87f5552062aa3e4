package grammar

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/abhisek/fluentcheck/internal/llm"
)

// DefaultClassifierTimeout bounds a single classifier request.
const DefaultClassifierTimeout = 20 * time.Second

// AnalyzerOptions configures an Analyzer.
type AnalyzerOptions struct {
	// UseClassifier enables the classifier tier. When false, only the rule
	// fallback runs.
	UseClassifier bool

	// Timeout bounds the classifier call. Zero means
	// DefaultClassifierTimeout.
	Timeout time.Duration

	// Rules overrides the fallback rule set. Nil means DefaultRules.
	Rules []Rule

	Logger *slog.Logger
}

// Analyzer labels grammar errors sentence by sentence. It asks the
// classifier first and falls back to the rule detector whenever the
// classifier is disabled, unavailable or fails in any way. Analyze never
// returns an error.
type Analyzer struct {
	classifier Classifier
	rules      *RuleDetector
	opts       AnalyzerOptions
	logger     *slog.Logger
}

// NewAnalyzer creates an Analyzer. classifier may be nil.
func NewAnalyzer(classifier Classifier, opts AnalyzerOptions) (*Analyzer, error) {
	rules := opts.Rules
	if rules == nil {
		rules = DefaultRules()
	}
	detector, err := NewRuleDetector(rules)
	if err != nil {
		return nil, err
	}

	if opts.Timeout <= 0 {
		opts.Timeout = DefaultClassifierTimeout
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Analyzer{
		classifier: classifier,
		rules:      detector,
		opts:       opts,
		logger:     logger.With("component", "grammar"),
	}, nil
}

// Analyze returns one SentenceAnalysis per sentence, in input order.
func (a *Analyzer) Analyze(ctx context.Context, sentences []string) []SentenceAnalysis {
	if len(sentences) == 0 {
		return []SentenceAnalysis{}
	}

	if a.classifierEnabled() {
		results, err := a.tryClassify(ctx, sentences)
		if err == nil {
			return a.assemble(sentences, results)
		}
		a.logger.Warn("classifier failed, using rule fallback",
			"sentences", len(sentences),
			"kind", llm.KindOf(err),
			"error", err,
		)
	}

	return a.rules.Analyze(sentences)
}

// AnalyzeSingle analyzes one sentence.
func (a *Analyzer) AnalyzeSingle(ctx context.Context, sentence string) SentenceAnalysis {
	return a.Analyze(ctx, []string{sentence})[0]
}

// ErrorSummary counts errors by type across sentences.
func (a *Analyzer) ErrorSummary(ctx context.Context, sentences []string) map[ErrorType]int {
	summary := make(map[ErrorType]int)
	for _, sa := range a.Analyze(ctx, sentences) {
		for _, e := range sa.Errors {
			summary[e.Type]++
		}
	}
	return summary
}

func (a *Analyzer) classifierEnabled() bool {
	return a.opts.UseClassifier && a.classifier != nil && a.classifier.Available()
}

// tryClassify runs the classifier under the configured deadline. A
// classifier that ignores its context is abandoned when the deadline passes;
// a panic inside it becomes an error.
func (a *Analyzer) tryClassify(ctx context.Context, sentences []string) ([][]Annotation, error) {
	ctx, cancel := context.WithTimeout(ctx, a.opts.Timeout)
	defer cancel()

	type outcome struct {
		results [][]Annotation
		err     error
	}
	done := make(chan outcome, 1)

	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- outcome{err: fmt.Errorf("classifier panic: %v", r)}
			}
		}()
		results, err := a.classifier.Classify(ctx, sentences)
		done <- outcome{results: results, err: err}
	}()

	select {
	case o := <-done:
		if o.err != nil {
			return nil, o.err
		}
		return o.results, nil
	case <-ctx.Done():
		return nil, fmt.Errorf("classifier: %w", ctx.Err())
	}
}

func (a *Analyzer) assemble(sentences []string, results [][]Annotation) []SentenceAnalysis {
	out := make([]SentenceAnalysis, 0, len(sentences))
	for i, s := range sentences {
		var errs []Annotation
		if i < len(results) {
			errs = validAnnotations(results[i])
		}
		out = append(out, NewSentenceAnalysis(s, errs))
	}
	return out
}

// validAnnotations drops annotations whose type is outside the category set
// and fills in the default severity. Classifier implementations other than
// LLMClassifier are not trusted to have done so.
func validAnnotations(in []Annotation) []Annotation {
	out := make([]Annotation, 0, len(in))
	for _, e := range in {
		t, err := ParseErrorType(string(e.Type))
		if err != nil {
			continue
		}
		e.Type = t
		e.Severity = ParseSeverity(string(e.Severity))
		if e.Position != nil && *e.Position < 0 {
			e.Position = nil
		}
		out = append(out, e)
	}
	return out
}
