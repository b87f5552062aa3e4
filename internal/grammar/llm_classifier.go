package grammar

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"text/template"

	"github.com/go-playground/validator/v10"

	"github.com/abhisek/fluentcheck/internal/llm"
)

// LLMClassifierConfig holds generation settings for the LLM classifier.
type LLMClassifierConfig struct {
	MaxTokens   int
	Temperature float64
}

// DefaultLLMClassifierConfig returns sensible defaults.
func DefaultLLMClassifierConfig() LLMClassifierConfig {
	return LLMClassifierConfig{
		MaxTokens:   2048,
		Temperature: 0,
	}
}

// LLMClassifier is a Classifier backed by an llm.Provider using structured
// output.
type LLMClassifier struct {
	provider llm.Provider
	cfg      LLMClassifierConfig
	validate *validator.Validate
}

// NewLLMClassifier creates a classifier over provider. A nil provider yields
// a classifier that reports itself unavailable.
func NewLLMClassifier(provider llm.Provider, cfg LLMClassifierConfig) *LLMClassifier {
	return &LLMClassifier{
		provider: provider,
		cfg:      cfg,
		validate: validator.New(),
	}
}

// Available reports whether a provider is configured.
func (c *LLMClassifier) Available() bool {
	return c != nil && c.provider != nil
}

// classificationOutput is the raw LLM response.
type classificationOutput struct {
	Results [][]rawAnnotation `json:"results"`
}

type rawAnnotation struct {
	Type        string  `json:"type" validate:"required"`
	Description string  `json:"description"`
	Severity    string  `json:"severity" validate:"omitempty,oneof=low medium high"`
	Suggestion  *string `json:"suggestion"`
	Position    *int    `json:"position" validate:"omitempty,min=0"`
}

// Classify sends all sentences in a single request. Annotations with an
// unknown type are dropped; an out-of-range severity becomes medium and a
// negative position is cleared.
func (c *LLMClassifier) Classify(ctx context.Context, sentences []string) ([][]Annotation, error) {
	if !c.Available() {
		return nil, errors.New("llm classifier: no provider configured")
	}
	ctx = llm.WithPurpose(ctx, "grammar-classify")

	userMsg, err := buildClassificationMessage(sentences)
	if err != nil {
		return nil, fmt.Errorf("build classification prompt: %w", err)
	}

	resp, err := c.provider.Generate(ctx, llm.Request{
		System: classificationSystemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: userMsg},
		},
		Schema:      ClassificationSchema,
		MaxTokens:   c.cfg.MaxTokens,
		Temperature: c.cfg.Temperature,
	})
	if err != nil {
		return nil, fmt.Errorf("LLM classification failed: %w", err)
	}

	var raw classificationOutput
	if err := json.Unmarshal(resp.Content, &raw); err != nil {
		return nil, llm.InvalidResponse(resp.Content, fmt.Errorf("decode classification: %w", err))
	}
	if raw.Results == nil {
		return nil, llm.InvalidResponse(resp.Content, errors.New(`missing "results" field`))
	}

	out := make([][]Annotation, 0, min(len(raw.Results), len(sentences)))
	for i, entries := range raw.Results {
		if i >= len(sentences) {
			break
		}
		anns := make([]Annotation, 0, len(entries))
		for _, e := range entries {
			if a, ok := c.normalize(e); ok {
				anns = append(anns, a)
			}
		}
		out = append(out, anns)
	}
	return out, nil
}

// normalize turns a raw annotation into an Annotation, reporting false when
// it must be discarded.
func (c *LLMClassifier) normalize(e rawAnnotation) (Annotation, bool) {
	e.Severity = strings.ToLower(strings.TrimSpace(e.Severity))

	if err := c.validate.Struct(e); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return Annotation{}, false
		}
		for _, fe := range verrs {
			switch fe.Field() {
			case "Type":
				return Annotation{}, false
			case "Severity":
				e.Severity = ""
			case "Position":
				e.Position = nil
			}
		}
	}

	t, err := ParseErrorType(e.Type)
	if err != nil {
		return Annotation{}, false
	}

	a := Annotation{
		Type:        t,
		Description: e.Description,
		Severity:    ParseSeverity(e.Severity),
		Position:    e.Position,
	}
	if e.Suggestion != nil && strings.TrimSpace(*e.Suggestion) != "" {
		a.Suggestion = e.Suggestion
	}
	return a, true
}

var classificationSystemPrompt = buildSystemPrompt()

func buildSystemPrompt() string {
	names := make([]string, 0, len(errorTypes))
	for _, t := range errorTypes {
		names = append(names, strings.ToUpper(string(t)))
	}

	return `You are an expert English grammar error analyzer.

Given a numbered list of sentences, analyze each sentence and identify its grammar errors.

Available error types:
` + strings.Join(names, ", ") + `

For each error, return an object with:
- type: one of the error types above (lowercase with underscores)
- description: a specific explanation of the error
- severity: "low", "medium", or "high"
- suggestion: how to fix the error, or null
- position: the zero-based word position of the error in the sentence, or null

Rules:
1. Return one list per sentence, in the order given.
2. Use "other" only when an error fits no other category.
3. Be specific in descriptions.
4. If a sentence is correct, return an empty list for it.`
}

var classificationUserTemplate = template.Must(template.New("classify").Parse(`Sentences:
{{range $i, $s := .}}{{$i}}. {{$s}}
{{end}}`))

func buildClassificationMessage(sentences []string) (string, error) {
	var buf bytes.Buffer
	if err := classificationUserTemplate.Execute(&buf, sentences); err != nil {
		return "", err
	}
	return buf.String(), nil
}
