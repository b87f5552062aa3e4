package grammar

import "github.com/abhisek/fluentcheck/internal/llm"

// ClassificationSchema is the structured output the LLM classifier asks for:
// one array of annotations per input sentence. suggestion and position are
// optional; each provider adapts that to its structured output mode.
var ClassificationSchema = &llm.Schema{
	Name:        "grammar-classification",
	Description: "Grammar errors found in each sentence, one list per sentence in input order",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"results": map[string]any{
				"type":        "array",
				"description": "One entry per input sentence, in the same order",
				"items": map[string]any{
					"type":  "array",
					"items": annotationSchema,
				},
			},
		},
		"required": []any{"results"},
	},
}

var annotationSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"type": map[string]any{
			"type":        "string",
			"description": "Error category, lowercase with underscores",
		},
		"description": map[string]any{
			"type":        "string",
			"description": "Specific explanation of the error",
		},
		"severity": map[string]any{
			"type": "string",
			"enum": []any{"low", "medium", "high"},
		},
		"suggestion": map[string]any{
			"type":        "string",
			"description": "How to fix the error",
		},
		"position": map[string]any{
			"type":        "integer",
			"description": "Zero-based word position of the error in the sentence",
		},
	},
	"required": []any{"type", "description", "severity"},
}
