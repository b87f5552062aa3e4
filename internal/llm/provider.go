package llm

import (
	"context"
	"encoding/json"
)

// Provider is a chat model that can answer in schema-conforming JSON. The
// grammar classifier is its only consumer.
type Provider interface {
	// Generate runs one request. With req.Schema set the returned Content
	// has already been validated against it; otherwise it is the model's
	// text as-is.
	Generate(ctx context.Context, req Request) (*Response, error)

	ModelID() string
}

type Request struct {
	System   string
	Messages []Message

	// Schema asks for structured output. Providers adapt it to their own
	// structured output mode before sending.
	Schema *Schema

	MaxTokens int

	// Temperature of zero leaves the provider default in place for
	// Anthropic and Gemini.
	Temperature float64
}

type Message struct {
	Role    Role
	Content string
}

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Schema is a named JSON Schema. Properties missing from "required" are
// optional; see structuredSchema for how each provider receives them.
type Schema struct {
	// Name keys the validator cache and is sent as the schema name, so it
	// must be unique per Definition.
	Name        string
	Description string
	Definition  map[string]any
}

type Response struct {
	Content json.RawMessage
	Usage   Usage
	// Model is the model that served the request, which may differ from
	// ModelID when the API resolves an alias.
	Model string
	// StopReason is StopEnd or StopMaxTokens.
	StopReason string
}

type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}
