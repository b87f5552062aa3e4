package llm

import (
	"bytes"
	"encoding/json"
	"fmt"
	"maps"
	"slices"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// Normalized stop reasons.
const (
	StopEnd       = "end"
	StopMaxTokens = "max_tokens"
)

// structuredSchema adapts a schema to structured output modes. Properties
// left out of "required" also accept null, since models tend to emit null
// rather than drop a key. With strict set every property is required and
// objects forbid unknown keys, as OpenAI strict mode and Anthropic output
// formats demand; the result is a copy.
func structuredSchema(def map[string]any, strict bool) map[string]any {
	out := maps.Clone(def)
	if out == nil {
		out = map[string]any{}
	}
	if items, ok := def["items"].(map[string]any); ok {
		out["items"] = structuredSchema(items, strict)
	}

	props, ok := def["properties"].(map[string]any)
	if !ok {
		return out
	}
	required := stringList(def["required"])

	names := slices.Sorted(maps.Keys(props))
	adapted := make(map[string]any, len(props))
	for _, name := range names {
		p, _ := props[name].(map[string]any)
		p = structuredSchema(p, strict)
		if !slices.Contains(required, name) {
			makeNullable(p)
		}
		adapted[name] = p
	}
	out["properties"] = adapted

	if strict {
		all := make([]any, len(names))
		for i, n := range names {
			all[i] = n
		}
		out["required"] = all
		out["additionalProperties"] = false
	}
	return out
}

func makeNullable(def map[string]any) {
	switch t := def["type"].(type) {
	case string:
		if t != "null" {
			def["type"] = []any{t, "null"}
		}
	case []any:
		if !slices.Contains(t, any("null")) {
			def["type"] = append(slices.Clone(t), "null")
		}
	}
	if enum, ok := def["enum"].([]any); ok && !slices.Contains(enum, nil) {
		def["enum"] = append(slices.Clone(enum), nil)
	}
}

func stringList(v any) []string {
	switch l := v.(type) {
	case []string:
		return l
	case []any:
		out := make([]string, 0, len(l))
		for _, s := range l {
			if s, ok := s.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

// finish turns provider output into a Response. With a schema, output cut
// off at MaxTokens is KindTruncated and anything else must validate.
func finish(req Request, content json.RawMessage, stop string, usage Usage, model string) (*Response, error) {
	if req.Schema != nil {
		if stop == StopMaxTokens {
			return nil, &Error{
				Kind:    KindTruncated,
				Content: content,
				Err:     fmt.Errorf("output stopped at %d tokens", req.MaxTokens),
			}
		}
		if err := validateResponse(req.Schema, content); err != nil {
			return nil, err
		}
	}
	return &Response{
		Content:    content,
		Usage:      usage,
		Model:      model,
		StopReason: stop,
	}, nil
}

// compiled holds the validators built from each schema's lenient form, by
// schema name.
var compiled sync.Map // map[string]*jsonschema.Schema

// validateResponse checks raw against the lenient form of schema, where
// optional properties may be null or absent. A nil schema accepts anything.
func validateResponse(schema *Schema, raw json.RawMessage) error {
	if schema == nil {
		return nil
	}

	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return InvalidResponse(raw, fmt.Errorf("not JSON: %w", err))
	}

	v, err := validatorFor(schema)
	if err != nil {
		return InvalidResponse(raw, err)
	}
	if err := v.Validate(parsed); err != nil {
		return InvalidResponse(raw, fmt.Errorf("schema %q: %w", schema.Name, err))
	}
	return nil
}

func validatorFor(schema *Schema) (*jsonschema.Schema, error) {
	if v, ok := compiled.Load(schema.Name); ok {
		return v.(*jsonschema.Schema), nil
	}

	// The compiler wants plain decoded JSON, not Go literals such as []string.
	b, err := json.Marshal(structuredSchema(schema.Definition, false))
	if err != nil {
		return nil, fmt.Errorf("encode schema %q: %w", schema.Name, err)
	}
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(b))
	if err != nil {
		return nil, fmt.Errorf("decode schema %q: %w", schema.Name, err)
	}

	url := "schema://" + schema.Name + ".json"
	c := jsonschema.NewCompiler()
	if err := c.AddResource(url, doc); err != nil {
		return nil, fmt.Errorf("load schema %q: %w", schema.Name, err)
	}
	v, err := c.Compile(url)
	if err != nil {
		return nil, fmt.Errorf("compile schema %q: %w", schema.Name, err)
	}
	compiled.Store(schema.Name, v)
	return v, nil
}
