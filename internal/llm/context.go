package llm

import "context"

type purposeKey struct{}

// WithPurpose tags the requests made under ctx, such as "grammar-classify",
// so recorded LLM events can be filtered by what they were for.
func WithPurpose(ctx context.Context, purpose string) context.Context {
	return context.WithValue(ctx, purposeKey{}, purpose)
}

// PurposeFrom returns the WithPurpose tag, or "unknown" for untagged calls.
func PurposeFrom(ctx context.Context) string {
	if p, _ := ctx.Value(purposeKey{}).(string); p != "" {
		return p
	}
	return "unknown"
}
