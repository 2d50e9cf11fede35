package llm

import "context"

// Purpose labels recorded on llm_events rows so the event log can tell what
// the tutor was asked for.
const (
	PurposeExplanation = "explanation"
	PurposeUnknown     = "unknown"
)

type purposeKey struct{}

// WithPurpose tags the context with a purpose label for event logging.
func WithPurpose(ctx context.Context, purpose string) context.Context {
	return context.WithValue(ctx, purposeKey{}, purpose)
}

// PurposeFrom returns the tagged purpose, or PurposeUnknown when the caller
// did not tag one.
func PurposeFrom(ctx context.Context) string {
	if v, ok := ctx.Value(purposeKey{}).(string); ok && v != "" {
		return v
	}
	return PurposeUnknown
}
