package llm

import "context"

type contextKey string

const purposeKey contextKey = "llm_purpose"

// PurposeAdvice labels EduBot chat requests.
const PurposeAdvice = "advice"

// WithPurpose labels requests made with ctx for event logging.
func WithPurpose(ctx context.Context, purpose string) context.Context {
	return context.WithValue(ctx, purposeKey, purpose)
}

// PurposeFrom returns the purpose label on ctx, or "unknown".
func PurposeFrom(ctx context.Context) string {
	if v, ok := ctx.Value(purposeKey).(string); ok {
		return v
	}
	return "unknown"
}
