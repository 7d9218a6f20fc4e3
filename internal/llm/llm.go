package llm

import (
	"context"
	"encoding/json"
	"errors"
)

// Client abstracts LLM providers for transcript analysis.
type Client interface {
	AnalyzeTranscript(ctx context.Context, input AnalyzeInput) (json.RawMessage, error)
}

// AnalyzeInput captures the inputs needed for a transcript analysis.
type AnalyzeInput struct {
	TranscriptText string
	PromptVersion  string
}

type promptHashKey struct{}

// WithPromptHashCapture returns a context that asks the provider to write the
// hash of the submitted prompt into sink.
func WithPromptHashCapture(ctx context.Context, sink *string) context.Context {
	if sink == nil {
		return ctx
	}
	return context.WithValue(ctx, promptHashKey{}, sink)
}

// PromptHashSinkFromContext returns the prompt hash sink, if any.
func PromptHashSinkFromContext(ctx context.Context) (*string, bool) {
	sink, ok := ctx.Value(promptHashKey{}).(*string)
	return sink, ok
}

// ErrNoCredential is returned when the provider has no API key configured.
var ErrNoCredential = errors.New("LLM credential not configured")
