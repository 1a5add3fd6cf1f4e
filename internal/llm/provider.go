// Package llm abstracts the language model used for signpost mapping behind
// a narrow interface, so tests can substitute a deterministic fake without
// touching the mapper's control flow.
package llm

import (
	"context"
	"errors"
)

// ErrUnparseable indicates the model returned output that could not be
// decoded into proposals. Callers must not retry the same payload.
var ErrUnparseable = errors.New("unparseable model output")

// Request is a single completion request.
type Request struct {
	SystemPrompt string
	UserPrompt   string
	MaxTokens    int
}

// Usage carries token counts and the estimated cost of one call.
type Usage struct {
	PromptTokens     int
	CompletionTokens int
	CostUSD          float64
}

// Response is the raw completion plus usage metadata.
type Response struct {
	Content string
	Model   string
	Usage   Usage
}

// Provider is the interface for completion providers.
type Provider interface {
	// Name returns the provider name, e.g. "openai".
	Name() string

	// Available reports whether the provider is configured and usable.
	Available() bool

	// Generate sends a prompt and returns the completion with usage.
	Generate(ctx context.Context, req Request) (Response, error)
}
