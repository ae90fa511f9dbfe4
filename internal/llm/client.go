package llm

import (
	"context"
	"errors"
	"os"
)

// Client is the text-generation capability the pipeline depends on.
// Implementations return the raw completion text; callers decide
// whether to treat it as prose or strict JSON.
type Client interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

var (
	// ErrDisabled is returned when no generation backend is configured.
	ErrDisabled = errors.New("llm: no text generation backend configured")

	// ErrEmptyCompletion is returned when the backend answered with no text.
	ErrEmptyCompletion = errors.New("llm: empty completion")

	// ErrInvalidJSON is returned when a completion that must be strict
	// JSON is not parseable after fence stripping.
	ErrInvalidJSON = errors.New("llm: completion is not valid JSON")
)

// NewFromEnv picks a backend from the environment: Gemini if
// GEMINI_API_KEY is set, an OpenAI-compatible endpoint if
// OPENAI_API_KEY is set, otherwise the disabled client. Every caller
// of a Client has a deterministic fallback, so running without a key
// is a supported mode, not an error.
func NewFromEnv() Client {
	if os.Getenv("GEMINI_API_KEY") != "" {
		return NewGeminiClient()
	}
	if os.Getenv("OPENAI_API_KEY") != "" {
		return NewOpenAIClient()
	}
	return NewDisabledClient()
}
