package ports

import "context"

// CompletionProvider is the capability surface the pipeline needs from a
// language model: one prompt in, one generated text out. No streaming.
type CompletionProvider interface {
	// Complete sends the prompt and returns the generated text.
	Complete(ctx context.Context, prompt string) (string, error)

	// Name returns the provider tag (e.g.: "gemini", "openai", "anthropic")
	Name() string
}
