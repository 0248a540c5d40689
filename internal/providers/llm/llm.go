package llm

import "context"

// Provider produces one complete model response per prompt.
type Provider interface {
	Generate(ctx context.Context, prompt string) (string, error)
	Close() error
}

const DefaultModel = "gemini-2.5-flash"
