package ai

import (
	"context"

	"github.com/thomas-vilte/matereview/internal/ai/anthropic"
	"github.com/thomas-vilte/matereview/internal/ai/gemini"
	"github.com/thomas-vilte/matereview/internal/ai/ollama"
	"github.com/thomas-vilte/matereview/internal/ai/openai"
	"github.com/thomas-vilte/matereview/internal/config"
	domainErrors "github.com/thomas-vilte/matereview/internal/errors"
	"github.com/thomas-vilte/matereview/internal/ports"
)

// NewProvider constructs the completion provider selected by the
// configuration tag. One concrete type per backend, chosen at construction
// time.
func NewProvider(ctx context.Context, cfg *config.Config) (ports.CompletionProvider, error) {
	switch cfg.Provider {
	case config.AIGemini:
		return gemini.New(ctx, cfg)
	case config.AIOpenAI:
		return openai.New(cfg)
	case config.AIAnthropic:
		return anthropic.New(cfg)
	case config.AIOllama:
		return ollama.New(cfg)
	default:
		return nil, domainErrors.ErrUnknownProvider.WithContext("provider", string(cfg.Provider))
	}
}
