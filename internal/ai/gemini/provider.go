package gemini

import (
	"context"
	"strings"

	"github.com/thomas-vilte/matereview/internal/config"
	domainErrors "github.com/thomas-vilte/matereview/internal/errors"
	"github.com/thomas-vilte/matereview/internal/logger"
	"github.com/thomas-vilte/matereview/internal/ports"
	"google.golang.org/genai"
)

var _ ports.CompletionProvider = (*Provider)(nil)

type Provider struct {
	client *genai.Client
	model  string
}

func New(ctx context.Context, cfg *config.Config) (*Provider, error) {
	apiKey := cfg.APIKey(config.AIGemini)
	if apiKey == "" {
		return nil, domainErrors.ErrAPIKeyMissing.WithContext("provider", "gemini")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		errMsg := strings.ToLower(err.Error())
		if strings.Contains(errMsg, "invalid") ||
			strings.Contains(errMsg, "unauthorized") ||
			strings.Contains(errMsg, "api key") ||
			strings.Contains(errMsg, "authentication") {
			return nil, domainErrors.ErrAIKeyInvalid.WithError(err).WithContext("provider", "gemini")
		}
		return nil, domainErrors.NewAppError(domainErrors.TypeAI, "error creating AI client", err)
	}

	return &Provider{
		client: client,
		model:  cfg.Model,
	}, nil
}

func (p *Provider) Name() string { return "gemini" }

func (p *Provider) Complete(ctx context.Context, prompt string) (string, error) {
	log := logger.FromContext(ctx)

	log.Debug("calling gemini API",
		"model", p.model,
		"prompt_length", len(prompt))

	genConfig := GetGenerateConfig(p.model, "application/json")

	resp, err := p.client.Models.GenerateContent(ctx, p.model, genai.Text(prompt), genConfig)
	if err != nil {
		log.Error("gemini API call failed",
			"error", err,
			"model", p.model)

		errMsg := strings.ToLower(err.Error())
		if strings.Contains(errMsg, "quota") ||
			strings.Contains(errMsg, "rate limit") ||
			strings.Contains(errMsg, "resource exhausted") {
			return "", domainErrors.ErrAIQuotaExceeded.WithError(err).WithContext("provider", "gemini")
		}

		if strings.Contains(errMsg, "invalid") ||
			strings.Contains(errMsg, "unauthorized") ||
			strings.Contains(errMsg, "api key") {
			return "", domainErrors.ErrAIKeyInvalid.WithError(err).WithContext("provider", "gemini")
		}

		return "", domainErrors.ErrAIGeneration.WithError(err).WithContext("provider", "gemini")
	}

	text := formatResponse(resp)
	if text == "" {
		return "", domainErrors.ErrAIGeneration.
			WithContext("provider", "gemini").
			WithContext("reason", "empty response from model")
	}

	if usage := extractUsage(resp); usage != nil {
		log.Debug("gemini response received",
			"input_tokens", usage.InputTokens,
			"output_tokens", usage.OutputTokens)
	}

	return text, nil
}
