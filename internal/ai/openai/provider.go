package openai

import (
	"context"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/thomas-vilte/matereview/internal/config"
	domainErrors "github.com/thomas-vilte/matereview/internal/errors"
	"github.com/thomas-vilte/matereview/internal/logger"
	"github.com/thomas-vilte/matereview/internal/ports"
)

var _ ports.CompletionProvider = (*Provider)(nil)

type Provider struct {
	client openai.Client
	model  string
}

func New(cfg *config.Config) (*Provider, error) {
	apiKey := cfg.APIKey(config.AIOpenAI)
	if apiKey == "" {
		return nil, domainErrors.ErrAPIKeyMissing.WithContext("provider", "openai")
	}

	opts := []option.RequestOption{option.WithAPIKey(apiKey)}
	if baseURL := cfg.BaseURL(config.AIOpenAI); baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}

	return &Provider{
		client: openai.NewClient(opts...),
		model:  cfg.Model,
	}, nil
}

func (p *Provider) Name() string { return "openai" }

func (p *Provider) Complete(ctx context.Context, prompt string) (string, error) {
	log := logger.FromContext(ctx)

	log.Debug("calling openai API",
		"model", p.model,
		"prompt_length", len(prompt))

	resp, err := p.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(p.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
	})
	if err != nil {
		log.Error("openai API call failed",
			"error", err,
			"model", p.model)

		errMsg := strings.ToLower(err.Error())
		if strings.Contains(errMsg, "429") || strings.Contains(errMsg, "rate limit") || strings.Contains(errMsg, "quota") {
			return "", domainErrors.ErrAIQuotaExceeded.WithError(err).WithContext("provider", "openai")
		}
		if strings.Contains(errMsg, "401") || strings.Contains(errMsg, "invalid api key") || strings.Contains(errMsg, "incorrect api key") {
			return "", domainErrors.ErrAIKeyInvalid.WithError(err).WithContext("provider", "openai")
		}
		return "", domainErrors.ErrAIGeneration.WithError(err).WithContext("provider", "openai")
	}

	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", domainErrors.ErrAIGeneration.
			WithContext("provider", "openai").
			WithContext("reason", "empty response from model")
	}

	log.Debug("openai response received",
		"output_length", len(resp.Choices[0].Message.Content))

	return resp.Choices[0].Message.Content, nil
}
