package anthropic

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/thomas-vilte/matereview/internal/config"
	domainErrors "github.com/thomas-vilte/matereview/internal/errors"
	"github.com/thomas-vilte/matereview/internal/logger"
	"github.com/thomas-vilte/matereview/internal/ports"
)

const (
	defaultAPIURL = "https://api.anthropic.com/v1/messages"
	apiVersion    = "2023-06-01"
	maxTokens     = 8192
)

var _ ports.CompletionProvider = (*Provider)(nil)

type Provider struct {
	apiKey string
	model  string
	apiURL string
	client *http.Client
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type request struct {
	Model     string    `json:"model"`
	MaxTokens int       `json:"max_tokens"`
	Messages  []message `json:"messages"`
}

type response struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
}

func New(cfg *config.Config) (*Provider, error) {
	apiKey := cfg.APIKey(config.AIAnthropic)
	if apiKey == "" {
		return nil, domainErrors.ErrAPIKeyMissing.WithContext("provider", "anthropic")
	}

	apiURL := defaultAPIURL
	if baseURL := cfg.BaseURL(config.AIAnthropic); baseURL != "" {
		apiURL = baseURL
	}

	return &Provider{
		apiKey: apiKey,
		model:  cfg.Model,
		apiURL: apiURL,
		client: &http.Client{Timeout: 120 * time.Second},
	}, nil
}

func (p *Provider) Name() string { return "anthropic" }

func (p *Provider) Complete(ctx context.Context, prompt string) (string, error) {
	log := logger.FromContext(ctx)

	log.Debug("calling anthropic API",
		"model", p.model,
		"prompt_length", len(prompt))

	body := request{
		Model:     p.model,
		MaxTokens: maxTokens,
		Messages:  []message{{Role: "user", Content: prompt}},
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("marshaling request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.apiURL, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-api-key", p.apiKey)
	httpReq.Header.Set("anthropic-version", apiVersion)

	httpResp, err := p.client.Do(httpReq)
	if err != nil {
		log.Error("anthropic API call failed", "error", err)
		return "", domainErrors.ErrAIGeneration.WithError(err).WithContext("provider", "anthropic")
	}
	defer func() {
		_ = httpResp.Body.Close()
	}()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return "", fmt.Errorf("reading response: %w", err)
	}

	switch {
	case httpResp.StatusCode == http.StatusTooManyRequests:
		return "", domainErrors.ErrAIQuotaExceeded.
			WithContext("provider", "anthropic").
			WithContext("retry_after", httpResp.Header.Get("Retry-After"))
	case httpResp.StatusCode == http.StatusUnauthorized || httpResp.StatusCode == http.StatusForbidden:
		return "", domainErrors.ErrAIKeyInvalid.
			WithContext("provider", "anthropic").
			WithContext("status_code", httpResp.StatusCode)
	case httpResp.StatusCode != http.StatusOK:
		return "", domainErrors.ErrAIGeneration.
			WithContext("provider", "anthropic").
			WithContext("status_code", httpResp.StatusCode).
			WithContext("body", string(respBody))
	}

	var result response
	if err := json.Unmarshal(respBody, &result); err != nil {
		return "", domainErrors.ErrAIGeneration.WithError(err).
			WithContext("provider", "anthropic").
			WithContext("reason", "unparseable response body")
	}

	var content string
	for _, block := range result.Content {
		if block.Type == "text" {
			content += block.Text
		}
	}

	if content == "" {
		return "", domainErrors.ErrAIGeneration.
			WithContext("provider", "anthropic").
			WithContext("reason", "empty response from model")
	}

	log.Debug("anthropic response received",
		"output_length", len(content))

	return content, nil
}
