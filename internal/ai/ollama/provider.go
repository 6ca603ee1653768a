package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/thomas-vilte/matereview/internal/config"
	domainErrors "github.com/thomas-vilte/matereview/internal/errors"
	"github.com/thomas-vilte/matereview/internal/logger"
	"github.com/thomas-vilte/matereview/internal/ports"
)

const defaultBaseURL = "http://localhost:11434"

var _ ports.CompletionProvider = (*Provider)(nil)

// Provider talks to Ollama (or any server exposing the OpenAI-compatible
// chat completions endpoint, e.g. LM Studio).
type Provider struct {
	model  string
	apiURL string
	client *http.Client
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type request struct {
	Model    string    `json:"model"`
	Messages []message `json:"messages"`
	Stream   bool      `json:"stream"`
}

type response struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

func New(cfg *config.Config) (*Provider, error) {
	baseURL := cfg.BaseURL(config.AIOllama)
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	// Normalize URL: strip trailing /, /v1, /v1/chat/completions
	baseURL = strings.TrimRight(baseURL, "/")
	baseURL = strings.TrimSuffix(baseURL, "/v1/chat/completions")
	baseURL = strings.TrimSuffix(baseURL, "/v1")

	return &Provider{
		model:  cfg.Model,
		apiURL: baseURL + "/v1/chat/completions",
		client: &http.Client{Timeout: 300 * time.Second},
	}, nil
}

func (p *Provider) Name() string { return "ollama" }

func (p *Provider) Complete(ctx context.Context, prompt string) (string, error) {
	log := logger.FromContext(ctx)

	log.Debug("calling ollama API",
		"model", p.model,
		"url", p.apiURL,
		"prompt_length", len(prompt))

	body := request{
		Model:    p.model,
		Messages: []message{{Role: "user", Content: prompt}},
		Stream:   false,
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

	httpResp, err := p.client.Do(httpReq)
	if err != nil {
		log.Error("ollama API call failed", "error", err)
		return "", domainErrors.ErrAIGeneration.WithError(err).
			WithContext("provider", "ollama").
			WithSuggestion("Check that ollama is running and OLLAMA_HOST points to it")
	}
	defer func() {
		_ = httpResp.Body.Close()
	}()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return "", fmt.Errorf("reading response: %w", err)
	}

	if httpResp.StatusCode != http.StatusOK {
		return "", domainErrors.ErrAIGeneration.
			WithContext("provider", "ollama").
			WithContext("status_code", httpResp.StatusCode).
			WithContext("body", string(respBody))
	}

	var result response
	if err := json.Unmarshal(respBody, &result); err != nil {
		return "", domainErrors.ErrAIGeneration.WithError(err).
			WithContext("provider", "ollama").
			WithContext("reason", "unparseable response body")
	}

	if len(result.Choices) == 0 || result.Choices[0].Message.Content == "" {
		return "", domainErrors.ErrAIGeneration.
			WithContext("provider", "ollama").
			WithContext("reason", "empty response from model")
	}

	log.Debug("ollama response received",
		"output_length", len(result.Choices[0].Message.Content))

	return result.Choices[0].Message.Content, nil
}
