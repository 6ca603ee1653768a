package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/thomas-vilte/matereview/internal/models"
)

type (
	// Config is the bundle the review pipeline runs with. Every field can be
	// overridden per run by CLI flags or environment variables; the file under
	// ~/.matereview/config.json only provides the defaults.
	Config struct {
		Provider        AI                    `json:"provider"`
		Model           string                `json:"model"`
		Language        string                `json:"language"`
		IncludePatterns []string              `json:"include_patterns"`
		ExcludePatterns []string              `json:"exclude_patterns"`
		PostComment     bool                  `json:"post_comment"`
		ForcedStack     string                `json:"forced_stack,omitempty"`
		Providers       map[AI]ProviderConfig `json:"providers"`
		GitHubToken     string                `json:"-"`
		PathFile        string                `json:"path_file"`
	}

	ProviderConfig struct {
		APIKey  string `json:"api_key,omitempty"`
		BaseURL string `json:"base_url,omitempty"`
	}
)

const (
	defaultLang        = "en"
	defaultProvider    = AIGemini
	defaultPostComment = true
)

func LoadConfig(path string) (*Config, error) {
	var configPath string

	if filepath.Ext(path) == ".json" {
		configPath = path
	} else {
		configDir := filepath.Join(path, ".matereview")
		configPath = filepath.Join(configDir, "config.json")

		if _, err := os.Stat(configDir); os.IsNotExist(err) {
			if err := os.MkdirAll(configDir, 0755); err != nil {
				return nil, fmt.Errorf("error creating config directory: %w", err)
			}
		}
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return createDefaultConfig(configPath)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	config := &Config{}
	if err := json.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("error decoding config file: %w", err)
	}
	config.PathFile = configPath
	applyDefaults(config)
	applyEnv(config)

	if err := ValidateConfig(config); err != nil {
		return nil, fmt.Errorf("loaded configuration is not valid: %w", err)
	}

	return config, nil
}

func createDefaultConfig(path string) (*Config, error) {
	config := &Config{
		Provider:        defaultProvider,
		Model:           string(DefaultModelForAI(defaultProvider)),
		Language:        defaultLang,
		IncludePatterns: []string{},
		ExcludePatterns: []string{},
		PostComment:     defaultPostComment,
		Providers:       map[AI]ProviderConfig{},
		PathFile:        path,
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("error creating config directory: %w", err)
	}

	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("error encoding default config: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return nil, fmt.Errorf("error saving default config: %w", err)
	}

	applyEnv(config)
	return config, nil
}

func SaveConfig(config *Config) error {
	if err := ValidateConfig(config); err != nil {
		return fmt.Errorf("configuration to save is not valid: %w", err)
	}

	if config.PathFile == "" {
		return errors.New("config file path is not set")
	}

	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return fmt.Errorf("error encoding config: %w", err)
	}

	if err := os.WriteFile(config.PathFile, data, 0600); err != nil {
		return fmt.Errorf("error writing config file: %w", err)
	}

	return nil
}

// ValidateConfig checks provider, model and stack-override consistency.
func ValidateConfig(config *Config) error {
	if !IsSupportedAI(config.Provider) {
		return fmt.Errorf("unsupported provider %q", config.Provider)
	}
	if config.Model == "" {
		return errors.New("model is not set")
	}
	if config.ForcedStack != "" && !models.ValidStack(models.StackTag(config.ForcedStack)) {
		return fmt.Errorf("unsupported stack override %q", config.ForcedStack)
	}
	return nil
}

// APIKey returns the configured key for the given provider, falling back to
// the conventional environment variable for that provider.
func (c *Config) APIKey(ai AI) string {
	if pc, ok := c.Providers[ai]; ok && pc.APIKey != "" {
		return pc.APIKey
	}
	switch ai {
	case AIGemini:
		return os.Getenv("GEMINI_API_KEY")
	case AIOpenAI:
		return os.Getenv("OPENAI_API_KEY")
	case AIAnthropic:
		return os.Getenv("ANTHROPIC_API_KEY")
	default:
		return ""
	}
}

// BaseURL returns the configured endpoint override for the given provider.
func (c *Config) BaseURL(ai AI) string {
	if pc, ok := c.Providers[ai]; ok && pc.BaseURL != "" {
		return pc.BaseURL
	}
	if ai == AIOllama {
		return os.Getenv("OLLAMA_HOST")
	}
	return ""
}

func applyDefaults(config *Config) {
	if config.Provider == "" {
		config.Provider = defaultProvider
	}
	if config.Model == "" {
		config.Model = string(DefaultModelForAI(config.Provider))
	}
	if config.Language == "" {
		config.Language = defaultLang
	}
	if config.Providers == nil {
		config.Providers = map[AI]ProviderConfig{}
	}
}

func applyEnv(config *Config) {
	if token := os.Getenv("GITHUB_TOKEN"); token != "" {
		config.GitHubToken = token
	}
}
