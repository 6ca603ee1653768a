package config

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thomas-vilte/matereview/internal/config"
	"github.com/thomas-vilte/matereview/internal/i18n"
)

func testTranslations(t *testing.T) *i18n.Translations {
	t.Helper()
	translations, err := i18n.NewTranslations("en")
	require.NoError(t, err)
	return translations
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		Provider:    config.AIGemini,
		Model:       string(config.DefaultModelForAI(config.AIGemini)),
		Language:    "en",
		PostComment: true,
		Providers:   map[config.AI]config.ProviderConfig{},
		PathFile:    filepath.Join(t.TempDir(), "config.json"),
	}
}

func readSavedConfig(t *testing.T, path string) *config.Config {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)

	saved := &config.Config{}
	require.NoError(t, json.Unmarshal(data, saved))
	return saved
}

func TestInitCommand(t *testing.T) {
	cfg := testConfig(t)
	command := NewConfigCommandFactory().CreateCommand(testTranslations(t), cfg)

	err := command.Run(context.Background(), []string{"config", "init"})

	assert.NoError(t, err)
	assert.FileExists(t, cfg.PathFile)
}

func TestSetCommand(t *testing.T) {
	t.Run("changes provider and picks its default model", func(t *testing.T) {
		cfg := testConfig(t)
		command := NewConfigCommandFactory().CreateCommand(testTranslations(t), cfg)

		err := command.Run(context.Background(), []string{"config", "set", "--provider", "anthropic"})

		require.NoError(t, err)
		saved := readSavedConfig(t, cfg.PathFile)
		assert.Equal(t, config.AIAnthropic, saved.Provider)
		assert.Equal(t, string(config.DefaultModelForAI(config.AIAnthropic)), saved.Model)
	})

	t.Run("explicit model wins over the provider default", func(t *testing.T) {
		cfg := testConfig(t)
		command := NewConfigCommandFactory().CreateCommand(testTranslations(t), cfg)

		err := command.Run(context.Background(), []string{
			"config", "set", "--provider", "openai", "--model", "gpt-4o-mini",
		})

		require.NoError(t, err)
		saved := readSavedConfig(t, cfg.PathFile)
		assert.Equal(t, "gpt-4o-mini", saved.Model)
	})

	t.Run("rejects an unsupported provider", func(t *testing.T) {
		cfg := testConfig(t)
		command := NewConfigCommandFactory().CreateCommand(testTranslations(t), cfg)

		err := command.Run(context.Background(), []string{"config", "set", "--provider", "skynet"})

		assert.Error(t, err)
	})

	t.Run("stores the API key under the active provider", func(t *testing.T) {
		cfg := testConfig(t)
		command := NewConfigCommandFactory().CreateCommand(testTranslations(t), cfg)

		err := command.Run(context.Background(), []string{"config", "set", "--api-key", "sk-test"})

		require.NoError(t, err)
		assert.Equal(t, "sk-test", cfg.Providers[config.AIGemini].APIKey)
	})
}

func TestDoctorCommand(t *testing.T) {
	t.Run("fails without an API key", func(t *testing.T) {
		t.Setenv("GEMINI_API_KEY", "")
		cfg := testConfig(t)
		command := NewDoctorCommand().CreateCommand(testTranslations(t), cfg)

		err := command.Run(context.Background(), []string{"doctor"})

		assert.Error(t, err)
	})

	t.Run("passes with key and token configured", func(t *testing.T) {
		cfg := testConfig(t)
		cfg.Providers[config.AIGemini] = config.ProviderConfig{APIKey: "key"}
		cfg.GitHubToken = "token"
		command := NewDoctorCommand().CreateCommand(testTranslations(t), cfg)

		err := command.Run(context.Background(), []string{"doctor"})

		assert.NoError(t, err)
	})

	t.Run("ollama needs no API key", func(t *testing.T) {
		cfg := testConfig(t)
		cfg.Provider = config.AIOllama
		cfg.Model = string(config.DefaultModelForAI(config.AIOllama))
		cfg.GitHubToken = "token"
		command := NewDoctorCommand().CreateCommand(testTranslations(t), cfg)

		err := command.Run(context.Background(), []string{"doctor"})

		assert.NoError(t, err)
	})
}
