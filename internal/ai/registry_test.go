package ai

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thomas-vilte/matereview/internal/config"
	domainErrors "github.com/thomas-vilte/matereview/internal/errors"
)

func TestNewProvider(t *testing.T) {
	t.Run("should reject an unknown provider tag", func(t *testing.T) {
		cfg := &config.Config{Provider: config.AI("hal9000")}

		_, err := NewProvider(context.Background(), cfg)

		var appErr *domainErrors.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, domainErrors.ErrUnknownProvider.Message, appErr.Message)
	})

	t.Run("should fail without an API key for keyed providers", func(t *testing.T) {
		t.Setenv("OPENAI_API_KEY", "")
		t.Setenv("ANTHROPIC_API_KEY", "")
		t.Setenv("GEMINI_API_KEY", "")

		for _, provider := range []config.AI{config.AIGemini, config.AIOpenAI, config.AIAnthropic} {
			cfg := &config.Config{
				Provider:  provider,
				Model:     string(config.DefaultModelForAI(provider)),
				Providers: map[config.AI]config.ProviderConfig{},
			}

			_, err := NewProvider(context.Background(), cfg)

			var appErr *domainErrors.AppError
			require.ErrorAs(t, err, &appErr, "provider %s", provider)
			assert.Equal(t, domainErrors.ErrAPIKeyMissing.Message, appErr.Message)
		}
	})

	t.Run("should build the ollama provider without a key", func(t *testing.T) {
		cfg := &config.Config{
			Provider:  config.AIOllama,
			Model:     string(config.ModelLlama3),
			Providers: map[config.AI]config.ProviderConfig{},
		}

		p, err := NewProvider(context.Background(), cfg)

		require.NoError(t, err)
		assert.Equal(t, "ollama", p.Name())
	})
}
