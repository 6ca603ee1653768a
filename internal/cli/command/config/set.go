package config

import (
	"context"
	"fmt"
	"os"

	"github.com/thomas-vilte/matereview/internal/config"
	"github.com/thomas-vilte/matereview/internal/i18n"
	"github.com/thomas-vilte/matereview/internal/ui"
	"github.com/urfave/cli/v3"
)

func (c *ConfigCommandFactory) newSetCommand(t *i18n.Translations, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "set",
		Usage: t.GetMessage("config_set_usage", 0, nil),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "provider",
				Usage: t.GetMessage("review_provider_usage", 0, nil),
			},
			&cli.StringFlag{
				Name:  "model",
				Usage: t.GetMessage("review_model_usage", 0, nil),
			},
			&cli.StringFlag{
				Name:  "api-key",
				Usage: "API key for the selected provider",
			},
			&cli.StringFlag{
				Name:  "base-url",
				Usage: "Endpoint override for the selected provider",
			},
			&cli.StringFlag{
				Name:  "language",
				Usage: "Message language (en, es)",
			},
			&cli.BoolFlag{
				Name:  "post-comment",
				Usage: t.GetMessage("review_post_comment_usage", 0, nil),
			},
			&cli.StringFlag{
				Name:  "stack",
				Usage: t.GetMessage("review_stack_usage", 0, nil),
			},
		},
		Action: func(ctx context.Context, command *cli.Command) error {
			if provider := command.String("provider"); provider != "" {
				cfg.Provider = config.AI(provider)
				if command.String("model") == "" {
					cfg.Model = string(config.DefaultModelForAI(cfg.Provider))
				}
			}
			if model := command.String("model"); model != "" {
				cfg.Model = model
			}
			if lang := command.String("language"); lang != "" {
				cfg.Language = lang
				// switch the confirmation below to the new language
				if err := t.SetLanguage(lang); err != nil {
					ui.PrintWarning(err.Error())
				}
			}
			if command.IsSet("post-comment") {
				cfg.PostComment = command.Bool("post-comment")
			}
			if command.IsSet("stack") {
				cfg.ForcedStack = command.String("stack")
			}

			if key := command.String("api-key"); key != "" {
				pc := cfg.Providers[cfg.Provider]
				pc.APIKey = key
				cfg.Providers[cfg.Provider] = pc
			}
			if baseURL := command.String("base-url"); baseURL != "" {
				pc := cfg.Providers[cfg.Provider]
				pc.BaseURL = baseURL
				cfg.Providers[cfg.Provider] = pc
			}

			if err := config.SaveConfig(cfg); err != nil {
				return fmt.Errorf("error saving configuration: %w", err)
			}

			ui.PrintSuccess(os.Stdout, t.GetMessage("config_provider_set", 0, map[string]interface{}{
				"Provider": string(cfg.Provider),
				"Model":    cfg.Model,
			}))
			return nil
		},
	}
}
