package config

import (
	"context"
	"fmt"

	"github.com/thomas-vilte/matereview/internal/config"
	"github.com/thomas-vilte/matereview/internal/i18n"
	"github.com/urfave/cli/v3"
)

func (c *ConfigCommandFactory) newShowCommand(t *i18n.Translations, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "show",
		Usage: t.GetMessage("config_show_usage", 0, nil),
		Action: func(ctx context.Context, command *cli.Command) error {
			fmt.Printf("Config file: %s\n", cfg.PathFile)
			fmt.Printf("━━━━━━━━━━━━━━━━━━━━━━━\n")
			fmt.Printf("Provider:     %s\n", cfg.Provider)
			fmt.Printf("Model:        %s\n", cfg.Model)
			fmt.Printf("Language:     %s\n", cfg.Language)
			fmt.Printf("Post comment: %t\n", cfg.PostComment)

			if cfg.ForcedStack != "" {
				fmt.Printf("Stack:        %s (forced)\n", cfg.ForcedStack)
			} else {
				fmt.Printf("Stack:        auto-detect\n")
			}

			if len(cfg.IncludePatterns) > 0 {
				fmt.Printf("Include:      %v\n", cfg.IncludePatterns)
			}
			if len(cfg.ExcludePatterns) > 0 {
				fmt.Printf("Exclude:      %v\n", cfg.ExcludePatterns)
			}

			for _, ai := range config.SupportedAIs() {
				mask := "❌"
				if cfg.APIKey(ai) != "" || ai == config.AIOllama {
					mask = "✅"
				}
				fmt.Printf("API key %-10s %s\n", string(ai)+":", mask)
			}

			if cfg.GitHubToken != "" {
				fmt.Println("GitHub token: ✅")
			} else {
				fmt.Println("GitHub token: ❌")
			}

			return nil
		},
	}
}
