package config

import (
	"context"
	"fmt"

	"github.com/thomas-vilte/matereview/internal/config"
	"github.com/thomas-vilte/matereview/internal/i18n"
	"github.com/thomas-vilte/matereview/internal/ui"
	"github.com/urfave/cli/v3"
)

type checkStatus int

const (
	checkStatusOK checkStatus = iota
	checkStatusWarning
	checkStatusError
)

type checkResult struct {
	status     checkStatus
	message    string
	suggestion string
}

type healthCheck struct {
	name string
	fn   func(cfg *config.Config) checkResult
}

type DoctorCommand struct{}

func NewDoctorCommand() *DoctorCommand {
	return &DoctorCommand{}
}

func (d *DoctorCommand) CreateCommand(t *i18n.Translations, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:    "doctor",
		Aliases: []string{"dr"},
		Usage:   "Check that the configuration can run a review",
		Action: func(ctx context.Context, command *cli.Command) error {
			return d.runHealthCheck(t, cfg)
		},
	}
}

func (d *DoctorCommand) runHealthCheck(t *i18n.Translations, cfg *config.Config) error {
	checks := []healthCheck{
		{name: "Configuration file", fn: d.checkConfigFile},
		{name: "Provider and model", fn: d.checkProvider},
		{name: "Provider API key", fn: d.checkAPIKey},
		{name: "GitHub token", fn: d.checkGitHubToken},
	}

	allPassed := true
	for _, check := range checks {
		spinner := ui.NewSmartSpinner(check.name)
		spinner.Start()

		result := check.fn(cfg)

		switch result.status {
		case checkStatusOK:
			spinner.Success(check.name)
		case checkStatusWarning:
			spinner.Warning(check.name + ": " + result.message)
		case checkStatusError:
			allPassed = false
			spinner.Error(check.name + ": " + result.message)
		}
		if result.suggestion != "" {
			ui.PrintInfo("  → " + result.suggestion)
		}
	}

	if !allPassed {
		return fmt.Errorf("configuration is not ready to run reviews")
	}
	return nil
}

func (d *DoctorCommand) checkConfigFile(cfg *config.Config) checkResult {
	if cfg.PathFile == "" {
		return checkResult{
			status:     checkStatusError,
			message:    "no configuration file loaded",
			suggestion: "run: matereview config init",
		}
	}
	return checkResult{status: checkStatusOK}
}

func (d *DoctorCommand) checkProvider(cfg *config.Config) checkResult {
	if err := config.ValidateConfig(cfg); err != nil {
		return checkResult{
			status:     checkStatusError,
			message:    err.Error(),
			suggestion: "run: matereview config set --provider <gemini|openai|anthropic|ollama>",
		}
	}
	return checkResult{status: checkStatusOK, message: fmt.Sprintf("%s / %s", cfg.Provider, cfg.Model)}
}

func (d *DoctorCommand) checkAPIKey(cfg *config.Config) checkResult {
	if cfg.Provider == config.AIOllama {
		return checkResult{status: checkStatusOK, message: "ollama runs without an API key"}
	}
	if cfg.APIKey(cfg.Provider) == "" {
		return checkResult{
			status:     checkStatusError,
			message:    fmt.Sprintf("no API key for provider %s", cfg.Provider),
			suggestion: "export the provider key or run: matereview config set --api-key <key>",
		}
	}
	return checkResult{status: checkStatusOK}
}

func (d *DoctorCommand) checkGitHubToken(cfg *config.Config) checkResult {
	if cfg.GitHubToken == "" {
		return checkResult{
			status:     checkStatusWarning,
			message:    "GITHUB_TOKEN is not set",
			suggestion: "public PRs may still work rate limited, but posting comments will fail",
		}
	}
	return checkResult{status: checkStatusOK}
}
