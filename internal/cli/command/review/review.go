package review

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/thomas-vilte/matereview/internal/ai"
	"github.com/thomas-vilte/matereview/internal/cli/completion_helper"
	cfg "github.com/thomas-vilte/matereview/internal/config"
	"github.com/thomas-vilte/matereview/internal/i18n"
	"github.com/thomas-vilte/matereview/internal/logger"
	"github.com/thomas-vilte/matereview/internal/models"
	"github.com/thomas-vilte/matereview/internal/ports"
	"github.com/thomas-vilte/matereview/internal/review"
	"github.com/thomas-vilte/matereview/internal/ui"
	"github.com/thomas-vilte/matereview/internal/vcs/github"
	"github.com/urfave/cli/v3"
)

// sourceBuilder and providerBuilder let tests swap the real collaborators
// for mocks without touching the command wiring.
type (
	sourceBuilder   func(token string) ports.PRSource
	providerBuilder func(ctx context.Context, c *cfg.Config) (ports.CompletionProvider, error)
)

type ReviewCommandFactory struct {
	newSource   sourceBuilder
	newProvider providerBuilder
}

func NewReviewCommandFactory() *ReviewCommandFactory {
	return &ReviewCommandFactory{
		newSource: func(token string) ports.PRSource {
			return github.NewGitHubClient(token)
		},
		newProvider: ai.NewProvider,
	}
}

// NewReviewCommandFactoryWithBuilders is the test hook.
func NewReviewCommandFactoryWithBuilders(source sourceBuilder, provider providerBuilder) *ReviewCommandFactory {
	return &ReviewCommandFactory{
		newSource:   source,
		newProvider: provider,
	}
}

func (c *ReviewCommandFactory) CreateCommand(t *i18n.Translations, config *cfg.Config) *cli.Command {
	return &cli.Command{
		Name:    "review",
		Aliases: []string{"r"},
		Usage:   t.GetMessage("review_command_usage", 0, nil),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "owner",
				Aliases:  []string{"o"},
				Usage:    t.GetMessage("review_owner_usage", 0, nil),
				Required: true,
			},
			&cli.StringFlag{
				Name:     "repo",
				Aliases:  []string{"r"},
				Usage:    t.GetMessage("review_repo_usage", 0, nil),
				Required: true,
			},
			&cli.IntFlag{
				Name:     "pr-number",
				Aliases:  []string{"n"},
				Usage:    t.GetMessage("review_pr_number_usage", 0, nil),
				Required: true,
			},
			&cli.StringFlag{
				Name:  "provider",
				Usage: t.GetMessage("review_provider_usage", 0, nil),
			},
			&cli.StringFlag{
				Name:  "model",
				Usage: t.GetMessage("review_model_usage", 0, nil),
			},
			&cli.StringSliceFlag{
				Name:  "include",
				Usage: t.GetMessage("review_include_usage", 0, nil),
			},
			&cli.StringSliceFlag{
				Name:  "exclude",
				Usage: t.GetMessage("review_exclude_usage", 0, nil),
			},
			&cli.BoolFlag{
				Name:  "post-comment",
				Usage: t.GetMessage("review_post_comment_usage", 0, nil),
				Value: config.PostComment,
			},
			&cli.StringFlag{
				Name:  "stack",
				Usage: t.GetMessage("review_stack_usage", 0, nil),
			},
		},
		ShellComplete: completion_helper.DefaultFlagComplete,
		Action: func(ctx context.Context, cmd *cli.Command) error {
			runCfg := applyFlags(config, cmd)
			if err := cfg.ValidateConfig(runCfg); err != nil {
				return err
			}

			prNumber := int(cmd.Int("pr-number"))
			if prNumber <= 0 {
				return fmt.Errorf("%s", t.GetMessage("error.pr_number_required", 0, nil))
			}
			ref := models.PullRequestRef{
				Owner:  cmd.String("owner"),
				Repo:   cmd.String("repo"),
				Number: prNumber,
			}

			if runCfg.GitHubToken == "" && runCfg.PostComment {
				ui.PrintWarning(t.GetMessage("config_missing_github_token", 0, nil))
			}

			spinner := ui.NewSmartSpinner(t.GetMessage("ui.preparing_review", 0, nil))
			spinner.Start()

			provider, err := c.newProvider(ctx, runCfg)
			if err != nil {
				spinner.Stop()
				return err
			}
			source := c.newSource(runCfg.GitHubToken)
			pipeline := review.NewPipeline(source, provider, runCfg)

			spinner.UpdateMessage(t.GetMessage("ui.fetching_pr", 0, map[string]interface{}{
				"Number": ref.Number,
				"Owner":  ref.Owner,
				"Repo":   ref.Repo,
			}))

			result := pipeline.ReviewPullRequest(ctx, ref)

			if err := writeGitHubOutput(ctx, result); err != nil {
				logger.FromContext(ctx).Warn("could not write GITHUB_OUTPUT", "error", err)
			}

			if !result.Success {
				spinner.Error(t.GetMessage("ui.review_failed", 0, map[string]interface{}{
					"Number": ref.Number,
				}))
				return fmt.Errorf("%s: %s", t.GetMessage("error.review_failed", 0, nil), result.Error)
			}

			if result.Recommendation == "" {
				spinner.Success(t.GetMessage("ui.review_no_files", 0, map[string]interface{}{
					"Number": ref.Number,
				}))
				return nil
			}

			spinner.Success(t.GetMessage("ui.review_done", 0, map[string]interface{}{
				"Number":         ref.Number,
				"Recommendation": string(result.Recommendation),
				"Score":          result.Score,
				"Issues":         result.IssuesCount,
			}))
			fmt.Println()
			fmt.Println(result.Report)
			return nil
		},
	}
}

// applyFlags copies the stored configuration and layers the per-run flag
// overrides on top. The stored file is never mutated by a review run.
func applyFlags(base *cfg.Config, cmd *cli.Command) *cfg.Config {
	runCfg := *base

	if provider := cmd.String("provider"); provider != "" {
		runCfg.Provider = cfg.AI(provider)
		if cmd.String("model") == "" {
			runCfg.Model = string(cfg.DefaultModelForAI(runCfg.Provider))
		}
	}
	if model := cmd.String("model"); model != "" {
		runCfg.Model = model
	}
	if include := cmd.StringSlice("include"); len(include) > 0 {
		runCfg.IncludePatterns = include
	}
	if exclude := cmd.StringSlice("exclude"); len(exclude) > 0 {
		runCfg.ExcludePatterns = exclude
	}
	if cmd.IsSet("post-comment") {
		runCfg.PostComment = cmd.Bool("post-comment")
	}
	if stack := cmd.String("stack"); stack != "" {
		runCfg.ForcedStack = stack
	}

	return &runCfg
}

// writeGitHubOutput appends the result projection to the file GitHub
// Actions points at via GITHUB_OUTPUT, so later workflow steps can branch
// on the verdict. Outside Actions this is a no-op.
func writeGitHubOutput(ctx context.Context, result models.Result) error {
	path := os.Getenv("GITHUB_OUTPUT")
	if path == "" {
		return nil
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			logger.FromContext(ctx).Warn("closing GITHUB_OUTPUT failed", "error", cerr)
		}
	}()

	lines := []string{
		fmt.Sprintf("success=%t", result.Success),
		fmt.Sprintf("recommendation=%s", result.Recommendation),
		fmt.Sprintf("score=%d", result.Score),
		fmt.Sprintf("issues_count=%d", result.IssuesCount),
		fmt.Sprintf("summary=%s", singleLine(result.Summary)),
	}
	_, err = f.WriteString(strings.Join(lines, "\n") + "\n")
	return err
}

// singleLine keeps a value safe for the key=value output format.
func singleLine(s string) string {
	return strings.ReplaceAll(strings.ReplaceAll(s, "\r", " "), "\n", " ")
}
