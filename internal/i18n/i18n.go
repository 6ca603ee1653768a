package i18n

import (
	"fmt"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
)

type Translations struct {
	bundle   *i18n.Bundle
	localize *i18n.Localizer
}

func NewTranslations(defaultLang string) (*Translations, error) {
	bundle := i18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)

	bundle.MustParseMessageFileBytes([]byte(defaultMessages), "default.en.toml")

	files, err := filepath.Glob("locales/active.*.toml")
	if err != nil {
		return nil, fmt.Errorf("error reading locales: %w", err)
	}

	for _, file := range files {
		if _, err := bundle.LoadMessageFile(file); err != nil {
			return nil, fmt.Errorf("error loading locale file %s: %w", file, err)
		}
	}

	localize := i18n.NewLocalizer(bundle, defaultLang)

	return &Translations{
		bundle:   bundle,
		localize: localize,
	}, nil
}

func (t *Translations) SetLanguage(lang string) error {
	for _, tag := range t.bundle.LanguageTags() {
		if tag.String() == lang {
			t.localize = i18n.NewLocalizer(t.bundle, lang)
			return nil
		}
	}
	return fmt.Errorf("language '%s' not supported", lang)
}

func (t *Translations) GetMessage(messageID string, count int, templateData map[string]interface{}) string {
	localized, err := t.localize.Localize(&i18n.LocalizeConfig{
		DefaultMessage: &i18n.Message{
			ID: messageID,
		},
		PluralCount:  count,
		TemplateData: templateData,
	})
	if err != nil {
		return "Translation missing: " + messageID
	}
	return localized
}

var defaultMessages = `
	[app_usage]
	other = "AI-assisted pull request reviews for your CI"

	[app_description]
	other = "matereview fetches a pull request, picks the relevant files, asks a language model for a structured verdict and posts the report back to the PR."

	[review_command_usage]
	other = "Review a pull request and publish the report"

	[review_owner_usage]
	other = "Repository owner (user or organization)"

	[review_repo_usage]
	other = "Repository name"

	[review_pr_number_usage]
	other = "Pull request number to review"

	[review_provider_usage]
	other = "AI provider to use (gemini, openai, anthropic, ollama)"

	[review_model_usage]
	other = "Model identifier for the selected provider"

	[review_include_usage]
	other = "Glob pattern of files to include (repeatable)"

	[review_exclude_usage]
	other = "Glob pattern of files to exclude (repeatable)"

	[review_post_comment_usage]
	other = "Post the rendered report as a PR comment"

	[review_stack_usage]
	other = "Force the reviewer stack instead of detecting it"

	[ui.preparing_review]
	other = "Preparing the review..."

	[ui.fetching_pr]
	other = "Reviewing PR #{{.Number}} of {{.Owner}}/{{.Repo}}..."

	[ui.review_no_files]
	other = "No relevant files to review in PR #{{.Number}}"

	[ui.review_done]
	other = "PR #{{.Number}} reviewed: {{.Recommendation}} (score {{.Score}}/10, {{.Issues}} findings)"

	[ui.review_failed]
	other = "Review of PR #{{.Number}} failed"

	[error.review_failed]
	other = "review failed"

	[error.pr_number_required]
	other = "a pull request number is required"

	[config_command_usage]
	other = "Inspect and change the stored configuration"

	[config_init_usage]
	other = "Create the default configuration file"

	[config_show_usage]
	other = "Show the current configuration"

	[config_set_usage]
	other = "Change a configuration value"

	[config_saved]
	other = "Configuration saved to {{.Path}}"

	[config_provider_set]
	other = "Provider set to {{.Provider}} (model {{.Model}})"

	[config_missing_github_token]
	other = "GITHUB_TOKEN is not set; fetching public PRs may be rate limited and posting comments will fail"

	[config_missing_api_key]
	other = "No API key configured for provider {{.Provider}}"

	[help_command_usage]
	other = "Show help"
`
