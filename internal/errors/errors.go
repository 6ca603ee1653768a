package errors

import "fmt"

// ErrorType defines the category of the error
type ErrorType string

const (
	TypeConfiguration ErrorType = "CONFIGURATION"
	TypeAI            ErrorType = "AI"
	TypeVCS           ErrorType = "VCS"
	TypeInternal      ErrorType = "INTERNAL"
)

// AppError represents a domain-level error with a type and an underlying error
type AppError struct {
	Type       ErrorType
	Message    string
	Context    map[string]interface{}
	Err        error
	Suggestion string
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// WithError creates a new AppError with an underlying error
func (e *AppError) WithError(err error) *AppError {
	return &AppError{
		Type:       e.Type,
		Message:    e.Message,
		Context:    e.Context,
		Err:        err,
		Suggestion: e.Suggestion,
	}
}

// WithContext creates a new AppError with additional context
func (e *AppError) WithContext(key string, value interface{}) *AppError {
	ctx := make(map[string]interface{})
	for k, v := range e.Context {
		ctx[k] = v
	}
	ctx[key] = value
	return &AppError{
		Type:       e.Type,
		Message:    e.Message,
		Context:    ctx,
		Err:        e.Err,
		Suggestion: e.Suggestion,
	}
}

func (e *AppError) WithSuggestion(suggestion string) *AppError {
	return &AppError{
		Type:       e.Type,
		Message:    e.Message,
		Context:    e.Context,
		Err:        e.Err,
		Suggestion: suggestion,
	}
}

// NewAppError creates a new AppError
func NewAppError(t ErrorType, msg string, err error) *AppError {
	return &AppError{
		Type:    t,
		Message: msg,
		Err:     err,
	}
}

// Configuration errors
var (
	ErrAPIKeyMissing = NewAppError(TypeConfiguration, "API key for the selected AI provider is not configured", nil).
				WithSuggestion("Set the provider API key, e.g.: export GEMINI_API_KEY=<key> or matereview config set --api-key <key>")

	ErrGitHubTokenMissing = NewAppError(TypeConfiguration, "GitHub token is not configured", nil).
				WithSuggestion("Export a token with repo access: export GITHUB_TOKEN=<token>")

	ErrUnknownProvider = NewAppError(TypeConfiguration, "Unknown AI provider", nil).
				WithSuggestion("Supported providers: gemini, openai, anthropic, ollama")

	ErrUnknownStack = NewAppError(TypeConfiguration, "Unknown stack override", nil).
			WithSuggestion("Supported stacks: laravel, wordpress, django, flask, next, react, nuxt, vue, generic")

	ErrInvalidConfig = NewAppError(TypeConfiguration, "Configuration is not valid", nil)
)

// VCS errors
var (
	ErrGitHubTokenInvalid = NewAppError(TypeVCS, "GitHub token was rejected", nil).
				WithSuggestion("Verify the token is valid and has not expired: https://github.com/settings/tokens")

	ErrGitHubRateLimit = NewAppError(TypeVCS, "GitHub API rate limit exceeded", nil).
				WithSuggestion("Wait a few minutes or use a token with a higher rate limit")

	ErrGitHubInsufficientPerms = NewAppError(TypeVCS, "GitHub token lacks permission for this operation", nil).
					WithSuggestion("The token needs repo scope (or pull-requests: write for posting comments)")

	ErrRepositoryNotFound = NewAppError(TypeVCS, "Repository or pull request not found", nil).
				WithSuggestion("Check the owner/repo/PR number and that the token can see the repository")

	ErrPostComment = NewAppError(TypeVCS, "Failed to post the review comment", nil)
)

// AI errors
var (
	ErrAIKeyInvalid = NewAppError(TypeAI, "AI provider rejected the API key", nil).
			WithSuggestion("Verify the API key for the selected provider")

	ErrAIQuotaExceeded = NewAppError(TypeAI, "AI provider quota or rate limit exceeded", nil).
				WithSuggestion("Wait and rerun the job, or switch to another provider/model")

	ErrAIGeneration = NewAppError(TypeAI, "AI provider failed to generate a response", nil)
)

// Internal errors
var (
	ErrMissingRunState = NewAppError(TypeInternal, "Pipeline stage invoked without its required upstream state", nil)
)
