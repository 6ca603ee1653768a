package errors

import (
	"errors"
	"strings"
	"testing"
)

func TestAppError_WithError(t *testing.T) {
	baseErr := errors.New("original error")
	appErr := ErrAIGeneration.WithError(baseErr)

	if appErr.Err != baseErr {
		t.Errorf("Expected underlying error to be %v, got %v", baseErr, appErr.Err)
	}

	if appErr.Type != TypeAI {
		t.Errorf("Expected type %s, got %s", TypeAI, appErr.Type)
	}

	if !errors.Is(appErr, baseErr) {
		t.Error("Expected errors.Is to find the wrapped error")
	}
}

func TestAppError_WithContext(t *testing.T) {
	appErr := ErrRepositoryNotFound.
		WithContext("repo", "octo/example").
		WithContext("pr_number", 42)

	if appErr.Context["repo"] != "octo/example" {
		t.Errorf("Expected repo context 'octo/example', got %v", appErr.Context["repo"])
	}

	if appErr.Context["pr_number"] != 42 {
		t.Errorf("Expected pr_number context 42, got %v", appErr.Context["pr_number"])
	}

	// The sentinel must stay untouched.
	if len(ErrRepositoryNotFound.Context) != 0 {
		t.Errorf("Expected sentinel context to remain empty, got %v", ErrRepositoryNotFound.Context)
	}
}

func TestAppError_Error_Format(t *testing.T) {
	tests := []struct {
		name     string
		err      *AppError
		contains []string
	}{
		{
			name:     "Simple error without underlying error",
			err:      ErrGitHubTokenInvalid,
			contains: []string{"VCS", "GitHub token was rejected"},
		},
		{
			name: "Error with underlying error",
			err:  ErrAIGeneration.WithError(errors.New("connection refused")),
			contains: []string{
				"AI",
				"AI provider failed to generate a response",
				"connection refused",
			},
		},
		{
			name:     "Configuration error",
			err:      ErrUnknownProvider.WithContext("provider", "totally-new-ai"),
			contains: []string{"CONFIGURATION", "Unknown AI provider"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := tt.err.Error()
			for _, want := range tt.contains {
				if !strings.Contains(msg, want) {
					t.Errorf("Expected error message to contain %q, got %q", want, msg)
				}
			}
		})
	}
}

func TestAppError_Suggestions(t *testing.T) {
	if ErrAPIKeyMissing.Suggestion == "" {
		t.Error("Expected ErrAPIKeyMissing to carry a suggestion")
	}

	custom := ErrInvalidConfig.WithSuggestion("run matereview config init")
	if custom.Suggestion != "run matereview config init" {
		t.Errorf("Expected custom suggestion, got %q", custom.Suggestion)
	}
}
