package ports

import (
	"context"

	"github.com/thomas-vilte/matereview/internal/models"
)

// PRSource is the capability surface the pipeline needs from a version
// control platform: read one pull request and write one comment back.
type PRSource interface {
	// GetPullRequest fetches the metadata of the pull request.
	GetPullRequest(ctx context.Context, ref models.PullRequestRef) (models.PRData, error)

	// ListChangedFiles returns every file the pull request touches, in the
	// order the platform reports them.
	ListChangedFiles(ctx context.Context, ref models.PullRequestRef) ([]models.ChangedFile, error)

	// CreateReviewComment posts the rendered report as a comment on the
	// pull request.
	CreateReviewComment(ctx context.Context, ref models.PullRequestRef, body string) error
}
