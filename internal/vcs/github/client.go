package github

import (
	"context"
	"fmt"
	"net/http"

	"github.com/google/go-github/v82/github"
	domainErrors "github.com/thomas-vilte/matereview/internal/errors"
	"github.com/thomas-vilte/matereview/internal/logger"
	"github.com/thomas-vilte/matereview/internal/models"
	"github.com/thomas-vilte/matereview/internal/ports"
	"golang.org/x/oauth2"
)

var _ ports.PRSource = (*GitHubClient)(nil)

type PullRequestsService interface {
	Get(ctx context.Context, owner, repo string, number int) (*github.PullRequest, *github.Response, error)
	ListFiles(ctx context.Context, owner, repo string, number int, opts *github.ListOptions) ([]*github.CommitFile, *github.Response, error)
}

type IssuesService interface {
	CreateComment(ctx context.Context, owner, repo string, number int, comment *github.IssueComment) (*github.IssueComment, *github.Response, error)
}

type GitHubClient struct {
	prService     PullRequestsService
	issuesService IssuesService
	httpClient    *http.Client
}

func NewGitHubClient(token string) *GitHubClient {
	var httpClient *http.Client
	if token != "" {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
		httpClient = oauth2.NewClient(context.Background(), ts)
	}

	client := github.NewClient(httpClient)
	return &GitHubClient{
		prService:     client.PullRequests,
		issuesService: client.Issues,
		httpClient:    httpClient,
	}
}

func NewGitHubClientWithServices(prService PullRequestsService, issuesService IssuesService) *GitHubClient {
	return &GitHubClient{
		prService:     prService,
		issuesService: issuesService,
		httpClient:    &http.Client{},
	}
}

func (ghc *GitHubClient) GetPullRequest(ctx context.Context, ref models.PullRequestRef) (models.PRData, error) {
	log := logger.FromContext(ctx)

	log.Debug("fetching github pull request",
		"owner", ref.Owner,
		"repo", ref.Repo,
		"pr_number", ref.Number)

	pr, resp, err := ghc.prService.Get(ctx, ref.Owner, ref.Repo, ref.Number)
	if err != nil {
		log.Error("failed to fetch github PR",
			"error", err,
			"owner", ref.Owner,
			"repo", ref.Repo,
			"pr_number", ref.Number)
		if mapped := mapResponseError(resp, "get PR", ref); mapped != nil {
			return models.PRData{}, mapped
		}
		return models.PRData{}, fmt.Errorf("failed to get PR #%d: %w", ref.Number, err)
	}

	prData := models.PRData{
		Number:      pr.GetNumber(),
		Title:       pr.GetTitle(),
		Description: pr.GetBody(),
		Author:      pr.GetUser().GetLogin(),
	}

	log.Debug("github PR fetched successfully",
		"pr_number", ref.Number,
		"title", prData.Title)

	return prData, nil
}

func (ghc *GitHubClient) ListChangedFiles(ctx context.Context, ref models.PullRequestRef) ([]models.ChangedFile, error) {
	log := logger.FromContext(ctx)

	opts := &github.ListOptions{PerPage: 100}
	var allFiles []models.ChangedFile
	for {
		files, resp, err := ghc.prService.ListFiles(ctx, ref.Owner, ref.Repo, ref.Number, opts)
		if err != nil {
			log.Error("failed to list PR files",
				"error", err,
				"owner", ref.Owner,
				"repo", ref.Repo,
				"pr_number", ref.Number)
			if mapped := mapResponseError(resp, "list PR files", ref); mapped != nil {
				return nil, mapped
			}
			return nil, fmt.Errorf("failed to list files for PR #%d: %w", ref.Number, err)
		}

		for _, file := range files {
			allFiles = append(allFiles, models.ChangedFile{
				Filename:  file.GetFilename(),
				Additions: file.GetAdditions(),
				Deletions: file.GetDeletions(),
				Status:    models.FileStatus(file.GetStatus()),
				Patch:     file.GetPatch(),
			})
		}

		if resp == nil || resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	log.Debug("PR files listed",
		"pr_number", ref.Number,
		"files_count", len(allFiles))

	return allFiles, nil
}

func (ghc *GitHubClient) CreateReviewComment(ctx context.Context, ref models.PullRequestRef, body string) error {
	log := logger.FromContext(ctx)

	log.Info("posting review comment",
		"owner", ref.Owner,
		"repo", ref.Repo,
		"pr_number", ref.Number,
		"body_length", len(body))

	comment := &github.IssueComment{
		Body: github.Ptr(body),
	}

	_, resp, err := ghc.issuesService.CreateComment(ctx, ref.Owner, ref.Repo, ref.Number, comment)
	if err != nil {
		log.Error("failed to post review comment",
			"error", err,
			"pr_number", ref.Number)
		if mapped := mapResponseError(resp, "create review comment", ref); mapped != nil {
			return mapped
		}
		return domainErrors.ErrPostComment.WithError(err).
			WithContext("pr_number", ref.Number)
	}

	log.Info("review comment posted",
		"pr_number", ref.Number)

	return nil
}

// mapResponseError translates GitHub HTTP status codes to domain errors.
// Returns nil when the response carries no recognized status.
func mapResponseError(resp *github.Response, operation string, ref models.PullRequestRef) error {
	if resp == nil {
		return nil
	}
	repo := fmt.Sprintf("%s/%s", ref.Owner, ref.Repo)
	switch resp.StatusCode {
	case http.StatusUnauthorized:
		return domainErrors.ErrGitHubTokenInvalid.
			WithContext("operation", operation).
			WithContext("pr_number", ref.Number)
	case http.StatusForbidden:
		return domainErrors.ErrGitHubInsufficientPerms.
			WithContext("operation", operation).
			WithContext("repo", repo)
	case http.StatusTooManyRequests:
		return domainErrors.ErrGitHubRateLimit.
			WithContext("operation", operation).
			WithContext("retry_after", resp.Header.Get("Retry-After"))
	case http.StatusNotFound:
		return domainErrors.ErrRepositoryNotFound.
			WithContext("operation", operation).
			WithContext("repo", repo).
			WithContext("pr_number", ref.Number)
	}
	return nil
}
