package github

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/google/go-github/v82/github"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	domainErrors "github.com/thomas-vilte/matereview/internal/errors"
	"github.com/thomas-vilte/matereview/internal/models"
)

var testRef = models.PullRequestRef{Owner: "test-owner", Repo: "test-repo", Number: 42}

func newTestClient(pr *MockPRService, issues *MockIssuesService) *GitHubClient {
	return NewGitHubClientWithServices(pr, issues)
}

func ghResponse(status int) *github.Response {
	return &github.Response{Response: &http.Response{StatusCode: status, Header: http.Header{}}}
}

func TestGitHubClient_GetPullRequest(t *testing.T) {
	t.Run("should fetch PR metadata", func(t *testing.T) {
		mockPR := &MockPRService{}
		client := newTestClient(mockPR, &MockIssuesService{})

		mockPR.On("Get", mock.Anything, "test-owner", "test-repo", 42).
			Return(&github.PullRequest{
				Number: github.Ptr(42),
				Title:  github.Ptr("Add login endpoint"),
				Body:   github.Ptr("Implements the login flow"),
				User:   &github.User{Login: github.Ptr("octocat")},
			}, ghResponse(http.StatusOK), nil)

		pr, err := client.GetPullRequest(context.Background(), testRef)

		require.NoError(t, err)
		assert.Equal(t, 42, pr.Number)
		assert.Equal(t, "Add login endpoint", pr.Title)
		assert.Equal(t, "Implements the login flow", pr.Description)
		assert.Equal(t, "octocat", pr.Author)
		mockPR.AssertExpectations(t)
	})

	t.Run("should map 401 to a token error", func(t *testing.T) {
		mockPR := &MockPRService{}
		client := newTestClient(mockPR, &MockIssuesService{})

		mockPR.On("Get", mock.Anything, "test-owner", "test-repo", 42).
			Return(nil, ghResponse(http.StatusUnauthorized), errors.New("401 bad credentials"))

		_, err := client.GetPullRequest(context.Background(), testRef)

		var appErr *domainErrors.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, domainErrors.ErrGitHubTokenInvalid.Message, appErr.Message)
	})

	t.Run("should map 404 to repository not found", func(t *testing.T) {
		mockPR := &MockPRService{}
		client := newTestClient(mockPR, &MockIssuesService{})

		mockPR.On("Get", mock.Anything, "test-owner", "test-repo", 42).
			Return(nil, ghResponse(http.StatusNotFound), errors.New("404 not found"))

		_, err := client.GetPullRequest(context.Background(), testRef)

		var appErr *domainErrors.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, domainErrors.ErrRepositoryNotFound.Message, appErr.Message)
		assert.Equal(t, "test-owner/test-repo", appErr.Context["repo"])
	})
}

func TestGitHubClient_ListChangedFiles(t *testing.T) {
	t.Run("should list files across pages preserving order", func(t *testing.T) {
		mockPR := &MockPRService{}
		client := newTestClient(mockPR, &MockIssuesService{})

		page1 := ghResponse(http.StatusOK)
		page1.NextPage = 2
		mockPR.On("ListFiles", mock.Anything, "test-owner", "test-repo", 42, &github.ListOptions{PerPage: 100}).
			Return([]*github.CommitFile{
				{
					Filename:  github.Ptr("src/app.tsx"),
					Additions: github.Ptr(10),
					Deletions: github.Ptr(2),
					Status:    github.Ptr("modified"),
					Patch:     github.Ptr("@@ -1 +1 @@"),
				},
			}, page1, nil).Once()

		mockPR.On("ListFiles", mock.Anything, "test-owner", "test-repo", 42, &github.ListOptions{PerPage: 100, Page: 2}).
			Return([]*github.CommitFile{
				{
					Filename: github.Ptr("README.md"),
					Status:   github.Ptr("added"),
				},
			}, ghResponse(http.StatusOK), nil).Once()

		files, err := client.ListChangedFiles(context.Background(), testRef)

		require.NoError(t, err)
		require.Len(t, files, 2)
		assert.Equal(t, "src/app.tsx", files[0].Filename)
		assert.Equal(t, 10, files[0].Additions)
		assert.Equal(t, models.FileModified, files[0].Status)
		assert.Equal(t, "README.md", files[1].Filename)
		mockPR.AssertExpectations(t)
	})

	t.Run("should surface transport errors", func(t *testing.T) {
		mockPR := &MockPRService{}
		client := newTestClient(mockPR, &MockIssuesService{})

		mockPR.On("ListFiles", mock.Anything, "test-owner", "test-repo", 42, mock.Anything).
			Return(nil, nil, errors.New("connection reset"))

		_, err := client.ListChangedFiles(context.Background(), testRef)
		assert.ErrorContains(t, err, "connection reset")
	})
}

func TestGitHubClient_CreateReviewComment(t *testing.T) {
	t.Run("should post the comment body", func(t *testing.T) {
		mockIssues := &MockIssuesService{}
		client := newTestClient(&MockPRService{}, mockIssues)

		mockIssues.On("CreateComment", mock.Anything, "test-owner", "test-repo", 42, mock.MatchedBy(func(c *github.IssueComment) bool {
			return c.GetBody() == "## Review"
		})).Return(&github.IssueComment{}, ghResponse(http.StatusCreated), nil)

		err := client.CreateReviewComment(context.Background(), testRef, "## Review")

		assert.NoError(t, err)
		mockIssues.AssertExpectations(t)
	})

	t.Run("should map 403 to insufficient permissions", func(t *testing.T) {
		mockIssues := &MockIssuesService{}
		client := newTestClient(&MockPRService{}, mockIssues)

		mockIssues.On("CreateComment", mock.Anything, "test-owner", "test-repo", 42, mock.Anything).
			Return(nil, ghResponse(http.StatusForbidden), errors.New("403 forbidden"))

		err := client.CreateReviewComment(context.Background(), testRef, "body")

		var appErr *domainErrors.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, domainErrors.ErrGitHubInsufficientPerms.Message, appErr.Message)
	})

	t.Run("should not swallow plain failures", func(t *testing.T) {
		mockIssues := &MockIssuesService{}
		client := newTestClient(&MockPRService{}, mockIssues)

		mockIssues.On("CreateComment", mock.Anything, "test-owner", "test-repo", 42, mock.Anything).
			Return(nil, nil, errors.New("boom"))

		err := client.CreateReviewComment(context.Background(), testRef, "body")

		var appErr *domainErrors.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, domainErrors.ErrPostComment.Message, appErr.Message)
	})
}
