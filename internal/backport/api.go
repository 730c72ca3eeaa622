// Package backport copies documentation changes from a merged pull request into
// versioned docs folders and opens one follow-up pull request per version.
package backport

import (
	"context"

	"github.com/danielolaszy/backport/pkg/models"
)

// API is the subset of the GitHub REST API a backport run needs. All calls are
// scoped to the repository the client was built for.
type API interface {
	ListPullRequestFiles(ctx context.Context, number int) ([]models.ChangedFile, error)
	ListPullRequests(ctx context.Context, state string) ([]models.PullRequestSummary, error)

	GetDefaultBranch(ctx context.Context) (string, error)
	GetBranchSHA(ctx context.Context, branch string) (string, error)
	CreateBranch(ctx context.Context, branch, sha string) error

	GetFileContent(ctx context.Context, path, ref string) ([]byte, string, error)
	PutFile(ctx context.Context, path, message string, content []byte, branch, sha string) error

	CreatePullRequest(ctx context.Context, title, body, head, base string) (int, error)
	AddLabels(ctx context.Context, number int, labels ...string) error
}
