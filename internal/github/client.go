// Package github provides functionality for interacting with the GitHub API.
package github

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/danielolaszy/backport/internal/config"
	"github.com/danielolaszy/backport/internal/logging"
	"github.com/danielolaszy/backport/pkg/models"
	"github.com/google/go-github/v41/github"
	"golang.org/x/oauth2"
)

// ErrNotFound is returned when the requested file or ref does not exist.
var ErrNotFound = errors.New("not found")

// pullRequestListPageSize bounds the duplicate-detection scan to the most recent pull requests.
const pullRequestListPageSize = 100

// Client encapsulates the GitHub API client bound to a single repository.
type Client struct {
	client *github.Client
	owner  string
	repo   string
}

// NewClient creates a new GitHub API client from configuration. It authenticates with
// the configured token and points the client at github.com or a GitHub Enterprise host.
func NewClient(ctx context.Context, cfg *config.Config) (*Client, error) {
	if err := config.ValidateGitHubConfig(cfg); err != nil {
		return nil, err
	}

	apiURL := cfg.GitHub.APIBaseURL()
	logging.Info("github configuration",
		"domain", cfg.GitHub.Domain,
		"api_url", apiURL,
		"repository", cfg.GitHub.Repository,
		"token", logging.MaskSensitive(cfg.GitHub.Token))

	// Create the oauth2 client
	ts := oauth2.StaticTokenSource(
		&oauth2.Token{AccessToken: cfg.GitHub.Token},
	)
	tc := oauth2.NewClient(ctx, ts)

	owner, repo, _ := cfg.GitHub.OwnerRepo()
	return NewClientWithHTTP(tc, apiURL, owner, repo)
}

// NewClientWithHTTP builds a client on top of an existing HTTP client and API base URL.
func NewClientWithHTTP(httpClient *http.Client, apiURL, owner, repo string) (*Client, error) {
	parsedURL, err := url.Parse(apiURL)
	if err != nil {
		return nil, fmt.Errorf("invalid github api url: %w", err)
	}

	client := github.NewClient(httpClient)
	client.BaseURL = parsedURL
	client.UploadURL = parsedURL

	return &Client{client: client, owner: owner, repo: repo}, nil
}

// Repository returns the "owner/repo" the client operates on.
func (c *Client) Repository() string {
	return c.owner + "/" + c.repo
}

// ListPullRequestFiles returns every file changed by a pull request, following pagination.
func (c *Client) ListPullRequestFiles(ctx context.Context, number int) ([]models.ChangedFile, error) {
	opts := &github.ListOptions{PerPage: 100}

	var result []models.ChangedFile
	for {
		files, resp, err := c.client.PullRequests.ListFiles(ctx, c.owner, c.repo, number, opts)
		if err != nil {
			logging.Error("failed to list pull request files", "pull_number", number, "error", err)
			return nil, fmt.Errorf("failed to list files of pull request #%d: %w", number, err)
		}

		for _, f := range files {
			result = append(result, models.ChangedFile{
				Filename: f.GetFilename(),
				Status:   f.GetStatus(),
			})
		}

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	logging.Debug("listed pull request files", "pull_number", number, "count", len(result))
	return result, nil
}

// ListPullRequests returns the most recently created pull requests in the given state,
// newest first.
func (c *Client) ListPullRequests(ctx context.Context, state string) ([]models.PullRequestSummary, error) {
	opts := &github.PullRequestListOptions{
		State:     state,
		Sort:      "created",
		Direction: "desc",
		ListOptions: github.ListOptions{
			PerPage: pullRequestListPageSize,
		},
	}

	prs, _, err := c.client.PullRequests.List(ctx, c.owner, c.repo, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s pull requests: %w", state, err)
	}

	result := make([]models.PullRequestSummary, 0, len(prs))
	for _, pr := range prs {
		result = append(result, models.PullRequestSummary{
			Number: pr.GetNumber(),
			Title:  pr.GetTitle(),
			Body:   pr.GetBody(),
			State:  pr.GetState(),
		})
	}
	return result, nil
}

// GetDefaultBranch returns the repository's default branch.
func (c *Client) GetDefaultBranch(ctx context.Context) (string, error) {
	repository, _, err := c.client.Repositories.Get(ctx, c.owner, c.repo)
	if err != nil {
		return "", fmt.Errorf("failed to get repository %s: %w", c.Repository(), err)
	}
	return repository.GetDefaultBranch(), nil
}

// GetBranchSHA returns the commit the branch currently points at.
func (c *Client) GetBranchSHA(ctx context.Context, branch string) (string, error) {
	ref, resp, err := c.client.Git.GetRef(ctx, c.owner, c.repo, "heads/"+branch)
	if err != nil {
		if isNotFound(resp) {
			return "", fmt.Errorf("branch %s: %w", branch, ErrNotFound)
		}
		return "", fmt.Errorf("failed to get ref heads/%s: %w", branch, err)
	}
	return ref.GetObject().GetSHA(), nil
}

// CreateBranch creates refs/heads/<branch> pointing at sha.
func (c *Client) CreateBranch(ctx context.Context, branch, sha string) error {
	ref := &github.Reference{
		Ref:    github.String("refs/heads/" + branch),
		Object: &github.GitObject{SHA: github.String(sha)},
	}

	if _, _, err := c.client.Git.CreateRef(ctx, c.owner, c.repo, ref); err != nil {
		logging.Error("failed to create branch", "branch", branch, "sha", sha, "error", err)
		return fmt.Errorf("failed to create branch %s: %w", branch, err)
	}
	return nil
}

// GetFileContent reads a file at ref and returns its decoded content together with
// its blob SHA. A missing file yields ErrNotFound.
func (c *Client) GetFileContent(ctx context.Context, path, ref string) ([]byte, string, error) {
	opts := &github.RepositoryContentGetOptions{Ref: ref}

	file, _, resp, err := c.client.Repositories.GetContents(ctx, c.owner, c.repo, path, opts)
	if err != nil {
		if isNotFound(resp) {
			return nil, "", fmt.Errorf("%s@%s: %w", path, ref, ErrNotFound)
		}
		return nil, "", fmt.Errorf("failed to get content of %s@%s: %w", path, ref, err)
	}
	if file == nil {
		return nil, "", fmt.Errorf("%s@%s is a directory", path, ref)
	}

	content, err := file.GetContent()
	if err != nil {
		return nil, "", fmt.Errorf("failed to decode content of %s@%s: %w", path, ref, err)
	}
	return []byte(content), file.GetSHA(), nil
}

// PutFile creates path on branch, or updates it when sha (the current blob SHA) is set.
func (c *Client) PutFile(ctx context.Context, path, message string, content []byte, branch, sha string) error {
	opts := &github.RepositoryContentFileOptions{
		Message: github.String(message),
		Content: content,
		Branch:  github.String(branch),
	}

	var err error
	if sha == "" {
		_, _, err = c.client.Repositories.CreateFile(ctx, c.owner, c.repo, path, opts)
	} else {
		opts.SHA = github.String(sha)
		_, _, err = c.client.Repositories.UpdateFile(ctx, c.owner, c.repo, path, opts)
	}
	if err != nil {
		return fmt.Errorf("failed to write %s on %s: %w", path, branch, err)
	}
	return nil
}

// CreatePullRequest opens a pull request from head into base and returns its number.
func (c *Client) CreatePullRequest(ctx context.Context, title, body, head, base string) (int, error) {
	newPR := &github.NewPullRequest{
		Title: github.String(title),
		Body:  github.String(body),
		Head:  github.String(head),
		Base:  github.String(base),
	}

	pr, _, err := c.client.PullRequests.Create(ctx, c.owner, c.repo, newPR)
	if err != nil {
		logging.Error("failed to create pull request", "head", head, "base", base, "error", err)
		return 0, fmt.Errorf("failed to create pull request from %s: %w", head, err)
	}
	return pr.GetNumber(), nil
}

// AddLabels adds one or more labels to an issue or pull request. If the labels don't
// exist in the repository, GitHub will automatically create them.
func (c *Client) AddLabels(ctx context.Context, number int, labels ...string) error {
	logging.Debug("adding labels", "labels", labels, "issue_number", number)

	if _, _, err := c.client.Issues.AddLabelsToIssue(ctx, c.owner, c.repo, number, labels); err != nil {
		logging.Error("error adding labels to issue", "repository", c.Repository(), "issue_number", number, "error", err)
		return fmt.Errorf("failed to add labels to %s#%d: %w", c.repo, number, err)
	}

	logging.Debug("successfully added labels", "labels", labels, "issue_number", number)
	return nil
}

func isNotFound(resp *github.Response) bool {
	return resp != nil && resp.StatusCode == http.StatusNotFound
}
