package backport

import (
	"context"
	"errors"
	"fmt"

	"github.com/danielolaszy/backport/pkg/models"
)

type putCall struct {
	Path    string
	Message string
	Content string
	Branch  string
	SHA     string
}

type pullRequestCall struct {
	Title string
	Body  string
	Head  string
	Base  string
}

// mockAPI implements API in memory and records every write.
type mockAPI struct {
	files    []models.ChangedFile
	filesErr error

	pulls    map[string][]models.PullRequestSummary
	pullsErr map[string]error

	defaultBranch   string
	defaultSHA      string
	createBranchErr error

	// contents is keyed by "path@ref"; blobSHAs likewise
	contents map[string]string
	blobSHAs map[string]string
	putErr   map[string]error

	prNumber    int
	createPRErr error
	labelsErr   error

	listedStates []string
	branches     []string
	puts         []putCall
	pullRequests []pullRequestCall
	labels       map[int][]string
}

func newMockAPI() *mockAPI {
	return &mockAPI{
		pulls:         map[string][]models.PullRequestSummary{},
		pullsErr:      map[string]error{},
		defaultBranch: "main",
		defaultSHA:    "def456",
		contents:      map[string]string{},
		blobSHAs:      map[string]string{},
		putErr:        map[string]error{},
		prNumber:      456,
		labels:        map[int][]string{},
	}
}

func (m *mockAPI) ListPullRequestFiles(ctx context.Context, number int) ([]models.ChangedFile, error) {
	return m.files, m.filesErr
}

func (m *mockAPI) ListPullRequests(ctx context.Context, state string) ([]models.PullRequestSummary, error) {
	m.listedStates = append(m.listedStates, state)
	if err := m.pullsErr[state]; err != nil {
		return nil, err
	}
	return m.pulls[state], nil
}

func (m *mockAPI) GetDefaultBranch(ctx context.Context) (string, error) {
	return m.defaultBranch, nil
}

func (m *mockAPI) GetBranchSHA(ctx context.Context, branch string) (string, error) {
	if branch != m.defaultBranch {
		return "", errors.New("unknown branch " + branch)
	}
	return m.defaultSHA, nil
}

func (m *mockAPI) CreateBranch(ctx context.Context, branch, sha string) error {
	if m.createBranchErr != nil {
		return m.createBranchErr
	}
	m.branches = append(m.branches, branch+"@"+sha)
	return nil
}

func (m *mockAPI) GetFileContent(ctx context.Context, path, ref string) ([]byte, string, error) {
	key := path + "@" + ref
	content, ok := m.contents[key]
	if !ok {
		return nil, "", fmt.Errorf("%s: not found", key)
	}
	return []byte(content), m.blobSHAs[key], nil
}

func (m *mockAPI) PutFile(ctx context.Context, path, message string, content []byte, branch, sha string) error {
	if err := m.putErr[path]; err != nil {
		return err
	}
	m.puts = append(m.puts, putCall{Path: path, Message: message, Content: string(content), Branch: branch, SHA: sha})
	return nil
}

func (m *mockAPI) CreatePullRequest(ctx context.Context, title, body, head, base string) (int, error) {
	if m.createPRErr != nil {
		return 0, m.createPRErr
	}
	m.pullRequests = append(m.pullRequests, pullRequestCall{Title: title, Body: body, Head: head, Base: base})
	return m.prNumber, nil
}

func (m *mockAPI) AddLabels(ctx context.Context, number int, labels ...string) error {
	if m.labelsErr != nil {
		return m.labelsErr
	}
	m.labels[number] = append(m.labels[number], labels...)
	return nil
}

var _ API = (*mockAPI)(nil)
