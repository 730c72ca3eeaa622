package backport

import (
	"context"
	"errors"
	"testing"

	"github.com/danielolaszy/backport/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindExistingOpen(t *testing.T) {
	api := newMockAPI()
	api.pulls["open"] = []models.PullRequestSummary{
		{Number: 10, Title: "Backport: vcluster changes to v0.23", Body: "Original PR: #123"},
		{Number: 11, Title: "Backport: vcluster changes to v0.24", Body: "This PR backports changes.\n\nOriginal PR: #123", State: "open"},
	}

	pr := FindExisting(context.Background(), api, "vcluster", "0.24", 123)

	require.NotNil(t, pr)
	assert.Equal(t, 11, pr.Number)
	assert.Equal(t, []string{"open"}, api.listedStates)
}

func TestFindExistingClosedAfterOpen(t *testing.T) {
	api := newMockAPI()
	api.pulls["open"] = []models.PullRequestSummary{
		{Number: 10, Title: "Unrelated", Body: "Original PR: #123"},
	}
	api.pulls["closed"] = []models.PullRequestSummary{
		{Number: 7, Title: "Backport: vcluster changes to v0.24", Body: "Original PR: #123", State: "closed"},
	}

	pr := FindExisting(context.Background(), api, "vcluster", "0.24", 123)

	require.NotNil(t, pr)
	assert.Equal(t, 7, pr.Number)
	assert.Equal(t, []string{"open", "closed"}, api.listedStates)
}

func TestFindExistingNotFound(t *testing.T) {
	testCases := []struct {
		name string
		pr   models.PullRequestSummary
	}{
		{name: "Other original PR", pr: models.PullRequestSummary{Title: "Backport: vcluster changes to v0.24", Body: "Original PR: #999"}},
		{name: "Other version", pr: models.PullRequestSummary{Title: "Backport: vcluster changes to v0.23", Body: "Original PR: #123"}},
		{name: "Other folder", pr: models.PullRequestSummary{Title: "Backport: platform changes to v0.24", Body: "Original PR: #123"}},
		{name: "Empty body", pr: models.PullRequestSummary{Title: "Backport: vcluster changes to v0.24"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			api := newMockAPI()
			api.pulls["open"] = []models.PullRequestSummary{tc.pr}
			api.pulls["closed"] = []models.PullRequestSummary{tc.pr}

			assert.Nil(t, FindExisting(context.Background(), api, "vcluster", "0.24", 123))
			assert.Equal(t, []string{"open", "closed"}, api.listedStates)
		})
	}
}

func TestFindExistingListErrorIsNotFound(t *testing.T) {
	api := newMockAPI()
	api.pullsErr["open"] = errors.New("502 Bad Gateway")
	api.pulls["closed"] = []models.PullRequestSummary{
		{Number: 7, Title: "Backport: vcluster changes to v0.24", Body: "Original PR: #123"},
	}

	assert.Nil(t, FindExisting(context.Background(), api, "vcluster", "0.24", 123))
}

func TestFindExistingMatchesBySubstring(t *testing.T) {
	testCases := []struct {
		name    string
		folder  string
		version string
		pr      models.PullRequestSummary
	}{
		{
			name:    "Longer PR number shares the prefix",
			folder:  "vcluster",
			version: "0.24",
			pr:      models.PullRequestSummary{Number: 1, Title: "Backport: vcluster changes to v0.24", Body: "Original PR: #1234"},
		},
		{
			name:    "Longer version shares the prefix",
			folder:  "vcluster",
			version: "0.2",
			pr:      models.PullRequestSummary{Number: 2, Title: "Backport: vcluster changes to v0.24", Body: "Original PR: #123"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			api := newMockAPI()
			api.pulls["open"] = []models.PullRequestSummary{tc.pr}

			pr := FindExisting(context.Background(), api, tc.folder, tc.version, 123)

			require.NotNil(t, pr)
			assert.Equal(t, tc.pr.Number, pr.Number)
		})
	}
}
