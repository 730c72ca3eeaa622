package backport

import (
	"context"
	"errors"
	"testing"

	"github.com/danielolaszy/backport/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testVersioned = "vcluster_versioned_docs/version-0.24.0"
	testBranch    = "backport/vcluster-to-0.24-1"
)

func TestDestinationPath(t *testing.T) {
	testCases := []struct {
		filename string
		want     string
	}{
		{filename: "vcluster/guide.md", want: testVersioned + "/guide.md"},
		{filename: "vcluster/deploy/vcluster/values.md", want: testVersioned + "/deploy/vcluster/values.md"},
	}

	for _, tc := range testCases {
		t.Run(tc.filename, func(t *testing.T) {
			assert.Equal(t, tc.want, DestinationPath(tc.filename, "vcluster", testVersioned))
		})
	}
}

func TestCopyFilesCreatesAndUpdates(t *testing.T) {
	api := newMockAPI()
	api.contents["vcluster/guide.md@abc123"] = "new guide"
	api.contents["vcluster/intro.md@abc123"] = "new intro"
	api.contents[testVersioned+"/intro.md@"+testBranch] = "old intro"
	api.blobSHAs[testVersioned+"/intro.md@"+testBranch] = "blob-intro"

	files := []models.ChangedFile{
		{Filename: "vcluster/guide.md", Status: "added"},
		{Filename: "vcluster/intro.md", Status: "modified"},
	}

	stats := CopyFiles(context.Background(), api, "vcluster", testVersioned, files, "abc123", testBranch)

	assert.Equal(t, models.Stats{Copied: 2}, stats)
	require.Len(t, api.puts, 2)
	assert.Equal(t, putCall{
		Path:    testVersioned + "/guide.md",
		Message: "Backport: Copy vcluster/guide.md to " + testVersioned + "/guide.md",
		Content: "new guide",
		Branch:  testBranch,
	}, api.puts[0])
	assert.Equal(t, "blob-intro", api.puts[1].SHA)
	assert.Equal(t, "new intro", api.puts[1].Content)
}

func TestCopyFilesSkipsRemoved(t *testing.T) {
	api := newMockAPI()

	files := []models.ChangedFile{{Filename: "vcluster/old.md", Status: StatusRemoved}}
	stats := CopyFiles(context.Background(), api, "vcluster", testVersioned, files, "abc123", testBranch)

	assert.Equal(t, models.Stats{Skipped: 1}, stats)
	assert.Empty(t, api.puts)
}

func TestCopyFilesContinuesAfterErrors(t *testing.T) {
	api := newMockAPI()
	// vcluster/missing.md has no source content
	api.contents["vcluster/broken.md@abc123"] = "broken"
	api.contents["vcluster/ok.md@abc123"] = "ok"
	api.putErr[testVersioned+"/broken.md"] = errors.New("409 Conflict")

	files := []models.ChangedFile{
		{Filename: "vcluster/missing.md", Status: "modified"},
		{Filename: "vcluster/broken.md", Status: "modified"},
		{Filename: "vcluster/gone.md", Status: StatusRemoved},
		{Filename: "vcluster/ok.md", Status: "renamed"},
	}

	stats := CopyFiles(context.Background(), api, "vcluster", testVersioned, files, "abc123", testBranch)

	assert.Equal(t, models.Stats{Copied: 1, Skipped: 1, Errors: 2}, stats)
	require.Len(t, api.puts, 1)
	assert.Equal(t, testVersioned+"/ok.md", api.puts[0].Path)
}
