package backport

import (
	"context"
	"fmt"
	"strings"

	"github.com/danielolaszy/backport/internal/logging"
	"github.com/danielolaszy/backport/pkg/models"
)

// titleMarker and bodyMarker are the substrings a backport pull request is recognised by.
func titleMarker(folder, version string) string {
	return fmt.Sprintf("%s changes to v%s", folder, version)
}

func bodyMarker(originalPR int) string {
	return fmt.Sprintf("Original PR: #%d", originalPR)
}

// FindExisting looks for a backport of originalPR to folder/version among open pull
// requests, then closed ones. It returns nil when none is found. Lookup failures are
// logged and reported as "none found" so a flaky listing never blocks the run.
func FindExisting(ctx context.Context, api API, folder, version string, originalPR int) *models.PullRequestSummary {
	title := titleMarker(folder, version)
	body := bodyMarker(originalPR)

	for _, state := range []string{"open", "closed"} {
		prs, err := api.ListPullRequests(ctx, state)
		if err != nil {
			msg := fmt.Sprintf("Error checking for existing backport PRs: %v", err)
			logging.Warn(msg, "state", state)
			logging.Annotate(logging.AnnotationWarning, msg)
			return nil
		}

		for i := range prs {
			if strings.Contains(prs[i].Title, title) && strings.Contains(prs[i].Body, body) {
				return &prs[i]
			}
		}
	}
	return nil
}
