package backport

import (
	"context"
	"fmt"

	"github.com/danielolaszy/backport/internal/logging"
	"github.com/danielolaszy/backport/pkg/models"
)

// LabelBackport marks every pull request opened by this tool.
const LabelBackport = "backport"

// Title is the pull request title for a backport of folder to version.
func Title(folder, version string) string {
	return "Backport: " + titleMarker(folder, version)
}

// Body is the pull request body. It embeds the originating pull request number,
// which FindExisting relies on.
func Body(folder, version string, originalPR int) string {
	return fmt.Sprintf("This PR backports changes from %s to version v%s.\n\n%s",
		folder, version, bodyMarker(originalPR))
}

// VersionLabel is the per-version label attached to a backport pull request.
func VersionLabel(version string) string {
	return "version-v" + version
}

// OpenPullRequest opens the backport pull request for target into base and labels it.
func OpenPullRequest(ctx context.Context, api API, target models.Target, base string, originalPR int) (int, error) {
	number, err := api.CreatePullRequest(ctx,
		Title(target.Folder, target.Version),
		Body(target.Folder, target.Version, originalPR),
		target.Branch,
		base)
	if err != nil {
		return 0, err
	}

	if err := api.AddLabels(ctx, number, LabelBackport, VersionLabel(target.Version)); err != nil {
		return number, err
	}

	logging.Info("Created backport PR",
		"number", number,
		"folder", target.Folder,
		"version", target.Version)
	return number, nil
}
