package backport

import (
	"context"
	"fmt"
	"strings"

	"github.com/danielolaszy/backport/internal/logging"
	"github.com/danielolaszy/backport/pkg/models"
)

// StatusRemoved is the change status of files deleted by a pull request.
const StatusRemoved = "removed"

// DestinationPath maps a file under sourceFolder to the same relative path under versionedFolder.
func DestinationPath(filename, sourceFolder, versionedFolder string) string {
	return versionedFolder + "/" + strings.TrimPrefix(filename, sourceFolder+"/")
}

// CopyFiles writes each changed file, as of headSHA, to its place under versionedFolder
// on branch. Removed files are skipped. A failing file is counted and logged and does
// not stop the remaining ones.
func CopyFiles(ctx context.Context, api API, sourceFolder, versionedFolder string, files []models.ChangedFile, headSHA, branch string) models.Stats {
	var stats models.Stats

	for _, file := range files {
		if file.Status == StatusRemoved {
			logging.Info("Skipping deleted file", "file", file.Filename)
			stats.Skipped++
			continue
		}

		target := DestinationPath(file.Filename, sourceFolder, versionedFolder)
		logging.Info("Backporting file", "from", file.Filename, "to", target)

		if err := copyFile(ctx, api, file.Filename, target, headSHA, branch); err != nil {
			stats.Errors++
			msg := fmt.Sprintf("Error backporting file %s: %v", file.Filename, err)
			logging.Warn(msg)
			logging.Annotate(logging.AnnotationWarning, msg)
			continue
		}

		stats.Copied++
		logging.Info("Backported file", "from", file.Filename, "to", target)
	}

	logging.Info("Backport stats",
		"copied", stats.Copied,
		"skipped", stats.Skipped,
		"errors", stats.Errors)

	return stats
}

func copyFile(ctx context.Context, api API, source, target, headSHA, branch string) error {
	content, _, err := api.GetFileContent(ctx, source, headSHA)
	if err != nil {
		return err
	}

	// An existing target must be updated with its current blob SHA
	sha := ""
	if _, existingSHA, err := api.GetFileContent(ctx, target, branch); err != nil {
		logging.Info("Target file doesn't exist yet, will create", "path", target)
		logging.Debug("target lookup failed", "path", target, "error", err)
	} else {
		sha = existingSHA
	}

	message := fmt.Sprintf("Backport: Copy %s to %s", source, target)
	return api.PutFile(ctx, target, message, content, branch, sha)
}
