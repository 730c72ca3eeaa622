package backport

import (
	"context"
	"fmt"
	"time"

	"github.com/danielolaszy/backport/internal/event"
	"github.com/danielolaszy/backport/internal/logging"
	"github.com/danielolaszy/backport/pkg/models"
)

// Outcome describes what happened to a single backport target.
type Outcome string

const (
	OutcomeCreated  Outcome = "created"
	OutcomeNoFiles  Outcome = "no-files"
	OutcomeExisting Outcome = "existing"
	OutcomeNoCopies Outcome = "no-copies"
)

// TargetReport is the result of processing one version label.
type TargetReport struct {
	Target      models.Target
	Outcome     Outcome
	Stats       models.Stats
	PullRequest int
}

// Report summarises a run.
type Report struct {
	Decision event.Decision
	Targets  []TargetReport
}

// Runner performs backports for pull request events.
type Runner struct {
	API     API
	Folders FolderMapping

	// Now salts branch names; defaults to time.Now
	Now func() time.Time
}

// NewRunner creates a Runner using the given API and folder mapping.
func NewRunner(api API, folders FolderMapping) *Runner {
	return &Runner{API: api, Folders: folders, Now: time.Now}
}

// Plan resolves the target for each version without touching the API.
func (r *Runner) Plan(versions []string) []models.Target {
	now := time.Now
	if r.Now != nil {
		now = r.Now
	}

	targets := make([]models.Target, 0, len(versions))
	for _, version := range versions {
		product := r.Folders.Resolve(version)
		targets = append(targets, models.Target{
			Folder:          product.Folder,
			Version:         version,
			VersionedFolder: product.VersionedPath(version),
			Branch:          fmt.Sprintf("backport/%s-to-%s-%d", product.Folder, version, now().UnixMilli()),
		})
	}
	return targets
}

// Run classifies ev and backports every requested version in order. Skips are not
// errors. An error from listing files, creating a branch or opening a pull request
// aborts the run; effects of earlier targets are kept.
func (r *Runner) Run(ctx context.Context, ev models.Event) (*Report, error) {
	report := &Report{Decision: event.Classify(ev)}
	if report.Decision.Skip {
		logging.Info(report.Decision.Reason, "action", ev.Action, "pull_number", ev.PullRequest.Number)
		return report, nil
	}

	logging.Info("Processing backport",
		"pull_number", ev.PullRequest.Number,
		"versions", report.Decision.Versions)

	files, err := r.API.ListPullRequestFiles(ctx, ev.PullRequest.Number)
	if err != nil {
		return report, err
	}
	filesByFolder := GroupByFolder(files, r.Folders.Folders())

	base := ev.DefaultBranch
	for _, target := range r.Plan(report.Decision.Versions) {
		result, err := r.processTarget(ctx, ev, target, filesByFolder[target.Folder], &base)
		report.Targets = append(report.Targets, result)
		if err != nil {
			return report, err
		}
	}

	return report, nil
}

func (r *Runner) processTarget(ctx context.Context, ev models.Event, target models.Target, changed []models.ChangedFile, base *string) (TargetReport, error) {
	result := TargetReport{Target: target}

	if len(changed) == 0 {
		logging.Info("No files changed in folder for version, skipping",
			"folder", target.Folder, "version", target.Version)
		result.Outcome = OutcomeNoFiles
		return result, nil
	}

	if existing := FindExisting(ctx, r.API, target.Folder, target.Version, ev.PullRequest.Number); existing != nil {
		logging.Info("Backport PR already exists, skipping",
			"number", existing.Number,
			"state", existing.State,
			"folder", target.Folder,
			"version", target.Version)
		result.Outcome = OutcomeExisting
		result.PullRequest = existing.Number
		return result, nil
	}

	if err := CreateBranch(ctx, r.API, target.Branch); err != nil {
		return result, err
	}

	result.Stats = CopyFiles(ctx, r.API, target.Folder, target.VersionedFolder, changed, ev.PullRequest.HeadSHA, target.Branch)
	if result.Stats.Copied == 0 {
		logging.Info("No files were successfully copied, skipping PR creation",
			"folder", target.Folder, "version", target.Version, "branch", target.Branch)
		result.Outcome = OutcomeNoCopies
		return result, nil
	}

	// Payloads normally carry the default branch; ask the API only when they don't
	if *base == "" {
		defaultBranch, err := r.API.GetDefaultBranch(ctx)
		if err != nil {
			return result, fmt.Errorf("failed to resolve default branch: %w", err)
		}
		*base = defaultBranch
	}

	number, err := OpenPullRequest(ctx, r.API, target, *base, ev.PullRequest.Number)
	result.PullRequest = number
	if err != nil {
		return result, err
	}
	result.Outcome = OutcomeCreated
	return result, nil
}
