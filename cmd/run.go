package cmd

import (
	"fmt"
	"io"

	"github.com/danielolaszy/backport/internal/backport"
	"github.com/danielolaszy/backport/internal/event"
	"github.com/danielolaszy/backport/internal/github"
	"github.com/danielolaszy/backport/internal/logging"
	"github.com/spf13/cobra"
)

var _ backport.API = (*github.Client)(nil)

// runCmd performs the backport for the event that triggered the workflow.
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Backport the triggering pull request",
	Long: `Backport the pull request described by the event payload.

The event is processed as follows:
- 'labeled': only the label just added is backported, once the pull request is merged
- 'closed': every backport-v<version> label on the merged pull request is backported

For each version, a backport pull request is skipped when one already exists for the
same folder, version and original pull request, or when no file could be copied.

Example:
  backport run --repository loft-sh/vcluster-docs --event-path event.json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		ev, err := event.Load(cfg.EventPath)
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		githubClient, err := github.NewClient(ctx, cfg)
		if err != nil {
			return fmt.Errorf("failed to initialize github client: %w", err)
		}

		runner := backport.NewRunner(githubClient, backport.NewFolderMapping(cfg.Products))
		report, err := runner.Run(ctx, ev)
		if report != nil {
			printReport(cmd.OutOrStdout(), report)
		}
		if err != nil {
			return err
		}

		logging.Info("backport complete",
			"pull_number", ev.PullRequest.Number,
			"targets", len(report.Targets))
		return nil
	},
}

// printReport writes a one-line summary per processed target.
func printReport(w io.Writer, report *backport.Report) {
	if report.Decision.Skip {
		fmt.Fprintf(w, "skipped: %s\n", report.Decision.Reason)
		return
	}

	for _, result := range report.Targets {
		t := result.Target
		switch result.Outcome {
		case backport.OutcomeCreated:
			fmt.Fprintf(w, "%s v%s: opened #%d from %s (copied %d, skipped %d, errors %d)\n",
				t.Folder, t.Version, result.PullRequest, t.Branch,
				result.Stats.Copied, result.Stats.Skipped, result.Stats.Errors)
		case backport.OutcomeExisting:
			fmt.Fprintf(w, "%s v%s: already backported in #%d\n", t.Folder, t.Version, result.PullRequest)
		case backport.OutcomeNoFiles:
			fmt.Fprintf(w, "%s v%s: no changed files\n", t.Folder, t.Version)
		case backport.OutcomeNoCopies:
			fmt.Fprintf(w, "%s v%s: nothing copied to %s (skipped %d, errors %d)\n",
				t.Folder, t.Version, t.Branch, result.Stats.Skipped, result.Stats.Errors)
		default:
			fmt.Fprintf(w, "%s v%s: failed\n", t.Folder, t.Version)
		}
	}
}
