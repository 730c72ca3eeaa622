package cmd

import (
	"fmt"

	"github.com/danielolaszy/backport/internal/backport"
	"github.com/danielolaszy/backport/internal/event"
	"github.com/spf13/cobra"
)

// classifyCmd shows what a run would do for an event without calling the API.
var classifyCmd = &cobra.Command{
	Use:   "classify",
	Short: "Show which versions an event would backport",
	Long: `Read the event payload and print the versions and target folders a run would
process. No GitHub token is needed and nothing is written.

Example:
  backport classify --event-path event.json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		ev, err := event.Load(cfg.EventPath)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		decision := event.Classify(ev)
		if decision.Skip {
			fmt.Fprintf(out, "skipped: %s\n", decision.Reason)
			return nil
		}

		runner := backport.NewRunner(nil, backport.NewFolderMapping(cfg.Products))
		for _, target := range runner.Plan(decision.Versions) {
			fmt.Fprintf(out, "v%s -> %s (from %s/)\n", target.Version, target.VersionedFolder, target.Folder)
		}
		return nil
	},
}
