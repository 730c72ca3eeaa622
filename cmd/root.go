package cmd

import (
	"context"
	"errors"
	"os"

	"github.com/danielolaszy/backport/internal/config"
	"github.com/danielolaszy/backport/internal/event"
	"github.com/danielolaszy/backport/internal/logging"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "backport",
	Short: "Backport merged documentation changes into versioned docs folders",
	Long: `Backport is a CI tool that runs on pull request events. When a merged pull request
carries labels like 'backport-v0.24' or 'backport-v4.2', it copies the documentation
files changed by that pull request into the matching versioned docs folder on a new
branch and opens a backport pull request.

Versions starting with 0. or 1. go to vcluster_versioned_docs, everything else to
platform_versioned_docs, unless a products table is configured in .github/backport.yaml.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

// FailureMessage is the reason reported when a command fails. A payload that is
// not a pull request event is reported as is.
func FailureMessage(err error) string {
	if errors.Is(err, event.ErrNotPullRequest) {
		return err.Error()
	}
	return "Action failed: " + err.Error()
}

func init() {
	// Add persistent flags that will be available to all commands
	rootCmd.PersistentFlags().StringP("repository", "r", "", "GitHub repository name (e.g., 'owner/repo'); defaults to GITHUB_REPOSITORY")
	rootCmd.PersistentFlags().StringP("event-path", "e", "", "Path to the pull request event payload; defaults to GITHUB_EVENT_PATH")
	rootCmd.PersistentFlags().StringP("config", "c", "", "Path to a YAML config file with a products table (default "+config.DefaultConfigFile+" if present)")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(classifyCmd)
}

// loadConfig merges command line flags over the environment and configures logging.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	configFile, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}

	cfg, err := config.LoadConfig(configFile)
	if err != nil {
		return nil, err
	}

	repository, err := cmd.Flags().GetString("repository")
	if err != nil {
		return nil, err
	}
	if repository != "" {
		cfg.GitHub.Repository = repository
	}

	eventPath, err := cmd.Flags().GetString("event-path")
	if err != nil {
		return nil, err
	}
	if eventPath != "" {
		cfg.EventPath = eventPath
	}

	logging.SetupLogger(os.Stdout, logging.LogLevel(cfg.LogLevel))
	return cfg, nil
}
