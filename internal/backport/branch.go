package backport

import (
	"context"
	"fmt"

	"github.com/danielolaszy/backport/internal/logging"
)

// CreateBranch creates branch at the current head of the repository's default branch.
func CreateBranch(ctx context.Context, api API, branch string) error {
	defaultBranch, err := api.GetDefaultBranch(ctx)
	if err != nil {
		return fmt.Errorf("failed to resolve default branch: %w", err)
	}

	sha, err := api.GetBranchSHA(ctx, defaultBranch)
	if err != nil {
		return fmt.Errorf("failed to resolve head of %s: %w", defaultBranch, err)
	}

	if err := api.CreateBranch(ctx, branch, sha); err != nil {
		return err
	}

	logging.Info("Created branch", "branch", branch, "from", defaultBranch, "sha", sha)
	return nil
}
