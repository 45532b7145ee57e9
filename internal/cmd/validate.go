package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"reposync/pkg/actions"
	"reposync/pkg/config"
	"reposync/pkg/github"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the action inputs without calling GitHub",
	Long: `Resolve and print the action inputs without calling the GitHub API.

Catches malformed inputs, such as invalid JSON in BP_REQUIRED_STATUS_CHECKS,
before a workflow touches any repository. The token input is not required.

Examples:
  reposync validate --inputs-file inputs.yaml`,
	Args: cobra.NoArgs,
	RunE: runValidate,
}

func init() {
	validateCmd.Flags().StringVar(&inputsFile, "inputs-file", "", "YAML file of input values, used instead of INPUT_* variables where defined")
}

func runValidate(cmd *cobra.Command, _ []string) error {
	action, err := newAction(cmd)
	if err != nil {
		return err
	}

	cmd.SilenceUsage = true
	logger := slog.New(actions.NewHandler(action))

	settings, err := config.Load(action, action, logger)
	if err != nil {
		cmd.SilenceErrors = true
		return failRun(action, err)
	}

	if github.IsAllRepositories(settings.Repositories) {
		logger.Info("Target repositories: resolved from the triggering event at apply time")
	} else {
		logger.Info(fmt.Sprintf("Target repositories: %d", len(settings.Repositories)))
	}
	logger.Info(fmt.Sprintf("Branch protection: %s for branch [%s]", settings.BranchProtectionMode, settings.BranchProtectionName))
	logger.Info("Inputs are valid.")
	return nil
}
