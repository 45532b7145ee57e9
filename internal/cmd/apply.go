package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/sethvargo/go-githubactions"
	"github.com/spf13/cobra"

	"reposync/pkg/actions"
	"reposync/pkg/config"
	"reposync/pkg/github"
)

var (
	inputsFile  string
	applyDryRun bool
)

// newAPIClient creates the GitHub client for a token and REST API URL
var newAPIClient = func(token, apiURL string) (github.APIClient, error) {
	return github.NewClientForURL(token, apiURL)
}

var applyCmd = &cobra.Command{
	Use:   "apply",
	Short: "Apply repository settings to every target repository",
	Long: `Apply repository settings to every target repository.

Inputs are read the way a GitHub Action reads them (INPUT_* environment
variables). Outside a workflow, --inputs-file supplies them from a YAML file.

For each repository, in order:
  1. Feature toggles and merge strategies are updated. Only settings whose
     input is "true" are sent; the others keep their current value.
  2. Branch protection for BRANCH_PROTECTION_NAME is set (enabled), removed
     (disabled) or left untouched (any other value).

REPOSITORIES set to ALL targets the repository of the triggering pull
request when there is one, otherwise every repository owned by the
workflow owner. The run stops at the first failing repository.

Examples:
  # As the entrypoint of the action
  reposync apply

  # Locally, against a YAML file of inputs
  GITHUB_REPOSITORY_OWNER=acme reposync apply --inputs-file inputs.yaml --dry-run`,
	Args: cobra.NoArgs,
	RunE: runApply,
}

func init() {
	applyCmd.Flags().StringVar(&inputsFile, "inputs-file", "", "YAML file of input values, used instead of INPUT_* variables where defined")
	applyCmd.Flags().BoolVar(&applyDryRun, "dry-run", false, "Log the settings that would be applied without changing any repository")
}

func runApply(cmd *cobra.Command, _ []string) error {
	action, err := newAction(cmd)
	if err != nil {
		return err
	}

	cmd.SilenceUsage = true
	if err := apply(cmd.Context(), action, applyDryRun); err != nil {
		cmd.SilenceErrors = true
		return failRun(action, err)
	}
	return nil
}

// apply runs the whole sequence: inputs, client, target repositories.
func apply(ctx context.Context, action *githubactions.Action, dryRun bool) error {
	logger := slog.New(actions.NewHandler(action))

	token, err := config.GetRequiredInput(action, config.InputToken)
	if err != nil {
		return err
	}
	action.AddMask(token)

	settings, err := config.Load(action, action, logger)
	if err != nil {
		return err
	}
	if dryRun {
		settings.DryRun = true
	}

	ghctx, err := action.Context()
	if err != nil {
		return fmt.Errorf("failed to read workflow context: %w", err)
	}

	client, err := newAPIClient(token, ghctx.APIURL)
	if err != nil {
		return err
	}
	resolver := github.NewResolver(client, actions.NewTrigger(ghctx), logger)
	if err := github.NewApplier(client, resolver, action, logger).Apply(ctx, settings); err != nil {
		return err
	}

	logger.Info("Completed.")
	return nil
}

// newAction builds the action for a command, layering --inputs-file over the
// environment when it is set.
func newAction(cmd *cobra.Command) (*githubactions.Action, error) {
	lookup := getenv
	if inputsFile != "" {
		inputs, err := actions.LoadInputsFile(inputsFile)
		if err != nil {
			return nil, err
		}
		lookup = inputs.Getenv(getenv)
	}
	return actions.New(lookup, cmd.OutOrStdout()), nil
}

// failRun marks the run as failed and closes any log group left open.
// Every error of a run passes through here exactly once.
func failRun(action *githubactions.Action, err error) error {
	action.Errorf("%s", err)
	action.EndGroup()
	return err
}
