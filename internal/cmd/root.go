package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "reposync",
	Short: "Bulk-apply repository settings from a GitHub Actions workflow",
	Long: `Reposync applies the same repository settings to a list of GitHub repositories.
It is meant to run as a GitHub Action: feature toggles, merge strategies and
branch protection rules are read from the action inputs and applied to every
listed repository, or to every repository of the workflow owner.`,
}

// getenv is the environment lookup used for action inputs and context
var getenv = os.Getenv

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(applyCmd)
	rootCmd.AddCommand(validateCmd)
}
