// Package github provides the repository settings functionality for reposync.
// It wraps the GitHub REST API behind a small client, resolves which
// repositories a run targets and applies a fixed set of settings to each of
// them in order.
//
// The package includes:
// - APIClient interface for the GitHub API calls a run needs
// - Resolver for the dynamic "ALL" repository list
// - Applier for repository settings and branch protection
// - Structured GitHubError values for every failed API call
package github
