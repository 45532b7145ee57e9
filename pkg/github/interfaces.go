package github

import (
	"context"
	"strings"
)

// APIClient defines the GitHub API operations used by a run
type APIClient interface {
	// Account operations
	AuthenticatedUser(ctx context.Context) (string, error)
	ListOwnerRepositories(ctx context.Context, owner string) ([]RepositoryRef, error)

	// Repository operations
	UpdateRepository(ctx context.Context, owner, name string, settings RepositorySettings) error

	// Branch protection operations
	UpdateBranchProtection(ctx context.Context, owner, name, branch string, settings BranchProtectionSettings) error
	DeleteBranchProtection(ctx context.Context, owner, name, branch string) error
}

// Grouper opens and closes named log groups in the host output
type Grouper interface {
	Group(title string)
	EndGroup()
}

// BranchProtectionMode selects what happens to branch protection on each repository
type BranchProtectionMode string

const (
	BranchProtectionEnabled   BranchProtectionMode = "enabled"
	BranchProtectionDisabled  BranchProtectionMode = "disabled"
	BranchProtectionUnchanged BranchProtectionMode = "unchanged"
)

// ParseBranchProtectionMode maps the raw input value to a mode. Only the exact
// values "enabled" and "disabled" select an action; anything else leaves
// branch protection untouched. ok is false for values that are not one of the
// three known modes.
func ParseBranchProtectionMode(value string) (mode BranchProtectionMode, ok bool) {
	switch BranchProtectionMode(value) {
	case BranchProtectionEnabled, BranchProtectionDisabled:
		return BranchProtectionMode(value), true
	}
	return BranchProtectionUnchanged, strings.EqualFold(value, string(BranchProtectionUnchanged))
}
