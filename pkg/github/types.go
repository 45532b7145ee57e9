package github

import "encoding/json"

// RepositoryRef identifies a repository by owner login and name
type RepositoryRef struct {
	Owner string `json:"owner"`
	Name  string `json:"name"`
}

// FullName returns the owner/name form of the reference
func (r RepositoryRef) FullName() string {
	return r.Owner + "/" + r.Name
}

// RepositorySettings is a sparse repository update. A nil field is left out of
// the request and keeps whatever value the repository already has.
type RepositorySettings struct {
	HasIssues           *bool `json:"has_issues,omitempty"`
	HasProjects         *bool `json:"has_projects,omitempty"`
	HasWiki             *bool `json:"has_wiki,omitempty"`
	AllowSquashMerge    *bool `json:"allow_squash_merge,omitempty"`
	AllowMergeCommit    *bool `json:"allow_merge_commit,omitempty"`
	AllowRebaseMerge    *bool `json:"allow_rebase_merge,omitempty"`
	AllowAutoMerge      *bool `json:"allow_auto_merge,omitempty"`
	DeleteBranchOnMerge *bool `json:"delete_branch_on_merge,omitempty"`
	AllowUpdateBranch   *bool `json:"allow_update_branch,omitempty"`
}

// BranchProtectionSettings is the full branch protection payload. Every
// boolean is always sent, including false values.
type BranchProtectionSettings struct {
	// RequiredStatusChecks is forwarded to the API without interpretation.
	RequiredStatusChecks           json.RawMessage `json:"required_status_checks"`
	RequiredConversationResolution bool            `json:"required_conversation_resolution"`
	RequiredSignatures             bool            `json:"required_signatures"`
	RequiredLinearHistory          bool            `json:"required_linear_history"`
	LockBranch                     bool            `json:"lock_branch"`
	EnforceAdmins                  bool            `json:"enforce_admins"`
	AllowForcePushes               bool            `json:"allow_force_pushes"`
	AllowDeletions                 bool            `json:"allow_deletions"`
	BlockCreations                 bool            `json:"block_creations"`
	AllowForkSyncing               bool            `json:"allow_fork_syncing"`
}

// branchProtectionRequest is the request body for PUT .../branches/{branch}/protection.
// Pull request review rules and push restrictions are always null.
type branchProtectionRequest struct {
	BranchProtectionSettings
	RequiredPullRequestReviews *struct{} `json:"required_pull_request_reviews"`
	Restrictions               *struct{} `json:"restrictions"`
}

func newBranchProtectionRequest(settings BranchProtectionSettings) *branchProtectionRequest {
	if len(settings.RequiredStatusChecks) == 0 {
		settings.RequiredStatusChecks = nil
	}
	return &branchProtectionRequest{BranchProtectionSettings: settings}
}

// FeatureFlags are the repository feature toggles applied to every repository
type FeatureFlags struct {
	AllowIssues       bool `json:"allow_issues" yaml:"allow_issues"`
	AllowProjects     bool `json:"allow_projects" yaml:"allow_projects"`
	AllowWiki         bool `json:"allow_wiki" yaml:"allow_wiki"`
	SquashMerge       bool `json:"squash_merge" yaml:"squash_merge"`
	MergeCommit       bool `json:"merge_commit" yaml:"merge_commit"`
	RebaseMerge       bool `json:"rebase_merge" yaml:"rebase_merge"`
	AutoMerge         bool `json:"auto_merge" yaml:"auto_merge"`
	DeleteHead        bool `json:"delete_head" yaml:"delete_head"`
	AllowUpdateBranch bool `json:"allow_update_branch" yaml:"allow_update_branch"`
}

// RepositorySettings builds the sparse update for the flags. A flag is only
// sent when it is true; false is never sent.
func (f FeatureFlags) RepositorySettings() RepositorySettings {
	return RepositorySettings{
		HasIssues:           trueOrNil(f.AllowIssues),
		HasProjects:         trueOrNil(f.AllowProjects),
		HasWiki:             trueOrNil(f.AllowWiki),
		AllowSquashMerge:    trueOrNil(f.SquashMerge),
		AllowMergeCommit:    trueOrNil(f.MergeCommit),
		AllowRebaseMerge:    trueOrNil(f.RebaseMerge),
		AllowAutoMerge:      trueOrNil(f.AutoMerge),
		DeleteBranchOnMerge: trueOrNil(f.DeleteHead),
		AllowUpdateBranch:   trueOrNil(f.AllowUpdateBranch),
	}
}

func trueOrNil(v bool) *bool {
	if !v {
		return nil
	}
	return &v
}

// Settings is the configuration of a run. It is built once and never
// modified while repositories are processed.
type Settings struct {
	Repositories         []string
	Features             FeatureFlags
	BranchProtectionMode BranchProtectionMode
	BranchProtectionName string
	BranchProtection     BranchProtectionSettings
	DryRun               bool
}
