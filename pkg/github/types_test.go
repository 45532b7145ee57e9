package github

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFeatureFlags_RepositorySettingsIsSparse(t *testing.T) {
	keys := []string{
		"has_issues", "has_projects", "has_wiki",
		"allow_squash_merge", "allow_merge_commit", "allow_rebase_merge",
		"allow_auto_merge", "delete_branch_on_merge", "allow_update_branch",
	}

	// every combination of the nine flags
	for mask := 0; mask < 1<<len(keys); mask++ {
		on := func(i int) bool { return mask&(1<<i) != 0 }
		flags := FeatureFlags{
			AllowIssues:       on(0),
			AllowProjects:     on(1),
			AllowWiki:         on(2),
			SquashMerge:       on(3),
			MergeCommit:       on(4),
			RebaseMerge:       on(5),
			AutoMerge:         on(6),
			DeleteHead:        on(7),
			AllowUpdateBranch: on(8),
		}

		data, err := json.Marshal(flags.RepositorySettings())
		require.NoError(t, err)

		var body map[string]bool
		require.NoError(t, json.Unmarshal(data, &body))

		for i, key := range keys {
			value, present := body[key]
			if on(i) {
				assert.True(t, present && value, "mask %b: %s should be sent as true", mask, key)
			} else {
				assert.False(t, present, "mask %b: %s should not be sent", mask, key)
			}
		}
	}
}

func TestBranchProtectionRequest(t *testing.T) {
	req := newBranchProtectionRequest(BranchProtectionSettings{
		RequiredStatusChecks: json.RawMessage{},
		AllowForkSyncing:     true,
	})

	data, err := json.Marshal(req)
	require.NoError(t, err)

	assert.JSONEq(t, `{
		"required_status_checks": null,
		"required_conversation_resolution": false,
		"required_signatures": false,
		"required_linear_history": false,
		"lock_branch": false,
		"enforce_admins": false,
		"allow_force_pushes": false,
		"allow_deletions": false,
		"block_creations": false,
		"allow_fork_syncing": true,
		"required_pull_request_reviews": null,
		"restrictions": null
	}`, string(data))
}

func TestRepositoryRef_FullName(t *testing.T) {
	assert.Equal(t, "acme/widgets", RepositoryRef{Owner: "acme", Name: "widgets"}.FullName())
}

func TestParseBranchProtectionMode(t *testing.T) {
	tests := []struct {
		value string
		mode  BranchProtectionMode
		known bool
	}{
		{"enabled", BranchProtectionEnabled, true},
		{"disabled", BranchProtectionDisabled, true},
		{"unchanged", BranchProtectionUnchanged, true},
		{"UNCHANGED", BranchProtectionUnchanged, true},
		{"ENABLED", BranchProtectionUnchanged, false},
		{"Disabled", BranchProtectionUnchanged, false},
		{"", BranchProtectionUnchanged, false},
		{"yes", BranchProtectionUnchanged, false},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			mode, known := ParseBranchProtectionMode(tt.value)
			assert.Equal(t, tt.mode, mode)
			assert.Equal(t, tt.known, known)
		})
	}
}
