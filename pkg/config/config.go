// Package config resolves the action inputs into the settings of a run.
package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"reposync/pkg/github"
)

// Input names read by Load
const (
	InputToken                   = "token"
	InputRepositories            = "REPOSITORIES"
	InputAllowIssues             = "ALLOW_ISSUES"
	InputAllowProjects           = "ALLOW_PROJECTS"
	InputAllowWiki               = "ALLOW_WIKI"
	InputSquashMerge             = "SQUASH_MERGE"
	InputMergeCommit             = "MERGE_COMMIT"
	InputRebaseMerge             = "REBASE_MERGE"
	InputAutoMerge               = "AUTO_MERGE"
	InputDeleteHead              = "DELETE_HEAD"
	InputAllowUpdateBranch       = "ALLOW_UPDATE_BRANCH"
	InputBranchProtectionEnabled = "BRANCH_PROTECTION_ENABLED"
	InputBranchProtectionName    = "BRANCH_PROTECTION_NAME"
	InputRequiredStatusChecks    = "BP_REQUIRED_STATUS_CHECKS"
	InputRequiredConvoResolution = "BP_REQUIRED_CONVO_RESOLUTION"
	InputRequiredSignatures      = "BP_REQUIRED_SIGNATURES"
	InputRequiredLinearHistory   = "BP_REQUIRED_LINEAR_HISTORY"
	InputLockBranch              = "BP_LOCK_BRANCH"
	InputEnforceAdmins           = "BP_ENFORCE_ADMINS"
	InputAllowForcePushes        = "BP_ALLOW_FORCE_PUSHES"
	InputAllowDeletions          = "BP_ALLOW_DELETIONS"
	InputBlockCreations          = "BP_BLOCK_CREATIONS"
	InputAllowForkSyncing        = "BP_ALLOW_FORK_SYNCING"
	InputDryRun                  = "DRY_RUN"
)

// InputSource provides raw input values. An absent input is the empty string.
type InputSource interface {
	GetInput(name string) string
}

// ConfigurationError reports an input that could not be turned into a setting
type ConfigurationError struct {
	Input   string
	Message string
	Cause   error
}

// Error implements the error interface
func (e *ConfigurationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("invalid input %s: %s: %v", e.Input, e.Message, e.Cause)
	}
	return fmt.Sprintf("invalid input %s: %s", e.Input, e.Message)
}

// Unwrap returns the underlying error
func (e *ConfigurationError) Unwrap() error {
	return e.Cause
}

// GetRequiredInput returns the input value or a ConfigurationError when it is absent
func GetRequiredInput(src InputSource, name string) (string, error) {
	value := src.GetInput(name)
	if value == "" {
		return "", &ConfigurationError{Input: name, Message: "input required and not supplied"}
	}
	return value, nil
}

// GetInputArray splits the input on newlines and trims every element.
// Empty elements are kept: defaultVal is only used when the input is absent.
func GetInputArray(src InputSource, name string, defaultVal []string) []string {
	raw := src.GetInput(name)
	if raw == "" {
		return defaultVal
	}

	values := strings.Split(raw, "\n")
	for i, v := range values {
		values[i] = strings.TrimSpace(v)
	}
	return values
}

// GetInputWithDefault returns the input value, or defaultValue when it is empty
func GetInputWithDefault(src InputSource, name, defaultValue string) string {
	if value := src.GetInput(name); value != "" {
		return value
	}
	return defaultValue
}

// GetBoolInput is true only when the input (or its default) is exactly "true"
func GetBoolInput(src InputSource, name string, defaultValue bool) bool {
	return GetInputWithDefault(src, name, fmt.Sprintf("%t", defaultValue)) == "true"
}

// Load reads every input and returns the settings of the run. Each value is
// logged inside the "Gathering inputs..." group. On error the group is left
// open for the caller to close.
func Load(src InputSource, groups github.Grouper, logger *slog.Logger) (github.Settings, error) {
	if logger == nil {
		logger = slog.Default()
	}

	groups.Group("Gathering inputs...")

	rawStatusChecks := GetInputWithDefault(src, InputRequiredStatusChecks, "null")
	statusChecks, err := parseJSONInput(InputRequiredStatusChecks, rawStatusChecks)
	if err != nil {
		return github.Settings{}, err
	}

	rawMode := GetInputWithDefault(src, InputBranchProtectionEnabled, "UNCHANGED")
	mode, known := github.ParseBranchProtectionMode(rawMode)

	settings := github.Settings{
		Repositories: GetInputArray(src, InputRepositories, []string{github.AllRepositories}),
		Features: github.FeatureFlags{
			AllowIssues:       GetBoolInput(src, InputAllowIssues, true),
			AllowProjects:     GetBoolInput(src, InputAllowProjects, true),
			AllowWiki:         GetBoolInput(src, InputAllowWiki, true),
			SquashMerge:       GetBoolInput(src, InputSquashMerge, true),
			MergeCommit:       GetBoolInput(src, InputMergeCommit, true),
			RebaseMerge:       GetBoolInput(src, InputRebaseMerge, true),
			AutoMerge:         GetBoolInput(src, InputAutoMerge, false),
			DeleteHead:        GetBoolInput(src, InputDeleteHead, false),
			AllowUpdateBranch: GetBoolInput(src, InputAllowUpdateBranch, false),
		},
		BranchProtectionMode: mode,
		BranchProtectionName: GetInputWithDefault(src, InputBranchProtectionName, "main"),
		BranchProtection: github.BranchProtectionSettings{
			RequiredStatusChecks:           statusChecks,
			RequiredConversationResolution: GetBoolInput(src, InputRequiredConvoResolution, false),
			RequiredSignatures:             GetBoolInput(src, InputRequiredSignatures, false),
			RequiredLinearHistory:          GetBoolInput(src, InputRequiredLinearHistory, false),
			LockBranch:                     GetBoolInput(src, InputLockBranch, false),
			EnforceAdmins:                  GetBoolInput(src, InputEnforceAdmins, false),
			AllowForcePushes:               GetBoolInput(src, InputAllowForcePushes, false),
			AllowDeletions:                 GetBoolInput(src, InputAllowDeletions, false),
			BlockCreations:                 GetBoolInput(src, InputBlockCreations, false),
			AllowForkSyncing:               GetBoolInput(src, InputAllowForkSyncing, false),
		},
		DryRun: GetBoolInput(src, InputDryRun, false),
	}

	logger.Info("Inputs:")
	logger.Info("=======")
	logInput(logger, InputRepositories, strings.Join(settings.Repositories, ","))
	logInput(logger, InputAllowIssues, settings.Features.AllowIssues)
	logInput(logger, InputAllowProjects, settings.Features.AllowProjects)
	logInput(logger, InputAllowWiki, settings.Features.AllowWiki)
	logInput(logger, InputSquashMerge, settings.Features.SquashMerge)
	logInput(logger, InputMergeCommit, settings.Features.MergeCommit)
	logInput(logger, InputRebaseMerge, settings.Features.RebaseMerge)
	logInput(logger, InputAutoMerge, settings.Features.AutoMerge)
	logInput(logger, InputDeleteHead, settings.Features.DeleteHead)
	logInput(logger, InputAllowUpdateBranch, settings.Features.AllowUpdateBranch)
	logInput(logger, InputBranchProtectionEnabled, rawMode)
	logInput(logger, InputBranchProtectionName, settings.BranchProtectionName)
	logInput(logger, InputRequiredStatusChecks, string(statusChecks))
	logInput(logger, InputRequiredConvoResolution, settings.BranchProtection.RequiredConversationResolution)
	logInput(logger, InputRequiredSignatures, settings.BranchProtection.RequiredSignatures)
	logInput(logger, InputRequiredLinearHistory, settings.BranchProtection.RequiredLinearHistory)
	logInput(logger, InputLockBranch, settings.BranchProtection.LockBranch)
	logInput(logger, InputEnforceAdmins, settings.BranchProtection.EnforceAdmins)
	logInput(logger, InputAllowForcePushes, settings.BranchProtection.AllowForcePushes)
	logInput(logger, InputAllowDeletions, settings.BranchProtection.AllowDeletions)
	logInput(logger, InputBlockCreations, settings.BranchProtection.BlockCreations)
	logInput(logger, InputAllowForkSyncing, settings.BranchProtection.AllowForkSyncing)
	logInput(logger, InputDryRun, settings.DryRun)
	logger.Info("")

	if !known {
		logger.Warn(fmt.Sprintf("%s=%q is not one of enabled, disabled or unchanged; branch protection will be left untouched",
			InputBranchProtectionEnabled, rawMode))
	}

	groups.EndGroup()
	return settings, nil
}

// parseJSONInput parses raw once and returns it compacted. The structure is
// not checked beyond being valid JSON.
func parseJSONInput(name, raw string) (json.RawMessage, error) {
	var buf bytes.Buffer
	if err := json.Compact(&buf, []byte(raw)); err != nil {
		return nil, &ConfigurationError{Input: name, Message: "value is not valid JSON", Cause: err}
	}
	return json.RawMessage(buf.Bytes()), nil
}

func logInput(logger *slog.Logger, name string, value any) {
	logger.Info(fmt.Sprintf("%-30s%v", name+":", value))
}
