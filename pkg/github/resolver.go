package github

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
)

// AllRepositories is the repository list entry that requests dynamic resolution
const AllRepositories = "ALL"

// IsAllRepositories reports whether repos is exactly the ["ALL"] sentinel
func IsAllRepositories(repos []string) bool {
	return len(repos) == 1 && repos[0] == AllRepositories
}

// Trigger describes the event that started the run
type Trigger struct {
	// Owner is the account that owns the repository running the workflow.
	Owner string
	// PullRequestRepository is the owner/name of the repository of the
	// pull request associated with the event, if any.
	PullRequestRepository string
}

// Resolver resolves the dynamic repository list
type Resolver struct {
	client  APIClient
	trigger Trigger
	logger  *slog.Logger
}

// NewResolver creates a resolver for the given trigger
func NewResolver(client APIClient, trigger Trigger, logger *slog.Logger) *Resolver {
	if logger == nil {
		logger = slog.Default()
	}
	return &Resolver{
		client:  client,
		trigger: trigger,
		logger:  logger,
	}
}

// Resolve returns the pull request repository when the trigger carries one,
// otherwise every repository owned by the triggering account in API order.
func (r *Resolver) Resolve(ctx context.Context) ([]string, error) {
	if r.trigger.PullRequestRepository != "" {
		r.logger.Debug(fmt.Sprintf("Pull request found on triggering event: using %s", r.trigger.PullRequestRepository))
		return []string{r.trigger.PullRequestRepository}, nil
	}

	owner := r.trigger.Owner
	if owner == "" {
		login, err := r.client.AuthenticatedUser(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve repository owner: %w", err)
		}
		owner = login
	}

	refs, err := r.client.ListOwnerRepositories(ctx, owner)
	if err != nil {
		return nil, fmt.Errorf("failed to list repositories for %s: %w", owner, err)
	}
	debugJSON(r.logger, refs, "Resolve() > repos")

	repos := make([]string, 0, len(refs))
	for _, ref := range refs {
		repos = append(repos, ref.FullName())
	}
	return repos, nil
}

// debugJSON logs value as indented JSON between header and footer lines
func debugJSON(logger *slog.Logger, value any, name string) {
	data, err := json.MarshalIndent(value, "", "    ")
	if err != nil {
		logger.Debug(fmt.Sprintf("%s: %v", name, value))
		return
	}
	logger.Debug(fmt.Sprintf("====== BEGIN %s ======", name))
	logger.Debug(string(data))
	logger.Debug(fmt.Sprintf("======= END %s =======", name))
}
