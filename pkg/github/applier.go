package github

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
)

// RepositoryResolver resolves the repositories targeted by the ["ALL"] sentinel
type RepositoryResolver interface {
	Resolve(ctx context.Context) ([]string, error)
}

// Applier applies a Settings value to every target repository, one at a time
type Applier struct {
	client   APIClient
	resolver RepositoryResolver
	groups   Grouper
	logger   *slog.Logger
}

// NewApplier creates a new applier
func NewApplier(client APIClient, resolver RepositoryResolver, groups Grouper, logger *slog.Logger) *Applier {
	if logger == nil {
		logger = slog.Default()
	}
	return &Applier{
		client:   client,
		resolver: resolver,
		groups:   groups,
		logger:   logger,
	}
}

// Apply updates each repository in order and stops at the first error.
// The log group of a failed repository is left open for the caller to close.
func (a *Applier) Apply(ctx context.Context, settings Settings) error {
	repos := settings.Repositories
	if IsAllRepositories(repos) {
		resolved, err := a.resolver.Resolve(ctx)
		if err != nil {
			return err
		}
		repos = resolved
	}

	for _, ownerRepo := range repos {
		if err := a.applyRepository(ctx, ownerRepo, settings); err != nil {
			return err
		}
	}
	return nil
}

func (a *Applier) applyRepository(ctx context.Context, ownerRepo string, settings Settings) error {
	a.groups.Group(fmt.Sprintf("Repo: %s", ownerRepo))

	owner, name := splitOwnerRepo(ownerRepo)
	a.logger.Debug(fmt.Sprintf("Owner: %s", owner))
	a.logger.Debug(fmt.Sprintf("Repository: %s", name))

	a.logger.Info("Updating repository settings")
	update := settings.Features.RepositorySettings()
	a.logger.Debug(fmt.Sprintf("Options: %s", toJSON(update)))

	if settings.DryRun {
		a.logger.Info("Dry run: repository settings not sent")
	} else if err := a.client.UpdateRepository(ctx, owner, name, update); err != nil {
		return fmt.Errorf("failed to update repository %s: %w", ownerRepo, err)
	}

	branch := settings.BranchProtectionName
	switch settings.BranchProtectionMode {
	case BranchProtectionEnabled:
		a.logger.Info(fmt.Sprintf("Setting branch protection rules for branch [%s]", branch))
		a.logger.Debug(fmt.Sprintf("Options: %s", toJSON(newBranchProtectionRequest(settings.BranchProtection))))

		if settings.DryRun {
			a.logger.Info("Dry run: branch protection rules not sent")
		} else if err := a.client.UpdateBranchProtection(ctx, owner, name, branch, settings.BranchProtection); err != nil {
			return fmt.Errorf("failed to set branch protection for %s: %w", ownerRepo, err)
		}

	case BranchProtectionDisabled:
		a.logger.Info(fmt.Sprintf("Removing branch protection rules for branch [%s]", branch))

		if settings.DryRun {
			a.logger.Info("Dry run: branch protection rules not removed")
		} else if err := a.client.DeleteBranchProtection(ctx, owner, name, branch); err != nil {
			if !IsNotFound(err) {
				return fmt.Errorf("failed to remove branch protection for %s: %w", ownerRepo, err)
			}
			a.logger.Info(fmt.Sprintf("Branch [%s] has no protection rules to remove", branch))
		}

	default:
		a.logger.Info(fmt.Sprintf("Leaving branch protection rules for branch [%s] untouched", branch))
	}

	a.logger.Info(fmt.Sprintf("Completed Repository: %s", ownerRepo))
	a.groups.EndGroup()
	return nil
}

// splitOwnerRepo returns the first two "/" separated segments of ownerRepo.
// Missing segments are empty; nothing is validated here.
func splitOwnerRepo(ownerRepo string) (owner, name string) {
	parts := strings.Split(ownerRepo, "/")
	owner = parts[0]
	if len(parts) > 1 {
		name = parts[1]
	}
	return owner, name
}

func toJSON(v any) string {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%+v", v)
	}
	return string(data)
}
