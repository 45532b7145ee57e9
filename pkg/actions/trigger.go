package actions

import (
	"strings"

	"github.com/sethvargo/go-githubactions"

	"reposync/pkg/github"
)

// NewTrigger extracts what repository resolution needs from the workflow
// context of the run
func NewTrigger(ghctx *githubactions.GitHubContext) github.Trigger {
	owner := ghctx.RepositoryOwner
	if owner == "" {
		owner, _, _ = strings.Cut(ghctx.Repository, "/")
	}

	return github.Trigger{
		Owner:                 owner,
		PullRequestRepository: PullRequestRepository(ghctx.Event),
	}
}

// PullRequestRepository returns the owner/name of the base repository of the
// pull request associated with the event, or "" when there is none.
// pull_request events carry the pull request directly; workflow_run events
// list the pull requests of the run that triggered them.
func PullRequestRepository(event map[string]any) string {
	if pr, ok := event["pull_request"].(map[string]any); ok {
		return baseRepository(pr)
	}

	run, _ := event["workflow_run"].(map[string]any)
	prs, _ := run["pull_requests"].([]any)
	if len(prs) == 0 {
		return ""
	}
	pr, _ := prs[0].(map[string]any)
	return baseRepository(pr)
}

func baseRepository(pr map[string]any) string {
	base, _ := pr["base"].(map[string]any)
	repo, _ := base["repo"].(map[string]any)

	if fullName, _ := repo["full_name"].(string); fullName != "" {
		return fullName
	}

	// workflow_run pull requests only carry the API url of the repository
	apiURL, _ := repo["url"].(string)
	_, path, found := strings.Cut(apiURL, "/repos/")
	if !found {
		return ""
	}
	parts := strings.Split(path, "/")
	if len(parts) < 2 || parts[0] == "" || parts[1] == "" {
		return ""
	}
	return parts[0] + "/" + parts[1]
}
