package github

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/gofri/go-github-ratelimit/v2/github_ratelimit"
	"github.com/google/go-github/v66/github"
	"golang.org/x/oauth2"
)

// Compile-time interface satisfaction check.
var _ APIClient = (*Client)(nil)

// Client implements the APIClient interface using the GitHub REST API
type Client struct {
	client *github.Client
}

// NewClient creates a new GitHub API client with the provided token.
// Requests go through an oauth2 token transport wrapped by the secondary
// rate limit middleware.
func NewClient(token string) *Client {
	ts := oauth2.StaticTokenSource(
		&oauth2.Token{AccessToken: token},
	)
	tc := oauth2.NewClient(context.Background(), ts)

	return &Client{
		client: github.NewClient(github_ratelimit.NewClient(tc.Transport)),
	}
}

const defaultAPIURL = "https://api.github.com"

// NewClientForURL creates a client for the REST API at apiURL, as exposed to
// workflows in GITHUB_API_URL. An empty apiURL selects api.github.com.
func NewClientForURL(token, apiURL string) (*Client, error) {
	c := NewClient(token)
	if apiURL == "" || strings.TrimSuffix(apiURL, "/") == defaultAPIURL {
		return c, nil
	}

	enterprise, err := c.client.WithEnterpriseURLs(apiURL, apiURL)
	if err != nil {
		return nil, NewGitHubError(ErrorTypeValidation, fmt.Sprintf("invalid API URL %q", apiURL), err)
	}
	c.client = enterprise
	return c, nil
}

// AuthenticatedUser returns the login of the token's owner
func (c *Client) AuthenticatedUser(ctx context.Context) (string, error) {
	user, _, err := c.client.Users.Get(ctx, "")
	if err != nil {
		return "", WrapGitHubError(err, "authenticated user")
	}
	if user.GetLogin() == "" {
		return "", NewGitHubError(ErrorTypeUnknown, "authenticated user has no login", nil)
	}
	return user.GetLogin(), nil
}

// ListOwnerRepositories lists every repository owned by owner, in API order
func (c *Client) ListOwnerRepositories(ctx context.Context, owner string) ([]RepositoryRef, error) {
	opts := &github.RepositoryListByUserOptions{
		Type:        "owner",
		ListOptions: github.ListOptions{PerPage: 100},
	}

	var refs []RepositoryRef
	for {
		repos, resp, err := c.client.Repositories.ListByUser(ctx, owner, opts)
		if err != nil {
			return nil, WrapGitHubError(err, fmt.Sprintf("repositories for user %s", owner))
		}

		for _, repo := range repos {
			refs = append(refs, RepositoryRef{
				Owner: repo.GetOwner().GetLogin(),
				Name:  repo.GetName(),
			})
		}

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	return refs, nil
}

// UpdateRepository sends a sparse repository update. Only non-nil settings are
// part of the request body.
func (c *Client) UpdateRepository(ctx context.Context, owner, name string, settings RepositorySettings) error {
	repo := &github.Repository{
		HasIssues:           settings.HasIssues,
		HasProjects:         settings.HasProjects,
		HasWiki:             settings.HasWiki,
		AllowSquashMerge:    settings.AllowSquashMerge,
		AllowMergeCommit:    settings.AllowMergeCommit,
		AllowRebaseMerge:    settings.AllowRebaseMerge,
		AllowAutoMerge:      settings.AllowAutoMerge,
		DeleteBranchOnMerge: settings.DeleteBranchOnMerge,
		AllowUpdateBranch:   settings.AllowUpdateBranch,
	}

	if _, _, err := c.client.Repositories.Edit(ctx, owner, name, repo); err != nil {
		return WrapGitHubError(err, fmt.Sprintf("repository %s/%s", owner, name))
	}
	return nil
}

// UpdateBranchProtection replaces the protection rules of a branch.
// The body is built by hand so required status checks pass through verbatim
// and required_signatures is part of the request.
func (c *Client) UpdateBranchProtection(ctx context.Context, owner, name, branch string, settings BranchProtectionSettings) error {
	resource := fmt.Sprintf("branch protection %s/%s:%s", owner, name, branch)
	u := fmt.Sprintf("repos/%v/%v/branches/%v/protection", owner, name, url.PathEscape(branch))

	req, err := c.client.NewRequest(http.MethodPut, u, newBranchProtectionRequest(settings))
	if err != nil {
		return WrapGitHubError(err, resource)
	}

	if _, err := c.client.Do(ctx, req, nil); err != nil {
		return WrapGitHubError(err, resource)
	}
	return nil
}

// DeleteBranchProtection removes branch protection rules for a specific branch
func (c *Client) DeleteBranchProtection(ctx context.Context, owner, name, branch string) error {
	if _, err := c.client.Repositories.RemoveBranchProtection(ctx, owner, name, branch); err != nil {
		return WrapGitHubError(err, fmt.Sprintf("branch protection %s/%s:%s", owner, name, branch))
	}
	return nil
}
