package github

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestIsAllRepositories(t *testing.T) {
	assert.True(t, IsAllRepositories([]string{"ALL"}))
	assert.False(t, IsAllRepositories([]string{"all"}))
	assert.False(t, IsAllRepositories([]string{"ALL", "acme/widgets"}))
	assert.False(t, IsAllRepositories([]string{"acme/ALL"}))
	assert.False(t, IsAllRepositories(nil))
}

func TestResolver_PullRequestContext(t *testing.T) {
	client := new(MockAPIClient)
	resolver := NewResolver(client, Trigger{Owner: "acme", PullRequestRepository: "acme/widgets"}, discardLogger())

	repos, err := resolver.Resolve(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []string{"acme/widgets"}, repos)
	client.AssertNotCalled(t, "ListOwnerRepositories", mock.Anything, mock.Anything)
	client.AssertNotCalled(t, "AuthenticatedUser", mock.Anything)
}

func TestResolver_OwnerListing(t *testing.T) {
	client := new(MockAPIClient)
	client.On("ListOwnerRepositories", mock.Anything, "acme").Return([]RepositoryRef{
		{Owner: "acme", Name: "a"},
		{Owner: "acme", Name: "b"},
	}, nil)
	resolver := NewResolver(client, Trigger{Owner: "acme"}, discardLogger())

	repos, err := resolver.Resolve(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []string{"acme/a", "acme/b"}, repos)
	client.AssertExpectations(t)
	client.AssertNotCalled(t, "AuthenticatedUser", mock.Anything)
}

func TestResolver_EmptyListing(t *testing.T) {
	client := new(MockAPIClient)
	client.On("ListOwnerRepositories", mock.Anything, "acme").Return([]RepositoryRef{}, nil)
	resolver := NewResolver(client, Trigger{Owner: "acme"}, discardLogger())

	repos, err := resolver.Resolve(context.Background())

	require.NoError(t, err)
	assert.Empty(t, repos)
}

func TestResolver_FallsBackToAuthenticatedUser(t *testing.T) {
	client := new(MockAPIClient)
	client.On("AuthenticatedUser", mock.Anything).Return("octocat", nil)
	client.On("ListOwnerRepositories", mock.Anything, "octocat").Return([]RepositoryRef{
		{Owner: "octocat", Name: "hello-world"},
	}, nil)
	resolver := NewResolver(client, Trigger{}, discardLogger())

	repos, err := resolver.Resolve(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []string{"octocat/hello-world"}, repos)
	client.AssertExpectations(t)
}

func TestResolver_Errors(t *testing.T) {
	t.Run("owner cannot be resolved", func(t *testing.T) {
		client := new(MockAPIClient)
		authErr := NewGitHubError(ErrorTypeAuth, "Bad credentials", nil)
		client.On("AuthenticatedUser", mock.Anything).Return("", authErr)
		resolver := NewResolver(client, Trigger{}, discardLogger())

		_, err := resolver.Resolve(context.Background())

		require.Error(t, err)
		assert.ErrorIs(t, err, authErr)
		client.AssertNotCalled(t, "ListOwnerRepositories", mock.Anything, mock.Anything)
	})

	t.Run("listing fails", func(t *testing.T) {
		client := new(MockAPIClient)
		listErr := NewGitHubError(ErrorTypeNetwork, "unavailable", nil)
		client.On("ListOwnerRepositories", mock.Anything, "acme").Return(nil, listErr)
		resolver := NewResolver(client, Trigger{Owner: "acme"}, discardLogger())

		_, err := resolver.Resolve(context.Background())

		var ghErr *GitHubError
		require.True(t, errors.As(err, &ghErr))
		assert.Equal(t, ErrorTypeNetwork, ghErr.Type)
	})
}
