package github

import (
	"context"
	"io"
	"log/slog"

	"github.com/stretchr/testify/mock"
)

// MockAPIClient is a mock implementation of APIClient for testing
type MockAPIClient struct {
	mock.Mock
}

func (m *MockAPIClient) AuthenticatedUser(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

func (m *MockAPIClient) ListOwnerRepositories(ctx context.Context, owner string) ([]RepositoryRef, error) {
	args := m.Called(ctx, owner)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]RepositoryRef), args.Error(1)
}

func (m *MockAPIClient) UpdateRepository(ctx context.Context, owner, name string, settings RepositorySettings) error {
	args := m.Called(ctx, owner, name, settings)
	return args.Error(0)
}

func (m *MockAPIClient) UpdateBranchProtection(ctx context.Context, owner, name, branch string, settings BranchProtectionSettings) error {
	args := m.Called(ctx, owner, name, branch, settings)
	return args.Error(0)
}

func (m *MockAPIClient) DeleteBranchProtection(ctx context.Context, owner, name, branch string) error {
	args := m.Called(ctx, owner, name, branch)
	return args.Error(0)
}

// recordingGrouper records group titles and tracks how many are open
type recordingGrouper struct {
	titles []string
	open   int
}

func (g *recordingGrouper) Group(title string) {
	g.titles = append(g.titles, title)
	g.open++
}

func (g *recordingGrouper) EndGroup() {
	g.open--
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
