package mocks

import (
	"context"

	"doclint/internal/model"
	"doclint/internal/service"
	"github.com/stretchr/testify/mock"
)

type MockLintService struct {
	mock.Mock
}

func (m *MockLintService) Run(ctx context.Context, documentID string) (*model.LintRun, error) {
	args := m.Called(ctx, documentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.LintRun), args.Error(1)
}

func (m *MockLintService) GetRun(ctx context.Context, id string) (*model.LintRun, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.LintRun), args.Error(1)
}

func (m *MockLintService) ListRuns(ctx context.Context, documentID string, limit, offset int) (*service.LintRunListResult, error) {
	args := m.Called(ctx, documentID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.LintRunListResult), args.Error(1)
}

func (m *MockLintService) LatestRun(ctx context.Context, documentID string) (*model.LintRun, error) {
	args := m.Called(ctx, documentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.LintRun), args.Error(1)
}
