package mocks

import (
	"context"

	"doclint/internal/model"
	"doclint/internal/repository"
	"github.com/stretchr/testify/mock"
)

type MockLintRunRepository struct {
	mock.Mock
}

func (m *MockLintRunRepository) CreateRun(ctx context.Context, run *model.LintRun) (*model.LintRun, error) {
	args := m.Called(ctx, run)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	if f, ok := args.Get(0).(func(context.Context, *model.LintRun) *model.LintRun); ok {
		return f(ctx, run), args.Error(1)
	}
	return args.Get(0).(*model.LintRun), args.Error(1)
}

func (m *MockLintRunRepository) FindRunByID(ctx context.Context, id string) (*model.LintRun, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.LintRun), args.Error(1)
}

func (m *MockLintRunRepository) ListRunsByDocument(ctx context.Context, documentID string, pq repository.PageQuery) (*repository.PageResult[model.LintRun], error) {
	args := m.Called(ctx, documentID, pq)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.PageResult[model.LintRun]), args.Error(1)
}

func (m *MockLintRunRepository) LatestRunByDocument(ctx context.Context, documentID string) (*model.LintRun, error) {
	args := m.Called(ctx, documentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.LintRun), args.Error(1)
}
