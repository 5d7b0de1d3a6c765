package repository

import (
	"context"

	"doclint/internal/model"
)

// LintRunRepository defines persistence for lint runs and their issues.
type LintRunRepository interface {
	// CreateRun stores a finished run together with its issues in one
	// transaction.
	CreateRun(ctx context.Context, run *model.LintRun) (*model.LintRun, error)

	// FindRunByID returns a run including its issues.
	FindRunByID(ctx context.Context, id string) (*model.LintRun, error)

	// ListRunsByDocument returns runs for a document, newest first, without
	// their issues.
	ListRunsByDocument(ctx context.Context, documentID string, pq PageQuery) (*PageResult[model.LintRun], error)

	// LatestRunByDocument returns the most recent run for a document,
	// including its issues.
	LatestRunByDocument(ctx context.Context, documentID string) (*model.LintRun, error)
}
