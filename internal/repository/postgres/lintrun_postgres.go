package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"doclint/internal/model"
	"doclint/internal/repository"
)

// LintRunPostgres is a PostgreSQL implementation of repository.LintRunRepository.
type LintRunPostgres struct {
	db *sql.DB
}

// NewLintRunPostgres creates a new LintRunPostgres repository.
func NewLintRunPostgres(db *sql.DB) *LintRunPostgres {
	return &LintRunPostgres{db: db}
}

var _ repository.LintRunRepository = (*LintRunPostgres)(nil)

// CreateRun stores the run and its issues in a single transaction so a run
// row can never exist with a partial issue list.
func (r *LintRunPostgres) CreateRun(ctx context.Context, run *model.LintRun) (*model.LintRun, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	const qRun = `
		INSERT INTO lint_runs (id, document_id, status, error_count, warning_count, started_at, finished_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, document_id, status, error_count, warning_count, started_at, finished_at
	`
	row := tx.QueryRowContext(ctx, qRun,
		run.ID,
		run.DocumentID,
		run.Status,
		run.ErrorCount,
		run.WarningCount,
		run.StartedAt,
		run.FinishedAt,
	)
	var out model.LintRun
	if err := row.Scan(
		&out.ID,
		&out.DocumentID,
		&out.Status,
		&out.ErrorCount,
		&out.WarningCount,
		&out.StartedAt,
		&out.FinishedAt,
	); err != nil {
		return nil, err
	}

	const qIssue = `
		INSERT INTO lint_issues (id, run_id, rule, severity, line, "column", message, snippet)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	for _, is := range run.Issues {
		if _, err := tx.ExecContext(ctx, qIssue,
			is.ID,
			out.ID,
			is.Rule,
			is.Severity,
			is.Line,
			is.Column,
			is.Message,
			is.Snippet,
		); err != nil {
			return nil, fmt.Errorf("insert issue: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}
	out.Issues = run.Issues
	return &out, nil
}

// FindRunByID loads a run and its issues in deterministic order.
func (r *LintRunPostgres) FindRunByID(ctx context.Context, id string) (*model.LintRun, error) {
	const q = `
		SELECT id, document_id, status, error_count, warning_count, started_at, finished_at
		FROM lint_runs
		WHERE id = $1
	`
	row := r.db.QueryRowContext(ctx, q, id)
	var run model.LintRun
	if err := row.Scan(
		&run.ID,
		&run.DocumentID,
		&run.Status,
		&run.ErrorCount,
		&run.WarningCount,
		&run.StartedAt,
		&run.FinishedAt,
	); err != nil {
		return nil, err
	}

	issues, err := r.issuesForRun(ctx, run.ID)
	if err != nil {
		return nil, err
	}
	run.Issues = issues
	return &run, nil
}

// ListRunsByDocument returns runs for a document, newest first, without issues.
func (r *LintRunPostgres) ListRunsByDocument(ctx context.Context, documentID string, pq repository.PageQuery) (*repository.PageResult[model.LintRun], error) {
	const qCount = `SELECT COUNT(*) FROM lint_runs WHERE document_id = $1`
	var total int
	if err := r.db.QueryRowContext(ctx, qCount, documentID).Scan(&total); err != nil {
		return nil, err
	}

	const qList = `
		SELECT id, document_id, status, error_count, warning_count, started_at, finished_at
		FROM lint_runs
		WHERE document_id = $1
		ORDER BY started_at DESC, id DESC
		LIMIT $2 OFFSET $3
	`
	rows, err := r.db.QueryContext(ctx, qList, documentID, pq.Limit, pq.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.LintRun, 0)
	for rows.Next() {
		var run model.LintRun
		if err := rows.Scan(
			&run.ID,
			&run.DocumentID,
			&run.Status,
			&run.ErrorCount,
			&run.WarningCount,
			&run.StartedAt,
			&run.FinishedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, run)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &repository.PageResult[model.LintRun]{Items: items, Total: total}, nil
}

// LatestRunByDocument returns the most recent run including its issues.
func (r *LintRunPostgres) LatestRunByDocument(ctx context.Context, documentID string) (*model.LintRun, error) {
	const q = `
		SELECT id, document_id, status, error_count, warning_count, started_at, finished_at
		FROM lint_runs
		WHERE document_id = $1
		ORDER BY started_at DESC, id DESC
		LIMIT 1
	`
	row := r.db.QueryRowContext(ctx, q, documentID)
	var run model.LintRun
	if err := row.Scan(
		&run.ID,
		&run.DocumentID,
		&run.Status,
		&run.ErrorCount,
		&run.WarningCount,
		&run.StartedAt,
		&run.FinishedAt,
	); err != nil {
		return nil, err
	}

	issues, err := r.issuesForRun(ctx, run.ID)
	if err != nil {
		return nil, err
	}
	run.Issues = issues
	return &run, nil
}

func (r *LintRunPostgres) issuesForRun(ctx context.Context, runID string) ([]model.Issue, error) {
	const q = `
		SELECT id, run_id, rule, severity, line, "column", message, snippet
		FROM lint_issues
		WHERE run_id = $1
		ORDER BY line ASC, "column" ASC, rule ASC, id ASC
	`
	rows, err := r.db.QueryContext(ctx, q, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	issues := make([]model.Issue, 0)
	for rows.Next() {
		var is model.Issue
		if err := rows.Scan(
			&is.ID,
			&is.RunID,
			&is.Rule,
			&is.Severity,
			&is.Line,
			&is.Column,
			&is.Message,
			&is.Snippet,
		); err != nil {
			return nil, err
		}
		issues = append(issues, is)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return issues, nil
}
