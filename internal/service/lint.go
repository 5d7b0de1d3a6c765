package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"doclint/internal/lint"
	"doclint/internal/model"
	"doclint/internal/repository"
	"doclint/internal/storage"
)

var ErrRunNotFound = errors.New("lint run not found")

// LintService runs the lint engine against stored documents and persists the
// resulting reports.
type LintService interface {
	// Run lints the document's stored content and returns the persisted run
	// including its issues.
	Run(ctx context.Context, documentID string) (*model.LintRun, error)

	// GetRun returns a run with its issues.
	GetRun(ctx context.Context, id string) (*model.LintRun, error)

	// ListRuns returns runs for a document, newest first, without issues.
	ListRuns(ctx context.Context, documentID string, limit, offset int) (*LintRunListResult, error)

	// LatestRun returns the most recent run for a document with issues.
	LatestRun(ctx context.Context, documentID string) (*model.LintRun, error)
}

// LintRunListResult is the service-level DTO for paginated lint runs.
type LintRunListResult struct {
	Items []model.LintRun `json:"data"`
	Total int             `json:"total"`
}

type lintService struct {
	engine  *lint.Engine
	store   storage.Storage
	docs    repository.DocumentRepository
	runs    repository.LintRunRepository
	metrics *LintMetrics
	tracer  trace.Tracer
}

// NewLintService constructs a LintService. metrics may be nil in tests.
func NewLintService(engine *lint.Engine, store storage.Storage, docs repository.DocumentRepository, runs repository.LintRunRepository, metrics *LintMetrics) LintService {
	return &lintService{
		engine:  engine,
		store:   store,
		docs:    docs,
		runs:    runs,
		metrics: metrics,
		tracer:  otel.Tracer("doclint/internal/service"),
	}
}

func (s *lintService) Run(ctx context.Context, documentID string) (*model.LintRun, error) {
	if documentID == "" {
		return nil, ErrIDRequired
	}
	doc, err := s.docs.FindByID(ctx, documentID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	ctx, span := s.tracer.Start(ctx, "lint.run",
		trace.WithAttributes(attribute.String("doclint.document_id", doc.ID)))
	defer span.End()

	started := time.Now().UTC()

	rc, _, err := s.store.Get(ctx, doc.StoragePath)
	if err != nil {
		s.metrics.observeRun(string(model.RunStatusFailed))
		return nil, fmt.Errorf("get from storage: %w", err)
	}
	src, err := io.ReadAll(rc)
	closeErr := rc.Close()
	if err == nil {
		err = closeErr
	}
	if err != nil {
		s.metrics.observeRun(string(model.RunStatusFailed))
		return nil, fmt.Errorf("read document content: %w", err)
	}

	issues := s.engine.LintDocument(doc.Filename, src)

	run := &model.LintRun{
		ID:         uuid.New().String(),
		DocumentID: doc.ID,
		Status:     model.RunStatusFinished,
		StartedAt:  started,
		FinishedAt: time.Now().UTC(),
	}
	for i := range issues {
		issues[i].ID = uuid.New().String()
		issues[i].RunID = run.ID
		switch issues[i].Severity {
		case model.SeverityError:
			run.ErrorCount++
		case model.SeverityWarning:
			run.WarningCount++
		}
	}
	run.Issues = issues

	stored, err := s.runs.CreateRun(ctx, run)
	if err != nil {
		s.metrics.observeRun(string(model.RunStatusFailed))
		return nil, fmt.Errorf("save lint run: %w", err)
	}

	s.metrics.observeRun(string(model.RunStatusFinished))
	for _, is := range stored.Issues {
		s.metrics.observeIssue(is.Rule, string(is.Severity))
	}
	span.SetAttributes(
		attribute.Int("doclint.issues", len(stored.Issues)),
		attribute.Int("doclint.errors", stored.ErrorCount),
		attribute.Int("doclint.warnings", stored.WarningCount),
	)
	return stored, nil
}

func (s *lintService) GetRun(ctx context.Context, id string) (*model.LintRun, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	run, err := s.runs.FindRunByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRunNotFound
		}
		return nil, err
	}
	return run, nil
}

func (s *lintService) ListRuns(ctx context.Context, documentID string, limit, offset int) (*LintRunListResult, error) {
	if documentID == "" {
		return nil, ErrIDRequired
	}
	if limit <= 0 {
		limit = 10
	}
	if offset < 0 {
		offset = 0
	}
	res, err := s.runs.ListRunsByDocument(ctx, documentID, repository.PageQuery{Limit: limit, Offset: offset})
	if err != nil {
		return nil, err
	}
	return &LintRunListResult{Items: res.Items, Total: res.Total}, nil
}

func (s *lintService) LatestRun(ctx context.Context, documentID string) (*model.LintRun, error) {
	if documentID == "" {
		return nil, ErrIDRequired
	}
	run, err := s.runs.LatestRunByDocument(ctx, documentID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRunNotFound
		}
		return nil, err
	}
	return run, nil
}
