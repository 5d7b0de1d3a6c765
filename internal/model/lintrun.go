package model

import "time"

// RunStatus describes the lifecycle state of a lint run.
type RunStatus string

const (
	RunStatusRunning  RunStatus = "running"
	RunStatusFinished RunStatus = "finished"
	RunStatusFailed   RunStatus = "failed"
)

// Severity classifies a lint issue.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// LintRun records one execution of the lint engine against a document.
type LintRun struct {
	ID           string    `json:"id"`
	DocumentID   string    `json:"document_id"`
	Status       RunStatus `json:"status"`
	ErrorCount   int       `json:"error_count"`
	WarningCount int       `json:"warning_count"`
	StartedAt    time.Time `json:"started_at"`
	FinishedAt   time.Time `json:"finished_at"`
	Issues       []Issue   `json:"issues,omitempty"`
}

// Issue is a single finding produced by a lint rule.
// Line and Column are 1-based; Column is 0 when unknown.
type Issue struct {
	ID       string   `json:"id"`
	RunID    string   `json:"run_id,omitempty"`
	Rule     string   `json:"rule"`
	Severity Severity `json:"severity"`
	Line     int      `json:"line"`
	Column   int      `json:"column"`
	Message  string   `json:"message"`
	Snippet  string   `json:"snippet,omitempty"`
}
