package service

import "github.com/prometheus/client_golang/prometheus"

// LintMetrics holds the Prometheus collectors the lint service reports to.
type LintMetrics struct {
	runs   *prometheus.CounterVec
	issues *prometheus.CounterVec
}

// NewLintMetrics creates and registers the lint collectors.
func NewLintMetrics(reg prometheus.Registerer) (*LintMetrics, error) {
	m := &LintMetrics{
		runs: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "doclint_runs_total",
				Help: "Total number of lint runs executed.",
			},
			[]string{"status"},
		),
		issues: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "doclint_issues_total",
				Help: "Total number of lint issues found.",
			},
			[]string{"rule", "severity"},
		),
	}
	if err := reg.Register(m.runs); err != nil {
		return nil, err
	}
	if err := reg.Register(m.issues); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *LintMetrics) observeRun(status string) {
	if m == nil {
		return
	}
	m.runs.WithLabelValues(status).Inc()
}

func (m *LintMetrics) observeIssue(rule, severity string) {
	if m == nil {
		return
	}
	m.issues.WithLabelValues(rule, severity).Inc()
}
