package lint

import (
	"fmt"
	"strings"

	"doclint/internal/model"
)

// headingRule enforces document heading structure: a single H1, no skipped
// levels, and flags repeated heading text.
type headingRule struct{}

func (r *headingRule) Name() string { return "heading-structure" }

func (r *headingRule) Check(d *Document, _ *FileSet) []model.Issue {
	var issues []model.Issue

	h1Count := 0
	prevLevel := 0
	seen := make(map[string]int)

	for _, h := range d.Headings {
		if h.Level == 1 {
			h1Count++
			if h1Count > 1 {
				issues = append(issues, issue("multiple-h1", model.SeverityWarning, h.Line, 0,
					fmt.Sprintf("more than one top-level heading: %q", h.Text), ""))
			}
		}
		if prevLevel > 0 && h.Level > prevLevel+1 {
			issues = append(issues, issue("heading-skip", model.SeverityWarning, h.Line, 0,
				fmt.Sprintf("heading level jumps from H%d to H%d", prevLevel, h.Level), ""))
		}
		prevLevel = h.Level

		key := strings.ToLower(strings.TrimSpace(h.Text))
		if key != "" {
			if first, ok := seen[key]; ok {
				issues = append(issues, issue("duplicate-heading", model.SeverityInfo, h.Line, 0,
					fmt.Sprintf("heading %q repeats the heading on line %d", h.Text, first), ""))
			} else {
				seen[key] = h.Line
			}
		}
	}

	if h1Count == 0 {
		issues = append(issues, issue("missing-h1", model.SeverityWarning, 1, 0,
			"document has no top-level heading", ""))
	}
	return issues
}
