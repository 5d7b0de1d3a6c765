package lint

import (
	"sort"

	"doclint/internal/model"
)

// Rule checks one document in the context of the whole file set.
type Rule interface {
	Name() string
	Check(d *Document, set *FileSet) []model.Issue
}

// Option configures an Engine.
type Option func(*Engine)

// WithoutRules disables the named rule groups.
func WithoutRules(names ...string) Option {
	return func(e *Engine) {
		for _, n := range names {
			e.disabled[n] = true
		}
	}
}

// WithExternalLinks makes the link rule record external URLs as info issues
// instead of skipping them. No network requests are made either way.
func WithExternalLinks() Option {
	return func(e *Engine) { e.reportExternal = true }
}

// Engine runs the registered rules over a file set and returns deterministic,
// ordered issues.
type Engine struct {
	rules          []Rule
	disabled       map[string]bool
	reportExternal bool
}

// NewEngine builds an engine with the default rule set.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{disabled: make(map[string]bool)}
	for _, o := range opts {
		o(e)
	}
	e.rules = []Rule{
		&linkRule{reportExternal: e.reportExternal},
		&fenceRule{checkers: defaultCheckers()},
		&tocRule{},
		&headingRule{},
		&bareURLRule{},
		&whitespaceRule{},
	}
	return e
}

// RuleNames returns the names of all registered rule groups.
func (e *Engine) RuleNames() []string {
	names := make([]string, 0, len(e.rules))
	for _, r := range e.rules {
		names = append(names, r.Name())
	}
	return names
}

// FileReport holds the ordered issues for one file.
type FileReport struct {
	Path   string        `json:"path"`
	Issues []model.Issue `json:"issues"`
}

// Report is the result of linting a file set.
type Report struct {
	Files []FileReport `json:"files"`
}

// Counts totals issues across the report by severity.
func (r *Report) Counts() (errors, warnings, infos int) {
	for _, f := range r.Files {
		for _, is := range f.Issues {
			switch is.Severity {
			case model.SeverityError:
				errors++
			case model.SeverityWarning:
				warnings++
			default:
				infos++
			}
		}
	}
	return
}

// Lint runs every enabled rule against every document in the set.
func (e *Engine) Lint(set *FileSet) *Report {
	rep := &Report{}
	for _, d := range set.Documents() {
		rep.Files = append(rep.Files, FileReport{
			Path:   d.Path,
			Issues: e.lintOne(d, set),
		})
	}
	return rep
}

// LintDocument lints a single standalone document. The enclosing file set is
// open, so links to sibling files are not resolvable and are skipped.
func (e *Engine) LintDocument(path string, src []byte) []model.Issue {
	set := NewFileSet()
	d := set.AddDocument(path, src)
	return e.lintOne(d, set)
}

func (e *Engine) lintOne(d *Document, set *FileSet) []model.Issue {
	issues := make([]model.Issue, 0)
	for _, r := range e.rules {
		if e.disabled[r.Name()] {
			continue
		}
		issues = append(issues, r.Check(d, set)...)
	}
	sortIssues(issues)
	return issues
}

// sortIssues orders issues by line, column, then rule so output is stable
// across runs for identical input.
func sortIssues(issues []model.Issue) {
	sort.SliceStable(issues, func(i, j int) bool {
		if issues[i].Line != issues[j].Line {
			return issues[i].Line < issues[j].Line
		}
		if issues[i].Column != issues[j].Column {
			return issues[i].Column < issues[j].Column
		}
		return issues[i].Rule < issues[j].Rule
	})
}

func issue(rule string, sev model.Severity, line, col int, msg, snippet string) model.Issue {
	return model.Issue{
		Rule:     rule,
		Severity: sev,
		Line:     line,
		Column:   col,
		Message:  msg,
		Snippet:  snippet,
	}
}
