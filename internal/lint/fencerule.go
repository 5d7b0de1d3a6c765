package lint

import (
	"fmt"

	"doclint/internal/model"
)

// Checker validates the body of a fenced code block for one language family.
// It returns a zero-based line offset into the body and a reason when the
// body is not syntactically valid.
type Checker interface {
	Check(body string) *SyntaxError
}

// SyntaxError describes why a fence body failed validation. Line is a
// zero-based offset into the fence body; negative means unknown.
type SyntaxError struct {
	Line   int
	Reason string
}

// fenceRule validates every fenced code block against the checker registered
// for its declared language.
type fenceRule struct {
	checkers map[string]Checker
}

func (r *fenceRule) Name() string { return "code-fences" }

func (r *fenceRule) Check(d *Document, _ *FileSet) []model.Issue {
	var issues []model.Issue
	for _, f := range d.Fences {
		if !f.Closed {
			issues = append(issues, issue("unclosed-fence", model.SeverityError, f.Line, 0,
				"code fence is never closed", d.LineText(f.Line)))
			continue
		}
		if f.Language == "" {
			issues = append(issues, issue("missing-language", model.SeverityWarning, f.Line, 0,
				"code fence has no declared language", ""))
			continue
		}
		checker, ok := r.checkers[f.Language]
		if !ok {
			issues = append(issues, issue("unknown-language", model.SeverityInfo, f.Line, 0,
				fmt.Sprintf("no syntax check registered for language %q", f.Language), ""))
			continue
		}
		if serr := checker.Check(f.Body); serr != nil {
			line := f.Line
			if serr.Line >= 0 {
				// Body starts on the line after the opening fence.
				line = f.Line + 1 + serr.Line
			}
			issues = append(issues, issue("fence-syntax", model.SeverityError, line, 0,
				fmt.Sprintf("invalid %s: %s", f.Language, serr.Reason), d.LineText(line)))
		}
	}
	return issues
}

// defaultCheckers maps fence languages (and their common aliases) to checkers.
func defaultCheckers() map[string]Checker {
	jsonC := jsonChecker{}
	yamlC := yamlChecker{}
	goC := goChecker{}
	shellC := shellChecker{}
	dockerC := dockerfileChecker{}
	xmlC := xmlChecker{}
	braceC := braceChecker{}

	m := map[string]Checker{
		"json":       jsonC,
		"yaml":       yamlC,
		"yml":        yamlC,
		"go":         goC,
		"golang":     goC,
		"sh":         shellC,
		"bash":       shellC,
		"shell":      shellC,
		"console":    shellC,
		"zsh":        shellC,
		"dockerfile": dockerC,
		"docker":     dockerC,
		"xml":        xmlC,
	}
	// Curly-brace languages share the delimiter balance scanner.
	for _, lang := range []string{"java", "groovy", "kotlin", "kt", "kts", "gradle", "c", "cpp", "javascript", "js", "typescript", "ts"} {
		m[lang] = braceC
	}
	return m
}
