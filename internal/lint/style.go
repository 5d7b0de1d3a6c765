package lint

import (
	"strings"

	"doclint/internal/model"
)

// bareURLRule flags raw http(s) URLs pasted into prose instead of being
// wrapped in a markdown link or autolink.
type bareURLRule struct{}

func (r *bareURLRule) Name() string { return "bare-urls" }

func (r *bareURLRule) Check(d *Document, _ *FileSet) []model.Issue {
	var issues []model.Issue
	fenced := fenceLines(d)

	for line := 1; line <= d.LineCount(); line++ {
		if fenced[line] {
			continue
		}
		text := d.LineText(line)
		if isRefDefinition(text) {
			continue
		}
		idx := indexBareURL(text)
		if idx < 0 {
			continue
		}
		issues = append(issues, issue("bare-url", model.SeverityWarning, line, idx+1,
			"bare URL in prose; wrap it in a link or <angle brackets>", strings.TrimSpace(text)))
	}
	return issues
}

// isRefDefinition reports whether the line is a link reference definition
// such as "[docs]: https://example.com".
func isRefDefinition(line string) bool {
	t := strings.TrimSpace(line)
	if !strings.HasPrefix(t, "[") {
		return false
	}
	end := strings.Index(t, "]:")
	return end > 0
}

// indexBareURL returns the column of a bare URL on the line, or -1. URLs
// preceded by '(', '<' or '"' are already part of link syntax, and URLs
// inside an odd number of backticks sit in inline code.
func indexBareURL(line string) int {
	for _, proto := range []string{"http://", "https://"} {
		for from := 0; ; {
			i := strings.Index(line[from:], proto)
			if i < 0 {
				break
			}
			i += from
			if i > 0 {
				switch line[i-1] {
				case '(', '<', '"', '\'', '/':
					from = i + len(proto)
					continue
				}
			}
			if strings.Count(line[:i], "`")%2 == 1 {
				from = i + len(proto)
				continue
			}
			return i
		}
	}
	return -1
}

// whitespaceRule flags trailing spaces and tabs. Exactly two trailing spaces
// are a markdown hard line break and are allowed.
type whitespaceRule struct{}

func (r *whitespaceRule) Name() string { return "trailing-whitespace" }

func (r *whitespaceRule) Check(d *Document, _ *FileSet) []model.Issue {
	var issues []model.Issue
	fenced := fenceLines(d)

	for line := 1; line <= d.LineCount(); line++ {
		if fenced[line] {
			continue
		}
		text := d.LineText(line)
		trimmed := strings.TrimRight(text, " \t")
		if trimmed == text {
			continue
		}
		if text == trimmed+"  " {
			continue // hard break
		}
		issues = append(issues, issue("trailing-whitespace", model.SeverityWarning, line, len(trimmed)+1,
			"trailing whitespace", ""))
	}
	return issues
}

// fenceLines marks every line covered by a fenced code block, fences included.
func fenceLines(d *Document) []bool {
	marks := make([]bool, d.LineCount()+1)
	for _, f := range d.Fences {
		end := f.Line
		if f.Body != "" {
			end += strings.Count(f.Body, "\n") + 1
		}
		if f.Closed {
			end++
		} else {
			end = d.LineCount()
		}
		for l := f.Line; l <= end && l < len(marks); l++ {
			marks[l] = true
		}
	}
	return marks
}
