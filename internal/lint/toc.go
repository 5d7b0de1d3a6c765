package lint

import (
	"fmt"
	"strings"

	"doclint/internal/model"
)

// tocRule compares a detected table-of-contents list against the document's
// headings. A TOC is optional; absent means no findings. The rule checks
// membership, extras, and order; broken anchors inside the TOC are the
// link rule's territory.
type tocRule struct{}

func (r *tocRule) Name() string { return "toc-sync" }

func (r *tocRule) Check(d *Document, _ *FileSet) []model.Issue {
	if len(d.TOC) == 0 {
		return nil
	}

	expected := tocHeadings(d)
	inTOC := make(map[string]int, len(d.TOC))
	for i, e := range d.TOC {
		inTOC[strings.ToLower(e.Anchor)] = i
	}

	var issues []model.Issue

	// Every section heading should be listed.
	for _, h := range expected {
		if _, ok := inTOC[h.Anchor]; !ok {
			issues = append(issues, issue("toc-missing-entry", model.SeverityWarning, h.Line, 0,
				fmt.Sprintf("heading %q is not listed in the table of contents", h.Text), ""))
		}
	}

	// Entries that point at a real heading which is not a section (the title,
	// the TOC's own heading, anything above the list) are extra. Entries whose
	// anchor resolves nowhere at all are the link rule's finding, not ours.
	expectedAnchors := make(map[string]bool, len(expected))
	for _, h := range expected {
		expectedAnchors[h.Anchor] = true
	}
	for _, e := range d.TOC {
		anchor := strings.ToLower(e.Anchor)
		if !expectedAnchors[anchor] && d.HasAnchor(anchor) {
			issues = append(issues, issue("toc-extra-entry", model.SeverityWarning, e.Line, 0,
				fmt.Sprintf("table of contents lists %q, which is not a section heading", e.Text), ""))
		}
	}

	// Listed entries must follow heading order.
	lastPos := -1
	for _, h := range expected {
		pos, ok := inTOC[h.Anchor]
		if !ok {
			continue
		}
		if pos < lastPos {
			issues = append(issues, issue("toc-order", model.SeverityWarning, d.TOC[pos].Line, 0,
				fmt.Sprintf("table of contents lists %q out of document order", d.TOC[pos].Text), ""))
		}
		if pos > lastPos {
			lastPos = pos
		}
	}
	return issues
}

// tocHeadings returns the headings a TOC is expected to list: everything
// except the document title (the first H1), the TOC's own heading, and
// headings that appear before the TOC list itself.
func tocHeadings(d *Document) []Heading {
	var out []Heading
	seenH1 := false
	for _, h := range d.Headings {
		if h.Level == 1 && !seenH1 {
			seenH1 = true
			continue
		}
		if isTOCTitle(h.Text) {
			continue
		}
		if h.Line < d.TOCLine {
			continue
		}
		out = append(out, h)
	}
	return out
}

func isTOCTitle(text string) bool {
	switch Slug(text) {
	case "table-of-contents", "toc", "contents":
		return true
	}
	return false
}
