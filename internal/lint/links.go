package lint

import (
	"fmt"
	"net/url"
	"strings"

	"doclint/internal/model"
)

// linkRule verifies that every internal link resolves to a file in the linted
// set or to a generated heading anchor. External links are skipped unless the
// engine was built with WithExternalLinks, in which case they are recorded as
// info issues; no network traffic happens either way.
type linkRule struct {
	reportExternal bool
}

func (r *linkRule) Name() string { return "internal-links" }

func (r *linkRule) Check(d *Document, set *FileSet) []model.Issue {
	var issues []model.Issue

	for _, l := range d.Links {
		dest := strings.TrimSpace(l.Destination)
		if dest == "" {
			issues = append(issues, issue("empty-link", model.SeverityWarning, l.Line, 0,
				"link has an empty destination", ""))
			continue
		}

		if isExternal(dest) {
			if r.reportExternal {
				issues = append(issues, issue("external-link", model.SeverityInfo, l.Line, 0,
					fmt.Sprintf("external link not checked: %s", dest), ""))
			}
			continue
		}

		target, frag := splitFragment(dest)
		target = unescape(target)
		// Anchors are matched case-insensitively; generated slugs are lowercase.
		frag = strings.ToLower(unescape(frag))

		// Pure fragment: anchor in this document.
		if target == "" {
			if !d.HasAnchor(frag) {
				issues = append(issues, issue("broken-anchor", model.SeverityError, l.Line, 0,
					fmt.Sprintf("no heading generates anchor %q", "#"+frag), dest))
			}
			continue
		}

		resolved := resolve(d, target)
		if other, ok := set.Document(resolved); ok {
			if frag != "" && !other.HasAnchor(frag) {
				issues = append(issues, issue("broken-anchor", model.SeverityError, l.Line, 0,
					fmt.Sprintf("%s has no heading generating anchor %q", other.Path, "#"+frag), dest))
			}
			continue
		}
		if set.Has(resolved) {
			continue
		}
		// An open set cannot prove a sibling file is missing.
		if !set.Closed() {
			continue
		}
		issues = append(issues, issue("missing-file", model.SeverityError, l.Line, 0,
			fmt.Sprintf("link target %q does not exist", target), dest))
	}
	return issues
}

// isExternal reports whether dest points outside the document tree.
func isExternal(dest string) bool {
	lower := strings.ToLower(dest)
	for _, scheme := range []string{"http://", "https://", "mailto:", "ftp://", "tel:"} {
		if strings.HasPrefix(lower, scheme) {
			return true
		}
	}
	// Protocol-relative URLs.
	return strings.HasPrefix(dest, "//")
}

func splitFragment(dest string) (target, frag string) {
	if i := strings.IndexByte(dest, '#'); i >= 0 {
		return dest[:i], dest[i+1:]
	}
	return dest, ""
}

// unescape decodes %-escapes; on malformed input the raw value is kept so the
// resolution check still runs against something.
func unescape(s string) string {
	if u, err := url.PathUnescape(s); err == nil {
		return u
	}
	return s
}
