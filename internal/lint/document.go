package lint

import (
	"bytes"
	"sort"
	"strconv"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// Heading is a markdown heading with its generated anchor.
type Heading struct {
	Level  int
	Text   string
	Line   int
	Anchor string
}

// Link is a markdown link or image reference found in a document.
type Link struct {
	Destination string
	Line        int
	Image       bool
}

// TOCEntry is one entry of a detected table-of-contents list.
type TOCEntry struct {
	Anchor string
	Text   string
	Line   int
}

// Document is the parsed representation of one markdown file.
type Document struct {
	Path     string
	Source   []byte
	Headings []Heading
	Links    []Link
	Fences   []Fence
	TOC      []TOCEntry
	TOCLine  int

	anchors   map[string]struct{}
	lineStart []int
}

// Parse builds a Document from raw markdown bytes. The path is kept verbatim
// and used later for cross-file link resolution.
func Parse(path string, src []byte) *Document {
	d := &Document{Path: normalizePath(path), Source: src}
	d.indexLines()
	d.Fences = scanFences(src)

	md := goldmark.New()
	root := md.Parser().Parse(text.NewReader(src))
	d.walk(root)

	d.anchors = make(map[string]struct{}, len(d.Headings))
	taken := make(map[string]int, len(d.Headings))
	for i := range d.Headings {
		slug := Slug(d.Headings[i].Text)
		if n, ok := taken[slug]; ok {
			taken[slug] = n + 1
			slug = slug + "-" + strconv.Itoa(n)
		} else {
			taken[slug] = 1
		}
		d.Headings[i].Anchor = slug
		d.anchors[slug] = struct{}{}
	}
	return d
}

// HasAnchor reports whether slug is a generated heading anchor of the document.
func (d *Document) HasAnchor(slug string) bool {
	_, ok := d.anchors[slug]
	return ok
}

// LineAt converts a byte offset in the source to a 1-based line number.
func (d *Document) LineAt(offset int) int {
	if offset < 0 {
		return 0
	}
	i := sort.Search(len(d.lineStart), func(i int) bool { return d.lineStart[i] > offset })
	return i
}

// LineText returns the raw text of a 1-based line without its terminator.
func (d *Document) LineText(line int) string {
	if line < 1 || line > len(d.lineStart) {
		return ""
	}
	start := d.lineStart[line-1]
	end := len(d.Source)
	if line < len(d.lineStart) {
		end = d.lineStart[line] - 1
	}
	return strings.TrimRight(string(d.Source[start:end]), "\r\n")
}

// LineCount returns the number of lines in the source.
func (d *Document) LineCount() int { return len(d.lineStart) }

func (d *Document) indexLines() {
	d.lineStart = append(d.lineStart, 0)
	for i, b := range d.Source {
		if b == '\n' && i+1 < len(d.Source) {
			d.lineStart = append(d.lineStart, i+1)
		}
	}
}

// walk collects headings, links and the first table-of-contents candidate
// from the goldmark AST.
func (d *Document) walk(root ast.Node) {
	lastBlockLine := 1

	_ = ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		if n.Type() == ast.TypeBlock {
			if lines := n.Lines(); lines != nil && lines.Len() > 0 {
				lastBlockLine = d.LineAt(lines.At(0).Start)
			}
		}

		switch v := n.(type) {
		case *ast.Heading:
			line := lastBlockLine
			if lines := v.Lines(); lines.Len() > 0 {
				line = d.LineAt(lines.At(0).Start)
			}
			d.Headings = append(d.Headings, Heading{
				Level: v.Level,
				Text:  nodeText(v, d.Source),
				Line:  line,
			})
		case *ast.Link:
			d.Links = append(d.Links, Link{
				Destination: string(v.Destination),
				Line:        d.inlineLine(v, lastBlockLine),
			})
		case *ast.Image:
			d.Links = append(d.Links, Link{
				Destination: string(v.Destination),
				Line:        d.inlineLine(v, lastBlockLine),
				Image:       true,
			})
		case *ast.AutoLink:
			d.Links = append(d.Links, Link{
				Destination: string(v.URL(d.Source)),
				Line:        lastBlockLine,
			})
		case *ast.List:
			// Only top-level lists qualify as a TOC candidate. A sublist
			// nested inside a rejected outer list is part of that list, not
			// a document-level table of contents.
			if len(d.TOC) == 0 && v.Parent() == root {
				d.extractTOC(v)
			}
			return ast.WalkContinue, nil
		}
		return ast.WalkContinue, nil
	})
}

// extractTOC records a list as the document TOC when every item is an
// intra-document anchor link and the list has at least two entries. Nested
// sublists contribute their entries in document order.
func (d *Document) extractTOC(list *ast.List) {
	entries, ok := d.tocEntries(list)
	if !ok || len(entries) < 2 {
		return
	}
	d.TOC = entries
	d.TOCLine = entries[0].Line
}

func (d *Document) tocEntries(list *ast.List) ([]TOCEntry, bool) {
	var entries []TOCEntry
	for item := list.FirstChild(); item != nil; item = item.NextSibling() {
		link := firstAnchorLink(item)
		if link == nil {
			return nil, false
		}
		entries = append(entries, TOCEntry{
			Anchor: strings.TrimPrefix(string(link.Destination), "#"),
			Text:   nodeText(link, d.Source),
			Line:   d.inlineLine(link, 0),
		})
		for c := item.FirstChild(); c != nil; c = c.NextSibling() {
			sub, ok := c.(*ast.List)
			if !ok {
				continue
			}
			nested, ok2 := d.tocEntries(sub)
			if !ok2 {
				return nil, false
			}
			entries = append(entries, nested...)
		}
	}
	return entries, true
}

// firstAnchorLink returns the first direct link of a list item when its
// destination is a "#fragment", descending past the item's paragraph but not
// into nested sublists.
func firstAnchorLink(item ast.Node) *ast.Link {
	for c := item.FirstChild(); c != nil; c = c.NextSibling() {
		if _, ok := c.(*ast.List); ok {
			continue
		}
		for g := c.FirstChild(); g != nil; g = g.NextSibling() {
			if link, ok := g.(*ast.Link); ok {
				if bytes.HasPrefix(link.Destination, []byte("#")) {
					return link
				}
				return nil
			}
		}
	}
	return nil
}

// inlineLine finds a line number for an inline node by locating its first
// descendant text segment, falling back to the enclosing block's line.
func (d *Document) inlineLine(n ast.Node, fallback int) int {
	if seg, ok := firstTextSegment(n); ok {
		return d.LineAt(seg)
	}
	return fallback
}

func firstTextSegment(n ast.Node) (int, bool) {
	if t, ok := n.(*ast.Text); ok {
		return t.Segment.Start, true
	}
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if off, ok := firstTextSegment(c); ok {
			return off, true
		}
	}
	return 0, false
}

// nodeText concatenates the raw text of all descendant text nodes.
func nodeText(n ast.Node, src []byte) string {
	var sb strings.Builder
	var visit func(ast.Node)
	visit = func(n ast.Node) {
		switch t := n.(type) {
		case *ast.Text:
			sb.Write(t.Segment.Value(src))
		case *ast.String:
			sb.Write(t.Value)
		}
		for c := n.FirstChild(); c != nil; c = c.NextSibling() {
			visit(c)
		}
	}
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		visit(c)
	}
	return sb.String()
}
