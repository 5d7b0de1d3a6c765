package lint

import (
	"path"
	"sort"
	"strings"
)

// FileSet is the collection of files a lint pass runs against. Markdown
// documents are parsed; other files are registered as assets so that relative
// links to them resolve. A closed set claims to contain every reachable file,
// which lets the link rule treat a miss as an error; an open set (a single
// uploaded document) cannot make that claim and cross-file targets are left
// unchecked.
type FileSet struct {
	docs   map[string]*Document
	assets map[string]struct{}
	closed bool
}

func NewFileSet() *FileSet {
	return &FileSet{
		docs:   make(map[string]*Document),
		assets: make(map[string]struct{}),
	}
}

// AddDocument parses src and registers it under path.
func (s *FileSet) AddDocument(p string, src []byte) *Document {
	d := Parse(p, src)
	s.docs[d.Path] = d
	return d
}

// AddAsset registers a non-markdown file so links to it resolve.
func (s *FileSet) AddAsset(p string) {
	s.assets[normalizePath(p)] = struct{}{}
}

// Close marks the set as complete: missing link targets become reportable.
func (s *FileSet) Close() { s.closed = true }

// Closed reports whether the set claims to contain all reachable files.
func (s *FileSet) Closed() bool { return s.closed }

// Document returns the parsed document registered under p.
func (s *FileSet) Document(p string) (*Document, bool) {
	d, ok := s.docs[normalizePath(p)]
	return d, ok
}

// Has reports whether p is a known document or asset.
func (s *FileSet) Has(p string) bool {
	p = normalizePath(p)
	if _, ok := s.docs[p]; ok {
		return true
	}
	_, ok := s.assets[p]
	return ok
}

// Documents returns all parsed documents ordered by path.
func (s *FileSet) Documents() []*Document {
	out := make([]*Document, 0, len(s.docs))
	for _, d := range s.docs {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	return out
}

// resolve turns a link target in from into a set-relative path.
func resolve(from *Document, target string) string {
	if strings.HasPrefix(target, "/") {
		return normalizePath(target)
	}
	return normalizePath(path.Join(path.Dir(from.Path), target))
}

func normalizePath(p string) string {
	p = strings.ReplaceAll(p, "\\", "/")
	p = path.Clean("/" + p)
	return strings.TrimPrefix(p, "/")
}
