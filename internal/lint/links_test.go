package lint

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"doclint/internal/model"
)

func checkRule(t *testing.T, r Rule, set *FileSet, path string) []model.Issue {
	t.Helper()
	d, ok := set.Document(path)
	require.True(t, ok, "document %s not in set", path)
	return r.Check(d, set)
}

func TestLinkRule_SameDocumentAnchors(t *testing.T) {
	set := NewFileSet()
	set.AddDocument("README.md", []byte(`# Title

## Setup

Jump to [setup](#setup) or [missing](#nowhere).
`))
	set.Close()

	issues := checkRule(t, &linkRule{}, set, "README.md")

	require.Len(t, issues, 1)
	assert.Equal(t, "broken-anchor", issues[0].Rule)
	assert.Equal(t, model.SeverityError, issues[0].Severity)
	assert.Equal(t, 5, issues[0].Line)
	assert.Contains(t, issues[0].Message, "#nowhere")
}

func TestLinkRule_CrossFile(t *testing.T) {
	set := NewFileSet()
	set.AddDocument("README.md", []byte(`# Title

- [guide](docs/guide.md)
- [guide section](docs/guide.md#usage)
- [bad section](docs/guide.md#absent)
- [gone](docs/missing.md)
`))
	set.AddDocument("docs/guide.md", []byte(`# Guide

## Usage
`))
	set.Close()

	issues := checkRule(t, &linkRule{}, set, "README.md")

	require.Len(t, issues, 2)
	assert.Equal(t, "broken-anchor", issues[0].Rule)
	assert.Equal(t, 5, issues[0].Line)
	assert.Equal(t, "missing-file", issues[1].Rule)
	assert.Equal(t, 6, issues[1].Line)
}

func TestLinkRule_RelativeTraversal(t *testing.T) {
	set := NewFileSet()
	set.AddDocument("docs/guide.md", []byte("# Guide\n\n[back](../README.md)\n"))
	set.AddDocument("README.md", []byte("# Title\n"))
	set.Close()

	issues := checkRule(t, &linkRule{}, set, "docs/guide.md")
	assert.Empty(t, issues)
}

func TestLinkRule_AssetsResolve(t *testing.T) {
	set := NewFileSet()
	set.AddDocument("README.md", []byte("# T\n\n![logo](img/logo.png)\n![nope](img/none.png)\n"))
	set.AddAsset("img/logo.png")
	set.Close()

	issues := checkRule(t, &linkRule{}, set, "README.md")

	require.Len(t, issues, 1)
	assert.Equal(t, "missing-file", issues[0].Rule)
	assert.Contains(t, issues[0].Message, "img/none.png")
}

func TestLinkRule_OpenSetSkipsForeignFiles(t *testing.T) {
	set := NewFileSet()
	set.AddDocument("README.md", []byte("# T\n\n[other](other.md)\n[anchor](#gone)\n"))

	issues := checkRule(t, &linkRule{}, set, "README.md")

	// The file link cannot be judged in an open set; the anchor still can.
	require.Len(t, issues, 1)
	assert.Equal(t, "broken-anchor", issues[0].Rule)
}

func TestLinkRule_ExternalLinks(t *testing.T) {
	src := []byte("# T\n\n[site](https://example.com)\n[mail](mailto:a@b.c)\n")

	set := NewFileSet()
	set.AddDocument("README.md", src)
	set.Close()

	issues := checkRule(t, &linkRule{}, set, "README.md")
	assert.Empty(t, issues)

	set2 := NewFileSet()
	set2.AddDocument("README.md", src)
	set2.Close()
	issues = checkRule(t, &linkRule{reportExternal: true}, set2, "README.md")
	require.Len(t, issues, 2)
	assert.Equal(t, "external-link", issues[0].Rule)
	assert.Equal(t, model.SeverityInfo, issues[0].Severity)
}

func TestLinkRule_EscapedTargets(t *testing.T) {
	set := NewFileSet()
	set.AddDocument("README.md", []byte("# T\n\n[doc](my%20file.md)\n"))
	set.AddDocument("my file.md", []byte("# F\n"))
	set.Close()

	issues := checkRule(t, &linkRule{}, set, "README.md")
	assert.Empty(t, issues)
}

func TestLinkRule_AnchorCaseInsensitive(t *testing.T) {
	set := NewFileSet()
	set.AddDocument("README.md", []byte("# T\n\n[s](#Setup)\n\n## Setup\n"))
	set.Close()

	issues := checkRule(t, &linkRule{}, set, "README.md")
	assert.Empty(t, issues)
}
