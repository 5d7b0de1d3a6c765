package lint

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"doclint/internal/model"
)

func newFenceRule() *fenceRule {
	return &fenceRule{checkers: defaultCheckers()}
}

func TestFenceRule_ValidBlocks(t *testing.T) {
	issues := lintSingle(t, newFenceRule(), "# T\n\n```json\n{\"ok\": true}\n```\n\n```go\npackage main\n\nfunc main() {}\n```\n")
	assert.Empty(t, issues)
}

func TestFenceRule_Unclosed(t *testing.T) {
	issues := lintSingle(t, newFenceRule(), "# T\n\n```sh\necho hi\n")

	require.Len(t, issues, 1)
	assert.Equal(t, "unclosed-fence", issues[0].Rule)
	assert.Equal(t, model.SeverityError, issues[0].Severity)
	assert.Equal(t, 3, issues[0].Line)
	assert.Equal(t, "```sh", issues[0].Snippet)
}

func TestFenceRule_MissingLanguage(t *testing.T) {
	issues := lintSingle(t, newFenceRule(), "# T\n\n```\nanything\n```\n")

	require.Len(t, issues, 1)
	assert.Equal(t, "missing-language", issues[0].Rule)
	assert.Equal(t, model.SeverityWarning, issues[0].Severity)
}

func TestFenceRule_UnknownLanguage(t *testing.T) {
	issues := lintSingle(t, newFenceRule(), "# T\n\n```brainfuck\n+++\n```\n")

	require.Len(t, issues, 1)
	assert.Equal(t, "unknown-language", issues[0].Rule)
	assert.Equal(t, model.SeverityInfo, issues[0].Severity)
	assert.Contains(t, issues[0].Message, "brainfuck")
}

func TestFenceRule_SyntaxErrorLine(t *testing.T) {
	// Body line 1 (zero-based) holds the stray brace; fence opens on line 3.
	issues := lintSingle(t, newFenceRule(), "# T\n\n```gradle\nplugins {\n}}\n```\n")

	require.Len(t, issues, 1)
	assert.Equal(t, "fence-syntax", issues[0].Rule)
	assert.Equal(t, model.SeverityError, issues[0].Severity)
	assert.Equal(t, 5, issues[0].Line)
	assert.Contains(t, issues[0].Message, "invalid gradle")
}

func TestFenceRule_UnknownErrorLineFallsBackToFence(t *testing.T) {
	issues := lintSingle(t, newFenceRule(), "# T\n\n```xml\n<a><b></a>\n```\n")

	require.Len(t, issues, 1)
	assert.Equal(t, "fence-syntax", issues[0].Rule)
	assert.Equal(t, 3, issues[0].Line)
}
