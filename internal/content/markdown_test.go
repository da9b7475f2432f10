package content

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMarkdown_Render(t *testing.T) {
	md := NewMarkdown()

	got := string(md.Render("I study **finance**.\n\n- one\n- two\n"))

	assert.Contains(t, got, "<strong>finance</strong>")
	assert.Contains(t, got, "<li>one</li>")
}

func TestMarkdown_EscapesRawHTML(t *testing.T) {
	got := string(NewMarkdown().Render("hi <script>alert(1)</script>"))

	assert.NotContains(t, got, "<script>")
}

func TestMarkdown_GFMTable(t *testing.T) {
	got := string(NewMarkdown().Render("| a | b |\n|---|---|\n| 1 | 2 |\n"))

	assert.Contains(t, got, "<table>")
}

func TestMarkdown_HighlightsCode(t *testing.T) {
	got := string(NewMarkdown().Render("```go\nfunc main() {}\n```\n"))

	assert.Contains(t, got, "<pre")
	assert.Contains(t, got, "func")
}
