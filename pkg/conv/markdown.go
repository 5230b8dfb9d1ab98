package conv

import (
	"strings"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
	"github.com/inbucket/html2text"
)

var (
	extensions = parser.CommonExtensions | parser.NoEmptyLineBeforeBlock
	htmlFlags  = html.CommonFlags
)

// MarkdownToText flattens model markdown output into plain text suitable
// for a terminal or a log record.
func MarkdownToText(md []byte) string {
	p := parser.NewWithExtensions(extensions)
	renderer := html.NewRenderer(html.RendererOptions{Flags: htmlFlags})
	rendered := markdown.Render(p.Parse(md), renderer)

	text, err := html2text.FromString(string(rendered), html2text.Options{TextOnly: false})
	if err != nil {
		// Fall back to the raw markdown rather than losing the answer.
		return strings.TrimSpace(string(md))
	}
	return strings.TrimSpace(text)
}
