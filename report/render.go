package report

import (
	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
)

// RenderHTML renders the document's Markdown as a standalone HTML page.
func RenderHTML(doc *Document) []byte {
	p := parser.NewWithExtensions(parser.CommonExtensions | parser.Tables | parser.AutoHeadingIDs)
	node := p.Parse([]byte(doc.Markdown))

	renderer := html.NewRenderer(html.RendererOptions{
		Title: "Customer Acquisition Cost Analysis - 2024",
		Flags: html.CommonFlags | html.CompletePage,
	})
	return markdown.Render(node, renderer)
}
