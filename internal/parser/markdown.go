package parser

import (
	"bytes"
	"strings"

	"github.com/dgallion1/pdfreader/internal/document"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// MarkdownExtractor handles Markdown files using goldmark. Markup is
// dropped; every top-level block becomes one paragraph.
type MarkdownExtractor struct{}

func (p *MarkdownExtractor) Extract(data []byte) (*document.Extraction, error) {
	md := goldmark.New()
	doc := md.Parser().Parse(text.NewReader(data))

	info := map[string]any{}
	var paras []string
	headings := 0

	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		if h, ok := n.(*ast.Heading); ok {
			title := strings.TrimSpace(string(h.Text(data)))
			headings++
			if _, seen := info["Title"]; !seen && h.Level == 1 && title != "" {
				info["Title"] = title
			}
			paras = append(paras, title)
			continue
		}
		paras = append(paras, extractText(n, data))
	}
	info["Headings"] = headings

	return &document.Extraction{
		Text:      joinParagraphs(paras),
		PageCount: 1,
		Info:      info,
	}, nil
}

// extractText gets the text content of a goldmark AST node. Leaf blocks
// (code blocks) contribute their raw lines; everything else is the
// concatenation of its inline text.
func extractText(n ast.Node, src []byte) string {
	var buf bytes.Buffer
	if !n.HasChildren() {
		if n.Type() == ast.TypeBlock {
			lines := n.Lines()
			for i := 0; i < lines.Len(); i++ {
				line := lines.At(i)
				buf.Write(line.Value(src))
			}
		}
		return strings.TrimSpace(buf.String())
	}
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		switch t := c.(type) {
		case *ast.Text:
			buf.Write(t.Value(src))
			if t.HardLineBreak() || t.SoftLineBreak() {
				buf.WriteByte('\n')
			}
		case *ast.String:
			buf.Write(t.Value)
		default:
			if c.Type() == ast.TypeBlock && buf.Len() > 0 {
				buf.WriteByte('\n')
			}
			buf.WriteString(extractText(c, src))
		}
	}
	return strings.TrimSpace(buf.String())
}
