package parser

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/dgallion1/pdfreader/internal/document"
	"github.com/fumiama/go-docx"
)

// DOCXExtractor handles .docx files. Each paragraph becomes one block of
// text; the first level-1 heading is reported as the title.
type DOCXExtractor struct{}

func (p *DOCXExtractor) Extract(data []byte) (*document.Extraction, error) {
	if len(data) == 0 {
		return nil, errEmptyDocument
	}

	doc, err := docx.Parse(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("parse docx: %w", err)
	}

	info := map[string]any{}
	var paras []string
	headings := 0
	for _, item := range doc.Document.Body.Items {
		para, ok := item.(*docx.Paragraph)
		if !ok {
			continue
		}
		text := docxParagraphText(para)
		if text == "" {
			continue
		}
		if level := docxHeadingLevel(para); level > 0 {
			headings++
			if _, seen := info["Title"]; !seen && level == 1 {
				info["Title"] = text
			}
		}
		paras = append(paras, text)
	}
	info["Headings"] = headings

	return &document.Extraction{
		Text:      joinParagraphs(paras),
		PageCount: 1,
		Info:      info,
	}, nil
}

// docxHeadingLevel maps "Heading1" / "heading 1" style ids to 1..6.
func docxHeadingLevel(para *docx.Paragraph) int {
	if para.Properties == nil || para.Properties.Style == nil {
		return 0
	}
	style := strings.ToLower(strings.ReplaceAll(para.Properties.Style.Val, " ", ""))
	if !strings.HasPrefix(style, "heading") || len(style) != len("heading")+1 {
		return 0
	}
	level := int(style[len(style)-1] - '0')
	if level < 1 || level > 6 {
		return 0
	}
	return level
}

func docxParagraphText(para *docx.Paragraph) string {
	var buf strings.Builder
	for _, child := range para.Children {
		run, ok := child.(*docx.Run)
		if !ok {
			continue
		}
		for _, rc := range run.Children {
			if t, ok := rc.(*docx.Text); ok {
				buf.WriteString(t.Text)
			}
		}
	}
	return strings.TrimSpace(buf.String())
}
