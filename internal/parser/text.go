package parser

import (
	"bytes"
	"unicode/utf8"

	"github.com/dgallion1/pdfreader/internal/document"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// TextExtractor handles plain text files. The text is served verbatim.
type TextExtractor struct{}

func (p *TextExtractor) Extract(data []byte) (*document.Extraction, error) {
	data = bytes.TrimPrefix(data, utf8BOM)
	if !utf8.Valid(data) {
		data = bytes.ToValidUTF8(data, []byte("�"))
	}
	return &document.Extraction{
		Text:      string(data),
		PageCount: 1,
		Info:      map[string]any{},
	}, nil
}
