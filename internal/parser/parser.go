package parser

import (
	"path/filepath"
	"strings"

	"github.com/dgallion1/pdfreader/internal/document"
)

// Extractor converts raw document bytes into plain text plus metadata.
type Extractor interface {
	Extract(data []byte) (*document.Extraction, error)
}

// Options tunes the extractors returned by ForFile.
type Options struct {
	// FallbackPdftotext shells out to pdftotext when the Go PDF reader fails.
	FallbackPdftotext bool
}

// Format names reported on the loaded document.
const (
	FormatPDF      = "pdf"
	FormatText     = "text"
	FormatMarkdown = "markdown"
	FormatHTML     = "html"
	FormatDOCX     = "docx"
	FormatCSV      = "csv"
)

// ForFile returns the extractor and format name for a filename. Unknown
// extensions are treated as PDF.
func ForFile(filename string, opts Options) (Extractor, string) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".txt", ".text":
		return &TextExtractor{}, FormatText
	case ".md", ".markdown":
		return &MarkdownExtractor{}, FormatMarkdown
	case ".csv":
		return &CSVExtractor{}, FormatCSV
	case ".html", ".htm":
		return &HTMLExtractor{}, FormatHTML
	case ".docx":
		return &DOCXExtractor{}, FormatDOCX
	default:
		return &PDFExtractor{FallbackPdftotext: opts.FallbackPdftotext}, FormatPDF
	}
}

// joinParagraphs joins non-empty trimmed paragraphs with a blank line.
func joinParagraphs(paras []string) string {
	out := make([]string, 0, len(paras))
	for _, p := range paras {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, "\n\n")
}
