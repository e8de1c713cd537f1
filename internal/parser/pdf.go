package parser

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"regexp"
	"strings"

	"github.com/dgallion1/pdfreader/internal/document"
	pdflib "github.com/ledongthuc/pdf"
)

var errEmptyDocument = errors.New("empty document")

var pdfHeader = regexp.MustCompile(`^%PDF-(\d+\.\d+)`)

// PDFExtractor handles PDF files. It tries the Go library first,
// then falls back to pdftotext if enabled and available.
type PDFExtractor struct {
	FallbackPdftotext bool
}

func (p *PDFExtractor) Extract(data []byte) (*document.Extraction, error) {
	if len(data) == 0 {
		return nil, errEmptyDocument
	}

	ex, err := extractPDF(data)
	if err != nil && p.FallbackPdftotext {
		var fbErr error
		ex, fbErr = extractPdftotext(data)
		if fbErr != nil {
			return nil, fmt.Errorf("extract pdf text: %w (fallback: %v)", err, fbErr)
		}
		err = nil
	}
	if err != nil {
		return nil, fmt.Errorf("extract pdf text: %w", err)
	}

	if m := pdfHeader.FindSubmatch(data); m != nil {
		ex.Info["PDFFormatVersion"] = string(m[1])
	}
	return ex, nil
}

func extractPDF(data []byte) (ex *document.Extraction, err error) {
	// The reader panics on some malformed inputs.
	defer func() {
		if r := recover(); r != nil {
			ex, err = nil, fmt.Errorf("pdf reader: %v", r)
		}
	}()

	reader, err := pdflib.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, err
	}

	var buf strings.Builder
	numPages := reader.NumPage()
	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		if buf.Len() > 0 {
			buf.WriteString("\n\n")
		}
		buf.WriteString(text)
	}

	return &document.Extraction{
		Text:      buf.String(),
		PageCount: numPages,
		Info:      pdfInfo(reader.Trailer().Key("Info")),
	}, nil
}

// pdfInfo converts the trailer Info dictionary into plain Go values.
func pdfInfo(dict pdflib.Value) map[string]any {
	info := map[string]any{}
	if dict.Kind() != pdflib.Dict {
		return info
	}
	for _, key := range dict.Keys() {
		v := dict.Key(key)
		switch v.Kind() {
		case pdflib.String:
			info[key] = v.Text()
		case pdflib.Name:
			info[key] = v.Name()
		case pdflib.Integer:
			info[key] = v.Int64()
		case pdflib.Real:
			info[key] = v.Float64()
		case pdflib.Bool:
			info[key] = v.Bool()
		}
	}
	return info
}

func extractPdftotext(data []byte) (*document.Extraction, error) {
	// pdftotext needs a real file.
	tmp, err := os.CreateTemp("", "pdfreader-*.pdf")
	if err != nil {
		return nil, fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return nil, fmt.Errorf("write temp file: %w", err)
	}
	tmp.Close()

	cmd := exec.Command("pdftotext", "-layout", tmpPath, "-")
	out, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("pdftotext: %w", err)
	}

	// pdftotext terminates every page with a form feed.
	pages := strings.Split(strings.TrimSuffix(string(out), "\f"), "\f")
	return &document.Extraction{
		Text:      strings.Join(pages, "\n\n"),
		PageCount: len(pages),
		Info:      map[string]any{},
	}, nil
}
