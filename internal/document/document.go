// Package document holds the loaded document snapshot and the error
// taxonomy shared by the rest of the server.
package document

// Extraction is the raw output of a text extraction backend.
type Extraction struct {
	Text      string
	PageCount int
	Info      map[string]any
}

// Document is an immutable snapshot of a loaded document. A nil *Document
// means no document is loaded. Offsets and lengths are counted in Unicode
// code points, not bytes.
type Document struct {
	Text      string
	PageCount int
	Filename  string
	Format    string         // extraction backend, e.g. "pdf"
	Checksum  string         // xxhash64 of the source bytes, hex
	Info      map[string]any // backend metadata, passed through verbatim

	runes []rune
}

// New builds a Document from an extraction result.
func New(filename, format, checksum string, ex *Extraction) *Document {
	info := ex.Info
	if info == nil {
		info = map[string]any{}
	}
	pages := ex.PageCount
	if pages < 0 {
		pages = 0
	}
	return &Document{
		Text:      ex.Text,
		PageCount: pages,
		Filename:  filename,
		Format:    format,
		Checksum:  checksum,
		Info:      info,
		runes:     []rune(ex.Text),
	}
}

// Len returns the number of characters in the document text.
func (d *Document) Len() int {
	return len(d.runes)
}

// Runes returns the document text as code points. Callers must not modify
// the returned slice.
func (d *Document) Runes() []rune {
	return d.runes
}

// Slice returns the text between code point offsets start and end, clipped
// to the document bounds.
func (d *Document) Slice(start, end int) string {
	if start < 0 {
		start = 0
	}
	if end > len(d.runes) {
		end = len(d.runes)
	}
	if start >= end {
		return ""
	}
	return string(d.runes[start:end])
}
