// Package loader reads the configured document from disk and turns it into
// an immutable document snapshot. It runs once, before the server starts.
package loader

import (
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"github.com/cespare/xxhash/v2"
	"github.com/dgallion1/pdfreader/internal/document"
	"github.com/dgallion1/pdfreader/internal/parser"
)

// Loader loads a single document with a fixed extraction backend.
type Loader struct {
	// Extractor overrides extension-based backend selection when set.
	Extractor parser.Extractor
	Format    string

	// Options used when Extractor is nil.
	ParserOptions parser.Options

	// MaxBytes rejects larger files when positive.
	MaxBytes int64

	Logger *slog.Logger
}

// Load reads path and extracts its text. It returns an ENOTFOUND error when
// the file cannot be read, EINVALID when it exceeds MaxBytes, and EPARSE
// when extraction fails. The caller decides whether to continue without a
// document.
func (l *Loader) Load(path string) (*document.Document, error) {
	log := l.Logger
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}

	st, err := os.Stat(path)
	if err != nil {
		return nil, document.Wrap(document.ENOTFOUND, err, "document not found at %s", path)
	}
	if st.IsDir() {
		return nil, document.Errorf(document.ENOTFOUND, "document path %s is a directory", path)
	}
	if l.MaxBytes > 0 && st.Size() > l.MaxBytes {
		return nil, document.Errorf(document.EINVALID, "document %s is %d bytes, limit is %d", path, st.Size(), l.MaxBytes)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, document.Wrap(document.ENOTFOUND, err, "read document %s", path)
	}

	ex, format := l.Extractor, l.Format
	if ex == nil {
		ex, format = parser.ForFile(path, l.ParserOptions)
	}

	log.Debug("extracting document", "path", path, "format", format, "bytes", len(data))
	extraction, err := ex.Extract(data)
	if err != nil {
		return nil, document.Wrap(document.EPARSE, err, "extract %s", filepath.Base(path))
	}

	checksum := strconv.FormatUint(xxhash.Sum64(data), 16)
	doc := document.New(filepath.Base(path), format, checksum, extraction)

	log.Info("document loaded",
		"filename", doc.Filename,
		"format", doc.Format,
		"pages", doc.PageCount,
		"characters", doc.Len(),
		"checksum", doc.Checksum,
	)
	return doc, nil
}
