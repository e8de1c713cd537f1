package mock

import (
	"github.com/dgallion1/pdfreader/internal/document"
	"github.com/dgallion1/pdfreader/internal/parser"
)

var _ parser.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of parser.Extractor.
type Extractor struct {
	ExtractFn func(data []byte) (*document.Extraction, error)
}

func (e *Extractor) Extract(data []byte) (*document.Extraction, error) {
	return e.ExtractFn(data)
}
