package parser

import (
	"strings"
	"testing"

	"github.com/dgallion1/pdfreader/internal/parser/parsertest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPDFExtractor_PagesAndInfo(t *testing.T) {
	t.Parallel()

	data := parsertest.BuildPDF("Fare Table", "Hello", "Second")
	p := &PDFExtractor{}

	ex, err := p.Extract(data)
	require.NoError(t, err)

	assert.Equal(t, 2, ex.PageCount)
	assert.Contains(t, ex.Text, "Hello")
	assert.Contains(t, ex.Text, "Second")
	assert.Less(t, strings.Index(ex.Text, "Hello"), strings.Index(ex.Text, "Second"))
	assert.Equal(t, "Fare Table", ex.Info["Title"])
	assert.Equal(t, "parsertest", ex.Info["Producer"])
	assert.Equal(t, "1.4", ex.Info["PDFFormatVersion"])
}

func TestPDFExtractor_EmptyInput(t *testing.T) {
	t.Parallel()

	p := &PDFExtractor{FallbackPdftotext: true}
	_, err := p.Extract(nil)
	assert.ErrorIs(t, err, errEmptyDocument)
}

func TestPDFExtractor_Garbage(t *testing.T) {
	t.Parallel()

	p := &PDFExtractor{}
	_, err := p.Extract([]byte("this is not a pdf at all"))
	assert.Error(t, err)
}
