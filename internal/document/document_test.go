package document_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/dgallion1/pdfreader/internal/document"
	"github.com/stretchr/testify/assert"
)

func TestNew_CountsCodePoints(t *testing.T) {
	t.Parallel()

	doc := document.New("a.pdf", "pdf", "abc", &document.Extraction{Text: "héllo wörld", PageCount: 2})

	assert.Equal(t, 11, doc.Len())
	assert.Equal(t, "héllo", doc.Slice(0, 5))
	assert.Equal(t, 2, doc.PageCount)
	assert.NotNil(t, doc.Info)
}

func TestNew_ClampsNegativePages(t *testing.T) {
	t.Parallel()

	doc := document.New("a.pdf", "pdf", "", &document.Extraction{Text: "x", PageCount: -3})

	assert.Equal(t, 0, doc.PageCount)
}

func TestSlice_ClipsToBounds(t *testing.T) {
	t.Parallel()

	doc := document.New("a.txt", "text", "", &document.Extraction{Text: "abcdef"})

	assert.Equal(t, "abcdef", doc.Slice(-5, 100))
	assert.Equal(t, "", doc.Slice(4, 2))
	assert.Equal(t, "ef", doc.Slice(4, 10))
}

func TestErrorCode(t *testing.T) {
	t.Parallel()

	err := document.Errorf(document.ENOTLOADED, "no document")
	wrapped := fmt.Errorf("call tool: %w", err)

	assert.Equal(t, document.ENOTLOADED, document.ErrorCode(wrapped))
	assert.Equal(t, "no document", document.ErrorMessage(wrapped))
	assert.Empty(t, document.ErrorCode(errors.New("plain")))
	assert.Empty(t, document.ErrorCode(nil))
	assert.Empty(t, document.ErrorMessage(nil))
}

func TestWrap_Unwraps(t *testing.T) {
	t.Parallel()

	cause := errors.New("bad xref")
	err := document.Wrap(document.EPARSE, cause, "extract %s", "a.pdf")

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "parse_error: extract a.pdf: bad xref", err.Error())
}
