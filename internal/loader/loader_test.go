package loader_test

import (
	"bytes"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/dgallion1/pdfreader/internal/document"
	"github.com/dgallion1/pdfreader/internal/loader"
	"github.com/dgallion1/pdfreader/internal/mock"
	"github.com/dgallion1/pdfreader/internal/parser/parsertest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func TestLoad_PDF(t *testing.T) {
	t.Parallel()

	var logs bytes.Buffer
	path := writeFile(t, "bdFare.pdf", parsertest.BuildPDF("Fares", "Dhaka", "Sylhet"))
	l := &loader.Loader{Logger: slog.New(slog.NewTextHandler(&logs, nil))}

	doc, err := l.Load(path)
	require.NoError(t, err)

	assert.Equal(t, "bdFare.pdf", doc.Filename)
	assert.Equal(t, "pdf", doc.Format)
	assert.Equal(t, 2, doc.PageCount)
	assert.Contains(t, doc.Text, "Dhaka")
	assert.Equal(t, "Fares", doc.Info["Title"])
	assert.NotEmpty(t, doc.Checksum)
	assert.Contains(t, logs.String(), "document loaded")
	assert.Contains(t, logs.String(), "filename=bdFare.pdf")
}

func TestLoad_TextByExtension(t *testing.T) {
	t.Parallel()

	path := writeFile(t, "notes.txt", []byte("The quick brown fox."))
	doc, err := (&loader.Loader{}).Load(path)
	require.NoError(t, err)

	assert.Equal(t, "The quick brown fox.", doc.Text)
	assert.Equal(t, "text", doc.Format)
	assert.Equal(t, 1, doc.PageCount)
}

func TestLoad_ChecksumIsStable(t *testing.T) {
	t.Parallel()

	a := writeFile(t, "a.txt", []byte("same bytes"))
	b := writeFile(t, "b.txt", []byte("same bytes"))
	c := writeFile(t, "c.txt", []byte("other bytes"))

	l := &loader.Loader{}
	docA, err := l.Load(a)
	require.NoError(t, err)
	docB, err := l.Load(b)
	require.NoError(t, err)
	docC, err := l.Load(c)
	require.NoError(t, err)

	assert.Equal(t, docA.Checksum, docB.Checksum)
	assert.NotEqual(t, docA.Checksum, docC.Checksum)
}

func TestLoad_NotFound(t *testing.T) {
	t.Parallel()

	doc, err := (&loader.Loader{}).Load(filepath.Join(t.TempDir(), "missing.pdf"))

	assert.Nil(t, doc)
	assert.Equal(t, document.ENOTFOUND, document.ErrorCode(err))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoad_Directory(t *testing.T) {
	t.Parallel()

	doc, err := (&loader.Loader{}).Load(t.TempDir())

	assert.Nil(t, doc)
	assert.Equal(t, document.ENOTFOUND, document.ErrorCode(err))
}

func TestLoad_ParseError(t *testing.T) {
	t.Parallel()

	path := writeFile(t, "broken.pdf", []byte("not a pdf"))
	doc, err := (&loader.Loader{}).Load(path)

	assert.Nil(t, doc)
	assert.Equal(t, document.EPARSE, document.ErrorCode(err))
}

func TestLoad_TooLarge(t *testing.T) {
	t.Parallel()

	path := writeFile(t, "big.txt", bytes.Repeat([]byte("a"), 64))
	doc, err := (&loader.Loader{MaxBytes: 10}).Load(path)

	assert.Nil(t, doc)
	assert.Equal(t, document.EINVALID, document.ErrorCode(err))
}

func TestLoad_InjectedExtractor(t *testing.T) {
	t.Parallel()

	path := writeFile(t, "doc.pdf", []byte("raw"))
	var got []byte
	l := &loader.Loader{
		Format: "stub",
		Extractor: &mock.Extractor{
			ExtractFn: func(data []byte) (*document.Extraction, error) {
				got = data
				return &document.Extraction{Text: "stub text", PageCount: 7, Info: map[string]any{"k": "v"}}, nil
			},
		},
	}

	doc, err := l.Load(path)
	require.NoError(t, err)

	assert.Equal(t, []byte("raw"), got)
	assert.Equal(t, "stub", doc.Format)
	assert.Equal(t, 7, doc.PageCount)
	assert.Equal(t, "v", doc.Info["k"])
}

func TestLoad_InjectedExtractorFailure(t *testing.T) {
	t.Parallel()

	cause := errors.New("boom")
	path := writeFile(t, "doc.pdf", []byte("raw"))
	l := &loader.Loader{
		Extractor: &mock.Extractor{
			ExtractFn: func([]byte) (*document.Extraction, error) { return nil, cause },
		},
	}

	_, err := l.Load(path)
	assert.Equal(t, document.EPARSE, document.ErrorCode(err))
	assert.ErrorIs(t, err, cause)
}
