// Package query implements the read-only operations served over the
// loaded document. Every function is pure: it never mutates the document
// and returns identical results for identical arguments.
package query

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/dgallion1/pdfreader/internal/document"
)

const (
	// ContextRadius is the number of characters kept on each side of a
	// search match.
	ContextRadius = 50

	// DefaultExcerptLength is used when an excerpt length is not given.
	DefaultExcerptLength = 1000
)

// Match is a single search hit.
type Match struct {
	Position int    // code point offset of the match start
	Context  string // surrounding text, clipped to the document
	Preview  string // Context with newlines flattened and trimmed
}

// Summary describes the loaded document.
type Summary struct {
	Filename   string
	Pages      int
	Characters int
	Words      int
	Info       map[string]any
}

// Excerpt is a range of document text. End is exclusive.
type Excerpt struct {
	Start int
	End   int
	Text  string
}

// rangeMessage is the notice for an excerpt start outside [0, last].
func rangeMessage(last int) string {
	if last < 0 {
		return "Invalid start position. The document contains no text."
	}
	return "Invalid start position. Must be between 0 and " + strconv.Itoa(last)
}

var errNotLoaded = document.Errorf(document.ENOTLOADED, "PDF not loaded. Please ensure the PDF file exists at the specified path.")

// FullContent returns the document text under a header naming the file.
func FullContent(doc *document.Document) (string, error) {
	if doc == nil {
		return "", errNotLoaded
	}
	return "# PDF Content: " + doc.Filename + "\n\n" + doc.Text, nil
}

// Search finds every occurrence of q, including overlapping ones, in
// ascending position order. Case-insensitive matching folds each code
// point with unicode.ToLower so offsets stay aligned with the unfolded text.
func Search(doc *document.Document, q string, caseSensitive bool) ([]Match, error) {
	if doc == nil {
		return nil, errNotLoaded
	}
	if q == "" {
		return nil, document.Errorf(document.EINVALID, "query must not be empty")
	}

	text := doc.Runes()
	needle := []rune(q)
	if !caseSensitive {
		text = lower(text)
		needle = lower(needle)
	}

	var matches []Match
	for pos := indexRunes(text, needle, 0); pos >= 0; pos = indexRunes(text, needle, pos+1) {
		ctx := doc.Slice(pos-ContextRadius, pos+len(needle)+ContextRadius)
		matches = append(matches, Match{
			Position: pos,
			Context:  ctx,
			Preview:  strings.TrimSpace(strings.ReplaceAll(ctx, "\n", " ")),
		})
	}
	return matches, nil
}

// Info summarizes the document.
func Info(doc *document.Document) (Summary, error) {
	if doc == nil {
		return Summary{}, errNotLoaded
	}
	return Summary{
		Filename:   doc.Filename,
		Pages:      doc.PageCount,
		Characters: doc.Len(),
		Words:      len(strings.Fields(doc.Text)),
		Info:       doc.Info,
	}, nil
}

// GetExcerpt returns up to length characters starting at start. The start
// must lie inside the document; an excerpt running past the end is
// shortened rather than rejected.
func GetExcerpt(doc *document.Document, start, length int) (Excerpt, error) {
	if doc == nil {
		return Excerpt{}, errNotLoaded
	}
	if length < 1 {
		return Excerpt{}, document.Errorf(document.EINVALID, "length must be at least 1, got %d", length)
	}
	n := doc.Len()
	if start < 0 || start >= n {
		return Excerpt{}, document.Errorf(document.EOUTOFRANGE, "%s", rangeMessage(n-1))
	}
	end := start + length
	if end > n || end < start {
		end = n
	}
	return Excerpt{Start: start, End: end, Text: doc.Slice(start, end)}, nil
}

func lower(rs []rune) []rune {
	out := make([]rune, len(rs))
	for i, r := range rs {
		out[i] = unicode.ToLower(r)
	}
	return out
}

// indexRunes returns the first index >= from at which needle occurs in
// haystack, or -1.
func indexRunes(haystack, needle []rune, from int) int {
	last := len(haystack) - len(needle)
	for i := from; i <= last; i++ {
		if haystack[i] != needle[0] {
			continue
		}
		j := 1
		for j < len(needle) && haystack[i+j] == needle[j] {
			j++
		}
		if j == len(needle) {
			return i
		}
	}
	return -1
}
