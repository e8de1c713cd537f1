// Package dispatch maps tool calls and resource reads onto the query
// engine. It owns argument validation and decides which failures become
// protocol errors and which become notices in the response body.
package dispatch

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/dgallion1/pdfreader/internal/document"
	"github.com/dgallion1/pdfreader/internal/query"
)

// NoticeMode selects how recoverable conditions (document not loaded,
// excerpt out of range) are reported.
type NoticeMode string

const (
	// NoticeText returns the notice as ordinary response text.
	NoticeText NoticeMode = "text"
	// NoticeError returns the notice text flagged as a tool error.
	NoticeError NoticeMode = "error"
)

// Result is the outcome of a tool call that reached the query engine.
type Result struct {
	Text    string
	IsError bool
	Code    string // document error code for notices, "" on success
}

// ResourceContent is the body of a resource read.
type ResourceContent struct {
	URI      string
	MIMEType string
	Text     string
}

// Options configures a Dispatcher.
type Options struct {
	NoticeMode NoticeMode
	Logger     *slog.Logger
}

type handlerFunc func(args map[string]any) (string, error)

// Dispatcher serves tool calls and resource reads for one document. A nil
// document is valid and means nothing was loaded.
type Dispatcher struct {
	doc      *document.Document
	mode     NoticeMode
	log      *slog.Logger
	handlers map[string]handlerFunc
}

// New creates a Dispatcher over doc.
func New(doc *document.Document, opts Options) *Dispatcher {
	if opts.NoticeMode == "" {
		opts.NoticeMode = NoticeText
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}
	d := &Dispatcher{
		doc:  doc,
		mode: opts.NoticeMode,
		log:  opts.Logger,
	}
	d.handlers = map[string]handlerFunc{
		ToolGetContent: d.getContent,
		ToolSearch:     d.search,
		ToolInfo:       d.info,
		ToolExcerpt:    d.excerpt,
	}
	return d
}

// Tools returns the tool descriptors in advertised order.
func (d *Dispatcher) Tools() []Tool {
	out := make([]Tool, len(catalog))
	copy(out, catalog)
	return out
}

// Resources returns the single document resource. Its name is the loaded
// filename, or a placeholder when nothing is loaded.
func (d *Dispatcher) Resources() []Resource {
	name := placeholderName
	if d.doc != nil {
		name = d.doc.Filename
	}
	return []Resource{{
		URI:         DocumentURI,
		Name:        name,
		Description: resourceDescription,
		MIMEType:    resourceMIMEType,
	}}
}

// CallTool runs the named tool. Unknown tools and malformed arguments fail
// with EUNKNOWNTOOL and EINVALID errors. A missing document or an
// out-of-range excerpt produce a notice Result instead.
func (d *Dispatcher) CallTool(ctx context.Context, name string, args map[string]any) (*Result, error) {
	h, ok := d.handlers[name]
	if !ok {
		return nil, document.Errorf(document.EUNKNOWNTOOL, "Unknown tool: %s", name)
	}
	if args == nil {
		args = map[string]any{}
	}

	text, err := h(args)
	switch code := document.ErrorCode(err); code {
	case "":
		return &Result{Text: text}, nil
	case document.ENOTLOADED, document.EOUTOFRANGE:
		d.log.DebugContext(ctx, "tool notice", "tool", name, "code", code)
		return &Result{
			Text:    document.ErrorMessage(err),
			IsError: d.mode == NoticeError,
			Code:    code,
		}, nil
	default:
		return nil, err
	}
}

// ReadResource returns the full document text for DocumentURI.
func (d *Dispatcher) ReadResource(ctx context.Context, uri string) (*ResourceContent, error) {
	if uri != DocumentURI {
		return nil, document.Errorf(document.EUNKNOWNRESOURCE, "Unknown resource: %s", uri)
	}
	if d.doc == nil {
		return nil, document.Errorf(document.ENOTLOADED, "PDF not loaded")
	}
	d.log.DebugContext(ctx, "resource read", "uri", uri, "characters", d.doc.Len())
	return &ResourceContent{
		URI:      uri,
		MIMEType: resourceMIMEType,
		Text:     d.doc.Text,
	}, nil
}

func (d *Dispatcher) getContent(map[string]any) (string, error) {
	return query.FullContent(d.doc)
}

func (d *Dispatcher) search(args map[string]any) (string, error) {
	q, ok, err := stringArg(args, "query")
	if err != nil {
		return "", err
	}
	if !ok {
		return "", document.Errorf(document.EINVALID, "argument %q is required", "query")
	}
	if q == "" {
		return "", document.Errorf(document.EINVALID, "argument %q must not be empty", "query")
	}
	caseSensitive, err := boolArg(args, "case_sensitive", false)
	if err != nil {
		return "", err
	}

	matches, err := query.Search(d.doc, q, caseSensitive)
	if err != nil {
		return "", err
	}
	return query.FormatSearch(q, matches), nil
}

func (d *Dispatcher) info(map[string]any) (string, error) {
	s, err := query.Info(d.doc)
	if err != nil {
		return "", err
	}
	text, err := query.FormatInfo(s)
	if err != nil {
		return "", fmt.Errorf("format info: %w", err)
	}
	return text, nil
}

func (d *Dispatcher) excerpt(args map[string]any) (string, error) {
	start, ok, err := intArg(args, "start")
	if err != nil {
		return "", err
	}
	if !ok {
		return "", document.Errorf(document.EINVALID, "argument %q is required", "start")
	}
	length, ok, err := intArg(args, "length")
	if err != nil {
		return "", err
	}
	if !ok {
		length = query.DefaultExcerptLength
	}
	if length < 1 {
		return "", document.Errorf(document.EINVALID, "argument %q must be at least 1, got %d", "length", length)
	}

	ex, err := query.GetExcerpt(d.doc, start, length)
	if err != nil {
		return "", err
	}
	return query.FormatExcerpt(ex), nil
}
