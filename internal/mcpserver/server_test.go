package mcpserver_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/dgallion1/pdfreader/internal/dispatch"
	"github.com/dgallion1/pdfreader/internal/document"
	"github.com/dgallion1/pdfreader/internal/mcpserver"
	"github.com/dgallion1/pdfreader/internal/stats"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newServer(t *testing.T, doc *document.Document, mode dispatch.NoticeMode) (*mcpserver.Server, *stats.Calls, *bytes.Buffer) {
	t.Helper()
	var logs bytes.Buffer
	log := slog.New(slog.NewJSONHandler(&logs, nil))
	calls := stats.NewCalls(time.Hour)
	d := dispatch.New(doc, dispatch.Options{NoticeMode: mode, Logger: log})
	srv, err := mcpserver.NewServer(d, calls, log, "pdf-reader-server", "1.0.0")
	require.NoError(t, err)
	return srv, calls, &logs
}

func fareDoc() *document.Document {
	return document.New("bdFare.pdf", "pdf", "", &document.Extraction{
		Text:      "The quick brown fox. The fox jumps.",
		PageCount: 1,
	})
}

// call sends one JSON-RPC request and decodes the response into a generic map.
func call(t *testing.T, srv *mcpserver.Server, method string, params any) map[string]any {
	t.Helper()
	req := map[string]any{"jsonrpc": "2.0", "id": 1, "method": method}
	if params != nil {
		req["params"] = params
	}
	raw, err := json.Marshal(req)
	require.NoError(t, err)

	resp := srv.MCP().HandleMessage(context.Background(), raw)
	require.NotNil(t, resp)
	out, err := json.Marshal(resp)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(out, &decoded))
	return decoded
}

func result(t *testing.T, resp map[string]any) map[string]any {
	t.Helper()
	require.Nil(t, resp["error"], "unexpected error response: %v", resp["error"])
	res, ok := resp["result"].(map[string]any)
	require.True(t, ok, "missing result in %v", resp)
	return res
}

func toolText(t *testing.T, res map[string]any) string {
	t.Helper()
	content, ok := res["content"].([]any)
	require.True(t, ok)
	require.Len(t, content, 1)
	item := content[0].(map[string]any)
	assert.Equal(t, "text", item["type"])
	return item["text"].(string)
}

func TestInitialize(t *testing.T) {
	t.Parallel()

	srv, _, _ := newServer(t, fareDoc(), dispatch.NoticeText)
	res := result(t, call(t, srv, "initialize", map[string]any{
		"protocolVersion": "2024-11-05",
		"capabilities":    map[string]any{},
		"clientInfo":      map[string]any{"name": "test", "version": "0.0.1"},
	}))

	info := res["serverInfo"].(map[string]any)
	assert.Equal(t, "pdf-reader-server", info["name"])
	assert.Equal(t, "1.0.0", info["version"])

	caps := res["capabilities"].(map[string]any)
	assert.Contains(t, caps, "tools")
	assert.Contains(t, caps, "resources")
}

func TestToolsList(t *testing.T) {
	t.Parallel()

	srv, _, _ := newServer(t, nil, dispatch.NoticeText)
	res := result(t, call(t, srv, "tools/list", nil))

	tools := res["tools"].([]any)
	require.Len(t, tools, 4)

	byName := map[string]map[string]any{}
	for _, raw := range tools {
		tool := raw.(map[string]any)
		byName[tool["name"].(string)] = tool
	}
	require.Contains(t, byName, "get_pdf_content")
	require.Contains(t, byName, "search_pdf")
	require.Contains(t, byName, "get_pdf_info")
	require.Contains(t, byName, "get_pdf_excerpt")

	schema := byName["get_pdf_excerpt"]["inputSchema"].(map[string]any)
	assert.Equal(t, "object", schema["type"])
	assert.Equal(t, []any{"start"}, schema["required"])
	length := schema["properties"].(map[string]any)["length"].(map[string]any)
	assert.Equal(t, float64(1000), length["default"])
}

func TestToolsCall_Search(t *testing.T) {
	t.Parallel()

	srv, calls, logs := newServer(t, fareDoc(), dispatch.NoticeText)
	res := result(t, call(t, srv, "tools/call", map[string]any{
		"name":      "search_pdf",
		"arguments": map[string]any{"query": "fox"},
	}))

	text := toolText(t, res)
	assert.True(t, strings.HasPrefix(text, "# Search Results for \"fox\"\n\nFound 2 matches:"))
	assert.NotEqual(t, true, res["isError"])

	assert.Equal(t, 1, calls.Snapshot().Count)
	assert.Contains(t, logs.String(), `"msg":"tool call"`)
	assert.Contains(t, logs.String(), `"tool":"search_pdf"`)
	assert.Contains(t, logs.String(), `"call_id":"`)
}

func TestToolsCall_Excerpt(t *testing.T) {
	t.Parallel()

	srv, _, _ := newServer(t, fareDoc(), dispatch.NoticeText)
	res := result(t, call(t, srv, "tools/call", map[string]any{
		"name":      "get_pdf_excerpt",
		"arguments": map[string]any{"start": 4, "length": 5},
	}))
	assert.Equal(t, "# PDF Excerpt (4-9)\n\nquick", toolText(t, res))
}

func TestToolsCall_NotLoadedNotice(t *testing.T) {
	t.Parallel()

	srv, _, _ := newServer(t, nil, dispatch.NoticeText)
	res := result(t, call(t, srv, "tools/call", map[string]any{"name": "get_pdf_content"}))
	assert.Equal(t, "PDF not loaded. Please ensure the PDF file exists at the specified path.", toolText(t, res))
	assert.NotEqual(t, true, res["isError"])
}

func TestToolsCall_NotLoadedErrorMode(t *testing.T) {
	t.Parallel()

	srv, calls, _ := newServer(t, nil, dispatch.NoticeError)
	res := result(t, call(t, srv, "tools/call", map[string]any{"name": "get_pdf_info"}))
	assert.Equal(t, "PDF not loaded. Please ensure the PDF file exists at the specified path.", toolText(t, res))
	assert.Equal(t, true, res["isError"])
	assert.Equal(t, 1, calls.Snapshot().Errors)
}

func TestToolsCall_InvalidArgumentsIsProtocolError(t *testing.T) {
	t.Parallel()

	srv, calls, _ := newServer(t, fareDoc(), dispatch.NoticeText)
	resp := call(t, srv, "tools/call", map[string]any{
		"name":      "get_pdf_excerpt",
		"arguments": map[string]any{"start": "ten"},
	})

	rpcErr, ok := resp["error"].(map[string]any)
	require.True(t, ok, "expected error response, got %v", resp)
	assert.Contains(t, rpcErr["message"], document.EINVALID)
	assert.Equal(t, 1, calls.Snapshot().Errors)
}

func TestToolsCall_UnknownTool(t *testing.T) {
	t.Parallel()

	srv, _, _ := newServer(t, fareDoc(), dispatch.NoticeText)
	resp := call(t, srv, "tools/call", map[string]any{"name": "delete_pdf"})
	assert.NotNil(t, resp["error"])
}

func TestResourcesList(t *testing.T) {
	t.Parallel()

	srv, _, _ := newServer(t, fareDoc(), dispatch.NoticeText)
	res := result(t, call(t, srv, "resources/list", nil))

	resources := res["resources"].([]any)
	require.Len(t, resources, 1)
	r := resources[0].(map[string]any)
	assert.Equal(t, "pdf://document", r["uri"])
	assert.Equal(t, "bdFare.pdf", r["name"])
	assert.Equal(t, "The loaded PDF document content", r["description"])
	assert.Equal(t, "text/plain", r["mimeType"])
}

func TestResourcesRead(t *testing.T) {
	t.Parallel()

	srv, _, _ := newServer(t, fareDoc(), dispatch.NoticeText)
	res := result(t, call(t, srv, "resources/read", map[string]any{"uri": "pdf://document"}))

	contents := res["contents"].([]any)
	require.Len(t, contents, 1)
	c := contents[0].(map[string]any)
	assert.Equal(t, "pdf://document", c["uri"])
	assert.Equal(t, "text/plain", c["mimeType"])
	assert.Equal(t, "The quick brown fox. The fox jumps.", c["text"])
}

func TestResourcesRead_NotLoaded(t *testing.T) {
	t.Parallel()

	srv, _, _ := newServer(t, nil, dispatch.NoticeText)
	resp := call(t, srv, "resources/read", map[string]any{"uri": "pdf://document"})
	assert.NotNil(t, resp["error"])
}

func TestResourcesRead_UnknownURI(t *testing.T) {
	t.Parallel()

	srv, _, _ := newServer(t, fareDoc(), dispatch.NoticeText)
	resp := call(t, srv, "resources/read", map[string]any{"uri": "pdf://other"})
	assert.NotNil(t, resp["error"])
}

func TestServe_EndsOnEOF(t *testing.T) {
	t.Parallel()

	srv, _, _ := newServer(t, fareDoc(), dispatch.NoticeText)
	in := strings.NewReader(`{"jsonrpc":"2.0","id":7,"method":"ping"}` + "\n")
	var out bytes.Buffer

	err := srv.Serve(context.Background(), in, &out)
	require.NoError(t, err)
	assert.Contains(t, out.String(), `"id":7`)
}
