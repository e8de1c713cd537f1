// Package mcpserver exposes a dispatcher over the Model Context Protocol on
// stdio.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	"github.com/dgallion1/pdfreader/internal/dispatch"
	"github.com/dgallion1/pdfreader/internal/stats"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// Server binds a dispatch.Dispatcher to an MCP server.
type Server struct {
	mcp        *server.MCPServer
	dispatcher *dispatch.Dispatcher
	calls      *stats.Calls
	log        *slog.Logger
}

// NewServer creates the MCP server and registers every tool and resource the
// dispatcher advertises.
func NewServer(d *dispatch.Dispatcher, calls *stats.Calls, log *slog.Logger, name, version string) (*Server, error) {
	s := &Server{
		dispatcher: d,
		calls:      calls,
		log:        log,
	}
	s.mcp = server.NewMCPServer(name, version,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
		server.WithRecovery(),
		server.WithToolHandlerMiddleware(CallLogger(log, calls)),
	)
	if err := s.setupTools(); err != nil {
		return nil, err
	}
	s.setupResources()
	return s, nil
}

// MCP returns the underlying protocol server.
func (s *Server) MCP() *server.MCPServer {
	return s.mcp
}

// Serve reads requests from stdin and writes responses to stdout until the
// input ends or ctx is cancelled.
func (s *Server) Serve(ctx context.Context, stdin io.Reader, stdout io.Writer) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	stdio := server.NewStdioServer(s.mcp)
	stdio.SetErrorLogger(slog.NewLogLogger(s.log.Handler(), slog.LevelError))
	return stdio.Listen(ctx, stdin, stdout)
}

func (s *Server) setupTools() error {
	for _, t := range s.dispatcher.Tools() {
		schema, err := json.Marshal(t.InputSchema)
		if err != nil {
			return fmt.Errorf("marshal schema for %s: %w", t.Name, err)
		}
		s.mcp.AddTool(mcp.NewToolWithRawSchema(t.Name, t.Description, schema), s.handleTool)
	}
	return nil
}

func (s *Server) setupResources() {
	for _, r := range s.dispatcher.Resources() {
		res := mcp.NewResource(r.URI, r.Name,
			mcp.WithResourceDescription(r.Description),
			mcp.WithMIMEType(r.MIMEType),
		)
		s.mcp.AddResource(res, s.handleResource)
	}
}

func (s *Server) handleTool(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	res, err := s.dispatcher.CallTool(ctx, req.Params.Name, req.GetArguments())
	if err != nil {
		return nil, err
	}
	if res.IsError {
		return mcp.NewToolResultError(res.Text), nil
	}
	return mcp.NewToolResultText(res.Text), nil
}

func (s *Server) handleResource(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	content, err := s.dispatcher.ReadResource(ctx, req.Params.URI)
	if err != nil {
		return nil, err
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      content.URI,
			MIMEType: content.MIMEType,
			Text:     content.Text,
		},
	}, nil
}
