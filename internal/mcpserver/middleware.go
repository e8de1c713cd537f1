package mcpserver

import (
	"context"
	"log/slog"
	"time"

	"github.com/dgallion1/pdfreader/internal/stats"
	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// CallLogger logs every tool call and records its latency in calls.
func CallLogger(log *slog.Logger, calls *stats.Calls) server.ToolHandlerMiddleware {
	return func(next server.ToolHandlerFunc) server.ToolHandlerFunc {
		return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			start := time.Now()
			id := uuid.NewString()

			res, err := next(ctx, req)

			elapsed := time.Since(start)
			failed := err != nil || (res != nil && res.IsError)
			if calls != nil {
				calls.Record(elapsed, failed)
			}

			attrs := []any{
				"tool", req.Params.Name,
				"call_id", id,
				"duration_ms", elapsed.Milliseconds(),
				"is_error", failed,
			}
			if err != nil {
				log.WarnContext(ctx, "tool call", append(attrs, "error", err)...)
			} else {
				log.InfoContext(ctx, "tool call", attrs...)
			}
			return res, err
		}
	}
}
