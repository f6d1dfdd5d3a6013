package tools

import (
	"context"
	"log/slog"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/aussiebroadwan/azpim/pkg/idx"
	"github.com/aussiebroadwan/azpim/pkg/slogx"
)

// LoggingMiddleware attaches a call-scoped logger into the handler context
// and logs every tool call with its duration and outcome.
func LoggingMiddleware(base *slog.Logger) server.ToolHandlerMiddleware {
	return func(next server.ToolHandlerFunc) server.ToolHandlerFunc {
		return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			start := time.Now()

			ctx = slogx.WithContext(ctx, base.With("tool", req.Params.Name))
			ctx = slogx.WithCallID(ctx, idx.New().String())
			logger := slogx.FromContext(ctx)

			res, err := next(ctx, req)

			logger.Info("tool_call",
				"duration_ms", time.Since(start).Milliseconds(),
				"is_error", err != nil || (res != nil && res.IsError),
			)

			return res, err
		}
	}
}
