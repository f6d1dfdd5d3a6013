// Package tools exposes PIM operations as MCP tools. Each handler returns a
// structured result; domain failures become marked error content, never a
// protocol-level error.
package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/aussiebroadwan/azpim/pkg/azpim"
	"github.com/aussiebroadwan/azpim/pkg/slogx"
)

// Registry holds the dependencies shared by every tool handler and knows
// how to register the tool surface on an MCP server.
type Registry struct {
	PIM    *azpim.Client
	Logger *slog.Logger
}

// Apply registers all tools. list_quick_roles and get_quick_roles are two
// names for the same listing, kept for compatibility with existing clients.
func (r *Registry) Apply(s *server.MCPServer) {
	s.AddTool(listEligibleRolesTool(), r.handleListEligibleRoles)
	s.AddTool(listActiveRolesTool(), r.handleListActiveRoles)
	s.AddTool(quickRolesListingTool("list_quick_roles"), r.handleListQuickRoles)
	s.AddTool(quickRolesListingTool("get_quick_roles"), r.handleListQuickRoles)
	s.AddTool(saveQuickRolesTool(), r.handleSaveQuickRoles)
	s.AddTool(activateQuickRolesTool(), r.handleActivateQuickRoles)
	s.AddTool(activatePIMRolesTool(), r.handleActivatePIMRoles)
}

// log returns the call-scoped logger installed by the middleware, falling
// back to the registry's own logger for direct callers.
func (r *Registry) log(ctx context.Context) *slog.Logger {
	if l, ok := slogx.Lookup(ctx); ok {
		return l
	}
	if r.Logger != nil {
		return r.Logger
	}
	return slog.Default()
}

// jsonResult renders a payload as an indented JSON text result.
func jsonResult(payload any) (*mcp.CallToolResult, error) {
	out, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("encode result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(out)), nil
}
