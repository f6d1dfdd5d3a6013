package tools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/aussiebroadwan/azpim/pkg/azpim"
)

func listEligibleRolesTool() mcp.Tool {
	return mcp.NewTool("list_eligible_roles",
		mcp.WithDescription("List the Azure PIM roles the signed-in user is eligible to activate."),
		mcp.WithReadOnlyHintAnnotation(true),
	)
}

func listActiveRolesTool() mcp.Tool {
	return mcp.NewTool("list_active_roles",
		mcp.WithDescription("List the user's currently activated (time-bounded) PIM role assignments."),
		mcp.WithReadOnlyHintAnnotation(true),
	)
}

type eligibleRolesResponse struct {
	Success bool                 `json:"success"`
	Roles   []azpim.EligibleRole `json:"roles"`
	Message string               `json:"message"`
}

type activeRolesResponse struct {
	Success bool               `json:"success"`
	Roles   []azpim.ActiveRole `json:"roles"`
	Message string             `json:"message"`
}

func (r *Registry) handleListEligibleRoles(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	log := r.log(ctx)

	roles, err := r.PIM.ListEligibleRoles(ctx)
	if err != nil {
		log.Error("failed to list eligible roles", "error", err)
		return mcp.NewToolResultError(fmt.Sprintf("Failed to list eligible roles: %v", err)), nil
	}

	return jsonResult(eligibleRolesResponse{
		Success: true,
		Roles:   roles,
		Message: fmt.Sprintf("Found %d eligible roles", len(roles)),
	})
}

func (r *Registry) handleListActiveRoles(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	log := r.log(ctx)

	roles, err := r.PIM.ListActiveRoles(ctx)
	if err != nil {
		log.Error("failed to list active roles", "error", err)
		return mcp.NewToolResultError(fmt.Sprintf("Failed to list active roles: %v", err)), nil
	}

	return jsonResult(activeRolesResponse{
		Success: true,
		Roles:   roles,
		Message: fmt.Sprintf("Found %d active roles", len(roles)),
	})
}
