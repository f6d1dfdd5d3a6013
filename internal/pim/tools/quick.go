package tools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/aussiebroadwan/azpim/pkg/azpim"
)

func quickRolesListingTool(name string) mcp.Tool {
	return mcp.NewTool(name,
		mcp.WithDescription("Show the numbered eligible-role listing alongside the currently saved quick roles."),
		mcp.WithReadOnlyHintAnnotation(true),
	)
}

func saveQuickRolesTool() mcp.Tool {
	return mcp.NewTool("save_quick_roles",
		mcp.WithDescription("Save a set of eligible roles, selected by index from the eligible-role listing, as the quick-roles configuration."),
		mcp.WithArray("indices",
			mcp.Required(),
			mcp.Description("Zero-based indices into the eligible-role listing"),
			mcp.Items(map[string]any{"type": "number"}),
		),
		mcp.WithString("description",
			mcp.Description("Optional description for the saved role set"),
		),
		mcp.WithString("defaultJustification",
			mcp.Description("Justification used when activate_quick_roles is called without one"),
		),
	)
}

func (r *Registry) handleListQuickRoles(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	log := r.log(ctx)

	roles, err := r.PIM.ListEligibleRoles(ctx)
	if err != nil {
		log.Error("failed to list eligible roles", "error", err)
		return mcp.NewToolResultError(fmt.Sprintf("Failed to list eligible roles: %v", err)), nil
	}

	cfg, err := r.PIM.Store.Load()
	if err != nil {
		log.Error("failed to load quick roles", "error", err)
		return mcp.NewToolResultError(fmt.Sprintf("Failed to load quick roles: %v", err)), nil
	}

	return mcp.NewToolResultText(renderQuickRolesListing(roles, cfg)), nil
}

func (r *Registry) handleSaveQuickRoles(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	log := r.log(ctx)

	indices, err := req.RequireIntSlice("indices")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Invalid indices argument: %v", err)), nil
	}

	// Indices refer to a fresh listing taken here, so the selection is
	// validated against exactly what Save would persist.
	roles, err := r.PIM.ListEligibleRoles(ctx)
	if err != nil {
		log.Error("failed to list eligible roles", "error", err)
		return mcp.NewToolResultError(fmt.Sprintf("Failed to list eligible roles: %v", err)), nil
	}

	// Validate the full selection before writing anything.
	for _, i := range indices {
		if i < 0 || i >= len(roles) {
			return mcp.NewToolResultError(fmt.Sprintf(
				"Invalid index %d: the eligible-role listing has %d entries", i, len(roles),
			)), nil
		}
	}

	cfg := azpim.QuickRolesConfig{
		Roles:                make([]azpim.RoleReference, 0, len(indices)),
		Description:          req.GetString("description", ""),
		DefaultJustification: req.GetString("defaultJustification", ""),
	}
	for _, i := range indices {
		cfg.Roles = append(cfg.Roles, azpim.RoleReference{
			Name:  roles[i].RoleName,
			Scope: roles[i].Scope,
		})
	}

	if err := r.PIM.Store.Save(cfg); err != nil {
		log.Error("failed to save quick roles", "error", err)
		return mcp.NewToolResultError(fmt.Sprintf("Failed to save quick roles: %v", err)), nil
	}

	log.Info("quick roles saved", "count", len(cfg.Roles))
	return mcp.NewToolResultText(renderSavedQuickRoles(cfg)), nil
}
