package tools

import (
	"context"
	"errors"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/aussiebroadwan/azpim/pkg/azpim"
)

func activateQuickRolesTool() mcp.Tool {
	return mcp.NewTool("activate_quick_roles",
		mcp.WithDescription("Activate the saved quick-roles set. The configuration is re-read on every call, so edits take effect without a restart."),
		mcp.WithString("justification",
			mcp.Description("Audit justification; falls back to the configured default when omitted"),
		),
		mcp.WithNumber("duration",
			mcp.Description("Activation duration in hours (default 8)"),
		),
		mcp.WithIdempotentHintAnnotation(true),
	)
}

func activatePIMRolesTool() mcp.Tool {
	return mcp.NewTool("activate_pim_roles",
		mcp.WithDescription("Activate PIM roles by name. Each name is matched against the eligible-role listing; the first match at any scope wins."),
		mcp.WithArray("roles",
			mcp.Required(),
			mcp.Description("Role names to activate"),
			mcp.Items(map[string]any{"type": "string"}),
		),
		mcp.WithString("justification",
			mcp.Required(),
			mcp.Description("Audit justification for the activation"),
		),
		mcp.WithNumber("duration",
			mcp.Description("Activation duration in hours (default 8)"),
		),
		mcp.WithIdempotentHintAnnotation(true),
	)
}

func (r *Registry) handleActivateQuickRoles(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	log := r.log(ctx)

	justification := req.GetString("justification", "")
	hours := req.GetInt("duration", 0)

	outcome, err := r.PIM.ActivateQuickRoles(ctx, justification, hours)
	switch {
	case errors.Is(err, azpim.ErrNoQuickRoles):
		return mcp.NewToolResultError("No quick roles configured. Save some with save_quick_roles first."), nil
	case errors.Is(err, azpim.ErrNoJustification):
		return mcp.NewToolResultError("A justification is required: pass one or save a defaultJustification."), nil
	case err != nil:
		log.Error("quick-role activation failed", "error", err)
		return mcp.NewToolResultError(fmt.Sprintf("Failed to activate quick roles: %v", err)), nil
	}

	return outcomeResult(outcome)
}

func (r *Registry) handleActivatePIMRoles(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	names, err := req.RequireStringSlice("roles")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Invalid roles argument: %v", err)), nil
	}
	if len(names) == 0 {
		return mcp.NewToolResultError("At least one role name is required"), nil
	}

	justification, err := req.RequireString("justification")
	if err != nil || justification == "" {
		return mcp.NewToolResultError("A justification is required"), nil
	}

	hours := req.GetInt("duration", 0)

	refs := make([]azpim.RoleReference, 0, len(names))
	for _, name := range names {
		refs = append(refs, azpim.RoleReference{Name: name})
	}

	outcome := r.PIM.ActivateRoles(ctx, refs, justification, hours)
	return outcomeResult(outcome)
}

// outcomeResult renders a batch outcome, marking partial or total failure
// as error content while keeping the full structured result visible.
func outcomeResult(outcome azpim.ActivationOutcome) (*mcp.CallToolResult, error) {
	res, err := jsonResult(outcome)
	if err != nil {
		return res, err
	}
	res.IsError = !outcome.Success
	return res, nil
}
