package tools

import (
	"fmt"
	"strings"

	"github.com/aussiebroadwan/azpim/pkg/azpim"
)

// renderQuickRolesListing formats the numbered eligible listing followed by
// whatever quick-roles configuration is currently saved. The indices shown
// here are the ones save_quick_roles accepts.
func renderQuickRolesListing(roles []azpim.EligibleRole, cfg *azpim.QuickRolesConfig) string {
	var b strings.Builder

	if len(roles) == 0 {
		b.WriteString("No eligible roles found.\n")
	} else {
		b.WriteString("Eligible roles:\n")
		for i, role := range roles {
			fmt.Fprintf(&b, "  [%d] %s @ %s", i, role.RoleName, role.ScopeName)
			if role.MemberType == azpim.MemberTypeGroup {
				b.WriteString(" (via group)")
			}
			b.WriteByte('\n')
		}
	}

	b.WriteByte('\n')

	if cfg == nil || len(cfg.Roles) == 0 {
		b.WriteString("No quick roles saved.\n")
		return b.String()
	}

	if cfg.Description != "" {
		fmt.Fprintf(&b, "Saved quick roles (%s):\n", cfg.Description)
	} else {
		b.WriteString("Saved quick roles:\n")
	}
	for _, ref := range cfg.Roles {
		if ref.Scope != "" {
			fmt.Fprintf(&b, "  - %s @ %s\n", ref.Name, ref.Scope)
		} else {
			fmt.Fprintf(&b, "  - %s\n", ref.Name)
		}
	}
	if cfg.DefaultJustification != "" {
		fmt.Fprintf(&b, "Default justification: %s\n", cfg.DefaultJustification)
	}

	return b.String()
}

func renderSavedQuickRoles(cfg azpim.QuickRolesConfig) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Saved %d quick roles:\n", len(cfg.Roles))
	for _, ref := range cfg.Roles {
		fmt.Fprintf(&b, "  - %s @ %s\n", ref.Name, ref.Scope)
	}
	if cfg.Description != "" {
		fmt.Fprintf(&b, "Description: %s\n", cfg.Description)
	}
	if cfg.DefaultJustification != "" {
		fmt.Fprintf(&b, "Default justification: %s\n", cfg.DefaultJustification)
	}

	return b.String()
}
