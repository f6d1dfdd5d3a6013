/*
Package azpim provides a programmatic client for Azure Privileged Identity
Management (PIM) role activation.

# Overview

The package wraps the already-authenticated Azure CLI: every external call
goes through a Runner that shells out to `az`, so there is no credential
handling here at all. On top of that it implements the small amount of logic
PIM activation actually needs:

  - resolving the signed-in user's object ID from an access token
  - listing eligible and currently-activated role assignments
  - matching loose {name, scope} references against the eligible list
  - building and submitting self-activation requests, including the
    group-linked eligibility field

# Client

Create a Client and override its fields where the defaults don't fit:

	pim := azpim.NewClient()
	pim.Runner = &azpim.AzureCLI{Binary: "az"}

	outcome := pim.ActivateRoles(ctx, []azpim.RoleReference{
		{Name: "Owner", Scope: "sandbox"},
	}, "ticket OPS-123", 4)

ActivateRoles never returns an error: per-role problems are collected in
ActivationOutcome.FailedRoles and the batch keeps going. Only the quick-roles
entry point (ActivateQuickRoles) can fail outright, and only for the two
configuration errors ErrNoQuickRoles and ErrNoJustification.

# The central invariant

Eligibility can be granted through a group, in which case the record's own
principal ID is the group's. Activation requests are always submitted with
the user's resolved object ID, plus a link back to the group's eligibility
schedule. See buildActivationRequest.

# Matching

Role matching is a deliberate heuristic: the requested name and scope each
match a candidate case-insensitively as a substring in either direction, and
the first eligible record in listing order wins. It sits behind the Matcher
interface so an exact-ID strategy can replace it without touching the
activation flow.

# Quick roles

A small persisted set of role references ("quick roles") lives in a flat
JSON document, loaded fresh on every activation from the AZPIM_QUICK_ROLES
environment variable, ./.azpim.json, or ~/.azpim.json, in that order. Saves
always target the home file and preserve unrelated top-level keys.
*/
package azpim
