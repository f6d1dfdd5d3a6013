package azpim

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/google/uuid"

	"github.com/aussiebroadwan/azpim/pkg/idx"
)

// DefaultActivationHours is used when the caller passes a non-positive
// duration.
const DefaultActivationHours = 8

// alreadyExistsCode is the ARM error code returned when the activation
// target already holds the assignment. Hitting it means the role is live,
// so it is reclassified as success.
const alreadyExistsCode = "RoleAssignmentExists"

// acceptedStatuses are the request statuses treated as a successful
// submission; anything pending approval still counts, the request landed.
var acceptedStatuses = []string{"Provisioned", "PendingApproval", "Accepted", "ScheduleCreated"}

// The activation request body has exactly two variants: direct eligibility,
// and group-based eligibility which additionally links back to the group's
// eligibility schedule. buildActivationRequest is the only constructor.
type activationRequest struct {
	Properties activationProperties `json:"properties"`
}

type activationProperties struct {
	PrincipalID                     string       `json:"principalId"`
	RoleDefinitionID                string       `json:"roleDefinitionId"`
	RequestType                     string       `json:"requestType"`
	Justification                   string       `json:"justification"`
	ScheduleInfo                    scheduleInfo `json:"scheduleInfo"`
	LinkedRoleEligibilityScheduleID string       `json:"linkedRoleEligibilityScheduleId,omitempty"`
}

type scheduleInfo struct {
	Expiration scheduleExpiration `json:"expiration"`
}

type scheduleExpiration struct {
	Type     string `json:"type"`
	Duration string `json:"duration"`
}

type activationResponse struct {
	ID         string `json:"id"`
	Properties struct {
		Status string `json:"status"`
	} `json:"properties"`
}

// buildActivationRequest shapes a SelfActivate request. The principal is
// always the resolved user object ID; for group-based eligibility the
// record's own principal is the group and must not be submitted.
func buildActivationRequest(role EligibleRole, userObjectID, justification string, hours int) activationRequest {
	if hours <= 0 {
		hours = DefaultActivationHours
	}

	req := activationRequest{
		Properties: activationProperties{
			PrincipalID:      userObjectID,
			RoleDefinitionID: role.RoleDefinitionID,
			RequestType:      "SelfActivate",
			Justification:    justification,
			ScheduleInfo: scheduleInfo{
				Expiration: scheduleExpiration{
					Type:     "AfterDuration",
					Duration: fmt.Sprintf("PT%dH", hours),
				},
			},
		},
	}

	if role.MemberType == MemberTypeGroup {
		req.Properties.LinkedRoleEligibilityScheduleID = role.RoleEligibilityScheduleID
	}

	return req
}

// ActivateRole submits a single activation request for an already-matched
// eligible role. Failures are reported in the result, never as an error:
// a single bad role must not abort a batch.
func (c *Client) ActivateRole(ctx context.Context, role EligibleRole, userObjectID, justification string, hours int) ActivationResult {
	body, err := json.Marshal(buildActivationRequest(role, userObjectID, justification, hours))
	if err != nil {
		return ActivationResult{Message: fmt.Sprintf("encode activation request: %v", err)}
	}

	url := fmt.Sprintf(
		"%s%s/providers/Microsoft.Authorization/roleAssignmentScheduleRequests/%s?api-version=%s",
		c.ManagementURL, role.Scope, uuid.NewString(), apiVersion,
	)

	out, err := c.Runner.Run(ctx,
		"rest", "--method", "PUT", "--url", url,
		"--body", string(body), "--output", "json",
	)
	if err != nil {
		if isAlreadyActivated(err) {
			return ActivationResult{Success: true, Message: "Role is already activated"}
		}
		return ActivationResult{Message: fmt.Sprintf("activation request failed: %v", err)}
	}

	return classifyActivationResponse(role, out)
}

func classifyActivationResponse(role EligibleRole, out []byte) ActivationResult {
	var resp activationResponse
	if err := json.Unmarshal(out, &resp); err != nil {
		// Not JSON; the CLI sometimes prints bare status text.
		for _, status := range acceptedStatuses {
			if strings.Contains(string(out), status) {
				return ActivationResult{Success: true, Message: fmt.Sprintf("Activation submitted for %s (%s)", role.RoleName, status)}
			}
		}
		return ActivationResult{Message: fmt.Sprintf("unexpected activation response: %.200s", out)}
	}

	status := resp.Properties.Status
	if slices.Contains(acceptedStatuses, status) || resp.ID != "" {
		if status == "" {
			status = "Accepted"
		}
		return ActivationResult{Success: true, Message: fmt.Sprintf("Activation submitted for %s (%s)", role.RoleName, status)}
	}

	return ActivationResult{Message: fmt.Sprintf("activation not accepted for %s (status %q)", role.RoleName, status)}
}

func isAlreadyActivated(err error) bool {
	var cmdErr *CommandError
	if errors.As(err, &cmdErr) {
		return strings.Contains(cmdErr.Stderr, alreadyExistsCode)
	}
	return strings.Contains(err.Error(), alreadyExistsCode)
}

// ActivateRoles resolves the user's identity once, lists eligibility once,
// then matches and submits each reference in order. An identity or listing
// failure marks every reference failed with that shared error and performs
// no submissions.
func (c *Client) ActivateRoles(ctx context.Context, refs []RoleReference, justification string, hours int) ActivationOutcome {
	log := c.Logger.With("run_id", idx.New().String())

	outcome := ActivationOutcome{
		ActivatedRoles: []string{},
		FailedRoles:    []RoleFailure{},
	}

	userObjectID, err := c.ResolveObjectID(ctx)
	if err != nil {
		log.Error("identity resolution failed", "error", err)
		return failAll(outcome, refs, fmt.Sprintf("resolve identity: %v", err))
	}

	eligible, err := c.ListEligibleRoles(ctx)
	if err != nil {
		log.Error("eligibility listing failed", "error", err)
		return failAll(outcome, refs, fmt.Sprintf("list eligible roles: %v", err))
	}

	for _, ref := range refs {
		role, err := FindEligibleRole(ref, eligible, c.Matcher)
		if err != nil {
			log.Warn("no eligible role matched", "role", ref.Name, "scope", ref.Scope)
			outcome.FailedRoles = append(outcome.FailedRoles, RoleFailure{Role: ref.Name, Error: err.Error()})
			continue
		}

		res := c.ActivateRole(ctx, *role, userObjectID, justification, hours)
		if res.Success {
			log.Info("role activation submitted", "role", role.RoleName, "scope", role.Scope)
			outcome.ActivatedRoles = append(outcome.ActivatedRoles, role.RoleName)
		} else {
			log.Warn("role activation failed", "role", role.RoleName, "error", res.Message)
			outcome.FailedRoles = append(outcome.FailedRoles, RoleFailure{Role: ref.Name, Error: res.Message})
		}
	}

	outcome.Success = len(outcome.FailedRoles) == 0
	outcome.Message = fmt.Sprintf("Activated %d of %d requested roles", len(outcome.ActivatedRoles), len(refs))
	return outcome
}

func failAll(outcome ActivationOutcome, refs []RoleReference, msg string) ActivationOutcome {
	for _, ref := range refs {
		outcome.FailedRoles = append(outcome.FailedRoles, RoleFailure{Role: ref.Name, Error: msg})
	}
	outcome.Success = len(outcome.FailedRoles) == 0
	outcome.Message = msg
	return outcome
}

// ActivateQuickRoles loads the quick-roles configuration fresh (edits take
// effect without restart) and runs the batch activator over it. This is the
// one entry point that can fail outright, and only for configuration
// problems: ErrNoQuickRoles and ErrNoJustification.
func (c *Client) ActivateQuickRoles(ctx context.Context, justification string, hours int) (ActivationOutcome, error) {
	cfg, err := c.Store.Load()
	if err != nil {
		return ActivationOutcome{}, err
	}
	if cfg == nil || len(cfg.Roles) == 0 {
		return ActivationOutcome{}, ErrNoQuickRoles
	}

	if justification == "" {
		justification = cfg.DefaultJustification
	}
	if justification == "" {
		return ActivationOutcome{}, ErrNoJustification
	}

	return c.ActivateRoles(ctx, cfg.Roles, justification, hours), nil
}
