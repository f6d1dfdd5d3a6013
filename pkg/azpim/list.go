package azpim

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

// assignmentTypeActivated marks a PIM-activated assignment instance.
// Anything else (notably "Assigned") is a permanent assignment and is not
// reported as an active PIM role.
const assignmentTypeActivated = "Activated"

// Wire shapes for the ARM schedule-instance listing endpoints. Field names
// follow the 2020-10-01 roleEligibilityScheduleInstances /
// roleAssignmentScheduleInstances payloads.
type armInstanceList struct {
	Value []armInstance `json:"value"`
}

type armInstance struct {
	ID         string                `json:"id"`
	Name       string                `json:"name"`
	Properties armInstanceProperties `json:"properties"`
}

type armInstanceProperties struct {
	PrincipalID               string                 `json:"principalId"`
	PrincipalType             string                 `json:"principalType"`
	RoleDefinitionID          string                 `json:"roleDefinitionId"`
	Scope                     string                 `json:"scope"`
	MemberType                string                 `json:"memberType"`
	Status                    string                 `json:"status"`
	AssignmentType            string                 `json:"assignmentType"`
	RoleEligibilityScheduleID string                 `json:"roleEligibilityScheduleId"`
	StartDateTime             string                 `json:"startDateTime"`
	EndDateTime               string                 `json:"endDateTime"`
	ExpandedProperties        *armExpandedProperties `json:"expandedProperties"`
}

type armExpandedProperties struct {
	Principal      armExpandedRef `json:"principal"`
	RoleDefinition armExpandedRef `json:"roleDefinition"`
	Scope          armExpandedRef `json:"scope"`
}

type armExpandedRef struct {
	ID          string `json:"id"`
	DisplayName string `json:"displayName"`
	Type        string `json:"type"`
}

// ListEligibleRoles returns the roles the signed-in user is eligible to
// activate, normalized into EligibleRole records.
func (c *Client) ListEligibleRoles(ctx context.Context) ([]EligibleRole, error) {
	instances, err := c.listScheduleInstances(ctx, "roleEligibilityScheduleInstances")
	if err != nil {
		return nil, err
	}

	roles := make([]EligibleRole, 0, len(instances))
	for _, inst := range instances {
		roles = append(roles, eligibleFromInstance(inst))
	}
	return roles, nil
}

// ListActiveRoles returns the user's currently-activated, time-bounded
// assignments. Permanent assignments returned by the same endpoint are
// discarded.
func (c *Client) ListActiveRoles(ctx context.Context) ([]ActiveRole, error) {
	instances, err := c.listScheduleInstances(ctx, "roleAssignmentScheduleInstances")
	if err != nil {
		return nil, err
	}

	roles := make([]ActiveRole, 0, len(instances))
	for _, inst := range instances {
		if inst.Properties.AssignmentType != assignmentTypeActivated {
			continue
		}
		roles = append(roles, ActiveRole{
			EligibleRole:  eligibleFromInstance(inst),
			StartDateTime: inst.Properties.StartDateTime,
			EndDateTime:   inst.Properties.EndDateTime,
		})
	}
	return roles, nil
}

// listScheduleInstances issues the asTarget()-filtered GET shared by both
// listers and decodes the instance envelope.
func (c *Client) listScheduleInstances(ctx context.Context, resource string) ([]armInstance, error) {
	url := fmt.Sprintf(
		"%s/providers/Microsoft.Authorization/%s?api-version=%s&$filter=asTarget()",
		c.ManagementURL, resource, apiVersion,
	)

	out, err := c.Runner.Run(ctx, "rest", "--method", "GET", "--url", url, "--output", "json")
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", resource, err)
	}

	var list armInstanceList
	if err := json.Unmarshal(out, &list); err != nil {
		return nil, fmt.Errorf("decode %s response: %w", resource, err)
	}

	return list.Value, nil
}

func eligibleFromInstance(inst armInstance) EligibleRole {
	p := inst.Properties
	return EligibleRole{
		ID:                        inst.ID,
		RoleDefinitionID:          p.RoleDefinitionID,
		RoleName:                  roleDisplayName(p),
		Scope:                     p.Scope,
		ScopeName:                 scopeDisplayName(p),
		PrincipalID:               p.PrincipalID,
		PrincipalType:             p.PrincipalType,
		MemberType:                p.MemberType,
		Status:                    p.Status,
		RoleEligibilityScheduleID: p.RoleEligibilityScheduleID,
	}
}

func roleDisplayName(p armInstanceProperties) string {
	if p.ExpandedProperties != nil && p.ExpandedProperties.RoleDefinition.DisplayName != "" {
		return p.ExpandedProperties.RoleDefinition.DisplayName
	}
	return lastPathSegment(p.RoleDefinitionID)
}

func scopeDisplayName(p armInstanceProperties) string {
	if p.ExpandedProperties != nil && p.ExpandedProperties.Scope.DisplayName != "" {
		return p.ExpandedProperties.Scope.DisplayName
	}
	if seg := lastPathSegment(p.Scope); seg != "" {
		return seg
	}
	return p.Scope
}

// lastPathSegment returns the final non-empty segment of a slash-separated
// resource ID, or the input unchanged when it has no slashes.
func lastPathSegment(s string) string {
	trimmed := strings.TrimSuffix(s, "/")
	i := strings.LastIndex(trimmed, "/")
	if i < 0 {
		return trimmed
	}
	return trimmed[i+1:]
}
