package azpim

// Membership types reported by the eligibility API.
const (
	MemberTypeDirect = "Direct"
	MemberTypeGroup  = "Group"
)

// RoleReference is a user's loose, human-typed identifier for a role. Name
// and scope are matched against the eligible-role listing with the substring
// heuristic in match.go, so neither needs to be exact or unique.
type RoleReference struct {
	Name  string `json:"name"`
	Scope string `json:"scope"`
}

// EligibleRole is one normalized row from the role eligibility listing.
//
// PrincipalID is whatever principal the eligibility was granted to. When
// MemberType is "Group" that is the group's object ID, not the user's, and
// it must never be used as the principal of an activation request.
type EligibleRole struct {
	ID                        string `json:"id"`
	RoleDefinitionID          string `json:"roleDefinitionId"`
	RoleName                  string `json:"roleName"`
	Scope                     string `json:"scope"`
	ScopeName                 string `json:"scopeName"`
	PrincipalID               string `json:"principalId"`
	PrincipalType             string `json:"principalType"`
	MemberType                string `json:"memberType"`
	Status                    string `json:"status"`
	RoleEligibilityScheduleID string `json:"roleEligibilityScheduleId,omitempty"`
}

// ActiveRole is a currently-elevated, time-bounded assignment. Permanent
// (non-PIM) assignments are filtered out by the lister.
type ActiveRole struct {
	EligibleRole

	StartDateTime string `json:"startDateTime,omitempty"`
	EndDateTime   string `json:"endDateTime,omitempty"`
}

// QuickRolesConfig is a persisted set of role references that can be
// activated in one call.
type QuickRolesConfig struct {
	Roles                []RoleReference `json:"roles"`
	Description          string          `json:"description,omitempty"`
	DefaultJustification string          `json:"defaultJustification,omitempty"`
}

// ActivationResult is the outcome of a single activation submission.
type ActivationResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// RoleFailure records one requested role that could not be activated.
type RoleFailure struct {
	Role  string `json:"role"`
	Error string `json:"error"`
}

// ActivationOutcome is the result of a batch activation. Every requested
// reference lands in exactly one of ActivatedRoles or FailedRoles; Success
// is true iff FailedRoles is empty.
type ActivationOutcome struct {
	Success        bool          `json:"success"`
	ActivatedRoles []string      `json:"activatedRoles"`
	FailedRoles    []RoleFailure `json:"failedRoles"`
	Message        string        `json:"message"`
}
