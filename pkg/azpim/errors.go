package azpim

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrMalformedToken reports an access token that isn't a decodable JWT.
	ErrMalformedToken = errors.New("azpim: access token is not a decodable JWT")

	// ErrMissingObjectID reports a token without an oid claim.
	ErrMissingObjectID = errors.New("azpim: access token has no oid claim")

	// ErrNoQuickRoles is returned by ActivateQuickRoles when no quick-roles
	// configuration exists in the environment or on disk.
	ErrNoQuickRoles = errors.New("azpim: no quick roles configured")

	// ErrNoJustification is returned by ActivateQuickRoles when neither the
	// caller nor the saved configuration provides a justification.
	ErrNoJustification = errors.New("azpim: no justification provided and no default configured")
)

// CommandError reports a failed Azure CLI invocation, carrying the captured
// stderr so API error codes (e.g. RoleAssignmentExists) stay inspectable.
type CommandError struct {
	Args   []string
	Stderr string
	Err    error
}

func (e *CommandError) Error() string {
	msg := fmt.Sprintf("az %s: %v", strings.Join(e.Args, " "), e.Err)
	if e.Stderr != "" {
		msg += ": " + e.Stderr
	}
	return msg
}

func (e *CommandError) Unwrap() error { return e.Err }

// NoMatchError reports a role reference that matched no eligible role.
type NoMatchError struct {
	Ref RoleReference
}

func (e *NoMatchError) Error() string {
	if e.Ref.Scope == "" {
		return fmt.Sprintf("no eligible role matches %q", e.Ref.Name)
	}
	return fmt.Sprintf("no eligible role matches %q at scope %q", e.Ref.Name, e.Ref.Scope)
}
