package azpim

import "strings"

// Matcher decides whether a requested role reference identifies an eligible
// role. It is an explicit strategy point: the default SubstringMatcher is a
// heuristic and can be swapped for exact-ID matching without touching the
// activation flow.
type Matcher interface {
	Matches(ref RoleReference, role EligibleRole) bool
}

// SubstringMatcher matches when the requested name is a case-insensitive
// substring of the role name or vice versa, and the requested scope relates
// the same way to either the raw scope or its display name. An empty
// requested name or scope therefore matches anything.
type SubstringMatcher struct{}

func (SubstringMatcher) Matches(ref RoleReference, role EligibleRole) bool {
	return containsEither(ref.Name, role.RoleName) &&
		(containsEither(ref.Scope, role.Scope) || containsEither(ref.Scope, role.ScopeName))
}

func containsEither(a, b string) bool {
	la := strings.ToLower(a)
	lb := strings.ToLower(b)
	return strings.Contains(la, lb) || strings.Contains(lb, la)
}

// FindEligibleRole returns the first role in listing order accepted by the
// matcher, or a *NoMatchError carrying the original reference. Ambiguous
// references are not disambiguated further.
func FindEligibleRole(ref RoleReference, roles []EligibleRole, m Matcher) (*EligibleRole, error) {
	for i := range roles {
		if m.Matches(ref, roles[i]) {
			return &roles[i], nil
		}
	}
	return nil, &NoMatchError{Ref: ref}
}
