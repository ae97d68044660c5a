package auth

import "strings"

// Principal is an authenticated identity plus its authority set, valid for
// the duration of one request. Authorities are exactly what the token
// claims — there is no round trip to the user store.
type Principal struct {
	Name        string
	Authorities []string
}

// HasAuthority reports whether the principal carries the given role name.
func (p Principal) HasAuthority(role string) bool {
	for _, a := range p.Authorities {
		if a == role {
			return true
		}
	}
	return false
}

// FromClaims resolves verified claims into a Principal. The roles claim is
// split on commas; an absent claim yields an empty authority set.
func FromClaims(c *Claims) (Principal, error) {
	if c == nil || c.Subject == "" {
		return Principal{}, ErrMissingSubject
	}

	var authorities []string
	if c.Roles != "" {
		authorities = strings.Split(c.Roles, ",")
	}

	return Principal{Name: c.Subject, Authorities: authorities}, nil
}
