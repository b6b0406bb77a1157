package auth

import "slices"

// Identity is the member of staff named by a verified access token.
type Identity struct {
	Username    string
	Name        string
	Authorities []string
}

// HasAnyAuthority reports whether the identity holds at least one of roles.
func (i Identity) HasAnyAuthority(roles ...string) bool {
	for _, r := range roles {
		if slices.Contains(i.Authorities, r) {
			return true
		}
	}
	return false
}
