// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec

// Identity is the transient authenticated principal attached to a request.
//
// It is deliberately separate from the persisted user record: downstream
// layers get a username and authority labels, never the credential row.
// An Identity lives for the duration of a single request and is carried
// through the handling pipeline in the request context.
type Identity struct {
	// Username is the unique login name (the token subject).
	Username string

	// Authorities holds the granted access-control labels in resolution
	// order, e.g. ["ROLE_ADMIN"].
	Authorities []string
}

// PrimaryAuthority returns the first non-empty authority, or
// [DefaultAuthority] when none resolved.
func (identity *Identity) PrimaryAuthority() string {
	for _, authority := range identity.Authorities {
		if authority != "" {
			return authority
		}
	}
	return DefaultAuthority
}

// HasRole reports whether the identity carries an authority that meets or
// exceeds the target role.
func (identity *Identity) HasRole(target Role) bool {
	for _, authority := range identity.Authorities {
		role, ok := ParseRole(trimAuthorityPrefix(authority))
		if ok && role.AtLeast(target) {
			return true
		}
	}
	return false
}

// trimAuthorityPrefix strips the "ROLE_" prefix from an authority label.
func trimAuthorityPrefix(authority string) string {
	if len(authority) > len(AuthorityPrefix) && authority[:len(AuthorityPrefix)] == AuthorityPrefix {
		return authority[len(AuthorityPrefix):]
	}
	return authority
}
