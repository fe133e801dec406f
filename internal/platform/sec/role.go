// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec

import "strings"

// # User Roles

// Role represents the authorization level granted to an account.
//
// The vocabulary is closed: every persisted role and every role submitted at
// registration must resolve to one of the constants below via [ParseRole].
type Role string

const (
	// Unrestricted system access
	RoleAdmin Role = "ADMIN"

	// Can manage the catalogue (products, categories) and record sales
	RoleEmployee Role = "EMPLOYEE"

	// Default role for standard registered users
	RoleUser Role = "USER"
)

// AuthorityPrefix is prepended to a role name to form its authority label.
const AuthorityPrefix = "ROLE_"

// DefaultAuthority is the authority reported when an identity resolves no
// concrete role.
const DefaultAuthority = AuthorityPrefix + string(RoleUser)

// ParseRole resolves a free-form role string against the closed vocabulary.
//
// Matching is case-insensitive ("admin" and "Admin" both resolve to
// [RoleAdmin]). Any string outside the vocabulary returns ok = false; callers
// translate that into their own invalid-role error.
func ParseRole(value string) (Role, bool) {
	switch Role(strings.ToUpper(strings.TrimSpace(value))) {
	case RoleAdmin:
		return RoleAdmin, true
	case RoleEmployee:
		return RoleEmployee, true
	case RoleUser:
		return RoleUser, true
	default:
		return "", false
	}
}

// Authority returns the downstream access-control label for the role,
// e.g. ADMIN becomes "ROLE_ADMIN".
func (r Role) Authority() string {
	return AuthorityPrefix + string(r)
}

// # Role Hierarchy

// AtLeast checks if the current role meets or exceeds the required target role.
func (r Role) AtLeast(target Role) bool {
	return r.level() >= target.level()
}

// level maps a role to a numeric hierarchy level for comparison logic.
func (r Role) level() int {

	// Linear scale (10-30) allows for future intermediate roles
	switch r {
	case RoleAdmin:
		return 30
	case RoleEmployee:
		return 20
	case RoleUser:
		return 10
	default:
		return 0
	}
}
