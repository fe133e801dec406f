// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/stockmanager/internal/platform/sec"
)

/*
TestParseRole exercises the closed vocabulary: case-insensitive matches
resolve, anything else is rejected.
*/
func TestParseRole(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  sec.Role
		ok    bool
	}{
		{"exact_admin", "ADMIN", sec.RoleAdmin, true},
		{"lowercase_admin", "admin", sec.RoleAdmin, true},
		{"mixed_case_user", "UsEr", sec.RoleUser, true},
		{"employee_with_spaces", "  employee ", sec.RoleEmployee, true},
		{"outside_vocabulary", "manager", "", false},
		{"empty", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			role, ok := sec.ParseRole(tt.input)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, role)
		})
	}
}

/*
TestRole_Authority verifies the role-to-authority translation.
*/
func TestRole_Authority(t *testing.T) {
	assert.Equal(t, "ROLE_ADMIN", sec.RoleAdmin.Authority())
	assert.Equal(t, "ROLE_USER", sec.RoleUser.Authority())
}

/*
TestRole_AtLeast checks the linear role hierarchy.
*/
func TestRole_AtLeast(t *testing.T) {
	assert.True(t, sec.RoleAdmin.AtLeast(sec.RoleEmployee))
	assert.True(t, sec.RoleEmployee.AtLeast(sec.RoleUser))
	assert.False(t, sec.RoleUser.AtLeast(sec.RoleEmployee))
	assert.False(t, sec.Role("unknown").AtLeast(sec.RoleUser))
}

/*
TestIdentity_PrimaryAuthority verifies the primary-role selection used in the
login response: first non-empty authority, with ROLE_USER as the fallback.
*/
func TestIdentity_PrimaryAuthority(t *testing.T) {
	tests := []struct {
		name        string
		authorities []string
		want        string
	}{
		{"single_authority", []string{"ROLE_ADMIN"}, "ROLE_ADMIN"},
		{"skips_empty", []string{"", "ROLE_EMPLOYEE"}, "ROLE_EMPLOYEE"},
		{"no_authorities", nil, "ROLE_USER"},
		{"all_empty", []string{"", ""}, "ROLE_USER"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			identity := &sec.Identity{Username: "alice", Authorities: tt.authorities}
			assert.Equal(t, tt.want, identity.PrimaryAuthority())
		})
	}
}

/*
TestIdentity_HasRole verifies hierarchy-aware authority checks.
*/
func TestIdentity_HasRole(t *testing.T) {
	admin := &sec.Identity{Username: "root", Authorities: []string{"ROLE_ADMIN"}}
	assert.True(t, admin.HasRole(sec.RoleEmployee))

	user := &sec.Identity{Username: "alice", Authorities: []string{"ROLE_USER"}}
	assert.False(t, user.HasRole(sec.RoleEmployee))

	anonymous := &sec.Identity{Username: "ghost"}
	assert.False(t, anonymous.HasRole(sec.RoleUser))
}
