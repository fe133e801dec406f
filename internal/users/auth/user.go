// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package auth implements the user identity and access management layer.

It defines the core domain entity (User) and the logic for credential
verification, account registration, and bearer-token issuance.

# Architecture

This layer is the "Truth" of the system. Entities defined here have no external
dependencies and encapsulate all business rules related to user identity.
*/
package auth

import (
	"time"

	"github.com/taibuivan/stockmanager/internal/platform/sec"
)

// # Domain Entities

// User represents a registered operator of the stock manager.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // Explicitly omitted from JSON for security.
	Role         sec.Role  `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Authorities returns the access-control labels granted to this user.
// A single stored role maps to a single prefixed authority.
func (user *User) Authorities() []string {
	return []string{user.Role.Authority()}
}

// Identity converts the persisted record into the transient request
// principal carried through the middleware pipeline.
func (user *User) Identity() *sec.Identity {
	return &sec.Identity{
		Username:    user.Username,
		Authorities: user.Authorities(),
	}
}

// # Field Identifiers

// Global field names for validation and identity mapping in the authentication domain.
const (
	FieldUsername = "username"
	FieldEmail    = "email"
	FieldPassword = "password"
	FieldRole     = "role"
	FieldToken    = "token"
	FieldMessage  = "message"
)
