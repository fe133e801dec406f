// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"

	"github.com/taibuivan/stockmanager/internal/platform/sec"
	"github.com/taibuivan/stockmanager/pkg/pagination"
)

// # User Data Access

// UserRepository defines the data access contract for user accounts.
type UserRepository interface {

	/*
		FindByID returns the account with the given ID.

		Parameters:
		  - context: context.Context
		  - id: string

		Returns:
		  - *User: Hydrated entity
		  - error: Database retrieval failures
	*/
	FindByID(context context.Context, id string) (*User, error)

	/*
		FindByUsername returns the account with the given username.

		Parameters:
		  - context: context.Context
		  - username: string

		Returns:
		  - *User: Hydrated entity
		  - error: Database retrieval failures
	*/
	FindByUsername(context context.Context, username string) (*User, error)

	/*
		FindByEmail returns the account with the given email.

		Parameters:
		  - context: context.Context
		  - email: string

		Returns:
		  - *User: Hydrated entity
		  - error: Database retrieval failures
	*/
	FindByEmail(context context.Context, email string) (*User, error)

	/*
		ExistsByEmail reports whether an account already claims the email.

		Parameters:
		  - context: context.Context
		  - email: string

		Returns:
		  - bool: True if the email is taken
		  - error: Database retrieval failures
	*/
	ExistsByEmail(context context.Context, email string) (bool, error)

	/*
		Create persists a brand-new user account to the storage.

		The users table carries unique constraints on username and email;
		a violation surfaces as a Conflict error, which makes concurrent
		registrations of the same email resolve to exactly one winner.

		Parameters:
		  - context: context.Context
		  - user: *User

		Returns:
		  - error: Conflict on duplicate identity, or persistence failures
	*/
	Create(context context.Context, user *User) error

	/*
		List returns a page of accounts ordered by creation time.

		Parameters:
		  - context: context.Context
		  - params: pagination.Params

		Returns:
		  - []User: Page of accounts
		  - int: Total account count
		  - error: Database retrieval failures
	*/
	List(context context.Context, params pagination.Params) ([]User, int, error)

	/*
		ListByRole returns a page of accounts holding the given role.

		Parameters:
		  - context: context.Context
		  - role: sec.Role
		  - params: pagination.Params

		Returns:
		  - []User: Page of accounts with the role
		  - int: Total matching count
		  - error: Database retrieval failures
	*/
	ListByRole(context context.Context, role sec.Role, params pagination.Params) ([]User, int, error)
}
