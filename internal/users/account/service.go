// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package account implements administrative and self-service views over the
registered user base.

It builds on the auth domain's repository: this package owns no tables of
its own, only read-side use cases (profile lookup, directory listing with
role filtering).
*/
package account

import (
	"context"

	"github.com/taibuivan/stockmanager/internal/platform/apperr"
	"github.com/taibuivan/stockmanager/internal/platform/sec"
	"github.com/taibuivan/stockmanager/internal/users/auth"
	"github.com/taibuivan/stockmanager/pkg/pagination"
)

// Service implements account directory use cases.
type Service struct {
	userRepository auth.UserRepository
}

// NewService constructs a new account [Service].
func NewService(userRepo auth.UserRepository) *Service {
	return &Service{userRepository: userRepo}
}

/*
GetProfile returns the account owned by the given username.

Parameters:
  - context: context.Context
  - username: string

Returns:
  - *auth.User: Hydrated account entity
  - error: apperr.NotFound or retrieval failures
*/
func (service *Service) GetProfile(context context.Context, username string) (*auth.User, error) {
	return service.userRepository.FindByUsername(context, username)
}

/*
ListUsers returns a page of accounts, optionally filtered by role.

Description: The roleFilter is parsed case-insensitively against the closed
vocabulary; an unknown role name is rejected rather than silently matching
nothing.

Parameters:
  - context: context.Context
  - roleFilter: string (empty means no filter)
  - params: pagination.Params

Returns:
  - []auth.User: Page of accounts
  - int: Total matching count
  - error: ValidationError on unknown role, or retrieval failures
*/
func (service *Service) ListUsers(context context.Context, roleFilter string, params pagination.Params) ([]auth.User, int, error) {
	if roleFilter == "" {
		return service.userRepository.List(context, params)
	}

	role, ok := sec.ParseRole(roleFilter)
	if !ok {
		return nil, 0, apperr.ValidationError("Invalid role filter", apperr.FieldError{
			Field:   auth.FieldRole,
			Message: "unknown role " + roleFilter,
		})
	}

	return service.userRepository.ListByRole(context, role, params)
}
