// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Business logic for the authentication domain.

Architecture:

  - Service: Orchestrates credential checks, registration, and token issuance.
  - Repository: Abstracted interface for Postgres (Users).
  - Security: Leverages bcrypt hashing and HMAC-signed JWTs from platform/sec.
*/
package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/taibuivan/stockmanager/internal/platform/apperr"
	"github.com/taibuivan/stockmanager/internal/platform/sec"
	"github.com/taibuivan/stockmanager/internal/platform/validate"
	"github.com/taibuivan/stockmanager/pkg/uuid"
)

// # Contracts & Types

// TokenIssuer defines the contract for producing signed access tokens.
type TokenIssuer interface {
	// Issue creates a signed JWT for the subject carrying the given roles.
	Issue(subject string, roles []string, now time.Time) (string, error)

	// Expiration returns how long issued tokens remain valid.
	Expiration() time.Duration
}

// Service implements user authentication use cases.
//
// # Review Process
//
// This service is critical for security. Any changes to hashing, registration,
// or login logic must be reviewed carefully.
type Service struct {
	userRepository UserRepository
	tokenIssuer    TokenIssuer
}

// NewService constructs a new auth [Service] with necessary dependencies.
func NewService(userRepo UserRepository, issuer TokenIssuer) *Service {
	return &Service{
		userRepository: userRepo,
		tokenIssuer:    issuer,
	}
}

// # Authentication Flow

// LoginInput defines credentials for an authentication attempt.
type LoginInput struct {
	Username string
	Password string
}

// LoginResult represents a successfully issued access credential.
type LoginResult struct {
	Token     string        `json:"token"`
	TokenType string        `json:"token_type"`
	ExpiresIn time.Duration `json:"expires_in"`
	Username  string        `json:"username"`
	Role      string        `json:"role"`
}

/*
Authenticate verifies a username/password pair against the credential store.

Description: Looks up the account by username and performs a constant-time
password comparison. A missing account and a wrong password produce the
exact same Unauthorized error, so callers cannot probe which usernames exist.

Parameters:
  - context: context.Context
  - username: string
  - password: string

Returns:
  - *User: The verified account
  - error: apperr.Unauthorized on any credential failure
*/
func (service *Service) Authenticate(context context.Context, username, password string) (*User, error) {

	// Look up the account. Generic message to prevent enumeration.
	user, err := service.userRepository.FindByUsername(context, username)
	if err != nil {
		return nil, apperr.Unauthorized(InvalidCredentialsMessage)
	}

	// Verify password hash using constant-time comparison in bcrypt
	if !sec.CheckPasswordHash(password, user.PasswordHash) {
		return nil, apperr.Unauthorized(InvalidCredentialsMessage)
	}

	return user, nil
}

/*
Login validates user credentials and issues a signed access token.

Description: Verifies identity via [Service.Authenticate] and mints a JWT
whose subject is the username and whose roles claim carries the account's
prefixed authorities.

Parameters:
  - context: context.Context
  - input: LoginInput

Returns:
  - *LoginResult: Transport-ready credential payload
  - err: ValidationError on empty credentials, Unauthorized or internal
    failures
*/
func (service *Service) Login(context context.Context, input LoginInput) (*LoginResult, error) {

	// Reject empty credentials before touching the store, so the service
	// holds the contract on its own even when the handler's validation is
	// bypassed.
	validator := &validate.Validator{}
	validator.Required(FieldUsername, input.Username)
	validator.Required(FieldPassword, input.Password)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	user, err := service.Authenticate(context, input.Username, input.Password)
	if err != nil {
		return nil, err
	}

	// Mint the short-lived access token
	token, err := service.tokenIssuer.Issue(user.Username, user.Authorities(), time.Now())
	if err != nil {
		return nil, fmt.Errorf("auth_service_token_issue_failed: %w", err)
	}

	return &LoginResult{
		Token:     token,
		TokenType: TokenType,
		ExpiresIn: service.tokenIssuer.Expiration() / time.Second,
		Username:  user.Username,
		Role:      user.Identity().PrimaryAuthority(),
	}, nil
}

// # Registration Flow

// RegisterInput holds the data required to enroll a new operator.
type RegisterInput struct {
	Username string
	Email    string
	Password string
	Role     string // Case-insensitive role name, e.g. "admin" or "USER".
}

/*
Register validates, hashes, and persists a brand new user account.

Description: Enrolls a new operator. The role is parsed case-insensitively
against the closed vocabulary; anything outside it is rejected up front.
The email uniqueness pre-check gives a friendly error in the common case,
while the unique constraint in [UserRepository.Create] settles races.

Parameters:
  - context: context.Context
  - input: RegisterInput

Returns:
  - *User: Created entity
  - err: Conflict (if email exists), ValidationError (unknown role),
    or storage errors
*/
func (service *Service) Register(context context.Context, input RegisterInput) (*User, error) {

	// Verify email uniqueness. Return a client-safe Conflict err.
	taken, err := service.userRepository.ExistsByEmail(context, input.Email)
	if err != nil {
		return nil, fmt.Errorf("auth_service_email_check_failed: %w", err)
	}
	if taken {
		return nil, apperr.Conflict("Email is already registered")
	}

	// Resolve the requested role against the closed vocabulary
	role, ok := sec.ParseRole(input.Role)
	if !ok {
		return nil, apperr.ValidationError("Invalid role", apperr.FieldError{
			Field:   FieldRole,
			Message: fmt.Sprintf("unknown role %q", input.Role),
		})
	}

	// Prevent storing plain-text passwords. Default cost is used for balance
	// between security and CPU utilization during registration spikes.
	hashedPassword, err := sec.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("auth_service_hash_failed: %w", err)
	}

	// Construct the new User entity. Time-sortable ID to prevent PG index fragmentation.
	user := &User{
		ID:           uuid.New(),
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: hashedPassword,
		Role:         role,
	}

	// Persist the user to the database. A constraint violation here means a
	// concurrent registration won the race; it surfaces as the same Conflict.
	if err := service.userRepository.Create(context, user); err != nil {
		return nil, err
	}

	return user, nil
}

// # Identity Resolution

/*
ResolveIdentity loads the live identity for a verified token subject.

Description: Called by the authentication filter after signature checks
succeed. Resolving against the store rather than the token means role
changes and account deletions take effect immediately.

Parameters:
  - context: context.Context
  - username: string (the token subject)

Returns:
  - *sec.Identity: The transient request principal
  - error: apperr.NotFound when the subject no longer exists
*/
func (service *Service) ResolveIdentity(context context.Context, username string) (*sec.Identity, error) {
	user, err := service.userRepository.FindByUsername(context, username)
	if err != nil {
		return nil, err
	}
	return user.Identity(), nil
}
