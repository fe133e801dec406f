// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/stockmanager/internal/platform/apperr"
	"github.com/taibuivan/stockmanager/internal/platform/sec"
	"github.com/taibuivan/stockmanager/internal/users/auth"
	"github.com/taibuivan/stockmanager/pkg/pagination"
)

// # Test Doubles

// memoryUserRepository is an in-memory UserRepository for service tests.
type memoryUserRepository struct {
	users map[string]*auth.User // keyed by username
}

func newMemoryUserRepository() *memoryUserRepository {
	return &memoryUserRepository{users: make(map[string]*auth.User)}
}

func (repository *memoryUserRepository) FindByID(_ context.Context, id string) (*auth.User, error) {
	for _, user := range repository.users {
		if user.ID == id {
			return user, nil
		}
	}
	return nil, apperr.NotFound("User")
}

func (repository *memoryUserRepository) FindByUsername(_ context.Context, username string) (*auth.User, error) {
	user, found := repository.users[username]
	if !found {
		return nil, apperr.NotFound("User not found with this username")
	}
	return user, nil
}

func (repository *memoryUserRepository) FindByEmail(_ context.Context, email string) (*auth.User, error) {
	for _, user := range repository.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, apperr.NotFound("User not found with this email")
}

func (repository *memoryUserRepository) ExistsByEmail(_ context.Context, email string) (bool, error) {
	for _, user := range repository.users {
		if user.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (repository *memoryUserRepository) Create(_ context.Context, user *auth.User) error {
	for _, existing := range repository.users {
		if existing.Username == user.Username || existing.Email == user.Email {
			return apperr.Conflict("Email is already registered")
		}
	}
	repository.users[user.Username] = user
	return nil
}

func (repository *memoryUserRepository) List(_ context.Context, _ pagination.Params) ([]auth.User, int, error) {
	users := make([]auth.User, 0, len(repository.users))
	for _, user := range repository.users {
		users = append(users, *user)
	}
	return users, len(users), nil
}

func (repository *memoryUserRepository) ListByRole(_ context.Context, role sec.Role, _ pagination.Params) ([]auth.User, int, error) {
	users := make([]auth.User, 0)
	for _, user := range repository.users {
		if user.Role == role {
			users = append(users, *user)
		}
	}
	return users, len(users), nil
}

const testSecret = "a-string-secret-at-least-256-bits-long"

func newTestService(t *testing.T) (*auth.Service, *memoryUserRepository) {
	t.Helper()

	tokenService, err := sec.NewTokenService(testSecret, 15*time.Minute, "stockmanager")
	require.NoError(t, err)

	repository := newMemoryUserRepository()
	return auth.NewService(repository, tokenService), repository
}

// # Registration

/*
TestService_Register_Then_Login verifies the full enrollment round trip:
a registered account can authenticate and receives a token whose claims
carry the prefixed authority.
*/
func TestService_Register_Then_Login(t *testing.T) {
	service, _ := newTestService(t)
	ctx := context.Background()

	// 1. Enroll a new account with a lowercase role name
	user, err := service.Register(ctx, auth.RegisterInput{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "s3cret-pass",
		Role:     "user",
	})
	require.NoError(t, err)
	assert.Equal(t, sec.RoleUser, user.Role)
	assert.NotEqual(t, "s3cret-pass", user.PasswordHash)

	// 2. Authenticate with the same credentials
	result, err := service.Login(ctx, auth.LoginInput{
		Username: "alice",
		Password: "s3cret-pass",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, result.Token)
	assert.Equal(t, "alice", result.Username)
	assert.Equal(t, "ROLE_USER", result.Role)
}

/*
TestService_Register_UnknownRole verifies the closed role vocabulary:
anything outside it is rejected with a validation error regardless of case.
*/
func TestService_Register_UnknownRole(t *testing.T) {
	service, _ := newTestService(t)
	ctx := context.Background()

	_, err := service.Register(ctx, auth.RegisterInput{
		Username: "bob",
		Email:    "bob@example.com",
		Password: "s3cret-pass",
		Role:     "manager",
	})

	require.Error(t, err)
	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, "VALIDATION_ERROR", appError.Code)
}

/*
TestService_Register_DuplicateEmail verifies that a second registration
with a taken email is rejected with a Conflict.
*/
func TestService_Register_DuplicateEmail(t *testing.T) {
	service, _ := newTestService(t)
	ctx := context.Background()

	_, err := service.Register(ctx, auth.RegisterInput{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "s3cret-pass",
		Role:     "user",
	})
	require.NoError(t, err)

	_, err = service.Register(ctx, auth.RegisterInput{
		Username: "alice2",
		Email:    "alice@example.com",
		Password: "another-pass",
		Role:     "admin",
	})

	require.Error(t, err)
	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, "CONFLICT", appError.Code)
}

// # Authentication

/*
TestService_Login_InvalidCredentials verifies that an unknown username and
a wrong password are indistinguishable: same code, same message.
*/
func TestService_Login_InvalidCredentials(t *testing.T) {
	service, _ := newTestService(t)
	ctx := context.Background()

	_, err := service.Register(ctx, auth.RegisterInput{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "s3cret-pass",
		Role:     "user",
	})
	require.NoError(t, err)

	_, unknownUserErr := service.Login(ctx, auth.LoginInput{
		Username: "nobody",
		Password: "whatever",
	})
	_, wrongPasswordErr := service.Login(ctx, auth.LoginInput{
		Username: "alice",
		Password: "wrong-pass",
	})

	require.Error(t, unknownUserErr)
	require.Error(t, wrongPasswordErr)

	unknownUser := apperr.As(unknownUserErr)
	wrongPassword := apperr.As(wrongPasswordErr)
	require.NotNil(t, unknownUser)
	require.NotNil(t, wrongPassword)

	assert.Equal(t, unknownUser.Code, wrongPassword.Code)
	assert.Equal(t, unknownUser.Message, wrongPassword.Message)
	assert.Equal(t, auth.InvalidCredentialsMessage, wrongPassword.Message)
}

/*
TestService_Login_EmptyCredentials verifies that empty input is rejected as
a validation failure before any credential check runs.
*/
func TestService_Login_EmptyCredentials(t *testing.T) {
	service, _ := newTestService(t)
	ctx := context.Background()

	testCases := []struct {
		name  string
		input auth.LoginInput
	}{
		{name: "both_empty", input: auth.LoginInput{}},
		{name: "empty_password", input: auth.LoginInput{Username: "alice"}},
		{name: "empty_username", input: auth.LoginInput{Password: "s3cret-pass"}},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			_, err := service.Login(ctx, testCase.input)

			require.Error(t, err)
			appError := apperr.As(err)
			require.NotNil(t, appError)
			assert.Equal(t, "VALIDATION_ERROR", appError.Code)
		})
	}
}

// # Identity Resolution

/*
TestService_ResolveIdentity verifies that token subjects resolve to a live
identity carrying the account's current authority, and that unknown
subjects fail.
*/
func TestService_ResolveIdentity(t *testing.T) {
	service, _ := newTestService(t)
	ctx := context.Background()

	_, err := service.Register(ctx, auth.RegisterInput{
		Username: "root",
		Email:    "root@example.com",
		Password: "s3cret-pass",
		Role:     "ADMIN",
	})
	require.NoError(t, err)

	identity, err := service.ResolveIdentity(ctx, "root")
	require.NoError(t, err)
	assert.Equal(t, "root", identity.Username)
	assert.Equal(t, []string{"ROLE_ADMIN"}, identity.Authorities)
	assert.True(t, identity.HasRole(sec.RoleAdmin))

	_, err = service.ResolveIdentity(ctx, "ghost")
	require.Error(t, err)
}
