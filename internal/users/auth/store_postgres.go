// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// PostgreSQL implementation of the auth storage contracts.
//
// # Architecture
//
// Repositories here are strictly separated from domain logic. They implement
// domain-defined interfaces (e.g., [UserRepository]) using the
// [pgxpool.Pool] connection manager.
//
// # Error Mapping
//
// Storage-specific errors (like pgx.ErrNoRows) are mapped to domain-friendly
// [apperr.AppError] types to avoid leaking storage implementation details.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/stockmanager/internal/platform/apperr"
	"github.com/taibuivan/stockmanager/internal/platform/dberr"
	"github.com/taibuivan/stockmanager/internal/platform/sec"
	"github.com/taibuivan/stockmanager/pkg/pagination"
)

// # User Repository

// PostgresUserRepository implements the UserRepository interface using pgx.
type PostgresUserRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository creates a new PostgreSQL implementation of the UserRepository.
func NewUserRepository(pool *pgxpool.Pool) *PostgresUserRepository {
	return &PostgresUserRepository{pool: pool}
}

const userColumns = "id, username, email, passwordhash, role, createdat, updatedat"

// scanUser hydrates a single User from the current row.
func scanUser(row pgx.Row) (*User, error) {
	user := &User{}
	err := row.Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.PasswordHash,
		&user.Role,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return user, nil
}

/*
Create persists a new user record into the users.account table.

Description: Deep-persists account data, initializing timestamps when absent.
The unique constraints on username and email are the authoritative duplicate
check, so two concurrent registrations of the same email produce exactly one
successful row and one Conflict.

Parameters:
  - context: context.Context
  - user: *User (Entity to persist)

Returns:
  - error: apperr.Conflict on duplicate identity, or connectivity errors
*/
func (repository *PostgresUserRepository) Create(context context.Context, user *User) error {
	const query = `
		INSERT INTO users.account (
			id, username, email, passwordhash, role, createdat, updatedat
		) VALUES ($1, $2, $3, $4, $5, $6, $7)`

	now := time.Now()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = now
	}
	user.UpdatedAt = now

	_, err := repository.pool.Exec(context, query,
		user.ID,
		user.Username,
		user.Email,
		user.PasswordHash,
		user.Role,
		user.CreatedAt,
		user.UpdatedAt,
	)

	if err != nil {
		if dberr.IsUniqueViolation(err) {
			return conflictForUniqueViolation(err)
		}
		return fmt.Errorf("postgres_user_repo_create_failed: %w", err)
	}

	return nil
}

// conflictForUniqueViolation reports which identity anchor a duplicate insert
// collided on. users.account carries unique constraints on both username and
// email, so the constraint name decides the message.
func conflictForUniqueViolation(err error) error {
	if strings.Contains(dberr.ViolatedConstraint(err), "username") {
		return apperr.Conflict("Username is already taken")
	}
	return apperr.Conflict("Email is already registered")
}

/*
FindByID retrieves a user record by their unique ID.

Description: Primary key resolution for user accounts.

Parameters:
  - context: context.Context
  - id: string (UUIDv7)

Returns:
  - *User: Hydrated account entity
  - error: apperr.NotFound or execution errors
*/
func (repository *PostgresUserRepository) FindByID(context context.Context, id string) (*User, error) {
	query := fmt.Sprintf("SELECT %s FROM users.account WHERE id = $1", userColumns)

	user, err := scanUser(repository.pool.QueryRow(context, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("User not found")
		}
		return nil, fmt.Errorf("postgres_user_repo_find_by_id_failed: %w", err)
	}

	return user, nil
}

/*
FindByUsername retrieves a user record by their unique username.

Description: Standard lookup for authentication and identity resolution.

Parameters:
  - context: context.Context
  - username: string

Returns:
  - *User: Hydrated account entity
  - error: apperr.NotFound or execution errors
*/
func (repository *PostgresUserRepository) FindByUsername(context context.Context, username string) (*User, error) {
	query := fmt.Sprintf("SELECT %s FROM users.account WHERE username = $1", userColumns)

	user, err := scanUser(repository.pool.QueryRow(context, query, username))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("User not found with this username")
		}
		return nil, fmt.Errorf("postgres_user_repo_find_by_username_failed: %w", err)
	}

	return user, nil
}

/*
FindByEmail retrieves a user record by their unique email address.

Parameters:
  - context: context.Context
  - email: string

Returns:
  - *User: Hydrated account entity
  - error: apperr.NotFound or execution errors
*/
func (repository *PostgresUserRepository) FindByEmail(context context.Context, email string) (*User, error) {
	query := fmt.Sprintf("SELECT %s FROM users.account WHERE email = $1", userColumns)

	user, err := scanUser(repository.pool.QueryRow(context, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("User not found with this email")
		}
		return nil, fmt.Errorf("postgres_user_repo_find_by_email_failed: %w", err)
	}

	return user, nil
}

/*
ExistsByEmail reports whether the email is already claimed.

Description: Cheap pre-flight check used during registration. The unique
constraint remains the final arbiter under concurrency.

Parameters:
  - context: context.Context
  - email: string

Returns:
  - bool: True when the email exists
  - error: Execution errors
*/
func (repository *PostgresUserRepository) ExistsByEmail(context context.Context, email string) (bool, error) {
	const query = "SELECT EXISTS (SELECT 1 FROM users.account WHERE email = $1)"

	var exists bool
	if err := repository.pool.QueryRow(context, query, email).Scan(&exists); err != nil {
		return false, fmt.Errorf("postgres_user_repo_exists_by_email_failed: %w", err)
	}

	return exists, nil
}

/*
List returns a page of accounts ordered by creation time (newest first).

Parameters:
  - context: context.Context
  - params: pagination.Params

Returns:
  - []User: Page of accounts
  - int: Total account count
  - error: Execution errors
*/
func (repository *PostgresUserRepository) List(context context.Context, params pagination.Params) ([]User, int, error) {
	var total int
	if err := repository.pool.QueryRow(context, "SELECT COUNT(*) FROM users.account").Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("postgres_user_repo_count_failed: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT %s FROM users.account
		ORDER BY createdat DESC
		LIMIT $1 OFFSET $2`, userColumns)

	rows, err := repository.pool.Query(context, query, params.Limit, params.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("postgres_user_repo_list_failed: %w", err)
	}
	defer rows.Close()

	users, err := collectUsers(rows)
	if err != nil {
		return nil, 0, err
	}

	return users, total, nil
}

/*
ListByRole returns a page of accounts holding the given role.

Parameters:
  - context: context.Context
  - role: sec.Role
  - params: pagination.Params

Returns:
  - []User: Page of matching accounts
  - int: Total matching count
  - error: Execution errors
*/
func (repository *PostgresUserRepository) ListByRole(context context.Context, role sec.Role, params pagination.Params) ([]User, int, error) {
	var total int
	if err := repository.pool.QueryRow(context, "SELECT COUNT(*) FROM users.account WHERE role = $1", role).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("postgres_user_repo_count_by_role_failed: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT %s FROM users.account
		WHERE role = $1
		ORDER BY createdat DESC
		LIMIT $2 OFFSET $3`, userColumns)

	rows, err := repository.pool.Query(context, query, role, params.Limit, params.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("postgres_user_repo_list_by_role_failed: %w", err)
	}
	defer rows.Close()

	users, err := collectUsers(rows)
	if err != nil {
		return nil, 0, err
	}

	return users, total, nil
}

// collectUsers drains a result set into a slice of User values.
func collectUsers(rows pgx.Rows) ([]User, error) {
	users := make([]User, 0)
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("postgres_user_repo_scan_failed: %w", err)
		}
		users = append(users, *user)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres_user_repo_rows_failed: %w", err)
	}

	return users, nil
}
