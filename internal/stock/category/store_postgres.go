// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// PostgreSQL implementation of the category storage contract.
package category

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/stockmanager/internal/platform/apperr"
	"github.com/taibuivan/stockmanager/internal/platform/dberr"
	"github.com/taibuivan/stockmanager/pkg/pagination"
)

// # Category Repository

// PostgresRepository implements the category Repository interface using pgx.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a new PostgreSQL implementation of the category Repository.
func NewRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

const categoryColumns = "id, name, description, createdat, updatedat"

// scanCategory hydrates a single Category from the current row.
func scanCategory(row pgx.Row) (*Category, error) {
	category := &Category{}
	err := row.Scan(
		&category.ID,
		&category.Name,
		&category.Description,
		&category.CreatedAt,
		&category.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return category, nil
}

/*
Create persists a new category record into the stock.category table.

Parameters:
  - context: context.Context
  - category: *Category

Returns:
  - error: apperr.Conflict on duplicate name, or connectivity errors
*/
func (repository *PostgresRepository) Create(context context.Context, category *Category) error {
	const query = `
		INSERT INTO stock.category (id, name, description, createdat, updatedat)
		VALUES ($1, $2, $3, $4, $5)`

	now := time.Now()
	if category.CreatedAt.IsZero() {
		category.CreatedAt = now
	}
	category.UpdatedAt = now

	_, err := repository.pool.Exec(context, query,
		category.ID,
		category.Name,
		category.Description,
		category.CreatedAt,
		category.UpdatedAt,
	)

	if err != nil {
		if dberr.IsUniqueViolation(err) {
			return apperr.Conflict("Category name is already in use")
		}
		return fmt.Errorf("postgres_category_repo_create_failed: %w", err)
	}

	return nil
}

/*
FindByID retrieves a category record by its unique ID.

Parameters:
  - context: context.Context
  - id: string (UUIDv7)

Returns:
  - *Category: Hydrated entity
  - error: apperr.NotFound or execution errors
*/
func (repository *PostgresRepository) FindByID(context context.Context, id string) (*Category, error) {
	query := fmt.Sprintf("SELECT %s FROM stock.category WHERE id = $1", categoryColumns)

	category, err := scanCategory(repository.pool.QueryRow(context, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Category")
		}
		return nil, fmt.Errorf("postgres_category_repo_find_by_id_failed: %w", err)
	}

	return category, nil
}

/*
Exists reports whether a category with the given ID exists.

Parameters:
  - context: context.Context
  - id: string

Returns:
  - bool: True when the category exists
  - error: Execution errors
*/
func (repository *PostgresRepository) Exists(context context.Context, id string) (bool, error) {
	const query = "SELECT EXISTS (SELECT 1 FROM stock.category WHERE id = $1)"

	var exists bool
	if err := repository.pool.QueryRow(context, query, id).Scan(&exists); err != nil {
		return false, fmt.Errorf("postgres_category_repo_exists_failed: %w", err)
	}

	return exists, nil
}

/*
List returns a page of categories ordered alphabetically.

Parameters:
  - context: context.Context
  - params: pagination.Params

Returns:
  - []Category: Page of categories
  - int: Total category count
  - error: Execution errors
*/
func (repository *PostgresRepository) List(context context.Context, params pagination.Params) ([]Category, int, error) {
	var total int
	if err := repository.pool.QueryRow(context, "SELECT COUNT(*) FROM stock.category").Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("postgres_category_repo_count_failed: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT %s FROM stock.category
		ORDER BY name ASC
		LIMIT $1 OFFSET $2`, categoryColumns)

	rows, err := repository.pool.Query(context, query, params.Limit, params.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("postgres_category_repo_list_failed: %w", err)
	}
	defer rows.Close()

	categories := make([]Category, 0)
	for rows.Next() {
		category, err := scanCategory(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("postgres_category_repo_scan_failed: %w", err)
		}
		categories = append(categories, *category)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("postgres_category_repo_rows_failed: %w", err)
	}

	return categories, total, nil
}

/*
Update persists changes to a category's mutable fields.

Parameters:
  - context: context.Context
  - category: *Category

Returns:
  - error: apperr.NotFound, apperr.Conflict, or execution errors
*/
func (repository *PostgresRepository) Update(context context.Context, category *Category) error {
	const query = `
		UPDATE stock.category
		SET name = $2, description = $3, updatedat = $4
		WHERE id = $1`

	category.UpdatedAt = time.Now()
	tag, err := repository.pool.Exec(context, query,
		category.ID,
		category.Name,
		category.Description,
		category.UpdatedAt,
	)

	if err != nil {
		if dberr.IsUniqueViolation(err) {
			return apperr.Conflict("Category name is already in use")
		}
		return fmt.Errorf("postgres_category_repo_update_failed: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Category")
	}

	return nil
}

/*
Delete removes the category with the given ID.

Description: The product table references categories with ON DELETE
RESTRICT, so a category that still has products attached cannot be removed.

Parameters:
  - context: context.Context
  - id: string

Returns:
  - error: apperr.NotFound, apperr.Conflict (products attached), or
    execution errors
*/
func (repository *PostgresRepository) Delete(context context.Context, id string) error {
	tag, err := repository.pool.Exec(context, "DELETE FROM stock.category WHERE id = $1", id)
	if err != nil {
		if dberr.IsForeignKeyViolation(err) {
			return apperr.Conflict("Category still has products attached")
		}
		return fmt.Errorf("postgres_category_repo_delete_failed: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Category")
	}

	return nil
}
