// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// PostgreSQL implementation of the product storage contract.
//
// # Error Mapping
//
// Storage-specific errors (like pgx.ErrNoRows) are mapped to domain-friendly
// [apperr.AppError] types to avoid leaking storage implementation details.
package product

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

// # Product Repository

// PostgresRepository implements the product Repository interface using pgx.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a new PostgreSQL implementation of the product Repository.
func NewRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

const productColumns = "id, name, description, price, stockquantity, categoryid, createdat, updatedat"

// scanProduct hydrates a single Product from the current row.
func scanProduct(row pgx.Row) (*Product, error) {
	product := &Product{}
	err := row.Scan(
		&product.ID,
		&product.Name,
		&product.Description,
		&product.Price,
		&product.StockQuantity,
		&product.CategoryID,
		&product.CreatedAt,
		&product.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return product, nil
}

/*
Create persists a new product record into the stock.product table.

Parameters:
  - context: context.Context
  - product: *Product

Returns:
  - error: apperr.Conflict on duplicate name, foreign key failures, or
    connectivity errors
*/
func (repository *PostgresRepository) Create(context context.Context, product *Product) error {
	const query = `
		INSERT INTO stock.product (
			id, name, description, price, stockquantity, categoryid, createdat, updatedat
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	now := time.Now()
	if product.CreatedAt.IsZero() {
		product.CreatedAt = now
	}
	product.UpdatedAt = now

	_, err := repository.pool.Exec(context, query,
		product.ID,
		product.Name,
		product.Description,
		product.Price,
		product.StockQuantity,
		product.CategoryID,
		product.CreatedAt,
		product.UpdatedAt,
	)

	if err != nil {
		if dberr.IsUniqueViolation(err) {
			return apperr.Conflict("Product name is already in use")
		}
		return fmt.Errorf("postgres_product_repo_create_failed: %w", err)
	}

	return nil
}

/*
FindByID retrieves a product record by its unique ID.

Parameters:
  - context: context.Context
  - id: string (UUIDv7)

Returns:
  - *Product: Hydrated catalog entity
  - error: apperr.NotFound or execution errors
*/
func (repository *PostgresRepository) FindByID(context context.Context, id string) (*Product, error) {
	query := fmt.Sprintf("SELECT %s FROM stock.product WHERE id = $1", productColumns)

	product, err := scanProduct(repository.pool.QueryRow(context, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Product")
		}
		return nil, fmt.Errorf("postgres_product_repo_find_by_id_failed: %w", err)
	}

	return product, nil
}

/*
List returns a page of products ordered alphabetically.

Parameters:
  - context: context.Context
  - params: pagination.Params

Returns:
  - []Product: Page of products
  - int: Total product count
  - error: Execution errors
*/
func (repository *PostgresRepository) List(context context.Context, params pagination.Params) ([]Product, int, error) {
	var total int
	if err := repository.pool.QueryRow(context, "SELECT COUNT(*) FROM stock.product").Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("postgres_product_repo_count_failed: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT %s FROM stock.product
		ORDER BY name ASC
		LIMIT $1 OFFSET $2`, productColumns)

	rows, err := repository.pool.Query(context, query, params.Limit, params.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("postgres_product_repo_list_failed: %w", err)
	}
	defer rows.Close()

	products, err := collectProducts(rows)
	if err != nil {
		return nil, 0, err
	}

	return products, total, nil
}

/*
ListLowStock returns every product with stock strictly below the threshold.

Description: Replenishment report. Ordered by scarcity so the most urgent
items come first.

Parameters:
  - context: context.Context
  - threshold: int

Returns:
  - []Product: Products in need of replenishment
  - error: Execution errors
*/
func (repository *PostgresRepository) ListLowStock(context context.Context, threshold int) ([]Product, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM stock.product
		WHERE stockquantity < $1
		ORDER BY stockquantity ASC, name ASC`, productColumns)

	rows, err := repository.pool.Query(context, query, threshold)
	if err != nil {
		return nil, fmt.Errorf("postgres_product_repo_low_stock_failed: %w", err)
	}
	defer rows.Close()

	return collectProducts(rows)
}

/*
SearchByName returns products whose name contains the fragment, ignoring case.

Parameters:
  - context: context.Context
  - fragment: string
  - params: pagination.Params

Returns:
  - []Product: Page of matching products
  - int: Total matching count
  - error: Execution errors
*/
func (repository *PostgresRepository) SearchByName(context context.Context, fragment string, params pagination.Params) ([]Product, int, error) {
	pattern := "%" + fragment + "%"

	var total int
	if err := repository.pool.QueryRow(context,
		"SELECT COUNT(*) FROM stock.product WHERE name ILIKE $1", pattern).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("postgres_product_repo_search_count_failed: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT %s FROM stock.product
		WHERE name ILIKE $1
		ORDER BY name ASC
		LIMIT $2 OFFSET $3`, productColumns)

	rows, err := repository.pool.Query(context, query, pattern, params.Limit, params.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("postgres_product_repo_search_failed: %w", err)
	}
	defer rows.Close()

	products, err := collectProducts(rows)
	if err != nil {
		return nil, 0, err
	}

	return products, total, nil
}

/*
Update persists changes to a product's mutable fields.

Parameters:
  - context: context.Context
  - product: *Product

Returns:
  - error: apperr.NotFound when the product vanished, or execution errors
*/
func (repository *PostgresRepository) Update(context context.Context, product *Product) error {
	const query = `
		UPDATE stock.product
		SET name = $2, description = $3, price = $4, stockquantity = $5, categoryid = $6, updatedat = $7
		WHERE id = $1`

	product.UpdatedAt = time.Now()
	tag, err := repository.pool.Exec(context, query,
		product.ID,
		product.Name,
		product.Description,
		product.Price,
		product.StockQuantity,
		product.CategoryID,
		product.UpdatedAt,
	)

	if err != nil {
		if dberr.IsUniqueViolation(err) {
			return apperr.Conflict("Product name is already in use")
		}
		return fmt.Errorf("postgres_product_repo_update_failed: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Product")
	}

	return nil
}

/*
Delete removes the product with the given ID.

Parameters:
  - context: context.Context
  - id: string

Returns:
  - error: apperr.NotFound or execution errors
*/
func (repository *PostgresRepository) Delete(context context.Context, id string) error {
	tag, err := repository.pool.Exec(context, "DELETE FROM stock.product WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("postgres_product_repo_delete_failed: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Product")
	}

	return nil
}

// collectProducts drains a result set into a slice of Product values.
func collectProducts(rows pgx.Rows) ([]Product, error) {
	products := make([]Product, 0)
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("postgres_product_repo_scan_failed: %w", err)
		}
		products = append(products, *product)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres_product_repo_rows_failed: %w", err)
	}

	return products, nil
}
