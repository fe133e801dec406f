// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// PostgreSQL implementation of the sale storage contract.
package sale

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

// # Sale Repository

// PostgresRepository implements the sale Repository interface using pgx.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a new PostgreSQL implementation of the sale Repository.
func NewRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

/*
Create persists the sale header and its detail lines in a single
transaction.

Description: A detail line referencing a product that was deleted after
the caller's existence check trips the foreign key constraint; the whole
transaction rolls back and the sale is not recorded.

Parameters:
  - context: context.Context
  - sale: *Sale (with Details populated)

Returns:
  - error: apperr.Unprocessable (unknown product) or storage failures
*/
func (repository *PostgresRepository) Create(context context.Context, sale *Sale) error {
	transaction, err := repository.pool.Begin(context)
	if err != nil {
		return fmt.Errorf("postgres_sale_repo_begin_failed: %w", err)
	}
	defer func() { _ = transaction.Rollback(context) }()

	if sale.CreatedAt.IsZero() {
		sale.CreatedAt = time.Now()
	}

	// 1. Insert the sale header
	const insertSale = `
		INSERT INTO stock.sale (id, username, total, createdat)
		VALUES ($1, $2, $3, $4)`

	if _, err := transaction.Exec(context, insertSale,
		sale.ID, sale.Username, sale.Total, sale.CreatedAt); err != nil {
		return fmt.Errorf("postgres_sale_repo_insert_failed: %w", err)
	}

	// 2. Insert each detail line
	const insertDetail = `
		INSERT INTO stock.sale_detail (id, saleid, productid, quantity, unitprice, subtotal)
		VALUES ($1, $2, $3, $4, $5, $6)`

	for index := range sale.Details {
		detail := &sale.Details[index]

		if _, err := transaction.Exec(context, insertDetail,
			detail.ID, detail.SaleID, detail.ProductID,
			detail.Quantity, detail.UnitPrice, detail.Subtotal); err != nil {
			if dberr.IsForeignKeyViolation(err) {
				return apperr.Unprocessable("Sale references an unknown product")
			}
			return fmt.Errorf("postgres_sale_repo_insert_detail_failed: %w", err)
		}
	}

	// 3. Commit atomically
	if err := transaction.Commit(context); err != nil {
		return fmt.Errorf("postgres_sale_repo_commit_failed: %w", err)
	}

	return nil
}

/*
FindByID returns a sale with its detail lines hydrated.

Parameters:
  - context: context.Context
  - id: string

Returns:
  - *Sale: Hydrated sale
  - error: apperr.NotFound or execution errors
*/
func (repository *PostgresRepository) FindByID(context context.Context, id string) (*Sale, error) {
	const headerQuery = `
		SELECT id, username, total, createdat
		FROM stock.sale
		WHERE id = $1`

	sale := &Sale{}
	err := repository.pool.QueryRow(context, headerQuery, id).Scan(
		&sale.ID,
		&sale.Username,
		&sale.Total,
		&sale.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Sale")
		}
		return nil, fmt.Errorf("postgres_sale_repo_find_failed: %w", err)
	}

	const detailQuery = `
		SELECT id, saleid, productid, quantity, unitprice, subtotal
		FROM stock.sale_detail
		WHERE saleid = $1
		ORDER BY id ASC`

	rows, err := repository.pool.Query(context, detailQuery, id)
	if err != nil {
		return nil, fmt.Errorf("postgres_sale_repo_details_failed: %w", err)
	}
	defer rows.Close()

	sale.Details = make([]SaleDetail, 0)
	for rows.Next() {
		detail := SaleDetail{}
		if err := rows.Scan(
			&detail.ID,
			&detail.SaleID,
			&detail.ProductID,
			&detail.Quantity,
			&detail.UnitPrice,
			&detail.Subtotal,
		); err != nil {
			return nil, fmt.Errorf("postgres_sale_repo_detail_scan_failed: %w", err)
		}
		sale.Details = append(sale.Details, detail)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres_sale_repo_detail_rows_failed: %w", err)
	}

	return sale, nil
}

/*
List returns a page of sale headers ordered newest first.

Parameters:
  - context: context.Context
  - params: pagination.Params

Returns:
  - []Sale: Page of sale headers (no detail lines)
  - int: Total sale count
  - error: Execution errors
*/
func (repository *PostgresRepository) List(context context.Context, params pagination.Params) ([]Sale, int, error) {
	var total int
	if err := repository.pool.QueryRow(context, "SELECT COUNT(*) FROM stock.sale").Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("postgres_sale_repo_count_failed: %w", err)
	}

	const query = `
		SELECT id, username, total, createdat
		FROM stock.sale
		ORDER BY createdat DESC
		LIMIT $1 OFFSET $2`

	rows, err := repository.pool.Query(context, query, params.Limit, params.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("postgres_sale_repo_list_failed: %w", err)
	}
	defer rows.Close()

	sales := make([]Sale, 0)
	for rows.Next() {
		sale := Sale{}
		if err := rows.Scan(&sale.ID, &sale.Username, &sale.Total, &sale.CreatedAt); err != nil {
			return nil, 0, fmt.Errorf("postgres_sale_repo_scan_failed: %w", err)
		}
		sales = append(sales, sale)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("postgres_sale_repo_rows_failed: %w", err)
	}

	return sales, total, nil
}
