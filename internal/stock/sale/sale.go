// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package sale implements the point-of-sale domain.

A Sale records who sold what and when. Amounts are persisted exactly as
supplied by the caller, so the detail lines keep the unit price that was
in effect at the moment of sale even if the catalog changes later.

# Consistency

The sale header and its detail lines land in a single database
transaction. Either the whole sale lands, or nothing does.
*/
package sale

import (
	"context"
	"time"

	"github.com/taibuivan/stockmanager/pkg/pagination"
)

// # Domain Entities

// Sale represents a completed sales transaction.
type Sale struct {
	ID        string       `json:"id"`
	Username  string       `json:"username"` // The operator who recorded the sale.
	Total     float64      `json:"total"`
	CreatedAt time.Time    `json:"created_at"`
	Details   []SaleDetail `json:"details,omitempty"`
}

// SaleDetail is a single line item of a sale.
type SaleDetail struct {
	ID        string  `json:"id"`
	SaleID    string  `json:"sale_id"`
	ProductID string  `json:"product_id"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"` // Price in effect when the sale was recorded.
	Subtotal  float64 `json:"subtotal"`
}

// # Field Identifiers

const (
	FieldDetails   = "details"
	FieldProductID = "product_id"
	FieldQuantity  = "quantity"
	FieldUnitPrice = "unit_price"
	FieldSubtotal  = "subtotal"
	FieldTotal     = "total"
)

// # Sale Data Access

// Repository defines the data access contract for sales.
type Repository interface {

	/*
		Create persists a sale with its detail lines in one transaction.

		Parameters:
		  - context: context.Context
		  - sale: *Sale (with Details populated)

		Returns:
		  - error: apperr.Unprocessable on unknown products, or
		    storage failures
	*/
	Create(context context.Context, sale *Sale) error

	/*
		FindByID returns a sale with its detail lines.

		Parameters:
		  - context: context.Context
		  - id: string

		Returns:
		  - *Sale: Hydrated sale with details
		  - error: apperr.NotFound or retrieval failures
	*/
	FindByID(context context.Context, id string) (*Sale, error)

	/*
		List returns a page of sale headers, newest first. Detail lines
		are not hydrated.

		Parameters:
		  - context: context.Context
		  - params: pagination.Params

		Returns:
		  - []Sale: Page of sale headers
		  - int: Total sale count
		  - error: Retrieval failures
	*/
	List(context context.Context, params pagination.Params) ([]Sale, int, error)
}
