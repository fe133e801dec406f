// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package product implements the inventory catalog domain.

It defines the Product entity along with the operations the sales floor
relies on: catalog CRUD, low-stock reporting, and name search.

# Architecture

  - Service: Orchestrates catalog business rules.
  - Repository: Domain-defined storage contract with a PostgreSQL
    implementation and a Redis read-through cache decorator.
*/
package product

import "time"

// # Domain Entities

// Product represents a single catalog item tracked by the inventory.
type Product struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Description   string    `json:"description,omitempty"`
	Price         float64   `json:"price"`
	StockQuantity int       `json:"stock_quantity"`
	CategoryID    string    `json:"category_id"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// # Field Identifiers

// Global field names for validation in the product domain.
const (
	FieldName          = "name"
	FieldDescription   = "description"
	FieldPrice         = "price"
	FieldStockQuantity = "stock_quantity"
	FieldCategoryID    = "category_id"
	FieldThreshold     = "threshold"
	FieldQuery         = "q"
)

// DefaultLowStockThreshold is used when the report is requested without an
// explicit threshold.
const DefaultLowStockThreshold = 5
