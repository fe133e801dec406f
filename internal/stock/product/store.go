// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package product

import (
	"context"

	"github.com/taibuivan/stockmanager/pkg/pagination"
)

// # Product Data Access

// Repository defines the data access contract for the product catalog.
type Repository interface {

	/*
		FindByID returns the product with the given ID.

		Parameters:
		  - context: context.Context
		  - id: string

		Returns:
		  - *Product: Hydrated entity
		  - error: apperr.NotFound or retrieval failures
	*/
	FindByID(context context.Context, id string) (*Product, error)

	/*
		List returns a page of products ordered by name.

		Parameters:
		  - context: context.Context
		  - params: pagination.Params

		Returns:
		  - []Product: Page of products
		  - int: Total product count
		  - error: Retrieval failures
	*/
	List(context context.Context, params pagination.Params) ([]Product, int, error)

	/*
		ListLowStock returns every product whose stock quantity is strictly
		below the threshold.

		Parameters:
		  - context: context.Context
		  - threshold: int

		Returns:
		  - []Product: Products in need of replenishment
		  - error: Retrieval failures
	*/
	ListLowStock(context context.Context, threshold int) ([]Product, error)

	/*
		SearchByName returns products whose name contains the fragment,
		matched case-insensitively.

		Parameters:
		  - context: context.Context
		  - fragment: string
		  - params: pagination.Params

		Returns:
		  - []Product: Page of matching products
		  - int: Total matching count
		  - error: Retrieval failures
	*/
	SearchByName(context context.Context, fragment string, params pagination.Params) ([]Product, int, error)

	/*
		Create persists a brand-new product.

		Parameters:
		  - context: context.Context
		  - product: *Product

		Returns:
		  - error: Persistence failures
	*/
	Create(context context.Context, product *Product) error

	/*
		Update persists changes to a product's mutable fields.

		Parameters:
		  - context: context.Context
		  - product: *Product

		Returns:
		  - error: apperr.NotFound or persistence failures
	*/
	Update(context context.Context, product *Product) error

	/*
		Delete removes the product with the given ID.

		Parameters:
		  - context: context.Context
		  - id: string

		Returns:
		  - error: apperr.NotFound or persistence failures
	*/
	Delete(context context.Context, id string) error
}
