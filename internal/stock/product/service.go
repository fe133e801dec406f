// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package product

import (
	"context"
	"fmt"

	"github.com/taibuivan/stockmanager/internal/platform/apperr"
	"github.com/taibuivan/stockmanager/pkg/pagination"
	"github.com/taibuivan/stockmanager/pkg/pointer"
	"github.com/taibuivan/stockmanager/pkg/uuid"
)

// # Contracts & Types

// CategoryChecker verifies that a category exists before products attach to it.
type CategoryChecker interface {
	Exists(context context.Context, id string) (bool, error)
}

// Service implements catalog management use cases.
type Service struct {
	repository      Repository
	categoryChecker CategoryChecker
}

// NewService constructs a new product [Service] with necessary dependencies.
func NewService(repository Repository, categories CategoryChecker) *Service {
	return &Service{
		repository:      repository,
		categoryChecker: categories,
	}
}

// # Catalog Reads

/*
Get returns a single product by ID.

Parameters:
  - context: context.Context
  - id: string

Returns:
  - *Product: Hydrated entity
  - error: apperr.NotFound or retrieval failures
*/
func (service *Service) Get(context context.Context, id string) (*Product, error) {
	return service.repository.FindByID(context, id)
}

/*
List returns a page of the catalog.

Parameters:
  - context: context.Context
  - params: pagination.Params

Returns:
  - []Product: Page of products
  - int: Total product count
  - error: Retrieval failures
*/
func (service *Service) List(context context.Context, params pagination.Params) ([]Product, int, error) {
	return service.repository.List(context, params)
}

/*
LowStock returns all products below the replenishment threshold.

Description: A non-positive threshold falls back to
[DefaultLowStockThreshold].

Parameters:
  - context: context.Context
  - threshold: int

Returns:
  - []Product: Products in need of replenishment
  - error: Retrieval failures
*/
func (service *Service) LowStock(context context.Context, threshold int) ([]Product, error) {
	if threshold <= 0 {
		threshold = DefaultLowStockThreshold
	}
	return service.repository.ListLowStock(context, threshold)
}

/*
Search returns products whose name contains the fragment, ignoring case.

Parameters:
  - context: context.Context
  - fragment: string
  - params: pagination.Params

Returns:
  - []Product: Page of matching products
  - int: Total matching count
  - error: Retrieval failures
*/
func (service *Service) Search(context context.Context, fragment string, params pagination.Params) ([]Product, int, error) {
	return service.repository.SearchByName(context, fragment, params)
}

// # Catalog Writes

// CreateInput holds the data required to add a catalog item.
type CreateInput struct {
	Name          string
	Description   string
	Price         float64
	StockQuantity int
	CategoryID    string
}

/*
Create validates and persists a brand-new product.

Parameters:
  - context: context.Context
  - input: CreateInput

Returns:
  - *Product: Created entity
  - error: NotFound (unknown category), Conflict (duplicate name), or
    storage errors
*/
func (service *Service) Create(context context.Context, input CreateInput) (*Product, error) {

	// The referenced category must exist before the product attaches to it
	exists, err := service.categoryChecker.Exists(context, input.CategoryID)
	if err != nil {
		return nil, fmt.Errorf("product_service_category_check_failed: %w", err)
	}
	if !exists {
		return nil, apperr.NotFound("Category")
	}

	product := &Product{
		ID:            uuid.New(),
		Name:          input.Name,
		Description:   input.Description,
		Price:         input.Price,
		StockQuantity: input.StockQuantity,
		CategoryID:    input.CategoryID,
	}

	if err := service.repository.Create(context, product); err != nil {
		return nil, err
	}

	return product, nil
}

// UpdateInput holds the partial update set for a product. Nil fields are
// left unchanged.
type UpdateInput struct {
	Name          *string
	Description   *string
	Price         *float64
	StockQuantity *int
	CategoryID    *string
}

/*
Update applies a partial update to an existing product.

Parameters:
  - context: context.Context
  - id: string
  - input: UpdateInput

Returns:
  - *Product: The updated entity
  - error: NotFound, Conflict, or storage errors
*/
func (service *Service) Update(context context.Context, id string, input UpdateInput) (*Product, error) {

	product, err := service.repository.FindByID(context, id)
	if err != nil {
		return nil, err
	}

	if input.CategoryID != nil && *input.CategoryID != product.CategoryID {
		exists, err := service.categoryChecker.Exists(context, *input.CategoryID)
		if err != nil {
			return nil, fmt.Errorf("product_service_category_check_failed: %w", err)
		}
		if !exists {
			return nil, apperr.NotFound("Category")
		}
	}

	// Apply only the provided fields
	product.Name = pointer.Fallback(input.Name, product.Name)
	product.Description = pointer.Fallback(input.Description, product.Description)
	product.Price = pointer.Fallback(input.Price, product.Price)
	product.StockQuantity = pointer.Fallback(input.StockQuantity, product.StockQuantity)
	product.CategoryID = pointer.Fallback(input.CategoryID, product.CategoryID)

	if err := service.repository.Update(context, product); err != nil {
		return nil, err
	}

	return product, nil
}

/*
Delete removes a product from the catalog.

Parameters:
  - context: context.Context
  - id: string

Returns:
  - error: apperr.NotFound or storage errors
*/
func (service *Service) Delete(context context.Context, id string) error {
	return service.repository.Delete(context, id)
}
