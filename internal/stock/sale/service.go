// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sale

import (
	"context"

	"github.com/taibuivan/stockmanager/internal/platform/apperr"
	"github.com/taibuivan/stockmanager/internal/stock/product"
	"github.com/taibuivan/stockmanager/pkg/pagination"
	"github.com/taibuivan/stockmanager/pkg/uuid"
)

// # Contracts & Types

// ProductCatalog resolves products referenced by sale lines.
type ProductCatalog interface {
	FindByID(context context.Context, id string) (*product.Product, error)
}

// Service implements point-of-sale use cases.
type Service struct {
	repository Repository
	catalog    ProductCatalog
}

// NewService constructs a new sale [Service] with necessary dependencies.
func NewService(repository Repository, catalog ProductCatalog) *Service {
	return &Service{
		repository: repository,
		catalog:    catalog,
	}
}

// # Recording Flow

// LineInput is a single requested sale line. Amounts are recorded as
// supplied; the service never re-prices against the catalog.
type LineInput struct {
	ProductID string
	Quantity  int
	UnitPrice float64
	Subtotal  float64
}

// CreateInput holds the data required to record a sale.
type CreateInput struct {
	Username string // The authenticated operator recording the sale.
	Total    float64
	Lines    []LineInput
}

/*
Create records a sale with its detail lines.

Description: Every referenced product is checked against the catalog
before anything is written, then the sale lands atomically with the
amounts exactly as the caller supplied them.

Parameters:
  - context: context.Context
  - input: CreateInput

Returns:
  - *Sale: The recorded sale with detail lines
  - error: ValidationError (no lines, bad quantity or price), NotFound
    (unknown product), or storage errors
*/
func (service *Service) Create(context context.Context, input CreateInput) (*Sale, error) {

	if len(input.Lines) == 0 {
		return nil, apperr.ValidationError("A sale needs at least one line", apperr.FieldError{
			Field:   FieldDetails,
			Message: "This field is required",
		})
	}

	sale := &Sale{
		ID:       uuid.New(),
		Username: input.Username,
		Total:    input.Total,
		Details:  make([]SaleDetail, 0, len(input.Lines)),
	}

	for _, line := range input.Lines {
		if line.Quantity < 1 {
			return nil, apperr.ValidationError("Quantity must be at least 1", apperr.FieldError{
				Field:   FieldQuantity,
				Message: "Must be at least 1",
			})
		}
		if line.UnitPrice < 0 {
			return nil, apperr.ValidationError("Unit price must not be negative", apperr.FieldError{
				Field:   FieldUnitPrice,
				Message: "Must not be negative",
			})
		}
		if line.Subtotal < 0 {
			return nil, apperr.ValidationError("Subtotal must not be negative", apperr.FieldError{
				Field:   FieldSubtotal,
				Message: "Must not be negative",
			})
		}

		item, err := service.catalog.FindByID(context, line.ProductID)
		if err != nil {
			return nil, err
		}

		sale.Details = append(sale.Details, SaleDetail{
			ID:        uuid.New(),
			SaleID:    sale.ID,
			ProductID: item.ID,
			Quantity:  line.Quantity,
			UnitPrice: line.UnitPrice,
			Subtotal:  line.Subtotal,
		})
	}

	if err := service.repository.Create(context, sale); err != nil {
		return nil, err
	}

	return sale, nil
}

// # Reads

/*
Get returns a sale with its detail lines.

Parameters:
  - context: context.Context
  - id: string

Returns:
  - *Sale: Hydrated sale
  - error: apperr.NotFound or retrieval failures
*/
func (service *Service) Get(context context.Context, id string) (*Sale, error) {
	return service.repository.FindByID(context, id)
}

/*
List returns a page of sale headers, newest first.

Parameters:
  - context: context.Context
  - params: pagination.Params

Returns:
  - []Sale: Page of sale headers
  - int: Total sale count
  - error: Retrieval failures
*/
func (service *Service) List(context context.Context, params pagination.Params) ([]Sale, int, error) {
	return service.repository.List(context, params)
}
