// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package category

import (
	"context"

	"github.com/taibuivan/stockmanager/pkg/pagination"
	"github.com/taibuivan/stockmanager/pkg/pointer"
	"github.com/taibuivan/stockmanager/pkg/uuid"
)

// Service implements taxonomy management use cases.
type Service struct {
	repository Repository
}

// NewService constructs a new category [Service].
func NewService(repository Repository) *Service {
	return &Service{repository: repository}
}

/*
Get returns a single category by ID.

Parameters:
  - context: context.Context
  - id: string

Returns:
  - *Category: Hydrated entity
  - error: apperr.NotFound or retrieval failures
*/
func (service *Service) Get(context context.Context, id string) (*Category, error) {
	return service.repository.FindByID(context, id)
}

/*
List returns a page of the taxonomy.

Parameters:
  - context: context.Context
  - params: pagination.Params

Returns:
  - []Category: Page of categories
  - int: Total category count
  - error: Retrieval failures
*/
func (service *Service) List(context context.Context, params pagination.Params) ([]Category, int, error) {
	return service.repository.List(context, params)
}

// CreateInput holds the data required to add a category.
type CreateInput struct {
	Name        string
	Description string
}

/*
Create persists a brand-new category.

Parameters:
  - context: context.Context
  - input: CreateInput

Returns:
  - *Category: Created entity
  - error: Conflict (duplicate name) or storage errors
*/
func (service *Service) Create(context context.Context, input CreateInput) (*Category, error) {
	category := &Category{
		ID:          uuid.New(),
		Name:        input.Name,
		Description: input.Description,
	}

	if err := service.repository.Create(context, category); err != nil {
		return nil, err
	}

	return category, nil
}

// UpdateInput holds the partial update set for a category.
type UpdateInput struct {
	Name        *string
	Description *string
}

/*
Update applies a partial update to an existing category.

Parameters:
  - context: context.Context
  - id: string
  - input: UpdateInput

Returns:
  - *Category: The updated entity
  - error: NotFound, Conflict, or storage errors
*/
func (service *Service) Update(context context.Context, id string, input UpdateInput) (*Category, error) {
	category, err := service.repository.FindByID(context, id)
	if err != nil {
		return nil, err
	}

	category.Name = pointer.Fallback(input.Name, category.Name)
	category.Description = pointer.Fallback(input.Description, category.Description)

	if err := service.repository.Update(context, category); err != nil {
		return nil, err
	}

	return category, nil
}

/*
Delete removes a category from the taxonomy.

Parameters:
  - context: context.Context
  - id: string

Returns:
  - error: NotFound, Conflict (products attached), or storage errors
*/
func (service *Service) Delete(context context.Context, id string) error {
	return service.repository.Delete(context, id)
}
