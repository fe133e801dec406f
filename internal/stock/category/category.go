// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package category implements the catalog taxonomy domain.

Categories are the coarse grouping products attach to. The package follows
the same service/repository split as the rest of the stock domain.
*/
package category

import (
	"context"
	"time"

	"github.com/taibuivan/stockmanager/pkg/pagination"
)

// # Domain Entities

// Category represents a named grouping of catalog products.
type Category struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// # Field Identifiers

const (
	FieldName        = "name"
	FieldDescription = "description"
)

// # Category Data Access

// Repository defines the data access contract for categories.
type Repository interface {

	// FindByID returns the category with the given ID, or apperr.NotFound.
	FindByID(context context.Context, id string) (*Category, error)

	// Exists reports whether a category with the given ID exists.
	Exists(context context.Context, id string) (bool, error)

	// List returns a page of categories ordered by name, plus the total count.
	List(context context.Context, params pagination.Params) ([]Category, int, error)

	// Create persists a brand-new category. Duplicate names surface as Conflict.
	Create(context context.Context, category *Category) error

	// Update persists changes to a category's mutable fields.
	Update(context context.Context, category *Category) error

	// Delete removes the category. Categories with attached products are
	// protected by the foreign key and cannot be removed.
	Delete(context context.Context, id string) error
}
