// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sale_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/stockmanager/internal/platform/apperr"
	"github.com/taibuivan/stockmanager/internal/stock/product"
	"github.com/taibuivan/stockmanager/internal/stock/sale"
	"github.com/taibuivan/stockmanager/pkg/pagination"
)

// # Test Doubles

// memoryRepository records created sales in memory.
type memoryRepository struct {
	sales map[string]*sale.Sale
}

func newMemoryRepository() *memoryRepository {
	return &memoryRepository{sales: make(map[string]*sale.Sale)}
}

func (repository *memoryRepository) Create(_ context.Context, recorded *sale.Sale) error {
	repository.sales[recorded.ID] = recorded
	return nil
}

func (repository *memoryRepository) FindByID(_ context.Context, id string) (*sale.Sale, error) {
	recorded, found := repository.sales[id]
	if !found {
		return nil, apperr.NotFound("Sale")
	}
	return recorded, nil
}

func (repository *memoryRepository) List(_ context.Context, _ pagination.Params) ([]sale.Sale, int, error) {
	sales := make([]sale.Sale, 0, len(repository.sales))
	for _, recorded := range repository.sales {
		sales = append(sales, *recorded)
	}
	return sales, len(sales), nil
}

// staticCatalog answers product lookups from a fixed list.
type staticCatalog struct {
	products map[string]*product.Product
}

func (catalog *staticCatalog) FindByID(_ context.Context, id string) (*product.Product, error) {
	item, found := catalog.products[id]
	if !found {
		return nil, apperr.NotFound("Product")
	}
	return item, nil
}

const (
	hammerID = "0191b2c4-0000-7000-8000-000000000101"
	wrenchID = "0191b2c4-0000-7000-8000-000000000102"
)

func newTestService() (*sale.Service, *memoryRepository) {
	repository := newMemoryRepository()
	catalog := &staticCatalog{products: map[string]*product.Product{
		hammerID: {ID: hammerID, Name: "Hammer", Price: 12.50},
		wrenchID: {ID: wrenchID, Name: "Wrench", Price: 8.00},
	}}
	return sale.NewService(repository, catalog), repository
}

// # Recording

/*
TestService_Create verifies that supplied amounts are recorded untouched.
*/
func TestService_Create(t *testing.T) {
	service, repository := newTestService()
	ctx := context.Background()

	recorded, err := service.Create(ctx, sale.CreateInput{
		Username: "alice",
		Total:    33.00,
		Lines: []sale.LineInput{
			{ProductID: hammerID, Quantity: 2, UnitPrice: 12.50, Subtotal: 25.00},
			{ProductID: wrenchID, Quantity: 1, UnitPrice: 8.00, Subtotal: 8.00},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, "alice", recorded.Username)
	assert.Equal(t, 33.00, recorded.Total)
	require.Len(t, recorded.Details, 2)
	assert.Equal(t, 12.50, recorded.Details[0].UnitPrice)
	assert.Equal(t, 25.00, recorded.Details[0].Subtotal)

	stored, err := service.Get(ctx, recorded.ID)
	require.NoError(t, err)
	assert.Equal(t, recorded.Total, stored.Total)
	assert.Len(t, repository.sales, 1)
}

/*
TestService_Create_KeepsSuppliedPrice verifies that a unit price differing
from the live catalog is persisted as supplied, not re-priced.
*/
func TestService_Create_KeepsSuppliedPrice(t *testing.T) {
	service, _ := newTestService()

	recorded, err := service.Create(context.Background(), sale.CreateInput{
		Username: "alice",
		Total:    9.99,
		Lines: []sale.LineInput{
			{ProductID: hammerID, Quantity: 1, UnitPrice: 9.99, Subtotal: 9.99},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, 9.99, recorded.Details[0].UnitPrice)
	assert.Equal(t, 9.99, recorded.Total)
}

/*
TestService_Create_Rejections verifies the validation guards.
*/
func TestService_Create_Rejections(t *testing.T) {
	testCases := []struct {
		name     string
		lines    []sale.LineInput
		wantCode string
	}{
		{
			name:     "no_lines",
			lines:    nil,
			wantCode: "VALIDATION_ERROR",
		},
		{
			name:     "zero_quantity",
			lines:    []sale.LineInput{{ProductID: hammerID, Quantity: 0, UnitPrice: 12.50}},
			wantCode: "VALIDATION_ERROR",
		},
		{
			name:     "negative_unit_price",
			lines:    []sale.LineInput{{ProductID: hammerID, Quantity: 1, UnitPrice: -1}},
			wantCode: "VALIDATION_ERROR",
		},
		{
			name:     "negative_subtotal",
			lines:    []sale.LineInput{{ProductID: hammerID, Quantity: 1, UnitPrice: 12.50, Subtotal: -12.50}},
			wantCode: "VALIDATION_ERROR",
		},
		{
			name:     "unknown_product",
			lines:    []sale.LineInput{{ProductID: "0191b2c4-0000-7000-8000-00000000dead", Quantity: 1, UnitPrice: 5}},
			wantCode: "NOT_FOUND",
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			service, repository := newTestService()

			_, err := service.Create(context.Background(), sale.CreateInput{
				Username: "alice",
				Lines:    testCase.lines,
			})

			require.Error(t, err)
			appError := apperr.As(err)
			require.NotNil(t, appError)
			assert.Equal(t, testCase.wantCode, appError.Code)

			// Nothing was written
			assert.Empty(t, repository.sales)
		})
	}
}
