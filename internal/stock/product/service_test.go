// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package product_test

import (
	"context"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/stockmanager/internal/platform/apperr"
	"github.com/taibuivan/stockmanager/internal/stock/product"
	"github.com/taibuivan/stockmanager/pkg/pagination"
	"github.com/taibuivan/stockmanager/pkg/pointer"
)

// # Test Doubles

// memoryRepository is an in-memory product Repository for service tests.
type memoryRepository struct {
	products map[string]*product.Product
}

func newMemoryRepository() *memoryRepository {
	return &memoryRepository{products: make(map[string]*product.Product)}
}

func (repository *memoryRepository) FindByID(_ context.Context, id string) (*product.Product, error) {
	item, found := repository.products[id]
	if !found {
		return nil, apperr.NotFound("Product")
	}
	clone := *item
	return &clone, nil
}

func (repository *memoryRepository) List(_ context.Context, _ pagination.Params) ([]product.Product, int, error) {
	items := repository.all()
	return items, len(items), nil
}

func (repository *memoryRepository) ListLowStock(_ context.Context, threshold int) ([]product.Product, error) {
	low := make([]product.Product, 0)
	for _, item := range repository.all() {
		if item.StockQuantity < threshold {
			low = append(low, item)
		}
	}
	return low, nil
}

func (repository *memoryRepository) SearchByName(_ context.Context, fragment string, _ pagination.Params) ([]product.Product, int, error) {
	matches := make([]product.Product, 0)
	for _, item := range repository.all() {
		if strings.Contains(strings.ToLower(item.Name), strings.ToLower(fragment)) {
			matches = append(matches, item)
		}
	}
	return matches, len(matches), nil
}

func (repository *memoryRepository) Create(_ context.Context, item *product.Product) error {
	for _, existing := range repository.products {
		if existing.Name == item.Name {
			return apperr.Conflict("Product name is already in use")
		}
	}
	clone := *item
	repository.products[item.ID] = &clone
	return nil
}

func (repository *memoryRepository) Update(_ context.Context, item *product.Product) error {
	if _, found := repository.products[item.ID]; !found {
		return apperr.NotFound("Product")
	}
	clone := *item
	repository.products[item.ID] = &clone
	return nil
}

func (repository *memoryRepository) Delete(_ context.Context, id string) error {
	if _, found := repository.products[id]; !found {
		return apperr.NotFound("Product")
	}
	delete(repository.products, id)
	return nil
}


func (repository *memoryRepository) all() []product.Product {
	items := make([]product.Product, 0, len(repository.products))
	for _, item := range repository.products {
		items = append(items, *item)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].Name < items[j].Name })
	return items
}

// staticCategories answers existence checks from a fixed set of IDs.
type staticCategories struct {
	known map[string]bool
}

func (categories *staticCategories) Exists(_ context.Context, id string) (bool, error) {
	return categories.known[id], nil
}

const testCategoryID = "0191b2c4-0000-7000-8000-000000000001"

func newTestService() (*product.Service, *memoryRepository) {
	repository := newMemoryRepository()
	categories := &staticCategories{known: map[string]bool{testCategoryID: true}}
	return product.NewService(repository, categories), repository
}

// # Catalog Writes

/*
TestService_Create verifies product creation, including the category
existence guard.
*/
func TestService_Create(t *testing.T) {
	service, _ := newTestService()
	ctx := context.Background()

	created, err := service.Create(ctx, product.CreateInput{
		Name:          "Hammer",
		Description:   "Claw hammer, 16oz",
		Price:         12.50,
		StockQuantity: 40,
		CategoryID:    testCategoryID,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "Hammer", created.Name)

	_, err = service.Create(ctx, product.CreateInput{
		Name:       "Orphan",
		Price:      1,
		CategoryID: "0191b2c4-0000-7000-8000-00000000dead",
	})
	require.Error(t, err)
	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, "NOT_FOUND", appError.Code)
}

/*
TestService_Update verifies that only the provided fields change.
*/
func TestService_Update(t *testing.T) {
	service, _ := newTestService()
	ctx := context.Background()

	created, err := service.Create(ctx, product.CreateInput{
		Name:          "Hammer",
		Price:         12.50,
		StockQuantity: 40,
		CategoryID:    testCategoryID,
	})
	require.NoError(t, err)

	updated, err := service.Update(ctx, created.ID, product.UpdateInput{
		Price: pointer.To(9.99),
	})
	require.NoError(t, err)

	assert.Equal(t, 9.99, updated.Price)
	assert.Equal(t, "Hammer", updated.Name)
	assert.Equal(t, 40, updated.StockQuantity)
}

// # Catalog Reads

/*
TestService_LowStock verifies the threshold filter and its default.
*/
func TestService_LowStock(t *testing.T) {
	service, _ := newTestService()
	ctx := context.Background()

	seed := []struct {
		name  string
		stock int
	}{
		{"Nearly out", 1},
		{"Running low", 4},
		{"Well stocked", 50},
	}
	for _, item := range seed {
		_, err := service.Create(ctx, product.CreateInput{
			Name:          item.name,
			Price:         1,
			StockQuantity: item.stock,
			CategoryID:    testCategoryID,
		})
		require.NoError(t, err)
	}

	// Default threshold (5) catches the two scarce items
	low, err := service.LowStock(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, low, 2)

	// Tighter threshold catches only the scarcest
	low, err = service.LowStock(ctx, 2)
	require.NoError(t, err)
	require.Len(t, low, 1)
	assert.Equal(t, "Nearly out", low[0].Name)
}

/*
TestService_Search verifies the case-insensitive substring match.
*/
func TestService_Search(t *testing.T) {
	service, _ := newTestService()
	ctx := context.Background()

	for _, name := range []string{"Claw Hammer", "Sledgehammer", "Screwdriver"} {
		_, err := service.Create(ctx, product.CreateInput{
			Name:       name,
			Price:      1,
			CategoryID: testCategoryID,
		})
		require.NoError(t, err)
	}

	matches, total, err := service.Search(ctx, "HAMMER", pagination.Params{Page: 1, Limit: 20})
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	assert.Len(t, matches, 2)
}
