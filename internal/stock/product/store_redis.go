// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package product

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/taibuivan/stockmanager/internal/platform/constants"
	"github.com/taibuivan/stockmanager/internal/platform/ctxutil"
	"github.com/taibuivan/stockmanager/pkg/pagination"
)

// CacheTTL bounds the staleness of a cached product read.
const CacheTTL = 5 * time.Minute

// CachedRepository decorates a product [Repository] with a Redis
// read-through cache for single-product lookups.
//
// # Consistency
//
// Writes always go to the inner repository first; the cache entry is
// invalidated afterwards. Cache failures are logged and otherwise ignored,
// so Redis being down degrades to direct database reads.
type CachedRepository struct {
	inner  Repository
	client *redis.Client
}

// NewCachedRepository wraps an existing Repository with the Redis cache.
func NewCachedRepository(inner Repository, client *redis.Client) *CachedRepository {
	return &CachedRepository{inner: inner, client: client}
}

// cacheKey builds the Redis key for a product ID.
func cacheKey(id string) string {
	return constants.RedisPrefixProduct + id
}

/*
FindByID retrieves a product, consulting the cache first.

Description: On a miss the inner repository is queried and the result is
stored with [CacheTTL]. Corrupt cache entries are evicted and treated as
misses.

Parameters:
  - context: context.Context
  - id: string

Returns:
  - *Product: Hydrated entity (possibly cached)
  - error: apperr.NotFound or retrieval failures from the inner repository
*/
func (repository *CachedRepository) FindByID(context context.Context, id string) (*Product, error) {
	key := cacheKey(id)

	// 1. Attempt a cache hit
	payload, err := repository.client.Get(context, key).Bytes()
	if err == nil {
		product := &Product{}
		if unmarshalErr := json.Unmarshal(payload, product); unmarshalErr == nil {
			return product, nil
		}
		// Corrupt entry: evict and fall through to the database
		repository.evict(context, id)
	} else if !errors.Is(err, redis.Nil) {
		ctxutil.GetLogger(context).WarnContext(context, "product_cache_read_failed",
			slog.String("key", key),
			slog.Any("error", err),
		)
	}

	// 2. Cache miss: load from the inner repository
	product, err := repository.inner.FindByID(context, id)
	if err != nil {
		return nil, err
	}

	// 3. Populate the cache for subsequent reads
	if payload, marshalErr := json.Marshal(product); marshalErr == nil {
		if setErr := repository.client.Set(context, key, payload, CacheTTL).Err(); setErr != nil {
			ctxutil.GetLogger(context).WarnContext(context, "product_cache_write_failed",
				slog.String("key", key),
				slog.Any("error", setErr),
			)
		}
	}

	return product, nil
}

// List delegates directly; page listings are not cached.
func (repository *CachedRepository) List(context context.Context, params pagination.Params) ([]Product, int, error) {
	return repository.inner.List(context, params)
}

// ListLowStock delegates directly; the report must reflect live quantities.
func (repository *CachedRepository) ListLowStock(context context.Context, threshold int) ([]Product, error) {
	return repository.inner.ListLowStock(context, threshold)
}

// SearchByName delegates directly; search results are not cached.
func (repository *CachedRepository) SearchByName(context context.Context, fragment string, params pagination.Params) ([]Product, int, error) {
	return repository.inner.SearchByName(context, fragment, params)
}

// Create delegates to the inner repository. A brand-new ID cannot be cached yet.
func (repository *CachedRepository) Create(context context.Context, product *Product) error {
	return repository.inner.Create(context, product)
}

// Update writes through to the inner repository and invalidates the cache entry.
func (repository *CachedRepository) Update(context context.Context, product *Product) error {
	if err := repository.inner.Update(context, product); err != nil {
		return err
	}
	repository.evict(context, product.ID)
	return nil
}

// Delete writes through to the inner repository and invalidates the cache entry.
func (repository *CachedRepository) Delete(context context.Context, id string) error {
	if err := repository.inner.Delete(context, id); err != nil {
		return err
	}
	repository.evict(context, id)
	return nil
}

// evict drops a cache entry, logging failures without surfacing them.
func (repository *CachedRepository) evict(context context.Context, id string) {
	if err := repository.client.Del(context, cacheKey(id)).Err(); err != nil {
		ctxutil.GetLogger(context).WarnContext(context, "product_cache_evict_failed",
			slog.String("key", cacheKey(id)),
			slog.Any("error", err),
		)
	}
}
