package repository

import (
	"context"
	"log/slog"
	"time"

	"github.com/aaravmahajanofficial/ecommerce-checkout/internal/cache"
	"github.com/aaravmahajanofficial/ecommerce-checkout/internal/models"
	"github.com/google/uuid"
)

// cachedProductRepository serves single product lookups from Redis. Bulk
// reads and inventory writes always go to Postgres.
type cachedProductRepository struct {
	ProductRepository
	cache cache.Cache
	ttl   time.Duration
}

func NewCachedProductRepo(inner ProductRepository, c cache.Cache, ttl time.Duration) ProductRepository {
	return &cachedProductRepository{ProductRepository: inner, cache: c, ttl: ttl}
}

func (r *cachedProductRepository) GetProductByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	key := cache.ProductKey(id)

	var product models.Product

	found, err := r.cache.Get(ctx, key, &product)
	if err != nil {
		slog.Warn("Product cache read failed", slog.String("key", key), slog.String("error", err.Error()))
	} else if found {
		return &product, nil
	}

	fresh, err := r.ProductRepository.GetProductByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := r.cache.Set(ctx, key, fresh, r.ttl); err != nil {
		slog.Warn("Product cache write failed", slog.String("key", key), slog.String("error", err.Error()))
	}

	return fresh, nil
}
