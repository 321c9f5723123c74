package service

import (
	"context"
	"log/slog"

	"github.com/aaravmahajanofficial/ecommerce-checkout/internal/api/middleware"
	"github.com/aaravmahajanofficial/ecommerce-checkout/internal/cache"
	"github.com/aaravmahajanofficial/ecommerce-checkout/internal/errors"
	"github.com/aaravmahajanofficial/ecommerce-checkout/internal/metrics"
	"github.com/aaravmahajanofficial/ecommerce-checkout/internal/models"
	repository "github.com/aaravmahajanofficial/ecommerce-checkout/internal/repositories"
	"github.com/google/uuid"
)

type InventoryReconciler interface {
	// CheckStock fails with OUT_OF_STOCK when any product cannot cover the
	// quantity the cart asks for.
	CheckStock(ctx context.Context, items []models.CartItem) error
	// Apply moves the ordered quantities from stock to sold in one statement.
	// Products that no longer exist are skipped.
	Apply(ctx context.Context, items []models.OrderItem) error
	// Evict drops the cached copies of the ordered products.
	Evict(ctx context.Context, items []models.OrderItem)
}

type inventoryReconciler struct {
	products repository.ProductRepository
	cache    cache.Cache
}

func NewInventoryReconciler(products repository.ProductRepository, c cache.Cache) InventoryReconciler {
	return &inventoryReconciler{products: products, cache: c}
}

func (r *inventoryReconciler) CheckStock(ctx context.Context, items []models.CartItem) error {
	needed := make(map[uuid.UUID]int, len(items))
	ids := make([]uuid.UUID, 0, len(items))

	for _, item := range items {
		if _, ok := needed[item.ProductID]; !ok {
			ids = append(ids, item.ProductID)
		}

		needed[item.ProductID] += item.Quantity
	}

	products, err := r.products.GetProductsByIDs(ctx, ids)
	if err != nil {
		return errors.DatabaseError("Failed to fetch products").WithError(err)
	}

	for _, id := range ids {
		product, ok := products[id]
		if !ok {
			return errors.OutOfStockError("Product is no longer available").WithDetail(id.String())
		}

		if product.Quantity < needed[id] {
			return errors.OutOfStockError("Insufficient stock for product: " + product.Title).WithDetail(id.String())
		}
	}

	return nil
}

func (r *inventoryReconciler) Apply(ctx context.Context, items []models.OrderItem) error {
	adjustments := aggregate(items)
	if len(adjustments) == 0 {
		return nil
	}

	updated, err := r.products.AdjustInventory(ctx, adjustments)
	if err != nil {
		return errors.DatabaseError("Failed to adjust inventory").WithError(err)
	}

	skipped := len(adjustments) - int(updated)

	if skipped > 0 {
		middleware.LoggerFromContext(ctx).Warn("Skipped inventory adjustment for missing products",
			slog.Int("skipped", skipped),
			slog.Int("requested", len(adjustments)))
	}

	metrics.RecordInventoryAdjustments(metrics.InventoryApplied, int(updated))
	metrics.RecordInventoryAdjustments(metrics.InventorySkipped, skipped)

	return nil
}

func (r *inventoryReconciler) Evict(ctx context.Context, items []models.OrderItem) {
	if r.cache == nil {
		return
	}

	adjustments := aggregate(items)
	if len(adjustments) == 0 {
		return
	}

	keys := make([]string, 0, len(adjustments))
	for _, adj := range adjustments {
		keys = append(keys, cache.ProductKey(adj.ProductID))
	}

	if err := r.cache.Delete(ctx, keys...); err != nil {
		middleware.LoggerFromContext(ctx).Warn("Failed to evict products from cache",
			slog.Int("count", len(keys)),
			slog.String("error", err.Error()))
	}
}

// aggregate sums the quantities per product, keeping first-seen order.
func aggregate(items []models.OrderItem) []models.InventoryAdjustment {
	index := make(map[uuid.UUID]int, len(items))
	out := make([]models.InventoryAdjustment, 0, len(items))

	for _, item := range items {
		if i, ok := index[item.ProductID]; ok {
			out[i].Quantity += item.Quantity
			continue
		}

		index[item.ProductID] = len(out)
		out = append(out, models.InventoryAdjustment{ProductID: item.ProductID, Quantity: item.Quantity})
	}

	return out
}
