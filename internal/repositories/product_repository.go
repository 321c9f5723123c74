package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/aaravmahajanofficial/ecommerce-checkout/internal/models"
	"github.com/aaravmahajanofficial/ecommerce-checkout/internal/utils"
	"github.com/google/uuid"
	"github.com/lib/pq"
)

type ProductRepository interface {
	GetProductByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	GetProductsByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*models.Product, error)
	// AdjustInventory applies every adjustment in one statement and returns
	// how many products were updated. Missing products are skipped.
	AdjustInventory(ctx context.Context, adjustments []models.InventoryAdjustment) (int64, error)
}

type productRepository struct {
	DB *sql.DB
}

func NewProductRepo(db *sql.DB) ProductRepository {
	return &productRepository{DB: db}
}

const productColumns = `id, title, description, price, price_after_discount, quantity, sold, image_cover, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner) (*models.Product, error) {
	product := &models.Product{}

	var discounted sql.NullFloat64

	err := row.Scan(&product.ID, &product.Title, &product.Description, &product.Price, &discounted,
		&product.Quantity, &product.Sold, &product.ImageCover, &product.CreatedAt, &product.UpdatedAt)
	if err != nil {
		return nil, err
	}

	if discounted.Valid {
		v := discounted.Float64
		product.PriceAfterDiscount = &v
	}

	return product, nil
}

func (r *productRepository) GetProductByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	row := conn(ctx, r.DB).QueryRowContext(dbCtx, `SELECT `+productColumns+` FROM products WHERE id = $1`, id)

	product, err := scanProduct(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}

		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	return product, nil
}

func (r *productRepository) GetProductsByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*models.Product, error) {
	products := make(map[uuid.UUID]*models.Product, len(ids))
	if len(ids) == 0 {
		return products, nil
	}

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	rows, err := conn(ctx, r.DB).QueryContext(dbCtx, `SELECT `+productColumns+` FROM products WHERE id = ANY($1)`, pq.Array(uuidStrings(ids)))
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}

		products[product.ID] = product
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating over the rows: %w", err)
	}

	return products, nil
}

func (r *productRepository) AdjustInventory(ctx context.Context, adjustments []models.InventoryAdjustment) (int64, error) {
	if len(adjustments) == 0 {
		return 0, nil
	}

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	ids := make([]string, 0, len(adjustments))
	quantities := make([]int64, 0, len(adjustments))

	for _, adj := range adjustments {
		ids = append(ids, adj.ProductID.String())
		quantities = append(quantities, int64(adj.Quantity))
	}

	query := `
		UPDATE products AS p
		SET quantity = p.quantity - v.qty, sold = p.sold + v.qty, updated_at = NOW()
		FROM unnest($1::uuid[], $2::int[]) AS v(id, qty)
		WHERE p.id = v.id
	`

	result, err := conn(ctx, r.DB).ExecContext(dbCtx, query, pq.Array(ids), pq.Array(quantities))
	if err != nil {
		return 0, fmt.Errorf("failed to adjust inventory: %w", err)
	}

	updatedRows, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get updated rows: %w", err)
	}

	return updatedRows, nil
}

func uuidStrings(ids []uuid.UUID) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		out = append(out, id.String())
	}

	return out
}
