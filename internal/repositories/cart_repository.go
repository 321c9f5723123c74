package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/aaravmahajanofficial/ecommerce-checkout/internal/models"
	"github.com/aaravmahajanofficial/ecommerce-checkout/internal/utils"
	"github.com/google/uuid"
	"github.com/lib/pq"
)

type CartRepository interface {
	CreateCart(ctx context.Context, cart *models.Cart) error
	GetCartByUserID(ctx context.Context, userID uuid.UUID) (*models.Cart, error)
	GetCartByID(ctx context.Context, id uuid.UUID) (*models.Cart, error)
	UpdateCart(ctx context.Context, cart *models.Cart) error
	DeleteCart(ctx context.Context, id uuid.UUID) error
	DeleteCartByUserID(ctx context.Context, userID uuid.UUID) error
}

type cartRepository struct {
	DB *sql.DB
}

func NewCartRepo(db *sql.DB) CartRepository {
	return &cartRepository{DB: db}
}

const cartColumns = `id, user_id, cart_items, total_cart_price, total_price_after_discount, created_at, updated_at`

// marshalItems serializes the lines without the hydrated product summaries.
func marshalItems(items []models.CartItem) ([]byte, error) {
	stored := make([]models.CartItem, len(items))
	for i, item := range items {
		item.Product = nil
		stored[i] = item
	}

	return json.Marshal(stored)
}

func (r *cartRepository) CreateCart(ctx context.Context, cart *models.Cart) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	itemsJSON, err := marshalItems(cart.Items)
	if err != nil {
		return fmt.Errorf("failed to marshal cart items: %w", err)
	}

	query := `
		INSERT INTO carts (id, user_id, cart_items, total_cart_price, total_price_after_discount, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
		RETURNING created_at, updated_at
	`

	err = conn(ctx, r.DB).QueryRowContext(dbCtx, query, cart.ID, cart.UserID, itemsJSON, cart.TotalCartPrice, cart.TotalPriceAfterDiscount).
		Scan(&cart.CreatedAt, &cart.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}

		return fmt.Errorf("failed to create cart: %w", err)
	}

	return nil
}

func (r *cartRepository) GetCartByUserID(ctx context.Context, userID uuid.UUID) (*models.Cart, error) {
	return r.getCart(ctx, `SELECT `+cartColumns+` FROM carts WHERE user_id = $1`, userID)
}

func (r *cartRepository) GetCartByID(ctx context.Context, id uuid.UUID) (*models.Cart, error) {
	return r.getCart(ctx, `SELECT `+cartColumns+` FROM carts WHERE id = $1`, id)
}

func (r *cartRepository) getCart(ctx context.Context, query string, arg uuid.UUID) (*models.Cart, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	db := conn(ctx, r.DB)
	cart := &models.Cart{}

	var (
		itemsJSON  []byte
		discounted sql.NullFloat64
	)

	err := db.QueryRowContext(dbCtx, query, arg).
		Scan(&cart.ID, &cart.UserID, &itemsJSON, &cart.TotalCartPrice, &discounted, &cart.CreatedAt, &cart.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}

		return nil, fmt.Errorf("querying database: %w", err)
	}

	if err := json.Unmarshal(itemsJSON, &cart.Items); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cart items: %w", err)
	}

	if cart.Items == nil {
		cart.Items = []models.CartItem{}
	}

	if discounted.Valid {
		v := discounted.Float64
		cart.TotalPriceAfterDiscount = &v
	}

	if err := hydrateProducts(dbCtx, db, cart.Items); err != nil {
		return nil, err
	}

	return cart, nil
}

// hydrateProducts attaches a product summary to every line whose product
// still exists. Lines for deleted products are left without one.
func hydrateProducts(ctx context.Context, db DBTX, items []models.CartItem) error {
	if len(items) == 0 {
		return nil
	}

	ids := make([]uuid.UUID, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.ProductID)
	}

	rows, err := db.QueryContext(ctx, `SELECT id, title, image_cover FROM products WHERE id = ANY($1)`, pq.Array(uuidStrings(ids)))
	if err != nil {
		return fmt.Errorf("failed to load cart products: %w", err)
	}
	defer rows.Close()

	summaries := make(map[uuid.UUID]*models.ProductSummary, len(ids))

	for rows.Next() {
		s := &models.ProductSummary{}
		if err := rows.Scan(&s.ID, &s.Title, &s.ImageCover); err != nil {
			return fmt.Errorf("failed to scan cart product: %w", err)
		}

		summaries[s.ID] = s
	}

	if err := rows.Err(); err != nil {
		return fmt.Errorf("error iterating over the rows: %w", err)
	}

	for i := range items {
		items[i].Product = summaries[items[i].ProductID]
	}

	return nil
}

func (r *cartRepository) UpdateCart(ctx context.Context, cart *models.Cart) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	itemsJSON, err := marshalItems(cart.Items)
	if err != nil {
		return fmt.Errorf("failed to marshal cart items: %w", err)
	}

	query := `
		UPDATE carts
		SET cart_items = $1, total_cart_price = $2, total_price_after_discount = $3, updated_at = NOW()
		WHERE id = $4
		RETURNING updated_at
	`

	err = conn(ctx, r.DB).QueryRowContext(dbCtx, query, itemsJSON, cart.TotalCartPrice, cart.TotalPriceAfterDiscount, cart.ID).
		Scan(&cart.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return err
		}

		return fmt.Errorf("failed to update the cart: %w", err)
	}

	return nil
}

func (r *cartRepository) DeleteCart(ctx context.Context, id uuid.UUID) error {
	return r.deleteCart(ctx, `DELETE FROM carts WHERE id = $1`, id)
}

func (r *cartRepository) DeleteCartByUserID(ctx context.Context, userID uuid.UUID) error {
	return r.deleteCart(ctx, `DELETE FROM carts WHERE user_id = $1`, userID)
}

func (r *cartRepository) deleteCart(ctx context.Context, query string, arg uuid.UUID) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	result, err := conn(ctx, r.DB).ExecContext(dbCtx, query, arg)
	if err != nil {
		return fmt.Errorf("failed to delete the cart: %w", err)
	}

	deletedRows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get deleted rows: %w", err)
	}

	if deletedRows == 0 {
		return sql.ErrNoRows
	}

	return nil
}
