package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/aaravmahajanofficial/ecommerce-checkout/internal/models"
	"github.com/aaravmahajanofficial/ecommerce-checkout/internal/utils"
	"github.com/google/uuid"
	"github.com/lib/pq"
)

type OrderRepository interface {
	CreateOrder(ctx context.Context, order *models.Order) error
	GetOrderByID(ctx context.Context, id uuid.UUID) (*models.Order, error)
	GetOrderBySessionID(ctx context.Context, sessionID string) (*models.Order, error)
	// ListOrders pages through orders newest first. A nil userID lists every
	// user's orders.
	ListOrders(ctx context.Context, userID *uuid.UUID, page, size int) ([]models.Order, int, error)
	MarkPaid(ctx context.Context, id uuid.UUID, at time.Time) (*models.Order, error)
	MarkDelivered(ctx context.Context, id uuid.UUID, at time.Time) (*models.Order, error)
}

type orderRepository struct {
	DB *sql.DB
}

func NewOrderRepository(db *sql.DB) OrderRepository {
	return &orderRepository{DB: db}
}

const orderColumns = `id, user_id, shipping_address, shipping_method, shipping_price, tax_price, total_order_price,
	payment_method_type, checkout_session_id, is_paid, paid_at, is_delivered, delivered_at, created_at, updated_at`

func scanOrder(row rowScanner) (*models.Order, error) {
	order := &models.Order{}

	var (
		address     []byte
		sessionID   sql.NullString
		paidAt      sql.NullTime
		deliveredAt sql.NullTime
	)

	err := row.Scan(&order.ID, &order.UserID, &address, &order.ShippingMethod, &order.ShippingPrice, &order.TaxPrice,
		&order.TotalOrderPrice, &order.PaymentMethodType, &sessionID, &order.IsPaid, &paidAt, &order.IsDelivered,
		&deliveredAt, &order.CreatedAt, &order.UpdatedAt)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(address, &order.ShippingAddress); err != nil {
		return nil, fmt.Errorf("failed to unmarshal shipping address: %w", err)
	}

	if sessionID.Valid {
		order.CheckoutSessionID = &sessionID.String
	}

	if paidAt.Valid {
		order.PaidAt = &paidAt.Time
	}

	if deliveredAt.Valid {
		order.DeliveredAt = &deliveredAt.Time
	}

	return order, nil
}

func (r *orderRepository) CreateOrder(ctx context.Context, order *models.Order) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	db := conn(ctx, r.DB)

	address, err := json.Marshal(order.ShippingAddress)
	if err != nil {
		return fmt.Errorf("failed to marshal shipping address: %w", err)
	}

	query := `
		INSERT INTO orders (id, user_id, shipping_address, shipping_method, shipping_price, tax_price, total_order_price,
			payment_method_type, checkout_session_id, is_paid, paid_at, is_delivered, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, FALSE, NOW(), NOW())
		RETURNING created_at, updated_at
	`

	err = db.QueryRowContext(dbCtx, query, order.ID, order.UserID, address, order.ShippingMethod, order.ShippingPrice,
		order.TaxPrice, order.TotalOrderPrice, order.PaymentMethodType, order.CheckoutSessionID, order.IsPaid, order.PaidAt).
		Scan(&order.CreatedAt, &order.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}

		return fmt.Errorf("failed to insert order: %w", err)
	}

	itemQuery := `
		INSERT INTO order_items (id, order_id, product_id, quantity, color, size, price, price_after_discount)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	for _, item := range order.Items {
		_, err := db.ExecContext(dbCtx, itemQuery, item.ID, order.ID, item.ProductID, item.Quantity, item.Color, item.Size,
			item.Price, item.PriceAfterDiscount)
		if err != nil {
			return fmt.Errorf("failed to insert an order item: %w", err)
		}
	}

	return nil
}

func (r *orderRepository) GetOrderByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	return r.getOrder(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1`, id)
}

func (r *orderRepository) GetOrderBySessionID(ctx context.Context, sessionID string) (*models.Order, error) {
	return r.getOrder(ctx, `SELECT `+orderColumns+` FROM orders WHERE checkout_session_id = $1`, sessionID)
}

func (r *orderRepository) getOrder(ctx context.Context, query string, arg any) (*models.Order, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	db := conn(ctx, r.DB)

	order, err := scanOrder(db.QueryRowContext(dbCtx, query, arg))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}

		return nil, fmt.Errorf("failed to get the order: %w", err)
	}

	if err := loadItems(dbCtx, db, []*models.Order{order}); err != nil {
		return nil, err
	}

	return order, nil
}

// loadItems fetches the lines of every order in one query.
func loadItems(ctx context.Context, db DBTX, orders []*models.Order) error {
	if len(orders) == 0 {
		return nil
	}

	ids := make([]uuid.UUID, 0, len(orders))
	byID := make(map[uuid.UUID]*models.Order, len(orders))

	for _, order := range orders {
		ids = append(ids, order.ID)
		byID[order.ID] = order
		order.Items = []models.OrderItem{}
	}

	query := `
		SELECT id, order_id, product_id, quantity, color, size, price, price_after_discount
		FROM order_items
		WHERE order_id = ANY($1)
		ORDER BY order_id, id
	`

	rows, err := db.QueryContext(ctx, query, pq.Array(uuidStrings(ids)))
	if err != nil {
		return fmt.Errorf("failed to get the order items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			item       models.OrderItem
			discounted sql.NullFloat64
		)

		err := rows.Scan(&item.ID, &item.OrderID, &item.ProductID, &item.Quantity, &item.Color, &item.Size, &item.Price, &discounted)
		if err != nil {
			return fmt.Errorf("failed to scan order item: %w", err)
		}

		if discounted.Valid {
			v := discounted.Float64
			item.PriceAfterDiscount = &v
		}

		if order, ok := byID[item.OrderID]; ok {
			order.Items = append(order.Items, item)
		}
	}

	if err := rows.Err(); err != nil {
		return fmt.Errorf("error iterating over the rows: %w", err)
	}

	return nil
}

func (r *orderRepository) ListOrders(ctx context.Context, userID *uuid.UUID, page, size int) ([]models.Order, int, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	db := conn(ctx, r.DB)
	offset := (page - 1) * size

	var (
		total int
		rows  *sql.Rows
		err   error
	)

	if userID != nil {
		err = db.QueryRowContext(dbCtx, `SELECT COUNT(*) FROM orders WHERE user_id = $1`, *userID).Scan(&total)
	} else {
		err = db.QueryRowContext(dbCtx, `SELECT COUNT(*) FROM orders`).Scan(&total)
	}

	if err != nil {
		return nil, 0, fmt.Errorf("failed to count the orders: %w", err)
	}

	if userID != nil {
		rows, err = db.QueryContext(dbCtx,
			`SELECT `+orderColumns+` FROM orders WHERE user_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`,
			*userID, size, offset)
	} else {
		rows, err = db.QueryContext(dbCtx,
			`SELECT `+orderColumns+` FROM orders ORDER BY created_at DESC LIMIT $1 OFFSET $2`,
			size, offset)
	}

	if err != nil {
		return nil, 0, fmt.Errorf("failed to list the orders: %w", err)
	}
	defer rows.Close()

	var loaded []*models.Order

	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan order: %w", err)
		}

		loaded = append(loaded, order)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating over the rows: %w", err)
	}

	rows.Close()

	if err := loadItems(dbCtx, db, loaded); err != nil {
		return nil, 0, err
	}

	orders := make([]models.Order, 0, len(loaded))
	for _, order := range loaded {
		orders = append(orders, *order)
	}

	return orders, total, nil
}

// MarkPaid flags the order as paid. An order that is already paid keeps its
// original payment time.
func (r *orderRepository) MarkPaid(ctx context.Context, id uuid.UUID, at time.Time) (*models.Order, error) {
	return r.mark(ctx, `
		UPDATE orders
		SET is_paid = TRUE, paid_at = COALESCE(paid_at, $2), updated_at = NOW()
		WHERE id = $1
		RETURNING `+orderColumns, id, at)
}

func (r *orderRepository) MarkDelivered(ctx context.Context, id uuid.UUID, at time.Time) (*models.Order, error) {
	return r.mark(ctx, `
		UPDATE orders
		SET is_delivered = TRUE, delivered_at = COALESCE(delivered_at, $2), updated_at = NOW()
		WHERE id = $1
		RETURNING `+orderColumns, id, at)
}

func (r *orderRepository) mark(ctx context.Context, query string, id uuid.UUID, at time.Time) (*models.Order, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	db := conn(ctx, r.DB)

	order, err := scanOrder(db.QueryRowContext(dbCtx, query, id, at))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}

		return nil, fmt.Errorf("failed to update the order: %w", err)
	}

	if err := loadItems(dbCtx, db, []*models.Order{order}); err != nil {
		return nil, err
	}

	return order, nil
}
