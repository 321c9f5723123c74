package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/aaravmahajanofficial/ecommerce-checkout/internal/models"
	"github.com/aaravmahajanofficial/ecommerce-checkout/internal/utils"
)

type PaymentRepository interface {
	CreatePayment(ctx context.Context, payment *models.Payment) error
	GetPaymentByID(ctx context.Context, id string) (*models.Payment, error)
	// ClaimCompletion moves the session's payment to completed, inserting the
	// row when the session was never recorded. It reports false when the
	// payment was already completed by an earlier delivery.
	ClaimCompletion(ctx context.Context, payment *models.Payment) (bool, error)
}

type paymentRepository struct {
	DB *sql.DB
}

func NewPaymentRepository(db *sql.DB) PaymentRepository {
	return &paymentRepository{DB: db}
}

func (r *paymentRepository) CreatePayment(ctx context.Context, payment *models.Payment) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		INSERT INTO payments (id, cart_id, user_id, amount, currency, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
		RETURNING created_at, updated_at
	`

	err := conn(ctx, r.DB).QueryRowContext(dbCtx, query, payment.ID, payment.CartID, payment.UserID, payment.Amount,
		payment.Currency, payment.Status).Scan(&payment.CreatedAt, &payment.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}

		return fmt.Errorf("failed to create payment: %w", err)
	}

	return nil
}

func (r *paymentRepository) GetPaymentByID(ctx context.Context, id string) (*models.Payment, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		SELECT id, cart_id, user_id, amount, currency, status, created_at, updated_at
		FROM payments
		WHERE id = $1
	`

	payment := &models.Payment{}

	err := conn(ctx, r.DB).QueryRowContext(dbCtx, query, id).Scan(&payment.ID, &payment.CartID, &payment.UserID,
		&payment.Amount, &payment.Currency, &payment.Status, &payment.CreatedAt, &payment.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}

		return nil, fmt.Errorf("failed to get payment: %w", err)
	}

	return payment, nil
}

func (r *paymentRepository) ClaimCompletion(ctx context.Context, payment *models.Payment) (bool, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		INSERT INTO payments (id, cart_id, user_id, amount, currency, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, 'completed', NOW(), NOW())
		ON CONFLICT (id) DO UPDATE
		SET status = 'completed', amount = EXCLUDED.amount, updated_at = NOW()
		WHERE payments.status <> 'completed'
	`

	result, err := conn(ctx, r.DB).ExecContext(dbCtx, query, payment.ID, payment.CartID, payment.UserID, payment.Amount, payment.Currency)
	if err != nil {
		return false, fmt.Errorf("failed to claim payment: %w", err)
	}

	claimed, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get updated rows: %w", err)
	}

	if claimed == 0 {
		return false, nil
	}

	payment.Status = models.PaymentStatusCompleted

	return true, nil
}
