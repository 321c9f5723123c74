package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/aaravmahajanofficial/ecommerce-checkout/internal/models"
	"github.com/aaravmahajanofficial/ecommerce-checkout/internal/utils"
)

type CouponRepository interface {
	// GetValidCoupon returns the coupon with this exact name that has not
	// expired at now.
	GetValidCoupon(ctx context.Context, name string, now time.Time) (*models.Coupon, error)
}

type couponRepository struct {
	DB *sql.DB
}

func NewCouponRepo(db *sql.DB) CouponRepository {
	return &couponRepository{DB: db}
}

func (r *couponRepository) GetValidCoupon(ctx context.Context, name string, now time.Time) (*models.Coupon, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		SELECT id, name, discount, expires_at, created_at
		FROM coupons
		WHERE name = $1 AND expires_at > $2
	`

	coupon := &models.Coupon{}

	err := conn(ctx, r.DB).QueryRowContext(dbCtx, query, name, now).
		Scan(&coupon.ID, &coupon.Name, &coupon.Discount, &coupon.ExpiresAt, &coupon.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}

		return nil, fmt.Errorf("failed to get coupon: %w", err)
	}

	return coupon, nil
}
