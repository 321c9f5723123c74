package service

import (
	"context"
	"database/sql"
	stdErrors "errors"
	"strings"
	"time"

	"github.com/aaravmahajanofficial/ecommerce-checkout/internal/errors"
	"github.com/aaravmahajanofficial/ecommerce-checkout/internal/models"
	repository "github.com/aaravmahajanofficial/ecommerce-checkout/internal/repositories"
)

type CouponService interface {
	// Resolve returns the unexpired coupon with exactly this name.
	Resolve(ctx context.Context, code string) (*models.Coupon, error)
}

type couponService struct {
	repo repository.CouponRepository
}

func NewCouponService(repo repository.CouponRepository) CouponService {
	return &couponService{repo: repo}
}

func (s *couponService) Resolve(ctx context.Context, code string) (*models.Coupon, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, errors.InvalidCouponError("Coupon is invalid or expired")
	}

	coupon, err := s.repo.GetValidCoupon(ctx, code, time.Now())
	if err != nil {
		if stdErrors.Is(err, sql.ErrNoRows) {
			return nil, errors.InvalidCouponError("Coupon is invalid or expired").WithError(err)
		}

		return nil, errors.DatabaseError("Failed to fetch coupon").WithError(err)
	}

	return coupon, nil
}
