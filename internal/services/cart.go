package service

import (
	"context"
	"database/sql"
	stdErrors "errors"
	"log/slog"

	"github.com/aaravmahajanofficial/ecommerce-checkout/internal/api/middleware"
	"github.com/aaravmahajanofficial/ecommerce-checkout/internal/errors"
	"github.com/aaravmahajanofficial/ecommerce-checkout/internal/metrics"
	"github.com/aaravmahajanofficial/ecommerce-checkout/internal/models"
	"github.com/aaravmahajanofficial/ecommerce-checkout/internal/pricing"
	repository "github.com/aaravmahajanofficial/ecommerce-checkout/internal/repositories"
	"github.com/aaravmahajanofficial/ecommerce-checkout/internal/utils"
	"github.com/google/uuid"
)

type CartService interface {
	GetCart(ctx context.Context, userID uuid.UUID) (*models.Cart, error)
	AddItem(ctx context.Context, userID uuid.UUID, req *models.AddItemRequest) (*models.Cart, error)
	UpdateItemQuantity(ctx context.Context, userID, itemID uuid.UUID, quantity int) (*models.Cart, error)
	RemoveItem(ctx context.Context, userID, itemID uuid.UUID) (*models.Cart, error)
	ClearCart(ctx context.Context, userID uuid.UUID) error
	ApplyCoupon(ctx context.Context, userID uuid.UUID, code string) (*models.Cart, error)
}

type cartService struct {
	repo     repository.CartRepository
	products repository.ProductRepository
	coupons  CouponService
}

func NewCartService(repo repository.CartRepository, products repository.ProductRepository, coupons CouponService) CartService {
	return &cartService{repo: repo, products: products, coupons: coupons}
}

func (s *cartService) GetCart(ctx context.Context, userID uuid.UUID) (*models.Cart, error) {
	cart, err := s.repo.GetCartByUserID(ctx, userID)
	if err != nil {
		return nil, cartLookupError(err)
	}

	return cart, nil
}

// AddItem puts one unit of the product in the user's cart, merging with an
// existing line for the same color and size. The cart is created on first use.
func (s *cartService) AddItem(ctx context.Context, userID uuid.UUID, req *models.AddItemRequest) (*models.Cart, error) {
	logger := middleware.LoggerFromContext(ctx)

	product, err := s.products.GetProductByID(ctx, req.ProductID)
	if err != nil {
		if stdErrors.Is(err, sql.ErrNoRows) {
			return nil, errors.NotFoundError("Product not found").WithError(err)
		}

		return nil, errors.DatabaseError("Failed to fetch product").WithError(err)
	}

	if product.Quantity < 1 {
		logger.Warn("Rejected add to cart, product out of stock", slog.String("productId", product.ID.String()))
		return nil, errors.OutOfStockError("Product is out of stock")
	}

	color := utils.SanitizeText(req.Color)
	size := utils.SanitizeText(req.Size)

	cart, err := s.repo.GetCartByUserID(ctx, userID)
	if err != nil && !stdErrors.Is(err, sql.ErrNoRows) {
		return nil, errors.DatabaseError("Failed to fetch cart").WithError(err)
	}

	if cart == nil {
		cart = models.NewCart(userID)
		addUnit(cart, product, color, size)

		err = s.repo.CreateCart(ctx, cart)
		if err == nil {
			metrics.RecordCartMutation("add")
			return cart, nil
		}

		if !stdErrors.Is(err, repository.ErrDuplicate) {
			return nil, errors.DatabaseError("Failed to create cart").WithError(err)
		}

		// Another request created the cart first.
		cart, err = s.repo.GetCartByUserID(ctx, userID)
		if err != nil {
			return nil, errors.DatabaseError("Failed to fetch cart").WithError(err)
		}
	}

	addUnit(cart, product, color, size)

	if err := s.repo.UpdateCart(ctx, cart); err != nil {
		return nil, cartUpdateError(err)
	}

	metrics.RecordCartMutation("add")

	return cart, nil
}

func addUnit(cart *models.Cart, product *models.Product, color, size string) {
	merged := false

	for i := range cart.Items {
		if cart.Items[i].Matches(product.ID, color, size) {
			cart.Items[i].Quantity++
			merged = true

			break
		}
	}

	if !merged {
		item := models.CartItem{
			ID:        uuid.New(),
			ProductID: product.ID,
			Product:   product.Summary(),
			Quantity:  1,
			Color:     color,
			Size:      size,
			Price:     product.Price,
		}

		if product.PriceAfterDiscount != nil {
			v := *product.PriceAfterDiscount
			item.PriceAfterDiscount = &v
		}

		cart.Items = append(cart.Items, item)
	}

	pricing.RecalculateCart(cart)
}

// UpdateItemQuantity sets the line quantity verbatim. Stock is checked again
// at checkout.
func (s *cartService) UpdateItemQuantity(ctx context.Context, userID, itemID uuid.UUID, quantity int) (*models.Cart, error) {
	if quantity < 1 {
		return nil, errors.BadRequestError("Quantity must be at least 1")
	}

	cart, idx, err := s.findLine(ctx, userID, itemID)
	if err != nil {
		return nil, err
	}

	cart.Items[idx].Quantity = quantity
	pricing.RecalculateCart(cart)

	if err := s.repo.UpdateCart(ctx, cart); err != nil {
		return nil, cartUpdateError(err)
	}

	metrics.RecordCartMutation("update_quantity")

	return cart, nil
}

func (s *cartService) RemoveItem(ctx context.Context, userID, itemID uuid.UUID) (*models.Cart, error) {
	cart, idx, err := s.findLine(ctx, userID, itemID)
	if err != nil {
		return nil, err
	}

	cart.Items = append(cart.Items[:idx], cart.Items[idx+1:]...)
	pricing.RecalculateCart(cart)

	if err := s.repo.UpdateCart(ctx, cart); err != nil {
		return nil, cartUpdateError(err)
	}

	metrics.RecordCartMutation("remove")

	return cart, nil
}

func (s *cartService) findLine(ctx context.Context, userID, itemID uuid.UUID) (*models.Cart, int, error) {
	cart, err := s.repo.GetCartByUserID(ctx, userID)
	if err != nil {
		return nil, -1, cartLookupError(err)
	}

	idx := cart.FindItem(itemID)
	if idx < 0 {
		return nil, -1, errors.NotFoundError("Item not found in the cart")
	}

	return cart, idx, nil
}

func (s *cartService) ClearCart(ctx context.Context, userID uuid.UUID) error {
	if err := s.repo.DeleteCartByUserID(ctx, userID); err != nil {
		return cartLookupError(err)
	}

	metrics.RecordCartMutation("clear")

	return nil
}

// ApplyCoupon resolves the coupon before touching the cart and discounts the
// current effective price, so repeated coupons compound.
func (s *cartService) ApplyCoupon(ctx context.Context, userID uuid.UUID, code string) (*models.Cart, error) {
	coupon, err := s.coupons.Resolve(ctx, code)
	if err != nil {
		return nil, err
	}

	cart, err := s.repo.GetCartByUserID(ctx, userID)
	if err != nil && !stdErrors.Is(err, sql.ErrNoRows) {
		return nil, errors.DatabaseError("Failed to fetch cart").WithError(err)
	}

	if cart == nil || len(cart.Items) == 0 {
		return nil, errors.BadRequestError("No items in the cart")
	}

	cart.SetDiscountedTotal(pricing.ApplyCoupon(cart.EffectivePrice(), coupon.Discount))

	if err := s.repo.UpdateCart(ctx, cart); err != nil {
		return nil, cartUpdateError(err)
	}

	middleware.LoggerFromContext(ctx).Info("Coupon applied",
		slog.String("coupon", coupon.Name),
		slog.String("cartId", cart.ID.String()))

	metrics.RecordCartMutation("apply_coupon")

	return cart, nil
}

func cartLookupError(err error) error {
	if stdErrors.Is(err, sql.ErrNoRows) {
		return errors.NotFoundError("Cart not found").WithError(err)
	}

	return errors.DatabaseError("Failed to fetch cart").WithError(err)
}

// cartUpdateError maps a cart removed between read and write, e.g. by a
// concurrent checkout, to not found.
func cartUpdateError(err error) error {
	if stdErrors.Is(err, sql.ErrNoRows) {
		return cartLookupError(err)
	}

	return errors.DatabaseError("Failed to update cart").WithError(err)
}
